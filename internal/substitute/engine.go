// Package substitute implements the deterministic synonym-based rewriting of
// unprotected spans, optionally biased by search-context snippets. Given the
// same text, synonym resource, and context, output is reproducible: the
// random source is seeded from a hash of the input text.
package substitute

import (
	"hash/fnv"
	"math/rand"
	"regexp"
	"strings"
	"unicode"

	"parafrase/internal/protect"
	"parafrase/internal/synonym"
	"parafrase/internal/types"
)

// Take rates per substitution tier, from tuning against real theses:
// academic words are replaced aggressively, ordinary words conservatively.
const (
	academicTakeRate = 0.60
	regularTakeRate  = 0.35
	contextBoost     = 0.15
)

var compiledPhrases = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(phraseReplacements))
	for i, g := range phraseReplacements {
		out[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(g.phrase))
	}
	return out
}()

// Result is the outcome of one local rewrite.
type Result struct {
	Text        string
	Similarity  float64 // [0,100], 100 when unchanged
	Changes     int     // distinct substitution sites
	ContextHits int     // substitutions biased by the search context
}

// Engine rewrites text using the synonym resource. Safe for concurrent use:
// all mutable state is per-call.
type Engine struct {
	res *synonym.Resource
}

// NewEngine creates a substitution engine over an immutable resource.
func NewEngine(res *synonym.Resource) *Engine {
	return &Engine{res: res}
}

// Rewrite substitutes synonyms in the unprotected gaps of text. spans must
// be the non-overlapping protected spans of text; searchContext may be empty.
func (e *Engine) Rewrite(text string, spans []types.ProtectedSpan, searchContext string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Text: text, Similarity: 100}
	}

	rng := rand.New(rand.NewSource(seed(text)))
	ctxWords := contextWordSet(searchContext)

	changes := 0
	contextHits := 0
	rewritten := protect.ApplyRewrite(text, spans, func(gap string) string {
		return e.rewriteGap(gap, ctxWords, rng, &changes, &contextHits)
	})

	return Result{
		Text:        rewritten,
		Similarity:  Similarity(text, rewritten),
		Changes:     changes,
		ContextHits: contextHits,
	}
}

func (e *Engine) rewriteGap(gap string, ctxWords map[string]bool, rng *rand.Rand, changes, contextHits *int) string {
	prefix, body, suffix := splitEdges(gap)
	if body == "" {
		return gap
	}

	// Phrase replacements first: templates carry more risk than any single
	// word, and replacing them early keeps word-level counts honest.
	for i, g := range phraseReplacements {
		if loc := compiledPhrases[i].FindStringIndex(body); loc != nil {
			repl := pick(g.alternatives, ctxWords, rng, contextHits)
			body = body[:loc[0]] + matchCase(body[loc[0]:loc[1]], repl) + body[loc[1]:]
			*changes++
		}
	}

	tokens := strings.Split(body, " ")
	for i, tok := range tokens {
		lead, core, trail := trimPunct(tok)
		if core == "" {
			continue
		}
		lowerCore := strings.ToLower(core)

		alts := e.res.LookupAcademic(lowerCore)
		rate := academicTakeRate
		if alts == nil {
			alts = filterQuality(e.res.Lookup(lowerCore))
			rate = regularTakeRate
		}
		if len(alts) == 0 {
			continue
		}
		if hasContextAlt(alts, ctxWords) {
			rate += contextBoost
		}
		if rng.Float64() >= rate {
			continue
		}

		repl := pick(alts, ctxWords, rng, contextHits)
		tokens[i] = lead + matchCase(core, repl) + trail
		*changes++
	}

	return prefix + strings.Join(tokens, " ") + suffix
}

// pick prefers an alternative that appears in the search context; otherwise
// it draws one at random (deterministically, given the seeded source).
func pick(alts []string, ctxWords map[string]bool, rng *rand.Rand, contextHits *int) string {
	for _, a := range alts {
		if ctxWords[a] {
			*contextHits++
			return a
		}
	}
	return alts[rng.Intn(len(alts))]
}

func hasContextAlt(alts []string, ctxWords map[string]bool) bool {
	for _, a := range alts {
		if ctxWords[a] {
			return true
		}
	}
	return false
}

// filterQuality drops alternatives too short or too long to read naturally.
func filterQuality(alts []string) []string {
	if alts == nil {
		return nil
	}
	out := make([]string, 0, len(alts))
	for _, a := range alts {
		if len(a) >= 3 && len(a) <= 15 {
			out = append(out, a)
		}
		if len(out) == 10 {
			break
		}
	}
	return out
}

func contextWordSet(ctx string) map[string]bool {
	if ctx == "" {
		return nil
	}
	set := make(map[string]bool)
	for _, w := range simWordRe.FindAllString(strings.ToLower(ctx), -1) {
		if len(w) > 3 && !synonym.IsStopWord(w) {
			set[w] = true
		}
	}
	return set
}

func matchCase(original, repl string) string {
	if original == strings.ToUpper(original) && len(original) > 1 {
		return strings.ToUpper(repl)
	}
	r := []rune(original)
	if unicode.IsUpper(r[0]) {
		rr := []rune(repl)
		rr[0] = unicode.ToUpper(rr[0])
		return string(rr)
	}
	return repl
}

// splitEdges separates leading/trailing whitespace so gap boundaries next to
// protected spans survive reassembly byte-for-byte.
func splitEdges(s string) (prefix, body, suffix string) {
	start := 0
	for start < len(s) && (s[start] == ' ' || s[start] == '\t' || s[start] == '\n') {
		start++
	}
	end := len(s)
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t' || s[end-1] == '\n') {
		end--
	}
	return s[:start], s[start:end], s[end:]
}

func trimPunct(tok string) (lead, core, trail string) {
	runes := []rune(tok)
	start := 0
	for start < len(runes) && !unicode.IsLetter(runes[start]) && !unicode.IsDigit(runes[start]) {
		start++
	}
	end := len(runes)
	for end > start && !unicode.IsLetter(runes[end-1]) && !unicode.IsDigit(runes[end-1]) {
		end--
	}
	return string(runes[:start]), string(runes[start:end]), string(runes[end:])
}

func seed(text string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	return int64(h.Sum64())
}
