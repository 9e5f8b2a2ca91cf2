// Package quality scores rewritten text against the original so the
// pipeline can decide whether a unit needs escalation to a deeper
// rewrite level.
package quality

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"parafrase/internal/substitute"
)

// =============================================================================
// QUALITY ASSESSOR
// =============================================================================

// Deduction thresholds and amounts follow the local rewrite heuristics the
// engine was tuned against. The score starts at 100 and each detected
// defect subtracts a fixed amount.
const (
	maxRepetitionRatio = 0.3
	minWordVariety     = 0.4
	maxAvgWordLength   = 8.0
	maxWeirdCombos     = 2

	// Similarity band for an acceptable rewrite. Above the ceiling the
	// rewrite barely changed anything, below the floor the meaning has
	// probably drifted.
	similarityCeiling = 85.0
	similarityFloor   = 20.0
)

var weirdCombos = []*regexp.Regexp{
	regexp.MustCompile(`\bmenjadi adalah\b`),
	regexp.MustCompile(`\badalah merupakan\b`),
	regexp.MustCompile(`\bsangat sekali\b`),
	regexp.MustCompile(`\bmembuat menciptakan\b`),
}

var doubledPreposition = regexp.MustCompile(`\b(di|ke|dari)\s+(di|ke|dari)\b`)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}]`)

// Assess scores candidate as a rewrite of original, in [0, 100].
// changes is the number of substitutions the local engine reported.
func Assess(original, candidate string, changes int) float64 {
	if strings.TrimSpace(candidate) == "" {
		return 0
	}
	words := strings.Fields(candidate)
	if len(words) == 0 {
		return 0
	}

	score := 100.0

	// Degenerate output: text came back unchanged even though the
	// substitution engine claims it rewrote something.
	if candidate == original && changes > 0 {
		score -= 40
	}

	sim := substitute.Similarity(original, candidate)
	if sim > similarityCeiling && changes > 0 {
		score -= 20
	}
	if sim < similarityFloor {
		score -= 25
	}

	if changes == 0 && candidate != original {
		score -= 10
	}

	var totalLen int
	for _, w := range words {
		totalLen += len(w)
	}
	if float64(totalLen)/float64(len(words)) > maxAvgWordLength {
		score -= 20
	}

	if repetitionRatio(words) > maxRepetitionRatio {
		score -= 25
	}

	if variety, ok := wordVariety(words); ok && variety < minWordVariety {
		score -= 20
	}

	lower := strings.ToLower(candidate)
	combos := 0
	if hasRepeatedWord(lower) {
		combos++
	}
	for _, p := range weirdCombos {
		if p.MatchString(lower) {
			combos++
		}
	}
	if combos > maxWeirdCombos {
		score -= 30
	}

	if doubledPreposition.MatchString(candidate) {
		score -= 15
	}

	if !endsWithTerminator(candidate) && endsWithTerminator(original) {
		score -= 10
	}

	if score < 0 {
		return 0
	}
	return score
}

// hasRepeatedWord reports whether the text repeats a word back to back,
// like "bagus bagus". Tokens separated by punctuation rather than plain
// whitespace do not count.
func hasRepeatedWord(lower string) bool {
	fields := strings.Fields(lower)
	for i := 1; i < len(fields); i++ {
		prev := trailingWord(fields[i-1])
		if prev != "" && prev == leadingWord(fields[i]) {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func leadingWord(tok string) string {
	for i, r := range tok {
		if !isWordRune(r) {
			return tok[:i]
		}
	}
	return tok
}

func trailingWord(tok string) string {
	i := len(tok)
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(tok[:i])
		if !isWordRune(r) {
			break
		}
		i -= size
	}
	return tok[i:]
}

// repetitionRatio is the frequency of the most repeated significant word
// relative to total word count.
func repetitionRatio(words []string) float64 {
	freq := make(map[string]int)
	for _, w := range words {
		clean := nonWord.ReplaceAllString(strings.ToLower(w), "")
		if len(clean) > 3 {
			freq[clean]++
		}
	}
	max := 0
	for _, n := range freq {
		if n > max {
			max = n
		}
	}
	if max == 0 {
		return 0
	}
	return float64(max) / float64(len(words))
}

// wordVariety is the ratio of unique significant words to total significant
// words. ok is false when there are no significant words to judge.
func wordVariety(words []string) (float64, bool) {
	seen := make(map[string]struct{})
	total := 0
	for _, w := range words {
		if len(w) > 3 {
			total++
			seen[strings.ToLower(w)] = struct{}{}
		}
	}
	if total == 0 {
		return 0, false
	}
	return float64(len(seen)) / float64(total), true
}

func endsWithTerminator(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}
