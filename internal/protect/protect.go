// Package protect identifies spans that must never be altered (headings,
// captions, citations, labels) and isolates them from rewriting. The
// guarantee: rewriting only the unprotected gaps and reassembling in order
// reproduces the original span structure exactly.
package protect

import (
	"regexp"
	"sort"

	"parafrase/internal/types"
)

type spanPattern struct {
	re     *regexp.Regexp
	reason types.SpanReason
}

// Whole-unit patterns: when one of these matches the entire unit, the whole
// unit is protected.
var wholeUnitPatterns = []spanPattern{
	{regexp.MustCompile(`(?i)^BAB\s+[IVX]+\b.*$`), types.ReasonHeading},
	{regexp.MustCompile(`(?i)^CHAPTER\s+\d+\b.*$`), types.ReasonHeading},
	{regexp.MustCompile(`^\d+(\.\d+)*\.?\s+\S.*$`), types.ReasonHeading},
	{regexp.MustCompile(`^[A-Z][A-Z\s]{5,}$`), types.ReasonHeading},
	{regexp.MustCompile(`^(ABSTRAK|ABSTRACT|PENDAHULUAN|KESIMPULAN)$`), types.ReasonHeading},
	{regexp.MustCompile(`^DAFTAR\s+(ISI|PUSTAKA|GAMBAR|TABEL)\b.*$`), types.ReasonHeading},
	{regexp.MustCompile(`(?i)^(Tabel|Gambar|Figure|Table)\s+\d+\b.*$`), types.ReasonCaption},
	{regexp.MustCompile(`(?i)^(Sumber|Source|Penulis|Author|Oleh)\s*:.*$`), types.ReasonLabel},
}

// Inline patterns: matched anywhere within prose.
var inlinePatterns = []spanPattern{
	{regexp.MustCompile(`\([^()]*\d{4}[^()]*\)`), types.ReasonCitation},
	{regexp.MustCompile(`\[[^\[\]]+\]`), types.ReasonCitation},
	{regexp.MustCompile(`"[^"\n]+"`), types.ReasonQuote},
	{regexp.MustCompile("“[^“”\n]+”"), types.ReasonQuote},
}

// ExtractSpans returns the non-overlapping protected spans of text, sorted
// by offset. Overlap ambiguity resolves first-match-wins: earlier spans
// before later, longer before shorter at the same offset.
func ExtractSpans(text string) []types.ProtectedSpan {
	if text == "" {
		return nil
	}

	for _, p := range wholeUnitPatterns {
		if p.re.MatchString(text) {
			return []types.ProtectedSpan{{Start: 0, End: len(text), Reason: p.reason}}
		}
	}

	var candidates []types.ProtectedSpan
	for _, p := range inlinePatterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			candidates = append(candidates, types.ProtectedSpan{Start: loc[0], End: loc[1], Reason: p.reason})
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Start != candidates[j].Start {
			return candidates[i].Start < candidates[j].Start
		}
		return candidates[i].End > candidates[j].End
	})

	spans := candidates[:1]
	for _, c := range candidates[1:] {
		if c.Start >= spans[len(spans)-1].End {
			spans = append(spans, c)
		}
	}
	return spans
}

// ApplyRewrite reassembles text from its protected spans and the rewritten
// unprotected gaps. rewriteGap is called once per gap in original order;
// protected span text passes through untouched. With an identity rewriteGap
// the result equals the input exactly.
func ApplyRewrite(text string, spans []types.ProtectedSpan, rewriteGap func(gap string) string) string {
	if len(spans) == 0 {
		return rewriteGap(text)
	}

	var out []byte
	pos := 0
	for _, s := range spans {
		if s.Start > pos {
			out = append(out, rewriteGap(text[pos:s.Start])...)
		}
		out = append(out, text[s.Start:s.End]...)
		pos = s.End
	}
	if pos < len(text) {
		out = append(out, rewriteGap(text[pos:])...)
	}
	return string(out)
}

// IsFullyProtected reports whether the spans cover the entire text.
func IsFullyProtected(text string, spans []types.ProtectedSpan) bool {
	return len(spans) == 1 && spans[0].Start == 0 && spans[0].End == len(text)
}
