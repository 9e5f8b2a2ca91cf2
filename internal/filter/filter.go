// Package filter decides whether a text unit is eligible for rewriting.
// The check is a pure function: no side effects, idempotent, total over
// arbitrary input including the empty string.
package filter

import (
	"regexp"
	"strings"
)

var skipPatterns = []*regexp.Regexp{
	// Bare numbering: "1.", "2.3", "1.2.3."
	regexp.MustCompile(`^\d+(\.\d+)*\.?$`),
	// Bare single-letter labels: "A.", "b)"
	regexp.MustCompile(`^[A-Za-z][.)]$`),
	// Figure/table captions
	regexp.MustCompile(`(?i)^(gambar|tabel|figure|table)\s+\d+`),
	// Lines that are only a parenthetical citation
	regexp.MustCompile(`^\([^)]*\d{4}[^)]*\)$`),
	// Source labels
	regexp.MustCompile(`(?i)^(sumber|source)\s*:`),
}

// Bare key-value pair such as "Nama: Budi" - a short label, a colon, and a
// short value with no sentence structure.
var keyValuePattern = regexp.MustCompile(`^[A-Za-z][\w\s]{0,30}:\s*\S.{0,40}$`)

var citationPattern = regexp.MustCompile(`\(\d{4}\)`)

// Suitable reports whether text should be rewritten. minWords is 5 for
// single-pass detection and 15 for the balanced mode.
func Suitable(text string, minWords int) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}

	words := strings.Fields(trimmed)
	if len(words) < minWords {
		return false
	}

	for _, p := range skipPatterns {
		if p.MatchString(trimmed) {
			return false
		}
	}

	if keyValuePattern.MatchString(trimmed) && !strings.ContainsAny(trimmed, ".!?") {
		return false
	}

	// Short ALL CAPS lines are headings, not prose.
	if trimmed == strings.ToUpper(trimmed) && strings.ContainsAny(trimmed, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") && len(words) < 8 {
		return false
	}

	// Citation-heavy paragraphs (reference lists) are left alone.
	if len(citationPattern.FindAllString(trimmed, -1)) > len(words)*3/10 {
		return false
	}

	return true
}
