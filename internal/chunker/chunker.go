// Package chunker splits oversized inputs into sentence-bounded chunks and
// merges processed chunks back in order. Splitting never lands inside a
// word; the single documented exception is a lone sentence longer than the
// chunk budget, which becomes its own oversized chunk.
package chunker

import (
	"strings"
)

// Abbreviations that end with a period but do not end a sentence.
var abbreviations = []string{
	"dkk.", "et al.", "vol.", "no.", "hal.", "hlm.",
	"dr.", "prof.", "ir.", "st.", "mr.", "mrs.", "ms.",
	"fig.", "eq.", "cf.", "e.g.", "i.e.",
}

// SplitSentences divides text into sentences at '.', '!' or '?' followed by
// whitespace, keeping the terminator with its sentence. Common abbreviations
// do not terminate a sentence.
func SplitSentences(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	var sentences []string
	start := 0
	runes := []rune(trimmed)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		// Terminator must be followed by whitespace (or end of text).
		if i+1 < len(runes) && !isSpace(runes[i+1]) {
			continue
		}
		candidate := strings.TrimSpace(string(runes[start : i+1]))
		if r == '.' && endsWithAbbreviation(candidate) {
			continue
		}
		if candidate != "" {
			sentences = append(sentences, candidate)
		}
		// Skip trailing whitespace to the next sentence start.
		j := i + 1
		for j < len(runes) && isSpace(runes[j]) {
			j++
		}
		start = j
		i = j - 1
	}
	if start < len(runes) {
		if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
			sentences = append(sentences, rest)
		}
	}
	return sentences
}

// Split divides text into ordered chunks of at most maxChars, cutting only
// at sentence boundaries. A single sentence exceeding maxChars is returned
// as its own oversized chunk rather than being cut mid-word.
func Split(text string, maxChars int) []string {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var current strings.Builder
	for _, s := range sentences {
		switch {
		case current.Len() == 0:
			current.WriteString(s)
		case current.Len()+1+len(s) <= maxChars:
			current.WriteByte(' ')
			current.WriteString(s)
		default:
			chunks = append(chunks, current.String())
			current.Reset()
			current.WriteString(s)
		}
		// An oversized sentence flushes immediately as its own chunk.
		if current.Len() > maxChars {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// Merge concatenates processed chunks in original order with a single
// separating space, preserving each sentence boundary exactly once.
func Merge(chunks []string) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if t := strings.TrimSpace(c); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// Paragraphs splits a document into blank-line separated paragraphs with
// internal line breaks collapsed, preserving order.
func Paragraphs(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, block := range strings.Split(normalized, "\n\n") {
		p := strings.TrimSpace(strings.Join(strings.Fields(block), " "))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func endsWithAbbreviation(s string) bool {
	lower := strings.ToLower(s)
	for _, abbr := range abbreviations {
		if strings.HasSuffix(lower, abbr) {
			return true
		}
	}
	// Single-letter initials like "J." or numbered lists like "1."
	if len(lower) >= 2 && lower[len(lower)-1] == '.' {
		tail := lower[:len(lower)-1]
		if idx := strings.LastIndexAny(tail, " \t"); idx >= 0 {
			tail = tail[idx+1:]
		}
		if len(tail) == 1 {
			return true
		}
	}
	return false
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
