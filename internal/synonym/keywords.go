package synonym

import (
	"regexp"
	"sort"
	"strings"
)

// Indonesian stop words excluded from keyword extraction.
var stopWords = map[string]bool{
	"dan": true, "atau": true, "yang": true, "ini": true, "itu": true,
	"pada": true, "untuk": true, "dengan": true, "dalam": true, "dari": true,
	"ke": true, "di": true, "adalah": true, "akan": true, "dapat": true,
	"telah": true, "sudah": true, "belum": true, "masih": true,
	"hanya": true, "juga": true, "tidak": true, "bukan": true, "ada": true,
	"menjadi": true, "membuat": true, "seperti": true,
}

var keywordRe = regexp.MustCompile(`\w+`)

// ExtractKeywords returns the top-n most frequent non-stop-words of text,
// ordered by descending frequency with ties broken alphabetically so the
// result is deterministic.
func ExtractKeywords(text string, n int) []string {
	freq := make(map[string]int)
	for _, w := range keywordRe.FindAllString(strings.ToLower(text), -1) {
		if len(w) > 3 && !stopWords[w] {
			freq[w]++
		}
	}
	if len(freq) == 0 {
		return nil
	}

	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > n {
		words = words[:n]
	}
	return words
}

// IsStopWord reports whether w is a stop word.
func IsStopWord(w string) bool {
	return stopWords[strings.ToLower(w)]
}
