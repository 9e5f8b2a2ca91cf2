package substitute

import (
	"regexp"
	"strings"
)

var simWordRe = regexp.MustCompile(`\w+`)

// Similarity computes a symmetric lexical-overlap score in [0,100] between
// two texts; identical texts score 100. Blend: 40% word-set Jaccard, 40%
// word-sequence LCS ratio, 20% token-set overlap.
func Similarity(a, b string) float64 {
	if a == b {
		return 100.0
	}

	wordsA := simWordRe.FindAllString(strings.ToLower(a), -1)
	wordsB := simWordRe.FindAllString(strings.ToLower(b), -1)
	if len(wordsA) == 0 && len(wordsB) == 0 {
		return 100.0
	}
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0.0
	}

	jaccard := setJaccard(wordsA, wordsB)
	sequence := lcsRatio(wordsA, wordsB)
	tokens := setJaccard(strings.Fields(strings.ToLower(a)), strings.Fields(strings.ToLower(b)))

	return round2(jaccard*0.4 + sequence*0.4 + tokens*0.2)
}

func setJaccard(a, b []string) float64 {
	setA := make(map[string]bool, len(a))
	for _, w := range a {
		setA[w] = true
	}
	setB := make(map[string]bool, len(b))
	for _, w := range b {
		setB[w] = true
	}
	inter := 0
	for w := range setA {
		if setB[w] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 100.0
	}
	return float64(inter) / float64(union) * 100.0
}

// lcsRatio is the word-level analogue of difflib's sequence ratio:
// 2*LCS / (lenA + lenB).
func lcsRatio(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 100.0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	lcs := prev[len(b)]
	return 2.0 * float64(lcs) / float64(len(a)+len(b)) * 100.0
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
