// Package search supplies external context snippets used to bias synonym
// choice. Failures and empty results never abort the pipeline: callers
// degrade to no context.
package search

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"parafrase/internal/substitute"
)

// Snippet is one ranked search result.
type Snippet struct {
	Title     string
	Text      string
	URL       string
	Relevance float64 // keyword-overlap percentage in [0,100]
}

// Provider returns ranked snippets for a keyword query.
type Provider interface {
	Search(ctx context.Context, keywords []string, maxResults int) ([]Snippet, error)
}

var relevanceWordRe = regexp.MustCompile(`\w+`)

// Relevance computes the fraction of query words present in content, as a
// percentage.
func Relevance(query, content string) float64 {
	queryWords := wordSet(query)
	if len(queryWords) == 0 {
		return 0
	}
	contentWords := wordSet(content)
	overlap := 0
	for w := range queryWords {
		if contentWords[w] {
			overlap++
		}
	}
	return float64(overlap) / float64(len(queryWords)) * 100
}

// SelectBest picks the snippet most useful as paraphrasing context: high
// relevance, moderate length, and not so similar to the original that it
// would reintroduce the text being rewritten.
func SelectBest(original string, snippets []Snippet) *Snippet {
	if len(snippets) == 0 {
		return nil
	}

	type scored struct {
		snippet Snippet
		score   float64
	}
	results := make([]scored, 0, len(snippets))
	for _, s := range snippets {
		lengthScore := float64(len(s.Text)) / 500 * 100
		if lengthScore > 100 {
			lengthScore = 100
		}
		similarity := substitute.Similarity(original, s.Text)
		score := s.Relevance*0.5 + lengthScore*0.2 + (100-similarity)*0.3
		results = append(results, scored{snippet: s, score: score})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].score > results[j].score })
	best := results[0].snippet
	return &best
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range relevanceWordRe.FindAllString(strings.ToLower(s), -1) {
		set[w] = true
	}
	return set
}
