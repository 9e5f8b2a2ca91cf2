package risk

import "strings"

// Complexity factor weights and normalization caps.
const (
	complexityLengthNorm   = 80.0 // words
	complexityCitationNorm = 2.0  // citations
	complexitySentenceNorm = 20.0 // avg words per sentence

	weightLength          = 0.25
	weightAcademicDensity = 0.35
	weightCitationCount   = 0.15
	weightPriorityRatio   = 0.15
	weightSentenceLength  = 0.10
)

// Complexity computes the independent complexity score in [0,1] used by
// balanced routing. Empty text scores 0.
func Complexity(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}
	lower := strings.ToLower(text)

	lengthScore := capOne(float64(len(words)) / complexityLengthNorm)

	academic := 0
	for _, w := range words {
		if academicWords[strings.Trim(strings.ToLower(w), ".,;:!?()\"'")] {
			academic++
		}
	}
	academicDensity := float64(academic) / float64(len(words))

	citations := 0
	for _, p := range citationShapes {
		citations += len(p.FindAllString(lower, -1))
	}
	citationScore := capOne(float64(citations) / complexityCitationNorm)

	priorityMatches := 0
	for _, p := range priorityPatterns {
		if p.MatchString(lower) {
			priorityMatches++
		}
	}
	priorityRatio := float64(priorityMatches) / float64(len(priorityPatterns))

	sentences := countSentences(text)
	avgSentenceLen := float64(len(words)) / float64(sentences)
	sentenceScore := capOne(avgSentenceLen / complexitySentenceNorm)

	score := lengthScore*weightLength +
		academicDensity*weightAcademicDensity +
		citationScore*weightCitationCount +
		priorityRatio*weightPriorityRatio +
		sentenceScore*weightSentenceLength

	return capOne(score)
}

// MatchesPriorityPattern reports whether any priority pattern matches.
// Balanced routing uses this as a selection-probability bonus.
func MatchesPriorityPattern(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range priorityPatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}

func countSentences(text string) int {
	n := 0
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			n++
		}
	}
	if n == 0 {
		return 1
	}
	return n
}

func capOne(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
