// Package risk scores text units for detection risk and structural
// complexity. Both scorers are pure and total: they never fail, and
// identical input always yields identical output.
package risk

import (
	"regexp"
	"strings"

	"parafrase/internal/types"
)

// Category weights. The composite score is the weighted count of matches
// per category, clamped to [0,1].
const (
	weightAcademicTemplate    = 0.30
	weightTechnicalDefinition = 0.25
	weightCitationShape       = 0.20
	weightMethodology         = 0.15
	weightDomainTerm          = 0.10

	// Domain terms alone should never push a unit past the refinement
	// threshold; their contribution is capped.
	domainContributionCap = 0.40
)

// Assess computes the composite risk for a text unit. Empty or unmatched
// text yields score 0, category very_low.
func Assess(text string) types.RiskAssessment {
	lower := strings.ToLower(text)

	var score float64
	var matches []types.PatternMatch

	score += scan(lower, academicTemplates, "academic_template", weightAcademicTemplate, &matches)
	score += scan(lower, technicalDefinitions, "technical_definition", weightTechnicalDefinition, &matches)
	score += scan(lower, citationShapes, "citation", weightCitationShape, &matches)
	score += scan(lower, methodologyPhrases, "methodology", weightMethodology, &matches)

	if contribution, count := domainDensity(lower); count > 0 {
		score += contribution
		matches = append(matches, types.PatternMatch{Category: "domain_terms", Pattern: "domain vocabulary"})
	}

	if score > 1.0 {
		score = 1.0
	}

	return types.RiskAssessment{
		Score:      score,
		Category:   Categorize(score),
		Matches:    matches,
		Complexity: Complexity(text),
	}
}

func scan(lower string, patterns []*regexp.Regexp, category string, weight float64, matches *[]types.PatternMatch) float64 {
	var total float64
	for _, p := range patterns {
		if p.MatchString(lower) {
			total += weight
			*matches = append(*matches, types.PatternMatch{Category: category, Pattern: p.String()})
		}
	}
	return total
}

func domainDensity(lower string) (float64, int) {
	count := 0
	for _, term := range domainTerms {
		if strings.Contains(term, " ") {
			if strings.Contains(lower, term) {
				count++
			}
		} else if containsWord(lower, term) {
			count++
		}
	}
	contribution := weightDomainTerm * float64(count)
	if contribution > domainContributionCap {
		contribution = domainContributionCap
	}
	return contribution, count
}

func containsWord(lower, term string) bool {
	idx := 0
	for {
		i := strings.Index(lower[idx:], term)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(term)
		beforeOK := start == 0 || !isWordByte(lower[start-1])
		afterOK := end == len(lower) || !isWordByte(lower[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// Categorize maps a score to its fixed band label.
func Categorize(score float64) types.RiskCategory {
	switch {
	case score >= 0.90:
		return types.RiskCritical
	case score >= 0.70:
		return types.RiskVeryHigh
	case score >= 0.50:
		return types.RiskHigh
	case score >= 0.30:
		return types.RiskMedium
	case score >= 0.10:
		return types.RiskLow
	default:
		return types.RiskVeryLow
	}
}
