// Package router maps risk and complexity to a processing method and an
// escalation level. Routing is a pure function of its inputs: identical
// assessments always produce identical decisions.
package router

import (
	"parafrase/internal/types"
)

// Level thresholds. Crossing a boundary strictly increases the level;
// scores within one band share a level.
const (
	level3Threshold = 0.70 // deep restructuring
	level2Threshold = 0.50 // pattern-specific refinement
	level1Threshold = 0.30 // basic refinement
)

// Balanced-mode selection probability parameters.
const (
	balancedBase            = 0.50
	balancedComplexityBonus = 0.20
	balancedPatternBonus    = 0.15
	balancedLengthBonus     = 0.10
	balancedLongUnitWords   = 50
)

// Route returns the decision for a risk assessment. withContext controls
// whether search context is attached; it is an independent input, never
// derived from the risk score.
func Route(a types.RiskAssessment, withContext bool) types.RoutingDecision {
	level := LevelFor(a.Score)
	return types.RoutingDecision{Method: MethodFor(level > 0, withContext), Level: level}
}

// LevelFor maps a risk score to its escalation level.
func LevelFor(score float64) int {
	switch {
	case score >= level3Threshold:
		return 3
	case score >= level2Threshold:
		return 2
	case score >= level1Threshold:
		return 1
	default:
		return 0
	}
}

// RouteBalanced implements the secondary routing mode: an approximately even
// split between local-only and AI-assisted units across a batch. Selection
// is probabilistic against a deterministic per-index fraction so a batch is
// reproducible; the aggregate split is best-effort, not a hard invariant.
func RouteBalanced(a types.RiskAssessment, wordCount, unitIndex int, hasPriorityPattern, withContext bool) types.RoutingDecision {
	p := balancedBase
	if a.Complexity > 0.5 {
		p += balancedComplexityBonus
	}
	if hasPriorityPattern {
		p += balancedPatternBonus
	}
	if wordCount > balancedLongUnitWords {
		p += balancedLengthBonus
	}
	if p > 1 {
		p = 1
	}

	if indexFraction(unitIndex) < p {
		level := LevelFor(a.Score)
		if level == 0 {
			level = 1
		}
		return types.RoutingDecision{Method: MethodFor(true, withContext), Level: level}
	}
	return types.RoutingDecision{Method: MethodFor(false, withContext), Level: 0}
}

// indexFraction is the deterministic stand-in for a random draw: spreading
// (index*7) mod 100 over [0,1) approximates a uniform selection while
// keeping batches reproducible.
func indexFraction(index int) float64 {
	if index < 0 {
		index = -index
	}
	return float64(index*7%100) / 100.0
}

// MethodFor maps the refinement and context flags to a processing method.
func MethodFor(refine, withContext bool) types.Method {
	switch {
	case refine && withContext:
		return types.MethodLocalRefinedWithContext
	case refine:
		return types.MethodLocalRefined
	case withContext:
		return types.MethodLocalWithContext
	default:
		return types.MethodLocalOnly
	}
}
