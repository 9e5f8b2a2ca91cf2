// Package types provides shared type definitions used across parafrase packages.
// This package exists to break import cycles between the pipeline, the scorers,
// and the persistence layer. Types here are foundational data structures with
// no complex dependencies.
package types

import (
	"fmt"
	"time"
)

// =============================================================================
// PROCESSING METHODS
// =============================================================================

// Method identifies how a text unit was (or will be) rewritten.
// The string labels are part of the reporting surface and must not change.
type Method int

const (
	// MethodLocalOnly - synonym substitution only, no external calls.
	MethodLocalOnly Method = iota
	// MethodLocalWithContext - local substitution biased by search snippets.
	MethodLocalWithContext
	// MethodLocalRefined - local substitution followed by AI refinement.
	MethodLocalRefined
	// MethodLocalRefinedWithContext - refinement plus search-context bias.
	MethodLocalRefinedWithContext
	// MethodProtected - the unit was protected content and passed through.
	MethodProtected
)

func (m Method) String() string {
	switch m {
	case MethodLocalOnly:
		return "local_only"
	case MethodLocalWithContext:
		return "local_with_search_context"
	case MethodLocalRefined:
		return "local_plus_ai_refinement"
	case MethodLocalRefinedWithContext:
		return "local_plus_ai_refinement_with_search"
	case MethodProtected:
		return "protected_content"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// UsesRefinement reports whether the method includes an AI refinement pass.
func (m Method) UsesRefinement() bool {
	return m == MethodLocalRefined || m == MethodLocalRefinedWithContext
}

// UsesContext reports whether the method includes search-context bias.
func (m Method) UsesContext() bool {
	return m == MethodLocalWithContext || m == MethodLocalRefinedWithContext
}

// =============================================================================
// TEXT UNITS AND PROTECTED SPANS
// =============================================================================

// SpanReason tags why a span of text must pass through unmodified.
type SpanReason int

const (
	ReasonHeading SpanReason = iota
	ReasonCitation
	ReasonLabel
	ReasonCaption
	ReasonQuote
)

func (r SpanReason) String() string {
	switch r {
	case ReasonHeading:
		return "heading"
	case ReasonCitation:
		return "citation"
	case ReasonLabel:
		return "label"
	case ReasonCaption:
		return "caption"
	case ReasonQuote:
		return "quote"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// ProtectedSpan is a half-open [Start, End) byte range within a TextUnit
// that must never be altered. Spans never overlap.
type ProtectedSpan struct {
	Start  int
	End    int
	Reason SpanReason
}

// TextUnit is an ordered, addressable segment of a document (a paragraph or
// sentence group). Immutable once created.
type TextUnit struct {
	Index     int
	Text      string
	Protected []ProtectedSpan
}

// =============================================================================
// ASSESSMENT AND ROUTING
// =============================================================================

// RiskCategory is the fixed band label derived from a risk score.
type RiskCategory int

const (
	RiskVeryLow RiskCategory = iota
	RiskLow
	RiskMedium
	RiskHigh
	RiskVeryHigh
	RiskCritical
)

func (c RiskCategory) String() string {
	switch c {
	case RiskCritical:
		return "critical"
	case RiskVeryHigh:
		return "very_high"
	case RiskHigh:
		return "high"
	case RiskMedium:
		return "medium"
	case RiskLow:
		return "low"
	default:
		return "very_low"
	}
}

// PatternMatch records one matched risk pattern and its category.
type PatternMatch struct {
	Category string `json:"category"`
	Pattern  string `json:"pattern"`
}

// RiskAssessment is the deterministic scoring result for one text unit.
type RiskAssessment struct {
	Score      float64 // composite risk in [0,1]
	Category   RiskCategory
	Matches    []PatternMatch
	Complexity float64 // independent complexity score in [0,1]
}

// RoutingDecision maps an assessment to a processing method and an
// escalation level in {0,1,2,3}.
type RoutingDecision struct {
	Method Method
	Level  int
}

// =============================================================================
// RESULTS AND PROGRESS
// =============================================================================

// RewriteResult is produced once per TextUnit and is immutable after the
// quality assessor accepts it.
type RewriteResult struct {
	Index             int     `json:"index"`
	Text              string  `json:"text"`
	Similarity        float64 `json:"similarity"`
	ChangesMade       int     `json:"changes_made"`
	Quality           float64 `json:"quality"`
	Method            string  `json:"method"`
	Level             int     `json:"level"`
	RefinementSkipped bool    `json:"refinement_skipped,omitempty"`
	SearchContext     string  `json:"search_context,omitempty"`
}

// ProgressRecord is the durable checkpoint for one document job. It is
// persisted after every completed unit so a crash loses at most the
// in-flight unit.
type ProgressRecord struct {
	JobID      string                `json:"job_id"`
	RunID      string                `json:"run_id"`
	TotalUnits int                   `json:"total_units"`
	Completed  map[int]RewriteResult `json:"completed"`
	StartedAt  time.Time             `json:"started_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// NewProgressRecord initializes an empty record for a job.
func NewProgressRecord(jobID, runID string, totalUnits int) *ProgressRecord {
	now := time.Now().UTC()
	return &ProgressRecord{
		JobID:      jobID,
		RunID:      runID,
		TotalUnits: totalUnits,
		Completed:  make(map[int]RewriteResult),
		StartedAt:  now,
		UpdatedAt:  now,
	}
}

// Complete stores a finished unit result and bumps the update time.
func (p *ProgressRecord) Complete(r RewriteResult) {
	p.Completed[r.Index] = r
	p.UpdatedAt = time.Now().UTC()
}

// IsComplete reports whether every unit index has a stored result.
func (p *ProgressRecord) IsComplete() bool {
	return len(p.Completed) >= p.TotalUnits
}

// Validate checks internal consistency. A record referencing a unit index
// out of range for the current document is corrupted progress.
func (p *ProgressRecord) Validate(totalUnits int) error {
	if p.TotalUnits != totalUnits {
		return fmt.Errorf("progress record covers %d units, document has %d", p.TotalUnits, totalUnits)
	}
	for idx := range p.Completed {
		if idx < 0 || idx >= totalUnits {
			return fmt.Errorf("progress record references unit %d out of range [0,%d)", idx, totalUnits)
		}
	}
	return nil
}
