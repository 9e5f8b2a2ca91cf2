package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodString(t *testing.T) {
	tests := []struct {
		method Method
		want   string
	}{
		{MethodLocalOnly, "local_only"},
		{MethodLocalWithContext, "local_with_search_context"},
		{MethodLocalRefined, "local_plus_ai_refinement"},
		{MethodLocalRefinedWithContext, "local_plus_ai_refinement_with_search"},
		{MethodProtected, "protected_content"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.method.String())
	}
	assert.Contains(t, Method(99).String(), "unknown")
}

func TestMethodFlags(t *testing.T) {
	assert.False(t, MethodLocalOnly.UsesRefinement())
	assert.False(t, MethodLocalOnly.UsesContext())

	assert.False(t, MethodLocalWithContext.UsesRefinement())
	assert.True(t, MethodLocalWithContext.UsesContext())

	assert.True(t, MethodLocalRefined.UsesRefinement())
	assert.False(t, MethodLocalRefined.UsesContext())

	assert.True(t, MethodLocalRefinedWithContext.UsesRefinement())
	assert.True(t, MethodLocalRefinedWithContext.UsesContext())

	assert.False(t, MethodProtected.UsesRefinement())
	assert.False(t, MethodProtected.UsesContext())
}

func TestProgressRecordLifecycle(t *testing.T) {
	record := NewProgressRecord("job-1", "run-1", 3)

	assert.False(t, record.IsComplete())
	require.NoError(t, record.Validate(3))

	record.Complete(RewriteResult{Index: 0, Text: "satu"})
	record.Complete(RewriteResult{Index: 1, Text: "dua"})
	assert.False(t, record.IsComplete())

	record.Complete(RewriteResult{Index: 2, Text: "tiga"})
	assert.True(t, record.IsComplete())
	assert.Equal(t, "dua", record.Completed[1].Text)
	assert.False(t, record.UpdatedAt.Before(record.StartedAt))
}

func TestProgressRecordValidate(t *testing.T) {
	record := NewProgressRecord("job-1", "run-1", 3)
	assert.Error(t, record.Validate(4), "unit count mismatch")

	record.Complete(RewriteResult{Index: 7, Text: "di luar jangkauan"})
	assert.Error(t, record.Validate(3), "out-of-range index")
}

func TestSpanReasonString(t *testing.T) {
	assert.Equal(t, "heading", ReasonHeading.String())
	assert.Equal(t, "citation", ReasonCitation.String())
	assert.Equal(t, "label", ReasonLabel.String())
	assert.Equal(t, "caption", ReasonCaption.String())
	assert.Equal(t, "quote", ReasonQuote.String())
}

func TestRiskCategoryString(t *testing.T) {
	assert.Equal(t, "very_low", RiskVeryLow.String())
	assert.Equal(t, "low", RiskLow.String())
	assert.Equal(t, "medium", RiskMedium.String())
	assert.Equal(t, "high", RiskHigh.String())
	assert.Equal(t, "very_high", RiskVeryHigh.String())
	assert.Equal(t, "critical", RiskCritical.String())
}
