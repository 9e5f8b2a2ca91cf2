package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"parafrase/internal/chunker"
	"parafrase/internal/progress"
	"parafrase/internal/types"
)

// =============================================================================
// DOCUMENT PROCESSING
// =============================================================================

// DocumentResult is the outcome of a batch document job.
type DocumentResult struct {
	JobID   string                `json:"job_id"`
	Text    string                `json:"text"`
	Units   []types.RewriteResult `json:"units"`
	Resumed bool                  `json:"resumed"`
}

// docUnit ties a processing unit back to its source paragraph so the
// document can be reassembled with original paragraph boundaries.
type docUnit struct {
	unit      types.TextUnit
	paragraph int
}

// splitDocument breaks a document into paragraph-bounded units. A
// paragraph larger than maxChunkChars is split at sentence boundaries
// into several units sharing the same paragraph number.
func splitDocument(text string, maxChunkChars int) []docUnit {
	var units []docUnit
	index := 0
	for p, para := range chunker.Paragraphs(text) {
		for _, chunk := range chunker.Split(para, maxChunkChars) {
			units = append(units, docUnit{
				unit:      types.TextUnit{Index: index, Text: chunk},
				paragraph: p,
			})
			index++
		}
	}
	return units
}

// assemble rebuilds the document from per-unit results, merging chunks
// of the same paragraph and separating paragraphs with blank lines.
func assemble(units []docUnit, results map[int]types.RewriteResult) string {
	var paragraphs []string
	var current []string
	lastPara := -1
	for _, du := range units {
		if du.paragraph != lastPara && len(current) > 0 {
			paragraphs = append(paragraphs, chunker.Merge(current))
			current = current[:0]
		}
		lastPara = du.paragraph
		current = append(current, results[du.unit.Index].Text)
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, chunker.Merge(current))
	}
	return strings.Join(paragraphs, "\n\n")
}

// ProcessDocument rewrites a whole document sequentially, persisting
// progress after every unit so an interrupted job resumes where it
// stopped. Units are processed one at a time to respect the refinement
// service's rate limit.
func (p *Pipeline) ProcessDocument(ctx context.Context, store progress.Store, documentText string) (*DocumentResult, error) {
	if max := p.cfg.Processing.MaxTextChars; max > 0 && len(documentText) > max {
		return nil, fmt.Errorf("document is %d chars, limit is %d", len(documentText), max)
	}

	units := splitDocument(documentText, p.cfg.Processing.MaxChunkChars)
	if len(units) == 0 {
		return nil, fmt.Errorf("document contains no processable text")
	}

	jobID := progress.JobID(documentText, p.cfg.Processing.Mode, p.cfg.Processing.MaxChunkChars)
	record, resumed, err := p.loadOrCreateRecord(store, jobID, len(units))
	if err != nil {
		return nil, err
	}

	p.log.Info("processing document",
		zap.String("job_id", jobID),
		zap.Int("units", len(units)),
		zap.Int("completed", len(record.Completed)),
		zap.Bool("resumed", resumed))

	for _, du := range units {
		if err := ctx.Err(); err != nil {
			// The record already holds every finished unit; a later run
			// picks up from here.
			return nil, fmt.Errorf("document job interrupted: %w", err)
		}
		if _, done := record.Completed[du.unit.Index]; done {
			continue
		}

		result := p.ProcessUnit(ctx, du.unit)
		record.Complete(result)

		if err := store.Save(record); err != nil {
			return nil, fmt.Errorf("persisting progress for unit %d: %w", du.unit.Index, err)
		}
	}

	res := &DocumentResult{
		JobID:   jobID,
		Text:    assemble(units, record.Completed),
		Resumed: resumed,
	}
	for _, du := range units {
		res.Units = append(res.Units, record.Completed[du.unit.Index])
	}
	return res, nil
}

// loadOrCreateRecord fetches the job's progress record, starting fresh
// when none exists or the stored record no longer matches the document.
func (p *Pipeline) loadOrCreateRecord(store progress.Store, jobID string, totalUnits int) (*types.ProgressRecord, bool, error) {
	record, err := store.Load(jobID)
	switch {
	case errors.Is(err, progress.ErrNotFound):
		return types.NewProgressRecord(jobID, uuid.NewString(), totalUnits), false, nil
	case errors.Is(err, progress.ErrCorrupt):
		p.log.Warn("discarding corrupted progress record", zap.String("job_id", jobID))
		if derr := store.Delete(jobID); derr != nil {
			return nil, false, fmt.Errorf("deleting corrupted record: %w", derr)
		}
		return types.NewProgressRecord(jobID, uuid.NewString(), totalUnits), false, nil
	case err != nil:
		return nil, false, fmt.Errorf("loading progress for job %s: %w", jobID, err)
	}

	if verr := record.Validate(totalUnits); verr != nil {
		p.log.Warn("stored progress does not match document, restarting",
			zap.String("job_id", jobID), zap.Error(verr))
		if derr := store.Delete(jobID); derr != nil {
			return nil, false, fmt.Errorf("deleting stale record: %w", derr)
		}
		return types.NewProgressRecord(jobID, uuid.NewString(), totalUnits), false, nil
	}
	return record, len(record.Completed) > 0, nil
}
