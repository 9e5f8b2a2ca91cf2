// Package pipeline orchestrates the full rewrite flow for text units:
// suitability filtering, content protection, risk scoring, routing,
// local substitution, optional search context, optional refinement,
// and quality-gated escalation.
package pipeline

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"parafrase/internal/config"
	"parafrase/internal/filter"
	"parafrase/internal/logging"
	"parafrase/internal/protect"
	"parafrase/internal/quality"
	"parafrase/internal/refine"
	"parafrase/internal/risk"
	"parafrase/internal/router"
	"parafrase/internal/search"
	"parafrase/internal/substitute"
	"parafrase/internal/synonym"
	"parafrase/internal/types"
)

// =============================================================================
// PIPELINE
// =============================================================================

// Refiner is the refinement seam. The production implementation is
// *refine.Adapter; tests substitute their own.
type Refiner interface {
	Refine(ctx context.Context, in refine.Input) refine.Output
}

// Pipeline wires the processing stages together. All fields are set at
// construction and never mutated, so one Pipeline serves concurrent
// workers; per-unit state lives on the stack of each call.
type Pipeline struct {
	cfg      *config.Config
	engine   *substitute.Engine
	refiner  Refiner         // nil disables refinement
	searcher search.Provider // nil disables search context
	log      *zap.Logger

	stats Stats
}

// New creates a pipeline. refiner and searcher are optional.
func New(cfg *config.Config, res *synonym.Resource, refiner Refiner, searcher search.Provider) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		engine:   substitute.NewEngine(res),
		refiner:  refiner,
		searcher: searcher,
		log:      logging.Named("pipeline"),
	}
}

// Counters are the per-batch processing totals.
type Counters struct {
	LocalOnly          int
	AICallsByLevel     [4]int
	SearchQueries      int
	ContextEnhanced    int
	ProtectedUnits     int
	UnsuitableUnits    int
	Escalations        int
	RefinementsSkipped int
}

// Stats accumulates counters across units. Safe for concurrent update;
// read a consistent copy via Snapshot.
type Stats struct {
	mu sync.Mutex
	c  Counters
}

// Snapshot returns a consistent copy of the counters.
func (s *Stats) Snapshot() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c
}

func (s *Stats) update(fn func(c *Counters)) {
	s.mu.Lock()
	fn(&s.c)
	s.mu.Unlock()
}

// Stats exposes the pipeline's accumulated counters.
func (p *Pipeline) Stats() *Stats {
	return &p.stats
}

// ProcessUnit runs the full flow for one unit and always produces a
// result; failures in optional stages degrade to the local rewrite.
func (p *Pipeline) ProcessUnit(ctx context.Context, unit types.TextUnit) types.RewriteResult {
	text := unit.Text

	minWords := p.cfg.Processing.MinWords
	balanced := p.cfg.Processing.Mode == config.ModeBalanced
	if balanced {
		minWords = p.cfg.Processing.MinWordsBalanced
	}

	if len(unit.Protected) > 0 || !filter.Suitable(text, minWords) {
		p.stats.update(func(c *Counters) { c.UnsuitableUnits++ })
		return passthrough(unit)
	}

	spans := protect.ExtractSpans(text)
	if protect.IsFullyProtected(text, spans) {
		p.stats.update(func(c *Counters) { c.ProtectedUnits++ })
		return passthrough(unit)
	}

	assessment := risk.Assess(text)

	withContext := p.searcher != nil && p.cfg.Search.Enabled
	var decision types.RoutingDecision
	if balanced {
		wordCount := len(strings.Fields(text))
		decision = router.RouteBalanced(assessment, wordCount, unit.Index,
			risk.MatchesPriorityPattern(text), withContext)
	} else {
		decision = router.Route(assessment, withContext)
	}

	searchContext := ""
	if decision.Method.UsesContext() {
		searchContext = p.fetchContext(ctx, text)
	}

	result := p.rewrite(ctx, text, spans, assessment, decision, searchContext)

	// One quality-gated escalation per unit, capped at level 3.
	if result.Quality < p.cfg.Processing.QualityThreshold && decision.Level < 3 && p.refiner != nil {
		p.stats.update(func(c *Counters) { c.Escalations++ })

		escalated := decision
		escalated.Level++
		if escalated.Level >= 1 && !escalated.Method.UsesRefinement() {
			escalated.Method = router.MethodFor(true, decision.Method.UsesContext())
		}
		p.log.Debug("escalating unit after low quality score",
			zap.Int("index", unit.Index),
			zap.Float64("quality", result.Quality),
			zap.Int("from_level", decision.Level),
			zap.Int("to_level", escalated.Level))

		retry := p.rewrite(ctx, text, spans, assessment, escalated, searchContext)
		if retry.Quality > result.Quality {
			result = retry
		}
	}

	result.Index = unit.Index
	return result
}

// rewrite performs the substitution and optional refinement for one
// routing decision and scores the outcome.
func (p *Pipeline) rewrite(ctx context.Context, text string, spans []types.ProtectedSpan,
	assessment types.RiskAssessment, decision types.RoutingDecision, searchContext string) types.RewriteResult {

	local := p.engine.Rewrite(text, spans, searchContext)
	if searchContext != "" && local.ContextHits > 0 {
		p.stats.update(func(c *Counters) { c.ContextEnhanced++ })
	}

	finalText := local.Text
	skipped := false

	if decision.Level >= 1 && p.refiner != nil {
		out := p.refiner.Refine(ctx, refine.Input{
			Original:   text,
			LocalText:  local.Text,
			Level:      decision.Level,
			Assessment: assessment,
		})
		finalText = out.Text
		skipped = out.Skipped

		p.stats.update(func(c *Counters) {
			c.AICallsByLevel[decision.Level]++
			if skipped {
				c.RefinementsSkipped++
			}
		})
	} else {
		p.stats.update(func(c *Counters) { c.LocalOnly++ })
	}

	return types.RewriteResult{
		Text:              finalText,
		Similarity:        substitute.Similarity(text, finalText),
		ChangesMade:       local.Changes,
		Quality:           quality.Assess(text, finalText, local.Changes),
		Method:            decision.Method.String(),
		Level:             decision.Level,
		RefinementSkipped: skipped,
		SearchContext:     searchContext,
	}
}

// fetchContext queries the search provider for reference phrasing. Any
// failure just means no context; the unit still gets rewritten.
func (p *Pipeline) fetchContext(ctx context.Context, text string) string {
	keywords := synonym.ExtractKeywords(text, 5)
	if len(keywords) == 0 {
		return ""
	}

	searchCtx, cancel := context.WithTimeout(ctx, p.cfg.Search.Timeout)
	defer cancel()

	p.stats.update(func(c *Counters) { c.SearchQueries++ })

	snippets, err := p.searcher.Search(searchCtx, keywords, p.cfg.Search.MaxResults)
	if err != nil {
		p.log.Debug("search context unavailable", zap.Error(err))
		return ""
	}
	best := search.SelectBest(text, snippets)
	if best == nil {
		return ""
	}
	return best.Text
}

// passthrough returns a unit unchanged with full-similarity bookkeeping.
func passthrough(unit types.TextUnit) types.RewriteResult {
	return types.RewriteResult{
		Index:      unit.Index,
		Text:       unit.Text,
		Similarity: 100,
		Quality:    100,
		Method:     types.MethodProtected.String(),
	}
}
