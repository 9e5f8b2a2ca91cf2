// Package refine calls the external generative service to rewrite
// high-risk units, wrapping the call in adaptive rate-limiting, retry
// with exponential backoff, and a hard fallback to the locally
// substituted text.
package refine

import (
	"context"
	"math"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"parafrase/internal/logging"
	"parafrase/internal/types"
)

// =============================================================================
// REFINEMENT ADAPTER
// =============================================================================

// Options configures retry and timeout behavior.
type Options struct {
	MaxRetries  int           // retry attempts after the first call
	BaseDelay   time.Duration // backoff base, doubled per attempt
	CallTimeout time.Duration // per-call deadline
}

// DefaultOptions returns the adapter defaults.
func DefaultOptions() Options {
	return Options{
		MaxRetries:  3,
		BaseDelay:   2 * time.Second,
		CallTimeout: 60 * time.Second,
	}
}

// Input carries everything a refinement call needs.
type Input struct {
	Original   string               // unit text before local substitution
	LocalText  string               // locally substituted text, the fallback
	Level      int                  // escalation level 1..3
	Assessment types.RiskAssessment // drives level 2/3 prompt content
}

// Output is the refinement outcome. Skipped means the local text was
// returned unchanged because the service could not be reached.
type Output struct {
	Text    string
	Skipped bool
}

// Adapter performs rate-limited, retried refinement calls. It never
// returns an error: exhausted retries fall back to the local text.
type Adapter struct {
	gen     Generator
	limiter *RateLimiter
	opts    Options
	log     *zap.Logger
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewAdapter creates an adapter around gen. A nil limiter gets conservative
// defaults.
func NewAdapter(gen Generator, limiter *RateLimiter, opts Options) *Adapter {
	if limiter == nil {
		limiter = NewRateLimiter(2*time.Second, 500*time.Millisecond, 30*time.Second)
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = 2 * time.Second
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = 60 * time.Second
	}
	return &Adapter{
		gen:     gen,
		limiter: limiter,
		opts:    opts,
		log:     logging.Named("refine"),
		sleep:   sleepCtx,
	}
}

// Limiter exposes the shared rate limiter so concurrent workers can be
// built around a single instance.
func (a *Adapter) Limiter() *RateLimiter {
	return a.limiter
}

// Refine rewrites in.Original at the requested level. On any terminal
// failure the locally substituted text comes back with Skipped set.
func (a *Adapter) Refine(ctx context.Context, in Input) Output {
	if a.gen == nil || in.Level < 1 {
		return Output{Text: in.LocalText, Skipped: a.gen == nil && in.Level >= 1}
	}

	prompt := BuildPrompt(in.Original, in.Level, in.Assessment)
	params := ParamsForLevel(in.Level)

	var lastErr error
	for attempt := 0; attempt <= a.opts.MaxRetries; attempt++ {
		if err := a.limiter.Wait(ctx); err != nil {
			a.log.Debug("refinement cancelled while waiting on rate limiter",
				zap.Int("level", in.Level), zap.Error(err))
			return Output{Text: in.LocalText, Skipped: true}
		}

		raw, err := a.generate(ctx, prompt, params)
		if err == nil {
			cleaned := CleanResponse(raw)
			if cleaned == "" {
				err = errEmptyAfterCleaning
			} else {
				a.limiter.RecordSuccess()
				if attempt > 0 {
					a.log.Debug("refinement succeeded after retry",
						zap.Int("attempt", attempt+1), zap.Int("level", in.Level))
				}
				return Output{Text: cleaned}
			}
		}

		lastErr = err
		a.limiter.RecordFailure()

		if !isRetryable(err) && err != errEmptyAfterCleaning {
			a.log.Warn("refinement failed with non-retryable error, falling back to local text",
				zap.Int("level", in.Level), zap.Error(err))
			return Output{Text: in.LocalText, Skipped: true}
		}

		if attempt < a.opts.MaxRetries {
			backoff := backoffDelay(a.opts.BaseDelay, attempt)
			a.log.Debug("refinement attempt failed, backing off",
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", backoff),
				zap.Error(err))
			if serr := a.sleep(ctx, backoff); serr != nil {
				return Output{Text: in.LocalText, Skipped: true}
			}
		}
	}

	a.log.Warn("refinement retries exhausted, falling back to local text",
		zap.Int("level", in.Level),
		zap.Int("attempts", a.opts.MaxRetries+1),
		zap.Error(lastErr))
	return Output{Text: in.LocalText, Skipped: true}
}

// generate runs one bounded generation call.
func (a *Adapter) generate(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.opts.CallTimeout)
	defer cancel()
	return a.gen.Generate(callCtx, prompt, params)
}

// backoffDelay computes base * 2^attempt, capped at 60s.
func backoffDelay(base time.Duration, attempt int) time.Duration {
	d := float64(base) * math.Pow(2, float64(attempt))
	if max := float64(60 * time.Second); d > max {
		d = max
	}
	return time.Duration(d)
}

var errEmptyAfterCleaning = &refineError{"response empty after cleaning"}

type refineError struct{ msg string }

func (e *refineError) Error() string { return e.msg }

// =============================================================================
// RESPONSE CLEANING
// =============================================================================

var (
	boldPattern   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern = regexp.MustCompile(`\*(.*?)\*`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

// CleanResponse strips markdown emphasis and instructional scaffolding the
// model sometimes echoes back, then collapses whitespace into one line.
func CleanResponse(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = boldPattern.ReplaceAllString(cleaned, "$1")
	cleaned = italicPattern.ReplaceAllString(cleaned, "$1")

	var content []string
	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Scaffolding labels are emitted in caps, so the prefix check is
		// case-sensitive. "Hasil penelitian ..." is real prose and stays.
		if strings.HasPrefix(line, "PARAFRASE") ||
			strings.HasPrefix(line, "HASIL") ||
			strings.HasPrefix(line, "TARGET") {
			continue
		}
		if upper := strings.ToUpper(line); line == upper && hasLetter(line) {
			// All-caps lines are prompt scaffolding, not content.
			continue
		}
		content = append(content, line)
	}

	return spacePattern.ReplaceAllString(strings.Join(content, " "), " ")
}

func hasLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
