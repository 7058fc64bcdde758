package provider

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/claimsift/claimsift/internal/model"
	"github.com/claimsift/claimsift/internal/query"
)

// RetrySchedule is the pure configuration of the primary provider's
// retry loop: one per-attempt timeout per attempt. Later attempts get
// longer deadlines because they use simpler phrasings while the
// provider may still be recovering from transient load.
type RetrySchedule struct {
	Timeouts []time.Duration
}

// DefaultRetrySchedule returns the standard 3-attempt schedule
func DefaultRetrySchedule() RetrySchedule {
	return RetrySchedule{
		Timeouts: []time.Duration{5 * time.Second, 7 * time.Second, 9 * time.Second},
	}
}

// Attempts returns the number of configured attempts
func (s RetrySchedule) Attempts() int { return len(s.Timeouts) }

// retryState is the explicit state of the primary retry machine
type retryState int

const (
	stateIdle retryState = iota
	stateAttempting
	stateSucceeded
	stateExhausted
)

// Chain tries the primary provider with retries, then the secondary
// once. When both fail, the primary's error is returned so secondary
// failures never mask the root cause.
type Chain struct {
	primary   Searcher
	secondary Searcher
	schedule  RetrySchedule
	verbose   bool
}

// NewChain creates a fallback chain. Either provider may be nil
// (unconfigured); a fully nil chain fails with ErrConfiguration.
func NewChain(primary, secondary Searcher, schedule RetrySchedule, verbose bool) *Chain {
	if schedule.Attempts() == 0 {
		schedule = DefaultRetrySchedule()
	}
	return &Chain{primary: primary, secondary: secondary, schedule: schedule, verbose: verbose}
}

// Phrasings returns the distinct query phrasings used per primary
// attempt: cleaned query, keyword-only query, original verbatim.
// Duplicate phrasings collapse toward the verbatim form.
func Phrasings(rawQuery string) []string {
	cleaned := query.Normalize(rawQuery)
	keywords := query.KeywordQuery(rawQuery)
	if cleaned == "" {
		cleaned = rawQuery
	}
	if keywords == "" {
		keywords = cleaned
	}
	return []string{cleaned, keywords, rawQuery}
}

// Search runs the chain for one query
func (c *Chain) Search(ctx context.Context, rawQuery string) ([]model.CandidateArticle, error) {
	primaryErr := c.searchPrimary(ctx, rawQuery)
	if primaryErr.ok {
		return primaryErr.articles, nil
	}

	if c.secondary != nil {
		articles, err := c.secondary.Search(ctx, rawQuery)
		if err == nil {
			return articles, nil
		}
		if c.verbose {
			fmt.Fprintf(os.Stderr, "Warning: secondary provider failed: %v\n", err)
		}
	}

	if primaryErr.err != nil {
		return nil, primaryErr.err
	}
	return nil, fmt.Errorf("fallback chain: %w", ErrConfiguration)
}

type primaryOutcome struct {
	ok       bool
	articles []model.CandidateArticle
	err      error
}

// searchPrimary drives the retry state machine over the configured
// schedule, pairing attempt n with phrasing n
func (c *Chain) searchPrimary(ctx context.Context, rawQuery string) primaryOutcome {
	if c.primary == nil {
		return primaryOutcome{}
	}

	phrasings := Phrasings(rawQuery)
	state := stateIdle
	attempt := 0
	var lastErr error

	for state != stateSucceeded && state != stateExhausted {
		switch state {
		case stateIdle:
			state = stateAttempting

		case stateAttempting:
			phrasing := phrasings[attempt%len(phrasings)]
			attemptCtx, cancel := context.WithTimeout(ctx, c.schedule.Timeouts[attempt])
			articles, err := c.primary.Search(attemptCtx, phrasing)
			cancel()

			if err == nil {
				return primaryOutcome{ok: true, articles: articles}
			}
			if errors.Is(err, ErrConfiguration) {
				// No credential; retrying cannot help, and the chain
				// should not report this as the root cause.
				return primaryOutcome{}
			}
			lastErr = err
			if c.verbose {
				fmt.Fprintf(os.Stderr, "Warning: primary attempt %d/%d failed: %v\n",
					attempt+1, c.schedule.Attempts(), err)
			}

			attempt++
			if attempt >= c.schedule.Attempts() || ctx.Err() != nil {
				state = stateExhausted
			}
		}
	}

	return primaryOutcome{err: lastErr}
}
