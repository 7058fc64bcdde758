// Package search implements the multi-source orchestrator: one query
// fanned out over a fixed sequence of site-scoped sub-queries with a
// circuit breaker and an early-exit policy. Bounded effort, not
// exhaustive coverage.
package search

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/claimsift/claimsift/internal/model"
)

// sleepFunc is the delay function between sub-queries (injectable for tests)
var sleepFunc = sleepCtx

// Chain runs one sub-query through the provider fallback chain
type Chain interface {
	Search(ctx context.Context, query string) ([]model.CandidateArticle, error)
}

// Response is the result of one successful sub-query
type Response struct {
	SubQuery string
	Articles []model.CandidateArticle
}

// Orchestrator sweeps one query across general and site-scoped
// sub-queries
type Orchestrator struct {
	chain   Chain
	cfg     model.SearchConfig
	limiter *rate.Limiter
	verbose bool
}

// NewOrchestrator creates an orchestrator over the given chain
func NewOrchestrator(chain Chain, cfg model.SearchConfig, verbose bool) *Orchestrator {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	return &Orchestrator{
		chain:   chain,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		verbose: verbose,
	}
}

// SubQueries returns the fixed sub-query sequence for a query: the
// general form followed by one site-scoped variant per configured
// domain.
func (o *Orchestrator) SubQueries(query string) []string {
	out := []string{query}
	for _, domain := range o.cfg.SiteDomains {
		out = append(out, fmt.Sprintf("%s site:%s", query, domain))
	}
	return out
}

// SearchMultipleSources runs the sweep for one query. It stops early
// after EarlySuccesses successful sub-queries, and aborts the sweep
// after BreakerThreshold consecutive failures, returning whatever was
// collected either way.
func (o *Orchestrator) SearchMultipleSources(ctx context.Context, query string) []Response {
	var collected []Response
	consecutiveFailures := 0

	subQueries := o.SubQueries(query)
	for i, subQuery := range subQueries {
		if ctx.Err() != nil {
			break
		}
		if err := o.limiter.Wait(ctx); err != nil {
			break
		}

		articles, err := o.chain.Search(ctx, subQuery)
		if err != nil {
			consecutiveFailures++
			if o.verbose {
				fmt.Fprintf(os.Stderr, "Warning: sub-query failed (%d consecutive): %v\n",
					consecutiveFailures, err)
			}
			if consecutiveFailures >= o.cfg.BreakerThreshold {
				// Circuit breaker: the provider is struggling, stop
				// burning sub-queries on this query.
				break
			}
		} else {
			consecutiveFailures = 0
			collected = append(collected, Response{SubQuery: subQuery, Articles: articles})
			if len(collected) >= o.cfg.EarlySuccesses {
				break
			}
		}

		// Fixed pause between sub-queries regardless of outcome, to
		// stay clear of provider rate limits.
		if i < len(subQueries)-1 && o.cfg.SubQueryDelay > 0 {
			sleepFunc(ctx, o.cfg.SubQueryDelay)
		}
	}

	return collected
}

func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
