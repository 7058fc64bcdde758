// Package pipeline wires the evidence-aggregation stages together:
// query generation, multi-source orchestration, aggregation, ranking,
// and the evidence cache. The coordinator never surfaces a hard
// failure; every error path degrades toward a usable result.
package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/claimsift/claimsift/internal/aggregate"
	"github.com/claimsift/claimsift/internal/cache"
	"github.com/claimsift/claimsift/internal/enrich"
	"github.com/claimsift/claimsift/internal/llm"
	"github.com/claimsift/claimsift/internal/model"
	"github.com/claimsift/claimsift/internal/provider"
	"github.com/claimsift/claimsift/internal/query"
	"github.com/claimsift/claimsift/internal/score"
	"github.com/claimsift/claimsift/internal/search"
)

// sleepFunc is the inter-query delay function (injectable for tests)
var sleepFunc = sleepCtx

// Orchestrator runs one query's multi-source sweep
type Orchestrator interface {
	SearchMultipleSources(ctx context.Context, query string) []search.Response
}

// Pipeline is the top-level coordinator for one verification request
type Pipeline struct {
	generator    *query.Generator
	orchestrator Orchestrator
	scorer       *score.Scorer
	store        cache.Store // nil when caching is disabled
	reranker     llm.Provider
	enricher     *enrich.Enricher // nil unless enrichment is enabled
	cfg          *model.Config
}

// NewPipeline assembles the pipeline from configuration. Missing
// provider or LLM credentials degrade the corresponding stage instead
// of failing construction.
func NewPipeline(cfg *model.Config) *Pipeline {
	var llmProvider llm.Provider
	if cfg.LLM.Provider != "" {
		p, err := llm.NewProvider(cfg.LLM)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			llmProvider = p
		}
	}

	var primary, secondary provider.Searcher
	if cfg.Providers.LangSearchAPIKey != "" {
		primary = provider.NewLangSearch(cfg.Providers, cfg.HTTP)
	}
	if cfg.Providers.TavilyAPIKey != "" {
		secondary = provider.NewTavily(cfg.Providers, cfg.HTTP)
	}
	chain := provider.NewChain(primary, secondary, provider.DefaultRetrySchedule(), cfg.Output.Verbose)

	var store cache.Store
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			dir = cache.DefaultDir()
		}
		store = cache.NewLayeredStore(dir, cfg.Cache.TTL)
	}

	var enricher *enrich.Enricher
	if cfg.Enrich.Enabled {
		enricher = enrich.NewEnricher(cfg.HTTP, cfg.Enrich)
	}

	var extractor query.KeywordExtractor
	if llmProvider != nil {
		extractor = llmProvider
	}

	var reranker llm.Provider
	if llmProvider != nil && cfg.LLM.Rerank {
		reranker = llmProvider
	}

	return &Pipeline{
		generator:    query.NewGenerator(extractor, cfg.Output.Verbose),
		orchestrator: search.NewOrchestrator(chain, cfg.Search, cfg.Output.Verbose),
		scorer:       score.NewScorer(&cfg.Sources),
		store:        store,
		reranker:     reranker,
		enricher:     enricher,
		cfg:          cfg,
	}
}

// ComprehensiveSearch runs the full pipeline for one claim and returns
// a ranked, non-empty evidence list. It never returns an error: total
// provider exhaustion yields a single typed degraded article.
func (p *Pipeline) ComprehensiveSearch(ctx context.Context, claim model.Claim, onStatus model.StatusFunc) []model.ScoredArticle {
	emit(onStatus, model.StatusSearching)

	claimKey := cache.Key(claim.Text)
	if p.store != nil {
		if entry, found := p.store.Get(claimKey); found {
			emit(onStatus, model.StatusDone)
			return entry.Results
		}
	}

	candidates := p.gatherCandidates(ctx, claim)

	emit(onStatus, model.StatusRanking)
	ranked := p.rank(ctx, claim, candidates)

	if len(ranked) == 0 {
		ranked = []model.ScoredArticle{degradedArticle(claim)}
	}

	if p.enricher != nil {
		ranked = p.enricher.Enrich(ctx, ranked)
	}

	if p.store != nil && !ranked[0].Degraded {
		p.store.Put(claimKey, ranked)
	}

	emit(onStatus, model.StatusDone)
	return ranked
}

// gatherCandidates runs generation and orchestration, degrading to a
// single direct sweep on the raw claim when anything goes wrong
func (p *Pipeline) gatherCandidates(ctx context.Context, claim model.Claim) (candidates []model.CandidateArticle) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Warning: search degraded after internal error: %v\n", r)
			candidates = aggregate.Merge(p.orchestrator.SearchMultipleSources(ctx, claim.Text))
		}
	}()

	queries := p.generator.Generate(ctx, claim)
	if len(queries) == 0 {
		return nil
	}

	maxQueries := p.cfg.Search.MaxQueries
	if maxQueries <= 0 || maxQueries > len(queries) {
		maxQueries = len(queries)
	}

	var responses []search.Response
	for i := 0; i < maxQueries; i++ {
		if ctx.Err() != nil {
			break
		}
		responses = append(responses, p.orchestrator.SearchMultipleSources(ctx, queries[i])...)
		if i < maxQueries-1 && p.cfg.Search.QueryDelay > 0 {
			sleepFunc(ctx, p.cfg.Search.QueryDelay)
		}
	}

	return aggregate.Merge(responses)
}

// rank applies the deterministic scorer, then the optional LLM
// re-ranker; re-ranker failures keep the deterministic order
func (p *Pipeline) rank(ctx context.Context, claim model.Claim, candidates []model.CandidateArticle) []model.ScoredArticle {
	ranked := p.scorer.Rank(candidates, claim)
	if p.reranker == nil || len(ranked) < 2 {
		return ranked
	}

	reranked, err := p.reranker.RerankArticles(ctx, claim, ranked)
	if err != nil {
		if p.cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "Warning: re-ranking failed, keeping deterministic order: %v\n", err)
		}
		return ranked
	}
	return reranked
}

// degradedArticle is the typed synthetic record returned when every
// provider strategy was exhausted, so callers never receive an empty
// evidence set
func degradedArticle(claim model.Claim) model.ScoredArticle {
	return model.ScoredArticle{
		CandidateArticle: model.CandidateArticle{
			Title: "No sources could be retrieved for this claim",
			Snippet: "All search providers were unavailable or returned no usable results. " +
				"The verdict engine should treat this claim as unverifiable from automated evidence.",
			URL:      "https://www.google.com/search?q=" + url.QueryEscape(claim.Text),
			Degraded: true,
		},
		Score: 0,
	}
}

func emit(onStatus model.StatusFunc, status model.SearchStatus) {
	if onStatus != nil {
		onStatus(status)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
