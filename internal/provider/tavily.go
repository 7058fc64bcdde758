package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/claimsift/claimsift/internal/model"
	"github.com/claimsift/claimsift/internal/util"
)

// Tavily is the secondary search provider, used when the primary
// exhausts its retries.
type Tavily struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
}

// NewTavily creates the secondary provider adapter
func NewTavily(cfg model.ProvidersConfig, httpCfg model.HTTPConfig) *Tavily {
	return &Tavily{
		apiKey:     cfg.TavilyAPIKey,
		endpoint:   cfg.TavilyEndpoint,
		httpClient: util.NewHTTPClient(httpCfg, 0, 0),
		userAgent:  httpCfg.UserAgent,
		maxBytes:   httpCfg.MaxBodyBytes,
	}
}

// Name returns the provider identifier
func (p *Tavily) Name() string { return "tavily" }

type tavilyRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	IncludeAnswer bool   `json:"include_answer"`
	IncludeImages bool   `json:"include_images"`
	MaxResults    int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		URL     string `json:"url"`
	} `json:"results"`
}

// Search issues one search request and normalizes the response
// (content maps to the article snippet)
func (p *Tavily) Search(ctx context.Context, query string) ([]model.CandidateArticle, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("tavily: %w", ErrConfiguration)
	}

	body, err := json.Marshal(tavilyRequest{
		APIKey:        p.apiKey,
		Query:         query,
		SearchDepth:   "basic",
		IncludeAnswer: false,
		IncludeImages: false,
		MaxResults:    5,
	})
	if err != nil {
		return nil, newError(p.Name(), 0, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, newError(p.Name(), 0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, newError(p.Name(), 0, fmt.Errorf("request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newError(p.Name(), resp.StatusCode, fmt.Errorf("unexpected status: %s", resp.Status))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBytes))
	if err != nil {
		return nil, newError(p.Name(), 0, fmt.Errorf("read body: %w", err))
	}

	var decoded tavilyResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, newError(p.Name(), 0, fmt.Errorf("decode response: %w", err))
	}

	articles := make([]model.CandidateArticle, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		articles = append(articles, model.CandidateArticle{
			Title:   r.Title,
			Snippet: r.Content,
			URL:     r.URL,
		})
	}

	return keepValid(articles), nil
}
