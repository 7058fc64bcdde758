package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/claimsift/claimsift/internal/model"
	"github.com/claimsift/claimsift/internal/util"
)

// LangSearch is the primary search provider: HTTP POST with bearer
// token authorization.
type LangSearch struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
}

// NewLangSearch creates the primary provider adapter. The API key may
// be empty; Search then fails with ErrConfiguration.
func NewLangSearch(cfg model.ProvidersConfig, httpCfg model.HTTPConfig) *LangSearch {
	return &LangSearch{
		apiKey:   cfg.LangSearchAPIKey,
		endpoint: cfg.LangSearchEndpoint,
		// Per-attempt deadlines come from the retry schedule's context
		httpClient: util.NewHTTPClient(httpCfg, 0, 0),
		userAgent:  httpCfg.UserAgent,
		maxBytes:   httpCfg.MaxBodyBytes,
	}
}

// Name returns the provider identifier
func (p *LangSearch) Name() string { return "langsearch" }

type langSearchRequest struct {
	Query     string `json:"query"`
	Freshness string `json:"freshness"`
	Summary   bool   `json:"summary"`
	Count     int    `json:"count"`
}

// langSearchItem is one article in any of the response shapes
type langSearchItem struct {
	Name            string `json:"name"`
	Title           string `json:"title"`
	Snippet         string `json:"snippet"`
	Summary         string `json:"summary"`
	URL             string `json:"url"`
	DatePublished   string `json:"datePublished"`
	DateLastCrawled string `json:"dateLastCrawled"`
}

type langSearchWebPages struct {
	Value []langSearchItem `json:"value"`
}

// langSearchEnvelope covers the four documented response shapes. Which
// shape arrived is decided by pages(), in the documented priority
// order, not by runtime duck-typing.
type langSearchEnvelope struct {
	WebPages *langSearchWebPages `json:"webPages"`
	Data     *struct {
		WebPages *langSearchWebPages `json:"webPages"`
	} `json:"data"`
	Results []langSearchItem `json:"results"`
	Value   []langSearchItem `json:"value"`
}

// pages returns the first non-empty article list among the known
// shapes: webPages.value, data.webPages.value, results, value
func (e *langSearchEnvelope) pages() []langSearchItem {
	if e.WebPages != nil && len(e.WebPages.Value) > 0 {
		return e.WebPages.Value
	}
	if e.Data != nil && e.Data.WebPages != nil && len(e.Data.WebPages.Value) > 0 {
		return e.Data.WebPages.Value
	}
	if len(e.Results) > 0 {
		return e.Results
	}
	return e.Value
}

// Search issues one search request and normalizes the response
func (p *LangSearch) Search(ctx context.Context, query string) ([]model.CandidateArticle, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("langsearch: %w", ErrConfiguration)
	}

	body, err := json.Marshal(langSearchRequest{
		Query:     query,
		Freshness: "noLimit",
		Summary:   true,
		Count:     10,
	})
	if err != nil {
		return nil, newError(p.Name(), 0, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, newError(p.Name(), 0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
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

	var envelope langSearchEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, newError(p.Name(), 0, fmt.Errorf("decode response: %w", err))
	}

	items := envelope.pages()
	articles := make([]model.CandidateArticle, 0, len(items))
	for _, item := range items {
		articles = append(articles, normalizeLangSearchItem(item))
	}

	return keepValid(articles), nil
}

// normalizeLangSearchItem maps one provider-native record into the
// common article shape
func normalizeLangSearchItem(item langSearchItem) model.CandidateArticle {
	title := item.Name
	if title == "" {
		title = item.Title
	}
	return model.CandidateArticle{
		Title:       title,
		Snippet:     item.Snippet,
		URL:         item.URL,
		Summary:     item.Summary,
		PublishedAt: parseProviderTime(item.DatePublished),
		CrawledAt:   parseProviderTime(item.DateLastCrawled),
	}
}

// parseProviderTime parses provider timestamps, tolerating the common
// formats. Returns nil when absent or unparseable.
func parseProviderTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
