// Package enrich optionally fetches top-ranked article pages to fill
// missing summary fields from visible page text. It honors robots.txt
// and per-host rate limits, and never lets a fetch failure affect the
// ranked list.
package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"github.com/claimsift/claimsift/internal/model"
	"github.com/claimsift/claimsift/internal/util"
	"github.com/claimsift/claimsift/internal/worker"
)

// summaryMaxChars caps the extracted summary length
const summaryMaxChars = 500

// Enricher fills empty article summaries from the articles' own pages
type Enricher struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	userAgent  string
	maxBytes   int64
	topK       int
}

// NewEnricher creates an enricher from configuration
func NewEnricher(httpCfg model.HTTPConfig, enrichCfg model.EnrichConfig) *Enricher {
	topK := enrichCfg.TopK
	if topK <= 0 {
		topK = 3
	}
	return &Enricher{
		httpClient: util.NewHTTPClient(httpCfg, httpCfg.Timeout, 3),
		robots:     util.NewRobotsChecker(httpCfg.UserAgent, httpCfg.Timeout),
		limiter:    worker.NewLimiter(1, 1),
		userAgent:  httpCfg.UserAgent,
		maxBytes:   httpCfg.MaxBodyBytes,
		topK:       topK,
	}
}

// Enrich fills empty Summary fields of the first topK articles that
// carry a URL. The input slice is returned with summaries filled in;
// every failure is silently skipped.
func (e *Enricher) Enrich(ctx context.Context, articles []model.ScoredArticle) []model.ScoredArticle {
	fetched := 0
	for i := range articles {
		if fetched >= e.topK {
			break
		}
		a := &articles[i]
		if a.URL == "" || a.Degraded || strings.TrimSpace(a.Summary) != "" {
			continue
		}
		fetched++

		allowed, crawlDelay, err := e.robots.CanFetch(ctx, a.URL)
		if err != nil || !allowed {
			continue
		}
		if err := e.limiter.WaitWithDelay(ctx, a.URL, crawlDelay); err != nil {
			break
		}

		summary, err := e.fetchSummary(ctx, a.URL)
		if err == nil && summary != "" {
			a.Summary = summary
		}
	}
	return articles
}

// fetchSummary downloads the page and extracts leading visible text
func (e *Enricher) fetchSummary(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	return ExtractSummary(string(body)), nil
}

// ExtractSummary pulls visible text out of an HTML document, skipping
// script/style/nav chrome, and truncates it to summaryMaxChars at a
// word boundary.
func ExtractSummary(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if buf.Len() > summaryMaxChars*2 {
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "header", "footer":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	text := strings.TrimSpace(buf.String())
	if len(text) <= summaryMaxChars {
		return text
	}
	cut := text[:summaryMaxChars]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "…"
}
