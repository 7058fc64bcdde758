package model

import (
	"net/url"
	"strings"
	"time"
)

// CandidateArticle is a normalized evidence record independent of the
// provider schema it came from. Adapters drop records whose title and
// snippet are both empty, and records with an unparseable URL.
type CandidateArticle struct {
	Title       string     `json:"title"`
	Snippet     string     `json:"snippet"`
	URL         string     `json:"url"`
	Summary     string     `json:"summary,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CrawledAt   *time.Time `json:"crawled_at,omitempty"`

	// Degraded marks the synthetic record returned when every provider
	// strategy was exhausted. Downstream consumers must not treat it as
	// a real source.
	Degraded bool `json:"degraded,omitempty"`
}

// Valid reports whether the article satisfies the adapter-boundary
// invariants: URL empty or syntactically valid, and at least one of
// title/snippet non-empty.
func (a CandidateArticle) Valid() bool {
	if a.Title == "" && a.Snippet == "" {
		return false
	}
	if a.URL == "" {
		return true
	}
	u, err := url.Parse(a.URL)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// Host returns the lower-cased URL host without port, or "" when the
// URL is absent or unparseable.
func (a CandidateArticle) Host() string {
	if a.URL == "" {
		return ""
	}
	u, err := url.Parse(a.URL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// ScoredArticle is a candidate article with its relevance score.
// Score is always >= 0.
type ScoredArticle struct {
	CandidateArticle
	Score int `json:"score"`
}

// SearchStatus is reported to the optional status callback as the
// pipeline progresses
type SearchStatus string

const (
	StatusSearching SearchStatus = "searching"
	StatusRanking   SearchStatus = "ranking"
	StatusDone      SearchStatus = "done"
)

// StatusFunc receives pipeline progress updates. A nil StatusFunc is
// always permitted.
type StatusFunc func(status SearchStatus)
