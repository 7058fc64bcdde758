// Package cache implements the evidence cache: a TTL-bounded store of
// ranked search results keyed by normalized claim text. Entries past
// the TTL are ignored on read, never proactively purged; concurrent
// writers for the same key are last-writer-wins by design.
package cache

import (
	"strings"
	"time"

	"github.com/claimsift/claimsift/internal/model"
)

// Entry is one cached pipeline result
type Entry struct {
	Timestamp time.Time             `json:"timestamp"`
	Results   []model.ScoredArticle `json:"results"`
}

// Fresh reports whether the entry is younger than ttl at the given time
func (e Entry) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.Timestamp) < ttl
}

// Store is the evidence cache interface. Get returns false for both
// absent and stale entries. Put must never fail the caller: storage
// errors degrade to a no-op.
type Store interface {
	Get(claimKey string) (Entry, bool)
	Put(claimKey string, results []model.ScoredArticle)
}

// Key normalizes claim text into its cache key (trimmed, lower-cased)
func Key(claimText string) string {
	return strings.ToLower(strings.TrimSpace(claimText))
}

// copyResults gives the cache (or the caller) its own slice so cached
// results never share mutable state with an in-flight computation
func copyResults(results []model.ScoredArticle) []model.ScoredArticle {
	if results == nil {
		return nil
	}
	out := make([]model.ScoredArticle, len(results))
	copy(out, results)
	return out
}
