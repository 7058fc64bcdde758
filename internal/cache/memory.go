package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/claimsift/claimsift/internal/model"
)

// MemoryStore is the in-process layer of the evidence cache. Entries
// are stored without go-cache expiration; staleness is decided on read
// against the configured TTL, so stale entries linger but are ignored.
type MemoryStore struct {
	cache   *gocache.Cache
	ttl     time.Duration
	nowFunc func() time.Time
}

// NewMemoryStore creates a memory store with the given TTL
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		cache:   gocache.New(gocache.NoExpiration, 0),
		ttl:     ttl,
		nowFunc: time.Now,
	}
}

// Get returns a fresh entry for the claim key, or false
func (s *MemoryStore) Get(claimKey string) (Entry, bool) {
	val, found := s.cache.Get(claimKey)
	if !found {
		return Entry{}, false
	}
	entry, ok := val.(Entry)
	if !ok || !entry.Fresh(s.nowFunc(), s.ttl) {
		return Entry{}, false
	}
	entry.Results = copyResults(entry.Results)
	return entry, true
}

// Put stores results under the claim key, replacing any prior entry
func (s *MemoryStore) Put(claimKey string, results []model.ScoredArticle) {
	s.PutEntry(claimKey, Entry{
		Timestamp: s.nowFunc(),
		Results:   results,
	})
}

// PutEntry stores an entry verbatim, keeping its original timestamp.
// Used when promoting disk hits so the TTL clock is not restarted.
func (s *MemoryStore) PutEntry(claimKey string, entry Entry) {
	entry.Results = copyResults(entry.Results)
	s.cache.Set(claimKey, entry, gocache.NoExpiration)
}
