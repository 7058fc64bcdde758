package cache

import (
	"os"
	"path/filepath"
	"time"

	"github.com/claimsift/claimsift/internal/model"
)

// LayeredStore combines the memory and disk layers: reads check memory
// first and promote disk hits, writes go to both.
type LayeredStore struct {
	memory *MemoryStore
	disk   *DiskStore
}

// NewLayeredStore creates the standard two-layer evidence cache
func NewLayeredStore(dir string, ttl time.Duration) *LayeredStore {
	return &LayeredStore{
		memory: NewMemoryStore(ttl),
		disk:   NewDiskStore(dir, ttl),
	}
}

// DefaultDir returns the default on-disk cache location
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".claimsift-cache"
	}
	return filepath.Join(home, ".claimsift", "cache")
}

// Get checks memory, then disk, promoting disk hits to memory
func (s *LayeredStore) Get(claimKey string) (Entry, bool) {
	if entry, found := s.memory.Get(claimKey); found {
		return entry, true
	}
	if entry, found := s.disk.Get(claimKey); found {
		s.memory.PutEntry(claimKey, entry)
		return entry, true
	}
	return Entry{}, false
}

// Put stores results in both layers
func (s *LayeredStore) Put(claimKey string, results []model.ScoredArticle) {
	s.memory.Put(claimKey, results)
	s.disk.Put(claimKey, results)
}
