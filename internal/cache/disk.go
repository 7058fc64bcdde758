package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/claimsift/claimsift/internal/model"
)

// storeFileName matches the key the browser build of this tool uses
// for its local persistent store
const storeFileName = "verify_news_search_cache.json"

// DiskStore persists the evidence cache as a single JSON file mapping
// normalized claim text to entries. The read-modify-write on Put is
// deliberately non-atomic: verification results for identical claim
// text are expected to converge, so last writer wins.
type DiskStore struct {
	path    string
	ttl     time.Duration
	nowFunc func() time.Time
}

// NewDiskStore creates a disk store rooted at dir
func NewDiskStore(dir string, ttl time.Duration) *DiskStore {
	return &DiskStore{
		path:    filepath.Join(dir, storeFileName),
		ttl:     ttl,
		nowFunc: time.Now,
	}
}

// Get returns a fresh entry for the claim key, or false. Stale entries
// stay in the file and are simply ignored.
func (s *DiskStore) Get(claimKey string) (Entry, bool) {
	entries := s.load()
	entry, found := entries[claimKey]
	if !found || !entry.Fresh(s.nowFunc(), s.ttl) {
		return Entry{}, false
	}
	return entry, true
}

// Put stores results under the claim key. Any storage failure (quota,
// permissions, unwritable dir) degrades to a no-op.
func (s *DiskStore) Put(claimKey string, results []model.ScoredArticle) {
	entries := s.load()
	entries[claimKey] = Entry{
		Timestamp: s.nowFunc(),
		Results:   copyResults(results),
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return
	}
	_ = os.WriteFile(s.path, data, 0644)
}

// load reads the store file, tolerating absence and corruption
func (s *DiskStore) load() map[string]Entry {
	entries := make(map[string]Entry)
	data, err := os.ReadFile(s.path)
	if err != nil {
		return entries
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return make(map[string]Entry)
	}
	return entries
}
