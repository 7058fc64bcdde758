package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/claimsift/claimsift/internal/model"
)

func sampleResults() []model.ScoredArticle {
	return []model.ScoredArticle{
		{
			CandidateArticle: model.CandidateArticle{
				Title:   "Recall confirmed",
				Snippet: "snippet",
				URL:     "https://reuters.com/story",
			},
			Score: 87,
		},
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Company X Recalls Vehicles", "company x recalls vehicles"},
		{"  padded claim  ", "padded claim"},
		{"MiXeD CaSe", "mixed case"},
	}
	for _, tt := range tests {
		if got := Key(tt.in); got != tt.want {
			t.Errorf("Key(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMemoryStore_PutGet(t *testing.T) {
	s := NewMemoryStore(24 * time.Hour)

	if _, found := s.Get("missing"); found {
		t.Error("Expected miss for absent key")
	}

	s.Put("claim", sampleResults())
	entry, found := s.Get("claim")
	if !found {
		t.Fatal("Expected hit after Put")
	}
	if len(entry.Results) != 1 || entry.Results[0].Score != 87 {
		t.Errorf("Unexpected cached results: %+v", entry.Results)
	}
}

func TestMemoryStore_StaleEntryIgnored(t *testing.T) {
	s := NewMemoryStore(24 * time.Hour)
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	s.nowFunc = func() time.Time { return now }

	s.Put("claim", sampleResults())

	// Just inside the TTL
	s.nowFunc = func() time.Time { return now.Add(24*time.Hour - time.Minute) }
	if _, found := s.Get("claim"); !found {
		t.Error("Expected hit just inside the TTL")
	}

	// Past the TTL the entry is ignored, not purged
	s.nowFunc = func() time.Time { return now.Add(24*time.Hour + time.Minute) }
	if _, found := s.Get("claim"); found {
		t.Error("Expected stale entry treated as miss")
	}
	if _, stored := s.cache.Get("claim"); !stored {
		t.Error("Expected stale entry to remain in the underlying cache")
	}
}

func TestMemoryStore_ResultsAreCopied(t *testing.T) {
	s := NewMemoryStore(24 * time.Hour)
	results := sampleResults()
	s.Put("claim", results)

	results[0].Score = 1

	entry, found := s.Get("claim")
	if !found {
		t.Fatal("Expected hit")
	}
	if entry.Results[0].Score != 87 {
		t.Errorf("Cached results shared state with caller: %+v", entry.Results[0])
	}

	entry.Results[0].Score = 2
	again, _ := s.Get("claim")
	if again.Results[0].Score != 87 {
		t.Error("Returned results shared state with the cache")
	}
}

func TestDiskStore_PutGet(t *testing.T) {
	dir := t.TempDir()
	s := NewDiskStore(dir, 24*time.Hour)

	s.Put("claim", sampleResults())

	if _, err := os.Stat(filepath.Join(dir, storeFileName)); err != nil {
		t.Fatalf("Expected store file to exist: %v", err)
	}

	entry, found := s.Get("claim")
	if !found {
		t.Fatal("Expected hit after Put")
	}
	if entry.Results[0].URL != "https://reuters.com/story" {
		t.Errorf("Unexpected cached entry: %+v", entry)
	}

	// A fresh store over the same dir sees the persisted entry
	reopened := NewDiskStore(dir, 24*time.Hour)
	if _, found := reopened.Get("claim"); !found {
		t.Error("Expected persisted entry visible to a new store")
	}
}

func TestDiskStore_StaleEntryIgnoredNotPurged(t *testing.T) {
	dir := t.TempDir()
	s := NewDiskStore(dir, 24*time.Hour)
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	s.nowFunc = func() time.Time { return now }

	s.Put("claim", sampleResults())

	s.nowFunc = func() time.Time { return now.Add(25 * time.Hour) }
	if _, found := s.Get("claim"); found {
		t.Error("Expected stale entry treated as miss")
	}
	if _, ok := s.load()["claim"]; !ok {
		t.Error("Expected stale entry to remain in the file")
	}
}

func TestDiskStore_WriteFailureIsNoOp(t *testing.T) {
	s := NewDiskStore(filepath.Join(string(os.PathSeparator), "proc", "claimsift-no-such-dir"), 24*time.Hour)

	// Must not panic or return an error surface
	s.Put("claim", sampleResults())

	if _, found := s.Get("claim"); found {
		t.Error("Expected miss after failed write")
	}
}

func TestDiskStore_CorruptFileTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, storeFileName), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	s := NewDiskStore(dir, 24*time.Hour)

	if _, found := s.Get("claim"); found {
		t.Error("Expected miss on corrupt store file")
	}

	// Writing over a corrupt file recovers it
	s.Put("claim", sampleResults())
	if _, found := s.Get("claim"); !found {
		t.Error("Expected hit after rewriting corrupt file")
	}
}

func TestLayeredStore_DiskHitPromotedWithOriginalTimestamp(t *testing.T) {
	dir := t.TempDir()
	s := NewLayeredStore(dir, 24*time.Hour)
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	s.memory.nowFunc = func() time.Time { return now }
	s.disk.nowFunc = func() time.Time { return now }

	// Seed only the disk layer
	s.disk.Put("claim", sampleResults())

	entry, found := s.Get("claim")
	if !found {
		t.Fatal("Expected disk hit through the layered store")
	}
	if !entry.Timestamp.Equal(now) {
		t.Errorf("Expected original timestamp, got %v", entry.Timestamp)
	}

	// The promoted copy must keep the disk timestamp so the TTL clock
	// does not restart
	later := now.Add(23 * time.Hour)
	s.memory.nowFunc = func() time.Time { return later }
	promoted, found := s.memory.Get("claim")
	if !found {
		t.Fatal("Expected promoted entry in memory")
	}
	if !promoted.Timestamp.Equal(now) {
		t.Errorf("Expected promotion to preserve timestamp %v, got %v", now, promoted.Timestamp)
	}

	expired := now.Add(25 * time.Hour)
	s.memory.nowFunc = func() time.Time { return expired }
	s.disk.nowFunc = func() time.Time { return expired }
	if _, found := s.Get("claim"); found {
		t.Error("Expected promoted entry to expire on the original clock")
	}
}

func TestLayeredStore_PutWritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	s := NewLayeredStore(dir, 24*time.Hour)

	s.Put("claim", sampleResults())

	if _, found := s.memory.Get("claim"); !found {
		t.Error("Expected entry in memory layer")
	}
	if _, found := s.disk.Get("claim"); !found {
		t.Error("Expected entry in disk layer")
	}
}

func TestEntry_Fresh(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	e := Entry{Timestamp: now}

	if !e.Fresh(now.Add(time.Hour), 24*time.Hour) {
		t.Error("Expected entry fresh inside TTL")
	}
	if e.Fresh(now.Add(24*time.Hour), 24*time.Hour) {
		t.Error("Expected entry stale at exactly the TTL")
	}
}
