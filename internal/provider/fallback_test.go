package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/claimsift/claimsift/internal/model"
)

type scriptedSearcher struct {
	name     string
	articles []model.CandidateArticle
	errs     []error
	calls    int
	queries  []string
}

func (s *scriptedSearcher) Name() string { return s.name }

func (s *scriptedSearcher) Search(ctx context.Context, query string) ([]model.CandidateArticle, error) {
	idx := s.calls
	s.calls++
	s.queries = append(s.queries, query)
	if idx < len(s.errs) && s.errs[idx] != nil {
		return nil, s.errs[idx]
	}
	return s.articles, nil
}

func fastSchedule() RetrySchedule {
	return RetrySchedule{Timeouts: []time.Duration{time.Second, time.Second, time.Second}}
}

func TestChain_PrimarySucceedsFirstAttempt(t *testing.T) {
	primary := &scriptedSearcher{
		name:     "primary",
		articles: []model.CandidateArticle{{Title: "hit", URL: "https://example.com"}},
	}
	secondary := &scriptedSearcher{name: "secondary"}
	chain := NewChain(primary, secondary, fastSchedule(), false)

	articles, err := chain.Search(context.Background(), "vehicle recall news")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(articles))
	}
	if primary.calls != 1 {
		t.Errorf("Expected 1 primary call, got %d", primary.calls)
	}
	if secondary.calls != 0 {
		t.Errorf("Expected secondary untouched, got %d calls", secondary.calls)
	}
}

func TestChain_RetriesWithDistinctPhrasings(t *testing.T) {
	failure := newError("primary", 503, errors.New("unavailable"))
	primary := &scriptedSearcher{
		name: "primary",
		errs: []error{failure, failure, failure},
	}
	chain := NewChain(primary, nil, fastSchedule(), false)

	raw := "Company X, recalls vehicles!"
	_, err := chain.Search(context.Background(), raw)
	if err == nil {
		t.Fatal("Expected error when all attempts fail")
	}
	if primary.calls != 3 {
		t.Fatalf("Expected 3 primary attempts, got %d", primary.calls)
	}

	want := Phrasings(raw)
	for i, q := range primary.queries {
		if q != want[i] {
			t.Errorf("Attempt %d used %q, want %q", i+1, q, want[i])
		}
	}
	// Last attempt must be the verbatim query
	if primary.queries[2] != raw {
		t.Errorf("Expected verbatim query on final attempt, got %q", primary.queries[2])
	}
}

func TestChain_PrimaryEmptySuccessDoesNotFallBack(t *testing.T) {
	primary := &scriptedSearcher{name: "primary"} // succeeds with zero results
	secondary := &scriptedSearcher{
		name:     "secondary",
		articles: []model.CandidateArticle{{Title: "should not appear", URL: "https://example.com"}},
	}
	chain := NewChain(primary, secondary, fastSchedule(), false)

	articles, err := chain.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("Expected empty success to stand, got %d articles", len(articles))
	}
	if secondary.calls != 0 {
		t.Errorf("Expected secondary untouched after primary success, got %d calls", secondary.calls)
	}
}

func TestChain_FallsBackToSecondary(t *testing.T) {
	failure := newError("primary", 500, errors.New("boom"))
	primary := &scriptedSearcher{name: "primary", errs: []error{failure, failure, failure}}
	secondary := &scriptedSearcher{
		name:     "secondary",
		articles: []model.CandidateArticle{{Title: "backup", URL: "https://example.com/b"}},
	}
	chain := NewChain(primary, secondary, fastSchedule(), false)

	articles, err := chain.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(articles) != 1 || articles[0].Title != "backup" {
		t.Errorf("Expected secondary results, got %+v", articles)
	}
	if secondary.calls != 1 {
		t.Errorf("Expected 1 secondary call, got %d", secondary.calls)
	}
}

func TestChain_PrimaryErrorSurvivesSecondaryFailure(t *testing.T) {
	primaryErr := newError("primary", 500, errors.New("primary down"))
	secondaryErr := newError("secondary", 401, errors.New("bad key"))
	primary := &scriptedSearcher{name: "primary", errs: []error{primaryErr, primaryErr, primaryErr}}
	secondary := &scriptedSearcher{name: "secondary", errs: []error{secondaryErr}}
	chain := NewChain(primary, secondary, fastSchedule(), false)

	_, err := chain.Search(context.Background(), "q")
	if err == nil {
		t.Fatal("Expected error when both providers fail")
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("Expected *Error, got %T", err)
	}
	if perr.Provider != "primary" {
		t.Errorf("Expected primary's error to surface, got provider %q", perr.Provider)
	}
}

func TestChain_ConfigurationErrorSkipsRetries(t *testing.T) {
	primary := &scriptedSearcher{
		name: "primary",
		errs: []error{fmt.Errorf("langsearch: %w", ErrConfiguration)},
	}
	secondary := &scriptedSearcher{
		name:     "secondary",
		articles: []model.CandidateArticle{{Title: "backup", URL: "https://example.com/b"}},
	}
	chain := NewChain(primary, secondary, fastSchedule(), false)

	articles, err := chain.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if primary.calls != 1 {
		t.Errorf("Expected a single primary attempt for a configuration error, got %d", primary.calls)
	}
	if len(articles) != 1 {
		t.Errorf("Expected secondary results, got %d", len(articles))
	}
}

func TestChain_AllUnconfigured(t *testing.T) {
	chain := NewChain(nil, nil, fastSchedule(), false)
	_, err := chain.Search(context.Background(), "q")
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration from an empty chain, got %v", err)
	}
}

func TestDefaultRetrySchedule(t *testing.T) {
	s := DefaultRetrySchedule()
	want := []time.Duration{5 * time.Second, 7 * time.Second, 9 * time.Second}
	if s.Attempts() != 3 {
		t.Fatalf("Expected 3 attempts, got %d", s.Attempts())
	}
	for i, d := range s.Timeouts {
		if d != want[i] {
			t.Errorf("Timeout %d = %v, want %v", i, d, want[i])
		}
	}
}

func TestPhrasings(t *testing.T) {
	raw := "Company X, recalls 2 million vehicles!"
	got := Phrasings(raw)
	if len(got) != 3 {
		t.Fatalf("Expected 3 phrasings, got %d", len(got))
	}
	if got[0] != "Company X recalls 2 million vehicles" {
		t.Errorf("Cleaned phrasing = %q", got[0])
	}
	if got[2] != raw {
		t.Errorf("Expected verbatim final phrasing, got %q", got[2])
	}
}
