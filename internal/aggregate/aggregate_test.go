package aggregate

import (
	"testing"

	"github.com/claimsift/claimsift/internal/model"
	"github.com/claimsift/claimsift/internal/search"
)

func TestMerge_DeduplicatesByURL(t *testing.T) {
	responses := []search.Response{
		{SubQuery: "general", Articles: []model.CandidateArticle{
			{Title: "first", URL: "https://example.com/a"},
			{Title: "other", URL: "https://example.com/b"},
		}},
		{SubQuery: "site:reuters.com", Articles: []model.CandidateArticle{
			{Title: "richer", Summary: "with summary", URL: "https://example.com/a"},
		}},
	}

	merged := Merge(responses)

	if len(merged) != 2 {
		t.Fatalf("Expected 2 unique articles, got %d", len(merged))
	}
	seen := make(map[string]bool)
	for _, a := range merged {
		if a.URL != "" && seen[a.URL] {
			t.Errorf("Duplicate URL in merged output: %q", a.URL)
		}
		seen[a.URL] = true
	}
}

func TestMerge_LastWriteWinsInPlace(t *testing.T) {
	responses := []search.Response{
		{Articles: []model.CandidateArticle{
			{Title: "early", URL: "https://example.com/a"},
			{Title: "b", URL: "https://example.com/b"},
		}},
		{Articles: []model.CandidateArticle{
			{Title: "late", Summary: "enriched", URL: "https://example.com/a"},
		}},
	}

	merged := Merge(responses)

	if merged[0].Title != "late" || merged[0].Summary != "enriched" {
		t.Errorf("Expected later duplicate to replace earlier in place, got %+v", merged[0])
	}
	if merged[1].Title != "b" {
		t.Errorf("Expected original ordering preserved, got %+v", merged[1])
	}
}

func TestMerge_KeepsURLlessArticles(t *testing.T) {
	responses := []search.Response{
		{Articles: []model.CandidateArticle{
			{Title: "no url one", Snippet: "s"},
			{Title: "no url two", Snippet: "s"},
		}},
	}

	merged := Merge(responses)

	if len(merged) != 2 {
		t.Errorf("Expected URL-less articles kept without dedupe, got %d", len(merged))
	}
}

func TestMerge_Empty(t *testing.T) {
	if got := Merge(nil); len(got) != 0 {
		t.Errorf("Expected empty merge, got %d", len(got))
	}
	if got := Merge([]search.Response{{SubQuery: "q"}}); len(got) != 0 {
		t.Errorf("Expected empty merge for empty responses, got %d", len(got))
	}
}
