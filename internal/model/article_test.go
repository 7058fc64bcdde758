package model

import "testing"

func TestCandidateArticle_Valid(t *testing.T) {
	tests := []struct {
		name    string
		article CandidateArticle
		want    bool
	}{
		{"title only", CandidateArticle{Title: "t"}, true},
		{"snippet only", CandidateArticle{Snippet: "s"}, true},
		{"both empty", CandidateArticle{URL: "https://example.com"}, false},
		{"valid url", CandidateArticle{Title: "t", URL: "https://example.com/a"}, true},
		{"empty url", CandidateArticle{Title: "t"}, true},
		{"relative url", CandidateArticle{Title: "t", URL: "/path/only"}, false},
		{"unparseable url", CandidateArticle{Title: "t", URL: "::bad"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.article.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCandidateArticle_Host(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.Reuters.com/story", "www.reuters.com"},
		{"https://example.com:8443/a", "example.com"},
		{"", ""},
		{"::bad", ""},
	}
	for _, tt := range tests {
		a := CandidateArticle{URL: tt.url}
		if got := a.Host(); got != tt.want {
			t.Errorf("Host(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestClaim(t *testing.T) {
	c := NewClaim("  Company X Recalls Vehicles  ")
	if c.Text != "Company X Recalls Vehicles" {
		t.Errorf("Expected trimmed text, got %q", c.Text)
	}
	if c.NormalizedKey() != "company x recalls vehicles" {
		t.Errorf("Unexpected normalized key: %q", c.NormalizedKey())
	}
	if c.IsEmpty() {
		t.Error("Expected non-empty claim")
	}
	if !NewClaim("   ").IsEmpty() {
		t.Error("Expected whitespace-only claim to be empty")
	}
}
