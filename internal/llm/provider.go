// Package llm provides the optional language-model collaborators:
// keyword extraction for query generation and evidence re-ranking.
// Absence of credentials disables the package; the pipeline always has
// a deterministic fallback.
package llm

import (
	"context"
	"strings"

	"github.com/claimsift/claimsift/internal/model"
)

// Provider defines the interface for LLM collaborators
type Provider interface {
	// Name returns the provider name
	Name() string

	// ExtractKeywords returns up to maxKeywords keyword phrases for the
	// claim text
	ExtractKeywords(ctx context.Context, text string) ([]string, error)

	// RerankArticles reorders scored articles by relevance to the
	// claim. The input order is the deterministic scorer's ranking;
	// implementations must return a permutation of the input.
	RerankArticles(ctx context.Context, claim model.Claim, articles []model.ScoredArticle) ([]model.ScoredArticle, error)
}

// maxKeywords bounds how many phrases extraction may return
const maxKeywords = 15

// parseKeywordList splits a comma-separated model response into
// trimmed, deduplicated phrases
func parseKeywordList(response string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, part := range strings.Split(response, ",") {
		phrase := strings.Trim(strings.TrimSpace(part), `"'`)
		if phrase == "" {
			continue
		}
		key := strings.ToLower(phrase)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, phrase)
		if len(out) == maxKeywords {
			break
		}
	}
	return out
}
