// Package aggregate merges provider responses into a single candidate
// list, deduplicated by source URL.
package aggregate

import (
	"github.com/claimsift/claimsift/internal/model"
	"github.com/claimsift/claimsift/internal/search"
)

// Merge flattens every response's article list and deduplicates by
// exact URL with last-write-wins semantics: a later duplicate replaces
// an earlier one in place, since later responses may carry richer
// metadata. Articles without a URL are kept as-is.
func Merge(responses []search.Response) []model.CandidateArticle {
	var out []model.CandidateArticle
	position := make(map[string]int)

	for _, resp := range responses {
		for _, article := range resp.Articles {
			if article.URL == "" {
				out = append(out, article)
				continue
			}
			if idx, seen := position[article.URL]; seen {
				out[idx] = article
				continue
			}
			position[article.URL] = len(out)
			out = append(out, article)
		}
	}

	return out
}
