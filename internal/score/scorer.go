// Package score assigns relevance scores to candidate articles for a
// claim and produces the final ranked list. Scoring is additive over
// weighted factors with a floor at zero; every factor is deterministic
// so the ranking is reproducible without any network call.
package score

import (
	"sort"
	"strings"
	"time"

	"github.com/claimsift/claimsift/internal/model"
	"github.com/claimsift/claimsift/internal/query"
)

// MaxResults is the length cap of the ranked list
const MaxResults = 10

// Factor weights. Only the best-matching freshness tier applies.
const (
	weightTermInTitle    = 10
	weightTermInSnippet  = 5
	weightPhraseInTitle  = 25
	weightPhraseSnippet  = 15
	weightFreshWeek      = 15
	weightFreshMonth     = 10
	weightFreshQuarter   = 5
	weightFreshYear      = 2
	weightReliable       = 25
	weightFactCheck      = 30
	weightInstitutional  = 20
	weightUnreliable     = -50
	weightSuspicious     = -15
	weightLongSnippet    = 8
	weightMediumSnippet  = 4
	weightSummaryPresent = 3
	weightSecureURL      = 2
)

// suspiciousTerms flag sensational or engagement-bait language in the
// title or snippet
var suspiciousTerms = []string{
	"clickbait", "viral", "you won't believe", "shocking",
	"mind-blowing", "doctors hate", "one weird trick",
}

// Scorer ranks candidate articles against a claim
type Scorer struct {
	sources *SourceClassifier
	nowFunc func() time.Time
}

// NewScorer creates a scorer using the configured source lists
func NewScorer(cfg *model.SourcesConfig) *Scorer {
	return &Scorer{
		sources: NewSourceClassifier(cfg),
		nowFunc: time.Now,
	}
}

// Score returns the relevance score (>= 0) of one article for the claim
func (s *Scorer) Score(article model.CandidateArticle, claim model.Claim) int {
	titleLower := strings.ToLower(article.Title)
	snippetLower := strings.ToLower(article.Snippet)
	claimLower := strings.ToLower(strings.TrimSpace(claim.Text))

	total := 0

	// Per distinct matched query term
	for _, term := range queryTerms(claim.Text) {
		if strings.Contains(titleLower, term) {
			total += weightTermInTitle
		}
		if strings.Contains(snippetLower, term) {
			total += weightTermInSnippet
		}
	}

	// Exact claim phrase
	if claimLower != "" {
		if strings.Contains(titleLower, claimLower) {
			total += weightPhraseInTitle
		}
		if strings.Contains(snippetLower, claimLower) {
			total += weightPhraseSnippet
		}
	}

	total += s.freshnessBonus(article.PublishedAt)
	total += s.sourceBonus(article.Host())

	if containsAny(titleLower, suspiciousTerms) || containsAny(snippetLower, suspiciousTerms) {
		total += weightSuspicious
	}

	switch {
	case len(article.Snippet) > 200:
		total += weightLongSnippet
	case len(article.Snippet) > 100:
		total += weightMediumSnippet
	}

	if strings.TrimSpace(article.Summary) != "" {
		total += weightSummaryPresent
	}
	if strings.HasPrefix(strings.ToLower(article.URL), "https://") {
		total += weightSecureURL
	}

	if total < 0 {
		total = 0
	}
	return total
}

// Rank scores every article, sorts descending by score (stable, so
// ties keep encounter order) and truncates to MaxResults
func (s *Scorer) Rank(articles []model.CandidateArticle, claim model.Claim) []model.ScoredArticle {
	scored := make([]model.ScoredArticle, 0, len(articles))
	for _, article := range articles {
		scored = append(scored, model.ScoredArticle{
			CandidateArticle: article,
			Score:            s.Score(article, claim),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > MaxResults {
		scored = scored[:MaxResults]
	}
	return scored
}

// freshnessBonus awards the single best matching freshness tier
func (s *Scorer) freshnessBonus(publishedAt *time.Time) int {
	if publishedAt == nil {
		return 0
	}
	age := s.nowFunc().Sub(*publishedAt)
	switch {
	case age < 0:
		return 0
	case age < 7*24*time.Hour:
		return weightFreshWeek
	case age < 30*24*time.Hour:
		return weightFreshMonth
	case age < 90*24*time.Hour:
		return weightFreshQuarter
	case age < 365*24*time.Hour:
		return weightFreshYear
	default:
		return 0
	}
}

// sourceBonus sums the host classification factors (they can stack:
// a .gov host on the reliable list earns both)
func (s *Scorer) sourceBonus(host string) int {
	if host == "" {
		return 0
	}
	total := 0
	if s.sources.IsReliable(host) {
		total += weightReliable
	}
	if s.sources.IsFactCheck(host) {
		total += weightFactCheck
	}
	if s.sources.IsInstitutional(host) {
		total += weightInstitutional
	}
	if s.sources.IsUnreliable(host) {
		total += weightUnreliable
	}
	return total
}

// queryTerms returns the distinct lower-cased terms of the claim with
// length > 2
func queryTerms(claimText string) []string {
	seen := make(map[string]bool)
	var terms []string
	for _, tok := range strings.Fields(query.Normalize(claimText)) {
		lower := strings.ToLower(tok)
		if len(lower) <= 2 || seen[lower] {
			continue
		}
		seen[lower] = true
		terms = append(terms, lower)
	}
	return terms
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
