package query

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/claimsift/claimsift/internal/model"
)

// MaxQueries is the hard cap on generated search strings per claim
const MaxQueries = 25

// maxKeywordPhrases bounds how many extracted phrases are expanded
const maxKeywordPhrases = 15

// KeywordExtractor provides LLM-assisted keyword phrases for a claim.
// A nil extractor or an extractor error falls back to deterministic
// tokenization; generation never fails outright.
type KeywordExtractor interface {
	ExtractKeywords(ctx context.Context, text string) ([]string, error)
}

// Generator turns raw claim text into a bounded, diversified set of
// search strings
type Generator struct {
	extractor KeywordExtractor
	verbose   bool
}

// NewGenerator creates a generator. The extractor may be nil.
func NewGenerator(extractor KeywordExtractor, verbose bool) *Generator {
	return &Generator{extractor: extractor, verbose: verbose}
}

// Generate returns an ordered list of at most MaxQueries unique,
// non-empty search strings for the claim.
func (g *Generator) Generate(ctx context.Context, claim model.Claim) []string {
	raw := strings.TrimSpace(claim.Text)
	if raw == "" {
		return nil
	}

	normalized := Normalize(raw)
	keywordQuery := keywordQueryFor(normalized)

	candidates := []string{
		normalized,
		keywordQuery,
		raw,
	}
	if len(raw) < 60 {
		candidates = append(candidates, fmt.Sprintf("%q", raw))
	}
	candidates = append(candidates,
		raw+" news",
		raw+" breaking news",
		raw+" latest",
	)

	keywords := g.keywords(ctx, claim, normalized)
	candidates = append(candidates, expandKeywords(keywords)...)

	return dedupeQueries(candidates, MaxQueries)
}

// keywords returns keyword phrases from the LLM extractor when one is
// configured, the claim's pre-extracted list when present, or the
// deterministic tokenizer otherwise.
func (g *Generator) keywords(ctx context.Context, claim model.Claim, normalized string) []string {
	if len(claim.Keywords) > 0 {
		return capPhrases(claim.Keywords)
	}

	if g.extractor != nil {
		phrases, err := g.extractor.ExtractKeywords(ctx, claim.Text)
		if err == nil && len(phrases) > 0 {
			return capPhrases(phrases)
		}
		if err != nil && g.verbose {
			fmt.Fprintf(os.Stderr, "Warning: keyword extraction failed, using fallback: %v\n", err)
		}
	}

	return capPhrases(FallbackKeywords(normalized))
}

// expandKeywords builds query variations from keyword phrases: each
// phrase quoted, phrase+news, phrase+latest, bounded pairwise
// combinations, and verification-oriented suffixes.
func expandKeywords(keywords []string) []string {
	var out []string
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		out = append(out,
			fmt.Sprintf("%q", kw),
			kw+" news",
			kw+" latest",
		)
	}

	// Pairwise 2-keyword combinations, bounded to the first 5x6 block
	for i := 0; i < len(keywords) && i < 5; i++ {
		for j := i + 1; j < len(keywords) && j < 6; j++ {
			a, b := strings.TrimSpace(keywords[i]), strings.TrimSpace(keywords[j])
			if a == "" || b == "" {
				continue
			}
			out = append(out, a+" "+b)
		}
	}

	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		out = append(out,
			kw+" confirmed",
			kw+" verified",
			kw+" reports",
		)
	}

	return out
}

// punctPattern strips punctuation while keeping characters that matter
// to site: operators
var punctPattern = regexp.MustCompile(`[^\p{L}\p{N}\s:.]+`)

var spacePattern = regexp.MustCompile(`\s+`)

// Normalize strips punctuation (keeping ':' and '.') and collapses
// whitespace
func Normalize(text string) string {
	text = punctPattern.ReplaceAllString(text, " ")
	text = spacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// KeywordQuery normalizes text and returns its keyword-only form
// (stop words removed, at most 6 tokens)
func KeywordQuery(text string) string {
	return keywordQueryFor(Normalize(text))
}

// keywordQueryFor removes stop words and takes up to 6 remaining tokens
func keywordQueryFor(normalized string) string {
	var kept []string
	for _, tok := range strings.Fields(normalized) {
		if isStopWord(tok) {
			continue
		}
		kept = append(kept, tok)
		if len(kept) == 6 {
			break
		}
	}
	return strings.Join(kept, " ")
}

// FallbackKeywords tokenizes the normalized claim deterministically:
// stop words removed, short tokens dropped, original order preserved.
func FallbackKeywords(normalized string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, tok := range strings.Fields(normalized) {
		lower := strings.ToLower(tok)
		if len(lower) <= 3 || isStopWord(lower) || seen[lower] {
			continue
		}
		seen[lower] = true
		out = append(out, tok)
	}
	return out
}

func capPhrases(phrases []string) []string {
	if len(phrases) > maxKeywordPhrases {
		return phrases[:maxKeywordPhrases]
	}
	return phrases
}

// dedupeQueries removes duplicates and empties, preserving first-seen
// order, and truncates to max
func dedupeQueries(candidates []string, max int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range candidates {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		key := strings.ToLower(q)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, q)
		if len(out) == max {
			break
		}
	}
	return out
}
