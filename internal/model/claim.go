package model

import "strings"

// Claim represents a user-submitted assertion to gather evidence for
type Claim struct {
	Text     string   `json:"text"`               // The claim text as submitted
	Keywords []string `json:"keywords,omitempty"` // Optional pre-extracted keyword phrases
}

// NewClaim creates a claim from raw text
func NewClaim(text string) Claim {
	return Claim{Text: strings.TrimSpace(text)}
}

// NormalizedKey returns the cache key form of the claim text
// (trimmed, lower-cased). Two claims with the same normalized key
// share cache entries.
func (c Claim) NormalizedKey() string {
	return strings.ToLower(strings.TrimSpace(c.Text))
}

// IsEmpty reports whether the claim carries no usable text
func (c Claim) IsEmpty() bool {
	return strings.TrimSpace(c.Text) == ""
}
