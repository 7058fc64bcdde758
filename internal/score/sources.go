package score

import (
	"strings"

	"github.com/claimsift/claimsift/internal/model"
)

// SourceClassifier matches URL hosts against the configured
// reliable, fact-check, and unreliable source lists
type SourceClassifier struct {
	reliable   map[string]bool
	factCheck  map[string]bool
	unreliable map[string]bool
}

// NewSourceClassifier builds a classifier from configuration
func NewSourceClassifier(cfg *model.SourcesConfig) *SourceClassifier {
	if cfg == nil {
		cfg = &model.DefaultConfig().Sources
	}

	classifier := &SourceClassifier{
		reliable:   make(map[string]bool),
		factCheck:  make(map[string]bool),
		unreliable: make(map[string]bool),
	}
	for _, domain := range cfg.Reliable {
		classifier.reliable[strings.ToLower(domain)] = true
	}
	for _, domain := range cfg.FactCheck {
		classifier.factCheck[strings.ToLower(domain)] = true
	}
	for _, domain := range cfg.Unreliable {
		classifier.unreliable[strings.ToLower(domain)] = true
	}
	return classifier
}

// IsReliable reports whether the host matches the reliable-source list
func (c *SourceClassifier) IsReliable(host string) bool {
	return matchDomain(c.reliable, host)
}

// IsFactCheck reports whether the host matches the fact-check list
func (c *SourceClassifier) IsFactCheck(host string) bool {
	return matchDomain(c.factCheck, host)
}

// IsUnreliable reports whether the host matches the unreliable-source list
func (c *SourceClassifier) IsUnreliable(host string) bool {
	return matchDomain(c.unreliable, host)
}

// IsInstitutional reports .gov / .edu hosts
func (c *SourceClassifier) IsInstitutional(host string) bool {
	host = strings.ToLower(host)
	return strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu")
}

// matchDomain matches an exact host or any subdomain of a listed
// domain (e.g. www.reuters.com matches reuters.com)
func matchDomain(domains map[string]bool, host string) bool {
	host = strings.ToLower(host)
	if host == "" {
		return false
	}
	if domains[host] {
		return true
	}
	for domain := range domains {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}
