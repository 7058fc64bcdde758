// Package provider implements search provider adapters and the
// primary/secondary fallback chain. Each adapter normalizes its
// provider's native response into []model.CandidateArticle at the
// boundary, dropping records that fail the article invariants.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/claimsift/claimsift/internal/model"
)

// ErrConfiguration indicates a required provider credential is missing.
// Adapters returning it are skipped by callers, never escalated.
var ErrConfiguration = errors.New("provider credential missing")

// Searcher is a single external search provider
type Searcher interface {
	// Name returns the provider identifier (e.g. "langsearch")
	Name() string

	// Search issues one request for the query and returns normalized
	// articles. Fails with *Error on non-2xx status, malformed payload,
	// or timeout.
	Search(ctx context.Context, query string) ([]model.CandidateArticle, error)
}

// Error is a provider-level failure. Timeout deadline expiries are
// classified for diagnosability but retried the same as other provider
// failures.
type Error struct {
	Provider   string
	StatusCode int  // 0 when the request never completed
	Timeout    bool // deadline or net timeout
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("%s: timeout: %v", e.Provider, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
	default:
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// newError wraps err as an *Error, classifying timeouts
func newError(providerName string, statusCode int, err error) *Error {
	return &Error{
		Provider:   providerName,
		StatusCode: statusCode,
		Timeout:    isTimeout(err),
		Err:        err,
	}
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// keepValid filters articles that violate the adapter-boundary
// invariants
func keepValid(articles []model.CandidateArticle) []model.CandidateArticle {
	out := articles[:0]
	for _, a := range articles {
		if a.Valid() {
			out = append(out, a)
		}
	}
	return out
}
