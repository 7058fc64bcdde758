package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/claimsift/claimsift/internal/model"
)

// Verifier runs the evidence pipeline for one claim
type Verifier interface {
	ComprehensiveSearch(ctx context.Context, claim model.Claim, onStatus model.StatusFunc) []model.ScoredArticle
}

// VerifyJob verifies a single claim
type VerifyJob struct {
	Claim    model.Claim
	Verifier Verifier
}

// Execute runs the verification
func (j *VerifyJob) Execute(ctx context.Context) Result {
	results := j.Verifier.ComprehensiveSearch(ctx, j.Claim, nil)
	return &VerifyResult{Claim: j.Claim, Results: results}
}

// VerifyResult is the outcome of one claim verification
type VerifyResult struct {
	Claim   model.Claim           `json:"claim"`
	Results []model.ScoredArticle `json:"results"`
}

// GetError implements the pool Result interface. Verification never
// fails hard (the pipeline degrades instead), so this is always nil.
func (r *VerifyResult) GetError() error { return nil }

// BatchProcessor verifies many claims concurrently
type BatchProcessor struct {
	verifier    Verifier
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(verifier Verifier, concurrency int) *BatchProcessor {
	return &BatchProcessor{verifier: verifier, concurrency: concurrency}
}

// ProcessClaims verifies the claims using the worker pool. Submission
// and result collection overlap so claim counts beyond the pool's
// channel buffers never stall, and cancelling ctx aborts the batch.
func (b *BatchProcessor) ProcessClaims(ctx context.Context, claims []model.Claim) []*VerifyResult {
	if len(claims) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	go func() {
		for _, claim := range claims {
			pool.Submit(&VerifyJob{Claim: claim, Verifier: b.verifier})
		}
		pool.Finish()
	}()

	results := pool.Results()
	out := make([]*VerifyResult, len(results))
	for i, result := range results {
		out[i] = result.(*VerifyResult)
	}
	return out
}

// ProcessFile reads claims from a file (one per line) and verifies them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*VerifyResult, error) {
	claims, err := ReadClaimsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}
	return b.ProcessClaims(ctx, claims), nil
}

// ReadClaimsFromFile reads one claim per line, skipping blanks and
// '#' comments and deduplicating by normalized text
func ReadClaimsFromFile(filePath string) ([]model.Claim, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var claims []model.Claim
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		claim := model.NewClaim(line)
		key := claim.NormalizedKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		claims = append(claims, claim)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return claims, nil
}
