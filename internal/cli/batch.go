package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimsift/claimsift/internal/pipeline"
	"github.com/claimsift/claimsift/internal/worker"
)

var (
	batchOut         string
	batchTimeout     time.Duration
	batchConcurrency int
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify many claims from a file concurrently",
	Long: `Batch reads claims from a file (one per line, '#' comments and blank
lines skipped, duplicates removed) and runs the evidence pipeline for
each with a bounded worker pool.

Example:
  claimsift batch claims.txt --out results.json --concurrency 4`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchOut, "out", "batch-results.json", "output JSON path")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 15*time.Minute, "overall batch timeout")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "number of concurrent verifications")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildConfig()
	cfg.Concurrency.BatchWorkers = batchConcurrency

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.BatchWorkers)

	results, err := processor.ProcessFile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(batchOut, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	degraded := 0
	for _, r := range results {
		if len(r.Results) > 0 && r.Results[0].Degraded {
			degraded++
		}
	}

	fmt.Printf("✓ Verified %d claims (%d degraded): %s\n", len(results), degraded, batchOut)
	return nil
}
