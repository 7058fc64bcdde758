package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimsift/claimsift/internal/model"
	"github.com/claimsift/claimsift/internal/pipeline"
)

var (
	outJSON     string
	timeout     time.Duration
	noCache     bool
	enrich      bool
	llmProvider string
	llmModel    string
	llmRerank   bool
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <claim>",
	Short: "Gather and rank evidence for a single claim",
	Long: `Verify runs the full evidence pipeline for one claim:
- Generate diversified search queries (LLM-assisted when configured)
- Sweep search providers with fallback, retries, and a circuit breaker
- Aggregate, deduplicate, and rank candidate articles
- Cache results for 24 hours

Provider credentials come from the environment:
  LANGSEARCH_API_KEY   primary search provider
  TAVILY_API_KEY       secondary search provider
  OPENAI_API_KEY       optional keyword extraction / re-ranking

Example:
  claimsift verify "Company X recalls 2 million vehicles"
  claimsift verify "..." --json evidence.json --llm openai --rerank`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	verifyCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall verification timeout")
	verifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the evidence cache")
	verifyCmd.Flags().BoolVar(&enrich, "enrich", false, "fetch top-ranked article pages to fill missing summaries")
	verifyCmd.Flags().StringVar(&llmProvider, "llm", "", "LLM provider for keyword extraction (openai)")
	verifyCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	verifyCmd.Flags().BoolVar(&llmRerank, "rerank", false, "re-rank evidence with the LLM (deterministic scorer remains the fallback)")
}

// buildConfig assembles configuration from defaults, flags, and the
// environment. Missing credentials degrade features, never error.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Enrich.Enabled = enrich
	cfg.Output.Verbose = verbose

	cfg.Providers.LangSearchAPIKey = os.Getenv("LANGSEARCH_API_KEY")
	cfg.Providers.TavilyAPIKey = os.Getenv("TAVILY_API_KEY")

	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
		cfg.LLM.Rerank = llmRerank
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			fmt.Fprintln(os.Stderr, "Warning: OPENAI_API_KEY not set, LLM assistance disabled")
			cfg.LLM.Provider = ""
		}
	}

	return cfg
}

func runVerify(cmd *cobra.Command, args []string) error {
	claim := model.NewClaim(args[0])
	if claim.IsEmpty() {
		return fmt.Errorf("claim text is empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := buildConfig()
	if cfg.Providers.LangSearchAPIKey == "" && cfg.Providers.TavilyAPIKey == "" {
		fmt.Fprintln(os.Stderr, "Warning: no provider API keys configured; results will be degraded")
	}

	p := pipeline.NewPipeline(cfg)

	onStatus := model.StatusFunc(nil)
	if verbose {
		onStatus = func(status model.SearchStatus) {
			fmt.Fprintf(os.Stderr, "⚙️  %s\n", status)
		}
	}

	results := p.ComprehensiveSearch(ctx, claim, onStatus)

	printResults(claim, results)

	if outJSON != "" {
		if err := writeJSON(outJSON, results); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	return nil
}

// printResults renders the ranked evidence list to stdout
func printResults(claim model.Claim, results []model.ScoredArticle) {
	fmt.Printf("Claim: %s\n", claim.Text)
	fmt.Printf("Evidence (%d):\n\n", len(results))

	for i, r := range results {
		marker := ""
		if r.Degraded {
			marker = " [degraded]"
		}
		fmt.Printf("%2d. [%3d]%s %s\n", i+1, r.Score, marker, r.Title)
		if r.URL != "" {
			fmt.Printf("         %s\n", r.URL)
		}
		if r.Snippet != "" {
			fmt.Printf("         %s\n", truncate(r.Snippet, 160))
		}
		fmt.Println()
	}
}

func writeJSON(path string, results []model.ScoredArticle) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
