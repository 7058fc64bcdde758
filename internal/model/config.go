package model

import "time"

// Config is the complete runtime configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	Providers   ProvidersConfig   `yaml:"providers" json:"providers"`
	Search      SearchConfig      `yaml:"search" json:"search"`
	Sources     SourcesConfig     `yaml:"sources" json:"sources"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Enrich      EnrichConfig      `yaml:"enrich" json:"enrich"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// HTTPConfig controls outbound HTTP behavior shared by all clients
type HTTPConfig struct {
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
	NoProxy      string        `yaml:"no_proxy,omitempty" json:"no_proxy,omitempty"`
}

// ProvidersConfig holds search provider credentials and endpoints.
// A missing key disables that provider rather than failing startup.
type ProvidersConfig struct {
	LangSearchAPIKey   string `yaml:"langsearch_api_key,omitempty" json:"-"`
	LangSearchEndpoint string `yaml:"langsearch_endpoint,omitempty" json:"langsearch_endpoint,omitempty"`
	TavilyAPIKey       string `yaml:"tavily_api_key,omitempty" json:"-"`
	TavilyEndpoint     string `yaml:"tavily_endpoint,omitempty" json:"tavily_endpoint,omitempty"`
}

// SearchConfig tunes the orchestration policy
type SearchConfig struct {
	// MaxQueries caps how many generated queries each pipeline run
	// actually executes.
	MaxQueries int `yaml:"max_queries" json:"max_queries"`

	// SiteDomains are the named domains used for site-scoped sub-queries
	// in addition to the general query.
	SiteDomains []string `yaml:"site_domains" json:"site_domains"`

	// EarlySuccesses stops a sweep once this many sub-queries succeeded.
	EarlySuccesses int `yaml:"early_successes" json:"early_successes"`

	// BreakerThreshold aborts a sweep after this many consecutive failures.
	BreakerThreshold int `yaml:"breaker_threshold" json:"breaker_threshold"`

	// SubQueryDelay is the fixed pause between sub-queries.
	SubQueryDelay time.Duration `yaml:"sub_query_delay" json:"sub_query_delay"`

	// QueryDelay is the pause between top-level queries.
	QueryDelay time.Duration `yaml:"query_delay" json:"query_delay"`

	// RequestsPerSecond bounds per-host request rate across a run.
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
}

// SourcesConfig classifies URL hosts for relevance scoring
type SourcesConfig struct {
	Reliable   []string `yaml:"reliable" json:"reliable"`
	FactCheck  []string `yaml:"fact_check" json:"fact_check"`
	Unreliable []string `yaml:"unreliable" json:"unreliable"`
}

// CacheConfig controls the evidence cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	Dir     string        `yaml:"dir,omitempty" json:"dir,omitempty"`
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}

// LLMConfig configures the optional keyword extractor / re-ranker
type LLMConfig struct {
	Provider  string `yaml:"provider,omitempty" json:"provider,omitempty"` // "openai" or "" (disabled)
	Model     string `yaml:"model,omitempty" json:"model,omitempty"`
	APIKey    string `yaml:"api_key,omitempty" json:"-"`
	BaseURL   string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout" json:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
	Rerank    bool   `yaml:"rerank" json:"rerank"`
}

// EnrichConfig controls optional article-page enrichment of ranked results
type EnrichConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	TopK    int  `yaml:"top_k" json:"top_k"`
}

// ConcurrencyConfig bounds worker parallelism for batch runs
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers" json:"batch_workers"`
}

// OutputConfig controls CLI output
type OutputConfig struct {
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			UserAgent:    "Claimsift/0.1 (+https://github.com/claimsift/claimsift)",
			Timeout:      30 * time.Second,
			MaxBodyBytes: 2_000_000,
		},
		Providers: ProvidersConfig{
			LangSearchEndpoint: "https://api.langsearch.com/v1/web-search",
			TavilyEndpoint:     "https://api.tavily.com/search",
		},
		Search: SearchConfig{
			MaxQueries:        3,
			SiteDomains:       []string{"reuters.com", "apnews.com", "bbc.com", "factcheck.org"},
			EarlySuccesses:    2,
			BreakerThreshold:  3,
			SubQueryDelay:     500 * time.Millisecond,
			QueryDelay:        time.Second,
			RequestsPerSecond: 2,
		},
		Sources: SourcesConfig{
			Reliable: []string{
				"reuters.com", "apnews.com", "bbc.com", "npr.org",
				"theguardian.com", "nytimes.com", "washingtonpost.com",
				"wsj.com", "bloomberg.com", "economist.com", "nature.com",
				"science.org",
			},
			FactCheck: []string{
				"snopes.com", "politifact.com", "factcheck.org",
				"fullfact.org", "leadstories.com",
			},
			Unreliable: []string{
				"infowars.com", "naturalnews.com", "beforeitsnews.com",
				"worldtruth.tv", "yournewswire.com",
			},
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 500,
		},
		Enrich: EnrichConfig{
			TopK: 3,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
	}
}
