package model

import "time"

// Config is the full configuration tree. Values are resolved in order:
// CLI flags, ARGUS_* environment variables, ~/.argus/config.yaml, defaults.
type Config struct {
	Engine       EngineConfig      `yaml:"engine"`
	HTTP         HTTPConfig        `yaml:"http"`
	Cache        CacheConfig       `yaml:"cache"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting"`
	Output       OutputConfig      `yaml:"output"`
	LLM          LLMConfig         `yaml:"llm"`
}

// EngineConfig controls the valuation engine.
type EngineConfig struct {
	TNorm             string  `yaml:"tnorm"`      // min, product, lukasiewicz
	MaxSweeps         int     `yaml:"max_sweeps"` // cap before non-convergence is reported
	Tolerance         float64 `yaml:"tolerance"`
	SourceReliability float64 `yaml:"source_reliability"` // recorded in the bundle, in [0,1]
}

// HTTPConfig controls the scan fetcher.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy"`
}

// CacheConfig controls the layered bundle cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"` // disk layer location, "" = ~/.argus/cache
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// RateLimitConfig throttles URL sources during batch runs.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// LLMConfig controls the optional summary provider.
type LLMConfig struct {
	Provider     string `yaml:"provider"` // openai, ollama, "" = disabled
	Model        string `yaml:"model"`
	APIKey       string `yaml:"-"` // from environment only, never persisted
	BaseURL      string `yaml:"base_url"`
	Timeout      int    `yaml:"timeout"` // seconds
	StrictClaims bool   `yaml:"strict_claims"`
	MaxTokens    int    `yaml:"max_tokens"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			TNorm:             "min",
			MaxSweeps:         10000,
			Tolerance:         1e-6,
			SourceReliability: 1.0,
		},
		HTTP: HTTPConfig{
			Timeout:      2 * time.Minute,
			UserAgent:    "Argus/0.1 (+https://github.com/arguslabs/argus)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			Provider:     "", // disabled by default
			Timeout:      30,
			StrictClaims: true,
			MaxTokens:    1000,
		},
	}
}
