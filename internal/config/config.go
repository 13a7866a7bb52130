package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings. Defaults cover a full working setup;
// a YAML file (NEWSGENIE_CONFIG) and env vars override individual values.
type Config struct {
	// Sources
	Feeds   []string      `yaml:"feeds"`
	NewsAPI NewsAPIConfig `yaml:"newsApi"`

	// Pipeline tunables
	MaxArticles   int           `yaml:"maxArticles"`   // batch cap after dedup
	MaxPerFeed    int           `yaml:"maxPerFeed"`    // entries kept per feed
	MaxSummaryLen int           `yaml:"maxSummaryLen"` // runes kept of a raw summary
	FetchTimeout  time.Duration `yaml:"fetchTimeout"`  // per-source budget
	FetchWorkers  int           `yaml:"fetchWorkers"`  // concurrent source fetches

	// Classifier tables, kept as data so the scoring stays one function.
	Classifier ClassifierConfig `yaml:"classifier"`

	// Sentiment label thresholds. Exactly on the threshold is neutral.
	PositiveThreshold float64 `yaml:"positiveThreshold"`
	NegativeThreshold float64 `yaml:"negativeThreshold"`

	// Trend extraction
	MinKeywordLen int      `yaml:"minKeywordLen"`
	StopWords     []string `yaml:"stopWords"`

	// Generative backend (optional)
	GeminiAPIKey      string `yaml:"-"`
	GeminiModel       string `yaml:"geminiModel"`
	MaxGeminiRequests int    `yaml:"maxGeminiRequests"`

	// Serving
	ListenAddr      string        `yaml:"listenAddr"`
	CacheTTL        time.Duration `yaml:"cacheTTL"`
	RefreshSchedule string        `yaml:"refreshSchedule"` // cron expression, empty disables

	Debug bool `yaml:"-"`
}

// NewsAPIConfig describes the one JSON API source.
type NewsAPIConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"-"`
	PageSize int    `yaml:"pageSize"`
	// CategoryMap translates our category labels into the API's vocabulary.
	CategoryMap map[string]string `yaml:"categoryMap"`
}

// ClassifierConfig is the keyword-table side of categorization.
// Category order is significant: scoring ties resolve to the first entry.
type ClassifierConfig struct {
	Categories   []CategoryRule `yaml:"categories"`
	SourceHints  []SourceHint   `yaml:"sourceHints"`
	ProtestTerms []string       `yaml:"protestTerms"`
	LaborTerms   []string       `yaml:"laborTerms"`
	FinanceTerms []string       `yaml:"financeTerms"`
}

// CategoryRule is one category's keyword list plus its gate.
type CategoryRule struct {
	Name       string   `yaml:"name"`
	Keywords   []string `yaml:"keywords"`
	Exclusions []string `yaml:"exclusions"`
	MinScore   int      `yaml:"minScore"`
}

// SourceHint short-circuits scoring when the URL or source name carries
// an unambiguous fragment (sports wires, tech blogs, market desks).
type SourceHint struct {
	Category  string   `yaml:"category"`
	Fragments []string `yaml:"fragments"`
}

// Load builds the configuration: defaults, then YAML file, then env.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("NEWSGENIE_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.NewsAPI.APIKey = os.Getenv("NEWS_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("MAX_ARTICLES"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.MaxArticles = val
		}
	}
	if v := os.Getenv("FETCH_WORKERS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.FetchWorkers = val
		}
	}
	if v := os.Getenv("MAX_GEMINI_REQUESTS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.MaxGeminiRequests = val
		}
	}
	if v := os.Getenv("CACHE_TTL_MINUTES"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.CacheTTL = time.Duration(val) * time.Minute
		}
	}
	if v := os.Getenv("REFRESH_SCHEDULE"); v != "" {
		cfg.RefreshSchedule = v
	}
	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

// Validate rejects configurations the pipeline cannot run with.
// A missing NEWS_API_KEY is fine: the API adapter degrades to zero articles.
func (c *Config) Validate() error {
	if len(c.Feeds) == 0 && c.NewsAPI.Endpoint == "" {
		return fmt.Errorf("no sources configured: need at least one feed or the API endpoint")
	}
	if c.MaxArticles <= 0 {
		return fmt.Errorf("maxArticles must be positive")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetchTimeout must be positive")
	}
	if len(c.Classifier.Categories) == 0 {
		return fmt.Errorf("classifier needs at least one category")
	}
	return nil
}

// CategoryNames returns the fixed category order used across the app.
func (c *Config) CategoryNames() []string {
	names := make([]string, 0, len(c.Classifier.Categories))
	for _, cat := range c.Classifier.Categories {
		names = append(names, cat.Name)
	}
	return names
}
