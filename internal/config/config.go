package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port     string
	APIKey   string
	RedisURL string

	ModelDir     string
	ModelVersion string

	CacheEnabled bool
	CacheTTLSecs int
	MaxBatchSize int

	YahooTimeoutSecs int

	OpenAIAPIKey string
	OpenAIModel  string

	Watchlist        []string
	WarmIntervalSecs int

	SequenceLength int
	TrainBars      int
}

func Load() *Config {
	cfg := &Config{
		APIKey:       os.Getenv("API_KEY"),
		RedisURL:     strings.TrimSpace(os.Getenv("REDIS_URL")),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
	}

	cfg.Port = strings.TrimSpace(os.Getenv("PORT"))
	if cfg.Port == "" {
		cfg.Port = "8000"
	}

	if cfg.APIKey == "" {
		log.Println("Warning: API_KEY not set, endpoints are unauthenticated")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, using in-memory prediction cache")
	}

	cfg.ModelDir = strings.TrimSpace(os.Getenv("MODEL_DIR"))
	if cfg.ModelDir == "" {
		cfg.ModelDir = "models"
	}

	cfg.ModelVersion = strings.TrimSpace(os.Getenv("MODEL_VERSION"))
	if cfg.ModelVersion == "" {
		cfg.ModelVersion = "v2.1"
	}

	cfg.CacheEnabled = true
	if v := strings.TrimSpace(os.Getenv("CACHE_ENABLED")); v != "" {
		cfg.CacheEnabled = strings.EqualFold(v, "true")
	}

	cfg.CacheTTLSecs = 600
	if v := strings.TrimSpace(os.Getenv("CACHE_TTL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheTTLSecs = n
		}
	}

	cfg.MaxBatchSize = 10
	if v := strings.TrimSpace(os.Getenv("MAX_BATCH_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxBatchSize = n
		}
	}

	cfg.YahooTimeoutSecs = 10
	if v := strings.TrimSpace(os.Getenv("YAHOO_TIMEOUT_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.YahooTimeoutSecs = n
		}
	}

	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, using seeded sentiment scores")
	}

	cfg.OpenAIModel = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	if v := strings.TrimSpace(os.Getenv("WATCHLIST")); v != "" {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				cfg.Watchlist = append(cfg.Watchlist, s)
			}
		}
	}

	cfg.WarmIntervalSecs = 300
	if v := strings.TrimSpace(os.Getenv("WARM_INTERVAL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.WarmIntervalSecs = n
		}
	}

	cfg.SequenceLength = 30
	if v := strings.TrimSpace(os.Getenv("SEQUENCE_LENGTH")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SequenceLength = n
		}
	}

	cfg.TrainBars = 300
	if v := strings.TrimSpace(os.Getenv("TRAIN_BARS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TrainBars = n
		}
	}

	return cfg
}

// CacheTTL returns the configured TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSecs) * time.Second
}

// YahooTimeout returns the upstream HTTP timeout as a duration.
func (c *Config) YahooTimeout() time.Duration {
	return time.Duration(c.YahooTimeoutSecs) * time.Second
}
