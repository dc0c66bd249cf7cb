package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Layout store
	DBPath string

	// Search index connection
	SearchIndexURL    string
	SearchIndexAPIKey string

	// Auth
	GridgestAPIKey string

	// Rendering
	TemplateDir string

	// Worker pool
	WorkerCount        int
	MaxQueueSize       int
	MaxConcurrentIndex int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		DBPath: envOr("GRIDGEST_DB", "gridgest.db"),

		SearchIndexURL:    envOr("SEARCH_INDEX_URL", "http://localhost:8080"),
		SearchIndexAPIKey: os.Getenv("SEARCH_INDEX_API_KEY"),

		GridgestAPIKey: os.Getenv("GRIDGEST_API_KEY"),

		TemplateDir: os.Getenv("GRIDGEST_TEMPLATE_DIR"),

		WorkerCount:        envInt("WORKER_COUNT", 4),
		MaxQueueSize:       envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentIndex: envInt("MAX_CONCURRENT_INDEX", 8),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentIndex <= 0 {
		cfg.MaxConcurrentIndex = 8
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.GridgestAPIKey == "" {
		return fmt.Errorf("GRIDGEST_API_KEY is required")
	}
	if c.SearchIndexAPIKey == "" {
		return fmt.Errorf("SEARCH_INDEX_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
