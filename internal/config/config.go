package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Auth for /api routes; empty disables it.
	APIKey string

	// Upload limits
	MaxUploadBytes int64
	MaxBatchFiles  int

	// Analysis
	MaxTextChars  int
	TemplatesFile string

	// Batch review
	BatchConcurrency int

	// PDF
	PDFMaxPages          int
	PDFFallbackPdftotext bool

	// Observability
	StatsWindow    time.Duration
	ServiceVersion string
}

// LoadDotEnv reads KEY=value pairs from the given files (".env" when none
// are named) into the environment. Variables that are already set win, and
// missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "5000"),

		APIKey: os.Getenv("SCRIPTCOACH_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB
		MaxBatchFiles:  envInt("MAX_BATCH_FILES", 10),

		MaxTextChars:  envInt("MAX_TEXT_CHARS", 12000),
		TemplatesFile: os.Getenv("TEMPLATES_FILE"),

		BatchConcurrency: envInt("BATCH_CONCURRENCY", 4),

		PDFMaxPages:          envInt("PDF_MAX_PAGES", 5),
		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		StatsWindow:    envDuration("STATS_WINDOW", 1*time.Hour),
		ServiceVersion: envOr("SERVICE_VERSION", "dev"),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.MaxBatchFiles <= 0 {
		cfg.MaxBatchFiles = 10
	}
	if cfg.MaxTextChars <= 0 {
		cfg.MaxTextChars = 12000
	}
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = 4
	}
	if cfg.PDFMaxPages <= 0 {
		cfg.PDFMaxPages = 5
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric: %q", c.Port)
	}
	if c.TemplatesFile != "" {
		if _, err := os.Stat(c.TemplatesFile); err != nil {
			return fmt.Errorf("TEMPLATES_FILE: %w", err)
		}
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

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
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
