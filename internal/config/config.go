package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Document parsing
	Convention           string
	NodeSelector         string
	PDFFallbackPdftotext bool

	// Embedding backend: hash, tei or gemini
	EmbedProvider    string
	EmbedURL         string
	EmbedModel       string
	EmbedDimension   int
	EmbedBatchSize   int
	EmbedParallelism int
	EmbedTimeout     time.Duration
	GeminiAPIKey     string

	// Search
	QueryCacheSize int
	SearchTopK     int

	LogLevel slog.Level
}

// LoadDotEnv reads variables from the given files (".env" if none) without
// overriding ones already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func Load() Config {
	cfg := Config{
		Convention:           envOr("STATUTE_CONVENTION", "korean"),
		NodeSelector:         envOr("STATUTE_NODE_SELECTOR", "p"),
		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		EmbedProvider:    strings.ToLower(envOr("EMBED_PROVIDER", "hash")),
		EmbedURL:         envOr("EMBED_URL", "http://localhost:8080"),
		EmbedModel:       envOr("EMBED_MODEL", ""),
		EmbedDimension:   envInt("EMBED_DIMENSION", 0),
		EmbedBatchSize:   envInt("EMBED_BATCH_SIZE", 32),
		EmbedParallelism: envInt("EMBED_PARALLELISM", 4),
		EmbedTimeout:     envDuration("EMBED_TIMEOUT", 60*time.Second),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),

		QueryCacheSize: envInt("QUERY_CACHE_SIZE", 256),
		SearchTopK:     envInt("SEARCH_TOP_K", 3),

		LogLevel: envLevel("LOG_LEVEL", slog.LevelInfo),
	}

	if cfg.EmbedModel == "" {
		switch cfg.EmbedProvider {
		case "gemini":
			cfg.EmbedModel = "gemini-embedding-001"
		case "tei":
			cfg.EmbedModel = "snunlp/KR-SBERT-V40K-klueNLI-augSTS"
		}
	}
	if cfg.EmbedDimension < 0 {
		cfg.EmbedDimension = 0
	}
	if cfg.EmbedBatchSize <= 0 {
		cfg.EmbedBatchSize = 32
	}
	if cfg.EmbedParallelism <= 0 {
		cfg.EmbedParallelism = 4
	}
	if cfg.EmbedTimeout <= 0 {
		cfg.EmbedTimeout = 60 * time.Second
	}
	if cfg.QueryCacheSize < 0 {
		cfg.QueryCacheSize = 0
	}
	if cfg.SearchTopK <= 0 {
		cfg.SearchTopK = 3
	}

	return cfg
}

func (c Config) Validate() error {
	switch c.EmbedProvider {
	case "hash":
	case "tei":
		if c.EmbedURL == "" {
			return fmt.Errorf("EMBED_URL is required for the tei provider")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
	default:
		return fmt.Errorf("unknown EMBED_PROVIDER %q", c.EmbedProvider)
	}
	if c.NodeSelector == "" {
		return fmt.Errorf("STATUTE_NODE_SELECTOR must not be empty")
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

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			return lvl
		}
	}
	return fallback
}
