package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"STATUTE_CONVENTION", "EMBED_PROVIDER", "EMBED_BATCH_SIZE", "SEARCH_TOP_K", "LOG_LEVEL", "EMBED_MODEL"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	if cfg.Convention != "korean" {
		t.Errorf("expected korean convention, got %q", cfg.Convention)
	}
	if cfg.EmbedProvider != "hash" {
		t.Errorf("expected hash provider, got %q", cfg.EmbedProvider)
	}
	if cfg.EmbedBatchSize != 32 || cfg.SearchTopK != 3 {
		t.Errorf("unexpected defaults: batch=%d topK=%d", cfg.EmbedBatchSize, cfg.SearchTopK)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_RepairsInvalidValues(t *testing.T) {
	t.Setenv("EMBED_BATCH_SIZE", "-1")
	t.Setenv("EMBED_PARALLELISM", "0")
	t.Setenv("EMBED_TIMEOUT", "bogus")
	t.Setenv("SEARCH_TOP_K", "0")
	t.Setenv("QUERY_CACHE_SIZE", "-5")

	cfg := Load()
	if cfg.EmbedBatchSize != 32 {
		t.Errorf("expected batch size 32, got %d", cfg.EmbedBatchSize)
	}
	if cfg.EmbedParallelism != 4 {
		t.Errorf("expected parallelism 4, got %d", cfg.EmbedParallelism)
	}
	if cfg.EmbedTimeout != 60*time.Second {
		t.Errorf("expected 60s timeout, got %v", cfg.EmbedTimeout)
	}
	if cfg.SearchTopK != 3 {
		t.Errorf("expected top k 3, got %d", cfg.SearchTopK)
	}
	if cfg.QueryCacheSize != 0 {
		t.Errorf("expected cache disabled, got %d", cfg.QueryCacheSize)
	}
}

func TestLoad_ProviderModelDefaults(t *testing.T) {
	t.Setenv("EMBED_MODEL", "")
	t.Setenv("EMBED_PROVIDER", "Gemini")
	if cfg := Load(); cfg.EmbedModel != "gemini-embedding-001" {
		t.Errorf("expected gemini default model, got %q", cfg.EmbedModel)
	}

	t.Setenv("EMBED_PROVIDER", "tei")
	if cfg := Load(); cfg.EmbedModel == "" {
		t.Error("expected tei default model")
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{EmbedProvider: "gemini", NodeSelector: "p"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without GEMINI_API_KEY")
	}
	cfg.GeminiAPIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg = Config{EmbedProvider: "faiss", NodeSelector: "p"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown provider")
	}

	cfg = Config{EmbedProvider: "hash"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty selector")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("STATGEST_TEST_DOTENV=from-file\nSEARCH_TOP_K=7\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STATGEST_TEST_DOTENV", "")
	os.Unsetenv("STATGEST_TEST_DOTENV")
	t.Setenv("SEARCH_TOP_K", "5")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("STATGEST_TEST_DOTENV"); got != "from-file" {
		t.Errorf("expected value from file, got %q", got)
	}
	if got := os.Getenv("SEARCH_TOP_K"); got != "5" {
		t.Errorf("existing variables must not be overridden, got %q", got)
	}
}
