package config

import (
	"strings"
	"testing"
	"time"

	"github.com/amberin/jobradar/internal/scoring"
)

// setRequiredEnv sets the minimum environment for Load to succeed.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SCORING_API_KEY", "test-key")
	t.Setenv("DATA_DIR", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Scoring.Provider != scoring.ProviderOpenAI {
		t.Errorf("expected default provider openai, got %s", cfg.Scoring.Provider)
	}
	if cfg.Scoring.Model != "gpt-4o-mini" {
		t.Errorf("expected default model gpt-4o-mini, got %s", cfg.Scoring.Model)
	}
	if cfg.MinScore != 8 {
		t.Errorf("expected default min score 8, got %d", cfg.MinScore)
	}
	if cfg.FreshWindow != 24*time.Hour {
		t.Errorf("expected default fresh window 24h, got %s", cfg.FreshWindow)
	}
	if cfg.Schedule != "@every 6h" {
		t.Errorf("expected default schedule @every 6h, got %s", cfg.Schedule)
	}
	if cfg.StoreBackend != "json" {
		t.Errorf("expected default store backend json, got %s", cfg.StoreBackend)
	}
	if cfg.RunOnce {
		t.Error("expected RunOnce false by default")
	}
}

func TestLoadProviderDefaultsModel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SCORING_PROVIDER", "anthropic")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scoring.Model != "claude-3-5-haiku-latest" {
		t.Errorf("expected anthropic default model, got %s", cfg.Scoring.Model)
	}
}

func TestLoadMissingAPIKeyFails(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("SCORING_API_KEY", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing API key, got nil")
	}
	if !strings.Contains(err.Error(), "SCORING_API_KEY") {
		t.Errorf("error should name the missing variable: %v", err)
	}
}

func TestLoadUnknownProviderFails(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SCORING_PROVIDER", "mystery")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown provider, got nil")
	}
}

func TestLoadMinScoreOutOfRangeFails(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MIN_SCORE", "11")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for MIN_SCORE out of range, got nil")
	}
}

func TestLoadMalformedIntFails(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FRESH_WINDOW_HOURS", "a day or so")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed FRESH_WINDOW_HOURS, got nil")
	}
}

func TestLoadTelegramBothOrNeither(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for token without chat ID, got nil")
	}
}

func TestLoadRunOnceVariants(t *testing.T) {
	for _, v := range []string{"true", "1"} {
		t.Run(v, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("RUN_ONCE", v)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !cfg.RunOnce {
				t.Errorf("expected RunOnce true for %q", v)
			}
		})
	}
}

func TestLoadPathsBackends(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_DIR", dir)

	t.Setenv("STORE_BACKEND", "json")
	paths, err := LoadPaths()
	if err != nil {
		t.Fatalf("LoadPaths: %v", err)
	}
	if !strings.HasSuffix(paths.StorePath, "processed.json") {
		t.Errorf("unexpected json store path: %s", paths.StorePath)
	}

	t.Setenv("STORE_BACKEND", "sqlite")
	paths, err = LoadPaths()
	if err != nil {
		t.Fatalf("LoadPaths: %v", err)
	}
	if !strings.HasSuffix(paths.StorePath, "processed.db") {
		t.Errorf("unexpected sqlite store path: %s", paths.StorePath)
	}

	t.Setenv("STORE_BACKEND", "postgres")
	if _, err := LoadPaths(); err == nil {
		t.Fatal("expected error for unsupported backend, got nil")
	}
}
