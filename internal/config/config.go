package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/amberin/jobradar/internal/scoring"
)

// Config is the root configuration, materialized once from the environment
// at process start and threaded explicitly into the pipeline — business
// logic never reads the environment itself.
type Config struct {
	Scoring      ScoringConfig
	Telegram     TelegramConfig
	RunOnce      bool
	Schedule     string        // cron spec
	MinScore     int           // delivery threshold, 1-10
	FreshWindow  time.Duration // trailing freshness window
	StoreBackend string        // "json" or "sqlite"
	DataDir      string
	ProfilePath  string
}

// ScoringConfig selects and authenticates the scoring-oracle backend.
type ScoringConfig struct {
	Provider    scoring.Provider
	APIKey      string
	BaseURL     string // optional override
	Model       string
	Temperature float64
}

// TelegramConfig holds the optional notifier credentials. Both fields set
// selects the Telegram notifier; both empty selects the log notifier.
type TelegramConfig struct {
	BotToken string
	ChatID   string
}

// defaultModels picks a sensible model when SCORING_MODEL is unset.
var defaultModels = map[scoring.Provider]string{
	scoring.ProviderOpenAI:     "gpt-4o-mini",
	scoring.ProviderOpenRouter: "openai/gpt-4o-mini",
	scoring.ProviderGroq:       "llama-3.3-70b-versatile",
	scoring.ProviderAnthropic:  "claude-3-5-haiku-latest",
}

// Load reads configuration from the environment, applies defaults, and
// validates. Missing scoring credentials are a fatal configuration error:
// the process must exit before any fetch occurs.
func Load() (*Config, error) {
	provider := scoring.Provider(envOr("SCORING_PROVIDER", string(scoring.ProviderOpenAI)))

	minScore, err := envInt("MIN_SCORE", 8)
	if err != nil {
		return nil, err
	}
	windowHours, err := envInt("FRESH_WINDOW_HOURS", 24)
	if err != nil {
		return nil, err
	}
	temperature, err := envFloat("SCORING_TEMPERATURE", 0.2)
	if err != nil {
		return nil, err
	}

	paths, err := LoadPaths()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Scoring: ScoringConfig{
			Provider:    provider,
			APIKey:      os.Getenv("SCORING_API_KEY"),
			BaseURL:     os.Getenv("SCORING_BASE_URL"),
			Model:       envOr("SCORING_MODEL", defaultModels[provider]),
			Temperature: temperature,
		},
		Telegram: TelegramConfig{
			BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
			ChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		},
		RunOnce:      os.Getenv("RUN_ONCE") == "true" || os.Getenv("RUN_ONCE") == "1",
		Schedule:     envOr("CRON_SCHEDULE", "@every 6h"),
		MinScore:     minScore,
		FreshWindow:  time.Duration(windowHours) * time.Hour,
		StoreBackend: paths.StoreBackend,
		DataDir:      paths.DataDir,
		ProfilePath:  envOr("PROFILE_PATH", "profile.yaml"),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if !scoring.KnownProvider(cfg.Scoring.Provider) {
		return fmt.Errorf("unknown SCORING_PROVIDER %q", cfg.Scoring.Provider)
	}
	if cfg.Scoring.APIKey == "" {
		return fmt.Errorf("SCORING_API_KEY is required")
	}
	if cfg.Scoring.Model == "" {
		return fmt.Errorf("SCORING_MODEL is required for provider %q", cfg.Scoring.Provider)
	}
	if cfg.MinScore < 1 || cfg.MinScore > 10 {
		return fmt.Errorf("MIN_SCORE must be between 1 and 10, got %d", cfg.MinScore)
	}
	if cfg.FreshWindow <= 0 {
		return fmt.Errorf("FRESH_WINDOW_HOURS must be positive")
	}
	if (cfg.Telegram.BotToken == "") != (cfg.Telegram.ChatID == "") {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}
	return nil
}

// Paths resolves where local state lives. Commands that only touch local
// state (clear, review) load this without requiring scoring credentials.
type Paths struct {
	DataDir      string
	StoreBackend string
	StorePath    string
	ResultsPath  string
}

// LoadPaths resolves DATA_DIR and STORE_BACKEND from the environment with
// defaults.
func LoadPaths() (Paths, error) {
	backend := envOr("STORE_BACKEND", "json")
	if backend != "json" && backend != "sqlite" {
		return Paths{}, fmt.Errorf("STORE_BACKEND must be \"json\" or \"sqlite\", got %q", backend)
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, fmt.Errorf("resolve home dir for DATA_DIR default: %w", err)
		}
		dataDir = filepath.Join(home, ".jobradar")
	}

	storeFile := "processed.json"
	if backend == "sqlite" {
		storeFile = "processed.db"
	}

	return Paths{
		DataDir:      dataDir,
		StoreBackend: backend,
		StorePath:    filepath.Join(dataDir, storeFile),
		ResultsPath:  filepath.Join(dataDir, "results.json"),
	}, nil
}

// StorePath returns the dedup store location for the configured backend.
func (c *Config) StorePath() string {
	if c.StoreBackend == "sqlite" {
		return filepath.Join(c.DataDir, "processed.db")
	}
	return filepath.Join(c.DataDir, "processed.json")
}

// ResultsPath returns where the last run's scored results are persisted.
func (c *Config) ResultsPath() string {
	return filepath.Join(c.DataDir, "results.json")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", key, v, err)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", key, v, err)
	}
	return f, nil
}
