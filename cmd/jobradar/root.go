package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/amberin/jobradar/internal/config"
	"github.com/amberin/jobradar/internal/model"
	"github.com/amberin/jobradar/internal/notifier"
	"github.com/amberin/jobradar/internal/store"
)

var (
	envFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobradar",
	Short: "Job radar — scored job alerts on a schedule",
	Long:  "jobradar polls public job boards, scores each fresh posting against your profile with an LLM, and alerts you to the good ones.",
	// Default to `run` so that `jobradar` with no args runs the pipeline.
	RunE:          runRun,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to .env file (missing file is ignored)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadEnv loads the .env file into the process environment. A missing file
// is fine — plain environment variables still apply.
func loadEnv(logger *slog.Logger) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to load env file", "path", envFile, "error", err)
	}
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	return logger
}

// setupStore opens the processed store for the configured backend. The
// returned closer is a no-op for backends without a connection.
func setupStore(backend, path string, logger *slog.Logger) (model.ProcessedStore, func(), error) {
	if backend == "sqlite" {
		s, err := store.NewSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	}
	s, err := store.NewJSONStore(path, logger)
	if err != nil {
		return nil, nil, err
	}
	return s, func() {}, nil
}

func setupNotifier(cfg *config.Config, logger *slog.Logger) model.Notifier {
	if cfg.Telegram.BotToken != "" {
		logger.Info("using telegram notifier")
		return notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger)
	}
	return notifier.NewLogNotifier(logger)
}
