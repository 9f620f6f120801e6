package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/amberin/jobradar/internal/config"
	"github.com/amberin/jobradar/internal/model"
	"github.com/amberin/jobradar/internal/notifier"
	"github.com/amberin/jobradar/internal/pipeline"
	"github.com/amberin/jobradar/internal/ratelimit"
	"github.com/amberin/jobradar/internal/scheduler"
	"github.com/amberin/jobradar/internal/scoring"
	"github.com/amberin/jobradar/internal/source"
	"github.com/amberin/jobradar/internal/store"
)

// Minimum spacing between scoring-oracle requests. Keeps us well inside
// free-tier rate limits on groq and openrouter.
const oracleMinDelay = time.Second

var (
	runOnce bool
	dryRun  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, score, and deliver matching jobs",
	Long:  "Run the fetch/score/notify pipeline. By default runs on the configured cron schedule and blocks until SIGINT/SIGTERM.",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runOnce, "once", false, "run a single cycle and exit")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "skip dedup persistence and external delivery")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	loadEnv(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		logger.Error("failed to load profile", "path", cfg.ProfilePath, "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"provider", cfg.Scoring.Provider,
		"model", cfg.Scoring.Model,
		"min_score", cfg.MinScore,
		"fresh_window", cfg.FreshWindow.String(),
		"store_backend", cfg.StoreBackend,
		"schedule", cfg.Schedule,
	)

	var (
		jobStore model.ProcessedStore
		closer   = func() {}
	)
	if dryRun {
		logger.Info("dry run: dedup markers and notifications are suppressed")
		jobStore = store.NewNopStore()
	} else {
		jobStore, closer, err = setupStore(cfg.StoreBackend, cfg.StorePath(), logger)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			os.Exit(1)
		}
	}
	defer closer()

	httpClient := &http.Client{Timeout: 30 * time.Second}
	limiter := ratelimit.NewLimiter(oracleMinDelay)
	client := scoring.NewClient(scoring.Options{
		Provider:    cfg.Scoring.Provider,
		APIKey:      cfg.Scoring.APIKey,
		BaseURL:     cfg.Scoring.BaseURL,
		Model:       cfg.Scoring.Model,
		Temperature: cfg.Scoring.Temperature,
	}, httpClient, limiter)
	analyzer := scoring.NewAnalyzer(client, logger)

	var n model.Notifier
	if dryRun {
		n = notifier.NewLogNotifier(logger)
	} else {
		n = setupNotifier(cfg, logger)
	}

	pipe := pipeline.New(
		source.DefaultRegistry(httpClient),
		jobStore,
		analyzer,
		n,
		profile,
		cfg.FreshWindow,
		cfg.MinScore,
		cfg.ResultsPath(),
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if runOnce || cfg.RunOnce {
		if err := pipe.Run(ctx); err != nil {
			logger.Error("run failed", "error", err)
			os.Exit(1)
		}
		return nil
	}

	sched := scheduler.New(pipe, cfg.Schedule, logger)
	if err := sched.Run(ctx); err != nil {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}
