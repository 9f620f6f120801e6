package main

import (
	"github.com/spf13/cobra"

	"github.com/amberin/jobradar/internal/config"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all processed job IDs",
	Long:  "Clear the dedup store so the next run re-scores everything still inside the freshness window.",
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	loadEnv(logger)

	paths, err := config.LoadPaths()
	if err != nil {
		return err
	}

	jobStore, closer, err := setupStore(paths.StoreBackend, paths.StorePath, logger)
	if err != nil {
		return err
	}
	defer closer()

	if err := jobStore.Clear(); err != nil {
		return err
	}
	logger.Info("processed store cleared", "path", paths.StorePath)
	return nil
}
