package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amberin/jobradar/internal/config"
	"github.com/amberin/jobradar/internal/pipeline"
	"github.com/amberin/jobradar/internal/review"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Browse the last run's scored jobs in a TUI",
	RunE:  runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	loadEnv(logger)

	paths, err := config.LoadPaths()
	if err != nil {
		return err
	}

	result, err := pipeline.LoadResults(paths.ResultsPath)
	if err != nil {
		return fmt.Errorf("no results to review (run the pipeline first): %w", err)
	}
	return review.Run(result)
}
