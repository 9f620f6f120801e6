package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/amberin/jobradar/internal/model"
)

// RunResult is the persisted outcome of one pipeline run, browsed by the
// review command.
type RunResult struct {
	RanAt time.Time           `json:"ranAt"`
	Jobs  []model.AnalyzedJob `json:"jobs"`
}

// SaveResults writes the scored jobs of a run, sorted by score descending,
// using the same temp-then-rename discipline as the processed store.
func SaveResults(path string, jobs []model.AnalyzedJob) error {
	sorted := make([]model.AnalyzedJob, len(jobs))
	copy(sorted, jobs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	result := RunResult{RanAt: time.Now().UTC(), Jobs: sorted}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run results: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write run results: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace run results: %w", err)
	}
	return nil
}

// LoadResults reads the persisted results of the last run.
func LoadResults(path string) (RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunResult{}, fmt.Errorf("read run results: %w", err)
	}
	var result RunResult
	if err := json.Unmarshal(data, &result); err != nil {
		return RunResult{}, fmt.Errorf("parse run results: %w", err)
	}
	return result, nil
}
