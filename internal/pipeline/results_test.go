package pipeline

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/amberin/jobradar/internal/model"
)

func analyzed(id string, score int) model.AnalyzedJob {
	return model.AnalyzedJob{
		Job:    model.Job{ID: id, Title: id, PostedAt: time.Now().UTC()},
		Score:  score,
		Reason: "because",
	}
}

func TestSaveThenLoadResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")

	jobs := []model.AnalyzedJob{
		analyzed("b-mid", 6),
		analyzed("b-high", 9),
		analyzed("b-low", 2),
	}
	if err := SaveResults(path, jobs); err != nil {
		t.Fatalf("SaveResults: %v", err)
	}

	result, err := LoadResults(path)
	if err != nil {
		t.Fatalf("LoadResults: %v", err)
	}
	if result.RanAt.IsZero() {
		t.Error("expected RanAt to be set")
	}
	if len(result.Jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(result.Jobs))
	}

	// Persisted sorted by score descending.
	wantOrder := []string{"b-high", "b-mid", "b-low"}
	for i, want := range wantOrder {
		if result.Jobs[i].ID != want {
			t.Errorf("job[%d]: expected %s, got %s", i, want, result.Jobs[i].ID)
		}
	}
}

func TestLoadResultsMissingFile(t *testing.T) {
	_, err := LoadResults(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err == nil {
		t.Fatal("expected error for missing results file, got nil")
	}
}

func TestSaveResultsCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "results.json")
	if err := SaveResults(path, []model.AnalyzedJob{analyzed("a", 5)}); err != nil {
		t.Fatalf("SaveResults: %v", err)
	}
	if _, err := LoadResults(path); err != nil {
		t.Fatalf("LoadResults: %v", err)
	}
}
