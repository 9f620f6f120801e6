package scoring

import (
	"strings"
	"testing"

	"github.com/amberin/jobradar/internal/model"
)

func testProfile() model.CandidateProfile {
	return model.CandidateProfile{
		Summary:    "Backend engineer, 6 years, mostly Go and distributed systems.",
		Skills:     []string{"Go", "PostgreSQL", "Kubernetes"},
		Location:   "Berlin",
		RemoteOnly: true,
		Industries: []string{"fintech", "infrastructure"},
	}
}

func TestBuildPromptIncludesJobAndProfile(t *testing.T) {
	job := model.Job{
		Title:       "Senior Go Engineer",
		Company:     "Acme",
		Description: "Build payment infrastructure in Go.",
	}

	prompt, err := BuildPrompt(job, testProfile())
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}

	for _, want := range []string{
		"Senior Go Engineer",
		"Acme",
		"Build payment infrastructure in Go.",
		"Go, PostgreSQL, Kubernetes",
		"Berlin",
		"fintech, infrastructure",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptTruncatesDescription(t *testing.T) {
	job := model.Job{
		Title:       "Engineer",
		Company:     "Acme",
		Description: strings.Repeat("x", descriptionBudget+500),
	}

	prompt, err := BuildPrompt(job, testProfile())
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}

	if strings.Contains(prompt, strings.Repeat("x", descriptionBudget+1)) {
		t.Error("description was not truncated to the budget")
	}
	if !strings.Contains(prompt, "…") {
		t.Error("expected truncation marker in prompt")
	}
}

func TestBuildPromptShortDescriptionUntouched(t *testing.T) {
	job := model.Job{
		Title:       "Engineer",
		Company:     "Acme",
		Description: "short description",
	}

	prompt, err := BuildPrompt(job, testProfile())
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	if !strings.Contains(prompt, "short description") {
		t.Error("short description should appear verbatim")
	}
	if strings.Contains(prompt, "short description…") {
		t.Error("short description must not get a truncation marker")
	}
}
