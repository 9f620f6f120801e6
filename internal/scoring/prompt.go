package scoring

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/amberin/jobradar/internal/model"
)

//go:embed prompts/job_score.md
var jobScorePromptRaw string

// jobScoreTemplate is the parsed scoring prompt. Parsed once at package
// init; reused on every Analyze call.
var jobScoreTemplate = template.Must(template.New("job_score").Parse(jobScorePromptRaw))

// descriptionBudget caps how much of the job description is embedded in the
// prompt. The stored Job keeps the full text.
const descriptionBudget = 1500

// promptData flattens profile and job fields for the template.
type promptData struct {
	Summary     string
	Skills      string
	Location    string
	RemoteOnly  bool
	Industries  string
	Title       string
	Company     string
	Description string
}

// BuildPrompt renders the deterministic scoring prompt for one job against
// the candidate profile. The description is truncated to descriptionBudget
// runes with an ellipsis marker when it exceeds the budget.
func BuildPrompt(job model.Job, profile model.CandidateProfile) (string, error) {
	data := promptData{
		Summary:     profile.Summary,
		Skills:      strings.Join(profile.Skills, ", "),
		Location:    profile.Location,
		RemoteOnly:  profile.RemoteOnly,
		Industries:  strings.Join(profile.Industries, ", "),
		Title:       job.Title,
		Company:     job.Company,
		Description: truncate(job.Description, descriptionBudget),
	}

	var buf bytes.Buffer
	if err := jobScoreTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render scoring prompt: %w", err)
	}
	return buf.String(), nil
}

func truncate(s string, budget int) string {
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return string(runes[:budget]) + "…"
}
