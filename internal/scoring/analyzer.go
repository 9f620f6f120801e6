package scoring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amberin/jobradar/internal/model"
)

// systemPrompt is sent alongside every scoring prompt.
const systemPrompt = "You are a precise job-match evaluator. Respond only with the requested JSON object."

// Analyzer implements model.JobAnalyzer on top of a provider client.
type Analyzer struct {
	client *Client
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer that scores jobs via the given client.
func NewAnalyzer(client *Client, logger *slog.Logger) *Analyzer {
	return &Analyzer{client: client, logger: logger}
}

// Analyze builds the prompt, invokes the oracle, and validates the verdict.
// Every failure propagates to the caller: the pipeline decides what a failed
// score means, this operation never degrades silently.
func (a *Analyzer) Analyze(ctx context.Context, job model.Job, profile model.CandidateProfile) (model.AnalyzedJob, error) {
	prompt, err := BuildPrompt(job, profile)
	if err != nil {
		return model.AnalyzedJob{}, err
	}

	raw, err := a.client.Invoke(ctx, prompt, systemPrompt)
	if err != nil {
		return model.AnalyzedJob{}, fmt.Errorf("score %s: %w", job.ID, err)
	}

	score, err := ParseScore(raw)
	if err != nil {
		return model.AnalyzedJob{}, fmt.Errorf("score %s: %w", job.ID, err)
	}

	a.logger.Debug("job scored", "job_id", job.ID, "score", score.Value)

	return model.AnalyzedJob{Job: job, Score: score.Value, Reason: score.Reason}, nil
}
