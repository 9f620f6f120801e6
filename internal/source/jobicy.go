package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/amberin/jobradar/internal/model"
	"github.com/amberin/jobradar/internal/normalize"
)

// jobicyEndpoints are tried in order; the first one yielding at least one
// normalized job wins. The narrower dev-tagged endpoint comes first, the
// unfiltered listing is the fallback.
var jobicyEndpoints = []string{
	"https://jobicy.com/api/v2/remote-jobs?count=50&tag=dev",
	"https://jobicy.com/api/v2/remote-jobs?count=50",
}

// jobicyJob represents a single job in the Jobicy API response.
type jobicyJob struct {
	ID             json.Number `json:"id"`
	JobTitle       string      `json:"jobTitle"`
	CompanyName    string      `json:"companyName"`
	URL            string      `json:"url"`
	JobDescription string      `json:"jobDescription"`
	PubDate        string      `json:"pubDate"`
}

// jobicyResponse is the top-level Jobicy API response.
type jobicyResponse struct {
	Jobs []jobicyJob `json:"jobs"`
}

// JobicyAdapter fetches jobs from the Jobicy API, trying an ordered list of
// candidate endpoints.
//
// Lenient policy: each endpoint failure is logged and the next endpoint is
// tried; exhausting the list returns an empty list, never an error.
type JobicyAdapter struct {
	endpoints []string
	client    *http.Client
	logger    *slog.Logger
}

// NewJobicyAdapter creates a new adapter for the Jobicy API.
func NewJobicyAdapter(client *http.Client) *JobicyAdapter {
	return &JobicyAdapter{endpoints: jobicyEndpoints, client: client, logger: slog.Default()}
}

func (a *JobicyAdapter) Name() model.Source { return model.SourceJobicy }

// FetchJobs tries each endpoint in sequence and accepts the first that
// yields at least one successfully normalized job.
func (a *JobicyAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	for _, endpoint := range a.endpoints {
		jobs, err := a.fetchEndpoint(ctx, endpoint)
		if err != nil {
			a.logger.Warn("jobicy endpoint failed, trying next", "endpoint", endpoint, "error", err)
			continue
		}
		if len(jobs) > 0 {
			return jobs, nil
		}
	}
	return nil, nil
}

// fetchEndpoint fetches and normalizes one candidate endpoint.
func (a *JobicyAdapter) fetchEndpoint(ctx context.Context, endpoint string) ([]model.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("jobicy fetch: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jobicy fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jobicy fetch: unexpected status %d", resp.StatusCode)
	}

	var jResp jobicyResponse
	if err := json.NewDecoder(resp.Body).Decode(&jResp); err != nil {
		return nil, fmt.Errorf("jobicy fetch decode: %w", err)
	}

	jobs := make([]model.Job, 0, len(jResp.Jobs))
	for _, jj := range jResp.Jobs {
		if jj.ID.String() == "" || jj.JobTitle == "" {
			continue
		}

		jobs = append(jobs, normalize.Job(normalize.Raw{
			NativeID:    jj.ID.String(),
			Title:       jj.JobTitle,
			Company:     jj.CompanyName,
			Description: extractText(jj.JobDescription),
			URL:         jj.URL,
			PostedRaw:   jj.PubDate,
		}, model.SourceJobicy))
	}

	return jobs, nil
}
