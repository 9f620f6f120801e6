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

const remotiveBaseURL = "https://remotive.com/api/remote-jobs"

// remotiveJob represents a single job in the Remotive API response.
type remotiveJob struct {
	ID              json.Number `json:"id"`
	Title           string      `json:"title"`
	CompanyName     string      `json:"company_name"`
	URL             string      `json:"url"`
	Description     string      `json:"description"`
	PublicationDate string      `json:"publication_date"`
}

// remotiveResponse is the top-level Remotive API response.
type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

// RemotiveAdapter fetches jobs from the Remotive public API.
//
// Lenient policy: any transport or parse failure is swallowed and an empty
// list returned, so a Remotive outage never costs the rest of the run.
type RemotiveAdapter struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewRemotiveAdapter creates a new adapter for the Remotive API.
func NewRemotiveAdapter(client *http.Client) *RemotiveAdapter {
	return &RemotiveAdapter{baseURL: remotiveBaseURL, client: client, logger: slog.Default()}
}

func (a *RemotiveAdapter) Name() model.Source { return model.SourceRemotive }

// FetchJobs retrieves all postings, degrading to an empty list on any
// failure. Entries missing id or title are skipped.
func (a *RemotiveAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL, nil)
	if err != nil {
		return nil, nil
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Warn("remotive fetch failed, continuing without it", "error", err)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Warn("remotive fetch failed, continuing without it",
			"error", fmt.Errorf("unexpected status %d", resp.StatusCode))
		return nil, nil
	}

	var rResp remotiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&rResp); err != nil {
		a.logger.Warn("remotive payload malformed, continuing without it", "error", err)
		return nil, nil
	}

	jobs := make([]model.Job, 0, len(rResp.Jobs))
	for _, rj := range rResp.Jobs {
		if rj.ID.String() == "" || rj.Title == "" {
			continue
		}

		jobs = append(jobs, normalize.Job(normalize.Raw{
			NativeID:    rj.ID.String(),
			Title:       rj.Title,
			Company:     rj.CompanyName,
			Description: extractText(rj.Description),
			URL:         rj.URL,
			PostedRaw:   rj.PublicationDate,
		}, model.SourceRemotive))
	}

	return jobs, nil
}
