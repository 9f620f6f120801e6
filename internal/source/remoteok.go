package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/amberin/jobradar/internal/model"
	"github.com/amberin/jobradar/internal/normalize"
)

const remoteOKBaseURL = "https://remoteok.com/api"

// remoteOKJob represents a single entry in the RemoteOK API response.
// The first array element is a legal-notice object with none of these
// fields set; the missing-ID guard below drops it.
type remoteOKJob struct {
	ID          json.Number `json:"id"`
	Position    string      `json:"position"`
	Company     string      `json:"company"`
	Description string      `json:"description"`
	URL         string      `json:"url"`
	Epoch       json.Number `json:"epoch"`
	Date        string      `json:"date"`
}

// RemoteOKAdapter fetches jobs from the RemoteOK public API.
//
// Strict policy: transport and payload-level failures propagate to the
// caller, which treats the source as absent for the run. Individual
// malformed entries are skipped without aborting the batch.
type RemoteOKAdapter struct {
	baseURL string
	client  *http.Client
}

// NewRemoteOKAdapter creates a new adapter for the RemoteOK API.
func NewRemoteOKAdapter(client *http.Client) *RemoteOKAdapter {
	return &RemoteOKAdapter{baseURL: remoteOKBaseURL, client: client}
}

func (a *RemoteOKAdapter) Name() model.Source { return model.SourceRemoteOK }

// FetchJobs retrieves all postings and normalizes them into the canonical
// Job model.
func (a *RemoteOKAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("remoteok fetch: %w", err)
	}
	req.Header.Set("User-Agent", "jobradar")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &model.TransportError{Source: "remoteok", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.TransportError{
			Source:     "remoteok",
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("remoteok fetch: unexpected status %d", resp.StatusCode),
		}
	}

	var entries []remoteOKJob
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, &model.ParseError{Source: "remoteok", Err: err}
	}

	jobs := make([]model.Job, 0, len(entries))
	for _, e := range entries {
		// Skip the leading legal-notice object and any entry missing
		// its identity fields. One bad record never aborts the batch.
		if e.ID.String() == "" || e.Position == "" {
			continue
		}

		epoch, _ := e.Epoch.Int64()
		jobs = append(jobs, normalize.Job(normalize.Raw{
			NativeID:    e.ID.String(),
			Title:       e.Position,
			Company:     e.Company,
			Description: extractText(e.Description),
			URL:         e.URL,
			EpochSec:    epoch,
			PostedRaw:   e.Date,
		}, model.SourceRemoteOK))
	}

	return jobs, nil
}
