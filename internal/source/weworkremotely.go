package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"regexp"

	"github.com/amberin/jobradar/internal/model"
	"github.com/amberin/jobradar/internal/normalize"
)

const wwrFeedURL = "https://weworkremotely.com/remote-jobs.rss"

// rssFeed models the subset of the WeWorkRemotely RSS document we read.
type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
}

var guidIDRegex = regexp.MustCompile(`(\d+)$`)

// WeWorkRemotelyAdapter fetches jobs from the WeWorkRemotely RSS feed.
//
// This is the sole RSS source, so both failure modes propagate: a network
// failure as TransportError and non-well-formed XML as ParseError. The
// latter signals systemic feed breakage rather than a transient glitch.
type WeWorkRemotelyAdapter struct {
	feedURL string
	client  *http.Client
}

// NewWeWorkRemotelyAdapter creates a new adapter for the WWR feed.
func NewWeWorkRemotelyAdapter(client *http.Client) *WeWorkRemotelyAdapter {
	return &WeWorkRemotelyAdapter{feedURL: wwrFeedURL, client: client}
}

func (a *WeWorkRemotelyAdapter) Name() model.Source { return model.SourceWeWorkRemotely }

// FetchJobs retrieves the feed and normalizes each item into the canonical
// Job model. Items without a link are skipped.
func (a *WeWorkRemotelyAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("weworkremotely fetch: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &model.TransportError{Source: "weworkremotely", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.TransportError{
			Source:     "weworkremotely",
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("weworkremotely fetch: unexpected status %d", resp.StatusCode),
		}
	}

	var feed rssFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, &model.ParseError{Source: "weworkremotely", Err: err}
	}

	jobs := make([]model.Job, 0, len(feed.Channel.Items))
	for _, item := range feed.Channel.Items {
		if item.Link == "" {
			continue
		}

		title, company := splitTitleCompany(item.Title)

		jobs = append(jobs, normalize.Job(normalize.Raw{
			NativeID:    a.nativeID(item),
			Title:       title,
			Company:     company,
			Description: extractText(item.Description),
			URL:         item.Link,
			PostedRaw:   item.PubDate,
		}, model.SourceWeWorkRemotely))
	}

	return jobs, nil
}

// nativeID prefers the numeric tail of the item GUID; items without one get
// a deterministic hash of the link as a last-resort key.
func (a *WeWorkRemotelyAdapter) nativeID(item rssItem) string {
	if m := guidIDRegex.FindString(item.GUID); m != "" {
		return m
	}
	return hashKey(item.Link)
}
