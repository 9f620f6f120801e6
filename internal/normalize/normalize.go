package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/amberin/jobradar/internal/model"
)

// Raw is the union of the fields a source may provide for one posting.
// Adapters map their native payloads into Raw; Normalize turns Raw into the
// canonical Job. Identity (NativeID or URL) is the adapter's responsibility
// to check before calling Normalize.
type Raw struct {
	NativeID    string
	Title       string
	Company     string
	Description string
	URL         string
	EpochSec    int64  // unix seconds, preferred when > 0
	PostedRaw   string // RFC-822 / ISO / date-time string, tried in order
}

const (
	fallbackTitle   = "Untitled"
	fallbackCompany = "Unknown"
)

// postedLayouts are tried in order against Raw.PostedRaw.
var postedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02",
}

// Job maps a raw source record into the canonical model. Pure and
// deterministic for a given (raw, source, now) triple: the derived ID is
// always "<source>-<nativeID>". Missing optional fields fall back to
// placeholders rather than failing the record.
func Job(raw Raw, source model.Source) model.Job {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		title = fallbackTitle
	}

	company := strings.TrimSpace(raw.Company)
	if company == "" {
		company = fallbackCompany
	}

	return model.Job{
		ID:          fmt.Sprintf("%s-%s", source, raw.NativeID),
		Title:       title,
		Company:     company,
		Description: strings.TrimSpace(raw.Description),
		URL:         strings.TrimSpace(raw.URL),
		PostedAt:    postedAt(raw),
		Source:      source,
	}
}

// postedAt derives the posting time from whatever representation the source
// gave us. Unparseable input falls back to now rather than failing the
// record; the freshness filter then treats the job as just posted.
func postedAt(raw Raw) time.Time {
	if raw.EpochSec > 0 {
		return time.Unix(raw.EpochSec, 0).UTC()
	}

	s := strings.TrimSpace(raw.PostedRaw)
	if s != "" {
		for _, layout := range postedLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC()
			}
		}
	}

	return time.Now().UTC()
}
