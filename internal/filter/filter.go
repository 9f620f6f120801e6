package filter

import (
	"time"

	"github.com/amberin/jobradar/internal/model"
)

// Fresh keeps jobs posted within the trailing window: 0 <= now-postedAt <=
// window. Jobs with a future PostedAt are excluded rather than clamped, so
// clock skew or a bad date parse cannot produce an always-fresh entry.
// Idempotent: filtering an already-filtered list with the same window
// returns the same list.
func Fresh(jobs []model.Job, window time.Duration) []model.Job {
	return fresh(jobs, window, time.Now())
}

func fresh(jobs []model.Job, window time.Duration, now time.Time) []model.Job {
	kept := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		age := now.Sub(j.PostedAt)
		if age < 0 || age > window {
			continue
		}
		kept = append(kept, j)
	}
	return kept
}
