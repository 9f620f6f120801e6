package notifier

import (
	"log/slog"

	"github.com/amberin/jobradar/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes qualifying jobs to the given logger as structured
// messages. Default when no Telegram credentials are configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each job via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Deliver logs one job with score, reason, and link.
// Returns nil (stdout logging does not fail).
func (n *LogNotifier) Deliver(job model.AnalyzedJob) error {
	n.logger.Info("job match",
		"score", job.Score,
		"title", job.Title,
		"company", job.Company,
		"reason", job.Reason,
		"url", job.URL,
		"source", job.Source,
	)
	return nil
}

// DeliverBatch logs each job in order.
func (n *LogNotifier) DeliverBatch(jobs []model.AnalyzedJob) error {
	for _, job := range jobs {
		if err := n.Deliver(job); err != nil {
			return err
		}
	}
	return nil
}
