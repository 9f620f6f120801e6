package notifier

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/amberin/jobradar/internal/model"
)

// Ensure TelegramNotifier implements model.Notifier.
var _ model.Notifier = (*TelegramNotifier)(nil)

const telegramAPIBase = "https://api.telegram.org"

// interMessageDelay spaces consecutive sends to stay under Telegram's
// per-chat rate limit.
const interMessageDelay = 500 * time.Millisecond

// TelegramNotifier sends job alerts to a Telegram chat via the Bot API.
type TelegramNotifier struct {
	client *resty.Client
	chatID string
	logger *slog.Logger
}

// NewTelegramNotifier returns a notifier that posts each scored job as a
// separate Telegram message.
func NewTelegramNotifier(botToken, chatID string, logger *slog.Logger) *TelegramNotifier {
	return newTelegramNotifier(telegramAPIBase, botToken, chatID, logger)
}

func newTelegramNotifier(apiBase, botToken, chatID string, logger *slog.Logger) *TelegramNotifier {
	client := resty.New().
		SetBaseURL(fmt.Sprintf("%s/bot%s", apiBase, botToken)).
		SetTimeout(30 * time.Second)
	return &TelegramNotifier{client: client, chatID: chatID, logger: logger}
}

// Deliver sends one job alert. On HTTP 429 it honors the API's retry_after
// once before giving up.
func (t *TelegramNotifier) Deliver(job model.AnalyzedJob) error {
	resp, err := t.send(job)
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}

	if resp.StatusCode() == 429 {
		secs := gjson.GetBytes(resp.Body(), "parameters.retry_after").Int()
		if secs <= 0 {
			secs = 1
		}
		t.logger.Warn("telegram rate limited, retrying", "retry_after_secs", secs)
		time.Sleep(time.Duration(secs) * time.Second)

		resp, err = t.send(job)
		if err != nil {
			return fmt.Errorf("telegram send (retry): %w", err)
		}
	}

	if resp.IsError() {
		return fmt.Errorf("telegram returned %d: %s", resp.StatusCode(), resp.String())
	}

	t.logger.Info("telegram message sent", "job_id", job.ID, "score", job.Score)
	return nil
}

// DeliverBatch sends jobs sequentially with an inter-call delay. Returns an
// error only if ALL sends fail; individual failures are logged.
func (t *TelegramNotifier) DeliverBatch(jobs []model.AnalyzedJob) error {
	if len(jobs) == 0 {
		return nil
	}

	failures := 0
	for i, job := range jobs {
		if i > 0 {
			time.Sleep(interMessageDelay)
		}
		if err := t.Deliver(job); err != nil {
			t.logger.Error("telegram notification failed", "job_id", job.ID, "error", err)
			failures++
		}
	}

	if failures == len(jobs) {
		return fmt.Errorf("all %d telegram notifications failed", failures)
	}
	t.logger.Info("telegram notifications complete", "sent", len(jobs)-failures, "failed", failures)
	return nil
}

func (t *TelegramNotifier) send(job model.AnalyzedJob) (*resty.Response, error) {
	return t.client.R().
		SetBody(map[string]any{
			"chat_id":    t.chatID,
			"text":       formatMessage(job),
			"parse_mode": "HTML",
		}).
		Post("/sendMessage")
}

func formatMessage(job model.AnalyzedJob) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b> — %s\n", escapeHTML(job.Title), escapeHTML(job.Company))
	fmt.Fprintf(&b, "Score: <b>%d/10</b>\n", job.Score)
	fmt.Fprintf(&b, "%s\n\n", escapeHTML(job.Reason))
	fmt.Fprintf(&b, "Posted: %s (%s)\n", job.PostedAt.Format("Mon, 02 Jan 15:04 MST"), job.Source)
	fmt.Fprintf(&b, "%s", job.URL)
	return b.String()
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// SendTest sends a dummy job alert to verify the integration works.
func SendTest(n model.Notifier) error {
	return n.Deliver(model.AnalyzedJob{
		Job: model.Job{
			ID:       "test-001",
			Title:    "Test Notification — Integration Verified",
			Company:  "jobradar",
			URL:      "https://example.com",
			PostedAt: time.Now(),
			Source:   "test",
		},
		Score:  10,
		Reason: "This is a test message.",
	})
}
