package alert

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rxtech-lab/argo-signal-engine/internal/logger"
	"github.com/rxtech-lab/argo-signal-engine/pkg/errors"
	"go.uber.org/zap"
)

// LogNotifier writes alerts to a dedicated logger. It is used when no webhook is configured.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier creates a notifier that only logs.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.Named("alert")}
}

// SendAlert implements Notifier.
func (n *LogNotifier) SendAlert(_ context.Context, alert Alert) error {
	n.log.Warn(alert.Title,
		zap.String("message", alert.Message),
		zap.String("severity", string(alert.Severity)),
		zap.Float64("value", alert.Value),
		zap.Float64("limit", alert.Limit),
	)

	return nil
}

// WebhookConfig configures a WebhookNotifier.
type WebhookConfig struct {
	URL        string
	Timeout    time.Duration
	RetryCount int
}

// WebhookNotifier posts alerts as JSON to a webhook endpoint.
type WebhookNotifier struct {
	url    string
	client *resty.Client
}

// NewWebhookNotifier creates a webhook notifier.
func NewWebhookNotifier(cfg WebhookConfig) *WebhookNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(cfg.RetryCount).
		SetHeader("Content-Type", "application/json")

	return &WebhookNotifier{url: cfg.URL, client: client}
}

type webhookPayload struct {
	Text  string `json:"text"`
	Alert Alert  `json:"alert"`
}

// SendAlert implements Notifier. Non-2xx responses are errors.
func (n *WebhookNotifier) SendAlert(ctx context.Context, alert Alert) error {
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(webhookPayload{Text: alert.Title + ": " + alert.Message, Alert: alert}).
		Post(n.url)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAlertFailed, "webhook request failed", err)
	}

	if resp.IsError() {
		return errors.Newf(errors.ErrCodeAlertFailed, "webhook returned status %d", resp.StatusCode())
	}

	return nil
}
