package alert

import (
	"context"

	"github.com/rxtech-lab/argo-signal-engine/internal/logger"
	"github.com/rxtech-lab/argo-signal-engine/internal/risk"
	"github.com/rxtech-lab/argo-signal-engine/pkg/errors"
	"go.uber.org/zap"
)

// Dispatcher logs every risk event at its severity and forwards events that
// request an alert to each notifier.
type Dispatcher struct {
	notifiers []Notifier
	log       *logger.Logger
}

// NewDispatcher creates a dispatcher. Notifiers may be empty.
func NewDispatcher(log *logger.Logger, notifiers ...Notifier) *Dispatcher {
	return &Dispatcher{notifiers: notifiers, log: log}
}

// Dispatch handles the events in order. Notifier failures are logged and
// reported as one ErrCodeAlertFailed error after every event was handled.
func (d *Dispatcher) Dispatch(ctx context.Context, events ...risk.Event) error {
	var (
		failed  int
		lastErr error
	)

	for _, event := range events {
		d.logEvent(event)

		if !event.Alert {
			continue
		}

		alert := FromEvent(event)

		for _, n := range d.notifiers {
			if err := n.SendAlert(ctx, alert); err != nil {
				failed++
				lastErr = err

				d.log.Error("Failed to send alert",
					zap.String("type", string(event.Type)),
					zap.Error(err),
				)
			}
		}
	}

	if lastErr != nil {
		return errors.Wrapf(errors.ErrCodeAlertFailed, lastErr, "%d alert deliveries failed", failed)
	}

	return nil
}

func (d *Dispatcher) logEvent(event risk.Event) {
	fields := []zap.Field{
		zap.String("type", string(event.Type)),
		zap.String("symbol", event.Symbol),
		zap.Float64("value", event.Value),
		zap.Float64("limit", event.Limit),
	}

	switch event.Severity {
	case risk.SeverityCritical:
		d.log.Error(event.Message, fields...)
	case risk.SeverityWarning:
		d.log.Warn(event.Message, fields...)
	case risk.SeverityInfo:
		d.log.Info(event.Message, fields...)
	default:
		d.log.Info(event.Message, fields...)
	}
}
