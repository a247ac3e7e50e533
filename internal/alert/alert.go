// Package alert routes risk events to logs and out-of-band notifiers.
package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/rxtech-lab/argo-signal-engine/internal/risk"
)

// Alert is a notification built from a risk event.
type Alert struct {
	Title    string         `json:"title"`
	Message  string         `json:"message"`
	Severity risk.Severity  `json:"severity"`
	Type     risk.EventType `json:"type"`
	Symbol   string         `json:"symbol,omitempty"`
	Value    float64        `json:"value"`
	Limit    float64        `json:"limit"`
	Time     time.Time      `json:"time"`
}

// Notifier delivers alerts outside the log stream.
type Notifier interface {
	SendAlert(ctx context.Context, alert Alert) error
}

// FromEvent converts a risk event into an alert.
func FromEvent(event risk.Event) Alert {
	title := fmt.Sprintf("[%s] %s", event.Severity, event.Type)
	if event.Symbol != "" {
		title = fmt.Sprintf("%s %s", title, event.Symbol)
	}

	return Alert{
		Title:    title,
		Message:  event.Message,
		Severity: event.Severity,
		Type:     event.Type,
		Symbol:   event.Symbol,
		Value:    event.Value,
		Limit:    event.Limit,
		Time:     event.Time,
	}
}
