package alert

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-signal-engine/internal/logger"
	"github.com/rxtech-lab/argo-signal-engine/internal/risk"
	"github.com/rxtech-lab/argo-signal-engine/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookNotifierPostsJSON(t *testing.T) {
	var received webhookPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(WebhookConfig{URL: server.URL, Timeout: time.Second})
	err := notifier.SendAlert(context.Background(), Alert{
		Title:    "[CRITICAL] MAX_DRAWDOWN",
		Message:  "Max drawdown hit: 40.83%",
		Severity: risk.SeverityCritical,
		Type:     risk.EventMaxDrawdown,
	})
	require.NoError(t, err)
	assert.Equal(t, "[CRITICAL] MAX_DRAWDOWN: Max drawdown hit: 40.83%", received.Text)
	assert.Equal(t, risk.EventMaxDrawdown, received.Alert.Type)
}

func TestWebhookNotifierErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(WebhookConfig{URL: server.URL, Timeout: time.Second})
	err := notifier.SendAlert(context.Background(), Alert{Title: "t"})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeAlertFailed))
	assert.Contains(t, err.Error(), "502")
}

func TestLogNotifierNeverFails(t *testing.T) {
	n := NewLogNotifier(logger.NewNopLogger())
	assert.NoError(t, n.SendAlert(context.Background(), Alert{Title: "t", Message: "m"}))
}
