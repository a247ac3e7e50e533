package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-signal-engine/internal/risk"
	"github.com/rxtech-lab/argo-signal-engine/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()

	server := httptest.NewServer(c.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(body)
}

func TestCollectorExposesCounters(t *testing.T) {
	c := NewCollector()

	c.RecordRejection(risk.ReasonDailyLossLimit)
	c.RecordRejection(risk.ReasonDailyLossLimit)
	c.RecordSignal("BULLISH", "HIGH")
	c.RecordProposal("STOCK", "BUY", true)
	c.RecordExit(risk.ExitStopLoss)
	c.RecordError(errors.New(errors.ErrCodeNoOptionsChain, "no chain"))
	c.RecordError(nil)
	c.ObserveCycle(1500 * time.Millisecond)

	body := scrape(t, c)
	assert.Contains(t, body, `signal_engine_risk_rejections_total{reason="DAILY_LOSS_LIMIT"} 2`)
	assert.Contains(t, body, `signal_engine_signals_total{confidence="HIGH",direction="BULLISH"} 1`)
	assert.Contains(t, body, `signal_engine_proposals_total{accepted="true",asset_type="STOCK",side="BUY"} 1`)
	assert.Contains(t, body, `signal_engine_exits_total{reason="STOP_LOSS"} 1`)
	assert.Contains(t, body, `signal_engine_errors_total{category="data"} 1`)
	assert.Contains(t, body, "signal_engine_cycles_total 1")
}

func TestCollectorRiskGauges(t *testing.T) {
	c := NewCollector()

	c.ObserveRisk(risk.Metrics{
		PortfolioValue:       71000,
		CurrentDrawdown:      0.4083,
		MaxDrawdownTriggered: true,
		Status:               risk.StatusCritical,
	})

	body := scrape(t, c)
	assert.Contains(t, body, "signal_engine_portfolio_value 71000")
	assert.Contains(t, body, "signal_engine_drawdown_ratio 0.4083")
	assert.Contains(t, body, `signal_engine_halted{latch="max_drawdown"} 1`)
	assert.Contains(t, body, `signal_engine_halted{latch="circuit_breaker"} 0`)
	assert.Contains(t, body, `signal_engine_risk_status{status="CRITICAL"} 1`)
	assert.Contains(t, body, `signal_engine_risk_status{status="LOW"} 0`)
}

func TestCollectorsAreIndependent(t *testing.T) {
	a, b := NewCollector(), NewCollector()
	a.RecordSignal("BEARISH", "LOW")

	assert.NotContains(t, scrape(t, b), `signal_engine_signals_total{confidence="LOW"`)
}
