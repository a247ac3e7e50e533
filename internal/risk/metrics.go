package risk

import (
	"github.com/rxtech-lab/argo-signal-engine/internal/types"
)

// Status classifies overall portfolio risk.
type Status string

const (
	StatusLow      Status = "LOW"
	StatusMedium   Status = "MEDIUM"
	StatusHigh     Status = "HIGH"
	StatusCritical Status = "CRITICAL"
)

// Metrics is a read-only summary of the risk state against one account snapshot.
type Metrics struct {
	PortfolioValue          float64 `json:"portfolio_value"`
	PeakEquity              float64 `json:"peak_equity"`
	CurrentDrawdown         float64 `json:"current_drawdown"`
	MaxDrawdownLimit        float64 `json:"max_drawdown_limit"`
	DailyStartEquity        float64 `json:"daily_start_equity"`
	DailyPnL                float64 `json:"daily_pnl"`
	DailyPnLPct             float64 `json:"daily_pnl_pct"`
	DailyLossLimit          float64 `json:"daily_loss_limit"`
	CircuitBreakerTriggered bool    `json:"circuit_breaker_triggered"`
	MaxDrawdownTriggered    bool    `json:"max_drawdown_triggered"`
	Status                  Status  `json:"status"`
}

// Metrics computes drawdown and daily P&L and classifies the risk status.
// It never mutates state.
func (m *Manager) Metrics(account types.AccountSnapshot) Metrics {
	pv := account.PortfolioValue
	peak := m.state.PeakEquity.TakeOr(pv)
	start := m.state.DailyStartEquity.TakeOr(pv)

	var drawdown float64
	if d, ok := ratio(peak-pv, peak); ok {
		drawdown, _ = d.Float64()
	}

	dailyPnL := pv - start

	var dailyPct float64
	if d, ok := ratio(dailyPnL, start); ok {
		dailyPct, _ = d.Float64()
	}

	metrics := Metrics{
		PortfolioValue:          pv,
		PeakEquity:              peak,
		CurrentDrawdown:         drawdown,
		MaxDrawdownLimit:        m.limits.MaxDrawdown,
		DailyStartEquity:        start,
		DailyPnL:                dailyPnL,
		DailyPnLPct:             dailyPct,
		DailyLossLimit:          m.limits.DailyLossLimit,
		CircuitBreakerTriggered: m.state.CircuitBreakerTriggered,
		MaxDrawdownTriggered:    m.state.MaxDrawdownTriggered,
		Status:                  StatusLow,
	}
	metrics.Status = m.classify(metrics)

	return metrics
}

func (m *Manager) classify(metrics Metrics) Status {
	warn := m.limits.DrawdownWarningRatio

	switch {
	case metrics.CircuitBreakerTriggered || metrics.MaxDrawdownTriggered:
		return StatusCritical
	case metrics.CurrentDrawdown > m.limits.MaxDrawdown*warn:
		return StatusHigh
	case metrics.CurrentDrawdown > m.limits.MaxDrawdown*elevatedDrawdownRatio,
		-metrics.DailyPnLPct > m.limits.DailyLossLimit*warn:
		return StatusMedium
	default:
		return StatusLow
	}
}
