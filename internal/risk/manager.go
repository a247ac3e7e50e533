// Package risk owns the portfolio's safety state and every trade gate.
//
// The Manager performs no I/O. Each check returns a Result carrying the risk
// events it produced, and the caller decides how to log or alert on them.
// A Manager is not safe for concurrent use; the engine drives it from the cycle
// goroutine only.
package risk

import (
	"fmt"
	"math"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal-engine/internal/config"
	"github.com/rxtech-lab/argo-signal-engine/internal/types"
	"github.com/shopspring/decimal"
)

// elevatedDrawdownRatio is the share of max drawdown that marks MEDIUM risk.
const elevatedDrawdownRatio = 0.5

// Clock returns the current time. Tests replace it to cross day boundaries.
type Clock func() time.Time

// Manager enforces the risk limits in config.RiskConfig.
type Manager struct {
	limits   config.RiskConfig
	location *time.Location
	clock    Clock
	state    State
}

// NewManager creates a manager with empty state. A nil clock uses time.Now.
func NewManager(cfg config.Config, clock Clock) *Manager {
	if clock == nil {
		clock = time.Now
	}

	return &Manager{
		limits:   cfg.Risk,
		location: cfg.Location(),
		clock:    clock,
		state:    NewState(),
	}
}

// NewManagerWithState restores a manager from a previously saved state.
func NewManagerWithState(cfg config.Config, clock Clock, state State) *Manager {
	m := NewManager(cfg, clock)
	m.state = state

	return m
}

// State returns a copy of the current risk state.
func (m *Manager) State() State {
	return m.state
}

// Limits returns the limits the manager enforces.
func (m *Manager) Limits() config.RiskConfig {
	return m.limits
}

func (m *Manager) now() time.Time {
	return m.clock().In(m.location)
}

func (m *Manager) event(eventType EventType, severity Severity, value, limit float64, message string) Event {
	return Event{
		Type:     eventType,
		Severity: severity,
		Message:  message,
		Symbol:   "",
		Value:    value,
		Limit:    limit,
		Alert:    severity == SeverityCritical,
		Time:     m.clock(),
	}
}

func (m *Manager) invalid(message string) Result {
	return reject(ReasonInvalidInput, 0, 0, message,
		m.event(EventInvalidInput, SeverityWarning, 0, 0, message))
}

// ResetDailyLimits starts a new trading day when the market-zone calendar date
// has changed since the last reset. It returns true when a reset happened.
func (m *Manager) ResetDailyLimits(equity float64) (bool, []Event) {
	today := midnight(m.now())

	if m.state.LastResetDate.IsSome() && sameDay(m.state.LastResetDate.Unwrap(), today) {
		return false, nil
	}

	m.state.DailyStartEquity = optional.Some(equity)
	m.state.CircuitBreakerTriggered = false
	m.state.LastResetDate = optional.Some(today)

	return true, []Event{m.event(EventDailyReset, SeverityInfo, equity, 0,
		fmt.Sprintf("Daily limits reset for %s, start equity $%.2f", today.Format("2006-01-02"), equity))}
}

// UpdatePeakEquity raises the recorded peak. Non-finite values are ignored.
func (m *Manager) UpdatePeakEquity(equity float64) {
	if !finite(equity) {
		return
	}

	if m.state.PeakEquity.IsNone() || equity > m.state.PeakEquity.Unwrap() {
		m.state.PeakEquity = optional.Some(equity)
	}
}

// CheckDailyLossLimit trips the circuit breaker once the day's loss reaches the limit.
// The first call of a process records the start equity and allows.
func (m *Manager) CheckDailyLossLimit(equity float64) Result {
	if m.state.CircuitBreakerTriggered {
		return reject(ReasonDailyLossLimit, 0, m.limits.DailyLossLimit, "Circuit breaker already triggered today")
	}

	if !finite(equity) {
		return m.invalid("Daily loss check: equity is not a number")
	}

	if m.state.DailyStartEquity.IsNone() {
		m.state.DailyStartEquity = optional.Some(equity)

		return allow()
	}

	start := m.state.DailyStartEquity.Unwrap()
	lossPct, ok := ratio(start-equity, start)

	if !ok {
		return m.invalid(fmt.Sprintf("Daily loss check: start equity $%.2f is not positive", start))
	}

	loss, _ := lossPct.Float64()
	if lossPct.GreaterThanOrEqual(decimal.NewFromFloat(m.limits.DailyLossLimit)) {
		m.state.CircuitBreakerTriggered = true
		msg := fmt.Sprintf("Daily loss limit hit: %s", percent(lossPct))

		return reject(ReasonDailyLossLimit, loss, m.limits.DailyLossLimit, msg,
			m.event(EventCircuitBreaker, SeverityCritical, loss, m.limits.DailyLossLimit, msg))
	}

	return allow()
}

// CheckMaxDrawdown halts trading once equity falls MaxDrawdown below its peak.
// The halt is never lifted automatically.
func (m *Manager) CheckMaxDrawdown(equity float64) Result {
	if m.state.MaxDrawdownTriggered {
		return reject(ReasonMaxDrawdown, 0, m.limits.MaxDrawdown, "Max drawdown limit triggered - trading halted")
	}

	if !finite(equity) {
		return m.invalid("Drawdown check: equity is not a number")
	}

	if m.state.PeakEquity.IsNone() {
		m.state.PeakEquity = optional.Some(equity)

		return allow()
	}

	m.UpdatePeakEquity(equity)

	peak := m.state.PeakEquity.Unwrap()
	drawdown, ok := ratio(peak-equity, peak)

	if !ok {
		return m.invalid(fmt.Sprintf("Drawdown check: peak equity $%.2f is not positive", peak))
	}

	dd, _ := drawdown.Float64()
	limit := decimal.NewFromFloat(m.limits.MaxDrawdown)

	if drawdown.GreaterThanOrEqual(limit) {
		m.state.MaxDrawdownTriggered = true
		msg := fmt.Sprintf("Max drawdown hit: %s", percent(drawdown))

		return reject(ReasonMaxDrawdown, dd, m.limits.MaxDrawdown, msg,
			m.event(EventMaxDrawdown, SeverityCritical, dd, m.limits.MaxDrawdown, msg))
	}

	if drawdown.GreaterThanOrEqual(limit.Mul(decimal.NewFromFloat(m.limits.DrawdownWarningRatio))) {
		msg := fmt.Sprintf("Approaching max drawdown: %s of %s", percent(drawdown), percent(limit))

		return allow(m.event(EventDrawdownWarning, SeverityWarning, dd, m.limits.MaxDrawdown, msg))
	}

	return allow()
}

// ResetDrawdownHalt is the manual release of a max drawdown halt.
// Peak equity is re-based to equity so the halt does not fire again immediately.
func (m *Manager) ResetDrawdownHalt(equity float64) Event {
	m.state.MaxDrawdownTriggered = false

	if finite(equity) {
		m.state.PeakEquity = optional.Some(equity)
	}

	return m.event(EventDrawdownReset, SeverityWarning, equity, m.limits.MaxDrawdown,
		fmt.Sprintf("Max drawdown halt reset manually, peak re-based to $%.2f", equity))
}

// CheckPositionSize enforces the per-asset cap and the minimum position size.
func (m *Manager) CheckPositionSize(value, portfolioValue float64, assetType types.AssetType) Result {
	if !finite(value) {
		return m.invalid("Position size check: value is not a number")
	}

	pct, ok := ratio(value, portfolioValue)
	if !ok {
		return m.invalid(fmt.Sprintf("Position size check: portfolio value $%.2f is not positive", portfolioValue))
	}

	capPct := m.limits.MaxPositionSizeStock
	if assetType == types.AssetTypeOption {
		capPct = m.limits.MaxPositionSizeOption
	}

	size, _ := pct.Float64()
	if pct.GreaterThan(decimal.NewFromFloat(capPct)) {
		msg := fmt.Sprintf("Position too large: %s > %s limit", percent(pct), percent(decimal.NewFromFloat(capPct)))

		return reject(ReasonPositionTooLarge, size, capPct, msg,
			m.event(EventPositionSize, SeverityWarning, size, capPct, msg))
	}

	if value < m.limits.MinPositionSize {
		return reject(ReasonPositionTooSmall, value, m.limits.MinPositionSize,
			fmt.Sprintf("Position too small: $%.2f < $%.2f minimum", value, m.limits.MinPositionSize))
	}

	return allow()
}

// CheckPositionCount rejects when total, stock or option counts are at their maximum,
// checked in that order.
func (m *Manager) CheckPositionCount(counts types.PositionCounts) Result {
	checks := []struct {
		label   string
		current int
		max     int
	}{
		{"total", counts.Total, m.limits.MaxTotalPositions},
		{"stock", counts.Stocks, m.limits.MaxStockPositions},
		{"options", counts.Options, m.limits.MaxOptionsPositions},
	}

	for _, c := range checks {
		if c.current >= c.max {
			msg := fmt.Sprintf("Max %s positions reached: %d/%d", c.label, c.current, c.max)

			return reject(ReasonPositionCountExceeded, float64(c.current), float64(c.max), msg,
				m.event(EventPositionCount, SeverityInfo, float64(c.current), float64(c.max), msg))
		}
	}

	return allow()
}

// CheckBuyingPower rejects when the trade needs more than is available.
func (m *Manager) CheckBuyingPower(required, available float64) Result {
	if !finite(required) || !finite(available) {
		return m.invalid("Buying power check: amount is not a number")
	}

	if required > available {
		msg := fmt.Sprintf("Insufficient buying power: need $%.2f, have $%.2f", required, available)

		return reject(ReasonInsufficientBuyingPower, required, available, msg,
			m.event(EventBuyingPower, SeverityWarning, required, available, msg))
	}

	return allow()
}

// CheckSectorExposure rejects when the sector would exceed its share of the portfolio.
func (m *Manager) CheckSectorExposure(sector string, newValue float64, exposures map[string]float64, portfolioValue float64) Result {
	if !finite(newValue) {
		return m.invalid("Sector exposure check: value is not a number")
	}

	pct, ok := ratio(exposures[sector]+newValue, portfolioValue)
	if !ok {
		return m.invalid(fmt.Sprintf("Sector exposure check: portfolio value $%.2f is not positive", portfolioValue))
	}

	exposure, _ := pct.Float64()
	if pct.GreaterThan(decimal.NewFromFloat(m.limits.MaxSectorExposure)) {
		msg := fmt.Sprintf("Sector exposure too high: %s %s > %s", sector, percent(pct),
			percent(decimal.NewFromFloat(m.limits.MaxSectorExposure)))

		return reject(ReasonSectorExposureExceeded, exposure, m.limits.MaxSectorExposure, msg,
			m.event(EventSectorExposure, SeverityWarning, exposure, m.limits.MaxSectorExposure, msg))
	}

	return allow()
}

// TradeRequest is everything ValidateTrade needs to judge one order.
type TradeRequest struct {
	Symbol    string
	Side      types.Side
	Quantity  float64
	Price     float64
	AssetType types.AssetType
	Account   types.AccountSnapshot
	Counts    types.PositionCounts
	// Sector and SectorExposure enable the sector check when both are present
	Sector         optional.Option[string]
	SectorExposure map[string]float64
}

// ValidateTrade runs every gate in order and returns the first rejection:
// daily loss, max drawdown, then for buys position size, buying power,
// position count and sector exposure. Events from every check that ran are kept.
func (m *Manager) ValidateTrade(req TradeRequest) Result {
	var events []Event

	value := req.Quantity * req.Price
	pv := req.Account.PortfolioValue

	steps := []func() Result{
		func() Result { return m.CheckDailyLossLimit(pv) },
		func() Result { return m.CheckMaxDrawdown(pv) },
	}

	if req.Side == types.SideBuy {
		steps = append(steps,
			func() Result { return m.CheckPositionSize(value, pv, req.AssetType) },
			func() Result { return m.CheckBuyingPower(value, req.Account.BuyingPower) },
			func() Result { return m.CheckPositionCount(req.Counts) },
		)

		if req.Sector.IsSome() && req.SectorExposure != nil {
			sector := req.Sector.Unwrap()
			steps = append(steps, func() Result {
				return m.CheckSectorExposure(sector, value, req.SectorExposure, pv)
			})
		}
	}

	for _, step := range steps {
		result := step()
		if !result.Allowed {
			return result.withEvents(events)
		}

		events = append(events, result.Events...)
	}

	return allow(events...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ratio divides in decimal so threshold comparisons are exact at the boundary.
// It fails when the denominator is not a positive finite number.
func ratio(num, den float64) (decimal.Decimal, bool) {
	if !finite(num) || !finite(den) || den <= 0 {
		return decimal.Zero, false
	}

	return decimal.NewFromFloat(num).Div(decimal.NewFromFloat(den)), true
}

func percent(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
