package risk

import (
	"fmt"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
)

// ExitReason says why a position should be closed.
type ExitReason string

const (
	ExitNone         ExitReason = ""
	ExitStopLoss     ExitReason = "STOP_LOSS"
	ExitProfitTarget ExitReason = "PROFIT_TARGET"
)

// ExitDecision is the outcome of ShouldExitPosition.
type ExitDecision struct {
	Exit    bool
	Reason  ExitReason
	Message string
	Events  []Event
}

// ShouldExitPosition checks the stop first and the target second, so a price
// that satisfies both always exits as a stop loss.
// A stop loss emits an event that requests an alert.
func (m *Manager) ShouldExitPosition(symbol string, entry, current float64, stop, target optional.Option[float64]) ExitDecision {
	if stop.IsSome() && current <= stop.Unwrap() {
		lossPerShare := entry - current

		var lossPct float64
		if pct, ok := ratio(lossPerShare, entry); ok {
			lossPct, _ = pct.Float64()
		}

		msg := fmt.Sprintf("Stop loss hit: %s at $%.2f <= stop $%.2f (loss $%.2f/share, %.2f%%)",
			symbol, current, stop.Unwrap(), lossPerShare, lossPct*100)
		event := m.event(EventStopLoss, SeverityWarning, lossPct, stop.Unwrap(), msg)
		event.Symbol = symbol
		event.Alert = true

		return ExitDecision{Exit: true, Reason: ExitStopLoss, Message: msg, Events: []Event{event}}
	}

	if target.IsSome() && current >= target.Unwrap() {
		msg := fmt.Sprintf("Profit target hit: %s at $%.2f >= target $%.2f", symbol, current, target.Unwrap())
		event := m.event(EventProfitTarget, SeverityInfo, current, target.Unwrap(), msg)
		event.Symbol = symbol

		return ExitDecision{Exit: true, Reason: ExitProfitTarget, Message: msg, Events: []Event{event}}
	}

	return ExitDecision{Exit: false, Reason: ExitNone, Message: "", Events: nil}
}

// ExitLevels are the stop and target the engine applies to a stock entry,
// rounded to the cent.
func (m *Manager) ExitLevels(entry float64) (stop, target optional.Option[float64]) {
	if entry <= 0 || !finite(entry) {
		return optional.None[float64](), optional.None[float64]()
	}

	price := decimal.NewFromFloat(entry)
	one := decimal.NewFromInt(1)

	return optional.Some(price.Mul(one.Sub(decimal.NewFromFloat(m.limits.StockStopLossPct))).Round(2).InexactFloat64()),
		optional.Some(price.Mul(one.Add(decimal.NewFromFloat(m.limits.StockProfitTargetMin))).Round(2).InexactFloat64())
}
