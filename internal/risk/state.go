package risk

import (
	"time"

	"github.com/moznion/go-optional"
)

// State is the risk manager's mutable state. It lives for the whole process.
//
// PeakEquity never decreases once set. CircuitBreakerTriggered stays set until
// the next trading day's reset. MaxDrawdownTriggered only clears through
// Manager.ResetDrawdownHalt.
type State struct {
	DailyStartEquity        optional.Option[float64]
	PeakEquity              optional.Option[float64]
	CircuitBreakerTriggered bool
	MaxDrawdownTriggered    bool
	// LastResetDate is midnight of the last reset day in the market time zone
	LastResetDate optional.Option[time.Time]
}

// NewState returns an empty state with nothing recorded.
func NewState() State {
	return State{
		DailyStartEquity:        optional.None[float64](),
		PeakEquity:              optional.None[float64](),
		CircuitBreakerTriggered: false,
		MaxDrawdownTriggered:    false,
		LastResetDate:           optional.None[time.Time](),
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
