package risk

import "time"

// Severity of a risk event.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

// EventType names what happened.
type EventType string

const (
	EventCircuitBreaker  EventType = "CIRCUIT_BREAKER"
	EventMaxDrawdown     EventType = "MAX_DRAWDOWN"
	EventDrawdownWarning EventType = "DRAWDOWN_WARNING"
	EventDrawdownReset   EventType = "DRAWDOWN_RESET"
	EventDailyReset      EventType = "DAILY_RESET"
	EventPositionSize    EventType = "POSITION_SIZE"
	EventPositionCount   EventType = "POSITION_COUNT"
	EventBuyingPower     EventType = "BUYING_POWER"
	EventSectorExposure  EventType = "SECTOR_EXPOSURE"
	EventStopLoss        EventType = "STOP_LOSS"
	EventProfitTarget    EventType = "PROFIT_TARGET"
	EventInvalidInput    EventType = "INVALID_INPUT"
)

// Event is a structured record of something the risk manager observed.
// The manager only returns events; dispatching them is the caller's job.
type Event struct {
	Type     EventType `json:"type"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	Symbol   string    `json:"symbol,omitempty"`
	Value    float64   `json:"value"`
	Limit    float64   `json:"limit"`
	// Alert asks the dispatcher for an out-of-band notification in addition to logging
	Alert bool      `json:"alert"`
	Time  time.Time `json:"time"`
}
