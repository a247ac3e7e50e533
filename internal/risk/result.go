package risk

import (
	"github.com/rxtech-lab/argo-signal-engine/pkg/errors"
)

// RejectionReason identifies which gate refused a trade.
type RejectionReason string

const (
	ReasonNone                    RejectionReason = ""
	ReasonDailyLossLimit          RejectionReason = "DAILY_LOSS_LIMIT"
	ReasonMaxDrawdown             RejectionReason = "MAX_DRAWDOWN"
	ReasonPositionTooLarge        RejectionReason = "POSITION_TOO_LARGE"
	ReasonPositionTooSmall        RejectionReason = "POSITION_TOO_SMALL"
	ReasonInsufficientBuyingPower RejectionReason = "INSUFFICIENT_BUYING_POWER"
	ReasonPositionCountExceeded   RejectionReason = "POSITION_COUNT_EXCEEDED"
	ReasonSectorExposureExceeded  RejectionReason = "SECTOR_EXPOSURE_EXCEEDED"
	// ReasonInvalidInput is returned when a ratio cannot be computed. Gates fail closed.
	ReasonInvalidInput RejectionReason = "INVALID_INPUT"
)

// Result is the outcome of a gate check.
// Value and Limit carry the measured quantity and the threshold it was compared to.
type Result struct {
	Allowed bool
	Reason  RejectionReason
	Message string
	Value   float64
	Limit   float64
	Events  []Event
}

func allow(events ...Event) Result {
	return Result{
		Allowed: true,
		Reason:  ReasonNone,
		Message: "",
		Value:   0,
		Limit:   0,
		Events:  events,
	}
}

func reject(reason RejectionReason, value, limit float64, message string, events ...Event) Result {
	return Result{
		Allowed: false,
		Reason:  reason,
		Message: message,
		Value:   value,
		Limit:   limit,
		Events:  events,
	}
}

// withEvents prepends earlier events to a result.
func (r Result) withEvents(earlier []Event) Result {
	if len(earlier) == 0 {
		return r
	}

	events := make([]Event, 0, len(earlier)+len(r.Events))
	events = append(events, earlier...)
	events = append(events, r.Events...)
	r.Events = events

	return r
}

// Err returns nil for an allowed result and a coded error for a rejection.
func (r Result) Err() error {
	if r.Allowed {
		return nil
	}

	code := errors.ErrCodeRiskViolation
	if r.Reason == ReasonInvalidInput {
		code = errors.ErrCodeInvalidRiskInput
	}

	return errors.Newf(code, "%s: %s", r.Reason, r.Message)
}
