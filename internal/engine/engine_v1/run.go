package engine_v1

import (
	"context"
	"time"

	"github.com/rxtech-lab/argo-signal-engine/internal/config"
	"github.com/rxtech-lab/argo-signal-engine/pkg/errors"
	"go.uber.org/zap"
)

// MarketHours is the weekday trading session in the market time zone.
type MarketHours struct {
	loc                  *time.Location
	openHour, openMinute int
	closeHour, closeMin  int
}

// NewMarketHours parses the session window from the engine config.
func NewMarketHours(cfg config.Config) (MarketHours, error) {
	open, err := time.Parse("15:04", cfg.Engine.MarketOpen)
	if err != nil {
		return MarketHours{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid market open", err)
	}

	closeAt, err := time.Parse("15:04", cfg.Engine.MarketClose)
	if err != nil {
		return MarketHours{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid market close", err)
	}

	if !closeAt.After(open) {
		return MarketHours{}, errors.Newf(errors.ErrCodeInvalidConfiguration,
			"market close %s is not after open %s", cfg.Engine.MarketClose, cfg.Engine.MarketOpen)
	}

	return MarketHours{
		loc:        cfg.Location(),
		openHour:   open.Hour(),
		openMinute: open.Minute(),
		closeHour:  closeAt.Hour(),
		closeMin:   closeAt.Minute(),
	}, nil
}

func (h MarketHours) session(day time.Time) (open, closeAt time.Time) {
	y, m, d := day.Date()

	return time.Date(y, m, d, h.openHour, h.openMinute, 0, 0, h.loc),
		time.Date(y, m, d, h.closeHour, h.closeMin, 0, 0, h.loc)
}

func tradingDay(t time.Time) bool {
	return t.Weekday() != time.Saturday && t.Weekday() != time.Sunday
}

// IsOpen reports whether t falls inside a session, open inclusive and close exclusive.
func (h MarketHours) IsOpen(t time.Time) bool {
	local := t.In(h.loc)
	if !tradingDay(local) {
		return false
	}

	open, closeAt := h.session(local)

	return !local.Before(open) && local.Before(closeAt)
}

// NextOpen is the first session open strictly after t.
func (h MarketHours) NextOpen(t time.Time) time.Time {
	local := t.In(h.loc)

	for i := 0; i < 8; i++ {
		day := local.AddDate(0, 0, i)
		if !tradingDay(day) {
			continue
		}

		if open, _ := h.session(day); open.After(t) {
			return open
		}
	}

	// unreachable with a weekday in every 8 day window
	return local.Add(24 * time.Hour)
}

// Run implements engine.Engine. Cycles run every scan interval during the
// session; outside it the loop waits for the next open.
func (e *EngineV1) Run(ctx context.Context) error {
	hours, err := NewMarketHours(e.cfg)
	if err != nil {
		return err
	}

	e.log.Info("Engine starting",
		zap.String("run_id", e.runID),
		zap.String("limits", e.cfg.String()),
		zap.Duration("scan_interval", e.cfg.Engine.ScanInterval),
	)
	defer e.log.Info("Engine stopped", zap.String("run_id", e.runID))

	for {
		now := e.clock()
		wait := e.cfg.Engine.ScanInterval

		if hours.IsOpen(now) {
			if _, err := e.RunCycle(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}

				e.reportError(err)
			}
		} else {
			next := hours.NextOpen(now)
			wait = next.Sub(now)

			e.log.Info("Market closed", zap.Time("next_open", next))
		}

		if err := e.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
