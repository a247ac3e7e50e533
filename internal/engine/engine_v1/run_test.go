package engine_v1

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal-engine/internal/types"
	"go.uber.org/mock/gomock"
)

func (s *EngineV1TestSuite) TestMarketHours() {
	hours, err := NewMarketHours(s.cfg)
	s.Require().NoError(err)

	ny := s.cfg.Location()

	tests := []struct {
		name string
		at   time.Time
		open bool
	}{
		{"before open", time.Date(2024, 3, 4, 9, 29, 0, 0, ny), false},
		{"at open", time.Date(2024, 3, 4, 9, 30, 0, 0, ny), true},
		{"last minute", time.Date(2024, 3, 4, 15, 59, 0, 0, ny), true},
		{"at close", time.Date(2024, 3, 4, 16, 0, 0, 0, ny), false},
		{"saturday", time.Date(2024, 3, 2, 11, 0, 0, 0, ny), false},
		{"utc input", time.Date(2024, 3, 4, 15, 0, 0, 0, time.UTC), true},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.Equal(tc.open, hours.IsOpen(tc.at))
		})
	}

	s.Equal(time.Date(2024, 3, 4, 9, 30, 0, 0, ny), hours.NextOpen(time.Date(2024, 3, 1, 16, 30, 0, 0, ny)))
	s.Equal(time.Date(2024, 3, 4, 9, 30, 0, 0, ny), hours.NextOpen(time.Date(2024, 3, 4, 8, 0, 0, 0, ny)))
	s.Equal(time.Date(2024, 3, 5, 9, 30, 0, 0, ny), hours.NextOpen(time.Date(2024, 3, 4, 10, 0, 0, 0, ny)))
}

func (s *EngineV1TestSuite) TestMarketHoursRejectsInvertedSession() {
	cfg := s.cfg
	cfg.Engine.MarketOpen = "16:00"
	cfg.Engine.MarketClose = "09:30"

	_, err := NewMarketHours(cfg)
	s.Error(err)
}

func (s *EngineV1TestSuite) TestRunWaitsForOpenThenCycles() {
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, s.cfg.Location())
	s.engine.SetClock(func() time.Time { return now })

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	var waits []time.Duration

	s.engine.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		now = now.Add(d)

		if len(waits) == 2 {
			cancel()

			return ctx.Err()
		}

		return nil
	}

	s.account.EXPECT().GetAccount(gomock.Any()).Return(optional.None[types.AccountSnapshot](), nil)

	err := s.engine.Run(ctx)
	s.ErrorIs(err, context.Canceled)

	s.Require().Len(waits, 2)
	s.Equal(45*time.Hour+30*time.Minute, waits[0])
	s.Equal(15*time.Minute, waits[1])
}

func (s *EngineV1TestSuite) TestRunStopsOnCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	s.engine.SetClock(func() time.Time { return time.Date(2024, 3, 2, 12, 0, 0, 0, s.cfg.Location()) })

	err := s.engine.Run(ctx)
	s.ErrorIs(err, context.Canceled)
}
