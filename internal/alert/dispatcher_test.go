package alert_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-signal-engine/internal/alert"
	"github.com/rxtech-lab/argo-signal-engine/internal/logger"
	"github.com/rxtech-lab/argo-signal-engine/internal/risk"
	"github.com/rxtech-lab/argo-signal-engine/mocks"
	pkgerrors "github.com/rxtech-lab/argo-signal-engine/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DispatcherTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	notifier *mocks.MockNotifier
	dispatch *alert.Dispatcher
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}

func (s *DispatcherTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.notifier = mocks.NewMockNotifier(s.ctrl)
	s.dispatch = alert.NewDispatcher(logger.NewNopLogger(), s.notifier)
}

func (s *DispatcherTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func breakerEvent() risk.Event {
	return risk.Event{
		Type:     risk.EventCircuitBreaker,
		Severity: risk.SeverityCritical,
		Message:  "Daily loss limit hit: 3.50%",
		Value:    0.035,
		Limit:    0.03,
		Alert:    true,
		Time:     time.Date(2024, 3, 4, 15, 0, 0, 0, time.UTC),
	}
}

func (s *DispatcherTestSuite) TestOnlyAlertEventsReachNotifier() {
	s.notifier.EXPECT().SendAlert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a alert.Alert) error {
		s.Equal("[CRITICAL] CIRCUIT_BREAKER", a.Title)
		s.Equal("Daily loss limit hit: 3.50%", a.Message)
		s.InDelta(0.035, a.Value, 1e-9)

		return nil
	})

	err := s.dispatch.Dispatch(context.Background(),
		risk.Event{Type: risk.EventDailyReset, Severity: risk.SeverityInfo, Message: "Daily limits reset"},
		breakerEvent(),
	)
	s.NoError(err)
}

func (s *DispatcherTestSuite) TestNotifierFailureIsReportedAfterAllEvents() {
	stop := risk.Event{
		Type:     risk.EventStopLoss,
		Severity: risk.SeverityWarning,
		Message:  "Stop loss hit on AAPL",
		Symbol:   "AAPL",
		Alert:    true,
	}

	gomock.InOrder(
		s.notifier.EXPECT().SendAlert(gomock.Any(), gomock.Any()).Return(errors.New("webhook down")),
		s.notifier.EXPECT().SendAlert(gomock.Any(), gomock.Any()).Return(nil),
	)

	err := s.dispatch.Dispatch(context.Background(), breakerEvent(), stop)
	s.Require().Error(err)
	s.True(pkgerrors.HasCode(err, pkgerrors.ErrCodeAlertFailed))
	s.Contains(err.Error(), "1 alert deliveries failed")
}

func (s *DispatcherTestSuite) TestNoNotifiers() {
	d := alert.NewDispatcher(logger.NewNopLogger())
	s.NoError(d.Dispatch(context.Background(), breakerEvent()))
}

func (s *DispatcherTestSuite) TestFromEventIncludesSymbol() {
	a := alert.FromEvent(risk.Event{Type: risk.EventStopLoss, Severity: risk.SeverityWarning, Symbol: "TSLA"})
	s.Equal("[WARNING] STOP_LOSS TSLA", a.Title)
	s.Equal("TSLA", a.Symbol)
}
