package risk

import (
	"math"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal-engine/internal/config"
	"github.com/rxtech-lab/argo-signal-engine/internal/types"
	"github.com/rxtech-lab/argo-signal-engine/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ManagerTestSuite struct {
	suite.Suite
	cfg     config.Config
	now     time.Time
	manager *Manager
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}

func (s *ManagerTestSuite) SetupTest() {
	s.cfg = config.Default()
	loc, err := time.LoadLocation("America/New_York")
	s.Require().NoError(err)
	s.now = time.Date(2024, 3, 4, 10, 0, 0, 0, loc)
	s.manager = NewManager(s.cfg, func() time.Time { return s.now })
}

func (s *ManagerTestSuite) account(pv float64) types.AccountSnapshot {
	return types.AccountSnapshot{
		PortfolioValue: pv,
		Cash:           pv / 2,
		BuyingPower:    pv / 2,
		Equity:         pv,
		LastEquity:     pv,
	}
}

// ============================================================================
// Daily loss limit
// ============================================================================

func (s *ManagerTestSuite) TestDailyLossLimitTripsAtThreePointFivePercent() {
	s.manager.ResetDailyLimits(100000)

	result := s.manager.CheckDailyLossLimit(96500)
	s.False(result.Allowed)
	s.Equal(ReasonDailyLossLimit, result.Reason)
	s.Contains(result.Message, "3.50%")
	s.InDelta(0.035, result.Value, 1e-9)
	s.True(s.manager.State().CircuitBreakerTriggered)

	s.Require().Len(result.Events, 1)
	s.Equal(EventCircuitBreaker, result.Events[0].Type)
	s.Equal(SeverityCritical, result.Events[0].Severity)
	s.True(result.Events[0].Alert)
}

func (s *ManagerTestSuite) TestDailyLossLimitExactBoundaryRejects() {
	s.manager.ResetDailyLimits(100000)

	result := s.manager.CheckDailyLossLimit(97000)
	s.False(result.Allowed)
	s.Contains(result.Message, "3.00%")
}

func (s *ManagerTestSuite) TestDailyLossBelowLimitAllows() {
	s.manager.ResetDailyLimits(100000)

	result := s.manager.CheckDailyLossLimit(97500)
	s.True(result.Allowed)
	s.Empty(result.Events)
	s.False(s.manager.State().CircuitBreakerTriggered)
}

func (s *ManagerTestSuite) TestCircuitBreakerIsStickyForTheDay() {
	s.manager.ResetDailyLimits(100000)
	s.Require().False(s.manager.CheckDailyLossLimit(96000).Allowed)

	for _, equity := range []float64{100000, 120000, 99999, 50000} {
		result := s.manager.CheckDailyLossLimit(equity)
		s.False(result.Allowed)
		s.Equal("Circuit breaker already triggered today", result.Message)
	}

	// A second reset on the same day must not clear the breaker
	reset, _ := s.manager.ResetDailyLimits(120000)
	s.False(reset)
	s.False(s.manager.CheckDailyLossLimit(120000).Allowed)
}

func (s *ManagerTestSuite) TestNewDayClearsCircuitBreaker() {
	s.manager.ResetDailyLimits(100000)
	s.Require().False(s.manager.CheckDailyLossLimit(96000).Allowed)

	s.now = s.now.Add(24 * time.Hour)
	reset, events := s.manager.ResetDailyLimits(96000)
	s.True(reset)
	s.Require().Len(events, 1)
	s.Equal(EventDailyReset, events[0].Type)

	state := s.manager.State()
	s.False(state.CircuitBreakerTriggered)
	s.InDelta(96000.0, state.DailyStartEquity.Unwrap(), 1e-9)
	s.True(s.manager.CheckDailyLossLimit(95000).Allowed)
}

func (s *ManagerTestSuite) TestDayBoundaryUsesMarketTimezone() {
	// 23:30 New York is already the next day in UTC
	s.now = time.Date(2024, 3, 4, 23, 30, 0, 0, s.now.Location())
	s.manager.ResetDailyLimits(100000)

	s.now = s.now.Add(20 * time.Minute)
	reset, _ := s.manager.ResetDailyLimits(90000)
	s.False(reset)

	s.now = s.now.Add(20 * time.Minute)
	reset, _ = s.manager.ResetDailyLimits(90000)
	s.True(reset)
}

func (s *ManagerTestSuite) TestFirstDailyCheckRecordsStartEquity() {
	result := s.manager.CheckDailyLossLimit(80000)
	s.True(result.Allowed)
	s.InDelta(80000.0, s.manager.State().DailyStartEquity.Unwrap(), 1e-9)
}

func (s *ManagerTestSuite) TestDailyLossFailsClosedOnZeroStart() {
	s.manager.ResetDailyLimits(0)

	result := s.manager.CheckDailyLossLimit(1000)
	s.False(result.Allowed)
	s.Equal(ReasonInvalidInput, result.Reason)
	s.True(errors.HasCode(result.Err(), errors.ErrCodeInvalidRiskInput))

	s.False(s.manager.CheckDailyLossLimit(math.NaN()).Allowed)
}

// ============================================================================
// Drawdown
// ============================================================================

func (s *ManagerTestSuite) TestPeakEquityNeverDecreases() {
	sequence := []float64{100000, 95000, 110000, 108000, math.NaN(), 130000, 1, math.Inf(1), 129000}
	previous := 0.0

	for _, equity := range sequence {
		s.manager.UpdatePeakEquity(equity)
		peak := s.manager.State().PeakEquity.Unwrap()
		s.GreaterOrEqual(peak, previous)
		previous = peak
	}

	s.InDelta(130000.0, previous, 1e-9)
}

func (s *ManagerTestSuite) TestMaxDrawdownHaltsAndLatches() {
	s.manager.UpdatePeakEquity(120000)

	result := s.manager.CheckMaxDrawdown(71000)
	s.False(result.Allowed)
	s.Equal(ReasonMaxDrawdown, result.Reason)
	s.Contains(result.Message, "40.83%")
	s.True(s.manager.State().MaxDrawdownTriggered)
	s.Require().Len(result.Events, 1)
	s.Equal(SeverityCritical, result.Events[0].Severity)
	s.True(result.Events[0].Alert)

	for _, equity := range []float64{120000, 200000, 1e9} {
		s.manager.ResetDailyLimits(equity)
		s.now = s.now.Add(48 * time.Hour)
		s.False(s.manager.CheckMaxDrawdown(equity).Allowed)
		s.True(s.manager.State().MaxDrawdownTriggered)
	}
}

func (s *ManagerTestSuite) TestDrawdownWarningStillAllows() {
	s.manager.UpdatePeakEquity(100000)

	result := s.manager.CheckMaxDrawdown(69000)
	s.True(result.Allowed)
	s.Require().Len(result.Events, 1)
	s.Equal(EventDrawdownWarning, result.Events[0].Type)
	s.Equal(SeverityWarning, result.Events[0].Severity)
	s.False(result.Events[0].Alert)

	s.Empty(s.manager.CheckMaxDrawdown(71000).Events)
}

func (s *ManagerTestSuite) TestDrawdownCheckRaisesPeak() {
	s.manager.UpdatePeakEquity(100000)
	s.True(s.manager.CheckMaxDrawdown(150000).Allowed)
	s.InDelta(150000.0, s.manager.State().PeakEquity.Unwrap(), 1e-9)
}

func (s *ManagerTestSuite) TestFirstDrawdownCheckRecordsPeak() {
	s.True(s.manager.CheckMaxDrawdown(50000).Allowed)
	s.InDelta(50000.0, s.manager.State().PeakEquity.Unwrap(), 1e-9)
}

func (s *ManagerTestSuite) TestResetDrawdownHalt() {
	s.manager.UpdatePeakEquity(100000)
	s.Require().False(s.manager.CheckMaxDrawdown(50000).Allowed)

	event := s.manager.ResetDrawdownHalt(50000)
	s.Equal(EventDrawdownReset, event.Type)
	s.False(s.manager.State().MaxDrawdownTriggered)
	s.True(s.manager.CheckMaxDrawdown(50000).Allowed)
}

func (s *ManagerTestSuite) TestDrawdownFailsClosedOnZeroPeak() {
	s.manager.UpdatePeakEquity(0)

	result := s.manager.CheckMaxDrawdown(0)
	s.False(result.Allowed)
	s.Equal(ReasonInvalidInput, result.Reason)
	s.False(s.manager.State().MaxDrawdownTriggered)
}

// ============================================================================
// Position checks
// ============================================================================

func (s *ManagerTestSuite) TestCheckPositionSize() {
	tests := []struct {
		name      string
		value     float64
		pv        float64
		assetType types.AssetType
		reason    RejectionReason
	}{
		{"stock within cap", 9000, 100000, types.AssetTypeStock, ReasonNone},
		{"stock exactly at cap", 10000, 100000, types.AssetTypeStock, ReasonNone},
		{"stock over cap", 12000, 100000, types.AssetTypeStock, ReasonPositionTooLarge},
		{"option over its smaller cap", 6000, 100000, types.AssetTypeOption, ReasonPositionTooLarge},
		{"option within cap", 4000, 100000, types.AssetTypeOption, ReasonNone},
		{"below minimum", 500, 100000, types.AssetTypeStock, ReasonPositionTooSmall},
		{"zero portfolio fails closed", 5000, 0, types.AssetTypeStock, ReasonInvalidInput},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			result := s.manager.CheckPositionSize(tt.value, tt.pv, tt.assetType)
			s.Equal(tt.reason == ReasonNone, result.Allowed)
			s.Equal(tt.reason, result.Reason)
		})
	}

	result := s.manager.CheckPositionSize(12000, 100000, types.AssetTypeStock)
	s.Equal("Position too large: 12.00% > 10.00% limit", result.Message)
}

func (s *ManagerTestSuite) TestCheckPositionCountOrder() {
	result := s.manager.CheckPositionCount(types.PositionCounts{Total: 15, Stocks: 8, Options: 12})
	s.False(result.Allowed)
	s.Contains(result.Message, "total")

	result = s.manager.CheckPositionCount(types.PositionCounts{Total: 10, Stocks: 8, Options: 12})
	s.Contains(result.Message, "stock")

	result = s.manager.CheckPositionCount(types.PositionCounts{Total: 14, Stocks: 2, Options: 12})
	s.Contains(result.Message, "options")
	s.Equal(ReasonPositionCountExceeded, result.Reason)

	s.True(s.manager.CheckPositionCount(types.PositionCounts{Total: 14, Stocks: 7, Options: 7}).Allowed)
}

func (s *ManagerTestSuite) TestCheckBuyingPower() {
	s.True(s.manager.CheckBuyingPower(5000, 5000).Allowed)

	result := s.manager.CheckBuyingPower(5000.01, 5000)
	s.False(result.Allowed)
	s.Equal(ReasonInsufficientBuyingPower, result.Reason)
	s.True(errors.HasCode(result.Err(), errors.ErrCodeRiskViolation))
}

func (s *ManagerTestSuite) TestCheckSectorExposure() {
	exposures := map[string]float64{"Technology": 25000}

	s.True(s.manager.CheckSectorExposure("Technology", 5000, exposures, 100000).Allowed)
	s.True(s.manager.CheckSectorExposure("Energy", 29000, exposures, 100000).Allowed)

	result := s.manager.CheckSectorExposure("Technology", 6000, exposures, 100000)
	s.False(result.Allowed)
	s.Equal(ReasonSectorExposureExceeded, result.Reason)
	s.Contains(result.Message, "Technology 31.00%")
}

// ============================================================================
// ValidateTrade
// ============================================================================

func (s *ManagerTestSuite) TestValidateTradeApproves() {
	s.manager.ResetDailyLimits(100000)
	s.manager.UpdatePeakEquity(100000)

	result := s.manager.ValidateTrade(TradeRequest{
		Symbol:         "AAPL",
		Side:           types.SideBuy,
		Quantity:       40,
		Price:          200,
		AssetType:      types.AssetTypeStock,
		Account:        s.account(100000),
		Counts:         types.PositionCounts{Total: 3, Stocks: 2, Options: 1},
		Sector:         optional.Some("Technology"),
		SectorExposure: map[string]float64{"Technology": 10000},
	})
	s.True(result.Allowed)
	s.NoError(result.Err())
}

func (s *ManagerTestSuite) TestValidateTradeShortCircuitsOnDailyLoss() {
	s.manager.ResetDailyLimits(100000)
	s.manager.UpdatePeakEquity(100000)

	// Would also fail size and buying power
	result := s.manager.ValidateTrade(TradeRequest{
		Symbol:    "AAPL",
		Side:      types.SideBuy,
		Quantity:  1000,
		Price:     200,
		AssetType: types.AssetTypeStock,
		Account:   s.account(96000),
	})
	s.Equal(ReasonDailyLossLimit, result.Reason)
	s.False(s.manager.State().MaxDrawdownTriggered)
}

func (s *ManagerTestSuite) TestValidateTradeOrderAfterGates() {
	s.manager.ResetDailyLimits(100000)
	s.manager.UpdatePeakEquity(100000)

	base := TradeRequest{
		Symbol:    "AAPL",
		Side:      types.SideBuy,
		Quantity:  60,
		Price:     200,
		AssetType: types.AssetTypeStock,
		Account:   s.account(100000),
		Counts:    types.PositionCounts{Total: 15, Stocks: 8, Options: 7},
	}

	// Size fails before count
	s.Equal(ReasonPositionTooLarge, s.manager.ValidateTrade(base).Reason)

	// Buying power fails before count
	base.Quantity = 45
	base.Account.BuyingPower = 5000
	s.Equal(ReasonInsufficientBuyingPower, s.manager.ValidateTrade(base).Reason)

	base.Account.BuyingPower = 50000
	s.Equal(ReasonPositionCountExceeded, s.manager.ValidateTrade(base).Reason)

	base.Counts = types.PositionCounts{Total: 3, Stocks: 3, Options: 0}
	base.Sector = optional.Some("Technology")
	base.SectorExposure = map[string]float64{"Technology": 25000}
	s.Equal(ReasonSectorExposureExceeded, s.manager.ValidateTrade(base).Reason)

	// Sector without exposure data is skipped
	base.SectorExposure = nil
	s.True(s.manager.ValidateTrade(base).Allowed)
}

func (s *ManagerTestSuite) TestValidateTradeSellSkipsBuyChecks() {
	s.manager.ResetDailyLimits(100000)
	s.manager.UpdatePeakEquity(100000)

	result := s.manager.ValidateTrade(TradeRequest{
		Symbol:    "AAPL",
		Side:      types.SideSell,
		Quantity:  5000,
		Price:     200,
		AssetType: types.AssetTypeStock,
		Account:   types.AccountSnapshot{PortfolioValue: 100000, BuyingPower: 0},
		Counts:    types.PositionCounts{Total: 15, Stocks: 8, Options: 12},
	})
	s.True(result.Allowed)
}

func (s *ManagerTestSuite) TestValidateTradeKeepsWarningEvents() {
	s.manager.ResetDailyLimits(70000)
	s.manager.UpdatePeakEquity(100000)

	result := s.manager.ValidateTrade(TradeRequest{
		Symbol:    "AAPL",
		Side:      types.SideBuy,
		Quantity:  1,
		Price:     100,
		AssetType: types.AssetTypeStock,
		Account:   s.account(69000),
	})
	s.False(result.Allowed)
	s.Equal(ReasonPositionTooSmall, result.Reason)
	s.Require().Len(result.Events, 1)
	s.Equal(EventDrawdownWarning, result.Events[0].Type)
}

// ============================================================================
// Exits and metrics
// ============================================================================

func (s *ManagerTestSuite) TestShouldExitPosition() {
	stop := optional.Some(92.0)
	target := optional.Some(115.0)

	decision := s.manager.ShouldExitPosition("AAPL", 100, 91, stop, target)
	s.True(decision.Exit)
	s.Equal(ExitStopLoss, decision.Reason)
	s.Require().Len(decision.Events, 1)
	s.True(decision.Events[0].Alert)
	s.Equal("AAPL", decision.Events[0].Symbol)
	s.InDelta(0.09, decision.Events[0].Value, 1e-9)

	decision = s.manager.ShouldExitPosition("AAPL", 100, 120, stop, target)
	s.True(decision.Exit)
	s.Equal(ExitProfitTarget, decision.Reason)
	s.False(decision.Events[0].Alert)

	decision = s.manager.ShouldExitPosition("AAPL", 100, 100, stop, target)
	s.False(decision.Exit)
	s.Empty(decision.Events)

	decision = s.manager.ShouldExitPosition("AAPL", 100, 50, optional.None[float64](), optional.None[float64]())
	s.False(decision.Exit)
}

func (s *ManagerTestSuite) TestStopLossWinsWhenBothFire() {
	// Inverted levels make both conditions true at once
	for _, target := range []float64{0, 50, 90, 100} {
		decision := s.manager.ShouldExitPosition("X", 100, 90, optional.Some(95.0), optional.Some(target))
		s.True(decision.Exit)
		s.Equal(ExitStopLoss, decision.Reason)
	}
}

func (s *ManagerTestSuite) TestExitLevels() {
	stop, target := s.manager.ExitLevels(100)
	s.InDelta(92.0, stop.Unwrap(), 1e-9)
	s.InDelta(115.0, target.Unwrap(), 1e-9)

	stop, target = s.manager.ExitLevels(123.45)
	s.InDelta(113.57, stop.Unwrap(), 1e-9)
	s.InDelta(141.97, target.Unwrap(), 1e-9)

	stop, target = s.manager.ExitLevels(0)
	s.True(stop.IsNone())
	s.True(target.IsNone())
}

func (s *ManagerTestSuite) TestExitAtExactRoundedLevels() {
	cfg := config.Default()
	cfg.Risk.StockStopLossPct = 0.10
	cfg.Risk.StockProfitTargetMin = 0.10
	cfg.Risk.StockProfitTargetMax = 0.30
	manager := NewManager(cfg, func() time.Time { return s.now })

	// 3.30 * 0.9 and 1.10 * 1.1 both land just off the cent in float64
	stop, target := manager.ExitLevels(3.30)
	s.Equal(2.97, stop.Unwrap())

	decision := manager.ShouldExitPosition("PENNY", 3.30, 2.97, stop, target)
	s.True(decision.Exit)
	s.Equal(ExitStopLoss, decision.Reason)

	stop, target = manager.ExitLevels(1.10)
	s.Equal(1.21, target.Unwrap())

	decision = manager.ShouldExitPosition("PENNY", 1.10, 1.21, stop, target)
	s.True(decision.Exit)
	s.Equal(ExitProfitTarget, decision.Reason)
}

func (s *ManagerTestSuite) TestMetricsStatus() {
	tests := []struct {
		name   string
		start  float64
		peak   float64
		pv     float64
		status Status
	}{
		{"flat", 100000, 100000, 100000, StatusLow},
		{"small drawdown", 90000, 100000, 90000, StatusLow},
		{"drawdown above half the limit", 79000, 100000, 79000, StatusMedium},
		{"daily loss above three quarters of the limit", 100000, 100000, 97600, StatusMedium},
		{"daily gain does not raise status", 100000, 100000, 102500, StatusLow},
		{"drawdown above three quarters of the limit", 69000, 100000, 69000, StatusHigh},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			state := NewState()
			state.DailyStartEquity = optional.Some(tt.start)
			state.PeakEquity = optional.Some(tt.peak)
			manager := NewManagerWithState(s.cfg, func() time.Time { return s.now }, state)

			metrics := manager.Metrics(s.account(tt.pv))
			s.Equal(tt.status, metrics.Status)
		})
	}
}

func (s *ManagerTestSuite) TestMetricsCriticalWhenLatched() {
	s.manager.ResetDailyLimits(100000)
	s.manager.CheckDailyLossLimit(96000)

	metrics := s.manager.Metrics(s.account(96000))
	s.Equal(StatusCritical, metrics.Status)
	s.InDelta(-4000.0, metrics.DailyPnL, 1e-9)
	s.InDelta(-0.04, metrics.DailyPnLPct, 1e-9)
	s.True(metrics.CircuitBreakerTriggered)
}

func (s *ManagerTestSuite) TestMetricsWithEmptyState() {
	metrics := s.manager.Metrics(s.account(50000))
	s.Equal(StatusLow, metrics.Status)
	s.InDelta(0.0, metrics.CurrentDrawdown, 1e-9)
	s.InDelta(50000.0, metrics.PeakEquity, 1e-9)
}
