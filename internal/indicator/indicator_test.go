package indicator

import (
	"context"
	"errors"
	"testing"

	"github.com/rxtech-lab/argo-signal-engine/mocks"
	pkgerrors "github.com/rxtech-lab/argo-signal-engine/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type IndicatorTestSuite struct {
	suite.Suite
}

func TestIndicatorSuite(t *testing.T) {
	suite.Run(t, new(IndicatorTestSuite))
}

func (suite *IndicatorTestSuite) TestSMA() {
	values := []float64{1, 2, 3, 4, 5}

	suite.InDelta(4.0, SMA(values, 3).Unwrap(), 1e-9)
	suite.InDelta(3.0, SMA(values, 5).Unwrap(), 1e-9)
	suite.True(SMA(values, 6).IsNone())
	suite.True(SMA(values, 0).IsNone())
}

func (suite *IndicatorTestSuite) TestEMASeriesSeedsWithSimpleAverage() {
	series := EMASeries([]float64{1, 2, 3, 4, 5}, 3)
	suite.Require().Len(series, 3)
	suite.InDelta(2.0, series[0], 1e-9)
	suite.InDelta(3.0, series[1], 1e-9)
	suite.InDelta(4.0, series[2], 1e-9)

	suite.Nil(EMASeries([]float64{1, 2}, 3))
}

func (suite *IndicatorTestSuite) TestRSI() {
	tests := []struct {
		name     string
		closes   []float64
		expected float64
	}{
		{
			name:     "only gains",
			closes:   []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
			expected: 100,
		},
		{
			name:     "balanced",
			closes:   []float64{10, 11, 10, 11, 10, 11, 10, 11, 10, 11, 10, 11, 10, 11, 10},
			expected: 50,
		},
		{
			name:     "only losses",
			closes:   []float64{15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1},
			expected: 0,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			rsi := RSI(tc.closes, 14)
			suite.Require().True(rsi.IsSome())
			suite.InDelta(tc.expected, rsi.Unwrap(), 1e-9)
		})
	}

	suite.True(RSI([]float64{1, 2, 3}, 14).IsNone())
}

func (suite *IndicatorTestSuite) TestMACDOnLinearSeries() {
	bars := mocks.LinearBars(60, 100, 1, 1000)
	closes := make([]float64, len(bars))

	for i, b := range bars {
		closes[i] = b.Close
	}

	line, signal := MACD(closes, 12, 26, 9)
	suite.Require().True(line.IsSome())
	suite.Require().True(signal.IsSome())
	suite.InDelta(7.0, line.Unwrap(), 1e-6)
	suite.InDelta(7.0, signal.Unwrap(), 1e-6)
}

func (suite *IndicatorTestSuite) TestMACDNeedsHistory() {
	line, signal := MACD(make([]float64, 20), 12, 26, 9)
	suite.True(line.IsNone())
	suite.True(signal.IsNone())

	line, signal = MACD(make([]float64, 30), 12, 26, 9)
	suite.True(line.IsSome())
	suite.True(signal.IsNone())
}

func (suite *IndicatorTestSuite) TestBuildSnapshot() {
	snap, err := BuildSnapshot("AAPL", mocks.LinearBars(60, 100, 1, 1000))
	suite.Require().NoError(err)

	suite.InDelta(159.0, snap.Price, 1e-9)
	suite.InDelta(1000.0, snap.Volume, 1e-9)
	suite.InDelta(134.5, snap.SMA50.Unwrap(), 1e-9)
	suite.True(snap.SMA200.IsNone())
	suite.InDelta(100.0, snap.RSI.Unwrap(), 1e-9)
	suite.InDelta(7.0, snap.MACD.Unwrap(), 1e-6)
	suite.InDelta(1000.0, snap.VolumeSMA20.Unwrap(), 1e-9)
	suite.InDelta((159.0/140.0-1)*100, snap.Return20d.Unwrap(), 1e-9)
}

func (suite *IndicatorTestSuite) TestBuildSnapshotWithFullHistory() {
	cfg := mocks.DefaultBarConfig()
	cfg.Count = 250

	snap, err := BuildSnapshot("SPY", mocks.NewBarGenerator(42).Generate(cfg))
	suite.Require().NoError(err)
	suite.True(snap.SMA200.IsSome())
	suite.GreaterOrEqual(snap.RSI.Unwrap(), 0.0)
	suite.LessOrEqual(snap.RSI.Unwrap(), 100.0)
}

func (suite *IndicatorTestSuite) TestBuildSnapshotInsufficientBars() {
	_, err := BuildSnapshot("AAPL", mocks.LinearBars(49, 100, 1, 1000))
	suite.Require().Error(err)
	suite.True(pkgerrors.IsInsufficientDataError(err))
	suite.True(pkgerrors.IsDataUnavailable(err))
}

func (suite *IndicatorTestSuite) TestSnapshotProvider() {
	ctrl := gomock.NewController(suite.T())
	defer ctrl.Finish()

	bars := mocks.NewMockBarProvider(ctrl)
	p := NewSnapshotProvider(bars, 0)
	ctx := context.Background()

	bars.EXPECT().GetBars(gomock.Any(), "AAPL", DefaultLookback).Return(mocks.LinearBars(60, 100, 1, 1000), nil)
	bars.EXPECT().GetBars(gomock.Any(), "NEW", DefaultLookback).Return(mocks.LinearBars(10, 20, 1, 1000), nil)
	bars.EXPECT().GetBars(gomock.Any(), "ERR", DefaultLookback).Return(nil, errors.New("feed down"))

	snap, err := p.GetTechnicalSnapshot(ctx, "AAPL")
	suite.Require().NoError(err)
	suite.True(snap.IsSome())

	snap, err = p.GetTechnicalSnapshot(ctx, "NEW")
	suite.Require().NoError(err)
	suite.True(snap.IsNone())

	_, err = p.GetTechnicalSnapshot(ctx, "ERR")
	suite.Require().Error(err)
	suite.True(pkgerrors.HasCode(err, pkgerrors.ErrCodeDataUnavailable))
}
