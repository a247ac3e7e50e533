package scoring

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal-engine/internal/config"
	"github.com/rxtech-lab/argo-signal-engine/internal/logger"
	"github.com/rxtech-lab/argo-signal-engine/internal/types"
	"github.com/rxtech-lab/argo-signal-engine/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ScorerTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	technical *mocks.MockTechnicalProvider
	sentiment *mocks.MockSentimentProvider
	predictor *mocks.MockPredictor
	regime    *mocks.MockRegimeProvider
	cfg       config.Config
	now       time.Time
	scorer    *Scorer
}

func TestScorerSuite(t *testing.T) {
	suite.Run(t, new(ScorerTestSuite))
}

func (s *ScorerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.technical = mocks.NewMockTechnicalProvider(s.ctrl)
	s.sentiment = mocks.NewMockSentimentProvider(s.ctrl)
	s.predictor = mocks.NewMockPredictor(s.ctrl)
	s.regime = mocks.NewMockRegimeProvider(s.ctrl)
	s.cfg = config.Default()
	s.now = time.Date(2024, 3, 4, 15, 0, 0, 0, time.UTC)
	s.scorer = s.newScorer(s.cfg)
}

func (s *ScorerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ScorerTestSuite) newScorer(cfg config.Config) *Scorer {
	clock := func() time.Time { return s.now }
	log := logger.NewNopLogger()
	cache := NewRegimeCache(s.regime, cfg.Scoring.RegimeCacheTTL, clock, log)

	return NewScorer(cfg, s.technical, s.sentiment, s.predictor, cache, clock, log)
}

// bullishSnapshot scores the full 40 technical points with four bullish votes.
func bullishSnapshot(price float64) types.TechnicalSnapshot {
	return types.TechnicalSnapshot{
		Price:       price,
		Volume:      2_000_000,
		SMA50:       optional.Some(price * 0.95),
		SMA200:      optional.Some(price * 0.90),
		RSI:         optional.Some(60.0),
		MACD:        optional.Some(1.2),
		MACDSignal:  optional.Some(0.8),
		VolumeSMA20: optional.Some(1_000_000.0),
		Return20d:   optional.Some(8.0),
	}
}

// bearishSnapshot has four bearish votes and 22 technical points.
func bearishSnapshot(price float64) types.TechnicalSnapshot {
	return types.TechnicalSnapshot{
		Price:       price,
		Volume:      1_000_000,
		SMA50:       optional.Some(price * 1.05),
		SMA200:      optional.Some(price * 1.10),
		RSI:         optional.Some(80.0),
		MACD:        optional.Some(-0.5),
		MACDSignal:  optional.Some(0.1),
		VolumeSMA20: optional.Some(1_000_000.0),
		Return20d:   optional.Some(-7.0),
	}
}

func (s *ScorerTestSuite) TestScoreStrongBullishSignal() {
	signal := s.scorer.Score("AAPL", Inputs{
		Technical:  bullishSnapshot(100),
		Sentiment:  types.SentimentSummary{Score: 0.4, HeadlineCount: 10, PositiveCount: 7, NegativeCount: 1},
		Prediction: types.Prediction{ProbabilityUp: 0.65, Accuracy: 0.55},
		Regime:     types.MarketRegimeBull,
	})
	s.Require().True(signal.IsSome())

	sig := signal.Unwrap()
	s.Equal(types.DirectionBullish, sig.Direction)
	s.Equal(types.ScoreBreakdown{Technical: 40, Sentiment: 25, ML: 22, RegimeAdjustment: 10}, sig.Breakdown)
	s.Equal(97, sig.Score)
	s.Equal(types.ConfidenceHigh, sig.Confidence)
	s.InDelta(92.0, sig.SuggestedStop, 1e-9)
	s.InDelta(115.0, sig.SuggestedTarget, 1e-9)
	s.Equal(s.now, sig.Timestamp)
	s.Equal("momentum", sig.StrategyName)
	s.Contains(sig.Reasoning, "Above 50 & 200 SMA (bullish)")
	s.Contains(sig.Reasoning, "7+ / 1- headlines")
	s.Contains(sig.Reasoning, "Regime boost: BULL market + bullish technicals")
}

func (s *ScorerTestSuite) TestScoreBearishSignalFlipsStopAndTarget() {
	signal := s.scorer.Score("XOM", Inputs{
		Technical:  bearishSnapshot(50),
		Sentiment:  types.SentimentSummary{Score: -0.2},
		Prediction: types.Prediction{ProbabilityUp: 0.30, Accuracy: 0.60},
		Regime:     types.MarketRegimeBear,
	})
	s.Require().True(signal.IsSome())

	sig := signal.Unwrap()
	s.Equal(types.DirectionBearish, sig.Direction)
	s.Equal(types.ScoreBreakdown{Technical: 22, Sentiment: 8, ML: 22, RegimeAdjustment: 8}, sig.Breakdown)
	s.Equal(60, sig.Score)
	s.Equal(types.ConfidenceLow, sig.Confidence)
	s.Greater(sig.SuggestedStop, sig.CurrentPrice)
	s.Less(sig.SuggestedTarget, sig.CurrentPrice)
	s.InDelta(54.0, sig.SuggestedStop, 1e-9)
	s.InDelta(42.5, sig.SuggestedTarget, 1e-9)
}

func (s *ScorerTestSuite) TestScoreDiscardsBelowMinimumEntry() {
	signal := s.scorer.Score("F", Inputs{
		Technical:  types.TechnicalSnapshot{Price: 12, Volume: 1},
		Sentiment:  types.NeutralSentiment(),
		Prediction: types.NeutralPrediction(),
		Regime:     types.MarketRegimeNeutral,
	})
	s.True(signal.IsNone())
}

func (s *ScorerTestSuite) TestScoreRejectsUnusablePrice() {
	tests := []struct {
		name  string
		price float64
	}{
		{name: "zero", price: 0},
		{name: "negative", price: -12},
		{name: "NaN", price: math.NaN()},
		{name: "positive infinity", price: math.Inf(1)},
		{name: "negative infinity", price: math.Inf(-1)},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			snap := bullishSnapshot(100)
			snap.Price = tc.price

			signal := s.scorer.Score("AAPL", Inputs{
				Technical:  snap,
				Sentiment:  types.SentimentSummary{Score: 0.4},
				Prediction: types.Prediction{ProbabilityUp: 0.65, Accuracy: 0.55},
				Regime:     types.MarketRegimeBull,
			})
			s.True(signal.IsNone())
		})
	}
}

func (s *ScorerTestSuite) TestScoreClampedToHundred() {
	cfg := s.cfg
	cfg.Scoring.MinEntryScore = 0
	scorer := s.newScorer(cfg)

	signal := scorer.Score("NVDA", Inputs{
		Technical:  bullishSnapshot(500),
		Sentiment:  types.SentimentSummary{Score: 0.9},
		Prediction: types.Prediction{ProbabilityUp: 0.9, Accuracy: 0.9},
		Regime:     types.MarketRegimeBull,
	})
	s.Require().True(signal.IsSome())
	s.GreaterOrEqual(signal.Unwrap().Score, 0)
	s.LessOrEqual(signal.Unwrap().Score, 100)
}

func (s *ScorerTestSuite) TestDirectionTieFollowsRegime() {
	// one bullish technical, one bearish sentiment, one neutral model
	tests := []struct {
		name     string
		regime   types.MarketRegime
		expected types.Direction
	}{
		{name: "bull regime", regime: types.MarketRegimeBull, expected: types.DirectionBullish},
		{name: "bear regime", regime: types.MarketRegimeBear, expected: types.DirectionBearish},
		{name: "neutral regime", regime: types.MarketRegimeNeutral, expected: types.DirectionBullish},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			got := voteDirection(tc.regime, types.DirectionBullish, types.DirectionBearish, types.DirectionNeutral)
			s.Equal(tc.expected, got)
		})
	}
}

func (s *ScorerTestSuite) TestConfidenceTiers() {
	tests := []struct {
		score    int
		expected types.Confidence
	}{
		{score: 100, expected: types.ConfidenceHigh},
		{score: 85, expected: types.ConfidenceHigh},
		{score: 84, expected: types.ConfidenceMedium},
		{score: 70, expected: types.ConfidenceMedium},
		{score: 69, expected: types.ConfidenceLow},
		{score: 60, expected: types.ConfidenceLow},
	}

	for _, tc := range tests {
		s.Equal(tc.expected, confidenceFor(tc.score, s.cfg.Scoring), "score %d", tc.score)
	}
}

func (s *ScorerTestSuite) TestModelScoreIgnoresInaccurateModel() {
	c := modelScore(types.Prediction{ProbabilityUp: 0.9, Accuracy: 0.40}, s.cfg.Scoring.MinModelAccuracy)
	s.Equal(12, c.score)
	s.Equal(types.DirectionNeutral, c.direction)
}

func (s *ScorerTestSuite) TestRegimeDragOnBullishTechnicalsInBearMarket() {
	adj, reasons := regimeAdjustment(types.MarketRegimeBear, types.DirectionBullish)
	s.Equal(-5, adj)
	s.Equal([]string{"Regime drag: BEAR market vs bullish technicals"}, reasons)
}

func (s *ScorerTestSuite) expectSymbol(symbol string, snap optional.Option[types.TechnicalSnapshot], sent types.SentimentSummary, pred types.Prediction) {
	s.technical.EXPECT().GetTechnicalSnapshot(gomock.Any(), symbol).Return(snap, nil)

	if snap.IsSome() {
		s.sentiment.EXPECT().GetSentiment(gomock.Any(), symbol).Return(sent)
		s.predictor.EXPECT().Predict(gomock.Any(), symbol).Return(pred)
	}
}

func (s *ScorerTestSuite) TestScanSortsByScoreAndKeepsScanOrderOnTies() {
	s.regime.EXPECT().GetMarketRegime(gomock.Any()).Return(types.RegimeReading{Regime: types.MarketRegimeBull}, nil).Times(1)

	strong := types.Prediction{ProbabilityUp: 0.65, Accuracy: 0.55}
	weak := types.Prediction{ProbabilityUp: 0.50, Accuracy: 0.55}
	bullish := types.SentimentSummary{Score: 0.4}

	s.expectSymbol("AAA", optional.Some(bullishSnapshot(10)), bullish, weak)
	s.expectSymbol("BBB", optional.Some(bullishSnapshot(20)), bullish, strong)
	s.expectSymbol("CCC", optional.None[types.TechnicalSnapshot](), types.SentimentSummary{}, types.Prediction{})
	s.expectSymbol("DDD", optional.Some(bullishSnapshot(30)), bullish, weak)

	var scored []string

	onScored := OnScoredCallback(func(symbol string, _ optional.Option[types.Signal]) {
		scored = append(scored, symbol)
	})

	signals, err := s.scorer.Scan(context.Background(), []string{"AAA", "BBB", "CCC", "DDD"}, &onScored)
	s.Require().NoError(err)
	s.Require().Len(signals, 3)
	s.Equal("BBB", signals[0].Symbol)
	s.Equal("AAA", signals[1].Symbol)
	s.Equal("DDD", signals[2].Symbol)
	s.Equal(signals[1].Score, signals[2].Score)
	s.Equal([]string{"AAA", "BBB", "CCC", "DDD"}, scored)
}

func (s *ScorerTestSuite) TestScanSkipsFailingSymbols() {
	s.regime.EXPECT().GetMarketRegime(gomock.Any()).Return(types.RegimeReading{}, errors.New("vix feed down"))
	s.technical.EXPECT().GetTechnicalSnapshot(gomock.Any(), "AAA").Return(optional.None[types.TechnicalSnapshot](), errors.New("timeout"))
	s.expectSymbol("BBB", optional.Some(bullishSnapshot(20)), types.SentimentSummary{Score: 0.4}, types.Prediction{ProbabilityUp: 0.65, Accuracy: 0.55})

	signals, err := s.scorer.Scan(context.Background(), []string{"AAA", "BBB"}, nil)
	s.Require().NoError(err)
	s.Require().Len(signals, 1)
	s.Equal(types.MarketRegimeNeutral, signals[0].MarketRegime)
}

func (s *ScorerTestSuite) TestParallelScanMatchesSequentialOrder() {
	cfg := s.cfg
	cfg.Scoring.ScanWorkers = 4
	scorer := s.newScorer(cfg)

	s.regime.EXPECT().GetMarketRegime(gomock.Any()).Return(types.RegimeReading{Regime: types.MarketRegimeBull}, nil)

	symbols := []string{"A1", "A2", "A3", "A4", "A5", "A6"}
	for _, symbol := range symbols {
		s.expectSymbol(symbol, optional.Some(bullishSnapshot(10)), types.SentimentSummary{Score: 0.2}, types.NeutralPrediction())
	}

	signals, err := scorer.Scan(context.Background(), symbols, nil)
	s.Require().NoError(err)
	s.Require().Len(signals, len(symbols))

	for i, signal := range signals {
		s.Equal(symbols[i], signal.Symbol)
	}
}

func (s *ScorerTestSuite) TestScanStopsOnCancelledContext() {
	s.regime.EXPECT().GetMarketRegime(gomock.Any()).Return(types.NeutralRegime(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.scorer.Scan(ctx, []string{"AAA"}, nil)
	s.ErrorIs(err, context.Canceled)
}

func (s *ScorerTestSuite) TestRegimeCacheReusesReadingWithinTTL() {
	s.regime.EXPECT().GetMarketRegime(gomock.Any()).Return(types.RegimeReading{Regime: types.MarketRegimeBear, VIX: 31}, nil).Times(2)

	cache := NewRegimeCache(s.regime, 5*time.Minute, func() time.Time { return s.now }, logger.NewNopLogger())
	ctx := context.Background()

	s.Equal(types.MarketRegimeBear, cache.Get(ctx).Regime)
	s.now = s.now.Add(4 * time.Minute)
	s.Equal(types.MarketRegimeBear, cache.Get(ctx).Regime)
	s.now = s.now.Add(2 * time.Minute)
	s.InDelta(31.0, cache.Get(ctx).VIX, 1e-9)
}
