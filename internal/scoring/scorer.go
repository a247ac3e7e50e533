// Package scoring turns per-symbol technical, sentiment and model inputs into
// a bounded, directional conviction signal.
package scoring

import (
	"cmp"
	"context"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal-engine/internal/config"
	"github.com/rxtech-lab/argo-signal-engine/internal/logger"
	"github.com/rxtech-lab/argo-signal-engine/internal/provider"
	"github.com/rxtech-lab/argo-signal-engine/internal/types"
	"github.com/rxtech-lab/argo-signal-engine/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Inputs are the collaborator values scored for one symbol.
type Inputs struct {
	Technical  types.TechnicalSnapshot
	Sentiment  types.SentimentSummary
	Prediction types.Prediction
	Regime     types.MarketRegime
}

// OnScoredCallback is called once per scanned symbol, in no particular order
// when scans run in parallel. Calls never overlap.
type OnScoredCallback func(symbol string, signal optional.Option[types.Signal])

// Scorer scores a symbol universe. It never touches risk state.
type Scorer struct {
	cfg       config.Config
	technical provider.TechnicalProvider
	sentiment provider.SentimentProvider
	predictor provider.Predictor
	regime    *RegimeCache
	clock     func() time.Time
	log       *logger.Logger
}

// NewScorer creates a scorer. A nil clock uses time.Now.
func NewScorer(
	cfg config.Config,
	technical provider.TechnicalProvider,
	sentiment provider.SentimentProvider,
	predictor provider.Predictor,
	regime *RegimeCache,
	clock func() time.Time,
	log *logger.Logger,
) *Scorer {
	if clock == nil {
		clock = time.Now
	}

	return &Scorer{
		cfg:       cfg,
		technical: technical,
		sentiment: sentiment,
		predictor: predictor,
		regime:    regime,
		clock:     clock,
		log:       log,
	}
}

// Score is the pure scoring function. It returns None when the composite score
// is below the minimum entry score or the price is unusable.
func (s *Scorer) Score(symbol string, in Inputs) optional.Option[types.Signal] {
	price := in.Technical.Price
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return optional.None[types.Signal]()
	}

	scoring := s.cfg.Scoring
	tech := technicalScore(in.Technical, scoring.VolumeSurgeRatio)
	sent := sentimentScore(in.Sentiment)
	ml := modelScore(in.Prediction, scoring.MinModelAccuracy)
	adjustment, regimeReasons := regimeAdjustment(in.Regime, tech.direction)

	breakdown := types.ScoreBreakdown{
		Technical:        tech.score,
		Sentiment:        sent.score,
		ML:               ml.score,
		RegimeAdjustment: adjustment,
	}

	score := clampScore(breakdown.Total())
	direction := voteDirection(in.Regime, tech.direction, sent.direction, ml.direction)

	if score < scoring.MinEntryScore {
		return optional.None[types.Signal]()
	}

	stopPct, targetPct := s.cfg.Risk.StockStopLossPct, s.cfg.Risk.StockProfitTargetMin

	stop, target := price*(1-stopPct), price*(1+targetPct)
	if direction == types.DirectionBearish {
		stop, target = price*(1+stopPct), price*(1-targetPct)
	}

	reasons := make([]string, 0, len(tech.reasons)+len(sent.reasons)+len(ml.reasons)+len(regimeReasons))
	reasons = append(reasons, tech.reasons...)
	reasons = append(reasons, sent.reasons...)
	reasons = append(reasons, ml.reasons...)
	reasons = append(reasons, regimeReasons...)

	return optional.Some(types.Signal{
		Symbol:          symbol,
		Direction:       direction,
		Score:           score,
		Confidence:      confidenceFor(score, scoring),
		CurrentPrice:    roundCents(price),
		SuggestedEntry:  roundCents(price),
		SuggestedStop:   roundCents(stop),
		SuggestedTarget: roundCents(target),
		Reasoning:       reasons,
		Breakdown:       breakdown,
		SentimentScore:  in.Sentiment.Score,
		MLProbability:   in.Prediction.ProbabilityUp,
		MarketRegime:    in.Regime,
		StrategyName:    s.cfg.Engine.StrategyName,
		Timestamp:       s.clock(),
	})
}

// ScoreSymbol fetches the inputs for one symbol and scores it.
// A missing technical snapshot is reported as ErrCodeDataUnavailable.
func (s *Scorer) ScoreSymbol(ctx context.Context, symbol string, regime types.MarketRegime) (optional.Option[types.Signal], error) {
	snapshot, err := s.technical.GetTechnicalSnapshot(ctx, symbol)
	if err != nil {
		return optional.None[types.Signal](), errors.Wrapf(errors.ErrCodeDataUnavailable, err, "technical snapshot for %s", symbol)
	}

	if snapshot.IsNone() {
		return optional.None[types.Signal](), errors.Newf(errors.ErrCodeDataUnavailable, "no technical snapshot for %s", symbol)
	}

	return s.Score(symbol, Inputs{
		Technical:  snapshot.Unwrap(),
		Sentiment:  s.sentiment.GetSentiment(ctx, symbol),
		Prediction: s.predictor.Predict(ctx, symbol),
		Regime:     regime,
	}), nil
}

// Scan scores every symbol and returns the qualifying signals by score,
// highest first, keeping scan order among equal scores. Symbols whose data is
// unavailable are skipped. The only error is context cancellation.
func (s *Scorer) Scan(ctx context.Context, symbols []string, onScored *OnScoredCallback) ([]types.Signal, error) {
	regime := s.regime.Get(ctx)
	s.log.Info("Scanning universe",
		zap.String("regime", string(regime.Regime)),
		zap.Float64("vix", regime.VIX),
		zap.Int("symbols", len(symbols)),
	)

	results := make([]optional.Option[types.Signal], len(symbols))

	var callbackMu sync.Mutex

	scoreOne := func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		signal, err := s.ScoreSymbol(ctx, symbols[i], regime.Regime)
		if err != nil {
			s.log.Debug("Skipping symbol", zap.String("symbol", symbols[i]), zap.Error(err))
		}

		results[i] = signal

		if onScored != nil {
			callbackMu.Lock()
			(*onScored)(symbols[i], signal)
			callbackMu.Unlock()
		}

		return nil
	}

	if workers := s.cfg.Scoring.ScanWorkers; workers > 1 {
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(workers)

		for i := range symbols {
			group.Go(func() error { return scoreOne(groupCtx, i) })
		}

		if err := group.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range symbols {
			if err := scoreOne(ctx, i); err != nil {
				return nil, err
			}
		}
	}

	signals := make([]types.Signal, 0, len(symbols))
	for _, r := range results {
		if r.IsSome() {
			signals = append(signals, r.Unwrap())
		}
	}

	slices.SortStableFunc(signals, func(a, b types.Signal) int {
		return cmp.Compare(b.Score, a.Score)
	})

	s.log.Info("Scan complete",
		zap.Int("signals", len(signals)),
		zap.String("regime", string(regime.Regime)),
	)

	return signals, nil
}

// Regime returns the cached regime reading used by scans.
func (s *Scorer) Regime(ctx context.Context) types.RegimeReading {
	return s.regime.Get(ctx)
}
