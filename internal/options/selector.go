// Package options turns stock level signals into budgeted options constructs.
package options

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal-engine/internal/config"
	"github.com/rxtech-lab/argo-signal-engine/internal/logger"
	"github.com/rxtech-lab/argo-signal-engine/internal/provider"
	"github.com/rxtech-lab/argo-signal-engine/internal/types"
	"github.com/rxtech-lab/argo-signal-engine/pkg/errors"
	"go.uber.org/zap"
)

const strategyPrefix = "options"

// Selector maps each qualifying signal to at most one options construct.
type Selector struct {
	cfg    config.Config
	finder provider.OptionsFinder
	log    *logger.Logger
}

// NewSelector creates a selector backed by an options finder.
func NewSelector(cfg config.Config, finder provider.OptionsFinder, log *logger.Logger) *Selector {
	return &Selector{cfg: cfg, finder: finder, log: log}
}

// Select builds options signals from the given stock signals. The per-trade
// budget is derived from optionsBudget; finder failures drop the symbol.
// The result is sorted by score, highest first.
func (s *Selector) Select(ctx context.Context, signals []types.Signal, optionsBudget float64) ([]types.OptionsSignal, error) {
	if len(signals) == 0 {
		return nil, nil
	}

	maxPerTrade := s.cfg.PerTradeOptionsBudget(optionsBudget)
	results := make([]types.OptionsSignal, 0, len(signals))

	for _, signal := range signals {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if signal.Score < s.cfg.Scoring.MinEntryScore {
			continue
		}

		picked, err := s.selectOne(ctx, signal, maxPerTrade)
		if err != nil {
			s.log.Error("Failed to select options construct",
				zap.String("symbol", signal.Symbol),
				zap.Error(errors.Wrapf(errors.ErrCodeDataUnavailable, err, "options lookup for %s", signal.Symbol)),
			)

			continue
		}

		if picked.IsNone() {
			s.log.Debug("No options construct qualified", zap.String("symbol", signal.Symbol))

			continue
		}

		opt := picked.Unwrap()
		s.log.Info("Options signal",
			zap.String("symbol", opt.Symbol),
			zap.String("kind", string(opt.Kind)),
			zap.Int("score", opt.Score),
			zap.Float64("total_cost", opt.Pick.TotalCost),
		)

		results = append(results, opt)
	}

	slices.SortStableFunc(results, func(a, b types.OptionsSignal) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return results, nil
}

func (s *Selector) selectOne(ctx context.Context, signal types.Signal, budget float64) (optional.Option[types.OptionsSignal], error) {
	switch signal.Direction {
	case types.DirectionBullish:
		if signal.Confidence == types.ConfidenceHigh && signal.Score >= s.cfg.Scoring.HighConfidenceThreshold {
			return s.longCall(ctx, signal, budget)
		}

		spread, err := s.bullSpread(ctx, signal, budget)
		if err != nil || spread.IsSome() {
			return spread, err
		}

		return s.longCall(ctx, signal, budget)
	case types.DirectionBearish:
		return s.longPut(ctx, signal, budget)
	default:
		return optional.None[types.OptionsSignal](), nil
	}
}

func (s *Selector) longCall(ctx context.Context, signal types.Signal, budget float64) (optional.Option[types.OptionsSignal], error) {
	pick, err := s.finder.FindBestCall(ctx, signal.Symbol, budget)
	if err != nil || pick.IsNone() {
		return optional.None[types.OptionsSignal](), err
	}

	p := pick.Unwrap()

	return optional.Some(s.build(signal, types.OptionsSignalBuyCall, "long_call", p,
		fmt.Sprintf("Long call | Strike %g | %dDTE | IV %.1f%%", p.Strike, p.DTE, p.ImpliedVol))), nil
}

func (s *Selector) longPut(ctx context.Context, signal types.Signal, budget float64) (optional.Option[types.OptionsSignal], error) {
	pick, err := s.finder.FindBestPut(ctx, signal.Symbol, budget)
	if err != nil || pick.IsNone() {
		return optional.None[types.OptionsSignal](), err
	}

	p := pick.Unwrap()

	return optional.Some(s.build(signal, types.OptionsSignalBuyPut, "long_put", p,
		fmt.Sprintf("Long put | Strike %g | %dDTE | IV %.1f%%", p.Strike, p.DTE, p.ImpliedVol))), nil
}

func (s *Selector) bullSpread(ctx context.Context, signal types.Signal, budget float64) (optional.Option[types.OptionsSignal], error) {
	pick, err := s.finder.FindBullCallSpread(ctx, signal.Symbol, budget)
	if err != nil || pick.IsNone() {
		return optional.None[types.OptionsSignal](), err
	}

	p := pick.Unwrap()

	return optional.Some(s.build(signal, types.OptionsSignalBuySpread, "bull_spread", p,
		fmt.Sprintf("Bull call spread | %g/%g | R:R %.1f | %dDTE",
			p.Strike, p.ShortStrike.TakeOr(0), p.RiskReward.TakeOr(0), p.DTE))), nil
}

func (s *Selector) build(signal types.Signal, kind types.OptionsSignalKind, strategy string, pick types.OptionsPick, reasoning string) types.OptionsSignal {
	return types.OptionsSignal{
		Symbol:     signal.Symbol,
		Kind:       kind,
		Strategy:   strategyPrefix + "_" + strategy,
		Score:      signal.Score,
		Confidence: signal.Confidence,
		Pick:       pick,
		Reasoning:  reasoning,
		Signal:     signal,
	}
}
