package options

import (
	"cmp"
	"context"
	"math"
	"slices"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal-engine/internal/config"
	"github.com/rxtech-lab/argo-signal-engine/internal/logger"
	"github.com/rxtech-lab/argo-signal-engine/internal/provider"
	"github.com/rxtech-lab/argo-signal-engine/internal/types"
	"github.com/rxtech-lab/argo-signal-engine/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// moneyness bands, strike / underlying
const (
	callMoneynessMin = 0.95
	callMoneynessMax = 1.10
	putMoneynessMin  = 0.90
	putMoneynessMax  = 1.05

	spreadLongMoneynessMin = 0.97
	spreadLongMoneynessMax = 1.05
)

// ChainPicker is an OptionsFinder over a raw chain provider. It picks one
// expiration per lookup, filters the chain for liquidity, and sizes the
// construct to the budget.
type ChainPicker struct {
	cfg    config.OptionsConfig
	chains provider.ChainProvider
	clock  func() time.Time
	log    *logger.Logger
}

var _ provider.OptionsFinder = (*ChainPicker)(nil)

// NewChainPicker creates a picker. A nil clock uses time.Now.
func NewChainPicker(cfg config.OptionsConfig, chains provider.ChainProvider, clock func() time.Time, log *logger.Logger) *ChainPicker {
	if clock == nil {
		clock = time.Now
	}

	return &ChainPicker{cfg: cfg, chains: chains, clock: clock, log: log}
}

type pickedChain struct {
	chain types.OptionsChain
	dte   int
}

// FindBestCall implements provider.OptionsFinder.
func (p *ChainPicker) FindBestCall(ctx context.Context, symbol string, maxBudget float64) (optional.Option[types.OptionsPick], error) {
	picked, err := p.chain(ctx, symbol)
	if err != nil || picked.IsNone() {
		return optional.None[types.OptionsPick](), err
	}

	c := picked.Unwrap()

	return p.pickSingle(c, c.chain.Calls, types.OptionTypeCall, callMoneynessMin, callMoneynessMax, maxBudget), nil
}

// FindBestPut implements provider.OptionsFinder.
func (p *ChainPicker) FindBestPut(ctx context.Context, symbol string, maxBudget float64) (optional.Option[types.OptionsPick], error) {
	picked, err := p.chain(ctx, symbol)
	if err != nil || picked.IsNone() {
		return optional.None[types.OptionsPick](), err
	}

	c := picked.Unwrap()

	return p.pickSingle(c, c.chain.Puts, types.OptionTypePut, putMoneynessMin, putMoneynessMax, maxBudget), nil
}

// FindBullCallSpread implements provider.OptionsFinder.
func (p *ChainPicker) FindBullCallSpread(ctx context.Context, symbol string, maxBudget float64) (optional.Option[types.OptionsPick], error) {
	picked, err := p.chain(ctx, symbol)
	if err != nil || picked.IsNone() {
		return optional.None[types.OptionsPick](), err
	}

	return p.pickSpread(picked.Unwrap(), maxBudget), nil
}

// chain selects the expiration and loads its chain. The first expiration
// inside the DTE window wins; otherwise the one closest to the target DTE
// beyond the fallback minimum.
func (p *ChainPicker) chain(ctx context.Context, symbol string) (optional.Option[pickedChain], error) {
	expirations, err := p.chains.GetExpirations(ctx, symbol)
	if err != nil {
		return optional.None[pickedChain](), errors.Wrapf(errors.ErrCodeNoExpirations, err, "expirations for %s", symbol)
	}

	today := p.clock()

	expiration, dte, found := time.Time{}, 0, false

	for _, exp := range expirations {
		d := daysBetween(today, exp)
		if d >= p.cfg.MinDTE && d <= p.cfg.MaxDTE {
			expiration, dte, found = exp, d, true

			break
		}
	}

	if !found {
		bestDiff := math.MaxInt

		for _, exp := range expirations {
			d := daysBetween(today, exp)
			if diff := absInt(d - p.cfg.TargetDTE); d > p.cfg.FallbackMinDTE && diff < bestDiff {
				expiration, dte, found, bestDiff = exp, d, true, diff
			}
		}
	}

	if !found {
		p.log.Debug("No usable expiration", zap.String("symbol", symbol), zap.Int("expirations", len(expirations)))

		return optional.None[pickedChain](), nil
	}

	chain, err := p.chains.GetChain(ctx, symbol, expiration)
	if err != nil {
		return optional.None[pickedChain](), errors.Wrapf(errors.ErrCodeNoOptionsChain, err, "chain for %s %s", symbol, expiration.Format(time.DateOnly))
	}

	if chain.IsNone() || !finitePositive(chain.Unwrap().UnderlyingPrice) {
		return optional.None[pickedChain](), nil
	}

	return optional.Some(pickedChain{chain: chain.Unwrap(), dte: dte}), nil
}

func (p *ChainPicker) pickSingle(
	c pickedChain,
	contracts []types.OptionContract,
	optionType types.OptionType,
	moneynessMin, moneynessMax float64,
	maxBudget float64,
) optional.Option[types.OptionsPick] {
	underlying := c.chain.UnderlyingPrice

	liquid := slices.DeleteFunc(slices.Clone(contracts), func(o types.OptionContract) bool {
		return !o.Quoted() || o.OpenInterest <= p.cfg.MinOpenInterest || o.Mid() <= p.cfg.MinPremium
	})
	if len(liquid) == 0 {
		return optional.None[types.OptionsPick]()
	}

	candidates := slices.DeleteFunc(slices.Clone(liquid), func(o types.OptionContract) bool {
		m := o.Strike / underlying

		return m < moneynessMin || m > moneynessMax
	})
	if len(candidates) == 0 {
		candidates = liquid
	}

	candidates = slices.DeleteFunc(candidates, func(o types.OptionContract) bool {
		return o.Mid()*types.ContractMultiplier > maxBudget
	})
	if len(candidates) == 0 {
		return optional.None[types.OptionsPick]()
	}

	best := slices.MaxFunc(candidates, func(a, b types.OptionContract) int {
		return cmp.Compare(a.OpenInterest, b.OpenInterest)
	})

	premium := best.Mid()
	cost := premium * types.ContractMultiplier
	qty := int(maxBudget / cost)

	return optional.Some(types.OptionsPick{
		OptionType:      optionType,
		ContractSymbol:  best.Symbol,
		Strike:          best.Strike,
		ShortStrike:     optional.None[float64](),
		Expiration:      c.chain.Expiration,
		DTE:             c.dte,
		Premium:         round(premium, 2),
		CostPerContract: round(cost, 2),
		SuggestedQty:    qty,
		TotalCost:       round(cost*float64(qty), 2),
		UnderlyingPrice: round(underlying, 2),
		ImpliedVol:      round(best.ImpliedVolatility*100, 2),
		OpenInterest:    best.OpenInterest,
		Moneyness:       round(best.Strike/underlying, 4),
		MaxProfit:       optional.None[float64](),
		MaxLoss:         optional.None[float64](),
		RiskReward:      optional.None[float64](),
	})
}

func (p *ChainPicker) pickSpread(c pickedChain, maxBudget float64) optional.Option[types.OptionsPick] {
	underlying := c.chain.UnderlyingPrice

	calls := slices.DeleteFunc(slices.Clone(c.chain.Calls), func(o types.OptionContract) bool {
		return !o.Quoted() || o.OpenInterest <= p.cfg.MinOpenInterest
	})
	if len(calls) < 2 {
		return optional.None[types.OptionsPick]()
	}

	slices.SortStableFunc(calls, func(a, b types.OptionContract) int {
		return cmp.Compare(a.Strike, b.Strike)
	})

	longIdx := slices.IndexFunc(calls, func(o types.OptionContract) bool {
		m := o.Strike / underlying

		return m >= spreadLongMoneynessMin && m <= spreadLongMoneynessMax
	})
	if longIdx < 0 {
		return optional.None[types.OptionsPick]()
	}

	long := calls[longIdx]
	minShort := long.Strike * (1 + p.cfg.SpreadWidthPct)

	shortIdx := slices.IndexFunc(calls, func(o types.OptionContract) bool { return o.Strike >= minShort })
	if shortIdx < 0 {
		return optional.None[types.OptionsPick]()
	}

	short := calls[shortIdx]

	debit := long.Mid() - short.Mid()
	maxProfit := short.Strike - long.Strike - debit
	maxLoss := debit

	if maxLoss <= 0 || maxProfit/maxLoss < p.cfg.SpreadMinRiskReward {
		return optional.None[types.OptionsPick]()
	}

	cost := debit * types.ContractMultiplier
	if cost > maxBudget {
		return optional.None[types.OptionsPick]()
	}

	qty := int(maxBudget / cost)

	return optional.Some(types.OptionsPick{
		OptionType:      types.OptionTypeSpread,
		ContractSymbol:  long.Symbol,
		Strike:          long.Strike,
		ShortStrike:     optional.Some(short.Strike),
		Expiration:      c.chain.Expiration,
		DTE:             c.dte,
		Premium:         round(debit, 2),
		CostPerContract: round(cost, 2),
		SuggestedQty:    qty,
		TotalCost:       round(cost*float64(qty), 2),
		UnderlyingPrice: round(underlying, 2),
		ImpliedVol:      round(long.ImpliedVolatility*100, 2),
		OpenInterest:    long.OpenInterest,
		Moneyness:       round(long.Strike/underlying, 4),
		MaxProfit:       optional.Some(round(maxProfit, 2)),
		MaxLoss:         optional.Some(round(maxLoss, 2)),
		RiskReward:      optional.Some(round(maxProfit/maxLoss, 2)),
	})
}

// daysBetween counts calendar days from the date of from to the date of to.
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)

	return int(b.Sub(a).Hours() / 24)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
