package fixture

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal-engine/internal/indicator"
	"github.com/rxtech-lab/argo-signal-engine/internal/provider"
	"github.com/rxtech-lab/argo-signal-engine/internal/types"
	"github.com/rxtech-lab/argo-signal-engine/pkg/errors"
)

// Fixture serves one scenario cycle at a time. Call Advance before each cycle.
type Fixture struct {
	scenario  Scenario
	snapshots *indicator.SnapshotProvider

	mu        sync.RWMutex
	cycle     int
	positions []types.Position
}

var (
	_ provider.AccountProvider   = (*Fixture)(nil)
	_ provider.PositionProvider  = (*Fixture)(nil)
	_ provider.TechnicalProvider = (*Fixture)(nil)
	_ provider.BarProvider       = (*Fixture)(nil)
	_ provider.SentimentProvider = (*Fixture)(nil)
	_ provider.Predictor         = (*Fixture)(nil)
	_ provider.RegimeProvider    = (*Fixture)(nil)
	_ provider.SectorProvider    = (*Fixture)(nil)
	_ provider.ChainProvider     = (*Fixture)(nil)
)

// New creates a fixture positioned before the first cycle.
func New(scenario Scenario) *Fixture {
	f := &Fixture{
		scenario:  scenario,
		snapshots: nil,
		mu:        sync.RWMutex{},
		cycle:     -1,
		positions: nil,
	}
	f.snapshots = indicator.NewSnapshotProvider(f, 0)

	return f
}

// Len is the number of cycles in the scenario.
func (f *Fixture) Len() int {
	return len(f.scenario.Cycles)
}

// Advance moves to the next cycle and reports whether one exists.
func (f *Fixture) Advance() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cycle+1 >= len(f.scenario.Cycles) {
		return false
	}

	f.cycle++
	c := f.scenario.Cycles[f.cycle]

	if c.Positions != nil {
		f.positions = slices.Clone(c.Positions)
	}

	for i, p := range f.positions {
		mark, ok := c.Marks[p.Symbol]
		if !ok {
			continue
		}

		f.positions[i] = reprice(p, mark)
	}

	return true
}

// Now is the current cycle time, or the zero time before the first Advance.
func (f *Fixture) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.cycle < 0 {
		return time.Time{}
	}

	return f.scenario.Cycles[f.cycle].Time
}

// Cycle is the zero based index of the current cycle.
func (f *Fixture) Cycle() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.cycle
}

func (f *Fixture) current() (Cycle, bool) {
	if f.cycle < 0 {
		return Cycle{}, false
	}

	return f.scenario.Cycles[f.cycle], true
}

// GetAccount implements provider.AccountProvider.
func (f *Fixture) GetAccount(_ context.Context) (optional.Option[types.AccountSnapshot], error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	c, ok := f.current()
	if !ok || c.Account == nil {
		return optional.None[types.AccountSnapshot](), nil
	}

	return optional.Some(*c.Account), nil
}

// GetPositions implements provider.PositionProvider.
func (f *Fixture) GetPositions(_ context.Context) ([]types.Position, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return slices.Clone(f.positions), nil
}

// GetTechnicalSnapshot implements provider.TechnicalProvider. A scripted
// snapshot wins over bars.
func (f *Fixture) GetTechnicalSnapshot(ctx context.Context, symbol string) (optional.Option[types.TechnicalSnapshot], error) {
	data, ok := f.scenario.Symbols[symbol]
	if !ok {
		return optional.None[types.TechnicalSnapshot](), nil
	}

	if data.Error != "" {
		return optional.None[types.TechnicalSnapshot](), errors.New(errors.ErrCodeDataUnavailable, data.Error)
	}

	if data.Technical != nil {
		return optional.Some(data.Technical.Snapshot()), nil
	}

	return f.snapshots.GetTechnicalSnapshot(ctx, symbol)
}

// GetBars implements provider.BarProvider. Only bars up to the current cycle time are visible.
func (f *Fixture) GetBars(_ context.Context, symbol string, count int) ([]types.Bar, error) {
	now := f.Now()

	bars := f.scenario.Symbols[symbol].Bars
	end, _ := slices.BinarySearchFunc(bars, now, func(b types.Bar, t time.Time) int {
		return b.Time.Compare(t)
	})

	// include a bar stamped exactly at now
	if end < len(bars) && bars[end].Time.Equal(now) {
		end++
	}

	start := max(0, end-count)

	return slices.Clone(bars[start:end]), nil
}

// GetSentiment implements provider.SentimentProvider.
func (f *Fixture) GetSentiment(_ context.Context, symbol string) types.SentimentSummary {
	if s := f.scenario.Symbols[symbol].Sentiment; s != nil {
		return *s
	}

	return types.NeutralSentiment()
}

// Predict implements provider.Predictor.
func (f *Fixture) Predict(_ context.Context, symbol string) types.Prediction {
	if p := f.scenario.Symbols[symbol].Prediction; p != nil {
		return *p
	}

	return types.NeutralPrediction()
}

// GetMarketRegime implements provider.RegimeProvider. The cycle regime wins over the scenario regime.
func (f *Fixture) GetMarketRegime(_ context.Context) (types.RegimeReading, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if c, ok := f.current(); ok && c.Regime != nil {
		return *c.Regime, nil
	}

	if f.scenario.Regime != nil {
		return *f.scenario.Regime, nil
	}

	return types.RegimeReading{}, errors.New(errors.ErrCodeDataUnavailable, "scenario has no market regime")
}

// GetSector implements provider.SectorProvider.
func (f *Fixture) GetSector(_ context.Context, symbol string) optional.Option[string] {
	if sector := f.scenario.Symbols[symbol].Sector; sector != "" {
		return optional.Some(sector)
	}

	return optional.None[string]()
}

// GetExpirations implements provider.ChainProvider.
func (f *Fixture) GetExpirations(_ context.Context, symbol string) ([]time.Time, error) {
	opts := f.scenario.Symbols[symbol].Options
	if opts == nil {
		return nil, nil
	}

	return slices.Clone(opts.Expirations), nil
}

// GetChain implements provider.ChainProvider.
func (f *Fixture) GetChain(_ context.Context, symbol string, expiration time.Time) (optional.Option[types.OptionsChain], error) {
	opts := f.scenario.Symbols[symbol].Options
	if opts == nil {
		return optional.None[types.OptionsChain](), nil
	}

	for _, chain := range opts.Chains {
		if sameDate(chain.Expiration, expiration) {
			chain.Underlying = symbol

			return optional.Some(chain), nil
		}
	}

	return optional.None[types.OptionsChain](), nil
}

// fill adds a bought position to the book, merging into an existing holding.
func (f *Fixture) fill(position types.Position) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, p := range f.positions {
		if p.Symbol != position.Symbol || p.AssetType != position.AssetType {
			continue
		}

		qty := p.Quantity + position.Quantity
		p.AvgEntryPrice = (p.AvgEntryPrice*p.Quantity + position.AvgEntryPrice*position.Quantity) / qty
		p.Quantity = qty
		p.MarketValue += position.MarketValue
		f.positions[i] = p

		return
	}

	f.positions = append(f.positions, position)
}

// close removes every holding of the symbol and reports whether one existed.
func (f *Fixture) close(symbol string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	before := len(f.positions)
	f.positions = slices.DeleteFunc(f.positions, func(p types.Position) bool { return p.Symbol == symbol })

	return len(f.positions) < before
}

func reprice(p types.Position, mark float64) types.Position {
	multiplier := 1.0
	if p.AssetType == types.AssetTypeOption {
		multiplier = types.ContractMultiplier
	}

	p.CurrentPrice = mark
	p.MarketValue = mark * p.Quantity * multiplier

	if p.AvgEntryPrice > 0 {
		p.UnrealizedPLPC = mark/p.AvgEntryPrice - 1
	}

	return p
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}
