package indicator

import (
	"context"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal-engine/internal/provider"
	"github.com/rxtech-lab/argo-signal-engine/internal/types"
	"github.com/rxtech-lab/argo-signal-engine/pkg/errors"
)

const (
	// MinBars is the shortest history a snapshot is built from.
	MinBars = 50
	// DefaultLookback covers the 200 bar average with room to spare.
	DefaultLookback = 260

	rsiPeriod    = 14
	macdFast     = 12
	macdSlow     = 26
	macdSignal   = 9
	volumePeriod = 20
	returnBars   = 20
)

// BuildSnapshot computes the technical snapshot from bars, oldest first.
// Fewer than MinBars bars is an InsufficientDataError.
func BuildSnapshot(symbol string, bars []types.Bar) (types.TechnicalSnapshot, error) {
	if len(bars) < MinBars {
		return types.TechnicalSnapshot{}, errors.NewInsufficientDataErrorf(MinBars, len(bars), symbol,
			"insufficient bars for %s: required %d, got %d", symbol, MinBars, len(bars))
	}

	closes := make([]float64, len(bars))
	volumes := make([]float64, len(bars))

	for i, b := range bars {
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	last := bars[len(bars)-1]
	macd, signal := MACD(closes, macdFast, macdSlow, macdSignal)

	return types.TechnicalSnapshot{
		Price:       last.Close,
		Volume:      last.Volume,
		SMA50:       SMA(closes, 50),
		SMA200:      SMA(closes, 200),
		RSI:         RSI(closes, rsiPeriod),
		MACD:        macd,
		MACDSignal:  signal,
		VolumeSMA20: SMA(volumes, volumePeriod),
		Return20d:   periodReturn(closes, returnBars),
	}, nil
}

// periodReturn is the percent change from the close n bars from the end.
func periodReturn(closes []float64, n int) optional.Option[float64] {
	if len(closes) < n {
		return optional.None[float64]()
	}

	base := closes[len(closes)-n]
	if base <= 0 {
		return optional.None[float64]()
	}

	return optional.Some((closes[len(closes)-1]/base - 1) * 100)
}

// SnapshotProvider is a TechnicalProvider that builds snapshots from bar history.
type SnapshotProvider struct {
	bars     provider.BarProvider
	lookback int
}

var _ provider.TechnicalProvider = (*SnapshotProvider)(nil)

// NewSnapshotProvider creates a provider. A non-positive lookback uses DefaultLookback.
func NewSnapshotProvider(bars provider.BarProvider, lookback int) *SnapshotProvider {
	if lookback <= 0 {
		lookback = DefaultLookback
	}

	return &SnapshotProvider{bars: bars, lookback: lookback}
}

// GetTechnicalSnapshot implements provider.TechnicalProvider. Short history is
// reported as an absent snapshot.
func (p *SnapshotProvider) GetTechnicalSnapshot(ctx context.Context, symbol string) (optional.Option[types.TechnicalSnapshot], error) {
	bars, err := p.bars.GetBars(ctx, symbol, p.lookback)
	if err != nil {
		return optional.None[types.TechnicalSnapshot](), errors.Wrapf(errors.ErrCodeDataUnavailable, err, "bars for %s", symbol)
	}

	snapshot, err := BuildSnapshot(symbol, bars)
	if errors.IsInsufficientDataError(err) {
		return optional.None[types.TechnicalSnapshot](), nil
	}

	if err != nil {
		return optional.None[types.TechnicalSnapshot](), err
	}

	return optional.Some(snapshot), nil
}
