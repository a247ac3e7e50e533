package engine_v1

import (
	"slices"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal-engine/internal/types"
)

// book tracks what the cycle holds, including entries placed earlier in the same cycle.
type book struct {
	symbols  []string
	counts   types.PositionCounts
	exposure map[string]float64
}

func newBook(positions []types.Position) *book {
	symbols := make([]string, 0, len(positions))
	for _, p := range positions {
		symbols = append(symbols, p.Symbol)
	}

	return &book{
		symbols:  symbols,
		counts:   types.CountPositions(positions),
		exposure: types.SectorExposure(positions),
	}
}

func (b *book) holds(symbol string) bool {
	return slices.Contains(b.symbols, symbol)
}

func (b *book) add(symbol string, assetType types.AssetType, sector optional.Option[string], value float64) {
	b.symbols = append(b.symbols, symbol)
	b.counts = b.counts.Add(assetType)

	if sector.IsSome() {
		b.exposure[sector.Unwrap()] += value
	}
}
