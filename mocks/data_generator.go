package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-signal-engine/internal/types"
)

// BarGenerator generates daily OHLCV bars for indicator and engine tests.
type BarGenerator struct {
	rng *rand.Rand
}

// NewBarGenerator creates a generator. Use a fixed seed for reproducible tests.
func NewBarGenerator(seed int64) *BarGenerator {
	return &BarGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// BarConfig configures a generated bar series.
type BarConfig struct {
	Start        time.Time
	Count        int
	InitialPrice float64
	// Volatility is the per bar standard deviation of returns (0.02 = 2%)
	Volatility float64
	// Drift is the per bar expected return
	Drift      float64
	VolumeBase float64
	// VolumeVariance is the relative spread of volume around VolumeBase (0.0 to 1.0)
	VolumeVariance float64
}

// DefaultBarConfig is one year of daily bars with mild volatility and no drift.
func DefaultBarConfig() BarConfig {
	return BarConfig{
		Start:          time.Date(2024, 1, 2, 21, 0, 0, 0, time.UTC),
		Count:          252,
		InitialPrice:   100.0,
		Volatility:     0.015,
		Drift:          0.0,
		VolumeBase:     1_000_000,
		VolumeVariance: 0.3,
	}
}

// Generate creates bars following geometric Brownian motion, skipping weekends.
func (g *BarGenerator) Generate(cfg BarConfig) []types.Bar {
	bars := make([]types.Bar, cfg.Count)
	price := cfg.InitialPrice
	day := cfg.Start

	for i := range cfg.Count {
		open := price

		// Box-Muller
		u1 := 1 - g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		closePrice := open * (1 + cfg.Drift + cfg.Volatility*z)
		if closePrice <= 0 {
			closePrice = open * 0.99
		}

		high := math.Max(open, closePrice) * (1 + g.rng.Float64()*cfg.Volatility*0.5)
		low := math.Min(open, closePrice) * (1 - g.rng.Float64()*cfg.Volatility*0.5)

		volume := cfg.VolumeBase * (1 + (g.rng.Float64()*2-1)*cfg.VolumeVariance)

		bars[i] = types.Bar{
			Time:   day,
			Open:   roundToDecimals(open, 4),
			High:   roundToDecimals(high, 4),
			Low:    roundToDecimals(low, 4),
			Close:  roundToDecimals(closePrice, 4),
			Volume: roundToDecimals(volume, 0),
		}

		price = closePrice
		day = nextTradingDay(day)
	}

	return bars
}

// LinearBars returns count bars whose close moves by step each bar from start,
// with constant volume. It is deterministic and suited for exact indicator checks.
func LinearBars(count int, start, step, volume float64) []types.Bar {
	bars := make([]types.Bar, count)
	day := DefaultBarConfig().Start

	for i := range count {
		c := start + step*float64(i)
		bars[i] = types.Bar{
			Time:   day,
			Open:   c - step/2,
			High:   math.Max(c, c-step/2),
			Low:    math.Min(c, c-step/2),
			Close:  c,
			Volume: volume,
		}
		day = nextTradingDay(day)
	}

	return bars
}

func nextTradingDay(t time.Time) time.Time {
	t = t.AddDate(0, 0, 1)
	for t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		t = t.AddDate(0, 0, 1)
	}

	return t
}

func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
