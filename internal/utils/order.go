package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// MaxQuantity returns the largest quantity at the given decimal precision whose
// cost at price fits in budget. Shares use precision 0.
func MaxQuantity(budget float64, price float64, precision int) float64 {
	if !finitePositive(price) || !finitePositive(budget) {
		return 0
	}

	qty := decimal.NewFromFloat(budget).Div(decimal.NewFromFloat(price))

	return RoundToDecimalPrecision(qty.InexactFloat64(), precision)
}

// RoundToDecimalPrecision rounds the quantity down to the specified decimal precision.
func RoundToDecimalPrecision(quantity float64, decimalPrecision int) float64 {
	multiplier := math.Pow10(decimalPrecision)

	return math.Floor(quantity*multiplier) / multiplier
}

// PositionSize caps the room left in an allocation by the per position fraction of the portfolio.
func PositionSize(room float64, portfolioValue float64, maxFraction float64) float64 {
	return math.Max(0, math.Min(room, portfolioValue*maxFraction))
}

// RoundCents rounds a price to the nearest cent.
func RoundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
