// Package indicator computes the technical snapshot the scorer consumes from
// raw OHLCV bars. Series are ordered oldest first.
package indicator

import "github.com/moznion/go-optional"

// SMA returns the mean of the last period values, or None when there are
// fewer than period values.
func SMA(values []float64, period int) optional.Option[float64] {
	if period <= 0 || len(values) < period {
		return optional.None[float64]()
	}

	return optional.Some(mean(values[len(values)-period:]))
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
