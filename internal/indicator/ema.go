package indicator

// EMASeries returns the exponential moving average of values for every index
// from period-1 onward. The first value is the simple average of the first
// period values, then EMA = value * alpha + EMA_prev * (1 - alpha) with
// alpha = 2 / (period + 1). It returns nil when there are fewer than period values.
func EMASeries(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}

	alpha := 2.0 / float64(period+1)
	out := make([]float64, 0, len(values)-period+1)

	ema := mean(values[:period])
	out = append(out, ema)

	for _, v := range values[period:] {
		ema = v*alpha + ema*(1-alpha)
		out = append(out, ema)
	}

	return out
}
