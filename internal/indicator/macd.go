package indicator

import "github.com/moznion/go-optional"

// MACD returns the latest MACD line (fast EMA - slow EMA) and its signal
// line (EMA of the MACD line). Either is None without enough closes:
// the line needs slow closes, the signal slow+signal-1.
func MACD(closes []float64, fast, slow, signal int) (line, signalLine optional.Option[float64]) {
	if fast <= 0 || slow <= fast || signal <= 0 {
		return optional.None[float64](), optional.None[float64]()
	}

	slowSeries := EMASeries(closes, slow)
	if len(slowSeries) == 0 {
		return optional.None[float64](), optional.None[float64]()
	}

	// fast series starts slow-fast values earlier
	fastSeries := EMASeries(closes, fast)[slow-fast:]

	macd := make([]float64, len(slowSeries))
	for i := range slowSeries {
		macd[i] = fastSeries[i] - slowSeries[i]
	}

	line = optional.Some(macd[len(macd)-1])

	signalSeries := EMASeries(macd, signal)
	if len(signalSeries) == 0 {
		return line, optional.None[float64]()
	}

	return line, optional.Some(signalSeries[len(signalSeries)-1])
}
