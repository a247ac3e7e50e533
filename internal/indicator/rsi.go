package indicator

import "github.com/moznion/go-optional"

// RSI is the Relative Strength Index over closes using Wilder's smoothing.
// It needs period+1 closes; a series with no losses is 100.
func RSI(closes []float64, period int) optional.Option[float64] {
	if period <= 0 || len(closes) < period+1 {
		return optional.None[float64]()
	}

	var avgGain, avgLoss float64

	for i := 1; i <= period; i++ {
		gain, loss := change(closes[i-1], closes[i])
		avgGain += gain
		avgLoss += loss
	}

	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		gain, loss := change(closes[i-1], closes[i])
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return optional.Some(100.0)
	}

	rs := avgGain / avgLoss

	return optional.Some(100 - 100/(1+rs))
}

func change(prev, cur float64) (gain, loss float64) {
	d := cur - prev
	if d > 0 {
		return d, 0
	}

	return 0, -d
}
