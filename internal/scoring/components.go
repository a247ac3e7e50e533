package scoring

import (
	"fmt"

	"github.com/rxtech-lab/argo-signal-engine/internal/config"
	"github.com/rxtech-lab/argo-signal-engine/internal/types"
	"github.com/shopspring/decimal"
)

// component is one scored factor with the direction it votes for.
type component struct {
	score     int
	direction types.Direction
	reasons   []string
}

// technicalScore buckets moving averages, RSI, MACD, volume and 20 bar return
// into 0-40 points. Every bucket except volume votes, and the technical
// direction is BULLISH unless bearish votes outnumber bullish ones.
func technicalScore(snap types.TechnicalSnapshot, volumeSurgeRatio float64) component {
	var (
		score   int
		bull    int
		bear    int
		reasons []string
	)

	price := snap.Price

	if snap.SMA50.IsSome() && snap.SMA200.IsSome() {
		sma50, sma200 := snap.SMA50.Unwrap(), snap.SMA200.Unwrap()

		switch {
		case price > sma50 && sma50 > sma200:
			score += 10
			bull++
			reasons = append(reasons, "Above 50 & 200 SMA (bullish)")
		case price < sma50 && sma50 < sma200:
			score += 8
			bear++
			reasons = append(reasons, "Below 50 & 200 SMA (bearish)")
		case price > sma50:
			score += 5
			bull++
			reasons = append(reasons, "Above 50 SMA")
		}
	}

	if snap.RSI.IsSome() {
		rsi := snap.RSI.Unwrap()

		switch {
		case rsi > 50 && rsi < 70:
			score += 10
			bull++
			reasons = append(reasons, fmt.Sprintf("RSI %.0f momentum zone", rsi))
		case rsi <= 30:
			score += 8
			bull++
			reasons = append(reasons, fmt.Sprintf("RSI %.0f oversold, reversal setup", rsi))
		case rsi >= 75:
			score += 6
			bear++
			reasons = append(reasons, fmt.Sprintf("RSI %.0f overbought", rsi))
		case rsi > 30 && rsi <= 50:
			score += 4
			bear++
			reasons = append(reasons, fmt.Sprintf("RSI %.0f weak", rsi))
		}
	}

	if snap.MACD.IsSome() && snap.MACDSignal.IsSome() {
		if snap.MACD.Unwrap()-snap.MACDSignal.Unwrap() > 0 {
			score += 10
			bull++
			reasons = append(reasons, "MACD bullish crossover")
		} else {
			score += 5
			bear++
			reasons = append(reasons, "MACD bearish")
		}
	}

	if snap.VolumeSMA20.IsSome() && snap.Volume > snap.VolumeSMA20.Unwrap()*volumeSurgeRatio {
		score += 5
		reasons = append(reasons, "High volume surge")
	}

	if snap.Return20d.IsSome() {
		ret := snap.Return20d.Unwrap()

		switch {
		case ret > 5:
			score += 5
			bull++
			reasons = append(reasons, fmt.Sprintf("+%.1f%% 20d momentum", ret))
		case ret < -5:
			score += 3
			bear++
			reasons = append(reasons, fmt.Sprintf("%.1f%% 20d decline", ret))
		}
	}

	direction := types.DirectionBullish
	if bear > bull {
		direction = types.DirectionBearish
	}

	return component{score: score, direction: direction, reasons: reasons}
}

// sentimentScore maps the raw sentiment into five bands worth 3-25 points.
func sentimentScore(sent types.SentimentSummary) component {
	raw := sent.Score

	var c component

	switch {
	case raw > 0.3:
		c = component{25, types.DirectionBullish, []string{fmt.Sprintf("Sentiment very positive (%+.2f)", raw)}}
	case raw > 0.1:
		c = component{18, types.DirectionBullish, []string{fmt.Sprintf("Sentiment positive (%+.2f)", raw)}}
	case raw > -0.1:
		c = component{12, types.DirectionNeutral, []string{fmt.Sprintf("Sentiment neutral (%+.2f)", raw)}}
	case raw > -0.3:
		c = component{8, types.DirectionBearish, []string{fmt.Sprintf("Sentiment negative (%+.2f)", raw)}}
	default:
		c = component{3, types.DirectionBearish, []string{fmt.Sprintf("Sentiment very negative (%+.2f)", raw)}}
	}

	if sent.HeadlineCount > 0 {
		c.reasons = append(c.reasons, fmt.Sprintf("%d+ / %d- headlines", sent.PositiveCount, sent.NegativeCount))
	}

	return c
}

// modelScore rewards conviction in either direction: the distance of the up
// probability from 0.5 sets the points, its side sets the direction.
func modelScore(pred types.Prediction, minAccuracy float64) component {
	p, acc := pred.ProbabilityUp, pred.Accuracy

	if acc < minAccuracy {
		return component{12, types.DirectionNeutral, []string{fmt.Sprintf("ML low confidence (acc %.0f%%)", acc*100)}}
	}

	switch {
	case p >= 0.60:
		return component{22, types.DirectionBullish, []string{fmt.Sprintf("ML: %.0f%% UP (acc %.0f%%)", p*100, acc*100)}}
	case p >= 0.52:
		return component{16, types.DirectionBullish, []string{fmt.Sprintf("ML: leans UP %.0f%%", p*100)}}
	case p >= 0.48:
		return component{12, types.DirectionNeutral, []string{fmt.Sprintf("ML: neutral (%.0f%%)", p*100)}}
	case p >= 0.40:
		return component{16, types.DirectionBearish, []string{fmt.Sprintf("ML: leans DOWN (%.0f%% down prob)", (1-p)*100)}}
	default:
		return component{22, types.DirectionBearish, []string{
			fmt.Sprintf("ML: strong DOWN signal (%.0f%% down prob, acc %.0f%%)", (1-p)*100, acc*100),
		}}
	}
}

// regimeAdjustment rewards technicals that agree with a trending market.
func regimeAdjustment(regime types.MarketRegime, technical types.Direction) (int, []string) {
	switch regime {
	case types.MarketRegimeBull:
		if technical == types.DirectionBullish {
			return 10, []string{"Regime boost: BULL market + bullish technicals"}
		}

		return 3, []string{"BULL regime"}
	case types.MarketRegimeBear:
		if technical == types.DirectionBearish {
			return 8, []string{"Regime boost: BEAR market + bearish technicals"}
		}

		return -5, []string{"Regime drag: BEAR market vs bullish technicals"}
	default:
		return 0, nil
	}
}

// voteDirection takes the majority of the component directions. An even vote
// follows the regime, and a NEUTRAL regime resolves to BULLISH.
func voteDirection(regime types.MarketRegime, directions ...types.Direction) types.Direction {
	var bull, bear int

	for _, d := range directions {
		switch d {
		case types.DirectionBullish:
			bull++
		case types.DirectionBearish:
			bear++
		case types.DirectionNeutral:
		}
	}

	switch {
	case bull > bear:
		return types.DirectionBullish
	case bear > bull:
		return types.DirectionBearish
	case regime == types.MarketRegimeBear:
		return types.DirectionBearish
	default:
		// TODO: NEUTRAL regime ties lean bullish; needs a product decision before changing
		return types.DirectionBullish
	}
}

func confidenceFor(score int, cfg config.ScoringConfig) types.Confidence {
	switch {
	case score >= cfg.HighConfidenceThreshold:
		return types.ConfidenceHigh
	case score >= cfg.MediumConfidenceThreshold:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

func clampScore(score int) int {
	return max(0, min(100, score))
}

func roundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
