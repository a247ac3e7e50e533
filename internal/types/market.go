package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// Direction is the directional view of a signal or one of its components.
type Direction string

const (
	DirectionBullish Direction = "BULLISH"
	DirectionBearish Direction = "BEARISH"
	DirectionNeutral Direction = "NEUTRAL"
)

// MarketRegime classifies broad market conditions from volatility and index trend.
type MarketRegime string

const (
	MarketRegimeBull    MarketRegime = "BULL"
	MarketRegimeBear    MarketRegime = "BEAR"
	MarketRegimeNeutral MarketRegime = "NEUTRAL"
)

// Bar is one OHLCV candle.
type Bar struct {
	Time   time.Time `yaml:"time" json:"time" csv:"time"`
	Open   float64   `yaml:"open" json:"open" csv:"open"`
	High   float64   `yaml:"high" json:"high" csv:"high"`
	Low    float64   `yaml:"low" json:"low" csv:"low"`
	Close  float64   `yaml:"close" json:"close" csv:"close"`
	Volume float64   `yaml:"volume" json:"volume" csv:"volume"`
}

// TechnicalSnapshot holds the latest indicator values for one symbol.
// Indicators that could not be computed are None.
type TechnicalSnapshot struct {
	Price       float64                  `yaml:"price" json:"price"`
	Volume      float64                  `yaml:"volume" json:"volume"`
	SMA50       optional.Option[float64] `yaml:"sma_50" json:"sma_50"`
	SMA200      optional.Option[float64] `yaml:"sma_200" json:"sma_200"`
	RSI         optional.Option[float64] `yaml:"rsi" json:"rsi"`
	MACD        optional.Option[float64] `yaml:"macd" json:"macd"`
	MACDSignal  optional.Option[float64] `yaml:"macd_signal" json:"macd_signal"`
	VolumeSMA20 optional.Option[float64] `yaml:"volume_sma_20" json:"volume_sma_20"`
	// Return20d is the 20 bar price change in percent
	Return20d optional.Option[float64] `yaml:"return_20d" json:"return_20d"`
}

// SentimentSummary is the aggregated news sentiment for one symbol.
type SentimentSummary struct {
	Score         float64 `yaml:"score" json:"score"`
	HeadlineCount int     `yaml:"headline_count" json:"headline_count"`
	PositiveCount int     `yaml:"positive_count" json:"positive_count"`
	NegativeCount int     `yaml:"negative_count" json:"negative_count"`
}

// NeutralSentiment is returned by sentiment collaborators when extraction fails.
func NeutralSentiment() SentimentSummary {
	return SentimentSummary{Score: 0, HeadlineCount: 0, PositiveCount: 0, NegativeCount: 0}
}

// Prediction is the directional model output for one symbol.
type Prediction struct {
	// ProbabilityUp is the probability of an up move over the model horizon
	ProbabilityUp float64 `yaml:"probability_up" json:"probability_up" validate:"gte=0,lte=1"`
	// Accuracy is the model's validation accuracy
	Accuracy float64 `yaml:"accuracy" json:"accuracy" validate:"gte=0,lte=1"`
}

// NeutralPrediction is returned by predictors when inference fails.
func NeutralPrediction() Prediction {
	return Prediction{ProbabilityUp: 0.5, Accuracy: 0}
}

// RegimeReading is the market regime collaborator's output.
type RegimeReading struct {
	Regime         MarketRegime `yaml:"regime" json:"regime" validate:"required,oneof=BULL BEAR NEUTRAL"`
	VIX            float64      `yaml:"vix" json:"vix"`
	SPYTrend       Direction    `yaml:"spy_trend" json:"spy_trend"`
	CompositeScore float64      `yaml:"composite_score" json:"composite_score"`
}

// NeutralRegime is used when the regime collaborator fails.
func NeutralRegime() RegimeReading {
	return RegimeReading{
		Regime:         MarketRegimeNeutral,
		VIX:            0,
		SPYTrend:       DirectionNeutral,
		CompositeScore: 0,
	}
}
