package types

import (
	"strings"
	"time"
)

// Confidence is the tier assigned from a signal's composite score.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// ScoreBreakdown keeps the components that were summed into a composite score.
type ScoreBreakdown struct {
	Technical        int `yaml:"technical" json:"technical" csv:"technical"`
	Sentiment        int `yaml:"sentiment" json:"sentiment" csv:"sentiment"`
	ML               int `yaml:"ml" json:"ml" csv:"ml"`
	RegimeAdjustment int `yaml:"regime_adjustment" json:"regime_adjustment" csv:"regime_adjustment"`
}

// Total is the unclamped sum of the components.
func (b ScoreBreakdown) Total() int {
	return b.Technical + b.Sentiment + b.ML + b.RegimeAdjustment
}

// Signal is a scored, directional conviction for one symbol from one scan.
// It is created once and never modified afterwards.
type Signal struct {
	Symbol          string         `yaml:"symbol" json:"symbol" csv:"symbol"`
	Direction       Direction      `yaml:"direction" json:"direction" csv:"direction"`
	Score           int            `yaml:"score" json:"score" csv:"score"`
	Confidence      Confidence     `yaml:"confidence" json:"confidence" csv:"confidence"`
	CurrentPrice    float64        `yaml:"current_price" json:"current_price" csv:"current_price"`
	SuggestedEntry  float64        `yaml:"suggested_entry" json:"suggested_entry" csv:"suggested_entry"`
	SuggestedStop   float64        `yaml:"suggested_stop" json:"suggested_stop" csv:"suggested_stop"`
	SuggestedTarget float64        `yaml:"suggested_target" json:"suggested_target" csv:"suggested_target"`
	Reasoning       []string       `yaml:"reasoning" json:"reasoning" csv:"-"`
	Breakdown       ScoreBreakdown `yaml:"breakdown" json:"breakdown" csv:"-"`
	// SentimentScore is the raw collaborator score, not the bucketed component
	SentimentScore float64      `yaml:"sentiment_score" json:"sentiment_score" csv:"sentiment_score"`
	MLProbability  float64      `yaml:"ml_probability" json:"ml_probability" csv:"ml_probability"`
	MarketRegime   MarketRegime `yaml:"market_regime" json:"market_regime" csv:"market_regime"`
	StrategyName   string       `yaml:"strategy_name" json:"strategy_name" csv:"strategy_name"`
	Timestamp      time.Time    `yaml:"timestamp" json:"timestamp" csv:"timestamp"`
}

// ReasoningText joins the reasoning fragments for display and storage.
func (s Signal) ReasoningText() string {
	return strings.Join(s.Reasoning, " | ")
}
