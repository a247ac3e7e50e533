package types

import (
	"math"
	"time"

	"github.com/moznion/go-optional"
)

// OptionType is the construct an OptionsPick describes.
type OptionType string

const (
	OptionTypeCall   OptionType = "CALL"
	OptionTypePut    OptionType = "PUT"
	OptionTypeSpread OptionType = "SPREAD"
)

// ContractMultiplier is the number of shares one equity option contract controls.
const ContractMultiplier = 100

// OptionContract is one strike of an options chain.
type OptionContract struct {
	Symbol            string  `yaml:"symbol" json:"symbol"`
	Strike            float64 `yaml:"strike" json:"strike" validate:"gt=0"`
	Bid               float64 `yaml:"bid" json:"bid" validate:"gte=0"`
	Ask               float64 `yaml:"ask" json:"ask" validate:"gte=0"`
	OpenInterest      int     `yaml:"open_interest" json:"open_interest" validate:"gte=0"`
	ImpliedVolatility float64 `yaml:"implied_volatility" json:"implied_volatility"`
}

// Mid is the bid/ask midpoint.
func (c OptionContract) Mid() float64 {
	return (c.Bid + c.Ask) / 2
}

// Quoted reports whether strike, bid, ask and implied volatility are all finite numbers.
func (c OptionContract) Quoted() bool {
	for _, v := range []float64{c.Strike, c.Bid, c.Ask, c.ImpliedVolatility} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// OptionsChain is every listed call and put for one expiration.
type OptionsChain struct {
	Underlying      string           `yaml:"underlying" json:"underlying"`
	UnderlyingPrice float64          `yaml:"underlying_price" json:"underlying_price"`
	Expiration      time.Time        `yaml:"expiration" json:"expiration"`
	Calls           []OptionContract `yaml:"calls" json:"calls"`
	Puts            []OptionContract `yaml:"puts" json:"puts"`
}

// OptionsPick is a concrete, priced options construct sized to a budget.
// For spreads Strike is the long leg and ShortStrike the short leg.
type OptionsPick struct {
	OptionType      OptionType               `yaml:"option_type" json:"option_type"`
	ContractSymbol  string                   `yaml:"contract_symbol" json:"contract_symbol"`
	Strike          float64                  `yaml:"strike" json:"strike"`
	ShortStrike     optional.Option[float64] `yaml:"short_strike" json:"short_strike"`
	Expiration      time.Time                `yaml:"expiration" json:"expiration"`
	DTE             int                      `yaml:"dte" json:"dte"`
	Premium         float64                  `yaml:"premium" json:"premium"`
	CostPerContract float64                  `yaml:"cost_per_contract" json:"cost_per_contract"`
	SuggestedQty    int                      `yaml:"suggested_qty" json:"suggested_qty"`
	TotalCost       float64                  `yaml:"total_cost" json:"total_cost"`
	UnderlyingPrice float64                  `yaml:"underlying_price" json:"underlying_price"`
	ImpliedVol      float64                  `yaml:"implied_volatility" json:"implied_volatility"`
	OpenInterest    int                      `yaml:"open_interest" json:"open_interest"`
	Moneyness       float64                  `yaml:"moneyness" json:"moneyness"`
	// Spread economics, per share. None for single legs.
	MaxProfit  optional.Option[float64] `yaml:"max_profit" json:"max_profit"`
	MaxLoss    optional.Option[float64] `yaml:"max_loss" json:"max_loss"`
	RiskReward optional.Option[float64] `yaml:"risk_reward" json:"risk_reward"`
}

// OptionsSignalKind is the order the options selector recommends.
type OptionsSignalKind string

const (
	OptionsSignalBuyCall   OptionsSignalKind = "BUY_CALL"
	OptionsSignalBuyPut    OptionsSignalKind = "BUY_PUT"
	OptionsSignalBuySpread OptionsSignalKind = "BUY_SPREAD"
)

// OptionsSignal packages a pick with the conviction that produced it.
type OptionsSignal struct {
	Symbol     string            `yaml:"symbol" json:"symbol"`
	Kind       OptionsSignalKind `yaml:"kind" json:"kind"`
	Strategy   string            `yaml:"strategy" json:"strategy"`
	Score      int               `yaml:"score" json:"score"`
	Confidence Confidence        `yaml:"confidence" json:"confidence"`
	Pick       OptionsPick       `yaml:"pick" json:"pick"`
	Reasoning  string            `yaml:"reasoning" json:"reasoning"`
	Signal     Signal            `yaml:"signal" json:"signal"`
}
