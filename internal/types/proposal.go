package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal-engine/pkg/errors"
)

// Side is the order side.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// TradeProposal is the engine's instruction to the execution collaborator.
type TradeProposal struct {
	ID         string    `yaml:"id" json:"id" csv:"id" validate:"required,uuid"`
	Symbol     string    `yaml:"symbol" json:"symbol" csv:"symbol" validate:"required"`
	Side       Side      `yaml:"side" json:"side" csv:"side" validate:"required,oneof=BUY SELL"`
	Quantity   float64   `yaml:"quantity" json:"quantity" csv:"quantity" validate:"required,gt=0"`
	LimitPrice float64   `yaml:"limit_price" json:"limit_price" csv:"limit_price" validate:"required,gt=0"`
	AssetType  AssetType `yaml:"asset_type" json:"asset_type" csv:"asset_type" validate:"required,oneof=STOCK OPTION"`
	CreatedAt  time.Time `yaml:"created_at" json:"created_at" csv:"created_at" validate:"required"`
	// Signal is the stock-level conviction behind the proposal
	Signal optional.Option[Signal] `yaml:"signal" json:"signal" csv:"-"`
	// Options is set for option proposals
	Options optional.Option[OptionsSignal] `yaml:"options" json:"options" csv:"-"`
}

// NewStockProposal builds a limit buy for shares of the signal's symbol.
func NewStockProposal(signal Signal, quantity float64, now time.Time) TradeProposal {
	return TradeProposal{
		ID:         uuid.New().String(),
		Symbol:     signal.Symbol,
		Side:       SideBuy,
		Quantity:   quantity,
		LimitPrice: signal.CurrentPrice,
		AssetType:  AssetTypeStock,
		CreatedAt:  now,
		Signal:     optional.Some(signal),
		Options:    optional.None[OptionsSignal](),
	}
}

// NewOptionsProposal builds a limit buy for the contracts in an options signal.
// The limit price is the per-share premium (net debit for spreads).
func NewOptionsProposal(opt OptionsSignal, now time.Time) TradeProposal {
	return TradeProposal{
		ID:         uuid.New().String(),
		Symbol:     opt.Symbol,
		Side:       SideBuy,
		Quantity:   float64(opt.Pick.SuggestedQty),
		LimitPrice: opt.Pick.Premium,
		AssetType:  AssetTypeOption,
		CreatedAt:  now,
		Signal:     optional.Some(opt.Signal),
		Options:    optional.Some(opt),
	}
}

// Notional is the capital the proposal commits.
func (p TradeProposal) Notional() float64 {
	if p.AssetType == AssetTypeOption {
		return p.Quantity * p.LimitPrice * ContractMultiplier
	}

	return p.Quantity * p.LimitPrice
}

// Validate validates the TradeProposal struct.
func (p *TradeProposal) Validate() error {
	validate := validator.New()

	if err := validate.Struct(p); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidProposal, "invalid trade proposal", err)
	}

	if p.AssetType == AssetTypeOption && p.Options.IsNone() {
		return errors.New(errors.ErrCodeInvalidProposal, "option proposal has no options signal")
	}

	return nil
}
