// Package provider declares the collaborators the engine consumes.
//
// Absent data is reported as optional.None, never as an error; errors mean the
// collaborator itself failed. The engine never retries either case.
package provider

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal-engine/internal/types"
)

// AccountProvider supplies the account snapshot for a cycle.
type AccountProvider interface {
	GetAccount(ctx context.Context) (optional.Option[types.AccountSnapshot], error)
}

// PositionProvider supplies open positions. Counts are derived with types.CountPositions.
type PositionProvider interface {
	GetPositions(ctx context.Context) ([]types.Position, error)
}

// TechnicalProvider supplies the indicator snapshot for a symbol.
type TechnicalProvider interface {
	GetTechnicalSnapshot(ctx context.Context, symbol string) (optional.Option[types.TechnicalSnapshot], error)
}

// BarProvider supplies up to count daily bars for a symbol, oldest first.
type BarProvider interface {
	GetBars(ctx context.Context, symbol string, count int) ([]types.Bar, error)
}

// SentimentProvider never fails; it returns types.NeutralSentiment when extraction breaks.
type SentimentProvider interface {
	GetSentiment(ctx context.Context, symbol string) types.SentimentSummary
}

// Predictor never fails; it returns types.NeutralPrediction when inference breaks.
type Predictor interface {
	Predict(ctx context.Context, symbol string) types.Prediction
}

// RegimeProvider classifies the broad market. Callers cache it.
type RegimeProvider interface {
	GetMarketRegime(ctx context.Context) (types.RegimeReading, error)
}

// SectorProvider classifies a symbol for sector exposure checks.
// None means unclassified and skips the sector gate.
type SectorProvider interface {
	GetSector(ctx context.Context, symbol string) optional.Option[string]
}

// OptionsFinder selects concrete contracts within a budget.
type OptionsFinder interface {
	FindBestCall(ctx context.Context, symbol string, maxBudget float64) (optional.Option[types.OptionsPick], error)
	FindBestPut(ctx context.Context, symbol string, maxBudget float64) (optional.Option[types.OptionsPick], error)
	FindBullCallSpread(ctx context.Context, symbol string, maxBudget float64) (optional.Option[types.OptionsPick], error)
}

// ChainProvider serves raw options chains for contract selection.
type ChainProvider interface {
	GetExpirations(ctx context.Context, symbol string) ([]time.Time, error)
	GetChain(ctx context.Context, symbol string, expiration time.Time) (optional.Option[types.OptionsChain], error)
}

// Broker executes proposals.
type Broker interface {
	// PlaceLimitOrder returns the broker order id, or None when the order was not accepted
	PlaceLimitOrder(ctx context.Context, proposal types.TradeProposal) (optional.Option[string], error)
	ClosePosition(ctx context.Context, symbol string) (bool, error)
}

// SignalRecorder persists scored signals and the proposals made from them.
type SignalRecorder interface {
	RecordSignal(ctx context.Context, runID string, signal types.Signal) error
	RecordProposal(ctx context.Context, runID string, proposal types.TradeProposal, orderID optional.Option[string]) error
}
