// Package engine defines the trading cycle orchestrator contract: the
// collaborators it is wired to, the lifecycle callbacks it fires and the
// summary each cycle produces.
package engine

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal-engine/internal/provider"
	"github.com/rxtech-lab/argo-signal-engine/internal/risk"
	"github.com/rxtech-lab/argo-signal-engine/internal/scoring"
	"github.com/rxtech-lab/argo-signal-engine/internal/types"
)

// OnCycleStartCallback is called before a cycle reads the account.
// Returning an error aborts the cycle.
type OnCycleStartCallback func(cycleID string, now time.Time) error

// OnCycleEndCallback is called after every cycle, skipped or not.
type OnCycleEndCallback func(summary CycleSummary)

// OnSignalCallback is called for each qualifying signal of a scan, highest score first.
type OnSignalCallback func(signal types.Signal)

// OnProposalCallback is called for each proposal handed to the broker.
// orderID is None when the broker declined or failed.
type OnProposalCallback func(proposal types.TradeProposal, orderID optional.Option[string])

// OnExitCallback is called for each position the broker closed.
type OnExitCallback func(position types.Position, decision risk.ExitDecision)

// OnRiskEventCallback is called for each risk event before it is dispatched.
type OnRiskEventCallback func(event risk.Event)

// OnRiskMetricsCallback is called with the end of cycle risk metrics.
type OnRiskMetricsCallback func(metrics risk.Metrics)

// OnErrorCallback is called when a non-fatal error occurs.
type OnErrorCallback func(err error)

// Callbacks holds the lifecycle callbacks. Nil fields are not invoked.
type Callbacks struct {
	OnCycleStart  *OnCycleStartCallback
	OnCycleEnd    *OnCycleEndCallback
	OnScored      *scoring.OnScoredCallback
	OnSignal      *OnSignalCallback
	OnProposal    *OnProposalCallback
	OnExit        *OnExitCallback
	OnRiskEvent   *OnRiskEventCallback
	OnRiskMetrics *OnRiskMetricsCallback
	OnError       *OnErrorCallback
}

// Dependencies are the collaborators a cycle talks to.
// Sectors and Recorder are optional.
type Dependencies struct {
	Account   provider.AccountProvider
	Positions provider.PositionProvider
	Technical provider.TechnicalProvider
	Sentiment provider.SentimentProvider
	Predictor provider.Predictor
	Regime    provider.RegimeProvider
	Options   provider.OptionsFinder
	Broker    provider.Broker
	Sectors   provider.SectorProvider
	Recorder  provider.SignalRecorder
}

// ProposalOutcome pairs a proposal with the broker's answer.
type ProposalOutcome struct {
	Proposal types.TradeProposal
	OrderID  optional.Option[string]
}

// Accepted reports whether the broker took the order.
func (o ProposalOutcome) Accepted() bool {
	return o.OrderID.IsSome()
}

// CycleSummary describes what one cycle did.
type CycleSummary struct {
	CycleID string
	Time    time.Time
	// Skipped is set when no account snapshot was available
	Skipped bool
	// EntriesBlocked is set when a gate or missing positions stopped new entries
	EntriesBlocked bool
	BlockReason    string
	Exits          []string
	Signals        []types.Signal
	OptionsSignals []types.OptionsSignal
	Proposals      []ProposalOutcome
	Events         []risk.Event
	Metrics        optional.Option[risk.Metrics]
	Duration       time.Duration
}

// Engine runs trading cycles.
type Engine interface {
	// RunCycle runs one complete cycle. Collaborator failures are reported
	// through callbacks and logs; the only error is context cancellation or
	// an aborting OnCycleStart callback.
	RunCycle(ctx context.Context) (CycleSummary, error)

	// Run loops cycles every scan interval while the market is open until ctx is done.
	Run(ctx context.Context) error

	// ResetDrawdownHalt releases a max drawdown halt against the current account.
	ResetDrawdownHalt(ctx context.Context) error

	// Halted reports whether a max drawdown halt is in force.
	Halted() bool

	// RiskState returns a copy of the risk state.
	RiskState() risk.State
}
