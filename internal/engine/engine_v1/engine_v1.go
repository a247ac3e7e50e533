package engine_v1

import (
	"context"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal-engine/internal/alert"
	"github.com/rxtech-lab/argo-signal-engine/internal/config"
	"github.com/rxtech-lab/argo-signal-engine/internal/engine"
	"github.com/rxtech-lab/argo-signal-engine/internal/logger"
	"github.com/rxtech-lab/argo-signal-engine/internal/metrics"
	"github.com/rxtech-lab/argo-signal-engine/internal/options"
	"github.com/rxtech-lab/argo-signal-engine/internal/risk"
	"github.com/rxtech-lab/argo-signal-engine/internal/scoring"
	"github.com/rxtech-lab/argo-signal-engine/internal/types"
	"github.com/rxtech-lab/argo-signal-engine/internal/utils"
	"github.com/rxtech-lab/argo-signal-engine/pkg/errors"
	"go.uber.org/zap"
)

// EngineV1 is the single goroutine orchestrator: risk gates, exit monitoring,
// universe scan, stock entries, then options entries.
type EngineV1 struct {
	cfg        config.Config
	deps       engine.Dependencies
	risk       *risk.Manager
	regime     *scoring.RegimeCache
	scorer     *scoring.Scorer
	selector   *options.Selector
	dispatcher *alert.Dispatcher
	metrics    *metrics.Collector
	callbacks  engine.Callbacks
	clock      func() time.Time
	sleep      func(ctx context.Context, d time.Duration) error
	log        *logger.Logger
	runID      string

	// mu serializes cycles with manual risk resets
	mu sync.Mutex
}

var _ engine.Engine = (*EngineV1)(nil)

// NewEngineV1 wires an engine. Every dependency except Sectors and Recorder is required.
func NewEngineV1(cfg config.Config, deps engine.Dependencies, log *logger.Logger) (*EngineV1, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := checkDependencies(deps); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	e := &EngineV1{
		cfg:        cfg,
		deps:       deps,
		risk:       nil,
		regime:     nil,
		scorer:     nil,
		selector:   nil,
		dispatcher: alert.NewDispatcher(log.Named("risk")),
		metrics:    nil,
		callbacks:  engine.Callbacks{},
		clock:      time.Now,
		sleep:      sleepContext,
		log:        log,
		runID:      uuid.NewString(),
		mu:         sync.Mutex{},
	}
	e.SetClock(time.Now)

	return e, nil
}

func checkDependencies(deps engine.Dependencies) error {
	required := []struct {
		name    string
		missing bool
	}{
		{"account provider", deps.Account == nil},
		{"position provider", deps.Positions == nil},
		{"technical provider", deps.Technical == nil},
		{"sentiment provider", deps.Sentiment == nil},
		{"predictor", deps.Predictor == nil},
		{"regime provider", deps.Regime == nil},
		{"options finder", deps.Options == nil},
		{"broker", deps.Broker == nil},
	}

	for _, r := range required {
		if r.missing {
			return errors.Newf(errors.ErrCodeMissingParameter, "%s is required", r.name)
		}
	}

	return nil
}

// SetClock replaces the time source and rebuilds the components that read it.
// Risk state is kept.
func (e *EngineV1) SetClock(clock func() time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clock = clock

	state := risk.NewState()
	if e.risk != nil {
		state = e.risk.State()
	}

	e.risk = risk.NewManagerWithState(e.cfg, risk.Clock(clock), state)
	e.regime = scoring.NewRegimeCache(e.deps.Regime, e.cfg.Scoring.RegimeCacheTTL, clock, e.log.Named("regime"))
	e.scorer = scoring.NewScorer(e.cfg, e.deps.Technical, e.deps.Sentiment, e.deps.Predictor, e.regime, clock, e.log.Named("scorer"))
	e.selector = options.NewSelector(e.cfg, e.deps.Options, e.log.Named("options"))
}

// SetRiskState restores risk state saved by an earlier process.
func (e *EngineV1) SetRiskState(state risk.State) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.risk = risk.NewManagerWithState(e.cfg, risk.Clock(e.clock), state)
}

// SetCallbacks sets the lifecycle callbacks.
func (e *EngineV1) SetCallbacks(callbacks engine.Callbacks) {
	e.callbacks = callbacks
}

// SetNotifiers routes alerting risk events to the notifiers.
func (e *EngineV1) SetNotifiers(notifiers ...alert.Notifier) {
	e.dispatcher = alert.NewDispatcher(e.log.Named("risk"), notifiers...)
}

// SetMetrics exports engine metrics to the collector.
func (e *EngineV1) SetMetrics(collector *metrics.Collector) {
	e.metrics = collector
}

// SetRunID tags recorded rows. A random id is used by default.
func (e *EngineV1) SetRunID(runID string) {
	e.runID = runID
}

// RunID is the id rows are recorded under.
func (e *EngineV1) RunID() string {
	return e.runID
}

// Halted implements engine.Engine.
func (e *EngineV1) Halted() bool {
	return e.RiskState().MaxDrawdownTriggered
}

// RiskState implements engine.Engine.
func (e *EngineV1) RiskState() risk.State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.risk.State()
}

// ResetDrawdownHalt implements engine.Engine.
func (e *EngineV1) ResetDrawdownHalt(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	account, err := e.deps.Account.GetAccount(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAccountUnavailable, "failed to get account", err)
	}

	if account.IsNone() {
		return errors.New(errors.ErrCodeAccountUnavailable, "account is unavailable")
	}

	event := e.risk.ResetDrawdownHalt(account.Unwrap().PortfolioValue)
	e.dispatch(ctx, []risk.Event{event})

	return nil
}

// RunCycle implements engine.Engine.
func (e *EngineV1) RunCycle(ctx context.Context) (engine.CycleSummary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := e.clock()
	summary := engine.CycleSummary{
		CycleID:        uuid.NewString(),
		Time:           start,
		Skipped:        false,
		EntriesBlocked: false,
		BlockReason:    "",
		Exits:          nil,
		Signals:        nil,
		OptionsSignals: nil,
		Proposals:      nil,
		Events:         nil,
		Metrics:        optional.None[risk.Metrics](),
		Duration:       0,
	}

	if e.callbacks.OnCycleStart != nil {
		if err := (*e.callbacks.OnCycleStart)(summary.CycleID, start); err != nil {
			return summary, err
		}
	}

	err := e.cycle(ctx, &summary)

	e.dispatch(ctx, summary.Events)

	summary.Duration = e.clock().Sub(start)
	if e.metrics != nil {
		e.metrics.ObserveCycle(summary.Duration)
	}

	if e.callbacks.OnCycleEnd != nil {
		(*e.callbacks.OnCycleEnd)(summary)
	}

	return summary, err
}

func (e *EngineV1) cycle(ctx context.Context, summary *engine.CycleSummary) error {
	log := e.log.With(zap.String("cycle", summary.CycleID))
	log.Info("Trading cycle", zap.Time("time", summary.Time))

	accountOpt, err := e.deps.Account.GetAccount(ctx)
	if err != nil {
		e.reportError(errors.Wrap(errors.ErrCodeAccountUnavailable, "failed to get account", err))
	}

	if err != nil || accountOpt.IsNone() {
		log.Warn("Account unavailable, skipping cycle")

		summary.Skipped = true

		return ctx.Err()
	}

	account := accountOpt.Unwrap()
	pv := account.PortfolioValue

	_, resetEvents := e.risk.ResetDailyLimits(pv)
	summary.Events = append(summary.Events, resetEvents...)
	e.risk.UpdatePeakEquity(pv)

	if gate := e.checkGates(pv, summary); !gate.Allowed {
		e.block(summary, string(gate.Reason))
		log.Warn("Entries blocked", zap.String("reason", gate.Message))
	}

	positions, err := e.deps.Positions.GetPositions(ctx)
	if err != nil {
		e.reportError(errors.Wrap(errors.ErrCodeDataUnavailable, "failed to get positions", err))
		e.block(summary, "positions unavailable")
		positions = nil
	}

	positions = e.monitorPositions(ctx, positions, summary)

	if !summary.EntriesBlocked {
		if err := e.enter(ctx, account, positions, summary); err != nil {
			return err
		}
	}

	riskMetrics := e.risk.Metrics(account)
	summary.Metrics = optional.Some(riskMetrics)

	log.Info("Risk",
		zap.String("status", string(riskMetrics.Status)),
		zap.Float64("drawdown", riskMetrics.CurrentDrawdown),
		zap.Float64("daily_pnl", riskMetrics.DailyPnL),
		zap.Float64("daily_pnl_pct", riskMetrics.DailyPnLPct),
	)

	if e.metrics != nil {
		e.metrics.ObserveRisk(riskMetrics)
	}

	if e.callbacks.OnRiskMetrics != nil {
		(*e.callbacks.OnRiskMetrics)(riskMetrics)
	}

	return ctx.Err()
}

// checkGates runs the daily loss gate then the drawdown gate.
func (e *EngineV1) checkGates(pv float64, summary *engine.CycleSummary) risk.Result {
	daily := e.risk.CheckDailyLossLimit(pv)
	summary.Events = append(summary.Events, daily.Events...)

	if !daily.Allowed {
		e.recordRejection(daily.Reason)

		return daily
	}

	drawdown := e.risk.CheckMaxDrawdown(pv)
	summary.Events = append(summary.Events, drawdown.Events...)

	if !drawdown.Allowed {
		e.recordRejection(drawdown.Reason)
	}

	return drawdown
}

func (e *EngineV1) block(summary *engine.CycleSummary, reason string) {
	if summary.EntriesBlocked {
		return
	}

	summary.EntriesBlocked = true
	summary.BlockReason = reason
}

// monitorPositions closes positions past their stop or target and returns the survivors.
func (e *EngineV1) monitorPositions(ctx context.Context, positions []types.Position, summary *engine.CycleSummary) []types.Position {
	if len(positions) == 0 {
		e.log.Info("No open positions")

		return positions
	}

	e.log.Info("Monitoring positions", zap.Int("count", len(positions)))

	var closed []string

	for _, p := range positions {
		if slices.Contains(closed, p.Symbol) {
			continue
		}

		stop, target := e.risk.ExitLevels(p.AvgEntryPrice)
		decision := e.risk.ShouldExitPosition(p.Symbol, p.AvgEntryPrice, p.CurrentPrice, stop, target)
		summary.Events = append(summary.Events, decision.Events...)

		if !decision.Exit {
			e.log.Debug("Holding", zap.String("symbol", p.Symbol),
				zap.Float64("price", p.CurrentPrice), zap.Float64("pnl_pct", p.UnrealizedPLPC))

			continue
		}

		e.log.Warn("Exit", zap.String("symbol", p.Symbol), zap.String("reason", decision.Message))

		ok, err := e.deps.Broker.ClosePosition(ctx, p.Symbol)
		if err != nil {
			e.reportError(errors.Wrapf(errors.ErrCodeClosePositionFailed, err, "failed to close %s", p.Symbol))

			continue
		}

		if !ok {
			e.log.Error("Failed closing position", zap.String("symbol", p.Symbol))

			continue
		}

		closed = append(closed, p.Symbol)
		summary.Exits = append(summary.Exits, p.Symbol)

		if e.metrics != nil {
			e.metrics.RecordExit(decision.Reason)
		}

		if e.callbacks.OnExit != nil {
			(*e.callbacks.OnExit)(p, decision)
		}
	}

	return slices.DeleteFunc(slices.Clone(positions), func(p types.Position) bool {
		return slices.Contains(closed, p.Symbol)
	})
}

// enter scans the universe and executes stock then options entries within the allocation rooms.
func (e *EngineV1) enter(ctx context.Context, account types.AccountSnapshot, positions []types.Position, summary *engine.CycleSummary) error {
	pv := account.PortfolioValue
	stockBudget := pv * e.cfg.Allocation.StockAllocation
	optionsBudget := pv * e.cfg.Allocation.OptionsAllocation

	stockRoom := math.Max(0, stockBudget-account.LongMarketValue)
	optionsRoom := math.Max(0, optionsBudget-types.InvestedIn(positions, types.AssetTypeOption))

	e.log.Info("Allocation",
		zap.Float64("stock_invested", account.LongMarketValue),
		zap.Float64("stock_budget", stockBudget),
		zap.Float64("stock_room", stockRoom),
		zap.Float64("options_room", optionsRoom),
	)

	signals, err := e.scorer.Scan(ctx, e.cfg.Engine.Universe, e.callbacks.OnScored)
	if err != nil {
		return err
	}

	summary.Signals = signals
	e.recordSignals(ctx, signals)

	if len(signals) == 0 {
		e.log.Info("No signals this scan")

		return nil
	}

	bullish := make([]types.Signal, 0, len(signals))
	for _, s := range signals {
		if s.Direction == types.DirectionBullish {
			bullish = append(bullish, s)
		}
	}

	e.log.Info("Signals", zap.Int("bullish", len(bullish)), zap.Int("bearish", len(signals)-len(bullish)))

	book := newBook(positions)
	minSize := e.cfg.Risk.MinPositionSize

	if stockRoom > minSize {
		e.executeStocks(ctx, head(bullish, e.cfg.Engine.MaxStockCandidates), stockRoom, account, book, summary)
	}

	if optionsRoom > minSize {
		optionSignals, err := e.selector.Select(ctx, head(signals, e.cfg.Engine.MaxOptionCandidates), optionsRoom)
		if err != nil {
			return err
		}

		summary.OptionsSignals = optionSignals

		if len(optionSignals) == 0 {
			e.log.Info("Options selector produced no actionable signals")
		}

		e.executeOptions(ctx, optionSignals, optionsRoom, account, book, summary)
	}

	return nil
}

func (e *EngineV1) executeStocks(
	ctx context.Context,
	signals []types.Signal,
	room float64,
	account types.AccountSnapshot,
	book *book,
	summary *engine.CycleSummary,
) {
	for _, signal := range signals {
		if book.holds(signal.Symbol) {
			continue
		}

		if gate := e.risk.CheckPositionCount(book.counts); !gate.Allowed {
			summary.Events = append(summary.Events, gate.Events...)
			e.recordRejection(gate.Reason)
			e.log.Info("Position limit", zap.String("reason", gate.Message))

			return
		}

		size := utils.PositionSize(room, account.PortfolioValue, e.cfg.Risk.MaxPositionSizeStock)
		price := utils.RoundCents(signal.CurrentPrice)

		if price <= 0 {
			continue
		}

		qty := utils.MaxQuantity(size, price, 0)
		if qty <= 0 {
			continue
		}

		sector := e.sector(ctx, signal.Symbol)
		result := e.risk.ValidateTrade(risk.TradeRequest{
			Symbol:         signal.Symbol,
			Side:           types.SideBuy,
			Quantity:       qty,
			Price:          price,
			AssetType:      types.AssetTypeStock,
			Account:        account,
			Counts:         book.counts,
			Sector:         sector,
			SectorExposure: book.exposure,
		})
		summary.Events = append(summary.Events, result.Events...)

		if !result.Allowed {
			e.recordRejection(result.Reason)
			e.log.Info("Rejected", zap.String("symbol", signal.Symbol), zap.String("reason", result.Message))

			continue
		}

		proposal := types.NewStockProposal(signal, qty, e.clock())
		proposal.LimitPrice = price

		if !e.place(ctx, proposal, summary) {
			continue
		}

		room -= qty * price
		book.add(signal.Symbol, types.AssetTypeStock, sector, qty*price)

		e.log.Info("Stock buy",
			zap.String("symbol", signal.Symbol),
			zap.Float64("qty", qty),
			zap.Float64("price", price),
			zap.Int("score", signal.Score),
			zap.String("direction", string(signal.Direction)),
		)
	}
}

func (e *EngineV1) executeOptions(
	ctx context.Context,
	signals []types.OptionsSignal,
	room float64,
	account types.AccountSnapshot,
	book *book,
	summary *engine.CycleSummary,
) {
	for _, opt := range signals {
		total := opt.Pick.TotalCost
		if total <= 0 || total > room {
			continue
		}

		if book.holds(opt.Symbol) {
			continue
		}

		if gate := e.risk.CheckPositionCount(book.counts); !gate.Allowed {
			summary.Events = append(summary.Events, gate.Events...)
			e.recordRejection(gate.Reason)

			return
		}

		sector := e.sector(ctx, opt.Symbol)
		result := e.risk.ValidateTrade(risk.TradeRequest{
			Symbol:         opt.Symbol,
			Side:           types.SideBuy,
			Quantity:       float64(opt.Pick.SuggestedQty),
			Price:          opt.Pick.CostPerContract,
			AssetType:      types.AssetTypeOption,
			Account:        account,
			Counts:         book.counts,
			Sector:         sector,
			SectorExposure: book.exposure,
		})
		summary.Events = append(summary.Events, result.Events...)

		if !result.Allowed {
			e.recordRejection(result.Reason)
			e.log.Info("Options rejected", zap.String("symbol", opt.Symbol), zap.String("reason", result.Message))

			continue
		}

		if !e.place(ctx, types.NewOptionsProposal(opt, e.clock()), summary) {
			continue
		}

		room -= total
		book.add(opt.Symbol, types.AssetTypeOption, sector, total)

		e.log.Info("Options buy",
			zap.String("symbol", opt.Symbol),
			zap.String("kind", string(opt.Kind)),
			zap.Float64("strike", opt.Pick.Strike),
			zap.Time("expiration", opt.Pick.Expiration),
			zap.Int("contracts", opt.Pick.SuggestedQty),
			zap.Int("score", opt.Score),
		)
	}
}

// place hands a proposal to the broker, records it and reports whether it was accepted.
func (e *EngineV1) place(ctx context.Context, proposal types.TradeProposal, summary *engine.CycleSummary) bool {
	orderID, err := e.deps.Broker.PlaceLimitOrder(ctx, proposal)
	if err != nil {
		e.reportError(errors.Wrapf(errors.ErrCodeOrderFailed, err, "order for %s failed", proposal.Symbol))

		orderID = optional.None[string]()
	}

	if orderID.IsNone() {
		e.log.Error("Order failed", zap.String("symbol", proposal.Symbol))
	}

	summary.Proposals = append(summary.Proposals, engine.ProposalOutcome{Proposal: proposal, OrderID: orderID})

	if e.metrics != nil {
		e.metrics.RecordProposal(string(proposal.AssetType), string(proposal.Side), orderID.IsSome())
	}

	if e.deps.Recorder != nil {
		if err := e.deps.Recorder.RecordProposal(ctx, e.runID, proposal, orderID); err != nil {
			e.reportError(errors.Wrap(errors.ErrCodeRecorderFailed, "failed to record proposal", err))
		}
	}

	if e.callbacks.OnProposal != nil {
		(*e.callbacks.OnProposal)(proposal, orderID)
	}

	return orderID.IsSome()
}

func (e *EngineV1) recordSignals(ctx context.Context, signals []types.Signal) {
	for _, s := range signals {
		if e.metrics != nil {
			e.metrics.RecordSignal(string(s.Direction), string(s.Confidence))
		}

		if e.deps.Recorder != nil {
			if err := e.deps.Recorder.RecordSignal(ctx, e.runID, s); err != nil {
				e.reportError(errors.Wrap(errors.ErrCodeRecorderFailed, "failed to record signal", err))
			}
		}

		if e.callbacks.OnSignal != nil {
			(*e.callbacks.OnSignal)(s)
		}
	}
}

func (e *EngineV1) sector(ctx context.Context, symbol string) optional.Option[string] {
	if e.deps.Sectors == nil {
		return optional.None[string]()
	}

	return e.deps.Sectors.GetSector(ctx, symbol)
}

func (e *EngineV1) dispatch(ctx context.Context, events []risk.Event) {
	if len(events) == 0 {
		return
	}

	if e.callbacks.OnRiskEvent != nil {
		for _, event := range events {
			(*e.callbacks.OnRiskEvent)(event)
		}
	}

	if err := e.dispatcher.Dispatch(ctx, events...); err != nil {
		e.reportError(err)
	}
}

func (e *EngineV1) recordRejection(reason risk.RejectionReason) {
	if e.metrics != nil {
		e.metrics.RecordRejection(reason)
	}
}

func (e *EngineV1) reportError(err error) {
	e.log.Error("Cycle error", zap.Error(err))

	if e.metrics != nil {
		e.metrics.RecordError(err)
	}

	if e.callbacks.OnError != nil {
		(*e.callbacks.OnError)(err)
	}
}

func head[T any](items []T, n int) []T {
	if n < len(items) {
		return items[:n]
	}

	return items
}
