package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rxtech-lab/argo-signal-engine/internal/alert"
	"github.com/rxtech-lab/argo-signal-engine/internal/config"
	"github.com/rxtech-lab/argo-signal-engine/internal/engine"
	"github.com/rxtech-lab/argo-signal-engine/internal/engine/engine_v1"
	"github.com/rxtech-lab/argo-signal-engine/internal/engine/writers"
	"github.com/rxtech-lab/argo-signal-engine/internal/logger"
	"github.com/rxtech-lab/argo-signal-engine/internal/metrics"
	"github.com/rxtech-lab/argo-signal-engine/internal/options"
	"github.com/rxtech-lab/argo-signal-engine/internal/provider/fixture"
	"github.com/rxtech-lab/argo-signal-engine/internal/types"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// replayOptions are the inputs of a scenario replay.
type replayOptions struct {
	ScenarioPath     string
	ConfigPath       string
	ParquetDir       string
	MetricsAddr      string
	WebhookURL       string
	ScenarioUniverse bool
	// Progress receives the progress bar; nil disables it
	Progress io.Writer
}

// replayReport is what a replay produced.
type replayReport struct {
	RunID     string
	Scenario  string
	Summaries []engine.CycleSummary
	Orders    []fixture.Order
	Closed    []string
	Halted    bool
}

func replayAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLoggerWithLevel(cmd.String("log-level"))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	defer func() { _ = log.Sync() }()

	opts := replayOptions{
		ScenarioPath:     cmd.String("scenario"),
		ConfigPath:       cmd.String("config"),
		ParquetDir:       cmd.String("parquet-dir"),
		MetricsAddr:      cmd.String("metrics-addr"),
		WebhookURL:       cmd.String("webhook-url"),
		ScenarioUniverse: cmd.Bool("scenario-universe"),
		Progress:         os.Stderr,
	}

	report, err := runReplay(ctx, opts, log)
	if err != nil {
		fmt.Fprintln(cmd.Root().ErrWriter, ErrorStyle.Render("Replay failed: "+err.Error()))

		return err
	}

	renderReport(cmd.Root().Writer, report)

	if opts.ParquetDir != "" {
		fmt.Fprintln(cmd.Root().Writer, HelpStyle.Render("Parquet files written to "+opts.ParquetDir))
	}

	return nil
}

func loadReplayConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	return config.Load(path)
}

// runReplay drives one engine cycle per scenario cycle against a paper broker.
func runReplay(ctx context.Context, opts replayOptions, log *logger.Logger) (replayReport, error) {
	cfg, err := loadReplayConfig(opts.ConfigPath)
	if err != nil {
		return replayReport{}, err
	}

	scenario, err := fixture.LoadScenario(opts.ScenarioPath)
	if err != nil {
		return replayReport{}, err
	}

	if opts.ScenarioUniverse && len(scenario.Symbols) > 0 {
		cfg.Engine.Universe = scenarioSymbols(scenario)
	}

	f := fixture.New(scenario)
	broker := fixture.NewPaperBroker(f)

	recorder := writers.NewRecorder(opts.ParquetDir)
	if err := recorder.Initialize(); err != nil {
		return replayReport{}, err
	}

	defer func() { _ = recorder.Close() }()

	collector := metrics.NewCollector()

	if opts.MetricsAddr != "" {
		server := &http.Server{Addr: opts.MetricsAddr, Handler: collector.Handler(), ReadHeaderTimeout: 5 * time.Second}

		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Metrics server stopped", zap.Error(err))
			}
		}()

		defer func() { _ = server.Close() }()
	}

	eng, err := engine_v1.NewEngineV1(cfg, engine.Dependencies{
		Account:   f,
		Positions: f,
		Technical: f,
		Sentiment: f,
		Predictor: f,
		Regime:    f,
		Options:   options.NewChainPicker(cfg.Options, f, f.Now, log),
		Broker:    broker,
		Sectors:   f,
		Recorder:  recorder,
	}, log)
	if err != nil {
		return replayReport{}, err
	}

	runID := uuid.New().String()
	eng.SetClock(f.Now)
	eng.SetMetrics(collector)
	eng.SetRunID(runID)

	notifiers := []alert.Notifier{alert.NewLogNotifier(log.Named("alert"))}
	if opts.WebhookURL != "" {
		notifiers = append(notifiers, alert.NewWebhookNotifier(alert.WebhookConfig{
			URL:        opts.WebhookURL,
			Timeout:    10 * time.Second,
			RetryCount: 2,
		}))
	}

	eng.SetNotifiers(notifiers...)

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(f.Len(),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("Replaying "+scenario.Name),
			progressbar.OptionShowCount(),
		)
	}

	report := replayReport{RunID: runID, Scenario: scenario.Name}

	for f.Advance() {
		summary, err := eng.RunCycle(ctx)
		if err != nil {
			return report, err
		}

		report.Summaries = append(report.Summaries, summary)

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(opts.Progress)
	}

	if err := recorder.Flush(); err != nil {
		return report, err
	}

	report.Orders = broker.Orders()
	report.Closed = broker.Closed()
	report.Halted = eng.Halted()

	return report, nil
}

func scenarioSymbols(s fixture.Scenario) []string {
	symbols := make([]string, 0, len(s.Symbols))
	for symbol := range s.Symbols {
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	return symbols
}

func renderReport(w io.Writer, report replayReport) {
	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("Scenario %s (run %s)", report.Scenario, report.RunID)))

	cycles := table.NewWriter()
	cycles.SetOutputMirror(w)
	cycles.SetTitle("Cycles")
	cycles.SetStyle(table.StyleRounded)
	cycles.AppendHeader(table.Row{"Time", "Status", "Signals", "Proposals", "Exits", "Risk"})

	for _, s := range report.Summaries {
		cycles.AppendRow(table.Row{
			s.Time.Format("2006-01-02 15:04"),
			cycleStatus(s),
			topSignals(s),
			len(s.Proposals),
			strings.Join(s.Exits, ", "),
			riskStatus(s),
		})
	}

	cycles.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 16, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignRight},
	})
	cycles.Render()

	if len(report.Orders) > 0 {
		orders := table.NewWriter()
		orders.SetOutputMirror(w)
		orders.SetTitle("Orders")
		orders.SetStyle(table.StyleRounded)
		orders.AppendHeader(table.Row{"Filled", "Symbol", "Asset", "Side", "Qty", "Limit", "Notional", "Order"})

		for _, o := range report.Orders {
			p := o.Proposal
			orders.AppendRow(table.Row{
				o.FilledAt.Format("2006-01-02 15:04"),
				p.Symbol,
				string(p.AssetType),
				string(p.Side),
				p.Quantity,
				fmt.Sprintf("%.2f", p.LimitPrice),
				fmt.Sprintf("%.2f", p.Notional()),
				o.ID[:8],
			})
		}

		orders.Render()
	}

	if len(report.Closed) > 0 {
		fmt.Fprintln(w, "Closed: "+strings.Join(report.Closed, ", "))
	}

	if report.Halted {
		fmt.Fprintln(w, ErrorStyle.Render("Trading halted by max drawdown"))
	}
}

func cycleStatus(s engine.CycleSummary) string {
	switch {
	case s.Skipped:
		return WarningStyle.Render("skipped")
	case s.EntriesBlocked:
		return WarningStyle.Render("blocked: " + s.BlockReason)
	default:
		return "ok"
	}
}

func topSignals(s engine.CycleSummary) string {
	parts := make([]string, 0, 3)
	for i, signal := range s.Signals {
		if i == 3 {
			break
		}

		parts = append(parts, signal.Symbol+" "+FormatScore(signal.Score, signal.Direction == types.DirectionBullish))
	}

	return strings.Join(parts, ", ")
}

func riskStatus(s engine.CycleSummary) string {
	if s.Metrics.IsNone() {
		return "-"
	}

	return string(s.Metrics.Unwrap().Status)
}
