// Package metrics exports engine activity as Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rxtech-lab/argo-signal-engine/internal/risk"
	"github.com/rxtech-lab/argo-signal-engine/pkg/errors"
)

const namespace = "signal_engine"

var statuses = []risk.Status{risk.StatusLow, risk.StatusMedium, risk.StatusHigh, risk.StatusCritical}

// Collector owns a private registry so several engines can run in one process.
type Collector struct {
	registry *prometheus.Registry

	rejections     *prometheus.CounterVec
	signals        *prometheus.CounterVec
	proposals      *prometheus.CounterVec
	exits          *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	cycles         prometheus.Counter
	cycleDuration  prometheus.Histogram
	portfolioValue prometheus.Gauge
	drawdown       prometheus.Gauge
	dailyPnLPct    prometheus.Gauge
	halted         *prometheus.GaugeVec
	status         *prometheus.GaugeVec
}

// NewCollector creates and registers every collector.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "risk_rejections_total",
				Help:      "Risk gate rejections by reason",
			},
			[]string{"reason"},
		),
		signals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "signals_total",
				Help:      "Qualifying signals produced by scans",
			},
			[]string{"direction", "confidence"},
		),
		proposals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "proposals_total",
				Help:      "Trade proposals sent to the broker",
			},
			[]string{"asset_type", "side", "accepted"},
		),
		exits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "exits_total",
				Help:      "Positions closed by exit monitoring",
			},
			[]string{"reason"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Errors by category",
			},
			[]string{"category"},
		),
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Completed engine cycles",
		}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Wall time of one engine cycle",
			Buckets:   prometheus.DefBuckets,
		}),
		portfolioValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "portfolio_value",
			Help:      "Portfolio value at the last cycle",
		}),
		drawdown: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "drawdown_ratio",
			Help:      "Current drawdown from peak equity",
		}),
		dailyPnLPct: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "daily_pnl_ratio",
			Help:      "P&L since the daily start equity",
		}),
		halted: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "halted",
				Help:      "1 while a latch blocks new entries",
			},
			[]string{"latch"},
		),
		status: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "risk_status",
				Help:      "1 for the current risk status, 0 otherwise",
			},
			[]string{"status"},
		),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.rejections,
		c.signals,
		c.proposals,
		c.exits,
		c.errorsTotal,
		c.cycles,
		c.cycleDuration,
		c.portfolioValue,
		c.drawdown,
		c.dailyPnLPct,
		c.halted,
		c.status,
	)

	return c
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordRejection counts a failed risk check.
func (c *Collector) RecordRejection(reason risk.RejectionReason) {
	c.rejections.WithLabelValues(string(reason)).Inc()
}

// RecordSignal counts a qualifying signal.
func (c *Collector) RecordSignal(direction, confidence string) {
	c.signals.WithLabelValues(direction, confidence).Inc()
}

// RecordProposal counts a proposal and whether the broker accepted it.
func (c *Collector) RecordProposal(assetType, side string, accepted bool) {
	label := "false"
	if accepted {
		label = "true"
	}

	c.proposals.WithLabelValues(assetType, side, label).Inc()
}

// RecordExit counts a position closed by exit monitoring.
func (c *Collector) RecordExit(reason risk.ExitReason) {
	c.exits.WithLabelValues(string(reason)).Inc()
}

// RecordError counts an error under its code category.
func (c *Collector) RecordError(err error) {
	if err == nil {
		return
	}

	c.errorsTotal.WithLabelValues(string(errors.GetCode(err).Category())).Inc()
}

// ObserveCycle records one completed cycle.
func (c *Collector) ObserveCycle(elapsed time.Duration) {
	c.cycles.Inc()
	c.cycleDuration.Observe(elapsed.Seconds())
}

// ObserveRisk publishes the latest risk metrics.
func (c *Collector) ObserveRisk(m risk.Metrics) {
	c.portfolioValue.Set(m.PortfolioValue)
	c.drawdown.Set(m.CurrentDrawdown)
	c.dailyPnLPct.Set(m.DailyPnLPct)
	c.halted.WithLabelValues("circuit_breaker").Set(boolGauge(m.CircuitBreakerTriggered))
	c.halted.WithLabelValues("max_drawdown").Set(boolGauge(m.MaxDrawdownTriggered))

	for _, s := range statuses {
		c.status.WithLabelValues(string(s)).Set(boolGauge(m.Status == s))
	}
}

func boolGauge(v bool) float64 {
	if v {
		return 1
	}

	return 0
}
