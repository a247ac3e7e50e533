// Package config holds the engine's validated, immutable configuration.
//
// A Config is built once at startup with Default, Parse or Load and then passed
// by value into every component. Nothing in the engine reads ambient constants.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-signal-engine/internal/version"
	"github.com/rxtech-lab/argo-signal-engine/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AllocationConfig splits the portfolio between stock and options capital.
type AllocationConfig struct {
	StockAllocation   float64 `yaml:"stock_allocation" json:"stock_allocation" jsonschema:"description=Fraction of portfolio for stock positions,default=0.5" validate:"gte=0,lte=1"`
	OptionsAllocation float64 `yaml:"options_allocation" json:"options_allocation" jsonschema:"description=Fraction of portfolio for options positions,default=0.5" validate:"gte=0,lte=1"`
	MinCashReserve    float64 `yaml:"min_cash_reserve" json:"min_cash_reserve" jsonschema:"description=Fraction of portfolio kept in cash,default=0.05" validate:"gte=0,lt=1"`
}

// RiskConfig holds the hard limits enforced by the risk manager.
type RiskConfig struct {
	MaxPositionSizeStock  float64 `yaml:"max_position_size_stock" json:"max_position_size_stock" jsonschema:"description=Max fraction of portfolio in one stock position,default=0.10" validate:"gt=0,lte=1"`
	MaxPositionSizeOption float64 `yaml:"max_position_size_option" json:"max_position_size_option" jsonschema:"description=Max fraction of portfolio in one option position,default=0.05" validate:"gt=0,lte=1"`
	MinPositionSize       float64 `yaml:"min_position_size" json:"min_position_size" jsonschema:"description=Minimum position value in dollars,default=1000" validate:"gte=0"`
	MaxTotalPositions     int     `yaml:"max_total_positions" json:"max_total_positions" jsonschema:"description=Max open positions,default=15" validate:"gt=0"`
	MaxStockPositions     int     `yaml:"max_stock_positions" json:"max_stock_positions" jsonschema:"description=Max open stock positions,default=8" validate:"gt=0"`
	MaxOptionsPositions   int     `yaml:"max_options_positions" json:"max_options_positions" jsonschema:"description=Max open option positions,default=12" validate:"gt=0"`
	MaxDrawdown           float64 `yaml:"max_drawdown" json:"max_drawdown" jsonschema:"description=Drawdown from peak that halts trading,default=0.40" validate:"gt=0,lt=1"`
	DrawdownWarningRatio  float64 `yaml:"drawdown_warning_ratio" json:"drawdown_warning_ratio" jsonschema:"description=Fraction of max drawdown that emits a warning,default=0.75" validate:"gt=0,lt=1"`
	DailyLossLimit        float64 `yaml:"daily_loss_limit" json:"daily_loss_limit" jsonschema:"description=Daily loss that trips the circuit breaker,default=0.03" validate:"gt=0,lt=1"`
	MaxSectorExposure     float64 `yaml:"max_sector_exposure" json:"max_sector_exposure" jsonschema:"description=Max fraction of portfolio in one sector,default=0.30" validate:"gt=0,lte=1"`
	StockStopLossPct      float64 `yaml:"stock_stop_loss_pct" json:"stock_stop_loss_pct" jsonschema:"description=Stop loss offset from entry,default=0.08" validate:"gt=0,lt=1"`
	StockProfitTargetMin  float64 `yaml:"stock_profit_target_min" json:"stock_profit_target_min" jsonschema:"description=Profit target offset from entry,default=0.15" validate:"gt=0"`
	StockProfitTargetMax  float64 `yaml:"stock_profit_target_max" json:"stock_profit_target_max" jsonschema:"description=Upper profit target offset,default=0.30" validate:"gtefield=StockProfitTargetMin"`
}

// OptionsConfig controls contract selection and options sizing.
type OptionsConfig struct {
	MinDTE              int     `yaml:"min_dte" json:"min_dte" jsonschema:"description=Minimum days to expiration,default=30" validate:"gt=0"`
	MaxDTE              int     `yaml:"max_dte" json:"max_dte" jsonschema:"description=Maximum days to expiration,default=45" validate:"gtefield=MinDTE"`
	TargetDTE           int     `yaml:"target_dte" json:"target_dte" jsonschema:"description=Preferred days to expiration,default=37" validate:"gtefield=MinDTE,ltefield=MaxDTE"`
	FallbackMinDTE      int     `yaml:"fallback_min_dte" json:"fallback_min_dte" jsonschema:"description=Shortest expiry considered outside the window,default=7" validate:"gte=0"`
	BudgetMultiplier    float64 `yaml:"budget_multiplier" json:"budget_multiplier" jsonschema:"description=Multiplier on the option position cap for the per-trade budget,default=2" validate:"gt=0"`
	SpreadMinRiskReward float64 `yaml:"spread_min_risk_reward" json:"spread_min_risk_reward" jsonschema:"description=Minimum reward to risk for spreads,default=2.0" validate:"gt=0"`
	SpreadWidthPct      float64 `yaml:"spread_width_pct" json:"spread_width_pct" jsonschema:"description=Short strike distance above the long strike,default=0.05" validate:"gt=0,lt=1"`
	MinOpenInterest     int     `yaml:"min_open_interest" json:"min_open_interest" jsonschema:"description=Contracts at or below this open interest are illiquid,default=10" validate:"gte=0"`
	MinPremium          float64 `yaml:"min_premium" json:"min_premium" jsonschema:"description=Contracts at or below this mid are skipped,default=0.10" validate:"gte=0"`
}

// ScoringConfig holds the signal scorer thresholds.
type ScoringConfig struct {
	MinEntryScore             int           `yaml:"min_entry_score" json:"min_entry_score" jsonschema:"description=Signals below this score are discarded,default=60" validate:"gte=0,lte=100"`
	MediumConfidenceThreshold int           `yaml:"medium_confidence_threshold" json:"medium_confidence_threshold" jsonschema:"description=Score for MEDIUM confidence,default=70" validate:"gte=0,lte=100"`
	HighConfidenceThreshold   int           `yaml:"high_confidence_threshold" json:"high_confidence_threshold" jsonschema:"description=Score for HIGH confidence,default=85" validate:"gtfield=MediumConfidenceThreshold,lte=100"`
	MinModelAccuracy          float64       `yaml:"min_model_accuracy" json:"min_model_accuracy" jsonschema:"description=Model accuracy floor below which predictions are ignored,default=0.48" validate:"gte=0,lte=1"`
	VolumeSurgeRatio          float64       `yaml:"volume_surge_ratio" json:"volume_surge_ratio" jsonschema:"description=Volume over its 20 bar average that counts as a surge,default=1.3" validate:"gt=0"`
	RegimeCacheTTL            time.Duration `yaml:"regime_cache_ttl" json:"regime_cache_ttl" jsonschema:"description=How long a market regime reading is reused,default=5m" validate:"gte=0"`
	ScanWorkers               int           `yaml:"scan_workers" json:"scan_workers" jsonschema:"description=Symbols scored concurrently,default=1" validate:"gte=1,lte=64"`
}

// EngineConfig drives the orchestration loop.
type EngineConfig struct {
	StrategyName        string        `yaml:"strategy_name" json:"strategy_name" jsonschema:"description=Name recorded on signals,default=momentum" validate:"required"`
	Universe            []string      `yaml:"universe" json:"universe" jsonschema:"description=Symbols scanned every cycle" validate:"required,min=1,unique,dive,required"`
	ScanInterval        time.Duration `yaml:"scan_interval" json:"scan_interval" jsonschema:"description=Time between cycles,default=15m" validate:"gt=0"`
	MarketTimezone      string        `yaml:"market_timezone" json:"market_timezone" jsonschema:"description=IANA zone for trading days and hours,default=America/New_York" validate:"required,timezone"`
	MarketOpen          string        `yaml:"market_open" json:"market_open" jsonschema:"description=Session open HH:MM,default=09:30" validate:"required,datetime=15:04"`
	MarketClose         string        `yaml:"market_close" json:"market_close" jsonschema:"description=Session close HH:MM,default=16:00" validate:"required,datetime=15:04"`
	MaxStockCandidates  int           `yaml:"max_stock_candidates" json:"max_stock_candidates" jsonschema:"description=Top bullish signals considered for stock entries,default=5" validate:"gte=0"`
	MaxOptionCandidates int           `yaml:"max_option_candidates" json:"max_option_candidates" jsonschema:"description=Top signals passed to the options selector,default=8" validate:"gte=0"`
}

// Config is the complete engine configuration.
type Config struct {
	// Version is the engine version the file was written for
	Version    string           `yaml:"version" json:"version" jsonschema:"description=Engine version this config targets"`
	Allocation AllocationConfig `yaml:"allocation" json:"allocation"`
	Risk       RiskConfig       `yaml:"risk" json:"risk"`
	Options    OptionsConfig    `yaml:"options" json:"options"`
	Scoring    ScoringConfig    `yaml:"scoring" json:"scoring"`
	Engine     EngineConfig     `yaml:"engine" json:"engine"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Version: version.GetVersion(),
		Allocation: AllocationConfig{
			StockAllocation:   0.50,
			OptionsAllocation: 0.50,
			MinCashReserve:    0.05,
		},
		Risk: RiskConfig{
			MaxPositionSizeStock:  0.10,
			MaxPositionSizeOption: 0.05,
			MinPositionSize:       1000,
			MaxTotalPositions:     15,
			MaxStockPositions:     8,
			MaxOptionsPositions:   12,
			MaxDrawdown:           0.40,
			DrawdownWarningRatio:  0.75,
			DailyLossLimit:        0.03,
			MaxSectorExposure:     0.30,
			StockStopLossPct:      0.08,
			StockProfitTargetMin:  0.15,
			StockProfitTargetMax:  0.30,
		},
		Options: OptionsConfig{
			MinDTE:              30,
			MaxDTE:              45,
			TargetDTE:           37,
			FallbackMinDTE:      7,
			BudgetMultiplier:    2,
			SpreadMinRiskReward: 2.0,
			SpreadWidthPct:      0.05,
			MinOpenInterest:     10,
			MinPremium:          0.10,
		},
		Scoring: ScoringConfig{
			MinEntryScore:             60,
			MediumConfidenceThreshold: 70,
			HighConfidenceThreshold:   85,
			MinModelAccuracy:          0.48,
			VolumeSurgeRatio:          1.3,
			RegimeCacheTTL:            5 * time.Minute,
			ScanWorkers:               1,
		},
		Engine: EngineConfig{
			StrategyName: "momentum",
			Universe: []string{
				"AAPL", "MSFT", "NVDA", "AMZN", "GOOGL", "META", "TSLA", "AMD",
				"SPY", "QQQ", "IWM", "JPM", "XOM", "UNH", "HD",
			},
			ScanInterval:        15 * time.Minute,
			MarketTimezone:      "America/New_York",
			MarketOpen:          "09:30",
			MarketClose:         "16:00",
			MaxStockCandidates:  5,
			MaxOptionCandidates: 8,
		},
	}
}

// Parse decodes YAML over the defaults and validates the result.
// Keys missing from data keep their default value.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	// An explicit version in the file replaces the engine default
	cfg.Version = ""

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load reads and parses the config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return Parse(data)
}

// Validate checks field ranges, cross-field relations and version compatibility.
func (c Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if sum := c.Allocation.StockAllocation + c.Allocation.OptionsAllocation; sum > 1.0+1e-9 {
		return errors.Newf(errors.ErrCodeInvalidConfiguration,
			"stock and options allocation sum to %.2f, must not exceed 1", sum)
	}

	if c.Scoring.MediumConfidenceThreshold < c.Scoring.MinEntryScore {
		return errors.Newf(errors.ErrCodeInvalidConfiguration,
			"medium confidence threshold %d is below min entry score %d", c.Scoring.MediumConfidenceThreshold, c.Scoring.MinEntryScore)
	}

	if c.Risk.MaxStockPositions > c.Risk.MaxTotalPositions || c.Risk.MaxOptionsPositions > c.Risk.MaxTotalPositions {
		return errors.Newf(errors.ErrCodeInvalidConfiguration,
			"per-asset position maxima (%d stocks, %d options) exceed total maximum %d",
			c.Risk.MaxStockPositions, c.Risk.MaxOptionsPositions, c.Risk.MaxTotalPositions)
	}

	openAt, _ := time.Parse("15:04", c.Engine.MarketOpen)
	closeAt, _ := time.Parse("15:04", c.Engine.MarketClose)

	if !closeAt.After(openAt) {
		return errors.Newf(errors.ErrCodeInvalidConfiguration,
			"market close %s must be after market open %s", c.Engine.MarketClose, c.Engine.MarketOpen)
	}

	if err := version.CheckConfigCompatibility(version.GetVersion(), c.Version); err != nil {
		return errors.Wrap(errors.ErrCodeIncompatibleVersion, "config version is not supported", err)
	}

	return nil
}

// Location resolves the market time zone. Validate has already proven it loads.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Engine.MarketTimezone)
	if err != nil {
		return time.UTC
	}

	return loc
}

// PerTradeOptionsBudget is the cap handed to contract selection for one trade.
func (c Config) PerTradeOptionsBudget(optionsBudget float64) float64 {
	return optionsBudget * c.Risk.MaxPositionSizeOption * c.Options.BudgetMultiplier
}

// String renders the key limits for startup logs.
func (c Config) String() string {
	return fmt.Sprintf("daily_loss_limit=%.2f%% max_drawdown=%.2f%% stock_cap=%.2f%% option_cap=%.2f%% min_entry_score=%d universe=%d",
		c.Risk.DailyLossLimit*100, c.Risk.MaxDrawdown*100,
		c.Risk.MaxPositionSizeStock*100, c.Risk.MaxPositionSizeOption*100,
		c.Scoring.MinEntryScore, len(c.Engine.Universe))
}
