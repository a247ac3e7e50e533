// Package fixture replays a YAML market scenario through every provider
// interface, with a paper broker that fills orders into the scenario's book.
package fixture

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal-engine/internal/types"
	"github.com/rxtech-lab/argo-signal-engine/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Scenario is the on-disk replay description.
type Scenario struct {
	Name string `yaml:"name" validate:"required"`
	// Regime applies to every cycle that does not carry its own
	Regime  *types.RegimeReading  `yaml:"regime"`
	Cycles  []Cycle               `yaml:"cycles" validate:"required,min=1,dive"`
	Symbols map[string]SymbolData `yaml:"symbols" validate:"dive"`
}

// Cycle is the account state observed at one engine cycle.
type Cycle struct {
	Time time.Time `yaml:"time" validate:"required"`
	// Account is nil to simulate an unavailable account
	Account *types.AccountSnapshot `yaml:"account"`
	// Positions replaces the book when set; otherwise the previous book carries over
	Positions []types.Position `yaml:"positions" validate:"dive"`
	// Marks reprices carried positions by symbol
	Marks  map[string]float64   `yaml:"marks"`
	Regime *types.RegimeReading `yaml:"regime"`
}

// SymbolData holds every collaborator answer for one symbol.
type SymbolData struct {
	Sector     string                  `yaml:"sector"`
	Technical  *Technical              `yaml:"technical"`
	Bars       []types.Bar             `yaml:"bars"`
	Sentiment  *types.SentimentSummary `yaml:"sentiment"`
	Prediction *types.Prediction       `yaml:"prediction"`
	Options    *OptionsData            `yaml:"options"`
	// Error makes the technical lookup fail with this message
	Error string `yaml:"error"`
}

// Technical is the YAML form of types.TechnicalSnapshot. Omitted indicators are absent.
type Technical struct {
	Price       float64  `yaml:"price" validate:"gt=0"`
	Volume      float64  `yaml:"volume"`
	SMA50       *float64 `yaml:"sma_50"`
	SMA200      *float64 `yaml:"sma_200"`
	RSI         *float64 `yaml:"rsi"`
	MACD        *float64 `yaml:"macd"`
	MACDSignal  *float64 `yaml:"macd_signal"`
	VolumeSMA20 *float64 `yaml:"volume_sma_20"`
	Return20d   *float64 `yaml:"return_20d"`
}

// OptionsData lists the listed expirations and the chains behind them.
type OptionsData struct {
	Expirations []time.Time          `yaml:"expirations"`
	Chains      []types.OptionsChain `yaml:"chains"`
}

// Snapshot converts the YAML form.
func (t Technical) Snapshot() types.TechnicalSnapshot {
	return types.TechnicalSnapshot{
		Price:       t.Price,
		Volume:      t.Volume,
		SMA50:       fromPtr(t.SMA50),
		SMA200:      fromPtr(t.SMA200),
		RSI:         fromPtr(t.RSI),
		MACD:        fromPtr(t.MACD),
		MACDSignal:  fromPtr(t.MACDSignal),
		VolumeSMA20: fromPtr(t.VolumeSMA20),
		Return20d:   fromPtr(t.Return20d),
	}
}

func fromPtr[T any](v *T) optional.Option[T] {
	if v == nil {
		return optional.None[T]()
	}

	return optional.Some(*v)
}

// ParseScenario decodes and validates a scenario.
func ParseScenario(data []byte) (Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return Scenario{}, errors.Wrap(errors.ErrCodeInvalidScenario, "failed to parse scenario", err)
	}

	if err := validator.New().Struct(scenario); err != nil {
		return Scenario{}, errors.Wrap(errors.ErrCodeInvalidScenario, "invalid scenario", err)
	}

	for i := 1; i < len(scenario.Cycles); i++ {
		if !scenario.Cycles[i].Time.After(scenario.Cycles[i-1].Time) {
			return Scenario{}, errors.Newf(errors.ErrCodeInvalidScenario,
				"cycle %d time %s is not after cycle %d", i, scenario.Cycles[i].Time.Format(time.RFC3339), i-1)
		}
	}

	return scenario, nil
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, errors.Wrapf(errors.ErrCodeInvalidScenario, err, "failed to read scenario %s", path)
	}

	return ParseScenario(data)
}
