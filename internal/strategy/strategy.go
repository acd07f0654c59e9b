// Package strategy turns a bar series into a signal series. Each strategy
// variant owns an immutable, validated parameter value; construction fails on
// out-of-range parameters so signal generation itself never has to.
package strategy

import (
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/stratbench/stratbench/internal/types"
	"github.com/stratbench/stratbench/pkg/errors"
)

// Strategy is the single capability every variant implements: one signal per
// bar, aligned to the input series.
type Strategy interface {
	// Name returns the name of the strategy, including its parameters.
	Name() string
	// GenerateSignals emits exactly one signal per input bar.
	GenerateSignals(bars types.BarSeries) types.SignalSeries
}

var validate = validator.New()

// Strategy names accepted by New.
const (
	NameMACrossover   = "ma_crossover"
	NameRSI           = "rsi"
	NameMACD          = "macd"
	NameBollinger     = "bollinger_bands"
	NameMeanReversion = "mean_reversion"
	NameBuyAndHold    = "buy_and_hold"
)

// Config is the external configuration form of a strategy: a name plus its
// raw parameter set. Parameters not present keep their per-strategy defaults.
type Config struct {
	Name   string         `yaml:"name" validate:"required"`
	Params map[string]any `yaml:"params"`
}

// New builds the named strategy from raw parameters. Unknown names and
// out-of-domain parameters fail here, never during signal generation.
func New(cfg Config) (Strategy, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid strategy config", err)
	}

	switch cfg.Name {
	case NameMACrossover:
		params := DefaultMACrossoverParams()
		if err := decodeParams(cfg.Params, &params); err != nil {
			return nil, err
		}

		return NewMACrossover(params)
	case NameRSI:
		params := DefaultRSIParams()
		if err := decodeParams(cfg.Params, &params); err != nil {
			return nil, err
		}

		return NewRSI(params)
	case NameMACD:
		params := DefaultMACDParams()
		if err := decodeParams(cfg.Params, &params); err != nil {
			return nil, err
		}

		return NewMACD(params)
	case NameBollinger:
		params := DefaultBollingerParams()
		if err := decodeParams(cfg.Params, &params); err != nil {
			return nil, err
		}

		return NewBollinger(params)
	case NameMeanReversion:
		params := DefaultMeanReversionParams()
		if err := decodeParams(cfg.Params, &params); err != nil {
			return nil, err
		}

		return NewMeanReversion(params)
	case NameBuyAndHold:
		return NewBuyAndHold(), nil
	default:
		return nil, errors.Newf(errors.ErrCodeUnknownStrategy, "unknown strategy %q", cfg.Name)
	}
}

// decodeParams overlays the raw parameter map onto a pre-filled default
// struct, so absent keys keep their defaults.
func decodeParams(params map[string]any, out any) error {
	if len(params) == 0 {
		return nil
	}

	raw, err := yaml.Marshal(params)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStrategyConfigError, "failed to encode strategy params", err)
	}

	if err := yaml.Unmarshal(raw, out); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyConfigError, "failed to decode strategy params", err)
	}

	return nil
}
