package backtest

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"

	"github.com/stratbench/stratbench/internal/strategy"
	"github.com/stratbench/stratbench/pkg/errors"
)

var validate = validator.New()

// RunConfig describes one backtest run: the instrument, the strategy, and
// the execution cost model.
type RunConfig struct {
	Symbol         string                     `yaml:"symbol" json:"symbol" jsonschema:"title=Symbol,description=Instrument symbol to backtest" validate:"required"`
	Strategy       strategy.Config            `yaml:"strategy" json:"strategy" jsonschema:"title=Strategy,description=Strategy name and parameters" validate:"required"`
	InitialCapital float64                    `yaml:"initial_capital" json:"initial_capital" jsonschema:"title=Initial Capital,description=Starting cash in USD,minimum=0" validate:"required,gt=0"`
	CommissionRate float64                    `yaml:"commission_rate" json:"commission_rate" jsonschema:"title=Commission Rate,description=Commission charged per fill as a fraction of traded value,minimum=0" validate:"gte=0,lt=1"`
	SlippageRate   float64                    `yaml:"slippage_rate" json:"slippage_rate" jsonschema:"title=Slippage Rate,description=Adverse price movement applied to each fill as a fraction of price,minimum=0" validate:"gte=0,lt=1"`
	RiskFreeRate   float64                    `yaml:"risk_free_rate" json:"risk_free_rate" jsonschema:"title=Risk Free Rate,description=Annual risk free rate used by the Sharpe ratio,minimum=0" validate:"gte=0,lt=1"`
	StartTime      optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional start of the backtest window"`
	EndTime        optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional end of the backtest window"`
}

// DefaultRunConfig returns the standard cost model: 10k starting cash, 10
// basis points commission, 5 basis points slippage, 4% risk free rate.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		InitialCapital: 10000,
		CommissionRate: 0.001,
		SlippageRate:   0.0005,
		RiskFreeRate:   0.04,
		StartTime:      optional.None[time.Time](),
		EndTime:        optional.None[time.Time](),
	}
}

// UnmarshalYAML implements custom unmarshaling for RunConfig so absent
// fields keep their defaults and absent times stay None.
func (c *RunConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	defaults := DefaultRunConfig()

	type plain struct {
		Symbol         string          `yaml:"symbol"`
		Strategy       strategy.Config `yaml:"strategy"`
		InitialCapital *float64        `yaml:"initial_capital"`
		CommissionRate *float64        `yaml:"commission_rate"`
		SlippageRate   *float64        `yaml:"slippage_rate"`
		RiskFreeRate   *float64        `yaml:"risk_free_rate"`
		StartTime      *time.Time      `yaml:"start_time"`
		EndTime        *time.Time      `yaml:"end_time"`
	}

	var raw plain
	if err := unmarshal(&raw); err != nil {
		return err
	}

	*c = defaults
	c.Symbol = raw.Symbol
	c.Strategy = raw.Strategy

	if raw.InitialCapital != nil {
		c.InitialCapital = *raw.InitialCapital
	}

	if raw.CommissionRate != nil {
		c.CommissionRate = *raw.CommissionRate
	}

	if raw.SlippageRate != nil {
		c.SlippageRate = *raw.SlippageRate
	}

	if raw.RiskFreeRate != nil {
		c.RiskFreeRate = *raw.RiskFreeRate
	}

	if raw.StartTime != nil {
		c.StartTime = optional.Some(*raw.StartTime)
	}

	if raw.EndTime != nil {
		c.EndTime = optional.Some(*raw.EndTime)
	}

	return nil
}

// Validate checks the run configuration, including the time window ordering.
func (c *RunConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid run config", err)
	}

	if c.StartTime.IsSome() && c.EndTime.IsSome() {
		start := c.StartTime.Unwrap()

		end := c.EndTime.Unwrap()
		if !start.Before(end) {
			return errors.New(errors.ErrCodeInvalidConfiguration, "start_time must be before end_time")
		}
	}

	return nil
}

// GenerateSchema generates a JSON schema for the run configuration.
func (c *RunConfig) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
	}

	schema := reflector.Reflect(c)
	schema.Title = "run-config"
	schema.Description = "Configuration schema for a backtest run"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates an indented JSON schema string for the run
// configuration, suitable for editor integration.
func (c *RunConfig) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
