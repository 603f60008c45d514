package logger

import "github.com/kbukum/compose/validation"

// Config contains logging configuration.
type Config struct {
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	Level       string `yaml:"level" mapstructure:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Format      string `yaml:"format" mapstructure:"format" validate:"omitempty,oneof=console json"`
	Output      string `yaml:"output" mapstructure:"output" validate:"omitempty,oneof=stdout stderr"`
	NoColor     bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp   *bool  `yaml:"timestamp" mapstructure:"timestamp"`
}

// ApplyDefaults applies default values to logging configuration.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
	if c.Timestamp == nil {
		on := true
		c.Timestamp = &on
	}
}

// Validate checks the level, format and output against their allowed values.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
