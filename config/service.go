package config

import (
	"github.com/kbukum/compose/logger"
	"github.com/kbukum/compose/observability"
)

// ServiceConfig contains the fields every compose binary needs. Projects
// extend it by embedding.
//
// Example:
//
//	type DemoConfig struct {
//	    config.ServiceConfig `mapstructure:",squash"`
//	    Pipeline PipelineConfig `mapstructure:"pipeline"`
//	}
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string        `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
	Metrics     MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// MetricsConfig toggles OTLP metric export.
type MetricsConfig struct {
	Enabled                   bool `yaml:"enabled" mapstructure:"enabled"`
	observability.MeterConfig `yaml:",inline" mapstructure:",squash"`
}

// ApplyDefaults fills unset fields. Embedding structs that override it
// should call c.ServiceConfig.ApplyDefaults() first.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = c.Name
	}
	if c.Metrics.Environment == "" {
		c.Metrics.Environment = c.Environment
	}
	if c.Metrics.Endpoint == "" {
		def := observability.DefaultMeterConfig(c.Name)
		c.Metrics.Endpoint = def.Endpoint
		c.Metrics.Insecure = def.Insecure
	}
	if c.Metrics.Interval == 0 {
		c.Metrics.Interval = observability.DefaultMeterConfig(c.Name).Interval
	}
}
