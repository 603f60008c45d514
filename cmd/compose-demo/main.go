// Command compose-demo wires a configured integer pipeline through a
// service registry and runs it once.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kbukum/compose/config"
	"github.com/kbukum/compose/contract"
	"github.com/kbukum/compose/di"
	"github.com/kbukum/compose/logger"
	"github.com/kbukum/compose/observability"
	"github.com/kbukum/compose/pipeline"
	"github.com/kbukum/compose/version"
)

const serviceName = "compose-demo"

type demoConfig struct {
	config.ServiceConfig `mapstructure:",squash"`
	Pipeline             pipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg demoConfig
	if err := config.Load(serviceName, &cfg); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger.Init(cfg.Logging)
	log := logger.WithComponent("main")
	log.Info("starting", logger.Fields("version", version.String(), "environment", cfg.Environment))

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		if cfg.Metrics.ServiceVersion == "" {
			cfg.Metrics.ServiceVersion = version.Version
		}
		mp, err := observability.InitMeter(ctx, cfg.Metrics.MeterConfig)
		if err != nil {
			return err
		}
		defer func() {
			if err := mp.Shutdown(ctx); err != nil {
				log.Warn("meter shutdown failed", logger.ErrorFields("shutdown", err))
			}
		}()
		if metrics, err = observability.NewMetrics(observability.Meter(serviceName)); err != nil {
			return err
		}
	}

	reg := di.NewRegistry(di.WithMetrics(metrics))
	if metrics != nil {
		if err := di.Register(reg, metrics); err != nil {
			return err
		}
	}

	out, err := runPipeline(reg, cfg.Pipeline)
	if err != nil {
		return err
	}
	log.Info("pipeline processed", logger.Fields(
		logger.FieldPipeline, cfg.Pipeline.Name,
		"input", cfg.Pipeline.Input,
		"output", out,
	))
	return nil
}

// runPipeline resolves the configured pipeline from reg, building it on
// first use, and feeds it the configured input.
func runPipeline(reg *di.Registry, cfg pipelineConfig) (int, error) {
	build := contract.FactoryFunc1[pipelineConfig, *pipeline.Pipeline[int]](func(pc pipelineConfig) (*pipeline.Pipeline[int], error) {
		metrics, _ := di.Get[*observability.Metrics](reg)
		return buildPipeline(pc, pipeline.WithMetrics(metrics))
	})

	p, err := di.GetOrRegister(reg, contract.Bind1[pipelineConfig, *pipeline.Pipeline[int]](build, cfg))
	if err != nil {
		return 0, fmt.Errorf("resolving pipeline: %w", err)
	}
	return p.Process(cfg.Input)
}
