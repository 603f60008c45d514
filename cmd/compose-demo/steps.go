package main

import (
	"fmt"

	"github.com/kbukum/compose/errors"
	"github.com/kbukum/compose/pipeline"
)

type stepConfig struct {
	Kind  string `yaml:"kind" mapstructure:"kind" validate:"required,oneof=multiply add clamp"`
	Value int    `yaml:"value" mapstructure:"value"`
}

type pipelineConfig struct {
	Name  string       `yaml:"name" mapstructure:"name" validate:"required"`
	Input int          `yaml:"input" mapstructure:"input"`
	Steps []stepConfig `yaml:"steps" mapstructure:"steps" validate:"min=1,dive"`
}

// buildPipeline turns step configs into a pipeline, in order.
func buildPipeline(cfg pipelineConfig, opts ...pipeline.Option) (*pipeline.Pipeline[int], error) {
	p := pipeline.New[int](append([]pipeline.Option{pipeline.WithName(cfg.Name)}, opts...)...)
	for i, sc := range cfg.Steps {
		step, err := newStep(sc)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		p.Add(step)
	}
	return p, nil
}

func newStep(sc stepConfig) (pipeline.Step[int], error) {
	v := sc.Value
	switch sc.Kind {
	case "multiply":
		return pipeline.NamedFunc("multiply", func(n int) (int, error) { return n * v, nil }), nil
	case "add":
		return pipeline.NamedFunc("add", func(n int) (int, error) { return n + v, nil }), nil
	case "clamp":
		return pipeline.NamedFunc("clamp", func(n int) (int, error) { return min(n, v), nil }), nil
	default:
		return nil, errors.InvalidArgument("kind", fmt.Sprintf("unknown step kind %q", sc.Kind))
	}
}
