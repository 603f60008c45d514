package pipeline

import (
	"github.com/kbukum/compose/logger"
	"github.com/kbukum/compose/observability"
)

// Option configures a Pipeline.
type Option func(*options)

type options struct {
	name    string
	log     *logger.Logger
	metrics *observability.Metrics
}

// WithName labels the pipeline in logs and metrics. Defaults to "pipeline".
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger sets the logger. Defaults to the global logger tagged "pipeline".
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records step and run metrics. Nil disables recording.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}
