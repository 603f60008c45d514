package pipeline

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/compose/errors"
	"github.com/kbukum/compose/logger"
	"github.com/kbukum/compose/observability"
)

// Pipeline is an ordered, mutable chain of steps over values of type T.
// Insertion order is execution order. The pipeline holds non-owning
// references: the same step may sit in several pipelines, or several
// times in one.
type Pipeline[T any] struct {
	id      string
	name    string
	steps   []Step[T]
	log     *logger.Logger
	metrics *observability.Metrics
}

// New creates an empty pipeline.
func New[T any](opts ...Option) *Pipeline[T] {
	o := options{name: "pipeline"}
	for _, opt := range opts {
		opt(&o)
	}
	p := &Pipeline[T]{
		id:      uuid.NewString(),
		name:    o.name,
		metrics: o.metrics,
	}
	log := o.log
	if log == nil {
		log = logger.WithComponent("pipeline")
	}
	p.log = log.WithFields(logger.Fields(logger.FieldPipeline, p.name, "pipeline_id", p.id))
	return p
}

// From creates a pipeline pre-populated with steps, in order.
func From[T any](steps []Step[T], opts ...Option) *Pipeline[T] {
	p := New[T](opts...)
	p.AddAll(steps...)
	return p
}

// ID returns the unique identifier assigned at construction.
func (p *Pipeline[T]) ID() string { return p.id }

// Name returns the pipeline label.
func (p *Pipeline[T]) Name() string { return p.name }

// Len returns the number of steps.
func (p *Pipeline[T]) Len() int { return len(p.steps) }

// Add appends step. Duplicates are allowed; nil steps are ignored.
func (p *Pipeline[T]) Add(step Step[T]) {
	if isNilStep(step) {
		p.log.Warn("ignoring nil step", logger.Fields(logger.FieldOperation, "add"))
		return
	}
	p.steps = append(p.steps, step)
	p.log.Debug("step added", logger.Fields(logger.FieldStep, stepName(step), logger.FieldIndex, len(p.steps)-1))
}

// AddAll appends steps in order.
func (p *Pipeline[T]) AddAll(steps ...Step[T]) {
	for _, s := range steps {
		p.Add(s)
	}
}

// Insert places step before the element at index. index == Len() appends.
func (p *Pipeline[T]) Insert(index int, step Step[T]) error {
	if isNilStep(step) {
		return errors.InvalidArgument("step", "must not be nil")
	}
	if index < 0 || index > len(p.steps) {
		return errors.IndexOutOfRange(index, len(p.steps)+1)
	}
	p.steps = slices.Insert(p.steps, index, step)
	p.log.Debug("step inserted", logger.Fields(logger.FieldStep, stepName(step), logger.FieldIndex, index))
	return nil
}

// ReplaceAt swaps the step at index for step.
func (p *Pipeline[T]) ReplaceAt(index int, step Step[T]) error {
	if isNilStep(step) {
		return errors.InvalidArgument("step", "must not be nil")
	}
	if index < 0 || index >= len(p.steps) {
		return errors.IndexOutOfRange(index, len(p.steps))
	}
	p.steps[index] = step
	p.log.Debug("step replaced", logger.Fields(logger.FieldStep, stepName(step), logger.FieldIndex, index))
	return nil
}

// Replace swaps the first occurrence of old for next and reports whether a
// swap happened. When old is not in the pipeline nothing changes and
// Replace returns false.
func (p *Pipeline[T]) Replace(old, next Step[T]) bool {
	if isNilStep(next) {
		return false
	}
	i := p.indexOf(old)
	if i < 0 {
		p.log.Debug("replace target not found", logger.Fields(logger.FieldStep, stepName(next)))
		return false
	}
	p.steps[i] = next
	p.log.Debug("step replaced", logger.Fields(logger.FieldStep, stepName(next), logger.FieldIndex, i))
	return true
}

// RemoveAt deletes the step at index.
func (p *Pipeline[T]) RemoveAt(index int) error {
	if index < 0 || index >= len(p.steps) {
		return errors.IndexOutOfRange(index, len(p.steps))
	}
	p.steps = slices.Delete(p.steps, index, index+1)
	p.log.Debug("step removed", logger.Fields(logger.FieldIndex, index))
	return nil
}

// Remove deletes the first occurrence of step and reports whether it was found.
func (p *Pipeline[T]) Remove(step Step[T]) bool {
	i := p.indexOf(step)
	if i < 0 {
		return false
	}
	p.steps = slices.Delete(p.steps, i, i+1)
	p.log.Debug("step removed", logger.Fields(logger.FieldStep, stepName(step), logger.FieldIndex, i))
	return true
}

// Steps returns a copy of the current step sequence.
func (p *Pipeline[T]) Steps() []Step[T] {
	return slices.Clone(p.steps)
}

// Process feeds value through every step, first to last, and returns the
// last step's output. With no steps it returns value unchanged. The first
// step error is returned as is, together with the zero value of T.
//
// The run walks the steps held when Process was called; a step that
// mutates its own pipeline affects the next run, not this one.
func (p *Pipeline[T]) Process(value T) (T, error) {
	steps := slices.Clone(p.steps)
	ctx := context.Background()
	start := time.Now()

	current := value
	for i, s := range steps {
		name := stepName(s)
		stepStart := time.Now()
		out, err := s.Process(current)
		if err != nil {
			p.metrics.RecordStep(ctx, p.name, name, observability.StatusError, time.Since(stepStart))
			p.metrics.RecordProcess(ctx, p.name, observability.StatusError, time.Since(start))
			p.log.Debug("step failed", logger.Fields(
				logger.FieldStep, name,
				logger.FieldIndex, i,
				logger.FieldError, err.Error(),
			))
			var zero T
			return zero, err
		}
		p.metrics.RecordStep(ctx, p.name, name, observability.StatusOK, time.Since(stepStart))
		current = out
	}

	p.metrics.RecordProcess(ctx, p.name, observability.StatusOK, time.Since(start))
	p.log.Debug("pipeline processed", logger.DurationFields("process", time.Since(start)))
	return current, nil
}

func (p *Pipeline[T]) indexOf(step Step[T]) int {
	for i, s := range p.steps {
		if sameStep(s, step) {
			return i
		}
	}
	return -1
}
