package di

import (
	"cmp"
	"context"
	"maps"
	"reflect"
	"slices"
	"sync/atomic"

	"github.com/kbukum/compose/contract"
	"github.com/kbukum/compose/errors"
	"github.com/kbukum/compose/logger"
	"github.com/kbukum/compose/observability"
)

// Registry holds at most one instance per type key.
type Registry struct {
	entries map[reflect.Type]any
	view    atomic.Pointer[View]
	log     *logger.Logger
	metrics *observability.Metrics
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. Defaults to the global logger tagged "di".
func WithLogger(l *logger.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// WithMetrics records registry operations. Nil disables recording.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// RegisterOption tunes a single registration.
type RegisterOption func(*registerOptions)

type registerOptions struct {
	overwrite bool
}

// Overwrite controls whether an existing entry may be replaced. The
// default is true.
func Overwrite(allow bool) RegisterOption {
	return func(o *registerOptions) { o.overwrite = allow }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{entries: make(map[reflect.Type]any)}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.WithComponent("di")
	}
	r.publish()
	return r
}

// FromMap creates a registry seeded with entries. Each entry goes through
// the checked Register path; the first invalid entry aborts construction.
func FromMap(entries map[reflect.Type]any, opts ...Option) (*Registry, error) {
	r := NewRegistry(opts...)
	for _, key := range sortedKeys(entries) {
		if err := r.Register(key, entries[key]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register stores value under key after checking that value is non-nil and
// assignable to key. On failure the registry is left untouched.
func (r *Registry) Register(key reflect.Type, value any, opts ...RegisterOption) error {
	return r.register("register", key, value, true, opts)
}

// RegisterForced stores value under key without the assignability check.
// Use it when compatibility was established elsewhere.
func (r *Registry) RegisterForced(key reflect.Type, value any, opts ...RegisterOption) error {
	return r.register("register_forced", key, value, false, opts)
}

func (r *Registry) register(op string, key reflect.Type, value any, checked bool, opts []RegisterOption) error {
	o := registerOptions{overwrite: true}
	for _, opt := range opts {
		opt(&o)
	}

	if err := r.validate(key, value, checked); err != nil {
		return r.fail(op, key, err)
	}
	if _, exists := r.entries[key]; exists && !o.overwrite {
		return r.fail(op, key, errors.AlreadyExists(key.String()))
	}

	r.entries[key] = value
	r.publish()
	r.record(op, observability.StatusOK)
	r.log.Debug("service registered", logger.Fields(logger.FieldKey, key.String(), "forced", !checked))
	return nil
}

func (r *Registry) validate(key reflect.Type, value any, checked bool) error {
	if key == nil {
		return errors.InvalidArgument("key", "must not be nil")
	}
	if isNil(value) {
		return errors.InvalidArgument("value", "must not be nil")
	}
	if checked {
		if actual := reflect.TypeOf(value); !actual.AssignableTo(key) {
			return errors.IncompatibleType(key.String(), actual.String())
		}
	}
	return nil
}

// Get returns the instance registered under key.
func (r *Registry) Get(key reflect.Type) (any, bool) {
	if key == nil {
		return nil, false
	}
	v, ok := r.entries[key]
	if ok {
		r.record("get", observability.StatusOK)
	} else {
		r.record("get", observability.StatusNotFound)
	}
	return v, ok
}

// Has reports whether key has an entry.
func (r *Registry) Has(key reflect.Type) bool {
	_, ok := r.entries[key]
	return ok
}

// GetOrRegister returns the instance under key, building and registering
// one with factory when absent. The built value is returned only if its
// registration succeeds.
//
// Construction is not transactional: if factory runs but registration then
// fails, whatever side effects factory had are not undone.
func (r *Registry) GetOrRegister(key reflect.Type, factory contract.Factory[any]) (any, error) {
	if key == nil {
		return nil, r.fail("get_or_register", key, errors.InvalidArgument("key", "must not be nil"))
	}
	if v, ok := r.entries[key]; ok {
		r.record("get_or_register", observability.StatusOK)
		return v, nil
	}
	if isNil(factory) {
		return nil, r.fail("get_or_register", key, errors.InvalidArgument("factory", "must not be nil"))
	}

	v, err := factory.Create()
	if err != nil {
		return nil, r.fail("get_or_register", key, errors.ConstructionFailed(key.String(), err))
	}
	if err := r.Register(key, v); err != nil {
		return nil, err
	}
	r.log.Debug("service constructed", logger.Fields(logger.FieldKey, key.String()))
	return v, nil
}

// Remove deletes the entry under key and reports whether one existed.
func (r *Registry) Remove(key reflect.Type) bool {
	if _, ok := r.entries[key]; !ok {
		r.record("remove", observability.StatusNotFound)
		return false
	}
	delete(r.entries, key)
	r.publish()
	r.record("remove", observability.StatusOK)
	r.log.Debug("service removed", logger.Fields(logger.FieldKey, key.String()))
	return true
}

// Clear deletes every entry.
func (r *Registry) Clear() {
	n := len(r.entries)
	clear(r.entries)
	r.publish()
	r.record("clear", observability.StatusOK)
	r.log.Debug("registry cleared", logger.Fields("removed", n))
}

// Len returns the number of entries.
func (r *Registry) Len() int { return len(r.entries) }

// View returns the snapshot published by the last committed mutation.
func (r *Registry) View() *View { return r.view.Load() }

func (r *Registry) publish() {
	r.view.Store(&View{entries: maps.Clone(r.entries)})
}

func (r *Registry) fail(op string, key reflect.Type, err error) error {
	r.record(op, observability.StatusError)
	fields := logger.ErrorFields(op, err)
	if key != nil {
		fields[logger.FieldKey] = key.String()
	}
	r.log.Debug("registry operation rejected", fields)
	return err
}

func (r *Registry) record(op, status string) {
	r.metrics.RecordRegistryOp(context.Background(), op, status)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

func sortedKeys(m map[reflect.Type]any) []reflect.Type {
	keys := slices.Collect(maps.Keys(m))
	slices.SortFunc(keys, func(a, b reflect.Type) int {
		return cmp.Compare(typeName(a), typeName(b))
	})
	return keys
}

func typeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}
