package di

import (
	"fmt"
	"reflect"

	"github.com/kbukum/compose/contract"
	"github.com/kbukum/compose/errors"
)

// Key returns the registry key for T. Use an interface type for T to key a
// service by its capability rather than its concrete type.
func Key[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Register stores value under Key[T]. The compiler already guarantees
// assignability; nil values are still rejected.
//
// Example:
//
//	err := di.Register[io.Writer](reg, os.Stdout)
func Register[T any](r *Registry, value T, opts ...RegisterOption) error {
	return r.Register(Key[T](), value, opts...)
}

// Get returns the instance registered under Key[T]. It reports false when
// the key is absent or the stored value is not a T (possible only after
// RegisterForced).
func Get[T any](r *Registry) (T, bool) {
	var zero T
	v, ok := r.Get(Key[T]())
	if !ok {
		return zero, false
	}
	result, ok := v.(T)
	if !ok {
		return zero, false
	}
	return result, true
}

// MustGet is Get that panics when T is not registered.
// Use this in wiring code where a missing service is a programming error.
func MustGet[T any](r *Registry) T {
	result, ok := Get[T](r)
	if !ok {
		panic(fmt.Sprintf("di: %v", errors.NotFound(Key[T]().String())))
	}
	return result
}

// GetOrRegister returns the T registered under Key[T], building it with
// factory when absent. See Registry.GetOrRegister for the failure rules.
//
// Example:
//
//	cache, err := di.GetOrRegister[*Cache](reg, contract.FactoryFunc[*Cache](NewCache))
func GetOrRegister[T any](r *Registry, factory contract.Factory[T]) (T, error) {
	var zero T
	key := Key[T]()
	v, err := r.GetOrRegister(key, contract.Erase(factory))
	if err != nil {
		return zero, err
	}
	result, ok := v.(T)
	if !ok {
		return zero, errors.IncompatibleType(key.String(), reflect.TypeOf(v).String())
	}
	return result, nil
}

// Remove deletes the entry under Key[T].
func Remove[T any](r *Registry) bool {
	return r.Remove(Key[T]())
}
