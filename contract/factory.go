package contract

import "reflect"

// Factory builds a value with no inputs.
type Factory[T any] interface {
	Create() (T, error)
}

// Factory1 builds a value from one input.
type Factory1[A, T any] interface {
	Create(a A) (T, error)
}

// Factory2 builds a value from two inputs.
type Factory2[A, B, T any] interface {
	Create(a A, b B) (T, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc[T any] func() (T, error)

func (f FactoryFunc[T]) Create() (T, error) { return f() }

// FactoryFunc1 adapts a function to Factory1.
type FactoryFunc1[A, T any] func(A) (T, error)

func (f FactoryFunc1[A, T]) Create(a A) (T, error) { return f(a) }

// FactoryFunc2 adapts a function to Factory2.
type FactoryFunc2[A, B, T any] func(A, B) (T, error)

func (f FactoryFunc2[A, B, T]) Create(a A, b B) (T, error) { return f(a, b) }

// Bind1 fixes the argument of a Factory1, yielding a Factory.
func Bind1[A, T any](f Factory1[A, T], a A) Factory[T] {
	return FactoryFunc[T](func() (T, error) { return f.Create(a) })
}

// Bind2 fixes both arguments of a Factory2, yielding a Factory.
func Bind2[A, B, T any](f Factory2[A, B, T], a A, b B) Factory[T] {
	return FactoryFunc[T](func() (T, error) { return f.Create(a, b) })
}

// Erase widens a Factory[T] to a Factory[any]. A nil factory, including a
// nil FactoryFunc held in the interface, stays nil.
func Erase[T any](f Factory[T]) Factory[any] {
	if isNil(f) {
		return nil
	}
	return FactoryFunc[any](func() (any, error) {
		v, err := f.Create()
		if err != nil {
			return nil, err
		}
		return v, nil
	})
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
