package pipeline

import (
	"fmt"
	"reflect"

	"github.com/kbukum/compose/contract"
)

// Step is one transformation unit of a Pipeline.
type Step[T any] interface {
	contract.Cancellable
	// Process transforms input. A non-nil error aborts the pipeline run.
	Process(input T) (T, error)
}

// Named is optionally implemented by steps to label logs and metrics.
type Named interface {
	Name() string
}

// FuncStep turns a plain function into a Step with its own cancellation
// flag. Always use it through the pointer returned by Func so that
// identity-based Replace and Remove can find it.
type FuncStep[T any] struct {
	contract.Flag
	name string
	fn   func(T) (T, error)
}

// Func wraps fn as a Step.
func Func[T any](fn func(T) (T, error)) *FuncStep[T] {
	return &FuncStep[T]{fn: fn}
}

// NamedFunc wraps fn as a Step reporting name through Named.
func NamedFunc[T any](name string, fn func(T) (T, error)) *FuncStep[T] {
	return &FuncStep[T]{name: name, fn: fn}
}

// Process calls the wrapped function.
func (s *FuncStep[T]) Process(input T) (T, error) {
	return s.fn(input)
}

// Name returns the step label, or "func" when none was given.
func (s *FuncStep[T]) Name() string {
	if s.name == "" {
		return "func"
	}
	return s.name
}

// stepName labels a step for logs and metrics.
func stepName[T any](s Step[T]) string {
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}

// sameStep reports whether a and b are the same step instance. Steps that
// cannot be compared never match, including comparable structs whose
// interface fields hold a func, map or slice at run time.
func sameStep[T any](a, b Step[T]) (same bool) {
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

func isNilStep[T any](s Step[T]) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
