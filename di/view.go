package di

import (
	"iter"
	"reflect"
)

// View is an immutable snapshot of a Registry. It is safe to share and to
// read from any goroutine.
type View struct {
	entries map[reflect.Type]any
}

// Get returns the instance registered under key at snapshot time.
func (v *View) Get(key reflect.Type) (any, bool) {
	val, ok := v.entries[key]
	return val, ok
}

// Has reports whether key had an entry at snapshot time.
func (v *View) Has(key reflect.Type) bool {
	_, ok := v.entries[key]
	return ok
}

// Len returns the number of entries.
func (v *View) Len() int { return len(v.entries) }

// Keys returns the registered keys sorted by type name.
func (v *View) Keys() []reflect.Type {
	return sortedKeys(v.entries)
}

// All iterates entries in key-name order.
func (v *View) All() iter.Seq2[reflect.Type, any] {
	return func(yield func(reflect.Type, any) bool) {
		for _, k := range v.Keys() {
			if !yield(k, v.entries[k]) {
				return
			}
		}
	}
}
