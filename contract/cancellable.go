package contract

import "sync/atomic"

// Cancellable exposes an advisory cancellation flag. A controller holding
// a reference sets it; the holder's own long-running work reads it and
// decides whether to abort.
type Cancellable interface {
	Cancelled() bool
	SetCancelled(cancelled bool)
}

// Flag is a ready-to-embed Cancellable. The zero value is not cancelled.
// It must not be copied after first use.
type Flag struct {
	cancelled atomic.Bool
}

// Cancelled reports whether the flag is set.
func (f *Flag) Cancelled() bool { return f.cancelled.Load() }

// SetCancelled sets or clears the flag.
func (f *Flag) SetCancelled(cancelled bool) { f.cancelled.Store(cancelled) }
