// Package clicks tracks user interactions for the lifetime of the process.
package clicks

import "sync/atomic"

// Tracker counts tracked interactions. The zero value is ready to use.
// It is created once at the application root and shared by pointer.
type Tracker struct {
	n atomic.Int64
}

// New returns a tracker starting at zero.
func New() *Tracker {
	return &Tracker{}
}

// Increment adds one to the count.
func (t *Tracker) Increment() {
	t.n.Add(1)
}

// Value returns the current count.
func (t *Tracker) Value() int64 {
	return t.n.Load()
}
