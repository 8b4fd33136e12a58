package dispatch

import "sync/atomic"

// Canceller is a shared cooperative cancellation flag. A single Canceller
// may be passed to any number of [Runtime.For] and [Runtime.Invoke] calls,
// sequentially or concurrently; cancelling it stops all of them from
// dispatching further units.
//
// A nil *Canceller is valid and is never cancelled; pass nil for a dispatch
// call that cannot be cancelled externally.
type Canceller struct {
	cancelled atomic.Bool
}

// NewCanceller returns a fresh, uncancelled Canceller.
func NewCanceller() *Canceller {
	return &Canceller{}
}

// Cancel sets the flag. It is idempotent, never blocks, and is safe to call
// concurrently with in-flight dispatch and with other Cancel calls. Once set,
// the flag is never reset.
func (c *Canceller) Cancel() {
	c.cancelled.Store(true)
}

// Cancelled reports whether Cancel has been called. The read is a single
// atomic load; a Cancel that returned on any goroutine is observed by every
// Cancelled call that follows it.
func (c *Canceller) Cancelled() bool {
	return c != nil && c.cancelled.Load()
}
