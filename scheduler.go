package dispatch

import "sync/atomic"

// Scheduler executes the units of a dispatch call. Implementations must be
// synchronous: when either method returns, every unit that was dispatched
// has finished. Units that were never dispatched because the canceller fired
// are simply skipped; cancellation is cooperative early completion, not an
// error.
//
// Implementations must invoke each dispatched unit exactly once, must check
// the canceller before dispatching each unit, and must not recover panics
// escaping a unit. A panic unwinds through the dispatch call to the caller,
// whose code it is.
//
// The build in this package selects a Scheduler from [Config.Backend]; a
// custom implementation can be injected with [WithScheduler].
type Scheduler interface {
	// RunIndexed invokes f.RunIndex(i) for indices in [0, n). n <= 0 is a
	// no-op beyond call-level accounting.
	RunIndexed(n int, f IndexRunner, c *Canceller)

	// RunTasks invokes each task's Run method, under the same ordering and
	// cancellation rules as RunIndexed.
	RunTasks(tasks []Task, c *Canceller)
}

// Stats is a point-in-time snapshot of a [Runtime]'s dispatch counters.
type Stats struct {
	// Calls counts accepted For and Invoke calls.
	Calls uint64

	// Units counts units actually dispatched to callables. Units skipped by
	// cancellation are not counted.
	Units uint64
}

// hooks carries the per-Runtime accounting and tracing shared by the built-in
// schedulers. Counters always run; trace events fire per the verbosity.
type hooks struct {
	verbose int
	tracer  Tracer
	calls   atomic.Uint64
	units   atomic.Uint64
}

// loop records an accepted dispatch call.
func (h *hooks) loop(op string, n int) {
	h.calls.Add(1)
	if h.verbose >= VerboseCalls && h.tracer != nil {
		h.tracer.Loop(op, n)
	}
}

// unit records a unit immediately before its callable runs. Safe for
// concurrent use.
func (h *hooks) unit(op string, i int) {
	h.units.Add(1)
	if h.verbose >= VerboseUnits && h.tracer != nil {
		h.tracer.Index(op, i)
	}
}

func (h *hooks) snapshot() Stats {
	return Stats{
		Calls: h.calls.Load(),
		Units: h.units.Load(),
	}
}

// taskRunner adapts a task list to the indexed core loops.
func taskRunner(tasks []Task) func(int) {
	return func(i int) { tasks[i].Run() }
}
