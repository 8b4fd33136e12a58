package dispatch

import (
	"errors"
	"io"
	"sync/atomic"

	"github.com/joeycumines/logiface"
)

// ErrClosed is returned by [Runtime.Close] when the runtime was already
// closed.
var ErrClosed = errors.New("dispatch: runtime is closed")

// Runtime owns one scheduling backend and routes dispatch calls to it. It is
// an explicit handle rather than process-global state: build one at startup,
// share it freely, and Close it at shutdown. The backend is fixed for the
// Runtime's lifetime; switching backends means building a new Runtime.
//
// All methods are safe for concurrent use.
type Runtime struct {
	cfg    Config
	sched  Scheduler
	h      *hooks
	log    *logiface.Logger[logiface.Event]
	closed atomic.Bool
}

// New builds a Runtime for cfg. It fails, constructing nothing, if cfg is
// invalid. For the Parallel backend the worker pool is created here and lives
// until [Runtime.Close]; dispatch calls never spawn goroutines of their own.
func New(cfg Config, opts ...Option) (*Runtime, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.resolve()

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	h := &hooks{verbose: cfg.Verbose}
	if o.tracer != nil {
		h.tracer = o.tracer
	} else if o.log != nil {
		h.tracer = logTracer{log: o.log}
	}

	rt := &Runtime{cfg: cfg, h: h, log: o.log}

	if o.sched != nil {
		rt.sched = o.sched
	} else {
		switch cfg.Backend {
		case Serial:
			rt.sched = &serialScheduler{h: h}
		case Shuffle:
			rt.sched = &shuffleScheduler{h: h, seed: cfg.Seed, reverse: cfg.Reverse}
		case Checked:
			checker := o.checker
			if checker == nil {
				checker = nopChecker{}
			}
			rt.sched = &checkedScheduler{h: h, seed: cfg.Seed, reverse: cfg.Reverse, checker: checker}
		case Parallel:
			rt.sched = newParallelScheduler(h, cfg.Threads)
		}
	}

	rt.log.Debug().
		Str(`backend`, cfg.Backend.String()).
		Int(`threads`, cfg.Threads).
		Int(`verbose`, cfg.Verbose).
		Uint64(`seed`, cfg.Seed).
		Log(`runtime initialized`)

	return rt, nil
}

// For invokes f.RunIndex(i) once for every index in [0, n), under the
// configured backend. Negative n is treated as zero. For returns only after
// every dispatched unit has finished; nothing keeps running in the
// background.
//
// A cancelled c stops further units from being dispatched, while units
// already started run to completion. Cancellation is not an error: For
// returns normally and the caller distinguishes the two outcomes by querying
// c afterwards.
//
// Panics escaping f are never recovered here. On the single-threaded
// backends they unwind through For; under Parallel, a panic on the calling
// goroutine unwinds through For after in-flight units finish, and a panic on
// a worker goroutine terminates the process as any unhandled goroutine panic
// does.
//
// For panics if f is nil or the runtime is closed.
func (rt *Runtime) For(n int, f IndexRunner, c *Canceller) {
	if rt.closed.Load() {
		panic("dispatch: For called after Close")
	}
	if f == nil {
		panic("dispatch: For requires a non-nil IndexRunner")
	}
	if n < 0 {
		n = 0
	}
	rt.sched.RunIndexed(n, f, c)
}

// Invoke runs each task exactly once under the configured backend. A nil
// entry ends the list: tasks beyond it are ignored, so callers may terminate
// an over-allocated slice instead of reslicing it.
//
// Ordering, cancellation, synchronicity and panic behavior match
// [Runtime.For]. Invoke panics if the runtime is closed.
func (rt *Runtime) Invoke(tasks []Task, c *Canceller) {
	if rt.closed.Load() {
		panic("dispatch: Invoke called after Close")
	}
	rt.sched.RunTasks(truncateAtNil(tasks), c)
}

// Config returns the resolved configuration. Defaults are concrete: Threads
// reports the width the Parallel backend was actually built with.
func (rt *Runtime) Config() Config {
	return rt.cfg
}

// Stats returns a snapshot of the runtime's dispatch counters. Safe to call
// concurrently with dispatch.
func (rt *Runtime) Stats() Stats {
	return rt.h.snapshot()
}

// Close releases the runtime's resources. For the Parallel backend it stops
// the workers and waits for them to exit; a Scheduler injected via
// [WithScheduler] is closed too if it implements [io.Closer].
//
// The first call returns the scheduler's close error, if any. Subsequent
// calls return [ErrClosed]. Dispatching after Close panics.
func (rt *Runtime) Close() error {
	if !rt.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	var err error
	if closer, ok := rt.sched.(io.Closer); ok {
		err = closer.Close()
	}
	rt.log.Debug().Log(`runtime closed`)
	return err
}
