package dispatch

import "github.com/joeycumines/logiface"

type options struct {
	log     *logiface.Logger[logiface.Event]
	tracer  Tracer
	checker Checker
	sched   Scheduler
}

// Option adjusts how [New] assembles a [Runtime], beyond what [Config]
// expresses.
type Option func(*options)

// WithLogger routes the Runtime's own logging, and the default [Tracer],
// through log. Typed loggers generify via their Logger method. A nil logger
// (the default) silences both.
func WithLogger(log *logiface.Logger[logiface.Event]) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithTracer replaces the default log-backed [Tracer]. Trace events still
// obey [Config.Verbose]. Panics if t is nil.
func WithTracer(t Tracer) Option {
	return func(o *options) {
		if t == nil {
			panic("dispatch: WithTracer requires a non-nil Tracer")
		}
		o.tracer = t
	}
}

// WithChecker registers the monitor bracketing every unit under the Checked
// backend. Other backends ignore it. Panics if ch is nil.
func WithChecker(ch Checker) Option {
	return func(o *options) {
		if ch == nil {
			panic("dispatch: WithChecker requires a non-nil Checker")
		}
		o.checker = ch
	}
}

// WithScheduler overrides the backend selection entirely: the Runtime
// dispatches through s, and [Config.Backend] is validated but otherwise
// unused. If s also implements io.Closer, [Runtime.Close] closes it.
// Panics if s is nil.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		if s == nil {
			panic("dispatch: WithScheduler requires a non-nil Scheduler")
		}
		o.sched = s
	}
}
