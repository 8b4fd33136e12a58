package dispatch

import "github.com/joeycumines/logiface"

// Operation names passed to [Tracer] methods.
const (
	opFor    = "for"
	opInvoke = "invoke"
)

// Tracer receives execution trace events from a [Runtime]. Which events fire
// is controlled by [Config.Verbose]: Loop fires once per dispatch call at
// [VerboseCalls] and above, Index fires once per dispatched unit at
// [VerboseUnits].
//
// The op argument is "for" for indexed loops and "invoke" for task lists.
// Under the Parallel backend, Index is called from worker goroutines and
// implementations must be safe for concurrent use.
type Tracer interface {
	Loop(op string, n int)
	Index(op string, i int)
}

// logTracer is the default Tracer, emitting through the Runtime's logger.
// Loop events log at debug, per-unit events at trace, so a production logger
// filters the firehose even when verbosity is cranked up.
type logTracer struct {
	log *logiface.Logger[logiface.Event]
}

func (t logTracer) Loop(op string, n int) {
	t.log.Debug().
		Str(`op`, op).
		Int(`n`, n).
		Log(`dispatching`)
}

func (t logTracer) Index(op string, i int) {
	t.log.Trace().
		Str(`op`, op).
		Int(`i`, i).
		Log(`unit`)
}
