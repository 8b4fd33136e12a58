package dispatch

import (
	"fmt"
	"runtime"
)

// Backend selects the scheduling strategy a [Runtime] uses to execute the
// units of a dispatch call.
type Backend int

const (
	// Serial runs units one at a time on the calling goroutine, in ascending
	// index order. It is the zero value and the safe default.
	Serial Backend = iota

	// Shuffle runs units one at a time on the calling goroutine, in a
	// deterministic pseudo-random order derived from the configured seed.
	// It exists to flush out accidental order dependence between units.
	Shuffle

	// Checked behaves like Shuffle and additionally brackets every unit with
	// the configured [Checker], so an external monitor can attribute memory
	// accesses to the unit that made them.
	Checked

	// Parallel runs units concurrently on a fixed pool of goroutines created
	// when the Runtime is built. Units are claimed dynamically, so uneven
	// unit costs balance across the pool.
	Parallel
)

// String returns the lower-case backend name, in the form the envcfg
// subpackage accepts.
func (b Backend) String() string {
	switch b {
	case Serial:
		return "serial"
	case Shuffle:
		return "shuffle"
	case Checked:
		return "checked"
	case Parallel:
		return "parallel"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// Verbosity levels for [Config.Verbose].
const (
	// VerboseSilent emits no trace events.
	VerboseSilent = 0

	// VerboseCalls emits one trace event per For or Invoke call.
	VerboseCalls = 1

	// VerboseUnits emits the call event plus one event per dispatched unit.
	VerboseUnits = 2
)

// Config carries the scheduling policy for a [Runtime]. The zero value is
// valid: serial execution, one thread per core, no tracing, seed zero.
type Config struct {
	// Backend selects the scheduling strategy.
	Backend Backend

	// Threads is the execution width of the Parallel backend, counting the
	// goroutine that calls For or Invoke. Zero means one per logical CPU,
	// resolved once in [New] and frozen for the Runtime's lifetime. Other
	// backends ignore it beyond validation.
	Threads int

	// Verbose selects how much tracing the Runtime emits. See VerboseSilent,
	// VerboseCalls and VerboseUnits.
	Verbose int

	// Seed parameterizes the execution order of the Shuffle and Checked
	// backends. Equal seeds give equal orders for equal unit counts.
	Seed uint64

	// Reverse mirrors the shuffled order. Running a loop with Reverse on and
	// off visits the same permutation forwards and backwards, which flushes
	// out order dependence that a single order can mask.
	Reverse bool
}

// validate reports the first invalid field, if any. It never mutates c.
func (c Config) validate() error {
	switch c.Backend {
	case Serial, Shuffle, Checked, Parallel:
	default:
		return fmt.Errorf("dispatch: unknown backend %d", int(c.Backend))
	}
	if c.Threads < 0 {
		return fmt.Errorf("dispatch: thread count must be >= 0, got %d", c.Threads)
	}
	if c.Verbose < VerboseSilent || c.Verbose > VerboseUnits {
		return fmt.Errorf("dispatch: verbosity must be 0, 1 or 2, got %d", c.Verbose)
	}
	return nil
}

// resolve returns c with defaulted fields made concrete. Threads zero becomes
// the process's logical CPU count at the time of the call.
func (c Config) resolve() Config {
	if c.Threads == 0 {
		c.Threads = runtime.GOMAXPROCS(0)
	}
	return c
}
