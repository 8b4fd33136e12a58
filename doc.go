// Package dispatch executes independent units of work, an indexed loop or a
// fixed set of tasks, through a pluggable scheduling backend chosen when the
// runtime is built.
//
// The point is to write the work expression once and run it under wildly
// different policies: strictly serial for debugging, deterministically
// shuffled to flush out hidden order dependence, instrumented for an external
// race checker, or genuinely parallel over a fixed pool of goroutines.
//
// # Dispatching Work
//
// Build a [Runtime] from a [Config], then hand it work:
//
//	rt, err := dispatch.New(dispatch.Config{Backend: dispatch.Parallel})
//	if err != nil {
//	    return err
//	}
//	defer rt.Close()
//
//	rt.For(len(rows), dispatch.IndexFunc(func(i int) {
//	    rows[i].Recompute()
//	}), nil)
//
// [Runtime.For] runs one callable once per index; [Runtime.Invoke] runs a
// heterogeneous task list. Both are synchronous: they return only after
// every dispatched unit has finished. [ForEach] and [InvokeFuncs] layer
// slice and closure sugar on top.
//
// Work units are capability objects: [IndexRunner] and [Task] carry whatever
// state the unit needs, and [IndexFunc] and [TaskFunc] adapt plain
// functions.
//
// # Backends
//
//   - [Serial]: ascending index order on the calling goroutine. Ground
//     truth for debugging.
//   - [Shuffle]: a deterministic pseudo-random order derived from
//     [Config.Seed], still on the calling goroutine. Equal seeds replay
//     equal orders, so a failure found under one seed reproduces under it;
//     see [Permutation]. [Config.Reverse] mirrors the order exactly.
//   - [Checked]: Shuffle plus a [Checker] bracketing every dispatched unit,
//     so an external race or consistency monitor can attribute memory
//     accesses to units.
//   - [Parallel]: a fixed pool of goroutines sized by [Config.Threads],
//     claiming units dynamically. The count includes the dispatching
//     goroutine; zero means one per core.
//
// # Cancellation
//
// A [Canceller] is a shared cooperative flag. Cancelling it stops further
// units from starting across every dispatch call holding the same Canceller;
// units already started run to completion, and the dispatch call still
// returns normally. Cancellation is not an error: query the Canceller after
// the call to tell the outcomes apart. A nil *Canceller means the call
// cannot be cancelled externally.
//
// # Tracing
//
// [Config.Verbose] selects trace volume: 1 emits one event per dispatch
// call, 2 adds one per dispatched unit. Events flow to the [Tracer], which
// defaults to the logger given via [WithLogger] (calls at debug, units at
// trace) and can be replaced with [WithTracer]. The counters behind
// [Runtime.Stats] run regardless of verbosity.
//
// # Environment Configuration
//
// The [github.com/baxromumarov/dispatch/envcfg] subpackage resolves a
// [Config] from DISPATCH_* environment variables, for programs that pick
// their scheduling policy at launch time.
package dispatch
