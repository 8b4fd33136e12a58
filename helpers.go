package dispatch

import "fmt"

// ForEach runs fn once per element of items under rt's backend, passing a
// pointer to the element so each unit can fill in or rework its own slot.
// Distinct units touch distinct elements, which keeps the loop race-free
// under the Parallel backend as long as fn stays inside its element.
//
// This is a convenience wrapper around [Runtime.For]; cancellation and
// ordering follow it.
//
//	pixels := make([]Pixel, w*h)
//	dispatch.ForEach(rt, pixels, func(p *Pixel) { p.Shade(scene) }, nil)
//
// Panics if fn is nil.
func ForEach[T any](rt *Runtime, items []T, fn func(*T), c *Canceller) {
	if fn == nil {
		panic("dispatch: ForEach requires a non-nil fn")
	}
	rt.For(len(items), IndexFunc(func(i int) {
		fn(&items[i])
	}), c)
}

// InvokeFuncs runs each function exactly once under rt's backend. It is
// [Runtime.Invoke] for plain closures:
//
//	dispatch.InvokeFuncs(rt, nil,
//	    func() { buildIndex() },
//	    func() { warmCache() },
//	)
//
// Panics if any function is nil.
func InvokeFuncs(rt *Runtime, c *Canceller, fns ...func()) {
	tasks := make([]Task, len(fns))
	for i, fn := range fns {
		if fn == nil {
			panic(fmt.Sprintf("dispatch: InvokeFuncs fn[%d] must not be nil", i))
		}
		tasks[i] = TaskFunc(fn)
	}
	rt.Invoke(tasks, c)
}
