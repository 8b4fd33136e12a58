package dispatch

// IndexRunner is the callable of an indexed loop. [Runtime.For] invokes
// RunIndex exactly once for every dispatched index.
//
// Implementations must tolerate being called from any goroutine under the
// Parallel backend, including concurrently for distinct indices.
type IndexRunner interface {
	RunIndex(i int)
}

// IndexFunc adapts an ordinary function to [IndexRunner].
type IndexFunc func(i int)

// RunIndex calls f(i).
func (f IndexFunc) RunIndex(i int) { f(i) }

// Task is a single unit of an [Runtime.Invoke] call.
type Task interface {
	Run()
}

// TaskFunc adapts an ordinary function to [Task].
type TaskFunc func()

// Run calls f().
func (f TaskFunc) Run() { f() }

// truncateAtNil cuts tasks at the first nil entry. A nil Task acts as an
// end-of-list sentinel, so callers may over-allocate a slice and terminate
// it instead of reslicing.
func truncateAtNil(tasks []Task) []Task {
	for i, t := range tasks {
		if t == nil {
			return tasks[:i]
		}
	}
	return tasks
}
