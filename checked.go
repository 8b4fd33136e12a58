package dispatch

// Checker observes unit boundaries under the Checked backend. Enter is called
// immediately before a unit's callable and Leave immediately after it; no
// other work happens inside the bracket, so anything the process does between
// the two calls is attributable to that unit.
//
// The Checked backend runs units one at a time on the calling goroutine, so
// it never calls a Checker concurrently.
type Checker interface {
	Enter(i int)
	Leave(i int)
}

// nopChecker stands in when no [WithChecker] option is given.
type nopChecker struct{}

func (nopChecker) Enter(int) {}
func (nopChecker) Leave(int) {}

// checkedScheduler is the shuffle order plus Checker brackets around each
// callable. Cancellation checks and trace events stay outside the bracket.
type checkedScheduler struct {
	h       *hooks
	seed    uint64
	reverse bool
	checker Checker
}

func (s *checkedScheduler) RunIndexed(n int, f IndexRunner, c *Canceller) {
	s.run(opFor, n, f.RunIndex, c)
}

func (s *checkedScheduler) RunTasks(tasks []Task, c *Canceller) {
	s.run(opInvoke, len(tasks), taskRunner(tasks), c)
}

func (s *checkedScheduler) run(op string, n int, fn func(int), c *Canceller) {
	s.h.loop(op, n)
	for _, i := range Permutation(s.seed, n, s.reverse) {
		if c.Cancelled() {
			return
		}
		s.h.unit(op, i)
		s.bracket(fn, i)
	}
}

// bracket pairs Enter and Leave around one callable. Leave is deferred so the
// pair stays balanced while a panic unwinds.
func (s *checkedScheduler) bracket(fn func(int), i int) {
	s.checker.Enter(i)
	defer s.checker.Leave(i)
	fn(i)
}
