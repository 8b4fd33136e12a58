package dispatch

// shuffleScheduler runs units on the calling goroutine in the deterministic
// order given by [Permutation]. Execution is otherwise identical to serial;
// only the visit order changes, which is exactly what makes it useful for
// smoking out hidden order dependence between units.
type shuffleScheduler struct {
	h       *hooks
	seed    uint64
	reverse bool
}

func (s *shuffleScheduler) RunIndexed(n int, f IndexRunner, c *Canceller) {
	s.run(opFor, n, f.RunIndex, c)
}

func (s *shuffleScheduler) RunTasks(tasks []Task, c *Canceller) {
	s.run(opInvoke, len(tasks), taskRunner(tasks), c)
}

func (s *shuffleScheduler) run(op string, n int, fn func(int), c *Canceller) {
	s.h.loop(op, n)
	for _, i := range Permutation(s.seed, n, s.reverse) {
		if c.Cancelled() {
			return
		}
		s.h.unit(op, i)
		fn(i)
	}
}
