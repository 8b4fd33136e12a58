package dispatch

// serialScheduler runs units on the calling goroutine in ascending index
// order. It is the reference behavior the other backends are measured
// against.
type serialScheduler struct {
	h *hooks
}

func (s *serialScheduler) RunIndexed(n int, f IndexRunner, c *Canceller) {
	s.run(opFor, n, f.RunIndex, c)
}

func (s *serialScheduler) RunTasks(tasks []Task, c *Canceller) {
	s.run(opInvoke, len(tasks), taskRunner(tasks), c)
}

func (s *serialScheduler) run(op string, n int, fn func(int), c *Canceller) {
	s.h.loop(op, n)
	for i := range n {
		if c.Cancelled() {
			return
		}
		s.h.unit(op, i)
		fn(i)
	}
}
