package dispatch

import (
	"sync"
	"sync/atomic"
)

// parallelScheduler runs units on a fixed set of goroutines created with the
// Runtime. The goroutine calling RunIndexed or RunTasks participates as one
// of the execution threads, so a width of n spawns n-1 workers.
//
// Units are claimed from a shared atomic cursor rather than pre-partitioned,
// so a slow unit stalls only the thread running it while the rest of the
// pool drains the remainder.
type parallelScheduler struct {
	h       *hooks
	threads int

	mu     sync.Mutex // serializes dispatch calls and Close
	closed bool
	work   chan *parBatch

	workers sync.WaitGroup
}

func newParallelScheduler(h *hooks, threads int) *parallelScheduler {
	s := &parallelScheduler{
		h:       h,
		threads: threads,
		work:    make(chan *parBatch, threads-1),
	}
	s.workers.Add(threads - 1)
	for range threads - 1 {
		go s.worker()
	}
	return s
}

func (s *parallelScheduler) worker() {
	defer s.workers.Done()
	for b := range s.work {
		b.drain()
	}
}

func (s *parallelScheduler) RunIndexed(n int, f IndexRunner, c *Canceller) {
	s.run(opFor, n, f.RunIndex, c)
}

func (s *parallelScheduler) RunTasks(tasks []Task, c *Canceller) {
	s.run(opInvoke, len(tasks), taskRunner(tasks), c)
}

func (s *parallelScheduler) run(op string, n int, fn func(int), c *Canceller) {
	s.h.loop(op, n)
	if n <= 0 {
		return
	}

	b := &parBatch{op: op, n: int64(n), fn: fn, c: c, h: s.h}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		panic("dispatch: scheduler used after Close")
	}

	// Every prior batch's sends were consumed before its dispatch returned,
	// so the buffer is empty here and these sends cannot block. Waking more
	// threads than there are units buys nothing, hence the min.
	helpers := min(s.threads-1, n-1)
	b.wg.Add(helpers + 1)
	for range helpers {
		s.work <- b
	}

	// The dispatching goroutine is one of the batch's threads. If a unit
	// panics here, the deferred abort stops workers from claiming further
	// units and the wait lets claimed ones finish before the panic leaves
	// this frame.
	finished := false
	defer func() {
		if !finished {
			b.abort()
		}
		b.wg.Wait()
	}()
	b.drain()
	finished = true
}

// Close stops the workers and waits for them to exit. Safe to call more than
// once; dispatch calls after Close panic.
func (s *parallelScheduler) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.work)
	}
	s.workers.Wait()
	return nil
}

// parBatch is one dispatch call's worth of work, shared by every thread
// draining it.
type parBatch struct {
	op   string
	n    int64
	fn   func(int)
	c    *Canceller
	h    *hooks
	next atomic.Int64
	wg   sync.WaitGroup
}

// drain claims and runs units until the batch is exhausted or the canceller
// fires. The cursor hands each unit to exactly one thread, and the canceller
// is re-checked before every claim.
func (b *parBatch) drain() {
	defer b.wg.Done()
	for !b.c.Cancelled() {
		i := b.next.Add(1) - 1
		if i >= b.n {
			return
		}
		b.h.unit(b.op, int(i))
		b.fn(int(i))
	}
}

// abort parks the claim cursor past the end of the batch so no further unit
// starts. Units already claimed run to completion.
func (b *parBatch) abort() {
	b.next.Store(b.n)
}
