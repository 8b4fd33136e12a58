package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/baxromumarov/dispatch"
	"github.com/baxromumarov/dispatch/envcfg"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"go.uber.org/automaxprocs/maxprocs"
)

// Demo binary. Configure it through the DISPATCH_* environment
// variables, e.g.
//
//	DISPATCH_SCHED=shuffle DISPATCH_RAND_SEED=42 DISPATCH_VERBOSE=1 go run ./cmd
func main() {
	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}))
	if err != nil {
		fmt.Fprintln(os.Stderr, "maxprocs:", err)
	}
	defer undo()

	cfg, err := envcfg.Load(dispatch.Config{Backend: dispatch.Parallel})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level := logiface.LevelInformational
	if cfg.Verbose > dispatch.VerboseSilent {
		level = logiface.LevelTrace
	}
	log := stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithTimeField(`ts`)),
		stumpy.L.WithLevel(level),
	).Logger()

	rt, err := dispatch.New(cfg, dispatch.WithLogger(log))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rt.Close()

	resolved := rt.Config()
	fmt.Printf("backend=%s threads=%d seed=%d\n", resolved.Backend, resolved.Threads, resolved.Seed)

	now := time.Now()

	var sum atomic.Int64
	rt.For(1<<16, dispatch.IndexFunc(func(i int) {
		sum.Add(int64(i) * int64(i))
	}), nil)
	fmt.Println("sum of squares:", sum.Load())

	samples := make([]float64, 8)
	for i := range samples {
		samples[i] = float64(i)
	}
	dispatch.ForEach(rt, samples, func(p *float64) { *p *= 2 }, nil)
	fmt.Println("doubled samples:", samples)

	c := dispatch.NewCanceller()
	var attempted atomic.Int64
	rt.For(1<<16, dispatch.IndexFunc(func(i int) {
		if attempted.Add(1) == 100 {
			c.Cancel()
		}
	}), c)
	fmt.Println("cancelled run stopped after", attempted.Load(), "units")

	rt.Invoke([]dispatch.Task{
		dispatch.TaskFunc(func() { fmt.Println("stage: load") }),
		dispatch.TaskFunc(func() { fmt.Println("stage: transform") }),
		dispatch.TaskFunc(func() { fmt.Println("stage: store") }),
	}, nil)

	st := rt.Stats()
	fmt.Printf("calls=%d units=%d\n", st.Calls, st.Units)
	fmt.Println("Elapsed time:", time.Since(now))
}
