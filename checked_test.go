package dispatch_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/baxromumarov/dispatch"
)

// bracketLog records checker brackets and unit bodies in one stream, so
// nesting is visible. The checked backend is single-threaded, so a plain
// slice is enough.
type bracketLog struct {
	events []string
}

func (b *bracketLog) Enter(i int) { b.events = append(b.events, fmt.Sprintf("enter %d", i)) }
func (b *bracketLog) Leave(i int) { b.events = append(b.events, fmt.Sprintf("leave %d", i)) }

func TestCheckedBracketsEveryDispatchedUnit(t *testing.T) {
	const seed, n = 7, 5
	log := &bracketLog{}
	rt, err := dispatch.New(dispatch.Config{Backend: dispatch.Checked, Seed: seed}, dispatch.WithChecker(log))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rt.Close()

	rt.For(n, dispatch.IndexFunc(func(i int) {
		log.events = append(log.events, fmt.Sprintf("run %d", i))
	}), nil)

	var want []string
	for _, i := range dispatch.Permutation(seed, n, false) {
		want = append(want,
			fmt.Sprintf("enter %d", i),
			fmt.Sprintf("run %d", i),
			fmt.Sprintf("leave %d", i),
		)
	}
	if !slices.Equal(log.events, want) {
		t.Fatalf("expected bracket stream %v, got %v", want, log.events)
	}
}

func TestCheckedCancelSkipsUndispatchedUnits(t *testing.T) {
	const seed, n = 11, 8
	log := &bracketLog{}
	rt, err := dispatch.New(dispatch.Config{Backend: dispatch.Checked, Seed: seed}, dispatch.WithChecker(log))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rt.Close()

	c := dispatch.NewCanceller()
	ran := 0
	rt.For(n, dispatch.IndexFunc(func(i int) {
		log.events = append(log.events, fmt.Sprintf("run %d", i))
		ran++
		if ran == 2 {
			c.Cancel()
		}
	}), c)

	var want []string
	for _, i := range dispatch.Permutation(seed, n, false)[:2] {
		want = append(want,
			fmt.Sprintf("enter %d", i),
			fmt.Sprintf("run %d", i),
			fmt.Sprintf("leave %d", i),
		)
	}
	if !slices.Equal(log.events, want) {
		t.Fatalf("expected brackets only for the 2 dispatched units, got %v", log.events)
	}
}

func TestCheckedWithoutCheckerMatchesShuffleOrder(t *testing.T) {
	const seed, n = 42, 8
	rt, err := dispatch.New(dispatch.Config{Backend: dispatch.Checked, Seed: seed, Reverse: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rt.Close()

	var order []int
	rt.For(n, dispatch.IndexFunc(func(i int) {
		order = append(order, i)
	}), nil)

	if want := dispatch.Permutation(seed, n, true); !slices.Equal(order, want) {
		t.Fatalf("expected order %v, got %v", want, order)
	}
}

func TestCheckedBracketBalancedWhenUnitPanics(t *testing.T) {
	const seed, n = 7, 3
	log := &bracketLog{}
	rt, err := dispatch.New(dispatch.Config{Backend: dispatch.Checked, Seed: seed}, dispatch.WithChecker(log))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rt.Close()

	perm := dispatch.Permutation(seed, n, false)
	ran := 0
	p := capturePanic(func() {
		rt.For(n, dispatch.IndexFunc(func(i int) {
			ran++
			if ran == 2 {
				panic("unit boom")
			}
			log.events = append(log.events, fmt.Sprintf("run %d", i))
		}), nil)
	})

	if p == nil || fmt.Sprint(p) != "unit boom" {
		t.Fatalf("expected the unit's panic to unwind unchanged, got %v", p)
	}
	want := []string{
		fmt.Sprintf("enter %d", perm[0]),
		fmt.Sprintf("run %d", perm[0]),
		fmt.Sprintf("leave %d", perm[0]),
		fmt.Sprintf("enter %d", perm[1]),
		fmt.Sprintf("leave %d", perm[1]),
	}
	if !slices.Equal(log.events, want) {
		t.Fatalf("expected the interrupted unit's bracket to close, got %v", log.events)
	}
}
