package dispatch

import "slices"

// splitmix64 is a tiny, allocation-free PRNG with a full 2^64 period. It is
// not cryptographic; it exists so shuffled execution orders are reproducible
// from a seed on every platform.
type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Permutation returns the order in which the Shuffle and Checked backends
// visit the indices [0, n) for the given seed. With reverse set, the order
// is the exact mirror of the order without it.
//
// The mapping from (seed, n, reverse) to the returned permutation is part of
// the package's compatibility promise: a recorded seed replays the same
// order in any future release. The underlying generator is splitmix64
// feeding a Fisher-Yates shuffle.
//
// n <= 0 returns nil.
func Permutation(seed uint64, n int, reverse bool) []int {
	if n <= 0 {
		return nil
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rng := splitmix64{state: seed}
	for i := n - 1; i >= 1; i-- {
		j := int(rng.next() % uint64(i+1))
		order[i], order[j] = order[j], order[i]
	}
	if reverse {
		slices.Reverse(order)
	}
	return order
}
