// Package rng provides the seedable random source every roll in the engine
// draws from, so battles and foraging can be replayed from a seed.
package rng

import "math/rand/v2"

// Source is the subset of a random generator the engine needs.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n). n must be > 0.
	IntN(n int) int
}

// New returns a deterministic source seeded with seed.
func New(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Range returns a uniform integer in [lo, hi]. If hi < lo, lo is returned.
func Range(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}

// Uniform returns a uniform float in [lo, hi).
func Uniform(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Chance reports whether a roll succeeds with probability p.
func Chance(src Source, p float64) bool {
	if p >= 1 {
		return true
	}
	if p <= 0 {
		return false
	}
	return src.Float64() < p
}

// Fixed is a scripted source for tests. Floats and ints are consumed in
// order and the last value repeats once the script is exhausted.
type Fixed struct {
	Floats []float64
	Ints   []int
	fi, ii int
}

// Float64 implements Source.
func (f *Fixed) Float64() float64 {
	if len(f.Floats) == 0 {
		return 0
	}
	v := f.Floats[min(f.fi, len(f.Floats)-1)]
	f.fi++
	return v
}

// IntN implements Source. Scripted values are reduced modulo n.
func (f *Fixed) IntN(n int) int {
	if len(f.Ints) == 0 || n <= 0 {
		return 0
	}
	v := f.Ints[min(f.ii, len(f.Ints)-1)]
	f.ii++
	return ((v % n) + n) % n
}
