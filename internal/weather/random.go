package weather

import (
	"math"
	"math/rand/v2"
)

// Random is the source of every draw a lookup makes.
type Random interface {
	// UniformInt returns an integer in [lo, hi], inclusive.
	UniformInt(lo, hi int) int
	// Bernoulli returns true with probability p.
	Bernoulli(p float64) bool
}

// Float64Func yields uniform values in [0, 1).
type Float64Func func() float64

// UniformRandom derives integer and Bernoulli draws from a uniform [0, 1)
// source using floor(u*(hi-lo+1))+lo.
type UniformRandom struct {
	next Float64Func
}

// NewRandom returns a Random backed by the process-wide generator.
func NewRandom() *UniformRandom {
	return &UniformRandom{next: rand.Float64}
}

// NewRandomFrom returns a Random backed by f.
func NewRandomFrom(f Float64Func) *UniformRandom {
	return &UniformRandom{next: f}
}

func (r *UniformRandom) UniformInt(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return int(math.Floor(r.next()*float64(hi-lo+1))) + lo
}

func (r *UniformRandom) Bernoulli(p float64) bool {
	return r.next() < p
}
