package montecarlo

import (
	"fmt"
	"math/rand"

	"goprob/domain/core"
	"goprob/domain/probability"
)

// Trial produces one random outcome, drawing only from r.
// Successive calls must be independent of each other.
type Trial[T any] func(r *rand.Rand) probability.Outcome[T]

// SingleDraw samples k elements uniformly with replacement on every trial,
// like rolling k dice. Drawing from an empty population is rejected unless
// k is 0.
func SingleDraw[T any](population []T, k int) (Trial[T], error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: must be non-negative, got %d", core.ErrDrawSize, k)
	}
	if k > 0 && len(population) == 0 {
		return nil, fmt.Errorf("%w: cannot draw %d from an empty population", core.ErrDrawSize, k)
	}
	pop := append([]T(nil), population...)
	out := make(probability.Outcome[T], k)
	return func(r *rand.Rand) probability.Outcome[T] {
		for i := range out {
			out[i] = pop[r.Intn(len(pop))]
		}
		return out
	}, nil
}

// DrawWithoutReplacement deals k distinct elements in random order on every
// trial (a partial Fisher-Yates shuffle of a private copy), matching the
// combinations and permutations sample spaces. k must not exceed the
// population: an empty space has nothing to sample.
func DrawWithoutReplacement[T any](population []T, k int) (Trial[T], error) {
	if k < 0 || k > len(population) {
		return nil, fmt.Errorf("%w: cannot deal %d from %d without replacement", core.ErrDrawSize, k, len(population))
	}
	pool := append([]T(nil), population...)
	out := make(probability.Outcome[T], k)
	return func(r *rand.Rand) probability.Outcome[T] {
		for i := 0; i < k; i++ {
			j := i + r.Intn(len(pool)-i)
			pool[i], pool[j] = pool[j], pool[i]
			out[i] = pool[i]
		}
		return out
	}, nil
}

// Shuffled permutes a private copy of the population once per trial and
// lets reveal derive the outcome from the shuffle order. reveal may draw
// further randomness from r (a guest picking a door, say). The shuffle state
// itself is never handed out; reveal and the predicate see a copy.
func Shuffled[T any](population []T, reveal func(perm probability.Outcome[T], r *rand.Rand) probability.Outcome[T]) Trial[T] {
	perm := make(probability.Outcome[T], len(population))
	copy(perm, population)
	out := make(probability.Outcome[T], len(perm))
	return func(r *rand.Rand) probability.Outcome[T] {
		r.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
		copy(out, perm)
		if reveal == nil {
			return out
		}
		return reveal(out, r)
	}
}

// Box is an axis-aligned rectangle [MinX,MaxX) x [MinY,MaxY)
type Box struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Area returns the rectangle's area
func (b Box) Area() float64 {
	return (b.MaxX - b.MinX) * (b.MaxY - b.MinY)
}

// UniformPoint draws a point uniformly from the box as a two-element outcome (x, y)
func UniformPoint(box Box) Trial[float64] {
	out := make(probability.Outcome[float64], 2)
	return func(r *rand.Rand) probability.Outcome[float64] {
		out[0] = box.MinX + r.Float64()*(box.MaxX-box.MinX)
		out[1] = box.MinY + r.Float64()*(box.MaxY-box.MinY)
		return out
	}
}
