package enumerate

import (
	"cmp"
	"fmt"
	"iter"

	"goprob/domain/core"
	"goprob/domain/probability"

	"gonum.org/v1/gonum/stat/combin"
)

// Space is a finite sample space described by its generator parameters.
// It never holds more than one outcome at a time.
type Space[T cmp.Ordered] struct {
	population []T
	k          int
	mode       probability.Mode
	size       int64
}

// NewSpace validates the parameters and computes the closed-form size.
// The population is copied; later changes to the caller's slice are not seen.
func NewSpace[T cmp.Ordered](population []T, k int, mode probability.Mode) (*Space[T], error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: must be non-negative, got %d", core.ErrDrawSize, k)
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownMode, mode)
	}

	seen := make(map[T]int, len(population))
	for i, v := range population {
		if j, dup := seen[v]; dup {
			return nil, fmt.Errorf("%w: %v at positions %d and %d", core.ErrDuplicateElement, v, j, i)
		}
		seen[v] = i
	}

	size, err := Size(len(population), k, mode)
	if err != nil {
		return nil, err
	}

	pop := make([]T, len(population))
	copy(pop, population)
	return &Space[T]{population: pop, k: k, mode: mode, size: size}, nil
}

// Size returns the closed-form number of outcomes
func (s *Space[T]) Size() int64 { return s.size }

// Mode returns the generator mode
func (s *Space[T]) Mode() probability.Mode { return s.mode }

// All streams every outcome exactly once in a deterministic order:
// lexicographic by population index for combinations and permutations,
// nested-tuple order (last position fastest) for products.
//
// The yielded outcome is a buffer that is refilled from index state before
// every step; clone it to keep it.
func (s *Space[T]) All() iter.Seq[probability.Outcome[T]] {
	return func(yield func(probability.Outcome[T]) bool) {
		out := make(probability.Outcome[T], s.k)
		for idx := range s.indices() {
			for i, p := range idx {
				out[i] = s.population[p]
			}
			if !yield(out[:s.k]) {
				return
			}
		}
	}
}

// indices streams population index tuples for the space's mode
func (s *Space[T]) indices() iter.Seq[[]int] {
	n, k := len(s.population), s.k
	switch {
	case s.size == 0:
		return func(func([]int) bool) {}
	case k == 0:
		return func(yield func([]int) bool) { yield([]int{}) }
	}

	switch s.mode {
	case probability.ModeCombinations:
		return combinationIndices(n, k)
	case probability.ModePermutations:
		return permutationIndices(n, k)
	default:
		return productIndices(n, k)
	}
}

func combinationIndices(n, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		gen := combin.NewCombinationGenerator(n, k)
		idx := make([]int, k)
		for gen.Next() {
			gen.Combination(idx)
			if !yield(idx) {
				return
			}
		}
	}
}

// permutationIndices walks k-permutations depth first, smallest free index
// first, which gives lexicographic order.
func permutationIndices(n, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		idx := make([]int, k)
		used := make([]bool, n)

		var walk func(pos int) bool
		walk = func(pos int) bool {
			if pos == k {
				return yield(idx)
			}
			for i := 0; i < n; i++ {
				if used[i] {
					continue
				}
				used[i] = true
				idx[pos] = i
				if !walk(pos + 1) {
					return false
				}
				used[i] = false
			}
			return true
		}
		walk(0)
	}
}

func productIndices(n, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		lens := make([]int, k)
		for i := range lens {
			lens[i] = n
		}
		gen := combin.NewCartesianGenerator(lens)
		idx := make([]int, k)
		for gen.Next() {
			gen.Product(idx)
			if !yield(idx) {
				return
			}
		}
	}
}

// Outcomes is shorthand for NewSpace followed by All
func Outcomes[T cmp.Ordered](population []T, k int, mode probability.Mode) (iter.Seq[probability.Outcome[T]], error) {
	space, err := NewSpace(population, k, mode)
	if err != nil {
		return nil, err
	}
	return space.All(), nil
}
