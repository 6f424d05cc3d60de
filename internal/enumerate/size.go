package enumerate

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"

	"goprob/domain/core"
	"goprob/domain/probability"

	"gonum.org/v1/gonum/stat/combin"
)

// combin.Binomial multiplies before it divides; up to this n every
// intermediate product stays inside int64.
const maxDirectBinomialN = 60

// combin.NumPermutations is exact up to 20! which is the largest factorial in int64.
const maxDirectPermutationN = 20

// Size returns the closed-form cardinality of a sample space:
// C(n,k) for combinations, n!/(n-k)! for permutations and n^k for products.
// Draws larger than the population give an empty space, not an error.
func Size(n, k int, mode probability.Mode) (int64, error) {
	if n < 0 {
		return 0, core.NewParameterError("population size", fmt.Sprintf("must be non-negative, got %d", n))
	}
	if k < 0 {
		return 0, fmt.Errorf("%w: must be non-negative, got %d", core.ErrDrawSize, k)
	}

	switch mode {
	case probability.ModeCombinations:
		if k > n {
			return 0, nil
		}
		if n <= maxDirectBinomialN {
			return int64(combin.Binomial(n, k)), nil
		}
		b := new(big.Int).Binomial(int64(n), int64(k))
		if !b.IsInt64() {
			return 0, fmt.Errorf("%w: C(%d,%d)", core.ErrSpaceTooLarge, n, k)
		}
		return b.Int64(), nil

	case probability.ModePermutations:
		if k > n {
			return 0, nil
		}
		if n <= maxDirectPermutationN {
			return int64(combin.NumPermutations(n, k)), nil
		}
		p := uint64(1)
		for i := n - k + 1; i <= n; i++ {
			var ok bool
			if p, ok = mulChecked(p, uint64(i)); !ok {
				return 0, fmt.Errorf("%w: P(%d,%d)", core.ErrSpaceTooLarge, n, k)
			}
		}
		return int64(p), nil

	case probability.ModeProduct:
		p := uint64(1)
		for i := 0; i < k; i++ {
			var ok bool
			if p, ok = mulChecked(p, uint64(n)); !ok {
				return 0, fmt.Errorf("%w: %d^%d", core.ErrSpaceTooLarge, n, k)
			}
		}
		return int64(p), nil
	}

	return 0, fmt.Errorf("%w: %q", core.ErrUnknownMode, mode)
}

// mulChecked multiplies and reports false once the product leaves int64
func mulChecked(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 || lo > math.MaxInt64 {
		return 0, false
	}
	return lo, true
}
