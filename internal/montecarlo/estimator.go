package montecarlo

import (
	"context"
	"fmt"
	"math/rand"

	"goprob/domain/core"
	"goprob/domain/probability"
)

// cancelCheckInterval is how many trials pass between context checks
const cancelCheckInterval = 4096

// Estimator owns one random source for the length of its runs.
// It is not safe for concurrent use; give each goroutine its own Estimator.
type Estimator struct {
	rng *rand.Rand
}

// NewEstimator binds an estimator to rng
func NewEstimator(rng *rand.Rand) *Estimator {
	return &Estimator{rng: rng}
}

// Estimate runs n independent trials and counts those matching pred.
// This is the naive estimator: no variance reduction, no stratification.
func Estimate[T any](ctx context.Context, e *Estimator, trial Trial[T], n int, pred probability.Predicate[T]) (probability.Estimate, error) {
	if n < 1 {
		return probability.Estimate{}, fmt.Errorf("%w: must be at least 1, got %d", core.ErrTrialCount, n)
	}
	if e == nil || e.rng == nil {
		return probability.Estimate{}, core.NewParameterError("estimator", "needs a random source")
	}
	if trial == nil {
		return probability.Estimate{}, core.NewParameterError("trial", "must not be nil")
	}
	if pred == nil {
		return probability.Estimate{}, core.NewParameterError("predicate", "must not be nil")
	}

	var hits int64
	for i := 0; i < n; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return probability.Estimate{}, fmt.Errorf("simulation stopped after %d trials: %w", i, err)
			}
		}

		ok, err := pred(trial(e.rng))
		if err != nil {
			return probability.Estimate{}, &probability.PredicateError{Index: int64(i), Err: err}
		}
		if ok {
			hits++
		}
	}

	return probability.Estimate{Hits: hits, Trials: int64(n)}, nil
}
