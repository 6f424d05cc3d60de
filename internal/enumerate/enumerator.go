package enumerate

import (
	"cmp"
	"context"
	"fmt"

	"goprob/domain/core"
	"goprob/domain/probability"
)

// cancelCheckInterval is how many outcomes pass between context checks
const cancelCheckInterval = 1 << 16

// Count enumerates the sample space and counts the outcomes matching pred.
// It streams the space and never materializes it.
func Count[T cmp.Ordered](population []T, k int, mode probability.Mode, pred probability.Predicate[T]) (probability.ExactResult, error) {
	return CountContext(context.Background(), population, k, mode, pred)
}

// CountContext is Count with cooperative cancellation between outcomes
func CountContext[T cmp.Ordered](ctx context.Context, population []T, k int, mode probability.Mode, pred probability.Predicate[T]) (probability.ExactResult, error) {
	if pred == nil {
		return probability.ExactResult{}, core.NewParameterError("predicate", "must not be nil")
	}
	space, err := NewSpace(population, k, mode)
	if err != nil {
		return probability.ExactResult{}, err
	}
	return CountSpace(ctx, space, pred)
}

// CountSpace runs pred over an already validated space
func CountSpace[T cmp.Ordered](ctx context.Context, space *Space[T], pred probability.Predicate[T]) (probability.ExactResult, error) {
	if pred == nil {
		return probability.ExactResult{}, core.NewParameterError("predicate", "must not be nil")
	}

	var total, matching int64
	for outcome := range space.All() {
		if total%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return probability.ExactResult{}, fmt.Errorf("enumeration stopped after %d outcomes: %w", total, err)
			}
		}

		ok, err := pred(outcome)
		if err != nil {
			return probability.ExactResult{}, &probability.PredicateError{Index: total, Err: err}
		}
		if ok {
			matching++
		}
		total++
	}

	if total != space.Size() {
		return probability.ExactResult{}, core.NewCountMismatchError(total, space.Size())
	}

	return probability.ExactResult{
		Matching: matching,
		Total:    total,
		Mode:     space.Mode(),
		N:        len(space.population),
		K:        space.k,
	}, nil
}
