package montecarlo

import (
	"context"
	"fmt"

	"goprob/domain/core"
	"goprob/domain/probability"

	"github.com/montanaflynn/stats"
)

// Convergence summarizes repeated independent estimates of one event
type Convergence struct {
	Batches  int                  `json:"batches"`
	PerBatch int                  `json:"per_batch"`
	Pooled   probability.Estimate `json:"pooled"`
	Mean     float64              `json:"mean"`
	StdDev   float64              `json:"std_dev"`
	Min      float64              `json:"min"`
	Max      float64              `json:"max"`
	Values   []float64            `json:"values"`
}

// Converge runs batches estimates of perBatch trials each on the same
// estimator and summarizes the spread of the batch probabilities. The
// spread shrinks roughly as 1/sqrt(perBatch).
func Converge[T any](ctx context.Context, e *Estimator, trial Trial[T], batches, perBatch int, pred probability.Predicate[T]) (Convergence, error) {
	if batches < 1 {
		return Convergence{}, core.NewParameterError("batches", fmt.Sprintf("must be at least 1, got %d", batches))
	}

	conv := Convergence{
		Batches:  batches,
		PerBatch: perBatch,
		Values:   make([]float64, 0, batches),
	}
	for b := 0; b < batches; b++ {
		est, err := Estimate(ctx, e, trial, perBatch, pred)
		if err != nil {
			return Convergence{}, fmt.Errorf("batch %d: %w", b, err)
		}
		conv.Pooled = conv.Pooled.Merge(est)
		conv.Values = append(conv.Values, est.Probability())
	}

	data := stats.Float64Data(conv.Values)
	var err error
	if conv.Mean, err = stats.Mean(data); err != nil {
		return Convergence{}, err
	}
	if conv.Min, err = stats.Min(data); err != nil {
		return Convergence{}, err
	}
	if conv.Max, err = stats.Max(data); err != nil {
		return Convergence{}, err
	}
	if batches > 1 {
		if conv.StdDev, err = stats.StandardDeviationSample(data); err != nil {
			return Convergence{}, err
		}
	}

	return conv, nil
}
