package scenario

import (
	"cmp"
	"context"
	"fmt"

	"goprob/domain/probability"
	"goprob/internal/enumerate"
	"goprob/internal/montecarlo"
)

// Scenario is a named probability problem. It may carry an exact model, a
// simulation, or both; the element type of each is hidden behind closures so
// scenarios over dice, cards, people and points share one catalogue.
type Scenario struct {
	Name          string
	Description   string
	DefaultTrials int
	// Reference is the known probability (or scaled value) when the
	// scenario has no exact model; zero when unknown.
	Reference float64

	exact    func(ctx context.Context) (probability.ExactResult, error)
	simulate func(ctx context.Context, e *montecarlo.Estimator, trials int) (probability.Estimate, error)
	converge func(ctx context.Context, e *montecarlo.Estimator, batches, perBatch int) (montecarlo.Convergence, error)
	scale    float64
}

// HasExact reports whether the scenario can be enumerated
func (s Scenario) HasExact() bool { return s.exact != nil }

// HasSimulation reports whether the scenario can be simulated
func (s Scenario) HasSimulation() bool { return s.simulate != nil }

// Scaled reports whether simulation results are areas rather than probabilities
func (s Scenario) Scaled() bool { return s.scale != 0 }

// Exact enumerates the scenario's sample space
func (s Scenario) Exact(ctx context.Context) (probability.ExactResult, error) {
	if s.exact == nil {
		return probability.ExactResult{}, fmt.Errorf("scenario %s has no exact model", s.Name)
	}
	return s.exact(ctx)
}

// Simulate estimates the scenario with e; trials <= 0 selects DefaultTrials
func (s Scenario) Simulate(ctx context.Context, e *montecarlo.Estimator, trials int) (probability.Estimate, error) {
	if s.simulate == nil {
		return probability.Estimate{}, fmt.Errorf("scenario %s has no simulation", s.Name)
	}
	if trials <= 0 {
		trials = s.DefaultTrials
	}
	est, err := s.simulate(ctx, e, trials)
	if err != nil {
		return probability.Estimate{}, err
	}
	est.Scale = s.scale
	return est, nil
}

// Converge runs repeated simulation batches
func (s Scenario) Converge(ctx context.Context, e *montecarlo.Estimator, batches, perBatch int) (montecarlo.Convergence, error) {
	if s.converge == nil {
		return montecarlo.Convergence{}, fmt.Errorf("scenario %s has no simulation", s.Name)
	}
	conv, err := s.converge(ctx, e, batches, perBatch)
	if err != nil {
		return montecarlo.Convergence{}, err
	}
	conv.Pooled.Scale = s.scale
	if s.Scaled() {
		for i := range conv.Values {
			conv.Values[i] *= s.scale
		}
		conv.Mean *= s.scale
		conv.StdDev *= s.scale
		conv.Min *= s.scale
		conv.Max *= s.scale
	}
	return conv, nil
}

// withExact attaches an enumeration model
func withExact[T cmp.Ordered](s *Scenario, population []T, k int, mode probability.Mode, pred probability.Predicate[T]) {
	s.exact = func(ctx context.Context) (probability.ExactResult, error) {
		return enumerate.CountContext(ctx, population, k, mode, pred)
	}
}

// withSimulation attaches a trial generator. newTrial is called once per run
// so concurrent runs never share a trial's scratch buffers.
func withSimulation[T any](s *Scenario, newTrial func() (montecarlo.Trial[T], error), pred probability.Predicate[T]) {
	s.simulate = func(ctx context.Context, e *montecarlo.Estimator, trials int) (probability.Estimate, error) {
		trial, err := newTrial()
		if err != nil {
			return probability.Estimate{}, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		return montecarlo.Estimate(ctx, e, trial, trials, pred)
	}
	s.converge = func(ctx context.Context, e *montecarlo.Estimator, batches, perBatch int) (montecarlo.Convergence, error) {
		trial, err := newTrial()
		if err != nil {
			return montecarlo.Convergence{}, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		return montecarlo.Converge(ctx, e, trial, batches, perBatch, pred)
	}
}

// withMirror attaches an exact model and the simulation that samples the
// same space: with replacement for products, without for the rest.
func withMirror[T cmp.Ordered](s *Scenario, population []T, k int, mode probability.Mode, pred probability.Predicate[T]) {
	withExact(s, population, k, mode, pred)
	withSimulation(s, func() (montecarlo.Trial[T], error) {
		if mode == probability.ModeProduct {
			return montecarlo.SingleDraw(population, k)
		}
		return montecarlo.DrawWithoutReplacement(population, k)
	}, pred)
}
