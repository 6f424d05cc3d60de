package app

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"goprob/domain/core"
	"goprob/domain/probability"
	"goprob/internal"
	"goprob/internal/montecarlo"
	"goprob/internal/scenario"
	"goprob/ports"

	"golang.org/x/sync/errgroup"
)

// ProbabilityService runs catalogue scenarios exactly and by simulation
type ProbabilityService struct {
	rngPort ports.RNGPort
	logger  *internal.Logger
	level   float64 // confidence level for reported intervals
}

// SimulationRequest defines the inputs for one reproducible simulation
type SimulationRequest struct {
	Scenario string
	Trials   int // 0 selects the scenario default
	Seed     int64
	RunID    core.RunID // optional; when set the stream is tied to this run
}

// ScenarioResult is everything known about one scenario after a run
type ScenarioResult struct {
	RunID       core.RunID               `json:"run_id"`
	Scenario    string                   `json:"scenario"`
	Description string                   `json:"description"`
	Exact       *probability.ExactResult `json:"exact,omitempty"`
	Estimate    *probability.Estimate    `json:"estimate,omitempty"`
	Interval    *probability.Interval    `json:"interval,omitempty"` // on the Value scale
	Reference   float64                  `json:"reference,omitempty"`
	Seed        int64                    `json:"seed"`
	RuntimeMs   int64                    `json:"runtime_ms"`
}

// BatchRequest selects scenarios and what to compute for each
type BatchRequest struct {
	Scenarios []string // empty runs the whole catalogue
	Trials    int
	Seed      int64
	Workers   int
	Exact     bool
	Simulate  bool
}

// BatchResult is the outcome of RunAll, in catalogue order
type BatchResult struct {
	RunID       core.RunID       `json:"run_id"`
	Results     []ScenarioResult `json:"results"`
	Fingerprint core.Hash        `json:"fingerprint"`
	StartedAt   core.Timestamp   `json:"started_at"`
	RuntimeMs   int64            `json:"runtime_ms"`
}

// NewProbabilityService creates a probability service
func NewProbabilityService(rngPort ports.RNGPort, logger *internal.Logger, confidenceLevel float64) *ProbabilityService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ProbabilityService{
		rngPort: rngPort,
		logger:  logger,
		level:   confidenceLevel,
	}
}

// Exact enumerates a scenario's sample space
func (s *ProbabilityService) Exact(ctx context.Context, name string) (*ScenarioResult, error) {
	sc, err := scenario.Lookup(name)
	if err != nil {
		return nil, err
	}
	if !sc.HasExact() {
		return nil, fmt.Errorf("%w: scenario %s has no exact model", core.ErrInvalidParameter, sc.Name)
	}

	return s.exact(ctx, sc, core.NewRunID())
}

func (s *ProbabilityService) exact(ctx context.Context, sc scenario.Scenario, runID core.RunID) (*ScenarioResult, error) {
	start := time.Now()
	result, err := sc.Exact(ctx)
	if err != nil {
		return nil, fmt.Errorf("exact %s: %w", sc.Name, err)
	}
	s.logger.Debug("exact %s: %d/%d in %s", sc.Name, result.Matching, result.Total, time.Since(start))

	return &ScenarioResult{
		RunID:       runID,
		Scenario:    sc.Name,
		Description: sc.Description,
		Exact:       &result,
		Reference:   result.Probability(),
		RuntimeMs:   time.Since(start).Milliseconds(),
	}, nil
}

// Simulate estimates a scenario by Monte Carlo using its own random stream
func (s *ProbabilityService) Simulate(ctx context.Context, req SimulationRequest) (*ScenarioResult, error) {
	sc, err := scenario.Lookup(req.Scenario)
	if err != nil {
		return nil, err
	}
	if !sc.HasSimulation() {
		return nil, fmt.Errorf("%w: scenario %s has no simulation", core.ErrInvalidParameter, sc.Name)
	}

	runID := req.RunID
	estimator, err := s.estimatorFor(ctx, runID, sc.Name, req.Seed)
	if err != nil {
		return nil, err
	}
	if runID == "" {
		runID = core.NewRunID()
	}

	return s.simulate(ctx, sc, estimator, req.Trials, req.Seed, runID)
}

func (s *ProbabilityService) simulate(ctx context.Context, sc scenario.Scenario, estimator *montecarlo.Estimator, trials int, seed int64, runID core.RunID) (*ScenarioResult, error) {
	start := time.Now()
	est, err := sc.Simulate(ctx, estimator, trials)
	if err != nil {
		return nil, fmt.Errorf("simulate %s: %w", sc.Name, err)
	}

	interval, err := montecarlo.WilsonInterval(est, s.level)
	if err != nil {
		return nil, fmt.Errorf("interval for %s: %w", sc.Name, err)
	}
	if sc.Scaled() {
		interval.Lower *= est.Scale
		interval.Upper *= est.Scale
	}
	s.logger.Debug("simulate %s: %d/%d hits (seed %d) in %s", sc.Name, est.Hits, est.Trials, seed, time.Since(start))

	return &ScenarioResult{
		RunID:       runID,
		Scenario:    sc.Name,
		Description: sc.Description,
		Estimate:    &est,
		Interval:    &interval,
		Reference:   sc.Reference,
		Seed:        seed,
		RuntimeMs:   time.Since(start).Milliseconds(),
	}, nil
}

// Converge runs batches of perBatch trials and summarizes their spread
func (s *ProbabilityService) Converge(ctx context.Context, req SimulationRequest, batches int) (*montecarlo.Convergence, error) {
	sc, err := scenario.Lookup(req.Scenario)
	if err != nil {
		return nil, err
	}
	if !sc.HasSimulation() {
		return nil, fmt.Errorf("%w: scenario %s has no simulation", core.ErrInvalidParameter, sc.Name)
	}

	estimator, err := s.estimatorFor(ctx, req.RunID, sc.Name, req.Seed)
	if err != nil {
		return nil, err
	}
	perBatch := req.Trials
	if perBatch <= 0 {
		perBatch = sc.DefaultTrials
	}

	conv, err := sc.Converge(ctx, estimator, batches, perBatch)
	if err != nil {
		return nil, fmt.Errorf("converge %s: %w", sc.Name, err)
	}
	s.logger.Debug("converge %s: %d batches, mean %.5f sd %.5f", sc.Name, batches, conv.Mean, conv.StdDev)
	return &conv, nil
}

// RunAll evaluates the selected scenarios concurrently. Every scenario gets
// its own estimator and stream; no random source is shared between workers.
func (s *ProbabilityService) RunAll(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	if !req.Exact && !req.Simulate {
		return nil, fmt.Errorf("%w: nothing to run, enable exact or simulate", core.ErrInvalidParameter)
	}

	scenarios, err := selectScenarios(req.Scenarios)
	if err != nil {
		return nil, err
	}

	workers := req.Workers
	if workers < 1 {
		workers = 1
	}

	started := core.Now()
	runID := core.NewRunID()
	results := make([]ScenarioResult, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sc := range scenarios {
		g.Go(func() error {
			res, err := s.runOne(gctx, sc, req, runID)
			if err != nil {
				return err
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("run %s: %d scenarios in %s", runID, len(results), started.Since())
	return &BatchResult{
		RunID:       runID,
		Results:     results,
		Fingerprint: Fingerprint(results),
		StartedAt:   started,
		RuntimeMs:   started.Since().Milliseconds(),
	}, nil
}

// runOne evaluates one scenario of a batch. Results carry the batch run ID;
// the stream stays keyed by seed and name so reruns reproduce.
func (s *ProbabilityService) runOne(ctx context.Context, sc scenario.Scenario, req BatchRequest, runID core.RunID) (*ScenarioResult, error) {
	start := time.Now()
	res := &ScenarioResult{
		RunID:       runID,
		Scenario:    sc.Name,
		Description: sc.Description,
		Reference:   sc.Reference,
		Seed:        req.Seed,
	}

	if req.Exact && sc.HasExact() {
		exact, err := s.exact(ctx, sc, runID)
		if err != nil {
			return nil, err
		}
		res.Exact = exact.Exact
		res.Reference = exact.Reference
	}

	if req.Simulate && sc.HasSimulation() {
		estimator, err := s.estimatorFor(ctx, "", sc.Name, req.Seed)
		if err != nil {
			return nil, err
		}
		sim, err := s.simulate(ctx, sc, estimator, req.Trials, req.Seed, runID)
		if err != nil {
			return nil, err
		}
		res.Estimate = sim.Estimate
		res.Interval = sim.Interval
	}

	res.RuntimeMs = time.Since(start).Milliseconds()
	return res, nil
}

// estimatorFor binds a fresh estimator to the scenario's stream
func (s *ProbabilityService) estimatorFor(ctx context.Context, runID core.RunID, name string, seed int64) (*montecarlo.Estimator, error) {
	if s.rngPort == nil {
		return nil, fmt.Errorf("%w: no random source configured", core.ErrInvalidParameter)
	}

	var (
		rng *rand.Rand
		err error
	)
	if runID != "" {
		rng, err = s.rngPort.Stream(ctx, runID.String(), name, seed)
	} else {
		rng, err = s.rngPort.SeededStream(ctx, name, seed)
	}
	if err != nil {
		return nil, fmt.Errorf("random stream for %s: %w", name, err)
	}
	return montecarlo.NewEstimator(rng), nil
}

func selectScenarios(names []string) ([]scenario.Scenario, error) {
	if len(names) == 0 {
		return scenario.All(), nil
	}
	out := make([]scenario.Scenario, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		sc, err := scenario.Lookup(name)
		if err != nil {
			return nil, err
		}
		if seen[sc.Name] {
			continue
		}
		seen[sc.Name] = true
		out = append(out, sc)
	}
	return out, nil
}

// Fingerprint hashes the numeric content of a batch so two runs with the
// same seed can be compared at a glance.
func Fingerprint(results []ScenarioResult) core.Hash {
	var data strings.Builder
	for _, r := range results {
		data.WriteString(r.Scenario)
		if r.Exact != nil {
			fmt.Fprintf(&data, "|e%d/%d", r.Exact.Matching, r.Exact.Total)
		}
		if r.Estimate != nil {
			fmt.Fprintf(&data, "|s%d/%d", r.Estimate.Hits, r.Estimate.Trials)
		}
		data.WriteByte('\n')
	}
	return core.NewHash([]byte(data.String()))
}
