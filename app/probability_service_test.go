package app

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"testing"

	"goprob/adapters/rng"
	"goprob/domain/core"
	"goprob/internal"
	"goprob/internal/scenario"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRNGPort records stream requests and hands out fresh generators
type MockRNGPort struct {
	mock.Mock
}

func (m *MockRNGPort) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	args := m.Called(ctx, name, seed)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(core.DeriveSeed(seed, name))), nil
}

func (m *MockRNGPort) Stream(ctx context.Context, runID, scenario string, baseSeed int64) (*rand.Rand, error) {
	args := m.Called(ctx, runID, scenario, baseSeed)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(core.DeriveSeed(baseSeed, runID, scenario))), nil
}

func quietLogger() *internal.Logger {
	return internal.NewLoggerTo(&bytes.Buffer{}, internal.LogLevelError)
}

func newService() *ProbabilityService {
	return NewProbabilityService(rng.NewStreamAdapter(), quietLogger(), 0.95)
}

// cheap scenarios keep the batch tests fast
var cheap = []string{
	scenario.NeighboursInQueueFive,
	scenario.NoRepeatNeighbours,
	scenario.OneBehindTen,
	scenario.CircleIntersectionArea,
}

func TestExact(t *testing.T) {
	svc := newService()

	res, err := svc.Exact(context.Background(), scenario.FourSixesInSevenDice)
	require.NoError(t, err)
	require.NotNil(t, res.Exact)
	assert.Equal(t, int64(4936), res.Exact.Matching)
	assert.Equal(t, int64(279936), res.Exact.Total)
	assert.InDelta(t, 4936.0/279936.0, res.Reference, 1e-12)
	assert.NotEmpty(t, res.RunID)
	assert.Nil(t, res.Estimate)

	_, err = svc.Exact(context.Background(), scenario.MontyHallSwitch)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	_, err = svc.Exact(context.Background(), "royal-flush")
	assert.ErrorIs(t, err, core.ErrScenarioNotFound)
}

func TestSimulateIsReproducible(t *testing.T) {
	svc := newService()
	req := SimulationRequest{Scenario: scenario.OneBehindTen, Trials: 20000, Seed: 77}

	first, err := svc.Simulate(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Simulate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, *first.Estimate, *second.Estimate)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, int64(77), first.Seed)
	require.NotNil(t, first.Interval)
	assert.True(t, first.Interval.Contains(first.Estimate.Value()))
	assert.Equal(t, 0.95, first.Interval.Level)
}

func TestSimulateScaledInterval(t *testing.T) {
	svc := newService()

	res, err := svc.Simulate(context.Background(), SimulationRequest{Scenario: scenario.CircleIntersectionArea, Trials: 50000, Seed: 5})
	require.NoError(t, err)
	assert.Equal(t, 24.0, res.Estimate.Scale)
	assert.Greater(t, res.Interval.Upper, 1.0)
	assert.True(t, res.Interval.Contains(res.Estimate.Value()))
	assert.InDelta(t, res.Reference, res.Estimate.Value(), 0.2)
}

func TestSimulateUsesRunStreamWhenReplaying(t *testing.T) {
	port := &MockRNGPort{}
	runID := core.RunID("run-1")
	port.On("Stream", mock.Anything, "run-1", scenario.OneBehindTen, int64(3)).Return(nil).Once()

	svc := NewProbabilityService(port, quietLogger(), 0.95)
	res, err := svc.Simulate(context.Background(), SimulationRequest{
		Scenario: scenario.OneBehindTen,
		Trials:   1000,
		Seed:     3,
		RunID:    runID,
	})
	require.NoError(t, err)
	assert.Equal(t, runID, res.RunID)
	port.AssertExpectations(t)
	port.AssertNotCalled(t, "SeededStream", mock.Anything, mock.Anything, mock.Anything)
}

func TestSimulateStreamFailure(t *testing.T) {
	port := &MockRNGPort{}
	boom := errors.New("entropy exhausted")
	port.On("SeededStream", mock.Anything, scenario.OneBehindTen, int64(1)).Return(boom)

	svc := NewProbabilityService(port, quietLogger(), 0.95)
	_, err := svc.Simulate(context.Background(), SimulationRequest{Scenario: scenario.OneBehindTen, Seed: 1})
	assert.ErrorIs(t, err, boom)

	_, err = NewProbabilityService(nil, nil, 0.95).Simulate(context.Background(), SimulationRequest{Scenario: scenario.OneBehindTen})
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestConverge(t *testing.T) {
	svc := newService()

	conv, err := svc.Converge(context.Background(), SimulationRequest{Scenario: scenario.OneBehindTen, Trials: 4000, Seed: 11}, 6)
	require.NoError(t, err)
	assert.Len(t, conv.Values, 6)
	assert.Equal(t, int64(24000), conv.Pooled.Trials)
	assert.InDelta(t, 0.5, conv.Mean, 0.03)

	_, err = svc.Converge(context.Background(), SimulationRequest{Scenario: scenario.OneBehindTen, Trials: 10}, 0)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestRunAllGivesEachScenarioItsOwnStream(t *testing.T) {
	port := &MockRNGPort{}
	for _, name := range cheap {
		port.On("SeededStream", mock.Anything, name, int64(42)).Return(nil).Once()
	}

	svc := NewProbabilityService(port, quietLogger(), 0.95)
	batch, err := svc.RunAll(context.Background(), BatchRequest{
		Scenarios: cheap,
		Trials:    2000,
		Seed:      42,
		Workers:   3,
		Exact:     true,
		Simulate:  true,
	})
	require.NoError(t, err)
	port.AssertExpectations(t)

	require.Len(t, batch.Results, len(cheap))
	for i, res := range batch.Results {
		assert.Equal(t, cheap[i], res.Scenario)
		assert.Equal(t, batch.RunID, res.RunID)
		require.NotNil(t, res.Estimate, res.Scenario)
		assert.Equal(t, int64(2000), res.Estimate.Trials)
	}
	assert.NotNil(t, batch.Results[0].Exact)
	assert.Nil(t, batch.Results[3].Exact)
	assert.False(t, batch.Fingerprint.IsEmpty())
	assert.False(t, batch.StartedAt.IsZero())
}

func TestRunOneStampsTheBatchRunID(t *testing.T) {
	port := &MockRNGPort{}
	port.On("SeededStream", mock.Anything, scenario.NeighboursInQueueFive, int64(5)).Return(nil).Once()

	sc, err := scenario.Lookup(scenario.NeighboursInQueueFive)
	require.NoError(t, err)

	svc := NewProbabilityService(port, quietLogger(), 0.95)
	res, err := svc.runOne(context.Background(), sc, BatchRequest{Trials: 500, Seed: 5, Exact: true, Simulate: true}, "batch-7")
	require.NoError(t, err)
	port.AssertExpectations(t)
	port.AssertNotCalled(t, "Stream", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	assert.Equal(t, core.RunID("batch-7"), res.RunID)
	require.NotNil(t, res.Exact)
	assert.Equal(t, int64(48), res.Exact.Matching)
	require.NotNil(t, res.Estimate)
	assert.Equal(t, int64(500), res.Estimate.Trials)
	assert.Equal(t, int64(5), res.Seed)
}

func TestRunAllFingerprintIsStable(t *testing.T) {
	svc := newService()
	req := BatchRequest{Scenarios: cheap, Trials: 1000, Seed: 9, Workers: 4, Simulate: true}

	first, err := svc.RunAll(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.RunAll(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.NotEqual(t, first.RunID, second.RunID)

	req.Seed = 10
	third, err := svc.RunAll(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, first.Fingerprint, third.Fingerprint)
}

func TestRunAllRejects(t *testing.T) {
	svc := newService()

	_, err := svc.RunAll(context.Background(), BatchRequest{Scenarios: cheap})
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	_, err = svc.RunAll(context.Background(), BatchRequest{Scenarios: []string{"nope"}, Exact: true})
	assert.ErrorIs(t, err, core.ErrScenarioNotFound)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.RunAll(ctx, BatchRequest{Scenarios: cheap, Simulate: true, Trials: 100})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSelectScenariosDeduplicates(t *testing.T) {
	got, err := selectScenarios([]string{scenario.FullHouse, "FULL-HOUSE", scenario.TwoPairs})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, scenario.FullHouse, got[0].Name)

	all, err := selectScenarios(nil)
	require.NoError(t, err)
	assert.Len(t, all, len(scenario.Names()))
}
