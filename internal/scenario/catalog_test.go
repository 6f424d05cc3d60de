package scenario

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"goprob/domain/core"
	"goprob/domain/probability"
	"goprob/internal/montecarlo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishedExactCounts(t *testing.T) {
	tests := []struct {
		name     string
		matching int64
		total    int64
	}{
		{FourSixesInSevenDice, 4936, 279936},
		{DiceSum35, 1667, 279936},
		{FullHouse, 3744, 2598960},
		{FourJacks, 48, 2598960},
		{ExactlyOneAce, 778320, 2598960},
		{FourOfAKind, 13, 270725},
		{TwoPairs, 2808, 270725},
		{NeighboursInQueue, 725760, 3628800},
		{NeighboursInQueueFive, 48, 120},
		{NoRepeatNeighbours, 3750, 7776},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Lookup(tt.name)
			require.NoError(t, err)
			require.True(t, s.HasExact())

			result, err := s.Exact(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.matching, result.Matching)
			assert.Equal(t, tt.total, result.Total)
		})
	}
}

func TestSimulationsAgreeWithReference(t *testing.T) {
	const trials = 200000
	ctx := context.Background()

	for _, s := range All() {
		if !s.HasSimulation() {
			continue
		}
		t.Run(s.Name, func(t *testing.T) {
			reference := s.Reference
			if s.HasExact() {
				exact, err := s.Exact(ctx)
				require.NoError(t, err)
				reference = exact.Probability()
			}

			e := montecarlo.NewEstimator(rand.New(rand.NewSource(core.DeriveSeed(2024, s.Name))))
			est, err := s.Simulate(ctx, e, trials)
			require.NoError(t, err)
			assert.Equal(t, int64(trials), est.Trials)

			scale := 1.0
			if s.Scaled() {
				scale = est.Scale
			}
			p := reference / scale
			tolerance := scale * (5*math.Sqrt(p*(1-p)/trials) + 1e-9)
			assert.InDelta(t, reference, est.Value(), tolerance)
		})
	}
}

func TestMontyHallSwitchBeatsStick(t *testing.T) {
	ctx := context.Background()
	stick, err := Lookup(MontyHallStick)
	require.NoError(t, err)
	swap, err := Lookup(MontyHallSwitch)
	require.NoError(t, err)

	stickEst, err := stick.Simulate(ctx, montecarlo.NewEstimator(rand.New(rand.NewSource(1))), 0)
	require.NoError(t, err)
	swapEst, err := swap.Simulate(ctx, montecarlo.NewEstimator(rand.New(rand.NewSource(1))), 0)
	require.NoError(t, err)

	assert.Equal(t, int64(LargeDefaultTrials), swapEst.Trials)
	assert.InDelta(t, 1.0/3.0, stickEst.Probability(), 5/math.Sqrt(LargeDefaultTrials))
	assert.InDelta(t, 2.0/3.0, swapEst.Probability(), 5/math.Sqrt(LargeDefaultTrials))
}

func TestCircleIntersectionIsScaled(t *testing.T) {
	s, err := Lookup(CircleIntersectionArea)
	require.NoError(t, err)
	assert.True(t, s.Scaled())
	assert.False(t, s.HasExact())

	est, err := s.Simulate(context.Background(), montecarlo.NewEstimator(rand.New(rand.NewSource(3))), 1000)
	require.NoError(t, err)
	assert.Equal(t, 24.0, est.Scale)

	_, err = s.Exact(context.Background())
	assert.Error(t, err)
}

func TestConvergeThroughScenario(t *testing.T) {
	s, err := Lookup(OneBehindTen)
	require.NoError(t, err)

	conv, err := s.Converge(context.Background(), montecarlo.NewEstimator(rand.New(rand.NewSource(9))), 8, 5000)
	require.NoError(t, err)
	assert.Len(t, conv.Values, 8)
	assert.InDelta(t, 0.5, conv.Mean, 0.02)
}

func TestLookup(t *testing.T) {
	s, err := Lookup("  Full-House ")
	require.NoError(t, err)
	assert.Equal(t, FullHouse, s.Name)

	_, err = Lookup("royal-flush")
	assert.ErrorIs(t, err, core.ErrScenarioNotFound)
	assert.True(t, core.IsNotFoundError(err))

	_, err = Lookup("")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCatalogueIsSorted(t *testing.T) {
	names := Names()
	require.Len(t, names, 16)
	all := All()
	require.Len(t, all, len(names))
	for i, s := range all {
		assert.Equal(t, names[i], s.Name)
		assert.NotEmpty(t, s.Description)
		assert.Positive(t, s.DefaultTrials)
	}
}

func TestConvergeScalesAreas(t *testing.T) {
	s, err := Lookup(CircleIntersectionArea)
	require.NoError(t, err)

	conv, err := s.Converge(context.Background(), montecarlo.NewEstimator(rand.New(rand.NewSource(4))), 4, 20000)
	require.NoError(t, err)
	assert.Equal(t, 24.0, conv.Pooled.Scale)
	assert.InDelta(t, s.Reference, conv.Mean, 0.2)
	assert.InDelta(t, conv.Pooled.Value(), conv.Mean, 1e-9)
	for _, v := range conv.Values {
		assert.Greater(t, v, 1.0)
	}
}

func TestOverdrawnMirrorFailsInsteadOfPanicking(t *testing.T) {
	s := Scenario{Name: "three-from-two", DefaultTrials: 10}
	withMirror(&s, []int{1, 2}, 3, probability.ModeCombinations,
		probability.Event(func(probability.Outcome[int]) bool { return true }))

	exact, err := s.Exact(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), exact.Total)

	e := montecarlo.NewEstimator(rand.New(rand.NewSource(1)))
	assert.NotPanics(t, func() {
		_, err = s.Simulate(context.Background(), e, 10)
	})
	assert.ErrorIs(t, err, core.ErrDrawSize)

	_, err = s.Converge(context.Background(), e, 2, 10)
	assert.ErrorIs(t, err, core.ErrDrawSize)
	assert.True(t, core.IsParameterError(err))
}
