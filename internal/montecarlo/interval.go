package montecarlo

import (
	"fmt"
	"math"

	"goprob/domain/core"
	"goprob/domain/probability"

	"gonum.org/v1/gonum/stat/distuv"
)

// zScore returns the two-sided standard normal critical value for level
func zScore(level float64) (float64, error) {
	if !(level > 0 && level < 1) {
		return 0, core.NewParameterError("confidence level", fmt.Sprintf("must be in (0,1), got %v", level))
	}
	return distuv.UnitNormal.Quantile(1 - (1-level)/2), nil
}

// NormalInterval is the Wald interval p ± z·sqrt(p(1-p)/n), clipped to [0,1]
func NormalInterval(est probability.Estimate, level float64) (probability.Interval, error) {
	z, err := zScore(level)
	if err != nil {
		return probability.Interval{}, err
	}
	if est.Trials < 1 {
		return probability.Interval{}, fmt.Errorf("%w: interval needs at least one trial", core.ErrTrialCount)
	}

	p := est.Probability()
	half := z * est.StdErr()
	return probability.Interval{
		Lower: math.Max(0, p-half),
		Upper: math.Min(1, p+half),
		Level: level,
	}, nil
}

// WilsonInterval stays informative when hits are near 0 or n, where the
// Wald interval collapses to a point.
func WilsonInterval(est probability.Estimate, level float64) (probability.Interval, error) {
	z, err := zScore(level)
	if err != nil {
		return probability.Interval{}, err
	}
	if est.Trials < 1 {
		return probability.Interval{}, fmt.Errorf("%w: interval needs at least one trial", core.ErrTrialCount)
	}

	n := float64(est.Trials)
	p := est.Probability()
	z2 := z * z
	denom := 1 + z2/n
	centre := (p + z2/(2*n)) / denom
	half := z * math.Sqrt(p*(1-p)/n+z2/(4*n*n)) / denom
	return probability.Interval{
		Lower: math.Max(0, centre-half),
		Upper: math.Min(1, centre+half),
		Level: level,
	}, nil
}
