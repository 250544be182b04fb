// Package descriptive provides the pure summary statistics the estimators
// and variance reducers are built on. All functions are stateless and never
// mutate their input.
package descriptive

import (
	"sort"

	"github.com/montanaflynn/stats"

	"statlab/domain/core"
)

// Mean returns the arithmetic mean of the sample.
func Mean(sample []float64) (float64, error) {
	if len(sample) < 1 {
		return 0, core.NewInsufficientDataError("mean", 1, len(sample))
	}
	return stats.Mean(sample)
}

// SampleVariance returns the unbiased variance with denominator n-1.
func SampleVariance(sample []float64) (float64, error) {
	if len(sample) < 2 {
		return 0, core.NewInsufficientDataError("sample variance", 2, len(sample))
	}
	return stats.SampleVariance(sample)
}

// PopulationVariance returns the variance with denominator n.
func PopulationVariance(sample []float64) (float64, error) {
	if len(sample) < 1 {
		return 0, core.NewInsufficientDataError("population variance", 1, len(sample))
	}
	return stats.PopulationVariance(sample)
}

// StandardDeviation returns the sample standard deviation (n-1 denominator).
func StandardDeviation(sample []float64) (float64, error) {
	if len(sample) < 2 {
		return 0, core.NewInsufficientDataError("standard deviation", 2, len(sample))
	}
	return stats.StandardDeviationSample(sample)
}

// Range returns max - min.
func Range(sample []float64) (float64, error) {
	if len(sample) < 1 {
		return 0, core.NewInsufficientDataError("range", 1, len(sample))
	}
	min, err := stats.Min(sample)
	if err != nil {
		return 0, err
	}
	max, err := stats.Max(sample)
	if err != nil {
		return 0, err
	}
	return max - min, nil
}

// InterquartileRange returns the 75th percentile minus the 25th percentile.
func InterquartileRange(sample []float64) (float64, error) {
	q75, err := Percentile(sample, 75)
	if err != nil {
		return 0, err
	}
	q25, err := Percentile(sample, 25)
	if err != nil {
		return 0, err
	}
	return q75 - q25, nil
}

// Percentile returns the p-th percentile (p in [0, 100]) using linear
// interpolation between order statistics, the convention of the standard
// statistical packages. montanaflynn's Percentile uses a nearest-rank
// variant, so the interpolating form lives here to stay drop-in compatible.
func Percentile(sample []float64, p float64) (float64, error) {
	if len(sample) < 1 {
		return 0, core.NewInsufficientDataError("percentile", 1, len(sample))
	}
	if p < 0 || p > 100 {
		return 0, core.NewValidationError("percentile", "must be in [0, 100]")
	}

	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0], nil
	}

	// Fractional rank h = (n-1) * p/100, interpolated between neighbors.
	h := float64(len(sorted)-1) * p / 100
	lo := int(h)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1], nil
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo]), nil
}
