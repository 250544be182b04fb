// Package varred applies variance-reduction adjustments to experiment
// metrics: CUPED/CUPAC covariate adjustment and the delta-method variance
// approximation for transformed metrics. All operations return fresh slices
// and never mutate their inputs.
package varred

import (
	"gonum.org/v1/gonum/stat"

	"statlab/domain/core"
	"statlab/domain/stats"
)

// CUPEDAdjust removes the linear component of the covariate from the
// outcome:
//
//	theta    = cov(covariate, outcome) / var(covariate)
//	adjusted = outcome - theta * (covariate - mean(covariate))
//
// The adjusted series has the same mean as the outcome and, when the
// covariate is correlated with the outcome, strictly lower variance.
func CUPEDAdjust(outcome, covariate []float64) (stats.AdjustmentResult, error) {
	if len(outcome) != len(covariate) {
		return stats.AdjustmentResult{}, core.NewDimensionMismatchError("cuped adjustment", len(outcome), len(covariate))
	}
	if len(outcome) < 2 {
		return stats.AdjustmentResult{}, core.NewInsufficientDataError("cuped adjustment", 2, len(outcome))
	}

	covVar := stat.Variance(covariate, nil)
	if covVar == 0 {
		return stats.AdjustmentResult{}, core.NewDegenerateCovariateError("cuped")
	}

	theta := stat.Covariance(covariate, outcome, nil) / covVar
	return applyAdjustment("cuped", outcome, covariate, theta)
}

// CUPACAdjust applies a second adjustment pass with a caller-supplied
// coefficient, typically one fitted on pre-assignment data by an outcome
// model. Shape and degeneracy rules match CUPEDAdjust.
func CUPACAdjust(adjustedOutcome, additionalCovariate []float64, theta float64) (stats.AdjustmentResult, error) {
	if len(adjustedOutcome) != len(additionalCovariate) {
		return stats.AdjustmentResult{}, core.NewDimensionMismatchError("cupac adjustment", len(adjustedOutcome), len(additionalCovariate))
	}
	if len(adjustedOutcome) < 2 {
		return stats.AdjustmentResult{}, core.NewInsufficientDataError("cupac adjustment", 2, len(adjustedOutcome))
	}
	if stat.Variance(additionalCovariate, nil) == 0 {
		return stats.AdjustmentResult{}, core.NewDegenerateCovariateError("cupac")
	}
	return applyAdjustment("cupac", adjustedOutcome, additionalCovariate, theta)
}

func applyAdjustment(operation string, outcome, covariate []float64, theta float64) (stats.AdjustmentResult, error) {
	covMean := stat.Mean(covariate, nil)
	adjusted := make([]float64, len(outcome))
	for i := range outcome {
		adjusted[i] = outcome[i] - theta*(covariate[i]-covMean)
	}

	return stats.AdjustmentResult{
		Adjusted:       adjusted,
		Theta:          theta,
		VarianceBefore: stat.Variance(outcome, nil),
		VarianceAfter:  stat.Variance(adjusted, nil),
		SampleSize:     len(outcome),
	}, nil
}

// DeltaMethodVariance approximates the variance of transform(mean(sample)).
//
// The primary Variance field is variance(transform(sample)) / n: the
// transform is applied per observation and the variance of the transformed
// values is divided by n. This is an approximation of the textbook delta
// method, which linearizes instead:
// f'(mean)^2 * variance(sample) / n. The linearized value is returned
// alongside so the gap is visible to callers.
func DeltaMethodVariance(sample []float64, transform, transformDerivative func(float64) float64) (stats.DeltaVarianceResult, error) {
	if len(sample) < 2 {
		return stats.DeltaVarianceResult{}, core.NewInsufficientDataError("delta method variance", 2, len(sample))
	}
	if transform == nil || transformDerivative == nil {
		return stats.DeltaVarianceResult{}, core.NewValidationError("transform", "transform and derivative must be non-nil")
	}

	n := float64(len(sample))
	transformed := make([]float64, len(sample))
	for i, v := range sample {
		transformed[i] = transform(v)
	}

	mean := stat.Mean(sample, nil)
	d := transformDerivative(mean)

	return stats.DeltaVarianceResult{
		Variance:           stat.Variance(transformed, nil) / n,
		LinearizedVariance: d * d * stat.Variance(sample, nil) / n,
		TransformedMean:    transform(mean),
		SampleSize:         len(sample),
	}, nil
}
