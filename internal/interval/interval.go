// Package interval builds confidence intervals for means, mean differences,
// and proportions. Critical values come from the DistributionPort
// collaborator; no approximation tables live here.
package interval

import (
	"math"

	"statlab/domain/core"
	"statlab/domain/stats"
	"statlab/internal/descriptive"
	"statlab/ports"
)

// Estimator computes confidence intervals
type Estimator struct {
	dist ports.DistributionPort
}

// NewEstimator creates an interval estimator backed by the given distributions
func NewEstimator(dist ports.DistributionPort) *Estimator {
	return &Estimator{dist: dist}
}

// MeanIntervalKnownVariance returns mean(sample) +/- z * sigma / sqrt(n)
// where z is the two-tailed standard normal critical value for the given
// confidence level (0.95 -> z ~= 1.959964).
func (e *Estimator) MeanIntervalKnownVariance(sample []float64, populationStdDev, confidenceLevel float64) (stats.Interval, error) {
	if err := validateConfidenceLevel(confidenceLevel); err != nil {
		return stats.Interval{}, err
	}
	if populationStdDev < 0 {
		return stats.Interval{}, core.NewValidationError("populationStdDev", "must be non-negative")
	}
	mean, err := descriptive.Mean(sample)
	if err != nil {
		return stats.Interval{}, err
	}

	n := len(sample)
	z := e.dist.NormalQuantile(twoTailedQuantile(confidenceLevel))
	margin := z * populationStdDev / math.Sqrt(float64(n))
	return stats.NewInterval(mean, margin, z, confidenceLevel, n), nil
}

// MeanIntervalUnknownVariance returns mean(sample) +/- t * s / sqrt(n) where
// t is the two-tailed Student-t critical value with n-1 degrees of freedom.
func (e *Estimator) MeanIntervalUnknownVariance(sample []float64, confidenceLevel float64) (stats.Interval, error) {
	if err := validateConfidenceLevel(confidenceLevel); err != nil {
		return stats.Interval{}, err
	}
	if len(sample) < 2 {
		return stats.Interval{}, core.NewInsufficientDataError("mean interval (unknown variance)", 2, len(sample))
	}
	mean, err := descriptive.Mean(sample)
	if err != nil {
		return stats.Interval{}, err
	}
	stdDev, err := descriptive.StandardDeviation(sample)
	if err != nil {
		return stats.Interval{}, err
	}

	n := len(sample)
	t := e.dist.TQuantile(twoTailedQuantile(confidenceLevel), float64(n-1))
	margin := t * stdDev / math.Sqrt(float64(n))
	return stats.NewInterval(mean, margin, t, confidenceLevel, n), nil
}

// TwoMeanDifferenceInterval returns (meanA - meanB) +/- t * sqrt(varA/nA + varB/nB)
// for two independent samples.
//
// Degrees of freedom are the pooled approximation nA + nB - 2, not the exact
// Welch-Satterthwaite value.
func (e *Estimator) TwoMeanDifferenceInterval(sampleA, sampleB []float64, confidenceLevel float64) (stats.Interval, error) {
	if err := validateConfidenceLevel(confidenceLevel); err != nil {
		return stats.Interval{}, err
	}
	if len(sampleA) < 2 {
		return stats.Interval{}, core.NewInsufficientDataError("two-mean difference interval (sample A)", 2, len(sampleA))
	}
	if len(sampleB) < 2 {
		return stats.Interval{}, core.NewInsufficientDataError("two-mean difference interval (sample B)", 2, len(sampleB))
	}

	meanA, err := descriptive.Mean(sampleA)
	if err != nil {
		return stats.Interval{}, err
	}
	meanB, err := descriptive.Mean(sampleB)
	if err != nil {
		return stats.Interval{}, err
	}
	varA, err := descriptive.SampleVariance(sampleA)
	if err != nil {
		return stats.Interval{}, err
	}
	varB, err := descriptive.SampleVariance(sampleB)
	if err != nil {
		return stats.Interval{}, err
	}

	nA, nB := len(sampleA), len(sampleB)
	df := float64(nA + nB - 2)
	se := math.Sqrt(varA/float64(nA) + varB/float64(nB))
	t := e.dist.TQuantile(twoTailedQuantile(confidenceLevel), df)
	margin := t * se
	return stats.NewInterval(meanA-meanB, margin, t, confidenceLevel, nA+nB), nil
}

// WilsonScoreInterval returns the Wilson score interval for a binomial
// proportion. Unlike the normal-approximation interval it stays inside
// [0, 1] and behaves sensibly at extreme rates, which makes it the interval
// reported per variant in conversion analyses.
func (e *Estimator) WilsonScoreInterval(successes, trials int, confidenceLevel float64) (stats.Interval, error) {
	if err := validateConfidenceLevel(confidenceLevel); err != nil {
		return stats.Interval{}, err
	}
	if trials < 1 {
		return stats.Interval{}, core.NewInsufficientDataError("wilson score interval", 1, trials)
	}
	if successes < 0 || successes > trials {
		return stats.Interval{}, core.NewValidationError("successes", "must be in [0, trials]")
	}

	p := float64(successes) / float64(trials)
	n := float64(trials)
	z := e.dist.NormalQuantile(twoTailedQuantile(confidenceLevel))
	z2 := z * z

	denom := 1 + z2/n
	center := (p + z2/(2*n)) / denom
	spread := z * math.Sqrt(p*(1-p)/n+z2/(4*n*n)) / denom

	return stats.Interval{
		PointEstimate:   p,
		Lower:           center - spread,
		Upper:           center + spread,
		ConfidenceLevel: confidenceLevel,
		MarginOfError:   spread,
		CriticalValue:   z,
		SampleSize:      trials,
	}, nil
}

// twoTailedQuantile maps a confidence level to the upper-tail quantile
// probability, e.g. 0.95 -> 0.975.
func twoTailedQuantile(confidenceLevel float64) float64 {
	return 1 - (1-confidenceLevel)/2
}

func validateConfidenceLevel(confidenceLevel float64) error {
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		return core.NewDistributionError("confidenceLevel", confidenceLevel)
	}
	return nil
}
