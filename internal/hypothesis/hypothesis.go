// Package hypothesis implements the one-sample Z and t tests, the chi-square
// goodness-of-fit test, and the two-proportion Z-test used for A/B
// comparisons. Every invocation is stateless and ends in exactly one of two
// terminal decisions; ties on the significance threshold fail to reject.
package hypothesis

import (
	"math"

	"statlab/domain/core"
	"statlab/domain/stats"
	"statlab/internal/descriptive"
	"statlab/ports"
)

// Tester runs hypothesis tests
type Tester struct {
	dist ports.DistributionPort
}

// NewTester creates a hypothesis tester backed by the given distributions
func NewTester(dist ports.DistributionPort) *Tester {
	return &Tester{dist: dist}
}

// ZTest runs a one-sample two-tailed Z-test with known population standard
// deviation. The statistic is z = (mean - mu0) / (sigma / sqrt(n)) and the
// p-value is 2 * (1 - NormalCDF(|z|)).
func (t *Tester) ZTest(sample []float64, hypothesizedMean, populationStdDev, alpha float64) (stats.TestResult, error) {
	if err := validateAlpha(alpha); err != nil {
		return stats.TestResult{}, err
	}
	if populationStdDev <= 0 {
		return stats.TestResult{}, core.NewValidationError("populationStdDev", "must be positive")
	}
	mean, err := descriptive.Mean(sample)
	if err != nil {
		return stats.TestResult{}, err
	}

	n := len(sample)
	z := (mean - hypothesizedMean) / (populationStdDev / math.Sqrt(float64(n)))
	pValue := 2 * (1 - t.dist.NormalCDF(math.Abs(z)))
	return stats.NewTestResult(stats.TestZ, z, pValue, alpha, 0, n)
}

// TTest runs a one-sample two-tailed Student's t-test with n-1 degrees of
// freedom, using the sample standard deviation.
func (t *Tester) TTest(sample []float64, hypothesizedMean, alpha float64) (stats.TestResult, error) {
	if err := validateAlpha(alpha); err != nil {
		return stats.TestResult{}, err
	}
	if len(sample) < 2 {
		return stats.TestResult{}, core.NewInsufficientDataError("t-test", 2, len(sample))
	}
	mean, err := descriptive.Mean(sample)
	if err != nil {
		return stats.TestResult{}, err
	}
	stdDev, err := descriptive.StandardDeviation(sample)
	if err != nil {
		return stats.TestResult{}, err
	}
	if stdDev == 0 {
		return stats.TestResult{}, core.NewDivisionByZeroError("t-test", "sample standard deviation")
	}

	n := len(sample)
	df := float64(n - 1)
	tStat := (mean - hypothesizedMean) / (stdDev / math.Sqrt(float64(n)))
	pValue := 2 * (1 - t.dist.TCDF(math.Abs(tStat), df))
	return stats.NewTestResult(stats.TestT, tStat, pValue, alpha, df, n)
}

// ChiSquareTest runs a goodness-of-fit test over paired observed/expected
// counts. The statistic is sum((O-E)^2 / E) with k-1 degrees of freedom.
func (t *Tester) ChiSquareTest(observed, expected []float64, alpha float64) (stats.TestResult, error) {
	if err := validateAlpha(alpha); err != nil {
		return stats.TestResult{}, err
	}
	if len(observed) != len(expected) {
		return stats.TestResult{}, core.NewDimensionMismatchError("chi-square test", len(observed), len(expected))
	}
	if len(observed) < 2 {
		return stats.TestResult{}, core.NewInsufficientDataError("chi-square test", 2, len(observed))
	}

	chiSq := 0.0
	for i := range observed {
		if expected[i] == 0 {
			return stats.TestResult{}, core.NewDivisionByZeroError("chi-square test", "expected count")
		}
		diff := observed[i] - expected[i]
		chiSq += diff * diff / expected[i]
	}

	df := float64(len(observed) - 1)
	pValue := 1 - t.dist.ChiSquareCDF(chiSq, df)
	return stats.NewTestResult(stats.TestChiSquare, chiSq, pValue, alpha, df, len(observed))
}

// TwoProportionZTest compares two conversion rates with unpooled standard
// errors: z = (pB - pA) / sqrt(SE_A^2 + SE_B^2), two-tailed p-value.
// This is the A/B-testing primitive.
func (t *Tester) TwoProportionZTest(countA, nA, countB, nB int, alpha float64) (stats.TestResult, error) {
	if err := validateAlpha(alpha); err != nil {
		return stats.TestResult{}, err
	}
	if nA < 1 {
		return stats.TestResult{}, core.NewInsufficientDataError("two-proportion z-test (group A)", 1, nA)
	}
	if nB < 1 {
		return stats.TestResult{}, core.NewInsufficientDataError("two-proportion z-test (group B)", 1, nB)
	}
	if countA < 0 || countA > nA {
		return stats.TestResult{}, core.NewValidationError("countA", "must be in [0, nA]")
	}
	if countB < 0 || countB > nB {
		return stats.TestResult{}, core.NewValidationError("countB", "must be in [0, nB]")
	}

	pA := float64(countA) / float64(nA)
	pB := float64(countB) / float64(nB)
	seA2 := pA * (1 - pA) / float64(nA)
	seB2 := pB * (1 - pB) / float64(nB)
	se := math.Sqrt(seA2 + seB2)
	if se == 0 {
		return stats.TestResult{}, core.NewDivisionByZeroError("two-proportion z-test", "standard error")
	}

	z := (pB - pA) / se
	pValue := 2 * (1 - t.dist.NormalCDF(math.Abs(z)))
	return stats.NewTestResult(stats.TestTwoProportionZ, z, pValue, alpha, 0, nA+nB)
}

func validateAlpha(alpha float64) error {
	if alpha <= 0 || alpha >= 1 {
		return core.NewDistributionError("alpha", alpha)
	}
	return nil
}
