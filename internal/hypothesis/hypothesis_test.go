package hypothesis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statlab/adapters/dist"
	"statlab/domain/core"
	"statlab/domain/stats"
)

func newTestTester() *Tester {
	return NewTester(dist.NewGonumDistributions())
}

func TestZTest(t *testing.T) {
	tester := newTestTester()

	// 50 values of 52 and 50 of 50: mean 51, so with sigma=10 and n=100 the
	// statistic is exactly (51-50)/(10/10) = 1 and p = 2*(1-Phi(1)).
	sample := make([]float64, 100)
	for i := range sample {
		if i < 50 {
			sample[i] = 52
		} else {
			sample[i] = 50
		}
	}

	result, err := tester.ZTest(sample, 50, 10, 0.05)
	require.NoError(t, err)

	assert.Equal(t, stats.TestZ, result.TestType)
	assert.InDelta(t, 1.0, result.Statistic, 1e-9)
	assert.InDelta(t, 0.317311, result.PValue, 1e-5)
	assert.Equal(t, stats.DecisionFailToReject, result.Decision)
}

func TestZTestValidation(t *testing.T) {
	tester := newTestTester()

	_, err := tester.ZTest([]float64{1, 2}, 0, 10, 1.5)
	assert.ErrorIs(t, err, core.ErrDistribution)

	_, err = tester.ZTest(nil, 0, 10, 0.05)
	assert.ErrorIs(t, err, core.ErrInsufficientData)

	_, err = tester.ZTest([]float64{1, 2}, 0, 0, 0.05)
	assert.Error(t, err)
}

func TestTTest(t *testing.T) {
	tester := newTestTester()

	// Mean equals the hypothesized mean: t = 0, p = 1.
	result, err := tester.TTest([]float64{1, 2, 3, 4, 5}, 3, 0.05)
	require.NoError(t, err)
	assert.Equal(t, stats.TestT, result.TestType)
	assert.InDelta(t, 0.0, result.Statistic, 1e-12)
	assert.InDelta(t, 1.0, result.PValue, 1e-9)
	assert.InDelta(t, 4.0, result.DegreesOfFreedom, 1e-12)
	assert.Equal(t, stats.DecisionFailToReject, result.Decision)

	// A far-off hypothesized mean must reject.
	far, err := tester.TTest([]float64{1, 2, 3, 4, 5}, 30, 0.05)
	require.NoError(t, err)
	assert.Equal(t, stats.DecisionRejectNull, far.Decision)
	assert.Less(t, far.Statistic, 0.0)
}

func TestTTestDegenerateSample(t *testing.T) {
	tester := newTestTester()

	_, err := tester.TTest([]float64{5, 5, 5, 5}, 4, 0.05)
	assert.ErrorIs(t, err, core.ErrDivisionByZero)

	_, err = tester.TTest([]float64{5}, 4, 0.05)
	assert.ErrorIs(t, err, core.ErrInsufficientData)
}

func TestChiSquareTest(t *testing.T) {
	tester := newTestTester()

	// chi^2 = (10-20)^2/20 + 0 + (30-20)^2/20 = 10 with df=2, and
	// 1 - CDF(10, 2) = exp(-5) ~= 0.0067379.
	result, err := tester.ChiSquareTest([]float64{10, 20, 30}, []float64{20, 20, 20}, 0.05)
	require.NoError(t, err)

	assert.Equal(t, stats.TestChiSquare, result.TestType)
	assert.InDelta(t, 10.0, result.Statistic, 1e-9)
	assert.InDelta(t, math.Exp(-5), result.PValue, 1e-6)
	assert.InDelta(t, 2.0, result.DegreesOfFreedom, 1e-12)
	assert.Equal(t, stats.DecisionRejectNull, result.Decision)
}

func TestChiSquareTestPerfectFit(t *testing.T) {
	tester := newTestTester()

	result, err := tester.ChiSquareTest([]float64{20, 20, 20}, []float64{20, 20, 20}, 0.05)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, result.Statistic, 1e-12)
	assert.InDelta(t, 1.0, result.PValue, 1e-9)
	assert.Equal(t, stats.DecisionFailToReject, result.Decision)
}

func TestChiSquareTestContractViolations(t *testing.T) {
	tester := newTestTester()

	_, err := tester.ChiSquareTest([]float64{1, 2, 3}, []float64{1, 2}, 0.05)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)

	_, err = tester.ChiSquareTest([]float64{1, 2, 3}, []float64{1, 0, 2}, 0.05)
	assert.ErrorIs(t, err, core.ErrDivisionByZero)
}

func TestTwoProportionZTest(t *testing.T) {
	tester := newTestTester()

	// Canonical A/B scenario: 500/10000 vs 600/10000 gives z ~= 3.10 and
	// p ~= 0.0019, rejecting at alpha = 0.05.
	result, err := tester.TwoProportionZTest(500, 10000, 600, 10000, 0.05)
	require.NoError(t, err)

	assert.Equal(t, stats.TestTwoProportionZ, result.TestType)
	assert.InDelta(t, 3.1023, result.Statistic, 0.001)
	assert.InDelta(t, 0.0019, result.PValue, 2e-4)
	assert.Equal(t, stats.DecisionRejectNull, result.Decision)
	assert.Equal(t, 20000, result.SampleSize)
}

func TestTwoProportionZTestDirection(t *testing.T) {
	tester := newTestTester()

	// Swapping the groups flips the sign but not the p-value.
	ab, err := tester.TwoProportionZTest(500, 10000, 600, 10000, 0.05)
	require.NoError(t, err)
	ba, err := tester.TwoProportionZTest(600, 10000, 500, 10000, 0.05)
	require.NoError(t, err)

	assert.InDelta(t, -ab.Statistic, ba.Statistic, 1e-12)
	assert.InDelta(t, ab.PValue, ba.PValue, 1e-12)
}

func TestTwoProportionZTestValidation(t *testing.T) {
	tester := newTestTester()

	_, err := tester.TwoProportionZTest(5, 0, 6, 10, 0.05)
	assert.ErrorIs(t, err, core.ErrInsufficientData)

	_, err = tester.TwoProportionZTest(11, 10, 6, 10, 0.05)
	assert.Error(t, err)

	// Identical degenerate rates leave a zero standard error.
	_, err = tester.TwoProportionZTest(0, 10, 0, 10, 0.05)
	assert.ErrorIs(t, err, core.ErrDivisionByZero)
}
