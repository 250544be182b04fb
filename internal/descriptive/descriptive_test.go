package descriptive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statlab/adapters/rng"
	"statlab/domain/core"
	"statlab/internal/testkit"
)

func TestMean(t *testing.T) {
	mean, err := Mean([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, mean, 1e-12)

	_, err = Mean(nil)
	assert.ErrorIs(t, err, core.ErrInsufficientData)
}

func TestVariances(t *testing.T) {
	sample := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	popVar, err := PopulationVariance(sample)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, popVar, 1e-12)

	sampVar, err := SampleVariance(sample)
	require.NoError(t, err)
	assert.InDelta(t, 32.0/7.0, sampVar, 1e-12)

	stdDev, err := StandardDeviation(sample)
	require.NoError(t, err)
	assert.InDelta(t, 2.13808993, stdDev, 1e-6)
}

func TestSampleVarianceNeedsTwoObservations(t *testing.T) {
	_, err := SampleVariance([]float64{1.0})
	assert.ErrorIs(t, err, core.ErrInsufficientData)

	_, err = StandardDeviation([]float64{1.0})
	assert.ErrorIs(t, err, core.ErrInsufficientData)
}

func TestSampleVarianceNonNegative(t *testing.T) {
	kit := testkit.NewKit(rng.NewStreamAdapter())
	ctx := context.Background()

	for seed := int64(1); seed <= 50; seed++ {
		sample, err := kit.NormalSample(ctx, "variance-property", 40, -3, 2.5, seed)
		require.NoError(t, err)

		v, err := SampleVariance(sample)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestRange(t *testing.T) {
	r, err := Range([]float64{7, 1, 5, 3})
	require.NoError(t, err)
	assert.InDelta(t, 6.0, r, 1e-12)
}

func TestPercentileLinearInterpolation(t *testing.T) {
	// Matches the linear-interpolation convention of the standard packages:
	// for [1,2,3,4], the 25th percentile is 1.75 and the 75th is 3.25.
	sample := []float64{4, 1, 3, 2}

	q25, err := Percentile(sample, 25)
	require.NoError(t, err)
	assert.InDelta(t, 1.75, q25, 1e-12)

	q75, err := Percentile(sample, 75)
	require.NoError(t, err)
	assert.InDelta(t, 3.25, q75, 1e-12)

	median, err := Percentile(sample, 50)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, median, 1e-12)

	// Endpoints are the extreme order statistics.
	lo, err := Percentile(sample, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, lo, 1e-12)

	hi, err := Percentile(sample, 100)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, hi, 1e-12)
}

func TestInterquartileRange(t *testing.T) {
	sample := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}

	iqr, err := InterquartileRange(sample)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, iqr, 1e-12)

	// Input order must not matter and the input must not be mutated.
	shuffled := []float64{9, 1, 8, 2, 7, 3, 6, 4, 5}
	iqr2, err := InterquartileRange(shuffled)
	require.NoError(t, err)
	assert.InDelta(t, iqr, iqr2, 1e-12)
	assert.Equal(t, []float64{9, 1, 8, 2, 7, 3, 6, 4, 5}, shuffled)
}
