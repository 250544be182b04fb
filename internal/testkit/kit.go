// Package testkit generates seeded synthetic samples for tests, simulations,
// and CLI demonstrations. It is deliberately outside the calculator
// packages: the core never draws random numbers, and callers own the seed.
package testkit

import (
	"context"
	"fmt"

	"statlab/ports"
)

// Kit provides deterministic synthetic data fixtures
type Kit struct {
	rng ports.RNGPort
}

// NewKit creates a test kit on top of a seeded RNG port
func NewKit(rng ports.RNGPort) *Kit {
	return &Kit{rng: rng}
}

// NormalSample draws n values from N(mu, sigma^2) on a named stream.
func (k *Kit) NormalSample(ctx context.Context, name string, n int, mu, sigma float64, seed int64) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("normal sample size must be >= 1, got %d", n)
	}
	if sigma < 0 {
		return nil, fmt.Errorf("normal sample sigma must be non-negative, got %g", sigma)
	}
	stream, err := k.rng.SeededStream(ctx, name, seed)
	if err != nil {
		return nil, err
	}

	sample := make([]float64, n)
	for i := range sample {
		sample[i] = mu + sigma*stream.NormFloat64()
	}
	return sample, nil
}

// BernoulliConversions draws n Bernoulli(rate) trials on a named stream and
// returns the conversion count.
func (k *Kit) BernoulliConversions(ctx context.Context, name string, n int, rate float64, seed int64) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("bernoulli trial count must be >= 1, got %d", n)
	}
	if rate < 0 || rate > 1 {
		return 0, fmt.Errorf("bernoulli rate must be in [0, 1], got %g", rate)
	}
	stream, err := k.rng.SeededStream(ctx, name, seed)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := 0; i < n; i++ {
		if stream.Float64() < rate {
			count++
		}
	}
	return count, nil
}

// CorrelatedPair draws an (outcome, covariate) pair where the outcome
// carries a linear component of the covariate plus independent noise:
//
//	X_i ~ N(mu, sigma^2)
//	Y_i = mu + slope*(X_i - mu) + noiseSigma*eps_i
//
// The pair is the standard fixture for CUPED adjustment: the covariate
// explains part of the outcome variance and the adjustment should remove
// exactly that part.
func (k *Kit) CorrelatedPair(ctx context.Context, name string, n int, mu, sigma, slope, noiseSigma float64, seed int64) (outcome, covariate []float64, err error) {
	if n < 2 {
		return nil, nil, fmt.Errorf("correlated pair size must be >= 2, got %d", n)
	}
	stream, err := k.rng.SeededStream(ctx, name, seed)
	if err != nil {
		return nil, nil, err
	}

	covariate = make([]float64, n)
	outcome = make([]float64, n)
	for i := 0; i < n; i++ {
		x := mu + sigma*stream.NormFloat64()
		covariate[i] = x
		outcome[i] = mu + slope*(x-mu) + noiseSigma*stream.NormFloat64()
	}
	return outcome, covariate, nil
}
