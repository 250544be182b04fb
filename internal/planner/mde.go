// Package planner computes minimum detectable effects for experiment sizing.
package planner

import (
	"math"

	"statlab/domain/core"
	"statlab/domain/stats"
	"statlab/ports"
)

// DefaultBaselineProportion is the conservative baseline used when the
// caller has no prior conversion rate; p=0.5 maximizes p(1-p).
const DefaultBaselineProportion = 0.5

// Planner computes effect-size plans
type Planner struct {
	dist ports.DistributionPort
}

// NewPlanner creates an effect-size planner backed by the given distributions
func NewPlanner(dist ports.DistributionPort) *Planner {
	return &Planner{dist: dist}
}

// MinimumDetectableEffect returns the smallest true effect a two-group test
// can detect at the given significance and power:
//
//	SE  = sqrt(p * (1-p) / n)
//	MDE = (z_{1-alpha/2} + z_power) * SE * sqrt(2)
//
// MDE is strictly decreasing in sampleSizePerGroup when the other inputs
// are held fixed.
func (p *Planner) MinimumDetectableEffect(sampleSizePerGroup int, alpha, power, baselineProportion float64) (stats.MDEResult, error) {
	if sampleSizePerGroup <= 0 {
		return stats.MDEResult{}, core.NewInsufficientDataError("minimum detectable effect", 1, sampleSizePerGroup)
	}
	if alpha <= 0 || alpha >= 1 {
		return stats.MDEResult{}, core.NewDistributionError("alpha", alpha)
	}
	if power <= 0 || power >= 1 {
		return stats.MDEResult{}, core.NewDistributionError("power", power)
	}
	if baselineProportion <= 0 || baselineProportion >= 1 {
		return stats.MDEResult{}, core.NewDistributionError("baselineProportion", baselineProportion)
	}

	se := math.Sqrt(baselineProportion * (1 - baselineProportion) / float64(sampleSizePerGroup))
	zAlpha := p.dist.NormalQuantile(1 - alpha/2)
	zPower := p.dist.NormalQuantile(power)
	mde := (zAlpha + zPower) * se * math.Sqrt2

	return stats.MDEResult{
		MDE:                mde,
		StandardError:      se,
		ZAlpha:             zAlpha,
		ZPower:             zPower,
		SampleSizePerGroup: sampleSizePerGroup,
		Alpha:              alpha,
		Power:              power,
		BaselineProportion: baselineProportion,
	}, nil
}

// MDECurve evaluates the minimum detectable effect across a grid of
// per-group sample sizes. The curve feeds margin-of-error reports and
// plots; the points come back in input order.
func (p *Planner) MDECurve(sampleSizes []int, alpha, power, baselineProportion float64) ([]stats.MDEResult, error) {
	curve := make([]stats.MDEResult, 0, len(sampleSizes))
	for _, n := range sampleSizes {
		point, err := p.MinimumDetectableEffect(n, alpha, power, baselineProportion)
		if err != nil {
			return nil, err
		}
		curve = append(curve, point)
	}
	return curve, nil
}
