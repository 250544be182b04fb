package stats

import (
	"fmt"

	"statlab/domain/core"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// TestType defines the statistical test performed
type TestType string

const (
	TestZ              TestType = "z_test"           // One-sample Z-test (known variance)
	TestT              TestType = "t_test"           // One-sample Student's t-test
	TestChiSquare      TestType = "chi_square"       // Chi-square goodness-of-fit test
	TestTwoProportionZ TestType = "two_proportion_z" // Two-proportion Z-test (A/B primitive)
)

// Decision is the terminal outcome of a hypothesis test. Every invocation
// ends in exactly one of the two states; there are no intermediate states
// and each call is independent and stateless.
type Decision string

const (
	DecisionRejectNull   Decision = "reject_null"
	DecisionFailToReject Decision = "fail_to_reject"
)

// Decide applies the decision rule: REJECT_NULL iff pValue < alpha.
// Ties (pValue == alpha) go to FAIL_TO_REJECT.
func Decide(pValue, alpha float64) Decision {
	if pValue < alpha {
		return DecisionRejectNull
	}
	return DecisionFailToReject
}

// Interval is a confidence interval result.
// INVARIANTS:
// - Lower <= Upper
// - ConfidenceLevel in (0.0, 1.0)
// - MarginOfError is the half-width (Upper-Lower)/2
type Interval struct {
	PointEstimate   float64 `json:"point_estimate"`
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	ConfidenceLevel float64 `json:"confidence_level"`
	MarginOfError   float64 `json:"margin_of_error"`
	CriticalValue   float64 `json:"critical_value"`
	SampleSize      int     `json:"sample_size"`
}

// Width returns the full interval width.
func (i Interval) Width() float64 {
	return i.Upper - i.Lower
}

// Contains reports whether v falls inside the interval (inclusive).
func (i Interval) Contains(v float64) bool {
	return v >= i.Lower && v <= i.Upper
}

// TestResult is the outcome of a single hypothesis test invocation.
// INVARIANTS:
// - PValue in [0.0, 1.0]
// - Alpha in (0.0, 1.0)
// - Decision consistent with Decide(PValue, Alpha)
type TestResult struct {
	TestType         TestType `json:"test_type"`
	Statistic        float64  `json:"statistic"`
	PValue           float64  `json:"p_value"`
	Alpha            float64  `json:"alpha"`
	Decision         Decision `json:"decision"`
	DegreesOfFreedom float64  `json:"degrees_of_freedom,omitempty"`
	SampleSize       int      `json:"sample_size"`
}

// MDEResult is the output of minimum-detectable-effect planning.
type MDEResult struct {
	MDE                float64 `json:"mde"`
	StandardError      float64 `json:"standard_error"`
	ZAlpha             float64 `json:"z_alpha"`              // z_{1-alpha/2}
	ZPower             float64 `json:"z_power"`              // z_power
	SampleSizePerGroup int     `json:"sample_size_per_group"`
	Alpha              float64 `json:"alpha"`
	Power              float64 `json:"power"`
	BaselineProportion float64 `json:"baseline_proportion"`
}

// AdjustmentResult is the output of a CUPED/CUPAC covariate adjustment.
// Adjusted is always a fresh slice of the same length as the inputs; the
// inputs are never mutated.
type AdjustmentResult struct {
	Adjusted       []float64 `json:"adjusted"`
	Theta          float64   `json:"theta"`
	VarianceBefore float64   `json:"variance_before"`
	VarianceAfter  float64   `json:"variance_after"`
	SampleSize     int       `json:"sample_size"`
}

// VarianceReduction returns the fractional variance reduction achieved by
// the adjustment, e.g. 0.4 for a 40% reduction. Zero when the unadjusted
// variance is zero.
func (r AdjustmentResult) VarianceReduction() float64 {
	if r.VarianceBefore == 0 {
		return 0
	}
	return 1 - r.VarianceAfter/r.VarianceBefore
}

// DeltaVarianceResult approximates the variance of a transformed metric.
//
// Variance is the transform-then-divide approximation
// variance(transform(sample)) / n.
// LinearizedVariance is the textbook delta-method value
// f'(mean)^2 * variance(sample) / n, carried alongside so callers can see
// how far the approximation strays. Neither replaces the other.
type DeltaVarianceResult struct {
	Variance           float64 `json:"variance"`
	LinearizedVariance float64 `json:"linearized_variance"`
	TransformedMean    float64 `json:"transformed_mean"`
	SampleSize         int     `json:"sample_size"`
}

// ============================================================================
// CONSTRUCTORS
// ============================================================================

// NewInterval builds an ordered interval around a point estimate. The margin
// must be non-negative; callers derive it from a critical value times a
// standard error, both of which are non-negative by construction.
func NewInterval(estimate, margin, critical, confidenceLevel float64, n int) Interval {
	return Interval{
		PointEstimate:   estimate,
		Lower:           estimate - margin,
		Upper:           estimate + margin,
		ConfidenceLevel: confidenceLevel,
		MarginOfError:   margin,
		CriticalValue:   critical,
		SampleSize:      n,
	}
}

// NewTestResult builds a test result and applies the decision rule.
func NewTestResult(testType TestType, statistic, pValue, alpha, df float64, n int) (TestResult, error) {
	if err := validateTestResult(pValue, alpha, n); err != nil {
		return TestResult{}, err
	}
	return TestResult{
		TestType:         testType,
		Statistic:        statistic,
		PValue:           pValue,
		Alpha:            alpha,
		Decision:         Decide(pValue, alpha),
		DegreesOfFreedom: df,
		SampleSize:       n,
	}, nil
}

// validateTestResult checks invariants for test results
func validateTestResult(pValue, alpha float64, n int) error {
	if n <= 0 {
		return fmt.Errorf("SampleSize must be > 0, got %d", n)
	}
	if pValue < 0.0 || pValue > 1.0 {
		return fmt.Errorf("PValue must be in [0.0, 1.0], got %f", pValue)
	}
	if alpha <= 0.0 || alpha >= 1.0 {
		return core.NewDistributionError("alpha", alpha)
	}
	return nil
}
