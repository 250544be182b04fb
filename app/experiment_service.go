package app

import (
	"context"
	"log"
	"time"

	"statlab/domain/core"
	"statlab/domain/stats"
	"statlab/internal/hypothesis"
	"statlab/internal/interval"
	"statlab/internal/planner"
	"statlab/internal/varred"
	"statlab/ports"
)

// ExperimentService composes the calculators into full experiment analyses:
// conversion A/B reads, continuous-metric reads with CUPED adjustment, and
// pre-experiment sizing.
type ExperimentService struct {
	tester    *hypothesis.Tester
	estimator *interval.Estimator
	planner   *planner.Planner
}

// NewExperimentService creates an experiment analysis service
func NewExperimentService(dist ports.DistributionPort) *ExperimentService {
	return &ExperimentService{
		tester:    hypothesis.NewTester(dist),
		estimator: interval.NewEstimator(dist),
		planner:   planner.NewPlanner(dist),
	}
}

// ConversionAnalysisRequest defines the inputs for an A/B conversion read
type ConversionAnalysisRequest struct {
	Name                 string  `json:"name"`
	ControlConversions   int     `json:"control_conversions"`
	ControlTrials        int     `json:"control_trials"`
	TreatmentConversions int     `json:"treatment_conversions"`
	TreatmentTrials      int     `json:"treatment_trials"`
	Alpha                float64 `json:"alpha"`
	Power                float64 `json:"power"` // used for the MDE-at-current-size read; defaults to 0.8
}

// VariantSummary reports one variant's conversion rate with its Wilson interval
type VariantSummary struct {
	Name        string         `json:"name"`
	Conversions int            `json:"conversions"`
	Trials      int            `json:"trials"`
	Rate        float64        `json:"rate"`
	RateCI      stats.Interval `json:"rate_ci"`
}

// ConversionAnalysisResult is the complete output of an A/B conversion read
type ConversionAnalysisResult struct {
	AnalysisID   core.AnalysisID  `json:"analysis_id"`
	Name         string           `json:"name"`
	Control      VariantSummary   `json:"control"`
	Treatment    VariantSummary   `json:"treatment"`
	Test         stats.TestResult `json:"test"`
	AbsoluteLift float64          `json:"absolute_lift"`
	MDE          stats.MDEResult  `json:"mde"` // smallest effect this sample could have detected
	RuntimeMs    int64            `json:"runtime_ms"`
	CreatedAt    time.Time        `json:"created_at"`
}

// AnalyzeConversion runs the two-proportion Z-test between control and
// treatment, attaches per-variant Wilson intervals at 1-alpha confidence,
// and reports the minimum detectable effect at the smaller group size.
func (s *ExperimentService) AnalyzeConversion(ctx context.Context, req ConversionAnalysisRequest) (*ConversionAnalysisResult, error) {
	startTime := time.Now()

	test, err := s.tester.TwoProportionZTest(req.ControlConversions, req.ControlTrials, req.TreatmentConversions, req.TreatmentTrials, req.Alpha)
	if err != nil {
		return nil, err
	}

	confidenceLevel := 1 - req.Alpha
	controlCI, err := s.estimator.WilsonScoreInterval(req.ControlConversions, req.ControlTrials, confidenceLevel)
	if err != nil {
		return nil, err
	}
	treatmentCI, err := s.estimator.WilsonScoreInterval(req.TreatmentConversions, req.TreatmentTrials, confidenceLevel)
	if err != nil {
		return nil, err
	}

	power := req.Power
	if power == 0 {
		power = 0.8
	}
	baseline := controlCI.PointEstimate
	if baseline <= 0 || baseline >= 1 {
		// Degenerate observed rate; fall back to the conservative baseline.
		baseline = planner.DefaultBaselineProportion
	}
	perGroup := req.ControlTrials
	if req.TreatmentTrials < perGroup {
		perGroup = req.TreatmentTrials
	}
	mde, err := s.planner.MinimumDetectableEffect(perGroup, req.Alpha, power, baseline)
	if err != nil {
		return nil, err
	}

	result := &ConversionAnalysisResult{
		AnalysisID: core.AnalysisID(core.NewID()),
		Name:       req.Name,
		Control: VariantSummary{
			Name:        "control",
			Conversions: req.ControlConversions,
			Trials:      req.ControlTrials,
			Rate:        controlCI.PointEstimate,
			RateCI:      controlCI,
		},
		Treatment: VariantSummary{
			Name:        "treatment",
			Conversions: req.TreatmentConversions,
			Trials:      req.TreatmentTrials,
			Rate:        treatmentCI.PointEstimate,
			RateCI:      treatmentCI,
		},
		Test:         test,
		AbsoluteLift: treatmentCI.PointEstimate - controlCI.PointEstimate,
		MDE:          mde,
		RuntimeMs:    time.Since(startTime).Milliseconds(),
		CreatedAt:    time.Now().UTC(),
	}

	log.Printf("[experiment] conversion analysis %s: z=%.4f p=%.4g decision=%s", result.AnalysisID, test.Statistic, test.PValue, test.Decision)
	return result, nil
}

// MetricAnalysisRequest defines the inputs for a continuous-metric read with
// optional CUPED adjustment
type MetricAnalysisRequest struct {
	Name            string    `json:"name"`
	Outcome         []float64 `json:"outcome"`
	Covariate       []float64 `json:"covariate,omitempty"` // pre-experiment covariate; empty skips adjustment
	ConfidenceLevel float64   `json:"confidence_level"`
}

// MetricAnalysisResult reports the mean interval before and after CUPED
type MetricAnalysisResult struct {
	AnalysisID        core.AnalysisID         `json:"analysis_id"`
	Name              string                  `json:"name"`
	MeanCI            stats.Interval          `json:"mean_ci"`
	AdjustedMeanCI    *stats.Interval         `json:"adjusted_mean_ci,omitempty"`
	Adjustment        *stats.AdjustmentResult `json:"adjustment,omitempty"`
	VarianceReduction float64                 `json:"variance_reduction"`
	RuntimeMs         int64                   `json:"runtime_ms"`
	CreatedAt         time.Time               `json:"created_at"`
}

// AnalyzeMetric builds a t-interval for the metric mean and, when a
// covariate is supplied, a second interval on the CUPED-adjusted series to
// show the width reduction the adjustment buys.
func (s *ExperimentService) AnalyzeMetric(ctx context.Context, req MetricAnalysisRequest) (*MetricAnalysisResult, error) {
	startTime := time.Now()

	meanCI, err := s.estimator.MeanIntervalUnknownVariance(req.Outcome, req.ConfidenceLevel)
	if err != nil {
		return nil, err
	}

	result := &MetricAnalysisResult{
		AnalysisID: core.AnalysisID(core.NewID()),
		Name:       req.Name,
		MeanCI:     meanCI,
		RuntimeMs:  time.Since(startTime).Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}

	if len(req.Covariate) > 0 {
		adjustment, err := varred.CUPEDAdjust(req.Outcome, req.Covariate)
		if err != nil {
			return nil, err
		}
		adjustedCI, err := s.estimator.MeanIntervalUnknownVariance(adjustment.Adjusted, req.ConfidenceLevel)
		if err != nil {
			return nil, err
		}
		result.Adjustment = &adjustment
		result.AdjustedMeanCI = &adjustedCI
		result.VarianceReduction = adjustment.VarianceReduction()
	}

	result.RuntimeMs = time.Since(startTime).Milliseconds()
	log.Printf("[experiment] metric analysis %s: mean=%.4f width=%.4f varreduction=%.1f%%",
		result.AnalysisID, meanCI.PointEstimate, meanCI.Width(), result.VarianceReduction*100)
	return result, nil
}

// PlanExperiment evaluates the MDE curve over a grid of per-group sample
// sizes for pre-experiment sizing.
func (s *ExperimentService) PlanExperiment(ctx context.Context, sampleSizes []int, alpha, power, baselineProportion float64) ([]stats.MDEResult, error) {
	return s.planner.MDECurve(sampleSizes, alpha, power, baselineProportion)
}
