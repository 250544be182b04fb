package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"statlab/adapters/dist"
	"statlab/adapters/excel"
	"statlab/adapters/rng"
	"statlab/app"
	"statlab/internal/interval"
	"statlab/internal/report"
	"statlab/internal/testkit"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "statlab",
		Short: "statlab CLI for confidence intervals, A/B tests, and experiment planning",
	}

	rootCmd.AddCommand(
		newCICmd(),
		newABTestCmd(),
		newMDECmd(),
		newCUPEDCmd(),
		newSimulateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCICmd() *cobra.Command {
	var confidence float64
	var sigma float64

	cmd := &cobra.Command{
		Use:   "ci [values...]",
		Short: "Confidence interval for a sample mean",
		Long: `Build a confidence interval for the mean of the given values.

With --sigma the population standard deviation is treated as known and the
normal critical value is used; otherwise the Student-t path applies.

Example: statlab ci 4.2 5.1 4.8 5.3 4.9 --confidence 0.95`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sample, err := parseFloats(args)
			if err != nil {
				return err
			}

			estimator := interval.NewEstimator(dist.NewGonumDistributions())
			if sigma > 0 {
				ci, err := estimator.MeanIntervalKnownVariance(sample, sigma, confidence)
				if err != nil {
					return err
				}
				return printJSON(ci)
			}
			ci, err := estimator.MeanIntervalUnknownVariance(sample, confidence)
			if err != nil {
				return err
			}
			return printJSON(ci)
		},
	}

	cmd.Flags().Float64Var(&confidence, "confidence", 0.95, "confidence level in (0,1)")
	cmd.Flags().Float64Var(&sigma, "sigma", 0, "known population standard deviation (enables the Z path)")
	return cmd
}

func newABTestCmd() *cobra.Command {
	var alpha, power float64
	var exportPath string
	var asMarkdown bool

	cmd := &cobra.Command{
		Use:   "abtest [control-conv] [control-n] [treatment-conv] [treatment-n]",
		Short: "Two-proportion Z-test between control and treatment",
		Long: `Compare two conversion rates with a two-proportion Z-test, Wilson
intervals per variant, and the minimum detectable effect at the current size.

Example: statlab abtest 500 10000 600 10000 --alpha 0.05`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := parseInts(args)
			if err != nil {
				return err
			}

			service := app.NewExperimentService(dist.NewGonumDistributions())
			result, err := service.AnalyzeConversion(cmd.Context(), app.ConversionAnalysisRequest{
				Name:                 "cli",
				ControlConversions:   counts[0],
				ControlTrials:        counts[1],
				TreatmentConversions: counts[2],
				TreatmentTrials:      counts[3],
				Alpha:                alpha,
				Power:                power,
			})
			if err != nil {
				return err
			}

			if exportPath != "" {
				if err := excel.NewResultWriter(exportPath).WriteConversionAnalysis(result); err != nil {
					return err
				}
			}
			if asMarkdown {
				fmt.Println(report.ConversionMarkdown(result))
				return nil
			}
			return printJSON(result)
		},
	}

	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "significance level in (0,1)")
	cmd.Flags().Float64Var(&power, "power", 0.8, "power for the MDE sensitivity read")
	cmd.Flags().StringVar(&exportPath, "export", "", "export the analysis to this .xlsx path")
	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "print a markdown note instead of JSON")
	return cmd
}

func newMDECmd() *cobra.Command {
	var alpha, power, baseline float64
	var exportPath string
	var asMarkdown bool

	cmd := &cobra.Command{
		Use:   "mde [sample-sizes...]",
		Short: "Minimum detectable effect across per-group sample sizes",
		Long: `Evaluate the minimum detectable effect for each per-group sample size.

Example: statlab mde 1000 2000 5000 10000 --alpha 0.05 --power 0.8`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sizes, err := parseInts(args)
			if err != nil {
				return err
			}

			service := app.NewExperimentService(dist.NewGonumDistributions())
			curve, err := service.PlanExperiment(cmd.Context(), sizes, alpha, power, baseline)
			if err != nil {
				return err
			}

			if exportPath != "" {
				if err := excel.NewResultWriter(exportPath).WriteMDECurve(curve); err != nil {
					return err
				}
			}
			if asMarkdown {
				fmt.Println(report.MDECurveMarkdown(curve))
				return nil
			}
			return printJSON(curve)
		},
	}

	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "significance level in (0,1)")
	cmd.Flags().Float64Var(&power, "power", 0.8, "desired power in (0,1)")
	cmd.Flags().Float64Var(&baseline, "baseline", 0.5, "baseline proportion in (0,1)")
	cmd.Flags().StringVar(&exportPath, "export", "", "export the curve to this .xlsx path")
	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "print a markdown note instead of JSON")
	return cmd
}

func newCUPEDCmd() *cobra.Command {
	var n int
	var seed int64
	var slope, noise, confidence float64

	cmd := &cobra.Command{
		Use:   "cuped",
		Short: "Demonstrate CUPED variance reduction on a synthetic metric",
		Long: `Generate a synthetic outcome/covariate pair with a known linear link and
show how much the CUPED adjustment narrows the mean interval.

Example: statlab cuped --n 2000 --slope 0.8 --noise 0.5 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kit := testkit.NewKit(rng.NewStreamAdapter())
			outcome, covariate, err := kit.CorrelatedPair(cmd.Context(), "cuped-demo", n, 10, 2, slope, noise, seed)
			if err != nil {
				return err
			}

			service := app.NewExperimentService(dist.NewGonumDistributions())
			result, err := service.AnalyzeMetric(cmd.Context(), app.MetricAnalysisRequest{
				Name:            "cuped-demo",
				Outcome:         outcome,
				Covariate:       covariate,
				ConfidenceLevel: confidence,
			})
			if err != nil {
				return err
			}

			fmt.Println(report.MetricMarkdown(result))
			return nil
		},
	}

	cmd.Flags().IntVar(&n, "n", 2000, "sample size")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	cmd.Flags().Float64Var(&slope, "slope", 0.8, "linear link between covariate and outcome")
	cmd.Flags().Float64Var(&noise, "noise", 0.5, "independent noise standard deviation")
	cmd.Flags().Float64Var(&confidence, "confidence", 0.95, "confidence level in (0,1)")
	return cmd
}

func newSimulateCmd() *cobra.Command {
	var trials, n, workers int
	var mu, sigma, confidence float64
	var seed int64

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Empirical coverage of the known-variance mean interval",
		Long: `Repeatedly draw seeded samples from a known normal distribution and
measure how often the computed interval covers the true mean.

Example: statlab simulate --trials 10000 --n 100 --confidence 0.95`,
		RunE: func(cmd *cobra.Command, args []string) error {
			service := app.NewSimulationService(dist.NewGonumDistributions(), rng.NewStreamAdapter())
			result, err := service.RunCoverage(cmd.Context(), app.CoverageRequest{
				Trials:          trials,
				SampleSize:      n,
				Mu:              mu,
				Sigma:           sigma,
				ConfidenceLevel: confidence,
				Seed:            seed,
				Workers:         workers,
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().IntVar(&trials, "trials", 10000, "number of simulated experiments")
	cmd.Flags().IntVar(&n, "n", 100, "sample size per experiment")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")
	cmd.Flags().Float64Var(&mu, "mu", 50, "true mean")
	cmd.Flags().Float64Var(&sigma, "sigma", 10, "true standard deviation")
	cmd.Flags().Float64Var(&confidence, "confidence", 0.95, "nominal confidence level")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	return cmd
}

func parseFloats(args []string) ([]float64, error) {
	values := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", arg, err)
		}
		values[i] = v
	}
	return values, nil
}

func parseInts(args []string) ([]int, error) {
	values := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", arg, err)
		}
		values[i] = v
	}
	return values, nil
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
