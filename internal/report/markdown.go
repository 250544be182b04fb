// Package report renders analysis results as markdown notes and HTML.
// Rendering is presentation glue around the calculators; nothing in here
// feeds back into the statistics.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"statlab/app"
	"statlab/domain/stats"
)

// ConversionMarkdown renders an A/B conversion analysis as a markdown note.
func ConversionMarkdown(result *app.ConversionAnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# A/B Analysis: %s\n\n", result.Name)
	fmt.Fprintf(&b, "Analysis `%s`, generated %s.\n\n", result.AnalysisID, result.CreatedAt.Format("2006-01-02 15:04:05 UTC"))

	b.WriteString("| Variant | Conversions | Trials | Rate | CI |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, v := range []app.VariantSummary{result.Control, result.Treatment} {
		fmt.Fprintf(&b, "| %s | %d | %d | %.4f | [%.4f, %.4f] |\n",
			v.Name, v.Conversions, v.Trials, v.Rate, v.RateCI.Lower, v.RateCI.Upper)
	}

	fmt.Fprintf(&b, "\n## Two-proportion Z-test\n\n")
	fmt.Fprintf(&b, "- statistic: z = %.4f\n", result.Test.Statistic)
	fmt.Fprintf(&b, "- p-value: %.4g\n", result.Test.PValue)
	fmt.Fprintf(&b, "- alpha: %.3f\n", result.Test.Alpha)
	fmt.Fprintf(&b, "- decision: **%s**\n", result.Test.Decision)
	fmt.Fprintf(&b, "- absolute lift: %+.4f\n", result.AbsoluteLift)

	fmt.Fprintf(&b, "\n## Sensitivity\n\n")
	fmt.Fprintf(&b, "At n=%d per group (alpha=%.3f, power=%.2f, baseline=%.3f) the minimum detectable effect is %.4f.\n",
		result.MDE.SampleSizePerGroup, result.MDE.Alpha, result.MDE.Power, result.MDE.BaselineProportion, result.MDE.MDE)

	return b.String()
}

// MDECurveMarkdown renders a margin-of-error curve as a markdown table.
func MDECurveMarkdown(curve []stats.MDEResult) string {
	var b strings.Builder

	b.WriteString("# Minimum Detectable Effect Curve\n\n")
	if len(curve) > 0 {
		fmt.Fprintf(&b, "alpha=%.3f, power=%.2f, baseline=%.3f\n\n", curve[0].Alpha, curve[0].Power, curve[0].BaselineProportion)
	}
	b.WriteString("| n per group | SE | MDE |\n")
	b.WriteString("|---|---|---|\n")
	for _, point := range curve {
		fmt.Fprintf(&b, "| %d | %.5f | %.5f |\n", point.SampleSizePerGroup, point.StandardError, point.MDE)
	}
	return b.String()
}

// MetricMarkdown renders a continuous-metric analysis, including the CUPED
// adjustment when present.
func MetricMarkdown(result *app.MetricAnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Metric Analysis: %s\n\n", result.Name)
	fmt.Fprintf(&b, "Mean: %.4f, %.0f%% CI [%.4f, %.4f] (width %.4f, n=%d)\n",
		result.MeanCI.PointEstimate, result.MeanCI.ConfidenceLevel*100,
		result.MeanCI.Lower, result.MeanCI.Upper, result.MeanCI.Width(), result.MeanCI.SampleSize)

	if result.Adjustment != nil && result.AdjustedMeanCI != nil {
		ci := result.AdjustedMeanCI
		fmt.Fprintf(&b, "\n## CUPED adjustment\n\n")
		fmt.Fprintf(&b, "- theta: %.4f\n", result.Adjustment.Theta)
		fmt.Fprintf(&b, "- variance: %.4f -> %.4f (%.1f%% reduction)\n",
			result.Adjustment.VarianceBefore, result.Adjustment.VarianceAfter, result.VarianceReduction*100)
		fmt.Fprintf(&b, "- adjusted CI: [%.4f, %.4f] (width %.4f)\n", ci.Lower, ci.Upper, ci.Width())
	}
	return b.String()
}

// RenderHTML converts a markdown note to an HTML document body.
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}
