package excel

import (
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"

	"statlab/app"
	"statlab/domain/stats"
)

// ResultWriter exports analysis results to .xlsx workbooks
type ResultWriter struct {
	filePath string
}

// NewResultWriter creates a writer targeting the given .xlsx path
func NewResultWriter(filePath string) *ResultWriter {
	return &ResultWriter{filePath: filePath}
}

// WriteConversionAnalysis exports an A/B conversion analysis as a workbook
// with a variants sheet and a test sheet.
func (w *ResultWriter) WriteConversionAnalysis(result *app.ConversionAnalysisResult) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[ResultWriter] close workbook: %v", err)
		}
	}()

	sheet := "Variants"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := []interface{}{"Variant", "Conversions", "Trials", "Rate", "CI Lower", "CI Upper"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	for i, v := range []app.VariantSummary{result.Control, result.Treatment} {
		row := []interface{}{v.Name, v.Conversions, v.Trials, v.Rate, v.RateCI.Lower, v.RateCI.Upper}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write variant row: %w", err)
		}
	}

	testSheet := "Test"
	if _, err := f.NewSheet(testSheet); err != nil {
		return fmt.Errorf("create test sheet: %w", err)
	}
	testRows := [][]interface{}{
		{"Analysis ID", result.AnalysisID.String()},
		{"Test", string(result.Test.TestType)},
		{"Statistic", result.Test.Statistic},
		{"P-Value", result.Test.PValue},
		{"Alpha", result.Test.Alpha},
		{"Decision", string(result.Test.Decision)},
		{"Absolute Lift", result.AbsoluteLift},
		{"MDE At Current Size", result.MDE.MDE},
	}
	for i := range testRows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(testSheet, cell, &testRows[i]); err != nil {
			return fmt.Errorf("write test row: %w", err)
		}
	}

	if err := f.SaveAs(w.filePath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	log.Printf("[ResultWriter] wrote conversion analysis to %s", w.filePath)
	return nil
}

// WriteMDECurve exports a minimum-detectable-effect curve as a single sheet.
func (w *ResultWriter) WriteMDECurve(curve []stats.MDEResult) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[ResultWriter] close workbook: %v", err)
		}
	}()

	sheet := "MDE Curve"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := []interface{}{"N Per Group", "Standard Error", "MDE", "Alpha", "Power", "Baseline"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	for i, point := range curve {
		row := []interface{}{point.SampleSizePerGroup, point.StandardError, point.MDE, point.Alpha, point.Power, point.BaselineProportion}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write curve row: %w", err)
		}
	}

	if err := f.SaveAs(w.filePath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	log.Printf("[ResultWriter] wrote %d MDE curve points to %s", len(curve), w.filePath)
	return nil
}
