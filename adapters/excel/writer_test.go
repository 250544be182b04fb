package excel

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"statlab/adapters/dist"
	"statlab/app"
)

func TestWriteConversionAnalysis(t *testing.T) {
	service := app.NewExperimentService(dist.NewGonumDistributions())
	result, err := service.AnalyzeConversion(context.Background(), app.ConversionAnalysisRequest{
		Name:                 "export-test",
		ControlConversions:   500,
		ControlTrials:        10000,
		TreatmentConversions: 600,
		TreatmentTrials:      10000,
		Alpha:                0.05,
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "analysis.xlsx")
	require.NoError(t, NewResultWriter(path).WriteConversionAnalysis(result))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	variant, err := f.GetCellValue("Variants", "A2")
	require.NoError(t, err)
	assert.Equal(t, "control", variant)

	decision, err := f.GetCellValue("Test", "B6")
	require.NoError(t, err)
	assert.Equal(t, "reject_null", decision)
}

func TestWriteMDECurve(t *testing.T) {
	service := app.NewExperimentService(dist.NewGonumDistributions())
	curve, err := service.PlanExperiment(context.Background(), []int{1000, 5000}, 0.05, 0.8, 0.5)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "mde.xlsx")
	require.NoError(t, NewResultWriter(path).WriteMDECurve(curve))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	n, err := f.GetCellValue("MDE Curve", "A2")
	require.NoError(t, err)
	assert.Equal(t, "1000", n)
}
