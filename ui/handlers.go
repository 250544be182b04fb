package ui

import (
	"encoding/json"
	"log"
	"net/http"

	"statlab/app"
	"statlab/domain/core"
	"statlab/internal/report"
)

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleConversionAnalysis(w http.ResponseWriter, r *http.Request) {
	var req app.ConversionAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := a.experiments.AnalyzeConversion(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *App) handleConversionReport(w http.ResponseWriter, r *http.Request) {
	var req app.ConversionAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := a.experiments.AnalyzeConversion(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(report.RenderHTML(report.ConversionMarkdown(result))); err != nil {
		log.Printf("[api] write report response: %v", err)
	}
}

func (a *App) handleMetricAnalysis(w http.ResponseWriter, r *http.Request) {
	var req app.MetricAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := a.experiments.AnalyzeMetric(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type mdePlanRequest struct {
	SampleSizes        []int   `json:"sample_sizes"`
	Alpha              float64 `json:"alpha"`
	Power              float64 `json:"power"`
	BaselineProportion float64 `json:"baseline_proportion"`
}

func (a *App) handleMDEPlan(w http.ResponseWriter, r *http.Request) {
	var req mdePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	curve, err := a.experiments.PlanExperiment(r.Context(), req.SampleSizes, req.Alpha, req.Power, req.BaselineProportion)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, curve)
}

func (a *App) handleCoverageSimulation(w http.ResponseWriter, r *http.Request) {
	var req app.CoverageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := a.simulations.RunCoverage(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// writeDomainError maps contract violations to 400 and everything else to 500
func writeDomainError(w http.ResponseWriter, err error) {
	if core.IsContractViolation(err) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] encode response: %v", err)
	}
}
