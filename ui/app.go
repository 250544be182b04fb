package ui

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"statlab/app"
)

// App represents the JSON API application. It is a thin demo surface over
// the analysis services; the calculators themselves stay a plain
// function-call library.
type App struct {
	router      *chi.Mux
	experiments *app.ExperimentService
	simulations *app.SimulationService
}

// Config holds API application configuration
type Config struct {
	Port string
}

// NewApp creates a new API application
func NewApp(experiments *app.ExperimentService, simulations *app.SimulationService) *App {
	a := &App{
		router:      chi.NewRouter(),
		experiments: experiments,
		simulations: simulations,
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Timeout(30 * time.Second))
}

// setupRoutes configures API routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)

	a.router.Route("/api", func(r chi.Router) {
		r.Post("/analyses/conversion", a.handleConversionAnalysis)
		r.Post("/analyses/conversion/report", a.handleConversionReport)
		r.Post("/analyses/metric", a.handleMetricAnalysis)
		r.Post("/plans/mde", a.handleMDEPlan)
		r.Post("/simulations/coverage", a.handleCoverageSimulation)
	})
}

// Router exposes the configured router (used by tests and the entrypoint)
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server
func (a *App) Start(config Config) error {
	addr := fmt.Sprintf(":%s", config.Port)
	log.Printf("[api] listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}
