package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"statlab/adapters/dist"
	"statlab/adapters/rng"
	"statlab/app"
	"statlab/ui"
)

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	port := os.Getenv("STATLAB_PORT")
	if port == "" {
		port = "8080"
	}

	distributions := dist.NewGonumDistributions()
	experiments := app.NewExperimentService(distributions)
	simulations := app.NewSimulationService(distributions, rng.NewStreamAdapter())

	api := ui.NewApp(experiments, simulations)
	if err := api.Start(ui.Config{Port: port}); err != nil {
		log.Fatalf("api server failed: %v", err)
	}
}
