package main

import (
	"fmt"
	"log"
	"os"

	"goprob/adapters/rng"
	"goprob/app"
	"goprob/internal"
	"goprob/internal/config"
	"goprob/internal/errors"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level))
	service := app.NewProbabilityService(rng.NewStreamAdapter(), logger, cfg.Simulation.ConfidenceLevel)

	rootCmd := newRootCmd(cfg, logger, service)
	if err := rootCmd.Execute(); err != nil {
		logger.Error("%v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
