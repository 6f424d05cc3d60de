package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"goprob/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Simulation SimulationConfig
	Report     ReportConfig
	Log        LogConfig
}

// SimulationConfig holds Monte Carlo defaults
type SimulationConfig struct {
	Trials          int     // trials per simulation; 0 keeps each scenario's default
	Seed            int64   // 0 derives a seed from the clock
	Batches         int     // batches for convergence runs
	Workers         int     // scenarios simulated in parallel by batch runs
	ConfidenceLevel float64 // two-sided level for reported intervals
	Timeout         time.Duration
}

// ReportConfig holds report rendering settings
type ReportConfig struct {
	Format    string // text, markdown or html
	XLSXPath  string // optional workbook export
	Precision int    // decimals printed for estimates, 0 for the shortest exact form
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	simConfig, err := loadSimulationConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load simulation configuration")
	}

	config := &Config{
		Simulation: *simConfig,
		Report:     *loadReportConfig(),
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "INFO"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// ResolveSeed returns the configured seed, or one taken from the clock when unset
func (c *Config) ResolveSeed() int64 {
	if c.Simulation.Seed != 0 {
		return c.Simulation.Seed
	}
	return time.Now().UnixNano()
}

func loadSimulationConfig() (*SimulationConfig, error) {
	seed := int64(0)
	if value := os.Getenv("GOPROB_SEED"); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, errors.ConfigInvalid(fmt.Sprintf("GOPROB_SEED must be an integer, got %q", value))
		}
		seed = parsed
	}

	return &SimulationConfig{
		Trials:          getEnvIntOrDefault("GOPROB_TRIALS", 0),
		Seed:            seed,
		Batches:         getEnvIntOrDefault("GOPROB_BATCHES", 10),
		Workers:         getEnvIntOrDefault("GOPROB_WORKERS", 4),
		ConfidenceLevel: getEnvFloatOrDefault("GOPROB_CONFIDENCE", 0.95),
		Timeout:         getEnvDurationOrDefault("GOPROB_TIMEOUT", 10*time.Minute),
	}, nil
}

func loadReportConfig() *ReportConfig {
	return &ReportConfig{
		Format:    strings.ToLower(getEnvOrDefault("GOPROB_FORMAT", "text")),
		XLSXPath:  getEnvOrDefault("GOPROB_XLSX", ""),
		Precision: getEnvIntOrDefault("GOPROB_PRECISION", 5),
	}
}

func validateConfig(config *Config) error {
	sim := config.Simulation
	if sim.Trials < 0 {
		return errors.ConfigInvalid("GOPROB_TRIALS must not be negative")
	}
	if sim.Batches < 1 {
		return errors.ConfigInvalid("GOPROB_BATCHES must be at least 1")
	}
	if sim.Workers < 1 {
		return errors.ConfigInvalid("GOPROB_WORKERS must be at least 1")
	}
	if !(sim.ConfidenceLevel > 0 && sim.ConfidenceLevel < 1) {
		return errors.ConfigInvalid("GOPROB_CONFIDENCE must be between 0 and 1")
	}
	if sim.Timeout <= 0 {
		return errors.ConfigInvalid("GOPROB_TIMEOUT must be positive")
	}
	switch config.Report.Format {
	case "text", "markdown", "html":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("GOPROB_FORMAT must be text, markdown or html, got %q", config.Report.Format))
	}
	if config.Report.Precision < 0 || config.Report.Precision > 17 {
		return errors.ConfigInvalid("GOPROB_PRECISION must be between 0 and 17")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
