package config

import (
	"os"
	"runtime"
	"strconv"

	"recentstats/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data    DataConfig
	Compute ComputeConfig
	Output  OutputConfig
}

// DataConfig holds dataset location and fetch settings
type DataConfig struct {
	File         string // local cache of the pitch-level CSV
	StartYear    int
	EndYear      int
	FetchEnabled bool // download the dataset when the cache file is absent
}

// ComputeConfig holds rolling/correlation settings
type ComputeConfig struct {
	MaxWindow   int // largest rolling window size, inclusive
	MinPlayerPA int // players with fewer plate appearances are skipped entirely
	Workers     int // parallel window-size passes
}

// OutputConfig holds report destinations
type OutputConfig struct {
	Dir string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data: DataConfig{
			File:         getEnvOrDefault("DATA_FILE", "statcast_data.csv"),
			StartYear:    getEnvIntOrDefault("START_YEAR", 2013),
			EndYear:      getEnvIntOrDefault("END_YEAR", 2023),
			FetchEnabled: getEnvBoolOrDefault("FETCH_ENABLED", true),
		},
		Compute: ComputeConfig{
			MaxWindow:   getEnvIntOrDefault("MAX_WINDOW", 250),
			MinPlayerPA: getEnvIntOrDefault("MIN_PLAYER_PA", 260),
			Workers:     getEnvIntOrDefault("WORKERS", runtime.NumCPU()),
		},
		Output: OutputConfig{
			Dir: getEnvOrDefault("OUTPUT_DIR", "."),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Data.File == "" {
		return errors.ConfigInvalid("DATA_FILE is required")
	}
	if config.Data.StartYear > config.Data.EndYear {
		return errors.ConfigInvalid("START_YEAR must not be after END_YEAR")
	}
	if config.Compute.MaxWindow < 1 {
		return errors.ConfigInvalid("MAX_WINDOW must be at least 1")
	}
	if config.Compute.MinPlayerPA < 0 {
		return errors.ConfigInvalid("MIN_PLAYER_PA must not be negative")
	}
	if config.Compute.Workers < 1 {
		return errors.ConfigInvalid("WORKERS must be at least 1")
	}
	if config.Output.Dir == "" {
		return errors.ConfigInvalid("OUTPUT_DIR is required")
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
