package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"omsim/internal/errors"
)

// Simulation modes
const (
	ModeRandom       = "random"
	ModePermutations = "permutations"
)

// Config represents the complete application configuration
type Config struct {
	Data       DataConfig
	Simulation SimulationConfig
	Log        LogConfig
	Metrics    MetricsConfig
}

// DataConfig points at the building to simulate
type DataConfig struct {
	RoomsFile string
	Sheet     string
}

// SimulationConfig holds the sweep parameters
type SimulationConfig struct {
	Trials    int    `validate:"gte=1"`
	Noise     int    `validate:"gte=0,lte=100"`
	Seed      int64
	Workers   int    `validate:"gte=1,lte=256"`
	StartStep int    `validate:"gte=1"`
	Mode      string `validate:"oneof=random permutations"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Pretty bool
}

// MetricsConfig holds metrics export settings
type MetricsConfig struct {
	// File is a Prometheus textfile target; empty disables export
	File string
}

var validate = validator.New()

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := Default()

	config.Data = DataConfig{
		RoomsFile: getEnvOrDefault("OMSIM_ROOMS_FILE", config.Data.RoomsFile),
		Sheet:     getEnvOrDefault("OMSIM_SHEET", config.Data.Sheet),
	}

	sim := &config.Simulation
	sim.Trials = getEnvIntOrDefault("OMSIM_TRIALS", sim.Trials)
	sim.Noise = getEnvIntOrDefault("OMSIM_NOISE", sim.Noise)
	sim.Seed = getEnvInt64OrDefault("OMSIM_SEED", sim.Seed)
	sim.Workers = getEnvIntOrDefault("OMSIM_WORKERS", sim.Workers)
	sim.StartStep = getEnvIntOrDefault("OMSIM_START_STEP", sim.StartStep)
	sim.Mode = strings.ToLower(getEnvOrDefault("OMSIM_MODE", sim.Mode))

	config.Log = LogConfig{
		Level:  strings.ToLower(getEnvOrDefault("OMSIM_LOG_LEVEL", config.Log.Level)),
		Pretty: getEnvBoolOrDefault("OMSIM_LOG_PRETTY", config.Log.Pretty),
	}
	config.Metrics.File = getEnvOrDefault("OMSIM_METRICS_FILE", "")

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Trials:    1000,
			Noise:     0,
			Seed:      1,
			Workers:   4,
			StartStep: 24,
			Mode:      ModeRandom,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks field constraints; CLI flag overrides call it again
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fe.Namespace()+" failed "+fe.Tag())
			}
			return errors.ConfigInvalid(strings.Join(fields, "; "))
		}
		return errors.WithCode(errors.CodeConfigInvalid, err)
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

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
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
