// Package config reads simulator settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvYears             = "VALLEYSIM_YEARS"
	EnvSeed              = "VALLEYSIM_SEED"
	EnvScenario          = "VALLEYSIM_SCENARIO"
	EnvMaxRounds         = "VALLEYSIM_MAX_ROUNDS"
	EnvApplyEnhancements = "VALLEYSIM_APPLY_ENHANCEMENTS"
	EnvFacility          = "VALLEYSIM_FACILITY"
	EnvTelemetry         = "VALLEYSIM_TELEMETRY"
	EnvHoneycombAPIKey   = "HONEYCOMB_VALLEYSIM_API_KEY"
	EnvHoneycombDataset  = "HONEYCOMB_VALLEYSIM_DATASET"
)

// DefaultYears is how long a run lasts when nothing is configured.
const DefaultYears = 1

// Config holds settings for a simulator run. CLI flags override these.
type Config struct {
	Years             int
	Seed              int64 // 0 picks a time-based seed
	Scenario          string
	MaxRounds         int
	ApplyEnhancements bool
	Facility          string
	Telemetry         bool
	HoneycombAPIKey   string
	HoneycombDataset  string
}

// LoadFromEnv reads the VALLEYSIM_* variables. Unparseable values fall back to
// their defaults; out of range values are errors.
func LoadFromEnv() (Config, error) {
	cfg := Config{
		Years:             envIntDefault(EnvYears, DefaultYears),
		Seed:              envInt64Default(EnvSeed, 0),
		Scenario:          envDefault(EnvScenario, ""),
		MaxRounds:         envIntDefault(EnvMaxRounds, 0),
		ApplyEnhancements: envBoolDefault(EnvApplyEnhancements, false),
		Facility:          strings.ToLower(envDefault(EnvFacility, "office")),
		Telemetry:         envBoolDefault(EnvTelemetry, false),
		HoneycombAPIKey:   envDefault(EnvHoneycombAPIKey, ""),
		HoneycombDataset:  envDefault(EnvHoneycombDataset, "valleysim"),
	}
	if cfg.Years < 0 {
		return cfg, fmt.Errorf("%s must not be negative, got %d", EnvYears, cfg.Years)
	}
	if cfg.MaxRounds < 0 {
		return cfg, fmt.Errorf("%s must not be negative, got %d", EnvMaxRounds, cfg.MaxRounds)
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envIntDefault(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envInt64Default(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envBoolDefault(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
