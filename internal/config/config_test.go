package config

import "testing"

func TestLoadFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		EnvYears, EnvSeed, EnvScenario, EnvMaxRounds, EnvApplyEnhancements,
		EnvFacility, EnvTelemetry, EnvHoneycombAPIKey, EnvHoneycombDataset,
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	want := Config{
		Years:            DefaultYears,
		Facility:         "office",
		HoneycombDataset: "valleysim",
	}
	if cfg != want {
		t.Errorf("LoadFromEnv() = %+v, want %+v", cfg, want)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(EnvYears, "3")
	t.Setenv(EnvSeed, "12345")
	t.Setenv(EnvScenario, " ./market.yaml ")
	t.Setenv(EnvMaxRounds, "500")
	t.Setenv(EnvApplyEnhancements, "true")
	t.Setenv(EnvFacility, "Store")
	t.Setenv(EnvTelemetry, "1")
	t.Setenv(EnvHoneycombAPIKey, "key")
	t.Setenv(EnvHoneycombDataset, "")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Years != 3 || cfg.Seed != 12345 || cfg.MaxRounds != 500 {
		t.Errorf("numbers = %d/%d/%d", cfg.Years, cfg.Seed, cfg.MaxRounds)
	}
	if cfg.Scenario != "./market.yaml" {
		t.Errorf("Scenario = %q, want trimmed path", cfg.Scenario)
	}
	if !cfg.ApplyEnhancements || !cfg.Telemetry {
		t.Errorf("bools = %v/%v, want true", cfg.ApplyEnhancements, cfg.Telemetry)
	}
	if cfg.Facility != "store" {
		t.Errorf("Facility = %q, want store", cfg.Facility)
	}
	if cfg.HoneycombAPIKey != "key" || cfg.HoneycombDataset != "valleysim" {
		t.Errorf("honeycomb = %q/%q", cfg.HoneycombAPIKey, cfg.HoneycombDataset)
	}
}

func TestLoadFromEnvFallbacks(t *testing.T) {
	t.Setenv(EnvYears, "many")
	t.Setenv(EnvSeed, "0x10")
	t.Setenv(EnvTelemetry, "perhaps")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Years != DefaultYears || cfg.Seed != 0 || cfg.Telemetry {
		t.Errorf("unparseable values did not fall back: %+v", cfg)
	}
}

func TestLoadFromEnvRejectsNegative(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{EnvYears, "-1"},
		{EnvMaxRounds, "-10"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := LoadFromEnv(); err == nil {
				t.Errorf("LoadFromEnv() with %s=%s should fail", tt.key, tt.value)
			}
		})
	}
}
