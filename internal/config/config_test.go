package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Athlete.MassKG != 70 {
		t.Errorf("Athlete.MassKG = %v, want 70", cfg.Athlete.MassKG)
	}
	if cfg.Stair.StepHeightM != 0.2 {
		t.Errorf("Stair.StepHeightM = %v, want 0.2", cfg.Stair.StepHeightM)
	}
	if cfg.Cleaning.TolerancePct != 0 {
		t.Errorf("Cleaning.TolerancePct = %v, want 0", cfg.Cleaning.TolerancePct)
	}
	if cfg.Physics.Gravity != 9.80665 {
		t.Errorf("Physics.Gravity = %v, want 9.80665", cfg.Physics.Gravity)
	}
	if cfg.Display.SpeedUnit != "mph" {
		t.Errorf("Display.SpeedUnit = %q, want %q", cfg.Display.SpeedUnit, "mph")
	}
	if cfg.Paths.FigureDir != "figures" {
		t.Errorf("Paths.FigureDir = %q, want %q", cfg.Paths.FigureDir, "figures")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errContains string
	}{
		{
			name:        "valid config",
			mutate:      func(c *Config) {},
			expectError: false,
		},
		{
			name:        "zero mass",
			mutate:      func(c *Config) { c.Athlete.MassKG = 0 },
			expectError: true,
			errContains: "mass_kg",
		},
		{
			name:        "step height in centimetres",
			mutate:      func(c *Config) { c.Stair.StepHeightM = 20 },
			expectError: true,
			errContains: "step_height_m",
		},
		{
			name:        "negative tolerance",
			mutate:      func(c *Config) { c.Cleaning.TolerancePct = -1 },
			expectError: true,
			errContains: "tolerance_pct",
		},
		{
			name:        "zero gravity",
			mutate:      func(c *Config) { c.Physics.Gravity = 0 },
			expectError: true,
			errContains: "gravity",
		},
		{
			name:        "bad speed unit",
			mutate:      func(c *Config) { c.Display.SpeedUnit = "knots" },
			expectError: true,
			errContains: "speed_unit",
		},
		{
			name:        "empty alias list",
			mutate:      func(c *Config) { c.Columns = map[string][]string{"spm": {}} },
			expectError: true,
			errContains: "columns.spm",
		},
		{
			name:        "metric speed unit",
			mutate:      func(c *Config) { c.Display.SpeedUnit = "km/h" },
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestLoadFileJSONAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"athlete": {"mass_kg": 82.5}, "columns": {"spm": ["cadence"]}}`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Athlete.MassKG != 82.5 {
		t.Errorf("Athlete.MassKG = %v, want 82.5", cfg.Athlete.MassKG)
	}
	if cfg.Stair.StepHeightM != 0.2 {
		t.Errorf("Stair.StepHeightM = %v, want default 0.2", cfg.Stair.StepHeightM)
	}
	if got := cfg.Columns["spm"]; len(got) != 1 || got[0] != "cadence" {
		t.Errorf("Columns[spm] = %v, want [cadence]", got)
	}
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "stair:\n  step_height_m: 0.18\ncleaning:\n  tolerance_pct: 0.5\n"
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Stair.StepHeightM != 0.18 {
		t.Errorf("Stair.StepHeightM = %v, want 0.18", cfg.Stair.StepHeightM)
	}
	if cfg.Cleaning.TolerancePct != 0.5 {
		t.Errorf("Cleaning.TolerancePct = %v, want 0.5", cfg.Cleaning.TolerancePct)
	}
	if cfg.Athlete.MassKG != 70 {
		t.Errorf("Athlete.MassKG = %v, want default 70", cfg.Athlete.MassKG)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrNoConfig) {
		t.Errorf("error = %v, want ErrNoConfig", err)
	}
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("error = %v, want parse error", err)
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	for _, name := range []string{"config.json", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			cfg := DefaultConfig()
			cfg.Athlete.MassKG = 64

			if err := SaveFile(path, &cfg); err != nil {
				t.Fatalf("SaveFile() error = %v", err)
			}
			got, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			if got.Athlete.MassKG != 64 {
				t.Errorf("Athlete.MassKG = %v, want 64", got.Athlete.MassKG)
			}
		})
	}
}
