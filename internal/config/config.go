package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Athlete  AthleteConfig       `json:"athlete" yaml:"athlete"`
	Stair    StairConfig         `json:"stair" yaml:"stair"`
	Cleaning CleaningConfig      `json:"cleaning" yaml:"cleaning"`
	Physics  PhysicsConfig       `json:"physics" yaml:"physics"`
	Columns  map[string][]string `json:"columns,omitempty" yaml:"columns,omitempty"`
	Display  DisplayConfig       `json:"display" yaml:"display"`
	Paths    PathsConfig         `json:"paths" yaml:"paths"`
}

// AthleteConfig holds athlete-specific settings
type AthleteConfig struct {
	MassKG float64 `json:"mass_kg" yaml:"mass_kg"` // used when a record has no mass
}

// StairConfig holds stair machine settings
type StairConfig struct {
	StepHeightM float64 `json:"step_height_m" yaml:"step_height_m"`
}

// CleaningConfig controls the flat-treadmill filter
type CleaningConfig struct {
	TolerancePct float64 `json:"tolerance_pct" yaml:"tolerance_pct"`
}

// PhysicsConfig holds physical constants
type PhysicsConfig struct {
	Gravity float64 `json:"gravity" yaml:"gravity"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	SpeedUnit string `json:"speed_unit" yaml:"speed_unit"` // "mph" or "km/h"
}

// PathsConfig holds output locations
type PathsConfig struct {
	FigureDir string `json:"figure_dir" yaml:"figure_dir"`
	Database  string `json:"database,omitempty" yaml:"database,omitempty"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Athlete: AthleteConfig{
			MassKG: 70,
		},
		Stair: StairConfig{
			StepHeightM: 0.2,
		},
		Cleaning: CleaningConfig{
			TolerancePct: 0,
		},
		Physics: PhysicsConfig{
			Gravity: 9.80665,
		},
		Display: DisplayConfig{
			SpeedUnit: "mph",
		},
		Paths: PathsConfig{
			FigureDir: "figures",
		},
	}
}

// Load reads the configuration from ~/.cardio/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads a JSON config, or YAML when the extension is .yaml or .yml
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills zero values from DefaultConfig.
// A zero tolerance is a valid setting and is left alone.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Athlete.MassKG == 0 {
		c.Athlete.MassKG = defaults.Athlete.MassKG
	}
	if c.Stair.StepHeightM == 0 {
		c.Stair.StepHeightM = defaults.Stair.StepHeightM
	}
	if c.Physics.Gravity == 0 {
		c.Physics.Gravity = defaults.Physics.Gravity
	}
	if c.Display.SpeedUnit == "" {
		c.Display.SpeedUnit = defaults.Display.SpeedUnit
	}
	if c.Paths.FigureDir == "" {
		c.Paths.FigureDir = defaults.Paths.FigureDir
	}
}

// Save writes the configuration to ~/.cardio/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes the configuration to path, as YAML for .yaml/.yml
func SaveFile(path string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Columns = map[string][]string{
		"spm": {"steps_per_minute"},
	}
	return Save(&example)
}

// Validate checks the config values are physically meaningful
func (c *Config) Validate() error {
	if c.Athlete.MassKG <= 0 {
		return fmt.Errorf("athlete.mass_kg must be positive, got %v", c.Athlete.MassKG)
	}
	if c.Stair.StepHeightM <= 0 || c.Stair.StepHeightM > 1 {
		return fmt.Errorf("stair.step_height_m must be in (0, 1] metres, got %v", c.Stair.StepHeightM)
	}
	if c.Cleaning.TolerancePct < 0 {
		return fmt.Errorf("cleaning.tolerance_pct must not be negative, got %v", c.Cleaning.TolerancePct)
	}
	if c.Physics.Gravity <= 0 {
		return fmt.Errorf("physics.gravity must be positive, got %v", c.Physics.Gravity)
	}

	// Validate display units
	if c.Display.SpeedUnit != "" && c.Display.SpeedUnit != "mph" && c.Display.SpeedUnit != "km/h" {
		return fmt.Errorf("display.speed_unit must be \"mph\" or \"km/h\", got %q", c.Display.SpeedUnit)
	}

	for canonical, aliases := range c.Columns {
		if len(aliases) == 0 {
			return fmt.Errorf("columns.%s must list at least one alias", canonical)
		}
	}

	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".cardio"), nil
}
