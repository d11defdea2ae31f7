package tui

import (
	"fmt"

	"cardio-efficiency/internal/config"
)

const kmPerMile = 1.609344

// Units provides unit conversion and formatting based on user preferences
type Units struct {
	cfg config.DisplayConfig
}

// NewUnits creates a new Units helper with the given display config
func NewUnits(cfg config.DisplayConfig) Units {
	return Units{cfg: cfg}
}

// IsMetric returns true if speeds are shown in km/h
func (u Units) IsMetric() bool {
	return u.cfg.SpeedUnit == "km/h"
}

// Speed converts a treadmill speed in mph to the preferred unit
func (u Units) Speed(mph float64) float64 {
	if u.IsMetric() {
		return mph * kmPerMile
	}
	return mph
}

// FormatSpeed formats a speed in mph with the preferred unit label
func (u Units) FormatSpeed(mph float64) string {
	return fmt.Sprintf("%.1f %s", u.Speed(mph), u.SpeedLabel())
}

// FormatSpeedValue returns just the numeric speed value (no unit label)
func (u Units) FormatSpeedValue(mph float64) string {
	return fmt.Sprintf("%.1f", u.Speed(mph))
}

// SpeedLabel returns the unit label ("mph" or "km/h")
func (u Units) SpeedLabel() string {
	if u.IsMetric() {
		return "km/h"
	}
	return "mph"
}
