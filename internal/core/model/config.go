package model

import (
	"strconv"
	"strings"
)

const (
	// DefaultWorkSeconds is the work phase length used when no valid value is set.
	DefaultWorkSeconds = 180
	// DefaultRestSeconds is the rest phase length used when no valid value is set.
	DefaultRestSeconds = 60
)

// IntervalConfig contains the phase durations of the interval timer, in seconds.
type IntervalConfig struct {
	WorkSeconds int
	RestSeconds int
}

// DefaultIntervalConfig returns the built-in 3 minute work / 1 minute rest cycle.
func DefaultIntervalConfig() IntervalConfig {
	return IntervalConfig{
		WorkSeconds: DefaultWorkSeconds,
		RestSeconds: DefaultRestSeconds,
	}
}

// Normalize replaces non-positive durations with the defaults.
func (config IntervalConfig) Normalize() IntervalConfig {
	if config.WorkSeconds <= 0 {
		config.WorkSeconds = DefaultWorkSeconds
	}
	if config.RestSeconds <= 0 {
		config.RestSeconds = DefaultRestSeconds
	}
	return config
}

// PositiveSeconds parses user input as a positive number of seconds.
func PositiveSeconds(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
