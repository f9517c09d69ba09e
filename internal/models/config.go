package models

import "time"

// DefaultThreshold is the temperature threshold a fresh installation
// starts with, in the same units the probe reports.
const DefaultThreshold = 30

// Config is the single shared configuration record. Exactly one exists
// system-wide; LastUpdated is refreshed on every write.
type Config struct {
	Threshold   float64   `json:"threshold"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// DefaultConfig returns the record created on first access.
func DefaultConfig(now time.Time) Config {
	return Config{
		Threshold:   DefaultThreshold,
		LastUpdated: now,
	}
}
