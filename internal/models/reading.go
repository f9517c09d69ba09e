package models

import "time"

// Reading is one sample reported by the probe. Readings are immutable
// once stored; the timestamp is assigned by the server at ingest time.
type Reading struct {
	Temperature float64   `json:"temperature"`
	FanSpeed    float64   `json:"fanSpeed"`
	Timestamp   time.Time `json:"timestamp"`
}
