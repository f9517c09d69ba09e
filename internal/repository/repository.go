// Package repository provides the persistence layer: readings in
// InfluxDB, the configuration singleton in Redis.
package repository

import (
	"context"
	"time"

	"fanmon/internal/models"
)

// ReadingRepository stores and queries probe readings.
type ReadingRepository interface {
	Insert(ctx context.Context, temperature, fanSpeed float64, ts time.Time) (models.Reading, error)
	// ListRecent returns up to limit readings, newest first. An empty
	// store yields an empty slice, not an error.
	ListRecent(ctx context.Context, limit int) ([]models.Reading, error)
}

// ConfigRepository stores the single configuration record.
type ConfigRepository interface {
	// Get returns nil when no record exists yet.
	Get(ctx context.Context) (*models.Config, error)
	// EnsureDefault creates the default record if absent. Idempotent:
	// concurrent callers race safely, exactly one record results.
	EnsureDefault(ctx context.Context) error
	// SetThreshold updates the threshold and refreshes lastUpdated,
	// creating the record if it does not exist.
	SetThreshold(ctx context.Context, threshold float64) (models.Config, error)
}
