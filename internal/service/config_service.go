// Package service holds the business logic between the HTTP layer and
// the repositories.
package service

import (
	"context"
	"fmt"

	"fanmon/internal/broadcast"
	"fanmon/internal/models"
	"fanmon/internal/repository"
)

// ConfigService manages the single shared configuration record.
type ConfigService struct {
	repo repository.ConfigRepository
	pub  broadcast.Publisher
}

// NewConfigService creates a new ConfigService.
func NewConfigService(repo repository.ConfigRepository, pub broadcast.Publisher) *ConfigService {
	return &ConfigService{repo: repo, pub: pub}
}

// EnsureConfigExists creates the default record when none exists.
// Idempotent under concurrency.
func (s *ConfigService) EnsureConfigExists(ctx context.Context) error {
	return s.repo.EnsureDefault(ctx)
}

// GetConfig returns the configuration record, creating the default
// first if needed.
func (s *ConfigService) GetConfig(ctx context.Context) (models.Config, error) {
	if err := s.repo.EnsureDefault(ctx); err != nil {
		return models.Config{}, err
	}
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return models.Config{}, err
	}
	if cfg == nil {
		return models.Config{}, models.NewStorageError(fmt.Errorf("config record missing after ensure"))
	}
	return *cfg, nil
}

type thresholdUpdate struct {
	Threshold float64 `json:"threshold"`
}

// SetThreshold updates the threshold and notifies live listeners. A
// nil threshold is a validation error and performs no storage write.
func (s *ConfigService) SetThreshold(ctx context.Context, threshold *float64) (models.Config, error) {
	if threshold == nil {
		return models.Config{}, models.NewValidationError("Threshold value is required")
	}

	cfg, err := s.repo.SetThreshold(ctx, *threshold)
	if err != nil {
		return models.Config{}, err
	}

	s.pub.Publish(broadcast.Event{
		Type:    broadcast.EventConfigUpdate,
		Payload: thresholdUpdate{Threshold: cfg.Threshold},
	})
	return cfg, nil
}
