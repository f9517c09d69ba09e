package service

import (
	"context"
	"time"

	"fanmon/internal/broadcast"
	"fanmon/internal/models"
	"fanmon/internal/repository"
)

// IngestionService accepts readings from the probe.
type IngestionService struct {
	readings repository.ReadingRepository
	pub      broadcast.Publisher
	now      func() time.Time
}

// NewIngestionService creates a new IngestionService.
func NewIngestionService(readings repository.ReadingRepository, pub broadcast.Publisher) *IngestionService {
	return &IngestionService{readings: readings, pub: pub, now: time.Now}
}

// RecordReading stamps the current time, persists the reading and
// notifies live listeners. Both fields must be present; zero is a
// valid value for either.
func (s *IngestionService) RecordReading(ctx context.Context, temperature, fanSpeed *float64) (models.Reading, error) {
	if temperature == nil || fanSpeed == nil {
		return models.Reading{}, models.NewValidationError("Temperature and fan speed are required")
	}

	reading, err := s.readings.Insert(ctx, *temperature, *fanSpeed, s.now().UTC())
	if err != nil {
		return models.Reading{}, err
	}

	s.pub.Publish(broadcast.Event{
		Type:    broadcast.EventDataUpdate,
		Payload: reading,
	})
	return reading, nil
}
