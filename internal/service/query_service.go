package service

import (
	"context"

	"fanmon/internal/models"
	"fanmon/internal/repository"
)

// recentLimit caps how many readings the data endpoint returns.
const recentLimit = 50

// QueryService reads stored readings back out.
type QueryService struct {
	readings repository.ReadingRepository
}

// NewQueryService creates a new QueryService.
func NewQueryService(readings repository.ReadingRepository) *QueryService {
	return &QueryService{readings: readings}
}

// RecentReadings returns the newest readings, at most 50, newest
// first.
func (s *QueryService) RecentReadings(ctx context.Context) ([]models.Reading, error) {
	return s.readings.ListRecent(ctx, recentLimit)
}
