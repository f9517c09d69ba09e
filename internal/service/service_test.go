package service

import (
	"context"
	"sync"
	"time"

	"fanmon/internal/broadcast"
	"fanmon/internal/models"
)

// fakeConfigRepo is an in-memory stand-in for the Redis repository.
type fakeConfigRepo struct {
	mu       sync.Mutex
	cfg      *models.Config
	creates  int
	setCalls int
	err      error
}

func (f *fakeConfigRepo) Get(ctx context.Context) (*models.Config, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.cfg == nil {
		return nil, nil
	}
	cp := *f.cfg
	return &cp, nil
}

func (f *fakeConfigRepo) EnsureDefault(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.cfg == nil {
		cfg := models.DefaultConfig(time.Now().UTC())
		f.cfg = &cfg
		f.creates++
	}
	return nil
}

func (f *fakeConfigRepo) SetThreshold(ctx context.Context, threshold float64) (models.Config, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	if f.err != nil {
		return models.Config{}, f.err
	}
	if f.cfg == nil {
		cfg := models.DefaultConfig(time.Now().UTC())
		f.cfg = &cfg
	}
	f.cfg.Threshold = threshold
	f.cfg.LastUpdated = time.Now().UTC()
	return *f.cfg, nil
}

// fakeReadingRepo keeps readings in memory, newest first.
type fakeReadingRepo struct {
	mu        sync.Mutex
	readings  []models.Reading
	lastLimit int
	err       error
}

func (f *fakeReadingRepo) Insert(ctx context.Context, temperature, fanSpeed float64, ts time.Time) (models.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.Reading{}, f.err
	}
	reading := models.Reading{Temperature: temperature, FanSpeed: fanSpeed, Timestamp: ts}
	f.readings = append([]models.Reading{reading}, f.readings...)
	return reading, nil
}

func (f *fakeReadingRepo) ListRecent(ctx context.Context, limit int) ([]models.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if len(f.readings) > limit {
		return f.readings[:limit], nil
	}
	return f.readings, nil
}

// capturingPublisher records published events.
type capturingPublisher struct {
	mu     sync.Mutex
	events []broadcast.Event
}

func (p *capturingPublisher) Publish(event broadcast.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *capturingPublisher) all() []broadcast.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]broadcast.Event(nil), p.events...)
}

func floatPtr(v float64) *float64 { return &v }
