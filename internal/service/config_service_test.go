package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fanmon/internal/broadcast"
	"fanmon/internal/models"
)

func TestEnsureConfigExistsConcurrent(t *testing.T) {
	repo := &fakeConfigRepo{}
	svc := NewConfigService(repo, &capturingPublisher{})

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.EnsureConfigExists(context.Background()))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, repo.creates)
	cfg, err := svc.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(models.DefaultThreshold), cfg.Threshold)
}

func TestGetConfigCreatesDefault(t *testing.T) {
	repo := &fakeConfigRepo{}
	svc := NewConfigService(repo, &capturingPublisher{})

	cfg, err := svc.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(models.DefaultThreshold), cfg.Threshold)
	assert.Equal(t, 1, repo.creates)
}

func TestSetThresholdMissingValue(t *testing.T) {
	repo := &fakeConfigRepo{}
	pub := &capturingPublisher{}
	svc := NewConfigService(repo, pub)

	_, err := svc.SetThreshold(context.Background(), nil)

	var apiErr models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, models.ErrorCodeMissingParameter, apiErr.Code)
	assert.Equal(t, "Threshold value is required", apiErr.Message)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Zero(t, repo.setCalls, "validation failures must not touch storage")
	assert.Empty(t, pub.all(), "validation failures must not publish")
}

func TestSetThresholdUpdatesAndPublishes(t *testing.T) {
	repo := &fakeConfigRepo{}
	pub := &capturingPublisher{}
	svc := NewConfigService(repo, pub)

	before := time.Now().UTC().Add(-time.Second)
	cfg, err := svc.SetThreshold(context.Background(), floatPtr(42))
	require.NoError(t, err)

	assert.Equal(t, 42.0, cfg.Threshold)
	assert.False(t, cfg.LastUpdated.Before(before))

	fetched, err := svc.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42.0, fetched.Threshold)

	events := pub.all()
	require.Len(t, events, 1)
	assert.Equal(t, broadcast.EventConfigUpdate, events[0].Type)
	assert.Equal(t, thresholdUpdate{Threshold: 42}, events[0].Payload)
}

func TestSetThresholdStorageFailure(t *testing.T) {
	storageErr := models.NewStorageError(errors.New("redis unreachable"))
	repo := &fakeConfigRepo{err: storageErr}
	pub := &capturingPublisher{}
	svc := NewConfigService(repo, pub)

	_, err := svc.SetThreshold(context.Background(), floatPtr(42))

	var apiErr models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, models.ErrorCodeStorageError, apiErr.Code)
	assert.Empty(t, pub.all(), "storage failures must not publish")
}
