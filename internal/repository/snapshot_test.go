package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/crisisflow_dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis реализует только Get и Set, остальные методы Cmdable не вызываются
type fakeRedis struct {
	redis.Cmdable
	data   map[string]string
	ttl    time.Duration
	getErr error
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = string(value.([]byte))
	f.ttl = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func TestSnapshotRepository_RoundTrip(t *testing.T) {
	client := &fakeRedis{data: map[string]string{}}
	repo := NewSnapshotRepository(client, 10*time.Minute)
	ctx := context.Background()
	high := "High"
	snapshot := &models.Snapshot{
		Reports:   []models.Report{{ID: 4, RawText: "Wildfire", Severity: &high}},
		FetchedAt: time.Date(2025, time.January, 10, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, repo.SaveSnapshot(ctx, snapshot))
	assert.Equal(t, 10*time.Minute, client.ttl)
	assert.Contains(t, client.data, snapshotKey)

	loaded, err := repo.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot.Reports, loaded.Reports)
	assert.True(t, snapshot.FetchedAt.Equal(loaded.FetchedAt))
}

func TestSnapshotRepository_Miss(t *testing.T) {
	repo := NewSnapshotRepository(&fakeRedis{data: map[string]string{}}, time.Minute)

	loaded, err := repo.LoadSnapshot(context.Background())

	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSnapshotRepository_EmptyListIsNotNil(t *testing.T) {
	client := &fakeRedis{data: map[string]string{snapshotKey: `{"reports":null}`}}
	repo := NewSnapshotRepository(client, time.Minute)

	loaded, err := repo.LoadSnapshot(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, loaded.Reports)
}

func TestSnapshotRepository_Errors(t *testing.T) {
	ctx := context.Background()

	repo := NewSnapshotRepository(&fakeRedis{getErr: errors.New("connection reset")}, time.Minute)
	_, err := repo.LoadSnapshot(ctx)
	assert.ErrorContains(t, err, "failed to get snapshot from cache")

	repo = NewSnapshotRepository(&fakeRedis{data: map[string]string{snapshotKey: "{"}}, time.Minute)
	_, err = repo.LoadSnapshot(ctx)
	assert.ErrorContains(t, err, "failed to unmarshal snapshot from cache")
}
