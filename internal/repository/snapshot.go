package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/crisisflow_dashboard/internal/models"
	"github.com/shenikar/crisisflow_dashboard/internal/service"
)

const snapshotKey = "crisisflow:reports:snapshot"

// SnapshotRepository хранит последний удачный снимок отчетов в Redis
type SnapshotRepository struct {
	redisClient redis.Cmdable
	ttl         time.Duration
}

func NewSnapshotRepository(redisClient redis.Cmdable, ttl time.Duration) service.SnapshotCache {
	return &SnapshotRepository{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// SaveSnapshot сохраняет снимок в Redis с ограниченным сроком жизни
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	val, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, snapshotKey, val, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot in cache: %w", err)
	}
	return nil
}

// LoadSnapshot возвращает nil, nil при промахе кеша
func (r *SnapshotRepository) LoadSnapshot(ctx context.Context) (*models.Snapshot, error) {
	val, err := r.redisClient.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get snapshot from cache: %w", err)
	}

	snapshot := &models.Snapshot{}
	if err := json.Unmarshal(val, snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot from cache: %w", err)
	}
	if snapshot.Reports == nil {
		snapshot.Reports = []models.Report{}
	}
	return snapshot, nil
}
