package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	alertQueueKey = "crisisflow:danger_zone_alerts"
)

// AlertEvent - оповещение о новой опасной зоне
type AlertEvent struct {
	ID           uuid.UUID `json:"id"`
	ReportID     int64     `json:"report_id"`
	HazardType   string    `json:"hazard_type,omitempty"`
	Severity     string    `json:"severity"`
	Location     string    `json:"location,omitempty"`
	RawText      string    `json:"raw_text"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Approximate  bool      `json:"approximate"` // координаты взяты из запасной точки
	RadiusMeters float64   `json:"radius_meters"`
	DetectedAt   time.Time `json:"detected_at"`
}

// AlertPublisher - интерфейс для публикации оповещений
type AlertPublisher interface {
	Publish(ctx context.Context, event AlertEvent) error
}

// RedisAlertPublisher - реализация AlertPublisher поверх списка Redis
type RedisAlertPublisher struct {
	redisClient redis.Cmdable
}

// NewRedisAlertPublisher создает новый RedisAlertPublisher
func NewRedisAlertPublisher(client redis.Cmdable) *RedisAlertPublisher {
	return &RedisAlertPublisher{
		redisClient: client,
	}
}

// Publish кладет событие в левый конец очереди, воркер забирает справа
func (p *RedisAlertPublisher) Publish(ctx context.Context, event AlertEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal alert event: %w", err)
	}

	if err := p.redisClient.LPush(ctx, alertQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish alert event to Redis: %w", err)
	}
	return nil
}
