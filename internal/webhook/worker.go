package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/crisisflow_dashboard/internal/config"
	"github.com/shenikar/crisisflow_dashboard/internal/observability"
	"github.com/sirupsen/logrus"
)

// ErrDeliveryFailed - все попытки доставки исчерпаны
var ErrDeliveryFailed = errors.New("webhook delivery failed")

// AlertWorker забирает оповещения из очереди Redis и доставляет их на WEBHOOK_URL
type AlertWorker struct {
	redisClient redis.Cmdable
	logger      *logrus.Logger
	cfg         *config.Config
	metrics     *observability.Metrics
	httpClient  *http.Client
	clock       clockwork.Clock

	wg sync.WaitGroup
}

// NewAlertWorker создает новый AlertWorker
func NewAlertWorker(redisClient redis.Cmdable, logger *logrus.Logger, cfg *config.Config, metrics *observability.Metrics, clock clockwork.Clock) *AlertWorker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &AlertWorker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		metrics:     metrics,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
		clock: clock,
	}
}

// Start запускает горутину обработки очереди
func (w *AlertWorker) Start(ctx context.Context) {
	w.logger.Info("Starting alert worker...")
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			if ctx.Err() != nil {
				w.logger.Info("Stopping alert worker.")
				return
			}

			// BRPOP с таймаутом, чтобы регулярно проверять ctx
			result, err := w.redisClient.BRPop(ctx, time.Second, alertQueueKey).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
					continue
				}
				w.logger.WithError(err).Error("Failed to pop alert event from Redis")
				w.sleep(ctx, w.cfg.WebhookTimeout)
				continue
			}

			// result[0] - ключ, result[1] - значение
			payload := result[1]
			var event AlertEvent
			if err := json.Unmarshal([]byte(payload), &event); err != nil {
				w.logger.WithError(err).Error("Failed to unmarshal alert event from Redis")
				continue
			}

			if err := w.deliver(ctx, event, payload); err != nil {
				w.logger.WithError(err).WithField("alert_id", event.ID).Error("Alert dropped")
			}
		}
	}()
}

// Wait блокируется до остановки воркера
func (w *AlertWorker) Wait() {
	w.wg.Wait()
}

func (w *AlertWorker) deliver(ctx context.Context, event AlertEvent, rawPayload string) error {
	log := w.logger.WithField("alert_id", event.ID).WithField("report_id", event.ReportID)
	log.Debug("Processing alert event...")

	if w.cfg.WebhookURL == "" {
		w.metrics.AlertDeliveries.WithLabelValues("skipped").Inc()
		log.Warn("Webhook URL is not configured. Skipping alert delivery.")
		return nil
	}

	maxRetries := max(w.cfg.WebhookMaxRetries, 1)
	delay := w.cfg.WebhookBaseDelay

	for attempt := 1; attempt <= maxRetries; attempt++ {
		status, err := w.post(ctx, rawPayload)
		if err == nil && status >= 200 && status < 300 {
			w.metrics.AlertDeliveries.WithLabelValues("delivered").Inc()
			log.Info("Alert delivered successfully.")
			return nil
		}

		entry := log.WithField("attempt", attempt).WithField("retries_left", maxRetries-attempt)
		if err != nil {
			entry.WithError(err).Warn("Failed to send alert webhook")
		} else {
			entry.Warnf("Alert webhook responded with status code %d", status)
		}

		if attempt < maxRetries {
			if !w.sleep(ctx, delay) {
				break
			}
			delay *= 2
		}
	}

	w.metrics.AlertDeliveries.WithLabelValues("failed").Inc()
	return fmt.Errorf("alert %s after %d attempts: %w", event.ID, maxRetries, ErrDeliveryFailed)
}

func (w *AlertWorker) post(ctx context.Context, rawPayload string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewBufferString(rawPayload))
	if err != nil {
		return 0, fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if w.cfg.WebhookSecret != "" {
		req.Header.Set("X-Webhook-Signature", generateHMACSHA256(rawPayload, w.cfg.WebhookSecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

// sleep возвращает false, если ctx отменили раньше
func (w *AlertWorker) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-w.clock.After(d):
		return true
	}
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
