package webhook

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shenikar/crisisflow_dashboard/internal/mapview"
	"github.com/shenikar/crisisflow_dashboard/internal/models"
	"github.com/shenikar/crisisflow_dashboard/internal/observability"
	"github.com/sirupsen/logrus"
)

// DangerZoneNotifier следит за снимками и публикует оповещение для каждого нового
// отчета высокой опасности. Первый снимок только запоминается.
type DangerZoneNotifier struct {
	publisher AlertPublisher
	builder   *mapview.Builder
	clock     clockwork.Clock
	metrics   *observability.Metrics
	logger    *logrus.Logger

	mu     sync.Mutex
	seeded bool
	seen   map[int64]struct{}
}

func NewDangerZoneNotifier(publisher AlertPublisher, builder *mapview.Builder, clock clockwork.Clock, metrics *observability.Metrics, logger *logrus.Logger) *DangerZoneNotifier {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &DangerZoneNotifier{
		publisher: publisher,
		builder:   builder,
		clock:     clock,
		metrics:   metrics,
		logger:    logger,
		seen:      make(map[int64]struct{}),
	}
}

// Observe реализует service.ReportObserver
func (n *DangerZoneNotifier) Observe(ctx context.Context, reports []models.Report) {
	fresh := n.diff(reports)
	if len(fresh) == 0 {
		return
	}

	layers := n.builder.Build(fresh)
	markers := make(map[int64]mapview.Marker, len(layers.Markers))
	for _, m := range layers.Markers {
		markers[m.ReportID] = m
	}

	for i := range fresh {
		r := &fresh[i]
		var zone mapview.DangerZone
		for _, z := range layers.DangerZones {
			if z.ReportID == r.ID {
				zone = z
				break
			}
		}
		event := AlertEvent{
			ID:           uuid.New(),
			ReportID:     r.ID,
			HazardType:   deref(r.HazardType),
			Severity:     deref(r.Severity),
			Location:     deref(r.Location),
			RawText:      r.RawText,
			Latitude:     zone.Lat,
			Longitude:    zone.Lng,
			Approximate:  markers[r.ID].Fallback,
			RadiusMeters: zone.RadiusMeters,
			DetectedAt:   n.clock.Now(),
		}

		log := n.logger.WithFields(logrus.Fields{
			"component": "danger_zone_notifier",
			"report_id": r.ID,
			"alert_id":  event.ID,
		})
		if err := n.publisher.Publish(ctx, event); err != nil {
			n.metrics.AlertsPublished.WithLabelValues("error").Inc()
			log.WithError(err).Error("Failed to publish danger zone alert")
			// следующий опрос повторит оповещение
			n.forget(r.ID)
			continue
		}
		n.metrics.AlertsPublished.WithLabelValues("success").Inc()
		log.Info("Danger zone alert published")
	}
}

// diff возвращает еще не виденные отчеты высокой опасности
func (n *DangerZoneNotifier) diff(reports []models.Report) []models.Report {
	n.mu.Lock()
	defer n.mu.Unlock()

	var fresh []models.Report
	for _, r := range reports {
		if r.SeverityLevel() != models.SeverityHigh {
			continue
		}
		if _, ok := n.seen[r.ID]; ok {
			continue
		}
		n.seen[r.ID] = struct{}{}
		if n.seeded {
			fresh = append(fresh, r)
		}
	}
	n.seeded = true
	return fresh
}

func (n *DangerZoneNotifier) forget(id int64) {
	n.mu.Lock()
	delete(n.seen, id)
	n.mu.Unlock()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
