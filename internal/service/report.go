package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/crisisflow_dashboard/internal/models"
	"github.com/shenikar/crisisflow_dashboard/internal/observability"
	"github.com/sirupsen/logrus"
)

// ErrNotReady - ни один опрос еще не завершился успешно
var ErrNotReady = errors.New("no report snapshot has been loaded yet")

// ReportAPI определяет контракт внешнего API отчетов
type ReportAPI interface {
	ListReports(ctx context.Context, token string) ([]models.Report, error)
	GetReport(ctx context.Context, token string, id int64) (*models.Report, error)
	CreateReport(ctx context.Context, token string, in models.ReportCreate) (*models.Report, error)
}

// SnapshotCache определяет контракт кеша последнего удачного снимка
type SnapshotCache interface {
	SaveSnapshot(ctx context.Context, snapshot *models.Snapshot) error
	LoadSnapshot(ctx context.Context) (*models.Snapshot, error)
}

// ReportObserver получает каждый удачно загруженный список отчетов
type ReportObserver interface {
	Observe(ctx context.Context, reports []models.Report)
}

// ReportService определяет контракт работы дашборда с отчетами
type ReportService interface {
	Reports() *models.Snapshot
	Refresh(ctx context.Context) error
	Restore(ctx context.Context) error
	Report(ctx context.Context, token string, id int64) (*models.Report, error)
	Submit(ctx context.Context, token string, draft *models.Draft) (bool, error)
	CheckReadiness(ctx context.Context) error
}

// Options - зависимости сервиса, не обязательные для работы
type Options struct {
	Cache      SnapshotCache
	Observer   ReportObserver
	Clock      clockwork.Clock
	Production bool
	// PollToken - токен для фонового опроса, у которого нет запроса браузера
	PollToken string
}

type reportService struct {
	api     ReportAPI
	logger  *logrus.Logger
	metrics *observability.Metrics
	opts    Options

	mu       sync.RWMutex
	snapshot *models.Snapshot
	ready    atomic.Bool
}

func NewReportService(api ReportAPI, logger *logrus.Logger, metrics *observability.Metrics, opts Options) ReportService {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &reportService{
		api:      api,
		logger:   logger,
		metrics:  metrics,
		opts:     opts,
		snapshot: &models.Snapshot{Reports: []models.Report{}},
	}
}

// Reports возвращает текущий снимок; снимок не изменяется после сохранения
func (s *reportService) Reports() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *reportService) store(snapshot *models.Snapshot) {
	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()
	s.metrics.SnapshotReports.Set(float64(len(snapshot.Reports)))
}

// Refresh загружает список отчетов и заменяет снимок целиком.
// Последний завершившийся запрос побеждает, даже если он был отправлен раньше.
func (s *reportService) Refresh(ctx context.Context) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "report",
		"method":  "Refresh",
	})

	reports, err := s.api.ListReports(ctx, s.opts.PollToken)
	if err != nil {
		s.metrics.Polls.WithLabelValues("error").Inc()
		log.WithError(err).Error("Failed to fetch reports")
		if !s.opts.Production {
			s.store(&models.Snapshot{Reports: []models.Report{}, FetchedAt: s.opts.Clock.Now()})
		}
		return fmt.Errorf("service: could not refresh reports: %w", err)
	}

	snapshot := &models.Snapshot{Reports: reports, FetchedAt: s.opts.Clock.Now()}
	s.store(snapshot)
	s.ready.Store(true)
	s.metrics.Polls.WithLabelValues("success").Inc()
	log.WithField("count", len(reports)).Debug("Reports refreshed")

	if s.opts.Cache != nil {
		if err := s.opts.Cache.SaveSnapshot(ctx, snapshot); err != nil {
			log.WithError(err).Warn("Failed to cache report snapshot")
		}
	}
	if s.opts.Observer != nil {
		s.opts.Observer.Observe(ctx, reports)
	}
	return nil
}

// Restore подставляет снимок из кеша до первого опроса
func (s *reportService) Restore(ctx context.Context) error {
	if s.opts.Cache == nil {
		return nil
	}
	log := s.logger.WithFields(logrus.Fields{
		"service": "report",
		"method":  "Restore",
	})

	snapshot, err := s.opts.Cache.LoadSnapshot(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to load cached snapshot")
		return fmt.Errorf("service: could not restore snapshot: %w", err)
	}
	if snapshot == nil {
		log.Info("No cached snapshot found")
		return nil
	}

	s.store(snapshot)
	s.ready.Store(true)
	log.WithFields(logrus.Fields{
		"count":      len(snapshot.Reports),
		"fetched_at": snapshot.FetchedAt,
	}).Info("Restored cached snapshot")
	return nil
}

// Report ищет отчет в текущем снимке, при промахе идет во внешний API
func (s *reportService) Report(ctx context.Context, token string, id int64) (*models.Report, error) {
	if report, ok := s.Reports().Find(id); ok {
		return report, nil
	}

	report, err := s.api.GetReport(ctx, token, id)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service":   "report",
			"method":    "Report",
			"report_id": id,
		}).WithError(err).Warn("Failed to get report from upstream")
		return nil, fmt.Errorf("service: could not get report: %w", err)
	}
	return report, nil
}

// Submit отправляет черновик. Пустой черновик игнорируется без запросов.
// После успешной отправки черновик очищается и выполняется ровно одно обновление.
func (s *reportService) Submit(ctx context.Context, token string, draft *models.Draft) (bool, error) {
	if draft == nil || draft.IsEmpty() {
		s.metrics.Submissions.WithLabelValues("noop").Inc()
		return false, nil
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "Submit",
		"has_image": draft.HasImage(),
	})
	log.Info("Submitting new report")

	created, err := s.api.CreateReport(ctx, token, draft.ToCreate())
	if err != nil {
		s.metrics.Submissions.WithLabelValues("error").Inc()
		log.WithError(err).Error("Failed to create report")
		return false, fmt.Errorf("service: could not submit report: %w", err)
	}
	s.metrics.Submissions.WithLabelValues("submitted").Inc()
	if created != nil {
		log = log.WithField("report_id", created.ID)
	}
	log.Info("Report submitted successfully")

	draft.Reset()

	// ошибка обновления уже залогирована, отправка при этом состоялась
	_ = s.Refresh(ctx)
	return true, nil
}

// CheckReadiness возвращает nil, если есть хотя бы один загруженный снимок
func (s *reportService) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return ErrNotReady
	}
	return nil
}
