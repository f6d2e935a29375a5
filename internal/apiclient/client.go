package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shenikar/crisisflow_dashboard/internal/config"
	"github.com/shenikar/crisisflow_dashboard/internal/models"
	"github.com/shenikar/crisisflow_dashboard/internal/observability"
	"github.com/sirupsen/logrus"
)

// ErrReportNotFound возвращается, когда внешний API ответил 404 на запрос отчета
var ErrReportNotFound = errors.New("report not found")

// StatusError - ответ внешнего API с кодом вне диапазона 2xx
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Client - REST-клиент внешнего API отчетов
type Client struct {
	endpoints  Endpoints
	httpClient *http.Client
	limit      int
	metrics    *observability.Metrics
	logger     *logrus.Logger
}

// NewClient создает клиента по конфигурации дашборда
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *logrus.Logger) *Client {
	return &Client{
		endpoints: NewEndpoints(cfg.APIURL),
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		limit:   cfg.ReportsLimit,
		metrics: metrics,
		logger:  logger,
	}
}

// Endpoints возвращает таблицу адресов клиента
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// ListReports получает список отчетов
func (c *Client) ListReports(ctx context.Context, token string) ([]models.Report, error) {
	params := url.Values{
		"skip":  {"0"},
		"limit": {strconv.Itoa(c.limit)},
	}

	var reports []models.Report
	if err := c.do(ctx, "list", http.MethodGet, c.endpoints.Reports+"?"+params.Encode(), token, nil, &reports); err != nil {
		return nil, fmt.Errorf("apiclient: list reports: %w", err)
	}
	if reports == nil {
		reports = []models.Report{}
	}
	return reports, nil
}

// GetReport получает один отчет по ID
func (c *Client) GetReport(ctx context.Context, token string, id int64) (*models.Report, error) {
	var report models.Report
	err := c.do(ctx, "get", http.MethodGet, c.endpoints.Report(id), token, nil, &report)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("apiclient: report %d: %w", id, ErrReportNotFound)
		}
		return nil, fmt.Errorf("apiclient: get report %d: %w", id, err)
	}
	return &report, nil
}

// CreateReport отправляет новый отчет и возвращает то, что сохранил внешний API
func (c *Client) CreateReport(ctx context.Context, token string, in models.ReportCreate) (*models.Report, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("apiclient: marshal report: %w", err)
	}

	var created models.Report
	if err := c.do(ctx, "create", http.MethodPost, c.endpoints.Reports, token, body, &created); err != nil {
		return nil, fmt.Errorf("apiclient: create report: %w", err)
	}
	return &created, nil
}

func (c *Client) do(ctx context.Context, method, httpMethod, fullURL, token string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, httpMethod, fullURL, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	setAuthHeader(req, token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("%s request: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{
			Method:     httpMethod,
			URL:        req.URL.Redacted(),
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"component": "apiclient",
		"method":    method,
		"status":    resp.StatusCode,
	}).Debug("Upstream request completed")
	return nil
}
