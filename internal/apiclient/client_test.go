package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shenikar/crisisflow_dashboard/internal/config"
	"github.com/shenikar/crisisflow_dashboard/internal/models"
	"github.com/shenikar/crisisflow_dashboard/internal/observability"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{
		APIURL:         baseURL,
		RequestTimeout: 5 * time.Second,
		ReportsLimit:   100,
	}
	return NewClient(cfg, observability.NewMetricsForTesting(), logger)
}

func TestNewEndpoints_TrimsTrailingSlash(t *testing.T) {
	e := NewEndpoints("http://api.local:8000/")

	assert.Equal(t, "http://api.local:8000/api/v1/reports/", e.Reports)
	assert.Equal(t, "http://api.local:8000/api/v1/reports/42", e.Report(42))
	assert.Equal(t, "http://api.local:8000/api/v1/incidents/", e.Incidents)
	assert.Equal(t, "http://api.local:8000/api/v1/auth/login", e.Auth.Login)
	assert.Equal(t, "http://api.local:8000/api/v1/auth/me", e.Auth.Me)
}

func TestClient_ListReports_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/reports/", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "raw_text": "Flooding near the pier", "location": "Pier 39",
			 "latitude": 37.8087, "longitude": -122.4098, "hazard_type": "flood",
			 "severity": "High", "confidence_score": 0.82,
			 "timestamp": "2025-01-10T12:30:00Z", "is_verified": false},
			{"id": 2, "raw_text": "Smoke", "location": null, "latitude": null, "longitude": null,
			 "hazard_type": null, "severity": null, "confidence_score": null,
			 "timestamp": "2025-01-10T12:31:00Z", "is_verified": true}
		]`))
	}))
	defer srv.Close()

	reports, err := testClient(srv.URL).ListReports(context.Background(), "secret")

	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, int64(1), reports[0].ID)
	require.NotNil(t, reports[0].Latitude)
	assert.InDelta(t, 37.8087, *reports[0].Latitude, 1e-9)
	assert.Equal(t, models.SeverityHigh, reports[0].SeverityLevel())
	assert.False(t, reports[1].HasCoordinates())
	assert.Nil(t, reports[1].Severity)
	assert.True(t, reports[1].IsVerified)
}

func TestClient_ListReports_NoTokenNoHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	reports, err := testClient(srv.URL).ListReports(context.Background(), "")

	require.NoError(t, err)
	assert.NotNil(t, reports)
	assert.Empty(t, reports)
}

func TestClient_ListReports_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"detail":"down"}`))
	}))
	defer srv.Close()

	reports, err := testClient(srv.URL).ListReports(context.Background(), "")

	require.Error(t, err)
	assert.Nil(t, reports)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestClient_ListReports_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := testClient(srv.URL).ListReports(context.Background(), "")

	assert.ErrorContains(t, err, "list request")
}

func TestClient_GetReport_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/reports/9", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	report, err := testClient(srv.URL).GetReport(context.Background(), "", 9)

	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestClient_CreateReport_SendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/reports/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Tree down on Market St", body["raw_text"])
		_, hasImage := body["image_base64"]
		assert.False(t, hasImage)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 5, "raw_text": "Tree down on Market St",
			"timestamp": "2025-01-10T12:30:00Z", "is_verified": false}`))
	}))
	defer srv.Close()

	created, err := testClient(srv.URL).CreateReport(context.Background(), "", models.ReportCreate{RawText: "Tree down on Market St"})

	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)
}

func TestResolveToken_Precedence(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "fallback", ResolveToken(req, "auth_token", "fallback"))

	req.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-header", ResolveToken(req, "auth_token", "fallback"))

	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "from-cookie"})
	assert.Equal(t, "from-cookie", ResolveToken(req, "auth_token", "fallback"))
}

func TestExpiredTokenCookie(t *testing.T) {
	c := ExpiredTokenCookie("auth_token", false)

	assert.Equal(t, "auth_token", c.Name)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
	assert.True(t, c.HttpOnly)
}
