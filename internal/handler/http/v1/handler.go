package v1

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/crisisflow_dashboard/internal/apiclient"
	"github.com/shenikar/crisisflow_dashboard/internal/config"
	"github.com/shenikar/crisisflow_dashboard/internal/handler/http/middleware"
	"github.com/shenikar/crisisflow_dashboard/internal/mapview"
	"github.com/shenikar/crisisflow_dashboard/internal/service"
	"github.com/sirupsen/logrus"
)

// запас сверх base64 изображения на raw_text, префикс data URL и JSON
const submitOverheadBytes = 64 << 10

// submitBodyLimit - наибольшее тело запроса с изображением допустимого размера
func submitBodyLimit(maxImageBytes int64) int64 {
	return int64(base64.StdEncoding.EncodedLen(int(maxImageBytes))) + submitOverheadBytes
}

type Handler struct {
	reportService service.ReportService
	builder       *mapview.Builder
	logger        *logrus.Logger
	validate      *validator.Validate
	cfg           *config.Config
}

func NewHandler(reportService service.ReportService, builder *mapview.Builder, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		reportService: reportService,
		builder:       builder,
		logger:        logger,
		validate:      validator.New(),
		cfg:           cfg,
	}
}

// @Summary Get current report snapshot
// @Description Get the reports fetched by the last poll cycle.
// @Tags Reports
// @Produce json
// @Success 200 {object} ReportsResponse
// @Router /reports [get]
func (h *Handler) listReports(c *gin.Context) {
	c.JSON(http.StatusOK, SnapshotToReportsResponse(h.reportService.Reports()))
}

// @Summary Get report by ID
// @Description Get a single report from the snapshot, falling back to the reports API.
// @Tags Reports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 502 {object} map[string]string "Reports API unavailable"
// @Router /reports/{id} [get]
func (h *Handler) getReport(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return
	}
	log := h.logger.WithField("method", "getReport").WithField("id", id)

	report, err := h.reportService.Report(c.Request.Context(), middleware.TokenFromContext(c), id)
	if err != nil {
		if errors.Is(err, apiclient.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		log.WithError(err).Error("Failed to get report from service")
		c.JSON(http.StatusBadGateway, gin.H{"error": "reports API unavailable"})
		return
	}
	c.JSON(http.StatusOK, ModelToReportResponse(report))
}

// @Summary Submit a new report
// @Description Forward a report (text plus optional base64 image) to the reports API and refresh the snapshot. An empty draft is ignored.
// @Tags Reports
// @Accept json
// @Produce json
// @Param report body SubmitReportRequest true "Report submission"
// @Success 202 {object} SubmitReportResponse
// @Success 204 "Empty draft, nothing submitted"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 413 {object} map[string]string "Image or request body too large"
// @Failure 502 {object} map[string]string "Reports API rejected the submission"
// @Router /reports [post]
func (h *Handler) submitReport(c *gin.Context) {
	var input SubmitReportRequest
	log := h.logger.WithField("method", "submitReport").WithField("request_id", middleware.RequestID(c))

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, submitBodyLimit(h.cfg.MaxImageBytes))

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := DTOToDraft(input)
	if err != nil {
		log.WithError(err).Warn("Invalid image encoding")
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_base64 must be base64 or a base64 data URL"})
		return
	}
	if int64(len(draft.Image)) > h.cfg.MaxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}

	submitted, err := h.reportService.Submit(c.Request.Context(), middleware.TokenFromContext(c), draft)
	if err != nil {
		log.WithError(err).Error("Failed to submit report in service")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to submit report"})
		return
	}
	if !submitted {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusAccepted, SubmitReportResponse{Submitted: true})
}

// @Summary Get map settings
// @Tags Map
// @Produce json
// @Success 200 {object} MapConfigResponse
// @Router /map/config [get]
func (h *Handler) mapConfig(c *gin.Context) {
	view := h.builder.View()
	c.JSON(http.StatusOK, MapConfigResponse{
		CenterLat:       view.CenterLat,
		CenterLng:       view.CenterLng,
		Zoom:            view.Zoom,
		TileURL:         view.TileURL,
		TileAttribution: view.TileAttribution,
		TileMaxZoom:     view.TileMaxZoom,
		PollIntervalMs:  h.cfg.PollInterval.Milliseconds(),
	})
}

// @Summary Get report markers
// @Description GeoJSON FeatureCollection of report points coloured by severity.
// @Tags Map
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /map/markers [get]
func (h *Handler) markers(c *gin.Context) {
	layers := h.builder.Build(h.reportService.Reports().Reports)
	c.JSON(http.StatusOK, mapview.MarkersGeoJSON(layers))
}

// @Summary Get danger zones
// @Description GeoJSON FeatureCollection with one circle centre per high-severity report; radius in meters in the "radius" property.
// @Tags Map
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /map/danger-zones [get]
func (h *Handler) dangerZones(c *gin.Context) {
	layers := h.builder.Build(h.reportService.Reports().Reports)
	c.JSON(http.StatusOK, mapview.DangerZonesGeoJSON(layers))
}

// @Summary Store API token
// @Description Store the bearer token for the reports API in an HttpOnly cookie.
// @Tags Session
// @Accept json
// @Param token body TokenRequest true "Token"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Router /session/token [post]
func (h *Handler) setToken(c *gin.Context) {
	var input TokenRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	http.SetCookie(c.Writer, apiclient.TokenCookie(h.cfg.AuthCookieName, input.Token, h.cfg.IsProduction()))
	c.Status(http.StatusNoContent)
}

// @Summary Remove API token
// @Tags Session
// @Success 204 "No Content"
// @Router /session/token [delete]
func (h *Handler) clearToken(c *gin.Context) {
	http.SetCookie(c.Writer, apiclient.ExpiredTokenCookie(h.cfg.AuthCookieName, h.cfg.IsProduction()))
	c.Status(http.StatusNoContent)
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Get readiness status
// @Description Ready once a report snapshot has been loaded.
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Ready"
// @Failure 503 {object} map[string]string "Not ready"
// @Router /system/ready [get]
func (h *Handler) readyCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.reportService.CheckReadiness(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
