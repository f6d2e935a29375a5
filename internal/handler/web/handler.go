// Package web отдает страницу дашборда, отрендеренную на сервере: карту, ленту
// отчетов и форму отправки.
package web

import (
	"embed"
	"encoding/base64"
	"errors"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/shenikar/crisisflow_dashboard/internal/config"
	"github.com/shenikar/crisisflow_dashboard/internal/feed"
	"github.com/shenikar/crisisflow_dashboard/internal/handler/http/middleware"
	"github.com/shenikar/crisisflow_dashboard/internal/mapview"
	"github.com/shenikar/crisisflow_dashboard/internal/models"
	"github.com/shenikar/crisisflow_dashboard/internal/service"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templatesFS embed.FS

// сообщения формы
const (
	msgSubmitFailed  = "Failed to submit report. Please try again."
	msgImageTooLarge = "Image is too large."
	msgImageInvalid  = "Could not read the selected image."
	msgFormTooLarge  = "Report is too large."
)

// запас сверх изображения на текст и служебные поля формы
const formOverheadBytes = 1 << 20

// запас на "data:<content-type>;base64," в сохраненном изображении
const dataURLPrefixBytes = 256

// FeedData - данные частичного шаблона ленты
type FeedData struct {
	Cards        []feed.Card
	EmptyMessage string
}

// DraftData - состояние формы, которое возвращается пользователю
type DraftData struct {
	Text       string
	PreviewURL template.URL
}

// PageData - данные страницы дашборда
type PageData struct {
	Feed           FeedData
	Draft          DraftData
	Error          string
	View           mapview.View
	PollIntervalMs int64
}

type Handler struct {
	reportService service.ReportService
	builder       *mapview.Builder
	logger        *logrus.Logger
	cfg           *config.Config
	tmpl          *template.Template
	loc           *time.Location
}

func NewHandler(reportService service.ReportService, builder *mapview.Builder, logger *logrus.Logger, cfg *config.Config) (*Handler, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{
		reportService: reportService,
		builder:       builder,
		logger:        logger,
		cfg:           cfg,
		tmpl:          tmpl,
		loc:           time.Local,
	}, nil
}

// RegisterRoutes регистрирует страницы дашборда
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.dashboard)
	r.GET("/feed", h.feed)
	r.POST("/reports", h.submit)
}

func (h *Handler) dashboard(c *gin.Context) {
	h.renderPage(c, http.StatusOK, &models.Draft{}, "")
}

func (h *Handler) feed(c *gin.Context) {
	c.Render(http.StatusOK, render.HTML{Template: h.tmpl, Name: "feed", Data: h.feedData()})
}

func (h *Handler) submit(c *gin.Context) {
	log := h.logger.WithField("method", "submit").WithField("request_id", middleware.RequestID(c))

	draft := &models.Draft{}
	if err := h.readForm(c, draft); err != nil {
		log.WithError(err).Warn("Rejected report form")
		status, msg := http.StatusBadRequest, msgImageInvalid
		switch {
		case errors.Is(err, errImageTooLarge):
			status, msg = http.StatusRequestEntityTooLarge, msgImageTooLarge
		case errors.Is(err, errFormTooLarge):
			status, msg = http.StatusRequestEntityTooLarge, msgFormTooLarge
		}
		h.renderPage(c, status, draft, msg)
		return
	}

	if _, err := h.reportService.Submit(c.Request.Context(), middleware.TokenFromContext(c), draft); err != nil {
		log.WithError(err).Error("Failed to submit report")
		h.renderPage(c, http.StatusBadGateway, draft, msgSubmitFailed)
		return
	}

	// пустой черновик тоже ведет на страницу: отправлять было нечего
	c.Redirect(http.StatusSeeOther, "/")
}

var (
	errImageTooLarge = errors.New("image too large")
	errFormTooLarge  = errors.New("report form too large")
)

// readForm читает форму по частям: поля, пришедшие до слишком большого
// изображения, остаются в черновике
func (h *Handler) readForm(c *gin.Context, draft *models.Draft) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxImageBytes+formOverheadBytes)

	mr, err := c.Request.MultipartReader()
	if errors.Is(err, http.ErrNotMultipart) {
		if err := c.Request.ParseForm(); err != nil {
			return bodyError(err)
		}
		draft.Text = c.Request.PostFormValue("raw_text")
		if c.Request.PostFormValue("remove_image") != "" {
			return nil
		}
		return h.restoreImage(draft, c.Request.PostFormValue("retained_image"))
	}
	if err != nil {
		return err
	}

	var (
		retained string
		remove   bool
	)
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return bodyError(err)
		}

		switch part.FormName() {
		case "raw_text":
			draft.Text, err = readField(part, formOverheadBytes, errFormTooLarge)
		case "retained_image":
			retained, err = readField(part, retainedImageLimit(h.cfg.MaxImageBytes), errImageTooLarge)
		case "remove_image":
			var v string
			v, err = readField(part, formOverheadBytes, errFormTooLarge)
			remove = v != ""
		case "image":
			err = h.readUpload(part, draft)
		}
		part.Close()
		if err != nil {
			return bodyError(err)
		}
	}

	if draft.HasImage() || remove {
		return nil
	}
	return h.restoreImage(draft, retained)
}

// restoreImage восстанавливает изображение, сохраненное в форме после неудачной отправки
func (h *Handler) restoreImage(draft *models.Draft, retained string) error {
	if retained == "" {
		return nil
	}
	if err := draft.SetImageFromDataURL(retained); err != nil {
		return err
	}
	if int64(len(draft.Image)) > h.cfg.MaxImageBytes {
		draft.Image = nil
		return errImageTooLarge
	}
	return nil
}

func (h *Handler) readUpload(part *multipart.Part, draft *models.Draft) error {
	data, err := io.ReadAll(io.LimitReader(part, h.cfg.MaxImageBytes+1))
	if err != nil {
		return err
	}
	if int64(len(data)) > h.cfg.MaxImageBytes {
		return errImageTooLarge
	}
	if len(data) == 0 {
		return nil
	}
	draft.Image = data
	draft.ImageName = part.FileName()
	draft.ImageContentType = part.Header.Get("Content-Type")
	if draft.ImageContentType == "" || draft.ImageContentType == "application/octet-stream" {
		draft.ImageContentType = http.DetectContentType(data)
	}
	return nil
}

// readField читает значение поля не длиннее limit байт
func readField(r io.Reader, limit int64, tooLarge error) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > limit {
		return "", tooLarge
	}
	return string(data), nil
}

// retainedImageLimit - длина data URL для изображения максимального размера
func retainedImageLimit(maxImageBytes int64) int64 {
	return int64(base64.StdEncoding.EncodedLen(int(maxImageBytes))) + dataURLPrefixBytes
}

// bodyError превращает срабатывание MaxBytesReader в errFormTooLarge
func bodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return errFormTooLarge
	}
	return err
}

func (h *Handler) feedData() FeedData {
	return FeedData{
		Cards:        feed.BuildCards(h.reportService.Reports().Reports, h.loc),
		EmptyMessage: feed.EmptyMessage,
	}
}

func (h *Handler) renderPage(c *gin.Context, status int, draft *models.Draft, errMsg string) {
	data := PageData{
		Feed: h.feedData(),
		Draft: DraftData{
			Text: draft.Text,
			// data URL собран из наших же байтов и безопасен для src
			PreviewURL: template.URL(draft.PreviewDataURL()),
		},
		Error:          errMsg,
		View:           h.builder.View(),
		PollIntervalMs: h.cfg.PollInterval.Milliseconds(),
	}
	c.Render(status, render.HTML{Template: h.tmpl, Name: "dashboard.html", Data: data})
}
