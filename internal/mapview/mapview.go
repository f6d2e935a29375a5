// Package mapview превращает снимок отчетов в слои карты: маркеры цвета опасности
// и круги опасных зон вокруг отчетов высокой опасности.
package mapview

import (
	"fmt"
	"html"
	"math/rand/v2"

	"github.com/shenikar/crisisflow_dashboard/internal/config"
	"github.com/shenikar/crisisflow_dashboard/internal/models"
)

const (
	// FallbackSpread - полный размах смещения в градусах, смещение лежит в [-0.05, 0.05)
	FallbackSpread = 0.1

	// фиксированная вторая половина зерна PCG, чтобы точка зависела только от ID
	fallbackSeed = 0x6372697369736677

	TileURL         = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	TileAttribution = "© OpenStreetMap contributors"
	TileMaxZoom     = 19
)

// Цвета маркеров по уровню опасности
const (
	ColorHigh    = "red"
	ColorMedium  = "orange"
	ColorLow     = "green"
	ColorUnknown = "blue"
)

// Marker - точка отчета на карте
type Marker struct {
	ReportID int64   `json:"report_id"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Color    string  `json:"color"`
	Severity string  `json:"severity"`
	Fallback bool    `json:"fallback"`
	Popup    string  `json:"popup"`
}

// DangerZone - круг вокруг отчета высокой опасности
type DangerZone struct {
	ReportID     int64   `json:"report_id"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	RadiusMeters float64 `json:"radius_meters"`
}

// Layers - оба слоя карты, построенные по одному снимку
type Layers struct {
	Markers     []Marker     `json:"markers"`
	DangerZones []DangerZone `json:"danger_zones"`
}

// View - начальные параметры карты для страницы
type View struct {
	CenterLat       float64 `json:"center_lat"`
	CenterLng       float64 `json:"center_lng"`
	Zoom            int     `json:"zoom"`
	TileURL         string  `json:"tile_url"`
	TileAttribution string  `json:"tile_attribution"`
	TileMaxZoom     int     `json:"tile_max_zoom"`
}

// Builder строит слои карты
type Builder struct {
	baseLat      float64
	baseLng      float64
	zoom         int
	radiusMeters float64
}

func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		baseLat:      cfg.MapCenterLat,
		baseLng:      cfg.MapCenterLng,
		zoom:         cfg.MapZoom,
		radiusMeters: cfg.DangerZoneRadiusMeters,
	}
}

// View возвращает настройки карты
func (b *Builder) View() View {
	return View{
		CenterLat:       b.baseLat,
		CenterLng:       b.baseLng,
		Zoom:            b.zoom,
		TileURL:         TileURL,
		TileAttribution: TileAttribution,
		TileMaxZoom:     TileMaxZoom,
	}
}

// MarkerColor сопоставляет уровень опасности цвету маркера без учета регистра
func MarkerColor(severity *string) string {
	switch models.ParseSeverity(severity) {
	case models.SeverityHigh:
		return ColorHigh
	case models.SeverityMedium:
		return ColorMedium
	case models.SeverityLow:
		return ColorLow
	}
	return ColorUnknown
}

// FallbackPoint - детерминированная точка около центра карты для отчета без координат
func (b *Builder) FallbackPoint(reportID int64) (lat, lng float64) {
	r := rand.New(rand.NewPCG(uint64(reportID), fallbackSeed))
	lat = b.baseLat + (r.Float64()-0.5)*FallbackSpread
	lng = b.baseLng + (r.Float64()-0.5)*FallbackSpread
	return lat, lng
}

// Point возвращает координаты сервера либо запасную точку
func (b *Builder) Point(r *models.Report) (lat, lng float64, fallback bool) {
	if r.HasCoordinates() {
		return *r.Latitude, *r.Longitude, false
	}
	lat, lng = b.FallbackPoint(r.ID)
	return lat, lng, true
}

// Build перестраивает оба слоя целиком по текущему списку отчетов
func (b *Builder) Build(reports []models.Report) Layers {
	layers := Layers{
		Markers:     make([]Marker, 0, len(reports)),
		DangerZones: make([]DangerZone, 0),
	}
	for i := range reports {
		r := &reports[i]
		lat, lng, fallback := b.Point(r)
		layers.Markers = append(layers.Markers, Marker{
			ReportID: r.ID,
			Lat:      lat,
			Lng:      lng,
			Color:    MarkerColor(r.Severity),
			Severity: orDefault(r.Severity, "Unknown"),
			Fallback: fallback,
			Popup:    Popup(r),
		})
		if r.SeverityLevel() == models.SeverityHigh {
			layers.DangerZones = append(layers.DangerZones, DangerZone{
				ReportID:     r.ID,
				Lat:          lat,
				Lng:          lng,
				RadiusMeters: b.radiusMeters,
			})
		}
	}
	return layers
}

// Popup собирает HTML всплывающей подсказки; все поля экранируются
func Popup(r *models.Report) string {
	return fmt.Sprintf(
		`<div class="popup"><strong>%s</strong><br/>%s<br/><small>Severity: %s</small><br/><small>%s</small></div>`,
		html.EscapeString(orDefault(r.HazardType, "Unknown")),
		html.EscapeString(orDefault(r.Location, "Location not specified")),
		html.EscapeString(orDefault(r.Severity, "Unknown")),
		html.EscapeString(r.RawText),
	)
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
