// Package feed готовит карточки отчетов для ленты дашборда.
package feed

import (
	"fmt"
	"math"
	"time"

	"github.com/shenikar/crisisflow_dashboard/internal/models"
)

// EmptyMessage показывается, когда отчетов нет
const EmptyMessage = "No reports yet. Submit a report above."

const (
	ClassHigh    = "bg-red-500/20 text-red-400 border-red-500/50"
	ClassMedium  = "bg-yellow-500/20 text-yellow-400 border-yellow-500/50"
	ClassLow     = "bg-green-500/20 text-green-400 border-green-500/50"
	ClassUnknown = "bg-gray-500/20 text-gray-400 border-gray-500/50"
)

// Card - одна карточка ленты
type Card struct {
	ID                int64
	Hazard            string
	Verified          bool
	Text              string
	Location          string
	Severity          string
	SeverityClass     string
	Time              string
	Timestamp         time.Time
	HasConfidence     bool
	ConfidencePercent int
	ConfidenceWidth   string
}

// SeverityClass сопоставляет уровень опасности CSS-классам бейджа без учета регистра
func SeverityClass(severity *string) string {
	switch models.ParseSeverity(severity) {
	case models.SeverityHigh:
		return ClassHigh
	case models.SeverityMedium:
		return ClassMedium
	case models.SeverityLow:
		return ClassLow
	}
	return ClassUnknown
}

// BuildCard превращает отчет в карточку; время показывается в loc
func BuildCard(r *models.Report, loc *time.Location) Card {
	if loc == nil {
		loc = time.Local
	}
	c := Card{
		ID:            r.ID,
		Hazard:        valueOr(r.HazardType, "Unknown"),
		Verified:      r.IsVerified,
		Text:          r.RawText,
		Location:      valueOr(r.Location, ""),
		Severity:      valueOr(r.Severity, "Unknown"),
		SeverityClass: SeverityClass(r.Severity),
		Timestamp:     r.Timestamp,
	}
	if !r.Timestamp.IsZero() {
		c.Time = r.Timestamp.In(loc).Format("15:04:05")
	}
	// нулевая уверенность, как и отсутствующая, не показывается
	if r.ConfidenceScore != nil && *r.ConfidenceScore != 0 {
		score := *r.ConfidenceScore
		c.HasConfidence = true
		c.ConfidencePercent = int(math.Round(score * 100))
		c.ConfidenceWidth = fmt.Sprintf("%.2f%%", score*100)
	}
	return c
}

// BuildCards сохраняет порядок отчетов из снимка
func BuildCards(reports []models.Report, loc *time.Location) []Card {
	cards := make([]Card, 0, len(reports))
	for i := range reports {
		cards = append(cards, BuildCard(&reports[i], loc))
	}
	return cards
}

func valueOr(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
