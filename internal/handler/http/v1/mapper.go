package v1

import (
	"encoding/base64"
	"strings"

	"github.com/shenikar/crisisflow_dashboard/internal/feed"
	"github.com/shenikar/crisisflow_dashboard/internal/mapview"
	"github.com/shenikar/crisisflow_dashboard/internal/models"
)

// DTOToDraft преобразует запрос в черновик. Изображение принимается
// как чистый base64 или как data URL.
func DTOToDraft(dto SubmitReportRequest) (*models.Draft, error) {
	draft := &models.Draft{Text: dto.RawText}
	img := strings.TrimSpace(dto.ImageBase64)
	if img == "" {
		return draft, nil
	}
	if strings.HasPrefix(img, "data:") {
		if err := draft.SetImageFromDataURL(img); err != nil {
			return nil, err
		}
		return draft, nil
	}
	data, err := base64.StdEncoding.DecodeString(img)
	if err != nil {
		return nil, err
	}
	draft.Image = data
	return draft, nil
}

// ModelToReportResponse преобразует доменную модель в DTO для ответа
func ModelToReportResponse(model *models.Report) *ReportResponse {
	return &ReportResponse{
		ID:              model.ID,
		RawText:         model.RawText,
		Location:        model.Location,
		Latitude:        model.Latitude,
		Longitude:       model.Longitude,
		HazardType:      model.HazardType,
		Severity:        model.Severity,
		ConfidenceScore: model.ConfidenceScore,
		Timestamp:       model.Timestamp,
		IsVerified:      model.IsVerified,
		MarkerColor:     mapview.MarkerColor(model.Severity),
		SeverityClass:   feed.SeverityClass(model.Severity),
	}
}

// SnapshotToReportsResponse преобразует снимок в DTO
func SnapshotToReportsResponse(snapshot *models.Snapshot) *ReportsResponse {
	responses := make([]*ReportResponse, len(snapshot.Reports))
	for i := range snapshot.Reports {
		responses[i] = ModelToReportResponse(&snapshot.Reports[i])
	}
	return &ReportsResponse{
		Count:     len(responses),
		FetchedAt: snapshot.FetchedAt,
		Reports:   responses,
	}
}
