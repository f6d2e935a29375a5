package v1

import (
	"time"
)

// SubmitReportRequest DTO для отправки нового отчета
// @Description DTO для отправки нового отчета: текст и необязательное изображение
type SubmitReportRequest struct {
	RawText     string `json:"raw_text" validate:"max=10000"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

// SubmitReportResponse DTO для ответа на отправку
// @Description Submitted=false означает пустой черновик, запрос не отправлялся
type SubmitReportResponse struct {
	Submitted bool `json:"submitted"`
}

// ReportResponse DTO отчета с полями, вычисленными для отображения
// @Description DTO отчета
type ReportResponse struct {
	ID              int64     `json:"id"`
	RawText         string    `json:"raw_text"`
	Location        *string   `json:"location"`
	Latitude        *float64  `json:"latitude"`
	Longitude       *float64  `json:"longitude"`
	HazardType      *string   `json:"hazard_type"`
	Severity        *string   `json:"severity"`
	ConfidenceScore *float64  `json:"confidence_score"`
	Timestamp       time.Time `json:"timestamp"`
	IsVerified      bool      `json:"is_verified"`
	MarkerColor     string    `json:"marker_color"`
	SeverityClass   string    `json:"severity_class"`
}

// ReportsResponse DTO текущего снимка
// @Description DTO текущего снимка отчетов
type ReportsResponse struct {
	Count     int               `json:"count"`
	FetchedAt time.Time         `json:"fetched_at"`
	Reports   []*ReportResponse `json:"reports"`
}

// TokenRequest DTO для сохранения токена в cookie
// @Description DTO для сохранения токена
type TokenRequest struct {
	Token string `json:"token" validate:"required,max=4096"`
}

// MapConfigResponse DTO с настройками карты
// @Description DTO с настройками карты
type MapConfigResponse struct {
	CenterLat       float64 `json:"center_lat"`
	CenterLng       float64 `json:"center_lng"`
	Zoom            int     `json:"zoom"`
	TileURL         string  `json:"tile_url"`
	TileAttribution string  `json:"tile_attribution"`
	TileMaxZoom     int     `json:"tile_max_zoom"`
	PollIntervalMs  int64   `json:"poll_interval_ms"`
}
