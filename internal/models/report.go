package models

import (
	"strings"
	"time"
)

// Severity - нормализованный уровень опасности отчета
type Severity string

const (
	SeverityHigh    Severity = "high"
	SeverityMedium  Severity = "medium"
	SeverityLow     Severity = "low"
	SeverityUnknown Severity = ""
)

// ParseSeverity сравнивает строку без учета регистра, все незнакомое - SeverityUnknown
func ParseSeverity(s *string) Severity {
	if s == nil {
		return SeverityUnknown
	}
	switch Severity(strings.ToLower(strings.TrimSpace(*s))) {
	case SeverityHigh:
		return SeverityHigh
	case SeverityMedium:
		return SeverityMedium
	case SeverityLow:
		return SeverityLow
	}
	return SeverityUnknown
}

// Report - отчет об инциденте в том виде, в каком его отдает внешний API
type Report struct {
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
}

// SeverityLevel возвращает нормализованный уровень опасности
func (r *Report) SeverityLevel() Severity {
	return ParseSeverity(r.Severity)
}

// HasCoordinates - true, если сервер прислал обе координаты
func (r *Report) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// ReportCreate - тело POST-запроса на создание отчета
type ReportCreate struct {
	RawText     string `json:"raw_text"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

// Snapshot - список отчетов, полученный за один цикл опроса
type Snapshot struct {
	Reports   []Report  `json:"reports"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Find ищет отчет по ID
func (s *Snapshot) Find(id int64) (*Report, bool) {
	if s == nil {
		return nil, false
	}
	for i := range s.Reports {
		if s.Reports[i].ID == id {
			r := s.Reports[i]
			return &r, true
		}
	}
	return nil, false
}
