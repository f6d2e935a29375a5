package feed

import (
	"testing"
	"time"

	"github.com/shenikar/crisisflow_dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string    { return &s }
func num(f float64) *float64 { return &f }

func TestSeverityClass(t *testing.T) {
	assert.Equal(t, ClassHigh, SeverityClass(str("High")))
	assert.Equal(t, ClassHigh, SeverityClass(str("hIgH")))
	assert.Equal(t, ClassMedium, SeverityClass(str("MEDIUM")))
	assert.Equal(t, ClassLow, SeverityClass(str("low")))
	assert.Equal(t, ClassUnknown, SeverityClass(str("severe")))
	assert.Equal(t, ClassUnknown, SeverityClass(nil))
}

func TestBuildCard_Full(t *testing.T) {
	ts := time.Date(2025, time.January, 10, 12, 30, 5, 0, time.UTC)
	r := &models.Report{
		ID:              4,
		RawText:         "Power lines down",
		Location:        str("Castro"),
		HazardType:      str("infrastructure"),
		Severity:        str("Medium"),
		ConfidenceScore: num(0.876),
		Timestamp:       ts,
		IsVerified:      true,
	}

	c := BuildCard(r, time.UTC)

	assert.Equal(t, "infrastructure", c.Hazard)
	assert.True(t, c.Verified)
	assert.Equal(t, "Castro", c.Location)
	assert.Equal(t, "Medium", c.Severity)
	assert.Equal(t, ClassMedium, c.SeverityClass)
	assert.Equal(t, "12:30:05", c.Time)
	require.True(t, c.HasConfidence)
	assert.Equal(t, 88, c.ConfidencePercent)
	assert.Equal(t, "87.60%", c.ConfidenceWidth)
}

func TestBuildCard_Defaults(t *testing.T) {
	c := BuildCard(&models.Report{ID: 1, RawText: "?"}, time.UTC)

	assert.Equal(t, "Unknown", c.Hazard)
	assert.Equal(t, "Unknown", c.Severity)
	assert.Equal(t, ClassUnknown, c.SeverityClass)
	assert.Empty(t, c.Location)
	assert.Empty(t, c.Time)
	assert.False(t, c.HasConfidence)
}

func TestBuildCard_ZeroConfidenceHidden(t *testing.T) {
	c := BuildCard(&models.Report{ConfidenceScore: num(0)}, time.UTC)
	assert.False(t, c.HasConfidence)
}

func TestBuildCards_PreservesOrder(t *testing.T) {
	cards := BuildCards([]models.Report{{ID: 3}, {ID: 1}, {ID: 2}}, nil)

	require.Len(t, cards, 3)
	assert.Equal(t, []int64{3, 1, 2}, []int64{cards[0].ID, cards[1].ID, cards[2].ID})
	assert.NotNil(t, BuildCards(nil, nil))
}
