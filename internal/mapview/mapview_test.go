package mapview

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/shenikar/crisisflow_dashboard/internal/config"
	"github.com/shenikar/crisisflow_dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string    { return &s }
func num(f float64) *float64 { return &f }

func testBuilder() *Builder {
	return NewBuilder(&config.Config{
		MapCenterLat:           37.7749,
		MapCenterLng:           -122.4194,
		MapZoom:                12,
		DangerZoneRadiusMeters: 500,
	})
}

func TestMarkerColor(t *testing.T) {
	tests := []struct {
		name     string
		severity *string
		want     string
	}{
		{"high title case", str("High"), ColorHigh},
		{"high upper case", str("HIGH"), ColorHigh},
		{"medium", str("medium"), ColorMedium},
		{"low mixed case", str("lOw"), ColorLow},
		{"unknown value", str("extreme"), ColorUnknown},
		{"unset", nil, ColorUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MarkerColor(tt.severity))
		})
	}
}

func TestFallbackPoint_WithinRangeAndStable(t *testing.T) {
	b := testBuilder()

	for id := int64(-50); id < 500; id++ {
		lat, lng := b.FallbackPoint(id)
		assert.GreaterOrEqual(t, lat, 37.7749-0.05)
		assert.Less(t, lat, 37.7749+0.05)
		assert.GreaterOrEqual(t, lng, -122.4194-0.05)
		assert.Less(t, lng, -122.4194+0.05)

		lat2, lng2 := b.FallbackPoint(id)
		assert.Equal(t, lat, lat2)
		assert.Equal(t, lng, lng2)
	}

	lat1, lng1 := b.FallbackPoint(1)
	lat2, lng2 := b.FallbackPoint(2)
	assert.False(t, lat1 == lat2 && lng1 == lng2)
}

func TestBuild_UsesServerCoordinates(t *testing.T) {
	b := testBuilder()
	reports := []models.Report{
		{ID: 1, Latitude: num(40.0), Longitude: num(-74.0), Severity: str("Low")},
		{ID: 2, Latitude: num(40.0)}, // одной координаты недостаточно
	}

	layers := b.Build(reports)

	require.Len(t, layers.Markers, 2)
	assert.Equal(t, 40.0, layers.Markers[0].Lat)
	assert.Equal(t, -74.0, layers.Markers[0].Lng)
	assert.False(t, layers.Markers[0].Fallback)
	assert.Equal(t, ColorLow, layers.Markers[0].Color)

	assert.True(t, layers.Markers[1].Fallback)
	lat, lng := b.FallbackPoint(2)
	assert.Equal(t, lat, layers.Markers[1].Lat)
	assert.Equal(t, lng, layers.Markers[1].Lng)
}

func TestBuild_OneDangerZonePerHighSeverityReport(t *testing.T) {
	b := testBuilder()
	reports := []models.Report{
		{ID: 1, Severity: str("High"), Latitude: num(37.78), Longitude: num(-122.41)},
		{ID: 2, Severity: str("medium")},
		{ID: 3, Severity: str("high")},
		{ID: 4},
		{ID: 5, Severity: str("HIGH")},
	}

	layers := b.Build(reports)

	require.Len(t, layers.DangerZones, 3)
	ids := []int64{}
	for _, z := range layers.DangerZones {
		ids = append(ids, z.ReportID)
		assert.Equal(t, 500.0, z.RadiusMeters)
	}
	assert.Equal(t, []int64{1, 3, 5}, ids)

	// круг совпадает с маркером
	assert.Equal(t, layers.Markers[2].Lat, layers.DangerZones[1].Lat)
	assert.Equal(t, layers.Markers[2].Lng, layers.DangerZones[1].Lng)
}

func TestBuild_Empty(t *testing.T) {
	layers := testBuilder().Build(nil)

	assert.NotNil(t, layers.Markers)
	assert.NotNil(t, layers.DangerZones)
	assert.Empty(t, layers.Markers)
	assert.Empty(t, layers.DangerZones)
}

func TestPopup_DefaultsAndEscaping(t *testing.T) {
	p := Popup(&models.Report{RawText: `<script>alert("x")</script>`})

	assert.Contains(t, p, "<strong>Unknown</strong>")
	assert.Contains(t, p, "Location not specified")
	assert.Contains(t, p, "Severity: Unknown")
	assert.NotContains(t, p, "<script>")
	assert.Contains(t, p, "&lt;script&gt;")

	p = Popup(&models.Report{HazardType: str("fire"), Location: str("Pier 39"), Severity: str("High")})
	assert.Contains(t, p, "<strong>fire</strong>")
	assert.Contains(t, p, "Pier 39")
	assert.Contains(t, p, "Severity: High")
}

func TestGeoJSON_Layers(t *testing.T) {
	layers := testBuilder().Build([]models.Report{
		{ID: 7, Severity: str("High"), Latitude: num(37.8), Longitude: num(-122.5)},
		{ID: 8, Severity: str("Low"), Latitude: num(37.7), Longitude: num(-122.3)},
	})

	markers := MarkersGeoJSON(layers)
	require.Len(t, markers.Features, 2)
	assert.Equal(t, orb.Point{-122.5, 37.8}, markers.Features[0].Geometry)
	assert.Equal(t, "red", markers.Features[0].Properties["color"])

	zones := DangerZonesGeoJSON(layers)
	require.Len(t, zones.Features, 1)
	assert.Equal(t, 500.0, zones.Features[0].Properties["radius"])

	raw, err := json.Marshal(zones)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"FeatureCollection"`)
	assert.Contains(t, string(raw), `"coordinates":[-122.5,37.8]`)
}
