package mapview

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// MarkersGeoJSON - слой маркеров как FeatureCollection точек
func MarkersGeoJSON(layers Layers) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, m := range layers.Markers {
		f := geojson.NewFeature(orb.Point{m.Lng, m.Lat})
		f.ID = m.ReportID
		f.Properties["report_id"] = m.ReportID
		f.Properties["color"] = m.Color
		f.Properties["severity"] = m.Severity
		f.Properties["fallback"] = m.Fallback
		f.Properties["popup"] = m.Popup
		fc.Append(f)
	}
	return fc
}

// DangerZonesGeoJSON - слой опасных зон: центр круга и радиус в свойстве radius
func DangerZonesGeoJSON(layers Layers) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, z := range layers.DangerZones {
		f := geojson.NewFeature(orb.Point{z.Lng, z.Lat})
		f.ID = z.ReportID
		f.Properties["report_id"] = z.ReportID
		f.Properties["radius"] = z.RadiusMeters
		fc.Append(f)
	}
	return fc
}
