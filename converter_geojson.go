package sumonet

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
)

// PrepareGeoJSONLinestring returns GeoJSON representation of LineString
func PrepareGeoJSONLinestring(line orb.LineString) string {
	if len(line) == 0 {
		return ""
	}
	pts2d := make([][]float64, len(line))
	for i := range line {
		pts2d[i] = []float64{line[i][0], line[i][1]}
	}
	b, err := geojson.NewLineStringGeometry(pts2d).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// PrepareGeoJSONPolygon returns GeoJSON representation of Polygon
func PrepareGeoJSONPolygon(polygon orb.Polygon) string {
	if len(polygon) == 0 {
		return ""
	}
	rings := make([][][]float64, len(polygon))
	for i, ring := range polygon {
		rings[i] = make([][]float64, len(ring))
		for j := range ring {
			rings[i][j] = []float64{ring[j][0], ring[j][1]}
		}
	}
	b, err := geojson.NewPolygonGeometry(rings).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}
