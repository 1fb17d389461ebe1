package sumonet

import (
	"github.com/paulmach/orb"
	polyline "github.com/twpayne/go-polyline"
)

// PreparePolylineLinestring returns the encoded-polyline representation of
// LineString
func PreparePolylineLinestring(line orb.LineString) string {
	if len(line) == 0 {
		return ""
	}
	coords := make([][]float64, len(line))
	for i := range line {
		coords[i] = []float64{line[i][1], line[i][0]}
	}
	return string(polyline.EncodeCoords(coords))
}

// PreparePolylinePolygon returns the encoded-polyline representation of the
// exterior ring of Polygon
func PreparePolylinePolygon(polygon orb.Polygon) string {
	if len(polygon) == 0 {
		return ""
	}
	return PreparePolylineLinestring(orb.LineString(polygon[0]))
}
