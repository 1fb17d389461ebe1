package sumonet

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// PrepareWKTLinestring returns WKT representation of LineString
func PrepareWKTLinestring(line orb.LineString) string {
	if len(line) == 0 {
		return ""
	}
	return wkt.MarshalString(line)
}

// PrepareWKTPolygon returns WKT representation of Polygon
func PrepareWKTPolygon(polygon orb.Polygon) string {
	if len(polygon) == 0 {
		return ""
	}
	return wkt.MarshalString(polygon)
}
