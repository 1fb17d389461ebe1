package sumonet

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

// Purposes of derived lane markings.
const (
	MarkingCenter   = "center"
	MarkingLane     = "lane"
	MarkingOuter    = "outer"
	MarkingCrossing = "crossing"
	MarkingStopLine = "stopline"
)

var dashesSolid = [2]float64{100, 0}

// Marking is one centerline-relative lane marking: an alignment curve, a
// stripe width, a color and a dash pattern. Dashes holds dash length and gap
// length; a zero gap means a solid stripe.
type Marking struct {
	Alignment orb.LineString
	LineWidth float64
	Color     string
	Dashes    [2]float64
	Purpose   string
}

// Solid reports whether the marking is a solid stripe.
func (marking *Marking) Solid() bool {
	return marking.Dashes[1] == 0
}

// Polygons converts the marking into filled polygons: a single flat-capped
// buffer for solid stripes, one buffer per dash otherwise. Returns
// ErrDegenerateGeometry when no polygon at all can be built.
func (marking *Marking) Polygons() ([]orb.Polygon, error) {
	if marking.Solid() {
		polygon := bufferFlatCap(marking.Alignment, marking.LineWidth/2)
		if len(polygon) == 0 {
			return nil, errors.Wrapf(ErrDegenerateGeometry, "%s marking has no drawable geometry", marking.Purpose)
		}
		return []orb.Polygon{polygon}, nil
	}
	dashLength, gap := marking.Dashes[0], marking.Dashes[1]
	length := planar.Length(marking.Alignment)
	polygons := []orb.Polygon{}
	for s := 0.0; s < length; s += dashLength + gap {
		end := s + dashLength
		if end > length {
			end = length
		}
		dashSegment := lineSubstring(marking.Alignment, s, end)
		if dashSegment == nil {
			continue
		}
		polygon := bufferFlatCap(dashSegment, marking.LineWidth/2)
		if len(polygon) == 0 {
			continue
		}
		polygons = append(polygons, polygon)
	}
	if len(polygons) == 0 {
		return nil, errors.Wrapf(ErrDegenerateGeometry, "%s marking has no drawable geometry", marking.Purpose)
	}
	return polygons, nil
}

// AsObject3D extrudes the marking polygons at the given z offset.
func (marking *Marking) AsObject3D(z, extrudeHeight float64, includeBottom bool) (Object3D, error) {
	polygons, err := marking.Polygons()
	if err != nil {
		return Object3D{}, err
	}
	return Object3DFromPolygons(marking.Purpose+"_marking", marking.Color+"_marking", polygons, z, extrudeHeight, includeBottom), nil
}
