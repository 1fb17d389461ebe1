package sumonet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

// Lane types produced by the classification in LaneType().
const (
	LaneTypeCrosswalk   = "crosswalk"
	LaneTypePedestrian  = "pedestrian"
	LaneTypeBicycle     = "bicycle"
	LaneTypeShip        = "ship"
	LaneTypeAuthority   = "authority"
	LaneTypeNone        = "none"
	LaneTypeNoPassenger = "no_passenger"
	LaneTypeOther       = "other"
)

// Lane is one traffic lane of an edge: a centerline, a width and a permission
// set. Connection and request lists are populated during linking. All derived
// geometry is a pure function of the fields set at construction.
type Lane struct {
	ID        string
	Index     int
	Speed     float64
	Allows    Allowance
	Width     float64
	EndOffset float64
	Alignment orb.LineString

	IncomingConnections []*Connection
	OutgoingConnections []*Connection
	Requests            []*Request

	parentEdge  *Edge
	stopOffsets []StopOffset
}

// NewLane builds a Lane from a flat attribute record. The record must carry a
// shape with at least two points.
func NewLane(attrib map[string]string) (*Lane, error) {
	alignment, err := parseShape(attrib["shape"])
	if err != nil {
		return nil, errors.Wrapf(err, "can't parse shape of lane %s", attrib["id"])
	}
	if len(alignment) < 2 {
		return nil, errors.Wrapf(ErrDegenerateGeometry, "lane %s needs at least 2 shape points", attrib["id"])
	}
	index, _ := strconv.Atoi(attrib["index"])
	speed, _ := strconv.ParseFloat(attrib["speed"], 64)
	width := DefaultLaneWidth
	if w, ok := attrib["width"]; ok {
		width, err = strconv.ParseFloat(w, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "can't parse width of lane %s", attrib["id"])
		}
	}
	endOffset := 0.0
	if e, ok := attrib["endOffset"]; ok {
		endOffset, _ = strconv.ParseFloat(e, 64)
	}
	return &Lane{
		ID:        attrib["id"],
		Index:     index,
		Speed:     speed,
		Allows:    NewAllowance(attrib["allow"], attrib["disallow"]),
		Width:     width,
		EndOffset: endOffset,
		Alignment: alignment,
	}, nil
}

// ParentEdge returns the edge owning this lane.
func (lane *Lane) ParentEdge() *Edge {
	return lane.parentEdge
}

// BodyPolygon returns the lane body: the centerline buffered by half the lane
// width with flat caps. Recomputed on every call from the unchanged inputs.
func (lane *Lane) BodyPolygon() orb.Polygon {
	return bufferFlatCap(lane.Alignment, lane.Width/2)
}

// InverseIndex returns the lane index counted from the inside out.
func (lane *Lane) InverseIndex() int {
	if lane.parentEdge == nil {
		return 0
	}
	return lane.parentEdge.LaneCount() - lane.Index - 1
}

// AppendStopOffset adds a lane-level stop-offset declaration, overriding the
// edge-level ones.
func (lane *Lane) AppendStopOffset(attrib map[string]string) {
	lane.stopOffsets = append(lane.stopOffsets, stopOffsetFromAttributes(attrib))
}

// LaneType classifies the lane by its permission set and the parent edge
// function. The test order matters: crosswalk shadows generic pedestrian.
func (lane *Lane) LaneType() string {
	if lane.Allows.IsExactly(CLASS_PEDESTRIAN) {
		if lane.parentEdge != nil && lane.parentEdge.Function == FUNCTION_CROSSING {
			return LaneTypeCrosswalk
		}
		return LaneTypePedestrian
	}
	if lane.Allows.IsExactly(CLASS_BICYCLE) {
		return LaneTypeBicycle
	}
	if lane.Allows.IsExactly(CLASS_SHIP) {
		return LaneTypeShip
	}
	if lane.Allows.IsExactly(CLASS_AUTHORITY) {
		return LaneTypeAuthority
	}
	if lane.Allows.PermitsNone() {
		return LaneTypeNone
	}
	if !lane.Allows.MemberClass(CLASS_PASSENGER) {
		return LaneTypeNoPassenger
	}
	return LaneTypeOther
}

// Color returns the default fill color for the lane type.
func (lane *Lane) Color() string {
	if color, ok := laneColorScheme[lane.LaneType()]; ok {
		return color
	}
	return laneColorScheme[LaneTypeOther]
}

// StopLineLocations returns the distances from the lane end at which stop
// lines are placed. Lane-level stop offsets override edge-level ones; the
// allowances of all declarations are accrued, and if they fail to cover every
// class this lane permits, location 0 is appended so that unaddressed classes
// always stop at the lane end.
func (lane *Lane) StopLineLocations() []float64 {
	stopOffsets := lane.stopOffsets
	if len(stopOffsets) == 0 && lane.parentEdge != nil {
		stopOffsets = lane.parentEdge.stopOffsets
	}
	locations := make([]float64, 0, len(stopOffsets)+1)
	accrued := AllowanceNone()
	hasZero := false
	for _, stopOffset := range stopOffsets {
		accrued = accrued.Union(stopOffset.Classes)
		locations = append(locations, stopOffset.Offset)
		if stopOffset.Offset == 0 {
			hasZero = true
		}
	}
	if !accrued.IsSupersetOf(lane.Allows) && !hasZero {
		locations = append(locations, 0)
	}
	return locations
}

// RequiresStopLine determines whether the lane should carry a stop line,
// based on the type of its destination junction and the right-of-way rows
// attached during linking. A lane whose destination junction is unresolved
// never requires one.
func (lane *Lane) RequiresStopLine() bool {
	if lane.parentEdge == nil || lane.parentEdge.ToJunction == nil {
		return false
	}
	switch lane.parentEdge.ToJunction.Type {
	case JUNCTION_INTERNAL, JUNCTION_ZIPPER:
		return false
	case JUNCTION_ALWAYS_STOP:
		return true
	}
	for _, request := range lane.Requests {
		if strings.Contains(request.Response, "1") {
			return true
		}
	}
	return false
}

// GuessMarkings derives the lane markings for the given configuration. Rules
// are shared between the supported jurisdiction styles; only stripe color and
// centerline placement differ. Degenerate per-marking geometry is skipped
// with a diagnostic and never aborts the remaining markings.
func (lane *Lane) GuessMarkings(cfg RenderConfig) ([]Marking, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	markings := []Marking{}
	if lane.parentEdge == nil {
		return markings, nil
	}
	if lane.parentEdge.Function == FUNCTION_INTERNAL || lane.Allows.IsExactly(CLASS_SHIP) || lane.Allows.IsExactly(CLASS_RAIL) {
		return markings, nil
	}
	if lane.parentEdge.Function == FUNCTION_CROSSING {
		markings = append(markings, Marking{
			Alignment: lane.Alignment,
			LineWidth: lane.Width,
			Color:     "white",
			Dashes:    [2]float64{0.5, 0.5},
			Purpose:   MarkingCrossing,
		})
		return markings, nil
	}

	params := markingStyleParams[cfg.Style]
	lw := stripeWidth * cfg.StripeWidthScale
	if lane.InverseIndex() == 0 {
		// Centerline stripe of the innermost lane
		inset := 0.0
		if params.centerInset {
			inset = lw
		}
		if leftEdge := offsetCurve(lane.Alignment, lane.Width/2-inset); leftEdge != nil {
			markings = append(markings, Marking{
				Alignment: leftEdge,
				LineWidth: lw,
				Color:     params.centerColor,
				Dashes:    dashesSolid,
				Purpose:   MarkingCenter,
			})
		}
	} else if adjacentLane, err := lane.parentEdge.GetLane(lane.Index + 1); err == nil {
		leftEdge := offsetCurve(lane.Alignment, lane.Width/2)
		dashes := [2]float64{3, 9}
		if lane.Allows.MemberClass(CLASS_BICYCLE) != adjacentLane.Allows.MemberClass(CLASS_BICYCLE) {
			// Solid line where bicycles may not change lanes
			dashes = dashesSolid
		} else if lane.Allows.MemberClass(CLASS_PASSENGER) != adjacentLane.Allows.MemberClass(CLASS_PASSENGER) {
			if lane.Allows.MemberClass(CLASS_BICYCLE) {
				// Short dashes where bikes may change lanes but passenger vehicles not
				dashes = [2]float64{1, 3}
			} else {
				dashes = dashesSolid
			}
		}
		if leftEdge != nil {
			markings = append(markings, Marking{
				Alignment: leftEdge,
				LineWidth: lw,
				Color:     "white",
				Dashes:    dashes,
				Purpose:   MarkingLane,
			})
		}
	}
	// Outer marking of the rightmost lane, suppressed for pedestrian-only
	// side lanes
	if lane.Index == 0 && !(lane.Allows.MemberClass(CLASS_PEDESTRIAN) && !lane.Allows.PermitsAll()) {
		if rightEdge := offsetCurve(lane.Alignment, -lane.Width/2); rightEdge != nil {
			markings = append(markings, Marking{
				Alignment: rightEdge,
				LineWidth: lw,
				Color:     "white",
				Dashes:    dashesSolid,
				Purpose:   MarkingOuter,
			})
		}
	}

	if cfg.StopLines && !lane.Allows.IsExactly(CLASS_PEDESTRIAN) && !lane.Allows.IsExactly(CLASS_SHIP) && lane.RequiresStopLine() {
		length := planar.Length(lane.Alignment)
		for _, location := range lane.StopLineLocations() {
			pos := length - location - stopLineWidth/2
			endSlice := lineSubstring(lane.Alignment, pos-1, pos)
			if endSlice == nil {
				fmt.Printf("Warning. Degenerate stop line geometry for lane %s at location %f\n", lane.ID, location)
				continue
			}
			endLeft := offsetCurve(endSlice, lane.Width/2)
			endRight := offsetCurve(endSlice, -lane.Width/2)
			if endLeft == nil || endRight == nil {
				fmt.Printf("Warning. Degenerate stop line geometry for lane %s at location %f\n", lane.ID, location)
				continue
			}
			markings = append(markings, Marking{
				Alignment: orb.LineString{endLeft[len(endLeft)-1], endRight[len(endRight)-1]},
				LineWidth: stopLineWidth,
				Color:     "white",
				Dashes:    dashesSolid,
				Purpose:   MarkingStopLine,
			})
		}
	}
	return markings, nil
}

// AsObject3D extrudes the lane body. Pedestrian lanes are raised like curbs.
func (lane *Lane) AsObject3D(z float64, includeBottom bool) Object3D {
	height := 0.0
	if lane.LaneType() == LaneTypePedestrian {
		height = 0.15
	}
	return Object3DFromPolygons(lane.ID, lane.LaneType()+"_lane", []orb.Polygon{lane.BodyPolygon()}, z, height, includeBottom)
}

// MarkingsAsObjects3D derives the lane markings and extrudes each of them
// slightly above the lane to prevent z fighting. Crossings sit above regular
// stripes.
func (lane *Lane) MarkingsAsObjects3D(cfg RenderConfig, zLane, extrudeHeight float64, includeBottom bool) ([]Object3D, error) {
	markings, err := lane.GuessMarkings(cfg)
	if err != nil {
		return nil, err
	}
	objects := make([]Object3D, 0, len(markings))
	for i := range markings {
		z := zLane + 0.001
		if markings[i].Purpose == MarkingCrossing {
			z = zLane + 0.002
		}
		object, err := markings[i].AsObject3D(z, extrudeHeight, includeBottom)
		if err != nil {
			fmt.Printf("Warning. Can't build 3D object for %s marking of lane %s: %s\n", markings[i].Purpose, lane.ID, err.Error())
			continue
		}
		objects = append(objects, object)
	}
	return objects, nil
}
