package sumonet

import (
	"strconv"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Connection is a directed permitted movement from one lane to another,
// optionally via an internal lane. Lane and edge references are resolved
// during linking; until then only the textual identifiers are set.
type Connection struct {
	FromEdgeID    string
	ToEdgeID      string
	FromLaneIndex int
	ToLaneIndex   int
	ViaID         string
	Dir           string
	State         string
	Shape         orb.LineString

	FromEdge *Edge
	ToEdge   *Edge
	FromLane *Lane
	ToLane   *Lane
	ViaLane  *Lane
}

// NewConnection builds a Connection from a flat attribute record.
func NewConnection(attrib map[string]string) *Connection {
	fromLaneIndex, _ := strconv.Atoi(attrib["fromLane"])
	toLaneIndex, _ := strconv.Atoi(attrib["toLane"])
	connection := Connection{
		FromEdgeID:    attrib["from"],
		ToEdgeID:      attrib["to"],
		FromLaneIndex: fromLaneIndex,
		ToLaneIndex:   toLaneIndex,
		ViaID:         attrib["via"],
		Dir:           attrib["dir"],
		State:         attrib["state"],
	}
	if shape, ok := attrib["shape"]; ok {
		if coords, err := parseShape(shape); err == nil {
			connection.Shape = coords
		}
	}
	return &connection
}

// FromLaneID returns the composite id of the source lane.
func (connection *Connection) FromLaneID() string {
	return connection.FromEdgeID + "_" + strconv.Itoa(connection.FromLaneIndex)
}

// ToLaneID returns the composite id of the destination lane.
func (connection *Connection) ToLaneID() string {
	return connection.ToEdgeID + "_" + strconv.Itoa(connection.ToLaneIndex)
}

// SplicePolygon generates the polygon bridging the from-, via- and to-lanes.
// The alignment is taken from the via-lane with its end points adjusted to
// the corners of the from- and to-lane bodies; the width is taken from the
// from-lane. All three lane references must be resolved, otherwise the
// derivation fails with ErrMissingGeometryPrecondition.
func (connection *Connection) SplicePolygon() (orb.Polygon, error) {
	if connection.FromLane == nil || connection.ToLane == nil || connection.ViaLane == nil {
		return nil, errors.Wrapf(ErrMissingGeometryPrecondition,
			"connection %s_%d->%s_%d needs resolved from-, to- and via-lanes",
			connection.FromEdgeID, connection.FromLaneIndex, connection.ToEdgeID, connection.ToLaneIndex)
	}
	halfWidth := connection.FromLane.Width / 2
	fromLeft := offsetCurve(connection.FromLane.Alignment, connection.FromLane.Width/2)
	fromRight := offsetCurve(connection.FromLane.Alignment, -connection.FromLane.Width/2)
	toLeft := offsetCurve(connection.ToLane.Alignment, connection.ToLane.Width/2)
	toRight := offsetCurve(connection.ToLane.Alignment, -connection.ToLane.Width/2)
	viaLeft := offsetCurve(connection.ViaLane.Alignment, halfWidth)
	viaRight := offsetCurve(connection.ViaLane.Alignment, -halfWidth)
	for _, edge := range []orb.LineString{fromLeft, fromRight, toLeft, toRight, viaLeft, viaRight} {
		if edge == nil {
			return nil, errors.Wrapf(ErrDegenerateGeometry,
				"connection %s_%d->%s_%d has a degenerate lane offset",
				connection.FromEdgeID, connection.FromLaneIndex, connection.ToEdgeID, connection.ToLaneIndex)
		}
	}

	// Left boundary: from-lane terminal corner, via interior, to-lane initial
	// corner. Right boundary mirrors it.
	leftCoords := orb.LineString{fromLeft[len(fromLeft)-1]}
	leftCoords = append(leftCoords, viaLeft[1:len(viaLeft)-1]...)
	leftCoords = append(leftCoords, toLeft[0])
	rightCoords := orb.LineString{fromRight[len(fromRight)-1]}
	rightCoords = append(rightCoords, viaRight[1:len(viaRight)-1]...)
	rightCoords = append(rightCoords, toRight[0])

	ring := make(orb.Ring, 0, len(leftCoords)+len(rightCoords)+1)
	ring = append(ring, rightCoords...)
	for i := len(leftCoords) - 1; i >= 0; i-- {
		ring = append(ring, leftCoords[i])
	}
	ring = append(ring, rightCoords[0])
	return orb.Polygon{ring}, nil
}

// AsObject3D extrudes the splice polygon. Pedestrian-to-pedestrian splices
// are raised and tagged like walkable surfaces.
func (connection *Connection) AsObject3D(z float64, includeBottom bool) (Object3D, error) {
	shape, err := connection.SplicePolygon()
	if err != nil {
		return Object3D{}, err
	}
	height := 0.0
	material := "connection"
	if connection.FromLane.LaneType() == LaneTypePedestrian && connection.ToLane.LaneType() == LaneTypePedestrian {
		height = 0.15
		material = LaneTypePedestrian
	}
	return Object3DFromPolygons("cxn_via_"+connection.ViaID, material, []orb.Polygon{shape}, z, height, includeBottom), nil
}
