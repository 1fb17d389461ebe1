package sumonet

import (
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// JunctionType is the right-of-way regime tag of a junction.
type JunctionType uint16

const (
	JUNCTION_PRIORITY = JunctionType(iota + 1)
	JUNCTION_PRIORITY_STOP
	JUNCTION_RIGHT_BEFORE_LEFT
	JUNCTION_TRAFFIC_LIGHT
	JUNCTION_ALWAYS_STOP
	JUNCTION_ZIPPER
	JUNCTION_INTERNAL
	JUNCTION_DEAD_END
	JUNCTION_UNREGULATED
	JUNCTION_UNDEFINED = JunctionType(0)
)

func (iotaIdx JunctionType) String() string {
	return [...]string{"undefined", "priority", "priority_stop", "right_before_left", "traffic_light", "always_stop", "zipper", "internal", "dead_end", "unregulated"}[iotaIdx]
}

func junctionTypeFromString(s string) JunctionType {
	switch s {
	case "priority":
		return JUNCTION_PRIORITY
	case "priority_stop":
		return JUNCTION_PRIORITY_STOP
	case "right_before_left":
		return JUNCTION_RIGHT_BEFORE_LEFT
	case "traffic_light":
		return JUNCTION_TRAFFIC_LIGHT
	case "always_stop", "allway_stop":
		return JUNCTION_ALWAYS_STOP
	case "zipper":
		return JUNCTION_ZIPPER
	case "internal":
		return JUNCTION_INTERNAL
	case "dead_end":
		return JUNCTION_DEAD_END
	case "unregulated":
		return JUNCTION_UNREGULATED
	}
	return JUNCTION_UNDEFINED
}

// Junction is a node joining edges. Its incoming and internal lane id lists
// are resolved to lane references during linking. The boundary polygon is
// only present when the record supplied at least three coordinate pairs.
type Junction struct {
	ID            string
	Type          JunctionType
	Shape         orb.Polygon
	IncomingLanes []*Lane
	InternalLanes []*Lane

	incLaneIDs []string
	intLaneIDs []string
	requests   []*Request
}

// NewJunction builds a Junction from a flat attribute record.
func NewJunction(attrib map[string]string) *Junction {
	junction := Junction{
		ID:   attrib["id"],
		Type: junctionTypeFromString(attrib["type"]),
	}
	if incLanes := attrib["incLanes"]; incLanes != "" {
		junction.incLaneIDs = strings.Fields(incLanes)
	}
	if intLanes := attrib["intLanes"]; intLanes != "" {
		junction.intLaneIDs = strings.Fields(intLanes)
	}
	if shape, ok := attrib["shape"]; ok {
		coords, err := parseShape(shape)
		if err == nil && len(coords) > 2 {
			ring := make(orb.Ring, 0, len(coords)+1)
			ring = append(ring, coords...)
			ring = append(ring, coords[0])
			junction.Shape = orb.Polygon{ring}
		}
	}
	return &junction
}

// AppendRequest adds a right-of-way row to the junction.
func (junction *Junction) AppendRequest(request *Request) {
	request.parentJunction = junction
	junction.requests = append(junction.requests, request)
}

// Requests returns the junction's right-of-way table.
func (junction *Junction) Requests() []*Request {
	return junction.requests
}

// RequestByIndex returns the request with the given index. The failure is
// explicit since linking relies on it to trigger the deeper via-lane search.
func (junction *Junction) RequestByIndex(index int) (*Request, error) {
	for _, request := range junction.requests {
		if request.Index == index {
			return request, nil
		}
	}
	return nil, errors.Wrapf(ErrRequestNotFound, "junction %s has no request with index %d", junction.ID, index)
}

// RequestByInternalLane returns the request corresponding to the internal
// lane with the given id. Position in the internal-lane id list equals the
// request index.
func (junction *Junction) RequestByInternalLane(laneID string) (*Request, error) {
	for position, id := range junction.intLaneIDs {
		if id == laneID {
			return junction.RequestByIndex(position)
		}
	}
	return nil, errors.Wrapf(ErrRequestNotFound, "junction %s does not include lane %s", junction.ID, laneID)
}

// AsObject3D extrudes the junction boundary polygon.
func (junction *Junction) AsObject3D(z, extrudeHeight float64, includeBottom bool) (Object3D, error) {
	if junction.Shape == nil {
		return Object3D{}, errors.Wrapf(ErrMissingGeometryPrecondition, "junction %s has no boundary polygon", junction.ID)
	}
	return Object3DFromPolygons(junction.ID, "junction", []orb.Polygon{junction.Shape}, z, extrudeHeight, includeBottom), nil
}
