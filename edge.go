package sumonet

import (
	"strconv"

	"github.com/pkg/errors"
)

// EdgeFunction describes the role of an edge in the network.
type EdgeFunction uint16

const (
	FUNCTION_NORMAL = EdgeFunction(iota + 1)
	FUNCTION_INTERNAL
	FUNCTION_CROSSING
	FUNCTION_WALKINGAREA
	FUNCTION_UNDEFINED = EdgeFunction(0)
)

func (iotaIdx EdgeFunction) String() string {
	return [...]string{"undefined", "normal", "internal", "crossing", "walkingarea"}[iotaIdx]
}

func edgeFunctionFromString(s string) EdgeFunction {
	switch s {
	case "", "normal":
		return FUNCTION_NORMAL
	case "internal":
		return FUNCTION_INTERNAL
	case "crossing":
		return FUNCTION_CROSSING
	case "walkingarea":
		return FUNCTION_WALKINGAREA
	}
	return FUNCTION_UNDEFINED
}

// StopOffset is one stop-offset declaration: a distance from the lane end and
// the vehicle classes it applies to.
type StopOffset struct {
	Offset  float64
	Classes Allowance
}

func stopOffsetFromAttributes(attrib map[string]string) StopOffset {
	value, _ := strconv.ParseFloat(attrib["value"], 64)
	return StopOffset{
		Offset:  value,
		Classes: NewAllowance(attrib["vClasses"], attrib["exceptions"]),
	}
}

// Edge is a directed road segment composed of parallel lanes between two
// junctions. It owns its lanes; junction references are set during linking.
type Edge struct {
	ID             string
	Function       EdgeFunction
	FromJunctionID string
	ToJunctionID   string
	FromJunction   *Junction
	ToJunction     *Junction
	Lanes          []*Lane

	stopOffsets []StopOffset
}

// NewEdge builds an Edge from a flat attribute record.
func NewEdge(attrib map[string]string) *Edge {
	return &Edge{
		ID:             attrib["id"],
		Function:       edgeFunctionFromString(attrib["function"]),
		FromJunctionID: attrib["from"],
		ToJunctionID:   attrib["to"],
	}
}

// AppendLane makes the given lane a child of the edge.
func (edge *Edge) AppendLane(lane *Lane) {
	edge.Lanes = append(edge.Lanes, lane)
	lane.parentEdge = edge
}

// GetLane returns the lane with the given index.
func (edge *Edge) GetLane(index int) (*Lane, error) {
	for _, lane := range edge.Lanes {
		if lane.Index == index {
			return lane, nil
		}
	}
	return nil, errors.Wrapf(ErrLaneNotFound, "edge %s has no lane with index %d", edge.ID, index)
}

// LaneCount returns the number of owned lanes.
func (edge *Edge) LaneCount() int {
	return len(edge.Lanes)
}

// AppendStopOffset adds an edge-level stop-offset declaration.
func (edge *Edge) AppendStopOffset(attrib map[string]string) {
	edge.stopOffsets = append(edge.stopOffsets, stopOffsetFromAttributes(attrib))
}
