package sumonet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Network owns all edges, junctions and connections of one road network.
// Objects are constructed independently from attribute records and
// cross-referenced by a single linking pass.
type Network struct {
	Edges       map[string]*Edge
	Junctions   map[string]*Junction
	Connections []*Connection
}

// NewNetwork returns an empty network.
func NewNetwork() *Network {
	return &Network{
		Edges:     make(map[string]*Edge),
		Junctions: make(map[string]*Junction),
	}
}

// AddEdge stores the edge under its id.
func (net *Network) AddEdge(edge *Edge) {
	net.Edges[edge.ID] = edge
}

// AddJunction stores the junction under its id.
func (net *Network) AddJunction(junction *Junction) {
	net.Junctions[junction.ID] = junction
}

// AddConnection appends the connection to the network.
func (net *Network) AddConnection(connection *Connection) {
	net.Connections = append(net.Connections, connection)
}

// splitLaneID splits a composite lane id "<edgeId>_<index>" on its last
// underscore-delimited integer suffix. Edge ids may contain underscores
// themselves.
func splitLaneID(laneID string) (string, int, bool) {
	idx := strings.LastIndex(laneID, "_")
	if idx < 0 {
		return "", 0, false
	}
	index, err := strconv.Atoi(laneID[idx+1:])
	if err != nil {
		return "", 0, false
	}
	return laneID[:idx], index, true
}

// GetLane resolves a composite lane id to a lane reference. Returns nil when
// either the edge or the lane cannot be found.
func (net *Network) GetLane(laneID string) *Lane {
	edgeID, index, ok := splitLaneID(laneID)
	if !ok {
		return nil
	}
	edge, ok := net.Edges[edgeID]
	if !ok {
		return nil
	}
	lane, err := edge.GetLane(index)
	if err != nil {
		return nil
	}
	return lane
}

// ConnectionsFrom returns all connections originating at the lane with the
// given composite id.
func (net *Network) ConnectionsFrom(laneID string) []*Connection {
	connections := []*Connection{}
	for _, connection := range net.Connections {
		if connection.FromLaneID() == laneID {
			connections = append(connections, connection)
		}
	}
	return connections
}

// ConnectionsTo returns all connections terminating at the lane with the
// given composite id.
func (net *Network) ConnectionsTo(laneID string) []*Connection {
	connections := []*Connection{}
	for _, connection := range net.Connections {
		if connection.ToLaneID() == laneID {
			connections = append(connections, connection)
		}
	}
	return connections
}

// ConnectionsVia returns all connections passing through the internal lane
// with the given id.
func (net *Network) ConnectionsVia(viaID string) []*Connection {
	connections := []*Connection{}
	for _, connection := range net.Connections {
		if connection.ViaID == viaID {
			connections = append(connections, connection)
		}
	}
	return connections
}

// Link runs the cross-referencing pass over all constructed objects:
// junction references on edges, lane references on junctions and
// connections, connection lists and right-of-way requests on lanes.
// Identifiers that fail to resolve are left unset, never fatal. All derived
// reference lists are reset first, so running the pass again on an already
// linked network yields identical references.
//
// The request search through chained internal lanes recurses exactly one
// level: a junction whose internal lanes hop through more than two internal
// segments is outside this contract.
func (net *Network) Link() {
	// Reset state derived by a previous pass
	for _, edge := range net.Edges {
		edge.FromJunction = nil
		edge.ToJunction = nil
		for _, lane := range edge.Lanes {
			lane.IncomingConnections = nil
			lane.OutgoingConnections = nil
			lane.Requests = nil
		}
	}

	// Link junctions to edges
	for _, edge := range net.Edges {
		edge.FromJunction = net.Junctions[edge.FromJunctionID]
		edge.ToJunction = net.Junctions[edge.ToJunctionID]
	}

	// Make junction-related links
	for _, junction := range net.Junctions {
		if junction.Type == JUNCTION_INTERNAL {
			continue
		}
		junction.IncomingLanes = junction.IncomingLanes[:0]
		junction.InternalLanes = junction.InternalLanes[:0]
		for _, laneID := range junction.incLaneIDs {
			if lane := net.GetLane(laneID); lane != nil {
				junction.IncomingLanes = append(junction.IncomingLanes, lane)
			}
		}
		for _, laneID := range junction.intLaneIDs {
			if lane := net.GetLane(laneID); lane != nil {
				junction.InternalLanes = append(junction.InternalLanes, lane)
			}
		}
		// Link connections and requests to incoming lanes
		for _, lane := range junction.IncomingLanes {
			lane.IncomingConnections = net.ConnectionsTo(lane.ID)
			lane.OutgoingConnections = net.ConnectionsFrom(lane.ID)
			for _, connection := range lane.OutgoingConnections {
				if connection.ViaID == "" {
					continue
				}
				request, err := junction.RequestByInternalLane(connection.ViaID)
				if err == nil {
					lane.Requests = append(lane.Requests, request)
					continue
				}
				// No request for the via-lane itself: it is an internal hop,
				// look one level deeper through the connections it feeds
				for _, internal := range net.ConnectionsFrom(connection.ViaID) {
					if internal.ViaID == "" {
						continue
					}
					request, err := junction.RequestByInternalLane(internal.ViaID)
					if err != nil {
						continue
					}
					lane.Requests = append(lane.Requests, request)
				}
			}
		}
	}

	// Link edges and lanes to connections
	for _, connection := range net.Connections {
		connection.ViaLane = nil
		if connection.ViaID != "" {
			connection.ViaLane = net.GetLane(connection.ViaID)
		}
		connection.FromEdge = net.Edges[connection.FromEdgeID]
		connection.FromLane = nil
		if connection.FromEdge != nil {
			if lane, err := connection.FromEdge.GetLane(connection.FromLaneIndex); err == nil {
				connection.FromLane = lane
			}
		}
		connection.ToEdge = net.Edges[connection.ToEdgeID]
		connection.ToLane = nil
		if connection.ToEdge != nil {
			if lane, err := connection.ToEdge.GetLane(connection.ToLaneIndex); err == nil {
				connection.ToLane = lane
			}
		}
	}
}

// Bounds returns the bounding box of all lane bodies.
func (net *Network) Bounds() orb.Bound {
	bound := orb.Bound{}
	first := true
	for _, edge := range net.Edges {
		for _, lane := range edge.Lanes {
			body := lane.BodyPolygon()
			if len(body) == 0 {
				continue
			}
			if first {
				bound = body.Bound()
				first = false
				continue
			}
			bound = bound.Union(body.Bound())
		}
	}
	return bound
}

// BuildObjects3D assembles the whole network as 3D objects: lane bodies and
// markings of non-internal edges, junction boundaries, and splice polygons of
// pedestrian-to-pedestrian connections. A failing object is skipped with a
// diagnostic without corrupting the rest.
func (net *Network) BuildObjects3D(cfg RenderConfig) ([]Object3D, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	objects := []Object3D{}
	for _, edge := range net.Edges {
		if edge.Function == FUNCTION_INTERNAL {
			continue
		}
		for _, lane := range edge.Lanes {
			if edge.Function != FUNCTION_CROSSING && edge.Function != FUNCTION_WALKINGAREA {
				objects = append(objects, lane.AsObject3D(0, false))
			}
			markingObjects, err := lane.MarkingsAsObjects3D(cfg, 0, 0, false)
			if err != nil {
				return nil, errors.Wrapf(err, "can't derive markings of lane %s", lane.ID)
			}
			objects = append(objects, markingObjects...)
		}
	}
	for _, junction := range net.Junctions {
		if junction.Shape == nil {
			continue
		}
		object, err := junction.AsObject3D(0, 0, false)
		if err != nil {
			fmt.Printf("Warning. Skipping junction %s: %s\n", junction.ID, err.Error())
			continue
		}
		objects = append(objects, object)
	}
	for _, connection := range net.Connections {
		if connection.ViaID == "" || connection.FromLane == nil || connection.ToLane == nil {
			continue
		}
		if connection.FromLane.LaneType() != LaneTypePedestrian || connection.ToLane.LaneType() != LaneTypePedestrian {
			continue
		}
		object, err := connection.AsObject3D(0, false)
		if err != nil {
			fmt.Printf("Warning. Skipping connection via %s: %s\n", connection.ViaID, err.Error())
			continue
		}
		objects = append(objects, object)
	}
	return objects, nil
}
