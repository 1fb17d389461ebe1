package sumonet

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConnection(t *testing.T) {
	connection := NewConnection(map[string]string{
		"from": "E1", "to": "E2", "fromLane": "1", "toLane": "2",
		"via": ":J1_0_1", "dir": "l", "state": "o",
	})
	assert.Equal(t, "E1_1", connection.FromLaneID())
	assert.Equal(t, "E2_2", connection.ToLaneID())
	assert.Equal(t, ":J1_0_1", connection.ViaID)
	assert.Nil(t, connection.Shape)

	connection = NewConnection(map[string]string{
		"from": "E1", "to": "E2", "fromLane": "0", "toLane": "0",
		"shape": "0.0,0.0 5.0,5.0",
	})
	assert.Equal(t, orb.LineString{{0.0, 0.0}, {5.0, 5.0}}, connection.Shape)
}

func TestSplicePolygonUnlinked(t *testing.T) {
	connection := NewConnection(map[string]string{
		"from": "E1", "to": "E2", "fromLane": "0", "toLane": "0", "via": ":J1_0_0",
	})
	_, err := connection.SplicePolygon()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingGeometryPrecondition)
}

func TestSplicePolygonStraight(t *testing.T) {
	net := buildTestNetwork(t)
	net.Link()
	connection := net.Connections[0]

	splice, err := connection.SplicePolygon()
	require.NoError(t, err)
	require.Len(t, splice, 1)

	// a straight through movement yields the rectangle of the via lane with
	// its corners pinned to the neighbouring lane bodies
	correct := orb.Ring{{50.0, -1.6}, {60.0, -1.6}, {60.0, 1.6}, {50.0, 1.6}, {50.0, -1.6}}
	assert.Equal(t, correct, splice[0])
}

func TestSplicePolygonTakesWidthFromSource(t *testing.T) {
	net := buildTestNetwork(t)
	net.Link()
	connection := net.Connections[0]
	connection.FromLane.Width = 2.0

	splice, err := connection.SplicePolygon()
	require.NoError(t, err)
	require.Len(t, splice, 1)
	// the via body narrows to the source lane width while the far corners
	// stay pinned to the destination lane body
	correct := orb.Ring{{50.0, -1.0}, {60.0, -1.6}, {60.0, 1.6}, {50.0, 1.0}, {50.0, -1.0}}
	assert.Equal(t, correct, splice[0])
}
