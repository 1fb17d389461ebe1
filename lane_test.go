package sumonet

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLane(t *testing.T, attrib map[string]string) *Lane {
	lane, err := NewLane(attrib)
	require.NoError(t, err)
	return lane
}

// buildTwoLaneEdge returns a straight two-lane road ending at the given
// junction type. Lane index 0 is the outer lane, index 1 the inner one.
func buildTwoLaneEdge(t *testing.T, junctionType JunctionType) *Edge {
	edge := NewEdge(map[string]string{"id": "E1", "from": "J0", "to": "J1"})
	edge.AppendLane(mustLane(t, map[string]string{"id": "E1_0", "index": "0", "speed": "13.89", "shape": "0.0,0.0 50.0,0.0"}))
	edge.AppendLane(mustLane(t, map[string]string{"id": "E1_1", "index": "1", "speed": "13.89", "shape": "0.0,3.2 50.0,3.2"}))
	edge.ToJunction = &Junction{ID: "J1", Type: junctionType}
	return edge
}

func markingPurposes(markings []Marking) []string {
	purposes := make([]string, 0, len(markings))
	for i := range markings {
		purposes = append(purposes, markings[i].Purpose)
	}
	return purposes
}

func TestLaneConstruction(t *testing.T) {
	lane := mustLane(t, map[string]string{"id": "E1_0", "index": "0", "speed": "13.89", "shape": "0.0,0.0 50.0,0.0"})
	assert.Equal(t, DefaultLaneWidth, lane.Width)
	assert.True(t, lane.Allows.PermitsAll())

	lane = mustLane(t, map[string]string{"id": "E1_0", "index": "0", "shape": "0.0,0.0 50.0,0.0", "width": "2.5", "allow": "bicycle"})
	assert.Equal(t, 2.5, lane.Width)
	assert.Equal(t, LaneTypeBicycle, lane.LaneType())

	_, err := NewLane(map[string]string{"id": "E1_0", "shape": "0.0,0.0"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDegenerateGeometry)

	_, err = NewLane(map[string]string{"id": "E1_0", "shape": "0.0;0.0 1.0;1.0"})
	require.Error(t, err)
}

func TestLaneTypes(t *testing.T) {
	crossingEdge := NewEdge(map[string]string{"id": ":J1_c0", "function": "crossing"})
	crossingLane := mustLane(t, map[string]string{"id": ":J1_c0_0", "index": "0", "shape": "0.0,0.0 4.0,0.0", "allow": "pedestrian"})
	crossingEdge.AppendLane(crossingLane)
	assert.Equal(t, LaneTypeCrosswalk, crossingLane.LaneType())

	sidewalk := mustLane(t, map[string]string{"id": "E1_0", "index": "0", "shape": "0.0,0.0 4.0,0.0", "allow": "pedestrian"})
	assert.Equal(t, LaneTypePedestrian, sidewalk.LaneType())

	closed := mustLane(t, map[string]string{"id": "E1_0", "index": "0", "shape": "0.0,0.0 4.0,0.0", "allow": "none"})
	assert.Equal(t, LaneTypeNone, closed.LaneType())

	busLane := mustLane(t, map[string]string{"id": "E1_0", "index": "0", "shape": "0.0,0.0 4.0,0.0", "disallow": "passenger"})
	assert.Equal(t, LaneTypeNoPassenger, busLane.LaneType())

	road := mustLane(t, map[string]string{"id": "E1_0", "index": "0", "shape": "0.0,0.0 4.0,0.0"})
	assert.Equal(t, LaneTypeOther, road.LaneType())
	assert.Equal(t, "#000000", road.Color())
}

func TestGuessMarkingsTwoLanes(t *testing.T) {
	edge := buildTwoLaneEdge(t, JUNCTION_PRIORITY)

	outer, err := edge.GetLane(0)
	require.NoError(t, err)
	markings, err := outer.GuessMarkings(DefaultRenderConfig())
	require.NoError(t, err)
	require.Equal(t, []string{MarkingLane, MarkingOuter}, markingPurposes(markings))
	assert.Equal(t, [2]float64{3, 9}, markings[0].Dashes)
	assert.False(t, markings[0].Solid())
	assert.Equal(t, "white", markings[0].Color)
	assert.True(t, markings[1].Solid())

	inner, err := edge.GetLane(1)
	require.NoError(t, err)
	markings, err = inner.GuessMarkings(DefaultRenderConfig())
	require.NoError(t, err)
	require.Equal(t, []string{MarkingCenter}, markingPurposes(markings))
	assert.Equal(t, "white", markings[0].Color)
	assert.True(t, markings[0].Solid())
	// inner left edge sits half a lane width above the centerline
	assert.Equal(t, orb.LineString{{0.0, 4.8}, {50.0, 4.8}}, markings[0].Alignment)
}

func TestGuessMarkingsStyleToggle(t *testing.T) {
	edge := buildTwoLaneEdge(t, JUNCTION_PRIORITY)
	inner, err := edge.GetLane(1)
	require.NoError(t, err)

	cfg := DefaultRenderConfig()
	cfg.Style = STYLE_USA
	usaMarkings, err := inner.GuessMarkings(cfg)
	require.NoError(t, err)
	eurMarkings, err := inner.GuessMarkings(DefaultRenderConfig())
	require.NoError(t, err)

	// the style switch moves and recolors the centerline, nothing else
	require.Equal(t, markingPurposes(eurMarkings), markingPurposes(usaMarkings))
	assert.Equal(t, "yellow", usaMarkings[0].Color)
	assert.Equal(t, orb.LineString{{0.0, 4.7}, {50.0, 4.7}}, usaMarkings[0].Alignment)

	cfg = RenderConfig{Style: STYLE_UNDEFINED}
	_, err = inner.GuessMarkings(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedConfiguration)
}

func TestGuessMarkingsCrossing(t *testing.T) {
	edge := NewEdge(map[string]string{"id": ":J1_c0", "function": "crossing"})
	lane := mustLane(t, map[string]string{"id": ":J1_c0_0", "index": "0", "shape": "0.0,0.0 4.0,0.0", "allow": "pedestrian", "width": "4.0"})
	edge.AppendLane(lane)

	for _, style := range []MarkingStyle{STYLE_EUR, STYLE_USA} {
		cfg := DefaultRenderConfig()
		cfg.Style = style
		markings, err := lane.GuessMarkings(cfg)
		require.NoError(t, err)
		require.Equal(t, []string{MarkingCrossing}, markingPurposes(markings))
		assert.Equal(t, "white", markings[0].Color)
		assert.Equal(t, [2]float64{0.5, 0.5}, markings[0].Dashes)
		assert.Equal(t, 4.0, markings[0].LineWidth)
	}
}

func TestGuessMarkingsSkipped(t *testing.T) {
	internalEdge := NewEdge(map[string]string{"id": ":J1_0", "function": "internal"})
	internalLane := mustLane(t, map[string]string{"id": ":J1_0_0", "index": "0", "shape": "0.0,0.0 4.0,0.0"})
	internalEdge.AppendLane(internalLane)
	markings, err := internalLane.GuessMarkings(DefaultRenderConfig())
	require.NoError(t, err)
	assert.Empty(t, markings)

	waterEdge := NewEdge(map[string]string{"id": "W1"})
	waterLane := mustLane(t, map[string]string{"id": "W1_0", "index": "0", "shape": "0.0,0.0 4.0,0.0", "allow": "ship"})
	waterEdge.AppendLane(waterLane)
	markings, err = waterLane.GuessMarkings(DefaultRenderConfig())
	require.NoError(t, err)
	assert.Empty(t, markings)
}

func TestGuessMarkingsSidewalkOuter(t *testing.T) {
	edge := NewEdge(map[string]string{"id": "E1", "from": "J0", "to": "J1"})
	edge.AppendLane(mustLane(t, map[string]string{"id": "E1_0", "index": "0", "shape": "0.0,0.0 50.0,0.0", "allow": "pedestrian"}))
	edge.AppendLane(mustLane(t, map[string]string{"id": "E1_1", "index": "1", "shape": "0.0,3.2 50.0,3.2"}))

	sidewalk, err := edge.GetLane(0)
	require.NoError(t, err)
	markings, err := sidewalk.GuessMarkings(DefaultRenderConfig())
	require.NoError(t, err)
	// the divider towards the road stays, the outer stripe is suppressed
	assert.Equal(t, []string{MarkingLane}, markingPurposes(markings))
	assert.True(t, markings[0].Solid())
}

func TestRequiresStopLine(t *testing.T) {
	orphan := mustLane(t, map[string]string{"id": "E1_0", "index": "0", "shape": "0.0,0.0 50.0,0.0"})
	assert.False(t, orphan.RequiresStopLine())

	edge := buildTwoLaneEdge(t, JUNCTION_ALWAYS_STOP)
	for _, lane := range edge.Lanes {
		assert.True(t, lane.RequiresStopLine())
	}

	edge = buildTwoLaneEdge(t, JUNCTION_ZIPPER)
	for _, lane := range edge.Lanes {
		assert.False(t, lane.RequiresStopLine())
	}

	edge = buildTwoLaneEdge(t, JUNCTION_PRIORITY)
	lane, err := edge.GetLane(0)
	require.NoError(t, err)
	assert.False(t, lane.RequiresStopLine())
	lane.Requests = append(lane.Requests, &Request{Index: 0, Response: "000"})
	assert.False(t, lane.RequiresStopLine())
	lane.Requests = append(lane.Requests, &Request{Index: 1, Response: "010"})
	assert.True(t, lane.RequiresStopLine())
}

func TestStopLineMarkings(t *testing.T) {
	edge := buildTwoLaneEdge(t, JUNCTION_ALWAYS_STOP)
	lane, err := edge.GetLane(0)
	require.NoError(t, err)

	markings, err := lane.GuessMarkings(DefaultRenderConfig())
	require.NoError(t, err)
	require.Equal(t, []string{MarkingLane, MarkingOuter, MarkingStopLine}, markingPurposes(markings))

	stopLine := markings[2]
	assert.Equal(t, stopLineWidth, stopLine.LineWidth)
	// placed half the stop line width before the lane end, spanning its width
	assert.Equal(t, orb.LineString{{49.75, 1.6}, {49.75, -1.6}}, stopLine.Alignment)

	cfg := DefaultRenderConfig()
	cfg.StopLines = false
	markings, err = lane.GuessMarkings(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{MarkingLane, MarkingOuter}, markingPurposes(markings))
}

func TestStopLineLocations(t *testing.T) {
	edge := buildTwoLaneEdge(t, JUNCTION_ALWAYS_STOP)
	lane, err := edge.GetLane(0)
	require.NoError(t, err)

	// no declarations: everything stops at the lane end
	assert.Equal(t, []float64{0}, lane.StopLineLocations())

	// a declaration covering only buses leaves the remaining classes at 0
	edge.AppendStopOffset(map[string]string{"value": "5", "vClasses": "bus"})
	assert.Equal(t, []float64{5, 0}, lane.StopLineLocations())

	// a lane level declaration covering everything overrides the edge level
	lane.AppendStopOffset(map[string]string{"value": "3"})
	assert.Equal(t, []float64{3}, lane.StopLineLocations())
}
