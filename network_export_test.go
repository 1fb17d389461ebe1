package sumonet

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, fname string) [][]string {
	file, err := os.Open(fname)
	require.NoError(t, err)
	defer file.Close()
	reader := csv.NewReader(file)
	reader.Comma = ';'
	records, err := reader.ReadAll()
	require.NoError(t, err)
	return records
}

func TestParseGeometryFormat(t *testing.T) {
	for name, format := range map[string]GeometryFormat{"wkt": GEOM_WKT, "GeoJSON": GEOM_GEOJSON, "polyline": GEOM_POLYLINE} {
		got, err := ParseGeometryFormat(name)
		require.NoError(t, err)
		assert.Equal(t, format, got)
	}
	_, err := ParseGeometryFormat("svg")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedConfiguration)
}

func TestExportToCSV(t *testing.T) {
	net := buildTestNetwork(t)
	net.Link()

	dir := t.TempDir()
	err := net.ExportToCSV(filepath.Join(dir, "export.csv"), DefaultRenderConfig(), GEOM_WKT)
	require.NoError(t, err)

	lanes := readCSV(t, filepath.Join(dir, "export_lanes.csv"))
	require.Len(t, lanes, 4)
	assert.Equal(t, []string{"id", "edge_id", "index", "lane_type", "speed", "width", "color", "requires_stop_line", "geom"}, lanes[0])
	for _, row := range lanes[1:] {
		assert.True(t, strings.HasPrefix(row[8], "POLYGON"), "lane geometry should be WKT, but got '%s'", row[8])
	}

	markings := readCSV(t, filepath.Join(dir, "export_markings.csv"))
	require.Greater(t, len(markings), 1)
	purposes := map[string]bool{}
	for _, row := range markings[1:] {
		purposes[row[1]] = true
		assert.True(t, strings.HasPrefix(row[6], "LINESTRING"), "marking geometry should be WKT, but got '%s'", row[6])
	}
	assert.True(t, purposes[MarkingCenter])
	assert.True(t, purposes[MarkingStopLine])

	junctions := readCSV(t, filepath.Join(dir, "export_junctions.csv"))
	require.Len(t, junctions, 4)

	connections := readCSV(t, filepath.Join(dir, "export_connections.csv"))
	require.Len(t, connections, 2)
	assert.Equal(t, "E1_0", connections[1][0])
	assert.Equal(t, "E2_0", connections[1][1])
	assert.True(t, strings.HasPrefix(connections[1][5], "POLYGON"), "splice geometry should be WKT, but got '%s'", connections[1][5])
}

func TestExportToCSVRejectsBadConfig(t *testing.T) {
	net := buildTestNetwork(t)
	net.Link()
	err := net.ExportToCSV(filepath.Join(t.TempDir(), "export.csv"), RenderConfig{}, GEOM_WKT)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedConfiguration)
}
