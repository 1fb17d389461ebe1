package sumonet

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// GeometryFormat selects the textual geometry representation of CSV exports.
type GeometryFormat uint16

const (
	GEOM_WKT = GeometryFormat(iota + 1)
	GEOM_GEOJSON
	GEOM_POLYLINE
	GEOM_UNDEFINED = GeometryFormat(0)
)

func (iotaIdx GeometryFormat) String() string {
	return [...]string{"undefined", "wkt", "geojson", "polyline"}[iotaIdx]
}

// ParseGeometryFormat resolves a format name ("wkt", "geojson" or
// "polyline").
func ParseGeometryFormat(s string) (GeometryFormat, error) {
	switch strings.ToLower(s) {
	case "wkt":
		return GEOM_WKT, nil
	case "geojson":
		return GEOM_GEOJSON, nil
	case "polyline":
		return GEOM_POLYLINE, nil
	}
	return GEOM_UNDEFINED, errors.Wrapf(ErrUnsupportedConfiguration, "geometry format '%s'", s)
}

func (iotaIdx GeometryFormat) linestring(line orb.LineString) string {
	switch iotaIdx {
	case GEOM_GEOJSON:
		return PrepareGeoJSONLinestring(line)
	case GEOM_POLYLINE:
		return PreparePolylineLinestring(line)
	default:
		return PrepareWKTLinestring(line)
	}
}

func (iotaIdx GeometryFormat) polygon(polygon orb.Polygon) string {
	switch iotaIdx {
	case GEOM_GEOJSON:
		return PrepareGeoJSONPolygon(polygon)
	case GEOM_POLYLINE:
		return PreparePolylinePolygon(polygon)
	default:
		return PrepareWKTPolygon(polygon)
	}
}

// ExportToCSV writes the derived primitives into four files next to fname:
// lanes, lane markings, junctions and connections, each with a geometry
// column in the requested format.
func (net *Network) ExportToCSV(fname string, cfg RenderConfig, geomFormat GeometryFormat) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	fnameParts := strings.Split(fname, ".csv")
	fnameLanes := fmt.Sprintf(fnameParts[0] + "_lanes.csv")
	fnameMarkings := fmt.Sprintf(fnameParts[0] + "_markings.csv")
	fnameJunctions := fmt.Sprintf(fnameParts[0] + "_junctions.csv")
	fnameConnections := fmt.Sprintf(fnameParts[0] + "_connections.csv")

	err := net.exportLanesToCSV(fnameLanes, geomFormat)
	if err != nil {
		return errors.Wrap(err, "Can't export lanes")
	}

	err = net.exportMarkingsToCSV(fnameMarkings, cfg, geomFormat)
	if err != nil {
		return errors.Wrap(err, "Can't export markings")
	}

	err = net.exportJunctionsToCSV(fnameJunctions, geomFormat)
	if err != nil {
		return errors.Wrap(err, "Can't export junctions")
	}

	err = net.exportConnectionsToCSV(fnameConnections, geomFormat)
	if err != nil {
		return errors.Wrap(err, "Can't export connections")
	}

	return nil
}

func (net *Network) exportLanesToCSV(fname string, geomFormat GeometryFormat) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"id", "edge_id", "index", "lane_type", "speed", "width", "color", "requires_stop_line", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, edge := range net.Edges {
		for _, lane := range edge.Lanes {
			err = writer.Write([]string{
				lane.ID,
				edge.ID,
				fmt.Sprintf("%d", lane.Index),
				lane.LaneType(),
				fmt.Sprintf("%f", lane.Speed),
				fmt.Sprintf("%f", lane.Width),
				lane.Color(),
				fmt.Sprintf("%t", lane.RequiresStopLine()),
				geomFormat.polygon(lane.BodyPolygon()),
			})
			if err != nil {
				return errors.Wrap(err, "Can't write lane")
			}
		}
	}
	return nil
}

func (net *Network) exportMarkingsToCSV(fname string, cfg RenderConfig, geomFormat GeometryFormat) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"lane_id", "purpose", "color", "linewidth", "dash_length", "dash_gap", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, edge := range net.Edges {
		for _, lane := range edge.Lanes {
			markings, err := lane.GuessMarkings(cfg)
			if err != nil {
				return errors.Wrapf(err, "Can't derive markings for lane %s", lane.ID)
			}
			for i := range markings {
				err = writer.Write([]string{
					lane.ID,
					markings[i].Purpose,
					markings[i].Color,
					fmt.Sprintf("%f", markings[i].LineWidth),
					fmt.Sprintf("%f", markings[i].Dashes[0]),
					fmt.Sprintf("%f", markings[i].Dashes[1]),
					geomFormat.linestring(markings[i].Alignment),
				})
				if err != nil {
					return errors.Wrap(err, "Can't write marking")
				}
			}
		}
	}
	return nil
}

func (net *Network) exportJunctionsToCSV(fname string, geomFormat GeometryFormat) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"id", "type", "incoming_lanes", "internal_lanes", "requests", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, junction := range net.Junctions {
		geom := ""
		if junction.Shape != nil {
			geom = geomFormat.polygon(junction.Shape)
		}
		err = writer.Write([]string{
			junction.ID,
			junction.Type.String(),
			fmt.Sprintf("%d", len(junction.IncomingLanes)),
			fmt.Sprintf("%d", len(junction.InternalLanes)),
			fmt.Sprintf("%d", len(junction.Requests())),
			geom,
		})
		if err != nil {
			return errors.Wrap(err, "Can't write junction")
		}
	}
	return nil
}

func (net *Network) exportConnectionsToCSV(fname string, geomFormat GeometryFormat) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"from_lane", "to_lane", "via", "dir", "state", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, connection := range net.Connections {
		geom := ""
		if connection.ViaID != "" {
			splice, err := connection.SplicePolygon()
			if err != nil {
				fmt.Printf("Warning. Can't build splice polygon for connection %s->%s: %s\n", connection.FromLaneID(), connection.ToLaneID(), err.Error())
			} else {
				geom = geomFormat.polygon(splice)
			}
		} else if connection.Shape != nil {
			geom = geomFormat.linestring(connection.Shape)
		}
		err = writer.Write([]string{
			connection.FromLaneID(),
			connection.ToLaneID(),
			connection.ViaID,
			connection.Dir,
			connection.State,
			geom,
		})
		if err != nil {
			return errors.Wrap(err, "Can't write connection")
		}
	}
	return nil
}
