package main

import (
	"encoding/xml"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/sumoviz/sumonet"
)

var (
	netFileName = flag.String("file", "my_net.net.xml", "Filename of SUMO network file (plain XML)")
	out         = flag.String("out", "my_net.csv", "Filename of 'Comma-Separated Values' (CSV) formatted file. E.g.: if file name is 'map.csv' then 4 files will be produced: 'map_lanes.csv', 'map_markings.csv', 'map_junctions.csv', 'map_connections.csv'")
	geomFormat  = flag.String("geomf", "wkt", "Format of output geometry. Expected values: wkt / geojson / polyline")
	styleName   = flag.String("style", "EUR", "Lane marking style. Expected values: EUR / USA")
	stripeScale = flag.Float64("scale", 1.0, "Scale factor for marking stripe widths")
	stopLines   = flag.Bool("stoplines", true, "Derive stop line markings?")
)

func main() {
	flag.Parse()

	format, err := sumonet.ParseGeometryFormat(*geomFormat)
	if err != nil {
		fmt.Println(err)
		return
	}
	style, err := sumonet.ParseMarkingStyle(*styleName)
	if err != nil {
		fmt.Println(err)
		return
	}
	cfg := sumonet.RenderConfig{
		Style:            style,
		StripeWidthScale: *stripeScale,
		StopLines:        *stopLines,
	}

	net, err := readNetFile(*netFileName)
	if err != nil {
		fmt.Println(err)
		return
	}

	st := time.Now()
	fmt.Print("Linking network topology...")
	net.Link()
	fmt.Println(" Done in", time.Since(st))

	lanesNum := 0
	for _, edge := range net.Edges {
		lanesNum += edge.LaneCount()
	}
	fmt.Printf("Deriving markings for %d lanes (%d edges, %d junctions, %d connections)\n", lanesNum, len(net.Edges), len(net.Junctions), len(net.Connections))

	st = time.Now()
	bar := progressbar.Default(int64(lanesNum))
	for _, edge := range net.Edges {
		for _, lane := range edge.Lanes {
			if _, err := lane.GuessMarkings(cfg); err != nil {
				fmt.Printf("\nWarning. Can't derive markings for lane %s: %s\n", lane.ID, err.Error())
			}
			bar.Add(1)
		}
	}
	fmt.Println("Done in", time.Since(st))

	st = time.Now()
	fmt.Print("Exporting to CSV...")
	err = net.ExportToCSV(*out, cfg, format)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(" Done in", time.Since(st))
}

// readNetFile walks the XML token stream of a SUMO network file and feeds
// flattened attribute records into a Network. Walking area edges carry no
// drawable lane geometry and are skipped.
func readNetFile(fname string) (*sumonet.Network, error) {
	st := time.Now()
	fmt.Printf("Reading network file '%s'...", fname)

	file, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open network file")
	}
	defer file.Close()

	net := sumonet.NewNetwork()
	decoder := xml.NewDecoder(file)

	var currentEdge *sumonet.Edge
	var currentLane *sumonet.Lane
	var currentJunction *sumonet.Junction

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "Can't read XML token")
		}
		switch elem := token.(type) {
		case xml.StartElement:
			attrib := flattenAttributes(elem)
			switch elem.Name.Local {
			case "edge":
				currentLane = nil
				if attrib["function"] == "walkingarea" {
					currentEdge = nil
					continue
				}
				currentEdge = sumonet.NewEdge(attrib)
				net.AddEdge(currentEdge)
			case "lane":
				if currentEdge == nil {
					continue
				}
				lane, err := sumonet.NewLane(attrib)
				if err != nil {
					fmt.Printf("\nWarning. Skipping lane '%s': %s\n", attrib["id"], err.Error())
					continue
				}
				currentEdge.AppendLane(lane)
				currentLane = lane
			case "stopOffset":
				if currentLane != nil {
					currentLane.AppendStopOffset(attrib)
				} else if currentEdge != nil {
					currentEdge.AppendStopOffset(attrib)
				}
			case "junction":
				currentJunction = sumonet.NewJunction(attrib)
				net.AddJunction(currentJunction)
			case "request":
				if currentJunction == nil {
					continue
				}
				currentJunction.AppendRequest(sumonet.NewRequest(attrib))
			case "connection":
				net.AddConnection(sumonet.NewConnection(attrib))
			}
		case xml.EndElement:
			switch elem.Name.Local {
			case "edge":
				currentEdge = nil
				currentLane = nil
			case "lane":
				currentLane = nil
			case "junction":
				currentJunction = nil
			}
		}
	}

	fmt.Println(" Done in", time.Since(st))
	return net, nil
}

func flattenAttributes(elem xml.StartElement) map[string]string {
	attrib := make(map[string]string, len(elem.Attr))
	for _, attr := range elem.Attr {
		attrib[attr.Name.Local] = attr.Value
	}
	return attrib
}
