package sumonet

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Check if two segments intersects and returns intersections Point
// p1, p2 - first segment
// p3, p4 - second segment
// Note: Euclidean space
func intersect(p1, p2, p3, p4 orb.Point) (orb.Point, error) {
	// Calculate the coefficients of the linear equations
	a1 := p2[1] - p1[1]
	b1 := p1[0] - p2[0]
	c1 := a1*p1[0] + b1*p1[1]
	a2 := p4[1] - p3[1]
	b2 := p3[0] - p4[0]
	c2 := a2*p3[0] + b2*p3[1]

	// Calculate the determinant
	det := a1*b2 - a2*b1
	if det == 0 {
		return orb.Point{}, fmt.Errorf("The lines are parallel")
	}

	// Calculate the intersection point
	x := (b2*c1 - b1*c2) / det
	y := (a1*c2 - a2*c1) / det
	return orb.Point{x, y}, nil
}

// offsetCurve returns the given line shifted sideways by distance. Positive
// distance offsets to the left of the travel direction, negative to the
// right. Joints are mitered via segment intersections. Returns nil for lines
// without any segment of nonzero length.
func offsetCurve(line orb.LineString, distance float64) orb.LineString {
	// Initialize result list and segment list
	var result orb.LineString
	var segments [][2]orb.Point

	// Iterate over line segments and calculate offset segments
	for i := 1; i < len(line); i++ {
		// Get current and previous points
		p1 := line[i-1]
		p2 := line[i]

		// Calculate the vector between the points
		vec := [2]float64{p2[0] - p1[0], p2[1] - p1[1]}

		// Normalize the vector
		vecLen := math.Sqrt(vec[0]*vec[0] + vec[1]*vec[1])
		if vecLen == 0 {
			continue
		}
		vec = [2]float64{vec[0] / vecLen, vec[1] / vecLen}

		// Rotate the vector by 90 degrees
		rotated := [2]float64{-vec[1], vec[0]}

		// Scale the rotated vector by the distance
		offset := [2]float64{rotated[0] * distance, rotated[1] * distance}

		// Calculate the offset points
		op1 := [2]float64{p1[0] + offset[0], p1[1] + offset[1]}
		op2 := [2]float64{p2[0] + offset[0], p2[1] + offset[1]}

		// Add the offset segment to the list of segments
		segments = append(segments, [2]orb.Point{op1, op2})
	}
	if len(segments) == 0 {
		return nil
	}

	result = append(result, segments[0][0])
	// Iterate over the segments and calculate the intersections
	for i := 1; i < len(segments); i++ {
		// Get the current and previous segments
		seg1 := segments[i-1]
		seg2 := segments[i]
		// Calculate the intersection point
		intersection, err := intersect(seg1[0], seg1[1], seg2[0], seg2[1])
		if err != nil {
			continue
		}
		// If there is an intersection, add the intersection and the current segment to the result
		result = append(result, intersection)
	}
	result = append(result, segments[len(segments)-1][1])
	return result
}

// bufferFlatCap buffers the line by the given half width with flat end caps:
// left offset curve forward, right offset curve backward, closed into one
// ring. Returns an empty polygon for degenerate lines.
func bufferFlatCap(line orb.LineString, halfWidth float64) orb.Polygon {
	left := offsetCurve(line, halfWidth)
	right := offsetCurve(line, -halfWidth)
	if left == nil || right == nil {
		return orb.Polygon{}
	}
	ring := make(orb.Ring, 0, len(left)+len(right)+1)
	ring = append(ring, left...)
	for i := len(right) - 1; i >= 0; i-- {
		ring = append(ring, right[i])
	}
	ring = append(ring, left[0])
	return orb.Polygon{ring}
}

// lineSubstring returns the part of the line between the given distances from
// its start. Distances are clamped to [0, length]. Returns nil when the
// requested slice is empty.
func lineSubstring(line orb.LineString, from, to float64) orb.LineString {
	if len(line) < 2 {
		return nil
	}
	length := planar.Length(line)
	if from < 0 {
		from = 0
	}
	if to > length {
		to = length
	}
	if to <= from {
		return nil
	}
	var result orb.LineString
	traveled := 0.0
	for i := 1; i < len(line); i++ {
		segLen := planar.Distance(line[i-1], line[i])
		if segLen == 0 {
			continue
		}
		segStart := traveled
		segEnd := traveled + segLen
		if segEnd > from && segStart < to {
			if len(result) == 0 {
				result = append(result, pointAlongSegment(line[i-1], line[i], from-segStart))
			}
			if segEnd <= to {
				result = append(result, line[i])
			} else {
				result = append(result, pointAlongSegment(line[i-1], line[i], to-segStart))
				break
			}
		}
		traveled = segEnd
	}
	if len(result) < 2 {
		return nil
	}
	return result
}

// pointAlongSegment returns the point at the given distance from p towards q
func pointAlongSegment(p, q orb.Point, distance float64) orb.Point {
	segLen := planar.Distance(p, q)
	if segLen == 0 {
		return p
	}
	fraction := distance / segLen
	return orb.Point{
		p[0] + (q[0]-p[0])*fraction,
		p[1] + (q[1]-p[1])*fraction,
	}
}

// parseShape parses a coordinate list of the form "x1,y1 x2,y2 ..." into a
// line string.
func parseShape(s string) (orb.LineString, error) {
	pairs := strings.Fields(s)
	line := make(orb.LineString, 0, len(pairs))
	for _, pair := range pairs {
		coords := strings.Split(pair, ",")
		if len(coords) < 2 {
			return nil, fmt.Errorf("malformed coordinate pair '%s'", pair)
		}
		x, err := strconv.ParseFloat(coords[0], 64)
		if err != nil {
			return nil, err
		}
		y, err := strconv.ParseFloat(coords[1], 64)
		if err != nil {
			return nil, err
		}
		line = append(line, orb.Point{x, y})
	}
	return line, nil
}
