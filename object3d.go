package sumonet

import (
	"github.com/paulmach/orb"
)

// Object3D is the in-memory contract handed to a 3D exporter: a named,
// material-tagged solid built by extruding 2D polygons along the vertical
// axis. Faces index into Vertices and may be arbitrary n-gons.
type Object3D struct {
	Name     string
	Material string
	Vertices [][3]float64
	Faces    [][]int
}

// Object3DFromPolygons extrudes the exterior rings of the given polygons by
// extrudeHeight starting at z. With a zero height only the top face is
// emitted per polygon; includeBottom adds the downward-facing cap.
func Object3DFromPolygons(name, material string, polygons []orb.Polygon, z, extrudeHeight float64, includeBottom bool) Object3D {
	object := Object3D{
		Name:     name,
		Material: material,
	}
	for _, polygon := range polygons {
		if len(polygon) == 0 {
			continue
		}
		ring := polygon[0]
		n := len(ring)
		if n > 1 && ring[0] == ring[n-1] {
			n--
		}
		if n < 3 {
			continue
		}
		base := len(object.Vertices)
		top := z + extrudeHeight
		for i := 0; i < n; i++ {
			object.Vertices = append(object.Vertices, [3]float64{ring[i][0], ring[i][1], top})
		}
		topFace := make([]int, n)
		for i := 0; i < n; i++ {
			topFace[i] = base + i
		}
		object.Faces = append(object.Faces, topFace)

		if extrudeHeight == 0 && !includeBottom {
			continue
		}
		bottomBase := len(object.Vertices)
		for i := 0; i < n; i++ {
			object.Vertices = append(object.Vertices, [3]float64{ring[i][0], ring[i][1], z})
		}
		if extrudeHeight > 0 {
			for i := 0; i < n; i++ {
				next := (i + 1) % n
				object.Faces = append(object.Faces, []int{base + i, base + next, bottomBase + next, bottomBase + i})
			}
		}
		if includeBottom {
			bottomFace := make([]int, n)
			for i := 0; i < n; i++ {
				bottomFace[i] = bottomBase + (n - 1 - i)
			}
			object.Faces = append(object.Faces, bottomFace)
		}
	}
	return object
}
