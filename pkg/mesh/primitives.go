package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Box returns a closed box mesh with the given dimensions, centered at the
// origin, wound counter-clockwise for outward normals. 8 vertices, 12
// triangles.
func Box(dx, dy, dz float64) *TriMesh {
	hx, hy, hz := dx/2, dy/2, dz/2
	verts := []r3.Vec{
		{X: -hx, Y: -hy, Z: -hz},
		{X: hx, Y: -hy, Z: -hz},
		{X: hx, Y: hy, Z: -hz},
		{X: -hx, Y: hy, Z: -hz},
		{X: -hx, Y: -hy, Z: hz},
		{X: hx, Y: -hy, Z: hz},
		{X: hx, Y: hy, Z: hz},
		{X: -hx, Y: hy, Z: hz},
	}
	faces := [][3]int{
		{0, 2, 1}, {0, 3, 2}, // bottom (-z)
		{4, 5, 6}, {4, 6, 7}, // top (+z)
		{0, 1, 5}, {0, 5, 4}, // front (-y)
		{2, 3, 7}, {2, 7, 6}, // back (+y)
		{0, 4, 7}, {0, 7, 3}, // left (-x)
		{1, 2, 6}, {1, 6, 5}, // right (+x)
	}
	return &TriMesh{Vertices: verts, Faces: faces, Name: "box"}
}

// UVSphere returns a closed latitude/longitude sphere mesh of the given
// radius, centered at the origin. segments is the number of longitudinal
// steps (>= 3), rings the number of latitudinal steps (>= 2). The mesh is
// inscribed, so its volume approaches the analytic sphere volume from
// below as resolution increases.
func UVSphere(radius float64, segments, rings int) *TriMesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	var verts []r3.Vec
	verts = append(verts, r3.Vec{Z: radius}) // north pole, index 0
	for i := 1; i < rings; i++ {
		phi := math.Pi * float64(i) / float64(rings)
		sinPhi, cosPhi := math.Sincos(phi)
		for j := 0; j < segments; j++ {
			theta := 2 * math.Pi * float64(j) / float64(segments)
			sinTheta, cosTheta := math.Sincos(theta)
			verts = append(verts, r3.Vec{
				X: radius * sinPhi * cosTheta,
				Y: radius * sinPhi * sinTheta,
				Z: radius * cosPhi,
			})
		}
	}
	south := len(verts)
	verts = append(verts, r3.Vec{Z: -radius})

	// ring(i, j) is the vertex index at latitude ring i (1-based),
	// longitude step j modulo segments.
	ring := func(i, j int) int {
		return 1 + (i-1)*segments + (j % segments)
	}

	var faces [][3]int
	for j := 0; j < segments; j++ {
		faces = append(faces, [3]int{0, ring(1, j), ring(1, j+1)})
	}
	for i := 1; i < rings-1; i++ {
		for j := 0; j < segments; j++ {
			a := ring(i, j)
			b := ring(i+1, j)
			c := ring(i+1, j+1)
			d := ring(i, j+1)
			faces = append(faces, [3]int{a, b, c}, [3]int{a, c, d})
		}
	}
	for j := 0; j < segments; j++ {
		faces = append(faces, [3]int{south, ring(rings-1, j+1), ring(rings-1, j)})
	}

	return &TriMesh{Vertices: verts, Faces: faces, Name: "sphere"}
}
