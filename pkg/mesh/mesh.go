// Package mesh defines the indexed triangle mesh consumed by the inertia
// integrator. Vertices are shared between faces; faces are vertex-index
// triples with counter-clockwise winding for outward-facing normals.
//
// The mass-property integral is only physically meaningful for a closed,
// consistently oriented 2-manifold. Open or inconsistently wound meshes
// still produce numerically valid results; IsClosed lets callers detect
// and report the condition instead of silently trusting the numbers.
package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// TriMesh is an indexed triangle surface.
type TriMesh struct {
	Vertices []r3.Vec
	Faces    [][3]int
	Name     string // source name, used in reports and diagnostics
}

// VertexCount returns the number of vertices.
func (m *TriMesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of triangles.
func (m *TriMesh) FaceCount() int {
	return len(m.Faces)
}

// IsEmpty returns true if the mesh has no geometry.
func (m *TriMesh) IsEmpty() bool {
	return len(m.Faces) == 0
}

// Triangle returns the three corner positions of face i.
func (m *TriMesh) Triangle(i int) (a, b, c r3.Vec) {
	f := m.Faces[i]
	return m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
}

// FaceNormal returns the (non-unit) outward normal of face i, i.e. the
// cross product of its edge vectors. Its length is twice the face area.
func (m *TriMesh) FaceNormal(i int) r3.Vec {
	a, b, c := m.Triangle(i)
	return r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
}

// Translate shifts every vertex by d.
func (m *TriMesh) Translate(d r3.Vec) {
	for i := range m.Vertices {
		m.Vertices[i] = r3.Add(m.Vertices[i], d)
	}
}

// FlipWinding reverses the orientation of every face in place.
func (m *TriMesh) FlipWinding() {
	for i, f := range m.Faces {
		m.Faces[i] = [3]int{f[0], f[2], f[1]}
	}
}

// IsClosed reports whether every edge is shared by exactly two faces with
// opposite direction. This is the manifold condition the polyhedral
// integral relies on.
func (m *TriMesh) IsClosed() bool {
	// Count directed edges; a closed consistently oriented surface uses
	// each undirected edge exactly once in each direction.
	type edge struct{ a, b int }
	dir := make(map[edge]int, len(m.Faces)*3)
	for _, f := range m.Faces {
		for i := 0; i < 3; i++ {
			e := edge{f[i], f[(i+1)%3]}
			if e.a == e.b {
				return false // degenerate edge
			}
			dir[e]++
			if dir[e] > 1 {
				return false // same directed edge used twice
			}
		}
	}
	for e := range dir {
		if dir[edge{e.b, e.a}] != 1 {
			return false
		}
	}
	return true
}
