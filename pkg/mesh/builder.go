package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Builder assembles an indexed TriMesh from a triangle soup, welding
// vertices that have bit-identical coordinates. Importers that read
// per-triangle vertex data (binary STL, marching-cubes output) use it to
// recover shared vertices so the result is a proper indexed surface.
type Builder struct {
	verts []r3.Vec
	faces [][3]int
	index map[[3]float64]int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{index: make(map[[3]float64]int)}
}

// AddTriangle appends one triangle, welding its corners against all
// previously added vertices.
func (b *Builder) AddTriangle(p0, p1, p2 r3.Vec) {
	var f [3]int
	for i, p := range [3]r3.Vec{p0, p1, p2} {
		f[i] = b.addVertex(p)
	}
	b.faces = append(b.faces, f)
}

func (b *Builder) addVertex(p r3.Vec) int {
	key := [3]float64{p.X, p.Y, p.Z}
	if i, ok := b.index[key]; ok {
		return i
	}
	i := len(b.verts)
	b.verts = append(b.verts, p)
	b.index[key] = i
	return i
}

// Mesh returns the built mesh. The Builder must not be reused afterwards.
func (b *Builder) Mesh(name string) *TriMesh {
	return &TriMesh{Vertices: b.verts, Faces: b.faces, Name: name}
}
