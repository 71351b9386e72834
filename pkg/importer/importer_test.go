package importer

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"urdfgen/pkg/inertia"
	"urdfgen/pkg/mesh"
)

// writeBinarySTL serializes m as binary STL into path.
func writeBinarySTL(t *testing.T, path string, m *mesh.TriMesh) {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(make([]byte, 80))
	binary.Write(&buf, binary.LittleEndian, uint32(m.FaceCount()))
	for i := range m.Faces {
		a, b, c := m.Triangle(i)
		binary.Write(&buf, binary.LittleEndian, [3]float32{0, 0, 0}) // normal, recomputed by readers
		for _, v := range []struct{ X, Y, Z float64 }{
			{a.X, a.Y, a.Z}, {b.X, b.Y, b.Z}, {c.X, c.Y, c.Z},
		} {
			binary.Write(&buf, binary.LittleEndian, [3]float32{float32(v.X), float32(v.Y), float32(v.Z)})
		}
		binary.Write(&buf, binary.LittleEndian, uint16(0))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadBinarySTLCube(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.stl")
	writeBinarySTL(t, path, mesh.Box(1, 1, 1))

	m, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if m.VertexCount() != 8 {
		t.Errorf("vertex count = %d, expected 8 after welding", m.VertexCount())
	}
	if m.FaceCount() != 12 {
		t.Errorf("face count = %d, expected 12", m.FaceCount())
	}
	if !m.IsClosed() {
		t.Error("cube should be closed after welding")
	}
	if vol := inertia.Compute(m).Volume(); math.Abs(vol-1) > 1e-5 {
		t.Errorf("volume = %v, expected 1", vol)
	}
}

func TestLoadBinarySTLEmpty(t *testing.T) {
	// A header declaring zero triangles is geometry-free and rejected,
	// same as an empty ASCII file.
	path := filepath.Join(t.TempDir(), "empty.stl")
	writeBinarySTL(t, path, &mesh.TriMesh{})

	if _, err := Open(path); err == nil {
		t.Fatal("expected error for binary STL with no facets")
	}
}

func TestLoadASCIISTL(t *testing.T) {
	// A single tetrahedron, consistently wound.
	src := `solid tetra
  facet normal 0 0 -1
    outer loop
      vertex 0 0 0
      vertex 0 1 0
      vertex 1 0 0
    endloop
  endfacet
  facet normal 0 -1 0
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 0 1
    endloop
  endfacet
  facet normal -1 0 0
    outer loop
      vertex 0 0 0
      vertex 0 0 1
      vertex 0 1 0
    endloop
  endfacet
  facet normal 1 1 1
    outer loop
      vertex 1 0 0
      vertex 0 1 0
      vertex 0 0 1
    endloop
  endfacet
endsolid tetra
`
	path := filepath.Join(t.TempDir(), "tetra.stl")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if m.VertexCount() != 4 || m.FaceCount() != 4 {
		t.Fatalf("got %d vertices / %d faces, expected 4/4", m.VertexCount(), m.FaceCount())
	}
	if !m.IsClosed() {
		t.Error("tetrahedron should be closed")
	}
	if vol := inertia.Compute(m).Volume(); math.Abs(vol-1.0/6.0) > 1e-9 {
		t.Errorf("volume = %v, expected 1/6", vol)
	}
}

func TestLoadOBJCube(t *testing.T) {
	src := mesh.Box(2, 2, 2)
	var sb strings.Builder
	for _, v := range src.Vertices {
		fmt.Fprintf(&sb, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, f := range src.Faces {
		fmt.Fprintf(&sb, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1)
	}
	path := filepath.Join(t.TempDir(), "cube.obj")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !m.IsClosed() {
		t.Error("cube should be closed")
	}
	if vol := inertia.Compute(m).Volume(); math.Abs(vol-8) > 1e-5 {
		t.Errorf("volume = %v, expected 8", vol)
	}
}

func TestLoadOBJQuadFaces(t *testing.T) {
	// Quads and v/vt/vn references must survive fan triangulation.
	src := `v -0.5 -0.5 -0.5
v 0.5 -0.5 -0.5
v 0.5 0.5 -0.5
v -0.5 0.5 -0.5
v -0.5 -0.5 0.5
v 0.5 -0.5 0.5
v 0.5 0.5 0.5
v -0.5 0.5 0.5
f 1//1 4//1 3//1 2//1
f 5//2 6//2 7//2 8//2
f 1//3 2//3 6//3 5//3
f 3//4 4//4 8//4 7//4
f 1//5 5//5 8//5 4//5
f 2//6 3//6 7//6 6//6
`
	path := filepath.Join(t.TempDir(), "quads.obj")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if m.FaceCount() != 12 {
		t.Fatalf("face count = %d, expected 12 after triangulation", m.FaceCount())
	}
	if vol := inertia.Compute(m).Volume(); math.Abs(vol-1) > 1e-5 {
		t.Errorf("volume = %v, expected 1", vol)
	}
}

// write3MFCube builds a minimal 3MF package holding a unit cube.
func write3MFCube(t *testing.T, path string) {
	t.Helper()
	src := mesh.Box(1, 1, 1)

	var model strings.Builder
	model.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<model unit="millimeter" xmlns="http://schemas.microsoft.com/3dmanufacturing/core/2015/02">
 <resources>
  <object id="1" type="model" name="cube">
   <mesh>
    <vertices>
`)
	for _, v := range src.Vertices {
		fmt.Fprintf(&model, `     <vertex x="%g" y="%g" z="%g"/>`+"\n", v.X, v.Y, v.Z)
	}
	model.WriteString(`    </vertices>
    <triangles>
`)
	for _, f := range src.Faces {
		fmt.Fprintf(&model, `     <triangle v1="%d" v2="%d" v3="%d"/>`+"\n", f[0], f[1], f[2])
	}
	model.WriteString(`    </triangles>
   </mesh>
  </object>
 </resources>
 <build>
  <item objectid="1"/>
 </build>
</model>
`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
 <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
 <Default Extension="model" ContentType="application/vnd.ms-package.3dmanufacturing-3dmodel+xml"/>
</Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
 <Relationship Target="/3D/3dmodel.model" Id="rel0" Type="http://schemas.microsoft.com/3dmanufacturing/2013/01/3dmodel"/>
</Relationships>`,
		"3D/3dmodel.model": model.String(),
	}
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad3MFCube(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.3mf")
	write3MFCube(t, path)

	m, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if m.FaceCount() != 12 {
		t.Fatalf("face count = %d, expected 12", m.FaceCount())
	}
	if vol := inertia.Compute(m).Volume(); math.Abs(vol-1) > 1e-4 {
		t.Errorf("volume = %v, expected 1", vol)
	}
}

func TestOpenUnsupportedFormat(t *testing.T) {
	if _, err := Open("model.ply"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.stl")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
