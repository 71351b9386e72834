package app

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"urdfgen/pkg/assembly"
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
		binary.Write(&buf, binary.LittleEndian, [3]float32{0, 0, 0})
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

func TestRunNoArgs(t *testing.T) {
	var out strings.Builder
	if err := Run(nil, &out); !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
}

func TestRunNoMeshArgs(t *testing.T) {
	var out strings.Builder
	// A mass override alone is not a usable run.
	if err := Run([]string{"2.0"}, &out); !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
}

func TestRunImportFailureAborts(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.stl")
	writeBinarySTL(t, good, mesh.Box(1, 1, 1))

	var out strings.Builder
	err := Run([]string{good, filepath.Join(dir, "missing.stl")}, &out)
	if err == nil {
		t.Fatal("expected import failure to abort the run")
	}
	if !strings.Contains(err.Error(), "missing.stl") {
		t.Fatalf("error %q does not name the offending path", err)
	}
	if strings.Contains(out.String(), "URDF data") {
		t.Fatal("no report may be emitted after an import failure")
	}
}

func TestRunTwoCubes(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.stl")
	b := filepath.Join(dir, "b.stl")
	writeBinarySTL(t, a, mesh.Box(1, 1, 1))
	writeBinarySTL(t, b, mesh.Box(1, 1, 1))

	var out strings.Builder
	if err := Run([]string{"2.0", a, b}, &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	got := out.String()

	for _, want := range []string{
		"Overall mass is: 2.000000 kg",
		"URDF data for 2 links with overall mass of 2.000 kg:",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
	// Two equal cubes split the target mass evenly.
	if n := strings.Count(got, `<mass value="1.000000" />`); n != 2 {
		t.Errorf("found %d links of mass 1.0, expected 2\noutput:\n%s", n, got)
	}
	// Same mesh, same scale factor: the inertia lines must be identical.
	if n := strings.Count(got, `ixx="00.16666666667"`); n != 2 {
		t.Errorf("found %d identical ixx entries, expected 2", n)
	}
}

func TestRunJointChain(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.stl")
	b := filepath.Join(dir, "b.stl")
	writeBinarySTL(t, a, mesh.Box(1, 1, 1))
	writeBinarySTL(t, b, mesh.Box(1, 1, 1))

	jointPath := filepath.Join(dir, "joints.txt")
	if err := os.WriteFile(jointPath, []byte("1 0 0 0 0 0\n0 1 0 0 0 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	if err := Run([]string{jointPath, a, b}, &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	got := out.String()

	if !strings.Contains(got, "as joint transformation info") {
		t.Error("output missing joint file acknowledgement")
	}
	// Link 1 sits at -joint1, link 2 at -(joint1+joint2).
	for _, want := range []string{
		`xyz="-1.00000000000 00.00000000000 00.00000000000"`,
		`xyz="-1.00000000000 -1.00000000000 00.00000000000"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing origin %q\noutput:\n%s", want, got)
		}
	}
}

func TestRunDegenerateGeometry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "point.stl")
	// A zero-area triangle encloses no volume.
	point := &mesh.TriMesh{
		Vertices: []r3.Vec{{X: 1, Y: 1, Z: 1}},
		Faces:    [][3]int{{0, 0, 0}},
	}
	writeBinarySTL(t, path, point)

	var out strings.Builder
	err := Run([]string{path}, &out)
	if !errors.Is(err, assembly.ErrDegenerateGeometry) {
		t.Fatalf("expected ErrDegenerateGeometry, got %v", err)
	}
	if strings.Contains(out.String(), "NaN") || strings.Contains(out.String(), "Inf") {
		t.Fatal("degenerate input must fail cleanly, not print non-finite numbers")
	}
}

func TestRunDefaultMass(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.stl")
	writeBinarySTL(t, a, mesh.Box(1, 1, 1))

	var out strings.Builder
	if err := Run([]string{a}, &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "URDF data for 1 links with overall mass of 1.000 kg:") {
		t.Errorf("default mass header missing\noutput:\n%s", out.String())
	}
}
