package importer

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"urdfgen/pkg/mesh"
)

// binSTLHeaderSize is the fixed binary STL prefix: 80-byte header plus a
// uint32 triangle count.
const binSTLHeaderSize = 84

// binSTLTriSize is one binary STL record: normal, 3 vertices (12 floats),
// attribute byte count.
const binSTLTriSize = 4*3*4 + 2

// LoadSTL reads an STL file, auto-detecting the binary and ASCII
// variants. Vertices are welded on exact coordinates so the indexed
// result recovers the shared surface the integrator expects.
func LoadSTL(path string) (*mesh.TriMesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("stl: read %s: %w", path, err)
	}

	// A well-formed binary file's declared triangle count matches its
	// size exactly; ASCII files that begin with "solid" do not.
	if len(data) >= binSTLHeaderSize {
		n := binary.LittleEndian.Uint32(data[80:84])
		if len(data) == binSTLHeaderSize+int(n)*binSTLTriSize {
			return parseBinarySTL(data, path)
		}
	}
	if strings.HasPrefix(strings.TrimSpace(string(data[:min(len(data), 16)])), "solid") {
		return parseASCIISTL(string(data), path)
	}
	return nil, fmt.Errorf("stl: %s is neither valid binary nor ASCII STL", path)
}

func parseBinarySTL(data []byte, path string) (*mesh.TriMesh, error) {
	n := int(binary.LittleEndian.Uint32(data[80:84]))
	b := mesh.NewBuilder()
	for i := 0; i < n; i++ {
		rec := data[binSTLHeaderSize+i*binSTLTriSize:]
		var tri [3]r3.Vec
		for v := 0; v < 3; v++ {
			const start = 3 * 4 // skip the stored normal
			tri[v] = r3.Vec{
				X: float64(math.Float32frombits(binary.LittleEndian.Uint32(rec[start+12*v:]))),
				Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(rec[start+12*v+4:]))),
				Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(rec[start+12*v+8:]))),
			}
		}
		b.AddTriangle(tri[0], tri[1], tri[2])
	}
	m := b.Mesh(path)
	if m.IsEmpty() {
		return nil, fmt.Errorf("stl: %s contains no facets", path)
	}
	return m, nil
}

func parseASCIISTL(data, path string) (*mesh.TriMesh, error) {
	b := mesh.NewBuilder()
	var verts []r3.Vec
	for lineNo, line := range strings.Split(data, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] != "vertex" {
			continue
		}
		if len(fields) < 4 {
			return nil, fmt.Errorf("stl: %s line %d: short vertex line", path, lineNo+1)
		}
		var p r3.Vec
		for i, dst := range []*float64{&p.X, &p.Y, &p.Z} {
			v, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("stl: %s line %d: bad coordinate %q", path, lineNo+1, fields[i+1])
			}
			*dst = v
		}
		verts = append(verts, p)
		if len(verts) == 3 {
			b.AddTriangle(verts[0], verts[1], verts[2])
			verts = verts[:0]
		}
	}
	if len(verts) != 0 {
		return nil, fmt.Errorf("stl: %s: trailing vertices form no facet", path)
	}
	m := b.Mesh(path)
	if m.IsEmpty() {
		return nil, fmt.Errorf("stl: %s contains no facets", path)
	}
	return m, nil
}
