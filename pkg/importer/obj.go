package importer

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"urdfgen/pkg/mesh"
)

// LoadOBJ reads a Wavefront OBJ file. Only vertex positions and faces are
// used; faces with more than three corners are fan-triangulated. Texture
// and normal indices (v/vt/vn forms) are ignored, negative indices count
// from the end as usual.
func LoadOBJ(path string) (*mesh.TriMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("obj: open %s: %w", path, err)
	}
	defer f.Close()

	m := &mesh.TriMesh{Name: path}
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj: %s line %d: short vertex line", path, lineNo)
			}
			var p r3.Vec
			for i, dst := range []*float64{&p.X, &p.Y, &p.Z} {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("obj: %s line %d: bad coordinate %q", path, lineNo, fields[i+1])
				}
				*dst = v
			}
			m.Vertices = append(m.Vertices, p)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj: %s line %d: face needs at least 3 vertices", path, lineNo)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				i, err := objVertexIndex(ref, len(m.Vertices))
				if err != nil {
					return nil, fmt.Errorf("obj: %s line %d: %w", path, lineNo, err)
				}
				idx = append(idx, i)
			}
			for i := 1; i < len(idx)-1; i++ {
				m.Faces = append(m.Faces, [3]int{idx[0], idx[i], idx[i+1]})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("obj: scan %s: %w", path, err)
	}
	if m.IsEmpty() {
		return nil, fmt.Errorf("obj: %s contains no faces", path)
	}
	return m, nil
}

// objVertexIndex resolves one face vertex reference ("7", "7/1", "7//3",
// "-1") to a zero-based vertex index.
func objVertexIndex(ref string, nVerts int) (int, error) {
	if i := strings.IndexByte(ref, '/'); i >= 0 {
		ref = ref[:i]
	}
	v, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("bad vertex reference %q", ref)
	}
	switch {
	case v > 0 && v <= nVerts:
		return v - 1, nil
	case v < 0 && -v <= nVerts:
		return nVerts + v, nil
	}
	return 0, fmt.Errorf("vertex reference %d out of range (%d vertices)", v, nVerts)
}
