package importer

import (
	"fmt"
	"log"

	"github.com/hpinc/go3mf"
	"gonum.org/v1/gonum/spatial/r3"

	"urdfgen/pkg/mesh"
)

// Load3MF reads a 3MF package. Unlike the plain surface formats, a 3MF
// file is an OPC container carrying scene metadata (model units, named
// objects); the objects' meshes are merged into a single link surface and
// the metadata is logged for the record.
func Load3MF(path string) (*mesh.TriMesh, error) {
	r, err := go3mf.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("3mf: open %s: %w", path, err)
	}
	defer r.Close()

	var model go3mf.Model
	if err := r.Decode(&model); err != nil {
		return nil, fmt.Errorf("3mf: decode %s: %w", path, err)
	}

	out := &mesh.TriMesh{Name: path}
	objects := 0
	for _, obj := range model.Resources.Objects {
		if obj.Mesh == nil {
			continue
		}
		objects++
		if obj.Name != "" {
			log.Printf("3mf: %s: object %d %q", path, obj.ID, obj.Name)
		}
		base := len(out.Vertices)
		for _, v := range obj.Mesh.Vertices.Vertex {
			out.Vertices = append(out.Vertices, r3.Vec{
				X: float64(v.X()),
				Y: float64(v.Y()),
				Z: float64(v.Z()),
			})
		}
		for _, t := range obj.Mesh.Triangles.Triangle {
			out.Faces = append(out.Faces, [3]int{
				base + int(t.V1),
				base + int(t.V2),
				base + int(t.V3),
			})
		}
	}
	if out.IsEmpty() {
		return nil, fmt.Errorf("3mf: %s contains no mesh objects", path)
	}
	log.Printf("3mf: %s: %d mesh object(s), units %v", path, objects, model.Units)
	return out, nil
}
