// Package importer classifies command-line tokens and loads mesh inputs.
// Plain surface formats (STL, OBJ) are parsed directly; 3MF is the
// packaged scene format variant carrying model metadata; .zy files are
// scripted solids evaluated through the geometry kernel.
package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"urdfgen/pkg/kernel/sdfx"
	"urdfgen/pkg/mesh"
	"urdfgen/pkg/script"
)

// Open imports the mesh at path, dispatching on the file extension.
// Any failure is terminal for the run: the caller aborts, there is no
// partial-result mode.
func Open(path string) (*mesh.TriMesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		return LoadSTL(path)
	case ".obj":
		return LoadOBJ(path)
	case ".3mf":
		return Load3MF(path)
	case ".zy":
		return script.NewEngine(sdfx.New()).EvaluateFile(path)
	default:
		return nil, fmt.Errorf("importer: unsupported mesh format %q", path)
	}
}
