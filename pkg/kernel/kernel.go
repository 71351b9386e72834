// Package kernel defines the abstract geometry kernel interface used by
// the scripted-solid front end. An implementation provides primitive
// solids, boolean operations, and tessellation into the indexed triangle
// mesh the inertia integrator consumes. The abstraction keeps the script
// builtins independent of the concrete CAD backend.
package kernel

import (
	"urdfgen/pkg/mesh"
)

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives, centered at the origin.
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64) Solid
	Sphere(radius float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// ToMesh tessellates a solid into a closed indexed triangle mesh.
	ToMesh(s Solid, name string) (*mesh.TriMesh, error)
}
