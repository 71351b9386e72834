// Package urdf formats normalized link quantities as URDF-style XML
// fragments. The output is a fixed-width printf contract (mass to 6
// decimal digits, positional and inertial values zero-padded to 11 digits
// after the point), so fragments are emitted directly rather than built
// through an XML encoder.
package urdf

import (
	"fmt"
	"io"

	"urdfgen/pkg/assembly"
)

// WriteHeader writes the report header line for n links.
func WriteHeader(w io.Writer, n int, totalMass float64) error {
	_, err := fmt.Fprintf(w, "URDF data for %d links with overall mass of %.3f kg:\n", n, totalMass)
	return err
}

// WriteLink writes the <inertial> and <visual> fragment for one link,
// preceded by its source file name.
func WriteLink(w io.Writer, l assembly.Link) error {
	t := l.Tensor
	_, err := fmt.Fprintf(w, `%s:
        <inertial>
            <mass value="%f" />
            <origin rpy="0 0 0" xyz="%014.11f %014.11f %014.11f" />
            <inertia ixx="%014.11f" ixy="%014.11f" ixz="%014.11f"
                                          iyy="%014.11f" iyz="%014.11f"
                                                               izz="%014.11f" />
        </inertial>
        <visual>
            <origin rpy="0 0 0" xyz="%014.11f %014.11f %014.11f" />
            <geometry>
                <mesh filename="model://%s" />
            </geometry>
        </visual>
`,
		l.Source,
		l.Mass,
		l.Origin.X, l.Origin.Y, l.Origin.Z,
		t.At(0, 0), t.At(0, 1), t.At(0, 2),
		t.At(1, 1), t.At(1, 2),
		t.At(2, 2),
		l.VisualOrigin.X, l.VisualOrigin.Y, l.VisualOrigin.Z,
		l.Source,
	)
	return err
}
