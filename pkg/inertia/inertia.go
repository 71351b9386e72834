// Package inertia computes rigid-body mass properties of a closed
// triangle mesh: volume, center of mass, and the inertia tensor about the
// center of mass at unit density.
//
// The surface is decomposed into signed tetrahedra between each face and
// the origin. Volume, first moments, and the second-moment (covariance)
// integrals accumulate per tetrahedron from analytic formulas over the
// face's vertex coordinates, all in float64. The tensor is then moved to
// the center of mass by the parallel-axis theorem. Compute is pure: no
// I/O, no retained state, identical output for identical input.
package inertia

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"urdfgen/pkg/mesh"
)

// Properties holds the result of one integration at unit density.
type Properties struct {
	// SignedVolume is the raw volume integral. It is negative when the
	// mesh faces wind inward; magnitude is unaffected by orientation.
	SignedVolume float64

	// CenterOfMass is the first-moment integral divided by the signed
	// volume, in mesh-local coordinates. Orientation independent.
	CenterOfMass r3.Vec

	// Tensor is the symmetric inertia tensor about the center of mass at
	// unit density, sign-normalized so that reversing the face winding
	// leaves it unchanged.
	Tensor *mat.SymDense
}

// Volume returns the absolute volume, the quantity used for mass scaling.
func (p Properties) Volume() float64 {
	return math.Abs(p.SignedVolume)
}

// Compute integrates the mass properties of m. The mesh should be closed
// and consistently oriented; Compute does not check this (see
// mesh.TriMesh.IsClosed) and an open surface yields numerically valid but
// physically meaningless values.
func Compute(m *mesh.TriMesh) Properties {
	var (
		vol6 float64 // 6 * signed volume
		m1   r3.Vec  // 24 * first moment
		cov  [3][3]float64
	)

	for i := range m.Faces {
		a, b, c := m.Triangle(i)
		det := r3.Dot(a, r3.Cross(b, c)) // 6 * signed tetra volume

		s := r3.Add(r3.Add(a, b), c)
		vol6 += det
		m1 = r3.Add(m1, r3.Scale(det, s))

		// Second moments of the tetra (origin, a, b, c):
		//   ∫ x_i x_j dV = det/120 * (s_i s_j + a_i a_j + b_i b_j + c_i c_j)
		// with s = a + b + c.
		av := [3]float64{a.X, a.Y, a.Z}
		bv := [3]float64{b.X, b.Y, b.Z}
		cv := [3]float64{c.X, c.Y, c.Z}
		sv := [3]float64{s.X, s.Y, s.Z}
		for r := 0; r < 3; r++ {
			for q := r; q < 3; q++ {
				cov[r][q] += det / 120 * (sv[r]*sv[q] + av[r]*av[q] + bv[r]*bv[q] + cv[r]*cv[q])
			}
		}
	}

	vol := vol6 / 6
	var com r3.Vec
	if vol != 0 {
		com = r3.Scale(1/vol, r3.Scale(1.0/24.0, m1))
	}

	// Parallel-axis shift of the covariance to the center of mass, kept
	// signed so the result is correct for either orientation.
	d := [3]float64{com.X, com.Y, com.Z}
	for r := 0; r < 3; r++ {
		for q := r; q < 3; q++ {
			cov[r][q] -= vol * d[r] * d[q]
		}
	}

	// Inertia from covariance: I_ij = δ_ij tr(C) - C_ij.
	trace := cov[0][0] + cov[1][1] + cov[2][2]
	t := mat.NewSymDense(3, nil)
	for r := 0; r < 3; r++ {
		for q := r; q < 3; q++ {
			v := -cov[r][q]
			if r == q {
				v += trace
			}
			t.SetSym(r, q, v)
		}
	}

	// Sign-normalize: an inward-wound surface negates every integral; the
	// physical tensor of the enclosed solid is orientation independent.
	if vol < 0 {
		for r := 0; r < 3; r++ {
			for q := r; q < 3; q++ {
				t.SetSym(r, q, -t.At(r, q))
			}
		}
	}

	return Properties{SignedVolume: vol, CenterOfMass: com, Tensor: t}
}

// PrincipalMoments returns the eigenvalues of a symmetric inertia tensor
// in ascending order.
func PrincipalMoments(t *mat.SymDense) ([3]float64, error) {
	var es mat.EigenSym
	if ok := es.Factorize(t, false); !ok {
		return [3]float64{}, fmt.Errorf("inertia: eigendecomposition failed")
	}
	vals := es.Values(nil)
	return [3]float64{vals[0], vals[1], vals[2]}, nil
}

// Realizable reports whether the principal moments satisfy the triangle
// inequality required of any physical rigid body (each moment no greater
// than the sum of the other two, within tolerance).
func Realizable(moments [3]float64) bool {
	const rel = 1e-9
	sum := moments[0] + moments[1] + moments[2]
	for _, m := range moments {
		if m < 0 || 2*m > sum*(1+rel)+rel {
			return false
		}
	}
	return true
}
