// Package assembly collects per-link integration results and normalizes
// them against a global target mass, distributing the mass in proportion
// to each link's volume.
package assembly

import (
	"errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"urdfgen/pkg/joints"
)

// ErrDegenerateGeometry is returned when the assembly's total volume is
// zero and mass normalization is undefined.
var ErrDegenerateGeometry = errors.New("assembly: total volume is zero, mass normalization undefined")

// LinkRecord is the per-mesh integration result at unit density.
// Records are appended in argument order; index == link order.
type LinkRecord struct {
	Source       string // input token, used for the geometry reference
	Volume       float64
	CenterOfMass r3.Vec // mesh-local
	Tensor       *mat.SymDense
}

// Link is a fully normalized robot link.
type Link struct {
	Source       string
	Mass         float64
	Origin       r3.Vec // inertial origin: local COM + cumulative joint translation
	Tensor       *mat.SymDense
	VisualOrigin r3.Vec // cumulative joint translation
}

// TotalVolume sums the volumes of all records.
func TotalVolume(records []LinkRecord) float64 {
	var v float64
	for _, rec := range records {
		v += rec.Volume
	}
	return v
}

// Normalize distributes targetMass across the records in proportion to
// volume and re-expresses each center of mass in its joint frame. The
// degenerate total-volume case is rejected before any division.
func Normalize(records []LinkRecord, offsets []joints.Offset, targetMass float64) ([]Link, error) {
	total := TotalVolume(records)
	if total == 0 {
		return nil, ErrDegenerateGeometry
	}

	scale := targetMass / total
	links := make([]Link, 0, len(records))
	for i, rec := range records {
		trans := joints.CumulativeTranslation(offsets, i)
		links = append(links, Link{
			Source:       rec.Source,
			Mass:         targetMass * rec.Volume / total,
			Origin:       r3.Add(rec.CenterOfMass, trans),
			Tensor:       scaleSym(rec.Tensor, scale),
			VisualOrigin: trans,
		})
	}
	return links, nil
}

// scaleSym returns f * a as a new symmetric matrix.
func scaleSym(a *mat.SymDense, f float64) *mat.SymDense {
	n, _ := a.Dims()
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, f*a.At(i, j))
		}
	}
	return out
}
