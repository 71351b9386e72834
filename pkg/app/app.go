// Package app drives one batch run: classify the ordered argument
// tokens, measure each mesh, then normalize and emit the URDF report.
// Processing is fully sequential; each mesh is imported, integrated, and
// released before the next token is considered, and all accumulator state
// is threaded through Run explicitly.
package app

import (
	"errors"
	"fmt"
	"io"
	"log"

	"urdfgen/pkg/assembly"
	"urdfgen/pkg/importer"
	"urdfgen/pkg/inertia"
	"urdfgen/pkg/joints"
	"urdfgen/pkg/urdf"
)

// ErrNoInput is returned when the arguments contain no mesh input.
var ErrNoInput = errors.New("no mesh file provided")

// defaultMass is the target total mass in kg when no override token is given.
const defaultMass = 1.0

// Run executes one batch run over args, writing the report to out.
// Any import failure or degenerate geometry aborts the run with an error;
// there is no partial-result mode.
func Run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return ErrNoInput
	}

	mass := defaultMass
	volume := 0.0
	var offsets []joints.Offset
	var records []assembly.LinkRecord

	for _, arg := range args {
		switch tok := importer.Classify(arg); tok.Kind {
		case importer.TokenMass:
			mass = tok.Value
			fmt.Fprintf(out, "Overall mass is: %f kg\n", mass)

		case importer.TokenJointFile:
			offs, err := joints.ParseFile(arg)
			if err != nil {
				return fmt.Errorf("could not read joint info %q: %w", arg, err)
			}
			// A later joint file replaces, not extends, the chain.
			offsets = offs
			fmt.Fprintf(out, "Read file '%s' as joint transformation info.\n", arg)

		case importer.TokenMesh:
			m, err := importer.Open(arg)
			if err != nil {
				return fmt.Errorf("could not open file %q: %w", arg, err)
			}
			if !m.IsClosed() {
				log.Printf("warning: mesh %s is not a closed oriented surface; mass properties are not physically meaningful", arg)
			}

			props := inertia.Compute(m)
			vol := props.Volume()
			fmt.Fprintf(out, "Volume: %14.11f + %14.11f = %14.11f\n", volume, vol, volume+vol)
			volume += vol

			records = append(records, assembly.LinkRecord{
				Source:       arg,
				Volume:       vol,
				CenterOfMass: props.CenterOfMass,
				Tensor:       props.Tensor,
			})
		}
	}

	if len(records) == 0 {
		return ErrNoInput
	}

	links, err := assembly.Normalize(records, offsets, mass)
	if err != nil {
		return err
	}

	if err := urdf.WriteHeader(out, len(links), mass); err != nil {
		return err
	}
	for _, l := range links {
		if moments, err := inertia.PrincipalMoments(l.Tensor); err == nil && !inertia.Realizable(moments) {
			log.Printf("warning: link %s has unphysical principal moments %v", l.Source, moments)
		}
		if err := urdf.WriteLink(out, l); err != nil {
			return err
		}
	}
	return nil
}
