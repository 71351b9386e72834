package script

import (
	"fmt"

	zygo "github.com/glycerine/zygomys/zygo"

	"urdfgen/pkg/kernel"
)

// preprocessSource converts traditional Lisp `;` line comments to the
// `//` form zygomys expects, respecting string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source))
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ';' {
			result = append(result, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

// sexpSolid wraps a kernel.Solid so it can be passed between builtins.
type sexpSolid struct {
	solid kernel.Solid
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	min, max := s.solid.BoundingBox()
	return fmt.Sprintf("(solid [%g %g %g]..[%g %g %g])",
		min[0], min[1], min[2], max[0], max[1], max[2])
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toSolid extracts a kernel.Solid from a sexpSolid.
func toSolid(s zygo.Sexp) (kernel.Solid, error) {
	if w, ok := s.(*sexpSolid); ok {
		return w.solid, nil
	}
	return nil, fmt.Errorf("expected solid, got %T (%s)", s, s.SexpString(nil))
}

// floatArgs extracts exactly n numeric arguments for builtin `name`.
func floatArgs(name string, args []zygo.Sexp, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires exactly %d numeric arguments, got %d", name, n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

// evalState collects the solids registered by (solid ...) during one
// evaluation.
type evalState struct {
	registered []kernel.Solid
}

// registerBuiltins installs the solid-construction builtins into a
// zygomys environment. The builtins build kernel solids; (solid ...)
// appends the finished result to st.
func registerBuiltins(env *zygo.Zlisp, k kernel.Kernel, st *evalState) {

	// (box x y z) — box with the given dimensions, centered at the origin.
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := floatArgs("box", args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{solid: k.Box(v[0], v[1], v[2])}, nil
	})

	// (cube s) — axis-aligned cube of side s.
	env.AddFunction("cube", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := floatArgs("cube", args, 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{solid: k.Box(v[0], v[0], v[0])}, nil
	})

	// (cylinder height radius) — Z-axis cylinder centered at the origin.
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := floatArgs("cylinder", args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{solid: k.Cylinder(v[0], v[1])}, nil
	})

	// (sphere radius)
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := floatArgs("sphere", args, 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{solid: k.Sphere(v[0])}, nil
	})

	// (union a b ...) — union of two or more solids.
	env.AddFunction("union", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("union requires at least 2 solids, got %d", len(args))
		}
		acc, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("union: %w", err)
		}
		for _, a := range args[1:] {
			s, err := toSolid(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("union: %w", err)
			}
			acc = k.Union(acc, s)
		}
		return &sexpSolid{solid: acc}, nil
	})

	// (difference a b) — a minus b.
	env.AddFunction("difference", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("difference requires exactly 2 solids, got %d", len(args))
		}
		a, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("difference: %w", err)
		}
		b, err := toSolid(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("difference: %w", err)
		}
		return &sexpSolid{solid: k.Difference(a, b)}, nil
	})

	// (intersect a b)
	env.AddFunction("intersect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("intersect requires exactly 2 solids, got %d", len(args))
		}
		a, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect: %w", err)
		}
		b, err := toSolid(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect: %w", err)
		}
		return &sexpSolid{solid: k.Intersection(a, b)}, nil
	})

	// (translate s x y z)
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("translate requires a solid and 3 numbers, got %d arguments", len(args))
		}
		s, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: %w", err)
		}
		v, err := floatArgs("translate", args[1:], 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{solid: k.Translate(s, v[0], v[1], v[2])}, nil
	})

	// (rotate s x y z) — Euler angles in degrees.
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("rotate requires a solid and 3 angles, got %d arguments", len(args))
		}
		s, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: %w", err)
		}
		v, err := floatArgs("rotate", args[1:], 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{solid: k.Rotate(s, v[0], v[1], v[2])}, nil
	})

	// (solid s) — register the finished solid for measurement.
	env.AddFunction("solid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("solid requires exactly 1 argument, got %d", len(args))
		}
		s, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("solid: %w", err)
		}
		st.registered = append(st.registered, s)
		return args[0], nil
	})
}
