// Package script evaluates Lisp solid definitions into geometry kernel
// solids. It wraps zygomys in a sandboxed environment; a script builds
// primitives, combines them with boolean operations, and registers the
// result with (solid ...). The registered solid is tessellated by the
// kernel and measured like any imported mesh.
package script

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"urdfgen/pkg/kernel"
	"urdfgen/pkg/mesh"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter. It is safe for concurrent use;
// each call to Evaluate creates a fresh sandboxed environment for
// determinism.
type Engine struct {
	mu         sync.Mutex
	kernel     kernel.Kernel
	generation uint64
}

// NewEngine creates a new Engine backed by the given geometry kernel.
func NewEngine(k kernel.Kernel) *Engine {
	return &Engine{kernel: k}
}

// Evaluate takes Lisp source code and produces the registered solid.
// Each call creates a fresh zygomys sandbox.
//
// Return semantics:
//   - On success: returns solid + nil errors + nil error
//   - On parse/eval failure: returns nil solid + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (kernel.Solid, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		s, evalErrs, err := e.evaluate(source)
		ch <- evalResult{solid: s, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// EvaluateFile evaluates the script at path and tessellates the
// registered solid into a mesh named after the file. Eval errors are
// folded into the returned error since file input has no editor to
// surface them in.
func (e *Engine) EvaluateFile(path string) (*mesh.TriMesh, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}

	solid, evalErrs, err := e.Evaluate(string(source))
	if err != nil {
		return nil, fmt.Errorf("script: evaluate %s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		return nil, fmt.Errorf("script: %s: %w", path, evalErrs[0])
	}

	return e.kernel.ToMesh(solid, path)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (kernel.Solid, []EvalError, error) {
	if strings.TrimSpace(source) == "" {
		return nil, []EvalError{{Message: "empty script: no solid registered"}}, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or
	// syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	st := &evalState{}
	registerBuiltins(env, e.kernel, st)

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	_, err = env.Run()
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	if len(st.registered) == 0 {
		return nil, []EvalError{{Message: "script registered no solid; call (solid ...)"}}, nil
	}

	// Multiple (solid ...) calls union into one link solid.
	out := st.registered[0]
	for _, s := range st.registered[1:] {
		out = e.kernel.Union(out, s)
	}
	return out, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError
// values, extracting line numbers when the message carries them.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}

	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}

	// Fallback: no line info available.
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
