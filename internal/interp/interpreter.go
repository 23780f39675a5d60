// Package interp walks a resolved Lox AST and evaluates it.
//
// The evaluator is grounded on go-dws's internal/interp package (one
// small file per concern — statements, expressions, classes, calls,
// natives — rather than one monolithic Eval switch), adapted from
// DWScript's dynamically-typed-but-compiled-class-layout semantics to
// Lox's simpler closures-plus-single-inheritance model.
package interp

import (
	"fmt"
	"io"

	"github.com/cwbudde/glox/internal/ast"
	"github.com/cwbudde/glox/internal/diagnostics"
	"github.com/cwbudde/glox/internal/interp/runtime"
	"github.com/cwbudde/glox/pkg/token"
)

// defaultMaxCallDepth bounds recursion so a runaway Lox program fails with a
// reported runtime error instead of taking down the host process via
// a Go stack overflow (§5 "Recursion").
const defaultMaxCallDepth = 4000

// Interpreter walks a resolved statement list. Stdout receives
// `print` output; REPLMode, when set, also prints the value of a bare
// expression statement (so the REPL echoes results).
type Interpreter struct {
	Globals     *runtime.Environment
	environment *runtime.Environment
	locals      map[ast.Expr]int

	stdout   io.Writer
	REPLMode bool

	maxCallDepth int
	callDepth    int

	// Tracer, when non-nil, receives one line per statement executed
	// and per call-frame enter/return (wired to `glox run --trace`).
	Tracer io.Writer
}

// New creates an Interpreter writing `print` output to stdout and
// installs the native function set into the global environment.
func New(stdout io.Writer) *Interpreter {
	return NewWithNatives(stdout, nil)
}

// NewWithNatives is New, restricted to the natives for which allowed
// returns true (wired to glox.yaml's `natives` allow-list). A nil
// allowed installs the full glossary set.
func NewWithNatives(stdout io.Writer, allowed func(name string) bool) *Interpreter {
	globals := runtime.NewEnvironment()
	i := &Interpreter{
		Globals:      globals,
		environment:  globals,
		stdout:       stdout,
		maxCallDepth: defaultMaxCallDepth,
	}
	installNatives(globals, allowed)
	return i
}

// SetMaxCallDepth overrides the recursion guard (wired to the
// `maxCallDepth` key in glox.yaml; see internal/config).
func (i *Interpreter) SetMaxCallDepth(depth int) {
	if depth > 0 {
		i.maxCallDepth = depth
	}
}

// SetTracer enables statement- and call-frame-level tracing to w.
// A nil w disables tracing.
func (i *Interpreter) SetTracer(w io.Writer) {
	i.Tracer = w
}

func (i *Interpreter) trace(format string, args ...any) {
	if i.Tracer == nil {
		return
	}
	fmt.Fprintf(i.Tracer, format, args...)
}

// Interpret executes stmts against locals, the resolver's depth
// table. It returns the first uncaught runtime error, or nil on a
// clean run to completion (§4.5 "Non-local control": a runtime error
// aborts the whole interpret cycle).
func (i *Interpreter) Interpret(stmts []ast.Stmt, locals map[ast.Expr]int) *diagnostics.RuntimeError {
	i.locals = locals
	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			return toRuntimeError(err)
		}
	}
	return nil
}

// toRuntimeError normalizes any error propagated out of statement
// execution into the diagnostic shape the Driver reports. A
// *returnSignal escaping to here would mean the resolver failed to
// catch a top-level `return`; treat it defensively as a runtime error
// rather than panicking.
func toRuntimeError(err error) *diagnostics.RuntimeError {
	if err == nil {
		return nil
	}
	if re, ok := err.(*diagnostics.RuntimeError); ok {
		return re
	}
	if rs, ok := err.(*returnSignal); ok {
		_ = rs
		return &diagnostics.RuntimeError{Line: 0, Message: "return outside of a function call."}
	}
	return &diagnostics.RuntimeError{Line: 0, Message: err.Error()}
}

// returnSignal unwinds exactly to the nearest enclosing call frame
// (§4.5 "Non-local control"); it is never shown to the user.
type returnSignal struct {
	value runtime.Value
}

func (r *returnSignal) Error() string { return "return" }

func runtimeErr(line int, format string, args ...any) *diagnostics.RuntimeError {
	return &diagnostics.RuntimeError{Line: line, Message: fmt.Sprintf(format, args...)}
}

// executeBlock runs stmts against a freshly nested environment,
// restoring the caller's environment on every exit path — including
// an error unwind — per the §5 resource-discipline invariant.
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *runtime.Environment) error {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// lookUpVariable resolves name using its resolver-assigned depth when
// present, falling back to a dynamic global lookup otherwise (§4.5
// "Variable").
func (i *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) (runtime.Value, error) {
	if distance, ok := i.locals[expr]; ok {
		return i.environment.GetAt(distance, name.Lexeme), nil
	}
	v, err := i.Globals.Get(name.Lexeme)
	if err != nil {
		return nil, runtimeErr(name.Line, "%s", err.Error())
	}
	return v, nil
}

func stringify(v runtime.Value) string {
	if v == nil {
		return "nil"
	}
	return v.String()
}
