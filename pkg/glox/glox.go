// Package glox is the library entry point for the interpreter (§4.6
// "Driver"): it wires the scan -> parse -> resolve -> interpret
// pipeline and maps the result onto the exit codes §6 mandates.
//
// The host process (cmd/glox) owns argument parsing, file reading,
// REPL line reading, and the actual os.Exit call; this package only
// decides what exit code the host *should* use, matching the spec's
// stated boundary ("the core signals a status; the host translates
// it").
package glox

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cwbudde/glox/internal/ast"
	"github.com/cwbudde/glox/internal/config"
	"github.com/cwbudde/glox/internal/diagnostics"
	"github.com/cwbudde/glox/internal/interp"
	"github.com/cwbudde/glox/internal/lexer"
	"github.com/cwbudde/glox/internal/parser"
	"github.com/cwbudde/glox/internal/resolver"
)

// Exit codes, per §6.
const (
	ExitOK           = 0
	ExitUsage        = 64
	ExitCompileError = 65
	ExitRuntimeError = 70
)

// Driver runs Lox source against a single interpreter instance,
// tracking the HadError/HadRuntimeError flags §4.6 describes.
type Driver struct {
	Stdout io.Writer
	Stderr io.Writer

	interp          *interp.Interpreter
	hadError        bool
	hadRuntimeError bool
}

// New creates a Driver writing program output to stdout and
// diagnostics to stderr, installing natives per cfg's allow-list. A
// nil cfg is equivalent to config.Default().
func New(stdout, stderr io.Writer, cfg *config.Config) *Driver {
	if cfg == nil {
		cfg = config.Default()
	}
	it := interp.NewWithNatives(stdout, cfg.NativesAllowed)
	if cfg.MaxCallDepth > 0 {
		it.SetMaxCallDepth(cfg.MaxCallDepth)
	}
	return &Driver{Stdout: stdout, Stderr: stderr, interp: it}
}

// SetTracer enables statement- and call-frame-level execution tracing
// to w (wired to `glox run --trace`). A nil w disables tracing.
func (d *Driver) SetTracer(w io.Writer) {
	d.interp.SetTracer(w)
}

// HadError reports whether a compile-time diagnostic has been
// recorded by the most recent Run (Run clears it at the start of every
// call, so in the REPL it is cleared for each line).
func (d *Driver) HadError() bool { return d.hadError }

// HadRuntimeError reports whether an uncaught runtime error has ever
// been recorded; unlike HadError, this never resets.
func (d *Driver) HadRuntimeError() bool { return d.hadRuntimeError }

// Run executes source as a standalone unit (§4.6 "run_file"): scan,
// parse, resolve, then — only if no compile-time diagnostic fired —
// interpret. It returns the exit code the host should use.
func (d *Driver) Run(source string) int {
	d.hadError = false

	collector := &diagnostics.Collector{}

	scanner := lexer.New(source)
	tokens := scanner.ScanTokens()
	for _, le := range scanner.Errors() {
		collector.Report(le.Line, "", le.Message)
	}

	p := parser.New(tokens, collector)
	stmts := p.Parse()

	var locals map[ast.Expr]int
	if !collector.HadError() {
		res := resolver.New(collector)
		locals = res.Resolve(stmts)
	}

	if collector.HadError() {
		d.hadError = true
		for _, e := range collector.Errors() {
			fmt.Fprint(d.Stderr, e.Format())
		}
		return ExitCompileError
	}

	if rerr := d.interp.Interpret(stmts, locals); rerr != nil {
		d.hadRuntimeError = true
		fmt.Fprint(d.Stderr, rerr.Format())
		return ExitRuntimeError
	}

	return ExitOK
}

// RunREPL reads lines from in with prompt written to Stdout before
// each one, evaluating each line as its own unit against the shared
// global environment (§4.6: "had_error is cleared after each line;
// had_runtime_error never terminates the REPL"). It returns once in
// reaches end-of-input.
func (d *Driver) RunREPL(in io.Reader, prompt string) {
	d.interp.REPLMode = true
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(d.Stdout, prompt)
		if !scanner.Scan() {
			return
		}
		d.Run(scanner.Text())
	}
}
