// Package diagnostics formats and collects compile-time and runtime
// errors for the Lox pipeline.
//
// The wire format is a hard contract (§6 of the specification this
// interpreter implements): callers must not be tempted to swap in a
// friendlier banner. The struct/Format split is grounded on
// go-dws's internal/errors.CompilerError, but the text Format produces
// here is exactly what the language spec mandates rather than a
// source-context banner.
package diagnostics

import "fmt"

// Error is a single compile-time diagnostic (lex, parse, or resolve).
type Error struct {
	Line    int
	Where   string // "" for a line-only error, " at end", or " at 'LEXEME'"
	Message string
}

// Format renders the diagnostic as `[line L] Error<WHERE>: MESSAGE\n`.
func (e Error) Format() string {
	return fmt.Sprintf("[line %d] Error%s: %s\n", e.Line, e.Where, e.Message)
}

// RuntimeError is a single uncaught runtime error, carrying the line
// of the operation that failed.
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// Format renders the diagnostic as `Error: MESSAGE\n[line L]\n`.
func (e *RuntimeError) Format() string {
	return fmt.Sprintf("Error: %s\n[line %d]\n", e.Message, e.Line)
}

// Collector accumulates compile-time diagnostics across the scan,
// parse, and resolve stages, matching the Driver's "any stage may push
// diagnostics; a later stage is skipped once an error is recorded"
// control-flow rule.
type Collector struct {
	errors []Error
}

// Report records a new diagnostic.
func (c *Collector) Report(line int, where, message string) {
	c.errors = append(c.errors, Error{Line: line, Where: where, Message: message})
}

// HadError reports whether any diagnostic has been recorded.
func (c *Collector) HadError() bool {
	return len(c.errors) > 0
}

// Errors returns every diagnostic recorded so far, in report order.
func (c *Collector) Errors() []Error {
	return c.errors
}

// Reset clears accumulated diagnostics (used by the REPL between
// lines).
func (c *Collector) Reset() {
	c.errors = nil
}
