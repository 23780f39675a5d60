package glox

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// runSource drives a fresh Driver over source and returns its
// captured stdout, stderr, and exit code — the harness every §8
// end-to-end scenario test below is built on.
func runSource(source string) (stdout, stderr string, code int) {
	var out, err bytes.Buffer
	d := New(&out, &err, nil)
	code = d.Run(source)
	return out.String(), err.String(), code
}

func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{
			name: "closure_counter",
			source: `fun makeCounter() { var i = 0; fun c() { i = i + 1; print i; } return c; }
var c = makeCounter(); c(); c();`,
		},
		{
			name: "inheritance_super",
			source: `class A { greet() { print "A"; } }
class B < A { greet() { super.greet(); print "B"; } }
B().greet();`,
		},
		{
			name:   "initializer_returns_instance",
			source: `class P { init(x) { this.x = x; return; } }
print P(5).x;`,
		},
		{
			name:   "for_loop_desugaring",
			source: `for (var i = 1; i <= 3; i = i + 1) print i;`,
		},
		{
			name:   "print_literals",
			source: `print nil; print true; print false;`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := runSource(tt.source)
			if stderr != "" {
				t.Fatalf("unexpected stderr: %s", stderr)
			}
			if code != ExitOK {
				t.Fatalf("expected exit 0, got %d", code)
			}
			snaps.MatchSnapshot(t, stdout)
		})
	}
}

func TestUndefinedVariableRuntimeError(t *testing.T) {
	stdout, stderr, code := runSource("print undef;")
	if stdout != "" {
		t.Fatalf("expected no stdout, got %q", stdout)
	}
	wantStderr := "Error: Undefined variable 'undef'.\n[line 1]\n"
	if stderr != wantStderr {
		t.Fatalf("stderr = %q, want %q", stderr, wantStderr)
	}
	if code != ExitRuntimeError {
		t.Fatalf("exit code = %d, want %d", code, ExitRuntimeError)
	}
}

func TestDuplicateLocalStaticError(t *testing.T) {
	stdout, stderr, code := runSource("fun f() { var a = 1; var a = 2; }")
	if stdout != "" {
		t.Fatalf("expected no stdout, got %q", stdout)
	}
	wantStderr := "[line 1] Error at 'a': Already a variable with this name in this scope.\n"
	if stderr != wantStderr {
		t.Fatalf("stderr = %q, want %q", stderr, wantStderr)
	}
	if code != ExitCompileError {
		t.Fatalf("exit code = %d, want %d", code, ExitCompileError)
	}
}

func TestPrintLiteralsExactOutput(t *testing.T) {
	stdout, _, _ := runSource(`print nil; print true; print false;`)
	want := "nil\ntrue\nfalse\n"
	if stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
}

func TestForLoopDesugaredOutput(t *testing.T) {
	stdout, _, _ := runSource(`for (var i = 1; i <= 3; i = i + 1) print i;`)
	want := "1\n2\n3\n"
	if stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
}

func TestREPLClearsErrorBetweenLines(t *testing.T) {
	var out, errBuf bytes.Buffer
	d := New(&out, &errBuf, nil)

	d.Run("print undef;")
	if !d.HadRuntimeError() {
		t.Fatal("expected HadRuntimeError after undefined-variable line")
	}

	d.Run("print;")
	if !d.HadError() {
		t.Fatal("expected HadError after a line with a parse error")
	}

	errBuf.Reset()
	d.Run("print 1;")
	if d.HadError() {
		t.Fatal("HadError should reset to false after a clean line")
	}
	if out.String() != "1\n" {
		t.Fatalf("stdout = %q, want %q", out.String(), "1\n")
	}
}
