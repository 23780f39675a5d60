package resolver

import (
	"testing"

	"github.com/cwbudde/glox/internal/ast"
	"github.com/cwbudde/glox/internal/diagnostics"
	"github.com/cwbudde/glox/internal/lexer"
	"github.com/cwbudde/glox/internal/parser"
)

func resolve(t *testing.T, source string) ([]ast.Stmt, map[ast.Expr]int, *diagnostics.Collector) {
	t.Helper()
	tokens := lexer.New(source).ScanTokens()
	collector := &diagnostics.Collector{}
	stmts := parser.New(tokens, collector).Parse()
	if collector.HadError() {
		t.Fatalf("unexpected parse errors: %v", collector.Errors())
	}
	locals := New(collector).Resolve(stmts)
	return stmts, locals, collector
}

// findVariable finds the *ast.Variable named name inside stmts by a
// shallow expression walk, enough for the handful of single-reference
// fixtures below.
func findVariable(stmts []ast.Stmt, name string) *ast.Variable {
	var found *ast.Variable
	var walkExpr func(ast.Expr)
	var walkStmt func(ast.Stmt)

	walkExpr = func(e ast.Expr) {
		if e == nil || found != nil {
			return
		}
		switch n := e.(type) {
		case *ast.Variable:
			if n.Name.Lexeme == name {
				found = n
			}
		case *ast.Assign:
			walkExpr(n.Value)
		case *ast.Binary:
			walkExpr(n.Left)
			walkExpr(n.Right)
		case *ast.Logical:
			walkExpr(n.Left)
			walkExpr(n.Right)
		case *ast.Call:
			walkExpr(n.Callee)
			for _, a := range n.Arguments {
				walkExpr(a)
			}
		case *ast.Grouping:
			walkExpr(n.Expression)
		case *ast.Unary:
			walkExpr(n.Right)
		case *ast.Get:
			walkExpr(n.Object)
		case *ast.Set:
			walkExpr(n.Object)
			walkExpr(n.Value)
		}
	}

	walkStmt = func(s ast.Stmt) {
		if found != nil {
			return
		}
		switch n := s.(type) {
		case *ast.Block:
			for _, st := range n.Statements {
				walkStmt(st)
			}
		case *ast.Function:
			for _, st := range n.Body {
				walkStmt(st)
			}
		case *ast.Class:
			for _, m := range n.Methods {
				walkStmt(m)
			}
		case *ast.If:
			walkExpr(n.Condition)
			walkStmt(n.Then)
			if n.Else != nil {
				walkStmt(n.Else)
			}
		case *ast.While:
			walkExpr(n.Condition)
			walkStmt(n.Body)
		case *ast.Var:
			walkExpr(n.Initializer)
		case *ast.Print:
			walkExpr(n.Expression)
		case *ast.Return:
			walkExpr(n.Value)
		case *ast.Expression:
			walkExpr(n.Expression)
		}
	}

	for _, s := range stmts {
		walkStmt(s)
	}
	return found
}

func TestResolveLocalDepth(t *testing.T) {
	stmts, locals, _ := resolve(t, `fun outer() {
  var a = 1;
  fun inner() {
    print a;
  }
  inner();
}`)

	ref := findVariable(stmts, "a")
	if ref == nil {
		t.Fatal("expected to find a reference to 'a'")
	}
	depth, ok := locals[ref]
	if !ok {
		t.Fatal("expected 'a' to be resolved as a local")
	}
	if depth != 1 {
		t.Errorf("depth = %d, want 1 (one function scope between use and declaration)", depth)
	}
}

func TestResolveGlobalIsAbsentFromLocals(t *testing.T) {
	stmts, locals, _ := resolve(t, `var g = 1;
print g;`)

	ref := findVariable(stmts, "g")
	if ref == nil {
		t.Fatal("expected to find a reference to 'g'")
	}
	if _, ok := locals[ref]; ok {
		t.Error("a top-level global reference should not appear in the locals table")
	}
}

func TestDuplicateLocalIsAStaticError(t *testing.T) {
	_, _, collector := resolve(t, "fun f() { var a = 1; var a = 2; }")
	if !collector.HadError() {
		t.Fatal("expected a static error for a duplicate local")
	}
	want := diagnostics.Error{Line: 1, Where: " at 'a'", Message: "Already a variable with this name in this scope."}
	found := false
	for _, e := range collector.Errors() {
		if e == want {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %+v, got %+v", want, collector.Errors())
	}
}

func TestSelfReferentialInitializerIsAStaticError(t *testing.T) {
	_, _, collector := resolve(t, "var a = a;")
	if !collector.HadError() {
		t.Fatal("expected an error for reading a local in its own initializer")
	}
}

func TestReturnAtTopLevelIsAStaticError(t *testing.T) {
	_, _, collector := resolve(t, "return 1;")
	if !collector.HadError() {
		t.Fatal("expected an error for a top-level return")
	}
}

func TestReturnValueFromInitializerIsAStaticError(t *testing.T) {
	_, _, collector := resolve(t, "class C { init() { return 1; } }")
	if !collector.HadError() {
		t.Fatal("expected an error for an initializer returning a value")
	}
}

func TestSuperOutsideSubclassIsAStaticError(t *testing.T) {
	_, _, collector := resolve(t, "class C { m() { super.m(); } }")
	if !collector.HadError() {
		t.Fatal("expected an error for 'super' used outside a subclass")
	}
}

func TestClassCannotInheritFromItself(t *testing.T) {
	_, _, collector := resolve(t, "class C < C {}")
	if !collector.HadError() {
		t.Fatal("expected an error for a class inheriting from itself")
	}
}

func TestThisOutsideMethodIsAStaticError(t *testing.T) {
	_, _, collector := resolve(t, "print this;")
	if !collector.HadError() {
		t.Fatal("expected an error for 'this' used outside a method")
	}
}
