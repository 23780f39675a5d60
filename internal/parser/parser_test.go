package parser

import (
	"testing"

	"github.com/cwbudde/glox/internal/ast"
	"github.com/cwbudde/glox/internal/diagnostics"
	"github.com/cwbudde/glox/internal/lexer"
)

func parse(t *testing.T, source string) ([]ast.Stmt, *diagnostics.Collector) {
	t.Helper()
	tokens := lexer.New(source).ScanTokens()
	collector := &diagnostics.Collector{}
	stmts := New(tokens, collector).Parse()
	return stmts, collector
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"arithmetic precedence", "1 + 2 * 3;", "(+ 1 (* 2 3))\n"},
		{"power binds tighter than factor", "2 * 3 ^ 2;", "(* 2 (^ 3 2))\n"},
		{"percent same tier as star", "7 % 2;", "(% 7 2)\n"},
		{"comparison chain", "1 < 2 == true;", "(== (< 1 2) true)\n"},
		{"unary minus", "-1 + 2;", "(+ (- 1) 2)\n"},
		{"grouping overrides precedence", "(1 + 2) * 3;", "(* (group (+ 1 2)) 3)\n"},
		{"logical and/or precedence", "true or false and true;", "(or true (and false true))\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, collector := parse(t, tt.source)
			if collector.HadError() {
				t.Fatalf("unexpected parse errors: %v", collector.Errors())
			}
			got := ast.PrintStmts(stmts)
			if got != tt.want {
				t.Errorf("Print() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestForStatementDesugarsToWhile(t *testing.T) {
	stmts, collector := parse(t, "for (var i = 1; i <= 3; i = i + 1) print i;")
	if collector.HadError() {
		t.Fatalf("unexpected parse errors: %v", collector.Errors())
	}
	if len(stmts) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(stmts))
	}
	block, ok := stmts[0].(*ast.Block)
	if !ok {
		t.Fatalf("expected *ast.Block, got %T", stmts[0])
	}
	if len(block.Statements) != 2 {
		t.Fatalf("expected [var-init, while], got %d statements", len(block.Statements))
	}
	if _, ok := block.Statements[0].(*ast.Var); !ok {
		t.Errorf("first desugared statement should be *ast.Var, got %T", block.Statements[0])
	}
	whileStmt, ok := block.Statements[1].(*ast.While)
	if !ok {
		t.Fatalf("second desugared statement should be *ast.While, got %T", block.Statements[1])
	}
	whileBody, ok := whileStmt.Body.(*ast.Block)
	if !ok || len(whileBody.Statements) != 2 {
		t.Fatalf("while body should be [print, increment], got %#v", whileStmt.Body)
	}
}

func TestDuplicateLocalIsAResolverError(t *testing.T) {
	// The parser itself accepts two `var a` declarations in one scope;
	// catching the duplicate is the resolver's job (§4.3). The parser
	// must not error here.
	_, collector := parse(t, "fun f() { var a = 1; var a = 2; }")
	if collector.HadError() {
		t.Fatalf("parser should not reject a duplicate local, got: %v", collector.Errors())
	}
}

func TestParamLimitIsReportedNotFatal(t *testing.T) {
	source := "fun f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			source += ", "
		}
		source += "p"
		source += string(rune('a'+(i%26)))
	}
	source += ") {}"

	_, collector := parse(t, source)
	if !collector.HadError() {
		t.Fatal("expected an error for more than 255 parameters")
	}
	found := false
	for _, e := range collector.Errors() {
		if e.Message == "Can't have more than 255 parameters." {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the 255-parameter diagnostic, got: %v", collector.Errors())
	}
}

func TestInvalidAssignmentTarget(t *testing.T) {
	_, collector := parse(t, "1 + 2 = 3;")
	if !collector.HadError() {
		t.Fatal("expected a parse error for an invalid assignment target")
	}
	found := false
	for _, e := range collector.Errors() {
		if e.Message == "Invalid assignment target." {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'Invalid assignment target.', got: %v", collector.Errors())
	}
}

func TestSynchronizeRecoversAfterError(t *testing.T) {
	// A malformed first statement should not prevent the parser from
	// recovering and producing the well-formed second one.
	stmts, collector := parse(t, "var; print 1;")
	if !collector.HadError() {
		t.Fatal("expected a parse error for the malformed declaration")
	}
	var foundPrint bool
	for _, s := range stmts {
		if _, ok := s.(*ast.Print); ok {
			foundPrint = true
		}
	}
	if !foundPrint {
		t.Errorf("expected parser to recover and still parse the print statement, got %#v", stmts)
	}
}
