// Package resolver implements the static variable-resolution pass: it
// walks the parsed statement list once and records, for every
// variable/this/super/assignment expression, the lexical distance
// between its use site and the scope that declares it.
package resolver

import (
	"github.com/cwbudde/glox/internal/ast"
	"github.com/cwbudde/glox/internal/diagnostics"
	"github.com/cwbudde/glox/pkg/token"
)

type functionKind int

const (
	functionNone functionKind = iota
	functionFunction
	functionInitializer
	functionMethod
)

type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// scope maps a name to whether it has finished being defined:
// declared-but-not-yet-defined (false) vs. fully defined (true).
type scope map[string]bool

// Resolver performs the static pass described above. Locals, once
// Resolve returns, maps every resolved expression node to its scope
// depth (0 = innermost); an expression absent from the map is a
// global reference.
type Resolver struct {
	collector *diagnostics.Collector
	scopes    []scope
	locals    map[ast.Expr]int

	// globalInit tracks top-level `var` declarations currently
	// evaluating their own initializer, mirroring the declared-but-
	// not-yet-defined check `scope` does for locals — globals never
	// push a scope, so that check needs its own bookkeeping here.
	globalInit map[string]bool

	currentFunction functionKind
	currentClass    classKind
}

// New creates a Resolver reporting diagnostics to collector.
func New(collector *diagnostics.Collector) *Resolver {
	return &Resolver{
		collector: collector,
		locals:    make(map[ast.Expr]int),
	}
}

// Resolve walks stmts and returns the depth table. Static errors are
// reported to the collector; the caller should check
// collector.HadError() before interpreting the result.
func (r *Resolver) Resolve(stmts []ast.Stmt) map[ast.Expr]int {
	r.resolveStmts(stmts)
	return r.locals
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(n.Statements)
		r.endScope()

	case *ast.Class:
		enclosingClass := r.currentClass
		r.currentClass = classClass

		r.declare(n.Name)
		r.define(n.Name)

		if n.Superclass != nil {
			if n.Superclass.Name.Lexeme == n.Name.Lexeme {
				r.reportToken(n.Name, "A class can't inherit from itself.")
			} else {
				r.currentClass = classSubclass
				r.resolveExpr(n.Superclass)
			}

			r.beginScope()
			r.scopes[len(r.scopes)-1]["super"] = true
		}

		r.beginScope()
		r.scopes[len(r.scopes)-1]["this"] = true

		for _, method := range n.Methods {
			kind := functionMethod
			if method.Name.Lexeme == "init" {
				kind = functionInitializer
			}
			r.resolveFunction(method, kind)
		}

		r.endScope()
		if n.Superclass != nil {
			r.endScope()
		}
		r.currentClass = enclosingClass

	case *ast.Expression:
		r.resolveExpr(n.Expression)

	case *ast.Function:
		r.declare(n.Name)
		r.define(n.Name)
		r.resolveFunction(n, functionFunction)

	case *ast.If:
		r.resolveExpr(n.Condition)
		r.resolveStmt(n.Then)
		if n.Else != nil {
			r.resolveStmt(n.Else)
		}

	case *ast.Print:
		r.resolveExpr(n.Expression)

	case *ast.Return:
		if r.currentFunction == functionNone {
			r.reportToken(n.Keyword, "Can't return from top-level code.")
		}
		if n.Value != nil {
			if r.currentFunction == functionInitializer {
				r.reportToken(n.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(n.Value)
		}

	case *ast.Var:
		if len(r.scopes) == 0 {
			if r.globalInit == nil {
				r.globalInit = map[string]bool{}
			}
			r.globalInit[n.Name.Lexeme] = true
		} else {
			r.declare(n.Name)
		}
		if n.Initializer != nil {
			r.resolveExpr(n.Initializer)
		}
		if len(r.scopes) == 0 {
			delete(r.globalInit, n.Name.Lexeme)
		} else {
			r.define(n.Name)
		}

	case *ast.While:
		r.resolveExpr(n.Condition)
		r.resolveStmt(n.Body)
	}
}

func (r *Resolver) resolveFunction(fn *ast.Function, kind functionKind) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Assign:
		r.resolveExpr(n.Value)
		r.resolveLocal(n, n.Name)

	case *ast.Binary:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)

	case *ast.Call:
		r.resolveExpr(n.Callee)
		for _, arg := range n.Arguments {
			r.resolveExpr(arg)
		}

	case *ast.Get:
		r.resolveExpr(n.Object)

	case *ast.Grouping:
		r.resolveExpr(n.Expression)

	case *ast.Literal:
		// nothing to resolve

	case *ast.Logical:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)

	case *ast.Set:
		r.resolveExpr(n.Value)
		r.resolveExpr(n.Object)

	case *ast.Super:
		switch r.currentClass {
		case classNone:
			r.reportToken(n.Keyword, "Can't use 'super' outside of a class.")
		case classClass:
			r.reportToken(n.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(n, token.Token{Kind: token.SUPER, Lexeme: "super", Line: n.Keyword.Line})

	case *ast.This:
		if r.currentClass == classNone {
			r.reportToken(n.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(n, token.Token{Kind: token.THIS, Lexeme: "this", Line: n.Keyword.Line})

	case *ast.Unary:
		r.resolveExpr(n.Right)

	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][n.Name.Lexeme]; ok && !defined {
				r.reportToken(n.Name, "Can't read local variable in its own initializer.")
			}
		} else if r.globalInit[n.Name.Lexeme] {
			r.reportToken(n.Name, "Can't read local variable in its own initializer.")
		}
		r.resolveLocal(n, n.Name)
	}
}

// resolveLocal walks the scope stack from innermost outward and, on
// the first scope containing name, records the distance on expr.
// Finding no such scope leaves expr absent from locals, i.e. global.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	current := r.scopes[len(r.scopes)-1]
	if _, exists := current[name.Lexeme]; exists {
		r.reportToken(name, "Already a variable with this name in this scope.")
	}
	current[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) reportToken(tok token.Token, message string) {
	where := " at '" + tok.Lexeme + "'"
	if tok.Kind == token.EOF {
		where = " at end"
	}
	r.collector.Report(tok.Line, where, message)
}
