package ast

import (
	"fmt"
	"strings"
)

// PrintStmts renders a statement list as a parenthesized debug form,
// used by `glox parse` to show the parsed tree. It is not a
// pretty-printer for Lox source — just enough structure to see what
// the parser produced.
func PrintStmts(stmts []Stmt) string {
	var sb strings.Builder
	for _, s := range stmts {
		sb.WriteString(printStmt(s))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func printStmt(s Stmt) string {
	switch n := s.(type) {
	case *Block:
		parts := make([]string, len(n.Statements))
		for i, st := range n.Statements {
			parts[i] = printStmt(st)
		}
		return paren("block", parts...)
	case *Class:
		parts := []string{n.Name.Lexeme}
		if n.Superclass != nil {
			parts = append(parts, "<"+n.Superclass.Name.Lexeme)
		}
		for _, m := range n.Methods {
			parts = append(parts, printStmt(m))
		}
		return paren("class", parts...)
	case *Expression:
		return printExpr(n.Expression)
	case *Function:
		names := make([]string, len(n.Params))
		for i, p := range n.Params {
			names[i] = p.Lexeme
		}
		return paren("fun "+n.Name.Lexeme+"("+strings.Join(names, " ")+")", printStmt(&Block{Statements: n.Body}))
	case *If:
		if n.Else != nil {
			return paren("if", printExpr(n.Condition), printStmt(n.Then), printStmt(n.Else))
		}
		return paren("if", printExpr(n.Condition), printStmt(n.Then))
	case *Print:
		return paren("print", printExpr(n.Expression))
	case *Return:
		if n.Value != nil {
			return paren("return", printExpr(n.Value))
		}
		return paren("return")
	case *Var:
		if n.Initializer != nil {
			return paren("var "+n.Name.Lexeme, printExpr(n.Initializer))
		}
		return paren("var " + n.Name.Lexeme)
	case *While:
		return paren("while", printExpr(n.Condition), printStmt(n.Body))
	default:
		return fmt.Sprintf("<unknown stmt %T>", s)
	}
}

func printExpr(e Expr) string {
	switch n := e.(type) {
	case *Assign:
		return paren("= "+n.Name.Lexeme, printExpr(n.Value))
	case *Binary:
		return paren(n.Operator.Lexeme, printExpr(n.Left), printExpr(n.Right))
	case *Call:
		parts := make([]string, len(n.Arguments))
		for i, a := range n.Arguments {
			parts[i] = printExpr(a)
		}
		return paren("call", append([]string{printExpr(n.Callee)}, parts...)...)
	case *Get:
		return paren("get "+n.Name.Lexeme, printExpr(n.Object))
	case *Grouping:
		return paren("group", printExpr(n.Expression))
	case *Literal:
		if n.Value == nil {
			return "nil"
		}
		return fmt.Sprintf("%v", n.Value)
	case *Logical:
		return paren(n.Operator.Lexeme, printExpr(n.Left), printExpr(n.Right))
	case *Set:
		return paren("set "+n.Name.Lexeme, printExpr(n.Object), printExpr(n.Value))
	case *Super:
		return "(super " + n.Method.Lexeme + ")"
	case *This:
		return "this"
	case *Unary:
		return paren(n.Operator.Lexeme, printExpr(n.Right))
	case *Variable:
		return n.Name.Lexeme
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}

func paren(name string, parts ...string) string {
	return "(" + name + " " + strings.Join(parts, " ") + ")"
}
