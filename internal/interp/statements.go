package interp

import (
	"fmt"

	"github.com/cwbudde/glox/internal/ast"
	"github.com/cwbudde/glox/internal/interp/runtime"
)

func (i *Interpreter) execute(stmt ast.Stmt) error {
	if i.Tracer != nil {
		i.trace("[trace] %s\n", describeStmt(stmt))
	}
	switch s := stmt.(type) {
	case *ast.Block:
		return i.executeBlock(s.Statements, runtime.NewEnclosedEnvironment(i.environment))

	case *ast.Class:
		return i.executeClass(s)

	case *ast.Expression:
		value, err := i.evaluate(s.Expression)
		if err != nil {
			return err
		}
		if i.REPLMode {
			fmt.Fprintln(i.stdout, stringify(value))
		}
		return nil

	case *ast.Function:
		fn := &runtime.Function{Declaration: s, Closure: i.environment, IsInitializer: false}
		i.environment.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.If:
		cond, err := i.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if runtime.Truthy(cond) {
			return i.execute(s.Then)
		}
		if s.Else != nil {
			return i.execute(s.Else)
		}
		return nil

	case *ast.Print:
		value, err := i.evaluate(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.stdout, stringify(value))
		return nil

	case *ast.Return:
		var value runtime.Value = runtime.Nil{}
		if s.Value != nil {
			v, err := i.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &returnSignal{value: value}

	case *ast.Var:
		var value runtime.Value = runtime.Nil{}
		if s.Initializer != nil {
			v, err := i.evaluate(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		i.environment.Define(s.Name.Lexeme, value)
		return nil

	case *ast.While:
		for {
			cond, err := i.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !runtime.Truthy(cond) {
				return nil
			}
			if err := i.execute(s.Body); err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("unhandled statement type %T", stmt)
	}
}

// describeStmt renders a one-line trace label for stmt, including a
// line number where the statement's own token carries one.
func describeStmt(stmt ast.Stmt) string {
	switch s := stmt.(type) {
	case *ast.Var:
		return fmt.Sprintf("var %s (line %d)", s.Name.Lexeme, s.Name.Line)
	case *ast.Print:
		return "print"
	case *ast.Return:
		return fmt.Sprintf("return (line %d)", s.Keyword.Line)
	case *ast.Function:
		return fmt.Sprintf("fun %s (line %d)", s.Name.Lexeme, s.Name.Line)
	case *ast.Class:
		return fmt.Sprintf("class %s (line %d)", s.Name.Lexeme, s.Name.Line)
	case *ast.If:
		return "if"
	case *ast.While:
		return "while"
	case *ast.Block:
		return "block"
	case *ast.Expression:
		return "expression"
	default:
		return fmt.Sprintf("%T", stmt)
	}
}
