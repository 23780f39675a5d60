package interp

import (
	"github.com/cwbudde/glox/internal/ast"
	"github.com/cwbudde/glox/internal/interp/runtime"
	"github.com/cwbudde/glox/pkg/token"
)

func (i *Interpreter) evaluate(expr ast.Expr) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.Assign:
		return i.evalAssign(e)
	case *ast.Binary:
		return i.evalBinary(e)
	case *ast.Call:
		return i.evalCall(e)
	case *ast.Get:
		return i.evalGet(e)
	case *ast.Grouping:
		return i.evaluate(e.Expression)
	case *ast.Literal:
		return literalValue(e.Value), nil
	case *ast.Logical:
		return i.evalLogical(e)
	case *ast.Set:
		return i.evalSet(e)
	case *ast.Super:
		return i.evalSuper(e)
	case *ast.This:
		return i.lookUpVariable(e.Keyword, e)
	case *ast.Unary:
		return i.evalUnary(e)
	case *ast.Variable:
		return i.lookUpVariable(e.Name, e)
	default:
		return nil, runtimeErr(0, "unhandled expression type %T", expr)
	}
}

func literalValue(v any) runtime.Value {
	switch val := v.(type) {
	case nil:
		return runtime.Nil{}
	case bool:
		return runtime.Boolean{Value: val}
	case float64:
		return runtime.Number{Value: val}
	case string:
		return runtime.String{Value: val}
	default:
		return runtime.Nil{}
	}
}

func (i *Interpreter) evalAssign(e *ast.Assign) (runtime.Value, error) {
	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := i.locals[e]; ok {
		i.environment.AssignAt(distance, e.Name.Lexeme, value)
		return value, nil
	}
	if err := i.Globals.Assign(e.Name.Lexeme, value); err != nil {
		return nil, runtimeErr(e.Name.Line, "%s", err.Error())
	}
	return value, nil
}

func (i *Interpreter) evalLogical(e *ast.Logical) (runtime.Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator.Kind == token.OR {
		if runtime.Truthy(left) {
			return left, nil
		}
	} else {
		if !runtime.Truthy(left) {
			return left, nil
		}
	}
	return i.evaluate(e.Right)
}

func (i *Interpreter) evalUnary(e *ast.Unary) (runtime.Value, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Kind {
	case token.MINUS:
		n, ok := right.(runtime.Number)
		if !ok {
			return nil, runtimeErr(e.Operator.Line, "Operand must be a number.")
		}
		return runtime.Number{Value: -n.Value}, nil
	case token.BANG:
		return runtime.Boolean{Value: !runtime.Truthy(right)}, nil
	default:
		return nil, runtimeErr(e.Operator.Line, "Unknown unary operator '%s'.", e.Operator.Lexeme)
	}
}

func (i *Interpreter) evalGet(e *ast.Get) (runtime.Value, error) {
	object, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.Instance)
	if !ok {
		return nil, runtimeErr(e.Name.Line, "Only instances have properties.")
	}
	if field, ok := instance.Fields[e.Name.Lexeme]; ok {
		return field, nil
	}
	if method, ok := instance.Class.FindMethod(e.Name.Lexeme); ok {
		return method.Bind(instance), nil
	}
	return nil, runtimeErr(e.Name.Line, "Undefined property '%s'.", e.Name.Lexeme)
}

func (i *Interpreter) evalSet(e *ast.Set) (runtime.Value, error) {
	object, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.Instance)
	if !ok {
		return nil, runtimeErr(e.Name.Line, "Only instances have fields.")
	}
	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	instance.Fields[e.Name.Lexeme] = value
	return value, nil
}

func (i *Interpreter) evalSuper(e *ast.Super) (runtime.Value, error) {
	distance := i.locals[e]
	superVal := i.environment.GetAt(distance, "super")
	superclass, ok := superVal.(*runtime.Class)
	if !ok {
		return nil, runtimeErr(e.Keyword.Line, "Superclass must be a class.")
	}
	thisVal := i.environment.GetAt(distance-1, "this")
	instance, ok := thisVal.(*runtime.Instance)
	if !ok {
		return nil, runtimeErr(e.Keyword.Line, "'this' is not bound.")
	}
	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, runtimeErr(e.Method.Line, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.Bind(instance), nil
}
