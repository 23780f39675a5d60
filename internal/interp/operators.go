package interp

import (
	"github.com/cwbudde/glox/internal/ast"
	"github.com/cwbudde/glox/internal/interp/runtime"
	"github.com/cwbudde/glox/pkg/token"
)

// evalBinary implements §4.5 "Binary": arithmetic requires two
// numbers (`+` additionally accepts two strings), comparisons require
// two numbers, and `==`/`!=` accept any two values via runtime.Equal.
func (i *Interpreter) evalBinary(e *ast.Binary) (runtime.Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case token.EQUAL_EQUAL:
		return runtime.Boolean{Value: runtime.Equal(left, right)}, nil
	case token.BANG_EQUAL:
		return runtime.Boolean{Value: !runtime.Equal(left, right)}, nil

	case token.PLUS:
		if ln, lok := left.(runtime.Number); lok {
			if rn, rok := right.(runtime.Number); rok {
				return runtime.Number{Value: ln.Value + rn.Value}, nil
			}
		}
		if ls, lok := left.(runtime.String); lok {
			if rs, rok := right.(runtime.String); rok {
				return runtime.String{Value: ls.Value + rs.Value}, nil
			}
		}
		return nil, runtimeErr(e.Operator.Line, "Operands must be two numbers or two strings.")

	case token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.CARET:
		ln, lok := left.(runtime.Number)
		rn, rok := right.(runtime.Number)
		if !lok || !rok {
			return nil, runtimeErr(e.Operator.Line, "Operands must be numbers.")
		}
		return numericBinary(e.Operator, ln.Value, rn.Value)

	case token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL:
		ln, lok := left.(runtime.Number)
		rn, rok := right.(runtime.Number)
		if !lok || !rok {
			return nil, runtimeErr(e.Operator.Line, "Operands must be numbers.")
		}
		return comparisonBinary(e.Operator, ln.Value, rn.Value), nil

	default:
		return nil, runtimeErr(e.Operator.Line, "Unknown binary operator '%s'.", e.Operator.Lexeme)
	}
}

func numericBinary(op token.Token, l, r float64) (runtime.Value, error) {
	switch op.Kind {
	case token.MINUS:
		return runtime.Number{Value: l - r}, nil
	case token.STAR:
		return runtime.Number{Value: l * r}, nil
	case token.SLASH:
		return runtime.Number{Value: l / r}, nil
	case token.PERCENT:
		return runtime.Number{Value: floatMod(l, r)}, nil
	case token.CARET:
		return runtime.Number{Value: floatPow(l, r)}, nil
	default:
		return nil, runtimeErr(op.Line, "Unknown numeric operator '%s'.", op.Lexeme)
	}
}

func comparisonBinary(op token.Token, l, r float64) runtime.Value {
	switch op.Kind {
	case token.GREATER:
		return runtime.Boolean{Value: l > r}
	case token.GREATER_EQUAL:
		return runtime.Boolean{Value: l >= r}
	case token.LESS:
		return runtime.Boolean{Value: l < r}
	case token.LESS_EQUAL:
		return runtime.Boolean{Value: l <= r}
	default:
		return runtime.Boolean{Value: false}
	}
}
