package interp

import (
	"github.com/cwbudde/glox/internal/ast"
	"github.com/cwbudde/glox/internal/interp/runtime"
	"github.com/cwbudde/glox/pkg/token"
)

func (i *Interpreter) evalCall(e *ast.Call) (runtime.Value, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]runtime.Value, len(e.Arguments))
	for idx, a := range e.Arguments {
		v, err := i.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	switch callable := callee.(type) {
	case *runtime.NativeFunction:
		if len(args) != callable.Arity() {
			return nil, runtimeErr(e.Paren.Line, "Expected %d arguments but got %d.", callable.Arity(), len(args))
		}
		v, err := callable.Fn(args)
		if err != nil {
			if re, ok := err.(*nativeError); ok {
				return nil, runtimeErr(e.Paren.Line, "%s", re.message)
			}
			return nil, runtimeErr(e.Paren.Line, "%s", err.Error())
		}
		return v, nil

	case *runtime.Function:
		if len(args) != callable.Arity() {
			return nil, runtimeErr(e.Paren.Line, "Expected %d arguments but got %d.", callable.Arity(), len(args))
		}
		return i.callFunction(callable, args, e.Paren)

	case *runtime.Class:
		if len(args) != callable.Arity() {
			return nil, runtimeErr(e.Paren.Line, "Expected %d arguments but got %d.", callable.Arity(), len(args))
		}
		return i.instantiate(callable, args, e.Paren)

	default:
		return nil, runtimeErr(e.Paren.Line, "Can only call functions and classes.")
	}
}

// callFunction creates a new environment nested inside fn's closure,
// binds parameters to args positionally, and executes the body
// (§4.5 "Calling a function"). An initializer always yields `this`
// regardless of how its body returns.
func (i *Interpreter) callFunction(fn *runtime.Function, args []runtime.Value, paren token.Token) (runtime.Value, error) {
	i.callDepth++
	defer func() { i.callDepth-- }()
	if i.callDepth > i.maxCallDepth {
		return nil, runtimeErr(paren.Line, "Stack overflow.")
	}

	if i.Tracer != nil {
		i.trace("[trace] -> call %s depth=%d (line %d)\n", fn.Declaration.Name.Lexeme, i.callDepth, paren.Line)
		defer i.trace("[trace] <- return %s depth=%d\n", fn.Declaration.Name.Lexeme, i.callDepth)
	}

	env := runtime.NewEnclosedEnvironment(fn.Closure)
	for idx, param := range fn.Declaration.Params {
		env.Define(param.Lexeme, args[idx])
	}

	err := i.executeBlock(fn.Declaration.Body, env)
	if err == nil {
		if fn.IsInitializer {
			return fn.Closure.GetAt(0, "this"), nil
		}
		return runtime.Nil{}, nil
	}

	if ret, ok := err.(*returnSignal); ok {
		if fn.IsInitializer {
			return fn.Closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}
	return nil, err
}

// instantiate allocates a fresh Instance and, when the class (or one
// of its ancestors) declares `init`, binds and calls it with args
// before returning the instance (§4.5 "Calling a class").
func (i *Interpreter) instantiate(class *runtime.Class, args []runtime.Value, paren token.Token) (runtime.Value, error) {
	instance := runtime.NewInstance(class)
	if init, ok := class.FindMethod("init"); ok {
		if _, err := i.callFunction(init.Bind(instance), args, paren); err != nil {
			return nil, err
		}
	}
	return instance, nil
}
