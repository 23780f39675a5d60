package interp

import (
	"github.com/cwbudde/glox/internal/ast"
	"github.com/cwbudde/glox/internal/interp/runtime"
)

// executeClass evaluates a class declaration (§4.5 "Class"): resolve
// an optional superclass, wrap it in a `super`-defining scope, build
// each method as a closure over that scope, and bind the class value
// in the declaring environment.
func (i *Interpreter) executeClass(s *ast.Class) error {
	var superclass *runtime.Class
	if s.Superclass != nil {
		superVal, err := i.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := superVal.(*runtime.Class)
		if !ok {
			return runtimeErr(s.Superclass.Name.Line, "Superclass must be a class.")
		}
		superclass = sc
	}

	i.environment.Define(s.Name.Lexeme, runtime.Nil{})

	classEnv := i.environment
	if s.Superclass != nil {
		classEnv = runtime.NewEnclosedEnvironment(i.environment)
		classEnv.Define("super", superclass)
	}

	methods := make(map[string]*runtime.Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &runtime.Function{
			Declaration:   m,
			Closure:       classEnv,
			IsInitializer: m.Name.Lexeme == "init",
		}
	}

	class := runtime.NewClass(s.Name.Lexeme, superclass, methods)
	return i.environment.Assign(s.Name.Lexeme, class)
}
