// Package runtime holds the interpreter's runtime data: the tagged
// Value variants (nil, boolean, number, string, function, class,
// instance, native function) and the lexically nested Environment
// that binds names to them.
//
// This package is grounded on go-dws's internal/interp value.go and
// environment.go: a Value interface implemented by small wrapper
// structs, one per case, each reporting its own Type() and String().
// Behavior that needs to invoke interpreted Lox code (calling a
// Function, instantiating a Class) is deliberately kept out of this
// package and lives in internal/interp instead, so runtime has no
// dependency on the evaluator and cannot form an import cycle with it.
package runtime

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cwbudde/glox/internal/ast"
)

// Value is the interface every runtime value implements.
type Value interface {
	// Type names the case for error messages ("nil", "boolean", ...).
	Type() string
	// String renders the value the way `print` and string
	// concatenation do.
	String() string
}

// Nil is the singleton nil value; compare with Nil{} or use IsNil.
type Nil struct{}

func (Nil) Type() string   { return "nil" }
func (Nil) String() string { return "nil" }

// IsNil reports whether v is the Lox nil value.
func IsNil(v Value) bool {
	_, ok := v.(Nil)
	return ok
}

// Boolean wraps a Lox boolean.
type Boolean struct{ Value bool }

func (b Boolean) Type() string { return "boolean" }
func (b Boolean) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// Number wraps an IEEE-754 double.
type Number struct{ Value float64 }

func (n Number) Type() string { return "number" }

// String formats n as its shortest decimal, dropping a trailing ".0"
// for integral values (§4.5 "Stringification").
func (n Number) String() string {
	if !math.IsNaN(n.Value) && !math.IsInf(n.Value, 0) && n.Value == math.Trunc(n.Value) {
		return strconv.FormatFloat(n.Value, 'f', -1, 64)
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// String wraps an immutable Lox string.
type String struct{ Value string }

func (s String) Type() string   { return "string" }
func (s String) String() string { return s.Value }

// Function is a closure: a function or method declaration bundled
// with the environment active where it was defined.
type Function struct {
	Declaration   *ast.Function
	Closure       *Environment
	IsInitializer bool
}

func (f *Function) Type() string { return "function" }
func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.Declaration.Name.Lexeme)
}

// Arity is the function's declared parameter count.
func (f *Function) Arity() int {
	return len(f.Declaration.Params)
}

// Bind returns a new Function whose closure extends f's closure with
// `this` bound to instance. It never mutates f: the original method
// value stays reusable for every instance.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnclosedEnvironment(f.Closure)
	env.Define("this", instance)
	return &Function{Declaration: f.Declaration, Closure: env, IsInitializer: f.IsInitializer}
}

// Class is a runtime class value: its name, optional superclass, and
// method table. The method table is fixed once NewClass returns.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

// NewClass builds a Class with an immutable method map.
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

func (c *Class) Type() string   { return "class" }
func (c *Class) String() string { return fmt.Sprintf("<class %s>", c.Name) }

// FindMethod walks c then its superclass chain for the first class
// whose method table contains name.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Arity is the arity of `init` (0 when the class declares none).
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Instance is a runtime object: a class reference plus a mutable
// field map. Field reads shadow methods (§3 invariant 3): the
// interpreter's evalGet checks Fields before consulting the class.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

// NewInstance allocates an Instance with an empty field map.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Value)}
}

func (i *Instance) Type() string   { return "instance" }
func (i *Instance) String() string { return fmt.Sprintf("<%s instance>", i.Class.Name) }

// NativeFunction is a host-provided callable: fixed arity, no Lox
// source behind it, implemented by a plain Go closure.
type NativeFunction struct {
	NameStr  string
	ArityVal int
	Fn       func(args []Value) (Value, error)
}

func (n *NativeFunction) Type() string   { return "native function" }
func (n *NativeFunction) String() string { return "<native fn>" }
func (n *NativeFunction) Arity() int     { return n.ArityVal }
func (n *NativeFunction) Name() string   { return n.NameStr }

// Truthy implements Lox truthiness: nil and false are falsy,
// everything else — including 0, 0.0, and "" — is truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case Nil:
		return false
	case Boolean:
		return val.Value
	default:
		return true
	}
}

// Equal implements Lox `==`: nil equals only nil; numbers compare by
// native float64 equality (so NaN != NaN); booleans and strings by
// value; functions/classes/instances/natives by identity.
func Equal(a, b Value) bool {
	if IsNil(a) || IsNil(b) {
		return IsNil(a) && IsNil(b)
	}
	switch x := a.(type) {
	case Boolean:
		y, ok := b.(Boolean)
		return ok && x.Value == y.Value
	case Number:
		y, ok := b.(Number)
		return ok && x.Value == y.Value
	case String:
		y, ok := b.(String)
		return ok && x.Value == y.Value
	case *Function:
		y, ok := b.(*Function)
		return ok && x == y
	case *Class:
		y, ok := b.(*Class)
		return ok && x == y
	case *Instance:
		y, ok := b.(*Instance)
		return ok && x == y
	case *NativeFunction:
		y, ok := b.(*NativeFunction)
		return ok && x == y
	default:
		return false
	}
}
