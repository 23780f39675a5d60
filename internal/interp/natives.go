package interp

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/cwbudde/glox/internal/interp/runtime"
)

// nativeError carries a native function's type-mismatch message up
// through the *runtime.NativeFunction.Fn signature (plain error)
// without natives needing to know about diagnostics.RuntimeError or a
// call-site line number.
type nativeError struct{ message string }

func (e *nativeError) Error() string { return e.message }

func typeError(format string, args ...any) error {
	return &nativeError{message: fmt.Sprintf(format, args...)}
}

func asNumber(v runtime.Value, who string) (float64, error) {
	n, ok := v.(runtime.Number)
	if !ok {
		return 0, typeError("%s expects a number argument.", who)
	}
	return n.Value, nil
}

func native(name string, arity int, fn func(args []runtime.Value) (runtime.Value, error)) *runtime.NativeFunction {
	return &runtime.NativeFunction{NameStr: name, ArityVal: arity, Fn: fn}
}

func math1(name string, f func(float64) float64) *runtime.NativeFunction {
	return native(name, 1, func(args []runtime.Value) (runtime.Value, error) {
		n, err := asNumber(args[0], name)
		if err != nil {
			return nil, err
		}
		return runtime.Number{Value: f(n)}, nil
	})
}

// installNatives installs the glossary's optional native-function set
// into globals, reading `getline` input from os.Stdin. allowed, when
// non-nil, restricts which natives are defined (wired to the
// `natives` allow-list in glox.yaml; see internal/config); a nil
// allowed installs every native.
//
// `clock` follows the PyLox reference implementation's Clock native
// (original_source/src/lox_native.py): wall-clock seconds as a float,
// with no truncation to whole seconds.
func installNatives(globals *runtime.Environment, allowed func(name string) bool) {
	installNativesFrom(globals, os.Stdin, allowed)
}

// installNativesFrom is the testable entry point: it takes an
// explicit reader for `getline` instead of assuming os.Stdin, so
// interpreter tests can feed scripted input.
func installNativesFrom(globals *runtime.Environment, stdin io.Reader, allowed func(name string) bool) {
	if allowed == nil {
		allowed = func(string) bool { return true }
	}
	reader := bufio.NewReader(stdin)

	define := func(n *runtime.NativeFunction) {
		if allowed(n.NameStr) {
			globals.Define(n.NameStr, n)
		}
	}

	define(native("clock", 0, func(args []runtime.Value) (runtime.Value, error) {
		return runtime.Number{Value: float64(time.Now().UnixNano()) / 1e9}, nil
	}))

	define(native("getline", 0, func(args []runtime.Value) (runtime.Value, error) {
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return runtime.Nil{}, nil
		}
		line = trimNewline(line)
		return runtime.String{Value: line}, nil
	}))

	define(native("type", 1, func(args []runtime.Value) (runtime.Value, error) {
		return runtime.String{Value: args[0].Type()}, nil
	}))

	define(native("tostring", 1, func(args []runtime.Value) (runtime.Value, error) {
		return runtime.String{Value: stringify(args[0])}, nil
	}))

	define(native("tonumber", 1, func(args []runtime.Value) (runtime.Value, error) {
		s, ok := args[0].(runtime.String)
		if !ok {
			return nil, typeError("tonumber expects a string argument.")
		}
		n, err := strconv.ParseFloat(s.Value, 64)
		if err != nil {
			return runtime.Nil{}, nil
		}
		return runtime.Number{Value: n}, nil
	}))

	define(math1("exp", math.Exp))
	define(math1("log", math.Log))
	define(math1("rad", func(deg float64) float64 { return deg * math.Pi / 180 }))
	define(math1("sin", math.Sin))
	define(math1("cos", math.Cos))
	define(math1("tan", math.Tan))
	define(math1("asin", math.Asin))
	define(math1("acos", math.Acos))
	define(math1("atan", math.Atan))
	define(math1("ceil", math.Ceil))
	define(math1("floor", math.Floor))
	define(math1("round", math.Round))
	define(math1("abs", math.Abs))
	define(math1("sign", func(f float64) float64 {
		switch {
		case f > 0:
			return 1
		case f < 0:
			return -1
		default:
			return 0
		}
	}))
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
