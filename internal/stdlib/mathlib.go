package stdlib

import (
	"math"
	"math/rand"

	"wfl/internal/ast"
	"wfl/internal/interpreter"
	"wfl/internal/value"
)

func asNumber(v value.Value) (float64, bool) {
	switch n := v.(type) {
	case value.Number:
		return n.Val, true
	case value.Integer:
		return float64(n.Val), true
	default:
		return 0, false
	}
}

func registerMath(interp *interpreter.Interpreter) {
	unary := func(name string, fn func(float64) float64) {
		interp.RegisterNative(name, func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
			if len(args) != 1 {
				return nil, arityError(call, 1, len(args))
			}
			n, ok := asNumber(args[0])
			if !ok {
				return nil, argTypeError(call.Name, args[0])
			}
			return value.Number{Val: fn(n)}, nil
		})
	}

	unary("abs", math.Abs)
	unary("round", math.Round)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)

	interp.RegisterNative("random", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 0 {
			return nil, arityError(call, 0, len(args))
		}
		return value.Number{Val: rand.Float64()}, nil
	})

	interp.RegisterNative("clamp", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 3 {
			return nil, arityError(call, 3, len(args))
		}
		n, ok1 := asNumber(args[0])
		lo, ok2 := asNumber(args[1])
		hi, ok3 := asNumber(args[2])
		if !ok1 || !ok2 || !ok3 {
			return nil, argTypeError(call.Name, args[0])
		}
		if n < lo {
			n = lo
		}
		if n > hi {
			n = hi
		}
		return value.Number{Val: n}, nil
	})
}
