// Package stdlib implements the native-function table spec.md §4.8
// installs into every interpreter before its first statement runs.
package stdlib

import (
	"fmt"

	"wfl/internal/ast"
	"wfl/internal/interpreter"
	"wfl/internal/value"
	"wfl/internal/wfllog"
)

func arityError(call *ast.ActionCallExpr, want int, got int) error {
	return fmt.Errorf("%s expects %d argument(s), got %d", call.Name, want, got)
}

func argTypeError(name string, v value.Value) error {
	return fmt.Errorf("%s got an argument of the wrong type: %s", name, v.Kind())
}

func registerCore(interp *interpreter.Interpreter) {
	logger := wfllog.For(wfllog.StageStdlib)

	interp.RegisterNative("print", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		var text string
		for _, a := range args {
			text += value.ToDisplayText(a)
		}
		logger.Tracef("print: %s", text)
		return value.Null{}, nil
	})

	interp.RegisterNative("typeof", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 1 {
			return nil, arityError(call, 1, len(args))
		}
		return value.Text{Val: args[0].Kind().String()}, nil
	})

	interp.RegisterNative("isnothing", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 1 {
			return nil, arityError(call, 1, len(args))
		}
		_, isNull := args[0].(value.Null)
		return value.Bool{Val: isNull}, nil
	})
}
