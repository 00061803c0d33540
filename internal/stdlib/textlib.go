package stdlib

import (
	"strings"

	"wfl/internal/ast"
	"wfl/internal/interpreter"
	"wfl/internal/value"
)

func asText(v value.Value) (string, bool) {
	t, ok := v.(value.Text)
	if !ok {
		return "", false
	}
	return t.Val, true
}

func registerText(interp *interpreter.Interpreter) {
	interp.RegisterNative("length", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 1 {
			return nil, arityError(call, 1, len(args))
		}
		switch v := args[0].(type) {
		case value.Text:
			return value.Integer{Val: int64(len([]rune(v.Val)))}, nil
		case *value.List:
			return value.Integer{Val: int64(len(v.Elements))}, nil
		default:
			return nil, argTypeError(call.Name, args[0])
		}
	})

	interp.RegisterNative("touppercase", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 1 {
			return nil, arityError(call, 1, len(args))
		}
		s, ok := asText(args[0])
		if !ok {
			return nil, argTypeError(call.Name, args[0])
		}
		return value.Text{Val: strings.ToUpper(s)}, nil
	})

	interp.RegisterNative("tolowercase", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 1 {
			return nil, arityError(call, 1, len(args))
		}
		s, ok := asText(args[0])
		if !ok {
			return nil, argTypeError(call.Name, args[0])
		}
		return value.Text{Val: strings.ToLower(s)}, nil
	})

	interp.RegisterNative("substring", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 3 {
			return nil, arityError(call, 3, len(args))
		}
		s, ok := asText(args[0])
		if !ok {
			return nil, argTypeError(call.Name, args[0])
		}
		start, ok1 := asNumber(args[1])
		end, ok2 := asNumber(args[2])
		if !ok1 || !ok2 {
			return nil, argTypeError(call.Name, args[1])
		}
		runes := []rune(s)
		from, to := int(start), int(end)
		if from < 0 {
			from = 0
		}
		if to > len(runes) {
			to = len(runes)
		}
		if from > to {
			return value.Text{Val: ""}, nil
		}
		return value.Text{Val: string(runes[from:to])}, nil
	})
}
