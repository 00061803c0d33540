package stdlib

import (
	"strings"

	"wfl/internal/ast"
	"wfl/internal/interpreter"
	"wfl/internal/value"
)

func asList(v value.Value) (*value.List, bool) {
	l, ok := v.(*value.List)
	return l, ok
}

func registerList(interp *interpreter.Interpreter) {
	interp.RegisterNative("push", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 2 {
			return nil, arityError(call, 2, len(args))
		}
		list, ok := asList(args[0])
		if !ok {
			return nil, argTypeError(call.Name, args[0])
		}
		list.Elements = append(list.Elements, args[1])
		return list, nil
	})

	interp.RegisterNative("pop", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 1 {
			return nil, arityError(call, 1, len(args))
		}
		list, ok := asList(args[0])
		if !ok {
			return nil, argTypeError(call.Name, args[0])
		}
		if len(list.Elements) == 0 {
			return value.Null{}, nil
		}
		last := list.Elements[len(list.Elements)-1]
		list.Elements = list.Elements[:len(list.Elements)-1]
		return last, nil
	})

	interp.RegisterNative("contains", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 2 {
			return nil, arityError(call, 2, len(args))
		}
		if list, ok := asList(args[0]); ok {
			for _, el := range list.Elements {
				if value.Equal(el, args[1]) {
					return value.Bool{Val: true}, nil
				}
			}
			return value.Bool{Val: false}, nil
		}
		s, ok1 := asText(args[0])
		sub, ok2 := asText(args[1])
		if ok1 && ok2 {
			return value.Bool{Val: strings.Contains(s, sub)}, nil
		}
		return nil, argTypeError(call.Name, args[0])
	})

	interp.RegisterNative("indexof", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 2 {
			return nil, arityError(call, 2, len(args))
		}
		list, ok := asList(args[0])
		if !ok {
			return nil, argTypeError(call.Name, args[0])
		}
		for i, el := range list.Elements {
			if value.Equal(el, args[1]) {
				return value.Integer{Val: int64(i)}, nil
			}
		}
		return value.Integer{Val: -1}, nil
	})
}
