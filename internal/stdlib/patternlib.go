package stdlib

import (
	"regexp"
	"strings"

	"wfl/internal/ast"
	"wfl/internal/interpreter"
	"wfl/internal/value"
)

func registerPattern(interp *interpreter.Interpreter) {
	interp.RegisterNative("compile", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 1 {
			return nil, arityError(call, 1, len(args))
		}
		src, ok := asText(args[0])
		if !ok {
			return nil, argTypeError(call.Name, args[0])
		}
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, err
		}
		return &value.Pattern{Source: src, Compiled: re}, nil
	})

	asRegexp := func(v value.Value) (*regexp.Regexp, error) {
		switch p := v.(type) {
		case *value.Pattern:
			if re, ok := p.Compiled.(*regexp.Regexp); ok {
				return re, nil
			}
			re, err := regexp.Compile(p.Source)
			if err != nil {
				return nil, err
			}
			p.Compiled = re
			return re, nil
		case value.Text:
			return regexp.Compile(p.Val)
		default:
			return nil, argTypeError("pattern argument", v)
		}
	}

	interp.RegisterNative("match", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 2 {
			return nil, arityError(call, 2, len(args))
		}
		s, ok := asText(args[0])
		if !ok {
			return nil, argTypeError(call.Name, args[0])
		}
		re, err := asRegexp(args[1])
		if err != nil {
			return nil, err
		}
		return value.Bool{Val: re.MatchString(s)}, nil
	})

	interp.RegisterNative("find", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 2 {
			return nil, arityError(call, 2, len(args))
		}
		s, ok := asText(args[0])
		if !ok {
			return nil, argTypeError(call.Name, args[0])
		}
		re, err := asRegexp(args[1])
		if err != nil {
			return nil, err
		}
		if !re.MatchString(s) {
			return value.Null{}, nil
		}
		return value.Text{Val: re.FindString(s)}, nil
	})

	interp.RegisterNative("replace", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 3 {
			return nil, arityError(call, 3, len(args))
		}
		s, ok := asText(args[0])
		if !ok {
			return nil, argTypeError(call.Name, args[0])
		}
		re, err := asRegexp(args[1])
		if err != nil {
			return nil, err
		}
		repl, ok := asText(args[2])
		if !ok {
			return nil, argTypeError(call.Name, args[2])
		}
		return value.Text{Val: re.ReplaceAllString(s, repl)}, nil
	})

	interp.RegisterNative("split", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 2 {
			return nil, arityError(call, 2, len(args))
		}
		s, ok := asText(args[0])
		if !ok {
			return nil, argTypeError(call.Name, args[0])
		}
		sep, ok := asText(args[1])
		if !ok {
			return nil, argTypeError(call.Name, args[1])
		}
		parts := strings.Split(s, sep)
		elems := make([]value.Value, len(parts))
		for i, p := range parts {
			elems[i] = value.Text{Val: p}
		}
		return &value.List{Elements: elems}, nil
	})
}
