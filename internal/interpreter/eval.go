package interpreter

import (
	"regexp"

	"wfl/internal/ast"
	"wfl/internal/value"
)

func (interp *Interpreter) eval(env *value.Environment, e ast.Expression) (value.Value, error) {
	switch n := e.(type) {
	case *ast.NumberLiteral:
		return value.Number{Val: n.Value}, nil
	case *ast.IntegerLiteral:
		return value.Integer{Val: n.Value}, nil
	case *ast.TextLiteral:
		return value.Text{Val: n.Value}, nil
	case *ast.BoolLiteral:
		return value.Bool{Val: n.Value}, nil
	case *ast.NullLiteral:
		return value.Null{}, nil

	case *ast.VariableRef:
		v, ok := env.Get(n.Name)
		if !ok {
			return nil, newRuntimeError(n.Loc(), "undefined name", "'%s' is not defined", n.Name)
		}
		return v, nil

	case *ast.BinaryExpr:
		return interp.evalBinary(env, n)

	case *ast.UnaryExpr:
		return interp.evalUnary(env, n)

	case *ast.ConcatExpr:
		var text string
		for _, op := range n.Operands {
			v, err := interp.eval(env, op)
			if err != nil {
				return nil, err
			}
			text += value.ToDisplayText(v)
		}
		if err := interp.charge(len(text), n.Loc()); err != nil {
			return nil, err
		}
		return value.Text{Val: text}, nil

	case *ast.ActionCallExpr:
		return interp.evalActionCall(env, n)

	case *ast.IndexExpr:
		return interp.evalIndex(env, n)

	case *ast.ListExpr:
		elems := make([]value.Value, len(n.Elements))
		for i, el := range n.Elements {
			v, err := interp.eval(env, el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		list := &value.List{Elements: elems}
		if err := interp.charge(approxSize(list), n.Loc()); err != nil {
			return nil, err
		}
		return list, nil

	case *ast.ObjectExpr:
		obj := value.NewObject()
		for i, key := range n.Keys {
			v, err := interp.eval(env, n.Values[i])
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		if err := interp.charge(approxSize(obj), n.Loc()); err != nil {
			return nil, err
		}
		return obj, nil

	case *ast.PatternMatchExpr:
		return interp.evalPatternMatch(env, n)

	case *ast.PatternFindExpr:
		return interp.evalPatternFind(env, n)

	case *ast.PatternReplaceExpr:
		return interp.evalPatternReplace(env, n)
	}
	return nil, newRuntimeError(e.Loc(), "internal error", "cannot evaluate %T", e)
}

func (interp *Interpreter) evalUnary(env *value.Environment, n *ast.UnaryExpr) (value.Value, error) {
	v, err := interp.eval(env, n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.OpNot:
		return value.Bool{Val: !value.Truthy(v)}, nil
	case ast.OpNegate:
		f, err := asFloat(v, n.Loc())
		if err != nil {
			return nil, err
		}
		return arithmeticResult(v, v, -f), nil
	}
	return nil, newRuntimeError(n.Loc(), "internal error", "unknown unary operator %q", n.Op)
}

func (interp *Interpreter) evalBinary(env *value.Environment, n *ast.BinaryExpr) (value.Value, error) {
	if n.Op == ast.OpAnd || n.Op == ast.OpOr {
		left, err := interp.eval(env, n.Left)
		if err != nil {
			return nil, err
		}
		leftTruthy := value.Truthy(left)
		if n.Op == ast.OpAnd && !leftTruthy {
			return value.Bool{Val: false}, nil
		}
		if n.Op == ast.OpOr && leftTruthy {
			return value.Bool{Val: true}, nil
		}
		right, err := interp.eval(env, n.Right)
		if err != nil {
			return nil, err
		}
		return value.Bool{Val: value.Truthy(right)}, nil
	}

	left, err := interp.eval(env, n.Left)
	if err != nil {
		return nil, err
	}
	right, err := interp.eval(env, n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ast.OpIs, ast.OpIsEqualTo:
		return value.Bool{Val: value.Equal(left, right)}, nil

	case ast.OpIsGreaterThan, ast.OpIsLessThan:
		lf, err := asFloat(left, n.Loc())
		if err != nil {
			return nil, err
		}
		rf, err := asFloat(right, n.Loc())
		if err != nil {
			return nil, err
		}
		if n.Op == ast.OpIsGreaterThan {
			return value.Bool{Val: lf > rf}, nil
		}
		return value.Bool{Val: lf < rf}, nil

	case ast.OpPlus, ast.OpMinus, ast.OpTimes, ast.OpDividedBy, ast.OpMod:
		lf, err := asFloat(left, n.Loc())
		if err != nil {
			return nil, err
		}
		rf, err := asFloat(right, n.Loc())
		if err != nil {
			return nil, err
		}
		var result float64
		switch n.Op {
		case ast.OpPlus:
			result = lf + rf
		case ast.OpMinus:
			result = lf - rf
		case ast.OpTimes:
			result = lf * rf
		case ast.OpDividedBy:
			if rf == 0 {
				return nil, newRuntimeError(n.Loc(), "division by zero", "division by zero")
			}
			result = lf / rf
		case ast.OpMod:
			if int64(rf) == 0 {
				return nil, newRuntimeError(n.Loc(), "division by zero", "division by zero")
			}
			result = float64(int64(lf) % int64(rf))
		}
		return arithmeticResult(left, right, result), nil
	}
	return nil, newRuntimeError(n.Loc(), "internal error", "unknown binary operator %q", n.Op)
}

func (interp *Interpreter) evalIndex(env *value.Environment, n *ast.IndexExpr) (value.Value, error) {
	coll, err := interp.eval(env, n.Collection)
	if err != nil {
		return nil, err
	}
	idx, err := interp.eval(env, n.Index)
	if err != nil {
		return nil, err
	}
	switch c := coll.(type) {
	case *value.List:
		i, err := asFloat(idx, n.Loc())
		if err != nil {
			return nil, err
		}
		pos := int(i)
		if pos < 0 || pos >= len(c.Elements) {
			return nil, newRuntimeError(n.Loc(), "index out of range", "list index %d out of range (length %d)", pos, len(c.Elements))
		}
		return c.Elements[pos], nil
	case *value.Object:
		key, ok := idx.(value.Text)
		if !ok {
			return nil, newRuntimeError(n.Loc(), "type mismatch", "expected a text key, got %s", idx.Kind())
		}
		v, ok := c.Get(key.Val)
		if !ok {
			return nil, newRuntimeError(n.Loc(), "undefined key", "no such key %q", key.Val)
		}
		return v, nil
	}
	return nil, newRuntimeError(n.Loc(), "type mismatch", "cannot index a %s", coll.Kind())
}

// evalActionCall resolves NAME to a user-defined Function in scope
// first, falling back to a registered NativeFunc (spec.md §4.7: user
// definitions shadow stdlib actions of the same name).
func (interp *Interpreter) evalActionCall(env *value.Environment, n *ast.ActionCallExpr) (value.Value, error) {
	args := make([]value.Value, len(n.Arguments))
	for i, a := range n.Arguments {
		v, err := interp.eval(env, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if v, ok := env.Get(n.Name); ok {
		if fn, ok := v.(*value.Function); ok {
			return interp.callFunction(fn, args, n)
		}
	}
	if native, ok := interp.natives[n.Name]; ok {
		return native(interp, args, n)
	}
	return nil, newRuntimeError(n.Loc(), "undefined name", "'%s' is not defined", n.Name)
}

// callFunction pushes a call frame, binds params into a fresh
// environment parented on the function's (upgraded) captured scope,
// and runs its body. The frame is popped when the body completes; when
// the body raises an error the frame stays open (see below).
func (interp *Interpreter) callFunction(fn *value.Function, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
	defSite, ok := fn.Env.Upgrade()
	if !ok {
		return nil, newRuntimeError(call.Loc(), "capture dropped", "%s", value.ErrCapturedEnvironmentDropped.Error())
	}

	callEnv := value.NewEnvironment(defSite)
	if err := bindParams(callEnv, fn.Params, args, call.Loc()); err != nil {
		return nil, err
	}

	frame := interp.calls.Push(fn.Name, call.Loc())

	sig, err := interp.execBlock(callEnv, fn.Body)
	if err != nil {
		// Left on the stack deliberately: an uncaught error keeps every
		// enclosing frame open so the debug report sees the full chain.
		// A `try` that catches it unwinds back to its own entry depth
		// itself (see execTry).
		callEnv.Each(func(name string, v value.Value) {
			frame.Record(name, value.ToDisplayText(v))
		})
		return nil, err
	}
	interp.calls.Pop()
	if sig.kind == signalReturn {
		return sig.value, nil
	}
	return value.Null{}, nil
}

func (interp *Interpreter) compilePattern(env *value.Environment, e ast.Expression) (*regexp.Regexp, error) {
	v, err := interp.eval(env, e)
	if err != nil {
		return nil, err
	}
	switch p := v.(type) {
	case *value.Pattern:
		if re, ok := p.Compiled.(*regexp.Regexp); ok {
			return re, nil
		}
		re, err := regexp.Compile(p.Source)
		if err != nil {
			return nil, newRuntimeError(e.Loc(), "pattern error", "invalid pattern %q: %v", p.Source, err)
		}
		p.Compiled = re
		return re, nil
	case value.Text:
		re, err := regexp.Compile(p.Val)
		if err != nil {
			return nil, newRuntimeError(e.Loc(), "pattern error", "invalid pattern %q: %v", p.Val, err)
		}
		return re, nil
	}
	return nil, newRuntimeError(e.Loc(), "type mismatch", "expected a pattern, got %s", v.Kind())
}

func (interp *Interpreter) evalPatternMatch(env *value.Environment, n *ast.PatternMatchExpr) (value.Value, error) {
	subject, err := interp.eval(env, n.Subject)
	if err != nil {
		return nil, err
	}
	text, ok := subject.(value.Text)
	if !ok {
		return nil, newRuntimeError(n.Loc(), "type mismatch", "expected text to match against, got %s", subject.Kind())
	}
	re, err := interp.compilePattern(env, n.Pattern)
	if err != nil {
		return nil, err
	}
	return value.Bool{Val: re.MatchString(text.Val)}, nil
}

func (interp *Interpreter) evalPatternFind(env *value.Environment, n *ast.PatternFindExpr) (value.Value, error) {
	subject, err := interp.eval(env, n.Subject)
	if err != nil {
		return nil, err
	}
	text, ok := subject.(value.Text)
	if !ok {
		return nil, newRuntimeError(n.Loc(), "type mismatch", "expected text to search, got %s", subject.Kind())
	}
	re, err := interp.compilePattern(env, n.Pattern)
	if err != nil {
		return nil, err
	}
	match := re.FindString(text.Val)
	if match == "" && !re.MatchString(text.Val) {
		return value.Null{}, nil
	}
	return value.Text{Val: match}, nil
}

func (interp *Interpreter) evalPatternReplace(env *value.Environment, n *ast.PatternReplaceExpr) (value.Value, error) {
	subject, err := interp.eval(env, n.Subject)
	if err != nil {
		return nil, err
	}
	text, ok := subject.(value.Text)
	if !ok {
		return nil, newRuntimeError(n.Loc(), "type mismatch", "expected text to replace in, got %s", subject.Kind())
	}
	re, err := interp.compilePattern(env, n.Pattern)
	if err != nil {
		return nil, err
	}
	replacement, err := interp.eval(env, n.Replacement)
	if err != nil {
		return nil, err
	}
	repl, ok := replacement.(value.Text)
	if !ok {
		return nil, newRuntimeError(n.Loc(), "type mismatch", "expected text replacement, got %s", replacement.Kind())
	}
	return value.Text{Val: re.ReplaceAllString(text.Val, repl.Val)}, nil
}
