package interpreter

import (
	"os"
	"strings"

	"wfl/internal/ast"
	"wfl/internal/source"
	"wfl/internal/value"
)

// execBlock runs stmts in order, stopping at the first error or
// non-none signal.
func (interp *Interpreter) execBlock(env *value.Environment, stmts []ast.Statement) (signal, error) {
	for _, s := range stmts {
		if s == nil {
			continue
		}
		sig, err := interp.execStmt(env, s)
		if err != nil || sig.kind != signalNone {
			return sig, err
		}
	}
	return noSignal, nil
}

func (interp *Interpreter) execStmt(env *value.Environment, s ast.Statement) (signal, error) {
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		_, err := interp.eval(env, n.Expression)
		return noSignal, err

	case *ast.StoreStmt:
		v, err := interp.eval(env, n.Value)
		if err != nil {
			return noSignal, err
		}
		if env.DefinedLocally(n.Name) {
			return noSignal, newRuntimeError(n.Loc(), "redeclaration", "'%s' is already defined in this scope", n.Name)
		}
		env.Define(n.Name, v)
		return noSignal, nil

	case *ast.AssignStmt:
		v, err := interp.eval(env, n.Value)
		if err != nil {
			return noSignal, err
		}
		if !env.Assign(n.Name, v) {
			return noSignal, newRuntimeError(n.Loc(), "undefined name", "'%s' is not defined", n.Name)
		}
		return noSignal, nil

	case *ast.CheckStmt:
		return interp.execCheck(env, n)

	case *ast.CountLoopStmt:
		return interp.execCountLoop(env, n)

	case *ast.ForEachStmt:
		return interp.execForEach(env, n)

	case *ast.WhileStmt:
		return interp.execWhile(env, n)

	case *ast.RepeatUntilStmt:
		return interp.execRepeatUntil(env, n)

	case *ast.RepeatForeverStmt:
		return interp.execRepeatForever(env, n)

	case *ast.BreakStmt:
		return signal{kind: signalBreak}, nil

	case *ast.SkipStmt:
		return signal{kind: signalSkip}, nil

	case *ast.ActionDefStmt:
		fn := &value.Function{Name: n.Name, Params: n.Params, Body: n.Body, Env: value.CaptureWeak(env), DefSite: n.Loc()}
		env.Define(n.Name, fn)
		return noSignal, nil

	case *ast.ReturnStmt:
		var v value.Value = value.Null{}
		if n.Value != nil {
			var err error
			v, err = interp.eval(env, n.Value)
			if err != nil {
				return noSignal, err
			}
		}
		return signal{kind: signalReturn, value: v}, nil

	case *ast.TryStmt:
		return interp.execTry(env, n)

	case *ast.DisplayStmt:
		return interp.execDisplay(env, n)

	case *ast.OpenFileStmt:
		return interp.execOpenFile(env, n)

	case *ast.CloseFileStmt:
		return interp.execCloseFile(env, n)

	case *ast.WriteFileStmt:
		return interp.execWriteFile(env, n, false)

	case *ast.AppendFileStmt:
		return interp.execWriteFile(env, n, true)

	case *ast.ReadFileStmt:
		return interp.execReadFile(env, n)

	case *ast.WaitForStmt:
		for _, op := range n.Operations {
			sig, err := interp.execStmt(env, op)
			if err != nil || sig.kind != signalNone {
				return sig, err
			}
		}
		return noSignal, nil

	case *ast.TriggerStmt:
		return interp.execTrigger(env, n)

	case *ast.OnStmt:
		interp.events[n.Event] = append(interp.events[n.Event], eventHandler{paramName: n.ParamName, body: n.Body, env: env})
		return noSignal, nil

	case *ast.CreateStmt:
		return interp.execCreate(env, n)
	}
	return noSignal, nil
}

func (interp *Interpreter) execCheck(env *value.Environment, n *ast.CheckStmt) (signal, error) {
	cond, err := interp.eval(env, n.Condition)
	if err != nil {
		return noSignal, err
	}
	if value.Truthy(cond) {
		return interp.execBlock(value.NewEnvironment(env), n.Then)
	}
	if n.Else != nil {
		return interp.execBlock(value.NewEnvironment(env), n.Else)
	}
	return noSignal, nil
}

func (interp *Interpreter) execCountLoop(env *value.Environment, n *ast.CountLoopStmt) (signal, error) {
	from, err := interp.eval(env, n.From)
	if err != nil {
		return noSignal, err
	}
	to, err := interp.eval(env, n.To)
	if err != nil {
		return noSignal, err
	}
	fromF, err := asFloat(from, n.Loc())
	if err != nil {
		return noSignal, err
	}
	toF, err := asFloat(to, n.Loc())
	if err != nil {
		return noSignal, err
	}
	step := 1.0
	if n.Step != nil {
		stepV, err := interp.eval(env, n.Step)
		if err != nil {
			return noSignal, err
		}
		step, err = asFloat(stepV, n.Loc())
		if err != nil {
			return noSignal, err
		}
	} else if toF < fromF {
		step = -1
	}
	if step == 0 {
		return noSignal, newRuntimeError(n.Loc(), "invalid step", "count loop step cannot be zero")
	}

	for i := fromF; (step > 0 && i <= toF) || (step < 0 && i >= toF); i += step {
		if err := interp.checkDeadline(n.Loc()); err != nil {
			return noSignal, err
		}
		loopEnv := value.NewEnvironment(env)
		loopEnv.Define("count", value.Integer{Val: int64(i)})
		sig, err := interp.execBlock(loopEnv, n.Body)
		if err != nil {
			return noSignal, err
		}
		if sig.kind == signalBreak {
			break
		}
		if sig.kind == signalReturn {
			return sig, nil
		}
	}
	return noSignal, nil
}

func (interp *Interpreter) execForEach(env *value.Environment, n *ast.ForEachStmt) (signal, error) {
	listVal, err := interp.eval(env, n.List)
	if err != nil {
		return noSignal, err
	}
	list, ok := listVal.(*value.List)
	if !ok {
		return noSignal, newRuntimeError(n.Loc(), "type mismatch", "expected a list, got %s", listVal.Kind())
	}
	for _, el := range list.Elements {
		if err := interp.checkDeadline(n.Loc()); err != nil {
			return noSignal, err
		}
		loopEnv := value.NewEnvironment(env)
		loopEnv.Define(n.VarName, el)
		sig, err := interp.execBlock(loopEnv, n.Body)
		if err != nil {
			return noSignal, err
		}
		if sig.kind == signalBreak {
			break
		}
		if sig.kind == signalReturn {
			return sig, nil
		}
	}
	return noSignal, nil
}

func (interp *Interpreter) execWhile(env *value.Environment, n *ast.WhileStmt) (signal, error) {
	for {
		if err := interp.checkDeadline(n.Loc()); err != nil {
			return noSignal, err
		}
		cond, err := interp.eval(env, n.Condition)
		if err != nil {
			return noSignal, err
		}
		if !value.Truthy(cond) {
			break
		}
		sig, err := interp.execBlock(value.NewEnvironment(env), n.Body)
		if err != nil {
			return noSignal, err
		}
		if sig.kind == signalBreak {
			break
		}
		if sig.kind == signalReturn {
			return sig, nil
		}
	}
	return noSignal, nil
}

func (interp *Interpreter) execRepeatUntil(env *value.Environment, n *ast.RepeatUntilStmt) (signal, error) {
	first := true
	for {
		if !n.PostTest || !first {
			if err := interp.checkDeadline(n.Loc()); err != nil {
				return noSignal, err
			}
			cond, err := interp.eval(env, n.Condition)
			if err != nil {
				return noSignal, err
			}
			if value.Truthy(cond) {
				break
			}
		}
		first = false
		sig, err := interp.execBlock(value.NewEnvironment(env), n.Body)
		if err != nil {
			return noSignal, err
		}
		if sig.kind == signalBreak {
			break
		}
		if sig.kind == signalReturn {
			return sig, nil
		}
		if n.PostTest {
			cond, err := interp.eval(env, n.Condition)
			if err != nil {
				return noSignal, err
			}
			if value.Truthy(cond) {
				break
			}
		}
	}
	return noSignal, nil
}

func (interp *Interpreter) execRepeatForever(env *value.Environment, n *ast.RepeatForeverStmt) (signal, error) {
	for {
		if err := interp.checkDeadline(n.Loc()); err != nil {
			return noSignal, err
		}
		sig, err := interp.execBlock(value.NewEnvironment(env), n.Body)
		if err != nil {
			return noSignal, err
		}
		if sig.kind == signalBreak {
			break
		}
		if sig.kind == signalReturn {
			return sig, nil
		}
	}
	return noSignal, nil
}

func (interp *Interpreter) execTry(env *value.Environment, n *ast.TryStmt) (signal, error) {
	depthAtEntry := interp.calls.Depth()
	sig, err := interp.execBlock(value.NewEnvironment(env), n.Body)
	if err != nil {
		for interp.calls.Depth() > depthAtEntry {
			interp.calls.Pop()
		}
		handlerEnv := value.NewEnvironment(env)
		if n.ErrName != "" {
			handlerEnv.Define(n.ErrName, errorRecord(err))
		}
		return interp.execBlock(handlerEnv, n.Handler)
	}
	if sig.kind == signalNone && n.Else != nil {
		return interp.execBlock(value.NewEnvironment(env), n.Else)
	}
	return sig, nil
}

func (interp *Interpreter) execDisplay(env *value.Environment, n *ast.DisplayStmt) (signal, error) {
	var b strings.Builder
	for _, op := range n.Operands {
		v, err := interp.eval(env, op)
		if err != nil {
			return noSignal, err
		}
		b.WriteString(value.ToDisplayText(v))
	}
	b.WriteByte('\n')
	if _, err := interp.out.Write([]byte(b.String())); err != nil {
		return noSignal, newRuntimeError(n.Loc(), "io error", "writing display output: %v", err)
	}
	return noSignal, nil
}

func (interp *Interpreter) execOpenFile(env *value.Environment, n *ast.OpenFileStmt) (signal, error) {
	pathVal, err := interp.eval(env, n.Path)
	if err != nil {
		return noSignal, err
	}
	path, ok := pathVal.(value.Text)
	if !ok {
		return noSignal, newRuntimeError(n.Loc(), "type mismatch", "expected a text path, got %s", pathVal.Kind())
	}
	f, err := os.OpenFile(path.Val, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return noSignal, newRuntimeError(n.Loc(), "io error", "opening %q: %v", path.Val, err)
	}
	env.Define(n.HandleName, value.NewFileHandle(path.Val, "rw", f))
	return noSignal, nil
}

func (interp *Interpreter) fileHandle(env *value.Environment, name string, loc *source.Location) (*value.FileHandle, error) {
	v, ok := env.Get(name)
	if !ok {
		return nil, newRuntimeError(loc, "undefined name", "'%s' is not defined", name)
	}
	fh, ok := v.(*value.FileHandle)
	if !ok {
		return nil, newRuntimeError(loc, "type mismatch", "'%s' is not a file handle", name)
	}
	if fh.Closed {
		return nil, newRuntimeError(loc, "io error", "file handle '%s' is closed", name)
	}
	return fh, nil
}

func (interp *Interpreter) execCloseFile(env *value.Environment, n *ast.CloseFileStmt) (signal, error) {
	fh, err := interp.fileHandle(env, n.HandleName, n.Loc())
	if err != nil {
		return noSignal, err
	}
	if f, ok := fh.Handle.(*os.File); ok {
		_ = f.Close()
	}
	fh.Closed = true
	return noSignal, nil
}

func (interp *Interpreter) execWriteFile(env *value.Environment, n ast.Statement, appendMode bool) (signal, error) {
	var contentExpr ast.Expression
	var handleName string
	var loc = n.Loc()
	switch w := n.(type) {
	case *ast.WriteFileStmt:
		contentExpr, handleName = w.Content, w.HandleName
	case *ast.AppendFileStmt:
		contentExpr, handleName = w.Content, w.HandleName
	}
	fh, err := interp.fileHandle(env, handleName, loc)
	if err != nil {
		return noSignal, err
	}
	contentVal, err := interp.eval(env, contentExpr)
	if err != nil {
		return noSignal, err
	}
	text := value.ToDisplayText(contentVal)
	f, ok := fh.Handle.(*os.File)
	if !ok {
		return noSignal, newRuntimeError(loc, "io error", "'%s' has no underlying file handle", handleName)
	}
	if !appendMode {
		if err := f.Truncate(0); err != nil {
			return noSignal, newRuntimeError(loc, "io error", "writing %q: %v", fh.Path, err)
		}
		if _, err := f.Seek(0, 0); err != nil {
			return noSignal, newRuntimeError(loc, "io error", "writing %q: %v", fh.Path, err)
		}
	} else {
		if _, err := f.Seek(0, 2); err != nil {
			return noSignal, newRuntimeError(loc, "io error", "appending %q: %v", fh.Path, err)
		}
	}
	if _, err := f.WriteString(text); err != nil {
		return noSignal, newRuntimeError(loc, "io error", "writing %q: %v", fh.Path, err)
	}
	return noSignal, nil
}

func (interp *Interpreter) execReadFile(env *value.Environment, n *ast.ReadFileStmt) (signal, error) {
	fh, err := interp.fileHandle(env, n.HandleName, n.Loc())
	if err != nil {
		return noSignal, err
	}
	f, ok := fh.Handle.(*os.File)
	if !ok {
		return noSignal, newRuntimeError(n.Loc(), "io error", "'%s' has no underlying file handle", n.HandleName)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return noSignal, newRuntimeError(n.Loc(), "io error", "reading %q: %v", fh.Path, err)
	}
	data, err := os.ReadFile(fh.Path)
	if err != nil {
		return noSignal, newRuntimeError(n.Loc(), "io error", "reading %q: %v", fh.Path, err)
	}
	if err := interp.charge(len(data), n.Loc()); err != nil {
		return noSignal, err
	}
	env.Define(n.ResultName, value.Text{Val: string(data)})
	return noSignal, nil
}

func (interp *Interpreter) execTrigger(env *value.Environment, n *ast.TriggerStmt) (signal, error) {
	args := make([]value.Value, len(n.Arguments))
	for i, a := range n.Arguments {
		v, err := interp.eval(env, a)
		if err != nil {
			return noSignal, err
		}
		args[i] = v
	}
	for _, h := range interp.events[n.Event] {
		callEnv := value.NewEnvironment(h.env)
		if h.paramName != "" {
			var v value.Value = value.Null{}
			if len(args) > 0 {
				v = args[0]
			}
			callEnv.Define(h.paramName, v)
		}
		sig, err := interp.execBlock(callEnv, h.body)
		if err != nil {
			return noSignal, err
		}
		if sig.kind == signalReturn {
			return noSignal, nil
		}
	}
	return noSignal, nil
}

func (interp *Interpreter) execCreate(env *value.Environment, n *ast.CreateStmt) (signal, error) {
	ctor, ok := interp.constructors[n.Kind]
	if !ok {
		return noSignal, newRuntimeError(n.Loc(), "unknown constructor", "no constructor registered for '%s'", n.Kind)
	}
	args := make([]value.Value, len(n.Arguments))
	for i, a := range n.Arguments {
		v, err := interp.eval(env, a)
		if err != nil {
			return noSignal, err
		}
		args[i] = v
	}
	result, err := ctor(interp, args, n)
	if err != nil {
		return noSignal, err
	}
	env.Define(n.Name, result)
	return noSignal, nil
}
