// Package interpreter tree-walks a parsed, analysed program
// (spec.md §4.6, §4.7), evaluating against the runtime value and
// environment model in internal/value. Its own errors are never
// panics: every fault becomes a *RuntimeError a `try` block can catch.
package interpreter

import (
	"io"
	"os"
	"time"

	"github.com/juju/loggo"

	"wfl/internal/ast"
	"wfl/internal/callstack"
	"wfl/internal/report"
	"wfl/internal/source"
	"wfl/internal/value"
	"wfl/internal/wflconfig"
	"wfl/internal/wfllog"
)

// NativeFunc is a standard-library action's implementation, looked up
// by name when an ActionCallExpr doesn't resolve to a user-defined
// Function in scope.
type NativeFunc func(interp *Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error)

// ConstructorFunc handles one `create KIND called NAME with ARGS`
// statement kind.
type ConstructorFunc func(interp *Interpreter, args []value.Value, create *ast.CreateStmt) (value.Value, error)

// eventHandler is one `on EVENT as PARAM: … end on` registration.
type eventHandler struct {
	paramName string
	body      []ast.Statement
	env       *value.Environment
}

// Interpreter holds everything one script execution needs: the
// global environment, the open call stack, the event table `trigger`/
// `on` share, and the two extension points (NativeFunc, constructors)
// internal/stdlib populates.
type Interpreter struct {
	filePath string
	reporter *report.Reporter
	global   *value.Environment
	calls    *callstack.CallStack
	events   map[string][]eventHandler

	natives      map[string]NativeFunc
	constructors map[string]ConstructorFunc

	out    io.Writer
	cfg    wflconfig.Config
	logger loggo.Logger

	deadline time.Time
	stepPos  int

	memUsed  int64
	memLimit int64
}

// New prepares an interpreter for one run of the program at filePath.
func New(filePath string, rep *report.Reporter, cfg wflconfig.Config) *Interpreter {
	return &Interpreter{
		filePath:     filePath,
		reporter:     rep,
		global:       value.NewEnvironment(nil),
		calls:        callstack.New(),
		events:       map[string][]eventHandler{},
		natives:      map[string]NativeFunc{},
		constructors: map[string]ConstructorFunc{},
		out:          os.Stdout,
		cfg:          cfg,
		logger:       wfllog.For(wfllog.StageInterpreter),
		memLimit:     memLimitBytes(cfg.MaxMemoryMB),
	}
}

// RegisterNative installs a standard-library action under name,
// callable from any `NAME with ARGS` call expression that isn't
// shadowed by a user-defined action in scope.
func (interp *Interpreter) RegisterNative(name string, fn NativeFunc) {
	interp.natives[name] = fn
}

// RegisterConstructor installs a `create KIND called NAME with ARGS`
// handler.
func (interp *Interpreter) RegisterConstructor(kind string, fn ConstructorFunc) {
	interp.constructors[kind] = fn
}

// SetOutput redirects `display`'s writer (tests substitute a buffer).
func (interp *Interpreter) SetOutput(w io.Writer) {
	interp.out = w
}

// Global exposes the top-level environment, mainly for tests and for
// cmd/wfl's --step inspector.
func (interp *Interpreter) Global() *value.Environment {
	return interp.global
}

// CallStack exposes the live call stack for debug reporting.
func (interp *Interpreter) CallStack() *callstack.CallStack {
	return interp.calls
}

// Run executes prog's top-level statements in the global environment.
// A timeout_seconds config value of 0 disables the deadline.
func (interp *Interpreter) Run(prog *ast.Program) error {
	if interp.cfg.TimeoutSeconds > 0 {
		interp.deadline = time.Now().Add(time.Duration(interp.cfg.TimeoutSeconds) * time.Second)
	}
	sig, err := interp.execBlock(interp.global, prog.Statements)
	if err == nil && sig.kind == signalReturn {
		err = newRuntimeError(nil, "invalid return", "'return'/'give back' used outside of an action")
	}
	if err != nil {
		if reportErr := interp.writeReportFor(err); reportErr != nil {
			interp.logger.Warningf("writing debug report: %v", reportErr)
		}
	}
	return err
}

// Step runs the next not-yet-executed top-level statement of prog in
// the global environment, advancing an internal cursor across calls.
// cmd/wfl's --step flag drives this one statement at a time instead of
// calling Run, so it can print the global environment between steps.
// done is true once every statement has run; a `give back` reaching
// the top level is a runtime error, same as Run, and also ends the
// run after writing the debug report.
func (interp *Interpreter) Step(prog *ast.Program) (done bool, err error) {
	if interp.cfg.TimeoutSeconds > 0 && interp.deadline.IsZero() {
		interp.deadline = time.Now().Add(time.Duration(interp.cfg.TimeoutSeconds) * time.Second)
	}
	if interp.stepPos >= len(prog.Statements) {
		return true, nil
	}
	stmt := prog.Statements[interp.stepPos]
	interp.stepPos++

	sig, err := interp.execStmt(interp.global, stmt)
	if err == nil && sig.kind == signalReturn {
		err = newRuntimeError(nil, "invalid return", "'return'/'give back' used outside of an action")
	}
	if err != nil {
		if reportErr := interp.writeReportFor(err); reportErr != nil {
			interp.logger.Warningf("writing debug report: %v", reportErr)
		}
		return true, err
	}
	return interp.stepPos >= len(prog.Statements), nil
}

// writeReportFor picks the simplified out-of-memory report over the
// full call-stack dump when runErr is that kind of fault.
func (interp *Interpreter) writeReportFor(runErr error) error {
	if rt, ok := runErr.(*RuntimeError); ok && rt.Kind == "out of memory" {
		return interp.writeOOMDebugReport(runErr)
	}
	return interp.WriteDebugReport(runErr)
}

// checkDeadline is polled at each loop iteration so a runaway script
// fails with a clear diagnostic instead of hanging the host process
// (spec.md §6 `timeout_seconds`).
func (interp *Interpreter) checkDeadline(loc *source.Location) error {
	if interp.deadline.IsZero() || time.Now().Before(interp.deadline) {
		return nil
	}
	return newRuntimeError(loc, "timeout", "execution exceeded timeout_seconds")
}
