package interpreter

import (
	"fmt"

	"wfl/internal/source"
	"wfl/internal/value"
)

// RuntimeError is the only error type the interpreter raises for a
// WFL-level fault (division by zero, missing file, arity mismatch,
// dropped weak capture, …). Kind is the machine-stable tag spec.md §7
// requires `error.kind` to expose to a `try`/`when` handler (e.g.
// "division by zero", per spec.md §8's pinned boundary case).
type RuntimeError struct {
	Kind    string
	Message string
	Loc     *source.Location
}

func (e *RuntimeError) Error() string { return e.Message }

func newRuntimeError(loc *source.Location, kind, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...), Loc: loc}
}

// errorRecord builds the record a `try`/`when` handler binds its error
// name to: kind, message, line, column (spec.md §7). A non-RuntimeError
// (shouldn't happen, but handlers must still get something) falls back
// to kind "error" with line/column 0.
func errorRecord(err error) *value.Object {
	obj := value.NewObject()
	rt, ok := err.(*RuntimeError)
	if !ok {
		obj.Set("kind", value.Text{Val: "error"})
		obj.Set("message", value.Text{Val: err.Error()})
		obj.Set("line", value.Integer{Val: 0})
		obj.Set("column", value.Integer{Val: 0})
		return obj
	}
	obj.Set("kind", value.Text{Val: rt.Kind})
	obj.Set("message", value.Text{Val: rt.Message})
	if rt.Loc != nil {
		obj.Set("line", value.Integer{Val: int64(rt.Loc.Start.Line)})
		obj.Set("column", value.Integer{Val: int64(rt.Loc.Start.Column)})
	} else {
		obj.Set("line", value.Integer{Val: 0})
		obj.Set("column", value.Integer{Val: 0})
	}
	return obj
}
