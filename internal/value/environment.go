package value

import (
	"errors"
	"weak"
)

// ErrCapturedEnvironmentDropped is the runtime error spec.md names for
// a closure whose weakly-captured environment has been collected —
// should not occur if the interpreter's ownership invariants hold.
var ErrCapturedEnvironmentDropped = errors.New("captured environment dropped")

// Environment is one lexical scope frame: a name→Value mapping plus a
// strong reference to its enclosing frame. Every ordinary scope chain
// (block, loop body, call frame) is strong; the sole weak link in the
// system is a Function's capture of its defining frame, represented
// separately by WeakEnv (spec.md §4.6 invariant).
type Environment struct {
	parent *Environment
	vars   map[string]Value
}

// NewEnvironment creates a frame. parent is nil only for the single
// global frame an interpreter instance owns.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{parent: parent, vars: map[string]Value{}}
}

// Define writes name into this frame, shadowing any outer binding.
func (e *Environment) Define(name string, v Value) {
	e.vars[name] = v
}

// Get walks the parent chain, returning the nearest binding.
func (e *Environment) Get(name string) (Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Assign updates the nearest scope that already defines name. It does
// not create a new binding — that is Define's job.
func (e *Environment) Assign(name string, v Value) bool {
	for f := e; f != nil; f = f.parent {
		if _, ok := f.vars[name]; ok {
			f.vars[name] = v
			return true
		}
	}
	return false
}

// DefinedLocally reports whether name is bound in this exact frame,
// not merely visible through the parent chain — used to reject
// `store` of a name already declared in the same scope.
func (e *Environment) DefinedLocally(name string) bool {
	_, ok := e.vars[name]
	return ok
}

// Each calls fn for every name bound directly in this frame, for a
// call frame's debug-report locals snapshot. It does not walk parent
// scopes.
func (e *Environment) Each(fn func(name string, v Value)) {
	for name, v := range e.vars {
		fn(name, v)
	}
}

// WeakEnv is a non-owning reference to an Environment, used only by
// Function values to capture their defining scope without creating an
// ownership cycle between environments and the functions they contain
// (spec.md "Closures vs. cycles").
type WeakEnv struct {
	ptr weak.Pointer[Environment]
}

// CaptureWeak records env's address without retaining it.
func CaptureWeak(env *Environment) *WeakEnv {
	return &WeakEnv{ptr: weak.Make(env)}
}

// Upgrade resolves the captured environment back to a strong
// reference. A nil, false-ok result means it was collected — the
// interpreter surfaces that as ErrCapturedEnvironmentDropped.
func (w *WeakEnv) Upgrade() (*Environment, bool) {
	if w == nil {
		return nil, false
	}
	env := w.ptr.Value()
	return env, env != nil
}
