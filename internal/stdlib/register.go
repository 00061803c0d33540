package stdlib

import "wfl/internal/interpreter"

// Install populates interp's native-function and constructor tables
// with every category spec.md §4.8 names: core, math, text, list,
// pattern, time, io.
func Install(interp *interpreter.Interpreter) {
	registerCore(interp)
	registerMath(interp)
	registerText(interp)
	registerList(interp)
	registerPattern(interp)
	registerTime(interp)
	registerIO(interp)
}
