package interpreter

import (
	"strings"

	"wfl/internal/ast"
	"wfl/internal/source"
	"wfl/internal/value"
)

// bindParams implements spec.md §4.7's parameter binding policy. Each
// ast.Param is either a distinct single name (`needs P1 and P2`,
// requires an exact argument count) or a legacy space-joined slot
// (`needs P1 P2 P3`, documented quirky behaviour): called with one
// argument, every name in the slot binds to it; called with more than
// one, only the first reaches the joined name — the rest of that
// slot's share of the argument list is discarded.
func bindParams(env *value.Environment, params []ast.Param, args []value.Value, loc *source.Location) error {
	if allDistinct(params) && len(params) != len(args) {
		return newRuntimeError(loc, "arity mismatch", "expected %d argument(s), got %d", len(params), len(args))
	}

	argIdx := 0
	for _, p := range params {
		names := strings.Fields(p.Raw)
		if len(names) == 0 {
			continue
		}
		if len(names) == 1 {
			var v value.Value = value.Null{}
			if argIdx < len(args) {
				v = args[argIdx]
			}
			env.Define(names[0], v)
			argIdx++
			continue
		}

		remaining := args[min(argIdx, len(args)):]
		switch len(remaining) {
		case 0:
			for _, n := range names {
				env.Define(n, value.Null{})
			}
		case 1:
			for _, n := range names {
				env.Define(n, remaining[0])
			}
		default:
			env.Define(p.Raw, remaining[0])
		}
		argIdx = len(args)
	}
	return nil
}

func allDistinct(params []ast.Param) bool {
	for _, p := range params {
		if len(strings.Fields(p.Raw)) != 1 {
			return false
		}
	}
	return true
}
