package interpreter

import (
	"wfl/internal/source"
	"wfl/internal/value"
)

// asFloat coerces a Number or Integer to float64 for arithmetic
// (spec.md §4.7: "binary arithmetic coerces Integer to Number as
// needed"). Anything else is a type error.
func asFloat(v value.Value, loc *source.Location) (float64, error) {
	switch n := v.(type) {
	case value.Number:
		return n.Val, nil
	case value.Integer:
		return float64(n.Val), nil
	default:
		return 0, newRuntimeError(loc, "type mismatch", "expected a number, got %s", v.Kind())
	}
}

// arithmeticResult keeps an Integer result Integer when both operands
// were Integer, matching getCommonNumericType in internal/types.
func arithmeticResult(left, right value.Value, result float64) value.Value {
	_, lInt := left.(value.Integer)
	_, rInt := right.(value.Integer)
	if lInt && rInt && result == float64(int64(result)) {
		return value.Integer{Val: int64(result)}
	}
	return value.Number{Val: result}
}
