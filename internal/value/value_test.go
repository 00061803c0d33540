package value

import (
	"math"
	"testing"
)

func TestTruthyRules(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"bool true", Bool{Val: true}, true},
		{"bool false", Bool{Val: false}, false},
		{"null", Null{}, false},
		{"zero number", Number{Val: 0}, false},
		{"nan number", Number{Val: math.NaN()}, false},
		{"nonzero number", Number{Val: 1.5}, true},
		{"zero integer", Integer{Val: 0}, false},
		{"nonzero integer", Integer{Val: -3}, true},
		{"empty text", Text{Val: ""}, false},
		{"nonempty text", Text{Val: "a"}, true},
		{"empty list", &List{}, false},
		{"nonempty list", &List{Elements: []Value{Integer{Val: 1}}}, true},
		{"empty object", NewObject(), false},
		{"native function", NativeFunction{Name: "now", Arity: 0}, true},
	}
	for _, c := range cases {
		if got := Truthy(c.v); got != c.want {
			t.Errorf("%s: Truthy() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestEqualStructuralForPrimitives(t *testing.T) {
	if !Equal(Number{Val: 2}, Integer{Val: 2}) {
		t.Error("expected Number(2) to equal Integer(2)")
	}
	if Equal(Text{Val: "a"}, Text{Val: "b"}) {
		t.Error("did not expect 'a' to equal 'b'")
	}
	if !Equal(Null{}, Null{}) {
		t.Error("expected Null to equal Null")
	}
}

func TestEqualReferenceIdentityForContainers(t *testing.T) {
	a := &List{Elements: []Value{Integer{Val: 1}}}
	b := &List{Elements: []Value{Integer{Val: 1}}}
	if Equal(a, b) {
		t.Error("did not expect distinct List instances with equal contents to be Equal")
	}
	if !Equal(a, a) {
		t.Error("expected a List to equal itself")
	}
}

func TestObjectPreservesInsertionOrder(t *testing.T) {
	o := NewObject()
	o.Set("z", Integer{Val: 1})
	o.Set("a", Integer{Val: 2})
	if len(o.Keys) != 2 || o.Keys[0] != "z" || o.Keys[1] != "a" {
		t.Errorf("expected insertion order [z a], got %v", o.Keys)
	}
}

func TestListDebugFormTruncatesAtSixteenElements(t *testing.T) {
	elems := make([]Value, 20)
	for i := range elems {
		elems[i] = Integer{Val: int64(i)}
	}
	l := &List{Elements: elems}
	s := l.String()
	if !containsSuffix(s, "...]") {
		t.Errorf("expected truncated list form to end in '...]', got %q", s)
	}
}

func TestToDisplayTextNullIsEmpty(t *testing.T) {
	if got := ToDisplayText(Null{}); got != "" {
		t.Errorf("expected Null to display as empty text, got %q", got)
	}
}

func TestToDisplayTextNumberShortestRoundTrip(t *testing.T) {
	if got := ToDisplayText(Number{Val: 3}); got != "3" {
		t.Errorf("expected 3, got %q", got)
	}
}

func containsSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}
