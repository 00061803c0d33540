package types

import (
	"testing"

	"wfl/internal/lexer"
	"wfl/internal/parser"
	"wfl/internal/report"
)

func checkSource(t *testing.T, src string) *report.Reporter {
	t.Helper()
	rep := report.New()
	toks := lexer.Tokenize("test.wfl", []byte(src), rep)
	prog := parser.New("test.wfl", toks, rep).Parse()
	New("test.wfl", rep).CheckProgram(prog)
	return rep
}

func warningKinds(rep *report.Reporter) []string {
	var kinds []string
	for _, d := range rep.Diagnostics() {
		if d.Severity == report.Warning {
			kinds = append(kinds, d.Kind)
		}
	}
	return kinds
}

func hasKind(kinds []string, want string) bool {
	for _, k := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

func TestArithmeticOnNumbersNoWarning(t *testing.T) {
	rep := checkSource(t, "store x as 1 plus 2\n")
	kinds := warningKinds(rep)
	if hasKind(kinds, "operator-type-mismatch") {
		t.Errorf("did not expect a mismatch warning, got %v", kinds)
	}
}

func TestArithmeticOnTextWarns(t *testing.T) {
	rep := checkSource(t, "store x as \"a\" plus 2\n")
	kinds := warningKinds(rep)
	if !hasKind(kinds, "operator-type-mismatch") {
		t.Errorf("expected operator-type-mismatch warning, got %v", kinds)
	}
}

func TestConcatAcceptsAnyType(t *testing.T) {
	rep := checkSource(t, "store x as \"a\" with 2\n")
	kinds := warningKinds(rep)
	if hasKind(kinds, "operator-type-mismatch") {
		t.Errorf("did not expect with/concat to warn, got %v", kinds)
	}
}

func TestInconsistentVariableTypeWarns(t *testing.T) {
	src := "store x as 1\nchange x to \"a\"\n"
	rep := checkSource(t, src)
	kinds := warningKinds(rep)
	if !hasKind(kinds, "inconsistent-variable-type") {
		t.Errorf("expected inconsistent-variable-type warning, got %v", kinds)
	}
}

func TestConsistentNumericReassignmentNoWarning(t *testing.T) {
	src := "store x as 1\nchange x to 2\n"
	rep := checkSource(t, src)
	kinds := warningKinds(rep)
	if hasKind(kinds, "inconsistent-variable-type") {
		t.Errorf("did not expect a warning for two integer assignments, got %v", kinds)
	}
}

func TestUnannotatedParameterIsUnknown(t *testing.T) {
	c := New("test.wfl", report.New())
	c.pushScope()
	c.scope.types["name"] = Unknown
	if got := c.lookup("name"); got != Unknown {
		t.Errorf("expected Unknown, got %v", got)
	}
}

func TestJoinIdenticalTypes(t *testing.T) {
	joined, ok := Join(Number, Number)
	if !ok || joined != Number {
		t.Errorf("expected Number/true, got %v/%v", joined, ok)
	}
}

func TestJoinUnknownWidensToOther(t *testing.T) {
	joined, ok := Join(Unknown, Text)
	if !ok || joined != Text {
		t.Errorf("expected Text/true, got %v/%v", joined, ok)
	}
}

func TestJoinConflictingTypesReportsFalse(t *testing.T) {
	joined, ok := Join(Text, Bool)
	if ok || joined != Unknown {
		t.Errorf("expected Unknown/false, got %v/%v", joined, ok)
	}
}

func TestJoinIntegerAndNumberWidensToNumber(t *testing.T) {
	joined, ok := Join(Integer, Number)
	if !ok || joined != Number {
		t.Errorf("expected Number/true, got %v/%v", joined, ok)
	}
}
