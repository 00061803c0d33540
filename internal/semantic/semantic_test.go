package semantic

import (
	"testing"

	"wfl/internal/lexer"
	"wfl/internal/parser"
	"wfl/internal/report"
)

func analyzeSource(t *testing.T, src string) *report.Reporter {
	t.Helper()
	rep := report.New()
	toks := lexer.Tokenize("test.wfl", []byte(src), rep)
	prog := parser.New("test.wfl", toks, rep).Parse()
	New("test.wfl", rep).Analyze(prog)
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

func TestUnusedVariableWarning(t *testing.T) {
	rep := analyzeSource(t, "store x as 5\n")
	kinds := warningKinds(rep)
	if !hasKind(kinds, "unused-variable") {
		t.Errorf("expected unused-variable warning, got %v", kinds)
	}
}

func TestUsedVariableNoWarning(t *testing.T) {
	rep := analyzeSource(t, "store x as 5\ndisplay x\n")
	kinds := warningKinds(rep)
	if hasKind(kinds, "unused-variable") {
		t.Errorf("did not expect unused-variable warning, got %v", kinds)
	}
}

func TestShadowedNameWarning(t *testing.T) {
	src := `store x as 1
check if true:
    store x as 2
    display x
end check
`
	rep := analyzeSource(t, src)
	kinds := warningKinds(rep)
	if !hasKind(kinds, "shadowed-name") {
		t.Errorf("expected shadowed-name warning, got %v", kinds)
	}
}

func TestUnreachableStatementAfterBreak(t *testing.T) {
	src := `repeat forever:
    break
    display 1
end repeat
`
	rep := analyzeSource(t, src)
	kinds := warningKinds(rep)
	if !hasKind(kinds, "unreachable-statement") {
		t.Errorf("expected unreachable-statement warning, got %v", kinds)
	}
}

func TestInconsistentReturnPathsWarning(t *testing.T) {
	src := `define action called maybe needs x:
    check if x is greater than 0:
        give back x
    end check
end action
`
	rep := analyzeSource(t, src)
	kinds := warningKinds(rep)
	if !hasKind(kinds, "inconsistent-return-paths") {
		t.Errorf("expected inconsistent-return-paths warning, got %v", kinds)
	}
}

func TestConsistentReturnPathsNoWarning(t *testing.T) {
	src := `define action called maybe needs x:
    check if x is greater than 0:
        give back x
    otherwise:
        give back 0
    end check
end action
`
	rep := analyzeSource(t, src)
	kinds := warningKinds(rep)
	if hasKind(kinds, "inconsistent-return-paths") {
		t.Errorf("did not expect inconsistent-return-paths warning, got %v", kinds)
	}
}

func TestCountLoopImplicitVariableNeverFlagged(t *testing.T) {
	src := "count from 1 to 3:\n    display \"tick\"\nend count\n"
	rep := analyzeSource(t, src)
	kinds := warningKinds(rep)
	if hasKind(kinds, "unused-variable") {
		t.Errorf("implicit loop variable 'count' should never be flagged unused, got %v", kinds)
	}
}

func TestUnusedParameterWarning(t *testing.T) {
	src := "define action called greet needs name:\n    display \"hi\"\nend action\n"
	rep := analyzeSource(t, src)
	kinds := warningKinds(rep)
	if !hasKind(kinds, "unused-parameter") {
		t.Errorf("expected unused-parameter warning, got %v", kinds)
	}
}
