package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"wfl/internal/ast"
	"wfl/internal/lexer"
	"wfl/internal/report"
)

func parseSource(t *testing.T, src string) (*ast.Program, *report.Reporter) {
	t.Helper()
	rep := report.New()
	toks := lexer.Tokenize("test.wfl", []byte(src), rep)
	prog := New("test.wfl", toks, rep).Parse()
	return prog, rep
}

func requireNoErrors(t *testing.T, rep *report.Reporter) {
	t.Helper()
	if rep.HasErrors() {
		for _, d := range rep.Diagnostics() {
			t.Logf("diagnostic: %s %s: %s", d.Severity, d.Kind, d.Message)
		}
		t.Fatalf("expected no parse errors")
	}
}

func TestParseStoreStatement(t *testing.T) {
	prog, rep := parseSource(t, "store x as 5\n")
	requireNoErrors(t, rep)
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	store, ok := prog.Statements[0].(*ast.StoreStmt)
	if !ok {
		t.Fatalf("expected *ast.StoreStmt, got %T", prog.Statements[0])
	}
	if store.Name != "x" {
		t.Errorf("expected name x, got %s", store.Name)
	}
	lit, ok := store.Value.(*ast.IntegerLiteral)
	if !ok || lit.Value != 5 {
		t.Errorf("expected integer literal 5, got %#v", store.Value)
	}
}

func TestParseChangeAndSetAreEquivalent(t *testing.T) {
	progChange, rep1 := parseSource(t, "change x to 1\n")
	progSet, rep2 := parseSource(t, "set x to 1\n")
	requireNoErrors(t, rep1)
	requireNoErrors(t, rep2)
	if _, ok := progChange.Statements[0].(*ast.AssignStmt); !ok {
		t.Errorf("expected AssignStmt from 'change'")
	}
	if _, ok := progSet.Statements[0].(*ast.AssignStmt); !ok {
		t.Errorf("expected AssignStmt from 'set'")
	}
}

func TestParseCheckOtherwise(t *testing.T) {
	src := `check if x is greater than 3:
    display 1
otherwise:
    display 2
end check
`
	prog, rep := parseSource(t, src)
	requireNoErrors(t, rep)
	check, ok := prog.Statements[0].(*ast.CheckStmt)
	if !ok {
		t.Fatalf("expected *ast.CheckStmt, got %T", prog.Statements[0])
	}
	if len(check.Then) != 1 || len(check.Else) != 1 {
		t.Errorf("expected one statement each in then/else, got %d/%d", len(check.Then), len(check.Else))
	}
	cond, ok := check.Condition.(*ast.BinaryExpr)
	if !ok || cond.Op != ast.OpIsGreaterThan {
		t.Errorf("expected 'is greater than' comparison, got %#v", check.Condition)
	}
}

func TestParseCountLoopWithStep(t *testing.T) {
	src := "count from 1 to 10 by 2:\n    display count\nend count\n"
	prog, rep := parseSource(t, src)
	requireNoErrors(t, rep)
	loop, ok := prog.Statements[0].(*ast.CountLoopStmt)
	if !ok {
		t.Fatalf("expected *ast.CountLoopStmt, got %T", prog.Statements[0])
	}
	if loop.Step == nil {
		t.Errorf("expected a step expression")
	}
}

func TestParseForEach(t *testing.T) {
	src := "for each item in things:\n    display item\nend for\n"
	prog, rep := parseSource(t, src)
	requireNoErrors(t, rep)
	loop, ok := prog.Statements[0].(*ast.ForEachStmt)
	if !ok {
		t.Fatalf("expected *ast.ForEachStmt, got %T", prog.Statements[0])
	}
	if loop.VarName != "item" {
		t.Errorf("expected loop variable 'item', got %s", loop.VarName)
	}
}

func TestParseWhileAndRepeatWhileShareClosers(t *testing.T) {
	progWhile, rep1 := parseSource(t, "while x is less than 10:\n    change x to x plus 1\nend while\n")
	requireNoErrors(t, rep1)
	if _, ok := progWhile.Statements[0].(*ast.WhileStmt); !ok {
		t.Errorf("expected *ast.WhileStmt from 'while'")
	}

	progRepeatWhile, rep2 := parseSource(t, "repeat while x is less than 10:\n    change x to x plus 1\nend repeat\n")
	requireNoErrors(t, rep2)
	if _, ok := progRepeatWhile.Statements[0].(*ast.WhileStmt); !ok {
		t.Errorf("expected *ast.WhileStmt from 'repeat while'")
	}
}

func TestParseRepeatUntilPreAndPostTest(t *testing.T) {
	progPre, rep1 := parseSource(t, "repeat until x is equal to 0:\n    skip\nend repeat\n")
	requireNoErrors(t, rep1)
	pre, ok := progPre.Statements[0].(*ast.RepeatUntilStmt)
	if !ok || pre.PostTest {
		t.Errorf("expected a pre-test RepeatUntilStmt, got %#v", progPre.Statements[0])
	}

	progPost, rep2 := parseSource(t, "repeat:\n    skip\nuntil x is equal to 0\nend repeat\n")
	requireNoErrors(t, rep2)
	post, ok := progPost.Statements[0].(*ast.RepeatUntilStmt)
	if !ok || !post.PostTest {
		t.Errorf("expected a post-test RepeatUntilStmt, got %#v", progPost.Statements[0])
	}
}

func TestParseBareRepeatWithNoUntilIsForever(t *testing.T) {
	prog, rep := parseSource(t, "repeat:\n    break\nend repeat\n")
	requireNoErrors(t, rep)
	if _, ok := prog.Statements[0].(*ast.RepeatForeverStmt); !ok {
		t.Errorf("expected *ast.RepeatForeverStmt, got %#v", prog.Statements[0])
	}
}

func TestParseBreakAndExitLoopAreEquivalent(t *testing.T) {
	prog1, rep1 := parseSource(t, "repeat forever:\n    break\nend repeat\n")
	requireNoErrors(t, rep1)
	body1 := prog1.Statements[0].(*ast.RepeatForeverStmt).Body
	if _, ok := body1[0].(*ast.BreakStmt); !ok {
		t.Errorf("expected *ast.BreakStmt from 'break'")
	}

	prog2, rep2 := parseSource(t, "repeat forever:\n    exit loop\nend repeat\n")
	requireNoErrors(t, rep2)
	body2 := prog2.Statements[0].(*ast.RepeatForeverStmt).Body
	if _, ok := body2[0].(*ast.BreakStmt); !ok {
		t.Errorf("expected *ast.BreakStmt from 'exit loop'")
	}
}

func TestParseActionDefWithAndSeparatedParams(t *testing.T) {
	src := "define action called add needs a and b:\n    give back a plus b\nend action\n"
	prog, rep := parseSource(t, src)
	requireNoErrors(t, rep)
	def, ok := prog.Statements[0].(*ast.ActionDefStmt)
	if !ok {
		t.Fatalf("expected *ast.ActionDefStmt, got %T", prog.Statements[0])
	}
	if len(def.Params) != 2 || def.Params[0].Raw != "a" || def.Params[1].Raw != "b" {
		t.Errorf("expected two distinct params a, b, got %#v", def.Params)
	}
}

func TestParseActionDefWithLegacySpaceSeparatedParams(t *testing.T) {
	src := "define action called greet needs first last:\n    display first\nend action\n"
	prog, rep := parseSource(t, src)
	requireNoErrors(t, rep)
	def := prog.Statements[0].(*ast.ActionDefStmt)
	if len(def.Params) != 1 || def.Params[0].Raw != "first last" {
		t.Errorf("expected one merged legacy param 'first last', got %#v", def.Params)
	}
}

func TestParseActionCallWithAndSeparatedArguments(t *testing.T) {
	prog, rep := parseSource(t, "add with 1 and 2\n")
	requireNoErrors(t, rep)
	stmt := prog.Statements[0].(*ast.ExpressionStmt)
	call, ok := stmt.Expression.(*ast.ActionCallExpr)
	if !ok {
		t.Fatalf("expected *ast.ActionCallExpr, got %T", stmt.Expression)
	}
	if call.Name != "add" || len(call.Arguments) != 2 {
		t.Errorf("expected add(1, 2), got %#v", call)
	}
}

func TestParseTryWhenOtherwise(t *testing.T) {
	src := `try:
    open file at "x.txt" as h
when err:
    display err
otherwise:
    display "ok"
end try
`
	prog, rep := parseSource(t, src)
	requireNoErrors(t, rep)
	tryStmt, ok := prog.Statements[0].(*ast.TryStmt)
	require.True(t, ok, "expected *ast.TryStmt, got %T", prog.Statements[0])
	require.Equal(t, "err", tryStmt.ErrName)
	require.Len(t, tryStmt.Handler, 1)
	require.Len(t, tryStmt.Else, 1)
}

// TestParsingIsReproducible pins the structural-equality invariant a
// parser round trip depends on: parsing the same token stream twice
// must yield the same tree, field for field, not just the same
// Go-string rendering.
func TestParsingIsReproducible(t *testing.T) {
	src := `define action called add needs a and b:
    give back a plus b
end action
store total as add with 1 and 2
check if total is greater than 2:
    display "big"
otherwise:
    display "small"
end check
`
	first, rep1 := parseSource(t, src)
	requireNoErrors(t, rep1)
	second, rep2 := parseSource(t, src)
	requireNoErrors(t, rep2)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("parsing %q twice produced different trees (-first +second):\n%s", src, diff)
	}
}

func TestParseDisplayFlattensConcat(t *testing.T) {
	prog, rep := parseSource(t, `display "a" with "b" with "c"` + "\n")
	requireNoErrors(t, rep)
	disp, ok := prog.Statements[0].(*ast.DisplayStmt)
	if !ok {
		t.Fatalf("expected *ast.DisplayStmt, got %T", prog.Statements[0])
	}
	if len(disp.Operands) != 3 {
		t.Errorf("expected 3 flattened operands, got %d", len(disp.Operands))
	}
}

func TestParseWaitForSequencesTwoOperations(t *testing.T) {
	src := `wait for write content "hi" into h and read content as result from h` + "\n"
	prog, rep := parseSource(t, src)
	requireNoErrors(t, rep)
	wait, ok := prog.Statements[0].(*ast.WaitForStmt)
	if !ok {
		t.Fatalf("expected *ast.WaitForStmt, got %T", prog.Statements[0])
	}
	if len(wait.Operations) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(wait.Operations))
	}
	if _, ok := wait.Operations[0].(*ast.WriteFileStmt); !ok {
		t.Errorf("expected first operation to be a write, got %T", wait.Operations[0])
	}
	if _, ok := wait.Operations[1].(*ast.ReadFileStmt); !ok {
		t.Errorf("expected second operation to be a read, got %T", wait.Operations[1])
	}
}

func TestParseTriggerOnCreate(t *testing.T) {
	prog, rep := parseSource(t, "trigger greeted with name\n")
	requireNoErrors(t, rep)
	trig, ok := prog.Statements[0].(*ast.TriggerStmt)
	if !ok || trig.Event != "greeted" || len(trig.Arguments) != 1 {
		t.Errorf("expected trigger greeted(name), got %#v", prog.Statements[0])
	}

	prog2, rep2 := parseSource(t, "on greeted as name:\n    display name\nend on\n")
	requireNoErrors(t, rep2)
	on, ok := prog2.Statements[0].(*ast.OnStmt)
	if !ok || on.Event != "greeted" || on.ParamName != "name" {
		t.Errorf("expected on greeted as name, got %#v", prog2.Statements[0])
	}

	prog3, rep3 := parseSource(t, "create database called db with \"path.db\"\n")
	requireNoErrors(t, rep3)
	create, ok := prog3.Statements[0].(*ast.CreateStmt)
	if !ok || create.Kind != "database" || create.Name != "db" || len(create.Arguments) != 1 {
		t.Errorf("expected create database db(\"path.db\"), got %#v", prog3.Statements[0])
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	prog, rep := parseSource(t, "store x as 1 plus 2 times 3\n")
	requireNoErrors(t, rep)
	store := prog.Statements[0].(*ast.StoreStmt)
	bin, ok := store.Value.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.OpPlus {
		t.Fatalf("expected outermost op to be plus, got %#v", store.Value)
	}
	rightMul, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || rightMul.Op != ast.OpTimes {
		t.Errorf("expected right operand to be a times expression, got %#v", bin.Right)
	}
}

func TestParseArgumentAndDoesNotBindLogicalAnd(t *testing.T) {
	prog, rep := parseSource(t, "combine with 1 and 2\n")
	requireNoErrors(t, rep)
	call := prog.Statements[0].(*ast.ExpressionStmt).Expression.(*ast.ActionCallExpr)
	if len(call.Arguments) != 2 {
		t.Fatalf("expected 'and' to separate two arguments, not bind a logical-and, got %d args", len(call.Arguments))
	}
	for _, a := range call.Arguments {
		if _, ok := a.(*ast.IntegerLiteral); !ok {
			t.Errorf("expected each argument to be a plain literal, got %#v", a)
		}
	}
}

func TestParseParenthesesAllowLogicalAndInsideAnArgument(t *testing.T) {
	prog, rep := parseSource(t, "combine with (true and false)\n")
	requireNoErrors(t, rep)
	call := prog.Statements[0].(*ast.ExpressionStmt).Expression.(*ast.ActionCallExpr)
	if len(call.Arguments) != 1 {
		t.Fatalf("expected a single parenthesised argument, got %d", len(call.Arguments))
	}
	if _, ok := call.Arguments[0].(*ast.BinaryExpr); !ok {
		t.Errorf("expected the parenthesised argument to be a logical-and BinaryExpr, got %#v", call.Arguments[0])
	}
}

func TestParseListLiteral(t *testing.T) {
	prog, rep := parseSource(t, "store xs as [1, 2, 3]\n")
	requireNoErrors(t, rep)
	store := prog.Statements[0].(*ast.StoreStmt)
	list, ok := store.Value.(*ast.ListExpr)
	if !ok || len(list.Elements) != 3 {
		t.Fatalf("expected a 3-element list, got %#v", store.Value)
	}
}

func TestParseObjectLiteral(t *testing.T) {
	prog, rep := parseSource(t, `store person as [name: "Ada", age: 30]`+"\n")
	requireNoErrors(t, rep)
	store := prog.Statements[0].(*ast.StoreStmt)
	obj, ok := store.Value.(*ast.ObjectExpr)
	if !ok || len(obj.Keys) != 2 {
		t.Fatalf("expected a 2-key object, got %#v", store.Value)
	}
	if obj.Keys[0] != "name" || obj.Keys[1] != "age" {
		t.Errorf("unexpected keys %v", obj.Keys)
	}
}

func TestParseIndexExpression(t *testing.T) {
	prog, rep := parseSource(t, "store first as xs[0]\n")
	requireNoErrors(t, rep)
	store := prog.Statements[0].(*ast.StoreStmt)
	idx, ok := store.Value.(*ast.IndexExpr)
	if !ok {
		t.Fatalf("expected *ast.IndexExpr, got %#v", store.Value)
	}
	if _, ok := idx.Collection.(*ast.VariableRef); !ok {
		t.Errorf("expected collection to be a variable ref, got %#v", idx.Collection)
	}
}

func TestParsePatternSugar(t *testing.T) {
	prog, rep := parseSource(t, `store ok as match with text and pattern`+"\n")
	requireNoErrors(t, rep)
	store := prog.Statements[0].(*ast.StoreStmt)
	if _, ok := store.Value.(*ast.PatternMatchExpr); !ok {
		t.Errorf("expected *ast.PatternMatchExpr for 2-arg 'match', got %#v", store.Value)
	}
}

func TestParsePatternSugarFallsBackOnArityMismatch(t *testing.T) {
	prog, rep := parseSource(t, "store ok as match with a and b and c\n")
	requireNoErrors(t, rep)
	store := prog.Statements[0].(*ast.StoreStmt)
	if _, ok := store.Value.(*ast.ActionCallExpr); !ok {
		t.Errorf("expected 3-arg 'match' to fall back to a plain ActionCallExpr, got %#v", store.Value)
	}
}

func TestParseMismatchedEndIsReportedAndDoesNotHang(t *testing.T) {
	src := "check if true:\n    display 1\nend count\n"
	prog, rep := parseSource(t, src)
	if !rep.HasErrors() {
		t.Errorf("expected a mismatched-end diagnostic")
	}
	if len(prog.Statements) == 0 {
		t.Errorf("expected parsing to still produce a CheckStmt despite the bad closer")
	}
}

func TestParseMissingClosingQuoteDoesNotHangParser(t *testing.T) {
	src := "store x as \"unterminated\n"
	prog, rep := parseSource(t, src)
	if !rep.HasErrors() {
		t.Errorf("expected an unterminated-string diagnostic to surface through the parser too")
	}
	if len(prog.Statements) != 1 {
		t.Errorf("expected parsing to still recover one statement, got %d", len(prog.Statements))
	}
}
