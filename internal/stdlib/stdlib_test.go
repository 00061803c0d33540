package stdlib

import (
	"bytes"
	"testing"

	"wfl/internal/interpreter"
	"wfl/internal/lexer"
	"wfl/internal/parser"
	"wfl/internal/report"
	"wfl/internal/wflconfig"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	rep := report.New()
	toks := lexer.Tokenize("test.wfl", []byte(src), rep)
	prog := parser.New("test.wfl", toks, rep).Parse()
	if rep.HasErrors() {
		for _, d := range rep.Diagnostics() {
			t.Logf("diagnostic: %s %s: %s", d.Severity, d.Kind, d.Message)
		}
		t.Fatalf("source failed to parse")
	}

	var out bytes.Buffer
	interp := interpreter.New("test.wfl", rep, wflconfig.Default())
	interp.SetOutput(&out)
	Install(interp)
	err := interp.Run(prog)
	return out.String(), err
}

func TestTypeofReportsKind(t *testing.T) {
	out, err := run(t, `display typeof with 5`+"\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "integer\n" {
		t.Fatalf("expected integer, got %q", out)
	}
}

func TestIsNothingRecognisesNull(t *testing.T) {
	out, err := run(t, "display isnothing with nothing\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "true\n" {
		t.Fatalf("expected true, got %q", out)
	}
}

func TestMathAbsAndClamp(t *testing.T) {
	out, err := run(t, "display abs with (0 minus 5)\ndisplay clamp with 10 and 0 and 5\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "5\n5\n" {
		t.Fatalf("expected 5 then 5, got %q", out)
	}
}

func TestTextUppercaseAndSubstring(t *testing.T) {
	out, err := run(t, `display touppercase with "abc"`+"\n"+`display substring with "hello" and 1 and 3`+"\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ABC\nel\n" {
		t.Fatalf("expected ABC then el, got %q", out)
	}
}

func TestListPushPopAndIndexof(t *testing.T) {
	src := `store xs as [1, 2, 3]
push with xs and 4
display indexof with xs and 4
pop with xs
display length with xs
`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "3\n3\n" {
		t.Fatalf("expected 3 then 3, got %q", out)
	}
}

func TestPatternCompileMatchAndReplace(t *testing.T) {
	src := `store p as compile with "[0-9]+"
display match with "abc123" and p
display replace with "abc123" and p and "#"
`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "true\nabc#\n" {
		t.Fatalf("expected true then abc#, got %q", out)
	}
}

func TestCreateDatabaseAndQueryRoundTrip(t *testing.T) {
	src := `create database called db with ":memory:"
db_exec with db and "create table items (id integer, name text)"
db_exec with db and "insert into items (id, name) values (1, 'widget')"
store rows as db_query with db and "select name from items"
display length with rows
`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1\n" {
		t.Fatalf("expected one row, got %q", out)
	}
}
