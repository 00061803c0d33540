package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeScript(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing script: %v", err)
	}
	return path
}

func TestExecuteRunsSuccessfulScript(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "ok.wfl", "display 1 plus 2\n")

	code, err := execute(path, pipelineOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestExecuteReportsParseErrorAsExitCode2(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "bad.wfl", "@@@ not a real statement\n")

	code, err := execute(path, pipelineOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}

func TestExecuteUncaughtRuntimeErrorIsExitCode1(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "div0.wfl", "display 1 divided by 0\n")

	code, err := execute(path, pipelineOptions{})
	if err == nil {
		t.Fatalf("expected a runtime error")
	}
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestExecuteMissingScriptIsExitCode3(t *testing.T) {
	code, err := execute(filepath.Join(t.TempDir(), "missing.wfl"), pipelineOptions{})
	if err == nil {
		t.Fatalf("expected an error for a missing script")
	}
	if code != 3 {
		t.Fatalf("expected exit code 3, got %d", code)
	}
}

func TestExecuteAnalyzeOnlyDoesNotInterpret(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "analyze.wfl", "display 1 divided by 0\n")

	code, err := execute(path, pipelineOptions{analyzeOnly: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 0 {
		t.Fatalf("expected exit code 0 (never interpreted), got %d", code)
	}
}

func TestExecuteLexOnlyWritesDump(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "lex.wfl", "store x as 5\n")

	code, err := execute(path, pipelineOptions{lexOnly: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	dump := dumpPath(path, ".lex.txt")
	if _, err := os.Stat(dump); err != nil {
		t.Fatalf("expected lex dump at %s: %v", dump, err)
	}
}

func TestExecuteASTOnlyWritesDump(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "ast.wfl", "store x as 5\ndisplay x\n")

	code, err := execute(path, pipelineOptions{astOnly: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	dump := dumpPath(path, ".ast.txt")
	if _, err := os.Stat(dump); err != nil {
		t.Fatalf("expected ast dump at %s: %v", dump, err)
	}
}

func TestRunVersionFlag(t *testing.T) {
	code := run([]string{"--version"})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestRunRejectsMissingScriptArgument(t *testing.T) {
	code := run([]string{})
	if code != 3 {
		t.Fatalf("expected exit code 3, got %d", code)
	}
}
