package main

import (
	"fmt"
	"os"
	"sort"

	"wfl/internal/ast"
	"wfl/internal/interpreter"
	"wfl/internal/lexer"
	"wfl/internal/parser"
	"wfl/internal/report"
	"wfl/internal/semantic"
	"wfl/internal/stdlib"
	"wfl/internal/types"
	"wfl/internal/value"
	"wfl/internal/wflconfig"
	"wfl/internal/wfllog"
)

// pipelineOptions mirrors the driver flags that change how far the
// pipeline runs and what it writes out, per spec.md §6.
type pipelineOptions struct {
	lexOnly     bool
	astOnly     bool
	analyzeOnly bool
	stepMode    bool
}

// execute runs scriptPath through the five pipeline stages, stopping
// early per opts, and returns the process exit code spec.md §6 assigns:
// 0 success, 1 uncaught runtime error, 2 a lex/parse/semantic/type
// error was reported, 3 bad config or bad input.
func execute(scriptPath string, opts pipelineOptions) (int, error) {
	cfg, err := wflconfig.Load(wflconfig.ResolvePath())
	if err != nil {
		return 3, err
	}
	wfllog.Configure(cfg.LogLevel)

	if cfg.LogLevel != "" {
		closer, err := wfllog.AttachFileWriter("wfl.log")
		if err == nil {
			defer closer.Close()
		}
	}

	src, err := os.ReadFile(scriptPath)
	if err != nil {
		return 3, err
	}

	rep := report.New()
	tokens := lexer.Tokenize(scriptPath, src, rep)

	if opts.lexOnly {
		return writeLexDump(scriptPath, tokens)
	}

	prog := parser.New(scriptPath, tokens, rep).Parse()

	if opts.astOnly {
		if rep.HasErrors() {
			rep.Render(os.Stderr)
			return 2, nil
		}
		return writeASTDump(scriptPath, prog)
	}

	if rep.HasErrors() {
		rep.Render(os.Stderr)
		return 2, nil
	}

	semantic.New(scriptPath, rep).Analyze(prog)
	types.New(scriptPath, rep).CheckProgram(prog)

	if rep.HasErrors() || rep.HasWarnings() {
		rep.Render(os.Stderr)
	}
	if rep.HasErrors() {
		return 2, nil
	}
	if opts.analyzeOnly {
		return 0, nil
	}

	interp := interpreter.New(scriptPath, rep, cfg)
	stdlib.Install(interp)

	if opts.stepMode {
		return runStepped(interp, prog)
	}

	if err := interp.Run(prog); err != nil {
		return 1, err
	}
	return 0, nil
}

// runStepped drives the interpreter one top-level statement at a time,
// printing the global environment to stderr between steps so a user
// can watch state evolve (spec.md §6 `--step`).
func runStepped(interp *interpreter.Interpreter, prog *ast.Program) (int, error) {
	for {
		done, err := interp.Step(prog)
		printGlobals(interp)
		if err != nil {
			return 1, err
		}
		if done {
			return 0, nil
		}
	}
}

// printGlobals renders the interpreter's top-level environment to
// stderr, one `name = value` line per variable, in a stable order.
func printGlobals(interp *interpreter.Interpreter) {
	names := []string{}
	values := map[string]value.Value{}
	interp.Global().Each(func(name string, v value.Value) {
		names = append(names, name)
		values[name] = v
	})
	sort.Strings(names)

	fmt.Fprintln(os.Stderr, "--- globals ---")
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s = %s\n", name, value.ToDisplayText(values[name]))
	}
}
