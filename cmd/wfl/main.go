// Command wfl is the WFL driver: it tokenizes, parses, analyses, type
// checks, and interprets one script, wiring every internal package
// into the exit codes and flags described in spec.md §6.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"wfl/colors"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run builds and executes the root command, returning the process
// exit code instead of calling os.Exit directly so main can keep this
// the single place that terminates the process (opal-lang-opal/cli's
// own convention, kept here for the same reason: os.Exit anywhere else
// would skip deferred cleanup, e.g. execute closing the wfl.log writer).
// A panic (an internal invariant violation) is recovered here: its value
// and the goroutine stack trace go to stderr and the exit code is 1.
func run(args []string) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "wfl: internal error: %v\n%s", r, debug.Stack())
			code = 1
		}
	}()

	var (
		lexOnly     bool
		astOnly     bool
		analyzeOnly bool
		stepMode    bool
		noColor     bool
		showVersion bool
	)

	rootCmd := &cobra.Command{
		Use:           "wfl <script.wfl>",
		Short:         "Run a WebFirst Language script",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), versionString)
				return nil
			}
			if noColor {
				colors.NoColor = true
			}
			if len(args) != 1 {
				return errExitCode{code: 3, err: fmt.Errorf("expected exactly one script argument")}
			}
			code, err := execute(args[0], pipelineOptions{
				lexOnly:     lexOnly,
				astOnly:     astOnly,
				analyzeOnly: analyzeOnly,
				stepMode:    stepMode,
			})
			if err != nil {
				return errExitCode{code: code, err: err}
			}
			if code != 0 {
				return errExitCode{code: code, err: nil}
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&lexOnly, "lex", false, "tokenize only, writing <script>.lex.txt")
	rootCmd.PersistentFlags().BoolVar(&astOnly, "ast", false, "parse only, writing <script>.ast.txt")
	rootCmd.PersistentFlags().BoolVar(&analyzeOnly, "analyze", false, "run semantic analysis and type checking only, no interpretation")
	rootCmd.PersistentFlags().BoolVar(&stepMode, "step", false, "single-step the interpreter, printing globals after each statement")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI colored diagnostic output")
	rootCmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "print the driver version and exit")

	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		var ec errExitCode
		if asErrExitCode(err, &ec) {
			if ec.err != nil {
				fmt.Fprintln(os.Stderr, colors.BOLD_RED.Sprintf("wfl: %v", ec.err))
			}
			return ec.code
		}
		fmt.Fprintln(os.Stderr, colors.BOLD_RED.Sprintf("wfl: %v", err))
		return 3
	}
	return 0
}

// errExitCode lets RunE carry a specific process exit code alongside
// (or instead of) a printable error, since cobra itself only knows
// success/failure.
type errExitCode struct {
	code int
	err  error
}

func (e errExitCode) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func asErrExitCode(err error, out *errExitCode) bool {
	ec, ok := err.(errExitCode)
	if ok {
		*out = ec
	}
	return ok
}
