// Package wfllog provides the pipeline's leveled logging: one child
// logger per stage (lexer, parser, semantic, typecheck, interpreter,
// stdlib), all rooted at a single configured level so a driver can
// turn up verbosity without threading a log level through every
// constructor (spec.md §6 `log_level`).
package wfllog

import (
	"io"
	"os"

	"github.com/juju/loggo"
)

// Stage names the five pipeline phases plus the driver and standard
// library, used both as loggo module names and as lookup keys.
type Stage string

const (
	StageLexer       Stage = "wfl.lexer"
	StageParser      Stage = "wfl.parser"
	StageSemantic    Stage = "wfl.semantic"
	StageTypeCheck   Stage = "wfl.typecheck"
	StageInterpreter Stage = "wfl.interpreter"
	StageStdlib      Stage = "wfl.stdlib"
	StageDriver      Stage = "wfl.driver"
)

// levelFromString maps a `.wflcfg` log_level value onto loggo's scale,
// defaulting to WARNING for anything unrecognised rather than failing
// the run over a typo'd config value.
func levelFromString(s string) loggo.Level {
	switch s {
	case "trace":
		return loggo.TRACE
	case "debug":
		return loggo.DEBUG
	case "info":
		return loggo.INFO
	case "warning", "warn":
		return loggo.WARNING
	case "error":
		return loggo.ERROR
	case "critical":
		return loggo.CRITICAL
	default:
		return loggo.WARNING
	}
}

// Configure sets every stage logger to the level named by levelName.
func Configure(levelName string) {
	level := levelFromString(levelName)
	for _, s := range []Stage{StageLexer, StageParser, StageSemantic, StageTypeCheck, StageInterpreter, StageStdlib, StageDriver} {
		logger := loggo.GetLogger(string(s))
		logger.SetLogLevel(level)
	}
}

// For returns the child logger for one pipeline stage.
func For(stage Stage) loggo.Logger {
	return loggo.GetLogger(string(stage))
}

// AttachFileWriter appends every configured stage's output to path as
// well, on top of the default stderr writer (spec.md §6: when logging
// is enabled, the driver keeps an append-only wfl.log alongside normal
// diagnostic output). The returned closer must be closed by the caller
// once the run finishes.
func AttachFileWriter(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	writer := loggo.NewSimpleWriter(f, loggo.DefaultFormatter)
	if err := loggo.RegisterWriter("wfl.log", writer); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}
