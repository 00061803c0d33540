package wfllog

import (
	"testing"

	"github.com/juju/loggo"
)

func TestConfigureAppliesLevelToEveryStage(t *testing.T) {
	Configure("debug")
	logger := For(StageInterpreter)
	if !logger.IsDebugEnabled() {
		t.Fatal("expected debug level to be enabled after Configure(\"debug\")")
	}
}

func TestConfigureUnrecognisedLevelDefaultsToWarning(t *testing.T) {
	Configure("not-a-real-level")
	logger := For(StageLexer)
	if logger.LogLevel() != loggo.WARNING {
		t.Fatalf("expected WARNING for an unrecognised level, got %v", logger.LogLevel())
	}
}

func TestForReturnsDistinctLoggersPerStage(t *testing.T) {
	a := For(StageParser)
	b := For(StageSemantic)
	if a.Name() == b.Name() {
		t.Fatalf("expected distinct loggers per stage, both are %q", a.Name())
	}
}
