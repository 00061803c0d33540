package interpreter

import (
	"fmt"
	"os"
	"strings"

	"wfl/internal/source"
	"wfl/internal/value"
)

// memLimitBytes converts cfg.MaxMemoryMB into the byte ceiling charge
// checks against. A non-positive value disables tracking, matching a
// script that wants no ceiling at all.
func memLimitBytes(maxMemoryMB int) int64 {
	if maxMemoryMB <= 0 {
		return 0
	}
	return int64(maxMemoryMB) * 1024 * 1024
}

// charge adds n bytes to the interpreter's running allocation estimate
// and raises an out-of-memory RuntimeError once it crosses
// max_memory_mb (spec.md §4.7).
func (interp *Interpreter) charge(n int, loc *source.Location) error {
	if interp.memLimit <= 0 {
		return nil
	}
	interp.memUsed += int64(n)
	if interp.memUsed > interp.memLimit {
		return newRuntimeError(loc, "out of memory", "allocation exceeded max_memory_mb (%d MB)", interp.cfg.MaxMemoryMB)
	}
	return nil
}

// approxSize estimates a value's resident size in bytes for memory
// accounting. It's a rough count, not an exact one: enough to catch a
// script that keeps growing a list, object, or string without bound.
func approxSize(v value.Value) int {
	switch x := v.(type) {
	case value.Text:
		return len(x.Val)
	case value.Number, value.Integer, value.Bool, value.Null:
		return 8
	case *value.List:
		n := 0
		for _, el := range x.Elements {
			n += approxSize(el)
		}
		return n
	case *value.Object:
		n := 0
		for _, k := range x.Keys {
			n += len(k) + approxSize(x.Values[k])
		}
		return n
	default:
		return 32
	}
}

// writeOOMDebugReport writes the simplified debug report spec.md §4.7
// calls for on an out-of-memory fault: just the failure and the
// estimated usage, no call-stack/locals dump — producing the full
// WriteDebugReport could itself cost more memory than is left.
func (interp *Interpreter) writeOOMDebugReport(runErr error) error {
	if !interp.cfg.DebugReportEnabled {
		return nil
	}
	path := debugReportPath(interp.filePath)
	var b strings.Builder
	fmt.Fprintf(&b, "debug report for %s\n", interp.filePath)
	fmt.Fprintf(&b, "error: %s\n", runErr.Error())
	fmt.Fprintf(&b, "estimated memory used: %d bytes (limit %d MB)\n", interp.memUsed, interp.cfg.MaxMemoryMB)
	interp.calls.Clear()
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
