package interpreter

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"wfl/internal/callstack"
)

// WriteDebugReport renders the error, a few source lines around its
// location (when the script can be read back), and the call stack
// captured at the moment of an uncaught runtime error to
// <script>_debug.txt, honoring
// debug_report_enabled / debug_full_report (spec.md §6/§7). It is a
// no-op, returning nil, when reporting is disabled.
func (interp *Interpreter) WriteDebugReport(runErr error) error {
	if !interp.cfg.DebugReportEnabled {
		return nil
	}
	path := debugReportPath(interp.filePath)
	var b strings.Builder

	fmt.Fprintf(&b, "debug report for %s\n", interp.filePath)
	if runErr != nil {
		fmt.Fprintf(&b, "error: %s\n", runErr.Error())
	}
	if rt, ok := runErr.(*RuntimeError); ok && rt.Loc != nil && rt.Loc.Start != nil {
		if src, err := os.ReadFile(interp.filePath); err == nil {
			lines := strings.Split(string(src), "\n")
			line := rt.Loc.Start.Line
			fmt.Fprintln(&b, "source excerpt:")
			for i := max(1, line-2); i <= min(len(lines), line+2); i++ {
				fmt.Fprintf(&b, "  %4d | %s\n", i, lines[i-1])
			}
		}
	}

	frames := interp.calls.Snapshot()
	fmt.Fprintf(&b, "call stack (%d frame(s), outermost first):\n", len(frames))
	for i, f := range frames {
		renderFrame(&b, i, f, interp.cfg.DebugFullReport)
	}

	interp.calls.Clear()
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func renderFrame(b *strings.Builder, depth int, f *callstack.Frame, full bool) {
	indent := strings.Repeat("  ", depth)
	site := "unknown location"
	if f.CallSite != nil {
		site = f.CallSite.String()
	}
	fmt.Fprintf(b, "%s#%d %s (called at %s)\n", indent, depth, f.ActionName, site)

	names := make([]string, 0, len(f.Locals))
	for name := range f.Locals {
		names = append(names, name)
	}
	sort.Strings(names)

	limit := len(names)
	if !full && limit > 8 {
		limit = 8
	}
	for i := 0; i < limit; i++ {
		name := names[i]
		fmt.Fprintf(b, "%s    %s = %s\n", indent, name, f.Locals[name])
	}
	if limit < len(names) {
		fmt.Fprintf(b, "%s    ... %d more\n", indent, len(names)-limit)
	}
}

func debugReportPath(scriptPath string) string {
	trimmed := strings.TrimSuffix(scriptPath, ".wfl")
	return trimmed + "_debug.txt"
}
