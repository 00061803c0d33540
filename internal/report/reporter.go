// Package report implements the diagnostic reporter: a source-anchored,
// severity-tagged message sink shared by every stage of the WFL pipeline.
package report

import (
	"fmt"
	"io"
	"strings"

	"wfl/colors"
	"wfl/internal/source"
)

// Severity is one of the three levels spec.md §3 defines for a Diagnostic.
type Severity string

const (
	Error   Severity = "error"
	Warning Severity = "warning"
	Note    Severity = "note"
)

// Phase names the pipeline stage a diagnostic was raised from, used only
// to order diagnostics within a render and to label them for the reader.
type Phase string

const (
	Lexing      Phase = "lexing"
	Parsing     Phase = "parsing"
	Semantic    Phase = "semantic analysis"
	TypeCheck   Phase = "type checking"
	Interpreter Phase = "interpretation"
)

var severityColor = map[Severity]colors.COLOR{
	Error:   colors.BOLD_RED,
	Warning: colors.YELLOW,
	Note:    colors.BLUE,
}

var severityLabel = map[Severity]string{
	Error:   "Error",
	Warning: "Warning",
	Note:    "Note",
}

var phaseOrder = map[Phase]int{
	Lexing:      0,
	Parsing:     1,
	Semantic:    2,
	TypeCheck:   3,
	Interpreter: 4,
}

// RelatedSpan attaches a secondary location to a diagnostic, e.g. pointing
// at the variable's original definition from a "shadowed" warning.
type RelatedSpan struct {
	FilePath string
	Location *source.Location
	Message  string
}

// Diagnostic is one reported message (spec.md §3).
type Diagnostic struct {
	Severity    Severity
	Kind        string // short machine-stable tag, e.g. "unused-variable"
	FilePath    string
	Location    *source.Location
	Phase       Phase
	Message     string
	Related     []RelatedSpan
	SuggestedFix string
	Help        string
}

// isSynthetic reports whether this diagnostic sits at line 0, column 0 —
// the convention for synthetic, driver-filterable noise (spec.md §4.1).
func (d *Diagnostic) isSynthetic() bool {
	return d.Location == nil || (d.Location.Start.Line == 0 && d.Location.Start.Column == 0)
}

// Reporter collects diagnostics across every pipeline stage and renders
// them in source-position order, stages concatenated in pipeline order.
type Reporter struct {
	diagnostics []*Diagnostic
	sources     *source.DB
}

func New() *Reporter {
	return &Reporter{sources: source.NewDB()}
}

// report appends a diagnostic. It never fails: a synthetic diagnostic
// starting at line 0, column 0 is kept as-is (Render filters it out), and
// any other bad location is clamped to line/column 1 rather than rejected.
func (r *Reporter) report(d *Diagnostic) *Diagnostic {
	if d.Location == nil {
		d.Location = source.NewLocation(&source.Position{Line: 1, Column: 1}, &source.Position{Line: 1, Column: 1})
	}
	if d.Location.Start.Line == 0 && d.Location.Start.Column == 0 {
		r.diagnostics = append(r.diagnostics, d)
		return d
	}
	if d.Location.Start.Line < 1 {
		d.Location.Start.Line = 1
	}
	if d.Location.Start.Column < 1 {
		d.Location.Start.Column = 1
	}
	if d.Location.End.Line < 1 {
		d.Location.End.Line = 1
	}
	if d.Location.End.Column < 1 {
		d.Location.End.Column = 1
	}
	if d.FilePath != "" {
		_ = r.sources.Load(d.FilePath)
	}
	r.diagnostics = append(r.diagnostics, d)
	return d
}

func (r *Reporter) Error(filePath string, loc *source.Location, phase Phase, kind, msg string) *Diagnostic {
	return r.report(&Diagnostic{Severity: Error, Kind: kind, FilePath: filePath, Location: loc, Phase: phase, Message: msg})
}

func (r *Reporter) Warning(filePath string, loc *source.Location, phase Phase, kind, msg string) *Diagnostic {
	return r.report(&Diagnostic{Severity: Warning, Kind: kind, FilePath: filePath, Location: loc, Phase: phase, Message: msg})
}

func (r *Reporter) Note(filePath string, loc *source.Location, phase Phase, kind, msg string) *Diagnostic {
	return r.report(&Diagnostic{Severity: Note, Kind: kind, FilePath: filePath, Location: loc, Phase: phase, Message: msg})
}

// WithFix attaches a suggested fix to a reported diagnostic, chainable
// off the Error/Warning/Note call that produced it.
func (d *Diagnostic) WithFix(fix string) *Diagnostic {
	d.SuggestedFix = fix
	return d
}

func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = help
	return d
}

func (d *Diagnostic) WithRelated(filePath string, loc *source.Location, msg string) *Diagnostic {
	d.Related = append(d.Related, RelatedSpan{FilePath: filePath, Location: loc, Message: msg})
	return d
}

// HasErrors reports whether any diagnostic of severity Error exists.
func (r *Reporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

func (r *Reporter) HasWarnings() bool {
	for _, d := range r.diagnostics {
		if d.Severity == Warning {
			return true
		}
	}
	return false
}

func (r *Reporter) Diagnostics() []*Diagnostic {
	return r.diagnostics
}

// Render writes every diagnostic to w in source-position order within
// each stage, stages concatenated in pipeline order. Synthetic
// (line 0, column 0) diagnostics are excluded — the driver can still
// reach them via Diagnostics() if it wants the raw noise.
func (r *Reporter) Render(w io.Writer) {
	ordered := make([]*Diagnostic, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		if !d.isSynthetic() {
			ordered = append(ordered, d)
		}
	}
	sortDiagnostics(ordered)

	for _, d := range ordered {
		r.renderOne(w, d)
	}
	r.renderSummary(w, ordered)
}

func sortDiagnostics(ds []*Diagnostic) {
	// stable insertion sort: few diagnostics per run, and stability keeps
	// same-position reports in report order.
	for i := 1; i < len(ds); i++ {
		j := i
		for j > 0 && lessDiagnostic(ds[j], ds[j-1]) {
			ds[j], ds[j-1] = ds[j-1], ds[j]
			j--
		}
	}
}

func lessDiagnostic(a, b *Diagnostic) bool {
	if phaseOrder[a.Phase] != phaseOrder[b.Phase] {
		return phaseOrder[a.Phase] < phaseOrder[b.Phase]
	}
	if a.FilePath != b.FilePath {
		return a.FilePath < b.FilePath
	}
	return a.Location.Start.Before(*b.Location.Start)
}

func (r *Reporter) renderOne(w io.Writer, d *Diagnostic) {
	color := severityColor[d.Severity]
	label := fmt.Sprintf("[%s while %s]: ", severityLabel[d.Severity], d.Phase)

	color.Fprint(w, label)
	color.Fprintln(w, d.Message)

	loc := d.Location
	numlen := len(fmt.Sprint(loc.Start.Line))
	colors.GREY.Fprintf(w, "%s> [%s:%d:%d]\n", strings.Repeat("-", numlen+2), d.FilePath, loc.Start.Line, loc.Start.Column)

	snippet, underline := r.snippet(d)
	fmt.Fprint(w, snippet)
	color.Fprintln(w, underline)

	if d.Help != "" {
		colors.GREY.Fprintf(w, "  help: %s\n", d.Help)
	}
	if d.SuggestedFix != "" {
		colors.GREEN.Fprintf(w, "  suggestion: %s\n", d.SuggestedFix)
	}
	for _, rel := range d.Related {
		colors.GREY.Fprintf(w, "  also see [%s:%d:%d]: %s\n", rel.FilePath, rel.Location.Start.Line, rel.Location.Start.Column, rel.Message)
	}
}

// snippet renders the offending line with a caret/tilde underline under
// the diagnostic's span.
func (r *Reporter) snippet(d *Diagnostic) (string, string) {
	line := r.sources.Line(d.FilePath, d.Location.Start.Line)

	hLen := 0
	if d.Location.Start.Line == d.Location.End.Line {
		hLen = d.Location.End.Column - d.Location.Start.Column - 1
	} else if len(line) > 2 {
		hLen = len(line) - 2
	}
	if hLen < 0 {
		hLen = 0
	}

	bar := fmt.Sprintf("%s |", strings.Repeat(" ", len(fmt.Sprint(d.Location.Start.Line))))
	lineNumber := fmt.Sprintf("%d | ", d.Location.Start.Line)
	padding := strings.Repeat(" ", max(0, (d.Location.Start.Column-1)+len(lineNumber)-len(bar)))

	snippet := colors.GREY.Sprint(bar) + "\n" + colors.GREY.Sprint(lineNumber) + line + "\n" + colors.GREY.Sprint(bar) + "\n"
	underline := padding + "^" + strings.Repeat("~", hLen)
	return snippet, underline
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (r *Reporter) renderSummary(w io.Writer, ordered []*Diagnostic) {
	var warnings, errs int
	for _, d := range ordered {
		switch d.Severity {
		case Warning:
			warnings++
		case Error:
			errs++
		}
	}

	summaryColor := colors.GREEN
	if errs > 0 {
		summaryColor = colors.RED
	}

	summaryColor.Fprint(w, "------------- ")
	if errs > 0 {
		summaryColor.Fprint(w, "failed with ")
	} else {
		summaryColor.Fprint(w, "passed ")
	}
	if warnings > 0 {
		summaryColor.Fprintf(w, "(%s) ", plural(warnings, "warning", "warnings"))
	}
	if errs > 0 {
		summaryColor.Fprint(w, plural(errs, "error", "errors"))
	}
	summaryColor.Fprintln(w, " -------------")
}

func plural(n int, singular, pl string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pl)
}
