// Package semantic performs a single post-order walk over a parsed
// program, reporting unused names, shadowing, unreachable statements,
// and inconsistent return paths. Every finding is advisory: nothing
// here blocks interpretation (spec.md §4.4).
package semantic

import (
	"wfl/internal/ast"
	"wfl/internal/report"
	"wfl/internal/source"
)

type declInfo struct {
	used bool
	loc  *source.Location
	kind string // "variable", "parameter", or "action"
}

type scope struct {
	parent   *scope
	declared map[string]*declInfo
}

// Analyzer walks one program's AST, emitting warnings through reporter.
// Scopes nest lexically — one per block body — mirroring the
// interpreter's own Environment chain (internal/value) so a "shadowed"
// warning here means the interpreter really would shadow too.
type Analyzer struct {
	filePath string
	reporter *report.Reporter
	scope    *scope
}

func New(filePath string, rep *report.Reporter) *Analyzer {
	return &Analyzer{filePath: filePath, reporter: rep}
}

// Analyze walks prog and reports every warning found.
func (a *Analyzer) Analyze(prog *ast.Program) {
	a.pushScope()
	a.walkStatements(prog.Statements)
	a.popScope()
}

func (a *Analyzer) pushScope() {
	a.scope = &scope{parent: a.scope, declared: map[string]*declInfo{}}
}

func (a *Analyzer) popScope() {
	for name, info := range a.scope.declared {
		if !info.used {
			a.reporter.Warning(a.filePath, info.loc, report.Semantic, "unused-"+info.kind, "'"+name+"' is never used")
		}
	}
	a.scope = a.scope.parent
}

// declare records a user-written binding, warning if it shadows one
// from an enclosing scope.
func (a *Analyzer) declare(name, kind string, loc *source.Location) {
	if encl, ok := a.lookupEnclosing(name); ok {
		a.reporter.Warning(a.filePath, loc, report.Semantic, "shadowed-name", "'"+name+"' shadows an outer "+encl.kind)
	}
	a.scope.declared[name] = &declInfo{loc: loc, kind: kind}
}

// declareImplicit records a framework-provided binding (the count loop's
// implicit "count") that is never itself flagged unused.
func (a *Analyzer) declareImplicit(name, kind string, loc *source.Location) {
	a.scope.declared[name] = &declInfo{loc: loc, kind: kind, used: true}
}

func (a *Analyzer) lookupEnclosing(name string) (*declInfo, bool) {
	for s := a.scope.parent; s != nil; s = s.parent {
		if d, ok := s.declared[name]; ok {
			return d, true
		}
	}
	return nil, false
}

func (a *Analyzer) use(name string) {
	for s := a.scope; s != nil; s = s.parent {
		if d, ok := s.declared[name]; ok {
			d.used = true
			return
		}
	}
}

// walkStatements walks a block's statements in order, warning once a
// terminator (return/break/skip) is followed by anything else.
func (a *Analyzer) walkStatements(stmts []ast.Statement) {
	terminated := false
	for _, s := range stmts {
		if s == nil {
			continue
		}
		if terminated {
			a.reporter.Warning(a.filePath, s.Loc(), report.Semantic, "unreachable-statement", "this statement is unreachable")
		}
		a.walkStatement(s)
		if isTerminator(s) {
			terminated = true
		}
	}
}

func isTerminator(s ast.Statement) bool {
	switch s.(type) {
	case *ast.ReturnStmt, *ast.BreakStmt, *ast.SkipStmt:
		return true
	default:
		return false
	}
}

// allPathsReturn decides whether every execution path through stmts
// ends in a ReturnStmt — conservative: only CheckStmt (both arms) and
// TryStmt (all arms) recurse, everything else (loops especially, since
// a break can exit without returning) counts as "does not return".
func allPathsReturn(stmts []ast.Statement) bool {
	if len(stmts) == 0 {
		return false
	}
	switch n := stmts[len(stmts)-1].(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.CheckStmt:
		return len(n.Else) > 0 && allPathsReturn(n.Then) && allPathsReturn(n.Else)
	case *ast.TryStmt:
		elseOK := len(n.Else) == 0 || allPathsReturn(n.Else)
		return allPathsReturn(n.Body) && allPathsReturn(n.Handler) && elseOK
	default:
		return false
	}
}

// containsReturn reports whether a ReturnStmt appears anywhere in
// stmts, not crossing into a nested ActionDefStmt (a separate
// function's return paths are its own concern).
func containsReturn(stmts []ast.Statement) bool {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.ReturnStmt:
			return true
		case *ast.CheckStmt:
			if containsReturn(n.Then) || containsReturn(n.Else) {
				return true
			}
		case *ast.CountLoopStmt:
			if containsReturn(n.Body) {
				return true
			}
		case *ast.ForEachStmt:
			if containsReturn(n.Body) {
				return true
			}
		case *ast.WhileStmt:
			if containsReturn(n.Body) {
				return true
			}
		case *ast.RepeatUntilStmt:
			if containsReturn(n.Body) {
				return true
			}
		case *ast.RepeatForeverStmt:
			if containsReturn(n.Body) {
				return true
			}
		case *ast.TryStmt:
			if containsReturn(n.Body) || containsReturn(n.Handler) || containsReturn(n.Else) {
				return true
			}
		}
	}
	return false
}
