package ast

import "wfl/internal/source"

// ExpressionStmt wraps an expression evaluated for its side effect only
// (typically an action call made at statement position).
type ExpressionStmt struct {
	Expression Expression
	source.Location
}

func (e *ExpressionStmt) INode()                {}
func (e *ExpressionStmt) Stmt()                 {}
func (e *ExpressionStmt) Loc() *source.Location { return &e.Location }

// StoreStmt declares a new name in the current scope (spec.md §4.7:
// re-storing in the same scope is an error).
type StoreStmt struct {
	Name  string
	Value Expression
	source.Location
}

func (s *StoreStmt) INode()                {}
func (s *StoreStmt) Stmt()                 {}
func (s *StoreStmt) Loc() *source.Location { return &s.Location }

// AssignStmt rebinds an existing name (`change X to E` / `set X to E`);
// both surface forms carry identical semantics.
type AssignStmt struct {
	Name  string
	Value Expression
	source.Location
}

func (a *AssignStmt) INode()                {}
func (a *AssignStmt) Stmt()                 {}
func (a *AssignStmt) Loc() *source.Location { return &a.Location }

// CheckStmt is the `check if`/`if` conditional. Else may be nil.
type CheckStmt struct {
	Condition Expression
	Then      []Statement
	Else      []Statement
	source.Location
}

func (c *CheckStmt) INode()                {}
func (c *CheckStmt) Stmt()                 {}
func (c *CheckStmt) Loc() *source.Location { return &c.Location }

// CountLoopStmt is `count from A to B [by S]`, binding the implicit
// name "count" on each iteration. Step is nil when not given (default
// 1, or -1 when From > To).
type CountLoopStmt struct {
	From Expression
	To   Expression
	Step Expression
	Body []Statement
	source.Location
}

func (c *CountLoopStmt) INode()                {}
func (c *CountLoopStmt) Stmt()                 {}
func (c *CountLoopStmt) Loc() *source.Location { return &c.Location }

// ForEachStmt is `for each X in L`, binding X to each element of L.
type ForEachStmt struct {
	VarName string
	List    Expression
	Body    []Statement
	source.Location
}

func (f *ForEachStmt) INode()                {}
func (f *ForEachStmt) Stmt()                 {}
func (f *ForEachStmt) Loc() *source.Location { return &f.Location }

// WhileStmt is a pre-test loop: `while C` or `repeat while C`.
type WhileStmt struct {
	Condition Expression
	Body      []Statement
	source.Location
}

func (w *WhileStmt) INode()                {}
func (w *WhileStmt) Stmt()                 {}
func (w *WhileStmt) Loc() *source.Location { return &w.Location }

// RepeatUntilStmt is the `repeat until C` family. PostTest distinguishes
// `repeat until C: … end repeat` (tested at the top, PostTest false)
// from `repeat: … until C end repeat` (tested at the bottom, PostTest
// true) per spec.md §4.7.
type RepeatUntilStmt struct {
	Condition Expression
	Body      []Statement
	PostTest  bool
	source.Location
}

func (r *RepeatUntilStmt) INode()                {}
func (r *RepeatUntilStmt) Stmt()                 {}
func (r *RepeatUntilStmt) Loc() *source.Location { return &r.Location }

// RepeatForeverStmt loops until a `break`/`exit loop`.
type RepeatForeverStmt struct {
	Body []Statement
	source.Location
}

func (r *RepeatForeverStmt) INode()                {}
func (r *RepeatForeverStmt) Stmt()                 {}
func (r *RepeatForeverStmt) Loc() *source.Location { return &r.Location }

// BreakStmt terminates the innermost loop. It represents both surface
// spellings `break` and `exit loop` (see DESIGN.md's Open Question
// decision: both behave identically — innermost loop only).
type BreakStmt struct {
	source.Location
}

func (b *BreakStmt) INode()                {}
func (b *BreakStmt) Stmt()                 {}
func (b *BreakStmt) Loc() *source.Location { return &b.Location }

// SkipStmt advances to the next loop iteration ("continue").
type SkipStmt struct {
	source.Location
}

func (s *SkipStmt) INode()                {}
func (s *SkipStmt) Stmt()                 {}
func (s *SkipStmt) Loc() *source.Location { return &s.Location }

// Param is one slot of an action's parameter list. Raw holds the
// identifier text as written: for `needs P1 and P2` each Param.Raw is a
// single name, but for the space-separated legacy form `needs P1 P2 P3`
// the whole clause is preserved as one Param whose Raw is the
// space-joined text (spec.md §4.3; the interpreter decides how to bind
// it, see internal/interpreter).
type Param struct {
	Raw string
}

// ActionDefStmt constructs a Function value capturing the current
// environment by weak reference (spec.md §4.7) and defines Name in the
// current scope.
type ActionDefStmt struct {
	Name   string
	Params []Param
	Body   []Statement
	source.Location
}

func (a *ActionDefStmt) INode()                {}
func (a *ActionDefStmt) Stmt()                 {}
func (a *ActionDefStmt) Loc() *source.Location { return &a.Location }

// ReturnStmt is `give back E`, valid only inside an action body.
type ReturnStmt struct {
	Value Expression
	source.Location
}

func (r *ReturnStmt) INode()                {}
func (r *ReturnStmt) Stmt()                 {}
func (r *ReturnStmt) Loc() *source.Location { return &r.Location }

// TryStmt executes Body; on a runtime error ErrName is bound to the
// error value and Handler runs. Else runs only when Body raised no
// error.
type TryStmt struct {
	Body    []Statement
	ErrName string
	Handler []Statement
	Else    []Statement
	source.Location
}

func (t *TryStmt) INode()                {}
func (t *TryStmt) Stmt()                 {}
func (t *TryStmt) Loc() *source.Location { return &t.Location }

// DisplayStmt prints its operands concatenated with no separator,
// followed by a newline.
type DisplayStmt struct {
	Operands []Expression
	source.Location
}

func (d *DisplayStmt) INode()                {}
func (d *DisplayStmt) Stmt()                 {}
func (d *DisplayStmt) Loc() *source.Location { return &d.Location }

// OpenFileStmt acquires a file handle, creating the file if missing.
type OpenFileStmt struct {
	Path       Expression
	HandleName string
	source.Location
}

func (o *OpenFileStmt) INode()                {}
func (o *OpenFileStmt) Stmt()                 {}
func (o *OpenFileStmt) Loc() *source.Location { return &o.Location }

// CloseFileStmt releases a previously opened handle.
type CloseFileStmt struct {
	HandleName string
	source.Location
}

func (c *CloseFileStmt) INode()                {}
func (c *CloseFileStmt) Stmt()                 {}
func (c *CloseFileStmt) Loc() *source.Location { return &c.Location }

// WriteFileStmt overwrites a handle's contents (`wait for write content
// E into H`); it is itself a suspension point.
type WriteFileStmt struct {
	Content    Expression
	HandleName string
	source.Location
}

func (w *WriteFileStmt) INode()                {}
func (w *WriteFileStmt) Stmt()                 {}
func (w *WriteFileStmt) Loc() *source.Location { return &w.Location }

// AppendFileStmt appends to a handle's contents (`wait for append
// content E into H`).
type AppendFileStmt struct {
	Content    Expression
	HandleName string
	source.Location
}

func (a *AppendFileStmt) INode()                {}
func (a *AppendFileStmt) Stmt()                 {}
func (a *AppendFileStmt) Loc() *source.Location { return &a.Location }

// ReadFileStmt reads a handle's entire contents into ResultName
// (`wait for read content as V from H`).
type ReadFileStmt struct {
	HandleName string
	ResultName string
	source.Location
}

func (r *ReadFileStmt) INode()                {}
func (r *ReadFileStmt) Stmt()                 {}
func (r *ReadFileStmt) Loc() *source.Location { return &r.Location }

// WaitForStmt sequences one or more asynchronous operations
// (`wait for A and B`): each runs to completion before the next starts
// (spec.md §4.7 — deliberately sequential, not parallel).
type WaitForStmt struct {
	Operations []Statement
	source.Location
}

func (w *WaitForStmt) INode()                {}
func (w *WaitForStmt) Stmt()                 {}
func (w *WaitForStmt) Loc() *source.Location { return &w.Location }

// TriggerStmt fires a named event with arguments for any matching
// OnStmt handlers registered in the interpreter's event table.
type TriggerStmt struct {
	Event     string
	Arguments []Expression
	source.Location
}

func (t *TriggerStmt) INode()                {}
func (t *TriggerStmt) Stmt()                 {}
func (t *TriggerStmt) Loc() *source.Location { return &t.Location }

// OnStmt registers a handler Body for Event; within Body, ParamName is
// bound to the first triggering argument (Null when none is given).
// Further arguments are not bound and no argument count is enforced.
type OnStmt struct {
	Event     string
	ParamName string
	Body      []Statement
	source.Location
}

func (o *OnStmt) INode()                {}
func (o *OnStmt) Stmt()                 {}
func (o *OnStmt) Loc() *source.Location { return &o.Location }

// CreateStmt constructs a named resource (e.g. a database handle) by
// dispatching to a registered stdlib constructor, the statement-level
// counterpart of an action call.
type CreateStmt struct {
	Kind      string
	Name      string
	Arguments []Expression
	source.Location
}

func (c *CreateStmt) INode()                {}
func (c *CreateStmt) Stmt()                 {}
func (c *CreateStmt) Loc() *source.Location { return &c.Location }
