// Package ast defines the syntax tree produced by the parser: two node
// families, Statement and Expression, each node carrying the source
// span needed by later diagnostics and debug reports (spec.md §3).
package ast

import "wfl/internal/source"

// Node is implemented by every tree element.
type Node interface {
	INode()
	Loc() *source.Location
}

// Statement is a node evaluated for effect; it produces no value.
type Statement interface {
	Node
	Stmt()
}

// Expression is a node evaluated to produce a Value.
type Expression interface {
	Node
	Expr()
}

// Program is the root of a parsed file: a flat sequence of top-level
// statements.
type Program struct {
	Statements []Statement
	source.Location
}

func (p *Program) INode()                {}
func (p *Program) Loc() *source.Location { return &p.Location }
