package ast

import (
	"testing"

	"wfl/internal/source"
)

func span() source.Location {
	start := source.Position{Line: 1, Column: 1}
	end := source.Position{Line: 1, Column: 2}
	return *source.NewLocation(&start, &end)
}

func TestStatementNodesImplementStatement(t *testing.T) {
	var stmts []Statement = []Statement{
		&StoreStmt{Name: "x", Value: &IntegerLiteral{Value: 1}, Location: span()},
		&AssignStmt{Name: "x", Value: &IntegerLiteral{Value: 2}, Location: span()},
		&CheckStmt{Condition: &BoolLiteral{Value: true}, Location: span()},
		&CountLoopStmt{Location: span()},
		&ForEachStmt{Location: span()},
		&WhileStmt{Location: span()},
		&RepeatUntilStmt{Location: span()},
		&RepeatForeverStmt{Location: span()},
		&BreakStmt{Location: span()},
		&SkipStmt{Location: span()},
		&ActionDefStmt{Location: span()},
		&ReturnStmt{Location: span()},
		&TryStmt{Location: span()},
		&DisplayStmt{Location: span()},
		&OpenFileStmt{Location: span()},
		&CloseFileStmt{Location: span()},
		&WriteFileStmt{Location: span()},
		&AppendFileStmt{Location: span()},
		&ReadFileStmt{Location: span()},
		&WaitForStmt{Location: span()},
		&TriggerStmt{Location: span()},
		&OnStmt{Location: span()},
		&CreateStmt{Location: span()},
		&ExpressionStmt{Location: span()},
	}
	for i, s := range stmts {
		if s.Loc() == nil {
			t.Errorf("statement %d: Loc() returned nil", i)
		}
	}
}

func TestExpressionNodesImplementExpression(t *testing.T) {
	var exprs []Expression = []Expression{
		&NumberLiteral{Location: span()},
		&IntegerLiteral{Location: span()},
		&TextLiteral{Location: span()},
		&BoolLiteral{Location: span()},
		&NullLiteral{Location: span()},
		&VariableRef{Location: span()},
		&BinaryExpr{Location: span()},
		&UnaryExpr{Location: span()},
		&ConcatExpr{Location: span()},
		&ActionCallExpr{Location: span()},
		&IndexExpr{Location: span()},
		&ListExpr{Location: span()},
		&ObjectExpr{Location: span()},
		&PatternMatchExpr{Location: span()},
		&PatternFindExpr{Location: span()},
		&PatternReplaceExpr{Location: span()},
	}
	for i, e := range exprs {
		if e.Loc() == nil {
			t.Errorf("expression %d: Loc() returned nil", i)
		}
	}
}

func TestProgramLoc(t *testing.T) {
	p := &Program{Statements: nil, Location: span()}
	if p.Loc().Start.Line != 1 {
		t.Errorf("got %v", p.Loc())
	}
}
