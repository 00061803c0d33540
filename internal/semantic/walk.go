package semantic

import (
	"strings"

	"wfl/internal/ast"
	"wfl/internal/report"
)

func (a *Analyzer) walkStatement(s ast.Statement) {
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		a.walkExpression(n.Expression)
	case *ast.StoreStmt:
		a.walkExpression(n.Value)
		a.declare(n.Name, "variable", n.Loc())
	case *ast.AssignStmt:
		a.walkExpression(n.Value)
		a.use(n.Name)
	case *ast.CheckStmt:
		a.walkExpression(n.Condition)
		a.pushScope()
		a.walkStatements(n.Then)
		a.popScope()
		if n.Else != nil {
			a.pushScope()
			a.walkStatements(n.Else)
			a.popScope()
		}
	case *ast.CountLoopStmt:
		a.walkExpression(n.From)
		a.walkExpression(n.To)
		if n.Step != nil {
			a.walkExpression(n.Step)
		}
		a.pushScope()
		a.declareImplicit("count", "variable", n.Loc())
		a.walkStatements(n.Body)
		a.popScope()
	case *ast.ForEachStmt:
		a.walkExpression(n.List)
		a.pushScope()
		a.declare(n.VarName, "variable", n.Loc())
		a.walkStatements(n.Body)
		a.popScope()
	case *ast.WhileStmt:
		a.walkExpression(n.Condition)
		a.pushScope()
		a.walkStatements(n.Body)
		a.popScope()
	case *ast.RepeatUntilStmt:
		if n.Condition != nil {
			a.walkExpression(n.Condition)
		}
		a.pushScope()
		a.walkStatements(n.Body)
		a.popScope()
	case *ast.RepeatForeverStmt:
		a.pushScope()
		a.walkStatements(n.Body)
		a.popScope()
	case *ast.BreakStmt, *ast.SkipStmt:
		// nothing to track
	case *ast.ActionDefStmt:
		a.walkActionDef(n)
	case *ast.ReturnStmt:
		if n.Value != nil {
			a.walkExpression(n.Value)
		}
	case *ast.TryStmt:
		a.pushScope()
		a.walkStatements(n.Body)
		a.popScope()
		a.pushScope()
		if n.ErrName != "" {
			a.declare(n.ErrName, "variable", n.Loc())
		}
		a.walkStatements(n.Handler)
		a.popScope()
		if n.Else != nil {
			a.pushScope()
			a.walkStatements(n.Else)
			a.popScope()
		}
	case *ast.DisplayStmt:
		for _, op := range n.Operands {
			a.walkExpression(op)
		}
	case *ast.OpenFileStmt:
		a.walkExpression(n.Path)
		a.declare(n.HandleName, "variable", n.Loc())
	case *ast.CloseFileStmt:
		a.use(n.HandleName)
	case *ast.WriteFileStmt:
		a.walkExpression(n.Content)
		a.use(n.HandleName)
	case *ast.AppendFileStmt:
		a.walkExpression(n.Content)
		a.use(n.HandleName)
	case *ast.ReadFileStmt:
		a.use(n.HandleName)
		a.declare(n.ResultName, "variable", n.Loc())
	case *ast.WaitForStmt:
		for _, op := range n.Operations {
			a.walkStatement(op)
		}
	case *ast.TriggerStmt:
		for _, arg := range n.Arguments {
			a.walkExpression(arg)
		}
	case *ast.OnStmt:
		a.pushScope()
		if n.ParamName != "" {
			a.declare(n.ParamName, "parameter", n.Loc())
		}
		a.walkStatements(n.Body)
		a.popScope()
	case *ast.CreateStmt:
		for _, arg := range n.Arguments {
			a.walkExpression(arg)
		}
		a.declare(n.Name, "variable", n.Loc())
	}
}

// walkActionDef declares the action itself in the enclosing scope, then
// its parameters (splitting a legacy space-joined Param into one binding
// per word; the interpreter binds per word when a call passes zero or one
// argument, and binds the joined name when it passes more) in a fresh
// scope around the body.
func (a *Analyzer) walkActionDef(n *ast.ActionDefStmt) {
	a.declare(n.Name, "action", n.Loc())
	a.pushScope()
	for _, param := range n.Params {
		for _, name := range strings.Fields(param.Raw) {
			a.declare(name, "parameter", n.Loc())
		}
	}
	a.walkStatements(n.Body)
	if containsReturn(n.Body) && !allPathsReturn(n.Body) {
		a.reporter.Warning(a.filePath, n.Loc(), report.Semantic, "inconsistent-return-paths",
			"action '"+n.Name+"' returns a value on some paths but not all")
	}
	a.popScope()
}

func (a *Analyzer) walkExpression(e ast.Expression) {
	switch n := e.(type) {
	case *ast.VariableRef:
		a.use(n.Name)
	case *ast.BinaryExpr:
		a.walkExpression(n.Left)
		a.walkExpression(n.Right)
	case *ast.UnaryExpr:
		a.walkExpression(n.Operand)
	case *ast.ConcatExpr:
		for _, o := range n.Operands {
			a.walkExpression(o)
		}
	case *ast.ActionCallExpr:
		a.use(n.Name)
		for _, arg := range n.Arguments {
			a.walkExpression(arg)
		}
	case *ast.IndexExpr:
		a.walkExpression(n.Collection)
		a.walkExpression(n.Index)
	case *ast.ListExpr:
		for _, el := range n.Elements {
			a.walkExpression(el)
		}
	case *ast.ObjectExpr:
		for _, v := range n.Values {
			a.walkExpression(v)
		}
	case *ast.PatternMatchExpr:
		a.walkExpression(n.Subject)
		a.walkExpression(n.Pattern)
	case *ast.PatternFindExpr:
		a.walkExpression(n.Subject)
		a.walkExpression(n.Pattern)
	case *ast.PatternReplaceExpr:
		a.walkExpression(n.Subject)
		a.walkExpression(n.Pattern)
		a.walkExpression(n.Replacement)
	}
}
