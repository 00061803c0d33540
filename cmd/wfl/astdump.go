package main

import (
	"fmt"
	"os"
	"strings"

	"wfl/internal/ast"
)

// writeASTDump renders prog as an indented tree to <script minus
// .wfl>.ast.txt. It is a debugging aid, not a re-parsable format: each
// node prints its kind and the fields a reader needs to recognise it,
// not a full field-by-field reflection dump.
func writeASTDump(scriptPath string, prog *ast.Program) (int, error) {
	var b strings.Builder
	dumpStatements(&b, 0, prog.Statements)
	path := dumpPath(scriptPath, ".ast.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return 3, err
	}
	return 0, nil
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func dumpStatements(b *strings.Builder, depth int, stmts []ast.Statement) {
	for _, s := range stmts {
		dumpStmt(b, depth, s)
	}
}

func dumpStmt(b *strings.Builder, depth int, s ast.Statement) {
	indent(b, depth)
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		fmt.Fprintln(b, "ExpressionStmt")
		dumpExpr(b, depth+1, n.Expression)
	case *ast.StoreStmt:
		fmt.Fprintf(b, "StoreStmt %s\n", n.Name)
		dumpExpr(b, depth+1, n.Value)
	case *ast.AssignStmt:
		fmt.Fprintf(b, "AssignStmt %s\n", n.Name)
		dumpExpr(b, depth+1, n.Value)
	case *ast.CheckStmt:
		fmt.Fprintln(b, "CheckStmt")
		dumpExpr(b, depth+1, n.Condition)
		indent(b, depth+1)
		fmt.Fprintln(b, "then:")
		dumpStatements(b, depth+2, n.Then)
		if len(n.Else) > 0 {
			indent(b, depth+1)
			fmt.Fprintln(b, "otherwise:")
			dumpStatements(b, depth+2, n.Else)
		}
	case *ast.CountLoopStmt:
		fmt.Fprintln(b, "CountLoopStmt")
		dumpExpr(b, depth+1, n.From)
		dumpExpr(b, depth+1, n.To)
		if n.Step != nil {
			dumpExpr(b, depth+1, n.Step)
		}
		dumpStatements(b, depth+1, n.Body)
	case *ast.ForEachStmt:
		fmt.Fprintf(b, "ForEachStmt var=%s\n", n.VarName)
		dumpExpr(b, depth+1, n.List)
		dumpStatements(b, depth+1, n.Body)
	case *ast.WhileStmt:
		fmt.Fprintln(b, "WhileStmt")
		dumpExpr(b, depth+1, n.Condition)
		dumpStatements(b, depth+1, n.Body)
	case *ast.RepeatUntilStmt:
		fmt.Fprintf(b, "RepeatUntilStmt postTest=%v\n", n.PostTest)
		dumpExpr(b, depth+1, n.Condition)
		dumpStatements(b, depth+1, n.Body)
	case *ast.RepeatForeverStmt:
		fmt.Fprintln(b, "RepeatForeverStmt")
		dumpStatements(b, depth+1, n.Body)
	case *ast.BreakStmt:
		fmt.Fprintln(b, "BreakStmt")
	case *ast.SkipStmt:
		fmt.Fprintln(b, "SkipStmt")
	case *ast.ActionDefStmt:
		names := make([]string, len(n.Params))
		for i, p := range n.Params {
			names[i] = p.Raw
		}
		fmt.Fprintf(b, "ActionDefStmt %s(%s)\n", n.Name, strings.Join(names, ", "))
		dumpStatements(b, depth+1, n.Body)
	case *ast.ReturnStmt:
		fmt.Fprintln(b, "ReturnStmt")
		if n.Value != nil {
			dumpExpr(b, depth+1, n.Value)
		}
	case *ast.TryStmt:
		fmt.Fprintf(b, "TryStmt errName=%s\n", n.ErrName)
		dumpStatements(b, depth+1, n.Body)
		indent(b, depth+1)
		fmt.Fprintln(b, "when:")
		dumpStatements(b, depth+2, n.Handler)
		if len(n.Else) > 0 {
			indent(b, depth+1)
			fmt.Fprintln(b, "otherwise:")
			dumpStatements(b, depth+2, n.Else)
		}
	case *ast.DisplayStmt:
		fmt.Fprintln(b, "DisplayStmt")
		for _, op := range n.Operands {
			dumpExpr(b, depth+1, op)
		}
	case *ast.OpenFileStmt:
		fmt.Fprintf(b, "OpenFileStmt as=%s\n", n.HandleName)
		dumpExpr(b, depth+1, n.Path)
	case *ast.CloseFileStmt:
		fmt.Fprintf(b, "CloseFileStmt %s\n", n.HandleName)
	case *ast.WriteFileStmt:
		fmt.Fprintf(b, "WriteFileStmt into=%s\n", n.HandleName)
		dumpExpr(b, depth+1, n.Content)
	case *ast.AppendFileStmt:
		fmt.Fprintf(b, "AppendFileStmt into=%s\n", n.HandleName)
		dumpExpr(b, depth+1, n.Content)
	case *ast.ReadFileStmt:
		fmt.Fprintf(b, "ReadFileStmt from=%s as=%s\n", n.HandleName, n.ResultName)
	case *ast.WaitForStmt:
		fmt.Fprintln(b, "WaitForStmt")
		dumpStatements(b, depth+1, n.Operations)
	case *ast.TriggerStmt:
		fmt.Fprintf(b, "TriggerStmt %s\n", n.Event)
		for _, a := range n.Arguments {
			dumpExpr(b, depth+1, a)
		}
	case *ast.OnStmt:
		fmt.Fprintf(b, "OnStmt %s as %s\n", n.Event, n.ParamName)
		dumpStatements(b, depth+1, n.Body)
	case *ast.CreateStmt:
		fmt.Fprintf(b, "CreateStmt %s called %s\n", n.Kind, n.Name)
		for _, a := range n.Arguments {
			dumpExpr(b, depth+1, a)
		}
	default:
		fmt.Fprintf(b, "%T\n", n)
	}
}

func dumpExpr(b *strings.Builder, depth int, e ast.Expression) {
	indent(b, depth)
	switch n := e.(type) {
	case *ast.NumberLiteral:
		fmt.Fprintf(b, "NumberLiteral %v\n", n.Value)
	case *ast.IntegerLiteral:
		fmt.Fprintf(b, "IntegerLiteral %v\n", n.Value)
	case *ast.TextLiteral:
		fmt.Fprintf(b, "TextLiteral %q\n", n.Value)
	case *ast.BoolLiteral:
		fmt.Fprintf(b, "BoolLiteral %v\n", n.Value)
	case *ast.NullLiteral:
		fmt.Fprintln(b, "NullLiteral")
	case *ast.VariableRef:
		fmt.Fprintf(b, "VariableRef %s\n", n.Name)
	case *ast.BinaryExpr:
		fmt.Fprintf(b, "BinaryExpr %s\n", n.Op)
		dumpExpr(b, depth+1, n.Left)
		dumpExpr(b, depth+1, n.Right)
	case *ast.UnaryExpr:
		fmt.Fprintf(b, "UnaryExpr %s\n", n.Op)
		dumpExpr(b, depth+1, n.Operand)
	case *ast.ConcatExpr:
		fmt.Fprintln(b, "ConcatExpr")
		for _, op := range n.Operands {
			dumpExpr(b, depth+1, op)
		}
	case *ast.ActionCallExpr:
		fmt.Fprintf(b, "ActionCallExpr %s\n", n.Name)
		for _, a := range n.Arguments {
			dumpExpr(b, depth+1, a)
		}
	case *ast.IndexExpr:
		fmt.Fprintln(b, "IndexExpr")
		dumpExpr(b, depth+1, n.Collection)
		dumpExpr(b, depth+1, n.Index)
	case *ast.ListExpr:
		fmt.Fprintln(b, "ListExpr")
		for _, el := range n.Elements {
			dumpExpr(b, depth+1, el)
		}
	case *ast.ObjectExpr:
		fmt.Fprintln(b, "ObjectExpr")
		for _, k := range n.Keys {
			indent(b, depth+1)
			fmt.Fprintf(b, "key %s:\n", k)
		}
	case *ast.PatternMatchExpr:
		fmt.Fprintln(b, "PatternMatchExpr")
		dumpExpr(b, depth+1, n.Subject)
		dumpExpr(b, depth+1, n.Pattern)
	case *ast.PatternFindExpr:
		fmt.Fprintln(b, "PatternFindExpr")
		dumpExpr(b, depth+1, n.Subject)
		dumpExpr(b, depth+1, n.Pattern)
	case *ast.PatternReplaceExpr:
		fmt.Fprintln(b, "PatternReplaceExpr")
		dumpExpr(b, depth+1, n.Subject)
		dumpExpr(b, depth+1, n.Pattern)
		dumpExpr(b, depth+1, n.Replacement)
	default:
		fmt.Fprintf(b, "%T\n", n)
	}
}
