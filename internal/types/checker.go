package types

import (
	"wfl/internal/ast"
	"wfl/internal/report"
	"wfl/internal/source"
)

type varScope struct {
	parent *varScope
	types  map[string]Type
}

// Checker walks one program's AST, assigning an abstract Type to
// every expression and warning on join conflicts and operator
// signature mismatches. It never reports an error — spec.md §4.5
// makes every finding here advisory.
type Checker struct {
	filePath string
	reporter *report.Reporter
	scope    *varScope
}

func New(filePath string, rep *report.Reporter) *Checker {
	return &Checker{filePath: filePath, reporter: rep}
}

// CheckProgram walks prog, reporting every warning found.
func (c *Checker) CheckProgram(prog *ast.Program) {
	c.pushScope()
	c.checkStatements(prog.Statements)
	c.popScope()
}

func (c *Checker) pushScope() {
	c.scope = &varScope{parent: c.scope, types: map[string]Type{}}
}

func (c *Checker) popScope() {
	c.scope = c.scope.parent
}

func (c *Checker) lookup(name string) Type {
	for s := c.scope; s != nil; s = s.parent {
		if t, ok := s.types[name]; ok {
			return t
		}
	}
	return Unknown
}

// bind records name's type in the current scope, joining against any
// binding already visible from an enclosing scope (an assignment to
// an outer variable still narrows/widens its tracked type).
func (c *Checker) bind(name string, t Type, loc *source.Location) {
	existing := c.lookup(name)
	if existing == Unknown {
		c.scope.types[name] = t
		return
	}
	joined, ok := Join(existing, t)
	if !ok {
		c.reporter.Warning(c.filePath, loc, report.TypeCheck, "inconsistent-variable-type",
			"'"+name+"' is assigned both "+existing.String()+" and "+t.String())
	}
	c.scope.types[name] = joined
}

func (c *Checker) checkStatements(stmts []ast.Statement) {
	for _, s := range stmts {
		if s != nil {
			c.checkStatement(s)
		}
	}
}

func (c *Checker) checkStatement(s ast.Statement) {
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		c.infer(n.Expression)
	case *ast.StoreStmt:
		t := c.infer(n.Value)
		c.bind(n.Name, t, n.Loc())
	case *ast.AssignStmt:
		t := c.infer(n.Value)
		c.bind(n.Name, t, n.Loc())
	case *ast.CheckStmt:
		c.infer(n.Condition)
		c.pushScope()
		c.checkStatements(n.Then)
		c.popScope()
		if n.Else != nil {
			c.pushScope()
			c.checkStatements(n.Else)
			c.popScope()
		}
	case *ast.CountLoopStmt:
		c.infer(n.From)
		c.infer(n.To)
		if n.Step != nil {
			c.infer(n.Step)
		}
		c.pushScope()
		c.bind("count", Integer, n.Loc())
		c.checkStatements(n.Body)
		c.popScope()
	case *ast.ForEachStmt:
		c.infer(n.List)
		c.pushScope()
		c.bind(n.VarName, Unknown, n.Loc())
		c.checkStatements(n.Body)
		c.popScope()
	case *ast.WhileStmt:
		c.infer(n.Condition)
		c.pushScope()
		c.checkStatements(n.Body)
		c.popScope()
	case *ast.RepeatUntilStmt:
		if n.Condition != nil {
			c.infer(n.Condition)
		}
		c.pushScope()
		c.checkStatements(n.Body)
		c.popScope()
	case *ast.RepeatForeverStmt:
		c.pushScope()
		c.checkStatements(n.Body)
		c.popScope()
	case *ast.ActionDefStmt:
		c.bind(n.Name, Function, n.Loc())
		c.pushScope()
		for _, p := range n.Params {
			c.scope.types[p.Raw] = Unknown
		}
		c.checkStatements(n.Body)
		c.popScope()
	case *ast.ReturnStmt:
		if n.Value != nil {
			c.infer(n.Value)
		}
	case *ast.TryStmt:
		c.pushScope()
		c.checkStatements(n.Body)
		c.popScope()
		c.pushScope()
		if n.ErrName != "" {
			c.bind(n.ErrName, Text, n.Loc())
		}
		c.checkStatements(n.Handler)
		c.popScope()
		if n.Else != nil {
			c.pushScope()
			c.checkStatements(n.Else)
			c.popScope()
		}
	case *ast.DisplayStmt:
		for _, op := range n.Operands {
			c.infer(op)
		}
	case *ast.OpenFileStmt:
		c.infer(n.Path)
		c.bind(n.HandleName, FileHandle, n.Loc())
	case *ast.WriteFileStmt:
		c.infer(n.Content)
	case *ast.AppendFileStmt:
		c.infer(n.Content)
	case *ast.ReadFileStmt:
		c.bind(n.ResultName, Text, n.Loc())
	case *ast.WaitForStmt:
		for _, op := range n.Operations {
			c.checkStatement(op)
		}
	case *ast.TriggerStmt:
		for _, a := range n.Arguments {
			c.infer(a)
		}
	case *ast.OnStmt:
		c.pushScope()
		if n.ParamName != "" {
			c.bind(n.ParamName, Unknown, n.Loc())
		}
		c.checkStatements(n.Body)
		c.popScope()
	case *ast.CreateStmt:
		for _, a := range n.Arguments {
			c.infer(a)
		}
		c.bind(n.Name, Unknown, n.Loc())
	}
}

// infer assigns an abstract Type to e, warning on any typed-signature
// mismatch it finds along the way.
func (c *Checker) infer(e ast.Expression) Type {
	switch n := e.(type) {
	case *ast.NumberLiteral:
		return Number
	case *ast.IntegerLiteral:
		return Integer
	case *ast.TextLiteral:
		return Text
	case *ast.BoolLiteral:
		return Bool
	case *ast.NullLiteral:
		return Null
	case *ast.VariableRef:
		return c.lookup(n.Name)
	case *ast.BinaryExpr:
		return c.inferBinary(n)
	case *ast.UnaryExpr:
		operand := c.infer(n.Operand)
		if n.Op == ast.OpNot {
			if operand != Bool && operand != Unknown {
				c.reporter.Warning(c.filePath, n.Loc(), report.TypeCheck, "operator-type-mismatch",
					"'not' expects Bool, got "+operand.String())
			}
			return Bool
		}
		if operand != Number && operand != Integer && operand != Unknown {
			c.reporter.Warning(c.filePath, n.Loc(), report.TypeCheck, "operator-type-mismatch",
				"unary minus expects a number, got "+operand.String())
		}
		return operand
	case *ast.ConcatExpr:
		for _, o := range n.Operands {
			c.infer(o)
		}
		return Text
	case *ast.ActionCallExpr:
		for _, a := range n.Arguments {
			c.infer(a)
		}
		return Unknown
	case *ast.IndexExpr:
		c.infer(n.Collection)
		c.infer(n.Index)
		return Unknown
	case *ast.ListExpr:
		for _, el := range n.Elements {
			c.infer(el)
		}
		return List
	case *ast.ObjectExpr:
		for _, v := range n.Values {
			c.infer(v)
		}
		return Object
	case *ast.PatternMatchExpr:
		c.infer(n.Subject)
		c.infer(n.Pattern)
		return Bool
	case *ast.PatternFindExpr:
		c.infer(n.Subject)
		c.infer(n.Pattern)
		return Text
	case *ast.PatternReplaceExpr:
		c.infer(n.Subject)
		c.infer(n.Pattern)
		c.infer(n.Replacement)
		return Text
	default:
		return Unknown
	}
}

func (c *Checker) inferBinary(n *ast.BinaryExpr) Type {
	left := c.infer(n.Left)
	right := c.infer(n.Right)
	switch n.Op {
	case ast.OpPlus, ast.OpMinus, ast.OpTimes, ast.OpDividedBy, ast.OpMod:
		result, ok := getArithmeticResultType(left, right)
		if !ok {
			c.reporter.Warning(c.filePath, n.Loc(), report.TypeCheck, "operator-type-mismatch",
				"'"+string(n.Op)+"' expects numbers, got "+left.String()+" and "+right.String())
		}
		return result
	case ast.OpIsGreaterThan, ast.OpIsLessThan:
		result, ok := getComparisonResultType(left, right)
		if !ok {
			c.reporter.Warning(c.filePath, n.Loc(), report.TypeCheck, "operator-type-mismatch",
				"'"+string(n.Op)+"' expects numbers, got "+left.String()+" and "+right.String())
		}
		return result
	case ast.OpAnd, ast.OpOr:
		result, ok := getLogicalResultType(left, right)
		if !ok {
			c.reporter.Warning(c.filePath, n.Loc(), report.TypeCheck, "operator-type-mismatch",
				"'"+string(n.Op)+"' expects Bool, got "+left.String()+" and "+right.String())
		}
		return result
	case ast.OpIs, ast.OpIsEqualTo:
		return Bool
	default:
		return Unknown
	}
}
