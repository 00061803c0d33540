package parser

import (
	"strconv"

	"wfl/internal/ast"
	"wfl/internal/source"
	"wfl/internal/token"
)

// parseExpression is the full precedence chain, lowest to highest:
// logical (and/or) < comparison (is/is equal to/is greater than/is
// less than) < additive (plus/minus/with) < multiplicative (times/
// divided by/mod) < unary (not/minus) < postfix < primary (spec.md §4.3).
func (p *Parser) parseExpression() ast.Expression {
	return p.parseLogical()
}

// parseExpressionNoAnd starts below the logical level, so a bare `and`
// is never swallowed into the expression — used for each slot of an
// `and`-separated argument list (see parseArgumentList).
func (p *Parser) parseExpressionNoAnd() ast.Expression {
	return p.parseComparison()
}

func (p *Parser) parseLogical() ast.Expression {
	left := p.parseComparison()
	for p.check(token.AND) || p.check(token.OR) {
		opTok := p.advance()
		op := ast.OpAnd
		if opTok.Kind == token.OR {
			op = ast.OpOr
		}
		right := p.parseComparison()
		left = &ast.BinaryExpr{Left: left, Op: op, Right: right, Location: *source.NewLocation(left.Loc().Start, right.Loc().End)}
	}
	return left
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseAdditive()
	for p.check(token.IS) || p.check(token.IS_EQUAL_TO) || p.check(token.IS_GREATER_THAN) || p.check(token.IS_LESS_THAN) {
		opTok := p.advance()
		var op ast.BinaryOp
		switch opTok.Kind {
		case token.IS:
			op = ast.OpIs
		case token.IS_EQUAL_TO:
			op = ast.OpIsEqualTo
		case token.IS_GREATER_THAN:
			op = ast.OpIsGreaterThan
		case token.IS_LESS_THAN:
			op = ast.OpIsLessThan
		}
		negate := false
		if p.check(token.NOT) {
			p.advance()
			negate = true
		}
		right := p.parseAdditive()
		loc := *source.NewLocation(left.Loc().Start, right.Loc().End)
		var expr ast.Expression = &ast.BinaryExpr{Left: left, Op: op, Right: right, Location: loc}
		if negate {
			expr = &ast.UnaryExpr{Op: ast.OpNot, Operand: expr, Location: loc}
		}
		left = expr
	}
	return left
}

// parseAdditive folds a run of consecutive `with` operands into one
// ConcatExpr rather than a chain of binary nodes, since concatenation
// is an n-ary operation (spec.md §3).
func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.check(token.PLUS) || p.check(token.MINUS) || p.check(token.WITH) {
		if p.check(token.WITH) {
			operands := []ast.Expression{left}
			for p.check(token.WITH) {
				p.advance()
				operands = append(operands, p.parseMultiplicative())
			}
			left = &ast.ConcatExpr{Operands: operands, Location: *source.NewLocation(operands[0].Loc().Start, operands[len(operands)-1].Loc().End)}
			continue
		}
		opTok := p.advance()
		op := ast.OpPlus
		if opTok.Kind == token.MINUS {
			op = ast.OpMinus
		}
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Left: left, Op: op, Right: right, Location: *source.NewLocation(left.Loc().Start, right.Loc().End)}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.check(token.TIMES) || p.check(token.DIVIDED_BY) || p.check(token.MOD) {
		opTok := p.advance()
		var op ast.BinaryOp
		switch opTok.Kind {
		case token.TIMES:
			op = ast.OpTimes
		case token.DIVIDED_BY:
			op = ast.OpDividedBy
		case token.MOD:
			op = ast.OpMod
		}
		right := p.parseUnary()
		left = &ast.BinaryExpr{Left: left, Op: op, Right: right, Location: *source.NewLocation(left.Loc().Start, right.Loc().End)}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.check(token.NOT) {
		tok := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Op: ast.OpNot, Operand: operand, Location: *source.NewLocation(&tok.Start, operand.Loc().End)}
	}
	if p.check(token.MINUS) {
		tok := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Op: ast.OpNegate, Operand: operand, Location: *source.NewLocation(&tok.Start, operand.Loc().End)}
	}
	return p.parsePostfix()
}

// parsePostfix handles bracketed indexing (`list[index]`); WFL has no
// other postfix operator.
func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for p.check(token.LBRACKET) {
		start := *expr.Loc().Start
		p.advance()
		idx := p.parseExpression()
		endTok := p.consume(token.RBRACKET, "expected ']' to close the index")
		expr = &ast.IndexExpr{Collection: expr, Index: idx, Location: *source.NewLocation(&start, &endTok.End)}
	}
	return expr
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.peek()
	switch tok.Kind {
	case token.INTEGER:
		p.advance()
		v, _ := strconv.ParseInt(tok.Value, 10, 64)
		return &ast.IntegerLiteral{Value: v, Location: *tok.Loc()}
	case token.FLOAT:
		p.advance()
		v, _ := strconv.ParseFloat(tok.Value, 64)
		return &ast.NumberLiteral{Value: v, Location: *tok.Loc()}
	case token.STRING:
		p.advance()
		return &ast.TextLiteral{Value: tok.Value, Location: *tok.Loc()}
	case token.TRUE:
		p.advance()
		return &ast.BoolLiteral{Value: true, Location: *tok.Loc()}
	case token.FALSE:
		p.advance()
		return &ast.BoolLiteral{Value: false, Location: *tok.Loc()}
	case token.NOTHING:
		p.advance()
		return &ast.NullLiteral{Location: *tok.Loc()}
	case token.COUNT:
		// Inside a count loop, `count` names the loop's current value.
		p.advance()
		return &ast.VariableRef{Name: "count", Location: *tok.Loc()}
	case token.IDENTIFIER:
		return p.parseIdentifierOrCall()
	case token.LPAREN:
		p.advance()
		inner := p.parseExpression()
		p.consume(token.RPAREN, "expected ')' to close the expression")
		return inner
	case token.LBRACKET:
		return p.parseListOrObjectLiteral()
	default:
		p.errorAt(tok, "expected-expression", "expected an expression, found `"+tok.Value+"`")
		p.advance()
		return &ast.NullLiteral{Location: *tok.Loc()}
	}
}

// parseIdentifierOrCall reads a bare name, or — when followed by `with`
// — an action call. Calls to the reserved pattern-matching names
// "match"/"find"/"replace" at their expected arity are sugared directly
// into the dedicated Pattern* expression nodes; any other name, or a
// mismatched arity (e.g. a user-defined action that happens to be named
// "find"), falls back to a plain ActionCallExpr.
func (p *Parser) parseIdentifierOrCall() ast.Expression {
	tok := p.advance()
	if !p.check(token.WITH) {
		return &ast.VariableRef{Name: tok.Value, Location: *tok.Loc()}
	}
	p.advance() // WITH
	args := p.parseArgumentList()
	loc := *source.NewLocation(&tok.Start, args[len(args)-1].Loc().End)

	switch tok.Value {
	case "match":
		if len(args) == 2 {
			return &ast.PatternMatchExpr{Subject: args[0], Pattern: args[1], Location: loc}
		}
	case "find":
		if len(args) == 2 {
			return &ast.PatternFindExpr{Subject: args[0], Pattern: args[1], Location: loc}
		}
	case "replace":
		if len(args) == 3 {
			return &ast.PatternReplaceExpr{Subject: args[0], Pattern: args[1], Replacement: args[2], Location: loc}
		}
	}
	return &ast.ActionCallExpr{Name: tok.Value, Arguments: args, Location: loc}
}
