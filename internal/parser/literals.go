package parser

import (
	"wfl/internal/ast"
	"wfl/internal/source"
	"wfl/internal/token"
)

// parseListOrObjectLiteral disambiguates on what follows the opening
// bracket: an identifier or string immediately followed by ':' starts
// an object entry, anything else starts a list — there is no separate
// delimiter for the two, since WFL has no brace tokens.
func (p *Parser) parseListOrObjectLiteral() ast.Expression {
	start := p.peek().Start
	p.advance() // LBRACKET
	if p.check(token.RBRACKET) {
		endTok := p.advance()
		return &ast.ListExpr{Location: *source.NewLocation(&start, &endTok.End)}
	}
	if p.looksLikeObjectEntry() {
		return p.parseObjectLiteralBody(start)
	}
	return p.parseListLiteralBody(start)
}

func (p *Parser) looksLikeObjectEntry() bool {
	if !p.check(token.IDENTIFIER) && !p.check(token.STRING) {
		return false
	}
	return p.peekAt(1).Kind == token.COLON
}

func (p *Parser) parseObjectLiteralBody(start source.Position) ast.Expression {
	var keys []string
	var values []ast.Expression
	for {
		keyTok := p.advance() // IDENTIFIER or STRING
		keys = append(keys, keyTok.Value)
		p.consume(token.COLON, "expected ':' after object key")
		values = append(values, p.parseExpressionNoAnd())
		if !p.check(token.COMMA) {
			break
		}
		p.advance()
	}
	endTok := p.consume(token.RBRACKET, "expected ']' to close the object")
	return &ast.ObjectExpr{Keys: keys, Values: values, Location: *source.NewLocation(&start, &endTok.End)}
}

func (p *Parser) parseListLiteralBody(start source.Position) ast.Expression {
	elems := []ast.Expression{p.parseExpressionNoAnd()}
	for p.check(token.COMMA) {
		p.advance()
		elems = append(elems, p.parseExpressionNoAnd())
	}
	endTok := p.consume(token.RBRACKET, "expected ']' to close the list")
	return &ast.ListExpr{Elements: elems, Location: *source.NewLocation(&start, &endTok.End)}
}
