package parser

import (
	"strings"

	"wfl/internal/ast"
	"wfl/internal/source"
	"wfl/internal/token"
)

// parseStatement dispatches on the current token's kind to the
// production that owns it (spec.md §4.3).
func (p *Parser) parseStatement() ast.Statement {
	switch p.peek().Kind {
	case token.STORE:
		return p.parseStore()
	case token.CHANGE, token.SET:
		return p.parseAssign()
	case token.CHECK, token.IF:
		return p.parseCheck()
	case token.COUNT:
		return p.parseCountLoop()
	case token.FOR_EACH:
		return p.parseForEach()
	case token.WHILE, token.REPEAT_WHILE:
		return p.parseWhile()
	case token.REPEAT_UNTIL:
		return p.parseRepeatUntilPre()
	case token.REPEAT_FOREVER:
		return p.parseRepeatForever()
	case token.REPEAT:
		return p.parseBareRepeat()
	case token.BREAK, token.EXIT_LOOP:
		tok := p.advance()
		return &ast.BreakStmt{Location: *tok.Loc()}
	case token.SKIP:
		tok := p.advance()
		return &ast.SkipStmt{Location: *tok.Loc()}
	case token.DEFINE_ACTION:
		return p.parseActionDef()
	case token.TRY:
		return p.parseTry()
	case token.DISPLAY:
		return p.parseDisplay()
	case token.OPEN:
		return p.parseOpenFile()
	case token.CLOSE:
		return p.parseCloseFile()
	case token.WAIT_FOR:
		return p.parseWaitFor()
	case token.GIVE_BACK:
		return p.parseReturn()
	case token.TRIGGER:
		return p.parseTrigger()
	case token.ON:
		return p.parseOn()
	case token.CREATE:
		return p.parseCreate()
	case token.IDENTIFIER:
		return p.parseExpressionStatement()
	case token.NEWLINE:
		p.advance()
		return nil
	default:
		return p.unexpectedStatement()
	}
}

func (p *Parser) parseStore() ast.Statement {
	start := p.peek().Start
	p.advance() // STORE
	nameTok := p.consume(token.IDENTIFIER, "expected a variable name after 'store'")
	p.consume(token.AS, "expected 'as' after the variable name")
	value := p.parseExpression()
	return &ast.StoreStmt{Name: nameTok.Value, Value: value, Location: *source.NewLocation(&start, value.Loc().End)}
}

func (p *Parser) parseAssign() ast.Statement {
	start := p.peek().Start
	p.advance() // CHANGE or SET
	nameTok := p.consume(token.IDENTIFIER, "expected a variable name")
	p.consume(token.TO, "expected 'to' after the variable name")
	value := p.parseExpression()
	return &ast.AssignStmt{Name: nameTok.Value, Value: value, Location: *source.NewLocation(&start, value.Loc().End)}
}

func (p *Parser) parseCheck() ast.Statement {
	start := p.peek().Start
	p.advance() // CHECK or IF
	if p.check(token.IF) {
		p.advance()
	}
	cond := p.parseExpression()
	p.consume(token.COLON, "expected ':' to open the check block")

	p.blocks = append(p.blocks, blockCheck)
	thenBody := p.parseStatementsUntil(func() bool { return p.check(token.OTHERWISE) || p.atBlockCloser() })

	var elseBody []ast.Statement
	if p.check(token.OTHERWISE) {
		p.advance()
		p.consume(token.COLON, "expected ':' to open the otherwise block")
		elseBody = p.parseStatementsUntil(func() bool { return p.atBlockCloser() })
	}

	end := p.peek().End
	p.consumeCloser(token.END_CHECK, blockCheck)
	p.blocks = p.blocks[:len(p.blocks)-1]
	return &ast.CheckStmt{Condition: cond, Then: thenBody, Else: elseBody, Location: *source.NewLocation(&start, &end)}
}

func (p *Parser) parseCountLoop() ast.Statement {
	start := p.peek().Start
	p.advance() // COUNT
	p.consume(token.FROM, "expected 'from' after 'count'")
	from := p.parseExpression()
	p.consume(token.TO, "expected 'to' in count loop")
	to := p.parseExpression()
	var step ast.Expression
	if p.check(token.BY) {
		p.advance()
		step = p.parseExpression()
	}
	p.consume(token.COLON, "expected ':' to open the count block")

	p.blocks = append(p.blocks, blockCount)
	body := p.parseStatementsUntil(func() bool { return p.atBlockCloser() })
	end := p.peek().End
	p.consumeCloser(token.END_COUNT, blockCount)
	p.blocks = p.blocks[:len(p.blocks)-1]
	return &ast.CountLoopStmt{From: from, To: to, Step: step, Body: body, Location: *source.NewLocation(&start, &end)}
}

func (p *Parser) parseForEach() ast.Statement {
	start := p.peek().Start
	p.advance() // FOR_EACH
	nameTok := p.consume(token.IDENTIFIER, "expected a variable name after 'for each'")
	p.consume(token.IN, "expected 'in' after the loop variable")
	list := p.parseExpression()
	p.consume(token.COLON, "expected ':' to open the for-each block")

	p.blocks = append(p.blocks, blockFor)
	body := p.parseStatementsUntil(func() bool { return p.atBlockCloser() })
	end := p.peek().End
	p.consumeCloser(token.END_FOR, blockFor)
	p.blocks = p.blocks[:len(p.blocks)-1]
	return &ast.ForEachStmt{VarName: nameTok.Value, List: list, Body: body, Location: *source.NewLocation(&start, &end)}
}

// parseWhile handles both `while C` (closed by `end while`) and
// `repeat while C` (closed by `end repeat`) — same semantics, different
// closing keyword.
func (p *Parser) parseWhile() ast.Statement {
	start := p.peek().Start
	leading := p.advance().Kind
	cond := p.parseExpression()
	p.consume(token.COLON, "expected ':' to open the loop block")

	kind, closer := blockWhile, token.END_WHILE
	if leading == token.REPEAT_WHILE {
		kind, closer = blockRepeat, token.END_REPEAT
	}
	p.blocks = append(p.blocks, kind)
	body := p.parseStatementsUntil(func() bool { return p.atBlockCloser() })
	end := p.peek().End
	p.consumeCloser(closer, kind)
	p.blocks = p.blocks[:len(p.blocks)-1]
	return &ast.WhileStmt{Condition: cond, Body: body, Location: *source.NewLocation(&start, &end)}
}

// parseRepeatUntilPre handles the pre-test form `repeat until C: … end repeat`.
func (p *Parser) parseRepeatUntilPre() ast.Statement {
	start := p.peek().Start
	p.advance() // REPEAT_UNTIL
	cond := p.parseExpression()
	p.consume(token.COLON, "expected ':' to open the loop block")

	p.blocks = append(p.blocks, blockRepeat)
	body := p.parseStatementsUntil(func() bool { return p.atBlockCloser() })
	end := p.peek().End
	p.consumeCloser(token.END_REPEAT, blockRepeat)
	p.blocks = p.blocks[:len(p.blocks)-1]
	return &ast.RepeatUntilStmt{Condition: cond, Body: body, PostTest: false, Location: *source.NewLocation(&start, &end)}
}

func (p *Parser) parseRepeatForever() ast.Statement {
	start := p.peek().Start
	p.advance() // REPEAT_FOREVER
	p.consume(token.COLON, "expected ':' to open the loop block")

	p.blocks = append(p.blocks, blockRepeat)
	body := p.parseStatementsUntil(func() bool { return p.atBlockCloser() })
	end := p.peek().End
	p.consumeCloser(token.END_REPEAT, blockRepeat)
	p.blocks = p.blocks[:len(p.blocks)-1]
	return &ast.RepeatForeverStmt{Body: body, Location: *source.NewLocation(&start, &end)}
}

// parseBareRepeat handles bare `repeat:`, whose trailing `until C` (or
// absence of one) decides whether it becomes a post-test RepeatUntilStmt
// or an infinite RepeatForeverStmt.
func (p *Parser) parseBareRepeat() ast.Statement {
	start := p.peek().Start
	p.advance() // REPEAT
	p.consume(token.COLON, "expected ':' to open the loop block")

	p.blocks = append(p.blocks, blockRepeat)
	body := p.parseStatementsUntil(func() bool { return p.check(token.UNTIL) || p.atBlockCloser() })

	var cond ast.Expression
	if p.check(token.UNTIL) {
		p.advance()
		cond = p.parseExpression()
	}
	end := p.peek().End
	p.consumeCloser(token.END_REPEAT, blockRepeat)
	p.blocks = p.blocks[:len(p.blocks)-1]

	if cond == nil {
		return &ast.RepeatForeverStmt{Body: body, Location: *source.NewLocation(&start, &end)}
	}
	return &ast.RepeatUntilStmt{Condition: cond, Body: body, PostTest: true, Location: *source.NewLocation(&start, &end)}
}

// parseParamList reads the clause following `needs`. A run of
// identifiers joined by `and` becomes one Param per identifier; a run
// with no `and` between them is preserved as a single space-joined
// Param, the legacy slot-form spec.md §4.7 requires the interpreter to
// still accept.
func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	var current []string
	for p.check(token.IDENTIFIER) {
		current = append(current, p.advance().Value)
		if p.check(token.AND) {
			p.advance()
			params = append(params, ast.Param{Raw: strings.Join(current, " ")})
			current = nil
		}
	}
	if len(current) > 0 {
		params = append(params, ast.Param{Raw: strings.Join(current, " ")})
	}
	return params
}

func (p *Parser) parseActionDef() ast.Statement {
	start := p.peek().Start
	p.advance() // DEFINE_ACTION
	p.consume(token.CALLED, "expected 'called' after 'define action'")
	nameTok := p.consume(token.IDENTIFIER, "expected an action name")
	var params []ast.Param
	if p.check(token.NEEDS) {
		p.advance()
		params = p.parseParamList()
	}
	p.consume(token.COLON, "expected ':' to open the action body")

	p.blocks = append(p.blocks, blockAction)
	body := p.parseStatementsUntil(func() bool { return p.atBlockCloser() })
	end := p.peek().End
	p.consumeCloser(token.END_ACTION, blockAction)
	p.blocks = p.blocks[:len(p.blocks)-1]
	return &ast.ActionDefStmt{Name: nameTok.Value, Params: params, Body: body, Location: *source.NewLocation(&start, &end)}
}

func (p *Parser) parseTry() ast.Statement {
	start := p.peek().Start
	p.advance() // TRY
	p.consume(token.COLON, "expected ':' to open the try block")

	p.blocks = append(p.blocks, blockTry)
	body := p.parseStatementsUntil(func() bool { return p.check(token.WHEN) || p.atBlockCloser() })

	var errName string
	var handler []ast.Statement
	if p.check(token.WHEN) {
		p.advance()
		errTok := p.consume(token.IDENTIFIER, "expected an error name after 'when'")
		errName = errTok.Value
		p.consume(token.COLON, "expected ':' to open the when block")
		handler = p.parseStatementsUntil(func() bool { return p.check(token.OTHERWISE) || p.atBlockCloser() })
	} else {
		p.errorAt(p.peek(), "missing-when", "expected a 'when' clause in this 'try' block")
	}

	var elseBody []ast.Statement
	if p.check(token.OTHERWISE) {
		p.advance()
		p.consume(token.COLON, "expected ':' to open the otherwise block")
		elseBody = p.parseStatementsUntil(func() bool { return p.atBlockCloser() })
	}

	end := p.peek().End
	p.consumeCloser(token.END_TRY, blockTry)
	p.blocks = p.blocks[:len(p.blocks)-1]
	return &ast.TryStmt{Body: body, ErrName: errName, Handler: handler, Else: elseBody, Location: *source.NewLocation(&start, &end)}
}

// parseDisplay parses a single expression and, if it turns out to be a
// `with`-concatenation, flattens it directly into DisplayStmt's operand
// list rather than nesting a ConcatExpr one level down.
func (p *Parser) parseDisplay() ast.Statement {
	start := p.peek().Start
	p.advance() // DISPLAY
	expr := p.parseExpression()
	end := expr.Loc().End
	operands := []ast.Expression{expr}
	if concat, ok := expr.(*ast.ConcatExpr); ok {
		operands = concat.Operands
	}
	return &ast.DisplayStmt{Operands: operands, Location: *source.NewLocation(&start, end)}
}

func (p *Parser) parseOpenFile() ast.Statement {
	start := p.peek().Start
	p.advance() // OPEN
	p.consume(token.FILE, "expected 'file' after 'open'")
	p.consume(token.AT, "expected 'at' after 'file'")
	path := p.parseExpression()
	p.consume(token.AS, "expected 'as' before the handle name")
	nameTok := p.consume(token.IDENTIFIER, "expected a handle name")
	return &ast.OpenFileStmt{Path: path, HandleName: nameTok.Value, Location: *source.NewLocation(&start, &nameTok.End)}
}

func (p *Parser) parseCloseFile() ast.Statement {
	start := p.peek().Start
	p.advance() // CLOSE
	p.consume(token.FILE, "expected 'file' after 'close'")
	nameTok := p.consume(token.IDENTIFIER, "expected a handle name")
	return &ast.CloseFileStmt{HandleName: nameTok.Value, Location: *source.NewLocation(&start, &nameTok.End)}
}

func (p *Parser) parseWaitFor() ast.Statement {
	start := p.peek().Start
	p.advance() // WAIT_FOR
	first := p.parseWaitOperation()
	ops := []ast.Statement{first}
	for p.check(token.AND) {
		p.advance()
		ops = append(ops, p.parseWaitOperation())
	}
	end := ops[len(ops)-1].Loc().End
	if len(ops) == 1 {
		return ops[0]
	}
	return &ast.WaitForStmt{Operations: ops, Location: *source.NewLocation(&start, end)}
}

func (p *Parser) parseWaitOperation() ast.Statement {
	start := p.peek().Start
	switch p.peek().Kind {
	case token.WRITE:
		p.advance()
		p.consume(token.CONTENT, "expected 'content' after 'write'")
		content := p.parseExpression()
		p.consume(token.INTO, "expected 'into' before the handle name")
		nameTok := p.consume(token.IDENTIFIER, "expected a handle name")
		return &ast.WriteFileStmt{Content: content, HandleName: nameTok.Value, Location: *source.NewLocation(&start, &nameTok.End)}
	case token.APPEND:
		p.advance()
		p.consume(token.CONTENT, "expected 'content' after 'append'")
		content := p.parseExpression()
		p.consume(token.INTO, "expected 'into' before the handle name")
		nameTok := p.consume(token.IDENTIFIER, "expected a handle name")
		return &ast.AppendFileStmt{Content: content, HandleName: nameTok.Value, Location: *source.NewLocation(&start, &nameTok.End)}
	case token.READ:
		p.advance()
		p.consume(token.CONTENT, "expected 'content' after 'read'")
		p.consume(token.AS, "expected 'as' before the result name")
		resultTok := p.consume(token.IDENTIFIER, "expected a result name")
		p.consume(token.FROM, "expected 'from' before the handle name")
		handleTok := p.consume(token.IDENTIFIER, "expected a handle name")
		return &ast.ReadFileStmt{HandleName: handleTok.Value, ResultName: resultTok.Value, Location: *source.NewLocation(&start, &handleTok.End)}
	default:
		expr := p.parseExpression()
		return &ast.ExpressionStmt{Expression: expr, Location: *source.NewLocation(&start, expr.Loc().End)}
	}
}

func (p *Parser) parseReturn() ast.Statement {
	start := p.peek().Start
	p.advance() // GIVE_BACK
	value := p.parseExpression()
	return &ast.ReturnStmt{Value: value, Location: *source.NewLocation(&start, value.Loc().End)}
}

func (p *Parser) parseTrigger() ast.Statement {
	start := p.peek().Start
	p.advance() // TRIGGER
	nameTok := p.consume(token.IDENTIFIER, "expected an event name after 'trigger'")
	end := nameTok.End
	var args []ast.Expression
	if p.check(token.WITH) {
		p.advance()
		args = p.parseArgumentList()
		end = *args[len(args)-1].Loc().End
	}
	return &ast.TriggerStmt{Event: nameTok.Value, Arguments: args, Location: *source.NewLocation(&start, &end)}
}

func (p *Parser) parseOn() ast.Statement {
	start := p.peek().Start
	p.advance() // ON
	nameTok := p.consume(token.IDENTIFIER, "expected an event name after 'on'")
	var paramName string
	if p.check(token.AS) {
		p.advance()
		paramTok := p.consume(token.IDENTIFIER, "expected a parameter name after 'as'")
		paramName = paramTok.Value
	}
	p.consume(token.COLON, "expected ':' to open the on block")

	p.blocks = append(p.blocks, blockOn)
	body := p.parseStatementsUntil(func() bool { return p.atBlockCloser() })
	end := p.peek().End
	p.consumeCloser(token.END_ON, blockOn)
	p.blocks = p.blocks[:len(p.blocks)-1]
	return &ast.OnStmt{Event: nameTok.Value, ParamName: paramName, Body: body, Location: *source.NewLocation(&start, &end)}
}

func (p *Parser) parseCreate() ast.Statement {
	start := p.peek().Start
	p.advance() // CREATE
	kindTok := p.consume(token.IDENTIFIER, "expected a resource kind after 'create'")
	p.consume(token.CALLED, "expected 'called' after the resource kind")
	nameTok := p.consume(token.IDENTIFIER, "expected a name for the created resource")
	end := nameTok.End
	var args []ast.Expression
	if p.check(token.WITH) {
		p.advance()
		args = p.parseArgumentList()
		end = *args[len(args)-1].Loc().End
	}
	return &ast.CreateStmt{Kind: kindTok.Value, Name: nameTok.Value, Arguments: args, Location: *source.NewLocation(&start, &end)}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	start := p.peek().Start
	expr := p.parseExpression()
	return &ast.ExpressionStmt{Expression: expr, Location: *source.NewLocation(&start, expr.Loc().End)}
}

// parseArgumentList reads an `and`-separated argument clause (used by
// `with`, and by `create`/`trigger`'s own argument tails). Each argument
// is parsed at the comparison level and below so that a top-level `and`
// always means "next argument", never the logical-and operator; use
// parentheses for a logical expression inside an argument.
func (p *Parser) parseArgumentList() []ast.Expression {
	args := []ast.Expression{p.parseExpressionNoAnd()}
	for p.check(token.AND) {
		p.advance()
		args = append(args, p.parseExpressionNoAnd())
	}
	return args
}
