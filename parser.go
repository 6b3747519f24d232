// parser.go — recursive-descent parser for NIKL.
//
// OVERVIEW
// --------
// Consumes the token stream produced by lexer.go and builds the typed AST of
// ast.go. One method per precedence level, lowest binding first:
//
//	assignment            =            (right-assoc, bare identifier target)
//	or                    or
//	and                   and
//	equality              == !=
//	comparison            < > <= >=
//	term                  + -
//	factor                * /
//	unary                 - not
//	postfix               call(...)  .member     (left-assoc chains)
//	primary               literals, identifier, (...), [...], {...}
//
// Statements are keyword-dispatched: let/const, fn, if/elif/else, while,
// for..in, loop, break, continue, return, import..as, del, pub. There is no
// statement terminator; statements simply follow each other.
//
// Type hints (`name: T`, `-> T`) are consumed and shape-checked but never
// stored: a hint is a type keyword, any identifier, or a bracketed /
// parenthesized composition of hints. `spawn` and `wait` are reserved words
// and fail statement dispatch.
//
// All errors are *ParseError with the offending token's 1-based position.
// The first error aborts the parse.
package nikl

import "fmt"

// ParseError is a syntax error at a token position.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string { return e.Msg }

// Parse turns a token stream (EOF-terminated, as produced by Tokenize) into
// a statement list.
func Parse(toks []Token) ([]Statement, error) {
	p := &parser{toks: toks}
	return p.program()
}

// ParseSource lexes and parses a complete source string.
func ParseSource(src string) ([]Statement, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

type parser struct {
	toks []Token
	i    int
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *parser) atEnd() bool { return p.peek().Type == EOF }
func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}
func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) match(tt ...TokenType) bool {
	if p.atEnd() {
		return false
	}
	for _, t := range tt {
		if p.peek().Type == t {
			p.i++
			return true
		}
	}
	return false
}

func (p *parser) need(t TokenType) (Token, error) {
	if p.match(t) {
		return p.prev(), nil
	}
	return Token{}, p.errExpected(t, p.peek())
}

func (p *parser) errExpected(want TokenType, got Token) error {
	return &ParseError{
		Line: got.Line,
		Col:  got.Col,
		Msg:  fmt.Sprintf("Expected %s, found %s at line %d, column %d", want, got.describe(), got.Line, got.Col),
	}
}

func (p *parser) errUnexpected(got Token) error {
	return &ParseError{
		Line: got.Line,
		Col:  got.Col,
		Msg:  fmt.Sprintf("Unexpected token: %s at line %d, column %d", got.describe(), got.Line, got.Col),
	}
}

// ─────────────────────────────── statements ─────────────────────────────────

func (p *parser) program() ([]Statement, error) {
	var stmts []Statement
	for !p.atEnd() {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

func (p *parser) statement() (Statement, error) {
	switch p.peek().Type {
	case PUB:
		return p.pubStatement()
	case LET:
		p.i++
		return p.letStatement(p.prev(), true)
	case CONST:
		p.i++
		return p.letStatement(p.prev(), false)
	case FUNCTION:
		return p.functionStatement()
	case IF:
		return p.ifStatement()
	case WHILE:
		return p.whileStatement()
	case FOR:
		return p.forStatement()
	case LOOP:
		return p.loopStatement()
	case BREAK:
		p.i++
		return &BreakStatement{Token: p.prev()}, nil
	case CONTINUE:
		p.i++
		return &ContinueStatement{Token: p.prev()}, nil
	case RETURN:
		return p.returnStatement()
	case IMPORT:
		return p.importStatement()
	case DELETE:
		return p.deleteStatement()
	default:
		tok := p.peek()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &ExpressionStatement{Token: tok, Expr: expr}, nil
	}
}

// pubStatement consumes the `pub` marker. Visibility is not enforced at
// runtime; the declaration behind it parses as usual.
func (p *parser) pubStatement() (Statement, error) {
	p.i++
	switch p.peek().Type {
	case LET:
		p.i++
		return p.letStatement(p.prev(), true)
	case CONST:
		p.i++
		return p.letStatement(p.prev(), false)
	case FUNCTION:
		return p.functionStatement()
	default:
		return nil, p.errUnexpected(p.peek())
	}
}

func (p *parser) letStatement(kw Token, mutable bool) (Statement, error) {
	name, err := p.need(ID)
	if err != nil {
		return nil, err
	}
	if p.match(COLON) {
		if err := p.typeHint(); err != nil {
			return nil, err
		}
	}
	if _, err := p.need(ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &LetStatement{Token: kw, Name: name.Lexeme, Value: value, Mutable: mutable}, nil
}

func (p *parser) functionStatement() (Statement, error) {
	p.i++
	kw := p.prev()
	name, err := p.need(ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LROUND); err != nil {
		return nil, err
	}
	var params []string
	if p.peek().Type != RROUND {
		for {
			param, err := p.need(ID)
			if err != nil {
				return nil, err
			}
			params = append(params, param.Lexeme)
			if p.match(COLON) {
				if err := p.typeHint(); err != nil {
					return nil, err
				}
			}
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.need(RROUND); err != nil {
		return nil, err
	}
	if p.match(ARROW) {
		if err := p.typeHint(); err != nil {
			return nil, err
		}
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &FunctionStatement{Token: kw, Name: name.Lexeme, Params: params, Body: body}, nil
}

// block parses `{ statement* }`.
func (p *parser) block() ([]Statement, error) {
	if _, err := p.need(LCURLY); err != nil {
		return nil, err
	}
	stmts := []Statement{}
	for p.peek().Type != RCURLY && !p.atEnd() {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.need(RCURLY); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *parser) ifStatement() (Statement, error) {
	p.i++
	kw := p.prev()
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	stmt := &IfStatement{Token: kw, Condition: cond, Body: body}
	for p.peek().Type == ELIF {
		p.i++
		c, err := p.expression()
		if err != nil {
			return nil, err
		}
		b, err := p.block()
		if err != nil {
			return nil, err
		}
		stmt.ElseIfs = append(stmt.ElseIfs, ElseIfBranch{Condition: c, Body: b})
	}
	if p.match(ELSE) {
		b, err := p.block()
		if err != nil {
			return nil, err
		}
		stmt.ElseBody = b
	}
	return stmt, nil
}

func (p *parser) whileStatement() (Statement, error) {
	p.i++
	kw := p.prev()
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &WhileStatement{Token: kw, Condition: cond, Body: body}, nil
}

func (p *parser) forStatement() (Statement, error) {
	p.i++
	kw := p.prev()
	first, err := p.need(ID)
	if err != nil {
		return nil, err
	}
	names := []string{first.Lexeme}
	if p.match(COMMA) {
		second, err := p.need(ID)
		if err != nil {
			return nil, err
		}
		names = append(names, second.Lexeme)
	}
	if _, err := p.need(IN); err != nil {
		return nil, err
	}
	iter, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ForStatement{Token: kw, Names: names, Iterable: iter, Body: body}, nil
}

func (p *parser) loopStatement() (Statement, error) {
	p.i++
	kw := p.prev()
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &LoopStatement{Token: kw, Body: body}, nil
}

// returnStatement parses `return` and, unless the next token closes the
// enclosing block or ends the file, a value expression.
func (p *parser) returnStatement() (Statement, error) {
	p.i++
	kw := p.prev()
	if p.peek().Type == RCURLY || p.peek().Type == EOF {
		return &ReturnStatement{Token: kw}, nil
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ReturnStatement{Token: kw, Value: value}, nil
}

func (p *parser) importStatement() (Statement, error) {
	p.i++
	kw := p.prev()
	path, err := p.need(STRING)
	if err != nil {
		return nil, err
	}
	if _, err := p.need(AS); err != nil {
		return nil, err
	}
	alias, err := p.need(ID)
	if err != nil {
		return nil, err
	}
	return &ImportStatement{Token: kw, Path: path.Literal.(string), Alias: alias.Lexeme}, nil
}

func (p *parser) deleteStatement() (Statement, error) {
	p.i++
	kw := p.prev()
	name, err := p.need(ID)
	if err != nil {
		return nil, err
	}
	return &DeleteStatement{Token: kw, Name: name.Lexeme}, nil
}

// typeHint consumes one type annotation after ':' or '->'. Hints are shape
// checked only: a type keyword, any identifier, `[hint, ...]`, or
// `(hint, ...)`, with optional `[...]` arguments after a name, e.g.
// HashMap[String, Int].
func (p *parser) typeHint() error {
	switch p.peek().Type {
	case TYPE_INT, TYPE_FLOAT, TYPE_STRING, TYPE_BOOL, TYPE_ARRAY, TYPE_TUPLE, TYPE_HASHMAP, ID:
		p.i++
		if p.peek().Type == LSQUARE {
			return p.typeHintGroup(LSQUARE, RSQUARE)
		}
		return nil
	case LSQUARE:
		return p.typeHintGroup(LSQUARE, RSQUARE)
	case LROUND:
		return p.typeHintGroup(LROUND, RROUND)
	default:
		return p.errUnexpected(p.peek())
	}
}

func (p *parser) typeHintGroup(open, close TokenType) error {
	if _, err := p.need(open); err != nil {
		return err
	}
	for {
		if err := p.typeHint(); err != nil {
			return err
		}
		if !p.match(COMMA) {
			break
		}
	}
	_, err := p.need(close)
	return err
}

// ─────────────────────────────── expressions ────────────────────────────────

func (p *parser) expression() (Expression, error) {
	return p.assignment()
}

// assignment is right-associative and only accepts a bare identifier on the
// left.
func (p *parser) assignment() (Expression, error) {
	left, err := p.orExpr()
	if err != nil {
		return nil, err
	}
	if p.match(ASSIGN) {
		eq := p.prev()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		ident, ok := left.(*Identifier)
		if !ok {
			return nil, &ParseError{
				Line: eq.Line,
				Col:  eq.Col,
				Msg:  fmt.Sprintf("Invalid assignment target at line %d, column %d", eq.Line, eq.Col),
			}
		}
		return &AssignExpression{Token: ident.Token, Name: ident.Name, Value: value}, nil
	}
	return left, nil
}

func (p *parser) orExpr() (Expression, error) {
	left, err := p.andExpr()
	if err != nil {
		return nil, err
	}
	for p.match(OR) {
		op := p.prev()
		right, err := p.andExpr()
		if err != nil {
			return nil, err
		}
		left = &InfixExpression{Token: op, Op: op.Type, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) andExpr() (Expression, error) {
	left, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(AND) {
		op := p.prev()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		left = &InfixExpression{Token: op, Op: op.Type, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) equality() (Expression, error) {
	left, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.match(EQ, NEQ) {
		op := p.prev()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		left = &InfixExpression{Token: op, Op: op.Type, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) comparison() (Expression, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.match(LESS, LESS_EQ, GREATER, GREATER_EQ) {
		op := p.prev()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &InfixExpression{Token: op, Op: op.Type, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) term() (Expression, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.match(PLUS, MINUS) {
		op := p.prev()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		left = &InfixExpression{Token: op, Op: op.Type, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) factor() (Expression, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(MULT, DIV) {
		op := p.prev()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &InfixExpression{Token: op, Op: op.Type, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) unary() (Expression, error) {
	if p.match(MINUS, NOT) {
		op := p.prev()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &PrefixExpression{Token: op, Op: op.Type, Right: right}, nil
	}
	return p.postfix()
}

// postfix parses call and member-access chains: f(x)(y), os.get_cwd(), a.b.c
func (p *parser) postfix() (Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(LROUND):
			lparen := p.prev()
			var args []Expression
			if p.peek().Type != RROUND {
				for {
					a, err := p.expression()
					if err != nil {
						return nil, err
					}
					args = append(args, a)
					if !p.match(COMMA) {
						break
					}
				}
			}
			if _, err := p.need(RROUND); err != nil {
				return nil, err
			}
			expr = &CallExpression{Token: lparen, Function: expr, Args: args}
		case p.match(PERIOD):
			dot := p.prev()
			name, err := p.need(ID)
			if err != nil {
				return nil, err
			}
			expr = &AccessExpression{Token: dot, Object: expr, Name: name.Lexeme}
		default:
			return expr, nil
		}
	}
}

func (p *parser) primary() (Expression, error) {
	tok := p.peek()
	switch tok.Type {
	case INTEGER:
		p.i++
		return &IntegerLiteral{Token: tok, Value: tok.Literal.(int64)}, nil
	case FLOAT:
		p.i++
		return &FloatLiteral{Token: tok, Value: tok.Literal.(float64)}, nil
	case STRING:
		p.i++
		return &StringLiteral{Token: tok, Value: tok.Literal.(string)}, nil
	case BOOLEAN:
		p.i++
		return &BooleanLiteral{Token: tok, Value: tok.Literal.(bool)}, nil
	case ID:
		p.i++
		return &Identifier{Token: tok, Name: tok.Lexeme}, nil
	case LROUND:
		return p.groupOrTuple()
	case LSQUARE:
		return p.arrayLiteral()
	case LCURLY:
		return p.mapLiteral()
	default:
		return nil, p.errUnexpected(tok)
	}
}

// groupOrTuple disambiguates `(expr)` from `(a, b)`: a comma makes it a
// tuple, so `(x)` groups and `(x,)` is a one-element tuple.
func (p *parser) groupOrTuple() (Expression, error) {
	p.i++
	lparen := p.prev()
	if p.peek().Type == RROUND {
		return nil, p.errUnexpected(p.peek())
	}
	first, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !p.match(COMMA) {
		if _, err := p.need(RROUND); err != nil {
			return nil, err
		}
		return first, nil
	}
	elements := []Expression{first}
	for p.peek().Type != RROUND && !p.atEnd() {
		el, err := p.expression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.need(RROUND); err != nil {
		return nil, err
	}
	return &TupleLiteral{Token: lparen, Elements: elements}, nil
}

func (p *parser) arrayLiteral() (Expression, error) {
	p.i++
	lbracket := p.prev()
	var elements []Expression
	for p.peek().Type != RSQUARE && !p.atEnd() {
		el, err := p.expression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.need(RSQUARE); err != nil {
		return nil, err
	}
	return &ArrayLiteral{Token: lbracket, Elements: elements}, nil
}

func (p *parser) mapLiteral() (Expression, error) {
	p.i++
	lbrace := p.prev()
	var pairs []MapPair
	for p.peek().Type != RCURLY && !p.atEnd() {
		key, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(COLON); err != nil {
			return nil, err
		}
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, MapPair{Key: key, Value: value})
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.need(RCURLY); err != nil {
		return nil, err
	}
	return &MapLiteral{Token: lbrace, Pairs: pairs}, nil
}
