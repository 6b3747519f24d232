// lexer.go
package nikl

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Punctuation
	LROUND  // "("
	RROUND  // ")"
	LCURLY  // "{"
	RCURLY  // "}"
	LSQUARE // "["
	RSQUARE // "]"
	COLON   // ":"
	COMMA   // ","
	PERIOD  // "."
	ARROW   // "->"

	// Operators
	PLUS
	MINUS
	MULT
	DIV
	ASSIGN // "="
	EQ     // "=="
	NEQ    // "!="
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ

	// Literals & identifiers
	ID
	STRING
	INTEGER
	FLOAT
	BOOLEAN

	// Keywords
	LET
	CONST
	FUNCTION
	IMPORT
	PUB
	AS
	IN
	FOR
	WHILE
	LOOP
	BREAK
	CONTINUE
	SPAWN
	WAIT
	IF
	ELIF
	ELSE
	AND
	OR
	NOT
	RETURN
	DELETE

	// Type keywords (parsed as hints, never enforced)
	TYPE_INT
	TYPE_FLOAT
	TYPE_STRING
	TYPE_BOOL
	TYPE_ARRAY
	TYPE_TUPLE
	TYPE_HASHMAP
)

var tokenTypeNames = map[TokenType]string{
	EOF:          "Eof",
	ILLEGAL:      "Illegal",
	LROUND:       "LeftParen",
	RROUND:       "RightParen",
	LCURLY:       "LeftBrace",
	RCURLY:       "RightBrace",
	LSQUARE:      "LeftBracket",
	RSQUARE:      "RightBracket",
	COLON:        "Colon",
	COMMA:        "Comma",
	PERIOD:       "Dot",
	ARROW:        "Arrow",
	PLUS:         "Add",
	MINUS:        "Subtract",
	MULT:         "Multiply",
	DIV:          "Divide",
	ASSIGN:       "Assign",
	EQ:           "Equals",
	NEQ:          "NotEqual",
	LESS:         "LessThan",
	LESS_EQ:      "LessThanOrEqual",
	GREATER:      "GreaterThan",
	GREATER_EQ:   "GreaterThanOrEqual",
	ID:           "Identifier",
	STRING:       "StringLiteral",
	INTEGER:      "IntegerLiteral",
	FLOAT:        "FloatLiteral",
	BOOLEAN:      "BooleanLiteral",
	LET:          "Let",
	CONST:        "Const",
	FUNCTION:     "Function",
	IMPORT:       "Import",
	PUB:          "Pub",
	AS:           "As",
	IN:           "In",
	FOR:          "For",
	WHILE:        "While",
	LOOP:         "Loop",
	BREAK:        "Break",
	CONTINUE:     "Continue",
	SPAWN:        "Spawn",
	WAIT:         "Wait",
	IF:           "If",
	ELIF:         "ElseIf",
	ELSE:         "Else",
	AND:          "And",
	OR:           "Or",
	NOT:          "Not",
	RETURN:       "Return",
	DELETE:       "Delete",
	TYPE_INT:     "Integer",
	TYPE_FLOAT:   "Float",
	TYPE_STRING:  "String",
	TYPE_BOOL:    "Boolean",
	TYPE_ARRAY:   "Array",
	TYPE_TUPLE:   "Tuple",
	TYPE_HASHMAP: "HashMap",
}

func (t TokenType) String() string {
	if s, ok := tokenTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a lexical token with optional literal value.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw text slice
	Literal interface{} // parsed value for literals
	Line    int
	Col     int
}

// describe renders a token the way diagnostics refer to it, e.g.
// Identifier("x") or LeftBrace.
func (t Token) describe() string {
	switch t.Type {
	case ID:
		return fmt.Sprintf("Identifier(%q)", t.Lexeme)
	case STRING:
		return fmt.Sprintf("StringLiteral(%q)", t.Literal)
	case INTEGER:
		return fmt.Sprintf("IntegerLiteral(%v)", t.Literal)
	case FLOAT:
		return fmt.Sprintf("FloatLiteral(%v)", t.Literal)
	case BOOLEAN:
		return fmt.Sprintf("BooleanLiteral(%v)", t.Literal)
	default:
		return t.Type.String()
	}
}

// keywords map
var keywords = map[string]TokenType{
	"let":      LET,
	"const":    CONST,
	"fn":       FUNCTION,
	"import":   IMPORT,
	"pub":      PUB,
	"as":       AS,
	"in":       IN,
	"for":      FOR,
	"while":    WHILE,
	"loop":     LOOP,
	"break":    BREAK,
	"continue": CONTINUE,
	"spawn":    SPAWN,
	"wait":     WAIT,
	"if":       IF,
	"elif":     ELIF,
	"else":     ELSE,
	"and":      AND,
	"or":       OR,
	"not":      NOT,
	"return":   RETURN,
	"del":      DELETE,
	"True":     BOOLEAN,
	"False":    BOOLEAN,
	"Int":      TYPE_INT,
	"Float":    TYPE_FLOAT,
	"String":   TYPE_STRING,
	"Bool":     TYPE_BOOL,
	"Array":    TYPE_ARRAY,
	"Tuple":    TYPE_TUPLE,
	"HashMap":  TYPE_HASHMAP,
}

// Lexer scans a NIKL source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 1-based
	tokens []Token

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
		col:  1,
	}
}

// Tokenize scans src in one call. Stops at the first lexical error.
func Tokenize(src string) ([]Token, error) {
	return NewLexer(src).Scan()
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else if ch&0xC0 != 0x80 {
		// Columns count runes: UTF-8 continuation bytes stay in place.
		l.col++
	}
	return ch, true
}

func (l *Lexer) rewindToStart() {
	l.cur = l.start
	l.line = l.tokStartLine
	l.col = l.tokStartCol
}

func (l *Lexer) addToken(tt TokenType, lit interface{}) Token {
	lex := l.src[l.start:l.cur]
	tok := Token{
		Type:    tt,
		Lexeme:  lex,
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.advance()
			l.start = l.cur
		case '/':
			// Only "//" starts a comment; a lone '/' is the divide operator.
			if l.cur+1 < len(l.src) && l.src[l.cur+1] == '/' {
				for {
					b, ok := l.peek()
					if !ok || b == '\n' {
						break
					}
					l.advance()
				}
				l.start = l.cur
				continue
			}
			return
		default:
			return
		}
	}
}

// helpers

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_'
}

// ----- errors -----

// LexError is a lexical error with the position it was detected at.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string { return e.Msg }

func (l *Lexer) errUnexpectedChar(r rune, line, col int) error {
	return &LexError{
		Line: line,
		Col:  col,
		Msg:  fmt.Sprintf("Unexpected character '%c' at line %d, column %d", r, line, col),
	}
}

func (l *Lexer) errUnterminatedString(line, col int) error {
	return &LexError{
		Line: line,
		Col:  col,
		Msg:  fmt.Sprintf("Unterminated string starting at line %d, column %d", line, col),
	}
}

func (l *Lexer) errInvalidNumber(text string, line, col int) error {
	return &LexError{
		Line: line,
		Col:  col,
		Msg:  fmt.Sprintf("Invalid number '%s' at line %d, column %d", text, line, col),
	}
}

// ----- scanners -----

// scanString reads a double-quoted string. No escape sequences: every raw
// byte up to the closing quote is kept, newlines included. The error for a
// missing closing quote points at the opening quote.
func (l *Lexer) scanString() (string, error) {
	openLine, openCol := l.tokStartLine, l.tokStartCol
	// consume the opening quote
	l.advance()
	var bldr strings.Builder
	for !l.isAtEnd() {
		ch, _ := l.advance()
		if ch == '"' {
			return bldr.String(), nil
		}
		bldr.WriteByte(ch)
	}
	return "", l.errUnterminatedString(openLine, openCol)
}

// scanNumber collects a greedy run of digits and dots, then decides:
// more than one dot (or an unparsable run) is an invalid-number error,
// one dot parses as Float, none as Int. i64 overflow is also invalid.
func (l *Lexer) scanNumber() (tok TokenType, lit interface{}, err error) {
	dots := 0
	for {
		b, ok := l.peek()
		if !ok {
			break
		}
		if b == '.' {
			dots++
			l.advance()
			continue
		}
		if !isDigit(b) {
			break
		}
		l.advance()
	}
	lex := l.src[l.start:l.cur]
	if dots > 1 {
		return ILLEGAL, nil, l.errInvalidNumber(lex, l.tokStartLine, l.tokStartCol)
	}
	if dots == 1 {
		v, convErr := strconv.ParseFloat(lex, 64)
		if convErr != nil {
			return ILLEGAL, nil, l.errInvalidNumber(lex, l.tokStartLine, l.tokStartCol)
		}
		return FLOAT, v, nil
	}
	v, convErr := strconv.ParseInt(lex, 10, 64)
	if convErr != nil {
		return ILLEGAL, nil, l.errInvalidNumber(lex, l.tokStartLine, l.tokStartCol)
	}
	return INTEGER, v, nil
}

// scanIdentifier parses [A-Za-z_][A-Za-z0-9_]*
func (l *Lexer) scanIdentifier() string {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	return l.src[l.start:l.cur]
}

// ----- main scanner -----

func (l *Lexer) scanToken() (Token, error) {
	l.skipWhitespaceAndComments()
	l.tokStartLine = l.line
	l.tokStartCol = l.col
	l.start = l.cur

	if l.isAtEnd() {
		return l.addToken(EOF, nil), nil
	}

	ch, _ := l.advance()

	// Single-char tokens & punctuation
	switch ch {
	case '(':
		return l.addToken(LROUND, nil), nil
	case ')':
		return l.addToken(RROUND, nil), nil
	case '{':
		return l.addToken(LCURLY, nil), nil
	case '}':
		return l.addToken(RCURLY, nil), nil
	case '[':
		return l.addToken(LSQUARE, nil), nil
	case ']':
		return l.addToken(RSQUARE, nil), nil
	case ':':
		return l.addToken(COLON, nil), nil
	case ',':
		return l.addToken(COMMA, nil), nil
	case '.':
		return l.addToken(PERIOD, nil), nil
	case '+':
		return l.addToken(PLUS, nil), nil
	case '*':
		return l.addToken(MULT, nil), nil
	case '/':
		return l.addToken(DIV, nil), nil
	}

	// Two-char operators and fallbacks
	switch ch {
	case '-':
		if b, ok := l.peek(); ok && b == '>' {
			l.advance()
			return l.addToken(ARROW, nil), nil
		}
		return l.addToken(MINUS, nil), nil
	case '=':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(EQ, nil), nil
		}
		return l.addToken(ASSIGN, nil), nil
	case '!':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(NEQ, nil), nil
		}
		// A lone '!' is not an operator in NIKL ("not" is).
		return Token{}, l.errUnexpectedChar('!', l.tokStartLine, l.tokStartCol)
	case '<':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(LESS_EQ, nil), nil
		}
		return l.addToken(LESS, nil), nil
	case '>':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(GREATER_EQ, nil), nil
		}
		return l.addToken(GREATER, nil), nil
	}

	// Strings
	if ch == '"' {
		l.rewindToStart()
		text, err := l.scanString()
		if err != nil {
			return Token{}, err
		}
		return l.addToken(STRING, text), nil
	}

	// Numbers (starting with digit)
	if isDigit(ch) {
		l.rewindToStart()
		tt, lit, err := l.scanNumber()
		if err != nil {
			return Token{}, err
		}
		return l.addToken(tt, lit), nil
	}

	// Identifiers / Keywords
	if isAlpha(ch) {
		l.rewindToStart()
		lex := l.scanIdentifier()
		if tt, ok := keywords[lex]; ok {
			if tt == BOOLEAN {
				return l.addToken(BOOLEAN, lex == "True"), nil
			}
			return l.addToken(tt, nil), nil
		}
		return l.addToken(ID, nil), nil
	}

	// Anything else (';', '%', stray unicode, ...) is an error. Decode a
	// full rune so multibyte characters report cleanly.
	r := rune(ch)
	if ch >= utf8.RuneSelf {
		l.cur--
		var size int
		r, size = utf8.DecodeRuneInString(l.src[l.cur:])
		l.cur += size
	}
	return Token{}, l.errUnexpectedChar(r, l.tokStartLine, l.tokStartCol)
}

// Scan tokenizes the entire source and returns tokens (EOF included).
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}
