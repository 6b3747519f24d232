// ast.go: node definitions for parsed NIKL programs.
//
//   - All nodes implement Node via TokenLiteral and String.
//   - Statements and Expressions each have a marker interface embedding Node
//     so the evaluator can dispatch with type switches.
//   - Nodes carry their originating Token for positions in diagnostics.
//   - Type hints are consumed by the parser but never stored here; NIKL
//     validates their shape and discards them.
package nikl

import (
	"fmt"
	"strings"
)

// Node is the base interface every AST node implements.
type Node interface {
	// TokenLiteral returns the literal text of the token that originated
	// this node. Used for debugging and tests.
	TokenLiteral() string

	// String returns a readable, parenthesised rendering of the node.
	String() string
}

// Expression is a marker interface for expression nodes.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a marker interface for statement nodes.
type Statement interface {
	Node
	statementNode()
}

// opSymbol renders an operator TokenType as source text for String().
func opSymbol(op TokenType) string {
	switch op {
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case MULT:
		return "*"
	case DIV:
		return "/"
	case EQ:
		return "=="
	case NEQ:
		return "!="
	case LESS:
		return "<"
	case LESS_EQ:
		return "<="
	case GREATER:
		return ">"
	case GREATER_EQ:
		return ">="
	case AND:
		return "and"
	case OR:
		return "or"
	case NOT:
		return "not"
	default:
		return op.String()
	}
}

func joinStatements(body []Statement) string {
	var out strings.Builder
	for _, s := range body {
		out.WriteString(s.String())
		out.WriteByte('\n')
	}
	return out.String()
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// LetStatement is `let name = expr` or `const name = expr`.
type LetStatement struct {
	Token   Token // LET or CONST
	Name    string
	Value   Expression
	Mutable bool
}

func (s *LetStatement) statementNode()       {}
func (s *LetStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *LetStatement) String() string {
	kw := "let"
	if !s.Mutable {
		kw = "const"
	}
	return fmt.Sprintf("%s %s = %s", kw, s.Name, s.Value.String())
}

// FunctionStatement is `fn name(params) { body }`.
type FunctionStatement struct {
	Token  Token // FUNCTION
	Name   string
	Params []string
	Body   []Statement
}

func (s *FunctionStatement) statementNode()       {}
func (s *FunctionStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *FunctionStatement) String() string {
	return fmt.Sprintf("fn %s(%s) {\n%s}", s.Name, strings.Join(s.Params, ", "), joinStatements(s.Body))
}

// ExpressionStatement wraps a bare expression used as a statement.
type ExpressionStatement struct {
	Token Token // first token of the expression
	Expr  Expression
}

func (s *ExpressionStatement) statementNode()       {}
func (s *ExpressionStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *ExpressionStatement) String() string       { return s.Expr.String() }

// ElseIfBranch is one `elif cond { body }` arm of an IfStatement.
type ElseIfBranch struct {
	Condition Expression
	Body      []Statement
}

// IfStatement is `if cond { } elif cond { } else { }` with any number of
// elif arms and an optional else body (nil when absent).
type IfStatement struct {
	Token     Token // IF
	Condition Expression
	Body      []Statement
	ElseIfs   []ElseIfBranch
	ElseBody  []Statement
}

func (s *IfStatement) statementNode()       {}
func (s *IfStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *IfStatement) String() string {
	var out strings.Builder
	fmt.Fprintf(&out, "if %s {\n%s}", s.Condition.String(), joinStatements(s.Body))
	for _, b := range s.ElseIfs {
		fmt.Fprintf(&out, " elif %s {\n%s}", b.Condition.String(), joinStatements(b.Body))
	}
	if s.ElseBody != nil {
		fmt.Fprintf(&out, " else {\n%s}", joinStatements(s.ElseBody))
	}
	return out.String()
}

// WhileStatement is `while cond { body }`.
type WhileStatement struct {
	Token     Token // WHILE
	Condition Expression
	Body      []Statement
}

func (s *WhileStatement) statementNode()       {}
func (s *WhileStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *WhileStatement) String() string {
	return fmt.Sprintf("while %s {\n%s}", s.Condition.String(), joinStatements(s.Body))
}

// ForStatement is `for x in iter { }` or `for k, v in iter { }`.
type ForStatement struct {
	Token    Token // FOR
	Names    []string
	Iterable Expression
	Body     []Statement
}

func (s *ForStatement) statementNode()       {}
func (s *ForStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *ForStatement) String() string {
	return fmt.Sprintf("for %s in %s {\n%s}", strings.Join(s.Names, ", "), s.Iterable.String(), joinStatements(s.Body))
}

// LoopStatement is `loop { body }`, endless until break.
type LoopStatement struct {
	Token Token // LOOP
	Body  []Statement
}

func (s *LoopStatement) statementNode()       {}
func (s *LoopStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *LoopStatement) String() string {
	return fmt.Sprintf("loop {\n%s}", joinStatements(s.Body))
}

// BreakStatement is `break`.
type BreakStatement struct {
	Token Token
}

func (s *BreakStatement) statementNode()       {}
func (s *BreakStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *BreakStatement) String() string       { return "break" }

// ContinueStatement is `continue`.
type ContinueStatement struct {
	Token Token
}

func (s *ContinueStatement) statementNode()       {}
func (s *ContinueStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *ContinueStatement) String() string       { return "continue" }

// ReturnStatement is `return` or `return expr`; Value is nil for the bare
// form.
type ReturnStatement struct {
	Token Token // RETURN
	Value Expression
}

func (s *ReturnStatement) statementNode()       {}
func (s *ReturnStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *ReturnStatement) String() string {
	if s.Value == nil {
		return "return"
	}
	return "return " + s.Value.String()
}

// ImportStatement is `import "path" as alias`.
type ImportStatement struct {
	Token Token // IMPORT
	Path  string
	Alias string
}

func (s *ImportStatement) statementNode()       {}
func (s *ImportStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *ImportStatement) String() string {
	return fmt.Sprintf("import %q as %s", s.Path, s.Alias)
}

// DeleteStatement is `del name`.
type DeleteStatement struct {
	Token Token // DELETE
	Name  string
}

func (s *DeleteStatement) statementNode()       {}
func (s *DeleteStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *DeleteStatement) String() string       { return "del " + s.Name }

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// Identifier is a bare name reference.
type Identifier struct {
	Token Token // ID
	Name  string
}

func (e *Identifier) expressionNode()      {}
func (e *Identifier) TokenLiteral() string { return e.Token.Lexeme }
func (e *Identifier) String() string       { return e.Name }

// IntegerLiteral is a 64-bit integer literal.
type IntegerLiteral struct {
	Token Token
	Value int64
}

func (e *IntegerLiteral) expressionNode()      {}
func (e *IntegerLiteral) TokenLiteral() string { return e.Token.Lexeme }
func (e *IntegerLiteral) String() string       { return fmt.Sprintf("%d", e.Value) }

// FloatLiteral is a 64-bit float literal.
type FloatLiteral struct {
	Token Token
	Value float64
}

func (e *FloatLiteral) expressionNode()      {}
func (e *FloatLiteral) TokenLiteral() string { return e.Token.Lexeme }
func (e *FloatLiteral) String() string       { return fmt.Sprintf("%v", e.Value) }

// StringLiteral is a double-quoted string literal.
type StringLiteral struct {
	Token Token
	Value string
}

func (e *StringLiteral) expressionNode()      {}
func (e *StringLiteral) TokenLiteral() string { return e.Token.Lexeme }
func (e *StringLiteral) String() string       { return fmt.Sprintf("%q", e.Value) }

// BooleanLiteral is `True` or `False`.
type BooleanLiteral struct {
	Token Token
	Value bool
}

func (e *BooleanLiteral) expressionNode()      {}
func (e *BooleanLiteral) TokenLiteral() string { return e.Token.Lexeme }
func (e *BooleanLiteral) String() string {
	if e.Value {
		return "True"
	}
	return "False"
}

// ArrayLiteral is `[a, b, c]`.
type ArrayLiteral struct {
	Token    Token // LSQUARE
	Elements []Expression
}

func (e *ArrayLiteral) expressionNode()      {}
func (e *ArrayLiteral) TokenLiteral() string { return e.Token.Lexeme }
func (e *ArrayLiteral) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// TupleLiteral is `(a, b)`; a one-element tuple needs a trailing comma.
type TupleLiteral struct {
	Token    Token // LROUND
	Elements []Expression
}

func (e *TupleLiteral) expressionNode()      {}
func (e *TupleLiteral) TokenLiteral() string { return e.Token.Lexeme }
func (e *TupleLiteral) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// MapPair is a single `key: value` entry of a MapLiteral.
type MapPair struct {
	Key   Expression
	Value Expression
}

// MapLiteral is `{k: v, ...}`. Entry order is preserved.
type MapLiteral struct {
	Token Token // LCURLY
	Pairs []MapPair
}

func (e *MapLiteral) expressionNode()      {}
func (e *MapLiteral) TokenLiteral() string { return e.Token.Lexeme }
func (e *MapLiteral) String() string {
	parts := make([]string, len(e.Pairs))
	for i, p := range e.Pairs {
		parts[i] = p.Key.String() + ": " + p.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// PrefixExpression is `-x` or `not x`.
type PrefixExpression struct {
	Token Token // operator token
	Op    TokenType
	Right Expression
}

func (e *PrefixExpression) expressionNode()      {}
func (e *PrefixExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *PrefixExpression) String() string {
	sym := opSymbol(e.Op)
	if e.Op == NOT {
		return "(" + sym + " " + e.Right.String() + ")"
	}
	return "(" + sym + e.Right.String() + ")"
}

// InfixExpression is `left op right` for arithmetic, comparison, and the
// keyword operators `and`/`or`.
type InfixExpression struct {
	Token Token // operator token
	Op    TokenType
	Left  Expression
	Right Expression
}

func (e *InfixExpression) expressionNode()      {}
func (e *InfixExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *InfixExpression) String() string {
	return "(" + e.Left.String() + " " + opSymbol(e.Op) + " " + e.Right.String() + ")"
}

// AssignExpression is `name = expr`. Only bare identifiers assign.
type AssignExpression struct {
	Token Token // ID being assigned
	Name  string
	Value Expression
}

func (e *AssignExpression) expressionNode()      {}
func (e *AssignExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *AssignExpression) String() string       { return e.Name + " = " + e.Value.String() }

// CallExpression is `callee(args)`.
type CallExpression struct {
	Token    Token // LROUND of the call
	Function Expression
	Args     []Expression
}

func (e *CallExpression) expressionNode()      {}
func (e *CallExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *CallExpression) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Function.String() + "(" + strings.Join(parts, ", ") + ")"
}

// AccessExpression is `object.name`, used for module member lookup.
type AccessExpression struct {
	Token  Token // PERIOD
	Object Expression
	Name   string
}

func (e *AccessExpression) expressionNode()      {}
func (e *AccessExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *AccessExpression) String() string       { return e.Object.String() + "." + e.Name }
