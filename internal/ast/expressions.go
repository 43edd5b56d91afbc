package ast

import "github.com/rdleon/lox-go/internal/token"

// Literal is a literal value baked directly into the tree by the parser:
// a number, string, boolean, or nil.
type Literal struct {
	Token token.Token
	Value any
}

func (e *Literal) exprNode()             {}
func (e *Literal) TokenLiteral() string  { return e.Token.Lexeme }

// Grouping is a parenthesized expression, kept as its own node so printers
// and the resolver can distinguish `(a)` from `a`.
type Grouping struct {
	Token      token.Token // the '(' token
	Expression Expr
}

func (e *Grouping) exprNode()            {}
func (e *Grouping) TokenLiteral() string { return e.Token.Lexeme }

// Unary is a prefix operator applied to a single operand: `-x`, `!x`.
type Unary struct {
	Operator token.Token
	Right    Expr
}

func (e *Unary) exprNode()            {}
func (e *Unary) TokenLiteral() string { return e.Operator.Lexeme }

// Binary is an arithmetic or comparison operator applied to two operands.
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (e *Binary) exprNode()            {}
func (e *Binary) TokenLiteral() string { return e.Operator.Lexeme }

// Logical is `and`/`or`. It is a distinct node from Binary because it
// short-circuits and yields the short-circuiting operand's value rather
// than a boolean.
type Logical struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (e *Logical) exprNode()            {}
func (e *Logical) TokenLiteral() string { return e.Operator.Lexeme }

// Variable is a read of a named binding.
type Variable struct {
	Name token.Token
}

func (e *Variable) exprNode()            {}
func (e *Variable) TokenLiteral() string { return e.Name.Lexeme }

// Assign is `name = value`.
type Assign struct {
	Name  token.Token
	Value Expr
}

func (e *Assign) exprNode()            {}
func (e *Assign) TokenLiteral() string { return e.Name.Lexeme }

// Call is a function/method/constructor invocation. ClosingParen is kept so
// the evaluator can report arity errors at the call site.
type Call struct {
	Callee       Expr
	ClosingParen token.Token
	Arguments    []Expr
}

func (e *Call) exprNode()            {}
func (e *Call) TokenLiteral() string { return e.ClosingParen.Lexeme }

// Lambda is an anonymous function expression: `fun(params) { body }`.
type Lambda struct {
	Token  token.Token // the 'fun' token
	Params []token.Token
	Body   []Stmt
}

func (e *Lambda) exprNode()            {}
func (e *Lambda) TokenLiteral() string { return e.Token.Lexeme }

// Get is a property/method read: `obj.name`.
type Get struct {
	Object Expr
	Name   token.Token
}

func (e *Get) exprNode()            {}
func (e *Get) TokenLiteral() string { return e.Name.Lexeme }

// Set is a property write: `obj.name = value`.
type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

func (e *Set) exprNode()            {}
func (e *Set) TokenLiteral() string { return e.Name.Lexeme }

// This is the `this` expression inside a method body.
type This struct {
	Keyword token.Token
}

func (e *This) exprNode()            {}
func (e *This) TokenLiteral() string { return e.Keyword.Lexeme }

// Super is `super.method` inside a subclass method body.
type Super struct {
	Keyword token.Token
	Method  token.Token
}

func (e *Super) exprNode()            {}
func (e *Super) TokenLiteral() string { return e.Keyword.Lexeme }
