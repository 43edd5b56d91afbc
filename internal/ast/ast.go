// Package ast defines the Abstract Syntax Tree node types produced by the
// parser and consumed by the resolver and evaluator.
package ast

// Node is the base interface every AST node implements.
type Node interface {
	// TokenLiteral returns the lexeme of the token the node is anchored on,
	// useful for error messages and debugging.
	TokenLiteral() string
}

// Expr is any node that produces a Value when evaluated. The resolver keys
// its resolution table on the *pointer* identity of an Expr, not on its
// contents, so two syntactically identical expressions at different
// source locations are distinct map keys.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that performs an action without itself producing a
// value.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root of a parsed source file or module: an ordered list of
// top-level statements.
type Program struct {
	Statements []Stmt
}
