package ast

import "github.com/rdleon/lox-go/internal/token"

// ExprStmt is a bare expression evaluated for its side effects.
type ExprStmt struct {
	Expression Expr
}

func (s *ExprStmt) stmtNode()           {}
func (s *ExprStmt) TokenLiteral() string { return s.Expression.TokenLiteral() }

// PrintStmt is `print expr;`.
type PrintStmt struct {
	Token      token.Token // the 'print' token
	Expression Expr
}

func (s *PrintStmt) stmtNode()            {}
func (s *PrintStmt) TokenLiteral() string { return s.Token.Lexeme }

// VarStmt is `var name = init?;`. Initializer is nil for a bare `var name;`,
// which binds name to Nil.
type VarStmt struct {
	Name        token.Token
	Initializer Expr
}

func (s *VarStmt) stmtNode()            {}
func (s *VarStmt) TokenLiteral() string { return s.Name.Lexeme }

// BlockStmt introduces a new lexical scope around a statement sequence.
type BlockStmt struct {
	Statements []Stmt
}

func (s *BlockStmt) stmtNode()            {}
func (s *BlockStmt) TokenLiteral() string { return "{" }

// IfStmt is `if (cond) then else?`.
type IfStmt struct {
	Token     token.Token // the 'if' token
	Condition Expr
	Then      Stmt
	Else      Stmt // nil if there is no else branch
}

func (s *IfStmt) stmtNode()            {}
func (s *IfStmt) TokenLiteral() string { return s.Token.Lexeme }

// WhileStmt is `while (cond) body`. For-loops are desugared into this by
// the parser , so the evaluator only ever sees WhileStmt.
type WhileStmt struct {
	Token     token.Token // the 'while' token
	Condition Expr
	Body      Stmt
}

func (s *WhileStmt) stmtNode()            {}
func (s *WhileStmt) TokenLiteral() string { return s.Token.Lexeme }

// FunctionStmt is a named function declaration, optionally carrying
// PREFIX modifiers (currently only `static`, meaningful on methods).
type FunctionStmt struct {
	Name     token.Token
	Params   []token.Token
	Body     []Stmt
	IsStatic bool
}

func (s *FunctionStmt) stmtNode()            {}
func (s *FunctionStmt) TokenLiteral() string { return s.Name.Lexeme }

// ReturnStmt is `return value?;`.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr // nil for a bare `return;`
}

func (s *ReturnStmt) stmtNode()            {}
func (s *ReturnStmt) TokenLiteral() string { return s.Keyword.Lexeme }

// ClassStmt is a class declaration with an optional superclass and a list
// of methods (each itself a FunctionStmt, possibly static).
type ClassStmt struct {
	Name       token.Token
	Superclass *Variable // nil if there is no superclass
	Methods    []*FunctionStmt
}

func (s *ClassStmt) stmtNode()            {}
func (s *ClassStmt) TokenLiteral() string { return s.Name.Lexeme }

// ImportStmt is `import module;`. At evaluation time this is a no-op: the
// resolver has already spliced the module's statements into the
// evaluator's execution queue.
type ImportStmt struct {
	Keyword    token.Token
	ModuleName token.Token
}

func (s *ImportStmt) stmtNode()            {}
func (s *ImportStmt) TokenLiteral() string { return s.Keyword.Lexeme }
