package ast

import (
	"strings"
	"testing"

	"github.com/rdleon/lox-go/internal/token"
)

func TestPrintBinaryExpression(t *testing.T) {
	expr := &Binary{
		Left:     &Literal{Value: 1.0},
		Operator: token.Token{Kind: token.PLUS, Lexeme: "+"},
		Right:    &Literal{Value: 2.0},
	}
	stmt := &ExprStmt{Expression: expr}

	out := Print(stmt)
	if !strings.Contains(out, "(+ 1 2)") {
		t.Errorf("Print() = %q, want it to contain %q", out, "(+ 1 2)")
	}
}

func TestPrintClassWithSuperclass(t *testing.T) {
	stmt := &ClassStmt{
		Name:       token.Token{Lexeme: "B"},
		Superclass: &Variable{Name: token.Token{Lexeme: "A"}},
	}
	out := Print(stmt)
	if !strings.Contains(out, "(class B < A") {
		t.Errorf("Print() = %q, want it to contain superclass marker", out)
	}
}
