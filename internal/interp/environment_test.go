package interp

import (
	"testing"

	"github.com/rdleon/lox-go/internal/token"
)

func nameToken(lexeme string) token.Token {
	return token.Token{Kind: token.IDENTIFIER, Lexeme: lexeme}
}

func TestDefineThenGet(t *testing.T) {
	env := NewEnvironment()
	env.Define("a", Number(1))

	v, err := env.Get(nameToken("a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != Number(1) {
		t.Errorf("got %v, want 1", v)
	}
}

func TestGetWalksOuterChain(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("a", String("outer"))
	inner := NewEnclosedEnvironment(outer)

	v, err := inner.Get(nameToken("a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != String("outer") {
		t.Errorf("got %v, want outer", v)
	}
}

func TestGetUndefinedVariableIsRuntimeError(t *testing.T) {
	env := NewEnvironment()
	_, err := env.Get(nameToken("missing"))
	if err == nil {
		t.Fatalf("expected an error for an undefined variable")
	}
}

func TestAssignRebindsInDefiningScope(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("a", Number(1))
	inner := NewEnclosedEnvironment(outer)

	if err := inner.Assign(nameToken("a"), Number(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := outer.Get(nameToken("a"))
	if v != Number(2) {
		t.Errorf("assign through inner scope did not update outer binding, got %v", v)
	}
}

func TestAssignToUndefinedNameIsError(t *testing.T) {
	env := NewEnvironment()
	if err := env.Assign(nameToken("missing"), Number(1)); err == nil {
		t.Errorf("expected an error: Assign must not create a new binding")
	}
}

func TestDefineRedeclarationOverwrites(t *testing.T) {
	env := NewEnvironment()
	env.Define("a", Number(1))
	env.Define("a", Number(2))

	v, _ := env.Get(nameToken("a"))
	if v != Number(2) {
		t.Errorf("redeclaring with Define should overwrite, got %v", v)
	}
}

func TestGetAtAndAssignAtUseExactDistance(t *testing.T) {
	global := NewEnvironment()
	global.Define("a", String("global"))
	middle := NewEnclosedEnvironment(global)
	middle.Define("a", String("middle"))
	inner := NewEnclosedEnvironment(middle)

	if v := inner.GetAt(1, "a"); v != String("middle") {
		t.Errorf("GetAt(1) = %v, want middle", v)
	}
	if v := inner.GetAt(2, "a"); v != String("global") {
		t.Errorf("GetAt(2) = %v, want global", v)
	}

	inner.AssignAt(2, "a", String("rebound"))
	if v, _ := global.Get(nameToken("a")); v != String("rebound") {
		t.Errorf("AssignAt(2) did not rebind the global scope, got %v", v)
	}
}
