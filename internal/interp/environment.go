package interp

import (
	"fmt"

	"github.com/rdleon/lox-go/internal/diag"
	"github.com/rdleon/lox-go/internal/token"
)

// Environment is a lexical scope: a flat name→value map with a pointer to
// its enclosing scope. The resolver computes, for most name references,
// how many Environment links to walk (GetAt/AssignAt); names the resolver
// could not place fall back to walking the whole outer chain (Get/Assign),
// which is how global lookups work.
type Environment struct {
	values map[string]Value
	outer  *Environment
}

// NewEnvironment creates a root environment with no enclosing scope.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// NewEnclosedEnvironment creates a child scope of outer.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{values: make(map[string]Value), outer: outer}
}

// Define binds name to value in this scope, overwriting any existing
// binding — this is how a `var x` re-declaration in the same scope behaves.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get looks up name in this scope, then walks outward. Used for names the
// resolver left unresolved (treated as global).
func (e *Environment) Get(name token.Token) (Value, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, nil
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, &diag.RuntimeError{Token: name, Message: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)}
}

// Assign rebinds an existing name, walking outward; it does not create a
// new binding (that is Define's job), matching cpplox's environment.cpp.
func (e *Environment) Assign(name token.Token, value Value) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return nil
	}
	if e.outer != nil {
		return e.outer.Assign(name, value)
	}
	return &diag.RuntimeError{Token: name, Message: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)}
}

// ancestor walks distance links outward from e.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.outer
	}
	return env
}

// GetAt reads name from the scope exactly distance links out, as computed
// by the resolver.
func (e *Environment) GetAt(distance int, name string) Value {
	return e.ancestor(distance).values[name]
}

// AssignAt writes name in the scope exactly distance links out.
func (e *Environment) AssignAt(distance int, name string, value Value) {
	e.ancestor(distance).values[name] = value
}
