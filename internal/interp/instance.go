package interp

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/rdleon/lox-go/internal/diag"
	"github.com/rdleon/lox-go/internal/token"
)

// Instance is a runtime instance of a Class: a class pointer and an open
// field map that new fields can be added to ad hoc by assignment.
// Grounded on cpplox's Instance (include/instance.h). ID is a
// per-instance identity tag, generated lazily: most runs never read it, so
// Class.Call only sets one when the evaluator's tracer is on.
type Instance struct {
	Class  *Class
	Fields map[string]Value
	ID     uuid.UUID
}

func (i *Instance) Type() string { return "INSTANCE" }

func (i *Instance) String() string {
	if i.ID == uuid.Nil {
		return fmt.Sprintf("<instance %s>", i.Class.Name)
	}
	return fmt.Sprintf("<instance %s #%s>", i.Class.Name, i.ID.String()[:8])
}

// Get resolves `instance.name`: an instance field takes priority, then the
// nearest method through the superclass chain, bound to this instance.
func (i *Instance) Get(name token.Token) (Value, error) {
	if v, ok := i.Fields[name.Lexeme]; ok {
		return v, nil
	}
	if m := i.Class.FindMethod(name.Lexeme); m != nil {
		return m.Bind(i), nil
	}
	return nil, &diag.RuntimeError{Token: name, Message: fmt.Sprintf("Undefined property '%s'.", name.Lexeme)}
}

// Set assigns a field, creating it if it does not already exist.
func (i *Instance) Set(name token.Token, value Value) {
	i.Fields[name.Lexeme] = value
}
