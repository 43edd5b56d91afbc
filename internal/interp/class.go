package interp

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/rdleon/lox-go/internal/diag"
	"github.com/rdleon/lox-go/internal/token"
)

// Class is a runtime class: a name, an optional superclass, and a method
// table. It is itself a Callable (construction) and supports property
// access for its static methods. Grounded on cpplox's Class
// (include/class.h), generalized from its "Class inherits Callable and
// Instance" shape (so a class can answer `get`/`set` for static members)
// into a Go type that implements both Callable and a propertyHolder-style
// Get/Set pair directly.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*UserFunction
}

func (c *Class) Type() string     { return "CLASS" }
func (c *Class) String() string   { return fmt.Sprintf("<class %s>", c.Name) }

// FindMethod looks up name in this class's method table, then recurses
// into the superclass chain.
func (c *Class) FindMethod(name string) *UserFunction {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Arity is the initializer's arity, or zero if the class has none.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a new Instance, binding and invoking `init` (from this
// class or a superclass) if one is defined.
func (c *Class) Call(ev *Evaluator, args []Value) (Value, error) {
	instance := &Instance{Class: c, Fields: make(map[string]Value)}
	if ev.trace != nil {
		instance.ID = uuid.New()
		fmt.Fprintf(ev.trace, "constructed %s\n", instance.String())
	}
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(ev, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Get implements class-as-value static property access: a static method
// resolves bound to the class itself; a non-static method named on the
// class (rather than an instance) is a runtime error.
func (c *Class) Get(name token.Token) (Value, error) {
	if m := c.FindMethod(name.Lexeme); m != nil {
		if m.IsStatic {
			return m.Bind(c), nil
		}
		return nil, &diag.RuntimeError{Token: name, Message: "Only static methods can be called from a class."}
	}
	return nil, &diag.RuntimeError{Token: name, Message: fmt.Sprintf("Undefined method '%s'.", name.Lexeme)}
}

// Set on a class is always a runtime error.
func (c *Class) Set(name token.Token, _ Value) error {
	return &diag.RuntimeError{Token: name, Message: "Can't set properties on a class."}
}
