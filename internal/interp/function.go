package interp

import (
	"fmt"

	"github.com/rdleon/lox-go/internal/ast"
)

// returnSignal carries a `return` statement's value up through nested
// statement execution to the enclosing function call. Grounded on
// cpplox's Return (original_source/include/return.h), which the C++
// implementation throws as an exception; Go has no exceptions, so this is
// propagated as an ordinary error value that execStmt/execBlock check for
// and UserFunction.Call/Lambda.Call unwrap at the function boundary.
type returnSignal struct {
	value Value
}

func (returnSignal) Error() string { return "return outside function" }

// UserFunction is a function or method declared with `fun`/as a class
// member. Grounded on cpplox's Function (include/function.h), extended
// with IsInitializer/IsStatic to support class methods and constructors.
type UserFunction struct {
	Declaration   *ast.FunctionStmt
	Closure       *Environment
	IsInitializer bool
	IsStatic      bool
}

func (f *UserFunction) Type() string { return "FUNCTION" }

func (f *UserFunction) String() string {
	return fmt.Sprintf("<fn %s>", f.Declaration.Name.Lexeme)
}

func (f *UserFunction) Arity() int { return len(f.Declaration.Params) }

// Call runs the function body in a fresh environment parented by the
// function's closure, with parameters bound positionally. A returnSignal
// unwinding out of the body becomes this call's result; initializers
// always yield the bound `this` regardless of what was returned.
func (f *UserFunction) Call(ev *Evaluator, args []Value) (Value, error) {
	env := NewEnclosedEnvironment(f.Closure)
	for i, param := range f.Declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := ev.execBlock(f.Declaration.Body, env)
	if ret, ok := err.(returnSignal); ok {
		if f.IsInitializer {
			return f.Closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}

	if f.IsInitializer {
		return f.Closure.GetAt(0, "this"), nil
	}
	return NilValue, nil
}

// Bind returns a new UserFunction whose closure wraps f's closure with a
// scope binding `this` to receiver. receiver is an
// *Instance for ordinary methods, or the *Class itself for a static method
// accessed via ClassName.method ("bound to the class-as-instance").
func (f *UserFunction) Bind(receiver Value) *UserFunction {
	env := NewEnclosedEnvironment(f.Closure)
	env.Define("this", receiver)
	return &UserFunction{Declaration: f.Declaration, Closure: env, IsInitializer: f.IsInitializer, IsStatic: f.IsStatic}
}

// Lambda is a user function without a name and without method flags:
// `fun(params) { body }` used as an expression.
type Lambda struct {
	Declaration *ast.Lambda
	Closure     *Environment
}

func (l *Lambda) Type() string   { return "FUNCTION" }
func (l *Lambda) String() string { return "<fn>" }
func (l *Lambda) Arity() int     { return len(l.Declaration.Params) }

func (l *Lambda) Call(ev *Evaluator, args []Value) (Value, error) {
	env := NewEnclosedEnvironment(l.Closure)
	for i, param := range l.Declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := ev.execBlock(l.Declaration.Body, env)
	if ret, ok := err.(returnSignal); ok {
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	return NilValue, nil
}
