package interp

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rdleon/lox-go/internal/ast"
	"github.com/rdleon/lox-go/internal/diag"
	"github.com/rdleon/lox-go/internal/token"
)

// Option configures an Evaluator at construction time. Grounded on the
// teacher's functional-options constructors (internal/lexer.Option and
// its LexerOption family) rather than a config struct, since the pack
// consistently uses this shape for optional construction-time behavior.
type Option func(*Evaluator)

// WithStdout redirects `println`'s output; defaults to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(ev *Evaluator) { ev.stdout = w }
}

// WithClock overrides the time source behind the native `clock()`
// function, e.g. for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(ev *Evaluator) { ev.clockFn = now }
}

// WithSearchDirs records the directories searched for `import` modules.
// The evaluator only stores them (see SearchDirs); internal/imports.Loader
// is given its own copy of the list by internal/lox.Session.
func WithSearchDirs(dirs []string) Option {
	return func(ev *Evaluator) { ev.searchDirs = append([]string(nil), dirs...) }
}

// Evaluator is the stateful tree walker: a global environment, the current
// environment, and the resolution table populated by internal/resolver
// before Interpret runs.
type Evaluator struct {
	globals *Environment
	env     *Environment
	locals  map[ast.Expr]int

	Reporter *diag.Reporter

	stdout     io.Writer
	clockFn    func() time.Time
	searchDirs []string
	trace      io.Writer

	pending []ast.Stmt
}

// SetTrace turns on verbose diagnostics (the `--verbose` CLI flag):
// each constructed instance gets a short identity tag, a "constructed ..."
// line is written to w, and the tag appears wherever the instance is
// rendered as a string (e.g. `print`).
func (ev *Evaluator) SetTrace(w io.Writer) {
	ev.trace = w
}

// New creates an Evaluator with its global environment populated with the
// native functions.
func New(reporter *diag.Reporter, opts ...Option) *Evaluator {
	ev := &Evaluator{
		globals: NewEnvironment(),
		locals:  make(map[ast.Expr]int),
		stdout:  os.Stdout,
		clockFn: time.Now,
	}
	ev.env = ev.globals
	ev.Reporter = reporter
	for _, opt := range opts {
		opt(ev)
	}
	ev.registerNatives()
	return ev
}

func (ev *Evaluator) clock() time.Time { return ev.clockFn() }

// SearchDirs returns the configured import search directories.
func (ev *Evaluator) SearchDirs() []string { return ev.searchDirs }

// Globals exposes the global environment.
func (ev *Evaluator) Globals() *Environment { return ev.globals }

// Resolve records the lexical distance the resolver computed for expr:
// how many Environment links to walk outward from wherever expr is
// evaluated to find its binding. Called by internal/resolver.
func (ev *Evaluator) Resolve(expr ast.Expr, depth int) {
	ev.locals[expr] = depth
}

// Enqueue appends statements to the pending execution queue. Called by
// internal/resolver, which queues an imported module's statements ahead of
// the `import` statement that pulled them in.
func (ev *Evaluator) Enqueue(stmts []ast.Stmt) {
	ev.pending = append(ev.pending, stmts...)
}

// Interpret runs every statement appended via Enqueue, in order, stopping
// (but not panicking) on the first runtime error: it is reported via
// Reporter and execution of the remaining queue halts.
func (ev *Evaluator) Interpret() {
	for len(ev.pending) > 0 {
		stmt := ev.pending[0]
		ev.pending = ev.pending[1:]

		if err := ev.execStmt(stmt); err != nil {
			ev.reportRuntimeError(err)
			return
		}
	}
}

func (ev *Evaluator) reportRuntimeError(err error) {
	if rerr, ok := err.(*diag.RuntimeError); ok {
		ev.Reporter.RuntimeError(rerr)
		return
	}
	ev.Reporter.RuntimeError(&diag.RuntimeError{Message: err.Error()})
}

// --- statement execution ---

func (ev *Evaluator) execStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		_, err := ev.evalExpr(s.Expression)
		return err

	case *ast.PrintStmt:
		v, err := ev.evalExpr(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(ev.stdout, v.String())
		return nil

	case *ast.VarStmt:
		var value Value = NilValue
		if s.Initializer != nil {
			v, err := ev.evalExpr(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		ev.env.Define(s.Name.Lexeme, value)
		return nil

	case *ast.BlockStmt:
		return ev.execBlock(s.Statements, NewEnclosedEnvironment(ev.env))

	case *ast.IfStmt:
		cond, err := ev.evalExpr(s.Condition)
		if err != nil {
			return err
		}
		if IsTruthy(cond) {
			return ev.execStmt(s.Then)
		}
		if s.Else != nil {
			return ev.execStmt(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := ev.evalExpr(s.Condition)
			if err != nil {
				return err
			}
			if !IsTruthy(cond) {
				return nil
			}
			if err := ev.execStmt(s.Body); err != nil {
				return err
			}
		}

	case *ast.FunctionStmt:
		fn := &UserFunction{Declaration: s, Closure: ev.env, IsStatic: s.IsStatic}
		ev.env.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.ReturnStmt:
		var value Value = NilValue
		if s.Value != nil {
			v, err := ev.evalExpr(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return returnSignal{value: value}

	case *ast.ClassStmt:
		return ev.execClassStmt(s)

	case *ast.ImportStmt:
		// No-op: the resolver already spliced the module's statements into
		// the execution queue.
		return nil

	default:
		return fmt.Errorf("interp: unhandled statement type %T", s)
	}
}

func (ev *Evaluator) execClassStmt(s *ast.ClassStmt) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := ev.env.Get(s.Superclass.Name)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return &diag.RuntimeError{Token: s.Superclass.Name, Message: "Superclass must be a class."}
		}
		superclass = sc
	}

	ev.env.Define(s.Name.Lexeme, NilValue)

	classEnv := ev.env
	if superclass != nil {
		classEnv = NewEnclosedEnvironment(ev.env)
		classEnv.Define("super", superclass)
	}

	methods := make(map[string]*UserFunction, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &UserFunction{
			Declaration:   m,
			Closure:       classEnv,
			IsInitializer: m.Name.Lexeme == "init" && !m.IsStatic,
			IsStatic:      m.IsStatic,
		}
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}

	if superclass != nil {
		// classEnv's outer is ev.env; assign back into ev.env.
		if err := ev.env.Assign(s.Name, class); err != nil {
			return err
		}
		return nil
	}

	return ev.env.Assign(s.Name, class)
}

// execBlock runs statements in env, restoring the previous environment
// even on non-local exit (return or error)
func (ev *Evaluator) execBlock(stmts []ast.Stmt, env *Environment) error {
	previous := ev.env
	ev.env = env
	defer func() { ev.env = previous }()

	for _, stmt := range stmts {
		if err := ev.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// --- expression evaluation ---

func (ev *Evaluator) evalExpr(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Value), nil

	case *ast.Grouping:
		return ev.evalExpr(e.Expression)

	case *ast.Unary:
		return ev.evalUnary(e)

	case *ast.Binary:
		return ev.evalBinary(e)

	case *ast.Logical:
		return ev.evalLogical(e)

	case *ast.Variable:
		return ev.lookUpVariable(e.Name, e)

	case *ast.Assign:
		value, err := ev.evalExpr(e.Value)
		if err != nil {
			return nil, err
		}
		if distance, ok := ev.locals[e]; ok {
			ev.env.AssignAt(distance, e.Name.Lexeme, value)
		} else if err := ev.globals.Assign(e.Name, value); err != nil {
			return nil, err
		}
		return value, nil

	case *ast.Call:
		return ev.evalCall(e)

	case *ast.Lambda:
		return &Lambda{Declaration: e, Closure: ev.env}, nil

	case *ast.Get:
		return ev.evalGet(e)

	case *ast.Set:
		return ev.evalSet(e)

	case *ast.This:
		return ev.lookUpVariable(e.Keyword, e)

	case *ast.Super:
		return ev.evalSuper(e)

	default:
		return nil, fmt.Errorf("interp: unhandled expression type %T", e)
	}
}

func literalValue(v any) Value {
	switch vv := v.(type) {
	case nil:
		return NilValue
	case bool:
		return Bool(vv)
	case float64:
		return Number(vv)
	case string:
		return String(vv)
	default:
		return NilValue
	}
}

func (ev *Evaluator) lookUpVariable(name token.Token, expr ast.Expr) (Value, error) {
	if distance, ok := ev.locals[expr]; ok {
		return ev.env.GetAt(distance, name.Lexeme), nil
	}
	return ev.globals.Get(name)
}

func (ev *Evaluator) evalUnary(e *ast.Unary) (Value, error) {
	right, err := ev.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Kind {
	case token.MINUS:
		n, ok := right.(Number)
		if !ok {
			return nil, &diag.RuntimeError{Token: e.Operator, Message: "Operand must be a number."}
		}
		return -n, nil
	case token.BANG:
		return Bool(!IsTruthy(right)), nil
	default:
		return nil, &diag.RuntimeError{Token: e.Operator, Message: "Unknown unary operator."}
	}
}

func (ev *Evaluator) evalLogical(e *ast.Logical) (Value, error) {
	left, err := ev.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator.Kind == token.OR {
		if IsTruthy(left) {
			return left, nil
		}
	} else {
		if !IsTruthy(left) {
			return left, nil
		}
	}
	return ev.evalExpr(e.Right)
}

func (ev *Evaluator) evalBinary(e *ast.Binary) (Value, error) {
	left, err := ev.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := ev.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case token.MINUS, token.STAR, token.SLASH,
		token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL:
		ln, lok := left.(Number)
		rn, rok := right.(Number)
		if !lok || !rok {
			return nil, &diag.RuntimeError{Token: e.Operator, Message: "Operand(s) must be a number."}
		}
		switch e.Operator.Kind {
		case token.MINUS:
			return ln - rn, nil
		case token.STAR:
			return ln * rn, nil
		case token.SLASH:
			if rn == 0 {
				return nil, &diag.RuntimeError{Token: e.Operator, Message: "Cannot divide by zero."}
			}
			return ln / rn, nil
		case token.GREATER:
			return Bool(ln > rn), nil
		case token.GREATER_EQUAL:
			return Bool(ln >= rn), nil
		case token.LESS:
			return Bool(ln < rn), nil
		default: // LESS_EQUAL
			return Bool(ln <= rn), nil
		}

	case token.PLUS:
		ln, lok := left.(Number)
		rn, rok := right.(Number)
		if lok && rok {
			return ln + rn, nil
		}
		_, lStr := left.(String)
		_, rStr := right.(String)
		if lStr || rStr {
			return String(left.String() + right.String()), nil
		}
		return nil, &diag.RuntimeError{Token: e.Operator, Message: "Operand(s) must be a number."}

	case token.BANG_EQUAL:
		return Bool(!Equal(left, right)), nil
	case token.EQUAL_EQUAL:
		return Bool(Equal(left, right)), nil

	default:
		return nil, &diag.RuntimeError{Token: e.Operator, Message: "Unknown binary operator."}
	}
}

func (ev *Evaluator) evalCall(e *ast.Call) (Value, error) {
	callee, err := ev.evalExpr(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Arguments))
	for i, a := range e.Arguments {
		v, err := ev.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, &diag.RuntimeError{Token: e.ClosingParen, Message: "Can only call functions and classes."}
	}
	if len(args) != fn.Arity() {
		return nil, &diag.RuntimeError{
			Token:   e.ClosingParen,
			Message: fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args)),
		}
	}
	return fn.Call(ev, args)
}

func (ev *Evaluator) evalGet(e *ast.Get) (Value, error) {
	obj, err := ev.evalExpr(e.Object)
	if err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case *Instance:
		return o.Get(e.Name)
	case *Class:
		return o.Get(e.Name)
	default:
		return nil, &diag.RuntimeError{Token: e.Name, Message: "Only instances have properties."}
	}
}

func (ev *Evaluator) evalSet(e *ast.Set) (Value, error) {
	obj, err := ev.evalExpr(e.Object)
	if err != nil {
		return nil, err
	}

	value, err := ev.evalExpr(e.Value)
	if err != nil {
		return nil, err
	}

	switch o := obj.(type) {
	case *Instance:
		o.Set(e.Name, value)
		return value, nil
	case *Class:
		if err := o.Set(e.Name, value); err != nil {
			return nil, err
		}
		return value, nil
	default:
		return nil, &diag.RuntimeError{Token: e.Name, Message: "Only instances have fields."}
	}
}

// evalSuper implements "super.method": the resolver placed
// `super` two scopes out from the method body and `this` one scope closer;
// read both, locate the method on the superclass, and bind it to `this`.
func (ev *Evaluator) evalSuper(e *ast.Super) (Value, error) {
	distance, ok := ev.locals[e]
	if !ok {
		return nil, &diag.RuntimeError{Token: e.Keyword, Message: "Can't use 'super' outside a subclass."}
	}
	superVal := ev.env.GetAt(distance, "super")
	super, ok := superVal.(*Class)
	if !ok {
		return nil, &diag.RuntimeError{Token: e.Keyword, Message: "Can't use 'super' outside a subclass."}
	}

	thisVal := ev.env.GetAt(distance-1, "this")
	instance, ok := thisVal.(*Instance)
	if !ok {
		return nil, &diag.RuntimeError{Token: e.Keyword, Message: "Can't use 'super' outside a subclass."}
	}

	method := super.FindMethod(e.Method.Lexeme)
	if method == nil {
		return nil, &diag.RuntimeError{Token: e.Method, Message: fmt.Sprintf("Undefined property '%s'.", e.Method.Lexeme)}
	}
	return method.Bind(instance), nil
}
