// Package resolver implements a single static-analysis pass over the
// program: it walks every statement and expression once before execution
// to compute lexical scope distances, enforce the language's static
// rules, and recursively load `import`ed modules.
//
// Grounded on cpplox's Resolver (original_source/include/resolver.h,
// src/resolver.cpp): the declared/defined two-state scope stack,
// resolve_local's innermost-to-outermost walk, and resolve_function's
// save/restore of the enclosing function kind are all carried over
// directly. Class resolution (this/super scopes, static methods,
// initializer return checking) and the import mechanism are new, since
// cpplox's base resolver predates classes.
package resolver

import (
	"github.com/rdleon/lox-go/internal/ast"
	"github.com/rdleon/lox-go/internal/diag"
	"github.com/rdleon/lox-go/internal/interp"
	"github.com/rdleon/lox-go/internal/token"
)

// functionType tracks what kind of function body is currently being
// resolved, gating `return` (rule 3) and the initializer `return value;`
// restriction (rule 4).
type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnMethod
	fnInitializer
)

// classType tracks whether the resolver is currently inside a class body
// and whether that class has a superclass, gating `this` (rule 5) and
// `super` (rule 6).
type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// scope maps a name to whether its initializer has finished resolving:
// false once declared, true once defined. Looking up a name that maps to
// false means "this is the variable's own initializer" (rule 2).
type scope map[string]bool

// ModuleLoader locates and reads the source of an imported module by name
// (search directories + a conventional extension). It is implemented by
// internal/imports.
type ModuleLoader interface {
	// Load returns the module's source text and a canonical path used to
	// detect self-import and re-import (rules 9).
	Load(name string) (source, canonicalPath string, err error)
}

// Parser is the subset of internal/parser.Parser the resolver needs to
// recursively parse an imported module's source, kept as an interface so
// this package does not import internal/parser directly (avoiding an
// import cycle is not the concern here; decoupling the parsing step from
// the resolving step is — a test can substitute a stub).
type Parser func(source string) (stmts []ast.Stmt, errs []error)

// Resolver runs the static analysis pass over a statement sequence.
type Resolver struct {
	ev       *interp.Evaluator
	reporter *diag.Reporter
	loader   ModuleLoader
	parse    Parser

	scopes          []scope
	currentFunction functionType
	currentClass    classType

	// imported tracks canonical module paths already pulled in, to reject
	// importing the same module twice (rule 9). Importing the entry file
	// itself is rejected by the ModuleLoader.
	imported map[string]bool
}

// New creates a Resolver. loader and parse may be nil if the program being
// resolved contains no `import` statements; resolveImport reports an error
// on any `import` it meets if either is nil.
func New(ev *interp.Evaluator, reporter *diag.Reporter, loader ModuleLoader, parse Parser) *Resolver {
	return &Resolver{
		ev:       ev,
		reporter: reporter,
		loader:   loader,
		parse:    parse,
		imported: make(map[string]bool),
	}
}

// Resolve walks stmts, the program's top-level statement sequence, and
// queues each one for execution as it finishes resolving it. Queuing
// one statement at a time (rather than the whole slice up front) is what
// lets resolveImport splice an imported module's statements into the
// queue ahead of whatever top-level statement follows the `import`: by
// the time a later statement is queued, any import above it has already
// pushed its module's body in.
func (r *Resolver) Resolve(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
		r.ev.Enqueue([]ast.Stmt{s})
	}
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()

	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)

	case *ast.FunctionStmt:
		// Declared and defined immediately, unlike local variables, so the
		// function can recurse (cpplox resolver.cpp's comment on this).
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fnFunction)

	case *ast.ExprStmt:
		r.resolveExpr(s.Expression)

	case *ast.IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.PrintStmt:
		r.resolveExpr(s.Expression)

	case *ast.ReturnStmt:
		if r.currentFunction == fnNone {
			r.reporter.Error(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == fnInitializer {
				r.reporter.Error(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}

	case *ast.WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)

	case *ast.ClassStmt:
		r.resolveClass(s)

	case *ast.ImportStmt:
		r.resolveImport(s)

	default:
		r.reporter.DebugError("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveClass(s *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.reporter.Error(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, m := range s.Methods {
		if m.IsStatic {
			// static is only meaningful on methods; nothing further to
			// enforce here (rule 8 is a parser-level restriction — `static`
			// cannot even appear before anything but a method declaration).
		}
		kind := fnMethod
		if m.Name.Lexeme == "init" && !m.IsStatic {
			kind = fnInitializer
		}
		r.resolveFunction(m, kind)
	}

	r.endScope() // this

	if s.Superclass != nil {
		r.endScope() // super
	}

	r.currentClass = enclosingClass
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.reporter.Error(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)

	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)

	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpr(arg)
		}

	case *ast.Grouping:
		r.resolveExpr(e.Expression)

	case *ast.Literal:
		// nothing to resolve

	case *ast.Unary:
		r.resolveExpr(e.Right)

	case *ast.Lambda:
		enclosingFunction := r.currentFunction
		r.currentFunction = fnFunction
		r.beginScope()
		for _, param := range e.Params {
			r.declare(param)
			r.define(param)
		}
		r.resolveStmts(e.Body)
		r.endScope()
		r.currentFunction = enclosingFunction

	case *ast.Get:
		r.resolveExpr(e.Object)

	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.This:
		if r.currentClass == classNone {
			r.reporter.Error(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)

	case *ast.Super:
		if r.currentClass == classNone {
			r.reporter.Error(e.Keyword, "Can't use 'super' outside of a class.")
		} else if r.currentClass != classSubclass {
			r.reporter.Error(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, e.Keyword)

	default:
		r.reporter.DebugError("resolver: unhandled expression type")
	}
}

// resolveLocal walks the scope stack innermost → outermost and, on the
// first scope containing name, records the distance on the evaluator's
// resolution table. Not found means the name is treated as global.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.ev.Resolve(expr, len(r.scopes)-1-i)
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare skips global variable declarations (rule applies only to
// non-global scopes).
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	s := r.scopes[len(r.scopes)-1]
	if _, ok := s[name.Lexeme]; ok {
		r.reporter.Error(name, "Already a variable with this name in this scope.")
	}
	s[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveImport implements import mechanism: locate the
// module's source via the configured ModuleLoader, reject a self-import or
// a repeat import (rule 9), then recursively parse, resolve, and append its
// statements to the evaluator's execution queue.
func (r *Resolver) resolveImport(s *ast.ImportStmt) {
	if r.loader == nil || r.parse == nil {
		r.reporter.Error(s.Keyword, "Imports are not supported in this context.")
		return
	}

	source, canonicalPath, err := r.loader.Load(s.ModuleName.Lexeme)
	if err != nil {
		r.reporter.Error(s.ModuleName, err.Error())
		return
	}

	if r.imported[canonicalPath] {
		r.reporter.Error(s.ModuleName, "Module '"+s.ModuleName.Lexeme+"' already imported.")
		return
	}
	r.imported[canonicalPath] = true

	stmts, parseErrs := r.parse(source)
	for _, pe := range parseErrs {
		r.reporter.DebugError(pe.Error())
	}

	r.resolveStmts(stmts)
	r.ev.Enqueue(stmts)
}
