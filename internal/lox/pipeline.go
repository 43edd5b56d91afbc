// Package lox wires the lexer, parser, resolver, and evaluator together
// into the run/REPL pipeline, shared by every cmd/lox/cmd subcommand so
// each one does not re-implement the lex→parse→resolve→interpret
// sequence and its exit-code contract.
package lox

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/rdleon/lox-go/internal/ast"
	"github.com/rdleon/lox-go/internal/diag"
	"github.com/rdleon/lox-go/internal/imports"
	"github.com/rdleon/lox-go/internal/interp"
	"github.com/rdleon/lox-go/internal/lexer"
	"github.com/rdleon/lox-go/internal/parser"
	"github.com/rdleon/lox-go/internal/resolver"
	"github.com/rdleon/lox-go/internal/token"
)

// Exit codes
const (
	ExitOK      = 0
	ExitUsage   = 64
	ExitStatic  = 65
	ExitRuntime = 70
)

// Session is a persistent lex→parse→resolve→interpret pipeline: a single
// Evaluator reused across REPL entries (so top-level `var` declarations and
// function/class definitions persist from line to line), backed by its own
// Reporter so had_error/had_runtime_error can be inspected and reset
// per entry.
type Session struct {
	ev         *interp.Evaluator
	reporter   *diag.Reporter
	searchDirs []string
	entryPath  string
	trace      io.Writer
}

// NewSession creates a Session. out receives `print`/`println` output;
// diagOut receives formatted diagnostics. entryPath is the absolute path of
// the file being run, or "" for a REPL/eval session with no backing file.
func NewSession(out, diagOut io.Writer, searchDirs []string, entryPath string) *Session {
	reporter := diag.New(diagOut)
	ev := interp.New(reporter, interp.WithStdout(out), interp.WithSearchDirs(searchDirs))
	return &Session{ev: ev, reporter: reporter, searchDirs: searchDirs, entryPath: entryPath}
}

// SetTrace turns on verbose diagnostics (the `--verbose` CLI flag): module
// load tracing and a "constructed <instance ...>" line per new instance
// are written to w, and traced instances print with an identity tag.
func (s *Session) SetTrace(w io.Writer) {
	s.trace = w
	s.ev.SetTrace(w)
}

// Evaluator exposes the underlying evaluator.
func (s *Session) Evaluator() *interp.Evaluator { return s.ev }

// Run lexes, parses, resolves, and interprets source, returning the exit
// code described above. It resets had_error/had_runtime_error first, so a
// Session can be reused across REPL entries.
func (s *Session) Run(source string) int {
	s.reporter.Reset()

	tokens, lexErrs := Tokenize(source, s.reporter)
	_ = lexErrs
	if s.reporter.HadError() {
		return ExitStatic
	}

	stmts, parseErrs := Parse(tokens, s.reporter)
	_ = parseErrs
	if s.reporter.HadError() {
		return ExitStatic
	}

	loader := imports.New(s.searchDirs, s.entryPath)
	if s.trace != nil {
		loader.SetTrace(s.trace)
	}
	res := resolver.New(s.ev, s.reporter, loader, func(src string) ([]ast.Stmt, []error) {
		return parseSource(src)
	})
	res.Resolve(stmts)
	if s.reporter.HadError() {
		return ExitStatic
	}

	s.ev.Interpret()
	if s.reporter.HadRuntimeError() {
		return ExitRuntime
	}
	return ExitOK
}

// Tokenize runs the lexer and reports its errors through reporter.
func Tokenize(source string, reporter *diag.Reporter) ([]token.Token, []lexer.Error) {
	l := lexer.New(source)
	tokens := l.Tokens()
	for _, e := range l.Errors() {
		reporter.ErrorAt(e.Line, e.Column, e.Lexeme, e.LineText, e.Message)
	}
	return tokens, l.Errors()
}

// Parse runs the parser over tokens and reports its errors through reporter.
func Parse(tokens []token.Token, reporter *diag.Reporter) ([]ast.Stmt, []parser.Error) {
	p := parser.New(tokens)
	stmts := p.ParseProgram()
	for _, e := range p.Errors() {
		reporter.Error(e.Token, e.Message)
	}
	return stmts, p.Errors()
}

// parseSource is the resolver.Parser adapter used when recursively parsing
// an imported module: it lexes+parses but does not itself report errors
// (the caller already has a reporter mid-flight), returning generic errors
// instead so resolver.resolveImport can surface them as debug diagnostics.
func parseSource(source string) ([]ast.Stmt, []error) {
	l := lexer.New(source)
	tokens := l.Tokens()

	var errs []error
	for _, e := range l.Errors() {
		errs = append(errs, fmt.Errorf("[line %d] %s", e.Line, e.Message))
	}

	p := parser.New(tokens)
	stmts := p.ParseProgram()
	for _, e := range p.Errors() {
		errs = append(errs, e)
	}
	return stmts, errs
}

// ModuleDir returns the directory a script file lives in. The CLI always
// appends it to the import search directories, after any given with
// --search-dir.
func ModuleDir(scriptPath string) string {
	return filepath.Dir(scriptPath)
}
