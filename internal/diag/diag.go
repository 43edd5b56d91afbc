// Package diag is the diagnostics sink consulted by every other stage of
// the interpreter (lexer, parser, resolver, evaluator). It accumulates the
// two process-wide flags `had_error` and `had_runtime_error`,
// and formats each reported problem with its source line and a caret
// pointing at the offending span.
//
// This package never writes ANSI color codes itself — that is a CLI-layer
// concern (see cmd/lox/cmd), kept separate so diag.Reporter stays usable
// from tests and from non-terminal output.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/rdleon/lox-go/internal/token"
)

// RuntimeError is a runtime fault that unwinds to the evaluator's
// interpret() boundary: type mismatch, undefined variable/property, bad
// callee, wrong arity, divide-by-zero, invalid super target, or a property
// assignment on a class. It carries the token nearest the fault so the
// reporter can print source context.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// Reporter accumulates had_error/had_runtime_error and writes formatted
// diagnostics to Out. The zero value is not usable; construct with New.
type Reporter struct {
	Out io.Writer

	hadError        bool
	hadRuntimeError bool
}

// New creates a Reporter that writes formatted diagnostics to out.
func New(out io.Writer) *Reporter {
	return &Reporter{Out: out}
}

// HadError reports whether any lex, parse, or resolve error has been
// reported since the Reporter was created (or last Reset).
func (r *Reporter) HadError() bool { return r.hadError }

// HadRuntimeError reports whether RuntimeError has been called.
func (r *Reporter) HadRuntimeError() bool { return r.hadRuntimeError }

// Reset clears both flags, e.g. between REPL entries.
func (r *Reporter) Reset() {
	r.hadError = false
	r.hadRuntimeError = false
}

// Error reports a static error (parse or resolve) anchored at a token. If
// the token is EOF, it is reported as "at end" rather than quoting an empty
// lexeme.
func (r *Reporter) Error(tok token.Token, message string) {
	r.hadError = true
	where := "at '" + tok.Lexeme + "'"
	if tok.Kind == token.EOF {
		where = "at end"
	}
	r.report(tok.Line, tok.Column, "error", where, tok.LineText, message)
}

// ErrorAt reports a lex error at an explicit position, before a Token value
// exists for the offending character.
func (r *Reporter) ErrorAt(line, column int, char, lineText, message string) {
	r.hadError = true
	r.report(line, column, "error", "at '"+char+"'", lineText, message)
}

// RuntimeError reports a runtime fault and sets had_runtime_error. It never
// panics or otherwise propagates — callers are expected to have already
// unwound to interpret()'s boundary.
func (r *Reporter) RuntimeError(err *RuntimeError) {
	r.hadRuntimeError = true
	tok := err.Token
	where := "at '" + tok.Lexeme + "'"
	if tok.Kind == token.EOF {
		where = "at end"
	}
	r.report(tok.Line, tok.Column, "runtime error", where, tok.LineText, err.Message)
}

// Warning reports a non-fatal diagnostic; it does not set had_error.
func (r *Reporter) Warning(tok token.Token, message string) {
	where := "at '" + tok.Lexeme + "'"
	if tok.Kind == token.EOF {
		where = "at end"
	}
	r.report(tok.Line, tok.Column, "warning", where, tok.LineText, message)
}

// DebugError reports an internal-invariant message with no source
// position, e.g. a resolver bug surfaced defensively. It sets had_error.
func (r *Reporter) DebugError(message string) {
	r.hadError = true
	fmt.Fprintf(r.Out, "[internal] %s\n", message)
}

func (r *Reporter) report(line, column int, category, where, lineText, message string) {
	fmt.Fprintf(r.Out, "[%d, %d] %s %s: %s\n", line, column, category, where, message)
	if lineText == "" {
		return
	}
	fmt.Fprintf(r.Out, "    %s\n", lineText)
	if column > 0 {
		fmt.Fprintf(r.Out, "    %s^\n", strings.Repeat(" ", column-1))
	}
}
