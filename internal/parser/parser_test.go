package parser

import (
	"fmt"
	"testing"

	"github.com/rdleon/lox-go/internal/ast"
	"github.com/rdleon/lox-go/internal/lexer"
)

// testParser lexes input and returns a Parser ready to call ParseProgram.
func testParser(input string) *Parser {
	l := lexer.New(input)
	return New(l.Tokens())
}

func checkParserErrors(t *testing.T, p *Parser) {
	t.Helper()
	errs := p.Errors()
	if len(errs) == 0 {
		return
	}
	t.Errorf("parser has %d errors", len(errs))
	for _, e := range errs {
		t.Errorf("parser error: %s", e.Error())
	}
	t.FailNow()
}

func TestExpressionStatementPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3;", "(+ 1 (* 2 3))"},
		{"(1 + 2) * 3;", "(* (group (+ 1 2)) 3)"},
		{"-1 + 2;", "(+ (- 1) 2)"},
		{"1 < 2 == 3 < 4;", "(== (< 1 2) (< 3 4))"},
		{"a or b and c;", "(or a (and b c))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := testParser(tt.input)
			program := p.ParseProgram()
			checkParserErrors(t, p)

			if len(program) != 1 {
				t.Fatalf("expected 1 statement, got %d", len(program))
			}
			out := ast.Print(program[0])
			if want := fmt.Sprintf("(expr %s)\n", tt.want); out != want {
				t.Errorf("got %q, want %q", out, want)
			}
		})
	}
}

func TestVarDeclarationWithoutInitializerBindsNil(t *testing.T) {
	p := testParser("var a;")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	stmt, ok := program[0].(*ast.VarStmt)
	if !ok {
		t.Fatalf("expected *ast.VarStmt, got %T", program[0])
	}
	if stmt.Initializer != nil {
		t.Errorf("expected nil initializer, got %#v", stmt.Initializer)
	}
}

func TestForLoopDesugarsToWhile(t *testing.T) {
	p := testParser("for (var i = 0; i < 3; i = i + 1) print i;")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	block, ok := program[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("expected desugared for-loop to be a BlockStmt, got %T", program[0])
	}
	if len(block.Statements) != 2 {
		t.Fatalf("expected [initializer, while], got %d statements", len(block.Statements))
	}
	if _, ok := block.Statements[0].(*ast.VarStmt); !ok {
		t.Errorf("expected first statement to be the initializer VarStmt, got %T", block.Statements[0])
	}
	whileStmt, ok := block.Statements[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected second statement to be a WhileStmt, got %T", block.Statements[1])
	}
	body, ok := whileStmt.Body.(*ast.BlockStmt)
	if !ok {
		t.Fatalf("expected while body wrapping [body, increment], got %T", whileStmt.Body)
	}
	if len(body.Statements) != 2 {
		t.Errorf("expected [body, increment], got %d statements", len(body.Statements))
	}
}

func TestForLoopWithMissingClausesDesugarsToInfiniteWhile(t *testing.T) {
	p := testParser("for (;;) print 1;")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	whileStmt, ok := program[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected bare WhileStmt when init/increment omitted, got %T", program[0])
	}
	lit, ok := whileStmt.Condition.(*ast.Literal)
	if !ok || lit.Value != true {
		t.Errorf("expected condition to default to literal true, got %#v", whileStmt.Condition)
	}
}

func TestClassDeclarationWithSuperclassAndStaticMethod(t *testing.T) {
	input := `
class Base {
  greet() { print "hi"; }
}
class Derived < Base {
  static make() { return Derived(); }
}
`
	p := testParser(input)
	program := p.ParseProgram()
	checkParserErrors(t, p)

	if len(program) != 2 {
		t.Fatalf("expected 2 class statements, got %d", len(program))
	}
	derived, ok := program[1].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("expected *ast.ClassStmt, got %T", program[1])
	}
	if derived.Superclass == nil || derived.Superclass.Name.Lexeme != "Base" {
		t.Errorf("expected superclass Base, got %#v", derived.Superclass)
	}
	if len(derived.Methods) != 1 || !derived.Methods[0].IsStatic {
		t.Errorf("expected one static method, got %#v", derived.Methods)
	}
}

func TestInvalidAssignmentTargetIsReportedButDoesNotAbortParsing(t *testing.T) {
	p := testParser("1 + 2 = 3; print 1;")
	program := p.ParseProgram()

	if len(p.Errors()) == 0 {
		t.Fatalf("expected an 'Invalid assignment target' error")
	}
	found := false
	for _, e := range p.Errors() {
		if e.Message == "Invalid assignment target." {
			found = true
		}
	}
	if !found {
		t.Errorf("errors = %v, want one mentioning invalid assignment target", p.Errors())
	}
	if len(program) != 2 {
		t.Errorf("expected parsing to continue past the bad statement, got %d statements", len(program))
	}
}

func TestMissingSemicolonSynchronizesAtNextStatement(t *testing.T) {
	p := testParser("var a = 1\nvar b = 2;")
	p.ParseProgram()

	if len(p.Errors()) == 0 {
		t.Fatalf("expected a missing-';' error")
	}
}

func TestLambdaExpression(t *testing.T) {
	p := testParser("var f = fun(a, b) { return a + b; };")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	stmt, ok := program[0].(*ast.VarStmt)
	if !ok {
		t.Fatalf("expected *ast.VarStmt, got %T", program[0])
	}
	lambda, ok := stmt.Initializer.(*ast.Lambda)
	if !ok {
		t.Fatalf("expected *ast.Lambda initializer, got %T", stmt.Initializer)
	}
	if len(lambda.Params) != 2 {
		t.Errorf("expected 2 params, got %d", len(lambda.Params))
	}
}

func TestGetAndSetExpressions(t *testing.T) {
	p := testParser("a.b.c = 1;")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	exprStmt, ok := program[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected *ast.ExprStmt, got %T", program[0])
	}
	set, ok := exprStmt.Expression.(*ast.Set)
	if !ok {
		t.Fatalf("expected *ast.Set, got %T", exprStmt.Expression)
	}
	if set.Name.Lexeme != "c" {
		t.Errorf("expected set target 'c', got %q", set.Name.Lexeme)
	}
	if _, ok := set.Object.(*ast.Get); !ok {
		t.Errorf("expected nested Get for 'a.b', got %T", set.Object)
	}
}

func TestSuperMethodCall(t *testing.T) {
	p := testParser(`
class A { greet() { print "a"; } }
class B < A { greet() { super.greet(); } }
`)
	program := p.ParseProgram()
	checkParserErrors(t, p)

	b := program[1].(*ast.ClassStmt)
	body := b.Methods[0].Body
	exprStmt := body[0].(*ast.ExprStmt)
	call := exprStmt.Expression.(*ast.Call)
	super, ok := call.Callee.(*ast.Super)
	if !ok {
		t.Fatalf("expected *ast.Super callee, got %T", call.Callee)
	}
	if super.Method.Lexeme != "greet" {
		t.Errorf("expected super.greet, got super.%s", super.Method.Lexeme)
	}
}

func TestImportStatement(t *testing.T) {
	p := testParser("import mathutils;")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	imp, ok := program[0].(*ast.ImportStmt)
	if !ok {
		t.Fatalf("expected *ast.ImportStmt, got %T", program[0])
	}
	if imp.ModuleName.Lexeme != "mathutils" {
		t.Errorf("expected module name 'mathutils', got %q", imp.ModuleName.Lexeme)
	}
}

func TestTooManyArgumentsIsReportedNotFatal(t *testing.T) {
	args := ""
	for i := 0; i < 256; i++ {
		if i > 0 {
			args += ", "
		}
		args += "1"
	}
	p := testParser(fmt.Sprintf("f(%s);", args))
	p.ParseProgram()

	found := false
	for _, e := range p.Errors() {
		if e.Message == "Can't have more than 255 arguments." {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a 'more than 255 arguments' error, errors = %v", p.Errors())
	}
}
