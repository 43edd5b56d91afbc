package interp_test

import (
	"strings"
	"testing"
	"time"

	"github.com/rdleon/lox-go/internal/diag"
	"github.com/rdleon/lox-go/internal/interp"
	"github.com/rdleon/lox-go/internal/lexer"
	"github.com/rdleon/lox-go/internal/parser"
	"github.com/rdleon/lox-go/internal/resolver"
)

// run lexes, parses, resolves, and interprets source, returning everything
// `println`/`print` wrote and the diagnostics the reporter accumulated.
// This mirrors the real lex->parse->resolve->interpret pipeline
// (internal/lox.Session.Run) at a level fine-grained enough to check
// individual runtime semantics.
func run(t *testing.T, source string) (output string, reporter *diag.Reporter) {
	t.Helper()

	var out, errs strings.Builder
	reporter = diag.New(&errs)
	ev := interp.New(reporter, interp.WithStdout(&out), interp.WithClock(func() time.Time {
		return time.Unix(0, 0)
	}))

	l := lexer.New(source)
	tokens := l.Tokens()
	if len(l.Errors()) > 0 {
		t.Fatalf("unexpected lex errors: %v", l.Errors())
	}

	p := parser.New(tokens)
	stmts := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}

	res := resolver.New(ev, reporter, nil, nil)
	res.Resolve(stmts)
	if reporter.HadError() {
		t.Fatalf("unexpected resolve errors: %s", errs.String())
	}

	ev.Interpret()
	return out.String(), reporter
}

func TestPrintArithmetic(t *testing.T) {
	out, reporter := run(t, `print 1 + 2 * 3;`)
	if reporter.HadRuntimeError() {
		t.Fatalf("unexpected runtime error")
	}
	if out != "7\n" {
		t.Errorf("got %q, want %q", out, "7\n")
	}
}

func TestStringConcatenationCoercesNonStringOperand(t *testing.T) {
	out, reporter := run(t, `print "count: " + 3;`)
	if reporter.HadRuntimeError() {
		t.Fatalf("unexpected runtime error")
	}
	if out != "count: 3\n" {
		t.Errorf("got %q, want %q", out, "count: 3\n")
	}
}

func TestDivideByZeroIsRuntimeError(t *testing.T) {
	_, reporter := run(t, `print 1 / 0;`)
	if !reporter.HadRuntimeError() {
		t.Errorf("expected a runtime error for division by zero")
	}
}

func TestClosureCapturesVariableByReference(t *testing.T) {
	out, reporter := run(t, `
fun makeCounter() {
  var count = 0;
  fun increment() {
    count = count + 1;
    print count;
  }
  return increment;
}
var counter = makeCounter();
counter();
counter();
counter();
`)
	if reporter.HadRuntimeError() {
		t.Fatalf("unexpected runtime error")
	}
	if out != "1\n2\n3\n" {
		t.Errorf("got %q, want %q", out, "1\n2\n3\n")
	}
}

func TestInheritanceAndSuperCall(t *testing.T) {
	out, reporter := run(t, `
class Animal {
  speak() { print "..."; }
}
class Dog < Animal {
  speak() {
    super.speak();
    print "Woof";
  }
}
Dog().speak();
`)
	if reporter.HadRuntimeError() {
		t.Fatalf("unexpected runtime error")
	}
	if out != "...\nWoof\n" {
		t.Errorf("got %q, want %q", out, "...\nWoof\n")
	}
}

func TestInitializerAlwaysReturnsThis(t *testing.T) {
	out, reporter := run(t, `
class Point {
  init(x, y) {
    this.x = x;
    this.y = y;
    return;
  }
}
var p = Point(1, 2);
print p.x;
print p.y;
`)
	if reporter.HadRuntimeError() {
		t.Fatalf("unexpected runtime error")
	}
	if out != "1\n2\n" {
		t.Errorf("got %q, want %q", out, "1\n2\n")
	}
}

func TestArityMismatchIsRuntimeError(t *testing.T) {
	_, reporter := run(t, `
fun add(a, b) { return a + b; }
add(1);
`)
	if !reporter.HadRuntimeError() {
		t.Errorf("expected a runtime error for a wrong argument count")
	}
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	_, reporter := run(t, `
var notAFunction = 1;
notAFunction();
`)
	if !reporter.HadRuntimeError() {
		t.Errorf("expected a runtime error for calling a non-callable value")
	}
}

func TestStaticMethodCallsWithoutAnInstance(t *testing.T) {
	out, reporter := run(t, `
class MathUtil {
  static square(n) { return n * n; }
}
print MathUtil.square(4);
`)
	if reporter.HadRuntimeError() {
		t.Fatalf("unexpected runtime error: %v", reporter)
	}
	if out != "16\n" {
		t.Errorf("got %q, want %q", out, "16\n")
	}
}

func TestCallingNonStaticMethodOnClassIsRuntimeError(t *testing.T) {
	_, reporter := run(t, `
class A { greet() { print "hi"; } }
A.greet();
`)
	if !reporter.HadRuntimeError() {
		t.Errorf("expected a runtime error: non-static methods can't be called on the class itself")
	}
}

func TestForLoopDesugaring(t *testing.T) {
	out, reporter := run(t, `
for (var i = 0; i < 3; i = i + 1) {
  print i;
}
`)
	if reporter.HadRuntimeError() {
		t.Fatalf("unexpected runtime error")
	}
	if out != "0\n1\n2\n" {
		t.Errorf("got %q, want %q", out, "0\n1\n2\n")
	}
}

func TestLambdaExpressionIsCallable(t *testing.T) {
	out, reporter := run(t, `
var square = fun(n) { return n * n; };
print square(5);
`)
	if reporter.HadRuntimeError() {
		t.Fatalf("unexpected runtime error")
	}
	if out != "25\n" {
		t.Errorf("got %q, want %q", out, "25\n")
	}
}

func TestUndefinedPropertyIsRuntimeError(t *testing.T) {
	_, reporter := run(t, `
class A {}
print A().missing;
`)
	if !reporter.HadRuntimeError() {
		t.Errorf("expected a runtime error for an undefined property")
	}
}

func TestFieldsAreSetAdHoc(t *testing.T) {
	out, reporter := run(t, `
class A {}
var a = A();
a.name = "widget";
print a.name;
`)
	if reporter.HadRuntimeError() {
		t.Fatalf("unexpected runtime error")
	}
	if out != "widget\n" {
		t.Errorf("got %q, want %q", out, "widget\n")
	}
}

func TestNativeClockIsCallableWithNoArguments(t *testing.T) {
	out, reporter := run(t, `print clock() >= 0;`)
	if reporter.HadRuntimeError() {
		t.Fatalf("unexpected runtime error")
	}
	if out != "true\n" {
		t.Errorf("got %q, want %q", out, "true\n")
	}
}
