package lox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func runSession(t *testing.T, source string) (stdout, diagOut string, code int) {
	t.Helper()
	var out, errs strings.Builder
	session := NewSession(&out, &errs, nil, "")
	code = session.Run(source)
	return out.String(), errs.String(), code
}

func runSessionWithSearchDir(t *testing.T, dir, source string) (stdout, diagOut string, code int) {
	t.Helper()
	var out, errs strings.Builder
	session := NewSession(&out, &errs, []string{dir}, "")
	code = session.Run(source)
	return out.String(), errs.String(), code
}

func TestRunSuccessfulScriptExitsZero(t *testing.T) {
	out, _, code := runSession(t, `print "hello";`)
	if code != ExitOK {
		t.Fatalf("exit code = %d, want %d", code, ExitOK)
	}
	snaps.MatchSnapshot(t, out)
}

func TestRunLexErrorExitsStatic(t *testing.T) {
	_, errs, code := runSession(t, "var x = @;")
	if code != ExitStatic {
		t.Errorf("exit code = %d, want %d (static error)", code, ExitStatic)
	}
	if errs == "" {
		t.Errorf("expected diagnostics output on a lex error")
	}
}

func TestRunParseErrorExitsStatic(t *testing.T) {
	_, _, code := runSession(t, "var x = ;")
	if code != ExitStatic {
		t.Errorf("exit code = %d, want %d (static error)", code, ExitStatic)
	}
}

func TestRunResolveErrorExitsStatic(t *testing.T) {
	_, _, code := runSession(t, "return 1;")
	if code != ExitStatic {
		t.Errorf("exit code = %d, want %d (static error)", code, ExitStatic)
	}
}

func TestRunRuntimeErrorExitsRuntime(t *testing.T) {
	_, _, code := runSession(t, "print 1 / 0;")
	if code != ExitRuntime {
		t.Errorf("exit code = %d, want %d (runtime error)", code, ExitRuntime)
	}
}

func TestSessionPersistsStateAcrossRunCalls(t *testing.T) {
	var out, errs strings.Builder
	session := NewSession(&out, &errs, nil, "")

	if code := session.Run("var counter = 0;"); code != ExitOK {
		t.Fatalf("first Run failed with exit code %d: %s", code, errs.String())
	}
	if code := session.Run("counter = counter + 1; print counter;"); code != ExitOK {
		t.Fatalf("second Run failed with exit code %d: %s", code, errs.String())
	}
	if code := session.Run("print counter;"); code != ExitOK {
		t.Fatalf("third Run failed with exit code %d: %s", code, errs.String())
	}

	if got, want := out.String(), "1\n1\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestImportedModuleStatementsRunBeforeImportingModuleContinues(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "greeter.lox"), []byte(`print 0;`), 0o644); err != nil {
		t.Fatalf("failed to write test module: %v", err)
	}

	out, errs, code := runSessionWithSearchDir(t, dir, `import greeter; print 1;`)
	if code != ExitOK {
		t.Fatalf("exit code = %d, want %d: %s", code, ExitOK, errs)
	}
	if want := "0\n1\n"; out != want {
		t.Errorf("got %q, want %q: imported module's statements must run before the statement after the import", out, want)
	}
}

func TestModuleDirReturnsScriptDirectory(t *testing.T) {
	if got, want := ModuleDir("/scripts/main.lox"), "/scripts"; got != want {
		t.Errorf("ModuleDir = %q, want %q", got, want)
	}
}
