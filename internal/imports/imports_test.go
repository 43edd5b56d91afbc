package imports

import (
	"os"
	"path/filepath"
	"testing"
)

func writeModule(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name+Extension)
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("failed to write test module: %v", err)
	}
	return path
}

func TestLoadFindsModuleInSearchDir(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "mathutils", "fun square(n) { return n * n; }")

	l := New([]string{dir}, "")
	source, canonical, err := l.Load("mathutils")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != "fun square(n) { return n * n; }" {
		t.Errorf("got source %q", source)
	}
	want, _ := filepath.Abs(filepath.Join(dir, "mathutils.lox"))
	if canonical != want {
		t.Errorf("canonical path = %q, want %q", canonical, want)
	}
}

func TestLoadSearchesDirsInOrder(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeModule(t, dirB, "onlyinb", "var x = 1;")

	l := New([]string{dirA, dirB}, "")
	_, canonical, err := l.Load("onlyinb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Dir(canonical) != mustAbs(t, dirB) {
		t.Errorf("expected module to resolve from dirB, got %q", canonical)
	}
}

func TestLoadMissingModuleIsError(t *testing.T) {
	dir := t.TempDir()
	l := New([]string{dir}, "")
	_, _, err := l.Load("nope")
	if err == nil {
		t.Errorf("expected an error for a module not found in any search directory")
	}
}

func TestLoadRejectsImportingEntryFile(t *testing.T) {
	dir := t.TempDir()
	entry := writeModule(t, dir, "main", "import main;")

	l := New([]string{dir}, entry)
	_, _, err := l.Load("main")
	if err == nil {
		t.Errorf("expected an error: a module cannot import its own entry file")
	}
}

func mustAbs(t *testing.T, p string) string {
	t.Helper()
	abs, err := filepath.Abs(p)
	if err != nil {
		t.Fatalf("filepath.Abs(%q): %v", p, err)
	}
	return abs
}
