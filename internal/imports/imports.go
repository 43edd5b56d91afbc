// Package imports locates and reads the source of `import`ed modules: it
// searches a list of directories for a file matching a module name and
// rejects a module that is the program's own entry file. It keeps no
// record of earlier loads; repeat imports are detected by the resolver.
package imports

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Extension is the file extension a module name is searched for.
const Extension = ".lox"

// Loader searches a configured list of directories for `name.lox` and
// rejects an attempt to import the program's own entry file.
type Loader struct {
	searchDirs []string
	entryPath  string
	trace      io.Writer
}

// New creates a Loader. entryPath is the absolute path of the file or REPL
// buffer being interpreted, used to reject self-import; pass "" if there
// is no meaningful entry file (e.g. a REPL session with no backing file).
func New(searchDirs []string, entryPath string) *Loader {
	abs := entryPath
	if entryPath != "" {
		if a, err := filepath.Abs(entryPath); err == nil {
			abs = a
		}
	}
	return &Loader{searchDirs: append([]string(nil), searchDirs...), entryPath: abs}
}

// SetTrace turns on per-module load tracing (the `--verbose` CLI flag):
// every candidate path tried is written to w as "searching <path>", and
// the one found as "loaded '<name>' from <path>".
func (l *Loader) SetTrace(w io.Writer) {
	l.trace = w
}

// Load implements internal/resolver.ModuleLoader: it tries each search
// directory in order for "<dir>/<name>.lox", returning the first match's
// contents and canonical (absolute) path.
func (l *Loader) Load(name string) (source, canonicalPath string, err error) {
	for _, dir := range l.searchDirs {
		candidate := filepath.Join(dir, name+Extension)
		if l.trace != nil {
			fmt.Fprintf(l.trace, "searching %s\n", candidate)
		}
		data, err := os.ReadFile(candidate)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", "", fmt.Errorf("import '%s': %w", name, err)
		}

		abs, absErr := filepath.Abs(candidate)
		if absErr != nil {
			abs = candidate
		}
		if l.entryPath != "" && abs == l.entryPath {
			return "", "", fmt.Errorf("module '%s' imports the current source file", name)
		}
		if l.trace != nil {
			fmt.Fprintf(l.trace, "loaded '%s' from %s\n", name, abs)
		}
		return string(data), abs, nil
	}
	return "", "", fmt.Errorf("module '%s' not found in any search directory", name)
}
