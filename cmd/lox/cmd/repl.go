package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/rdleon/lox-go/internal/lox"
)

// Color definitions for REPL output, grounded on the same palette as the
// project's reference REPL: blue for decoration, cyan for informational
// text, red for errors.
var (
	blueColor = color.New(color.FgBlue)
	cyanColor = color.New(color.FgCyan)
	redColor  = color.New(color.FgRed)
)

const replPrompt = "lox> "

// startRepl runs an interactive read-eval-print loop. Unlike running a
// file, a single lox.Session is reused across every line entered, so
// top-level `var`, `fun`, and `class` declarations persist between entries.
func startRepl() error {
	printReplBanner(os.Stdout)

	rl, err := readline.New(replPrompt)
	if err != nil {
		return fmt.Errorf("failed to start readline: %w", err)
	}
	defer rl.Close()

	session := lox.NewSession(os.Stdout, os.Stderr, searchDirs, "")
	if Verbose {
		session.SetTrace(os.Stderr)
	}

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(os.Stdout, "Goodbye!")
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			fmt.Fprintln(os.Stdout, "Goodbye!")
			return nil
		}

		rl.SaveHistory(line)
		if code := session.Run(line); code != lox.ExitOK {
			redColor.Fprintf(os.Stderr, "(exited with code %d)\n", code)
		}
	}
}

func printReplBanner(w *os.File) {
	blueColor.Fprintln(w, "lox — a small scripting language")
	cyanColor.Fprintln(w, "Type code and press enter. Type '.exit' to quit.")
}
