package cmd

import (
	"fmt"
	"os"

	"github.com/rdleon/lox-go/internal/lox"
	"github.com/spf13/cobra"
)

var (
	evalExpr   string
	searchDirs []string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a script",
	Long: `Execute a program from a file or an inline expression.

If neither a file nor -e is given, starts an interactive REPL instead.

Examples:
  # Run a script file
  lox run script.lox

  # Evaluate inline code
  lox run -e "print \"Hello, world!\";"

  # Add extra directories to search for imported modules
  lox run --search-dir ./lib script.lox`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().StringSliceVar(&searchDirs, "search-dir", nil, "additional directory to search for imported modules (repeatable)")
}

func runScript(_ *cobra.Command, args []string) error {
	if evalExpr == "" && len(args) == 0 {
		return startRepl()
	}

	var input, filename string
	if evalExpr != "" {
		input = evalExpr
		filename = ""
	} else {
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	}

	dirs := searchDirs
	if filename != "" {
		dirs = append(dirs, lox.ModuleDir(filename))
	}

	session := lox.NewSession(os.Stdout, os.Stderr, dirs, filename)
	if Verbose {
		session.SetTrace(os.Stderr)
	}
	code := session.Run(input)
	if code != lox.ExitOK {
		os.Exit(code)
	}
	return nil
}
