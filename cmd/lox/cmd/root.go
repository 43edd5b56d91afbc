package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	// Verbose toggles extra diagnostic printing (module load tracing,
	// instance identity tags) across the run/tokens/ast subcommands.
	Verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "lox",
	Short: "A tree-walking interpreter for Lox",
	Long: `lox is a tree-walking interpreter for a small dynamically-typed,
lexically-scoped scripting language in the Lox family.

It supports variables, closures, control flow, first-class functions and
lambdas, single-inheritance classes with static methods, and a simple
file-based import mechanism.

Run a script, drop into a REPL, or inspect any stage of the pipeline
(tokens, parsed AST) for debugging.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "verbose output (module load tracing, instance identity tags)")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
