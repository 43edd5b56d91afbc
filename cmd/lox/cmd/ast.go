package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rdleon/lox-go/internal/ast"
	"github.com/rdleon/lox-go/internal/diag"
	"github.com/rdleon/lox-go/internal/lox"
	"github.com/spf13/cobra"
)

var astExpression bool

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Parse a script and print its AST",
	Long: `Parse source code and print the resulting abstract syntax tree as
S-expressions, each top-level statement starting on a new line (blocks,
functions and classes span several indented lines).

If no file is given, reads from stdin. Use -e to parse a single
expression statement from the command line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAst,
}

func init() {
	rootCmd.AddCommand(astCmd)

	astCmd.Flags().BoolVarP(&astExpression, "expression", "e", false, "parse an expression from the command line")
}

func runAst(_ *cobra.Command, args []string) error {
	var input string
	switch {
	case astExpression:
		if len(args) == 0 {
			return fmt.Errorf("no expression provided")
		}
		input = args[0] + ";"
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		input = string(data)
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		input = string(data)
	}

	reporter := diag.New(os.Stderr)
	tokens, lexErrs := lox.Tokenize(input, reporter)
	if len(lexErrs) > 0 {
		return fmt.Errorf("tokenizing failed with %d error(s)", len(lexErrs))
	}

	stmts, parseErrs := lox.Parse(tokens, reporter)
	if len(parseErrs) > 0 {
		return fmt.Errorf("parsing failed with %d error(s)", len(parseErrs))
	}

	for _, stmt := range stmts {
		fmt.Print(ast.Print(stmt))
	}
	if Verbose {
		fmt.Fprintf(os.Stderr, "parsed %d top-level statement(s)\n", len(stmts))
	}
	return nil
}
