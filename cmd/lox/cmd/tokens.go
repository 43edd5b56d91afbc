package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rdleon/lox-go/internal/diag"
	"github.com/rdleon/lox-go/internal/lox"
	"github.com/rdleon/lox-go/internal/token"
	"github.com/spf13/cobra"
)

var (
	showPos    bool
	onlyErrors bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Tokenize a script and print the resulting tokens",
	Long: `Tokenize a program and print the resulting token stream.

This command is useful for debugging the lexer and understanding how
source is tokenized. If no file is given, reads from stdin.

Examples:
  lox tokens script.lox
  lox tokens -e "var x = 42;"
  lox tokens --show-pos script.lox
  lox tokens --only-errors script.lox`,
	Args: cobra.MaximumNArgs(1),
	RunE: tokenizeScript,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	tokensCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	tokensCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal tokens")
}

func tokenizeScript(_ *cobra.Command, args []string) error {
	var input string
	switch {
	case evalExpr != "":
		input = evalExpr
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		input = string(content)
	default:
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		input = string(content)
	}

	reporter := diag.New(os.Stderr)
	tokens, lexErrs := lox.Tokenize(input, reporter)

	count, errCount := 0, 0
	for _, tok := range tokens {
		isIllegal := tok.Kind == token.ILLEGAL
		if onlyErrors && !isIllegal {
			continue
		}
		count++
		if isIllegal {
			errCount++
		}
		printToken(tok)
	}

	if Verbose {
		fmt.Fprintf(os.Stderr, "printed %d token(s), %d illegal\n", count, errCount)
	}

	if len(lexErrs) > 0 {
		return fmt.Errorf("found %d lexical error(s)", len(lexErrs))
	}
	return nil
}

func printToken(tok token.Token) {
	output := fmt.Sprintf("[%-12s] %q", tok.Kind, tok.Lexeme)
	if showPos {
		output += fmt.Sprintf(" @%d:%d", tok.Line, tok.Column)
	}
	fmt.Println(output)
}
