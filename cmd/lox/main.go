// Command lox is a tree-walking interpreter for a small dynamically-typed,
// lexically-scoped scripting language in the Lox family.
package main

import (
	"fmt"
	"os"

	"github.com/rdleon/lox-go/cmd/lox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
