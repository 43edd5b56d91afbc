package ast

import (
	"fmt"
	"strings"

	"github.com/rdleon/lox-go/internal/token"
)

// Print renders a statement as an S-expression-like string for debugging.
// This is a debugging aid (the `ast` CLI subcommand), not a language
// feature — it mirrors cpplox's AstPrinter, extended from expressions to
// the full statement set.
func Print(stmt Stmt) string {
	var sb strings.Builder
	printStmt(&sb, stmt, 0)
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func printStmt(sb *strings.Builder, stmt Stmt, depth int) {
	indent(sb, depth)
	switch s := stmt.(type) {
	case *ExprStmt:
		fmt.Fprintf(sb, "(expr %s)\n", printExpr(s.Expression))
	case *PrintStmt:
		fmt.Fprintf(sb, "(print %s)\n", printExpr(s.Expression))
	case *VarStmt:
		if s.Initializer != nil {
			fmt.Fprintf(sb, "(var %s %s)\n", s.Name.Lexeme, printExpr(s.Initializer))
		} else {
			fmt.Fprintf(sb, "(var %s)\n", s.Name.Lexeme)
		}
	case *BlockStmt:
		sb.WriteString("(block\n")
		for _, inner := range s.Statements {
			printStmt(sb, inner, depth+1)
		}
		indent(sb, depth)
		sb.WriteString(")\n")
	case *IfStmt:
		fmt.Fprintf(sb, "(if %s\n", printExpr(s.Condition))
		printStmt(sb, s.Then, depth+1)
		if s.Else != nil {
			printStmt(sb, s.Else, depth+1)
		}
		indent(sb, depth)
		sb.WriteString(")\n")
	case *WhileStmt:
		fmt.Fprintf(sb, "(while %s\n", printExpr(s.Condition))
		printStmt(sb, s.Body, depth+1)
		indent(sb, depth)
		sb.WriteString(")\n")
	case *FunctionStmt:
		fmt.Fprintf(sb, "(fun %s (%s)\n", s.Name.Lexeme, paramList(s.Params))
		for _, inner := range s.Body {
			printStmt(sb, inner, depth+1)
		}
		indent(sb, depth)
		sb.WriteString(")\n")
	case *ReturnStmt:
		if s.Value != nil {
			fmt.Fprintf(sb, "(return %s)\n", printExpr(s.Value))
		} else {
			sb.WriteString("(return)\n")
		}
	case *ClassStmt:
		if s.Superclass != nil {
			fmt.Fprintf(sb, "(class %s < %s\n", s.Name.Lexeme, s.Superclass.Name.Lexeme)
		} else {
			fmt.Fprintf(sb, "(class %s\n", s.Name.Lexeme)
		}
		for _, m := range s.Methods {
			printStmt(sb, m, depth+1)
		}
		indent(sb, depth)
		sb.WriteString(")\n")
	case *ImportStmt:
		fmt.Fprintf(sb, "(import %s)\n", s.ModuleName.Lexeme)
	default:
		fmt.Fprintf(sb, "(unknown-stmt %T)\n", s)
	}
}

func paramList(params []token.Token) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Lexeme
	}
	return strings.Join(names, " ")
}

func printExpr(expr Expr) string {
	switch e := expr.(type) {
	case *Literal:
		if e.Value == nil {
			return "nil"
		}
		return fmt.Sprintf("%v", e.Value)
	case *Grouping:
		return parenthesize("group", e.Expression)
	case *Unary:
		return parenthesize(e.Operator.Lexeme, e.Right)
	case *Binary:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Logical:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return parenthesize("= "+e.Name.Lexeme, e.Value)
	case *Call:
		args := make([]Expr, 0, len(e.Arguments)+1)
		args = append(args, e.Callee)
		args = append(args, e.Arguments...)
		return parenthesize("call", args...)
	case *Lambda:
		return fmt.Sprintf("(lambda (%s))", paramList(e.Params))
	case *Get:
		return parenthesize("."+e.Name.Lexeme, e.Object)
	case *Set:
		return parenthesize("set."+e.Name.Lexeme, e.Object, e.Value)
	case *This:
		return "this"
	case *Super:
		return "(super ." + e.Method.Lexeme + ")"
	default:
		return fmt.Sprintf("(unknown-expr %T)", e)
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(name)
	for _, e := range exprs {
		sb.WriteString(" ")
		sb.WriteString(printExpr(e))
	}
	sb.WriteString(")")
	return sb.String()
}
