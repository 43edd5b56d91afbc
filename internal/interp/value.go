// Package interp provides the tree-walking evaluator and runtime object
// model for the language: the environment chain, the Value variants, user
// functions, classes, instances, and native callables.
package interp

import (
	"strconv"
)

// Value is a runtime value. All runtime values must implement this
// interface — the interpreter never reaches for Go's `any` to represent a
// script-level value directly, so a type switch over Value is exhaustive
// over exactly the six variants it names.
type Value interface {
	// Type returns the variant name, e.g. "NUMBER", used in diagnostics.
	Type() string
	// String renders the value the way `println`/string concatenation do.
	String() string
}

// Nil is the sole value of the Nil variant.
type Nil struct{}

func (Nil) Type() string   { return "NIL" }
func (Nil) String() string { return "nil" }

// NilValue is the single shared Nil instance; Value equality for Nil
// compares by variant, not by pointer, so any Nil{} works, but callers use
// this one for convenience.
var NilValue = Nil{}

// Bool is the Bool variant.
type Bool bool

func (b Bool) Type() string { return "BOOLEAN" }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Number is the Number variant: a single IEEE-754 double
type Number float64

func (Number) Type() string { return "NUMBER" }
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// String is the String variant.
type String string

func (String) Type() string     { return "STRING" }
func (s String) String() string { return string(s) }

// IsTruthy implements the language's truthiness rule: only Nil and
// Bool(false) are false, everything else is true.
func IsTruthy(v Value) bool {
	switch vv := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(vv)
	default:
		return true
	}
}

// Equal implements the language's equality rule: Nil equals only Nil,
// cross-variant comparisons are false (not an error), and same-variant
// comparisons use the contained primitive's own equality.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case *Instance:
		bv, ok := b.(*Instance)
		return ok && av == bv
	default:
		// Callables compare by identity.
		return a == b
	}
}
