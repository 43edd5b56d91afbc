package interp

import "fmt"

// nativeFunction is a Callable backed by a Go closure rather than an AST
// node, grounded on cpplox's ClockFunction/PrintlnFunction
// (original_source/include/native_functions/{clock_fn,println}.h): each
// native function there is a standalone Callable subclass with a fixed
// arity. Go has no need for one type per native — a shared wrapper plus a
// closure captures the same contract.
type nativeFunction struct {
	name  string
	arity int
	fn    func(ev *Evaluator, args []Value) (Value, error)
}

func (n *nativeFunction) Type() string     { return "FUNCTION" }
func (n *nativeFunction) String() string   { return fmt.Sprintf("<native fn %s>", n.name) }
func (n *nativeFunction) Arity() int       { return n.arity }
func (n *nativeFunction) Call(ev *Evaluator, args []Value) (Value, error) {
	return n.fn(ev, args)
}

// registerNatives binds `clock` and `println` into the global environment,
// clock uses the Evaluator's configured Clock option so
// tests can supply a deterministic time source.
func (ev *Evaluator) registerNatives() {
	ev.globals.Define("clock", &nativeFunction{
		name:  "clock",
		arity: 0,
		fn: func(ev *Evaluator, args []Value) (Value, error) {
			return Number(ev.clock().UnixMilli()), nil
		},
	})

	ev.globals.Define("println", &nativeFunction{
		name:  "println",
		arity: 1,
		fn: func(ev *Evaluator, args []Value) (Value, error) {
			fmt.Fprintln(ev.stdout, args[0].String())
			return NilValue, nil
		},
	})
}
