package interp

// Callable is the interface every invocable runtime object implements: a
// user function, a lambda, a class (used as its own constructor), a bound
// method, or a native function. Grounded on cpplox's Callable base class
// (original_source/include/callable.h), generalized to Go's interface-based
// polymorphism instead of a virtual base class.
type Callable interface {
	Value
	// Arity is the number of parameters this callable expects.
	Arity() int
	// Call invokes the callable with already-evaluated arguments.
	Call(ev *Evaluator, args []Value) (Value, error)
}
