// Package predicate lets test conditions be written as small expression trees that keep
// their operands, so that a failed assertion can show what was actually compared:
//
//	predicate.Require(t, predicate.And(len(items), err == nil))
//	// Predicate failure in store_test.go at line 42: ( 0 && true )
//
// The set of expression kinds is closed. Evaluation and rendering are implemented once, by
// matching on the kind, in Eval and Render.
//
// Both operands of every binary predicate are always evaluated. There is no short-circuit,
// since either side may be needed to explain a failure.
package predicate

// Predicate is a boolean expression node. The only implementations are the types in this
// package; build them with And and Or.
type Predicate interface {
	// Bool evaluates the expression. It is equivalent to Eval(p).
	Bool() bool
	// String renders the expression. It is equivalent to Render(p).
	String() string

	isPredicate()
}

// BinaryPredicate is a Predicate that combines two operands with an operator.
type BinaryPredicate interface {
	Predicate
	Left() any
	Right() any
	// Name is the operator symbol used when rendering.
	Name() string
}

// Booler is implemented by operands that decide their own truth value. Bool is called once
// each time the enclosing predicate is evaluated.
//
// Any operand with a Bool() bool method is treated this way, whatever its type. This includes
// reflect.Value, whose Bool method panics unless the value holds a bool; convert such
// operands with Interface() first.
type Booler interface {
	Bool() bool
}

// AndT is the logical AND of two operands.
type AndT struct {
	left, right any
}

// And builds the logical AND of left and right. Nothing is evaluated until the result is.
func And(left, right any) AndT {
	return AndT{left: left, right: right}
}

func (p AndT) Left() any      { return p.left }
func (p AndT) Right() any     { return p.right }
func (p AndT) Name() string   { return "&&" }
func (p AndT) Bool() bool     { return Eval(p) }
func (p AndT) String() string { return Render(p) }
func (AndT) isPredicate()     {}

// OrT is the logical OR of two operands.
type OrT struct {
	left, right any
}

// Or builds the logical OR of left and right. Nothing is evaluated until the result is.
func Or(left, right any) OrT {
	return OrT{left: left, right: right}
}

func (p OrT) Left() any      { return p.left }
func (p OrT) Right() any     { return p.right }
func (p OrT) Name() string   { return "||" }
func (p OrT) Bool() bool     { return Eval(p) }
func (p OrT) String() string { return Render(p) }
func (OrT) isPredicate()     {}

// Eval evaluates p bottom-up. Both operands of a binary predicate are converted with Truthy
// before they are combined.
func Eval(p Predicate) bool {
	switch p := p.(type) {
	case AndT:
		left, right := Truthy(p.left), Truthy(p.right)
		return left && right
	case OrT:
		left, right := Truthy(p.left), Truthy(p.right)
		return left || right
	case *AndT:
		return p != nil && Eval(*p)
	case *OrT:
		return p != nil && Eval(*p)
	default:
		panic("predicate: unknown predicate kind")
	}
}
