package predicate

import (
	"fmt"
	"strings"
)

// Render returns the text form of p. A binary predicate is written as
// "( <left> <operator> <right> )". Operands that are predicates are rendered the same way,
// anything else is formatted with %v.
func Render(p Predicate) string {
	var b strings.Builder
	render(&b, p)
	return b.String()
}

func render(b *strings.Builder, p Predicate) {
	switch p := p.(type) {
	case AndT:
		renderBinary(b, p)
	case OrT:
		renderBinary(b, p)
	case *AndT:
		if p == nil {
			b.WriteString("<nil>")
			return
		}
		renderBinary(b, *p)
	case *OrT:
		if p == nil {
			b.WriteString("<nil>")
			return
		}
		renderBinary(b, *p)
	default:
		panic("predicate: unknown predicate kind")
	}
}

func renderBinary(b *strings.Builder, p BinaryPredicate) {
	b.WriteString("( ")
	renderOperand(b, p.Left())
	b.WriteString(" ")
	b.WriteString(p.Name())
	b.WriteString(" ")
	renderOperand(b, p.Right())
	b.WriteString(" )")
}

func renderOperand(b *strings.Builder, v any) {
	if p, ok := v.(Predicate); ok {
		render(b, p)
		return
	}
	fmt.Fprintf(b, "%v", v)
}
