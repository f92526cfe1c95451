package expr

import (
	"strconv"
	"strings"
)

// Operator precedence for rendering, mirroring the parse grammar.
const (
	prioAddSub = iota
	prioMulDiv
	prioNeg
	prioPow
	prioLeaf
)

func priority(n *Node) int {
	if n.Kind != Operator {
		return prioLeaf
	}
	switch n.Op {
	case Add, Sub:
		return prioAddSub
	case Mul, Div:
		return prioMulDiv
	case Neg:
		return prioNeg
	default:
		return prioPow
	}
}

// String renders the tree back to text with standard precedence and minimal
// parenthesization. Parsing the result yields a structurally equal tree.
func (n *Node) String() string {
	var b strings.Builder
	render(&b, n)
	return b.String()
}

func render(b *strings.Builder, n *Node) {
	switch n.Kind {
	case Constant:
		b.WriteString(formatConst(n.Value))
	case Variable:
		b.WriteString(n.Name)
	default:
		renderOp(b, n)
	}
}

func renderOp(b *strings.Builder, n *Node) {
	if n.Op == Neg {
		b.WriteByte('-')
		renderChild(b, n.Left(), priority(n.Left()) < prioNeg)
		return
	}

	// Compact form for coefficient-times-variable products: "4x", "4x^2"
	if n.Op == Mul && compactProduct(n) {
		render(b, n.Left())
		render(b, n.Right())
		return
	}

	left, right := n.Left(), n.Right()
	prio := priority(n)
	// Left-associative operators parenthesize a looser right side; the
	// right-associative ^ is the mirror image.
	leftParens := priority(left) < prio
	rightParens := priority(right) <= prio
	if n.Op == Pow {
		leftParens = priority(left) <= prio
		rightParens = priority(right) < prio
	}

	renderChild(b, left, leftParens)
	if n.Op == Pow {
		b.WriteByte('^')
	} else {
		b.WriteByte(' ')
		b.WriteByte(byte(n.Op))
		b.WriteByte(' ')
	}
	renderChild(b, right, rightParens)
}

func renderChild(b *strings.Builder, n *Node, parens bool) {
	if parens {
		b.WriteByte('(')
		render(b, n)
		b.WriteByte(')')
		return
	}
	render(b, n)
}

// compactProduct reports whether a multiplication renders without the "*",
// e.g. Const*Var or Const*Var^Const. Negative coefficients keep the operator
// so "-4 * x" stays unambiguous next to subtraction.
func compactProduct(n *Node) bool {
	left, right := n.Left(), n.Right()
	if !left.IsConst() || left.Value < 0 {
		return false
	}
	if right.IsVar() {
		return true
	}
	return right.IsOp(Pow) && right.Left().IsVar() && right.Right().IsConst()
}

func formatConst(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
