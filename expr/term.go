package expr

// Term is the decomposition of a naturally ordered single term: an optional
// coefficient, an optional variable, and an optional exponent. A bare "x"
// has no explicit coefficient or exponent; both default to 1 when combining.
type Term struct {
	Coefficient    float64
	HasCoefficient bool
	Variable       string
	Exponent       float64
	HasExponent    bool
}

// Coeff returns the coefficient, defaulting the implicit 1.
func (t Term) Coeff() float64 {
	if t.HasCoefficient {
		return t.Coefficient
	}
	return 1
}

// Exp returns the exponent, defaulting the implicit 1.
func (t Term) Exp() float64 {
	if t.HasExponent {
		return t.Exponent
	}
	return 1
}

// TermAt extracts the term components of a node, looking only at the node
// and its immediate children. Recognized shapes: "4", "x", "4x", "x^2",
// "4x^2". Returns false for anything else, including negations and
// unsimplified products.
func TermAt(n *Node) (Term, bool) {
	switch {
	case n.IsConst():
		return Term{Coefficient: n.Value, HasCoefficient: true}, true
	case n.IsVar():
		return Term{Variable: n.Name}, true
	case n.IsOp(Pow):
		if n.Left().IsVar() && n.Right().IsConst() {
			return Term{Variable: n.Left().Name, Exponent: n.Right().Value, HasExponent: true}, true
		}
	case n.IsOp(Mul):
		if !n.Left().IsConst() {
			return Term{}, false
		}
		coefficient := n.Left().Value
		right := n.Right()
		if right.IsVar() {
			return Term{Coefficient: coefficient, HasCoefficient: true, Variable: right.Name}, true
		}
		if right.IsOp(Pow) && right.Left().IsVar() && right.Right().IsConst() {
			return Term{
				Coefficient:    coefficient,
				HasCoefficient: true,
				Variable:       right.Left().Name,
				Exponent:       right.Right().Value,
				HasExponent:    true,
			}, true
		}
	}
	return Term{}, false
}

// TermsAreLike reports whether two terms combine under addition: both
// constant, or the same variable raised to the same power.
func TermsAreLike(a, b Term) bool {
	if a.Variable == "" && b.Variable == "" {
		return true
	}
	return a.Variable == b.Variable && a.Exp() == b.Exp()
}

// AdditiveTerms returns the operand subtrees of the top-level +/- spine,
// left to right. A tree that is not a sum yields itself as the only term.
func AdditiveTerms(root *Node) []*Node {
	if root.IsOp(Add) || root.IsOp(Sub) {
		return append(AdditiveTerms(root.Left()), AdditiveTerms(root.Right())...)
	}
	return []*Node{root}
}

// HasLikeTerms reports whether any two top-level terms of the expression
// would combine, e.g. "2x + 4x" or "1 + y + 3".
func HasLikeTerms(root *Node) bool {
	operands := AdditiveTerms(root)
	if len(operands) < 2 {
		return false
	}
	terms := make([]Term, 0, len(operands))
	for _, operand := range operands {
		term, ok := TermAt(operand)
		if !ok {
			continue
		}
		terms = append(terms, term)
	}
	for i := 0; i < len(terms); i++ {
		for j := i + 1; j < len(terms); j++ {
			if TermsAreLike(terms[i], terms[j]) {
				return true
			}
		}
	}
	return false
}

// HasFoldableConstants reports whether any operator node has two constant
// operands that constant arithmetic could evaluate.
func HasFoldableConstants(root *Node) bool {
	foldable := false
	root.Walk(func(node *Node, _ int) bool {
		if node.Kind == Operator && Arity[node.Op] == 2 &&
			node.Left().IsConst() && node.Right().IsConst() {
			if node.Op == Div && node.Right().Value == 0 {
				return true
			}
			foldable = true
			return false
		}
		return true
	})
	return foldable
}
