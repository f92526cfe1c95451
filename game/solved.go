package game

import "mathsearch/expr"

// Solved-shape predicates for the common problem families. The exact
// predicate varies by lesson, so episodes receive one as configuration.

// SingleConstant holds when the whole tree is one constant, e.g. "42".
func SingleConstant(root *expr.Node) bool {
	return root.IsConst()
}

// SingleTerm holds when the tree is one preferred-form term such as "6x" or
// "57y^2", with no arithmetic left to fold.
func SingleTerm(root *expr.Node) bool {
	if _, ok := expr.TermAt(root); !ok {
		return false
	}
	return !expr.HasFoldableConstants(root)
}

// Simplified holds when every top-level operand is a preferred-form term,
// no two of them combine, and no constant arithmetic remains, e.g. "2x + 7"
// or "x^2 + 4x + 4". This is the polynomial-simplification win condition.
func Simplified(root *expr.Node) bool {
	for _, operand := range expr.AdditiveTerms(root) {
		if _, ok := expr.TermAt(operand); !ok {
			return false
		}
	}
	return !expr.HasLikeTerms(root) && !expr.HasFoldableConstants(root)
}
