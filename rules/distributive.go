package rules

import "mathsearch/expr"

// Distributive Factor Out: ax + bx -> (a + b)x for two like terms joined by
// addition, counting the implicit coefficient 1 of a bare term. This is the
// rule that moves like terms toward combination.

func canFactorOut(root *expr.Node, addr int) bool {
	node := expr.At(root, addr)
	if node == nil || !node.IsOp(expr.Add) {
		return false
	}
	left, lok := expr.TermAt(node.Left())
	right, rok := expr.TermAt(node.Right())
	if !lok || !rok {
		return false
	}
	// Two bare constants fold with constant arithmetic instead.
	if left.Variable == "" || right.Variable == "" {
		return false
	}
	return expr.TermsAreLike(left, right)
}

func applyFactorOut(root *expr.Node, addr int) *expr.Node {
	node := expr.At(root, addr)
	left, _ := expr.TermAt(node.Left())
	right, _ := expr.TermAt(node.Right())

	factor := expr.Var(left.Variable)
	if left.HasExponent {
		factor = expr.Binary(expr.Pow, factor, expr.Const(left.Exponent))
	}
	sum := expr.Binary(expr.Add, expr.Const(left.Coeff()), expr.Const(right.Coeff()))
	return expr.Replace(root, addr, expr.Binary(expr.Mul, sum, factor))
}

// Distributive Multiply: the inverse direction, (a + b) * x -> a*x + b*x,
// in either orientation of the product.

func canDistribute(root *expr.Node, addr int) bool {
	node := expr.At(root, addr)
	if node == nil || !node.IsOp(expr.Mul) {
		return false
	}
	return node.Left().IsOp(expr.Add) || node.Right().IsOp(expr.Add)
}

func applyDistribute(root *expr.Node, addr int) *expr.Node {
	node := expr.At(root, addr)

	var a, b, x *expr.Node
	var products *expr.Node
	if node.Left().IsOp(expr.Add) {
		// (a + b) * x -> a*x + b*x
		a, b, x = node.Left().Left(), node.Left().Right(), node.Right()
		products = expr.Binary(expr.Add,
			expr.Binary(expr.Mul, a, x),
			// The shared factor appears twice in the result; clone to keep
			// node pointers unique within the tree.
			expr.Binary(expr.Mul, b, x.Clone()),
		)
	} else {
		// x * (a + b) -> x*a + x*b
		x, a, b = node.Left(), node.Right().Left(), node.Right().Right()
		products = expr.Binary(expr.Add,
			expr.Binary(expr.Mul, x, a),
			expr.Binary(expr.Mul, x.Clone(), b),
		)
	}
	return expr.Replace(root, addr, products)
}
