package rules

import "mathsearch/expr"

// Commutative Swap: a + b -> b + a, a * b -> b * a. Always applicable at a
// commutative binary node and never changes the expression's value.

func canCommute(root *expr.Node, addr int) bool {
	node := expr.At(root, addr)
	return node != nil && (node.IsOp(expr.Add) || node.IsOp(expr.Mul))
}

func applyCommute(root *expr.Node, addr int) *expr.Node {
	node := expr.At(root, addr)
	swapped := expr.Binary(node.Op, node.Right(), node.Left())
	return expr.Replace(root, addr, swapped)
}
