package rules

import "mathsearch/expr"

// Associative Swap: regroup three operands under two instances of the same
// associative operator. (a + b) + c -> a + (b + c) when the left child
// shares the operator, and a + (b + c) -> (a + b) + c when the right child
// does. Applies to + and *.

func associative(op expr.Op) bool {
	return op == expr.Add || op == expr.Mul
}

func canAssociate(root *expr.Node, addr int) bool {
	node := expr.At(root, addr)
	if node == nil || node.Kind != expr.Operator || !associative(node.Op) {
		return false
	}
	return node.Left().IsOp(node.Op) || node.Right().IsOp(node.Op)
}

func applyAssociate(root *expr.Node, addr int) *expr.Node {
	node := expr.At(root, addr)
	op := node.Op

	var regrouped *expr.Node
	if node.Left().IsOp(op) {
		// (a op b) op c -> a op (b op c)
		a, b, c := node.Left().Left(), node.Left().Right(), node.Right()
		regrouped = expr.Binary(op, a, expr.Binary(op, b, c))
	} else {
		// a op (b op c) -> (a op b) op c
		a, b, c := node.Left(), node.Right().Left(), node.Right().Right()
		regrouped = expr.Binary(op, expr.Binary(op, a, b), c)
	}
	return expr.Replace(root, addr, regrouped)
}
