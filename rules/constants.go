package rules

import (
	"math"

	"mathsearch/expr"
)

// Constant Arithmetic: evaluate an operator node whose operands are both
// constants into a single constant. Division by a constant zero is not an
// error; the rule simply does not apply there.

func canFoldConstants(root *expr.Node, addr int) bool {
	node := expr.At(root, addr)
	if node == nil || node.Kind != expr.Operator || expr.Arity[node.Op] != 2 {
		return false
	}
	if !node.Left().IsConst() || !node.Right().IsConst() {
		return false
	}
	if node.Op == expr.Div && node.Right().Value == 0 {
		return false
	}
	return true
}

func applyFoldConstants(root *expr.Node, addr int) *expr.Node {
	node := expr.At(root, addr)
	left, right := node.Left().Value, node.Right().Value

	var value float64
	switch node.Op {
	case expr.Add:
		value = left + right
	case expr.Sub:
		value = left - right
	case expr.Mul:
		value = left * right
	case expr.Div:
		value = left / right
	case expr.Pow:
		value = math.Pow(left, right)
	}
	return expr.Replace(root, addr, expr.Const(value))
}
