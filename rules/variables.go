package rules

import "mathsearch/expr"

// Variable Multiplication: x^m * x^n -> x^(m + n) for matching bases, with
// a bare variable counting as exponent 1. The exponent sum is left as an
// addition node for constant arithmetic to fold on a later move.

// varPower matches "x" and "x^n" shapes.
func varPower(n *expr.Node) (name string, exponent *expr.Node, ok bool) {
	if n.IsVar() {
		return n.Name, nil, true
	}
	if n.IsOp(expr.Pow) && n.Left().IsVar() && n.Right().IsConst() {
		return n.Left().Name, n.Right(), true
	}
	return "", nil, false
}

func canMultiplyVars(root *expr.Node, addr int) bool {
	node := expr.At(root, addr)
	if node == nil || !node.IsOp(expr.Mul) {
		return false
	}
	leftName, _, lok := varPower(node.Left())
	rightName, _, rok := varPower(node.Right())
	return lok && rok && leftName == rightName
}

func applyMultiplyVars(root *expr.Node, addr int) *expr.Node {
	node := expr.At(root, addr)
	name, leftExp, _ := varPower(node.Left())
	_, rightExp, _ := varPower(node.Right())

	if leftExp == nil {
		leftExp = expr.Const(1)
	}
	if rightExp == nil {
		rightExp = expr.Const(1)
	}
	combined := expr.Binary(expr.Pow, expr.Var(name), expr.Binary(expr.Add, leftExp, rightExp))
	return expr.Replace(root, addr, combined)
}
