package expr

import (
	"fmt"
	"math"
	"sort"
)

// Evaluate resolves the tree to a numeric value with the given variable
// bindings. An unbound variable is an error. Division by zero evaluates to
// NaN rather than failing, matching the rewrite rules which refuse to fold
// such nodes.
func Evaluate(root *Node, bindings map[string]float64) (float64, error) {
	switch root.Kind {
	case Constant:
		return root.Value, nil
	case Variable:
		value, ok := bindings[root.Name]
		if !ok {
			return 0, fmt.Errorf("evaluate: unbound variable %q", root.Name)
		}
		return value, nil
	}

	if root.Op == Neg {
		value, err := Evaluate(root.Left(), bindings)
		if err != nil {
			return 0, err
		}
		return -value, nil
	}

	left, err := Evaluate(root.Left(), bindings)
	if err != nil {
		return 0, err
	}
	right, err := Evaluate(root.Right(), bindings)
	if err != nil {
		return 0, err
	}
	switch root.Op {
	case Add:
		return left + right, nil
	case Sub:
		return left - right, nil
	case Mul:
		return left * right, nil
	case Div:
		if right == 0 {
			return math.NaN(), nil
		}
		return left / right, nil
	case Pow:
		return math.Pow(left, right), nil
	default:
		return 0, fmt.Errorf("evaluate: unknown operator %q", root.Op)
	}
}

// Vars returns the sorted set of variable names appearing in the tree.
func Vars(root *Node) []string {
	seen := map[string]bool{}
	root.Walk(func(node *Node, _ int) bool {
		if node.IsVar() {
			seen[node.Name] = true
		}
		return true
	})
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
