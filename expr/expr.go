// Package expr implements the symbolic expression trees the rewrite rules
// and the searcher operate on. Trees are immutable after construction:
// transformations build a new tree and share untouched subtrees read-only.
package expr

import "fmt"

type Kind int

const (
	Constant Kind = iota
	Variable
	Operator
)

type Op byte

const (
	Add Op = '+'
	Sub Op = '-'
	Mul Op = '*'
	Div Op = '/'
	Pow Op = '^'
	Neg Op = '~' // unary minus, rendered as "-"
)

// Arity maps each operator to its fixed number of operands.
var Arity = map[Op]int{
	Add: 2,
	Sub: 2,
	Mul: 2,
	Div: 2,
	Pow: 2,
	Neg: 1,
}

// Node is a closed tagged variant: exactly one of the three kinds, with the
// fields of the other kinds zero. Within a single tree every *Node pointer is
// unique; distinct trees may share subtrees because nodes are never mutated.
type Node struct {
	Kind  Kind
	Value float64 // Constant
	Name  string  // Variable
	Op    Op      // Operator
	Args  []*Node // Operator operands, len == Arity[Op]
}

func Const(value float64) *Node {
	return &Node{Kind: Constant, Value: value}
}

func Var(name string) *Node {
	return &Node{Kind: Variable, Name: name}
}

func Binary(op Op, left, right *Node) *Node {
	if Arity[op] != 2 {
		panic(fmt.Sprintf("expr: %q is not a binary operator", op))
	}
	return &Node{Kind: Operator, Op: op, Args: []*Node{left, right}}
}

func Negate(child *Node) *Node {
	return &Node{Kind: Operator, Op: Neg, Args: []*Node{child}}
}

// Left returns the first operand of an operator node.
func (n *Node) Left() *Node {
	return n.Args[0]
}

// Right returns the second operand of a binary operator node.
func (n *Node) Right() *Node {
	return n.Args[1]
}

func (n *Node) IsOp(op Op) bool {
	return n.Kind == Operator && n.Op == op
}

func (n *Node) IsConst() bool {
	return n.Kind == Constant
}

func (n *Node) IsVar() bool {
	return n.Kind == Variable
}

// Clone returns a deep copy with no pointers in common with n. Rules use it
// when a rewrite needs the same subtree in two places, which would otherwise
// break the pointer-uniqueness invariant.
func (n *Node) Clone() *Node {
	cp := *n
	if len(n.Args) > 0 {
		cp.Args = make([]*Node, len(n.Args))
		for i, a := range n.Args {
			cp.Args[i] = a.Clone()
		}
	}
	return &cp
}

// Walk visits every node in canonical order (in-order for binary operators,
// prefix for unary) together with its address. The visit stops early when fn
// returns false.
func (n *Node) Walk(fn func(node *Node, addr int) bool) {
	addr := -1
	var rec func(node *Node) bool
	rec = func(node *Node) bool {
		if node.Kind == Operator && Arity[node.Op] == 2 {
			if !rec(node.Left()) {
				return false
			}
			addr++
			if !fn(node, addr) {
				return false
			}
			return rec(node.Right())
		}
		addr++
		if !fn(node, addr) {
			return false
		}
		if node.Kind == Operator { // unary
			return rec(node.Left())
		}
		return true
	}
	rec(n)
}

// Count returns the number of nodes in the tree.
func Count(root *Node) int {
	count := 0
	root.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// At returns the node at the given canonical address, or nil if the address
// is out of range.
func At(root *Node, addr int) *Node {
	var found *Node
	root.Walk(func(node *Node, a int) bool {
		if a == addr {
			found = node
			return false
		}
		return true
	})
	return found
}

// Replace returns a new tree with the node at addr substituted by repl. Only
// the spine from the root to the addressed node is rebuilt; all other
// subtrees are shared with the input. The input tree is not modified.
func Replace(root *Node, addr int, repl *Node) *Node {
	target := At(root, addr)
	if target == nil {
		panic(fmt.Sprintf("expr: replace address %d out of range", addr))
	}

	var rec func(node *Node) (*Node, bool)
	rec = func(node *Node) (*Node, bool) {
		if node == target {
			return repl, true
		}
		for i, a := range node.Args {
			if sub, ok := rec(a); ok {
				args := make([]*Node, len(node.Args))
				copy(args, node.Args)
				args[i] = sub
				cp := *node
				cp.Args = args
				return &cp, true
			}
		}
		return nil, false
	}

	out, ok := rec(root)
	if !ok {
		panic("expr: replace target not reachable from root")
	}
	return out
}

// Equal reports structural equality of two trees.
func Equal(a, b *Node) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Constant:
		return a.Value == b.Value
	case Variable:
		return a.Name == b.Name
	default:
		if a.Op != b.Op || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	}
}
