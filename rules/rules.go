// Package rules holds the catalog of local rewrite transformations. Each
// rule is a pure pair of functions over (tree, node address): CanApply
// inspects, Apply produces a new tree with one local change. The catalog is
// a closed table so that action enumeration stays exhaustive; adding a rule
// is a table entry plus the two functions.
package rules

import (
	"fmt"

	"mathsearch/expr"
)

type ID int

const (
	CommutativeSwap ID = iota
	AssociativeSwap
	DistributiveFactorOut
	DistributiveMultiply
	VariableMultiply
	ConstantArithmetic

	NumRules int = iota
)

type Rule struct {
	ID   ID
	Name string
	Code string

	CanApply func(root *expr.Node, addr int) bool
	apply    func(root *expr.Node, addr int) *expr.Node
}

// Apply returns a new tree with the rule applied at addr. The input tree is
// never modified. Calling Apply where CanApply does not hold is a
// programming error and panics: actions must come from enumeration on the
// same tree.
func (r Rule) Apply(root *expr.Node, addr int) *expr.Node {
	if !r.CanApply(root, addr) {
		panic(fmt.Sprintf("rules: %s applied at address %d where it cannot apply to %q", r.Name, addr, root))
	}
	return r.apply(root, addr)
}

var Catalog = [NumRules]Rule{
	{
		ID:       CommutativeSwap,
		Name:     "Commutative Swap",
		Code:     "CS",
		CanApply: canCommute,
		apply:    applyCommute,
	},
	{
		ID:       AssociativeSwap,
		Name:     "Associative Swap",
		Code:     "AS",
		CanApply: canAssociate,
		apply:    applyAssociate,
	},
	{
		ID:       DistributiveFactorOut,
		Name:     "Distributive Factor Out",
		Code:     "DF",
		CanApply: canFactorOut,
		apply:    applyFactorOut,
	},
	{
		ID:       DistributiveMultiply,
		Name:     "Distributive Multiply",
		Code:     "DM",
		CanApply: canDistribute,
		apply:    applyDistribute,
	},
	{
		ID:       VariableMultiply,
		Name:     "Variable Multiplication",
		Code:     "VM",
		CanApply: canMultiplyVars,
		apply:    applyMultiplyVars,
	},
	{
		ID:       ConstantArithmetic,
		Name:     "Constant Arithmetic",
		Code:     "CA",
		CanApply: canFoldConstants,
		apply:    applyFoldConstants,
	},
}

// Get returns the catalog entry for an ID.
func Get(id ID) Rule {
	return Catalog[id]
}

func (id ID) String() string {
	if int(id) < 0 || int(id) >= NumRules {
		return fmt.Sprintf("rules.ID(%d)", int(id))
	}
	return Catalog[id].Name
}
