// Package game wraps an expression tree as a search state: it enumerates
// the legal (rule, address) actions of a tree, applies actions to produce
// successor states, and scores terminal states. All operations are pure
// with respect to their State argument.
package game

import (
	"context"
	"fmt"

	"mathsearch/expr"
	"mathsearch/rules"
)

// Action pairs a rewrite rule with the address of the node it targets. An
// action is valid for exactly one tree; actions are enumerated fresh for
// each state and never persisted across states.
type Action struct {
	Rule rules.ID
	Addr int
}

func (a Action) String() string {
	return fmt.Sprintf("%s@%d", rules.Get(a.Rule).Code, a.Addr)
}

// Available enumerates every applicable (rule, address) pair of a tree by
// visiting every node and testing every rule. The same tree always yields
// the same actions in the same order: addresses ascending, catalog order
// within an address. Search results are reproducible because of this.
func Available(root *expr.Node) []Action {
	total := expr.Count(root)
	var actions []Action
	for addr := 0; addr < total; addr++ {
		for _, rule := range rules.Catalog {
			if rule.CanApply(root, addr) {
				actions = append(actions, Action{Rule: rule.ID, Addr: addr})
			}
		}
	}
	return actions
}

// Solved decides whether a tree has reached the simplified shape the
// current problem family is after. It is configuration, not a fixed rule:
// reducing to a single constant and reducing a polynomial both qualify
// depending on the lesson.
type Solved func(*expr.Node) bool

// Prediction is an oracle's estimate for one state: a prior probability per
// legal action (parallel to the action slice it was asked about) and a
// position value in [-1, 1].
type Prediction struct {
	Priors []float64
	Value  float64
}

// Oracle supplies move priors and position values to the searcher. It may
// be slow, remote, and stochastic; the searcher treats it as opaque and
// falls back to uniform priors when it fails.
type Oracle interface {
	Evaluate(ctx context.Context, state State, actions []Action) (Prediction, error)
}
