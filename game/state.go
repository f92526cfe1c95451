package game

import "mathsearch/expr"

// Step records one committed rewrite for trace output.
type Step struct {
	Rule string
	Addr int
	Expr string
}

// State wraps one expression tree with the bookkeeping the search needs:
// moves made so far, the history of applied actions, and the cached legal
// action set. States are immutable; Env.Step returns a new State.
type State struct {
	Root      *expr.Node
	MoveCount int
	History   []Step

	actions []Action
}

// NewState wraps a tree as a fresh state with no moves played. Episode
// setup and oracle servers reconstructing a state from its rendered text
// use this; successor states come from Env.Step.
func NewState(root *expr.Node) State {
	return newState(root, 0, nil)
}

func newState(root *expr.Node, moves int, history []Step) State {
	return State{
		Root:      root,
		MoveCount: moves,
		History:   history,
		actions:   Available(root),
	}
}

// Actions returns the legal actions of this state in canonical order. The
// slice is shared; callers must not modify it.
func (s State) Actions() []Action {
	return s.actions
}

func (s State) String() string {
	return s.Root.String()
}
