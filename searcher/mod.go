// Package searcher runs Monte Carlo Tree Search over the rewrite action
// space of an expression, guided by an injected oracle for action priors
// and leaf values. The task is single-agent: backed-up values keep the same
// sign at every level, unlike two-player game search.
package searcher

import "mathsearch/game"

// Hyperparameters for MCTS

// Exploration is the default PUCT exploration constant.
const Exploration = 1.4

// Loss is the virtual loss added to a node while a simulation holds it
// in flight, steering concurrent simulations toward other branches.
const Loss = -1.0

// Policy is the search result at the root: visit counts and mean values per
// legal action, in the canonical action order.
type Policy struct {
	Actions []game.Action
	Visits  []float64
	Values  []float64
}

// Best returns the action to commit: highest visit count, ties broken by
// highest mean value, then by canonical action order. Deterministic under a
// fixed oracle and seed.
func (p Policy) Best() game.Action {
	if len(p.Actions) == 0 {
		panic("searcher: no actions in policy")
	}
	best := 0
	for i := 1; i < len(p.Actions); i++ {
		switch {
		case p.Visits[i] > p.Visits[best]:
			best = i
		case p.Visits[i] == p.Visits[best] && p.Values[i] > p.Values[best]:
			best = i
		}
	}
	return p.Actions[best]
}

// Probabilities returns visit counts normalized to a distribution, for
// temperature sampling and training targets.
func (p Policy) Probabilities() []float64 {
	total := 0.0
	for _, v := range p.Visits {
		total += v
	}
	probs := make([]float64, len(p.Visits))
	if total == 0 {
		return probs
	}
	for i, v := range p.Visits {
		probs[i] = v / total
	}
	return probs
}
