package game

import (
	"mathsearch/expr"
	"mathsearch/rules"
)

const (
	SolvedValue   = 1.0
	UnsolvedValue = -1.0
)

// Env scores and advances search states for one problem family. Solved is
// the family's terminal shape predicate and MaxMoves bounds episode length.
// Shaping, when set, supplies partial credit in (-1, 1) for unsolved
// terminal states instead of the flat UnsolvedValue.
type Env struct {
	Solved   Solved
	MaxMoves int
	Shaping  func(*expr.Node) float64
}

func NewEnv(solved Solved, maxMoves int) *Env {
	if solved == nil {
		panic("game: env needs a solved predicate")
	}
	if maxMoves <= 0 {
		panic("game: env needs a positive move limit")
	}
	return &Env{Solved: solved, MaxMoves: maxMoves}
}

// InitialState wraps a parsed problem as the root search state.
func (e *Env) InitialState(root *expr.Node) State {
	return NewState(root)
}

// LegalActions returns the actions applicable in a state. Terminal states
// have none worth exploring.
func (e *Env) LegalActions(s State) []Action {
	if e.IsTerminal(s) {
		return nil
	}
	return s.Actions()
}

// Step applies the action's rule at its addressed node and returns the
// successor state with the move recorded. The input state is unchanged.
func (e *Env) Step(s State, a Action) State {
	rule := rules.Get(a.Rule)
	root := rule.Apply(s.Root, a.Addr)

	history := make([]Step, len(s.History), len(s.History)+1)
	copy(history, s.History)
	history = append(history, Step{Rule: rule.Name, Addr: a.Addr, Expr: root.String()})

	return newState(root, s.MoveCount+1, history)
}

// IsTerminal reports whether a state ends the episode: the tree reached the
// solved shape, the move budget ran out, or no rule applies anywhere (a
// stuck state).
func (e *Env) IsTerminal(s State) bool {
	if e.Solved(s.Root) {
		return true
	}
	if s.MoveCount >= e.MaxMoves {
		return true
	}
	return len(s.actions) == 0
}

// Outcome scores a terminal state in [-1, 1]: SolvedValue for reaching the
// solved shape before the limit, UnsolvedValue (or the shaping estimate)
// for running out of moves or getting stuck.
func (e *Env) Outcome(s State) float64 {
	if e.Solved(s.Root) {
		return SolvedValue
	}
	if e.Shaping != nil {
		return clamp(e.Shaping(s.Root), UnsolvedValue, SolvedValue)
	}
	return UnsolvedValue
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
