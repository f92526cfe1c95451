package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mathsearch/expr"
	"mathsearch/rules"
)

func TestAvailable(t *testing.T) {
	t.Run("enumeration is deterministic and ordered", func(t *testing.T) {
		root := expr.MustParse("2x + 4x")

		first := Available(root)
		second := Available(root)

		require.Equal(t, first, second)
		for i := 1; i < len(first); i++ {
			prev, cur := first[i-1], first[i]
			require.True(t, prev.Addr < cur.Addr ||
				(prev.Addr == cur.Addr && prev.Rule < cur.Rule),
				"actions out of canonical order: %s before %s", prev, cur)
		}
	})

	t.Run("finds the factoring move on like terms", func(t *testing.T) {
		actions := Available(expr.MustParse("2x + 4x"))
		require.Contains(t, actions, Action{Rule: rules.DistributiveFactorOut, Addr: 3})
	})

	t.Run("a lone constant has no actions", func(t *testing.T) {
		require.Empty(t, Available(expr.Const(4)))
	})

	t.Run("division by zero can leave a stuck tree", func(t *testing.T) {
		require.Empty(t, Available(expr.MustParse("x / 0")))
	})
}

func TestEnvStep(t *testing.T) {
	env := NewEnv(SingleTerm, 10)
	state := env.InitialState(expr.MustParse("2x + 4x"))

	next := env.Step(state, Action{Rule: rules.DistributiveFactorOut, Addr: 3})

	require.Equal(t, "(2 + 4) * x", next.String())
	require.Equal(t, 1, next.MoveCount)
	require.Len(t, next.History, 1)
	require.Equal(t, Step{Rule: "Distributive Factor Out", Addr: 3, Expr: "(2 + 4) * x"}, next.History[0])

	require.Equal(t, "2x + 4x", state.String(), "stepping must not mutate the input state")
	require.Zero(t, state.MoveCount)
	require.Empty(t, state.History)
}

func TestEnvTerminal(t *testing.T) {
	t.Run("solved shape is terminal and wins", func(t *testing.T) {
		env := NewEnv(SingleConstant, 10)
		state := env.InitialState(expr.MustParse("42"))

		require.True(t, env.IsTerminal(state))
		require.Equal(t, SolvedValue, env.Outcome(state))
		require.Nil(t, env.LegalActions(state))
	})

	t.Run("unsolved non-terminal keeps its actions", func(t *testing.T) {
		env := NewEnv(SingleConstant, 10)
		state := env.InitialState(expr.MustParse("2 + 3"))

		require.False(t, env.IsTerminal(state))
		require.NotEmpty(t, env.LegalActions(state))
	})

	t.Run("move limit ends the episode with a loss", func(t *testing.T) {
		env := NewEnv(SingleConstant, 1)
		state := env.InitialState(expr.MustParse("2 + 3 + x"))

		next := env.Step(state, state.Actions()[0])
		require.True(t, env.IsTerminal(next))
		require.Equal(t, UnsolvedValue, env.Outcome(next))
	})

	t.Run("stuck state is terminal and unsolved", func(t *testing.T) {
		env := NewEnv(SingleConstant, 10)
		state := env.InitialState(expr.MustParse("x / 0"))

		require.True(t, env.IsTerminal(state))
		require.Equal(t, UnsolvedValue, env.Outcome(state))
	})

	t.Run("shaping replaces the flat loss", func(t *testing.T) {
		env := NewEnv(SingleConstant, 10)
		env.Shaping = func(*expr.Node) float64 { return 0.25 }
		state := env.InitialState(expr.MustParse("x / 0"))

		require.Equal(t, 0.25, env.Outcome(state))
	})

	t.Run("shaping is clamped to the outcome range", func(t *testing.T) {
		env := NewEnv(SingleConstant, 10)
		env.Shaping = func(*expr.Node) float64 { return -7 }
		state := env.InitialState(expr.MustParse("x / 0"))

		require.Equal(t, UnsolvedValue, env.Outcome(state))
	})

	t.Run("constructor rejects bad configuration", func(t *testing.T) {
		require.Panics(t, func() { NewEnv(nil, 10) })
		require.Panics(t, func() { NewEnv(SingleConstant, 0) })
	})
}

// TestThreeTermWalk plays the scripted shortest solution for a three-term
// combine problem and checks it stays within a five-move budget.
func TestThreeTermWalk(t *testing.T) {
	env := NewEnv(SingleTerm, 5)
	state := env.InitialState(expr.MustParse("19y + 20y + 17y"))

	script := []Action{
		{Rule: rules.DistributiveFactorOut, Addr: 3},
		{Rule: rules.ConstantArithmetic, Addr: 1},
		{Rule: rules.DistributiveFactorOut, Addr: 3},
		{Rule: rules.ConstantArithmetic, Addr: 1},
	}
	for _, action := range script {
		require.False(t, env.IsTerminal(state))
		require.Contains(t, state.Actions(), action)
		state = env.Step(state, action)
	}

	require.Equal(t, "56y", state.String())
	require.True(t, env.IsTerminal(state))
	require.Equal(t, SolvedValue, env.Outcome(state))
	require.Equal(t, 4, state.MoveCount)
}

func TestSolvedPredicates(t *testing.T) {
	cases := []struct {
		name   string
		pred   Solved
		input  string
		solved bool
	}{
		{"single constant", SingleConstant, "42", true},
		{"sum is not a single constant", SingleConstant, "2 + 3", false},
		{"term is not a constant", SingleConstant, "6x", false},
		{"single term", SingleTerm, "6x", true},
		{"power term", SingleTerm, "57y^2", true},
		{"bare constant counts as a term", SingleTerm, "42", true},
		{"unfolded product is not a term", SingleTerm, "(2 + 4) * x", false},
		{"sum is not a single term", SingleTerm, "2x + 4", false},
		{"simplified polynomial", Simplified, "x^2 + 4x + 4", true},
		{"like terms remain", Simplified, "2x + 4x", false},
		{"constant terms still combine", Simplified, "x + 2 + 3", false},
		{"non-term operand", Simplified, "x * (y + 1) + 2", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.solved, c.pred(expr.MustParse(c.input)))
		})
	}
}
