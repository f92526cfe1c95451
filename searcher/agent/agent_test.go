package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"mathsearch/expr"
	"mathsearch/game"
	"mathsearch/searcher"
)

func TestEvaluationAgent(t *testing.T) {
	env := game.NewEnv(game.SingleConstant, 5)
	mcts := searcher.NewMCTS(env, game.UniformOracle{}, 1, searcher.WithSimulations(50))
	a := NewEvaluationAgent(mcts)

	action, _ := a.FindMove(context.Background(), env.InitialState(expr.MustParse("2 + 2")))
	require.Equal(t, "CA@1", action.String())
}

func TestTrainingAgent(t *testing.T) {
	t.Run("reproducible under a fixed seed", func(t *testing.T) {
		run := func() game.Action {
			env := game.NewEnv(game.SingleTerm, 8)
			mcts := searcher.NewMCTS(env, game.UniformOracle{}, 1, searcher.WithSimulations(40))
			a := NewTrainingAgent(mcts, 1.0, 7)
			action, _ := a.FindMove(context.Background(), env.InitialState(expr.MustParse("2x + 4x")))
			return action
		}
		require.Equal(t, run(), run())
	})

	t.Run("rejects a non-positive temperature", func(t *testing.T) {
		env := game.NewEnv(game.SingleConstant, 5)
		mcts := searcher.NewMCTS(env, game.UniformOracle{}, 1, searcher.WithSimulations(10))
		require.Panics(t, func() { NewTrainingAgent(mcts, 0, 1) })
	})
}

func TestAdjustTemperature(t *testing.T) {
	t.Run("temperature one keeps the distribution", func(t *testing.T) {
		probs := []float64{0.75, 0.25}
		adjusted := adjustTemperature(probs, 1.0)
		require.InDeltaSlice(t, probs, adjusted, 1e-9)
	})

	t.Run("low temperature sharpens toward the mode", func(t *testing.T) {
		adjusted := adjustTemperature([]float64{0.6, 0.4}, 0.1)
		require.Greater(t, adjusted[0], 0.9)
	})

	t.Run("high temperature flattens", func(t *testing.T) {
		adjusted := adjustTemperature([]float64{0.9, 0.1}, 10)
		require.InDelta(t, adjusted[0], adjusted[1], 0.2)
	})
}
