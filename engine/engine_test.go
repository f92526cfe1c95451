package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"mathsearch/game"
)

func TestRunEpisode(t *testing.T) {
	cfg := Config{Goroutines: 2, Simulations: 150}

	t.Run("solves a like-terms problem", func(t *testing.T) {
		problem := Problem{
			Lesson:   "two terms",
			Text:     "2x + 4x",
			Solved:   game.SingleTerm,
			MaxMoves: 8,
		}

		result := RunEpisode(context.Background(), game.HeuristicOracle{}, cfg, problem)

		require.NoError(t, result.Err)
		require.True(t, result.Solved)
		require.Equal(t, "6x", result.Final)
		require.Equal(t, result.Moves, len(result.Steps))
		require.LessOrEqual(t, result.Moves, 8)
		require.Len(t, result.Searches, result.Moves)
	})

	t.Run("records a parse failure without running a search", func(t *testing.T) {
		problem := Problem{
			Lesson:   "broken",
			Text:     "2x ++ 4",
			Solved:   game.SingleTerm,
			MaxMoves: 8,
		}

		result := RunEpisode(context.Background(), game.HeuristicOracle{}, cfg, problem)

		require.Error(t, result.Err)
		require.False(t, result.Solved)
		require.Empty(t, result.Searches)
	})

	t.Run("terminates on the move budget", func(t *testing.T) {
		problem := Problem{
			Lesson:   "tight budget",
			Text:     "19y + 20y + 17y",
			Solved:   game.SingleTerm,
			MaxMoves: 1,
		}

		result := RunEpisode(context.Background(), game.UniformOracle{}, Config{Goroutines: 1, Simulations: 20}, problem)

		require.NoError(t, result.Err)
		require.Equal(t, 1, result.Moves)
		require.False(t, result.Solved)
	})

	t.Run("training agent plays a full episode", func(t *testing.T) {
		problem := Problem{
			Lesson:   "sampled",
			Text:     "2 + 3",
			Solved:   game.SingleConstant,
			MaxMoves: 5,
		}
		sampled := Config{Goroutines: 1, Simulations: 50, Temperature: 1.0, Seed: 11}

		result := RunEpisode(context.Background(), game.UniformOracle{}, sampled, problem)

		require.NoError(t, result.Err)
		require.NotEmpty(t, result.Steps)
	})
}
