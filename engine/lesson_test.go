package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mathsearch/expr"
	"mathsearch/game"
)

func writePlan(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestLoadLessonPlan(t *testing.T) {
	t.Run("loads a valid plan", func(t *testing.T) {
		path := writePlan(t, `
name: combine like terms
exercises:
  - name: two terms
    kind: likeTerms
    terms: 2
    problems: 4
    maxMoves: 7
    simulations: 250
    solved: singleTerm
  - name: constant sums
    kind: constants
    terms: 3
    problems: 2
    maxMoves: 10
    solved: singleConstant
`)

		plan, err := LoadLessonPlan(path)
		require.NoError(t, err)
		require.Equal(t, "combine like terms", plan.Name)
		require.Len(t, plan.Exercises, 2)
		require.Equal(t, 250, plan.Exercises[0].Simulations)
	})

	t.Run("defaults the exercise kind", func(t *testing.T) {
		path := writePlan(t, `
name: plain
exercises:
  - name: default kind
    problems: 1
    maxMoves: 5
`)

		plan, err := LoadLessonPlan(path)
		require.NoError(t, err)
		require.Equal(t, "likeTerms", plan.Exercises[0].Kind)
	})

	t.Run("rejects an unknown solved predicate", func(t *testing.T) {
		path := writePlan(t, `
name: broken
exercises:
  - name: bad
    problems: 1
    maxMoves: 5
    solved: fullyReduced
`)

		_, err := LoadLessonPlan(path)
		require.ErrorContains(t, err, "unknown solved predicate")
	})

	t.Run("rejects missing budgets", func(t *testing.T) {
		path := writePlan(t, `
name: broken
exercises:
  - name: bad
    problems: 0
    maxMoves: 5
`)

		_, err := LoadLessonPlan(path)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadLessonPlan(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}

func TestSolvedPredicate(t *testing.T) {
	for name, want := range map[string]func(*expr.Node) bool{
		"singleConstant": game.SingleConstant,
		"singleTerm":     game.SingleTerm,
		"simplified":     game.Simplified,
		"":               game.Simplified,
	} {
		pred, err := SolvedPredicate(name)
		require.NoError(t, err)
		require.Equal(t, want(expr.MustParse("6x")), pred(expr.MustParse("6x")))
		require.Equal(t, want(expr.MustParse("42")), pred(expr.MustParse("42")))
	}

	_, err := SolvedPredicate("nope")
	require.Error(t, err)
}

func TestGenerator(t *testing.T) {
	exercise := Exercise{
		Name:     "three terms",
		Kind:     "likeTerms",
		Terms:    3,
		Problems: 1,
		MaxMoves: 15,
		Solved:   "singleTerm",
	}

	t.Run("same seed gives the same problems", func(t *testing.T) {
		first, second := NewGenerator(3), NewGenerator(3)
		for i := 0; i < 10; i++ {
			a, err := first.NextProblem(exercise)
			require.NoError(t, err)
			b, err := second.NextProblem(exercise)
			require.NoError(t, err)
			require.Equal(t, a.Text, b.Text)
		}
	})

	t.Run("like-terms problems parse into combinable sums", func(t *testing.T) {
		g := NewGenerator(9)
		for i := 0; i < 10; i++ {
			problem, err := g.NextProblem(exercise)
			require.NoError(t, err)

			root := expr.MustParse(problem.Text)
			require.Len(t, expr.AdditiveTerms(root), 3)
			require.True(t, expr.HasLikeTerms(root), "%q should have like terms", problem.Text)
		}
	})

	t.Run("constant problems contain only constants", func(t *testing.T) {
		g := NewGenerator(9)
		constants := exercise
		constants.Kind = "constants"
		constants.Solved = "singleConstant"

		problem, err := g.NextProblem(constants)
		require.NoError(t, err)
		require.Empty(t, expr.Vars(expr.MustParse(problem.Text)))
	})

	t.Run("unknown kind errors", func(t *testing.T) {
		bad := exercise
		bad.Kind = "quadratics"
		_, err := NewGenerator(1).NextProblem(bad)
		require.Error(t, err)
	})
}

func TestRunLesson(t *testing.T) {
	plan := LessonPlan{
		Name: "smoke",
		Exercises: []Exercise{
			{Name: "two terms", Kind: "likeTerms", Terms: 2, Problems: 2, MaxMoves: 8, Solved: "singleTerm"},
		},
	}
	cfg := Config{Goroutines: 2, Simulations: 150}

	results, err := RunLesson(context.Background(), game.HeuristicOracle{}, NewGenerator(5), plan, cfg)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, result := range results {
		require.NoError(t, result.Err)
		require.True(t, result.Solved, "input %q ended at %q", result.Input, result.Final)
	}
}
