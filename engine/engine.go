// Package engine drives episodes: it takes a textual problem, wraps it as
// a root search state, and repeatedly asks the search for one action to
// commit until the environment reports a terminal state or the move budget
// runs out.
package engine

import (
	"context"
	"time"

	"mathsearch/experiments/metrics"
	"mathsearch/expr"
	"mathsearch/game"
	"mathsearch/searcher"
	"mathsearch/searcher/agent"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Problem is one episode's input: the expression to simplify, the solved
// shape to reach, and how many moves the solver gets.
type Problem struct {
	Lesson   string
	Text     string
	Solved   game.Solved
	MaxMoves int
}

// ProblemSource hands out problems for an exercise. Curriculum logic lives
// behind this interface; the engine only needs text and a predicate.
type ProblemSource interface {
	NextProblem(exercise Exercise) (Problem, error)
}

// Result is the record of one completed episode, consumed by trace
// printing and training-data collection.
type Result struct {
	ID       uuid.UUID
	Lesson   string
	Input    string
	Steps    []game.Step
	Final    string
	Solved   bool
	Moves    int
	Duration time.Duration
	Searches []metrics.SearchMetrics
	Err      error // set when the problem failed to parse
}

// Config carries the per-episode search settings.
type Config struct {
	Goroutines  int
	Simulations int
	Duration    time.Duration
	Exploration float64
	Temperature float64 // > 0 samples moves for self-play; 0 plays the best move
	Seed        uint64
	Metrics     bool
}

// RunEpisode plays one problem to a terminal state. A parse failure is
// recorded in the result and does not propagate: the driver moves on to
// the next problem.
func RunEpisode(ctx context.Context, oracle game.Oracle, cfg Config, problem Problem) Result {
	result := Result{
		ID:     uuid.New(),
		Lesson: problem.Lesson,
		Input:  problem.Text,
	}
	start := time.Now()

	root, err := expr.Parse(problem.Text)
	if err != nil {
		log.Warn().Err(err).Str("input", problem.Text).Msg("problem failed to parse")
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	env := game.NewEnv(problem.Solved, problem.MaxMoves)
	solver := newAgent(env, oracle, cfg)

	state := env.InitialState(root)
	for !env.IsTerminal(state) && ctx.Err() == nil {
		action, searchMetrics := solver.FindMove(ctx, state)
		state = env.Step(state, action)
		result.Searches = append(result.Searches, searchMetrics)
	}

	result.Steps = state.History
	result.Final = state.Root.String()
	result.Solved = problem.Solved(state.Root)
	result.Moves = state.MoveCount
	result.Duration = time.Since(start)

	log.Info().
		Str("lesson", problem.Lesson).
		Str("input", result.Input).
		Str("final", result.Final).
		Bool("solved", result.Solved).
		Int("moves", result.Moves).
		Dur("duration", result.Duration).
		Msg("episode complete")
	return result
}

func newAgent(env *game.Env, oracle game.Oracle, cfg Config) agent.Agent {
	options := []searcher.Option{}
	if cfg.Simulations > 0 {
		options = append(options, searcher.WithSimulations(cfg.Simulations))
	}
	if cfg.Duration > 0 {
		options = append(options, searcher.WithDuration(cfg.Duration))
	}
	if cfg.Exploration > 0 {
		options = append(options, searcher.WithExploration(cfg.Exploration))
	}
	if cfg.Metrics {
		options = append(options, searcher.WithMetrics())
	}

	mcts := searcher.NewMCTS(env, oracle, cfg.Goroutines, options...)
	if cfg.Temperature > 0 {
		return agent.NewTrainingAgent(mcts, cfg.Temperature, cfg.Seed)
	}
	return agent.NewEvaluationAgent(mcts)
}
