package agent

import (
	"context"

	"mathsearch/experiments/metrics"
	"mathsearch/game"
	"mathsearch/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns an agent that always commits the most visited
// root action, for actual problem solving.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(ctx context.Context, state game.State) (game.Action, metrics.SearchMetrics) {
	policy, searchMetrics := a.mcts.Simulate(ctx, state)
	return policy.Best(), searchMetrics
}
