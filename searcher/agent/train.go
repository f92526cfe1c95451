package agent

import (
	"context"
	"math"

	"mathsearch/experiments/metrics"
	"mathsearch/game"
	"mathsearch/searcher"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns an agent that samples moves from the visit
// distribution with the given temperature. Higher temperatures explore
// more; a temperature near zero approaches the evaluation agent. The seed
// fixes the sampling sequence for reproducible self-play.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		panic("agent: temperature must be positive")
	}
	return trainingAgent{
		mcts:        mcts,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a trainingAgent) FindMove(ctx context.Context, state game.State) (game.Action, metrics.SearchMetrics) {
	policy, searchMetrics := a.mcts.Simulate(ctx, state)
	probs := adjustTemperature(policy.Probabilities(), a.temperature)
	return policy.Actions[a.sample(probs)], searchMetrics
}

func adjustTemperature(probs []float64, temperature float64) []float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]float64, len(probs))
	for i, p := range probs {
		adjusted[i] = math.Pow(p, exponent)
		sum += adjusted[i]
	}
	for i := range adjusted {
		adjusted[i] /= sum
	}
	return adjusted
}

func (a trainingAgent) sample(probs []float64) int {
	sampled := a.rng.Float64()
	cumulative := 0.0
	for i, p := range probs {
		cumulative += p
		if sampled < cumulative {
			return i
		}
	}
	return len(probs) - 1 // Fallback in case of rounding errors
}
