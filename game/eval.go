package game

import (
	"context"

	"mathsearch/expr"
	"mathsearch/rules"
)

// Hand-written oracles. The searcher works under any Oracle; these two make
// it usable without a trained model: Uniform for tests and fallback,
// Heuristic for actually finding solutions with cheap domain knowledge.

// UniformOracle assigns every legal action the same prior and a neutral
// value. Search under it degrades to visit-count-driven exploration.
type UniformOracle struct{}

func (UniformOracle) Evaluate(_ context.Context, _ State, actions []Action) (Prediction, error) {
	priors := make([]float64, len(actions))
	for i := range priors {
		priors[i] = 1.0 / float64(len(actions))
	}
	return Prediction{Priors: priors, Value: 0}, nil
}

// HeuristicOracle favors rewrites that shrink the tree and scores positions
// by how little simplification work remains.
type HeuristicOracle struct{}

// ruleWeights biases priors toward the rules that make direct progress:
// folding constants and combining like terms over reshuffling.
var ruleWeights = map[rules.ID]float64{
	rules.ConstantArithmetic:    4,
	rules.DistributiveFactorOut: 4,
	rules.VariableMultiply:      2,
	rules.AssociativeSwap:       1,
	rules.CommutativeSwap:       1,
	rules.DistributiveMultiply:  0.5,
}

func (HeuristicOracle) Evaluate(_ context.Context, state State, actions []Action) (Prediction, error) {
	priors := make([]float64, len(actions))
	sum := 0.0
	for i, action := range actions {
		priors[i] = ruleWeights[action.Rule]
		sum += priors[i]
	}
	for i := range priors {
		priors[i] /= sum
	}

	compactness := compactnessScore(state.Root)
	remaining := remainingWorkScore(state.Root)
	return Prediction{Priors: priors, Value: (compactness + remaining) / 2}, nil
}

// compactnessScore maps tree size to [-1, 1]: a lone node scores best, a
// sprawling tree worst.
func compactnessScore(root *expr.Node) float64 {
	const worst = 40.0
	size := float64(expr.Count(root))
	if size > worst {
		size = worst
	}
	return 1 - 2*(size-1)/(worst-1)
}

// remainingWorkScore penalizes positions by the number of combinable term
// pairs and unfolded constant operations still present.
func remainingWorkScore(root *expr.Node) float64 {
	remaining := 0.0
	if expr.HasLikeTerms(root) {
		remaining++
	}
	if expr.HasFoldableConstants(root) {
		remaining++
	}
	return 1 - remaining
}
