// Package agent turns search policies into committed moves. The evaluation
// agent plays the strongest move; the training agent samples for
// exploration diversity during self-play data collection.
package agent

import (
	"context"

	"mathsearch/experiments/metrics"
	"mathsearch/game"
)

type Agent interface {
	// FindMove returns the action to commit in the given state, plus
	// search metrics (if collected) from the simulation process.
	FindMove(ctx context.Context, state game.State) (game.Action, metrics.SearchMetrics)
}
