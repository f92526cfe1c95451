package searcher

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"mathsearch/experiments/metrics"
	"mathsearch/game"

	"github.com/rs/zerolog/log"
)

type Option func(m *MCTS)

// WithSimulations sets a fixed simulation budget per Simulate call.
func WithSimulations(simulations int) Option {
	return func(m *MCTS) {
		if simulations > 0 {
			m.simulations = simulations
		}
	}
}

// WithDuration sets a wall-clock budget per Simulate call.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithExploration overrides the PUCT exploration constant.
func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

// WithMetrics enables search statistics collection.
func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

// MCTS searches the rewrite graph of one episode. The search tree is owned
// by the Simulate call that builds it and discarded afterwards; nothing is
// shared across episodes except the read-only oracle.
type MCTS struct {
	env         *game.Env
	oracle      game.Oracle
	goroutines  int
	simulations int
	duration    time.Duration
	exploration float64
	metrics     metrics.Collector
}

func NewMCTS(env *game.Env, oracle game.Oracle, goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		env:         env,
		oracle:      oracle,
		goroutines:  goroutines,
		exploration: Exploration,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.goroutines <= 0 {
		panic("Must run at least one search goroutine")
	}
	if m.simulations <= 0 && m.duration <= 0 {
		panic("Must specify search simulations or duration")
	}
	return m
}

// Simulate runs the configured budget of simulations from state and returns
// the visit-count policy over its legal actions. The state must not be
// terminal. Cancelling the context stops the search at the next simulation
// boundary; statistics collected so far remain valid.
func (m *MCTS) Simulate(ctx context.Context, state game.State) (Policy, metrics.SearchMetrics) {
	root := newDecision(nil, state, m.env)
	if root.isTerminal() {
		panic("searcher: cannot search from a terminal state")
	}

	m.metrics.Start(m.goroutines)
	if m.simulations > 0 {
		m.iterate(ctx, root)
	} else {
		m.countdown(ctx, root)
	}
	return root.policy(), m.metrics.Complete()
}

func (m *MCTS) iterate(ctx context.Context, root *decision) {
	task := make(chan struct{}, m.simulations)
	for i := 0; i < m.simulations; i++ {
		task <- struct{}{}
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range task {
				if ctx.Err() != nil {
					return
				}
				m.simulate(ctx, root)
				m.metrics.AddSimulation()
			}
		}()
	}
	wg.Wait()
}

func (m *MCTS) countdown(ctx context.Context, root *decision) {
	deadline, cancel := context.WithTimeout(ctx, m.duration)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for deadline.Err() == nil {
				m.simulate(ctx, root)
				m.metrics.AddSimulation()
			}
		}()
	}
	wg.Wait()
}

// simulate runs one Select -> Expand -> Evaluate -> Backpropagate pass.
func (m *MCTS) simulate(ctx context.Context, root *decision) {
	node := root
	var value float64
	for {
		if node.isTerminal() {
			value = node.outcome
			m.metrics.AddTerminalHit()
			break
		}
		if node.claimExpand() {
			prediction := m.evaluate(ctx, node)
			node.finishExpand(prediction.Priors)
			value = prediction.Value
			break
		}
		if !node.isExpanded() {
			// Another in-flight simulation holds the expansion claim.
			// Evaluate neutrally rather than waiting on the oracle.
			value = 0
			break
		}
		node = node.selectChild(m.exploration, m.env)
	}

	for node != nil {
		node = node.backup(value)
	}
}

// evaluate queries the oracle for priors and a value. Any failure (error,
// priors that do not line up with the legal actions, values outside the
// expected range) degrades to uniform priors and a neutral value so the
// search keeps its exploration guarantees under a broken oracle.
func (m *MCTS) evaluate(ctx context.Context, node *decision) game.Prediction {
	m.metrics.AddOracleCall()
	prediction, err := m.oracle.Evaluate(ctx, node.state, node.actions)
	if err == nil {
		err = validate(&prediction, len(node.actions))
	}
	if err != nil {
		m.metrics.AddOracleFailure()
		log.Warn().Err(err).
			Str("state", node.state.String()).
			Msg("oracle failed, falling back to uniform priors")
		return uniformPrediction(len(node.actions))
	}
	return prediction
}

// validate normalizes oracle priors over the legal actions in place.
func validate(p *game.Prediction, actions int) error {
	if len(p.Priors) != actions {
		return fmt.Errorf("got %d priors for %d actions", len(p.Priors), actions)
	}
	sum := 0.0
	for _, prior := range p.Priors {
		if math.IsNaN(prior) || math.IsInf(prior, 0) || prior < 0 {
			return fmt.Errorf("invalid prior %v", prior)
		}
		sum += prior
	}
	if sum <= 0 {
		return fmt.Errorf("priors sum to %v", sum)
	}
	for i := range p.Priors {
		p.Priors[i] /= sum
	}
	if math.IsNaN(p.Value) || p.Value < game.UnsolvedValue || p.Value > game.SolvedValue {
		return fmt.Errorf("value %v outside [-1, 1]", p.Value)
	}
	return nil
}

func uniformPrediction(actions int) game.Prediction {
	priors := make([]float64, actions)
	for i := range priors {
		priors[i] = 1.0 / float64(actions)
	}
	return game.Prediction{Priors: priors, Value: 0}
}
