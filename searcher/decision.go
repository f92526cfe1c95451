package searcher

import (
	"sync"

	"mathsearch/game"
)

// decision is one search tree node: a reached state plus the statistics
// PUCT selection needs. A node's stats (visits, value total) describe the
// edge leading into it. Nodes are owned by the search run that created them
// and discarded when the episode driver commits a move.
type decision struct {
	sync.RWMutex
	parent *decision
	state  game.State

	actions  []game.Action
	priors   []float64   // set on expansion, parallel to actions
	children []*decision // lazily created, parallel to actions

	visits float64
	values float64

	expanded  bool
	expanding bool

	terminal bool
	outcome  float64
}

func newDecision(parent *decision, state game.State, env *game.Env) *decision {
	d := &decision{
		parent:  parent,
		state:   state,
		actions: env.LegalActions(state),
	}
	if env.IsTerminal(state) {
		d.terminal = true
		d.outcome = env.Outcome(state)
	} else {
		d.children = make([]*decision, len(d.actions))
	}
	return d
}

func (d *decision) isTerminal() bool {
	return d.terminal
}

func (d *decision) isExpanded() bool {
	d.RLock()
	defer d.RUnlock()
	return d.expanded
}

// claimExpand marks this node as being expanded by the calling simulation.
// Only one in-flight simulation may expand a node; others see the claim and
// back off with a neutral evaluation.
func (d *decision) claimExpand() bool {
	d.Lock()
	defer d.Unlock()
	if d.expanded || d.expanding {
		return false
	}
	d.expanding = true
	return true
}

func (d *decision) finishExpand(priors []float64) {
	d.Lock()
	defer d.Unlock()
	d.priors = priors
	d.expanding = false
	d.expanded = true
}

// selectChild picks the child maximizing the PUCT score, creating it on
// first selection, and applies a virtual loss so concurrent simulations
// spread over other branches while this one is in flight.
func (d *decision) selectChild(exploration float64, env *game.Env) *decision {
	d.Lock()
	defer d.Unlock()

	selector := newPUCT(exploration, d.visits)
	best := -1
	bestScore := 0.0
	for i := range d.actions {
		score := selector.evaluate(d.childStats(i))
		if best < 0 || score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best < 0 {
		panic("searcher: selecting child of node with no actions")
	}

	child := d.children[best]
	if child == nil {
		child = newDecision(d, env.Step(d.state, d.actions[best]), env)
		d.children[best] = child
	}
	child.applyLoss()
	return child
}

// childStats returns (q, prior, visits) for the i-th action. Caller holds
// at least a read lock on d.
func (d *decision) childStats(i int) (q, prior, visits float64) {
	child := d.children[i]
	if child == nil {
		return 0, d.priors[i], 0
	}
	child.RLock()
	defer child.RUnlock()
	if child.visits > 0 {
		q = child.values / child.visits
	}
	return q, d.priors[i], child.visits
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()
	d.values += Loss
	d.visits++
}

func (d *decision) reverseLoss() {
	d.values -= Loss
	d.visits--
}

// backup folds the evaluated value into this node's stats and returns the
// parent for the walk up the selection path. Non-root nodes first reverse
// the virtual loss applied during selection. No sign flip: the value is
// from the perspective of the single rewriting agent at every level.
func (d *decision) backup(value float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil {
		d.reverseLoss()
	}
	d.values += value
	d.visits++
	return d.parent
}

// policy snapshots the root's per-action visit counts and mean values.
func (d *decision) policy() Policy {
	d.RLock()
	defer d.RUnlock()

	p := Policy{
		Actions: d.actions,
		Visits:  make([]float64, len(d.actions)),
		Values:  make([]float64, len(d.actions)),
	}
	for i, child := range d.children {
		if child == nil {
			continue
		}
		child.RLock()
		p.Visits[i] = child.visits
		if child.visits > 0 {
			p.Values[i] = child.values / child.visits
		}
		child.RUnlock()
	}
	return p
}
