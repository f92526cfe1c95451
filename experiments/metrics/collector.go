// Package metrics collects search and episode statistics without getting
// in the searcher's way: counters are atomic and the no-op collector makes
// collection free when nobody asked for it.
package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetrics summarizes one Simulate call.
type SearchMetrics struct {
	Goroutines     int
	Duration       time.Duration
	Simulations    int64
	OracleCalls    int64
	OracleFailures int64
	TerminalHits   int64
}

// EpisodeMetrics summarizes one full episode.
type EpisodeMetrics struct {
	Lesson   string
	Solved   bool
	Moves    int
	Duration time.Duration
	Searches []SearchMetrics
}

type Collector interface {
	Start(goroutines int)
	AddSimulation()
	AddOracleCall()
	AddOracleFailure()
	AddTerminalHit()
	Complete() SearchMetrics
}

type collector struct {
	goroutines     int
	startTime      time.Time
	simulations    atomic.Int64
	oracleCalls    atomic.Int64
	oracleFailures atomic.Int64
	terminalHits   atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(goroutines int) {
	c.startTime = time.Now()
	c.goroutines = goroutines
}

func (c *collector) AddSimulation() {
	c.simulations.Add(1)
}

func (c *collector) AddOracleCall() {
	c.oracleCalls.Add(1)
}

func (c *collector) AddOracleFailure() {
	c.oracleFailures.Add(1)
}

func (c *collector) AddTerminalHit() {
	c.terminalHits.Add(1)
}

func (c *collector) Complete() SearchMetrics {
	return SearchMetrics{
		Goroutines:     c.goroutines,
		Duration:       time.Since(c.startTime),
		Simulations:    c.simulations.Load(),
		OracleCalls:    c.oracleCalls.Load(),
		OracleFailures: c.oracleFailures.Load(),
		TerminalHits:   c.terminalHits.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (dummyCollector) Start(int)               {}
func (dummyCollector) AddSimulation()          {}
func (dummyCollector) AddOracleCall()          {}
func (dummyCollector) AddOracleFailure()       {}
func (dummyCollector) AddTerminalHit()         {}
func (dummyCollector) Complete() SearchMetrics { return SearchMetrics{} }
