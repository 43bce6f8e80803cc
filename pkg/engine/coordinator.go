package engine

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/crossforge/crossforge/pkg/analyze"
	"github.com/crossforge/crossforge/pkg/corpus"
	"github.com/crossforge/crossforge/pkg/grid"
)

// Result is one delivery to the editing session. Every interaction
// produces a phase-1 result (pattern matches) immediately and, if it
// is still the newest interaction when the slower crossing analysis
// finishes, a phase-2 result with Refined set.
type Result struct {
	RequestID  uint64
	Slot       grid.Slot
	Matches    []corpus.Entry
	Refined    []analyze.CandidateResult
	Refinement bool
}

// Coordinator sequences the two query phases of a live editing
// session and drops superseded phase-2 results. Staleness is decided
// by request id, not by cancelling in-flight work: the underlying
// queries are fast enough to let run to completion.
//
// Debouncing is the caller's policy; the coordinator accepts every
// Submit it gets.
type Coordinator struct {
	engine  *Engine
	limit   int
	deliver func(Result)

	lastID    atomic.Uint64
	deliverMu sync.Mutex
	wg        sync.WaitGroup
}

// NewCoordinator wires a coordinator to an engine. Results go to the
// deliver callback; limit caps both phases' candidate lists.
func NewCoordinator(e *Engine, limit int, deliver func(Result)) *Coordinator {
	return &Coordinator{
		engine:  e,
		limit:   limit,
		deliver: deliver,
	}
}

// Submit starts a new interaction for the slot through (row, col) in
// the given direction. The phase-1 result is delivered before Submit
// returns; phase 2 runs in the background. Returns the request id.
//
// The corpus snapshot is captured here and used for both phases, so
// a concurrent corpus edit never splits one interaction across two
// corpus states.
func (c *Coordinator) Submit(g *grid.Grid, row, col int, dir grid.Direction) (uint64, error) {
	id := c.lastID.Add(1)
	snap := c.engine.Snapshot()

	target, _, ok := grid.SlotThrough(g, row, col, dir)
	if !ok {
		return id, fmt.Errorf("no %s slot through (%d,%d)", dir, row, col)
	}

	matches := snap.QueryPattern(target.Pattern, c.limit)
	c.post(Result{RequestID: id, Slot: target, Matches: matches}, id)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		refined, err := snap.AnalyzeCrossings(g, target, matches, c.limit)
		if err != nil {
			log.Errorf("Crossing refinement for request %d: %v", id, err)
			return
		}
		c.post(Result{RequestID: id, Slot: target, Matches: matches, Refined: refined, Refinement: true}, id)
	}()

	return id, nil
}

// post delivers a result unless a newer interaction has been issued.
// The staleness check and the callback happen under one lock so a
// stale delivery cannot slip in after a fresher one.
func (c *Coordinator) post(r Result, id uint64) {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()
	if c.lastID.Load() != id {
		log.Debugf("Dropping stale result for request %d", id)
		return
	}
	c.deliver(r)
}

// Wait blocks until all in-flight refinements finish. Intended for
// shutdown and tests.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}
