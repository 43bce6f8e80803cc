/*
Package engine ties the corpus, pattern index, and analyzers into the
operations a grid editor calls: pattern suggestions, whole-grid
fillability, and crossing refinement.

Writers publish a new immutable snapshot (corpus + index) atomically;
readers grab the current snapshot once and use it for an entire
interaction, so a query never observes a half-updated corpus.
*/
package engine

import (
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/crossforge/crossforge/pkg/analyze"
	"github.com/crossforge/crossforge/pkg/corpus"
	"github.com/crossforge/crossforge/pkg/grid"
	"github.com/crossforge/crossforge/pkg/index"
)

// Snapshot is one immutable corpus state with its derived index.
type Snapshot struct {
	Version uint64
	Corpus  *corpus.Corpus
	Index   *index.Index

	analyzer *analyze.Analyzer
}

// Engine owns the current snapshot and serializes writers.
type Engine struct {
	snap      atomic.Pointer[Snapshot]
	version   atomic.Uint64
	writeMu   sync.Mutex
	cacheSize int
}

// New returns an engine over an empty corpus with the default
// count-cache bound.
func New() *Engine {
	return NewWithCacheSize(0)
}

// NewWithCacheSize returns an engine whose per-snapshot count caches
// hold up to size patterns. A size <= 0 means the index default.
func NewWithCacheSize(size int) *Engine {
	e := &Engine{cacheSize: size}
	e.publish(corpus.Build(nil))
	return e
}

// LoadCorpus bulk-(re)builds the corpus from pre-merged entries and
// publishes the new snapshot.
func (e *Engine) LoadCorpus(entries []corpus.Entry) *Snapshot {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	snap := e.publish(corpus.Build(entries))
	log.Debugf("Corpus loaded: %d words, snapshot v%d", snap.Corpus.Len(), snap.Version)
	return snap
}

// Upsert adds or merges one entry, publishing a new snapshot.
// Without merge a conflicting word surfaces a corpus.DuplicateError.
func (e *Engine) Upsert(entry corpus.Entry, merge bool) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	next, err := e.snap.Load().Corpus.Upsert(entry, merge)
	if err != nil {
		return err
	}
	e.publish(next)
	return nil
}

// Remove drops a word, publishing a new snapshot. Returns false if
// the word was not present (no snapshot is published then).
func (e *Engine) Remove(word string) bool {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	next, removed := e.snap.Load().Corpus.Remove(word)
	if removed {
		e.publish(next)
	}
	return removed
}

// Snapshot returns the current snapshot. Callers keep it for the
// duration of an interaction so all its queries agree.
func (e *Engine) Snapshot() *Snapshot {
	return e.snap.Load()
}

func (e *Engine) publish(c *corpus.Corpus) *Snapshot {
	ix := index.BuildWithCacheSize(c, e.cacheSize)
	snap := &Snapshot{
		Version:  e.version.Add(1),
		Corpus:   c,
		Index:    ix,
		analyzer: analyze.New(ix),
	}
	e.snap.Store(snap)
	return snap
}

// QueryPattern is the fast suggestion path: ranked matches for one
// pattern, truncated to limit.
func (s *Snapshot) QueryPattern(p index.Pattern, limit int) []corpus.Entry {
	return s.Index.Ranked(p, limit)
}

// Count returns the number of matches without ranking them.
func (s *Snapshot) Count(p index.Pattern) int {
	return s.Index.Count(p)
}

// ExtractSlots derives the grid's numbered slots.
func (s *Snapshot) ExtractSlots(g *grid.Grid) []grid.Slot {
	return grid.ExtractSlots(g)
}

// Fillability computes the whole-grid overview.
func (s *Snapshot) Fillability(g *grid.Grid) analyze.Overview {
	return s.analyzer.Fillability(g)
}

// AnalyzeCrossings refines candidates for a target slot by crossing
// pressure.
func (s *Snapshot) AnalyzeCrossings(g *grid.Grid, target grid.Slot, candidates []corpus.Entry, limit int) ([]analyze.CandidateResult, error) {
	return s.analyzer.AnalyzeCrossings(g, target, candidates, limit)
}
