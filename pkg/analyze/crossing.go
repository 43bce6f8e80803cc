/*
Package analyze computes constraint pressure for crossword slots: for
a candidate word, how many legal fills remain in every slot it
crosses, and for a whole grid, how fillable each slot is.

The crossing computation never materializes a modified grid. Placing
a candidate only changes one cell of each crossing slot, so each
crossing is re-evaluated by overlaying a single letter on its current
pattern and asking the index for a count.
*/
package analyze

import (
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/crossforge/crossforge/pkg/corpus"
	"github.com/crossforge/crossforge/pkg/grid"
	"github.com/crossforge/crossforge/pkg/index"
)

// Analyzer scores candidates against one corpus snapshot.
type Analyzer struct {
	ix *index.Index
}

// New returns an analyzer over the given index snapshot.
func New(ix *index.Index) *Analyzer {
	return &Analyzer{ix: ix}
}

// CrossingDetail is the per-intersection breakdown for one candidate.
type CrossingDetail struct {
	Offset    int // position within the target slot
	Direction grid.Direction
	Length    int
	Count     CrossingScore
}

// CandidateResult is one scored candidate for a slot.
type CandidateResult struct {
	Entry      corpus.Entry
	MatchScore int
	Crossing   CrossingScore
	Unfillable bool
	Details    []CrossingDetail
}

// AnalyzeCrossings scores candidates for the target slot by the
// bottleneck rule: a placement is only as safe as its most constrained
// crossing. Candidates must already match the target's pattern (the
// phase-1 query provides them). Results come back ordered by match
// score descending, crossing score descending, word ascending, and
// truncated to limit (<= 0 means no cap).
func (a *Analyzer) AnalyzeCrossings(g *grid.Grid, target grid.Slot, candidates []corpus.Entry, limit int) ([]CandidateResult, error) {
	if err := grid.CheckSlot(g, target); err != nil {
		return nil, err
	}
	for _, cand := range candidates {
		if cand.Length != target.Length {
			return nil, fmt.Errorf("candidate %q has length %d, slot wants %d", cand.Word, cand.Length, target.Length)
		}
	}

	results := make([]CandidateResult, len(candidates))
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, cand := range candidates {
		i, cand := i, cand
		eg.Go(func() error {
			results[i] = a.scoreCandidate(g, target, cand)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].MatchScore != results[j].MatchScore {
			return results[i].MatchScore > results[j].MatchScore
		}
		if results[i].Crossing != results[j].Crossing {
			return results[j].Crossing.Less(results[i].Crossing)
		}
		return results[i].Entry.Word < results[j].Entry.Word
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// scoreCandidate simulates placing one word and measures every
// crossing it touches.
func (a *Analyzer) scoreCandidate(g *grid.Grid, target grid.Slot, cand corpus.Entry) CandidateResult {
	res := CandidateResult{
		Entry:      cand,
		MatchScore: cand.Score,
	}

	dr, dc := 0, 1
	if target.Direction == grid.Down {
		dr, dc = 1, 0
	}

	impossible := false
	bottleneck := UnconstrainedScore()
	for i := 0; i < target.Length; i++ {
		row, col := target.Row+i*dr, target.Col+i*dc
		cross, offset, ok := grid.SlotThrough(g, row, col, target.Direction.Orthogonal())
		if !ok {
			continue
		}

		overlay := cross.Pattern.WithLetter(offset, cand.Word[i])
		count := a.crossingCount(overlay)
		res.Details = append(res.Details, CrossingDetail{
			Offset:    i,
			Direction: cross.Direction,
			Length:    cross.Length,
			Count:     count,
		})

		if count.IsUnconstrained() {
			continue
		}
		if count.Count() == 0 {
			impossible = true
		}
		if count.Less(bottleneck) {
			bottleneck = count
		}
	}

	if impossible {
		res.Crossing = CountScore(0)
		res.Unfillable = true
	} else {
		res.Crossing = bottleneck
	}
	return res
}

// crossingCount evaluates one crossing slot's post-placement pattern.
// A completed crossing is an exact dictionary check. A crossing whose
// only fixed letter is the one being placed was untouched before; its
// count only matters when it is small, otherwise the slot is reported
// as unconstrained so the UI does not overweight territory nobody has
// entered yet.
func (a *Analyzer) crossingCount(overlay index.Pattern) CrossingScore {
	n := a.ix.Count(overlay)
	if overlay.Complete() {
		return CountScore(n)
	}
	if overlay.Fixed() == 1 && n >= ThresholdGood {
		return UnconstrainedScore()
	}
	return CountScore(n)
}
