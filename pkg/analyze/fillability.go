package analyze

import (
	"github.com/crossforge/crossforge/pkg/grid"
)

// SlotFill is the fillability verdict for one slot, ignoring
// crossings: just the raw match count of its current pattern.
type SlotFill struct {
	Slot     grid.Slot
	Count    int
	Complete bool
	Severity Severity
}

// Overview is the whole-grid fillability report behind the summary
// badge.
type Overview struct {
	Slots   []SlotFill
	Summary map[Severity]int
}

// Fillability counts remaining fills for every slot in the grid. Pure
// function of grid plus corpus snapshot: identical inputs give
// identical output.
func (a *Analyzer) Fillability(g *grid.Grid) Overview {
	slots := grid.ExtractSlots(g)

	out := Overview{
		Slots: make([]SlotFill, 0, len(slots)),
		Summary: map[Severity]int{
			SeverityGood:   0,
			SeverityOkay:   0,
			SeverityTight:  0,
			SeverityDanger: 0,
		},
	}
	for _, s := range slots {
		count := a.ix.Count(s.Pattern)
		complete := s.Pattern.Complete()
		var sev Severity
		if complete {
			sev = SeverityForComplete(count)
		} else {
			sev = SeverityForCount(count)
		}
		out.Slots = append(out.Slots, SlotFill{
			Slot:     s,
			Count:    count,
			Complete: complete,
			Severity: sev,
		})
		out.Summary[sev]++
	}
	return out
}
