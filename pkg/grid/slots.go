package grid

import (
	"fmt"

	"github.com/crossforge/crossforge/pkg/index"
)

// MinSlotLength is the shortest run of white cells that counts as a
// slot. Single cells never do.
const MinSlotLength = 2

// Direction of a slot.
type Direction int

const (
	Across Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "across"
}

// Orthogonal returns the crossing direction.
func (d Direction) Orthogonal() Direction {
	if d == Across {
		return Down
	}
	return Across
}

// ParseDirection reads "across" or "down".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "across":
		return Across, nil
	case "down":
		return Down, nil
	}
	return Across, fmt.Errorf("invalid direction %q", s)
}

// Slot is one across or down word position, with its current letter
// pattern. Slots are derived values with no lifecycle of their own.
type Slot struct {
	Number    int
	Row       int
	Col       int
	Length    int
	Direction Direction
	Pattern   index.Pattern
}

// MalformedSlotError reports a slot whose declared geometry disagrees
// with the grid. The analyzer surfaces it rather than truncating a
// word to fit.
type MalformedSlotError struct {
	Slot   Slot
	Reason string
}

func (e *MalformedSlotError) Error() string {
	return fmt.Sprintf("malformed slot %d-%s at (%d,%d): %s",
		e.Slot.Number, e.Slot.Direction, e.Slot.Row, e.Slot.Col, e.Reason)
}

// startsSlot reports whether (row, col) begins a slot in direction d:
// white, preceded by edge or black, and running at least MinSlotLength.
func startsSlot(g *Grid, row, col int, d Direction) bool {
	if g.At(row, col).Black {
		return false
	}
	dr, dc := delta(d)
	if !g.blocked(row-dr, col-dc) {
		return false
	}
	return runLength(g, row, col, d) >= MinSlotLength
}

func delta(d Direction) (int, int) {
	if d == Down {
		return 1, 0
	}
	return 0, 1
}

// runLength counts contiguous white cells from (row, col) in direction
// d. At reports black out of bounds, so the loop stops at the edge.
func runLength(g *Grid, row, col int, d Direction) int {
	dr, dc := delta(d)
	n := 0
	for !g.At(row, col).Black {
		n++
		row += dr
		col += dc
	}
	return n
}

// patternAt derives the current pattern for a run of cells.
func patternAt(g *Grid, row, col, length int, d Direction) index.Pattern {
	dr, dc := delta(d)
	b := make([]byte, length)
	for i := 0; i < length; i++ {
		cell := g.At(row+i*dr, col+i*dc)
		if cell.Letter == 0 {
			b[i] = index.Wildcard
		} else {
			b[i] = cell.Letter
		}
	}
	return index.Pattern(b)
}

// ExtractSlots derives every slot from the grid, numbered by the
// standard crossword rule: scanning row-major, a cell gets the next
// number if it starts at least one slot. Across slots come first,
// then down, each in scan order. Pure function of the grid.
func ExtractSlots(g *Grid) []Slot {
	numbers := make(map[[2]int]int)
	next := 1
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if startsSlot(g, r, c, Across) || startsSlot(g, r, c, Down) {
				numbers[[2]int{r, c}] = next
				next++
			}
		}
	}

	var slots []Slot
	for _, d := range []Direction{Across, Down} {
		for r := 0; r < g.Rows; r++ {
			for c := 0; c < g.Cols; c++ {
				if !startsSlot(g, r, c, d) {
					continue
				}
				length := runLength(g, r, c, d)
				slots = append(slots, Slot{
					Number:    numbers[[2]int{r, c}],
					Row:       r,
					Col:       c,
					Length:    length,
					Direction: d,
					Pattern:   patternAt(g, r, c, length, d),
				})
			}
		}
	}
	return slots
}

// SlotThrough finds the slot in direction d that passes through
// (row, col), if the run there is long enough to be a slot. The
// returned slot carries no number; numbering needs the whole grid.
// The second result is the cell's offset inside the slot.
func SlotThrough(g *Grid, row, col int, d Direction) (Slot, int, bool) {
	if g.At(row, col).Black {
		return Slot{}, 0, false
	}
	dr, dc := delta(d)
	startRow, startCol := row, col
	for !g.blocked(startRow-dr, startCol-dc) {
		startRow -= dr
		startCol -= dc
	}
	length := runLength(g, startRow, startCol, d)
	if length < MinSlotLength {
		return Slot{}, 0, false
	}
	s := Slot{
		Row:       startRow,
		Col:       startCol,
		Length:    length,
		Direction: d,
		Pattern:   patternAt(g, startRow, startCol, length, d),
	}
	offset := (row - startRow) + (col - startCol)
	return s, offset, true
}

// CheckSlot verifies that a slot's declared geometry matches the
// grid: start in bounds, bounded by edge or black on both ends, and
// exactly Length contiguous white cells.
func CheckSlot(g *Grid, s Slot) error {
	if s.Length < MinSlotLength {
		return &MalformedSlotError{Slot: s, Reason: fmt.Sprintf("length %d below minimum %d", s.Length, MinSlotLength)}
	}
	if g.At(s.Row, s.Col).Black {
		return &MalformedSlotError{Slot: s, Reason: "starts on a black square"}
	}
	dr, dc := delta(s.Direction)
	if !g.blocked(s.Row-dr, s.Col-dc) {
		return &MalformedSlotError{Slot: s, Reason: "start is not preceded by edge or black"}
	}
	if got := runLength(g, s.Row, s.Col, s.Direction); got != s.Length {
		return &MalformedSlotError{Slot: s, Reason: fmt.Sprintf("declared length %d, contiguous run is %d", s.Length, got)}
	}
	if s.Pattern != "" {
		if err := index.ValidateLength(s.Pattern, s.Length); err != nil {
			return &MalformedSlotError{Slot: s, Reason: err.Error()}
		}
	}
	return nil
}
