/*
Package grid models the crossword grid snapshot the engine analyzes:
cells, slot extraction with standard numbering, and structural
validation warnings.

Slots are never stored or patched incrementally. They are derived
fresh from the grid on every call, because a single new black square
can renumber everything after it.
*/
package grid

import (
	"fmt"
	"strings"
)

// Cell is one square of the grid. Letter is 0 for an empty white
// cell, otherwise an uppercase 'A'-'Z'.
type Cell struct {
	Black  bool
	Letter byte
}

// Grid is a rectangular crossword grid snapshot.
type Grid struct {
	Rows  int
	Cols  int
	Cells [][]Cell
}

// New returns an all-white grid of the given size.
func New(rows, cols int) *Grid {
	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, cols)
	}
	return &Grid{Rows: rows, Cols: cols, Cells: cells}
}

// At returns the cell at (row, col). Out-of-bounds reads come back
// black, which lets slot scans treat the border uniformly.
func (g *Grid) At(row, col int) Cell {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return Cell{Black: true}
	}
	return g.Cells[row][col]
}

// blocked reports whether (row, col) ends a run of white cells.
func (g *Grid) blocked(row, col int) bool {
	return g.At(row, col).Black
}

// ParseText builds a grid from a text sketch: '#' is a black square,
// '.' an empty white square, a letter a filled one. Rows must have
// equal width.
func ParseText(s string) (*Grid, error) {
	var rows []string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty grid")
	}
	width := len(rows[0])
	g := New(len(rows), width)
	for r, line := range rows {
		if len(line) != width {
			return nil, fmt.Errorf("row %d has width %d, want %d", r, len(line), width)
		}
		for c := 0; c < width; c++ {
			switch ch := line[c]; {
			case ch == '#':
				g.Cells[r][c] = Cell{Black: true}
			case ch == '.':
				g.Cells[r][c] = Cell{}
			case ch >= 'A' && ch <= 'Z':
				g.Cells[r][c] = Cell{Letter: ch}
			case ch >= 'a' && ch <= 'z':
				g.Cells[r][c] = Cell{Letter: ch - 'a' + 'A'}
			default:
				return nil, fmt.Errorf("row %d col %d: invalid cell %q", r, c, ch)
			}
		}
	}
	return g, nil
}

// Key returns a canonical string for the grid content, usable as a
// cache key by callers that memoize derivations.
func (g *Grid) Key() string {
	var b strings.Builder
	b.Grow(g.Rows * (g.Cols + 1))
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			cell := g.Cells[r][c]
			switch {
			case cell.Black:
				b.WriteByte('#')
			case cell.Letter == 0:
				b.WriteByte('.')
			default:
				b.WriteByte(cell.Letter)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
