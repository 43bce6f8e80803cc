package grid

import "fmt"

// Warning types reported by Validate.
const (
	WarnIsolatedRegions = "isolated_regions"
	WarnShortWords      = "short_words"
	WarnBrokenSymmetry  = "broken_symmetry"
)

// Coord addresses one cell.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Warning is a single structural problem found in a grid.
type Warning struct {
	Type    string  `json:"type"`
	Message string  `json:"message"`
	Cells   []Coord `json:"cells,omitempty"`
}

// Report is the outcome of a grid validation.
type Report struct {
	Valid    bool      `json:"valid"`
	Warnings []Warning `json:"warnings"`
}

// Validate checks a grid for construction problems: unreachable white
// regions, words shorter than three letters, and (optionally) broken
// 180-degree rotational symmetry. Warnings are advisory; the engine
// analyzes imperfect grids just fine.
func Validate(g *Grid, symmetry bool) Report {
	var warnings []Warning

	if isolated := isolatedRegions(g); len(isolated) > 0 {
		var cells []Coord
		for _, region := range isolated {
			cells = append(cells, region...)
		}
		warnings = append(warnings, Warning{
			Type:    WarnIsolatedRegions,
			Message: fmt.Sprintf("grid has %d isolated white region(s)", len(isolated)),
			Cells:   cells,
		})
	}

	if short := shortWords(g); len(short) > 0 {
		warnings = append(warnings, Warning{
			Type:    WarnShortWords,
			Message: fmt.Sprintf("found %d word(s) shorter than 3 letters", len(short)),
			Cells:   short,
		})
	}

	if symmetry {
		if broken := brokenSymmetry(g); len(broken) > 0 {
			warnings = append(warnings, Warning{
				Type:    WarnBrokenSymmetry,
				Message: fmt.Sprintf("found %d cell(s) breaking rotational symmetry", len(broken)),
				Cells:   broken,
			})
		}
	}

	return Report{Valid: len(warnings) == 0, Warnings: warnings}
}

// isolatedRegions flood-fills white cells; every component but the
// largest is isolated.
func isolatedRegions(g *Grid) [][]Coord {
	visited := make([][]bool, g.Rows)
	for i := range visited {
		visited[i] = make([]bool, g.Cols)
	}

	var regions [][]Coord
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if visited[r][c] || g.Cells[r][c].Black {
				continue
			}
			var region []Coord
			queue := []Coord{{r, c}}
			visited[r][c] = true
			for len(queue) > 0 {
				cur := queue[0]
				queue = queue[1:]
				region = append(region, cur)
				for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
					nr, nc := cur.Row+d[0], cur.Col+d[1]
					if nr < 0 || nr >= g.Rows || nc < 0 || nc >= g.Cols {
						continue
					}
					if visited[nr][nc] || g.Cells[nr][nc].Black {
						continue
					}
					visited[nr][nc] = true
					queue = append(queue, Coord{nr, nc})
				}
			}
			regions = append(regions, region)
		}
	}

	if len(regions) <= 1 {
		return nil
	}
	largest := 0
	for i, region := range regions {
		if len(region) > len(regions[largest]) {
			largest = i
		}
	}
	var isolated [][]Coord
	for i, region := range regions {
		if i != largest {
			isolated = append(isolated, region)
		}
	}
	return isolated
}

// shortWords finds 2-cell runs: long enough to count as slots but
// shorter than crossword convention allows.
func shortWords(g *Grid) []Coord {
	var out []Coord
	for _, d := range []Direction{Across, Down} {
		dr, dc := delta(d)
		for r := 0; r < g.Rows; r++ {
			for c := 0; c < g.Cols; c++ {
				if !g.blocked(r-dr, c-dc) || g.At(r, c).Black {
					continue
				}
				if n := runLength(g, r, c, d); n > 1 && n < 3 {
					out = append(out, Coord{r, c})
				}
			}
		}
	}
	return out
}

// brokenSymmetry lists cell pairs violating 180-degree rotational
// symmetry of the black-square layout. Each pair is reported once.
func brokenSymmetry(g *Grid) []Coord {
	var out []Coord
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			mr, mc := g.Rows-1-r, g.Cols-1-c
			if g.Cells[r][c].Black != g.Cells[mr][mc].Black {
				if r < mr || (r == mr && c < mc) {
					out = append(out, Coord{r, c})
				}
			}
		}
	}
	return out
}
