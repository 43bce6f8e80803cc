package grid

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, s string) *Grid {
	t.Helper()
	g, err := ParseText(s)
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	return g
}

func TestParseText(t *testing.T) {
	g := mustParse(t, `
		CAT
		..#
		...
	`)
	if g.Rows != 3 || g.Cols != 3 {
		t.Fatalf("dims = %dx%d", g.Rows, g.Cols)
	}
	if g.At(0, 0).Letter != 'C' {
		t.Errorf("cell (0,0) = %+v", g.At(0, 0))
	}
	if !g.At(1, 2).Black {
		t.Error("cell (1,2) not black")
	}
	if g.At(2, 1).Letter != 0 || g.At(2, 1).Black {
		t.Errorf("cell (2,1) = %+v", g.At(2, 1))
	}

	// lowercase letters fold to uppercase
	if g := mustParse(t, "cat\n..#\n..."); g.At(0, 2).Letter != 'T' {
		t.Error("lowercase not folded")
	}

	for _, bad := range []string{"", "..\n...", "..!\n..."} {
		if _, err := ParseText(bad); err == nil {
			t.Errorf("ParseText(%q): expected error", bad)
		}
	}
}

func TestAtOutOfBounds(t *testing.T) {
	g := New(2, 2)
	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if !g.At(rc[0], rc[1]).Black {
			t.Errorf("At(%d,%d) not black", rc[0], rc[1])
		}
	}
}

func TestExtractSlots(t *testing.T) {
	g := mustParse(t, `
		CAT
		..#
		...
	`)

	got := ExtractSlots(g)
	want := []Slot{
		{Number: 1, Row: 0, Col: 0, Length: 3, Direction: Across, Pattern: "CAT"},
		{Number: 3, Row: 1, Col: 0, Length: 2, Direction: Across, Pattern: "__"},
		{Number: 4, Row: 2, Col: 0, Length: 3, Direction: Across, Pattern: "___"},
		{Number: 1, Row: 0, Col: 0, Length: 3, Direction: Down, Pattern: "C__"},
		{Number: 2, Row: 0, Col: 1, Length: 3, Direction: Down, Pattern: "A__"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("slots mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractSlotsDeterministic(t *testing.T) {
	g := mustParse(t, `
		....#
		.....
		#....
	`)
	first := ExtractSlots(g)
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, ExtractSlots(g)); diff != "" {
			t.Fatalf("extraction not deterministic:\n%s", diff)
		}
	}
}

func TestExtractSlotsSkipsSingles(t *testing.T) {
	// the middle-right cell only runs length 1 downward; it must not
	// produce a down slot
	g := mustParse(t, `
		..#
		...
		..#
	`)
	for _, s := range ExtractSlots(g) {
		if s.Length < MinSlotLength {
			t.Errorf("slot below minimum length: %+v", s)
		}
	}
}

func TestSlotThrough(t *testing.T) {
	g := mustParse(t, `
		CAT
		..#
		...
	`)

	s, offset, ok := SlotThrough(g, 1, 1, Across)
	if !ok {
		t.Fatal("no across slot through (1,1)")
	}
	if s.Row != 1 || s.Col != 0 || s.Length != 2 || offset != 1 {
		t.Errorf("slot = %+v, offset = %d", s, offset)
	}
	if s.Pattern != "__" {
		t.Errorf("pattern = %q", s.Pattern)
	}

	// black cell: no slot in either direction
	if _, _, ok := SlotThrough(g, 1, 2, Across); ok {
		t.Error("slot through a black square")
	}
	// white cell whose down run is a single cell
	if _, _, ok := SlotThrough(g, 0, 2, Down); ok {
		t.Error("single-cell run treated as a slot")
	}
}

func TestRunsStopAtGridEdge(t *testing.T) {
	g := mustParse(t, `
		..
		..
	`)

	s, offset, ok := SlotThrough(g, 1, 1, Across)
	if !ok {
		t.Fatal("no across slot through (1,1)")
	}
	if s.Row != 1 || s.Col != 0 || s.Length != 2 || offset != 1 {
		t.Errorf("slot = %+v, offset = %d", s, offset)
	}
	s, _, ok = SlotThrough(g, 1, 1, Down)
	if !ok {
		t.Fatal("no down slot through (1,1)")
	}
	if s.Length != 2 {
		t.Errorf("down run length = %d, want 2", s.Length)
	}
}

func TestCheckSlot(t *testing.T) {
	g := mustParse(t, `
		CAT
		..#
		...
	`)

	good := Slot{Row: 1, Col: 0, Length: 2, Direction: Across}
	if err := CheckSlot(g, good); err != nil {
		t.Errorf("valid slot rejected: %v", err)
	}

	bad := []Slot{
		{Row: 1, Col: 0, Length: 3, Direction: Across},                 // run is only 2
		{Row: 1, Col: 2, Length: 2, Direction: Across},                 // starts on black
		{Row: 0, Col: 1, Length: 2, Direction: Across},                 // starts mid-run
		{Row: 0, Col: 0, Length: 1, Direction: Down},                   // below minimum
		{Row: 9, Col: 0, Length: 2, Direction: Down},                   // out of bounds
		{Row: 1, Col: 0, Length: 2, Direction: Across, Pattern: "ABC"}, // pattern length disagrees
	}
	for _, s := range bad {
		err := CheckSlot(g, s)
		var malformed *MalformedSlotError
		if !errors.As(err, &malformed) {
			t.Errorf("slot %+v: expected MalformedSlotError, got %v", s, err)
		}
	}
}

func TestDirection(t *testing.T) {
	if Across.Orthogonal() != Down || Down.Orthogonal() != Across {
		t.Error("Orthogonal broken")
	}
	if Across.String() != "across" || Down.String() != "down" {
		t.Error("String broken")
	}
	if d, err := ParseDirection("down"); err != nil || d != Down {
		t.Errorf("ParseDirection(down) = %v, %v", d, err)
	}
	if _, err := ParseDirection("diagonal"); err == nil {
		t.Error("ParseDirection accepted nonsense")
	}
}

func TestGridKey(t *testing.T) {
	a := mustParse(t, "CAT\n..#\n...")
	b := mustParse(t, "CAT\n..#\n...")
	c := mustParse(t, "CAT\n..#\n..A")
	if a.Key() != b.Key() {
		t.Error("identical grids have different keys")
	}
	if a.Key() == c.Key() {
		t.Error("different grids share a key")
	}
}
