package corpus

import (
	"errors"
	"testing"
)

func mustEntry(t *testing.T, display string, score int, source string) Entry {
	t.Helper()
	e, err := NewEntry(display, score, source)
	if err != nil {
		t.Fatalf("NewEntry(%q): %v", display, err)
	}
	return e
}

func TestNewEntryCanonicalizes(t *testing.T) {
	cases := []struct {
		display string
		word    string
		phrase  bool
	}{
		{"piano", "PIANO", false},
		{"Jazz Age", "JAZZAGE", true},
		{"e-mail", "EMAIL", true},
		{"O'NEILL", "ONEILL", false},
	}
	for _, tc := range cases {
		e := mustEntry(t, tc.display, 50, "jones")
		if e.Word != tc.word {
			t.Errorf("%q: word = %q, want %q", tc.display, e.Word, tc.word)
		}
		if e.Length != len(tc.word) {
			t.Errorf("%q: length = %d, want %d", tc.display, e.Length, len(tc.word))
		}
		if e.IsPhrase != tc.phrase {
			t.Errorf("%q: phrase = %v, want %v", tc.display, e.IsPhrase, tc.phrase)
		}
		if e.Display != tc.display {
			t.Errorf("%q: display = %q", tc.display, e.Display)
		}
	}
}

func TestNewEntryRejectsLetterless(t *testing.T) {
	for _, display := range []string{"", "123", "---", "  "} {
		if _, err := NewEntry(display, 50, "jones"); err == nil {
			t.Errorf("NewEntry(%q): expected error", display)
		}
	}
}

func TestNewEntryClampsScore(t *testing.T) {
	if e := mustEntry(t, "high", 250, "jones"); e.Score != MaxScore {
		t.Errorf("score = %d, want %d", e.Score, MaxScore)
	}
	if e := mustEntry(t, "low", -10, "jones"); e.Score != 0 {
		t.Errorf("score = %d, want 0", e.Score)
	}
	// user entries are always pinned at max regardless of asked score
	if e := mustEntry(t, "mine", 10, SourceUser); e.Score != MaxScore {
		t.Errorf("user score = %d, want %d", e.Score, MaxScore)
	}
}

func TestBuildMergesDuplicates(t *testing.T) {
	c := Build([]Entry{
		mustEntry(t, "piano", 40, "broda"),
		mustEntry(t, "PIANO", 90, "jones"),
		mustEntry(t, "organ", 60, "broda"),
	})
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	e, ok := c.Lookup("PIANO")
	if !ok {
		t.Fatal("PIANO not found after merge")
	}
	if e.Score != 90 {
		t.Errorf("merged score = %d, want 90 (max wins)", e.Score)
	}
	if e.Source != "broda,jones" {
		t.Errorf("merged source = %q, want %q", e.Source, "broda,jones")
	}
	// higher-scoring display takes over
	if e.Display != "PIANO" {
		t.Errorf("merged display = %q, want %q", e.Display, "PIANO")
	}
}

func TestBuildSkipsNonCanonical(t *testing.T) {
	// raw entries can sneak past NewEntry; the corpus rejects them
	c := Build([]Entry{
		mustEntry(t, "piano", 90, "jones"),
		{Word: "PIAN0", Display: "PIAN0", Length: 5, Score: 40, Source: "broda"},
	})
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if c.Contains("PIAN0") {
		t.Error("non-canonical word admitted")
	}
}

func TestMergeEntriesUserPin(t *testing.T) {
	user := mustEntry(t, "xword", 0, SourceUser)
	seed := mustEntry(t, "xword", 30, "cnex")

	merged := MergeEntries(seed, user)
	if merged.Score != MaxScore {
		t.Errorf("score = %d, want %d (user tag pins max)", merged.Score, MaxScore)
	}
	// and the pin survives merging the other way around
	merged = MergeEntries(user, seed)
	if merged.Score != MaxScore {
		t.Errorf("score = %d, want %d", merged.Score, MaxScore)
	}
}

func TestMergeEntriesNoSubstringPin(t *testing.T) {
	// a source tag merely containing "user" must not trigger the pin
	a := mustEntry(t, "word", 30, "userlist")
	b := mustEntry(t, "word", 40, "jones")
	if merged := MergeEntries(a, b); merged.Score != 40 {
		t.Errorf("score = %d, want 40", merged.Score)
	}
}

func TestUpsertDuplicate(t *testing.T) {
	c := Build([]Entry{mustEntry(t, "piano", 90, "jones")})

	_, err := c.Upsert(mustEntry(t, "piano", 40, "broda"), false)
	var dup *DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateError, got %v", err)
	}
	if dup.Word != "PIANO" {
		t.Errorf("DuplicateError.Word = %q", dup.Word)
	}

	// with merge the entries combine
	next, err := c.Upsert(mustEntry(t, "piano", 40, "broda"), true)
	if err != nil {
		t.Fatalf("merge upsert: %v", err)
	}
	e, _ := next.Lookup("PIANO")
	if e.Score != 90 || e.Source != "broda,jones" {
		t.Errorf("merged entry = %+v", e)
	}
	// original corpus untouched
	if orig, _ := c.Lookup("PIANO"); orig.Source != "jones" {
		t.Errorf("receiver mutated: %+v", orig)
	}
}

func TestRemove(t *testing.T) {
	c := Build([]Entry{
		mustEntry(t, "piano", 90, "jones"),
		mustEntry(t, "organ", 60, "jones"),
	})
	next, removed := c.Remove("PIANO")
	if !removed {
		t.Fatal("Remove reported not present")
	}
	if next.Contains("PIANO") {
		t.Error("PIANO survives removal")
	}
	if !next.Contains("ORGAN") {
		t.Error("ORGAN lost by removal")
	}
	if !c.Contains("PIANO") {
		t.Error("receiver mutated by Remove")
	}
	if _, removed := c.Remove("TUBA"); removed {
		t.Error("Remove of absent word reported true")
	}
}

func TestSearchPrefix(t *testing.T) {
	c := Build([]Entry{
		mustEntry(t, "piano", 90, "jones"),
		mustEntry(t, "pianist", 70, "jones"),
		mustEntry(t, "picnic", 70, "jones"),
		mustEntry(t, "organ", 60, "jones"),
	})

	got := c.SearchPrefix("pi", 0)
	want := []string{"PIANO", "PIANIST", "PICNIC"} // score desc, word asc on ties
	if len(got) != len(want) {
		t.Fatalf("got %d results, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Word != w {
			t.Errorf("result[%d] = %q, want %q", i, got[i].Word, w)
		}
	}

	if got := c.SearchPrefix("pi", 2); len(got) != 2 {
		t.Errorf("limit 2 returned %d results", len(got))
	}
	if got := c.SearchPrefix("zz", 0); len(got) != 0 {
		t.Errorf("absent prefix returned %d results", len(got))
	}
	// lowercase input folds to canonical form
	if got := c.SearchPrefix("PI", 0); len(got) != 3 {
		t.Errorf("uppercase prefix returned %d results", len(got))
	}
}
