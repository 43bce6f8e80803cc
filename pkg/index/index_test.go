package index

import (
	"testing"

	"github.com/crossforge/crossforge/pkg/corpus"
)

func entry(t *testing.T, display string, score int) corpus.Entry {
	t.Helper()
	e, err := corpus.NewEntry(display, score, "jones")
	if err != nil {
		t.Fatalf("NewEntry(%q): %v", display, err)
	}
	return e
}

func buildIndex(t *testing.T, words ...corpus.Entry) *Index {
	t.Helper()
	return Build(corpus.Build(words))
}

func TestRankedOrder(t *testing.T) {
	ix := buildIndex(t,
		entry(t, "plano", 40),
		entry(t, "piano", 90),
		entry(t, "peano", 40), // ties with plano, alphabetical breaks it
	)

	got := ix.Ranked("P_A_O", 0)
	want := []string{"PIANO", "PEANO", "PLANO"}
	if len(got) != len(want) {
		t.Fatalf("got %d matches, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Word != w {
			t.Errorf("ranked[%d] = %q, want %q", i, got[i].Word, w)
		}
	}
}

func TestCountAgreesWithRanked(t *testing.T) {
	ix := buildIndex(t,
		entry(t, "piano", 90),
		entry(t, "plano", 40),
		entry(t, "organ", 60),
		entry(t, "pianos", 80), // different length, must not leak in
	)

	for _, p := range []Pattern{"P_A_O", "_____", "O____", "Z____", "PIANO"} {
		if c, r := ix.Count(p), len(ix.Ranked(p, 0)); c != r {
			t.Errorf("pattern %q: Count = %d, Ranked gives %d", p, c, r)
		}
	}
}

func TestCountMonotoneUnderConstraint(t *testing.T) {
	ix := buildIndex(t,
		entry(t, "piano", 90),
		entry(t, "plano", 40),
		entry(t, "peano", 40),
		entry(t, "llano", 30),
	)

	// fixing one more letter can only shrink the match set
	open := ix.Count("_____")
	one := ix.Count("P____")
	two := ix.Count("P_A__")
	three := ix.Count("P_A_O")
	if !(open >= one && one >= two && two >= three) {
		t.Errorf("counts not monotone: %d %d %d %d", open, one, two, three)
	}
	if three != 3 {
		t.Errorf("P_A_O count = %d, want 3", three)
	}
}

func TestCompletePatternIsExactLookup(t *testing.T) {
	ix := buildIndex(t, entry(t, "piano", 90))

	if n := ix.Count("PIANO"); n != 1 {
		t.Errorf("Count(PIANO) = %d, want 1", n)
	}
	if n := ix.Count("PIANZ"); n != 0 {
		t.Errorf("Count(PIANZ) = %d, want 0", n)
	}
	got := ix.Ranked("PIANO", 0)
	if len(got) != 1 || got[0].Word != "PIANO" {
		t.Errorf("Ranked(PIANO) = %v", got)
	}
}

func TestMissingLengthBucket(t *testing.T) {
	ix := buildIndex(t, entry(t, "piano", 90))

	if n := ix.Count("___"); n != 0 {
		t.Errorf("Count on length with no words = %d", n)
	}
	if got := ix.Ranked("___", 0); got != nil {
		t.Errorf("Ranked on length with no words = %v", got)
	}
	if n := ix.WordsOfLength(3); n != 0 {
		t.Errorf("WordsOfLength(3) = %d", n)
	}
	if n := ix.WordsOfLength(5); n != 1 {
		t.Errorf("WordsOfLength(5) = %d", n)
	}
}

func TestEmptyCorpus(t *testing.T) {
	ix := Build(corpus.Build(nil))
	if n := ix.Count("_____"); n != 0 {
		t.Errorf("Count on empty corpus = %d", n)
	}
	if got := ix.Ranked("A__", 5); got != nil {
		t.Errorf("Ranked on empty corpus = %v", got)
	}
}

func TestRankedLimit(t *testing.T) {
	ix := buildIndex(t,
		entry(t, "piano", 90),
		entry(t, "plano", 40),
		entry(t, "peano", 40),
	)
	got := ix.Ranked("P_A_O", 2)
	if len(got) != 2 {
		t.Fatalf("limit 2 returned %d", len(got))
	}
	if got[0].Word != "PIANO" {
		t.Errorf("truncation dropped the best match: %q", got[0].Word)
	}
	// limit larger than the match set is fine
	if got := ix.Ranked("P_A_O", 50); len(got) != 3 {
		t.Errorf("oversized limit returned %d", len(got))
	}
}

func TestZeroFixedRanked(t *testing.T) {
	ix := buildIndex(t,
		entry(t, "plano", 40),
		entry(t, "piano", 90),
	)
	got := ix.Ranked("_____", 0)
	if len(got) != 2 || got[0].Word != "PIANO" {
		t.Errorf("open pattern not ranked: %v", got)
	}
}

func TestCountCacheEvictsLRU(t *testing.T) {
	cc := newCountCache(2)
	cc.put("A____", 1)
	cc.put("B____", 2)
	// touch A so B becomes the LRU victim
	if _, ok := cc.get("A____"); !ok {
		t.Fatal("A missing before eviction")
	}
	cc.put("C____", 3)

	if cc.len() != 2 {
		t.Errorf("cache len = %d, want 2", cc.len())
	}
	if _, ok := cc.get("B____"); ok {
		t.Error("LRU entry B survived eviction")
	}
	if _, ok := cc.get("A____"); !ok {
		t.Error("recently used entry A was evicted")
	}
	if n, ok := cc.get("C____"); !ok || n != 3 {
		t.Errorf("C = %d, %v", n, ok)
	}
}

func TestBuildWithCacheSize(t *testing.T) {
	c := corpus.Build([]corpus.Entry{
		entry(t, "piano", 90),
		entry(t, "plano", 40),
	})

	ix := BuildWithCacheSize(c, 2)
	if ix.cache.maxEntries != 2 {
		t.Fatalf("cache bound = %d, want 2", ix.cache.maxEntries)
	}
	// three distinct incomplete patterns overflow the bound
	for _, p := range []Pattern{"P____", "_I___", "__A__"} {
		ix.Count(p)
	}
	if ix.cache.len() != 2 {
		t.Errorf("cache len = %d, want 2 after eviction", ix.cache.len())
	}

	// non-positive sizes fall back to the default
	if ix := BuildWithCacheSize(c, 0); ix.cache.maxEntries != DefaultCacheSize {
		t.Errorf("cache bound = %d, want DefaultCacheSize", ix.cache.maxEntries)
	}
}

func TestValidateLength(t *testing.T) {
	if err := ValidateLength("P_A_O", 5); err != nil {
		t.Errorf("matching length rejected: %v", err)
	}
	if err := ValidateLength("P_A_O", 4); err == nil {
		t.Error("mismatched length accepted")
	}
}
