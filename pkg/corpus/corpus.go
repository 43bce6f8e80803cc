/*
Package corpus holds the scored word list the fill engine searches.

A Corpus is an immutable snapshot: mutation methods return a new value
and never touch the receiver, so concurrent pattern queries always see
a consistent word list. Entries are keyed by their canonical uppercase
form; conflicting inserts either merge (max score, union of sources)
or fail with a DuplicateError, caller's choice.
*/
package corpus

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/crossforge/crossforge/internal/utils"
)

// SourceUser marks entries the constructor typed in by hand. Their
// score is pinned at MaxScore and never lowered by seed imports.
const SourceUser = "user"

// MaxScore is the top of the normalized 0-100 scoring range.
const MaxScore = 100

// Entry is a single scored dictionary word.
type Entry struct {
	Word     string // canonical uppercase form, the matching key
	Display  string // original casing/spacing for presentation
	Length   int    // len(Word), fixed at construction
	Score    int    // 0-100, higher fills better
	Source   string // comma-joined provenance tags
	IsPhrase bool   // display had spaces or hyphens
}

// NewEntry canonicalizes a display form into an Entry.
// The empty display and forms with no letters at all are rejected.
func NewEntry(display string, score int, source string) (Entry, error) {
	word := utils.Canonicalize(display)
	if word == "" {
		return Entry{}, fmt.Errorf("no letters in %q", display)
	}
	if score < 0 {
		score = 0
	}
	if score > MaxScore {
		score = MaxScore
	}
	if source == SourceUser {
		score = MaxScore
	}
	if display == "" {
		display = word
	}
	return Entry{
		Word:     word,
		Display:  display,
		Length:   len(word),
		Score:    score,
		Source:   source,
		IsPhrase: utils.IsPhrase(display),
	}, nil
}

// DuplicateError reports an upsert conflict when the caller did not
// ask for merge semantics.
type DuplicateError struct {
	Word string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("word %q already in corpus", e.Word)
}

// Corpus is an immutable collection of entries, addressable by word
// and searchable by prefix.
type Corpus struct {
	entries []Entry
	trie    *patricia.Trie // canonical word -> index into entries
}

// Build constructs a corpus from entries, merging duplicates as it
// goes. Insertion order of first occurrence is preserved, which keeps
// the result deterministic for identical inputs.
func Build(entries []Entry) *Corpus {
	c := &Corpus{
		entries: make([]Entry, 0, len(entries)),
		trie:    patricia.NewTrie(),
	}
	for _, e := range entries {
		if !utils.IsCanonical(e.Word) {
			log.Warnf("Skipping non-canonical word %q", e.Word)
			continue
		}
		if item := c.trie.Get(patricia.Prefix(e.Word)); item != nil {
			i := item.(int)
			c.entries[i] = MergeEntries(c.entries[i], e)
			continue
		}
		c.trie.Insert(patricia.Prefix(e.Word), len(c.entries))
		c.entries = append(c.entries, e)
	}
	return c
}

// Len returns the number of unique words.
func (c *Corpus) Len() int {
	return len(c.entries)
}

// Entries returns the append-order view of all entries.
// The slice is shared; callers must not modify it.
func (c *Corpus) Entries() []Entry {
	return c.entries
}

// Lookup finds an entry by its canonical word.
func (c *Corpus) Lookup(word string) (Entry, bool) {
	item := c.trie.Get(patricia.Prefix(word))
	if item == nil {
		return Entry{}, false
	}
	return c.entries[item.(int)], true
}

// Contains reports whether the exact canonical word is present.
func (c *Corpus) Contains(word string) bool {
	return c.trie.Get(patricia.Prefix(word)) != nil
}

// SearchPrefix returns up to limit entries whose canonical word starts
// with prefix, for the answer-browser views. Results come back in
// score order, best first. A limit <= 0 means no cap.
func (c *Corpus) SearchPrefix(prefix string, limit int) []Entry {
	var found []Entry
	err := c.trie.VisitSubtree(patricia.Prefix(strings.ToUpper(prefix)), func(p patricia.Prefix, item patricia.Item) error {
		found = append(found, c.entries[item.(int)])
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return nil
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].Score != found[j].Score {
			return found[i].Score > found[j].Score
		}
		return found[i].Word < found[j].Word
	})
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	return found
}

// Upsert returns a new corpus containing e. If the word already exists
// and merge is false, the receiver is returned unchanged along with a
// DuplicateError; with merge true the entries are combined.
func (c *Corpus) Upsert(e Entry, merge bool) (*Corpus, error) {
	if !utils.IsCanonical(e.Word) {
		return c, fmt.Errorf("word %q is not canonical", e.Word)
	}
	if c.Contains(e.Word) && !merge {
		return c, &DuplicateError{Word: e.Word}
	}
	next := make([]Entry, len(c.entries), len(c.entries)+1)
	copy(next, c.entries)
	return Build(append(next, e)), nil
}

// Remove returns a new corpus without word. The second result is false
// if the word was not present (the receiver comes back unchanged).
func (c *Corpus) Remove(word string) (*Corpus, bool) {
	item := c.trie.Get(patricia.Prefix(word))
	if item == nil {
		return c, false
	}
	at := item.(int)
	next := make([]Entry, 0, len(c.entries)-1)
	next = append(next, c.entries[:at]...)
	next = append(next, c.entries[at+1:]...)
	return Build(next), true
}

// MergeEntries combines two entries for the same word: highest score
// wins, provenance is unioned, and a user entry pins the score at max.
func MergeEntries(a, b Entry) Entry {
	out := a
	if b.Score > out.Score {
		out.Score = b.Score
		out.Display = b.Display
		out.IsPhrase = b.IsPhrase
	}
	out.Source = unionSources(a.Source, b.Source)
	for _, tag := range strings.Split(out.Source, ",") {
		if tag == SourceUser {
			out.Score = MaxScore
		}
	}
	return out
}

func unionSources(a, b string) string {
	seen := make(map[string]bool)
	var tags []string
	for _, s := range strings.Split(a+","+b, ",") {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		tags = append(tags, s)
	}
	sort.Strings(tags)
	return strings.Join(tags, ",")
}
