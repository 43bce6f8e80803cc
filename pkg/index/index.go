/*
Package index answers "how many / which top-K words match this letter
pattern" against a corpus snapshot, fast enough to run per keystroke.

Entries are partitioned by length. Inside a bucket every word gets a
local id assigned in rank order (score descending, word ascending),
and each (position, letter) pair keeps a sorted posting list of those
ids. A pattern query intersects the posting lists for its fixed
positions, smallest list first; because all lists share the same rank
order, the intersection comes out already ranked.

An Index is built once per corpus snapshot and is read-only afterwards,
so concurrent queries need no locking. The count cache inside it has
its own lock and dies with the snapshot, which is how invalidation
happens.
*/
package index

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/crossforge/crossforge/pkg/corpus"
)

// Index is the per-snapshot pattern lookup structure.
type Index struct {
	corpus  *corpus.Corpus
	buckets map[int]*bucket
	cache   *countCache
}

// bucket holds all words of one length.
type bucket struct {
	entries  []corpus.Entry // rank order: score desc, word asc
	postings [][26][]uint32 // [position][letter] -> ascending local ids
}

// DefaultCacheSize bounds the count cache. Crossing analysis hammers
// the same few hundred pattern variants, so this stays small.
const DefaultCacheSize = 4096

// Build constructs the index for a corpus snapshot with the default
// count-cache bound.
func Build(c *corpus.Corpus) *Index {
	return BuildWithCacheSize(c, DefaultCacheSize)
}

// BuildWithCacheSize constructs the index with an explicit count-cache
// bound. A size <= 0 falls back to DefaultCacheSize.
func BuildWithCacheSize(c *corpus.Corpus, cacheSize int) *Index {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	ix := &Index{
		corpus:  c,
		buckets: make(map[int]*bucket),
		cache:   newCountCache(cacheSize),
	}

	byLen := make(map[int][]corpus.Entry)
	for _, e := range c.Entries() {
		byLen[e.Length] = append(byLen[e.Length], e)
	}

	for length, entries := range byLen {
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Score != entries[j].Score {
				return entries[i].Score > entries[j].Score
			}
			return entries[i].Word < entries[j].Word
		})
		b := &bucket{
			entries:  entries,
			postings: make([][26][]uint32, length),
		}
		for id, e := range entries {
			for pos := 0; pos < length; pos++ {
				letter := e.Word[pos] - 'A'
				b.postings[pos][letter] = append(b.postings[pos][letter], uint32(id))
			}
		}
		ix.buckets[length] = b
	}

	log.Debugf("Pattern index built: %d words, %d length buckets", c.Len(), len(ix.buckets))
	return ix
}

// Count returns how many words match p. Zero matches is an ordinary
// answer, including for lengths no word has.
func (ix *Index) Count(p Pattern) int {
	if p.Complete() {
		if ix.corpus.Contains(string(p)) {
			return 1
		}
		return 0
	}
	if n, ok := ix.cache.get(p); ok {
		return n
	}

	b, ok := ix.buckets[p.Len()]
	if !ok {
		return 0
	}
	var n int
	if p.Fixed() == 0 {
		n = len(b.entries)
	} else {
		n = len(b.intersect(p))
	}
	ix.cache.put(p, n)
	return n
}

// Ranked returns the matching entries best-first (score desc, word
// asc), truncated to limit. A limit <= 0 means no cap.
func (ix *Index) Ranked(p Pattern, limit int) []corpus.Entry {
	if p.Complete() {
		if e, ok := ix.corpus.Lookup(string(p)); ok {
			return []corpus.Entry{e}
		}
		return nil
	}
	b, ok := ix.buckets[p.Len()]
	if !ok {
		return nil
	}

	if p.Fixed() == 0 {
		return clampEntries(b.entries, limit)
	}
	ids := b.intersect(p)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	out := make([]corpus.Entry, len(ids))
	for i, id := range ids {
		out[i] = b.entries[id]
	}
	return out
}

// WordsOfLength returns the number of corpus words of a given length.
func (ix *Index) WordsOfLength(length int) int {
	b, ok := ix.buckets[length]
	if !ok {
		return 0
	}
	return len(b.entries)
}

// intersect merges the posting lists of p's fixed positions, smallest
// list first. Ids come back ascending, which is rank order.
func (b *bucket) intersect(p Pattern) []uint32 {
	lists := make([][]uint32, 0, p.Len())
	for pos := 0; pos < p.Len(); pos++ {
		if p[pos] == Wildcard {
			continue
		}
		lists = append(lists, b.postings[pos][p[pos]-'A'])
	}
	sort.Slice(lists, func(i, j int) bool { return len(lists[i]) < len(lists[j]) })

	acc := lists[0]
	for _, next := range lists[1:] {
		if len(acc) == 0 {
			return nil
		}
		acc = intersectSorted(acc, next)
	}
	return acc
}

// intersectSorted is a two-pointer merge of ascending id lists.
func intersectSorted(a, b []uint32) []uint32 {
	out := make([]uint32, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

func clampEntries(entries []corpus.Entry, limit int) []corpus.Entry {
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]corpus.Entry, len(entries))
	copy(out, entries)
	return out
}

// ValidateLength rejects structurally impossible pattern lengths
// before they reach a query.
func ValidateLength(p Pattern, want int) error {
	if p.Len() != want {
		return fmt.Errorf("pattern %q has length %d, slot wants %d", p, p.Len(), want)
	}
	return nil
}
