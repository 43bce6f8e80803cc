/*
Package wordlist parses the seed word lists (Jones, Broda, CNEX) into
corpus entries, normalizing each list's native scoring onto the
shared 0-100 scale and merging duplicates across lists.

Merge rules: highest normalized score wins, provenance is unioned,
and natural-casing displays (Jones, Broda) are preferred over CNEX's
all-caps forms. Words that only exist in CNEX get title-cased so the
answer browser is not full of shouting.
*/
package wordlist

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/crossforge/crossforge/internal/utils"
	"github.com/crossforge/crossforge/pkg/corpus"
)

// Source tags.
const (
	SourceJones = "jones"
	SourceBroda = "broda"
	SourceCNEX  = "cnex"
)

// NormalizeJones maps the Jones 1-50 scale onto 0-100.
func NormalizeJones(score int) int {
	n := score * 2
	if n > 100 {
		return 100
	}
	if n < 0 {
		return 0
	}
	return n
}

// NormalizeBroda maps the Broda 38-80 range linearly onto 45-100.
func NormalizeBroda(score int) int {
	if score <= 38 {
		return 45
	}
	if score >= 80 {
		return 100
	}
	return int(float64(score-38)/42*55) + 45
}

// NormalizeCNEX maps the CNEX 5-90 range linearly onto 5-100.
func NormalizeCNEX(score int) int {
	if score <= 5 {
		return 5
	}
	if score >= 90 {
		return 100
	}
	return int(float64(score-5)/85*95) + 5
}

// ParseJones reads the Jones format: one "display;score" entry per
// line, mixed case, phrases with spaces. Unparseable lines are logged
// and skipped.
func ParseJones(r io.Reader) map[string]corpus.Entry {
	words := make(map[string]corpus.Entry)
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.Contains(line, ";") {
			continue
		}
		at := strings.LastIndex(line, ";")
		display := strings.TrimSpace(line[:at])
		score, err := strconv.Atoi(strings.TrimSpace(line[at+1:]))
		if err != nil {
			log.Warnf("Jones line %d: bad score: %v", lineNum, err)
			continue
		}
		word := strings.ToUpper(strings.ReplaceAll(display, " ", ""))
		if !utils.IsCanonical(word) {
			continue
		}
		keep(words, corpus.Entry{
			Word:     word,
			Display:  display,
			Length:   len(word),
			Score:    NormalizeJones(score),
			Source:   SourceJones,
			IsPhrase: strings.Contains(display, " "),
		})
	}
	return words
}

// ParseBroda reads the Broda format: CSV rows of word,score with an
// optional header.
func ParseBroda(r io.Reader) map[string]corpus.Entry {
	words := make(map[string]corpus.Entry)
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	lineNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNum++
		if err != nil {
			log.Warnf("Broda line %d: %v", lineNum, err)
			continue
		}
		if len(row) < 2 {
			continue
		}
		if lineNum == 1 && strings.EqualFold(strings.TrimSpace(row[0]), "word") {
			continue
		}
		display := strings.TrimSpace(row[0])
		score, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			log.Warnf("Broda line %d: bad score: %v", lineNum, err)
			continue
		}
		word := utils.Canonicalize(display)
		if word == "" {
			continue
		}
		keep(words, corpus.Entry{
			Word:     word,
			Display:  display,
			Length:   len(word),
			Score:    NormalizeBroda(score),
			Source:   SourceBroda,
			IsPhrase: utils.IsPhrase(display),
		})
	}
	return words
}

// ParseCNEX reads the CNEX format: "WORD;score" lines, all caps, no
// phrase markers. Entries with digits mixed in are rejected.
func ParseCNEX(r io.Reader) map[string]corpus.Entry {
	words := make(map[string]corpus.Entry)
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.Contains(line, ";") {
			continue
		}
		at := strings.LastIndex(line, ";")
		raw := strings.TrimSpace(line[:at])
		score, err := strconv.Atoi(strings.TrimSpace(line[at+1:]))
		if err != nil {
			log.Warnf("CNEX line %d: bad score: %v", lineNum, err)
			continue
		}
		if utils.ContainsDigits(raw) {
			continue
		}
		word := utils.Canonicalize(raw)
		if len(word) < 2 {
			continue
		}
		keep(words, corpus.Entry{
			Word:    word,
			Display: raw,
			Length:  len(word),
			Score:   NormalizeCNEX(score),
			Source:  SourceCNEX,
		})
	}
	return words
}

// keep retains the higher-scoring entry for a word within one list.
func keep(words map[string]corpus.Entry, e corpus.Entry) {
	if prev, ok := words[e.Word]; ok && prev.Score >= e.Score {
		return
	}
	words[e.Word] = e
}

// Merge combines per-source lists into one deduplicated entry slice,
// sorted by word for deterministic output. Highest score wins,
// sources union, Jones/Broda displays beat CNEX, and CNEX-only
// all-caps words get title-cased.
func Merge(lists ...map[string]corpus.Entry) []corpus.Entry {
	merged := make(map[string]corpus.Entry)
	for _, list := range lists {
		for word, e := range list {
			prev, ok := merged[word]
			if !ok {
				merged[word] = e
				continue
			}
			merged[word] = mergeSeed(prev, e)
		}
	}

	out := make([]corpus.Entry, 0, len(merged))
	for _, e := range merged {
		if e.Display == strings.ToUpper(e.Display) && e.Source == SourceCNEX {
			e.Display = utils.TitleCase(e.Display)
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out
}

func mergeSeed(a, b corpus.Entry) corpus.Entry {
	out := a
	if b.Score > out.Score {
		out.Score = b.Score
	}

	aNatural := hasNaturalCasing(a.Source)
	bNatural := hasNaturalCasing(b.Source)
	switch {
	case bNatural && !aNatural:
		out.Display = b.Display
		out.IsPhrase = b.IsPhrase
	case bNatural && b.Score >= a.Score:
		out.Display = b.Display
		out.IsPhrase = b.IsPhrase
	}

	sources := map[string]bool{}
	for _, s := range strings.Split(a.Source+","+b.Source, ",") {
		if s != "" {
			sources[s] = true
		}
	}
	tags := make([]string, 0, len(sources))
	for s := range sources {
		tags = append(tags, s)
	}
	sort.Strings(tags)
	out.Source = strings.Join(tags, ",")
	return out
}

func hasNaturalCasing(source string) bool {
	return strings.Contains(source, SourceJones) || strings.Contains(source, SourceBroda)
}

// Stats summarizes an import run.
type Stats struct {
	BySource map[string]int
	Phrases  int
	Total    int
}

// LoadSeedDir reads jones.txt, broda.csv, and cnex.txt from dir,
// skipping files that are absent, and returns the merged entries.
func LoadSeedDir(dir string) ([]corpus.Entry, Stats, error) {
	var lists []map[string]corpus.Entry
	files := []struct {
		name  string
		parse func(io.Reader) map[string]corpus.Entry
	}{
		{"jones.txt", ParseJones},
		{"broda.csv", ParseBroda},
		{"cnex.txt", ParseCNEX},
	}

	found := 0
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		file, err := os.Open(path)
		if err != nil {
			log.Warnf("Seed list %s not found: %v", path, err)
			continue
		}
		list := f.parse(file)
		file.Close()
		log.Debugf("Parsed %s: %d words", f.name, len(list))
		lists = append(lists, list)
		found++
	}
	if found == 0 {
		return nil, Stats{}, fmt.Errorf("no seed lists found in %s", dir)
	}

	entries := Merge(lists...)
	stats := Stats{BySource: make(map[string]int), Total: len(entries)}
	for _, e := range entries {
		stats.BySource[e.Source]++
		if e.IsPhrase {
			stats.Phrases++
		}
	}
	return entries, stats, nil
}
