// Package store persists the personal answer/clue/puzzle database
// behind the fill engine. The engine itself never touches the store;
// it is handed a fully loaded entry slice at corpus build time.
package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/crossforge/crossforge/pkg/corpus"
)

//go:embed schema.sql
var schemaSQL string

// Store wraps the SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the database at path and applies the
// schema. Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// --- Answers ---

// CreateAnswer inserts a new entry. A conflicting word surfaces a
// corpus.DuplicateError so callers can decide on merge policy.
func (s *Store) CreateAnswer(e corpus.Entry) error {
	_, err := s.db.Exec(
		`INSERT INTO answers (word, display, length, score, source, is_phrase) VALUES (?, ?, ?, ?, ?, ?)`,
		e.Word, e.Display, e.Length, e.Score, e.Source, boolToInt(e.IsPhrase),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return &corpus.DuplicateError{Word: e.Word}
		}
		return fmt.Errorf("insert answer %q: %w", e.Word, err)
	}
	return nil
}

// UpsertAnswer inserts or merges an entry under the corpus merge
// rules (max score wins, sources union, user entries pinned).
func (s *Store) UpsertAnswer(e corpus.Entry) error {
	existing, ok, err := s.GetAnswer(e.Word)
	if err != nil {
		return err
	}
	if !ok {
		return s.CreateAnswer(e)
	}
	merged := corpus.MergeEntries(existing, e)
	_, err = s.db.Exec(
		`UPDATE answers SET display = ?, score = ?, source = ?, is_phrase = ? WHERE word = ?`,
		merged.Display, merged.Score, merged.Source, boolToInt(merged.IsPhrase), merged.Word,
	)
	if err != nil {
		return fmt.Errorf("update answer %q: %w", e.Word, err)
	}
	return nil
}

// GetAnswer fetches one entry by canonical word.
func (s *Store) GetAnswer(word string) (corpus.Entry, bool, error) {
	var e corpus.Entry
	var isPhrase int
	err := s.db.QueryRow(
		`SELECT word, display, length, score, source, is_phrase FROM answers WHERE word = ?`, word,
	).Scan(&e.Word, &e.Display, &e.Length, &e.Score, &e.Source, &isPhrase)
	if err == sql.ErrNoRows {
		return corpus.Entry{}, false, nil
	}
	if err != nil {
		return corpus.Entry{}, false, fmt.Errorf("get answer %q: %w", word, err)
	}
	e.IsPhrase = isPhrase != 0
	return e, true, nil
}

// DeleteAnswer removes a word and its clues. Returns false if the
// word was not present.
func (s *Store) DeleteAnswer(word string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM answers WHERE word = ?`, word)
	if err != nil {
		return false, fmt.Errorf("delete answer %q: %w", word, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// AnswerFilter narrows ListAnswers.
type AnswerFilter struct {
	Prefix    string
	MinLength int
	MaxLength int
	Limit     int
	Offset    int
}

// ListAnswers returns entries matching the filter, best score first.
func (s *Store) ListAnswers(f AnswerFilter) ([]corpus.Entry, error) {
	query := `SELECT word, display, length, score, source, is_phrase FROM answers WHERE 1=1`
	var args []any
	if f.Prefix != "" {
		query += ` AND word LIKE ?`
		args = append(args, strings.ToUpper(f.Prefix)+"%")
	}
	if f.MinLength > 0 {
		query += ` AND length >= ?`
		args = append(args, f.MinLength)
	}
	if f.MaxLength > 0 {
		query += ` AND length <= ?`
		args = append(args, f.MaxLength)
	}
	query += ` ORDER BY score DESC, word ASC`
	if f.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// LoadEntries streams the whole answer table for a corpus build.
func (s *Store) LoadEntries() ([]corpus.Entry, error) {
	rows, err := s.db.Query(
		`SELECT word, display, length, score, source, is_phrase FROM answers ORDER BY word`)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ImportEntries bulk-upserts pre-merged seed entries in one
// transaction. User entries already in the table keep their pinned
// score via the merge rules. Returns (inserted, updated) counts.
func (s *Store) ImportEntries(entries []corpus.Entry) (int, int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	get, err := tx.Prepare(`SELECT word, display, length, score, source, is_phrase FROM answers WHERE word = ?`)
	if err != nil {
		return 0, 0, err
	}
	ins, err := tx.Prepare(`INSERT INTO answers (word, display, length, score, source, is_phrase) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, 0, err
	}
	upd, err := tx.Prepare(`UPDATE answers SET display = ?, score = ?, source = ?, is_phrase = ? WHERE word = ?`)
	if err != nil {
		return 0, 0, err
	}

	inserted, updated := 0, 0
	for _, e := range entries {
		var existing corpus.Entry
		var isPhrase int
		err := get.QueryRow(e.Word).Scan(&existing.Word, &existing.Display, &existing.Length,
			&existing.Score, &existing.Source, &isPhrase)
		switch err {
		case sql.ErrNoRows:
			if _, err := ins.Exec(e.Word, e.Display, e.Length, e.Score, e.Source, boolToInt(e.IsPhrase)); err != nil {
				return 0, 0, fmt.Errorf("import %q: %w", e.Word, err)
			}
			inserted++
		case nil:
			existing.IsPhrase = isPhrase != 0
			merged := corpus.MergeEntries(existing, e)
			if merged == existing {
				continue
			}
			if _, err := upd.Exec(merged.Display, merged.Score, merged.Source, boolToInt(merged.IsPhrase), merged.Word); err != nil {
				return 0, 0, fmt.Errorf("import %q: %w", e.Word, err)
			}
			updated++
		default:
			return 0, 0, fmt.Errorf("import %q: %w", e.Word, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit import: %w", err)
	}
	return inserted, updated, nil
}

// CountAnswers returns the answer table size.
func (s *Store) CountAnswers() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM answers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count answers: %w", err)
	}
	return n, nil
}

func scanEntries(rows *sql.Rows) ([]corpus.Entry, error) {
	var out []corpus.Entry
	for rows.Next() {
		var e corpus.Entry
		var isPhrase int
		if err := rows.Scan(&e.Word, &e.Display, &e.Length, &e.Score, &e.Source, &isPhrase); err != nil {
			return nil, err
		}
		e.IsPhrase = isPhrase != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// --- Clues ---

// Clue is a stored clue for an answer.
type Clue struct {
	ID         int64
	AnswerID   int64
	Text       string
	Difficulty int
	Tags       string
	CreatedAt  time.Time
}

// AddClue attaches a clue to a word. The word must exist.
func (s *Store) AddClue(word string, c Clue) (int64, error) {
	var answerID int64
	err := s.db.QueryRow(`SELECT id FROM answers WHERE word = ?`, word).Scan(&answerID)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("no answer %q", word)
	}
	if err != nil {
		return 0, fmt.Errorf("add clue for %q: %w", word, err)
	}
	if c.Difficulty == 0 {
		c.Difficulty = 3
	}
	res, err := s.db.Exec(
		`INSERT INTO clues (answer_id, clue_text, difficulty, tags) VALUES (?, ?, ?, ?)`,
		answerID, c.Text, c.Difficulty, c.Tags,
	)
	if err != nil {
		return 0, fmt.Errorf("add clue for %q: %w", word, err)
	}
	return res.LastInsertId()
}

// CluesFor lists a word's clues, oldest first.
func (s *Store) CluesFor(word string) ([]Clue, error) {
	rows, err := s.db.Query(
		`SELECT c.id, c.answer_id, c.clue_text, c.difficulty, COALESCE(c.tags, ''), c.created_at
		 FROM clues c JOIN answers a ON a.id = c.answer_id
		 WHERE a.word = ? ORDER BY c.id`, word)
	if err != nil {
		return nil, fmt.Errorf("clues for %q: %w", word, err)
	}
	defer rows.Close()

	var out []Clue
	for rows.Next() {
		var c Clue
		if err := rows.Scan(&c.ID, &c.AnswerID, &c.Text, &c.Difficulty, &c.Tags, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteClue removes one clue by id.
func (s *Store) DeleteClue(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM clues WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete clue %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// --- Puzzles ---

// Puzzle is a stored grid with its metadata. GridData holds the text
// sketch format the grid package parses.
type Puzzle struct {
	ID         string
	Title      string
	GridData   string
	Difficulty int
	Status     string
	Theme      string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SavePuzzle inserts or updates a puzzle. A new puzzle (empty ID)
// gets a generated id.
func (s *Store) SavePuzzle(p *Puzzle) error {
	now := time.Now().UTC()
	if p.Status == "" {
		p.Status = "draft"
	}
	if p.Title == "" {
		p.Title = "Untitled Puzzle"
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
		p.CreatedAt = now
		p.UpdatedAt = now
		_, err := s.db.Exec(
			`INSERT INTO puzzles (id, title, grid_data, difficulty, status, theme, notes, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Title, p.GridData, p.Difficulty, p.Status, p.Theme, p.Notes, p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert puzzle: %w", err)
		}
		return nil
	}

	p.UpdatedAt = now
	res, err := s.db.Exec(
		`UPDATE puzzles SET title = ?, grid_data = ?, difficulty = ?, status = ?, theme = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		p.Title, p.GridData, p.Difficulty, p.Status, p.Theme, p.Notes, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update puzzle %s: %w", p.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no puzzle %s", p.ID)
	}
	return nil
}

// GetPuzzle fetches one puzzle by id.
func (s *Store) GetPuzzle(id string) (*Puzzle, bool, error) {
	var p Puzzle
	var difficulty sql.NullInt64
	var theme, notes sql.NullString
	err := s.db.QueryRow(
		`SELECT id, title, grid_data, difficulty, status, theme, notes, created_at, updated_at
		 FROM puzzles WHERE id = ?`, id,
	).Scan(&p.ID, &p.Title, &p.GridData, &difficulty, &p.Status, &theme, &notes, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get puzzle %s: %w", id, err)
	}
	p.Difficulty = int(difficulty.Int64)
	p.Theme = theme.String
	p.Notes = notes.String
	return &p, true, nil
}

// ListPuzzles returns puzzles, newest first, optionally by status.
func (s *Store) ListPuzzles(status string) ([]Puzzle, error) {
	query := `SELECT id, title, grid_data, difficulty, status, theme, notes, created_at, updated_at FROM puzzles`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list puzzles: %w", err)
	}
	defer rows.Close()

	var out []Puzzle
	for rows.Next() {
		var p Puzzle
		var difficulty sql.NullInt64
		var theme, notes sql.NullString
		if err := rows.Scan(&p.ID, &p.Title, &p.GridData, &difficulty, &p.Status, &theme, &notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Difficulty = int(difficulty.Int64)
		p.Theme = theme.String
		p.Notes = notes.String
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeletePuzzle removes one puzzle.
func (s *Store) DeletePuzzle(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM puzzles WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete puzzle %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
