// Package history keeps a record of served recommendations in SQLite so
// they count as used on later requests.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bent101/wordle-entropy/solver"
)

const migrationsSQL = `
CREATE TABLE IF NOT EXISTS served (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	word      TEXT NOT NULL,
	entropy   REAL NOT NULL,
	starter   INTEGER NOT NULL DEFAULT 0,
	served_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_served_word ON served(word);
`

// Entry is one served recommendation.
type Entry struct {
	Word     string
	Entropy  float64
	Starter  bool
	ServedAt time.Time
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if path == ":memory:" {
		// each connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	s, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New runs migrations on db and wraps it.
func New(db *sql.DB) (*Store, error) {
	for _, stmt := range strings.Split(migrationsSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("migrate history db: %w", err)
		}
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a served word.
func (s *Store) Record(ctx context.Context, w solver.ScoredWord, starter bool) error {
	word := solver.NormalizeWord(w.Word)
	if word == "" {
		return fmt.Errorf("word must be non-empty")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO served (word, entropy, starter, served_at) VALUES (?, ?, ?, ?)`,
		word, w.Entropy, starter, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record served word: %w", err)
	}
	return nil
}

// Words returns every distinct served word.
func (s *Store) Words(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT word FROM served ORDER BY word`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT word, entropy, starter, served_at FROM served ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Word, &e.Entropy, &e.Starter, &e.ServedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
