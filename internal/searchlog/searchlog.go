// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package searchlog records federated search request metadata in SQLite for
// diagnostics. Only the query, targeted sources, merged total, and timing
// are stored; harvested records are never persisted.
package searchlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded search.
type Entry struct {
	Term      string
	Sources   []string
	Total     int
	Duration  time.Duration
	CreatedAt time.Time
}

// Store manages the search log SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the search log database at path, creating the
// schema and parent directory if needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating search log directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening search log database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS searches (
		rowid INTEGER PRIMARY KEY AUTOINCREMENT,
		term TEXT NOT NULL,
		sources TEXT NOT NULL,
		total INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		created_at TEXT NOT NULL
	)`)
	return err
}

// Record appends one search entry. A zero CreatedAt is stamped with the
// current time.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO searches (term, sources, total, duration_ms, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.Term,
		strings.Join(e.Sources, ","),
		e.Total,
		e.Duration.Milliseconds(),
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT term, sources, total, duration_ms, created_at FROM searches ORDER BY rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying search log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var sources, createdAt string
		var durationMS int64
		if err := rows.Scan(&e.Term, &sources, &e.Total, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning search log row: %w", err)
		}
		if sources != "" {
			e.Sources = strings.Split(sources, ",")
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		if t, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
