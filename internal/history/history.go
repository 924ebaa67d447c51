// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history persists past analysis queries in a local SQLite database.
//
// History is purely local convenience: the analysis server keeps no session
// state, so this is the only record of what was asked and how it went.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var ErrClosed = errors.New("history store is closed")

// Schema for the query history database.
const schema = `
CREATE TABLE IF NOT EXISTS queries (
    id TEXT PRIMARY KEY,
    created_at INTEGER NOT NULL,  -- Unix timestamp
    query TEXT NOT NULL,
    file_path TEXT NOT NULL,
    persona TEXT NOT NULL,
    outcome TEXT NOT NULL,        -- "ok" or "error"
    error TEXT,                   -- error message when outcome = "error"
    section_count INTEGER NOT NULL DEFAULT 0,
    source_count INTEGER NOT NULL DEFAULT 0,
    duration_ms INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_queries_created_at ON queries(created_at);
`

// Entry is a single recorded analysis request.
type Entry struct {
	ID           string
	CreatedAt    time.Time
	Query        string
	FilePath     string
	Persona      string
	Outcome      string
	Error        string
	SectionCount int
	SourceCount  int
	Duration     time.Duration
}

// Outcome values for Entry.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Store is a SQLite-backed history store. Safe for concurrent use.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if necessary) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the store and releases resources.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Record inserts an entry. A missing ID or CreatedAt is filled in.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return e, ErrClosed
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	if e.Outcome == "" {
		e.Outcome = OutcomeOK
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO queries
			(id, created_at, query, file_path, persona, outcome, error,
			 section_count, source_count, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CreatedAt.Unix(), e.Query, e.FilePath, e.Persona,
		e.Outcome, e.Error, e.SectionCount, e.SourceCount,
		e.Duration.Milliseconds(),
	)
	if err != nil {
		return e, fmt.Errorf("failed to record history entry: %w", err)
	}
	return e, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, query, file_path, persona, outcome, error,
		       section_count, source_count, duration_ms
		FROM queries
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Search returns entries whose query text contains term, newest first.
func (s *Store) Search(ctx context.Context, term string, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, query, file_path, persona, outcome, error,
		       section_count, source_count, duration_ms
		FROM queries
		WHERE query LIKE '%' || ? || '%'
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, term, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return 0, ErrClosed
	}

	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM queries`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return n, nil
}

// Clear removes all entries.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return ErrClosed
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM queries`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			createdAt  int64
			durationMs int64
			errMsg     sql.NullString
		)
		if err := rows.Scan(&e.ID, &createdAt, &e.Query, &e.FilePath,
			&e.Persona, &e.Outcome, &errMsg,
			&e.SectionCount, &e.SourceCount, &durationMs); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.Error = errMsg.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history row iteration failed: %w", err)
	}
	return entries, nil
}
