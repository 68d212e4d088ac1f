package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		mimeType TEXT NOT NULL,
		audioBytes INTEGER NOT NULL,
		markdown TEXT NOT NULL,
		createdAt REAL NOT NULL
	);
`

// Store records completed analyses for the lifetime of the process.
type Store struct {
	db *sql.DB
}

// Open creates the in-memory history database.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A :memory: DSN gets a fresh database per connection; a single
	// connection keeps the schema visible to every query.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection, discarding the history.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one completed analysis. A missing ID is assigned.
func (s *Store) Record(a Analysis) (Analysis, error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO analyses (id, mode, mimeType, audioBytes, markdown, createdAt)
		VALUES (?, ?, ?, ?, ?, ?)
	`, a.ID, a.Mode, a.MimeType, a.AudioBytes, a.Markdown, unixFloat(a.CreatedAt))
	if err != nil {
		return Analysis{}, fmt.Errorf("insert analysis: %w", err)
	}
	return a, nil
}

// Recent returns up to limit analyses, newest first.
func (s *Store) Recent(limit int) ([]Analysis, error) {
	rows, err := s.db.Query(`
		SELECT id, mode, mimeType, audioBytes, markdown, createdAt
		FROM analyses
		ORDER BY createdAt DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var analyses []Analysis
	for rows.Next() {
		var a Analysis
		var createdAt float64
		if err := rows.Scan(&a.ID, &a.Mode, &a.MimeType, &a.AudioBytes, &a.Markdown, &createdAt); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		a.CreatedAt = timeFromUnix(createdAt)
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}

// Count returns the number of analyses completed this session.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM analyses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count analyses: %w", err)
	}
	return n, nil
}

func unixFloat(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}
