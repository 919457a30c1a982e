// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists past searches and download attempts in a
// local SQLite database. Recording is best-effort: a broken or missing
// database never blocks the search or download pipeline.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/nepjol-fetch/pkg/types"
)

// SearchEntry is one recorded search.
type SearchEntry struct {
	ID      int64
	Query   string
	Results int
	When    time.Time
}

// DownloadEntry is one recorded download attempt, successful or not.
type DownloadEntry struct {
	ID    int64
	Title string
	URL   string
	Path  string
	OK    bool
	When  time.Time
}

// Store manages the history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the history database at cfg.DBPath and ensures
// the schema exists.
func Open(cfg types.HistoryConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "nepjol-history.db"
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
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
	statements := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			results INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS downloads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT,
			url TEXT NOT NULL,
			path TEXT NOT NULL,
			ok INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_created ON searches(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_downloads_created ON downloads(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordSearch stores a search and its result count.
func (s *Store) RecordSearch(query string, results int) error {
	_, err := s.db.Exec(
		`INSERT INTO searches (query, results, created_at) VALUES (?, ?, ?)`,
		query, results, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// RecordDownload stores a download attempt.
func (s *Store) RecordDownload(title, url, path string, ok bool) error {
	_, err := s.db.Exec(
		`INSERT INTO downloads (title, url, path, ok, created_at) VALUES (?, ?, ?, ?, ?)`,
		title, url, path, boolToInt(ok), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording download: %w", err)
	}
	return nil
}

// RecentSearches returns the newest searches, most recent first.
func (s *Store) RecentSearches() ([]SearchEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, query, results, created_at FROM searches ORDER BY id DESC LIMIT ?`,
		s.maxResults,
	)
	if err != nil {
		return nil, fmt.Errorf("querying searches: %w", err)
	}
	defer rows.Close()

	var entries []SearchEntry
	for rows.Next() {
		var e SearchEntry
		var created string
		if err := rows.Scan(&e.ID, &e.Query, &e.Results, &created); err != nil {
			return nil, fmt.Errorf("scanning search row: %w", err)
		}
		e.When, _ = time.Parse(time.RFC3339, created)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecentDownloads returns the newest download attempts, most recent first.
func (s *Store) RecentDownloads() ([]DownloadEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, title, url, path, ok, created_at FROM downloads ORDER BY id DESC LIMIT ?`,
		s.maxResults,
	)
	if err != nil {
		return nil, fmt.Errorf("querying downloads: %w", err)
	}
	defer rows.Close()

	var entries []DownloadEntry
	for rows.Next() {
		var e DownloadEntry
		var created string
		var ok int
		if err := rows.Scan(&e.ID, &e.Title, &e.URL, &e.Path, &ok, &created); err != nil {
			return nil, fmt.Errorf("scanning download row: %w", err)
		}
		e.OK = ok != 0
		e.When, _ = time.Parse(time.RFC3339, created)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
