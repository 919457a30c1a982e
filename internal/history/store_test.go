// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"path/filepath"
	"testing"

	"github.com/pdiddy/nepjol-fetch/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := types.HistoryConfig{
		Enabled:    true,
		DBPath:     filepath.Join(t.TempDir(), "history.db"),
		MaxResults: 5,
	}
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndListSearches(t *testing.T) {
	store := openTestStore(t)

	queries := []string{"water quality", "rice yields", "glacier melt"}
	for i, q := range queries {
		if err := store.RecordSearch(q, i+1); err != nil {
			t.Fatalf("RecordSearch(%q) error = %v", q, err)
		}
	}

	entries, err := store.RecentSearches()
	if err != nil {
		t.Fatalf("RecentSearches() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}

	// Most recent first.
	if entries[0].Query != "glacier melt" || entries[0].Results != 3 {
		t.Errorf("entries[0] = %+v, want the newest search", entries[0])
	}
	if entries[2].Query != "water quality" {
		t.Errorf("entries[2].Query = %q, want the oldest search", entries[2].Query)
	}
	if entries[0].When.IsZero() {
		t.Error("entries[0].When is zero, want a recorded timestamp")
	}
}

func TestRecordAndListDownloads(t *testing.T) {
	store := openTestStore(t)

	if err := store.RecordDownload("Paper A", "https://site/dl/1", "Paper A.pdf", true); err != nil {
		t.Fatalf("RecordDownload() error = %v", err)
	}
	if err := store.RecordDownload("Paper B", "https://site/dl/2", "Paper B.pdf", false); err != nil {
		t.Fatalf("RecordDownload() error = %v", err)
	}

	entries, err := store.RecentDownloads()
	if err != nil {
		t.Fatalf("RecentDownloads() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Title != "Paper B" || entries[0].OK {
		t.Errorf("entries[0] = %+v, want the failed Paper B attempt first", entries[0])
	}
	if !entries[1].OK {
		t.Error("entries[1].OK = false, want the successful attempt preserved")
	}
}

func TestRecentSearchesHonorsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 8; i++ {
		if err := store.RecordSearch("query", i); err != nil {
			t.Fatalf("RecordSearch() error = %v", err)
		}
	}

	entries, err := store.RecentSearches()
	if err != nil {
		t.Fatalf("RecentSearches() error = %v", err)
	}
	if len(entries) != 5 {
		t.Errorf("len(entries) = %d, want the configured limit 5", len(entries))
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	cfg := types.HistoryConfig{DBPath: dbPath}

	first, err := Open(cfg)
	if err != nil {
		t.Fatalf("first Open() error = %v", err)
	}
	if err := first.RecordSearch("persisted", 1); err != nil {
		t.Fatalf("RecordSearch() error = %v", err)
	}
	first.Close()

	second, err := Open(cfg)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer second.Close()

	entries, err := second.RecentSearches()
	if err != nil {
		t.Fatalf("RecentSearches() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Query != "persisted" {
		t.Errorf("entries = %+v, want the search recorded by the first session", entries)
	}
}
