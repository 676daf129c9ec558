package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/dukerupert/dukanam/internal/model"
)

// MaxSearchHistory is how many recent searches are remembered.
const MaxSearchHistory = 10

// SearchHistoryStore keeps recent product searches, most recent first.
type SearchHistoryStore struct {
	db *sql.DB
}

func NewSearchHistoryStore(db *sql.DB) *SearchHistoryStore {
	return &SearchHistoryStore{db: db}
}

// Add moves term to the front of the history. Blank terms are ignored.
// A repeated term is not duplicated, and entries past MaxSearchHistory
// are dropped.
func (s *SearchHistoryStore) Add(term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM search_history WHERE term = ?`, term); err != nil {
		return fmt.Errorf("delete existing term: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO search_history (term) VALUES (?)`, term); err != nil {
		return fmt.Errorf("insert term: %w", err)
	}
	_, err = tx.Exec(
		`DELETE FROM search_history WHERE id NOT IN (
			SELECT id FROM search_history ORDER BY id DESC LIMIT ?
		)`,
		MaxSearchHistory,
	)
	if err != nil {
		return fmt.Errorf("trim history: %w", err)
	}

	return tx.Commit()
}

func (s *SearchHistoryStore) List() ([]model.SearchEntry, error) {
	rows, err := s.db.Query(`SELECT term, searched_at FROM search_history ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list search history: %w", err)
	}
	defer rows.Close()

	var entries []model.SearchEntry
	for rows.Next() {
		var e model.SearchEntry
		if err := rows.Scan(&e.Term, &e.SearchedAt); err != nil {
			return nil, fmt.Errorf("scan search entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SearchHistoryStore) Delete(term string) error {
	_, err := s.db.Exec(`DELETE FROM search_history WHERE term = ?`, strings.TrimSpace(term))
	if err != nil {
		return fmt.Errorf("delete search term: %w", err)
	}
	return nil
}

func (s *SearchHistoryStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM search_history`); err != nil {
		return fmt.Errorf("clear search history: %w", err)
	}
	return nil
}
