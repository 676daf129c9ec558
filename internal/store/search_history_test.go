package store

import (
	"fmt"
	"testing"

	"github.com/dukerupert/dukanam/internal/database"
)

func setupSearchTestDB(t *testing.T) *SearchHistoryStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSearchHistoryStore(db)
}

func terms(t *testing.T, s *SearchHistoryStore) []string {
	t.Helper()
	entries, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Term
	}
	return out
}

func TestSearchHistoryMostRecentFirst(t *testing.T) {
	s := setupSearchTestDB(t)
	for _, term := range []string{"rice", "atta", "ghee"} {
		if err := s.Add(term); err != nil {
			t.Fatalf("add %q: %v", term, err)
		}
	}

	got := terms(t, s)
	want := []string{"ghee", "atta", "rice"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("history = %v, want %v", got, want)
	}
}

func TestSearchHistoryDeduplicates(t *testing.T) {
	s := setupSearchTestDB(t)
	for _, term := range []string{"rice", "atta", " rice "} {
		if err := s.Add(term); err != nil {
			t.Fatalf("add %q: %v", term, err)
		}
	}

	got := terms(t, s)
	want := []string{"rice", "atta"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("history = %v, want %v", got, want)
	}
}

func TestSearchHistoryIgnoresBlank(t *testing.T) {
	s := setupSearchTestDB(t)
	if err := s.Add("   "); err != nil {
		t.Fatalf("add blank: %v", err)
	}
	if got := terms(t, s); len(got) != 0 {
		t.Errorf("history = %v, want empty", got)
	}
}

func TestSearchHistoryBounded(t *testing.T) {
	s := setupSearchTestDB(t)
	for i := 0; i < 15; i++ {
		if err := s.Add(fmt.Sprintf("item-%d", i)); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	got := terms(t, s)
	if len(got) != MaxSearchHistory {
		t.Fatalf("len = %d, want %d", len(got), MaxSearchHistory)
	}
	if got[0] != "item-14" {
		t.Errorf("first = %q, want %q", got[0], "item-14")
	}
	if got[len(got)-1] != "item-5" {
		t.Errorf("last = %q, want %q", got[len(got)-1], "item-5")
	}
}

func TestSearchHistoryDeleteAndClear(t *testing.T) {
	s := setupSearchTestDB(t)
	for _, term := range []string{"rice", "atta", "ghee"} {
		if err := s.Add(term); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	if err := s.Delete("atta"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := fmt.Sprint(terms(t, s)); got != "[ghee rice]" {
		t.Errorf("history = %s, want [ghee rice]", got)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := terms(t, s); len(got) != 0 {
		t.Errorf("history = %v, want empty", got)
	}
}
