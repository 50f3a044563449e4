package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	mdwerror "github.com/msto63/pascal/foundation/core/error"
)

func newSQLiteStore(t *testing.T) *SQLiteHistoryStore {
	t.Helper()
	s, err := NewSQLiteHistoryStore(SQLiteHistoryConfig{
		Path: filepath.Join(t.TempDir(), "nested", "history.db"),
	})
	if err != nil {
		t.Fatalf("NewSQLiteHistoryStore() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// stores runs each test against both implementations
func stores(t *testing.T) map[string]HistoryStore {
	return map[string]HistoryStore{
		"sqlite": newSQLiteStore(t),
		"memory": NewMemoryHistoryStore(),
	}
}

func TestDefaultHistoryConfig(t *testing.T) {
	if got := DefaultHistoryConfig().Path; got != "./data/history.db" {
		t.Errorf("Path = %q", got)
	}
}

func TestNewSQLiteHistoryStore_EmptyPath(t *testing.T) {
	_, err := NewSQLiteHistoryStore(SQLiteHistoryConfig{})
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestHistoryStore_RecordAndEntries(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			lines := []struct {
				line    string
				output  []string
				success bool
			}{
				{"a = 2", []string{"a = 2"}, true},
				{"a * 3", []string{"6"}, true},
				{"1 +", []string{"ID, number, '(', - or function expected"}, false},
			}
			for i, l := range lines {
				err := s.Record(ctx, &Entry{
					SessionID: "s1",
					Line:      l.line,
					Output:    l.output,
					Success:   l.success,
					CreatedAt: base.Add(time.Duration(i) * time.Second),
				})
				if err != nil {
					t.Fatalf("Record(%q) error = %v", l.line, err)
				}
			}
			if err := s.Record(ctx, &Entry{SessionID: "s2", Line: "PI", Output: []string{"3.141592653589793"}, Success: true, CreatedAt: base.Add(time.Minute)}); err != nil {
				t.Fatalf("Record() error = %v", err)
			}

			entries, err := s.Entries(ctx, "s1", 0)
			if err != nil {
				t.Fatalf("Entries() error = %v", err)
			}
			if len(entries) != 3 {
				t.Fatalf("len(entries) = %d, want 3", len(entries))
			}
			for i, e := range entries {
				if e.Line != lines[i].line {
					t.Errorf("entries[%d].Line = %q, want %q", i, e.Line, lines[i].line)
				}
				if e.Success != lines[i].success {
					t.Errorf("entries[%d].Success = %v", i, e.Success)
				}
				if len(e.Output) != 1 || e.Output[0] != lines[i].output[0] {
					t.Errorf("entries[%d].Output = %v", i, e.Output)
				}
				if e.ID == "" {
					t.Errorf("entries[%d] has no ID", i)
				}
				if !e.CreatedAt.Equal(base.Add(time.Duration(i) * time.Second)) {
					t.Errorf("entries[%d].CreatedAt = %v", i, e.CreatedAt)
				}
			}

			last, err := s.Entries(ctx, "s1", 2)
			if err != nil {
				t.Fatalf("Entries() error = %v", err)
			}
			if len(last) != 2 || last[0].Line != "a * 3" || last[1].Line != "1 +" {
				t.Errorf("limited entries = %v", last)
			}

			all, err := s.Entries(ctx, "", 0)
			if err != nil {
				t.Fatalf("Entries() error = %v", err)
			}
			if len(all) != 4 {
				t.Errorf("len(all) = %d, want 4", len(all))
			}
		})
	}
}

func TestHistoryStore_RecordWithoutSession(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			err := s.Record(context.Background(), &Entry{Line: "1"})
			if !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
				t.Errorf("error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestHistoryStore_Sessions(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			record := func(session string, offset time.Duration) {
				t.Helper()
				if err := s.Record(ctx, &Entry{SessionID: session, Line: "1", Output: []string{"1"}, Success: true, CreatedAt: base.Add(offset)}); err != nil {
					t.Fatalf("Record() error = %v", err)
				}
			}
			record("old", 0)
			record("old", time.Second)
			record("new", time.Hour)

			sessions, err := s.Sessions(ctx, 0)
			if err != nil {
				t.Fatalf("Sessions() error = %v", err)
			}
			if len(sessions) != 2 {
				t.Fatalf("len(sessions) = %d, want 2", len(sessions))
			}
			if sessions[0].ID != "new" || sessions[1].ID != "old" {
				t.Errorf("order = %s, %s", sessions[0].ID, sessions[1].ID)
			}
			if sessions[1].Lines != 2 {
				t.Errorf("old.Lines = %d, want 2", sessions[1].Lines)
			}
			if !sessions[1].StartedAt.Equal(base) || !sessions[1].LastSeenAt.Equal(base.Add(time.Second)) {
				t.Errorf("old span = %v .. %v", sessions[1].StartedAt, sessions[1].LastSeenAt)
			}

			limited, err := s.Sessions(ctx, 1)
			if err != nil {
				t.Fatalf("Sessions() error = %v", err)
			}
			if len(limited) != 1 || limited[0].ID != "new" {
				t.Errorf("limited = %v", limited)
			}
		})
	}
}

func TestHistoryStore_Prune(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for i, session := range []string{"a", "a", "b"} {
				if err := s.Record(ctx, &Entry{SessionID: session, Line: "x", CreatedAt: base.Add(time.Duration(i) * time.Hour)}); err != nil {
					t.Fatalf("Record() error = %v", err)
				}
			}

			deleted, err := s.Prune(ctx, base.Add(90*time.Minute))
			if err != nil {
				t.Fatalf("Prune() error = %v", err)
			}
			if deleted != 2 {
				t.Errorf("deleted = %d, want 2", deleted)
			}

			entries, _ := s.Entries(ctx, "", 0)
			if len(entries) != 1 || entries[0].SessionID != "b" {
				t.Errorf("remaining entries = %v", entries)
			}
			sessions, _ := s.Sessions(ctx, 0)
			if len(sessions) != 1 || sessions[0].ID != "b" {
				t.Errorf("remaining sessions = %v", sessions)
			}
		})
	}
}

func TestSQLiteHistoryStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := NewSQLiteHistoryStore(SQLiteHistoryConfig{Path: path})
	if err != nil {
		t.Fatalf("open error = %v", err)
	}
	if err := s.Record(ctx, &Entry{SessionID: "persist", Line: "b = 5", Output: []string{"b = 5"}, Success: true}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	s.Close()

	s, err = NewSQLiteHistoryStore(SQLiteHistoryConfig{Path: path})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	entries, err := s.Entries(ctx, "persist", 0)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Line != "b = 5" {
		t.Errorf("entries after reopen = %v", entries)
	}
}
