// ============================================================================
// Pascal - Zeilenorientierter Rechner
// ============================================================================
//
// Package:     store
// Description: Persistent history of evaluated calculator lines
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/pascal/foundation/core/error"
)

// Entry is one evaluated input line
type Entry struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Line      string    `json:"line"`
	Output    []string  `json:"output"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionSummary aggregates the entries of one session
type SessionSummary struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
	Lines      int       `json:"lines"`
}

// HistoryStore defines the interface for history persistence
type HistoryStore interface {
	// Record stores an entry and updates its session summary
	Record(ctx context.Context, entry *Entry) error

	// Entries returns the most recent entries in chronological order.
	// An empty sessionID selects all sessions, a limit <= 0 means no limit.
	Entries(ctx context.Context, sessionID string, limit int) ([]*Entry, error)

	// Sessions returns session summaries, most recently active first
	Sessions(ctx context.Context, limit int) ([]*SessionSummary, error)

	// Prune removes entries created before the cutoff and drops empty sessions
	Prune(ctx context.Context, before time.Time) (int64, error)

	Close() error
}

// SQLiteHistoryStore implements HistoryStore using SQLite
type SQLiteHistoryStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// SQLiteHistoryConfig holds configuration for the SQLite store
type SQLiteHistoryConfig struct {
	Path string
}

// DefaultHistoryConfig returns default configuration
func DefaultHistoryConfig() SQLiteHistoryConfig {
	return SQLiteHistoryConfig{
		Path: "./data/history.db",
	}
}

// NewSQLiteHistoryStore opens (and if needed creates) the history database
func NewSQLiteHistoryStore(cfg SQLiteHistoryConfig) (*SQLiteHistoryStore, error) {
	if cfg.Path == "" {
		return nil, mdwerror.New("history path is empty").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("store.open")
	}

	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, storageError(err, "failed to create directory", "store.open")
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, storageError(err, "failed to open database", "store.open")
	}

	store := &SQLiteHistoryStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, storageError(err, "failed to initialize schema", "store.open")
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteHistoryStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		last_seen_at INTEGER NOT NULL,
		lines INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS entries (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		session_id TEXT NOT NULL,
		line TEXT NOT NULL,
		output TEXT NOT NULL,
		success INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_session ON entries(session_id, seq);
	CREATE INDEX IF NOT EXISTS idx_entries_created ON entries(created_at);
	CREATE INDEX IF NOT EXISTS idx_sessions_last_seen ON sessions(last_seen_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores a new history entry
func (s *SQLiteHistoryStore) Record(ctx context.Context, entry *Entry) error {
	if entry == nil || entry.SessionID == "" {
		return mdwerror.New("history entry without session").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("store.record")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prepareEntry(entry)

	outputJSON, err := json.Marshal(entry.Output)
	if err != nil {
		return storageError(err, "failed to encode output", "store.record")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError(err, "failed to begin transaction", "store.record")
	}
	defer tx.Rollback()

	created := entry.CreatedAt.UnixNano()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sessions (id, started_at, last_seen_at, lines)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(id) DO UPDATE SET
			last_seen_at = MAX(last_seen_at, excluded.last_seen_at),
			started_at = MIN(started_at, excluded.started_at),
			lines = lines + 1
	`, entry.SessionID, created, created); err != nil {
		return storageError(err, "failed to update session", "store.record")
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO entries (id, session_id, line, output, success, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.SessionID, entry.Line, string(outputJSON), entry.Success, created); err != nil {
		return storageError(err, "failed to insert entry", "store.record")
	}

	if err := tx.Commit(); err != nil {
		return storageError(err, "failed to commit entry", "store.record")
	}
	return nil
}

// Entries retrieves history entries
func (s *SQLiteHistoryStore) Entries(ctx context.Context, sessionID string, limit int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, session_id, line, output, success, created_at FROM entries WHERE 1=1`
	var args []interface{}

	if sessionID != "" {
		query += " AND session_id = ?"
		args = append(args, sessionID)
	}

	query += " ORDER BY seq DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError(err, "failed to query entries", "store.entries")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var outputJSON string
		var created int64

		if err := rows.Scan(&entry.ID, &entry.SessionID, &entry.Line,
			&outputJSON, &entry.Success, &created); err != nil {
			return nil, storageError(err, "failed to scan entry", "store.entries")
		}
		if err := json.Unmarshal([]byte(outputJSON), &entry.Output); err != nil {
			return nil, storageError(err, "failed to decode output", "store.entries")
		}
		entry.CreatedAt = time.Unix(0, created).UTC()

		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "failed to read entries", "store.entries")
	}

	reverse(entries)
	return entries, nil
}

// Sessions retrieves session summaries
func (s *SQLiteHistoryStore) Sessions(ctx context.Context, limit int) ([]*SessionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, started_at, last_seen_at, lines FROM sessions ORDER BY last_seen_at DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError(err, "failed to query sessions", "store.sessions")
	}
	defer rows.Close()

	var sessions []*SessionSummary
	for rows.Next() {
		var summary SessionSummary
		var started, lastSeen int64
		if err := rows.Scan(&summary.ID, &started, &lastSeen, &summary.Lines); err != nil {
			return nil, storageError(err, "failed to scan session", "store.sessions")
		}
		summary.StartedAt = time.Unix(0, started).UTC()
		summary.LastSeenAt = time.Unix(0, lastSeen).UTC()
		sessions = append(sessions, &summary)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "failed to read sessions", "store.sessions")
	}

	return sessions, nil
}

// Prune removes old entries and sessions left without entries
func (s *SQLiteHistoryStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storageError(err, "failed to begin transaction", "store.prune")
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE created_at < ?`, before.UnixNano())
	if err != nil {
		return 0, storageError(err, "failed to prune entries", "store.prune")
	}
	deleted, _ := result.RowsAffected()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM sessions WHERE id NOT IN (SELECT DISTINCT session_id FROM entries)
	`); err != nil {
		return 0, storageError(err, "failed to prune sessions", "store.prune")
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE sessions SET
			lines = (SELECT COUNT(*) FROM entries WHERE entries.session_id = sessions.id),
			started_at = (SELECT MIN(created_at) FROM entries WHERE entries.session_id = sessions.id)
	`); err != nil {
		return 0, storageError(err, "failed to update sessions", "store.prune")
	}

	if err := tx.Commit(); err != nil {
		return 0, storageError(err, "failed to commit prune", "store.prune")
	}
	return deleted, nil
}

// Close closes the database connection
func (s *SQLiteHistoryStore) Close() error {
	return s.db.Close()
}

// MemoryHistoryStore is an in-memory implementation for testing
type MemoryHistoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
}

// NewMemoryHistoryStore creates a new in-memory history store
func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{entries: make([]*Entry, 0)}
}

// Record stores a new history entry
func (s *MemoryHistoryStore) Record(ctx context.Context, entry *Entry) error {
	if entry == nil || entry.SessionID == "" {
		return mdwerror.New("history entry without session").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("store.record")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prepareEntry(entry)
	stored := *entry
	stored.Output = append([]string(nil), entry.Output...)
	s.entries = append(s.entries, &stored)
	return nil
}

// Entries retrieves history entries
func (s *MemoryHistoryStore) Entries(ctx context.Context, sessionID string, limit int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*Entry
	for _, entry := range s.entries {
		if sessionID != "" && entry.SessionID != sessionID {
			continue
		}
		copied := *entry
		results = append(results, &copied)
	}

	if limit > 0 && limit < len(results) {
		results = results[len(results)-limit:]
	}
	return results, nil
}

// Sessions retrieves session summaries
func (s *MemoryHistoryStore) Sessions(ctx context.Context, limit int) ([]*SessionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := make(map[string]*SessionSummary)
	for _, entry := range s.entries {
		summary, ok := byID[entry.SessionID]
		if !ok {
			summary = &SessionSummary{ID: entry.SessionID, StartedAt: entry.CreatedAt, LastSeenAt: entry.CreatedAt}
			byID[entry.SessionID] = summary
		}
		if entry.CreatedAt.Before(summary.StartedAt) {
			summary.StartedAt = entry.CreatedAt
		}
		if entry.CreatedAt.After(summary.LastSeenAt) {
			summary.LastSeenAt = entry.CreatedAt
		}
		summary.Lines++
	}

	results := make([]*SessionSummary, 0, len(byID))
	for _, summary := range byID {
		results = append(results, summary)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].LastSeenAt.After(results[j].LastSeenAt)
	})

	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results, nil
}

// Prune removes old entries
func (s *MemoryHistoryStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	kept := make([]*Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		if entry.CreatedAt.Before(before) {
			deleted++
			continue
		}
		kept = append(kept, entry)
	}
	s.entries = kept

	return deleted, nil
}

// Close is a no-op for memory store
func (s *MemoryHistoryStore) Close() error {
	return nil
}

func prepareEntry(entry *Entry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	entry.CreatedAt = entry.CreatedAt.UTC()
	if entry.Output == nil {
		entry.Output = []string{}
	}
}

func reverse(entries []*Entry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}

func storageError(err error, message, operation string) error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeStorage).
		WithOperation(operation)
}
