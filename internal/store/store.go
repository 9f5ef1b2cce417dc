// Package store persists scanned documents in a sqlite database keyed by
// doc_id. Upserts are idempotent: re-scanning unchanged content rewrites the
// same row, changed content lands under a new key and orphans the old one.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/archivist/internal/models"
)

// ErrNotFound is returned when no document exists under the requested id.
var ErrNotFound = errors.New("document not found")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
	doc_id  TEXT PRIMARY KEY,
	payload TEXT NOT NULL
)`

// Store manages the sqlite document cache.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the document store at dbPath.
// ":memory:" is supported for tests.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	// busy_timeout first so the remaining pragmas wait on locks instead of
	// failing when another process holds the database.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// execWithRetry executes a statement with backoff on transient lock errors,
// which can occur when two processes initialize the same database file.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		lastErr = err
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		time.Sleep(baseDelay << attempt)
	}
	return lastErr
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert writes documents keyed by doc_id, replacing any existing rows.
// The whole batch goes through one transaction.
func (s *Store) Upsert(docs []models.Document) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO documents (doc_id, payload) VALUES (?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, doc := range docs {
		payload, err := json.Marshal(doc)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("encode document %s: %w", doc.DocID, err)
		}
		if _, err := stmt.Exec(doc.DocID, string(payload)); err != nil {
			tx.Rollback()
			return fmt.Errorf("upsert document %s: %w", doc.DocID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

// All enumerates every stored document. Rows whose payload no longer decodes
// are skipped and counted rather than corrupting the run; callers surface
// the count through their logger.
func (s *Store) All() ([]models.Document, int, error) {
	rows, err := s.db.Query("SELECT doc_id, payload FROM documents ORDER BY doc_id")
	if err != nil {
		return nil, 0, fmt.Errorf("enumerate documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	skipped := 0
	for rows.Next() {
		var docID, payload string
		if err := rows.Scan(&docID, &payload); err != nil {
			return nil, skipped, fmt.Errorf("scan row: %w", err)
		}
		var doc models.Document
		if err := json.Unmarshal([]byte(payload), &doc); err != nil || doc.DocID == "" {
			skipped++
			continue
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, skipped, fmt.Errorf("enumerate documents: %w", err)
	}
	return docs, skipped, nil
}

// Get returns the document stored under docID, or ErrNotFound.
func (s *Store) Get(docID string) (models.Document, error) {
	var payload string
	err := s.db.QueryRow("SELECT payload FROM documents WHERE doc_id = ?", docID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Document{}, ErrNotFound
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("get document %s: %w", docID, err)
	}

	var doc models.Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return models.Document{}, fmt.Errorf("decode document %s: %w", docID, err)
	}
	return doc, nil
}

// Index returns all stored documents keyed by doc_id, the shape the planner
// consumes.
func (s *Store) Index() (map[string]models.Document, int, error) {
	docs, skipped, err := s.All()
	if err != nil {
		return nil, skipped, err
	}
	index := make(map[string]models.Document, len(docs))
	for _, doc := range docs {
		index[doc.DocID] = doc
	}
	return index, skipped, nil
}
