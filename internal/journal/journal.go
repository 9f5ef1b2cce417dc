// Package journal maintains the append-only JSON Lines record of executed
// relocations. The journal is the system's ledger of truth: plans are
// advisory, journal entries are factual. Nothing in this package ever
// rewrites or removes an entry.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/archivist/internal/filelock"
	"github.com/harrison/archivist/internal/models"
)

// maxLineBytes bounds a single journal line during reads.
const maxLineBytes = 1 << 20

// Writer appends entries to one journal file. Appends are serialized via a
// file lock so concurrent executors preserve entry ordering, which rollback
// depends on.
type Writer struct {
	path string
}

// NewWriter creates a Writer for the journal at path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the journal file location.
func (w *Writer) Path() string {
	return w.path
}

// Append writes entries to the end of the journal, one JSON object per
// line, under an exclusive lock.
func (w *Writer) Append(entries []models.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("create journal directory: %w", err)
	}

	lock := filelock.NewFileLock(w.path + ".lock")
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	file, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer file.Close()

	for _, entry := range entries {
		line, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("encode journal entry: %w", err)
		}
		if _, err := file.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("append journal entry: %w", err)
		}
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("sync journal: %w", err)
	}
	return nil
}

// Read loads all journal entries in file order. Unparseable or invalid
// lines — the trailing partial line of a crashed writer, or hand-edited
// damage — are skipped and counted, never repaired in place.
func Read(path string) ([]models.JournalEntry, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open journal: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var entries []models.JournalEntry
	skipped := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry models.JournalEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			skipped++
			continue
		}
		if err := entry.Validate(); err != nil {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return entries, skipped, fmt.Errorf("read journal: %w", err)
	}
	return entries, skipped, nil
}
