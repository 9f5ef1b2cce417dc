package scanner

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/harrison/archivist/internal/filelock"
	"github.com/harrison/archivist/internal/models"
)

// WriteSnapshot exports the full scan result as a JSON array, written
// atomically so a crashed export never leaves a truncated artifact.
func WriteSnapshot(path string, docs []models.Document) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := filelock.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads a previously exported snapshot.
func ReadSnapshot(path string) ([]models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var docs []models.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return docs, nil
}
