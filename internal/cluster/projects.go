package cluster

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/harrison/archivist/internal/filelock"
	"github.com/harrison/archivist/internal/models"
)

// WriteResult persists a cluster result for the organize and report stages.
func WriteResult(path string, result models.ClusterResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cluster result: %w", err)
	}
	if err := filelock.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("write cluster result %s: %w", path, err)
	}
	return nil
}

// ReadResult loads and validates a cluster result file.
func ReadResult(path string) (models.ClusterResult, error) {
	var result models.ClusterResult
	data, err := os.ReadFile(path)
	if err != nil {
		return result, fmt.Errorf("read cluster result %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("decode cluster result %s: %w", path, err)
	}
	if err := result.Validate(); err != nil {
		return result, fmt.Errorf("invalid cluster result %s: %w", path, err)
	}
	return result, nil
}
