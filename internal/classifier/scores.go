package classifier

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/harrison/archivist/internal/filelock"
	"github.com/harrison/archivist/internal/models"
)

// WriteScores persists classification results as a JSON array.
func WriteScores(path string, scores []models.BucketScore) error {
	data, err := json.MarshalIndent(scores, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	if err := filelock.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("write scores %s: %w", path, err)
	}
	return nil
}

// ReadScores loads a score file written by WriteScores.
func ReadScores(path string) ([]models.BucketScore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scores %s: %w", path, err)
	}
	var scores []models.BucketScore
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("decode scores %s: %w", path, err)
	}
	return scores, nil
}
