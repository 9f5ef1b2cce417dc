// Package rollback restores organized files to their original locations
// by replaying the journal in reverse.
package rollback

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/archivist/internal/fileutil"
	"github.com/harrison/archivist/internal/journal"
	"github.com/harrison/archivist/internal/logger"
	"github.com/harrison/archivist/internal/models"
)

// Result summarizes a rollback run.
type Result struct {
	Restored int
	Skipped  int
}

// Engine moves files recorded in a journal back to where they came from.
type Engine struct {
	log *logger.ConsoleLogger
}

func New(log *logger.ConsoleLogger) *Engine {
	return &Engine{log: log}
}

// Run reads the journal at path and replays its entries in reverse file
// order, undoing the most recent mutation first. Entries whose target no
// longer exists are skipped, as are entries that never moved anything
// (missing sources). Copied files are moved back rather than duplicated,
// which removes the copy from the target tree.
func (e *Engine) Run(path string) (Result, error) {
	var result Result

	entries, skippedLines, err := journal.Read(path)
	if err != nil {
		// No journal means no recorded mutations to undo.
		if errors.Is(err, os.ErrNotExist) {
			e.log.Warnf("journal %s not found, nothing to roll back", path)
			return result, nil
		}
		return result, fmt.Errorf("read journal: %w", err)
	}
	if skippedLines > 0 {
		e.log.Warnf("journal %s: skipped %d unreadable entries", path, skippedLines)
	}

	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if entry.Status == models.StatusMissing {
			result.Skipped++
			continue
		}
		if !fileutil.PathExists(entry.TargetPath) {
			result.Skipped++
			e.log.Warnf("target gone, skipped: %s", entry.TargetPath)
			continue
		}
		if err := fileutil.EnsureDir(filepath.Dir(entry.OriginalPath)); err != nil {
			return result, fmt.Errorf("restore %s: %w", entry.OriginalPath, err)
		}
		if err := fileutil.MoveFile(entry.TargetPath, entry.OriginalPath); err != nil {
			return result, fmt.Errorf("restore %s: %w", entry.OriginalPath, err)
		}
		result.Restored++
		e.log.Debugf("restored %s <- %s", entry.OriginalPath, entry.TargetPath)
	}

	e.log.Infof("rollback complete: %d restored, %d skipped", result.Restored, result.Skipped)
	return result, nil
}
