// Package executor performs planned relocations and records every outcome
// in the journal. Each move or copy is independent: there is no transaction
// across plans, and a failed or skipped plan still yields exactly one
// journal entry.
package executor

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/harrison/archivist/internal/fileutil"
	"github.com/harrison/archivist/internal/journal"
	"github.com/harrison/archivist/internal/logger"
	"github.com/harrison/archivist/internal/models"
)

// Executor runs organize plans in a fixed mode and appends the results to
// one journal.
type Executor struct {
	mode models.Mode
	jw   *journal.Writer
	log  *logger.ConsoleLogger
	now  func() time.Time
}

// New creates an Executor. The logger may be nil.
func New(mode models.Mode, jw *journal.Writer, log *logger.ConsoleLogger) *Executor {
	return &Executor{mode: mode, jw: jw, log: log, now: time.Now}
}

// Result summarizes one execution run.
type Result struct {
	Executed int // Plans that moved or copied a file
	Missing  int // Plans whose source had vanished
}

// Execute runs every plan in order. A source missing at execution time is
// recorded with status missing and causes no filesystem mutation. Every
// plan produces one journal entry, appended right after its operation.
func (e *Executor) Execute(plans []models.OrganizePlan) (Result, error) {
	var result Result
	for _, plan := range plans {
		if err := plan.Validate(); err != nil {
			return result, fmt.Errorf("invalid plan for %s: %w", plan.DocID, err)
		}

		status, err := e.executeOne(plan)
		if err != nil {
			return result, err
		}
		if status == models.StatusMissing {
			result.Missing++
			e.log.Warnf("source missing, skipped: %s", plan.SourcePath)
		} else {
			result.Executed++
			e.log.Debugf("%s %s -> %s", status, plan.SourcePath, plan.TargetPath)
		}

		// Journal immediately after the mutation: a crash later in the run
		// must not lose the record of moves already performed.
		entry := models.JournalEntry{
			OriginalPath: plan.SourcePath,
			TargetPath:   plan.TargetPath,
			DocID:        plan.DocID,
			Digest:       plan.Digest,
			ProjectID:    plan.ProjectID,
			ProjectLabel: plan.ProjectLabel,
			Bucket:       plan.Bucket,
			HashSuffix:   plan.HashSuffix,
			Status:       status,
			Timestamp:    float64(e.now().UnixNano()) / 1e9,
		}
		if err := e.jw.Append([]models.JournalEntry{entry}); err != nil {
			return result, fmt.Errorf("record journal entry: %w", err)
		}
	}

	e.log.Infof("executed %d plans (%d missing) in %s mode",
		result.Executed, result.Missing, e.mode)
	return result, nil
}

// executeOne performs the filesystem side of a single plan.
func (e *Executor) executeOne(plan models.OrganizePlan) (models.Status, error) {
	if !fileutil.PathExists(plan.SourcePath) {
		return models.StatusMissing, nil
	}

	if err := fileutil.EnsureDir(filepath.Dir(plan.TargetPath)); err != nil {
		return "", err
	}

	switch e.mode {
	case models.ModeCopy:
		if err := fileutil.CopyFile(plan.SourcePath, plan.TargetPath); err != nil {
			return "", fmt.Errorf("copy %s: %w", plan.SourcePath, err)
		}
	default:
		if err := fileutil.MoveFile(plan.SourcePath, plan.TargetPath); err != nil {
			return "", fmt.Errorf("move %s: %w", plan.SourcePath, err)
		}
	}
	return e.mode.Status(), nil
}
