// Package config loads and validates the three configuration documents the
// pipeline consumes: scan parameters, classification rules, and the target
// schema. Validation happens here, at the boundary, so a malformed config is
// fatal before any stage runs.
package config

import (
	"runtime"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Default locations for intermediate artifacts. Every command reads and
// writes through these unless overridden by flags, so the stages compose
// without the user wiring paths between them.
const (
	DefaultCachePath    = ".archivist/scan.db"
	DefaultSnapshotPath = ".archivist/scan_results.json"
	DefaultScoresPath   = ".archivist/scores.json"
	DefaultProjectsPath = ".archivist/projects.json"
	DefaultJournalPath  = ".archivist/journal.jsonl"
	DefaultReportPath   = "reports/projects_summary.html"
)

// ScanConfig holds the parameters for one scan run.
type ScanConfig struct {
	// Paths are the root directories to scan.
	Paths []string `yaml:"paths"`

	// MaxSizeBytes excludes files larger than this from scanning.
	MaxSizeBytes int64 `yaml:"max_size_bytes"`

	// SampleBytes caps how much content is read for the masked text sample.
	SampleBytes int `yaml:"sample_bytes"`

	// CachePath is the sqlite document store location.
	CachePath string `yaml:"cache_path"`

	// SnapshotPath is where the full JSON export of scan results is written.
	SnapshotPath string `yaml:"snapshot_path"`

	// Workers bounds the per-file extraction pool.
	Workers int `yaml:"workers"`

	// ExcludeDirs lists directory names skipped during traversal.
	ExcludeDirs []string `yaml:"exclude_dirs"`
}

// DefaultScanConfig returns a ScanConfig with the stock limits and paths.
func DefaultScanConfig() *ScanConfig {
	return &ScanConfig{
		MaxSizeBytes: 500 * 1024 * 1024,
		SampleBytes:  4096,
		CachePath:    DefaultCachePath,
		SnapshotPath: DefaultSnapshotPath,
		Workers:      runtime.NumCPU(),
	}
}

// Validate rejects scan configurations that no stage could run with.
func (c *ScanConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Paths, validation.Required),
		validation.Field(&c.MaxSizeBytes, validation.Required, validation.Min(int64(1))),
		validation.Field(&c.SampleBytes, validation.Required, validation.Min(1)),
		validation.Field(&c.CachePath, validation.Required),
		validation.Field(&c.Workers, validation.Min(1)),
	)
}
