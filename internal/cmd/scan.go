package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/archivist/internal/config"
	"github.com/harrison/archivist/internal/logger"
	"github.com/harrison/archivist/internal/scanner"
	"github.com/harrison/archivist/internal/store"
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Inventory files under one or more root directories",
		Long: `Walk the given roots, fingerprint every regular file, extract content
hints (imports, headings, CSV headers, a masked text sample), and persist
the results to the document cache and a JSON snapshot.

Per-file failures are logged and skipped; the scan itself only fails on
configuration errors or an unusable cache.

Examples:
  archivist scan --path ~/Downloads --path ~/Desktop
  archivist scan --path ./inbox --max-size 104857600 --exclude node_modules`,
		RunE: scanCommand,
	}

	cmd.Flags().StringArray("path", nil, "Root directory to scan (repeatable)")
	cmd.Flags().Int64("max-size", 500*1024*1024, "Skip files larger than this many bytes")
	cmd.Flags().Int("sample-bytes", 4096, "Bytes of content to sample per file")
	cmd.Flags().String("cache", config.DefaultCachePath, "Document cache path")
	cmd.Flags().String("snapshot", config.DefaultSnapshotPath, "JSON snapshot output path")
	cmd.Flags().Int("workers", 0, "Concurrent extraction workers (0 = number of CPUs)")
	cmd.Flags().StringArray("exclude", nil, "Directory name to skip during traversal (repeatable)")
	cmd.Flags().Bool("verbose", false, "Show per-file progress")

	_ = cmd.MarkFlagRequired("path")

	return cmd
}

func scanCommand(cmd *cobra.Command, args []string) error {
	paths, _ := cmd.Flags().GetStringArray("path")
	maxSize, _ := cmd.Flags().GetInt64("max-size")
	sampleBytes, _ := cmd.Flags().GetInt("sample-bytes")
	cachePath, _ := cmd.Flags().GetString("cache")
	snapshotPath, _ := cmd.Flags().GetString("snapshot")
	workers, _ := cmd.Flags().GetInt("workers")
	excludeDirs, _ := cmd.Flags().GetStringArray("exclude")

	cfg := config.DefaultScanConfig()
	cfg.Paths = paths
	cfg.MaxSizeBytes = maxSize
	cfg.SampleBytes = sampleBytes
	cfg.CachePath = cachePath
	cfg.SnapshotPath = snapshotPath
	cfg.ExcludeDirs = excludeDirs
	if workers > 0 {
		cfg.Workers = workers
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid scan configuration: %w", err)
	}

	log := newLogger(cmd)

	docs, err := scanner.New(cfg, log).Scan(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	db, err := store.Open(cfg.CachePath)
	if err != nil {
		return fmt.Errorf("open document cache: %w", err)
	}
	defer db.Close()
	if err := db.Upsert(docs); err != nil {
		return fmt.Errorf("persist documents: %w", err)
	}

	if err := scanner.WriteSnapshot(cfg.SnapshotPath, docs); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Scanned %d files into %s\n", len(docs), cfg.CachePath)
	return nil
}

// newLogger builds the console logger shared by all commands; --verbose
// lowers the threshold to debug.
func newLogger(cmd *cobra.Command) *logger.ConsoleLogger {
	level := "info"
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	return logger.NewConsoleLogger(os.Stderr, level)
}
