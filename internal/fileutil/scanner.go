package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// WalkOptions configures directory traversal for the scanner.
type WalkOptions struct {
	// ExcludeDirs lists directory names to skip entirely (e.g. ".git").
	ExcludeDirs []string
}

// WalkResult holds the outcome of one root traversal.
type WalkResult struct {
	// Files contains the absolute paths of all regular files found, sorted.
	Files []string
	// Errors contains non-fatal errors encountered while walking; the walk
	// continues past them.
	Errors []error
}

// WalkRoot enumerates every regular file under root. A root that does not
// exist or is not a directory is a fatal error; per-entry failures are
// collected and skipped so one unreadable subtree never aborts a scan.
func WalkRoot(root string, opts WalkOptions) (*WalkResult, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("access root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	excludeMap := make(map[string]bool, len(opts.ExcludeDirs))
	for _, dir := range opts.ExcludeDirs {
		excludeMap[dir] = true
	}

	result := &WalkResult{}
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("access %s: %w", path, err))
			return nil
		}
		if d.IsDir() {
			if path != root && excludeMap[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("resolve %s: %w", path, err))
			return nil
		}
		result.Files = append(result.Files, absPath)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	// Sorted output keeps downstream stages deterministic.
	sort.Strings(result.Files)
	return result, nil
}
