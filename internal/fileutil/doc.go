// Package fileutil is the single source of truth for filesystem primitives
// in archivist: root traversal for the scanner and the move/copy operations
// the executor and rollback engine perform.
//
// Traversal is error-tolerant: per-entry failures (e.g. permission denied on
// a subtree) are collected and skipped so a scan never aborts on one bad
// path. Output is sorted for deterministic downstream behavior.
//
// MoveFile degrades from rename to copy-and-remove when source and target
// live on different filesystems, matching the semantics rollback relies on.
package fileutil
