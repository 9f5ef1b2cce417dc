package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func mkFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkRootCollectsRegularFiles(t *testing.T) {
	root := t.TempDir()
	mkFile(t, filepath.Join(root, "a.txt"), "a")
	mkFile(t, filepath.Join(root, "sub", "b.txt"), "b")
	mkFile(t, filepath.Join(root, "sub", "deep", "c.txt"), "c")

	result, err := WalkRoot(root, WalkOptions{})
	if err != nil {
		t.Fatalf("WalkRoot failed: %v", err)
	}
	if len(result.Files) != 3 {
		t.Fatalf("expected 3 files, got %d: %v", len(result.Files), result.Files)
	}
	// Sorted output.
	for i := 1; i < len(result.Files); i++ {
		if result.Files[i-1] > result.Files[i] {
			t.Errorf("output not sorted: %v", result.Files)
		}
	}
}

func TestWalkRootExcludesDirs(t *testing.T) {
	root := t.TempDir()
	mkFile(t, filepath.Join(root, "keep.txt"), "k")
	mkFile(t, filepath.Join(root, ".git", "HEAD"), "ref")
	mkFile(t, filepath.Join(root, "node_modules", "x.js"), "x")

	result, err := WalkRoot(root, WalkOptions{ExcludeDirs: []string{".git", "node_modules"}})
	if err != nil {
		t.Fatalf("WalkRoot failed: %v", err)
	}
	if len(result.Files) != 1 || filepath.Base(result.Files[0]) != "keep.txt" {
		t.Errorf("exclusion failed, got %v", result.Files)
	}
}

func TestWalkRootMissingRoot(t *testing.T) {
	_, err := WalkRoot(filepath.Join(t.TempDir(), "nope"), WalkOptions{})
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestWalkRootFileAsRoot(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "f.txt")
	mkFile(t, path, "x")

	if _, err := WalkRoot(path, WalkOptions{}); err == nil {
		t.Fatal("expected error when root is a file")
	}
}

func TestCopyFilePreservesModeAndTime(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.sh")
	dst := filepath.Join(dir, "dst.sh")
	mkFile(t, src, "#!/bin/sh\n")
	if err := os.Chmod(src, 0755); err != nil {
		t.Fatal(err)
	}
	srcInfo, _ := os.Stat(src)

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile failed: %v", err)
	}

	dstInfo, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if dstInfo.Mode().Perm() != srcInfo.Mode().Perm() {
		t.Errorf("mode not preserved: %v vs %v", dstInfo.Mode(), srcInfo.Mode())
	}
	if !dstInfo.ModTime().Equal(srcInfo.ModTime()) {
		t.Errorf("mtime not preserved: %v vs %v", dstInfo.ModTime(), srcInfo.ModTime())
	}
	data, _ := os.ReadFile(dst)
	if string(data) != "#!/bin/sh\n" {
		t.Errorf("content mismatch: %q", data)
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	mkFile(t, src, "payload")

	if err := MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile failed: %v", err)
	}
	if PathExists(src) {
		t.Error("source still exists after move")
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Errorf("content mismatch: %q", data)
	}
}

func TestEnsureDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		t.Errorf("directory not created: %v", err)
	}
	// Idempotent.
	if err := EnsureDir(path); err != nil {
		t.Errorf("EnsureDir not idempotent: %v", err)
	}
}
