package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pipelineRules = `buckets:
  src:
    exts: [".py", ".go"]
    dir_keywords: ["src"]
  docs:
    exts: [".md"]
    title_keywords: ["guide"]
  configs:
    exts: [".yml", ".yaml", ".json"]
weights:
  mimetype: 3
  name: 2
  dir: 2
  content: 1
project_hints:
  - acme
`

const pipelineSchema = `target_root: %TARGET%
structure:
  - src/core
  - docs
  - configs
conflict_policy: hash_suffix
mode: move
`

// run executes one subcommand against a fresh root, failing the test on error.
func run(t *testing.T, args ...string) string {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute(), "command %v failed: %s", args, out.String())
	return out.String()
}

// Full pipeline over a real directory tree: scan, rules, cluster, organize,
// report, rollback.
func TestPipelineEndToEnd(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "inbox", "acme", "src")
	require.NoError(t, os.MkdirAll(source, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(source, "main.py"), []byte("import os\nprint('hi')\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(source, "README.md"), []byte("# User Guide\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(source, "settings.yml"), []byte("debug: true\n"), 0o644))

	rulesPath := filepath.Join(dir, "rules.yml")
	require.NoError(t, os.WriteFile(rulesPath, []byte(pipelineRules), 0o644))

	target := filepath.Join(dir, "organized")
	schemaPath := filepath.Join(dir, "schema.yml")
	schema := bytes.ReplaceAll([]byte(pipelineSchema), []byte("%TARGET%"), []byte(target))
	require.NoError(t, os.WriteFile(schemaPath, schema, 0o644))

	cache := filepath.Join(dir, "cache", "scan.db")
	snapshot := filepath.Join(dir, "cache", "scan_results.json")
	scores := filepath.Join(dir, "cache", "scores.json")
	projects := filepath.Join(dir, "cache", "projects.json")
	journalPath := filepath.Join(dir, "cache", "journal.jsonl")

	out := run(t, "scan",
		"--path", filepath.Join(dir, "inbox"),
		"--cache", cache, "--snapshot", snapshot)
	assert.Contains(t, out, "Scanned 3 files")

	out = run(t, "rules", "--config", rulesPath, "--cache", cache, "--emit", scores)
	assert.Contains(t, out, "Classified 3 files")

	out = run(t, "cluster",
		"--rules", rulesPath, "--cache", cache, "--scores", scores, "--out", projects)
	assert.Contains(t, out, "Clustered 1 projects")

	out = run(t, "organize",
		"--schema", schemaPath,
		"--projects", projects, "--cache", cache, "--scores", scores,
		"--journal", journalPath)
	assert.Contains(t, out, "Organized 3 files")

	// The hint "acme" matches a path segment, so the project is labeled acme.
	movedPy := filepath.Join(target, "acme", "src", "core", "main.py")
	movedMd := filepath.Join(target, "acme", "docs", "README.md")
	movedYml := filepath.Join(target, "acme", "configs", "settings.yml")
	for _, path := range []string{movedPy, movedMd, movedYml} {
		_, err := os.Stat(path)
		assert.NoError(t, err, "expected organized file at %s", path)
	}
	_, err := os.Stat(filepath.Join(source, "main.py"))
	assert.True(t, os.IsNotExist(err), "move mode should remove the source")

	reportPath := filepath.Join(dir, "reports", "summary.html")
	out = run(t, "report",
		"--projects", projects, "--journal", journalPath, "--out", reportPath)
	assert.Contains(t, out, "3 moves")
	for _, ext := range []string{".html", ".json", ".csv"} {
		_, err := os.Stat(swapExt(reportPath, ext))
		assert.NoError(t, err)
	}

	out = run(t, "rollback", journalPath)
	assert.Contains(t, out, "3 restored")
	for _, name := range []string{"main.py", "README.md", "settings.yml"} {
		_, err := os.Stat(filepath.Join(source, name))
		assert.NoError(t, err, "expected %s restored", name)
	}
}

func TestOrganizeDryRunTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "inbox", "proj")
	require.NoError(t, os.MkdirAll(source, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(source, "notes.md"), []byte("# Notes\n"), 0o644))

	rulesPath := filepath.Join(dir, "rules.yml")
	require.NoError(t, os.WriteFile(rulesPath, []byte(pipelineRules), 0o644))

	target := filepath.Join(dir, "organized")
	schemaPath := filepath.Join(dir, "schema.yml")
	schema := bytes.ReplaceAll([]byte(pipelineSchema), []byte("%TARGET%"), []byte(target))
	require.NoError(t, os.WriteFile(schemaPath, schema, 0o644))

	cache := filepath.Join(dir, "scan.db")
	scores := filepath.Join(dir, "scores.json")
	projects := filepath.Join(dir, "projects.json")
	journalPath := filepath.Join(dir, "journal.jsonl")

	run(t, "scan", "--path", filepath.Join(dir, "inbox"),
		"--cache", cache, "--snapshot", filepath.Join(dir, "snap.json"))
	run(t, "rules", "--config", rulesPath, "--cache", cache, "--emit", scores)
	run(t, "cluster", "--cache", cache, "--scores", scores, "--out", projects)

	out := run(t, "organize",
		"--schema", schemaPath, "--dry-run",
		"--projects", projects, "--cache", cache, "--scores", scores,
		"--journal", journalPath)
	assert.Contains(t, out, "Dry run")

	// Source untouched, no journal written.
	_, err := os.Stat(filepath.Join(source, "notes.md"))
	assert.NoError(t, err)
	_, err = os.Stat(journalPath)
	assert.True(t, os.IsNotExist(err))
}
