package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/archivist/internal/journal"
	"github.com/harrison/archivist/internal/models"
)

func sampleCluster() models.ClusterResult {
	return models.ClusterResult{Projects: []models.ClusterProject{
		{
			ProjectID:    "project_001",
			ProjectLabel: "api_server",
			DocIDs:       []string{"d1", "d2", "d3"},
			Confidence:   0.75,
		},
		{
			ProjectID:    "project_002",
			ProjectLabel: "notebooks",
			DocIDs:       []string{"d4"},
			Confidence:   0.65,
		},
	}}
}

func sampleEntries() []models.JournalEntry {
	return []models.JournalEntry{
		{
			OriginalPath: "/src/a.py", TargetPath: "/out/api_server/src/core/a.py",
			ProjectLabel: "api_server", Bucket: "src",
			Status: models.StatusMoved, Timestamp: 1700000000,
		},
		{
			OriginalPath: "/src/b.py", TargetPath: "/out/api_server/tests/unit/b.py",
			ProjectLabel: "api_server", Bucket: "tests",
			Status: models.StatusMoved, Timestamp: 1700000001,
		},
		{
			OriginalPath: "/src/c.ipynb", TargetPath: "/out/notebooks/notebooks/c.ipynb",
			ProjectLabel: "notebooks", Bucket: "notebooks",
			Status: models.StatusCopied, Timestamp: 1700000002,
		},
	}
}

func TestBuildSummaryTotals(t *testing.T) {
	summary := BuildSummary(sampleCluster(), sampleEntries())

	assert.Equal(t, map[string]int{"api_server": 2, "notebooks": 1}, summary.ProjectTotals)
	assert.Equal(t, map[string]int{"src": 1, "tests": 1, "notebooks": 1}, summary.BucketTotals)
	require.Len(t, summary.Projects, 2)
	assert.Equal(t, 3, summary.Projects[0].DocCount)
	assert.Len(t, summary.Moves, 3)
}

func TestBuildSummaryDefaultsBlankFields(t *testing.T) {
	entries := []models.JournalEntry{
		{OriginalPath: "/a", TargetPath: "/b", Status: models.StatusMoved, Timestamp: 1},
	}
	summary := BuildSummary(models.ClusterResult{}, entries)
	assert.Equal(t, 1, summary.ProjectTotals["unknown"])
	assert.Equal(t, 1, summary.BucketTotals["archive"])
}

func TestGenerateWritesAllArtifacts(t *testing.T) {
	dir := t.TempDir()
	journalPath := filepath.Join(dir, "journal.jsonl")
	require.NoError(t, journal.NewWriter(journalPath).Append(sampleEntries()))

	paths := Paths{
		HTML: filepath.Join(dir, "reports", "projects_summary.html"),
		JSON: filepath.Join(dir, "reports", "projects_summary.json"),
		CSV:  filepath.Join(dir, "reports", "projects_summary.csv"),
	}
	summary, err := NewGenerator(nil).Generate(sampleCluster(), journalPath, paths)
	require.NoError(t, err)
	assert.Len(t, summary.Moves, 3)

	var decoded Summary
	data, err := os.ReadFile(paths.JSON)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, summary.ProjectTotals, decoded.ProjectTotals)

	csvData, err := os.ReadFile(paths.CSV)
	require.NoError(t, err)
	lines := strings.Split(string(csvData), "\n")
	assert.Equal(t, []string{"project_label,count", "api_server,2", "notebooks,1"}, lines)

	htmlData, err := os.ReadFile(paths.HTML)
	require.NoError(t, err)
	html := string(htmlData)
	assert.Contains(t, html, "<title>Project Summary</title>")
	assert.Contains(t, html, "<td>api_server</td>")
	assert.Contains(t, html, "<td>0.75</td>")
	assert.Contains(t, html, "<td>notebooks</td>")
}

func TestGenerateEmptyJournalRendersPlaceholders(t *testing.T) {
	dir := t.TempDir()
	journalPath := filepath.Join(dir, "journal.jsonl")
	require.NoError(t, os.WriteFile(journalPath, nil, 0o644))

	paths := Paths{
		HTML: filepath.Join(dir, "summary.html"),
		JSON: filepath.Join(dir, "summary.json"),
		CSV:  filepath.Join(dir, "summary.csv"),
	}
	summary, err := NewGenerator(nil).Generate(models.ClusterResult{}, journalPath, paths)
	require.NoError(t, err)
	assert.Empty(t, summary.ProjectTotals)

	htmlData, err := os.ReadFile(paths.HTML)
	require.NoError(t, err)
	assert.Contains(t, string(htmlData), "No projects")
	assert.Contains(t, string(htmlData), "No buckets")

	csvData, err := os.ReadFile(paths.CSV)
	require.NoError(t, err)
	assert.Equal(t, "project_label,count", string(csvData))
}

func TestGenerateMissingJournal(t *testing.T) {
	dir := t.TempDir()
	_, err := NewGenerator(nil).Generate(models.ClusterResult{}, filepath.Join(dir, "absent.jsonl"), Paths{
		HTML: filepath.Join(dir, "a.html"),
		JSON: filepath.Join(dir, "a.json"),
		CSV:  filepath.Join(dir, "a.csv"),
	})
	assert.Error(t, err)
}
