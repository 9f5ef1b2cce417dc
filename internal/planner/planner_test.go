package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/archivist/internal/config"
	"github.com/harrison/archivist/internal/models"
)

func testSchema(t *testing.T) *config.SchemaConfig {
	return &config.SchemaConfig{
		TargetRoot:     filepath.Join(t.TempDir(), "organized"),
		Structure:      []string{"src/core", "docs", "archive"},
		ConflictPolicy: config.ConflictPolicyHashSuffix,
		Mode:           models.ModeMove,
	}
}

func project(label string, docIDs ...string) models.ClusterProject {
	roleMap := make(map[string]string)
	return models.ClusterProject{
		ProjectID:     "project_001",
		ProjectLabel:  label,
		DocIDs:        docIDs,
		RoleBucketMap: roleMap,
		Confidence:    0.65,
	}
}

func indexOf(docs ...models.Document) map[string]models.Document {
	m := make(map[string]models.Document, len(docs))
	for _, doc := range docs {
		m[doc.DocID] = doc
	}
	return m
}

func TestBucketDir(t *testing.T) {
	assert.Equal(t, "src/core", BucketDir("src"))
	assert.Equal(t, "tests/unit", BucketDir("tests"))
	assert.Equal(t, "archive", BucketDir("archive"))
	assert.Equal(t, "archive", BucketDir("unmapped-bucket"))
}

func TestBuildPlansBasic(t *testing.T) {
	schema := testSchema(t)
	doc := models.Document{DocID: "a", Path: "/src/app.py", Name: "app.py", Digest: "abcdef0123456789"}
	clusters := models.ClusterResult{Projects: []models.ClusterProject{project("alpha", "a")}}

	plans, err := BuildPlans(clusters, schema, map[string]string{"a": "scripts"}, indexOf(doc))
	require.NoError(t, err)
	require.Len(t, plans, 1)

	plan := plans[0]
	assert.Equal(t, "scripts", plan.Bucket)
	assert.Equal(t, filepath.Join(schema.TargetRoot, "alpha", "scripts", "app.py"), plan.TargetPath)
	assert.Equal(t, "abcdef0", plan.HashSuffix)

	// Structural dirs were pre-created.
	for _, rel := range schema.Structure {
		info, err := os.Stat(filepath.Join(schema.TargetRoot, "alpha", rel))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestBuildPlansCollisionSuffixing(t *testing.T) {
	schema := testSchema(t)
	docA := models.Document{DocID: "a", Path: "/one/report.txt", Name: "report.txt", Digest: "aaaa111bbbb"}
	docB := models.Document{DocID: "b", Path: "/two/report.txt", Name: "report.txt", Digest: "cccc222dddd"}
	clusters := models.ClusterResult{Projects: []models.ClusterProject{project("alpha", "a", "b")}}
	scores := map[string]string{"a": "docs", "b": "docs"}

	plans, err := BuildPlans(clusters, schema, scores, indexOf(docA, docB))
	require.NoError(t, err)
	require.Len(t, plans, 2)

	assert.NotEqual(t, plans[0].TargetPath, plans[1].TargetPath)
	assert.Equal(t, "report.txt", filepath.Base(plans[0].TargetPath))
	assert.Equal(t, "report__cccc222.txt", filepath.Base(plans[1].TargetPath))
}

func TestBuildPlansCollisionWithIdenticalDigests(t *testing.T) {
	schema := testSchema(t)
	// Same name and same digest: the numeric suffix must disambiguate.
	docs := make([]models.Document, 3)
	ids := make([]string, 3)
	for i := range docs {
		id := fmt.Sprintf("d%d", i)
		ids[i] = id
		docs[i] = models.Document{
			DocID: id, Path: fmt.Sprintf("/copy%d/dup.txt", i),
			Name: "dup.txt", Digest: "samedigest00",
		}
	}
	clusters := models.ClusterResult{Projects: []models.ClusterProject{project("alpha", ids...)}}
	scores := map[string]string{"d0": "docs", "d1": "docs", "d2": "docs"}

	plans, err := BuildPlans(clusters, schema, scores, indexOf(docs...))
	require.NoError(t, err)
	require.Len(t, plans, 3)

	seen := make(map[string]bool)
	for _, plan := range plans {
		assert.False(t, seen[plan.TargetPath], "duplicate target %s", plan.TargetPath)
		seen[plan.TargetPath] = true
	}
	assert.Equal(t, "dup__samedig.txt", filepath.Base(plans[1].TargetPath))
	assert.Equal(t, "dup__samedig_1.txt", filepath.Base(plans[2].TargetPath))
}

func TestBuildPlansCollisionAgainstDisk(t *testing.T) {
	schema := testSchema(t)
	doc := models.Document{DocID: "a", Path: "/src/app.py", Name: "app.py", Digest: "feedbeef123"}
	clusters := models.ClusterResult{Projects: []models.ClusterProject{project("alpha", "a")}}

	// A file already sits where the plan would put this one.
	occupied := filepath.Join(schema.TargetRoot, "alpha", "scripts", "app.py")
	require.NoError(t, os.MkdirAll(filepath.Dir(occupied), 0755))
	require.NoError(t, os.WriteFile(occupied, []byte("existing"), 0644))

	plans, err := BuildPlans(clusters, schema, map[string]string{"a": "scripts"}, indexOf(doc))
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "app__feedbee.py", filepath.Base(plans[0].TargetPath))
}

func TestBuildPlansIndependentProjects(t *testing.T) {
	schema := testSchema(t)
	docA := models.Document{DocID: "a", Path: "/one/main.py", Name: "main.py", Digest: "aaaa111"}
	docB := models.Document{DocID: "b", Path: "/two/main.py", Name: "main.py", Digest: "bbbb222"}

	alpha := project("alpha", "a")
	beta := project("beta", "b")
	beta.ProjectID = "project_002"
	clusters := models.ClusterResult{Projects: []models.ClusterProject{alpha, beta}}
	scores := map[string]string{"a": "src", "b": "src"}

	plans, err := BuildPlans(clusters, schema, scores, indexOf(docA, docB))
	require.NoError(t, err)
	require.Len(t, plans, 2)

	// Unrelated projects reuse the same relative path without suffixing.
	assert.Equal(t, "main.py", filepath.Base(plans[0].TargetPath))
	assert.Equal(t, "main.py", filepath.Base(plans[1].TargetPath))
	assert.True(t, strings.Contains(plans[0].TargetPath, "alpha"))
	assert.True(t, strings.Contains(plans[1].TargetPath, "beta"))
}

func TestBuildPlansSkipsUnusableDocs(t *testing.T) {
	schema := testSchema(t)
	good := models.Document{DocID: "a", Path: "/one/x.txt", Name: "x.txt", Digest: "abc1234"}
	noDigest := models.Document{DocID: "b", Path: "/one/y.txt", Name: "y.txt"}
	clusters := models.ClusterResult{Projects: []models.ClusterProject{project("alpha", "a", "b", "ghost")}}

	plans, err := BuildPlans(clusters, schema, nil, indexOf(good, noDigest))
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "a", plans[0].DocID)
}

func TestBuildPlansRoleBucketOverride(t *testing.T) {
	schema := testSchema(t)
	doc := models.Document{DocID: "a", Path: "/one/x.py", Name: "x.py", Digest: "abc1234"}

	p := project("alpha", "a")
	p.RoleBucketMap["a"] = "tests"
	clusters := models.ClusterResult{Projects: []models.ClusterProject{p}}

	// The override beats the score map.
	plans, err := BuildPlans(clusters, schema, map[string]string{"a": "src"}, indexOf(doc))
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "tests", plans[0].Bucket)
	assert.Contains(t, plans[0].TargetPath, filepath.Join("tests", "unit"))
}
