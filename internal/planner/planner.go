// Package planner maps clustered documents onto the target schema, resolving
// name collisions deterministically. Allocation state is per project: two
// projects may reuse identical relative paths without interference, so
// separate projects can be planned concurrently while each project's
// documents are allocated sequentially.
package planner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/harrison/archivist/internal/config"
	"github.com/harrison/archivist/internal/fileutil"
	"github.com/harrison/archivist/internal/models"
)

// bucketDirs maps buckets onto structural subdirectories. Buckets outside
// the table land in archive.
var bucketDirs = map[string]string{
	"src":       "src/core",
	"scripts":   "scripts",
	"tests":     "tests/unit",
	"docs":      "docs",
	"reports":   "reports",
	"configs":   "configs",
	"data":      "data/raw",
	"notebooks": "notebooks",
	"archive":   "archive",
	"tmp":       "tmp",
}

// hashSuffixLen is how many digest characters disambiguate a colliding name.
const hashSuffixLen = 7

// BucketDir returns the relative target directory for a bucket.
func BucketDir(bucket string) string {
	if dir, ok := bucketDirs[bucket]; ok {
		return dir
	}
	return bucketDirs["archive"]
}

// BuildPlans produces one OrganizePlan per (project, document) pair whose
// source document still has a usable path and digest. The schema's
// structural subdirectories are pre-created under every project root.
func BuildPlans(
	clusters models.ClusterResult,
	schema *config.SchemaConfig,
	scoreMap map[string]string,
	scanIndex map[string]models.Document,
) ([]models.OrganizePlan, error) {
	var plans []models.OrganizePlan
	for _, project := range clusters.Projects {
		projectPlans, err := planProject(project, schema, scoreMap, scanIndex)
		if err != nil {
			return nil, err
		}
		plans = append(plans, projectPlans...)
	}
	return plans, nil
}

// planProject allocates targets for one project with its own used-target
// set.
func planProject(
	project models.ClusterProject,
	schema *config.SchemaConfig,
	scoreMap map[string]string,
	scanIndex map[string]models.Document,
) ([]models.OrganizePlan, error) {
	projectRoot := filepath.Join(schema.TargetRoot, project.ProjectLabel)
	for _, relative := range schema.Structure {
		if err := fileutil.EnsureDir(filepath.Join(projectRoot, relative)); err != nil {
			return nil, fmt.Errorf("prepare project %s: %w", project.ProjectID, err)
		}
	}

	used := make(map[string]bool)
	var plans []models.OrganizePlan
	for _, docID := range project.DocIDs {
		doc, ok := scanIndex[docID]
		if !ok || doc.Path == "" || doc.Digest == "" {
			continue
		}

		bucket := resolveBucket(docID, project, scoreMap)
		target, hashSuffix, err := resolveTarget(projectRoot, bucket, doc, used)
		if err != nil {
			return nil, err
		}

		plans = append(plans, models.OrganizePlan{
			DocID:        docID,
			ProjectID:    project.ProjectID,
			ProjectLabel: project.ProjectLabel,
			Bucket:       bucket,
			SourcePath:   doc.Path,
			TargetPath:   target,
			Digest:       doc.Digest,
			HashSuffix:   hashSuffix,
		})
	}
	return plans, nil
}

// resolveBucket prefers the project's per-document override, then the score
// map, then archive.
func resolveBucket(docID string, project models.ClusterProject, scoreMap map[string]string) string {
	if bucket, ok := project.RoleBucketMap[docID]; ok && bucket != "" {
		return bucket
	}
	if bucket, ok := scoreMap[docID]; ok && bucket != "" {
		return bucket
	}
	return "archive"
}

// resolveTarget finds a collision-free target path: the original name first,
// then the digest-suffixed stem, then an incrementing numeric suffix. Each
// attempt produces a syntactically distinct name, so the loop terminates.
func resolveTarget(projectRoot, bucket string, doc models.Document, used map[string]bool) (string, string, error) {
	base := filepath.Join(projectRoot, BucketDir(bucket))
	if err := fileutil.EnsureDir(base); err != nil {
		return "", "", fmt.Errorf("prepare bucket dir: %w", err)
	}

	ext := filepath.Ext(doc.Name)
	stem := strings.TrimSuffix(doc.Name, ext)
	hashSuffix := doc.Digest
	if len(hashSuffix) > hashSuffixLen {
		hashSuffix = hashSuffix[:hashSuffixLen]
	}

	candidate := filepath.Join(base, doc.Name)
	for attempt := 0; used[candidate] || fileutil.PathExists(candidate); attempt++ {
		var name string
		if attempt == 0 {
			name = fmt.Sprintf("%s__%s%s", stem, hashSuffix, ext)
		} else {
			name = fmt.Sprintf("%s__%s_%d%s", stem, hashSuffix, attempt, ext)
		}
		candidate = filepath.Join(base, name)
	}

	used[candidate] = true
	return candidate, hashSuffix, nil
}
