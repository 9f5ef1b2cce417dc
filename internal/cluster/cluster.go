// Package cluster groups documents into inferred project clusters from
// path-segment heuristics and configured hint tokens. Given the same
// documents and hints, labels and project ids reproduce exactly across runs.
package cluster

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harrison/archivist/internal/models"
)

// DefaultLabel is used when a document's path yields no usable segments.
const DefaultLabel = "general_project"

// Clusterer holds the normalized hint tokens for one clustering run.
type Clusterer struct {
	hints []string
}

// New creates a Clusterer from the configured project hint tokens.
func New(hints []string) *Clusterer {
	return &Clusterer{hints: hints}
}

// Cluster groups documents by inferred project label and assigns project
// ids in lexicographically sorted label order. scoreMap provides each
// document's bucket; a document missing from it keeps the archive fallback.
func (c *Clusterer) Cluster(docs []models.Document, scoreMap map[string]string) models.ClusterResult {
	groups := make(map[string][]models.Document)
	for _, doc := range docs {
		label := c.InferLabel(filepath.Dir(doc.Path))
		groups[label] = append(groups[label], doc)
	}

	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	result := models.ClusterResult{}
	for i, label := range labels {
		members := groups[label]
		docIDs := make([]string, len(members))
		roleMap := make(map[string]string, len(members))
		for j, doc := range members {
			docIDs[j] = doc.DocID
			if bucket, ok := scoreMap[doc.DocID]; ok {
				roleMap[doc.DocID] = bucket
			} else {
				roleMap[doc.DocID] = "archive"
			}
		}

		result.Projects = append(result.Projects, models.ClusterProject{
			ProjectID:     fmt.Sprintf("project_%03d", i+1),
			ProjectLabel:  label,
			DocIDs:        docIDs,
			RoleBucketMap: roleMap,
			Confidence:    confidence(len(members)),
			Reasons: []string{
				"grouped_by:" + label,
				fmt.Sprintf("docs:%d", len(members)),
			},
		})
	}
	return result
}

// InferLabel derives a project label from a directory path: a segment
// matching a hint token wins; otherwise the last two usable segments joined,
// then the single last segment, then the default label.
func (c *Clusterer) InferLabel(dir string) string {
	var segments []string
	for _, segment := range strings.Split(filepath.ToSlash(dir), "/") {
		if len(segment) > 2 {
			segments = append(segments, strings.ToLower(segment))
		}
	}

	for _, hint := range c.hints {
		lowered := strings.ToLower(hint)
		for _, segment := range segments {
			if segment == lowered {
				return normalizeLabel(hint)
			}
		}
	}

	switch {
	case len(segments) >= 2:
		return normalizeLabel(strings.Join(segments[len(segments)-2:], "_"))
	case len(segments) == 1:
		return normalizeLabel(segments[0])
	default:
		return DefaultLabel
	}
}

// normalizeLabel collapses anything outside [alnum_-] to underscores and
// lowercases, producing filesystem-safe labels.
func normalizeLabel(label string) string {
	var b strings.Builder
	for _, ch := range label {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9',
			ch == '_', ch == '-':
			b.WriteRune(ch)
		default:
			b.WriteRune('_')
		}
	}
	return strings.ToLower(strings.Trim(b.String(), "_ "))
}

// confidence grows with member count and caps at 1.0: larger co-located
// groups are more likely a genuine project.
func confidence(members int) float64 {
	value := math.Min(1.0, 0.6+0.05*float64(members))
	return math.Round(value*100) / 100
}
