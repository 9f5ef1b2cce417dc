// Package report renders run summaries from the cluster result and the
// journal. It carries no pipeline logic of its own: totals are counted
// straight off journal entries and rendered as HTML, JSON, and CSV.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harrison/archivist/internal/filelock"
	"github.com/harrison/archivist/internal/fileutil"
	"github.com/harrison/archivist/internal/journal"
	"github.com/harrison/archivist/internal/logger"
	"github.com/harrison/archivist/internal/models"
)

// Summary is the aggregate written to the JSON artifact and fed to the
// HTML template.
type Summary struct {
	Projects      []ProjectSummary      `json:"projects"`
	Moves         []models.JournalEntry `json:"moves"`
	ProjectTotals map[string]int        `json:"project_totals"`
	BucketTotals  map[string]int        `json:"bucket_totals"`
}

// ProjectSummary is one cluster project reduced to report columns.
type ProjectSummary struct {
	ProjectID    string  `json:"project_id"`
	ProjectLabel string  `json:"project_label"`
	DocCount     int     `json:"doc_count"`
	Confidence   float64 `json:"confidence"`
}

// Paths names the three artifacts a report run produces.
type Paths struct {
	HTML string
	JSON string
	CSV  string
}

// Generator builds summaries and writes report artifacts.
type Generator struct {
	log *logger.ConsoleLogger
}

func NewGenerator(log *logger.ConsoleLogger) *Generator {
	return &Generator{log: log}
}

// BuildSummary aggregates journal entries under the cluster result. Entries
// without a project label are counted under "unknown"; entries without a
// bucket under "archive".
func BuildSummary(cluster models.ClusterResult, entries []models.JournalEntry) Summary {
	summary := Summary{
		Projects:      make([]ProjectSummary, 0, len(cluster.Projects)),
		Moves:         entries,
		ProjectTotals: make(map[string]int),
		BucketTotals:  make(map[string]int),
	}
	for _, project := range cluster.Projects {
		summary.Projects = append(summary.Projects, ProjectSummary{
			ProjectID:    project.ProjectID,
			ProjectLabel: project.ProjectLabel,
			DocCount:     len(project.DocIDs),
			Confidence:   project.Confidence,
		})
	}
	for _, entry := range entries {
		label := entry.ProjectLabel
		if label == "" {
			label = "unknown"
		}
		bucket := entry.Bucket
		if bucket == "" {
			bucket = "archive"
		}
		summary.ProjectTotals[label]++
		summary.BucketTotals[bucket]++
	}
	return summary
}

// Generate reads the journal at journalPath, builds the summary, and writes
// all three artifacts atomically.
func (g *Generator) Generate(cluster models.ClusterResult, journalPath string, paths Paths) (Summary, error) {
	entries, skipped, err := journal.Read(journalPath)
	if err != nil {
		return Summary{}, fmt.Errorf("read journal: %w", err)
	}
	if skipped > 0 {
		g.log.Warnf("journal %s: skipped %d unreadable entries", journalPath, skipped)
	}

	summary := BuildSummary(cluster, entries)

	for _, dir := range []string{paths.HTML, paths.JSON, paths.CSV} {
		if err := fileutil.EnsureDir(filepath.Dir(dir)); err != nil {
			return Summary{}, fmt.Errorf("create report directory: %w", err)
		}
	}

	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return Summary{}, fmt.Errorf("encode summary: %w", err)
	}
	if err := filelock.AtomicWrite(paths.JSON, jsonData); err != nil {
		return Summary{}, fmt.Errorf("write %s: %w", paths.JSON, err)
	}

	if err := filelock.AtomicWrite(paths.CSV, []byte(renderCSV(summary))); err != nil {
		return Summary{}, fmt.Errorf("write %s: %w", paths.CSV, err)
	}

	htmlData, err := renderHTML(summary)
	if err != nil {
		return Summary{}, fmt.Errorf("render html: %w", err)
	}
	if err := filelock.AtomicWrite(paths.HTML, htmlData); err != nil {
		return Summary{}, fmt.Errorf("write %s: %w", paths.HTML, err)
	}

	g.log.Infof("report generated at %s", paths.HTML)
	return summary, nil
}

// renderCSV emits per-project move totals, labels sorted for stable output.
func renderCSV(summary Summary) string {
	labels := make([]string, 0, len(summary.ProjectTotals))
	for label := range summary.ProjectTotals {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var b strings.Builder
	b.WriteString("project_label,count")
	for _, label := range labels {
		fmt.Fprintf(&b, "\n%s,%d", label, summary.ProjectTotals[label])
	}
	return b.String()
}

type bucketRow struct {
	Bucket string
	Count  int
}

var htmlTemplate = template.Must(template.New("summary").Parse(`<html>
  <head>
    <meta charset="utf-8" />
    <title>Project Summary</title>
    <style>
      body { background-color: #0B1220; color: #E5E7EB; font-family: Inter; }
      .container { max-width: 960px; margin: 0 auto; padding: 32px; }
      h1 { color: #60A5FA; }
      table { width: 100%; border-collapse: collapse; margin-top: 24px; }
      th, td { border: 1px solid #111827; padding: 12px; text-align: left; }
      th { background-color: #111827; color: #22D3EE; }
      .card { background-color: #111827; border-radius: 12px; padding: 16px; }
    </style>
  </head>
  <body>
    <div class="container">
      <h1>Project Summary</h1>
      <div class="card">
        <h2>Projects</h2>
        <table>
          <thead>
            <tr><th>ID</th><th>Label</th><th>Docs</th><th>Confidence</th></tr>
          </thead>
          <tbody>
{{- if .Projects}}
{{- range .Projects}}
            <tr><td>{{.ProjectID}}</td><td>{{.ProjectLabel}}</td><td>{{.DocCount}}</td><td>{{printf "%.2f" .Confidence}}</td></tr>
{{- end}}
{{- else}}
            <tr><td colspan="4">No projects</td></tr>
{{- end}}
          </tbody>
        </table>
      </div>
      <div class="card">
        <h2>Buckets</h2>
        <table>
          <thead>
            <tr><th>Bucket</th><th>Count</th></tr>
          </thead>
          <tbody>
{{- if .Buckets}}
{{- range .Buckets}}
            <tr><td>{{.Bucket}}</td><td>{{.Count}}</td></tr>
{{- end}}
{{- else}}
            <tr><td colspan="2">No buckets</td></tr>
{{- end}}
          </tbody>
        </table>
      </div>
    </div>
  </body>
</html>
`))

func renderHTML(summary Summary) ([]byte, error) {
	buckets := make([]bucketRow, 0, len(summary.BucketTotals))
	for bucket, count := range summary.BucketTotals {
		buckets = append(buckets, bucketRow{Bucket: bucket, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Bucket < buckets[j].Bucket })

	var buf bytes.Buffer
	err := htmlTemplate.Execute(&buf, struct {
		Projects []ProjectSummary
		Buckets  []bucketRow
	}{summary.Projects, buckets})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
