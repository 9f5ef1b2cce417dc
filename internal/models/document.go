package models

// Document is the scanner's metadata record for one physical file.
// Documents are created by the scanner, persisted keyed by DocID, and
// immutable thereafter. A re-scan of unchanged content is a no-op upsert;
// changed content produces a new DocID and orphans the old row.
type Document struct {
	DocID            string   `json:"doc_id"`             // Stable id derived from (path, digest)
	Path             string   `json:"path"`               // Absolute source path at scan time
	Name             string   `json:"name"`               // Base filename
	Ext              string   `json:"ext"`                // Lowercased extension including the dot
	Size             int64    `json:"size"`               // Size in bytes
	ModifiedTime     float64  `json:"mtime"`              // Modification time, unix seconds
	Digest           string   `json:"digest"`             // Hex BLAKE2b-256 content digest
	MimeType         string   `json:"mimetype"`           // Guessed from extension
	DirHint          string   `json:"dir_hint"`           // Parent directory name
	ImportsFirst     []string `json:"imports_first"`      // First few import-style lines
	TopComment       string   `json:"top_comment"`        // First comment/docstring line, truncated
	MarkdownHeadings []string `json:"md_headings"`        // First few markdown headings
	JSONRootKeys     []string `json:"json_root_keys"`     // Root object keys if sample parses as JSON
	CSVHeader        []string `json:"csv_header"`         // Header row for .csv files
	SampleText       string   `json:"sample_text"`        // Masked text sample, never raw content
}

// BucketScore is the classifier's verdict for one document: the winning
// bucket, its total score, and the human-readable match reasons in the
// order the signals fired.
type BucketScore struct {
	DocID   string   `json:"doc_id"`
	Bucket  string   `json:"bucket"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}
