package scanner

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Limits for the opportunistic structural hints. Extraction is cheap and
// best-effort: a hint that cannot be derived is simply absent.
const (
	maxImportLines  = 5
	maxHeadings     = 5
	maxJSONKeys     = 10
	maxCSVColumns   = 20
	topCommentLimit = 200
)

// extractImports collects the first few import-style lines from the sample.
func extractImports(sample string) []string {
	var imports []string
	for _, line := range strings.Split(sample, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "import ") ||
			(strings.HasPrefix(stripped, "from ") && strings.Contains(stripped, " import ")) {
			imports = append(imports, stripped)
		}
		if len(imports) >= maxImportLines {
			break
		}
	}
	return imports
}

// extractTopComment returns the first non-blank line when it looks like a
// comment or docstring opener, truncated to a fixed length.
func extractTopComment(sample string) string {
	for _, line := range strings.Split(sample, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		if strings.HasPrefix(stripped, "#") ||
			strings.HasPrefix(stripped, "//") ||
			strings.HasPrefix(stripped, `"""`) ||
			strings.HasPrefix(stripped, "'''") {
			if len(stripped) > topCommentLimit {
				return stripped[:topCommentLimit]
			}
			return stripped
		}
		return ""
	}
	return ""
}

// extractMarkdownHeadings returns the first few headings. Markdown files go
// through a real parser; everything else falls back to a prefix scan so
// heading-like lines in arbitrary text still contribute a signal.
func extractMarkdownHeadings(sample, ext string) []string {
	if ext == ".md" || ext == ".markdown" {
		if headings := parseHeadings([]byte(sample)); len(headings) > 0 {
			return headings
		}
	}
	return scanHeadingLines(sample)
}

// parseHeadings walks the goldmark AST collecting heading text.
func parseHeadings(source []byte) []string {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var headings []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || len(headings) >= maxHeadings {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok {
			if t := headingText(heading, source); t != "" {
				headings = append(headings, t)
			}
		}
		return ast.WalkContinue, nil
	})
	return headings
}

// headingText concatenates the text nodes directly under a heading.
func headingText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if textNode, ok := c.(*ast.Text); ok {
			buf.Write(textNode.Segment.Value(source))
		}
	}
	return strings.TrimSpace(buf.String())
}

// scanHeadingLines is the non-markdown fallback: lines starting with '#',
// stripped of markers.
func scanHeadingLines(sample string) []string {
	var headings []string
	for _, line := range strings.Split(sample, "\n") {
		if strings.HasPrefix(line, "#") {
			stripped := strings.Trim(line, "# \r")
			if stripped != "" {
				headings = append(headings, stripped)
			}
		}
		if len(headings) >= maxHeadings {
			break
		}
	}
	return headings
}

// extractJSONRootKeys returns the root object's keys in document order when
// the sample parses as a JSON object. Truncated or non-object samples yield
// nothing.
func extractJSONRootKeys(sample string) []string {
	dec := json.NewDecoder(strings.NewReader(sample))

	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}

	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil
		}
		keys = append(keys, key)
	}
	if _, err := dec.Token(); err != nil {
		// Unterminated object: the sample was cut mid-document.
		return nil
	}

	if len(keys) > maxJSONKeys {
		keys = keys[:maxJSONKeys]
	}
	return keys
}

// extractCSVHeader reads the first record of a .csv file directly from disk;
// the masked sample is useless for this because masking rewrites cell
// content.
func extractCSVHeader(path string) []string {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil
	}
	if len(header) > maxCSVColumns {
		header = header[:maxCSVColumns]
	}
	return header
}
