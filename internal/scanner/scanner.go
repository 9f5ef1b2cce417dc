// Package scanner walks configured roots, derives per-file metadata and
// content identity, and extracts masked samples with light structural hints.
// Discovery is synchronous; per-file extraction runs on a bounded worker
// pool. A per-file failure drops that file from the result set without
// aborting the scan.
package scanner

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/harrison/archivist/internal/config"
	"github.com/harrison/archivist/internal/fileutil"
	"github.com/harrison/archivist/internal/identity"
	"github.com/harrison/archivist/internal/logger"
	"github.com/harrison/archivist/internal/models"
)

// Scanner produces one Document per qualifying regular file under the
// configured roots.
type Scanner struct {
	cfg *config.ScanConfig
	log *logger.ConsoleLogger
}

// New creates a Scanner. The logger may be nil.
func New(cfg *config.ScanConfig, log *logger.ConsoleLogger) *Scanner {
	return &Scanner{cfg: cfg, log: log}
}

// Scan enumerates all roots and extracts a Document for every regular file
// that exists, is stat-able, and does not exceed the size limit. Missing
// roots are reported and skipped.
func (s *Scanner) Scan(ctx context.Context) ([]models.Document, error) {
	var files []string
	for _, root := range s.cfg.Paths {
		result, err := fileutil.WalkRoot(fileutil.AbsOrSelf(root), fileutil.WalkOptions{
			ExcludeDirs: s.cfg.ExcludeDirs,
		})
		if err != nil {
			s.log.Warnf("skipping root %s: %v", root, err)
			continue
		}
		for _, walkErr := range result.Errors {
			s.log.Debugf("scan: %v", walkErr)
		}
		files = append(files, result.Files...)
	}

	// Fixed result slots per file keep output order deterministic without
	// any locking between workers.
	results := make([]*models.Document, len(files))

	// A non-positive worker count would make SetLimit refuse all work, so
	// fall back to one worker per CPU.
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := s.scanFile(path)
			if err != nil {
				s.log.Debugf("skipping %s: %v", path, err)
				return nil
			}
			results[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan interrupted: %w", err)
	}

	docs := make([]models.Document, 0, len(results))
	for _, doc := range results {
		if doc != nil {
			docs = append(docs, *doc)
		}
	}
	s.log.Infof("scanned %d files across %d roots", len(docs), len(s.cfg.Paths))
	return docs, nil
}

// scanFile extracts one Document. Any error, including the size filter,
// drops the file from the scan; the caller logs and moves on.
func (s *Scanner) scanFile(path string) (*models.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	if info.Size() > s.cfg.MaxSizeBytes {
		return nil, fmt.Errorf("exceeds size limit (%d bytes)", info.Size())
	}

	digest, err := identity.Digest(path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	sample := s.readSample(path)

	doc := &models.Document{
		DocID:            identity.DeriveID(path, digest),
		Path:             path,
		Name:             filepath.Base(path),
		Ext:              ext,
		Size:             info.Size(),
		ModifiedTime:     float64(info.ModTime().UnixNano()) / 1e9,
		Digest:           digest,
		MimeType:         detectMimeType(ext),
		DirHint:          filepath.Base(filepath.Dir(path)),
		ImportsFirst:     extractImports(sample),
		TopComment:       extractTopComment(sample),
		MarkdownHeadings: extractMarkdownHeadings(sample, ext),
		JSONRootKeys:     extractJSONRootKeys(sample),
		SampleText:       sample,
	}
	if ext == ".csv" {
		doc.CSVHeader = extractCSVHeader(path)
	}
	return doc, nil
}

// readSample reads up to SampleBytes of content, decodes permissively, and
// masks sensitive substrings. Read failures yield an empty sample rather
// than failing the file: metadata without a sample is still useful.
func (s *Scanner) readSample(path string) string {
	file, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer file.Close()

	buf := make([]byte, s.cfg.SampleBytes)
	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return ""
	}
	if n == 0 {
		return ""
	}
	return maskSensitive(decodeSample(buf[:n]))
}

// decodeSample decodes raw bytes as UTF-8, falling back to a byte-preserving
// decoding (each byte becomes the code point of the same value) when the
// content is not valid UTF-8.
func decodeSample(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes)
}

// detectMimeType guesses the MIME type from the extension, stripping any
// parameters the registry attaches.
func detectMimeType(ext string) string {
	t := mime.TypeByExtension(ext)
	if t == "" {
		return "application/octet-stream"
	}
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}
