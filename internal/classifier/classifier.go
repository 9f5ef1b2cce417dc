// Package classifier scores documents against weighted bucket rules. Each
// document is scored independently: the classifier is a pure function of
// (document, rule config) with no shared state, so callers may parallelize
// freely without changing the output.
package classifier

import (
	"fmt"
	"strings"

	"github.com/harrison/archivist/internal/config"
	"github.com/harrison/archivist/internal/models"
)

// FallbackBucket receives every document no rule scores above zero.
const FallbackBucket = "archive"

// ScoreDocument scores one document against every bucket and returns the
// winner. A bucket wins only with a strictly higher total than the current
// best, so ties keep the earlier bucket in config order. When nothing
// matches, the document falls back to the archive bucket.
func ScoreDocument(doc models.Document, cfg *config.RuleConfig) models.BucketScore {
	best := models.BucketScore{
		DocID:   doc.DocID,
		Bucket:  FallbackBucket,
		Score:   0,
		Reasons: []string{"fallback"},
	}

	for _, rule := range cfg.Buckets {
		score, reasons := scoreBucket(doc, rule, cfg)
		if score > best.Score {
			best.Bucket = rule.Name
			best.Score = score
			best.Reasons = reasons
		}
	}
	return best
}

// ScoreAll classifies every document, preserving input order.
func ScoreAll(docs []models.Document, cfg *config.RuleConfig) []models.BucketScore {
	scores := make([]models.BucketScore, len(docs))
	for i, doc := range docs {
		scores[i] = ScoreDocument(doc, cfg)
	}
	return scores
}

// BucketMap flattens scores into the doc_id → bucket map consumed by the
// clusterer and planner.
func BucketMap(scores []models.BucketScore) map[string]string {
	m := make(map[string]string, len(scores))
	for _, score := range scores {
		m[score.DocID] = score.Bucket
	}
	return m
}

// scoreBucket sums matches × weight across every signal category and
// records one reason per category that fired.
func scoreBucket(doc models.Document, rule config.BucketRule, cfg *config.RuleConfig) (float64, []string) {
	score := 0
	var reasons []string

	for _, ext := range rule.Exts {
		if doc.Ext == ext {
			score += cfg.Weight("mimetype")
			reasons = append(reasons, "ext:"+doc.Ext)
			break
		}
	}

	if n, matched := countMatches(doc.Name, rule.NameKeywords); n > 0 {
		score += n * cfg.Weight("name")
		reasons = append(reasons, "name:"+strings.Join(matched, ","))
	}
	if n, matched := countMatches(doc.DirHint, rule.DirKeywords); n > 0 {
		score += n * cfg.Weight("dir")
		reasons = append(reasons, "dir:"+strings.Join(matched, ","))
	}
	if n, matched := countMatches(doc.SampleText, rule.CodeHints); n > 0 {
		score += n * cfg.Weight("content")
		reasons = append(reasons, "content:"+strings.Join(matched, ","))
	}
	if n, matched := countMatches(strings.Join(doc.ImportsFirst, " "), rule.Imports); n > 0 {
		score += n * cfg.Weight("content")
		reasons = append(reasons, "imports:"+strings.Join(matched, ","))
	}
	if n, matched := countMatches(strings.Join(doc.MarkdownHeadings, " "), rule.TitleKeywords); n > 0 {
		score += n * cfg.Weight("content")
		reasons = append(reasons, "titles:"+strings.Join(matched, ","))
	}

	if score > 0 && len(reasons) == 0 {
		reasons = []string{"matched"}
	}
	return float64(score), reasons
}

// countMatches counts keywords appearing as case-insensitive substrings of
// value, returning the matched keywords in rule order.
func countMatches(value string, keywords []string) (int, []string) {
	if value == "" || len(keywords) == 0 {
		return 0, nil
	}
	lowered := strings.ToLower(value)
	var matched []string
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			matched = append(matched, keyword)
		}
	}
	return len(matched), matched
}

// Describe renders a score for log output.
func Describe(score models.BucketScore) string {
	return fmt.Sprintf("%s -> %s (%.0f: %s)",
		score.DocID, score.Bucket, score.Score, strings.Join(score.Reasons, "; "))
}
