package scanner

import "regexp"

// Masking patterns applied to every retained text sample. Samples flow into
// rule matching and exported artifacts, so absolute paths, email addresses,
// and long digit runs (ids, phone numbers, card fragments) are scrubbed
// before anything downstream sees them.
var (
	pathPattern  = regexp.MustCompile(`[A-Za-z]:\\+\S+|/\S+`)
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	digitPattern = regexp.MustCompile(`\d{4,}`)
)

// maskSensitive replaces sensitive substrings in order: paths first (which
// also removes emails embedded in them), then standalone emails, then digit
// runs.
func maskSensitive(text string) string {
	masked := pathPattern.ReplaceAllString(text, "[PATH]")
	masked = emailPattern.ReplaceAllString(masked, "[EMAIL]")
	masked = digitPattern.ReplaceAllString(masked, "####")
	return masked
}
