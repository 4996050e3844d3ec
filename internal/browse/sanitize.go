// Package browse implements the read-side helpers for catalog and history
// views: query sanitization, case-insensitive filtering, locale-aware
// sorting, and fixed-size pagination.
package browse

import "strings"

// sanitizer escapes the HTML metacharacters a query string could smuggle
// into a rendered page. A query containing markup therefore matches
// literally (usually nothing) and is never a rendering hazard.
var sanitizer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// Sanitize neutralizes HTML metacharacters in user-supplied input.
func Sanitize(input string) string {
	return sanitizer.Replace(input)
}

// NormalizeQuery prepares a raw search query for matching: trimmed,
// lowercased, and sanitized.
func NormalizeQuery(query string) string {
	return Sanitize(strings.ToLower(strings.TrimSpace(query)))
}
