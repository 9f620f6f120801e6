package source

import (
	"fmt"
	"hash/fnv"
	"html"
	"regexp"
	"strings"
)

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// extractText converts an HTML or HTML-encoded string to plain text.
// Unescapes entities first (no-op on plain text), strips tags, then
// collapses whitespace.
func extractText(content string) string {
	unescaped := html.UnescapeString(content)
	plain := htmlTagRegex.ReplaceAllString(unescaped, "")
	return strings.Join(strings.Fields(plain), " ")
}

// titleSeparators are tried in order against a freeform feed title like
// "Senior Go Engineer @ Acme". First match wins.
var titleSeparators = []string{" @ ", " at ", " - "}

// splitTitleCompany extracts (title, company) from a combined title string.
// Falls back to the whole string and "Unknown" when no separator matches.
func splitTitleCompany(combined string) (string, string) {
	for _, sep := range titleSeparators {
		if idx := strings.Index(combined, sep); idx > 0 {
			title := strings.TrimSpace(combined[:idx])
			company := strings.TrimSpace(combined[idx+len(sep):])
			if title != "" && company != "" {
				return title, company
			}
		}
	}
	return strings.TrimSpace(combined), "Unknown"
}

// hashKey generates a deterministic last-resort native key for sources that
// expose no usable ID. FNV-32a: cheap, stable, collision-tolerant enough for
// a dedup key scoped to one source.
func hashKey(s string) string {
	h := fnv.New32a()
	h.Write([]byte(s))
	return fmt.Sprintf("%08x", h.Sum32())
}
