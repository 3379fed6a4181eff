package extract

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// normalizeLines splits raw OCR output into trimmed, non-empty lines in
// document reading order. Empty input yields an empty slice; downstream
// extractors must treat that as "nothing found", not as an error.
func normalizeLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// titleCase capitalizes each word. A fresh caser per call: cases.Caser is
// not safe for concurrent use.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// containsAny reports whether s contains any of the given lowercase keywords.
// s must already be lowercased by the caller.
func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
