package extract

import (
	"regexp"
	"strings"
	"time"
)

const monthAlt = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*`

var numericDateLayouts = []string{
	"1/2/2006", "1/2/06", "2/1/2006", "2/1/06",
	"1-2-2006", "1-2-06", "2-1-2006", "2-1-06",
}

var dayMonthLayouts = []string{
	"2 January 2006", "2 Jan 2006", "2 January 06", "2 Jan 06",
}

// dateShapes is the fixed ordered list of date patterns. A shape with a
// capture group anchors the date to a keyword and parses only the group;
// otherwise the whole match is parsed. Order matters: within a line, shapes
// are tried top to bottom.
var dateShapes = []struct {
	re      *regexp.Regexp
	layouts []string
}{
	{regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`), numericDateLayouts},
	{regexp.MustCompile(`(?i)\d{1,2}\s+` + monthAlt + `\s+\d{2,4}`), dayMonthLayouts},
	{regexp.MustCompile(`(?i)` + monthAlt + `\s+\d{1,2},\s*\d{2,4}`),
		[]string{"January 2, 2006", "Jan 2, 2006", "January 2, 06", "Jan 2, 06"}},
	{regexp.MustCompile(`(?i)` + monthAlt + `\s+\d{1,2}\s+\d{2,4}`),
		[]string{"January 2 2006", "Jan 2 2006", "January 2 06", "Jan 2 06"}},
	{regexp.MustCompile(`\b\d{4}[/-]\d{1,2}[/-]\d{1,2}\b`),
		[]string{"2006-1-2", "2006/1/2"}},
	{regexp.MustCompile(`(?i)date:?\s+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`), numericDateLayouts},
	{regexp.MustCompile(`(?i)date:?\s+(\d{1,2}\s+` + monthAlt + `\s+\d{2,4})`), dayMonthLayouts},
}

// extractDate scans every line in document order and tries the shape list on
// each; the first match that also parses into a calendar date wins and
// scanning stops. Shape matches that fail to parse are skipped silently.
// When nothing parses, the current processing time is returned with found
// set to false; an unreadable date is a normal outcome, not an error.
func (e *Engine) extractDate(lines []string) (t time.Time, found bool) {
	for _, line := range lines {
		for _, shape := range dateShapes {
			m := shape.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			token := m[0]
			if len(m) > 1 {
				token = m[1]
			}
			if parsed, ok := parseDateToken(token, shape.layouts); ok {
				return parsed, true
			}
		}
	}
	return e.now(), false
}

// parseDateToken normalizes a matched date fragment and tries each layout.
// OCR month names come through in arbitrary case and length ("MAR", "sept"),
// so the token is canonicalized first and, when the full month name fails,
// retried with the month clipped to its three-letter form.
func parseDateToken(token string, layouts []string) (time.Time, bool) {
	token = canonicalDateToken(token)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, token); err == nil {
			return t, true
		}
	}
	if clipped := clipMonth(token); clipped != token {
		for _, layout := range layouts {
			if t, err := time.Parse(layout, clipped); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// canonicalDateToken collapses whitespace and capitalizes alphabetic words
// so "14 march 2024" parses against the "2 January 2006" layout.
func canonicalDateToken(token string) string {
	fields := strings.Fields(token)
	for i, f := range fields {
		if f == "" || !isLetter(rune(f[0])) {
			continue
		}
		fields[i] = strings.ToUpper(f[:1]) + strings.ToLower(f[1:])
	}
	return strings.Join(fields, " ")
}

// clipMonth truncates an alphabetic month word longer than three letters to
// its three-letter prefix, turning "Sept 5 2024" into "Sep 5 2024".
func clipMonth(token string) string {
	fields := strings.Fields(token)
	for i, f := range fields {
		trailing := strings.TrimRight(f, ",")
		if len(trailing) > 3 && isLetter(rune(trailing[0])) {
			fields[i] = trailing[:3] + f[len(trailing):]
		}
	}
	return strings.Join(fields, " ")
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
