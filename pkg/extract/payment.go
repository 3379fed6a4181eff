package extract

import (
	"regexp"
	"strings"
)

// Keyword-anchored payment patterns, applied only when no vocabulary term
// appears anywhere. Matched against lowercased lines.
var paymentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`paid\s+by\s+([a-z\s]+)`),
	regexp.MustCompile(`payment:?\s+([a-z\s]+)`),
	regexp.MustCompile(`payment\s+method:?\s+([a-z\s]+)`),
}

// extractPaymentMethod scans for a known payment term first (first line in
// document order wins, vocabulary order breaks ties within a line). The
// second pass captures free text after "paid by" / "payment:" anchors,
// accepted when longer than two characters. Falls back to "Unknown".
func (e *Engine) extractPaymentMethod(lines []string) string {
	for _, line := range lines {
		low := strings.ToLower(line)
		for _, method := range e.cfg.PaymentMethods {
			if strings.Contains(low, method) {
				return titleCase(method)
			}
		}
	}

	for _, line := range lines {
		low := strings.ToLower(line)
		for _, re := range paymentPatterns {
			m := re.FindStringSubmatch(low)
			if len(m) < 2 {
				continue
			}
			method := strings.TrimSpace(m[1])
			if len(method) > 2 {
				return titleCase(method)
			}
		}
	}

	return "Unknown"
}
