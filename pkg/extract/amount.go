package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount patterns in fixed priority order: a currency-symbol prefix is the
// strongest signal, then amount-then-symbol, then keyword-anchored numbers,
// and finally any bare cents-shaped number as a last resort. The first
// pattern that matches wins; within a pattern the leftmost match wins.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[$€£¥]\s*(\d+[.,]\d{2})`),
	regexp.MustCompile(`(\d+[.,]\d{2})\s*[$€£¥]`),
	regexp.MustCompile(`total:?\s*[$€£¥]?\s*(\d+[.,]\d{2})`),
	regexp.MustCompile(`amount:?\s*[$€£¥]?\s*(\d+[.,]\d{2})`),
	regexp.MustCompile(`[$€£¥]?\s*(\d+[.,]\d{2})`),
}

// ExtractAmount pulls a monetary value out of an arbitrary text fragment.
// Matching is case-insensitive (the fragment is lowercased internally) and a
// comma decimal separator is normalized to a period. Returns false when no
// pattern matches or the captured digits fail to convert; a failed
// conversion falls through to the next pattern rather than aborting.
func ExtractAmount(fragment string) (decimal.Decimal, bool) {
	low := strings.ToLower(fragment)
	for _, re := range amountPatterns {
		m := re.FindStringSubmatch(low)
		if len(m) < 2 {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", ".")
		amt, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		return amt, true
	}
	return decimal.Decimal{}, false
}
