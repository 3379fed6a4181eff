package extract

import (
	"strings"

	"github.com/shopspring/decimal"
)

// tailWindow is how many trailing lines the total fallback pass scans.
const tailWindow = 15

// extractTotal locates the transaction total. The keyword pass runs first:
// the first keyword-bearing line that yields an amount wins, in document
// order. With no keyword hit, the fallback parses every line of the tail
// window and keeps the maximum; the grand total is usually the largest
// figure near the bottom of the receipt.
func (e *Engine) extractTotal(lines []string) (decimal.Decimal, bool) {
	for _, line := range lines {
		if !containsAny(strings.ToLower(line), e.cfg.TotalKeywords) {
			continue
		}
		if amt, ok := ExtractAmount(line); ok {
			return amt, true
		}
	}

	start := len(lines) - tailWindow
	if start < 0 {
		start = 0
	}
	var best decimal.Decimal
	found := false
	for _, line := range lines[start:] {
		amt, ok := ExtractAmount(line)
		if !ok {
			continue
		}
		if !found || amt.GreaterThan(best) {
			best = amt
			found = true
		}
	}
	return best, found
}

// extractTax finds the tax amount by keyword anchoring only. There is no
// fallback pass: unlike the total, tax is often genuinely absent and
// guessing one from loose numbers would invent data.
func (e *Engine) extractTax(lines []string) (decimal.Decimal, bool) {
	for _, line := range lines {
		if !containsAny(strings.ToLower(line), e.cfg.TaxKeywords) {
			continue
		}
		if amt, ok := ExtractAmount(line); ok {
			return amt, true
		}
	}
	return decimal.Decimal{}, false
}
