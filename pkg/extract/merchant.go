package extract

import "strings"

// extractMerchant identifies the vendor from the header region (first 10
// lines). Known vendors win immediately, by containment or fuzzy similarity
// above 80. Failing that, lines flagged by a storefront hint with 2-5 words
// become candidates and the shortest one wins, ties broken by first
// occurrence; shorter matches are less likely to drag in trailing noise.
// The last resorts are the first line, or "Unknown Merchant" when the
// receipt has fewer than two lines.
func (e *Engine) extractMerchant(lines []string) string {
	limit := len(lines)
	if limit > 10 {
		limit = 10
	}

	var candidates []string
	for _, line := range lines[:limit] {
		low := strings.ToLower(line)
		for _, vendor := range e.cfg.Vendors {
			if strings.Contains(low, vendor) || e.Similarity(vendor, low) > 80 {
				return titleCase(vendor)
			}
		}
		if containsAny(low, e.cfg.StorefrontHints) {
			words := strings.Fields(low)
			if len(words) > 1 && len(words) < 6 {
				candidates = append(candidates, strings.Join(words, " "))
			}
		}
	}

	if len(candidates) > 0 {
		best := candidates[0]
		for _, c := range candidates[1:] {
			if len(c) < len(best) {
				best = c
			}
		}
		return titleCase(best)
	}

	if len(lines) >= 2 {
		return titleCase(lines[0])
	}
	return "Unknown Merchant"
}
