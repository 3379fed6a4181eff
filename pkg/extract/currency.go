package extract

// extractCurrency infers a currency code from symbols or keywords. The
// currency table is iterated in its declared order and for each entry every
// line is checked, so a document carrying ambiguous symbols always resolves
// to the earliest declared currency. Defaults to USD.
func (e *Engine) extractCurrency(lines []string) string {
	for _, cp := range e.cfg.Currencies {
		for _, line := range lines {
			if cp.Pattern.MatchString(line) {
				return cp.Code
			}
		}
	}
	return "USD"
}
