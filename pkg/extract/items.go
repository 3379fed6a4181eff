package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	priceRE      = regexp.MustCompile(`\$?\s*(\d+\.\d{2})`)
	quantityRE   = regexp.MustCompile(`(?i)(\d+)\s*(?:x|@|ea)`)
	codePrefixRE = regexp.MustCompile(`^\d+\s+`)

	one = decimal.NewFromInt(1)

	// Amounts at or above this are treated as subtotal/total noise rather
	// than item prices by the loose strategies.
	subtotalCutoff = decimal.NewFromInt(100)
)

// itemStrategy parses candidate line items out of the window lines[start:end].
// Strategies may look one line above their current position for wrapped
// descriptions, which is why they receive the full line slice.
type itemStrategy func(lines []string, start, end int) []Item

// extractItems segments the item table and parses its rows. The three
// strategies are escalating fallbacks evaluated in order: the first one
// producing at least two items supplies the final result and the rest never
// run. Results are never merged across strategies; if none reaches two
// items, the last strategy's output stands.
func (e *Engine) extractItems(lines []string) []Item {
	start, end := e.itemWindow(lines)

	strategies := []itemStrategy{
		e.labeledRowItems,
		loosePriceItems,
		splitLineItems,
	}

	var items []Item
	for _, strategy := range strategies {
		items = strategy(lines, start, end)
		if len(items) >= 2 {
			break
		}
	}
	return filterItems(items)
}

// itemWindow locates the contiguous line range believed to hold the item
// table. The section starts after the first header-keyword line, or at
// min(5, lastIndex) when no header exists, and ends at the first totals
// keyword or the end of the document. On short receipts the headerless
// guess can land inside the totals block and leave an empty window; the
// scan then restarts from the top instead of giving up on the table.
func (e *Engine) itemWindow(lines []string) (start, end int) {
	start = -1
	for i, line := range lines {
		if containsAny(strings.ToLower(line), e.cfg.ItemHeaderKeywords) {
			start = i + 1
			break
		}
	}
	headerFound := start != -1
	if !headerFound {
		start = len(lines) - 1
		if start > 5 {
			start = 5
		}
		if start < 0 {
			start = 0
		}
	}

	end = e.windowEnd(lines, start)
	if !headerFound && end <= start {
		start = 0
		end = e.windowEnd(lines, 0)
	}
	return start, end
}

func (e *Engine) windowEnd(lines []string, start int) int {
	for i := start; i < len(lines); i++ {
		if containsAny(strings.ToLower(lines[i]), e.cfg.ItemEndKeywords) {
			return i
		}
	}
	return len(lines)
}

// labeledRowItems is the preferred strategy: rows carrying a price-shaped
// fragment, with the preceding text as description. Divider lines and
// repeats of the table header are skipped. A description shorter than three
// characters pulls in the previous line, which stitches wrapped
// descriptions the OCR split across lines. An optional "N x"/"N @"/"N ea"
// fragment sets the quantity, defaulting to one.
func (e *Engine) labeledRowItems(lines []string, start, end int) []Item {
	var items []Item
	for i := start; i < end; i++ {
		line := lines[i]
		low := strings.ToLower(line)
		if isDivider(line) || containsAny(low, e.cfg.ItemHeaderKeywords) {
			continue
		}

		loc := priceRE.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		price, err := decimal.NewFromString(line[loc[2]:loc[3]])
		if err != nil {
			continue
		}

		desc := strings.TrimSpace(line[:loc[0]])
		if len(desc) < 3 && i > start {
			desc = strings.TrimSpace(lines[i-1] + " " + desc)
		}

		qty := one
		if m := quantityRE.FindStringSubmatch(line); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				qty = decimal.NewFromInt(int64(n))
			}
		}

		if len(desc) >= 2 {
			items = append(items, Item{
				Description: desc,
				Quantity:    qty,
				UnitPrice:   price,
				TotalPrice:  price,
			})
		}
	}
	return items
}

// loosePriceItems rescans the window for any price-shaped fragment, with no
// header or divider filtering. Amounts at or above the subtotal cutoff are
// skipped as likely totals noise, and the quantity is fixed at one.
func loosePriceItems(lines []string, start, end int) []Item {
	var items []Item
	for i := start; i < end; i++ {
		line := lines[i]
		m := priceRE.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		price, err := decimal.NewFromString(line[m[2]:m[3]])
		if err != nil || price.GreaterThanOrEqual(subtotalCutoff) {
			continue
		}

		desc := strings.TrimSpace(line[:m[0]])
		if len(desc) < 2 && i > 0 {
			desc = strings.TrimSpace(lines[i-1])
		}
		if len(desc) >= 2 {
			items = append(items, Item{
				Description: desc,
				Quantity:    one,
				UnitPrice:   price,
				TotalPrice:  price,
			})
		}
	}
	return items
}

// splitLineItems pairs adjacent lines where the first carries no price and
// the second does, a layout some printers use for long item names. The
// first line becomes the description, the second line's price the amount.
func splitLineItems(lines []string, start, end int) []Item {
	var items []Item
	for i := start; i < end-1; i++ {
		cur := lines[i]
		next := lines[i+1]
		if priceRE.MatchString(cur) {
			continue
		}
		m := priceRE.FindStringSubmatch(next)
		if m == nil {
			continue
		}
		price, err := decimal.NewFromString(m[1])
		if err != nil || price.GreaterThanOrEqual(subtotalCutoff) {
			continue
		}
		if len(cur) >= 2 {
			items = append(items, Item{
				Description: cur,
				Quantity:    one,
				UnitPrice:   price,
				TotalPrice:  price,
			})
		}
	}
	return items
}

// filterItems drops collected items whose description is still too short to
// be real, then strips leading numeric code prefixes ("0042 BREAD" ->
// "BREAD"). Order is preserved.
func filterItems(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if len(it.Description) <= 2 {
			continue
		}
		it.Description = codePrefixRE.ReplaceAllString(it.Description, "")
		out = append(out, it)
	}
	return out
}

// isDivider reports whether the line is purely divider characters.
func isDivider(line string) bool {
	for _, r := range line {
		if r != '-' && r != '=' && r != '*' {
			return false
		}
	}
	return len(line) > 0
}
