// Package extract turns raw OCR text from a scanned purchase receipt into a
// structured record: merchant, purchase date, total and tax amounts, currency,
// payment method and line items. Receipts have no reliable grammar, so every
// field is recovered by layered heuristics with explicit tie-breaks; the
// engine never fails, it degrades to documented defaults instead.
//
// Item TotalPrice is parsed from the text on its own, it is NOT reconciled
// against Quantity*UnitPrice. OCR rows rarely carry enough signal to derive
// one from the other, so disagreement between them is tolerated on purpose.
package extract

import (
	"time"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"github.com/shopspring/decimal"
)

// SimilarityFunc scores textual closeness of two strings on a 0-100 scale.
// Used for tolerant vendor name matching against OCR noise.
type SimilarityFunc func(a, b string) int

// Item is one purchased row of the receipt.
type Item struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

// Receipt is the structured result of one extraction run. TotalAmount and
// TaxAmount are nil when the text yields no plausible figure; every other
// field falls back to a default so the record is always complete.
type Receipt struct {
	MerchantName string
	PurchasedAt  time.Time
	// DateFound is false when PurchasedAt is the processing-time fallback
	// rather than a date read off the receipt.
	DateFound     bool
	TotalAmount   *decimal.Decimal
	TaxAmount     *decimal.Decimal
	PaymentMethod string
	Currency      string
	Items         []Item
	RawText       string
}

// Engine runs the extraction heuristics over one receipt at a time. The
// field extractors only read the shared normalized line slice, so a single
// Engine is safe for concurrent Run calls.
type Engine struct {
	cfg Config

	// Similarity may be swapped out before use; defaults to fuzzywuzzy's
	// partial ratio.
	Similarity SimilarityFunc

	now func() time.Time
}

// NewEngine builds an engine around the given heuristic tables. Use
// DefaultConfig for the stock vocabularies.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg:        cfg,
		Similarity: fuzzy.PartialRatio,
		now:        time.Now,
	}
}

// Run extracts all receipt fields from raw OCR text. It always returns a
// complete Receipt: empty or garbage input produces the documented defaults
// ("Unknown Merchant", processing time, USD, "Unknown" payment, no items).
func (e *Engine) Run(rawText string) Receipt {
	lines := normalizeLines(rawText)

	merchant := e.extractMerchant(lines)
	purchasedAt, dateFound := e.extractDate(lines)
	total, totalOK := e.extractTotal(lines)
	tax, taxOK := e.extractTax(lines)
	payment := e.extractPaymentMethod(lines)
	currency := e.extractCurrency(lines)
	items := e.extractItems(lines)

	// Safety net against a malformed date slipping through: a zero time is
	// never a valid purchase timestamp.
	if purchasedAt.IsZero() {
		purchasedAt = e.now()
		dateFound = false
	}

	r := Receipt{
		MerchantName:  merchant,
		PurchasedAt:   purchasedAt,
		DateFound:     dateFound,
		PaymentMethod: payment,
		Currency:      currency,
		Items:         items,
		RawText:       rawText,
	}
	if totalOK {
		r.TotalAmount = &total
	}
	if taxOK {
		r.TaxAmount = &tax
	}
	return r
}
