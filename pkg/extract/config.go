package extract

import "regexp"

// CurrencyPattern maps an ISO currency code to its detection pattern. The
// declaration order of the currency table is significant: currencies are
// checked in order, so a line carrying both "$" and "€" resolves to whichever
// code comes first.
type CurrencyPattern struct {
	Code    string
	Pattern *regexp.Regexp
}

// Config holds the heuristic vocabularies the engine matches against. The
// tables are injected at construction instead of hidden in the extractors so
// tests and deployments can substitute their own.
type Config struct {
	// Vendors is a lowercase list of known merchant names checked against
	// the receipt header by containment and fuzzy similarity.
	Vendors []string

	// StorefrontHints are phrases that mark a header line as a likely
	// merchant name candidate ("welcome to", "store", ...).
	StorefrontHints []string

	// PaymentMethods is the lowercase payment vocabulary, checked in order.
	PaymentMethods []string

	Currencies []CurrencyPattern

	// TotalKeywords anchor lines carrying the transaction total; TaxKeywords
	// the tax amount.
	TotalKeywords []string
	TaxKeywords   []string

	// ItemHeaderKeywords mark the header row of the item table,
	// ItemEndKeywords the totals block that terminates it.
	ItemHeaderKeywords []string
	ItemEndKeywords    []string
}

// DefaultConfig returns the stock vocabularies: common US retail merchants,
// card networks and wallets, and the usual receipt section keywords.
func DefaultConfig() Config {
	return Config{
		Vendors: []string{
			"walmart", "target", "costco", "kroger", "amazon", "starbucks",
			"mcdonald's", "subway", "cvs", "walgreens", "cheesecake factory",
			"burger king", "pizza hut", "taco bell", "home depot", "lowes",
			"best buy", "staples", "office depot", "whole foods", "trader joe's",
		},
		StorefrontHints: []string{"welcome to", "store", "restaurant", "cafe", "shop"},
		PaymentMethods: []string{
			"credit", "debit", "cash", "visa", "mastercard", "amex",
			"american express", "discover", "check", "apple pay", "google pay",
			"paypal",
		},
		Currencies: []CurrencyPattern{
			{Code: "USD", Pattern: regexp.MustCompile(`\$|\bUSD\b|\bUS\s*dollar\b`)},
			{Code: "EUR", Pattern: regexp.MustCompile(`€|\bEUR\b|\bEuro\b`)},
			{Code: "GBP", Pattern: regexp.MustCompile(`£|\bGBP\b|\bPound\b`)},
			{Code: "JPY", Pattern: regexp.MustCompile(`¥|\bJPY\b|\bYen\b`)},
		},
		TotalKeywords:      []string{"total", "amount", "sum", "balance", "due", "charge"},
		TaxKeywords:        []string{"tax", "vat", "gst", "hst", "sales tax"},
		ItemHeaderKeywords: []string{"item", "qty", "description", "price", "amount"},
		ItemEndKeywords:    []string{"subtotal", "total", "tax", "balance", "due", "payment"},
	}
}
