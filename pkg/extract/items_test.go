package extract

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestItemsLabeledRows(t *testing.T) {
	e := NewEngine(DefaultConfig())
	lines := []string{
		"CORNER MART",
		"Item  Qty  Price",
		"----------------",
		"Bagel 2 x 1.50",
		"Coffee 2.75",
		"Subtotal 5.75",
	}
	items := e.extractItems(lines)
	if len(items) != 2 {
		t.Fatalf("expected 2 items got %d: %+v", len(items), items)
	}
	// The quantity fragment stays part of the description; only leading
	// numeric codes are stripped.
	if items[0].Description != "Bagel 2 x" || !items[0].Quantity.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("unexpected first item %+v", items[0])
	}
	if !items[0].UnitPrice.Equal(decimal.RequireFromString("1.50")) {
		t.Fatalf("unexpected first item price %+v", items[0])
	}
	if items[1].Description != "Coffee" || !items[1].Quantity.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("unexpected second item %+v", items[1])
	}
}

func TestItemsWrappedDescription(t *testing.T) {
	e := NewEngine(DefaultConfig())
	lines := []string{
		"Item  Qty  Price",
		"Organic Fuji",
		"Ap 2.99",
		"Banana 0.99",
		"Total 3.98",
	}
	items := e.extractItems(lines)
	if len(items) != 2 {
		t.Fatalf("expected 2 items got %d: %+v", len(items), items)
	}
	if items[0].Description != "Organic Fuji Ap" {
		t.Fatalf("expected wrapped description stitched, got %q", items[0].Description)
	}
}

func TestItemsCodePrefixStripped(t *testing.T) {
	e := NewEngine(DefaultConfig())
	lines := []string{
		"Item  Qty  Price",
		"0042 Bread 2.50",
		"0043 Milk 3.20",
		"Total 5.70",
	}
	items := e.extractItems(lines)
	if len(items) != 2 {
		t.Fatalf("expected 2 items got %d", len(items))
	}
	if items[0].Description != "Bread" || items[1].Description != "Milk" {
		t.Fatalf("expected code prefixes stripped, got %+v", items)
	}
}

func TestItemsEscalationToLooseScan(t *testing.T) {
	e := NewEngine(DefaultConfig())
	// "Special price 3.00" repeats a header keyword, so the labeled-row
	// strategy skips it and yields only one item; the loose scan takes over
	// and returns both rows.
	lines := []string{
		"RECEIPT",
		"Item list",
		"Snack bar 4.20",
		"Special price 3.00",
		"Total 7.20",
	}
	items := e.extractItems(lines)
	if len(items) != 2 {
		t.Fatalf("expected loose scan to produce 2 items, got %d: %+v", len(items), items)
	}
	if items[1].Description != "Special price" {
		t.Fatalf("expected loose-scan item, got %+v", items[1])
	}
}

func TestItemsLooseScanSkipsLargeAmounts(t *testing.T) {
	lines := []string{"Candy 1.50", "Gift card 150.00", "Soda 2.00"}
	items := loosePriceItems(lines, 0, len(lines))
	if len(items) != 2 {
		t.Fatalf("expected large amount skipped, got %+v", items)
	}
	if items[0].Description != "Candy" || items[1].Description != "Soda" {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestItemsSplitLinePairing(t *testing.T) {
	lines := []string{"Deluxe Sandwich Combo", "6.75", "Iced Tea", "2.25"}
	items := splitLineItems(lines, 0, len(lines))
	if len(items) != 2 {
		t.Fatalf("expected 2 paired items got %d: %+v", len(items), items)
	}
	if items[0].Description != "Deluxe Sandwich Combo" ||
		!items[0].TotalPrice.Equal(decimal.RequireFromString("6.75")) {
		t.Fatalf("unexpected first pair %+v", items[0])
	}
}

func TestItemsStrategiesNeverMerge(t *testing.T) {
	e := NewEngine(DefaultConfig())
	// One lone priced row: labeled rows and the loose scan each find a
	// single item, so the chain falls through to split-line pairing, whose
	// (empty) output stands. Partial results are not merged.
	lines := []string{"MY SHOP", "Welco", "Candy 1.50", "Total 1.50"}
	items := e.extractItems(lines)
	for _, it := range items {
		if it.Description == "Candy" {
			t.Fatalf("labeled-row result leaked into final items: %+v", items)
		}
	}
}
