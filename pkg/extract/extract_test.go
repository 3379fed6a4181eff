package extract

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

const sampleReceipt = `WALMART
123 Main St
Date: 03/14/2024
Bread 2.50
Milk 3.20
Total 5.70`

func TestRunStructuredReceipt(t *testing.T) {
	e := NewEngine(DefaultConfig())
	r := e.Run(sampleReceipt)

	if r.MerchantName != "Walmart" {
		t.Fatalf("merchant: expected Walmart got %q", r.MerchantName)
	}
	if !r.DateFound {
		t.Fatalf("expected date found")
	}
	want := time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)
	if !r.PurchasedAt.Equal(want) {
		t.Fatalf("date: expected %v got %v", want, r.PurchasedAt)
	}
	if r.TotalAmount == nil || !r.TotalAmount.Equal(decimal.RequireFromString("5.70")) {
		t.Fatalf("total: expected 5.70 got %v", r.TotalAmount)
	}
	if r.TaxAmount != nil {
		t.Fatalf("tax: expected absent got %v", r.TaxAmount)
	}
	if r.Currency != "USD" {
		t.Fatalf("currency: expected USD got %q", r.Currency)
	}
	if len(r.Items) != 2 {
		t.Fatalf("items: expected 2 got %d: %+v", len(r.Items), r.Items)
	}
	if r.Items[0].Description != "Bread" || !r.Items[0].UnitPrice.Equal(decimal.RequireFromString("2.50")) {
		t.Fatalf("unexpected first item %+v", r.Items[0])
	}
	if r.Items[1].Description != "Milk" || !r.Items[1].UnitPrice.Equal(decimal.RequireFromString("3.20")) {
		t.Fatalf("unexpected second item %+v", r.Items[1])
	}
	if r.RawText != sampleReceipt {
		t.Fatalf("raw text not carried through")
	}
}

func TestRunNeverFails(t *testing.T) {
	e := NewEngine(DefaultConfig())
	stub := time.Date(2026, time.September, 1, 9, 30, 0, 0, time.UTC)
	e.now = func() time.Time { return stub }

	for _, input := range []string{"", "\n\n\n", "   ", "!!! ??? %%%"} {
		r := e.Run(input)
		if r.MerchantName != "Unknown Merchant" {
			t.Fatalf("input %q: merchant %q", input, r.MerchantName)
		}
		if r.DateFound || !r.PurchasedAt.Equal(stub) {
			t.Fatalf("input %q: expected clock fallback, got %v found=%v", input, r.PurchasedAt, r.DateFound)
		}
		if r.TotalAmount != nil || r.TaxAmount != nil {
			t.Fatalf("input %q: expected no amounts", input)
		}
		if r.Currency != "USD" || r.PaymentMethod != "Unknown" {
			t.Fatalf("input %q: expected defaults, got %q/%q", input, r.Currency, r.PaymentMethod)
		}
		if len(r.Items) != 0 {
			t.Fatalf("input %q: expected no items", input)
		}
	}
}

func TestRunIdempotent(t *testing.T) {
	e := NewEngine(DefaultConfig())
	// Pin the clock so the date fallback cannot differ between runs.
	stub := time.Date(2026, time.September, 1, 9, 30, 0, 0, time.UTC)
	e.now = func() time.Time { return stub }

	a := e.Run(sampleReceipt)
	b := e.Run(sampleReceipt)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("runs differ:\n%+v\n%+v", a, b)
	}
}

func TestRunTotalPriceNotReconciled(t *testing.T) {
	e := NewEngine(DefaultConfig())
	r := e.Run("ACME\nItem Qty Price\nWidget 3 x 2.00\nTrinket 1.00\nTotal 7.00")
	if len(r.Items) != 2 {
		t.Fatalf("expected 2 items got %+v", r.Items)
	}
	it := r.Items[0]
	if !it.Quantity.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("expected quantity 3 got %s", it.Quantity)
	}
	// TotalPrice is what the row said, not Quantity*UnitPrice.
	if !it.TotalPrice.Equal(decimal.RequireFromString("2.00")) {
		t.Fatalf("expected parsed total 2.00 got %s", it.TotalPrice)
	}
}
