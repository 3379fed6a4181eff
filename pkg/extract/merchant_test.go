package extract

import "testing"

func TestMerchantKnownVendor(t *testing.T) {
	e := NewEngine(DefaultConfig())
	lines := []string{"WALMART", "123 Main St", "Total 5.70"}
	got := e.extractMerchant(lines)
	if got != "Walmart" {
		t.Fatalf("expected Walmart got %q", got)
	}
}

func TestMerchantFuzzyVendor(t *testing.T) {
	e := NewEngine(DefaultConfig())
	// Containment fails on the OCR-mangled spelling; the similarity
	// capability decides.
	e.Similarity = func(a, b string) int {
		if a == "walmart" {
			return 92
		}
		return 0
	}
	lines := []string{"WAL-MART SUPERCENTER", "123 Main St"}
	if got := e.extractMerchant(lines); got != "Walmart" {
		t.Fatalf("expected fuzzy vendor hit, got %q", got)
	}
}

func TestMerchantStorefrontShortestCandidate(t *testing.T) {
	e := NewEngine(DefaultConfig())
	e.Similarity = func(a, b string) int { return 0 }
	lines := []string{
		"welcome to riverside grill house",
		"corner cafe",
		"receipt",
	}
	// Both hint lines qualify (2-5 words); the shorter candidate wins.
	if got := e.extractMerchant(lines); got != "Corner Cafe" {
		t.Fatalf("expected Corner Cafe got %q", got)
	}
}

func TestMerchantFirstLineFallback(t *testing.T) {
	e := NewEngine(DefaultConfig())
	e.Similarity = func(a, b string) int { return 0 }
	lines := []string{"ACME SUPPLIES", "receipt #42"}
	if got := e.extractMerchant(lines); got != "Acme Supplies" {
		t.Fatalf("expected Acme Supplies got %q", got)
	}
}

func TestMerchantUnknownOnShortInput(t *testing.T) {
	e := NewEngine(DefaultConfig())
	e.Similarity = func(a, b string) int { return 0 }
	if got := e.extractMerchant([]string{"just one line"}); got != "Unknown Merchant" {
		t.Fatalf("expected Unknown Merchant got %q", got)
	}
	if got := e.extractMerchant(nil); got != "Unknown Merchant" {
		t.Fatalf("expected Unknown Merchant on empty input got %q", got)
	}
}

func TestMerchantCustomVendorTable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Vendors = []string{"blue bottle"}
	e := NewEngine(cfg)
	e.Similarity = func(a, b string) int { return 0 }
	lines := []string{"BLUE BOTTLE COFFEE", "oakland ca"}
	if got := e.extractMerchant(lines); got != "Blue Bottle" {
		t.Fatalf("expected custom vendor table hit, got %q", got)
	}
}
