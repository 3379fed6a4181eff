package extract

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestExtractAmountSymbolPrefix(t *testing.T) {
	amt, ok := ExtractAmount("$12.34 due")
	if !ok || !amt.Equal(decimal.RequireFromString("12.34")) {
		t.Fatalf("expected 12.34 got %s ok=%v", amt, ok)
	}
}

func TestExtractAmountCommaDecimal(t *testing.T) {
	amt, ok := ExtractAmount("Total: 9,50")
	if !ok || !amt.Equal(decimal.RequireFromString("9.50")) {
		t.Fatalf("expected 9.50 got %s ok=%v", amt, ok)
	}
}

func TestExtractAmountNoMatch(t *testing.T) {
	if amt, ok := ExtractAmount("no numbers here"); ok {
		t.Fatalf("expected no amount, got %s", amt)
	}
	if _, ok := ExtractAmount(""); ok {
		t.Fatalf("expected no amount from empty fragment")
	}
}

func TestExtractAmountPatternPriority(t *testing.T) {
	// A symbol-prefixed amount later in the fragment beats an earlier bare one.
	amt, ok := ExtractAmount("ref 12.34 paid $56.78")
	if !ok || !amt.Equal(decimal.RequireFromString("56.78")) {
		t.Fatalf("expected symbol-prefixed 56.78 to win, got %s ok=%v", amt, ok)
	}
}

func TestExtractAmountSymbolSuffix(t *testing.T) {
	amt, ok := ExtractAmount("7,20 € danke")
	if !ok || !amt.Equal(decimal.RequireFromString("7.20")) {
		t.Fatalf("expected 7.20 got %s ok=%v", amt, ok)
	}
}
