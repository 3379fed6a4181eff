package extract

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTotalKeywordLineWins(t *testing.T) {
	e := NewEngine(DefaultConfig())
	lines := []string{"Bread 2.50", "Milk 3.20", "TOTAL 5.70", "Cash 10.00"}
	amt, ok := e.extractTotal(lines)
	if !ok || !amt.Equal(decimal.RequireFromString("5.70")) {
		t.Fatalf("expected 5.70 got %s ok=%v", amt, ok)
	}
}

func TestTotalFallbackMaxOfTail(t *testing.T) {
	e := NewEngine(DefaultConfig())
	// No keyword line carries an amount; the tail pass keeps the maximum.
	lines := []string{"corner shop", "4.00", "12.50", "7.25"}
	amt, ok := e.extractTotal(lines)
	if !ok || !amt.Equal(decimal.RequireFromString("12.50")) {
		t.Fatalf("expected 12.50 got %s ok=%v", amt, ok)
	}
}

func TestTotalNothingFound(t *testing.T) {
	e := NewEngine(DefaultConfig())
	if amt, ok := e.extractTotal([]string{"thanks for visiting"}); ok {
		t.Fatalf("expected no total, got %s", amt)
	}
	if _, ok := e.extractTotal(nil); ok {
		t.Fatalf("expected no total on empty input")
	}
}

func TestTaxKeywordLine(t *testing.T) {
	e := NewEngine(DefaultConfig())
	lines := []string{"Subtotal 10.00", "Sales Tax 0.83", "Total 10.83"}
	amt, ok := e.extractTax(lines)
	if !ok || !amt.Equal(decimal.RequireFromString("0.83")) {
		t.Fatalf("expected 0.83 got %s ok=%v", amt, ok)
	}
}

func TestTaxHasNoFallback(t *testing.T) {
	e := NewEngine(DefaultConfig())
	// Amounts exist but no tax keyword does; tax stays absent.
	lines := []string{"Bread 2.50", "Milk 3.20"}
	if amt, ok := e.extractTax(lines); ok {
		t.Fatalf("expected no tax, got %s", amt)
	}
}
