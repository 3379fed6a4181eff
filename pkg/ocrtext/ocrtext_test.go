package ocrtext

import "testing"

func TestReadablePlainText(t *testing.T) {
	pages := []string{"WALMART\nDate: 03/14/2024\nBread 2.50\nMilk 3.20\nTOTAL $5.70"}
	if !readable(pages) {
		t.Fatalf("expected receipt text to be readable")
	}
}

func TestReadableRejectsShortText(t *testing.T) {
	if readable([]string{"hi"}) {
		t.Fatalf("expected near-empty text to be unreadable")
	}
	if readable(nil) {
		t.Fatalf("expected no pages to be unreadable")
	}
}

func TestReadableRejectsGarbage(t *testing.T) {
	// The kind of output identity-encoded fonts produce.
	pages := []string{"ÞþÃ±å§¶ßüøæÐýîïõöäëéèêñòóô"}
	if readable(pages) {
		t.Fatalf("expected non-ascii garbage to be unreadable")
	}
}

func TestReadableMixedContent(t *testing.T) {
	// Mostly readable with a little noise should still pass.
	pages := []string{"Corner Cafe receipt total 12.50 éè"}
	if !readable(pages) {
		t.Fatalf("expected mostly-ascii text to be readable")
	}
}
