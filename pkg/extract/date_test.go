package extract

import (
	"testing"
	"time"
)

func TestDateNumericSlash(t *testing.T) {
	e := NewEngine(DefaultConfig())
	got, found := e.extractDate([]string{"thanks", "Date: 03/14/2024", "bye"})
	if !found {
		t.Fatalf("expected a date")
	}
	want := time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v got %v", want, got)
	}
}

func TestDateDayFirstWhenMonthImpossible(t *testing.T) {
	e := NewEngine(DefaultConfig())
	got, found := e.extractDate([]string{"25/12/2023"})
	if !found || got.Day() != 25 || got.Month() != time.December || got.Year() != 2023 {
		t.Fatalf("expected 25 Dec 2023 got %v found=%v", got, found)
	}
}

func TestDateMonthNameForms(t *testing.T) {
	e := NewEngine(DefaultConfig())
	cases := []struct {
		line string
		want time.Time
	}{
		{"14 March 2024", time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)},
		{"Mar 14, 2024", time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)},
		{"march 14 2024", time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)},
		{"5 sept 2024", time.Date(2024, time.September, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-03-14", time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, found := e.extractDate([]string{c.line})
		if !found || !got.Equal(c.want) {
			t.Fatalf("line %q: expected %v got %v found=%v", c.line, c.want, got, found)
		}
	}
}

func TestDateFirstParseableWins(t *testing.T) {
	e := NewEngine(DefaultConfig())
	// 99/99/2024 matches the numeric shape but fails to parse; scanning
	// must continue to the next line rather than stop.
	got, found := e.extractDate([]string{"99/99/2024", "01/02/2024"})
	if !found || got.Month() != time.January || got.Day() != 2 {
		t.Fatalf("expected Jan 2 2024 got %v found=%v", got, found)
	}
}

func TestDateFallbackToNow(t *testing.T) {
	e := NewEngine(DefaultConfig())
	stub := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return stub }
	got, found := e.extractDate([]string{"no date anywhere"})
	if found {
		t.Fatalf("expected no date found")
	}
	if !got.Equal(stub) {
		t.Fatalf("expected processing-time fallback %v got %v", stub, got)
	}
}
