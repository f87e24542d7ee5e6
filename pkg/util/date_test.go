package util

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-01-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year() != 2025 || got.Month() != time.January || got.Day() != 15 {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParseDateInvalid(t *testing.T) {
	if _, err := ParseDate("15/01/2025"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 11, 23, 59, 0, 0, time.UTC)
	if d := DaysBetween(from, to); d != 10 {
		t.Fatalf("expected 10 days, got %d", d)
	}
}

func TestDaysBetweenIgnoresClock(t *testing.T) {
	// Same calendar day at different wall-clock times is zero days apart.
	from := time.Date(2025, 3, 1, 0, 1, 0, 0, time.UTC)
	to := time.Date(2025, 3, 1, 23, 58, 0, 0, time.UTC)
	if d := DaysBetween(from, to); d != 0 {
		t.Fatalf("expected 0 days, got %d", d)
	}
}

func TestNormalizeTicker(t *testing.T) {
	if got := NormalizeTicker("  aapl \n"); got != "AAPL" {
		t.Fatalf("unexpected normalization %q", got)
	}
}
