package core

import (
	"testing"
	"time"
)

func TestLocalTimestamp(t *testing.T) {
	ts := time.Date(2026, 2, 15, 14, 34, 5, 7_000_000, time.Local)
	if got := LocalTimestamp(ts); got != "2026-02-15T14:34:05.007" {
		t.Fatalf("got %q", got)
	}
	if got := LocalDate(ts); got != "2026-02-15" {
		t.Fatalf("got %q", got)
	}
}

func TestDateOf(t *testing.T) {
	if got := DateOf("2026-02-15T09:00:00.000"); got != "2026-02-15" {
		t.Fatalf("got %q", got)
	}
	// Shorter than a date: returned untouched
	if got := DateOf("garbage"); got != "garbage" {
		t.Fatalf("got %q", got)
	}
}

func TestPreviousDate(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2026-02-15", "2026-02-14"},
		{"2026-03-01", "2026-02-28"},
		{"2024-03-01", "2024-02-29"}, // leap year
		{"2026-01-01", "2025-12-31"}, // year rollover
		{"not-a-date", "not-a-date"},
	}
	for i, tc := range cases {
		if got := PreviousDate(tc.in); got != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, got, tc.want)
		}
	}
}
