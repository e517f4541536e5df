package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12.34", "12.34", true},
		{"12,34", "12.34", true},
		{"12.345", "12.345", true}, // full precision kept
		{"3", "3", true},
		{" 0.01 ", "0.01", true},
		{"", "", false},
		{"0", "", false},
		{"-5", "", false},
		{"+5", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
	}
	for i, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("case %d (%q): unexpected error %v", i, tc.in, err)
			}
			if got.String() != tc.want {
				t.Fatalf("case %d (%q): got %s, want %s", i, tc.in, got, tc.want)
			}
			continue
		}
		if err == nil {
			t.Fatalf("case %d (%q): expected error, got %s", i, tc.in, got)
		}
	}
}

func TestSumAmounts(t *testing.T) {
	if got := SumAmounts(nil); !got.Equal(decimal.Zero) {
		t.Fatalf("empty sum: got %s, want 0", got)
	}

	expenses := []Expense{
		{Amount: decimal.RequireFromString("0.1")},
		{Amount: decimal.RequireFromString("0.2")},
		{Amount: decimal.RequireFromString("10")},
	}
	// Exact decimal arithmetic: 0.1 + 0.2 is 0.3, not 0.30000000000000004.
	if got := SumAmounts(expenses); got.String() != "10.3" {
		t.Fatalf("got %s, want 10.3", got)
	}
}
