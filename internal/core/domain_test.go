package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCurrencyValidate(t *testing.T) {
	for _, c := range Currencies {
		if err := c.Validate(); err != nil {
			t.Fatalf("expected %s valid, got %v", c, err)
		}
	}
	if err := Currency("EUR").Validate(); err == nil {
		t.Fatalf("expected error for unsupported currency")
	}
}

func TestCurrencySymbol(t *testing.T) {
	cases := []struct {
		c    Currency
		want string
	}{
		{CAD, "$"},
		{USD, "$"},
		{NPR, "Rs"},
		{GBP, "£"},
		{Currency("XYZ"), "XYZ"}, // fallback to the code itself
	}
	for i, tc := range cases {
		if got := tc.c.Symbol(); got != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, got, tc.want)
		}
	}
}

func TestCategoryValidate(t *testing.T) {
	for _, c := range Categories {
		if err := c.Validate(); err != nil {
			t.Fatalf("expected %s valid, got %v", c, err)
		}
	}
	if err := Category("").Validate(); err != nil {
		t.Fatalf("empty category should be valid (optional), got %v", err)
	}
	if err := Category("Rent").Validate(); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Amount:   decimal.NewFromFloat(4.50),
		Currency: CAD,
		Category: Food,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Amount: decimal.Zero, Currency: CAD},
		{Amount: decimal.NewFromInt(-1), Currency: CAD},
		{Amount: decimal.NewFromInt(1), Currency: "EUR"},
		{Amount: decimal.NewFromInt(1), Currency: CAD, Category: "Rent"},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
