package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Savantrexs/microspend/internal/core"
)

func TestMarshalCSVEmpty(t *testing.T) {
	if got := MarshalCSV(nil); got != Header {
		t.Fatalf("empty input should be header-only, got %q", got)
	}
}

func TestMarshalCSVRows(t *testing.T) {
	expenses := []core.Expense{
		{
			ID:        "id-1",
			Amount:    decimal.RequireFromString("12.345"),
			Currency:  core.USD,
			Note:      "coffee",
			Category:  core.Food,
			CreatedAt: "2026-02-16T09:00:00.000",
		},
		{
			ID:        "id-2",
			Amount:    decimal.RequireFromString("5"),
			Currency:  core.CAD,
			CreatedAt: "2026-02-15T18:30:00.000",
		},
	}

	got := MarshalCSV(expenses)
	want := Header + "\n" +
		`id-1,12.345,USD,"coffee","Food",2026-02-16T09:00:00.000` + "\n" +
		`id-2,5,CAD,"","",2026-02-15T18:30:00.000`
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
	if strings.HasSuffix(got, "\n") {
		t.Fatalf("unexpected trailing newline")
	}
}

func TestMarshalCSVQuoteEscaping(t *testing.T) {
	e := core.Expense{
		ID:        "id-1",
		Amount:    decimal.NewFromInt(1),
		Currency:  core.GBP,
		Note:      `He said "hi", bye`,
		CreatedAt: "2026-02-16T09:00:00.000",
	}
	got := MarshalCSV([]core.Expense{e})
	if !strings.Contains(got, `"He said ""hi"", bye"`) {
		t.Fatalf("quotes not doubled: %s", got)
	}
}

// Round-trip: a standard CSV reader must recover the original note and
// category even with embedded quotes and commas.
func TestMarshalCSVRoundTrip(t *testing.T) {
	expenses := []core.Expense{
		{
			ID:        "id-1",
			Amount:    decimal.RequireFromString("9.99"),
			Currency:  core.NPR,
			Note:      `He said "hi", bye`,
			Category:  core.Other,
			CreatedAt: "2026-02-16T09:00:00.000",
		},
		{
			ID:        "id-2",
			Amount:    decimal.RequireFromString("0.5"),
			Currency:  core.CAD,
			Note:      "a,b,c",
			CreatedAt: "2026-02-15T18:30:00.000",
		},
	}

	r := csv.NewReader(strings.NewReader(MarshalCSV(expenses)))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parse exported csv: %v", err)
	}
	if len(records) != len(expenses)+1 {
		t.Fatalf("got %d records, want %d", len(records), len(expenses)+1)
	}
	for i, e := range expenses {
		row := records[i+1]
		if row[0] != e.ID || row[1] != e.Amount.String() || row[2] != string(e.Currency) {
			t.Fatalf("row %d mismatch: %v", i, row)
		}
		if row[3] != e.Note {
			t.Fatalf("row %d note: got %q, want %q", i, row[3], e.Note)
		}
		if row[4] != string(e.Category) {
			t.Fatalf("row %d category: got %q, want %q", i, row[4], e.Category)
		}
		if row[5] != e.CreatedAt {
			t.Fatalf("row %d createdAt: got %q, want %q", i, row[5], e.CreatedAt)
		}
	}
}
