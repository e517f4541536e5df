package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func expense(id, amount, createdAt string) Expense {
	return Expense{
		ID:        id,
		Amount:    decimal.RequireFromString(amount),
		Currency:  CAD,
		CreatedAt: createdAt,
	}
}

func TestGroupByDateEmpty(t *testing.T) {
	groups := GroupByDate(nil, time.Now())
	if len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}

func TestGroupByDateScenario(t *testing.T) {
	now := time.Date(2026, 2, 16, 20, 0, 0, 0, time.Local)
	input := []Expense{
		expense("a", "10", "2026-02-16T09:00:00.000"),
		expense("b", "5", "2026-02-16T18:00:00.000"),
		expense("c", "20", "2026-02-15T12:00:00.000"),
	}

	groups := GroupByDate(input, now)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	today := groups[0]
	if today.Label != "Today" || today.Date != "2026-02-16" {
		t.Fatalf("unexpected first group: %+v", today)
	}
	if !today.Total.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("today total: got %s, want 15", today.Total)
	}
	if len(today.Expenses) != 2 || today.Expenses[0].ID != "a" || today.Expenses[1].ID != "b" {
		t.Fatalf("today expenses out of order: %+v", today.Expenses)
	}

	yesterday := groups[1]
	if yesterday.Label != "Yesterday" {
		t.Fatalf("got label %q", yesterday.Label)
	}
	if !yesterday.Total.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("yesterday total: got %s, want 20", yesterday.Total)
	}
}

func TestGroupByDatePartition(t *testing.T) {
	now := time.Date(2026, 2, 16, 20, 0, 0, 0, time.Local)
	// Arbitrary interleaved order across three dates
	input := []Expense{
		expense("a", "1.10", "2026-02-14T08:00:00.000"),
		expense("b", "2.20", "2026-02-16T09:00:00.000"),
		expense("c", "3.30", "2026-02-14T10:00:00.000"),
		expense("d", "4.40", "2026-02-15T11:00:00.000"),
		expense("e", "5.50", "2026-02-16T12:00:00.000"),
	}

	groups := GroupByDate(input, now)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	// Strictly descending date keys, no duplicates
	for i := 1; i < len(groups); i++ {
		if groups[i].Date >= groups[i-1].Date {
			t.Fatalf("groups not strictly descending: %q then %q", groups[i-1].Date, groups[i].Date)
		}
	}

	// Every expense appears exactly once, in its own date's group
	seen := map[string]int{}
	var members int
	for _, g := range groups {
		members += len(g.Expenses)
		for _, e := range g.Expenses {
			seen[e.ID]++
			if DateOf(e.CreatedAt) != g.Date {
				t.Fatalf("expense %s in wrong group %s", e.ID, g.Date)
			}
		}
	}
	if members != len(input) {
		t.Fatalf("got %d grouped expenses, want %d", members, len(input))
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("expense %s appeared %d times", id, n)
		}
	}

	// Sum of group totals equals sum of all amounts
	var groupSum decimal.Decimal
	for _, g := range groups {
		groupSum = groupSum.Add(g.Total)
	}
	if !groupSum.Equal(SumAmounts(input)) {
		t.Fatalf("group totals %s != input sum %s", groupSum, SumAmounts(input))
	}
}

func TestGroupByDateInGroupOrder(t *testing.T) {
	now := time.Date(2026, 2, 16, 20, 0, 0, 0, time.Local)
	// Arrival order intentionally not chronological: it must be kept.
	input := []Expense{
		expense("late", "1", "2026-02-16T18:00:00.000"),
		expense("early", "1", "2026-02-16T07:00:00.000"),
	}
	groups := GroupByDate(input, now)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].Expenses[0].ID != "late" || groups[0].Expenses[1].ID != "early" {
		t.Fatalf("arrival order not preserved: %+v", groups[0].Expenses)
	}
}
