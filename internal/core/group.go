package core

import (
	"sort"
	"time"
)

// GroupByDate buckets a flat expense list into date-labeled sections.
//
// Every expense lands in exactly one group, keyed by the stored
// calendar date of its CreatedAt. Within a group expenses keep their
// arrival order; groups are ordered newest date first (lexicographic
// descending on the fixed-width YYYY-MM-DD key, which matches
// chronological order). Labels are resolved against now once per call.
// Empty input yields an empty slice, never an error.
func GroupByDate(expenses []Expense, now time.Time) []ExpenseGroup {
	byDate := make(map[string]*ExpenseGroup)
	var order []string

	for _, e := range expenses {
		date := DateOf(e.CreatedAt)
		g, ok := byDate[date]
		if !ok {
			g = &ExpenseGroup{
				Date:  date,
				Label: DateSectionLabel(date, now),
			}
			byDate[date] = g
			order = append(order, date)
		}
		g.Total = g.Total.Add(e.Amount)
		g.Expenses = append(g.Expenses, e)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(order)))

	groups := make([]ExpenseGroup, 0, len(order))
	for _, date := range order {
		groups = append(groups, *byDate[date])
	}
	return groups
}
