// Package export turns the expense ledger into a shareable CSV file,
// behind the same watch-an-ad gate the app puts in front of it.
package export

import (
	"strings"

	"github.com/Savantrexs/microspend/internal/core"
)

// Header is the fixed CSV column order.
const Header = "id,amount,currency,note,category,createdAt"

// MarshalCSV encodes expenses as CSV in the given order, no re-sorting.
//
// note and category are always quoted with embedded quotes doubled
// (absent values render as ""), so commas and quotes in free text stay
// parseable by standard CSV readers. The remaining fields are emitted
// verbatim and unquoted; amount keeps its natural decimal string form,
// not the 2-decimal display form, so encoding round-trips exactly.
// Rows are newline-joined with no trailing newline.
func MarshalCSV(expenses []core.Expense) string {
	rows := make([]string, 0, len(expenses)+1)
	rows = append(rows, Header)
	for _, e := range expenses {
		rows = append(rows, strings.Join([]string{
			e.ID,
			e.Amount.String(),
			string(e.Currency),
			quote(e.Note),
			quote(string(e.Category)),
			e.CreatedAt,
		}, ","))
	}
	return strings.Join(rows, "\n")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
