package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Savantrexs/microspend/internal/core"
)

// FileName is the fixed name of the exported CSV file.
const FileName = "microspend_expenses.csv"

// ExpenseLister is the slice of the repository the exporter needs.
type ExpenseLister interface {
	AllExpenses(ctx context.Context) ([]core.Expense, error)
}

// Exporter writes the full ledger to a CSV file after the ad gate.
type Exporter struct {
	lister ExpenseLister
	gate   *AdGate
	dir    string
}

func NewExporter(lister ExpenseLister, gate *AdGate, dir string) *Exporter {
	return &Exporter{lister: lister, gate: gate, dir: dir}
}

// Export runs the gate, encodes all expenses and writes the CSV file,
// returning its path and the number of data rows. A failed export
// leaves the ledger untouched and is safe to retry.
func (e *Exporter) Export(ctx context.Context) (string, int, error) {
	if e.gate != nil {
		if err := e.gate.Run(ctx, nil); err != nil {
			return "", 0, fmt.Errorf("ad gate: %w", err)
		}
	}

	expenses, err := e.lister.AllExpenses(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("list expenses: %w", err)
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", 0, fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(e.dir, FileName)
	if err := os.WriteFile(path, []byte(MarshalCSV(expenses)), 0644); err != nil {
		return "", 0, fmt.Errorf("write csv file: %w", err)
	}

	slog.InfoContext(ctx, "Ledger exported to CSV", "path", path, "rows", len(expenses))
	return path, len(expenses), nil
}
