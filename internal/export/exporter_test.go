package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Savantrexs/microspend/internal/core"
)

type staticLister struct {
	expenses []core.Expense
}

func (s staticLister) AllExpenses(ctx context.Context) ([]core.Expense, error) {
	return s.expenses, nil
}

func fastGate() *AdGate {
	return &AdGate{PlayDuration: time.Millisecond, ConfirmDuration: time.Millisecond}
}

func TestAdGatePhases(t *testing.T) {
	var states []GateState
	gate := fastGate()
	err := gate.Run(context.Background(), func(s GateState) {
		states = append(states, s)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []GateState{GateIdle, GatePlaying, GateCompleted}
	if len(states) != len(want) {
		t.Fatalf("got states %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("state %d: got %s, want %s", i, states[i], want[i])
		}
	}
}

func TestAdGateCancelBeforePlayback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var states []GateState
	err := fastGate().Run(ctx, func(s GateState) {
		states = append(states, s)
	})
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
	for _, s := range states {
		if s == GatePlaying {
			t.Fatalf("playback started despite cancelled context")
		}
	}
}

func TestExporterWritesFile(t *testing.T) {
	dir := t.TempDir()
	lister := staticLister{expenses: []core.Expense{
		{
			ID:        "id-1",
			Amount:    decimal.RequireFromString("2.50"),
			Currency:  core.CAD,
			Note:      "bus",
			Category:  core.Transport,
			CreatedAt: "2026-02-16T08:15:00.000",
		},
	}}

	exp := NewExporter(lister, fastGate(), dir)
	path, rows, err := exp.Export(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if rows != 1 {
		t.Fatalf("got %d rows, want 1", rows)
	}
	if path != filepath.Join(dir, FileName) {
		t.Fatalf("unexpected path %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if string(data) != MarshalCSV(lister.expenses) {
		t.Fatalf("file content mismatch:\n%s", data)
	}
}

func TestExporterNilGate(t *testing.T) {
	exp := NewExporter(staticLister{}, nil, t.TempDir())
	if _, rows, err := exp.Export(context.Background()); err != nil || rows != 0 {
		t.Fatalf("export without gate: rows=%d err=%v", rows, err)
	}
}
