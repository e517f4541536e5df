package export

import (
	"context"
	"time"
)

// GateState is the phase of the pre-export advertisement gate.
type GateState string

const (
	GateIdle      GateState = "idle"
	GatePlaying   GateState = "playing"
	GateCompleted GateState = "completed"
)

// AdGate is the simulated advertisement shown before an export:
// playback, then a short completion confirmation. The gate can be
// cancelled while idle; once playback starts it runs to completion.
type AdGate struct {
	PlayDuration    time.Duration
	ConfirmDuration time.Duration
}

// NewAdGate returns a gate with the app's timings: 2.5s playback and a
// 1s completion confirmation.
func NewAdGate() *AdGate {
	return &AdGate{
		PlayDuration:    2500 * time.Millisecond,
		ConfirmDuration: time.Second,
	}
}

// Run walks the gate phases, reporting each transition through onState
// (which may be nil). ctx is honored only before playback begins.
func (g *AdGate) Run(ctx context.Context, onState func(GateState)) error {
	notify := func(s GateState) {
		if onState != nil {
			onState(s)
		}
	}

	notify(GateIdle)
	if err := ctx.Err(); err != nil {
		return err
	}

	// Playback and confirmation are not cancellable.
	notify(GatePlaying)
	time.Sleep(g.PlayDuration)

	notify(GateCompleted)
	time.Sleep(g.ConfirmDuration)

	return nil
}
