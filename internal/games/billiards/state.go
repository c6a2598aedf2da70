package billiards

import (
	"time"

	"github.com/vovakirdan/tui-billiards/internal/core"
)

// Machine tracks the round phase: Playing -> Over -> (reset) -> Playing.
// The reset after Over is a one-shot timer on the owning game's clock, so
// it always runs on the simulation goroutine and can be cancelled.
type Machine struct {
	phase   core.Phase
	outcome core.Outcome
	timers  *core.Timers
	pending core.TimerID
}

// NewMachine creates a machine in the Playing phase using timers as its clock.
func NewMachine(timers *core.Timers) *Machine {
	return &Machine{timers: timers}
}

// Phase returns the current phase.
func (m *Machine) Phase() core.Phase {
	return m.phase
}

// Outcome returns how the last round ended, or OutcomeNone while playing.
func (m *Machine) Outcome() core.Outcome {
	return m.outcome
}

// Over reports whether the round has ended.
func (m *Machine) Over() bool {
	return m.phase == core.PhaseOver
}

// End moves Playing to Over and schedules onReset after delay.
// It returns false, doing nothing, when the round is already over.
func (m *Machine) End(o core.Outcome, delay time.Duration, onReset func()) bool {
	if m.phase != core.PhasePlaying {
		return false
	}
	m.phase = core.PhaseOver
	m.outcome = o
	m.pending = m.timers.After(delay, func() {
		m.pending = 0
		onReset()
	})
	return true
}

// Restart cancels any pending reset and returns to Playing.
func (m *Machine) Restart() {
	if m.pending != 0 {
		m.timers.Cancel(m.pending)
		m.pending = 0
	}
	m.phase = core.PhasePlaying
	m.outcome = core.OutcomeNone
}

// ResetPending reports whether a deferred reset is scheduled.
func (m *Machine) ResetPending() bool {
	return m.pending != 0
}
