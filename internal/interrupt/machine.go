// Package interrupt implements a small timer-driven state machine for
// debounced interruptions: a condition holds from some reference instant,
// after a delay a single Due event fires, and after a further window a
// single Expired event fires unless the machine is disarmed or reset.
//
// The sleep reality-check (stillness → prompt → silent-timeout confirm)
// and the notification gatekeeper's per-item lifecycle (scheduled time →
// due window → auto-skip) are both instances of this machine.
package interrupt

import "time"

type State string

const (
	StateIdle    State = "idle"
	StateArmed   State = "armed"
	StateDue     State = "due"
	StateExpired State = "expired"
)

type Event int

const (
	EventNone Event = iota
	// EventDue fires exactly once, DueAfter past the arm instant.
	EventDue
	// EventExpired fires exactly once, ExpireAfter past the due instant.
	EventExpired
)

// Machine tracks a single debounced interrupt. All transitions happen in
// Tick against an injected now; the machine itself never reads the clock.
type Machine struct {
	// DueAfter is the delay from the arm instant to the Due event.
	// Zero means due immediately at the arm instant.
	DueAfter time.Duration
	// ExpireAfter is the window from the due instant to the Expired
	// event. Zero disables expiry.
	ExpireAfter time.Duration

	state   State
	armedAt time.Time
}

// NewMachine returns an idle machine with the given windows.
func NewMachine(dueAfter, expireAfter time.Duration) *Machine {
	return &Machine{DueAfter: dueAfter, ExpireAfter: expireAfter, state: StateIdle}
}

func (m *Machine) State() State { return m.state }

// ArmedAt returns the reference instant the current cycle began. Callers
// that backdate (the sleep tracker) read this when Expired fires.
func (m *Machine) ArmedAt() time.Time { return m.armedAt }

// Arm starts a cycle at the given instant. Re-arming restarts the cycle
// and allows Due/Expired to fire again.
func (m *Machine) Arm(at time.Time) {
	m.state = StateArmed
	m.armedAt = at
}

// Disarm returns the machine to idle. Pending Due/Expired events are
// cancelled.
func (m *Machine) Disarm() {
	m.state = StateIdle
	m.armedAt = time.Time{}
}

// Tick advances the machine to now and returns at most one event.
// A long gap between ticks may step the machine through Due straight to
// Expired over two consecutive calls; callers tick until EventNone when
// they need every transition observed.
func (m *Machine) Tick(now time.Time) Event {
	switch m.state {
	case StateArmed:
		if !now.Before(m.armedAt.Add(m.DueAfter)) {
			m.state = StateDue
			return EventDue
		}
	case StateDue:
		if m.ExpireAfter > 0 && !now.Before(m.armedAt.Add(m.DueAfter).Add(m.ExpireAfter)) {
			m.state = StateExpired
			return EventExpired
		}
	}
	return EventNone
}
