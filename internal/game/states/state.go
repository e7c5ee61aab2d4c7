// Package states implements the game lifecycle phase machine.
package states

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a phase change is not allowed.
var ErrInvalidTransition = errors.New("invalid phase transition")

// Phase is a lifecycle phase.
type Phase int

const (
	Loading Phase = iota
	Ready
	Paused
	Playing
	Done
)

var phaseNames = [...]string{
	Loading: "loading",
	Ready:   "ready",
	Paused:  "paused",
	Playing: "playing",
	Done:    "done",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// transitions lists the phases reachable from each phase.
var transitions = map[Phase][]Phase{
	Loading: {Ready, Done},
	Ready:   {Playing, Loading, Done},
	Playing: {Paused, Done},
	Paused:  {Playing, Loading, Done},
}

// Change describes one phase transition.
type Change struct {
	From Phase
	To   Phase
}

// Machine holds the current phase and notifies observers on change.
// It is used from the main loop only.
type Machine struct {
	phase     Phase
	observers []func(Change)
}

// NewMachine returns a machine in the loading phase.
func NewMachine() *Machine {
	return &Machine{phase: Loading}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Playing reports whether the game is in its interactive phase.
func (m *Machine) Playing() bool {
	return m.phase == Playing
}

// Subscribe registers fn to be called after every phase change.
func (m *Machine) Subscribe(fn func(Change)) {
	m.observers = append(m.observers, fn)
}

// Set moves to phase p. Setting the current phase is a no-op.
func (m *Machine) Set(p Phase) error {
	if p == m.phase {
		return nil
	}
	if !allowed(m.phase, p) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.phase, p)
	}

	c := Change{From: m.phase, To: p}
	m.phase = p
	for _, fn := range m.observers {
		fn(c)
	}
	return nil
}

func allowed(from, to Phase) bool {
	for _, p := range transitions[from] {
		if p == to {
			return true
		}
	}
	return false
}
