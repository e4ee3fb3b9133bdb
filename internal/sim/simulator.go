// Package sim implements the error propagation engine: it carries an
// injected Pauli error pattern through a Clifford circuit one gate per
// time step, keeping a dense snapshot timeline for replay.
package sim

import (
	"fmt"

	"github.com/san-kum/qtrace/internal/circuit"
	"github.com/san-kum/qtrace/internal/pauli"
	"github.com/san-kum/qtrace/internal/propagate"
)

// Snapshot is the simulator's own record of the pattern after a step.
type Snapshot struct {
	Time        int
	Pattern     pauli.String
	GateApplied int // index of the gate that produced this state, -1 at time 0
}

type Simulator struct {
	pattern  pauli.String
	circ     *circuit.Circuit
	timeline []Snapshot
	time     int
}

func New(c *circuit.Circuit) (*Simulator, error) {
	if c == nil {
		return nil, fmt.Errorf("nil circuit")
	}
	pattern, err := pauli.NewString(c.Qubits)
	if err != nil {
		return nil, err
	}
	s := &Simulator{pattern: pattern, circ: c}
	s.timeline = append(s.timeline, Snapshot{Time: 0, Pattern: pattern, GateApplied: -1})
	return s, nil
}

// InjectError places a Pauli operator on one qubit of the current
// pattern and refreshes the latest snapshot so the change is visible at
// the current time step.
func (s *Simulator) InjectError(qubit int, op pauli.Pauli) error {
	if err := s.pattern.Set(qubit, op); err != nil {
		return err
	}
	s.timeline[len(s.timeline)-1].Pattern = s.pattern
	return nil
}

// ErrorPattern returns the pattern at the current time step.
func (s *Simulator) ErrorPattern() pauli.String {
	return s.pattern
}

func (s *Simulator) CurrentTime() int {
	return s.time
}

func (s *Simulator) Circuit() *circuit.Circuit {
	return s.circ
}

func (s *Simulator) Depth() int {
	return s.circ.Depth()
}

// StepForward applies the gate at the current time step and advances.
// Returns false at the end of the circuit.
func (s *Simulator) StepForward() (bool, error) {
	gate := s.circ.GateAt(s.time)
	if gate == nil {
		return false, nil
	}
	if err := propagate.ApplyGate(&s.pattern, gate); err != nil {
		return false, err
	}
	s.time++
	s.timeline = append(s.timeline, Snapshot{
		Time:        s.time,
		Pattern:     s.pattern,
		GateApplied: s.time - 1,
	})
	return true, nil
}

// StepBackward restores the pattern from the previous snapshot.
// Returns false at time zero.
func (s *Simulator) StepBackward() bool {
	if s.time == 0 {
		return false
	}
	s.timeline = s.timeline[:len(s.timeline)-1]
	s.time--
	s.pattern = s.timeline[len(s.timeline)-1].Pattern
	return true
}

// Reset clears the pattern and rewinds to time zero.
func (s *Simulator) Reset() {
	s.time = 0
	s.pattern, _ = pauli.NewString(s.circ.Qubits)
	s.timeline = s.timeline[:0]
	s.timeline = append(s.timeline, Snapshot{Time: 0, Pattern: s.pattern, GateApplied: -1})
}

// Run steps through the remainder of the circuit.
func (s *Simulator) Run() error {
	for {
		ok, err := s.StepForward()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// Snapshot returns the recorded state at a given time step, if reached.
func (s *Simulator) Snapshot(t int) (Snapshot, bool) {
	if t < 0 || t >= len(s.timeline) {
		return Snapshot{}, false
	}
	return s.timeline[t], true
}

// Timeline returns the snapshots recorded so far, oldest first.
func (s *Simulator) Timeline() []Snapshot {
	return s.timeline
}
