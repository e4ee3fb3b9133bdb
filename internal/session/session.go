// Package session holds the shared interactive state of an analysis
// session and the bookkeeping around manual error injection.
//
// The two operations here, [Session.InjectError] and
// [Session.RecordErrorHistory], are thin stateless procedures over the
// session's shared fields. They run synchronously on the UI event
// sequence, never propagate failures to their callers, and leave all
// simulator physics to the sim package.
//
// The recorded history is a sparse timeline: a map from time step to
// entry, where absence means the step was never visited. Once a step
// holds an entry, stepping over it again never overwrites it; only an
// explicit forced re-record does. Stepping backward therefore replays
// exactly what was recorded when the step was first visited, not a
// fresh read of the (possibly re-injected) simulator state.
package session

import (
	"github.com/charmbracelet/log"

	"github.com/san-kum/qtrace/internal/circuit"
	"github.com/san-kum/qtrace/internal/pauli"
	"github.com/san-kum/qtrace/internal/sim"
)

// Entry is one recorded step of the error history.
type Entry struct {
	Time    int         `json:"time"`
	Pattern string      `json:"pattern"`
	Phase   pauli.Phase `json:"phase"`
}

// Renderer receives fire-and-forget redraw triggers. Implementations
// may read session state but must not call back into the session's
// operations while one is in flight.
type Renderer interface {
	UpdateDisplay()
	RenderCircuit()
	RenderErrorChart()
}

// NopRenderer discards all redraw triggers.
type NopRenderer struct{}

func (NopRenderer) UpdateDisplay()    {}
func (NopRenderer) RenderCircuit()    {}
func (NopRenderer) RenderErrorChart() {}

// Session is the shared state both operations work over.
//
// Field access: Sim and Circuit are handles owned by the caller; the
// session only reads them. Selected and CurrentTime are written by the
// surrounding UI (label picker, stepping controller) and read here.
// The initial-error map and the history timeline are owned and written
// by the session.
type Session struct {
	Sim     *sim.Simulator
	Circuit *circuit.Circuit

	// Selected is the error label armed for the next injection.
	// pauli.I means nothing is selected.
	Selected pauli.Pauli

	// CurrentTime is the step index currently displayed. Stepping
	// logic moves it; the session never does.
	CurrentTime int

	initialErrors map[int]pauli.Pauli
	history       map[int]Entry
	historyLen    int

	renderer Renderer
	log      *log.Logger
}

func New(s *sim.Simulator, c *circuit.Circuit, r Renderer, logger *log.Logger) *Session {
	if r == nil {
		r = NopRenderer{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		Sim:      s,
		Circuit:  c,
		history:  make(map[int]Entry),
		renderer: r,
		log:      logger,
	}
}

// InjectError merges the selected label onto the given qubit and
// forwards the elementary injection to the simulator.
//
// Without a selected label or a simulator the call is a logged no-op.
// The initial-error map is replaced, never mutated in place, so
// observers holding the previous map see a stable value. A simulator
// failure is logged but does not roll the map update back: the map
// records what the user asked for, so a retry needs no re-selection.
// The current time index is left untouched.
func (s *Session) InjectError(qubit int) {
	if s.Selected == pauli.I {
		s.log.Warn("no error label selected, skipping injection", "qubit", qubit)
		return
	}
	if s.Sim == nil {
		s.log.Warn("no simulator, skipping injection", "qubit", qubit)
		return
	}

	next := make(map[int]pauli.Pauli, len(s.initialErrors)+1)
	for q, op := range s.initialErrors {
		next[q] = op
	}
	next[qubit] = s.Selected
	s.initialErrors = next

	if err := s.Sim.InjectError(qubit, s.Selected); err != nil {
		s.log.Error("error injection failed",
			"qubit", qubit, "label", s.Selected.String(), "err", err)
	}

	s.renderer.UpdateDisplay()
	s.renderer.RenderCircuit()
}

// RecordErrorHistory reads the simulator's current pattern and records
// it at the current time step. A step that already holds an entry is
// left alone unless force is set. The chart redraw fires either way,
// so stepping backward onto an already-recorded step still refreshes
// the chart from the stored entry.
func (s *Session) RecordErrorHistory(force bool) {
	if s.Sim == nil || s.Circuit == nil {
		s.log.Warn("no simulator or circuit, skipping history record")
		return
	}

	pattern := s.Sim.ErrorPattern()
	t := s.CurrentTime

	_, recorded := s.history[t]
	if s.historyLen < t+1 || !recorded || force {
		if s.historyLen < t+1 {
			s.historyLen = t + 1
		}
		s.history[t] = Entry{Time: t, Pattern: pattern.String(), Phase: pattern.Phase()}
	}

	s.renderer.RenderErrorChart()
}

// InitialErrors returns the current injection map. Callers must treat
// it as read-only; the session replaces the whole map on every
// injection.
func (s *Session) InitialErrors() map[int]pauli.Pauli {
	return s.initialErrors
}

// HistoryLen is the logical timeline length: one past the highest step
// ever recorded. Steps below it without an entry are holes.
func (s *Session) HistoryLen() int {
	return s.historyLen
}

// EntryAt returns the recorded entry for a step, if the slot is not a
// hole.
func (s *Session) EntryAt(t int) (Entry, bool) {
	e, ok := s.history[t]
	return e, ok
}

// Entries returns all recorded entries in time order, holes skipped.
func (s *Session) Entries() []Entry {
	out := make([]Entry, 0, len(s.history))
	for t := 0; t < s.historyLen; t++ {
		if e, ok := s.history[t]; ok {
			out = append(out, e)
		}
	}
	return out
}
