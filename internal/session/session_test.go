package session

import (
	"io"
	"regexp"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/san-kum/qtrace/internal/circuit"
	"github.com/san-kum/qtrace/internal/pauli"
	"github.com/san-kum/qtrace/internal/sim"
)

type spyRenderer struct {
	display int
	circuit int
	chart   int
}

func (r *spyRenderer) UpdateDisplay()    { r.display++ }
func (r *spyRenderer) RenderCircuit()    { r.circuit++ }
func (r *spyRenderer) RenderErrorChart() { r.chart++ }

func newTestSession(t *testing.T, qubits int) (*Session, *spyRenderer) {
	t.Helper()
	c := circuit.New(qubits)
	if err := c.AddGate(circuit.NewSingle(0, circuit.GateI)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	s, err := sim.New(c)
	if err != nil {
		t.Fatalf("sim failed: %v", err)
	}
	r := &spyRenderer{}
	return New(s, c, r, log.New(io.Discard)), r
}

func TestInjectError(t *testing.T) {
	s, r := newTestSession(t, 2)
	s.Selected = pauli.X

	s.InjectError(0)

	if got := s.InitialErrors()[0]; got != pauli.X {
		t.Errorf("expected map entry X on qubit 0, got %v", got)
	}
	if pat := s.Sim.ErrorPattern().String(); pat != "XI" {
		t.Errorf("expected pattern XI, got %s", pat)
	}
	if r.display != 1 || r.circuit != 1 {
		t.Errorf("expected one display and one circuit trigger, got %d/%d", r.display, r.circuit)
	}
}

func TestInjectErrorAllLabels(t *testing.T) {
	for _, label := range []pauli.Pauli{pauli.X, pauli.Y, pauli.Z} {
		s, _ := newTestSession(t, 3)
		s.Selected = label
		for q := 0; q < 3; q++ {
			s.InjectError(q)
			if got := s.InitialErrors()[q]; got != label {
				t.Errorf("qubit %d: expected %v in map, got %v", q, label, got)
			}
			op, _ := s.Sim.ErrorPattern().Get(q)
			if op != label {
				t.Errorf("qubit %d: expected %v in pattern, got %v", q, label, op)
			}
		}
	}
}

func TestInjectErrorNoSelection(t *testing.T) {
	s, r := newTestSession(t, 2)

	s.InjectError(0)

	if len(s.InitialErrors()) != 0 {
		t.Errorf("expected no map entries, got %d", len(s.InitialErrors()))
	}
	if pat := s.Sim.ErrorPattern().String(); pat != "II" {
		t.Errorf("expected unchanged pattern, got %s", pat)
	}
	if r.display != 0 && r.circuit != 0 {
		t.Error("no-op injection should not trigger renders")
	}
}

func TestInjectErrorNoSimulator(t *testing.T) {
	s, _ := newTestSession(t, 2)
	s.Sim = nil
	s.Selected = pauli.X

	s.InjectError(0)

	if len(s.InitialErrors()) != 0 {
		t.Error("expected no map entries without a simulator")
	}
}

func TestInjectErrorIdempotent(t *testing.T) {
	s, _ := newTestSession(t, 2)
	s.Selected = pauli.Y

	s.InjectError(1)
	first := s.InitialErrors()
	s.InjectError(1)

	if len(s.InitialErrors()) != 1 {
		t.Errorf("expected one map entry, got %d", len(s.InitialErrors()))
	}
	if s.InitialErrors()[1] != pauli.Y {
		t.Errorf("expected Y on qubit 1, got %v", s.InitialErrors()[1])
	}
	// old observers keep a stable snapshot
	if first[1] != pauli.Y {
		t.Error("previous map snapshot should be unchanged")
	}
}

func TestInjectErrorOverwritesSameQubit(t *testing.T) {
	s, _ := newTestSession(t, 2)

	s.Selected = pauli.X
	s.InjectError(0)
	prev := s.InitialErrors()

	s.Selected = pauli.Z
	s.InjectError(0)

	if s.InitialErrors()[0] != pauli.Z {
		t.Errorf("expected Z after overwrite, got %v", s.InitialErrors()[0])
	}
	if prev[0] != pauli.X {
		t.Error("map must be replaced, not mutated: old snapshot changed")
	}
}

func TestInjectErrorSimulatorFailureKeepsMap(t *testing.T) {
	s, _ := newTestSession(t, 2)
	s.Selected = pauli.X

	// out-of-range qubit passes the preconditions but fails in the
	// simulator call
	s.InjectError(9)

	if s.InitialErrors()[9] != pauli.X {
		t.Error("map update must survive a failed simulator call")
	}
}

func TestInjectErrorKeepsCurrentTime(t *testing.T) {
	s, _ := newTestSession(t, 2)
	s.CurrentTime = 3
	s.Selected = pauli.X

	s.InjectError(0)

	if s.CurrentTime != 3 {
		t.Errorf("injection must not move current time, got %d", s.CurrentTime)
	}
}

func TestRecordErrorHistory(t *testing.T) {
	s, r := newTestSession(t, 2)
	s.Selected = pauli.X
	s.InjectError(0)

	s.RecordErrorHistory(false)

	e, ok := s.EntryAt(0)
	if !ok {
		t.Fatal("expected entry at time 0")
	}
	if e.Pattern != "XI" {
		t.Errorf("expected XI, got %s", e.Pattern)
	}
	if s.HistoryLen() != 1 {
		t.Errorf("expected history length 1, got %d", s.HistoryLen())
	}
	if r.chart != 1 {
		t.Errorf("expected one chart trigger, got %d", r.chart)
	}
}

func TestRecordErrorHistoryNoOverwrite(t *testing.T) {
	s, _ := newTestSession(t, 2)
	s.Selected = pauli.X
	s.InjectError(0)
	s.RecordErrorHistory(false)

	// simulator state changes, recorded slot must not
	s.Selected = pauli.Z
	s.InjectError(1)
	s.RecordErrorHistory(false)

	e, _ := s.EntryAt(0)
	if e.Pattern != "XI" {
		t.Errorf("recorded entry silently overwritten: got %s", e.Pattern)
	}
}

func TestRecordErrorHistoryForceOverwrites(t *testing.T) {
	s, _ := newTestSession(t, 2)
	s.Selected = pauli.X
	s.InjectError(0)
	s.RecordErrorHistory(false)

	s.Selected = pauli.Z
	s.InjectError(1)
	s.RecordErrorHistory(true)

	e, _ := s.EntryAt(0)
	if e.Pattern != "XZ" {
		t.Errorf("force should overwrite: expected XZ, got %s", e.Pattern)
	}
}

func TestRecordErrorHistoryGrowsWithHoles(t *testing.T) {
	s, r := newTestSession(t, 2)
	s.Selected = pauli.X
	s.InjectError(0)

	s.CurrentTime = 4
	s.RecordErrorHistory(false)

	if s.HistoryLen() != 5 {
		t.Errorf("expected length 5, got %d", s.HistoryLen())
	}
	for tt := 0; tt < 4; tt++ {
		if _, ok := s.EntryAt(tt); ok {
			t.Errorf("expected hole at %d", tt)
		}
	}
	if _, ok := s.EntryAt(4); !ok {
		t.Error("expected entry at 4")
	}
	if entries := s.Entries(); len(entries) != 1 {
		t.Errorf("expected one non-hole entry, got %d", len(entries))
	}

	// chart redraw fires even when nothing is written
	s.RecordErrorHistory(false)
	if r.chart != 2 {
		t.Errorf("expected chart trigger on read-only record, got %d", r.chart)
	}
}

func TestRecordErrorHistoryPreconditions(t *testing.T) {
	s, _ := newTestSession(t, 2)
	s.Circuit = nil
	s.RecordErrorHistory(false)
	if s.HistoryLen() != 0 {
		t.Error("record without circuit must be a no-op")
	}

	s, _ = newTestSession(t, 2)
	s.Sim = nil
	s.RecordErrorHistory(false)
	if s.HistoryLen() != 0 {
		t.Error("record without simulator must be a no-op")
	}
}

func TestPatternWidthInvariant(t *testing.T) {
	for _, n := range []int{1, 2, 5, 8} {
		s, _ := newTestSession(t, n)
		s.Selected = pauli.Y
		s.InjectError(0)
		s.RecordErrorHistory(false)

		e, _ := s.EntryAt(0)
		if len(e.Pattern) != n {
			t.Errorf("%d qubits: expected pattern width %d, got %d", n, n, len(e.Pattern))
		}
	}
}

func TestTwoQubitScenario(t *testing.T) {
	s, _ := newTestSession(t, 2)
	re := regexp.MustCompile(`^[XYZI]{2}$`)

	s.Selected = pauli.X
	s.InjectError(0)
	s.RecordErrorHistory(true)
	e, _ := s.EntryAt(0)
	if !re.MatchString(e.Pattern) || e.Pattern != "XI" {
		t.Errorf("expected XI, got %s", e.Pattern)
	}

	s.Selected = pauli.Y
	s.InjectError(1)
	s.RecordErrorHistory(true)
	e, _ = s.EntryAt(0)
	if e.Pattern != "XY" {
		t.Errorf("expected XY, got %s", e.Pattern)
	}

	s.Selected = pauli.Z
	s.InjectError(0)
	s.RecordErrorHistory(true)
	e, _ = s.EntryAt(0)
	if e.Pattern != "ZY" {
		t.Errorf("expected ZY, got %s", e.Pattern)
	}
}
