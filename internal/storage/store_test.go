package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/qtrace/internal/pauli"
	"github.com/san-kum/qtrace/internal/session"
)

func sampleEntries() []session.Entry {
	return []session.Entry{
		{Time: 0, Pattern: "XI", Phase: pauli.PhasePlusOne},
		{Time: 1, Pattern: "XX", Phase: pauli.PhasePlusOne},
		{Time: 2, Pattern: "YY", Phase: pauli.PhaseMinusOne},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("bell", 2, 2, []string{"0:X"}, sampleEntries())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Circuit != "bell" {
		t.Errorf("expected circuit 'bell', got '%s'", meta.Circuit)
	}
	if meta.Qubits != 2 || meta.Depth != 2 {
		t.Errorf("unexpected shape: %d qubits, depth %d", meta.Qubits, meta.Depth)
	}
	if meta.FinalPattern != "YY" {
		t.Errorf("expected final pattern YY, got %s", meta.FinalPattern)
	}
	if meta.FinalWeight != 2 {
		t.Errorf("expected final weight 2, got %d", meta.FinalWeight)
	}

	entries, err := st.LoadTimeline(runID)
	if err != nil {
		t.Fatalf("load timeline failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[2].Pattern != "YY" || entries[2].Phase != pauli.PhaseMinusOne {
		t.Errorf("unexpected last entry: %+v", entries[2])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save("bell", 2, 2, nil, sampleEntries()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("bell", 2, 2, nil, sampleEntries())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "timeline.csv")); os.IsNotExist(err) {
		t.Error("timeline.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")

	if err := ExportJSON(path, "bell", 2, 2, []string{"0:X"}, sampleEntries()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"circuit": "bell"`, `"steps": 3`, `"pattern": "YY"`} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %s", want)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleEntries()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "time,pattern,phase,weight" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if lines[3] != "2,YY,2,2" {
		t.Errorf("unexpected last row: %s", lines[3])
	}
}
