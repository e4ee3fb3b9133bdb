package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/qtrace/internal/pauli"
	"github.com/san-kum/qtrace/internal/session"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string    `json:"id"`
	Circuit      string    `json:"circuit"`
	Timestamp    time.Time `json:"timestamp"`
	Qubits       int       `json:"qubits"`
	Depth        int       `json:"depth"`
	Injections   []string  `json:"injections"`
	FinalPattern string    `json:"final_pattern"`
	FinalWeight  int       `json:"final_weight"`
}

// Save writes one run directory holding metadata.json and timeline.csv.
// The timeline rows come from the session history in time order; holes
// in the history are simply absent rows.
func (s *Store) Save(circuitName string, qubits, depth int, injections []string, entries []session.Entry) (string, error) {
	runID := fmt.Sprintf("%s_%d", circuitName, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Circuit:    circuitName,
		Timestamp:  time.Now(),
		Qubits:     qubits,
		Depth:      depth,
		Injections: injections,
	}
	if len(entries) > 0 {
		last := entries[len(entries)-1]
		meta.FinalPattern = last.Pattern
		if p, err := pauli.Parse(last.Pattern, len(last.Pattern)); err == nil {
			meta.FinalWeight = p.Weight()
		}
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "timeline.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "pattern", "phase", "weight"}); err != nil {
		return "", err
	}

	for _, e := range entries {
		weight := 0
		if p, err := pauli.Parse(e.Pattern, len(e.Pattern)); err == nil {
			weight = p.Weight()
		}
		row := []string{
			strconv.Itoa(e.Time),
			e.Pattern,
			strconv.Itoa(int(e.Phase)),
			strconv.Itoa(weight),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	dirEntries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range dirEntries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTimeline(runID string) ([]session.Entry, error) {
	csvPath := filepath.Join(s.baseDir, runID, "timeline.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []session.Entry{}, nil
	}

	entries := make([]session.Entry, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			continue
		}

		t, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		phase, err := strconv.Atoi(record[2])
		if err != nil {
			continue
		}

		entries = append(entries, session.Entry{
			Time:    t,
			Pattern: record[1],
			Phase:   pauli.Phase(phase % 4),
		})
	}

	return entries, nil
}
