package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/qtrace/internal/pauli"
	"github.com/san-kum/qtrace/internal/session"
)

type ExportData struct {
	Circuit    string          `json:"circuit"`
	Qubits     int             `json:"qubits"`
	Depth      int             `json:"depth"`
	Injections []string        `json:"injections"`
	Steps      int             `json:"steps"`
	Timeline   []session.Entry `json:"timeline"`
}

func ExportJSON(path string, circuitName string, qubits, depth int, injections []string, entries []session.Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeJSON(file, circuitName, qubits, depth, injections, entries)
}

func ExportJSONStdout(circuitName string, qubits, depth int, injections []string, entries []session.Entry) error {
	return writeJSON(os.Stdout, circuitName, qubits, depth, injections, entries)
}

func writeJSON(w io.Writer, circuitName string, qubits, depth int, injections []string, entries []session.Entry) error {
	data := ExportData{
		Circuit:    circuitName,
		Qubits:     qubits,
		Depth:      depth,
		Injections: injections,
		Steps:      len(entries),
		Timeline:   entries,
	}
	if data.Injections == nil {
		data.Injections = []string{}
	}
	if data.Timeline == nil {
		data.Timeline = []session.Entry{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportCSV(path string, entries []session.Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, entries)
}

func WriteCSV(w io.Writer, entries []session.Entry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"time", "pattern", "phase", "weight"}); err != nil {
		return err
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
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}
