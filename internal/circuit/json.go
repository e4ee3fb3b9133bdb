package circuit

import (
	"encoding/json"
	"fmt"
	"os"
)

// ExportJSON serializes the circuit with indentation for hand editing.
func ExportJSON(c *Circuit) (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize circuit: %w", err)
	}
	return string(data), nil
}

// ImportJSON parses a circuit and re-validates every gate against the
// declared register size.
func ImportJSON(data []byte) (*Circuit, error) {
	var raw Circuit
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse circuit json: %w", err)
	}
	if raw.Qubits <= 0 {
		return nil, fmt.Errorf("circuit declares %d qubits", raw.Qubits)
	}
	c := New(raw.Qubits)
	c.Name = raw.Name
	for _, g := range raw.Gates {
		if err := c.AddGate(g); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// LoadFile reads a circuit from a JSON file.
func LoadFile(path string) (*Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ImportJSON(data)
}

// SaveFile writes a circuit to a JSON file.
func SaveFile(path string, c *Circuit) error {
	s, err := ExportJSON(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(s+"\n"), 0644)
}
