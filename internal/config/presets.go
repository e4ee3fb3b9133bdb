package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/qtrace/internal/circuit"
)

type presetSpec struct {
	qubits int
	desc   string
	build  func(c *circuit.Circuit)
}

var presets = map[string]presetSpec{
	"bell": {
		qubits: 2,
		desc:   "bell pair preparation",
		build: func(c *circuit.Circuit) {
			c.AddGate(circuit.NewSingle(0, circuit.GateH))
			c.AddGate(circuit.NewTwo(circuit.GateCNOT, 0, 1))
		},
	},
	"ghz": {
		qubits: 3,
		desc:   "three-qubit GHZ state",
		build: func(c *circuit.Circuit) {
			c.AddGate(circuit.NewSingle(0, circuit.GateH))
			c.AddGate(circuit.NewTwo(circuit.GateCNOT, 0, 1))
			c.AddGate(circuit.NewTwo(circuit.GateCNOT, 1, 2))
		},
	},
	"teleport": {
		qubits: 3,
		desc:   "teleportation entangling core",
		build: func(c *circuit.Circuit) {
			c.AddGate(circuit.NewSingle(1, circuit.GateH))
			c.AddGate(circuit.NewTwo(circuit.GateCNOT, 1, 2))
			c.AddGate(circuit.NewTwo(circuit.GateCNOT, 0, 1))
			c.AddGate(circuit.NewSingle(0, circuit.GateH))
		},
	},
	"repetition": {
		qubits: 3,
		desc:   "bit-flip repetition code encoder",
		build: func(c *circuit.Circuit) {
			c.AddGate(circuit.NewTwo(circuit.GateCNOT, 0, 1))
			c.AddGate(circuit.NewTwo(circuit.GateCNOT, 0, 2))
		},
	},
	"phase-kick": {
		qubits: 2,
		desc:   "S/CZ phase kickback chain",
		build: func(c *circuit.Circuit) {
			c.AddGate(circuit.NewSingle(0, circuit.GateH))
			c.AddGate(circuit.NewSingle(0, circuit.GateS))
			c.AddGate(circuit.NewTwo(circuit.GateCZ, 0, 1))
			c.AddGate(circuit.NewSingle(0, circuit.GateSdg))
		},
	},
}

// GetPreset builds a named built-in circuit.
func GetPreset(name string) (*circuit.Circuit, error) {
	spec, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (available: %v)", name, ListPresets())
	}
	c := circuit.New(spec.qubits)
	c.Name = name
	spec.build(c)
	return c, nil
}

// ListPresets returns the built-in circuit names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetDescription returns the one-line summary shown in menus.
func PresetDescription(name string) string {
	return presets[name].desc
}
