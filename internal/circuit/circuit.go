// Package circuit models Clifford circuits as ordered gate lists over a
// fixed qubit register. One gate occupies one time step.
package circuit

import "fmt"

// SingleGate identifies a one-qubit Clifford gate.
type SingleGate string

const (
	GateI   SingleGate = "I"
	GateX   SingleGate = "X"
	GateY   SingleGate = "Y"
	GateZ   SingleGate = "Z"
	GateH   SingleGate = "H"
	GateS   SingleGate = "S"
	GateSdg SingleGate = "Sdg"
)

// TwoKind identifies a two-qubit Clifford gate.
type TwoKind string

const (
	GateCNOT TwoKind = "CNOT"
	GateCZ   TwoKind = "CZ"
	GateSWAP TwoKind = "SWAP"
)

// Gate is one circuit operation. Exactly one of Single or Two is set.
type Gate struct {
	Single *Single `json:"single,omitempty" yaml:"single,omitempty"`
	Two    *Two    `json:"two,omitempty" yaml:"two,omitempty"`
}

type Single struct {
	Qubit int        `json:"qubit" yaml:"qubit"`
	Gate  SingleGate `json:"gate" yaml:"gate"`
}

type Two struct {
	Kind    TwoKind `json:"kind" yaml:"kind"`
	Control int     `json:"control" yaml:"control"`
	Target  int     `json:"target" yaml:"target"`
}

// NewSingle builds a one-qubit gate.
func NewSingle(qubit int, g SingleGate) Gate {
	return Gate{Single: &Single{Qubit: qubit, Gate: g}}
}

// NewTwo builds a two-qubit gate. For SWAP the control/target distinction
// carries no meaning.
func NewTwo(kind TwoKind, control, target int) Gate {
	return Gate{Two: &Two{Kind: kind, Control: control, Target: target}}
}

// Qubits lists the register indices the gate acts on.
func (g Gate) Qubits() []int {
	if g.Single != nil {
		return []int{g.Single.Qubit}
	}
	if g.Two != nil {
		return []int{g.Two.Control, g.Two.Target}
	}
	return nil
}

func (g Gate) String() string {
	switch {
	case g.Single != nil:
		return fmt.Sprintf("%s(%d)", g.Single.Gate, g.Single.Qubit)
	case g.Two != nil:
		return fmt.Sprintf("%s(%d, %d)", g.Two.Kind, g.Two.Control, g.Two.Target)
	}
	return "nop"
}

// Circuit is an ordered gate sequence over a qubit register.
type Circuit struct {
	Qubits int    `json:"num_qubits" yaml:"num_qubits"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Gates  []Gate `json:"gates" yaml:"gates"`
}

func New(qubits int) *Circuit {
	return &Circuit{Qubits: qubits, Gates: make([]Gate, 0)}
}

// AddGate appends a gate after validating its qubit indices.
func (c *Circuit) AddGate(g Gate) error {
	if g.Single == nil && g.Two == nil {
		return fmt.Errorf("empty gate")
	}
	if g.Two != nil && g.Two.Control == g.Two.Target {
		return fmt.Errorf("%s control and target must differ", g.Two.Kind)
	}
	for _, q := range g.Qubits() {
		if q < 0 || q >= c.Qubits {
			return fmt.Errorf("gate %s acts on qubit %d but circuit has %d qubits", g, q, c.Qubits)
		}
	}
	c.Gates = append(c.Gates, g)
	return nil
}

// GateAt returns the gate occupying time step t, or nil past the end.
func (c *Circuit) GateAt(t int) *Gate {
	if t < 0 || t >= len(c.Gates) {
		return nil
	}
	return &c.Gates[t]
}

// Depth is the number of time steps in the circuit.
func (c *Circuit) Depth() int {
	return len(c.Gates)
}
