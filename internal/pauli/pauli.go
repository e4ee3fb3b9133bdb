// Package pauli implements multi-qubit Pauli operators in bit-packed
// symplectic form.
//
// A [String] stores one bit vector for X components and one for Z
// components (a set bit in both means Y), together with a global [Phase]
// from {+1, +i, -1, -i}. This makes gate conjugation and operator
// multiplication cheap bitwise operations for registers up to 64 qubits.
package pauli

import (
	"fmt"
	"math/bits"
	"strings"
)

// Phase is the overall phase factor of a Pauli operator,
// encoded as 0 = +1, 1 = +i, 2 = -1, 3 = -i.
type Phase uint8

const (
	PhasePlusOne Phase = iota
	PhasePlusI
	PhaseMinusOne
	PhaseMinusI
)

func (p Phase) Mul(q Phase) Phase {
	return Phase((uint8(p) + uint8(q)) & 3)
}

func (p Phase) Negate() Phase {
	return p.Mul(PhaseMinusOne)
}

func (p Phase) String() string {
	switch p & 3 {
	case PhasePlusI:
		return "i"
	case PhaseMinusOne:
		return "-"
	case PhaseMinusI:
		return "-i"
	default:
		return ""
	}
}

// Pauli is a single-qubit Pauli operator.
type Pauli uint8

const (
	I Pauli = iota
	X
	Z
	Y
)

func (p Pauli) String() string {
	switch p {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return "I"
	}
}

// ParsePauli reads a single Pauli label. The empty string and "I" both
// parse as the identity.
func ParsePauli(s string) (Pauli, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "I":
		return I, nil
	case "X":
		return X, nil
	case "Y":
		return Y, nil
	case "Z":
		return Z, nil
	}
	return I, fmt.Errorf("invalid pauli label: %q", s)
}

// MaxQubits is the register size limit of the packed representation.
const MaxQubits = 64

// String is a Pauli operator over a fixed-size qubit register.
// The zero value is not usable; construct with NewString or Parse.
type String struct {
	x      uint64
	z      uint64
	phase  Phase
	qubits int
}

// NewString returns the identity operator on n qubits.
func NewString(n int) (String, error) {
	if n <= 0 || n > MaxQubits {
		return String{}, fmt.Errorf("register size must be in 1..%d, got %d", MaxQubits, n)
	}
	return String{qubits: n}, nil
}

// Parse builds a Pauli string from a label sequence such as "XIZ" or
// "X I Z". Whitespace is ignored; the label count must match n.
func Parse(s string, n int) (String, error) {
	p, err := NewString(n)
	if err != nil {
		return String{}, err
	}
	labels := strings.Fields(strings.ToUpper(s))
	compact := strings.Join(labels, "")
	if len(compact) != n {
		return String{}, fmt.Errorf("pattern %q has %d labels, register has %d qubits", s, len(compact), n)
	}
	for i, ch := range compact {
		switch ch {
		case 'I':
		case 'X':
			p.x |= 1 << i
		case 'Z':
			p.z |= 1 << i
		case 'Y':
			p.x |= 1 << i
			p.z |= 1 << i
		default:
			return String{}, fmt.Errorf("invalid pauli character %q in %q", ch, s)
		}
	}
	return p, nil
}

func (p String) Qubits() int {
	return p.qubits
}

func (p String) Phase() Phase {
	return p.phase
}

func (p String) Get(qubit int) (Pauli, error) {
	if qubit < 0 || qubit >= p.qubits {
		return I, fmt.Errorf("qubit %d out of range (register size %d)", qubit, p.qubits)
	}
	x := (p.x >> qubit) & 1
	z := (p.z >> qubit) & 1
	switch {
	case x == 1 && z == 1:
		return Y, nil
	case x == 1:
		return X, nil
	case z == 1:
		return Z, nil
	}
	return I, nil
}

// Set replaces the operator on one qubit, leaving the phase untouched.
func (p *String) Set(qubit int, op Pauli) error {
	if qubit < 0 || qubit >= p.qubits {
		return fmt.Errorf("qubit %d out of range (register size %d)", qubit, p.qubits)
	}
	mask := ^(uint64(1) << qubit)
	p.x &= mask
	p.z &= mask
	switch op {
	case X:
		p.x |= 1 << qubit
	case Z:
		p.z |= 1 << qubit
	case Y:
		p.x |= 1 << qubit
		p.z |= 1 << qubit
	}
	return nil
}

// Mul returns p*q with the symplectic phase correction
// i^(x1·z2 - z1·x2).
func (p String) Mul(q String) (String, error) {
	if p.qubits != q.qubits {
		return String{}, fmt.Errorf("register size mismatch: %d vs %d", p.qubits, q.qubits)
	}
	out := String{
		x:      p.x ^ q.x,
		z:      p.z ^ q.z,
		phase:  p.phase.Mul(q.phase),
		qubits: p.qubits,
	}
	pos := bits.OnesCount64(p.x & q.z)
	neg := bits.OnesCount64(p.z & q.x)
	exp := ((pos-neg)%4 + 4) % 4
	out.phase = out.phase.Mul(Phase(exp))
	return out, nil
}

// Commutes reports whether the symplectic product of p and q is even.
func (p String) Commutes(q String) bool {
	if p.qubits != q.qubits {
		return false
	}
	return bits.OnesCount64((p.x&q.z)^(p.z&q.x))%2 == 0
}

// Weight counts qubits carrying a non-identity operator.
func (p String) Weight() int {
	return bits.OnesCount64(p.x | p.z)
}

func (p String) XBits() uint64 { return p.x }
func (p String) ZBits() uint64 { return p.z }

func (p *String) SetXBits(x uint64)    { p.x = x }
func (p *String) SetZBits(z uint64)    { p.z = z }
func (p *String) SetPhase(phase Phase) { p.phase = phase }
func (p *String) MulPhase(phase Phase) { p.phase = p.phase.Mul(phase) }

// String renders the per-qubit labels in qubit order without the
// phase prefix, e.g. "XIZ". Use Format for a phase-qualified form.
func (p String) String() string {
	var b strings.Builder
	for q := 0; q < p.qubits; q++ {
		op, _ := p.Get(q)
		b.WriteString(op.String())
	}
	return b.String()
}

// Format renders the operator with its phase prefix, e.g. "-iXIZ".
func (p String) Format() string {
	return p.phase.String() + p.String()
}
