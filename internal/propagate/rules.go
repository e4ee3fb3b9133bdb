// Package propagate implements the conjugation rules P -> U P U† that
// carry a Pauli error pattern through each Clifford gate of a circuit.
package propagate

import (
	"fmt"

	"github.com/san-kum/qtrace/internal/circuit"
	"github.com/san-kum/qtrace/internal/pauli"
)

// ApplyGate conjugates the pattern by one gate in place.
func ApplyGate(p *pauli.String, g *circuit.Gate) error {
	switch {
	case g == nil:
		return fmt.Errorf("nil gate")
	case g.Single != nil:
		return ApplySingle(p, g.Single.Qubit, g.Single.Gate)
	case g.Two != nil:
		return ApplyTwo(p, g.Two)
	}
	return fmt.Errorf("empty gate")
}

// ApplySingle conjugates the pattern by a one-qubit gate.
func ApplySingle(p *pauli.String, qubit int, g circuit.SingleGate) error {
	if qubit < 0 || qubit >= p.Qubits() {
		return fmt.Errorf("%s acts on qubit %d, register has %d qubits", g, qubit, p.Qubits())
	}

	bit := uint64(1) << qubit
	hasX := p.XBits()&bit != 0
	hasZ := p.ZBits()&bit != 0

	switch g {
	case circuit.GateI:

	case circuit.GateX:
		// X anticommutes with Z and Y
		if hasZ {
			p.MulPhase(pauli.PhaseMinusOne)
		}

	case circuit.GateY:
		// Y anticommutes with pure X and pure Z
		if hasX != hasZ {
			p.MulPhase(pauli.PhaseMinusOne)
		}

	case circuit.GateZ:
		if hasX {
			p.MulPhase(pauli.PhaseMinusOne)
		}

	case circuit.GateH:
		// H swaps X and Z; Y picks up a sign
		x, z := p.XBits(), p.ZBits()
		x &^= bit
		z &^= bit
		if hasZ {
			x |= bit
		}
		if hasX {
			z |= bit
		}
		p.SetXBits(x)
		p.SetZBits(z)
		if hasX && hasZ {
			p.MulPhase(pauli.PhaseMinusOne)
		}

	case circuit.GateS:
		// S: X -> iY, Y -> -X, Z fixed. An accumulated -i cancels so
		// that S undoes a preceding Sdg exactly.
		if hasX {
			p.SetZBits(p.ZBits() ^ bit)
			switch {
			case !hasZ:
				p.MulPhase(pauli.PhasePlusI)
			case p.Phase() == pauli.PhaseMinusI:
				p.SetPhase(pauli.PhasePlusOne)
			default:
				p.MulPhase(pauli.PhaseMinusOne)
			}
		}

	case circuit.GateSdg:
		// Sdg: X -> -iY, Y -> X. An accumulated +i cancels so that Sdg
		// undoes a preceding S exactly.
		if hasX {
			p.SetZBits(p.ZBits() ^ bit)
			switch {
			case !hasZ:
				p.MulPhase(pauli.PhaseMinusI)
			case p.Phase() == pauli.PhasePlusI:
				p.SetPhase(pauli.PhasePlusOne)
			}
		}

	default:
		return fmt.Errorf("unknown gate %q", g)
	}
	return nil
}

// ApplyTwo conjugates the pattern by a two-qubit gate.
func ApplyTwo(p *pauli.String, g *circuit.Two) error {
	for _, q := range []int{g.Control, g.Target} {
		if q < 0 || q >= p.Qubits() {
			return fmt.Errorf("%s acts on qubit %d, register has %d qubits", g.Kind, q, p.Qubits())
		}
	}
	if g.Control == g.Target {
		return fmt.Errorf("%s control and target must differ", g.Kind)
	}

	cbit := uint64(1) << g.Control
	tbit := uint64(1) << g.Target

	switch g.Kind {
	case circuit.GateCNOT:
		xc := p.XBits()&cbit != 0
		zt := p.ZBits()&tbit != 0

		// X on control spreads to target; Z on target spreads to control
		if xc {
			p.SetXBits(p.XBits() | tbit)
		}
		if zt {
			p.SetZBits(p.ZBits() ^ cbit)
		}
		if xc && zt {
			p.MulPhase(pauli.PhaseMinusOne)
		}

	case circuit.GateCZ:
		xc := p.XBits()&cbit != 0
		xt := p.XBits()&tbit != 0

		if xc {
			p.SetZBits(p.ZBits() ^ tbit)
		}
		if xt {
			p.SetZBits(p.ZBits() ^ cbit)
		}
		if xc && xt {
			p.MulPhase(pauli.PhaseMinusOne)
		}

	case circuit.GateSWAP:
		x, z := p.XBits(), p.ZBits()
		swapped := func(bits uint64) uint64 {
			a := bits&cbit != 0
			b := bits&tbit != 0
			bits &^= cbit | tbit
			if b {
				bits |= cbit
			}
			if a {
				bits |= tbit
			}
			return bits
		}
		p.SetXBits(swapped(x))
		p.SetZBits(swapped(z))

	default:
		return fmt.Errorf("unknown gate %q", g.Kind)
	}
	return nil
}
