// Package latex renders circuits as qcircuit LaTeX diagrams.
package latex

import (
	"fmt"
	"strings"

	"github.com/san-kum/qtrace/internal/circuit"
)

// Export renders a standalone qcircuit document, one column per gate.
func Export(c *circuit.Circuit) string {
	var b strings.Builder
	b.WriteString("\\documentclass{article}\n")
	b.WriteString("\\usepackage{qcircuit}\n")
	b.WriteString("\\begin{document}\n")
	b.WriteString("\\begin{equation*}\n")
	b.WriteString("\\Qcircuit @C=1em @R=.7em {\n")

	for q := 0; q < c.Qubits; q++ {
		cells := make([]string, 0, c.Depth())
		for _, g := range c.Gates {
			cells = append(cells, cell(&g, q))
		}
		b.WriteString(strings.Join(cells, " & "))
		b.WriteString(" \\\\\n")
	}

	b.WriteString("}\n")
	b.WriteString("\\end{equation*}\n")
	b.WriteString("\\end{document}\n")
	return b.String()
}

func cell(g *circuit.Gate, qubit int) string {
	switch {
	case g.Single != nil && g.Single.Qubit == qubit:
		return singleCell(g.Single.Gate)
	case g.Two != nil:
		return twoCell(g.Two, qubit)
	}
	return "\\qw"
}

func singleCell(g circuit.SingleGate) string {
	switch g {
	case circuit.GateH:
		return "\\gate{H}"
	case circuit.GateS:
		return "\\gate{S}"
	case circuit.GateSdg:
		return "\\gate{S^\\dagger}"
	case circuit.GateX:
		return "\\gate{X}"
	case circuit.GateY:
		return "\\gate{Y}"
	case circuit.GateZ:
		return "\\gate{Z}"
	}
	return "\\qw"
}

func twoCell(g *circuit.Two, qubit int) string {
	switch g.Kind {
	case circuit.GateCNOT:
		if g.Control == qubit {
			span := g.Target - g.Control
			return fmt.Sprintf("\\ctrl{%d}", span)
		}
		if g.Target == qubit {
			return "\\targ"
		}
	case circuit.GateCZ:
		if g.Control == qubit {
			span := g.Target - g.Control
			return fmt.Sprintf("\\ctrl{%d}", span)
		}
		if g.Target == qubit {
			return "\\control \\qw"
		}
	case circuit.GateSWAP:
		if g.Control == qubit || g.Target == qubit {
			return "\\qswap"
		}
	}
	return "\\qw"
}
