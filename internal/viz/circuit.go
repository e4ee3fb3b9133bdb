package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/qtrace/internal/circuit"
	"github.com/san-kum/qtrace/internal/pauli"
)

const colWidth = 5

// Diagram draws the circuit as one wire per qubit with gates laid out
// in time-step columns. The current error operator of each qubit is
// shown next to its wire label, and the cursor marks the next time
// step to execute. Pass cursor -1 to draw without a marker.
func Diagram(c *circuit.Circuit, pattern pauli.String, cursor int) string {
	var b strings.Builder

	for q := 0; q < c.Qubits; q++ {
		op := pauli.I
		if pattern.Qubits() == c.Qubits {
			op, _ = pattern.Get(q)
		}
		label := " "
		if op != pauli.I {
			label = op.String()
		}
		b.WriteString(fmt.Sprintf("q%d %s ", q, label))

		for t := 0; t < c.Depth(); t++ {
			b.WriteString(gateCell(c.GateAt(t), q))
		}
		b.WriteString("─\n")
	}

	if cursor >= 0 && cursor <= c.Depth() {
		// The label prefix is "qN X " wide.
		pad := 5 + cursor*colWidth
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString("^\n")
	}

	return b.String()
}

func gateCell(g *circuit.Gate, qubit int) string {
	if g == nil {
		return strings.Repeat("─", colWidth)
	}
	switch {
	case g.Single != nil && g.Single.Qubit == qubit:
		return boxed(singleMark(g.Single.Gate))
	case g.Two != nil && (g.Two.Control == qubit || g.Two.Target == qubit):
		return "──" + twoMark(g.Two, qubit) + "──"
	}
	return strings.Repeat("─", colWidth)
}

func singleMark(g circuit.SingleGate) string {
	if g == circuit.GateSdg {
		return "S†"
	}
	return string(g)
}

func twoMark(g *circuit.Two, qubit int) string {
	switch g.Kind {
	case circuit.GateCNOT:
		if qubit == g.Control {
			return "●"
		}
		return "⊕"
	case circuit.GateCZ:
		return "●"
	case circuit.GateSWAP:
		return "×"
	}
	return "?"
}

func boxed(mark string) string {
	// keep every column the same rune width
	if len([]rune(mark)) >= 2 {
		return "[" + mark + "]─"
	}
	return "─[" + mark + "]─"
}
