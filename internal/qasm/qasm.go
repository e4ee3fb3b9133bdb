// Package qasm reads and writes circuits in OpenQASM 2.0.
package qasm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/qtrace/internal/circuit"
)

var singleNames = map[circuit.SingleGate]string{
	circuit.GateH:   "h",
	circuit.GateS:   "s",
	circuit.GateSdg: "sdg",
	circuit.GateX:   "x",
	circuit.GateY:   "y",
	circuit.GateZ:   "z",
}

// Export renders the circuit as an OpenQASM 2.0 program. Identity
// gates have no QASM counterpart and are skipped.
func Export(c *circuit.Circuit) string {
	var b strings.Builder
	b.WriteString("OPENQASM 2.0;\n")
	b.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&b, "qreg q[%d];\n\n", c.Qubits)

	for _, g := range c.Gates {
		switch {
		case g.Single != nil:
			name, ok := singleNames[g.Single.Gate]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "%s q[%d];\n", name, g.Single.Qubit)
		case g.Two != nil:
			switch g.Two.Kind {
			case circuit.GateCNOT:
				fmt.Fprintf(&b, "cx q[%d],q[%d];\n", g.Two.Control, g.Two.Target)
			case circuit.GateCZ:
				fmt.Fprintf(&b, "cz q[%d],q[%d];\n", g.Two.Control, g.Two.Target)
			case circuit.GateSWAP:
				fmt.Fprintf(&b, "swap q[%d],q[%d];\n", g.Two.Control, g.Two.Target)
			}
		}
	}
	return b.String()
}

var singleGates = map[string]circuit.SingleGate{
	"h":   circuit.GateH,
	"s":   circuit.GateS,
	"sdg": circuit.GateSdg,
	"x":   circuit.GateX,
	"y":   circuit.GateY,
	"z":   circuit.GateZ,
	"id":  circuit.GateI,
}

// Import parses an OpenQASM 2.0 program into a circuit. Only the gate
// set the propagation engine understands is accepted.
func Import(src string) (*circuit.Circuit, error) {
	var c *circuit.Circuit

	for lineNum, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") ||
			strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") {
			continue
		}

		if strings.HasPrefix(line, "qreg ") {
			n, err := parseRegSize(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum+1, err)
			}
			c = circuit.New(n)
			continue
		}

		if !strings.HasSuffix(line, ";") {
			return nil, fmt.Errorf("line %d: missing semicolon: %q", lineNum+1, line)
		}
		if c == nil {
			return nil, fmt.Errorf("line %d: gate before qreg declaration", lineNum+1)
		}

		stmt := strings.TrimSuffix(line, ";")
		fields := strings.Fields(stmt)
		if len(fields) == 0 {
			continue
		}
		name := strings.ToLower(fields[0])

		var args []int
		if len(fields) > 1 {
			for _, a := range strings.Split(fields[1], ",") {
				q, err := parseQubit(strings.TrimSpace(a))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum+1, err)
				}
				args = append(args, q)
			}
		}

		var gate circuit.Gate
		switch name {
		case "h", "s", "sdg", "x", "y", "z", "id":
			if len(args) != 1 {
				return nil, fmt.Errorf("line %d: %s takes one qubit", lineNum+1, name)
			}
			gate = circuit.NewSingle(args[0], singleGates[name])
		case "cx":
			if len(args) != 2 {
				return nil, fmt.Errorf("line %d: cx takes two qubits", lineNum+1)
			}
			gate = circuit.NewTwo(circuit.GateCNOT, args[0], args[1])
		case "cz":
			if len(args) != 2 {
				return nil, fmt.Errorf("line %d: cz takes two qubits", lineNum+1)
			}
			gate = circuit.NewTwo(circuit.GateCZ, args[0], args[1])
		case "swap":
			if len(args) != 2 {
				return nil, fmt.Errorf("line %d: swap takes two qubits", lineNum+1)
			}
			gate = circuit.NewTwo(circuit.GateSWAP, args[0], args[1])
		default:
			return nil, fmt.Errorf("line %d: unsupported gate %q", lineNum+1, name)
		}

		if err := c.AddGate(gate); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum+1, err)
		}
	}

	if c == nil {
		return nil, fmt.Errorf("no qubit register declared")
	}
	return c, nil
}

func parseRegSize(line string) (int, error) {
	open := strings.Index(line, "[")
	end := strings.Index(line, "]")
	if open < 0 || end < open {
		return 0, fmt.Errorf("malformed qreg declaration: %q", line)
	}
	n, err := strconv.Atoi(line[open+1 : end])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("bad register size in %q", line)
	}
	return n, nil
}

func parseQubit(s string) (int, error) {
	// q[3] form
	if open := strings.Index(s, "["); open >= 0 {
		end := strings.Index(s, "]")
		if end < open {
			return 0, fmt.Errorf("malformed qubit reference: %q", s)
		}
		s = s[open+1 : end]
	}
	q, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("malformed qubit reference: %q", s)
	}
	return q, nil
}
