package sim

import (
	"context"
	"sync"

	"github.com/san-kum/qtrace/internal/circuit"
	"github.com/san-kum/qtrace/internal/pauli"
)

// SweepResult is the outcome of propagating one elementary error
// through the whole circuit.
type SweepResult struct {
	Qubit    int
	Injected pauli.Pauli
	Final    pauli.String
}

// Sweep propagates every single-qubit X, Y and Z error through the
// circuit, one simulator per case, and returns the final patterns in
// deterministic (qubit, operator) order.
func Sweep(ctx context.Context, c *circuit.Circuit) ([]SweepResult, error) {
	ops := []pauli.Pauli{pauli.X, pauli.Y, pauli.Z}
	results := make([]SweepResult, c.Qubits*len(ops))
	errs := make([]error, len(results))

	var wg sync.WaitGroup
	for q := 0; q < c.Qubits; q++ {
		for j, op := range ops {
			wg.Add(1)
			go func(idx, qubit int, op pauli.Pauli) {
				defer wg.Done()
				if ctx.Err() != nil {
					errs[idx] = ctx.Err()
					return
				}
				s, err := New(c)
				if err != nil {
					errs[idx] = err
					return
				}
				if err := s.InjectError(qubit, op); err != nil {
					errs[idx] = err
					return
				}
				if err := s.Run(); err != nil {
					errs[idx] = err
					return
				}
				results[idx] = SweepResult{Qubit: qubit, Injected: op, Final: s.ErrorPattern()}
			}(q*len(ops)+j, q, op)
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
