// Package analysis computes summary statistics over recorded error
// timelines: how far an injected error spreads, how its weight grows
// over the circuit, and how often the global phase flips sign.
package analysis

import (
	"github.com/san-kum/qtrace/internal/pauli"
	"github.com/san-kum/qtrace/internal/session"
	"github.com/san-kum/qtrace/internal/sim"
)

// Summary condenses one recorded timeline.
type Summary struct {
	Steps        int
	MaxWeight    int
	FinalWeight  int
	FinalPattern string
	PhaseFlips   int
	// QubitsTouched counts qubits that carried a non-identity error
	// at any recorded step.
	QubitsTouched int
}

// WeightSeries returns the Pauli weight of each recorded entry in
// time order. Unparseable patterns count as weight zero.
func WeightSeries(entries []session.Entry) []float64 {
	series := make([]float64, 0, len(entries))
	for _, e := range entries {
		w := 0
		if p, err := pauli.Parse(e.Pattern, len(e.Pattern)); err == nil {
			w = p.Weight()
		}
		series = append(series, float64(w))
	}
	return series
}

// PhaseFlips counts transitions between consecutive entries whose
// phases differ.
func PhaseFlips(entries []session.Entry) int {
	flips := 0
	for i := 1; i < len(entries); i++ {
		if entries[i].Phase != entries[i-1].Phase {
			flips++
		}
	}
	return flips
}

func Summarize(entries []session.Entry) Summary {
	s := Summary{Steps: len(entries)}
	if len(entries) == 0 {
		return s
	}

	var touched uint64
	for _, e := range entries {
		p, err := pauli.Parse(e.Pattern, len(e.Pattern))
		if err != nil {
			continue
		}
		w := p.Weight()
		if w > s.MaxWeight {
			s.MaxWeight = w
		}
		touched |= p.XBits() | p.ZBits()
	}

	last := entries[len(entries)-1]
	s.FinalPattern = last.Pattern
	if p, err := pauli.Parse(last.Pattern, len(last.Pattern)); err == nil {
		s.FinalWeight = p.Weight()
	}
	s.PhaseFlips = PhaseFlips(entries)

	for ; touched != 0; touched &= touched - 1 {
		s.QubitsTouched++
	}
	return s
}

// SweepStats aggregates a full single-error sweep: for each injected
// error, whether propagation grew its weight beyond one.
type SweepStats struct {
	Total     int
	Spreading int
	MaxWeight int
}

func SummarizeSweep(results []sim.SweepResult) SweepStats {
	var st SweepStats
	st.Total = len(results)
	for _, r := range results {
		w := r.Final.Weight()
		if w > 1 {
			st.Spreading++
		}
		if w > st.MaxWeight {
			st.MaxWeight = w
		}
	}
	return st
}
