package pauli

import "testing"

func TestNewString(t *testing.T) {
	p, err := NewString(3)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if p.Qubits() != 3 {
		t.Errorf("expected 3 qubits, got %d", p.Qubits())
	}
	for q := 0; q < 3; q++ {
		op, err := p.Get(q)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if op != I {
			t.Errorf("qubit %d: expected I, got %v", q, op)
		}
	}
}

func TestNewStringInvalidSize(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"zero", 0},
		{"negative", -1},
		{"too large", 65},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewString(tt.n); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParse(t *testing.T) {
	p, err := Parse("X I Z", 3)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := []Pauli{X, I, Z}
	for q, expected := range want {
		op, _ := p.Get(q)
		if op != expected {
			t.Errorf("qubit %d: expected %v, got %v", q, expected, op)
		}
	}

	if p.String() != "XIZ" {
		t.Errorf("expected XIZ, got %s", p.String())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		n       int
	}{
		{"wrong length", "XI", 3},
		{"bad character", "XQZ", 3},
		{"empty", "", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.pattern, tt.n); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSetOverwrites(t *testing.T) {
	p, _ := NewString(2)
	if err := p.Set(0, X); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := p.Set(0, Z); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	op, _ := p.Get(0)
	if op != Z {
		t.Errorf("expected Z after overwrite, got %v", op)
	}
}

func TestSetOutOfRange(t *testing.T) {
	p, _ := NewString(2)
	if err := p.Set(5, X); err == nil {
		t.Error("expected error for out-of-range qubit")
	}
	if err := p.Set(-1, X); err == nil {
		t.Error("expected error for negative qubit")
	}
}

func TestMulIdentity(t *testing.T) {
	x, _ := Parse("X", 1)
	id, _ := Parse("I", 1)

	r, err := x.Mul(id)
	if err != nil {
		t.Fatalf("mul failed: %v", err)
	}
	if op, _ := r.Get(0); op != X {
		t.Errorf("X*I: expected X, got %v", op)
	}
	if r.Phase() != PhasePlusOne {
		t.Errorf("X*I: expected phase +1, got %v", r.Phase())
	}

	r, _ = id.Mul(x)
	if op, _ := r.Get(0); op != X {
		t.Errorf("I*X: expected X, got %v", op)
	}
}

func TestMulAnticommuting(t *testing.T) {
	x, _ := Parse("X", 1)
	z, _ := Parse("Z", 1)

	// X*Z = iY
	r, _ := x.Mul(z)
	if op, _ := r.Get(0); op != Y {
		t.Errorf("X*Z: expected Y, got %v", op)
	}
	if r.Phase() != PhasePlusI {
		t.Errorf("X*Z: expected phase +i, got %v", r.Phase())
	}

	// Z*X = -iY
	r, _ = z.Mul(x)
	if op, _ := r.Get(0); op != Y {
		t.Errorf("Z*X: expected Y, got %v", op)
	}
	if r.Phase() != PhaseMinusI {
		t.Errorf("Z*X: expected phase -i, got %v", r.Phase())
	}
}

func TestMulSelfInverse(t *testing.T) {
	for _, label := range []string{"X", "Y", "Z"} {
		p, _ := Parse(label, 1)
		r, _ := p.Mul(p)
		if op, _ := r.Get(0); op != I {
			t.Errorf("%s*%s: expected I, got %v", label, label, op)
		}
		if r.Phase() != PhasePlusOne {
			t.Errorf("%s*%s: expected phase +1, got %v", label, label, r.Phase())
		}
	}
}

func TestCommutes(t *testing.T) {
	x, _ := Parse("X", 1)
	z, _ := Parse("Z", 1)
	id, _ := Parse("I", 1)

	if x.Commutes(z) {
		t.Error("X and Z should anticommute")
	}
	if !x.Commutes(x) {
		t.Error("X should commute with itself")
	}
	if !id.Commutes(x) || !id.Commutes(z) {
		t.Error("I should commute with everything")
	}

	// XX and ZZ commute (two anticommuting pairs cancel)
	xx, _ := Parse("XX", 2)
	zz, _ := Parse("ZZ", 2)
	if !xx.Commutes(zz) {
		t.Error("XX and ZZ should commute")
	}
}

func TestWeight(t *testing.T) {
	tests := []struct {
		pattern string
		weight  int
	}{
		{"III", 0},
		{"XII", 1},
		{"XYZ", 3},
		{"IYI", 1},
	}
	for _, tt := range tests {
		p, _ := Parse(tt.pattern, 3)
		if p.Weight() != tt.weight {
			t.Errorf("%s: expected weight %d, got %d", tt.pattern, tt.weight, p.Weight())
		}
	}
}

func TestPhaseMul(t *testing.T) {
	if PhasePlusI.Mul(PhasePlusI) != PhaseMinusOne {
		t.Error("i*i should be -1")
	}
	if PhaseMinusOne.Mul(PhaseMinusOne) != PhasePlusOne {
		t.Error("(-1)*(-1) should be +1")
	}
	if PhasePlusI.Mul(PhaseMinusI) != PhasePlusOne {
		t.Error("i*(-i) should be +1")
	}
}

func TestFormat(t *testing.T) {
	p, _ := Parse("XI", 2)
	p.SetPhase(PhaseMinusI)
	if p.Format() != "-iXI" {
		t.Errorf("expected -iXI, got %s", p.Format())
	}
	p.SetPhase(PhasePlusOne)
	if p.Format() != "XI" {
		t.Errorf("expected XI, got %s", p.Format())
	}
}

func TestParsePauli(t *testing.T) {
	tests := []struct {
		in   string
		want Pauli
	}{
		{"X", X}, {"y", Y}, {"Z", Z}, {"I", I}, {"", I},
	}
	for _, tt := range tests {
		got, err := ParsePauli(tt.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("parse %q: expected %v, got %v", tt.in, tt.want, got)
		}
	}

	if _, err := ParsePauli("W"); err == nil {
		t.Error("expected error for invalid label")
	}
}
