package circuit

import (
	"strings"
	"testing"
)

func TestBellQASM(t *testing.T) {
	qasm := Bell().QASM()
	for _, want := range []string{
		"OPENQASM 2.0;",
		"qreg q[2];",
		"creg c[2];",
		"h q[0];",
		"cx q[0],q[1];",
		"measure q[0] -> c[0];",
		"measure q[1] -> c[1];",
	} {
		if !strings.Contains(qasm, want) {
			t.Errorf("Bell QASM missing %q:\n%s", want, qasm)
		}
	}
}

func TestDeutschOracle(t *testing.T) {
	balanced := Deutsch(true)
	constant := Deutsch(false)
	if !strings.Contains(balanced.QASM(), "cx q[0],q[1];") {
		t.Error("balanced oracle should contain a CX")
	}
	if strings.Contains(constant.QASM(), "cx") {
		t.Error("constant oracle should be empty")
	}
	if constant.NumBits != 1 {
		t.Errorf("deutsch measures one bit, got %d", constant.NumBits)
	}
}

func TestBernsteinVazirani(t *testing.T) {
	c, err := BernsteinVazirani("1011")
	if err != nil {
		t.Fatal(err)
	}
	if c.NumQubits != 5 {
		t.Errorf("expected 4 input qubits plus ancilla, got %d", c.NumQubits)
	}
	// Three 1-bits in the secret, three oracle CX gates.
	oracle := 0
	for _, g := range c.Gates {
		if g.Type == GateCX {
			oracle++
		}
	}
	if oracle != 3 {
		t.Errorf("expected 3 oracle CX gates, got %d", oracle)
	}

	if _, err := BernsteinVazirani("10x1"); err == nil {
		t.Error("expected error for non-bit secret")
	}
	if _, err := BernsteinVazirani(""); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestDepthExcludesBarriers(t *testing.T) {
	c := New("t", 1, 0)
	c.H(0).Barrier().X(0)
	if got := c.Depth(); got != 2 {
		t.Errorf("Depth() = %d, want 2", got)
	}
}

func TestOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range qubit")
		}
	}()
	New("t", 2, 2).CX(0, 5)
}

func TestFindDemo(t *testing.T) {
	for _, d := range Demos() {
		c := d.Build()
		if c == nil || len(c.Gates) == 0 {
			t.Errorf("demo %q built an empty circuit", d.Name)
		}
	}
	if _, ok := FindDemo("GROVER"); !ok {
		t.Error("demo lookup should be case-insensitive")
	}
	if _, ok := FindDemo("nope"); ok {
		t.Error("unexpected demo match")
	}
}
