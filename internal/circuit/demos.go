package circuit

import (
	"fmt"
	"sort"
	"strings"
)

// Bell prepares the |Φ+⟩ = (|00⟩ + |11⟩)/√2 Bell pair and measures both
// qubits.
func Bell() *Circuit {
	c := New("bell", 2, 2)
	c.H(0).CX(0, 1)
	c.MeasureAll()
	return c
}

// Teleportation builds the three-qubit teleportation circuit: q0 holds the
// state to send, q1/q2 are the shared Bell pair. The final X and Z are the
// classically controlled corrections, written here unconditionally because
// the gate list carries no classical control; a backend applies them based
// on c0/c1.
func Teleportation() *Circuit {
	c := New("teleportation", 3, 3)
	// State to teleport: rotate q0 off the computational basis so the
	// demo is not trivially |0⟩.
	c.H(0).T(0)
	c.Barrier()
	// Shared entanglement between q1 (Alice) and q2 (Bob).
	c.H(1).CX(1, 2)
	c.Barrier()
	// Bell measurement on Alice's side.
	c.CX(0, 1).H(0)
	c.Measure(0, 0).Measure(1, 1)
	c.Barrier()
	// Bob's corrections.
	c.X(2).Z(2)
	c.Measure(2, 2)
	return c
}

// Deutsch builds Deutsch's algorithm for a one-bit oracle. When balanced is
// true the oracle is f(x) = x (implemented as CX); otherwise f is constant
// and the oracle is empty. Measuring q0 yields 1 exactly when f is balanced.
func Deutsch(balanced bool) *Circuit {
	name := "deutsch-constant"
	if balanced {
		name = "deutsch-balanced"
	}
	c := New(name, 2, 1)
	c.X(1)
	c.H(0).H(1)
	c.Barrier()
	if balanced {
		c.CX(0, 1)
	}
	c.Barrier()
	c.H(0)
	c.Measure(0, 0)
	return c
}

// BernsteinVazirani recovers the hidden bit string s in a single oracle
// query. The oracle computes s·x into the ancilla; measuring the input
// register reads off s directly.
func BernsteinVazirani(secret string) (*Circuit, error) {
	n := len(secret)
	if n == 0 {
		return nil, fmt.Errorf("circuit: empty secret")
	}
	for _, r := range secret {
		if r != '0' && r != '1' {
			return nil, fmt.Errorf("circuit: secret %q is not a bit string", secret)
		}
	}
	c := New("bernstein-vazirani", n+1, n)
	ancilla := n
	c.X(ancilla).H(ancilla)
	for q := 0; q < n; q++ {
		c.H(q)
	}
	c.Barrier()
	// Oracle: CX from each qubit where the secret bit is 1. Bit 0 of the
	// string is the leftmost character, mapped to the highest qubit so the
	// measured bitstring reads in the same order.
	for i, r := range secret {
		if r == '1' {
			c.CX(n-1-i, ancilla)
		}
	}
	c.Barrier()
	for q := 0; q < n; q++ {
		c.H(q)
	}
	for q := 0; q < n; q++ {
		c.Measure(q, q)
	}
	return c, nil
}

// Grover builds one Grover iteration over two qubits searching for |11⟩,
// which for a 4-element space already amplifies the marked state to
// certainty.
func Grover() *Circuit {
	c := New("grover", 2, 2)
	c.H(0).H(1)
	c.Barrier()
	// Oracle marking |11⟩.
	c.CZ(0, 1)
	c.Barrier()
	// Diffusion operator.
	c.H(0).H(1)
	c.Z(0).Z(1)
	c.CZ(0, 1)
	c.H(0).H(1)
	c.MeasureAll()
	return c
}

// ShorOrderFinding sketches the order-finding register layout for a^x mod N
// with a t-qubit phase register and an m-qubit work register. The modular
// exponentiation block is the part "assumed available" from the external
// framework, so it appears only as a barrier-delimited placeholder.
func ShorOrderFinding(phaseQubits, workQubits int) *Circuit {
	if phaseQubits < 1 {
		phaseQubits = 3
	}
	if workQubits < 1 {
		workQubits = 4
	}
	c := New("shor-order-finding", phaseQubits+workQubits, phaseQubits)
	for q := 0; q < phaseQubits; q++ {
		c.H(q)
	}
	c.X(phaseQubits) // work register starts in |1⟩
	c.Barrier()
	// Controlled modular exponentiation would sit here.
	c.Barrier()
	// Inverse QFT on the phase register (swaps plus controlled rotations
	// collapsed to the named gates the teaching set has).
	for q := 0; q < phaseQubits/2; q++ {
		c.Swap(q, phaseQubits-1-q)
	}
	for q := 0; q < phaseQubits; q++ {
		c.H(q)
	}
	for q := 0; q < phaseQubits; q++ {
		c.Measure(q, q)
	}
	return c
}

// Demo names a constructor so the CLI can build circuits by name.
type Demo struct {
	Name        string
	Description string
	Build       func() *Circuit
}

var demos = []Demo{
	{"bell", "Bell pair: entangle two qubits and measure", Bell},
	{"teleportation", "Teleport a qubit state using a shared Bell pair", Teleportation},
	{"deutsch", "Deutsch's algorithm with a balanced oracle", func() *Circuit { return Deutsch(true) }},
	{"deutsch-constant", "Deutsch's algorithm with a constant oracle", func() *Circuit { return Deutsch(false) }},
	{"bernstein-vazirani", "Recover the hidden string 1011 in one query", func() *Circuit {
		c, _ := BernsteinVazirani("1011")
		return c
	}},
	{"grover", "Grover search for |11> on two qubits", Grover},
	{"shor", "Order-finding register sketch for Shor's algorithm", func() *Circuit { return ShorOrderFinding(3, 4) }},
}

// Demos lists the available named demos sorted by name.
func Demos() []Demo {
	out := make([]Demo, len(demos))
	copy(out, demos)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FindDemo resolves a demo by name, case-insensitively.
func FindDemo(name string) (Demo, bool) {
	for _, d := range demos {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Demo{}, false
}
