// Package circuit provides a minimal gate-list representation of the
// demonstration circuits used by the lessons. Circuits are construction-only:
// they can be inspected and serialized to OpenQASM 2.0, but execution belongs
// to a backend. No unitary matrices are computed here.
package circuit

import (
	"fmt"
	"strings"
)

// GateType identifies a gate in the supported teaching set.
type GateType string

const (
	GateH       GateType = "h"
	GateX       GateType = "x"
	GateY       GateType = "y"
	GateZ       GateType = "z"
	GateS       GateType = "s"
	GateT       GateType = "t"
	GateRZ      GateType = "rz"
	GateCX      GateType = "cx"
	GateCZ      GateType = "cz"
	GateSwap    GateType = "swap"
	GateMeasure GateType = "measure"
	GateBarrier GateType = "barrier"
)

// Gate is a single operation on the circuit's qubits. Control is -1 for
// single-qubit gates. For measure gates Classical is the classical bit
// receiving the result.
type Gate struct {
	Type      GateType
	Target    int
	Control   int
	Classical int
	Theta     float64 // rz rotation angle, radians
}

// Circuit is an ordered gate list over named quantum and classical registers.
type Circuit struct {
	Name       string
	NumQubits  int
	NumBits    int
	Gates      []Gate
	QubitNames []string // optional register labels for display
}

// New creates an empty circuit with the given register sizes.
func New(name string, qubits, bits int) *Circuit {
	if qubits < 1 {
		qubits = 1
	}
	return &Circuit{Name: name, NumQubits: qubits, NumBits: bits}
}

func (c *Circuit) check(qubits ...int) {
	for _, q := range qubits {
		if q < 0 || q >= c.NumQubits {
			panic(fmt.Sprintf("circuit %q: qubit %d out of range [0, %d)", c.Name, q, c.NumQubits))
		}
	}
}

// H applies a Hadamard to qubit q.
func (c *Circuit) H(q int) *Circuit { return c.add(Gate{Type: GateH, Target: q, Control: -1}) }

// X applies a Pauli-X (NOT) to qubit q.
func (c *Circuit) X(q int) *Circuit { return c.add(Gate{Type: GateX, Target: q, Control: -1}) }

// Y applies a Pauli-Y to qubit q.
func (c *Circuit) Y(q int) *Circuit { return c.add(Gate{Type: GateY, Target: q, Control: -1}) }

// Z applies a Pauli-Z to qubit q.
func (c *Circuit) Z(q int) *Circuit { return c.add(Gate{Type: GateZ, Target: q, Control: -1}) }

// S applies the phase gate to qubit q.
func (c *Circuit) S(q int) *Circuit { return c.add(Gate{Type: GateS, Target: q, Control: -1}) }

// T applies the pi/8 gate to qubit q.
func (c *Circuit) T(q int) *Circuit { return c.add(Gate{Type: GateT, Target: q, Control: -1}) }

// RZ applies a z-rotation by theta radians to qubit q.
func (c *Circuit) RZ(q int, theta float64) *Circuit {
	return c.add(Gate{Type: GateRZ, Target: q, Control: -1, Theta: theta})
}

// CX applies a controlled-NOT with the given control and target.
func (c *Circuit) CX(control, target int) *Circuit {
	c.check(control, target)
	return c.add(Gate{Type: GateCX, Target: target, Control: control})
}

// CZ applies a controlled-Z.
func (c *Circuit) CZ(control, target int) *Circuit {
	c.check(control, target)
	return c.add(Gate{Type: GateCZ, Target: target, Control: control})
}

// Swap exchanges two qubits.
func (c *Circuit) Swap(a, b int) *Circuit {
	c.check(a, b)
	return c.add(Gate{Type: GateSwap, Target: b, Control: a})
}

// Barrier inserts a scheduling barrier across all qubits.
func (c *Circuit) Barrier() *Circuit {
	return c.add(Gate{Type: GateBarrier, Target: -1, Control: -1})
}

// Measure reads qubit q into classical bit b.
func (c *Circuit) Measure(q, b int) *Circuit {
	c.check(q)
	if b < 0 || b >= c.NumBits {
		panic(fmt.Sprintf("circuit %q: classical bit %d out of range [0, %d)", c.Name, b, c.NumBits))
	}
	return c.add(Gate{Type: GateMeasure, Target: q, Control: -1, Classical: b})
}

// MeasureAll measures every qubit into the classical bit of the same index.
func (c *Circuit) MeasureAll() *Circuit {
	for q := 0; q < c.NumQubits && q < c.NumBits; q++ {
		c.Measure(q, q)
	}
	return c
}

func (c *Circuit) add(g Gate) *Circuit {
	if g.Target >= 0 {
		c.check(g.Target)
	}
	c.Gates = append(c.Gates, g)
	return c
}

// Depth returns the number of gates, barriers excluded.
func (c *Circuit) Depth() int {
	n := 0
	for _, g := range c.Gates {
		if g.Type != GateBarrier {
			n++
		}
	}
	return n
}

// QASM serializes the circuit as OpenQASM 2.0, the interchange format the
// external backends consume.
func (c *Circuit) QASM() string {
	var b strings.Builder
	b.WriteString("OPENQASM 2.0;\n")
	b.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&b, "qreg q[%d];\n", c.NumQubits)
	if c.NumBits > 0 {
		fmt.Fprintf(&b, "creg c[%d];\n", c.NumBits)
	}
	b.WriteString("\n")
	for _, g := range c.Gates {
		switch g.Type {
		case GateMeasure:
			fmt.Fprintf(&b, "measure q[%d] -> c[%d];\n", g.Target, g.Classical)
		case GateBarrier:
			b.WriteString("barrier q;\n")
		case GateCX, GateCZ, GateSwap:
			fmt.Fprintf(&b, "%s q[%d],q[%d];\n", g.Type, g.Control, g.Target)
		case GateRZ:
			fmt.Fprintf(&b, "rz(%g) q[%d];\n", g.Theta, g.Target)
		default:
			fmt.Fprintf(&b, "%s q[%d];\n", g.Type, g.Target)
		}
	}
	return b.String()
}

// Listing returns a one-gate-per-line human readable form used by the CLI
// when no QASM output was requested.
func (c *Circuit) Listing() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d qubit(s), %d classical bit(s), depth %d\n", c.Name, c.NumQubits, c.NumBits, c.Depth())
	for i, g := range c.Gates {
		switch g.Type {
		case GateMeasure:
			fmt.Fprintf(&b, "%3d  measure q%d -> c%d\n", i, g.Target, g.Classical)
		case GateBarrier:
			fmt.Fprintf(&b, "%3d  barrier\n", i)
		case GateCX, GateCZ, GateSwap:
			fmt.Fprintf(&b, "%3d  %-4s q%d, q%d\n", i, strings.ToUpper(string(g.Type)), g.Control, g.Target)
		case GateRZ:
			fmt.Fprintf(&b, "%3d  RZ(%.4f) q%d\n", i, g.Theta, g.Target)
		default:
			fmt.Fprintf(&b, "%3d  %-4s q%d\n", i, strings.ToUpper(string(g.Type)), g.Target)
		}
	}
	return b.String()
}
