// Package backend defines the boundary to the quantum-simulation framework.
// The lessons treat the quantum subroutine as available but opaque: circuits
// are handed over as-is and only measurement counts come back. The package
// ships no simulator — the one executable implementation is the classical
// brute-force order finder that stands in for quantum order finding.
package backend

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"qed/internal/circuit"
	"qed/internal/numtheory"
)

// ErrNoBackend is returned when circuit execution is requested but no
// external framework is configured.
var ErrNoBackend = errors.New("backend: no quantum backend configured")

// Counts maps measured bitstrings to their frequency over a run's shots.
type Counts map[string]int

// Shots returns the total number of measurements in c.
func (c Counts) Shots() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Probabilities normalizes counts into outcome probabilities.
func (c Counts) Probabilities() map[string]float64 {
	shots := c.Shots()
	if shots == 0 {
		return map[string]float64{}
	}
	probs := make(map[string]float64, len(c))
	for outcome, n := range c {
		probs[outcome] = float64(n) / float64(shots)
	}
	return probs
}

// Outcomes returns the observed bitstrings sorted by descending frequency,
// ties broken lexicographically; display order for the CLI.
func (c Counts) Outcomes() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if c[keys[i]] != c[keys[j]] {
			return c[keys[i]] > c[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Backend executes circuits. Implementations wrap an external framework.
type Backend interface {
	Name() string
	Run(ctx context.Context, c *circuit.Circuit, shots int) (Counts, error)
}

// OrderFinder produces the multiplicative order of a modulo n. The quantum
// implementation lives behind a Backend; the classical one iterates.
type OrderFinder interface {
	FindOrder(ctx context.Context, a, n int64) (int64, error)
}

// null is the default backend: every run fails with ErrNoBackend, which is
// the repository's stated relationship to the external framework.
type null struct{}

func (null) Name() string { return "none" }

func (null) Run(ctx context.Context, c *circuit.Circuit, shots int) (Counts, error) {
	return nil, fmt.Errorf("cannot run %q: %w", c.Name, ErrNoBackend)
}

// Classical is the brute-force order finder standing in for the quantum
// subroutine. OrderBound caps the search; zero means exhaustive.
type Classical struct {
	OrderBound int64
}

// FindOrder iterates powers of a modulo n until it cycles back to 1. The
// search honors ctx: MulOrder checks it periodically, so a stuck search on a
// large modulus stays cancellable.
func (c Classical) FindOrder(ctx context.Context, a, n int64) (int64, error) {
	bound := c.OrderBound
	if bound <= 0 || bound > n {
		bound = n
	}
	return numtheory.MulOrder(ctx, a, n, bound)
}

// registry of constructable backends, keyed by config name.
var backends = map[string]func() Backend{
	"none": func() Backend { return null{} },
}

// Open returns the named backend. Unknown names fail rather than silently
// falling back, so a typoed config is visible.
func Open(name string) (Backend, error) {
	if name == "" {
		name = "none"
	}
	ctor, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("backend: unknown backend %q (have %v)", name, Names())
	}
	return ctor(), nil
}

// Names lists the registered backend names.
func Names() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
