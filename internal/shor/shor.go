// Package shor implements the classical shell of Shor's factoring algorithm:
// precondition checks, base selection, the reduction from order finding to a
// factor pair, and the retry loop around the (assumed available) quantum
// order-finding subroutine.
package shor

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"qed/internal/backend"
	"qed/internal/numtheory"
)

var (
	// ErrTooSmall rejects inputs below 4; they have no nontrivial factor
	// pair worth reporting.
	ErrTooSmall = errors.New("shor: n must be at least 4")

	// ErrPrime rejects prime inputs up front. Left unchecked a prime n
	// would loop forever, since no base can ever produce a factor.
	ErrPrime = errors.New("shor: n is prime")

	// ErrAttemptsExceeded reports that the probabilistic loop hit its
	// attempt bound without finding a factor.
	ErrAttemptsExceeded = errors.New("shor: attempt limit reached without finding a factor")
)

// DefaultMaxAttempts bounds the base-selection loop. Each attempt with a
// random base succeeds with probability at least 1/2, so 64 attempts failing
// is overwhelmingly more likely to mean a malformed input than bad luck.
const DefaultMaxAttempts = 64

// Options configures Factor. The zero value uses the global rand source,
// the classical order finder and DefaultMaxAttempts.
type Options struct {
	// Rand supplies base choices; tests inject a seeded source.
	Rand *rand.Rand

	// Orders finds multiplicative orders. Defaults to the classical
	// brute-force stand-in.
	Orders backend.OrderFinder

	// MaxAttempts bounds the retry loop; <= 0 means DefaultMaxAttempts.
	MaxAttempts int
}

// Result describes a successful factorization.
type Result struct {
	N        int64
	Factors  [2]int64
	Base     int64 // base that produced the factors; 0 for shortcut paths
	Order    int64 // order of Base mod N; 0 when no order was needed
	Attempts int   // bases tried, shortcut paths report 0
	Lucky    bool  // factor came from gcd(a, N) > 1, no order finding
}

func (r Result) String() string {
	return fmt.Sprintf("%d = %d x %d", r.N, r.Factors[0], r.Factors[1])
}

// Factor finds a nontrivial factor pair of n. Even inputs and perfect powers
// are handled classically; otherwise random bases are tried until the order
// of a base yields a factor through gcd(a^(r/2) +- 1, n), up to the attempt
// bound. Prime n fails fast with ErrPrime.
func Factor(ctx context.Context, n int64, opts Options) (Result, error) {
	if n < 4 {
		return Result{}, fmt.Errorf("%w (got %d)", ErrTooSmall, n)
	}
	if n%2 == 0 {
		return Result{N: n, Factors: pair(2, n/2)}, nil
	}
	if numtheory.IsPrime(n) {
		return Result{}, fmt.Errorf("%w (got %d)", ErrPrime, n)
	}
	if k := numtheory.PerfectPower(n); k > 1 {
		root, ok := numtheory.Root(n, k)
		if !ok {
			return Result{}, fmt.Errorf("shor: internal error: %d claimed a %d-th power", n, k)
		}
		return Result{N: n, Factors: pair(root, n/root)}, nil
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	orders := opts.Orders
	if orders == nil {
		orders = backend.Classical{}
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		a := 2 + rng.Int63n(n-3) // uniform in [2, n-2]

		if g := numtheory.GCD(a, n); g > 1 {
			return Result{N: n, Factors: pair(g, n/g), Base: a, Attempts: attempt, Lucky: true}, nil
		}

		r, err := orders.FindOrder(ctx, a, n)
		if err != nil {
			if errors.Is(err, numtheory.ErrOrderNotFound) {
				continue
			}
			return Result{}, fmt.Errorf("order finding for base %d: %w", a, err)
		}

		// Odd order, or a^(r/2) == -1 mod n: this base reveals nothing.
		if r%2 != 0 {
			continue
		}
		y := numtheory.ModPow(a, r/2, n)
		if y == n-1 {
			continue
		}

		f := numtheory.GCD(y-1, n)
		if f == 1 || f == n {
			f = numtheory.GCD(y+1, n)
		}
		if f == 1 || f == n {
			continue
		}
		return Result{N: n, Factors: pair(f, n/f), Base: a, Order: r, Attempts: attempt}, nil
	}

	return Result{}, fmt.Errorf("%w (n=%d, attempts=%d)", ErrAttemptsExceeded, n, maxAttempts)
}

// pair orders a factor pair ascending.
func pair(a, b int64) [2]int64 {
	if a > b {
		a, b = b, a
	}
	return [2]int64{a, b}
}
