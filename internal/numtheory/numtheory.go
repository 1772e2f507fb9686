// Package numtheory implements the classical arithmetic used by the lessons:
// primality testing, perfect-power detection, modular exponentiation and
// multiplicative order finding. Everything operates on int64 and is written
// for clarity over speed; the lessons factor five-digit numbers, not RSA keys.
package numtheory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/bits"
)

// ErrOrderNotFound is returned when no multiplicative order exists below the
// search bound, which for coprime inputs can only happen when the bound is
// smaller than the modulus.
var ErrOrderNotFound = errors.New("numtheory: multiplicative order not found within bound")

// IsPrime reports whether n is prime, by trial division up to sqrt(n).
func IsPrime(n int64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := int64(3); d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// GCD returns the greatest common divisor of a and b.
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// MulMod computes a*b mod m without overflow for any positive m, using the
// full 128-bit product. a and b must already be reduced into [0, m).
func MulMod(a, b, m int64) int64 {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	// hi < m is guaranteed for a, b < m <= 2^63, so Div64 cannot trap.
	_, rem := bits.Div64(hi, lo, uint64(m))
	return int64(rem)
}

// ModPow computes base^exp mod m by repeated squaring. m must be positive
// and exp non-negative. The multiplies go through MulMod, so the result is
// exact for every int64 modulus.
func ModPow(base, exp, m int64) int64 {
	if m <= 0 {
		panic("numtheory: non-positive modulus")
	}
	if m == 1 {
		return 0
	}
	result := int64(1)
	base %= m
	if base < 0 {
		base += m
	}
	for exp > 0 {
		if exp&1 == 1 {
			result = MulMod(result, base, m)
		}
		base = MulMod(base, base, m)
		exp >>= 1
	}
	return result
}

// PerfectPower returns the largest exponent k >= 2 such that n = b^k for some
// integer b, or 1 when n is not a perfect power. Candidate exponents run up
// to log_2 n: any k-th root of n with k beyond that bound would be below 2.
func PerfectPower(n int64) int {
	if n < 4 {
		return 1
	}
	maxK := int(math.Log2(float64(n))) + 1
	for k := maxK; k >= 2; k-- {
		if root, ok := integerRoot(n, k); ok && root >= 2 {
			return k
		}
	}
	return 1
}

// Root returns the integer k-th root of n when n is an exact k-th power.
func Root(n int64, k int) (int64, bool) {
	return integerRoot(n, k)
}

// integerRoot finds b with b^k == n, if one exists. It starts from the
// floating-point estimate and checks the neighbouring integers to absorb
// rounding error.
func integerRoot(n int64, k int) (int64, bool) {
	if k < 1 || n < 1 {
		return 0, false
	}
	if k == 1 {
		return n, true
	}
	guess := int64(math.Round(math.Pow(float64(n), 1/float64(k))))
	for b := guess - 1; b <= guess+1; b++ {
		if b < 1 {
			continue
		}
		if pow, ok := checkedPow(b, k); ok && pow == n {
			return b, true
		}
	}
	return 0, false
}

// checkedPow computes b^k, reporting overflow instead of wrapping.
func checkedPow(b int64, k int) (int64, bool) {
	result := int64(1)
	for i := 0; i < k; i++ {
		if b != 0 && result > math.MaxInt64/b {
			return 0, false
		}
		result *= b
	}
	return result, true
}

// mulOrderCheckEvery is how many iterations MulOrder runs between context
// checks.
const mulOrderCheckEvery = 4096

// MulOrder finds the smallest r >= 1 with a^r == 1 (mod n) by brute-force
// iteration, the classical stand-in for the quantum order-finding subroutine.
// It requires gcd(a, n) == 1; otherwise no order exists. The search stops at
// bound; pass n as the bound for an exhaustive search (the order always
// divides the totient of n, which is below n). The search can run up to n
// iterations, so ctx is consulted every few thousand of them.
func MulOrder(ctx context.Context, a, n, bound int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if n < 2 {
		return 0, fmt.Errorf("numtheory: modulus %d out of range", n)
	}
	if g := GCD(a, n); g != 1 {
		return 0, fmt.Errorf("numtheory: gcd(%d, %d) = %d, order undefined", a, n, g)
	}
	if bound > n {
		bound = n
	}
	x := a % n
	if x < 0 {
		x += n
	}
	acc := x
	for r := int64(1); r <= bound; r++ {
		if acc == 1 {
			return r, nil
		}
		if r%mulOrderCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		acc = MulMod(acc, x, n)
	}
	return 0, ErrOrderNotFound
}
