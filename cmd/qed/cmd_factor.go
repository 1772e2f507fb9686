// Factoring and order-finding commands: the classical shell of Shor's
// algorithm, runnable on real numbers.
package main

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qed/internal/backend"
	"qed/internal/numtheory"
	"qed/internal/shor"
)

var (
	factorSeed     int64
	factorAttempts int
)

var factorCmd = &cobra.Command{
	Use:   "factor <n>",
	Short: "Factor a number with the classical shell of Shor's algorithm",
	Long: `Factors n using Shor's classical shell: even numbers, primes and
perfect powers are handled directly; otherwise random bases are tried and
the multiplicative order of each base (found by the brute-force stand-in
for the quantum subroutine) is reduced to a factor pair via gcd.

Examples:
  qed factor 15
  qed factor 10013
  qed factor 10013 --seed 7`,
	Args: cobra.ExactArgs(1),
	RunE: runFactor,
}

var orderCmd = &cobra.Command{
	Use:   "order <a> <n>",
	Short: "Find the multiplicative order of a modulo n",
	Long: `Finds the smallest r >= 1 with a^r = 1 (mod n) by brute-force
iteration - the classical stand-in for quantum order finding. Requires
gcd(a, n) = 1.`,
	Args: cobra.ExactArgs(2),
	RunE: runOrder,
}

func init() {
	factorCmd.Flags().Int64Var(&factorSeed, "seed", 0, "random seed for base selection (0 = random)")
	factorCmd.Flags().IntVar(&factorAttempts, "max-attempts", 0, "retry bound for the base loop (0 = config default)")
}

func parseInt64(s, what string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", what, s)
	}
	return v, nil
}

func runFactor(cmd *cobra.Command, args []string) error {
	n, err := parseInt64(args[0], "n")
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	opts := shor.Options{
		Orders:      backend.Classical{OrderBound: cfg.Shor.OrderBound},
		MaxAttempts: cfg.Shor.MaxAttempts,
	}
	if factorAttempts > 0 {
		opts.MaxAttempts = factorAttempts
	}
	if factorSeed != 0 {
		opts.Rand = rand.New(rand.NewSource(factorSeed))
	}

	logger.Debug("factoring", zap.Int64("n", n), zap.Int("max_attempts", opts.MaxAttempts))

	start := time.Now()
	res, err := shor.Factor(ctx, n, opts)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	r := newRenderer()
	fmt.Println(r.Styles.Title.Render(res.String()))
	pairs := [][2]string{
		{"attempts", strconv.Itoa(res.Attempts)},
		{"elapsed", elapsed.Round(time.Microsecond).String()},
	}
	switch {
	case res.Lucky:
		pairs = append([][2]string{
			{"base", strconv.FormatInt(res.Base, 10)},
			{"path", fmt.Sprintf("gcd(%d, %d) > 1, no order finding needed", res.Base, n)},
		}, pairs...)
	case res.Base != 0:
		half := res.Order / 2
		pairs = append([][2]string{
			{"base", strconv.FormatInt(res.Base, 10)},
			{"order", strconv.FormatInt(res.Order, 10)},
			{"path", fmt.Sprintf("gcd(%d^%d ± 1, %d)", res.Base, half, n)},
		}, pairs...)
	default:
		pairs = append([][2]string{{"path", "classical shortcut (even or perfect power)"}}, pairs...)
	}
	fmt.Print(r.KV(pairs))

	if verbose && res.Order > 0 {
		s, den := phaseEstimate(res.Order)
		fmt.Println()
		fmt.Println(r.Styles.Title.Render("Recovering the order from the phase"))
		fmt.Printf("a quantum run would measure a phase close to s/r, here %d/%d;\n", s, den)
		fmt.Printf("the continued-fraction convergents expose r in a denominator:\n")
		fmt.Printf("  %s\n", formatConvergents(s, den, res.Order))
	}

	if store := openProgress(); store != nil {
		defer store.Close()
		if id, err := store.RecordFactorRun(res, elapsed); err != nil {
			logger.Warn("recording factor run", zap.Error(err))
		} else {
			logger.Debug("recorded factor run", zap.String("id", id))
		}
	}
	return nil
}

// phaseEstimate reconstructs the measurement a quantum order-finding run
// would yield for a known order r: the t-bit phase closest to 1/r, with
// 2^t > r^2 so that 1/r is guaranteed among the convergents.
func phaseEstimate(order int64) (s, den int64) {
	den = 2
	for den/order <= order && den < 1<<62 {
		den <<= 1
	}
	s = den / order
	if rem := den % order; rem >= order-rem {
		s++
	}
	return s, den
}

// formatConvergents renders the convergent chain of s/den, stopping at the
// convergent whose denominator is the order.
func formatConvergents(s, den, order int64) string {
	var b strings.Builder
	for i, c := range numtheory.Convergents(s, den) {
		if i > 0 {
			b.WriteString(" -> ")
		}
		fmt.Fprintf(&b, "%d/%d", c.P, c.Q)
		if c.Q == order {
			b.WriteString("   (denominator = order)")
			break
		}
	}
	return b.String()
}

func runOrder(cmd *cobra.Command, args []string) error {
	a, err := parseInt64(args[0], "a")
	if err != nil {
		return err
	}
	n, err := parseInt64(args[1], "n")
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	finder := backend.Classical{OrderBound: cfg.Shor.OrderBound}
	r, err := finder.FindOrder(ctx, a, n)
	if err != nil {
		return err
	}
	fmt.Printf("order of %d mod %d = %d\n", a, n, r)
	return nil
}
