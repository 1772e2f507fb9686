// Demo circuit commands: build the lesson circuits and print them, or hand
// them to the configured backend.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qed/internal/backend"
	"qed/internal/circuit"
	"qed/internal/config"
)

var (
	circuitQASM bool
	circuitRun  bool
)

var circuitCmd = &cobra.Command{
	Use:   "circuit [demo]",
	Short: "Build a demo circuit and print it",
	Long: `Builds one of the named demo circuits. Without arguments, lists the
available demos. With --qasm the circuit is emitted as OpenQASM 2.0; with
--run it is handed to the configured backend for execution.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCircuit,
}

func init() {
	circuitCmd.Flags().BoolVar(&circuitQASM, "qasm", false, "emit OpenQASM 2.0")
	circuitCmd.Flags().BoolVar(&circuitRun, "run", false, "execute on the configured backend")
}

func runCircuit(cmd *cobra.Command, args []string) error {
	r := newRenderer()

	if len(args) == 0 {
		fmt.Println(r.Styles.Title.Render("Demo circuits"))
		for _, d := range circuit.Demos() {
			fmt.Printf("  %-20s %s\n", r.Styles.Section.Render(d.Name), r.Styles.Muted.Render(d.Description))
		}
		return nil
	}

	demo, ok := circuit.FindDemo(args[0])
	if !ok {
		return fmt.Errorf("no demo %q; run `qed circuit` to list them", args[0])
	}
	c := demo.Build()

	if circuitQASM {
		fmt.Print(c.QASM())
	} else {
		fmt.Print(c.Listing())
	}

	if !circuitRun {
		return nil
	}

	b, err := backend.Open(cfg.Backend.Name)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	logger.Debug("running circuit", zap.String("demo", demo.Name), zap.String("backend", b.Name()), zap.Int("shots", cfg.Backend.Shots))
	counts, err := b.Run(ctx, c, cfg.Backend.Shots)
	if err != nil {
		if errors.Is(err, backend.ErrNoBackend) {
			return fmt.Errorf("%w\nconfigure one in %s or export QED_BACKEND", err, config.Path(workspace))
		}
		return err
	}

	fmt.Println()
	fmt.Println(r.Styles.Title.Render(fmt.Sprintf("Counts over %d shots (%s)", counts.Shots(), b.Name())))
	probs := counts.Probabilities()
	for _, outcome := range counts.Outcomes() {
		fmt.Printf("  %s  %6d  %.3f\n", outcome, counts[outcome], probs[outcome])
	}
	return nil
}
