// Command qed is an interactive quantum-computing tutor: terminal lessons on
// qubits, gates and the canonical algorithms, demo circuits in OpenQASM, and
// a working classical shell of Shor's factoring algorithm.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"qed/internal/config"
	"qed/internal/progress"
	"qed/internal/render"
)

var (
	// Global flags
	verbose   bool
	plain     bool
	workspace string

	// Initialized in PersistentPreRunE
	logger *zap.Logger
	cfg    config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "qed",
	Short: "qed - quantum computing lessons in your terminal",
	Long: `qed teaches quantum computing from the command line.

Lessons cover qubits, gates, entanglement and teleportation, and the
Deutsch, Bernstein-Vazirani, Grover and Shor algorithms. Demo circuits are
emitted as OpenQASM 2.0 for any external backend; the classical shell of
Shor's algorithm runs right here.

Start with:
  qed lessons          list the lessons
  qed browse           interactive lesson browser
  qed factor 15        factor a number Shor-style`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if workspace == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolving workspace: %w", err)
			}
			workspace = wd
		}

		var err error
		cfg, err = config.Load(workspace)
		if err != nil {
			return err
		}
		if plain {
			cfg.UI.ColorMode = "plain"
		}

		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Logging.Level))
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// newRenderer builds the terminal renderer from the loaded config.
func newRenderer() *render.Renderer {
	return render.New(cfg.UI.ColorMode, cfg.UI.Width)
}

// openProgress opens the workspace progress store, or returns nil after
// logging a warning. Callers must nil-check and Close.
func openProgress() *progress.Store {
	store, err := progress.Open(workspace)
	if err != nil {
		logger.Warn("progress store unavailable", zap.Error(err))
		return nil
	}
	return store
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "disable colors and markdown styling")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "workspace directory (default: current directory)")

	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(factorCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(circuitCmd)
	rootCmd.AddCommand(progressCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
