// Command drawsim runs retirement-portfolio survival simulations: a Monte
// Carlo batch for one withdrawal/allocation combination, or a full sweep
// over the withdrawal-rate x equity-ratio grid.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	flagConfig string
	flagDebug  bool
	flagFormat string
	flagWrite  bool

	logger *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "drawsim",
		Short: "Monte Carlo retirement portfolio survival simulator",
		Long: `drawsim estimates the probability that a retirement portfolio survives a
fixed withdrawal schedule over a 30-year horizon under stochastic market
returns, and characterizes the distribution of outcomes.

The withdrawal is fixed in nominal terms at initial_asset x rate for the
whole horizon; it is not inflation-adjusted and never recomputed against the
current balance.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogger()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "YAML scenario file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "console", "output format: console, csv, json")
	rootCmd.PersistentFlags().BoolVar(&flagWrite, "write", false, "write the report to a timestamped file instead of stdout")

	rootCmd.AddCommand(newSimulateCmd())
	rootCmd.AddCommand(newGridCmd())
	rootCmd.AddCommand(newScenariosCmd())
	rootCmd.AddCommand(newVisitsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func initLogger() error {
	cfg := zap.NewProductionConfig()
	if flagDebug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	// Keep stdout clean for report output.
	cfg.OutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	logger = l
	return nil
}
