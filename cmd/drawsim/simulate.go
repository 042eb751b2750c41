package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/drawsim/retirement-survival/internal/config"
	"github.com/drawsim/retirement-survival/internal/domain"
	"github.com/drawsim/retirement-survival/internal/output"
	"github.com/drawsim/retirement-survival/internal/simulation"
)

// loadInput resolves the effective input: the scenario file when given,
// otherwise defaults, with any explicitly set flags layered on top.
func loadInput(cmd *cobra.Command) (*config.Input, error) {
	var input *config.Input
	if flagConfig != "" {
		parser := config.NewInputParser()
		loaded, err := parser.LoadFromFile(flagConfig)
		if err != nil {
			return nil, err
		}
		input = loaded
	} else {
		input = config.DefaultInput()
	}

	flags := cmd.Flags()
	if flags.Changed("withdrawal-rate") {
		input.WithdrawalRate, _ = flags.GetFloat64("withdrawal-rate")
	}
	if flags.Changed("equity-ratio") {
		input.EquityRatio, _ = flags.GetFloat64("equity-ratio")
	}
	if flags.Changed("paths") {
		input.NumPaths, _ = flags.GetInt("paths")
	}
	if flags.Changed("seed") {
		input.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("initial") {
		v, _ := flags.GetFloat64("initial")
		input.InitialAsset = decimal.NewFromFloat(v)
	}
	if flags.Changed("random-scenarios") {
		input.RandomSchedule, _ = flags.GetBool("random-scenarios")
	}

	if err := config.NewInputParser().Validate(input); err != nil {
		return nil, err
	}
	return input, nil
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("withdrawal-rate", 0.04, "annual withdrawal as a fraction of the initial asset")
	cmd.Flags().Float64("equity-ratio", 0.7, "fraction of the portfolio held in equities")
	cmd.Flags().Int("paths", 1000, "number of simulated paths")
	cmd.Flags().Int64("seed", 42, "base random seed")
	cmd.Flags().Float64("initial", 1000, "initial portfolio value")
	cmd.Flags().Bool("random-scenarios", false, "shuffle the market regimes (seeded, reproducible)")
	cmd.Flags().Int("workers", 0, "max concurrent workers (0 = all CPUs)")
}

func emit(report *domain.Report) error {
	formatter := output.GetFormatterByName(flagFormat)
	if formatter == nil {
		return fmt.Errorf("unknown output format %q", flagFormat)
	}
	if flagWrite {
		filename, err := output.WriteFormatted(formatter, report)
		if err != nil {
			return err
		}
		logger.Sugar().Infof("report written to %s", filename)
		return nil
	}
	data, err := formatter.Format(report)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a Monte Carlo batch for one withdrawal/allocation combination",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := loadInput(cmd)
			if err != nil {
				return err
			}
			workers, _ := cmd.Flags().GetInt("workers")

			schedule := input.BuildSchedule()
			params := input.BatchParams(schedule)
			params.Workers = workers
			params.Logger = logger.Sugar()

			start := time.Now()
			summary, err := simulation.RunBatch(cmd.Context(), params)
			if err != nil {
				return err
			}
			logger.Sugar().Infof("simulated %d paths in %s", summary.NumPaths, time.Since(start).Round(time.Millisecond))

			return emit(&domain.Report{
				GeneratedAt:    time.Now(),
				InitialAsset:   params.InitialAsset,
				WithdrawalRate: params.WithdrawalRate,
				EquityRatio:    params.EquityRatio,
				NumPaths:       params.NumPaths,
				Years:          params.Years,
				Seed:           input.Seed,
				RandomSchedule: input.RandomSchedule,
				Schedule:       schedule,
				Summary:        summary,
			})
		},
	}
	addSimFlags(cmd)
	return cmd
}

func newGridCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Sweep the withdrawal-rate x equity-ratio grid",
		Long: `Runs an independent Monte Carlo batch for every cell of the withdrawal-rate
x equity-ratio grid and reports the response surface: success rate, survivor
ending-asset quartile medians, and median bankruptcy year per cell.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := loadInput(cmd)
			if err != nil {
				return err
			}
			workers, _ := cmd.Flags().GetInt("workers")

			schedule := input.BuildSchedule()
			params := input.GridParams(schedule)
			params.Workers = workers
			params.Logger = logger.Sugar()

			start := time.Now()
			cells, err := simulation.RunGrid(cmd.Context(), params)
			if err != nil {
				return err
			}
			logger.Sugar().Infof("swept %d grid cells in %s", len(cells), time.Since(start).Round(time.Millisecond))

			return emit(&domain.Report{
				GeneratedAt:    time.Now(),
				InitialAsset:   params.InitialAsset,
				WithdrawalRate: input.WithdrawalRate,
				EquityRatio:    input.EquityRatio,
				NumPaths:       params.NumPaths,
				Years:          params.Years,
				Seed:           input.Seed,
				RandomSchedule: input.RandomSchedule,
				Schedule:       schedule,
				Grid:           cells,
			})
		},
	}
	addSimFlags(cmd)
	return cmd
}

func newScenariosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Print the market regime schedule in effect",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := loadInput(cmd)
			if err != nil {
				return err
			}
			schedule := input.BuildSchedule()
			return emit(&domain.Report{
				GeneratedAt:    time.Now(),
				InitialAsset:   input.InitialAsset.InexactFloat64(),
				WithdrawalRate: input.WithdrawalRate,
				EquityRatio:    input.EquityRatio,
				NumPaths:       input.NumPaths,
				Years:          input.Years,
				Seed:           input.Seed,
				RandomSchedule: input.RandomSchedule,
				Schedule:       schedule,
			})
		},
	}
	addSimFlags(cmd)
	return cmd
}
