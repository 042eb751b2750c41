package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drawsim/retirement-survival/internal/simulation"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFile_Success(t *testing.T) {
	content := "initial_asset: 2500\n" +
		"withdrawal_rate: 0.035\n" +
		"equity_ratio: 0.6\n" +
		"num_paths: 2000\n" +
		"seed: 7\n" +
		"random_schedule: true\n"

	parser := NewInputParser()
	input, err := parser.LoadFromFile(writeScenario(t, content))
	require.NoError(t, err)

	assert.True(t, input.InitialAsset.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, 0.035, input.WithdrawalRate)
	assert.Equal(t, 0.6, input.EquityRatio)
	assert.Equal(t, 2000, input.NumPaths)
	assert.Equal(t, int64(7), input.Seed)
	assert.True(t, input.RandomSchedule)
	assert.Equal(t, simulation.HorizonYears, input.Years, "years should default to the horizon")
}

func TestLoadFromFile_EmptyFileUsesDefaults(t *testing.T) {
	parser := NewInputParser()
	input, err := parser.LoadFromFile(writeScenario(t, ""))
	require.NoError(t, err)

	def := DefaultInput()
	assert.True(t, input.InitialAsset.Equal(def.InitialAsset))
	assert.Equal(t, def.WithdrawalRate, input.WithdrawalRate)
	assert.Equal(t, def.NumPaths, input.NumPaths)
	assert.Equal(t, def.Seed, input.Seed)
}

func TestLoadFromFile_CustomSchedule(t *testing.T) {
	content := "schedule:\n" +
		"  - duration_years: 10\n" +
		"    equity_mean: 0.05\n" +
		"    equity_std: 0.15\n" +
		"    bond_mean: 0.02\n" +
		"    bond_std: 0.05\n" +
		"    label: \"Flat Decade\"\n" +
		"  - duration_years: 20\n" +
		"    equity_mean: 0.08\n" +
		"    equity_std: 0.12\n" +
		"    bond_mean: 0.03\n" +
		"    bond_std: 0.04\n" +
		"    label: \"Recovery\"\n"

	parser := NewInputParser()
	input, err := parser.LoadFromFile(writeScenario(t, content))
	require.NoError(t, err)

	schedule := input.BuildSchedule()
	require.Len(t, schedule, 2)
	assert.Equal(t, "Flat Decade", schedule[0].Label)
	assert.Equal(t, 30, schedule.TotalYears())
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Input)
		wantErr string
	}{
		{"negative withdrawal rate", func(in *Input) { in.WithdrawalRate = -0.01 }, "withdrawal rate"},
		{"equity ratio above one", func(in *Input) { in.EquityRatio = 1.1 }, "equity ratio"},
		{"negative paths", func(in *Input) { in.NumPaths = -1 }, "num paths"},
		{"negative years", func(in *Input) { in.Years = -5 }, "years"},
		{"non-positive initial asset", func(in *Input) { in.InitialAsset = decimal.Zero }, "initial asset"},
		{"short custom schedule", func(in *Input) {
			in.Schedule = []RegimeBlockInput{{DurationYears: 5, Label: "Too Short"}}
		}, "covers"},
		{"negative block duration", func(in *Input) {
			in.Schedule = []RegimeBlockInput{{DurationYears: -1, Label: "Bad"}}
		}, "duration"},
		{"negative block std", func(in *Input) {
			in.Schedule = []RegimeBlockInput{{DurationYears: 30, EquityStd: -0.1, Label: "Bad"}}
		}, "std dev"},
		{"bad grid rate", func(in *Input) { in.Grid.WithdrawalRates = []float64{-0.02} }, "grid withdrawal rate"},
		{"bad grid ratio", func(in *Input) { in.Grid.EquityRatios = []float64{1.2} }, "grid equity ratio"},
	}
	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := DefaultInput()
			tt.mutate(input)
			err := parser.Validate(input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGridParams_DefaultAxes(t *testing.T) {
	input := DefaultInput()
	schedule := input.BuildSchedule()

	params := input.GridParams(schedule)
	assert.Len(t, params.WithdrawalRates, 8)
	assert.Len(t, params.EquityRatios, 10)
	assert.Equal(t, input.NumPaths, params.NumPaths)

	input.Grid.WithdrawalRates = []float64{0.04}
	input.Grid.EquityRatios = []float64{0.5}
	params = input.GridParams(schedule)
	assert.Equal(t, []float64{0.04}, params.WithdrawalRates)
	assert.Equal(t, []float64{0.5}, params.EquityRatios)
}
