package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/drawsim/retirement-survival/internal/domain"
)

// CSVFormatter exports a report as CSV. Grid sweeps are written in long
// form, one row per cell, which pivots trivially in any downstream tool;
// single-scenario runs are written as a metric/value/description table.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }
func (CSVFormatter) Ext() string  { return "csv" }

func (cf CSVFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if len(report.Grid) > 0 {
		if err := cf.writeGrid(writer, report.Grid); err != nil {
			return nil, err
		}
	} else if report.Summary != nil {
		if err := cf.writeSummary(writer, report); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func (CSVFormatter) writeGrid(writer *csv.Writer, cells []domain.GridCell) error {
	header := []string{
		"withdrawal_rate", "equity_ratio", "success_rate",
		"top_25_median_asset", "bottom_25_median_asset", "median_bankruptcy_year",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	fl := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, c := range cells {
		top, bottom, bankruptcy := "", "", ""
		if c.Summary.SuccessCount > 0 {
			top = fl(c.Summary.Top25MedianAsset)
			bottom = fl(c.Summary.Bottom25MedianAsset)
		}
		if c.Summary.FailureCount > 0 {
			bankruptcy = fl(c.Summary.MedianBankruptcyYear)
		}
		row := []string{
			fl(c.WithdrawalRate), fl(c.EquityRatio), fl(c.Summary.SuccessRate),
			top, bottom, bankruptcy,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write data row: %w", err)
		}
	}
	return nil
}

func (CSVFormatter) writeSummary(writer *csv.Writer, report *domain.Report) error {
	if err := writer.Write([]string{"Metric", "Value", "Description"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	s := report.Summary
	rows := [][]string{
		{"Success Rate", FormatPercent(s.SuccessRate), "Share of paths surviving the full horizon"},
		{"Successful Paths", strconv.Itoa(s.SuccessCount), "Paths with a positive balance after the final year"},
		{"Depleted Paths", strconv.Itoa(s.FailureCount), "Paths that ran out before the horizon"},
		{"Median Ending Asset", FormatCurrency(s.MedianEndingAsset), "Median final balance among survivors"},
		{"Top 25% Median", FormatCurrency(s.Top25MedianAsset), "75th percentile of survivor ending balances"},
		{"Bottom 25% Median", FormatCurrency(s.Bottom25MedianAsset), "25th percentile of survivor ending balances"},
		{"Average Bankruptcy Year", fmt.Sprintf("%.1f", s.MeanBankruptcyYear), "Mean 1-indexed depletion year among failures"},
		{"Median Bankruptcy Year", fmt.Sprintf("%.1f", s.MedianBankruptcyYear), "Median 1-indexed depletion year among failures"},
		{"Paths", strconv.Itoa(s.NumPaths), "Total simulated trajectories"},
		{"Seed", strconv.FormatInt(report.Seed, 10), "Base random seed"},
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write data row: %w", err)
		}
	}
	return nil
}
