package output

import (
	"bytes"
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/drawsim/retirement-survival/internal/domain"
	"github.com/drawsim/retirement-survival/internal/simulation"
)

// ConsoleFormatter renders a human-readable text report: run parameters,
// the market scenarios overview, single-run statistics when present, and
// the four pivoted grid tables when a sweep was run.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }
func (ConsoleFormatter) Ext() string  { return "txt" }

func (cf ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "RETIREMENT PORTFOLIO SURVIVAL SIMULATION\n")
	fmt.Fprintf(&buf, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&buf, "Parameters\n")
	fmt.Fprintf(&buf, "  Initial Asset:    %s\n", FormatCurrency(report.InitialAsset))
	fmt.Fprintf(&buf, "  Withdrawal Rate:  %s (fixed nominal, %s per year)\n",
		FormatPercent(report.WithdrawalRate), FormatCurrency(report.InitialAsset*report.WithdrawalRate))
	fmt.Fprintf(&buf, "  Equity Ratio:     %s\n", FormatPercent(report.EquityRatio))
	fmt.Fprintf(&buf, "  Paths:            %d\n", report.NumPaths)
	fmt.Fprintf(&buf, "  Horizon:          %d years\n", report.Years)
	fmt.Fprintf(&buf, "  Seed:             %d\n", report.Seed)
	fmt.Fprintf(&buf, "  Random Scenarios: %v\n\n", report.RandomSchedule)

	cf.writeScheduleTable(&buf, report.Schedule)

	if report.Summary != nil {
		cf.writeSummary(&buf, report)
	}
	if len(report.Grid) > 0 {
		cf.writeGridTables(&buf, report.Grid)
	}

	return buf.Bytes(), nil
}

func (ConsoleFormatter) writeScheduleTable(buf *bytes.Buffer, schedule domain.RegimeSchedule) {
	fmt.Fprintf(buf, "Market Scenarios Overview\n")
	w := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Label\tDuration (yrs)\tEquity Mean\tEquity Std\tBond Mean\tBond Std")
	for _, b := range schedule {
		fmt.Fprintf(w, "  %s\t%d\t%s\t%s\t%s\t%s\n",
			b.Label, b.DurationYears,
			FormatPercent2(b.EquityMean), FormatPercent2(b.EquityStd),
			FormatPercent2(b.BondMean), FormatPercent2(b.BondStd))
	}
	w.Flush()
	fmt.Fprintln(buf)
}

func (ConsoleFormatter) writeSummary(buf *bytes.Buffer, report *domain.Report) {
	s := report.Summary
	fmt.Fprintf(buf, "Monte Carlo Results\n")
	fmt.Fprintf(buf, "  Success Rate:           %s (%d of %d paths)\n",
		FormatPercent(s.SuccessRate), s.SuccessCount, s.NumPaths)
	if s.FailureCount > 0 {
		fmt.Fprintf(buf, "  Average Bankruptcy Year: %.1f\n", s.MeanBankruptcyYear)
		fmt.Fprintf(buf, "  Median Bankruptcy Year:  %.1f\n", s.MedianBankruptcyYear)
	} else {
		fmt.Fprintf(buf, "  Average Bankruptcy Year: none\n")
	}
	if s.SuccessCount > 0 {
		fmt.Fprintf(buf, "\nEnding Assets (survivors)\n")
		fmt.Fprintf(buf, "  Median:          %s\n", FormatCurrency(s.MedianEndingAsset))
		fmt.Fprintf(buf, "  Top 25%% Median:    %s\n", FormatCurrency(s.Top25MedianAsset))
		fmt.Fprintf(buf, "  Bottom 25%% Median: %s\n", FormatCurrency(s.Bottom25MedianAsset))
	}
	fmt.Fprintln(buf)
}

func (cf ConsoleFormatter) writeGridTables(buf *bytes.Buffer, cells []domain.GridCell) {
	tables := []struct {
		title   string
		metric  simulation.GridMetric
		render  func(float64) string
		missing string
	}{
		{"30-Year Success Rate", simulation.MetricSuccessRate, FormatPercent, "-"},
		{"Top 25% Median Ending Asset", simulation.MetricTop25Median, FormatCurrency, "-"},
		{"Bottom 25% Median Ending Asset", simulation.MetricBottom25Median, FormatCurrency, "-"},
		{"Median Bankruptcy Year", simulation.MetricMedianBankruptcyYear, func(v float64) string { return fmt.Sprintf("%.1f", v) }, "-"},
	}

	for _, tbl := range tables {
		pivot := simulation.PivotGrid(cells, tbl.metric)
		fmt.Fprintf(buf, "%s (rows: withdrawal rate, cols: equity ratio)\n", tbl.title)
		w := tabwriter.NewWriter(buf, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprint(w, "  ")
		for _, er := range pivot.EquityRatios {
			fmt.Fprintf(w, "\t%s", FormatPercent(er))
		}
		fmt.Fprintln(w)
		for i, wr := range pivot.WithdrawalRates {
			fmt.Fprintf(w, "  %s", FormatPercent(wr))
			for j := range pivot.EquityRatios {
				v := pivot.Values[i][j]
				if math.IsNaN(v) {
					fmt.Fprintf(w, "\t%s", tbl.missing)
				} else {
					fmt.Fprintf(w, "\t%s", tbl.render(v))
				}
			}
			fmt.Fprintln(w)
		}
		w.Flush()
		fmt.Fprintln(buf)
	}
}
