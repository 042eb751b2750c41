package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/drawsim/retirement-survival/internal/visits"
)

func newVisitsCmd() *cobra.Command {
	var (
		dbPath string
		userID string
		days   int
	)

	cmd := &cobra.Command{
		Use:   "visits",
		Short: "Record a visit and print visitor statistics",
		Long: `Maintains the standalone visit-analytics database. Each invocation records
one visit (per user per day) and prints distinct-visitor counts for today,
this month, this year and all time, plus the recent daily series. The store
has no connection to the simulation engine.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := visits.NewSQLiteStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if userID == "" {
				userID = uuid.NewString()
				logger.Sugar().Debugf("no user id given, generated %s", userID)
			}

			now := time.Now()
			if err := store.Record(userID, now); err != nil {
				return err
			}

			stats, err := store.Stats(now)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Visitors\n")
			fmt.Fprintf(os.Stdout, "  Today:      %d\n", stats.Today)
			fmt.Fprintf(os.Stdout, "  This Month: %d\n", stats.Month)
			fmt.Fprintf(os.Stdout, "  This Year:  %d\n", stats.Year)
			fmt.Fprintf(os.Stdout, "  Total:      %d\n", stats.Total)

			recent, err := store.Recent(now, days)
			if err != nil {
				return err
			}
			if len(recent) > 0 {
				fmt.Fprintf(os.Stdout, "\nLast %d days\n", days)
				for _, dc := range recent {
					fmt.Fprintf(os.Stdout, "  %s  %d\n", dc.Date, dc.Users)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "visitors.db", "path to the visitors database")
	cmd.Flags().StringVar(&userID, "user", "", "visitor id (generated when empty)")
	cmd.Flags().IntVar(&days, "days", 7, "length of the recent-traffic window")
	return cmd
}
