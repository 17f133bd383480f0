package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-metrics/internal/aggregator"
	"github.com/pable/go-ipl-metrics/internal/report"
)

var matchesPerYearCmd = &cobra.Command{
	Use:   "matches-per-year",
	Short: "Number of matches played in each season",
	Args:  cobra.NoArgs,
	RunE:  runMatchesPerYear,
}

func runMatchesPerYear(cmd *cobra.Command, args []string) error {
	db, engine, err := openEngine()
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := engine.MatchesPerYear(cmd.Context())
	w := cmd.OutOrStdout()
	return emit(w, rows, "", aggregator.MsgMatchesPerYear, err, func() {
		if len(rows) == 0 {
			noRows(w, "matches", "")
			return
		}
		report.PrintMatchesPerYear(w, rows)
	})
}
