package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-metrics/internal/aggregator"
	"github.com/pable/go-ipl-metrics/internal/report"
)

var extraRunsCmd = &cobra.Command{
	Use:     "extra-runs <year>",
	Short:   "Extra runs conceded per team in a season",
	Example: "  iplmetrics extra-runs 2016",
	Args:    cobra.ExactArgs(1),
	RunE:    runExtraRuns,
}

func runExtraRuns(cmd *cobra.Command, args []string) error {
	year := args[0]
	db, engine, err := openEngine()
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := engine.ExtraRunsPerTeam(cmd.Context(), year)
	w := cmd.OutOrStdout()
	return emit(w, rows, year, fmt.Sprintf(aggregator.MsgExtraRuns, year), err, func() {
		if len(rows) == 0 {
			noRows(w, "deliveries", year)
			return
		}
		report.PrintExtraRuns(w, rows)
	})
}
