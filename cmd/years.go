package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-metrics/internal/aggregator"
	"github.com/pable/go-ipl-metrics/internal/report"
)

var yearsCmd = &cobra.Command{
	Use:   "years",
	Short: "List seasons with at least one stored match",
	Args:  cobra.NoArgs,
	RunE:  runYears,
}

func runYears(cmd *cobra.Command, args []string) error {
	db, engine, err := openEngine()
	if err != nil {
		return err
	}
	defer db.Close()

	years, err := engine.AvailableYears(cmd.Context())
	w := cmd.OutOrStdout()
	return emit(w, years, "", aggregator.MsgAvailableYears, err, func() {
		if len(years) == 0 {
			noRows(w, "seasons", "")
			return
		}
		report.PrintYears(w, years)
	})
}
