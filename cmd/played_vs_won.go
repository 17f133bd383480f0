package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-metrics/internal/aggregator"
	"github.com/pable/go-ipl-metrics/internal/report"
)

var playedVsWonCmd = &cobra.Command{
	Use:     "played-vs-won <year>",
	Short:   "Matches played, matches won and win percentage per team in a season",
	Example: "  iplmetrics played-vs-won 2017",
	Args:    cobra.ExactArgs(1),
	RunE:    runPlayedVsWon,
}

func runPlayedVsWon(cmd *cobra.Command, args []string) error {
	year := args[0]
	db, engine, err := openEngine()
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := engine.MatchesPlayedVsWon(cmd.Context(), year)
	w := cmd.OutOrStdout()
	return emit(w, rows, year, fmt.Sprintf(aggregator.MsgPlayedVsWon, year), err, func() {
		if len(rows) == 0 {
			noRows(w, "matches", year)
			return
		}
		report.PrintPlayedVsWon(w, rows)
	})
}
