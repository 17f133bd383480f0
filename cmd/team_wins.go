package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-metrics/internal/aggregator"
	"github.com/pable/go-ipl-metrics/internal/report"
)

var teamWinsCmd = &cobra.Command{
	Use:   "team-wins",
	Short: "Wins per team in each season",
	Long:  "Wins per team in each season, one row per (season, team) with at least one win. Matches without a winner are not counted.",
	Args:  cobra.NoArgs,
	RunE:  runTeamWins,
}

func runTeamWins(cmd *cobra.Command, args []string) error {
	db, engine, err := openEngine()
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := engine.TeamWinsBySeason(cmd.Context())
	w := cmd.OutOrStdout()
	return emit(w, rows, "", aggregator.MsgTeamWins, err, func() {
		if len(rows) == 0 {
			noRows(w, "wins", "")
			return
		}
		report.PrintTeamWins(w, rows)
	})
}
