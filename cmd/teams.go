package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-metrics/internal/aggregator"
	"github.com/pable/go-ipl-metrics/internal/report"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List stored teams",
	Args:  cobra.NoArgs,
	RunE:  runTeams,
}

func runTeams(cmd *cobra.Command, args []string) error {
	db, engine, err := openEngine()
	if err != nil {
		return err
	}
	defer db.Close()

	teams, err := engine.Teams(cmd.Context())
	w := cmd.OutOrStdout()
	return emit(w, teams, "", aggregator.MsgTeams, err, func() {
		if len(teams) == 0 {
			noRows(w, "teams", "")
			return
		}
		report.PrintTeams(w, teams)
	})
}
