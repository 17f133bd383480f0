package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-metrics/internal/aggregator"
	"github.com/pable/go-ipl-metrics/internal/report"
)

var economicalBowlersCmd = &cobra.Command{
	Use:   "economical-bowlers <year>",
	Short: "Top economical bowlers in a season",
	Long: fmt.Sprintf(`Rank bowlers by economy rate (runs conceded per over) in a season.

Only bowlers with at least %d deliveries qualify; the top %d are shown.
Ties on economy are broken by bowler name.`, aggregator.MinBallsBowled, aggregator.TopBowlers),
	Example: "  iplmetrics economical-bowlers 2015",
	Args:    cobra.ExactArgs(1),
	RunE:    runEconomicalBowlers,
}

func runEconomicalBowlers(cmd *cobra.Command, args []string) error {
	year := args[0]
	db, engine, err := openEngine()
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := engine.EconomicalBowlers(cmd.Context(), year)
	w := cmd.OutOrStdout()
	return emit(w, rows, year, fmt.Sprintf(aggregator.MsgEconomicalBowlers, year), err, func() {
		if len(rows) == 0 {
			noRows(w, "qualifying bowlers", year)
			return
		}
		report.PrintEconomicalBowlers(w, rows)
	})
}
