package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-metrics/internal/report"
	"github.com/pable/go-ipl-metrics/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the metrics database",
	Long: `Run an arbitrary SQL query against the metrics database and print results as a table.

Schema overview:
  teams(id, name, short_name, city)
  players(id, name, role)
  matches(id, match_id, season, city, match_date, team1_id, team2_id,
    toss_winner_id, toss_decision, result, dl_applied, winner_id,
    win_by_runs, win_by_wickets, player_of_match_id, venue,
    umpire1, umpire2, umpire3)
  deliveries(id, match_id, inning, batting_team_id, bowling_team_id,
    over_number, ball_number, batsman_id, non_striker_id, bowler_id,
    is_super_over, wide_runs, bye_runs, legbye_runs, noball_runs,
    penalty_runs, batsman_runs, extra_runs, total_runs,
    player_dismissed_id, dismissal_kind, fielder_id)

Note: deliveries.match_id references matches.id, not the external match_id.
Example: SELECT season, COUNT(*) FROM matches GROUP BY season`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(cmd.Context(), query)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return nil
	}

	report.PrintRaw(w, cols, rows)
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
	return nil
}
