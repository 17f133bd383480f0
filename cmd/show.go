package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-metrics/internal/model"
	"github.com/pable/go-ipl-metrics/internal/report"
	"github.com/pable/go-ipl-metrics/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show <match_id>",
	Short: "Show one stored match with per-innings totals",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	matchID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("match id must be an integer, got %q", args[0])
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	match, err := db.GetMatch(cmd.Context(), matchID)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if match == nil {
		return fmt.Errorf("no match found with id %d", matchID)
	}

	innings, err := db.InningsTotals(cmd.Context(), matchID)
	if err != nil {
		return fmt.Errorf("get innings totals: %w", err)
	}

	w := cmd.OutOrStdout()
	if jsonOutput {
		return report.WriteJSON(w, struct {
			Match   model.MatchSummary   `json:"match"`
			Innings []model.InningsTotal `json:"innings"`
		}{*match, innings})
	}
	report.PrintMatchSummary(w, *match)
	if len(innings) == 0 {
		fmt.Fprintln(w, "No deliveries stored for this match.")
		return nil
	}
	report.PrintInnings(w, innings)
	return nil
}
