package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-metrics/internal/report"
	"github.com/pable/go-ipl-metrics/internal/storage"
)

var listSeason string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listSeason, "season", "", "only list matches from this season")
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches, err := db.ListMatches(cmd.Context(), listSeason)
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	w := cmd.OutOrStdout()
	if jsonOutput {
		return report.WriteJSON(w, matches)
	}
	if len(matches) == 0 {
		noRows(w, "matches", listSeason)
		return nil
	}
	report.PrintMatchList(w, matches)
	return nil
}
