package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-metrics/internal/loader"
	"github.com/pable/go-ipl-metrics/internal/storage"
)

var (
	cOK    = color.New(color.FgGreen, color.Bold)
	cMuted = color.New(color.Faint)
	cWarn  = color.New(color.FgYellow)
	cLabel = color.New(color.Bold)
)

var loadCmd = &cobra.Command{
	Use:   "load <matches.csv> <deliveries.csv>",
	Short: "Load the matches and deliveries files into the database",
	Long: `Load matches.csv and deliveries.csv in a single transaction.

Matches are loaded first and are idempotent on match id; teams and players are
created on first sight. Delivery rows that are malformed or reference an
unknown match are logged and skipped. Any database error rolls back the whole
load.`,
	Args: cobra.ExactArgs(2),
	RunE: runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	matchesPath, deliveriesPath := args[0], args[1]
	if err := checkInputFile("matches", matchesPath); err != nil {
		return err
	}
	if err := checkInputFile("deliveries", deliveriesPath); err != nil {
		return err
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	begin := func(ctx context.Context) (loader.Store, error) {
		return db.Begin(ctx)
	}
	w := cmd.OutOrStdout()
	cMuted.Fprintf(w, "Loading %s and %s into %s\n", matchesPath, deliveriesPath, dbPath)

	start := time.Now()
	res, err := loader.New(begin, logger, cfg.BatchSize).Load(cmd.Context(), matchesPath, deliveriesPath)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	cOK.Fprintf(w, "Load complete in %s\n", time.Since(start).Round(time.Millisecond))
	cLabel.Fprint(w, "  matches:    ")
	fmt.Fprintf(w, "%d total (%d new, %d existing)\n", res.TotalMatches, res.MatchesCreated, res.MatchesExisting)
	cLabel.Fprint(w, "  deliveries: ")
	fmt.Fprintf(w, "%d total (%d inserted, %d skipped)\n", res.TotalDeliveries, res.DeliveriesInserted, res.DeliveriesSkipped())
	cLabel.Fprint(w, "  created:    ")
	fmt.Fprintf(w, "%d teams, %d players\n", res.TeamsCreated, res.PlayersCreated)
	cMuted.Fprintln(w, res.Summary())

	if res.DateFallbacks > 0 {
		cWarn.Fprintf(w, "%d match dates could not be parsed and were stored as the default date\n", res.DateFallbacks)
	}
	if len(res.Errors) > 0 {
		cWarn.Fprintf(w, "%d delivery rows skipped:\n", res.DeliveriesSkipped())
		for _, e := range res.Errors {
			cWarn.Fprintf(w, "  %s\n", e)
		}
		if res.DeliveriesSkipped() > len(res.Errors) {
			cMuted.Fprintf(w, "  ... and %d more (see log)\n", res.DeliveriesSkipped()-len(res.Errors))
		}
	}
	return nil
}

// checkInputFile fails with a descriptive error unless path is a readable
// regular file.
func checkInputFile(kind, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s file not found: %s", kind, path)
		}
		return fmt.Errorf("%s file: %w", kind, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s file is a directory: %s", kind, path)
	}
	return nil
}
