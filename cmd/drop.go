package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-metrics/internal/storage"
)

var dropForce bool

// dropCmd deletes the metrics database file.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the metrics database",
	Long:  "Permanently delete the SQLite metrics database and its WAL files. All loaded matches and deliveries will be lost. Re-run 'load' afterwards to rebuild.",
	Args:  cobra.NoArgs,
	RunE:  runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "delete without asking for confirmation")
}

func runDrop(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if _, err := os.Stat(dbPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(w, "No database at %s, nothing to drop.\n", dbPath)
			return nil
		}
		return fmt.Errorf("stat database: %w", err)
	}

	if !dropForce {
		describeDrop(cmd.Context(), cmd.ErrOrStderr())
		return nil
	}

	removed := 0
	for _, path := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		err := os.Remove(path)
		switch {
		case err == nil:
			removed++
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}
	logger.Info("database dropped", "path", dbPath, "files", removed)
	fmt.Fprintf(w, "Deleted: %s\n", dbPath)
	return nil
}

// describeDrop prints what a forced drop would delete. Counting is best
// effort: an unreadable database is still listed by path.
func describeDrop(ctx context.Context, w io.Writer) {
	fmt.Fprintf(w, "This will permanently delete: %s\n", dbPath)

	db, err := storage.Open(dbPath)
	if err != nil {
		logger.Warn("could not open database for counts", "error", err)
	} else {
		defer db.Close()
		matches, mErr := db.CountMatches(ctx)
		deliveries, dErr := db.CountDeliveries(ctx)
		if mErr == nil && dErr == nil {
			fmt.Fprintf(w, "  %d matches, %d deliveries\n", matches, deliveries)
		}
	}
	fmt.Fprintln(w, "Re-run with --force to confirm.")
}
