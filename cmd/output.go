package cmd

import (
	"fmt"
	"io"

	"github.com/pable/go-ipl-metrics/internal/aggregator"
	"github.com/pable/go-ipl-metrics/internal/report"
	"github.com/pable/go-ipl-metrics/internal/storage"
)

// openEngine opens the database and an aggregation engine over it. The
// caller closes the returned DB.
func openEngine() (*storage.DB, *aggregator.Engine, error) {
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	return db, aggregator.New(db, logger), nil
}

// emit writes a query outcome. With --json the result envelope is printed for
// success and failure alike; otherwise table is called on success only. The
// query error, if any, is returned so the process exits non-zero.
func emit(w io.Writer, data any, year, message string, err error, table func()) error {
	if jsonOutput {
		if encErr := report.WriteJSON(w, aggregator.Respond(data, year, message, err)); encErr != nil {
			return fmt.Errorf("encode result: %w", encErr)
		}
		return err
	}
	if err != nil {
		return err
	}
	table()
	return nil
}

func noRows(w io.Writer, what, year string) {
	if year == "" {
		fmt.Fprintf(w, "No %s stored yet. Run 'iplmetrics load <matches.csv> <deliveries.csv>' first.\n", what)
		return
	}
	fmt.Fprintf(w, "No %s for season %s.\n", what, year)
}
