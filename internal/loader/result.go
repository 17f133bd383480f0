package loader

import "fmt"

// maxReportedErrors caps how many row errors a Result keeps verbatim.
const maxReportedErrors = 20

// Result summarizes one committed load.
type Result struct {
	MatchesRead     int
	MatchesCreated  int
	MatchesExisting int
	DateFallbacks   int

	DeliveriesRead         int
	DeliveriesInserted     int
	DeliveriesMalformed    int
	DeliveriesMissingMatch int

	TeamsCreated   int
	PlayersCreated int

	// Store totals after commit.
	TotalMatches    int
	TotalDeliveries int

	// Errors holds the first maxReportedErrors skipped-row messages.
	Errors []string
}

// DeliveriesSkipped is the number of delivery rows not stored.
func (r *Result) DeliveriesSkipped() int {
	return r.DeliveriesMalformed + r.DeliveriesMissingMatch
}

// AddErrorf records a skipped-row message.
func (r *Result) AddErrorf(format string, args ...any) {
	if len(r.Errors) >= maxReportedErrors {
		return
	}
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a one-line description of the load.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"matches=%d (new=%d existing=%d) deliveries=%d (skipped=%d missing_match=%d malformed=%d) teams_created=%d players_created=%d date_fallbacks=%d",
		r.MatchesRead, r.MatchesCreated, r.MatchesExisting,
		r.DeliveriesInserted, r.DeliveriesSkipped(), r.DeliveriesMissingMatch, r.DeliveriesMalformed,
		r.TeamsCreated, r.PlayersCreated, r.DateFallbacks,
	)
}
