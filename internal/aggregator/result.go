package aggregator

import "net/http"

// Messages returned with successful results. Per-season messages take the
// year as their only verb.
const (
	MsgMatchesPerYear    = "Matches per year data retrieved successfully"
	MsgTeamWins          = "Team wins stacked data retrieved successfully"
	MsgExtraRuns         = "Extra runs per team for %s retrieved successfully"
	MsgEconomicalBowlers = "Top economical bowlers for %s retrieved successfully"
	MsgPlayedVsWon       = "Matches played vs won for %s retrieved successfully"
	MsgAvailableYears    = "Available years retrieved successfully"
	MsgTeams             = "Teams retrieved successfully"
)

// Result is the envelope handed to the presentation layer.
type Result struct {
	Success    bool   `json:"success"`
	Data       any    `json:"data,omitempty"`
	Year       string `json:"year,omitempty"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"-"`
}

// Respond wraps a procedure's outcome. A non-nil err yields a failure with
// the error text and a server-fault status; data, year and message are
// then dropped.
func Respond(data any, year, message string, err error) Result {
	if err != nil {
		return Result{
			Success:    false,
			Error:      err.Error(),
			StatusCode: http.StatusInternalServerError,
		}
	}
	return Result{
		Success:    true,
		Data:       data,
		Year:       year,
		Message:    message,
		StatusCode: http.StatusOK,
	}
}
