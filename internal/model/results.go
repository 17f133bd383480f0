package model

// ---- Aggregation results, shaped for the charting client ----

type MatchesPerYear struct {
	Year         string `json:"year"`
	MatchesCount int    `json:"matches_count"`
}

type TeamWins struct {
	Team string `json:"team"`
	Year string `json:"year"`
	Wins int    `json:"wins"`
}

type ExtraRunsPerTeam struct {
	Team      string `json:"team"`
	ExtraRuns int    `json:"extra_runs"`
}

// EconomicalBowler is one row of the economy-rate leaderboard.
// EconomyRate is rounded to 2 decimals, OversBowled to 1.
type EconomicalBowler struct {
	Bowler       string  `json:"bowler"`
	EconomyRate  float64 `json:"economy_rate"`
	OversBowled  float64 `json:"overs_bowled"`
	RunsConceded int     `json:"runs_conceded"`
	WicketsTaken int     `json:"wickets_taken"`
}

type MatchesPlayedVsWon struct {
	Team          string  `json:"team"`
	MatchesPlayed int     `json:"matches_played"`
	MatchesWon    int     `json:"matches_won"`
	WinPercentage float64 `json:"win_percentage"`
}
