package model

import "time"

// ---- Normalized input records (names not yet resolved to ids) ----

// MatchRecord is one typed row of the matches file.
type MatchRecord struct {
	MatchID       int
	Season        string
	City          string
	Date          time.Time
	DateFallback  bool // Date is SentinelDate because the raw value did not parse
	Team1         string
	Team2         string
	TossWinner    *string
	TossDecision  string
	Result        string
	DLApplied     bool
	Winner        *string
	WinByRuns     int
	WinByWickets  int
	PlayerOfMatch *string
	Venue         string
	Umpire1       string
	Umpire2       string
	Umpire3       string
}

// DeliveryRecord is one typed row of the deliveries file.
type DeliveryRecord struct {
	MatchID         int
	Inning          int
	BattingTeam     string
	BowlingTeam     string
	Over            int
	Ball            int
	Batsman         string
	NonStriker      string
	Bowler          string
	IsSuperOver     bool
	WideRuns        int
	ByeRuns         int
	LegbyeRuns      int
	NoballRuns      int
	PenaltyRuns     int
	BatsmanRuns     int
	ExtraRuns       int
	TotalRuns       int
	PlayerDismissed *string
	DismissalKind   string
	Fielder         *string
}

// ---- Grouped rows returned by the store ----

// SeasonCount is the number of matches in one season.
type SeasonCount struct {
	Season  string `db:"season"`
	Matches int    `db:"matches"`
}

// SeasonTeamWins is the number of matches a team won in one season.
type SeasonTeamWins struct {
	Season string `db:"season"`
	Team   string `db:"team"`
	Wins   int    `db:"wins"`
}

// TeamExtras is the extra runs a bowling side conceded.
type TeamExtras struct {
	Team      string `db:"team"`
	ExtraRuns int    `db:"extra_runs"`
}

// BowlerTotals are a bowler's raw sums for one season.
type BowlerTotals struct {
	Bowler  string `db:"bowler"`
	Runs    int    `db:"runs"`
	Balls   int    `db:"balls"`
	Wickets int    `db:"wickets"`
}

// MatchOutcome names the sides and winner of one match. Winner is empty
// when the match had no result.
type MatchOutcome struct {
	Team1  string `db:"team1"`
	Team2  string `db:"team2"`
	Winner string `db:"winner"`
}
