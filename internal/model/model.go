package model

import "time"

// Role is a player's role tag.
type Role string

const (
	RoleBatsman      Role = "batsman"
	RoleBowler       Role = "bowler"
	RoleAllRounder   Role = "allrounder"
	RoleWicketKeeper Role = "wicketkeeper"
)

// ShortNameLen is the maximum length of a team's short display name.
const ShortNameLen = 10

// SentinelDate substitutes for match dates that cannot be parsed.
var SentinelDate = time.Date(2008, time.January, 1, 0, 0, 0, 0, time.UTC)

// ---- Stored entities ----

// Team is a franchise. Name is the only dedup key.
type Team struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	ShortName string `db:"short_name" json:"short_name"`
	City      string `db:"city" json:"city"`
}

// Player is identified by name within this store.
type Player struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Role Role   `db:"role" json:"role"`
}

// Match is one fixture. MatchID is the externally supplied id and is immutable.
type Match struct {
	ID              int64
	MatchID         int
	Season          string
	City            string
	Date            time.Time
	Team1ID         int64
	Team2ID         int64
	TossWinnerID    *int64
	TossDecision    string
	Result          string
	DLApplied       bool
	WinnerID        *int64
	WinByRuns       int
	WinByWickets    int
	PlayerOfMatchID *int64
	Venue           string
	Umpire1         string
	Umpire2         string
	Umpire3         string
}

// Delivery is one ball bowled. Team and player references are entity ids.
type Delivery struct {
	MatchID           int64  `db:"match_id"`
	Inning            int    `db:"inning"`
	BattingTeamID     int64  `db:"batting_team_id"`
	BowlingTeamID     int64  `db:"bowling_team_id"`
	Over              int    `db:"over_number"`
	Ball              int    `db:"ball_number"`
	BatsmanID         int64  `db:"batsman_id"`
	NonStrikerID      int64  `db:"non_striker_id"`
	BowlerID          int64  `db:"bowler_id"`
	IsSuperOver       bool   `db:"is_super_over"`
	WideRuns          int    `db:"wide_runs"`
	ByeRuns           int    `db:"bye_runs"`
	LegbyeRuns        int    `db:"legbye_runs"`
	NoballRuns        int    `db:"noball_runs"`
	PenaltyRuns       int    `db:"penalty_runs"`
	BatsmanRuns       int    `db:"batsman_runs"`
	ExtraRuns         int    `db:"extra_runs"`
	TotalRuns         int    `db:"total_runs"`
	PlayerDismissedID *int64 `db:"player_dismissed_id"`
	DismissalKind     string `db:"dismissal_kind"`
	FielderID         *int64 `db:"fielder_id"`
}

// MatchSummary is a stored match with team and player names joined in.
type MatchSummary struct {
	MatchID       int    `db:"match_id" json:"match_id"`
	Season        string `db:"season" json:"season"`
	City          string `db:"city" json:"city"`
	Date          string `db:"date" json:"date"`
	Team1         string `db:"team1" json:"team1"`
	Team2         string `db:"team2" json:"team2"`
	TossWinner    string `db:"toss_winner" json:"toss_winner"`
	TossDecision  string `db:"toss_decision" json:"toss_decision"`
	Result        string `db:"result" json:"result"`
	DLApplied     bool   `db:"dl_applied" json:"dl_applied"`
	Winner        string `db:"winner" json:"winner"`
	WinByRuns     int    `db:"win_by_runs" json:"win_by_runs"`
	WinByWickets  int    `db:"win_by_wickets" json:"win_by_wickets"`
	PlayerOfMatch string `db:"player_of_match" json:"player_of_match"`
	Venue         string `db:"venue" json:"venue"`
}

// InningsTotal is the runs and wickets of one innings of a match.
type InningsTotal struct {
	Inning      int    `db:"inning" json:"inning"`
	BattingTeam string `db:"batting_team" json:"batting_team"`
	Runs        int    `db:"runs" json:"runs"`
	Wickets     int    `db:"wickets" json:"wickets"`
	Balls       int    `db:"balls" json:"balls"`
	Extras      int    `db:"extras" json:"extras"`
}
