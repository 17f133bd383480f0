package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pable/go-ipl-metrics/internal/model"
)

// MatchCountsBySeason counts matches per season, ordered by season as text.
func (db *DB) MatchCountsBySeason(ctx context.Context) ([]model.SeasonCount, error) {
	const q = `
SELECT season, COUNT(DISTINCT match_id) AS matches
FROM matches
GROUP BY season
ORDER BY season`

	out := []model.SeasonCount{}
	if err := db.conn.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("match counts by season: %w", err)
	}
	return out, nil
}

// WinsBySeasonAndTeam counts won matches per (season, winner). Matches
// without a winner are ignored.
func (db *DB) WinsBySeasonAndTeam(ctx context.Context) ([]model.SeasonTeamWins, error) {
	const q = `
SELECT m.season, t.name AS team, COUNT(*) AS wins
FROM matches m
JOIN teams t ON t.id = m.winner_id
WHERE m.winner_id IS NOT NULL
GROUP BY m.season, t.name
ORDER BY m.season, t.name`

	out := []model.SeasonTeamWins{}
	if err := db.conn.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("wins by season and team: %w", err)
	}
	return out, nil
}

// ExtraRunsByBowlingTeam sums extras conceded per bowling side in season.
func (db *DB) ExtraRunsByBowlingTeam(ctx context.Context, season string) ([]model.TeamExtras, error) {
	const q = `
SELECT t.name AS team, COALESCE(SUM(d.extra_runs), 0) AS extra_runs
FROM deliveries d
JOIN matches m ON m.id = d.match_id
JOIN teams t ON t.id = d.bowling_team_id
WHERE m.season = ?
GROUP BY t.name
ORDER BY extra_runs DESC, t.name`

	out := []model.TeamExtras{}
	if err := db.conn.SelectContext(ctx, &out, q, season); err != nil {
		return nil, fmt.Errorf("extra runs for %s: %w", season, err)
	}
	return out, nil
}

// BowlerTotals returns, per bowler in season, runs conceded, deliveries
// bowled and deliveries on which a batsman was dismissed.
func (db *DB) BowlerTotals(ctx context.Context, season string) ([]model.BowlerTotals, error) {
	const q = `
SELECT p.name AS bowler,
       COALESCE(SUM(d.total_runs), 0) AS runs,
       COUNT(*) AS balls,
       COUNT(d.player_dismissed_id) AS wickets
FROM deliveries d
JOIN matches m ON m.id = d.match_id
JOIN players p ON p.id = d.bowler_id
WHERE m.season = ?
GROUP BY p.name
ORDER BY p.name`

	out := []model.BowlerTotals{}
	if err := db.conn.SelectContext(ctx, &out, q, season); err != nil {
		return nil, fmt.Errorf("bowler totals for %s: %w", season, err)
	}
	return out, nil
}

// SeasonOutcomes lists the sides and winner of every match in season.
func (db *DB) SeasonOutcomes(ctx context.Context, season string) ([]model.MatchOutcome, error) {
	const q = `
SELECT t1.name AS team1, t2.name AS team2, COALESCE(w.name, '') AS winner
FROM matches m
JOIN teams t1 ON t1.id = m.team1_id
JOIN teams t2 ON t2.id = m.team2_id
LEFT JOIN teams w ON w.id = m.winner_id
WHERE m.season = ?
ORDER BY m.match_id`

	out := []model.MatchOutcome{}
	if err := db.conn.SelectContext(ctx, &out, q, season); err != nil {
		return nil, fmt.Errorf("outcomes for %s: %w", season, err)
	}
	return out, nil
}

// Seasons returns the distinct seasons with at least one match.
func (db *DB) Seasons(ctx context.Context) ([]string, error) {
	out := []string{}
	if err := db.conn.SelectContext(ctx, &out, `SELECT DISTINCT season FROM matches ORDER BY season`); err != nil {
		return nil, fmt.Errorf("seasons: %w", err)
	}
	return out, nil
}

// ListTeams returns all teams ordered by name.
func (db *DB) ListTeams(ctx context.Context) ([]model.Team, error) {
	out := []model.Team{}
	if err := db.conn.SelectContext(ctx, &out,
		`SELECT id, name, short_name, city FROM teams ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return out, nil
}

const matchSummarySelect = `
SELECT m.match_id, m.season, m.city, m.match_date AS date,
       t1.name AS team1, t2.name AS team2,
       COALESCE(tw.name, '') AS toss_winner, m.toss_decision, m.result,
       m.dl_applied, COALESCE(w.name, '') AS winner,
       m.win_by_runs, m.win_by_wickets,
       COALESCE(p.name, '') AS player_of_match, m.venue
FROM matches m
JOIN teams t1 ON t1.id = m.team1_id
JOIN teams t2 ON t2.id = m.team2_id
LEFT JOIN teams tw ON tw.id = m.toss_winner_id
LEFT JOIN teams w ON w.id = m.winner_id
LEFT JOIN players p ON p.id = m.player_of_match_id`

// ListMatches returns stored matches by date. An empty season lists all.
func (db *DB) ListMatches(ctx context.Context, season string) ([]model.MatchSummary, error) {
	q := matchSummarySelect
	var args []any
	if season != "" {
		q += "\nWHERE m.season = ?"
		args = append(args, season)
	}
	q += "\nORDER BY m.match_date, m.match_id"

	out := []model.MatchSummary{}
	if err := db.conn.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return out, nil
}

// GetMatch returns the match with the given external id, or nil if absent.
func (db *DB) GetMatch(ctx context.Context, matchID int) (*model.MatchSummary, error) {
	var m model.MatchSummary
	err := db.conn.GetContext(ctx, &m, matchSummarySelect+"\nWHERE m.match_id = ?", matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get match %d: %w", matchID, err)
	}
	return &m, nil
}

// InningsTotals sums each innings of the match with the given external id.
func (db *DB) InningsTotals(ctx context.Context, matchID int) ([]model.InningsTotal, error) {
	const q = `
SELECT d.inning, t.name AS batting_team,
       COALESCE(SUM(d.total_runs), 0) AS runs,
       COUNT(d.player_dismissed_id) AS wickets,
       COUNT(*) AS balls,
       COALESCE(SUM(d.extra_runs), 0) AS extras
FROM deliveries d
JOIN matches m ON m.id = d.match_id
JOIN teams t ON t.id = d.batting_team_id
WHERE m.match_id = ?
GROUP BY d.inning, t.name
ORDER BY d.inning`

	out := []model.InningsTotal{}
	if err := db.conn.SelectContext(ctx, &out, q, matchID); err != nil {
		return nil, fmt.Errorf("innings totals for %d: %w", matchID, err)
	}
	return out, nil
}

// QueryRaw runs an arbitrary query and returns column names and every row
// rendered as text. NULL renders as "NULL".
func (db *DB) QueryRaw(ctx context.Context, query string) ([]string, [][]string, error) {
	rows, err := db.conn.QueryxContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("columns: %w", err)
	}

	var out [][]string
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, nil, fmt.Errorf("scan: %w", err)
		}
		row := make([]string, len(vals))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("rows: %w", err)
	}
	return cols, out, nil
}
