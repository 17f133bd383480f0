package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pable/go-ipl-metrics/internal/model"
)

// maxDeliveriesPerInsert keeps one multi-row INSERT under SQLite's bound
// variable limit (32766) at 21 columns per row.
const maxDeliveriesPerInsert = 1000

// Tx is one load's unit of work. Nothing it writes is visible outside the
// transaction until Commit.
type Tx struct {
	tx *sqlx.Tx
}

func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Rollback discards the transaction. Calling it after Commit is a no-op.
func (t *Tx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

// GetOrCreateTeam inserts team unless a team with its name exists, and
// returns the stored row. created reports whether this call inserted it.
func (t *Tx) GetOrCreateTeam(ctx context.Context, team model.Team) (model.Team, bool, error) {
	const insertTeam = `
INSERT INTO teams (name, short_name, city)
VALUES (:name, :short_name, :city)
ON CONFLICT (name) DO NOTHING`

	res, err := t.tx.NamedExecContext(ctx, insertTeam, team)
	if err != nil {
		return model.Team{}, false, fmt.Errorf("insert team %q: %w", team.Name, err)
	}
	created, err := inserted(res)
	if err != nil {
		return model.Team{}, false, err
	}

	var stored model.Team
	if err := t.tx.GetContext(ctx, &stored,
		`SELECT id, name, short_name, city FROM teams WHERE name = ?`, team.Name); err != nil {
		return model.Team{}, false, fmt.Errorf("select team %q: %w", team.Name, err)
	}
	return stored, created, nil
}

// GetOrCreatePlayer inserts player unless a player with its name exists.
func (t *Tx) GetOrCreatePlayer(ctx context.Context, player model.Player) (model.Player, bool, error) {
	if player.Role == "" {
		player.Role = model.RoleBatsman
	}

	const insertPlayer = `
INSERT INTO players (name, role)
VALUES (:name, :role)
ON CONFLICT (name) DO NOTHING`

	res, err := t.tx.NamedExecContext(ctx, insertPlayer, player)
	if err != nil {
		return model.Player{}, false, fmt.Errorf("insert player %q: %w", player.Name, err)
	}
	created, err := inserted(res)
	if err != nil {
		return model.Player{}, false, err
	}

	var stored model.Player
	if err := t.tx.GetContext(ctx, &stored,
		`SELECT id, name, role FROM players WHERE name = ?`, player.Name); err != nil {
		return model.Player{}, false, fmt.Errorf("select player %q: %w", player.Name, err)
	}
	return stored, created, nil
}

// GetOrCreateMatch inserts m unless its MatchID is already stored. An
// existing match is never updated. It returns the internal row id.
func (t *Tx) GetOrCreateMatch(ctx context.Context, m model.Match) (int64, bool, error) {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO matches(
			match_id, season, city, match_date, team1_id, team2_id,
			toss_winner_id, toss_decision, result, dl_applied, winner_id,
			win_by_runs, win_by_wickets, player_of_match_id, venue,
			umpire1, umpire2, umpire3
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT (match_id) DO NOTHING`,
		m.MatchID, m.Season, m.City, m.Date.Format(time.DateOnly), m.Team1ID, m.Team2ID,
		nullInt64(m.TossWinnerID), m.TossDecision, m.Result, boolInt(m.DLApplied), nullInt64(m.WinnerID),
		m.WinByRuns, m.WinByWickets, nullInt64(m.PlayerOfMatchID), m.Venue,
		m.Umpire1, m.Umpire2, m.Umpire3,
	)
	if err != nil {
		return 0, false, fmt.Errorf("insert match %d: %w", m.MatchID, err)
	}
	created, err := inserted(res)
	if err != nil {
		return 0, false, err
	}

	id, ok, err := t.MatchByExternalID(ctx, m.MatchID)
	if err != nil {
		return 0, false, err
	}
	if !ok {
		return 0, false, fmt.Errorf("match %d missing after insert", m.MatchID)
	}
	return id, created, nil
}

// MatchByExternalID returns the internal id of the match with the given
// external match id.
func (t *Tx) MatchByExternalID(ctx context.Context, matchID int) (int64, bool, error) {
	var id int64
	err := t.tx.GetContext(ctx, &id, `SELECT id FROM matches WHERE match_id = ?`, matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup match %d: %w", matchID, err)
	}
	return id, true, nil
}

// InsertDeliveries bulk-inserts deliveries with multi-row INSERTs. There is
// no uniqueness check; the same ball loaded twice is stored twice.
func (t *Tx) InsertDeliveries(ctx context.Context, deliveries []model.Delivery) (int64, error) {
	const insertDeliveries = `
INSERT INTO deliveries (
    match_id, inning, batting_team_id, bowling_team_id, over_number, ball_number,
    batsman_id, non_striker_id, bowler_id, is_super_over,
    wide_runs, bye_runs, legbye_runs, noball_runs, penalty_runs,
    batsman_runs, extra_runs, total_runs,
    player_dismissed_id, dismissal_kind, fielder_id
) VALUES (
    :match_id, :inning, :batting_team_id, :bowling_team_id, :over_number, :ball_number,
    :batsman_id, :non_striker_id, :bowler_id, :is_super_over,
    :wide_runs, :bye_runs, :legbye_runs, :noball_runs, :penalty_runs,
    :batsman_runs, :extra_runs, :total_runs,
    :player_dismissed_id, :dismissal_kind, :fielder_id
)`

	var total int64
	for start := 0; start < len(deliveries); start += maxDeliveriesPerInsert {
		end := min(start+maxDeliveriesPerInsert, len(deliveries))
		res, err := t.tx.NamedExecContext(ctx, insertDeliveries, deliveries[start:end])
		if err != nil {
			return total, fmt.Errorf("insert deliveries: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("insert deliveries: rows affected: %w", err)
		}
		total += n
	}
	return total, nil
}

// CountMatches returns the number of matches visible to the transaction.
func (t *Tx) CountMatches(ctx context.Context) (int, error) {
	return countRows(ctx, t.tx, "matches")
}

// CountDeliveries returns the number of deliveries visible to the transaction.
func (t *Tx) CountDeliveries(ctx context.Context) (int, error) {
	return countRows(ctx, t.tx, "deliveries")
}

func inserted(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
