package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-ipl-metrics/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// fixture holds ids created by seed.
type fixture struct {
	teams   map[string]int64
	players map[string]int64
	matches map[int]int64
}

func ptr[T any](v T) *T { return &v }

// seed loads two 2017 matches and one 2016 match, plus a handful of
// deliveries, in one committed transaction.
func seed(t *testing.T, db *DB) fixture {
	t.Helper()
	ctx := context.Background()
	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	f := fixture{teams: map[string]int64{}, players: map[string]int64{}, matches: map[int]int64{}}
	for _, name := range []string{"Mumbai Indians", "Rising Pune Supergiant", "Sunrisers Hyderabad"} {
		team, _, err := tx.GetOrCreateTeam(ctx, model.Team{Name: name, ShortName: name[:4]})
		require.NoError(t, err)
		f.teams[name] = team.ID
	}
	for _, name := range []string{"JJ Bumrah", "RG Sharma", "SPD Smith", "AM Rahane"} {
		p, _, err := tx.GetOrCreatePlayer(ctx, model.Player{Name: name})
		require.NoError(t, err)
		f.players[name] = p.ID
	}

	mi, rps, srh := f.teams["Mumbai Indians"], f.teams["Rising Pune Supergiant"], f.teams["Sunrisers Hyderabad"]
	matches := []model.Match{
		{MatchID: 1, Season: "2017", Date: time.Date(2017, 4, 6, 0, 0, 0, 0, time.UTC), Team1ID: mi, Team2ID: rps, WinnerID: &rps, Result: "normal", PlayerOfMatchID: ptr(f.players["SPD Smith"])},
		{MatchID: 2, Season: "2017", Date: time.Date(2017, 5, 21, 0, 0, 0, 0, time.UTC), Team1ID: mi, Team2ID: srh, WinnerID: &mi, TossWinnerID: &srh, TossDecision: "field", Result: "normal"},
		{MatchID: 3, Season: "2016", Date: time.Date(2016, 4, 9, 0, 0, 0, 0, time.UTC), Team1ID: srh, Team2ID: rps, Result: "no result"},
	}
	for _, m := range matches {
		id, created, err := tx.GetOrCreateMatch(ctx, m)
		require.NoError(t, err)
		require.True(t, created)
		f.matches[m.MatchID] = id
	}

	bumrah, sharma, smith, rahane := f.players["JJ Bumrah"], f.players["RG Sharma"], f.players["SPD Smith"], f.players["AM Rahane"]
	deliveries := []model.Delivery{
		{MatchID: f.matches[1], Inning: 1, BattingTeamID: rps, BowlingTeamID: mi, Over: 1, Ball: 1, BatsmanID: rahane, NonStrikerID: smith, BowlerID: bumrah, WideRuns: 1, ExtraRuns: 1, TotalRuns: 1},
		{MatchID: f.matches[1], Inning: 1, BattingTeamID: rps, BowlingTeamID: mi, Over: 1, Ball: 2, BatsmanID: rahane, NonStrikerID: smith, BowlerID: bumrah, BatsmanRuns: 4, TotalRuns: 4},
		{MatchID: f.matches[1], Inning: 1, BattingTeamID: rps, BowlingTeamID: mi, Over: 1, Ball: 3, BatsmanID: rahane, NonStrikerID: smith, BowlerID: bumrah, PlayerDismissedID: &rahane, DismissalKind: "bowled"},
		{MatchID: f.matches[1], Inning: 2, BattingTeamID: mi, BowlingTeamID: rps, Over: 1, Ball: 1, BatsmanID: sharma, NonStrikerID: bumrah, BowlerID: smith, ByeRuns: 2, ExtraRuns: 2, TotalRuns: 2, IsSuperOver: true},
	}
	n, err := tx.InsertDeliveries(ctx, deliveries)
	require.NoError(t, err)
	require.Equal(t, int64(len(deliveries)), n)

	require.NoError(t, tx.Commit())
	return f
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ipl.db")
	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening applies the schema again without error.
	db, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestGetOrCreateTeamIsIdempotent(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()
	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	first, created, err := tx.GetOrCreateTeam(ctx, model.Team{Name: "Gujarat Lions", ShortName: "GL", City: "Rajkot"})
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := tx.GetOrCreateTeam(ctx, model.Team{Name: "Gujarat Lions", ShortName: "Gujarat Li"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, again, "existing team is not overwritten")
	assert.Equal(t, "GL", again.ShortName)
	assert.Equal(t, "Rajkot", again.City)
}

func TestGetOrCreatePlayerDefaultsRole(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()
	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	p, created, err := tx.GetOrCreatePlayer(ctx, model.Player{Name: "Rashid Khan"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, model.RoleBatsman, p.Role)

	p2, created, err := tx.GetOrCreatePlayer(ctx, model.Player{Name: "Rashid Khan", Role: model.RoleBowler})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, p.ID, p2.ID)
	assert.Equal(t, model.RoleBatsman, p2.Role)
}

func TestGetOrCreateMatchKeepsFirstRow(t *testing.T) {
	db := openMemDB(t)
	f := seed(t, db)
	ctx := context.Background()

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	id, created, err := tx.GetOrCreateMatch(ctx, model.Match{
		MatchID: 1, Season: "2099", Date: model.SentinelDate,
		Team1ID: f.teams["Sunrisers Hyderabad"], Team2ID: f.teams["Mumbai Indians"],
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, f.matches[1], id)
	require.NoError(t, tx.Commit())

	m, err := db.GetMatch(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "2017", m.Season)
	assert.Equal(t, "Mumbai Indians", m.Team1)

	n, err := db.CountMatches(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestMatchByExternalID(t *testing.T) {
	db := openMemDB(t)
	f := seed(t, db)
	ctx := context.Background()

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	id, ok, err := tx.MatchByExternalID(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, f.matches[2], id)

	_, ok, err = tx.MatchByExternalID(ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRollbackDiscardsEverything(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	team, _, err := tx.GetOrCreateTeam(ctx, model.Team{Name: "Kochi Tuskers Kerala"})
	require.NoError(t, err)
	_, _, err = tx.GetOrCreateMatch(ctx, model.Match{MatchID: 10, Season: "2011", Date: model.SentinelDate, Team1ID: team.ID, Team2ID: team.ID})
	require.NoError(t, err)

	n, err := tx.CountMatches(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, tx.Rollback())
	require.NoError(t, tx.Rollback(), "second rollback is a no-op")

	n, err = db.CountMatches(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	teams, err := db.ListTeams(ctx)
	require.NoError(t, err)
	assert.Empty(t, teams)
}

func TestInsertDeliveriesSplitsLargeBatches(t *testing.T) {
	db := openMemDB(t)
	f := seed(t, db)
	ctx := context.Background()

	mi, rps := f.teams["Mumbai Indians"], f.teams["Rising Pune Supergiant"]
	batch := make([]model.Delivery, maxDeliveriesPerInsert*2+7)
	for i := range batch {
		batch[i] = model.Delivery{
			MatchID: f.matches[2], Inning: 1, BattingTeamID: mi, BowlingTeamID: rps,
			Over: i/6 + 1, Ball: i%6 + 1,
			BatsmanID: f.players["RG Sharma"], NonStrikerID: f.players["JJ Bumrah"], BowlerID: f.players["SPD Smith"],
			TotalRuns: 1, BatsmanRuns: 1,
		}
	}

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	n, err := tx.InsertDeliveries(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, int64(len(batch)), n)
	require.NoError(t, tx.Commit())

	total, err := db.CountDeliveries(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(batch)+4, total)
}

func TestInsertDeliveriesRejectsUnknownMatch(t *testing.T) {
	db := openMemDB(t)
	f := seed(t, db)
	ctx := context.Background()

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	_, err = tx.InsertDeliveries(ctx, []model.Delivery{{
		MatchID: 4242, Inning: 1,
		BattingTeamID: f.teams["Mumbai Indians"], BowlingTeamID: f.teams["Sunrisers Hyderabad"],
		BatsmanID: f.players["RG Sharma"], NonStrikerID: f.players["JJ Bumrah"], BowlerID: f.players["SPD Smith"],
	}})
	assert.Error(t, err, "foreign keys are enforced")
}

func TestMatchCountsBySeason(t *testing.T) {
	db := openMemDB(t)
	seed(t, db)

	got, err := db.MatchCountsBySeason(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.SeasonCount{{Season: "2016", Matches: 1}, {Season: "2017", Matches: 2}}, got)
}

func TestWinsBySeasonAndTeam(t *testing.T) {
	db := openMemDB(t)
	seed(t, db)

	got, err := db.WinsBySeasonAndTeam(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.SeasonTeamWins{
		{Season: "2017", Team: "Mumbai Indians", Wins: 1},
		{Season: "2017", Team: "Rising Pune Supergiant", Wins: 1},
	}, got)
}

func TestExtraRunsByBowlingTeam(t *testing.T) {
	db := openMemDB(t)
	seed(t, db)
	ctx := context.Background()

	got, err := db.ExtraRunsByBowlingTeam(ctx, "2017")
	require.NoError(t, err)
	assert.Equal(t, []model.TeamExtras{
		{Team: "Rising Pune Supergiant", ExtraRuns: 2},
		{Team: "Mumbai Indians", ExtraRuns: 1},
	}, got)

	empty, err := db.ExtraRunsByBowlingTeam(ctx, "2016")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestBowlerTotals(t *testing.T) {
	db := openMemDB(t)
	seed(t, db)

	got, err := db.BowlerTotals(context.Background(), "2017")
	require.NoError(t, err)
	assert.Equal(t, []model.BowlerTotals{
		{Bowler: "JJ Bumrah", Runs: 5, Balls: 3, Wickets: 1},
		{Bowler: "SPD Smith", Runs: 2, Balls: 1, Wickets: 0},
	}, got)
}

func TestSeasonOutcomes(t *testing.T) {
	db := openMemDB(t)
	seed(t, db)
	ctx := context.Background()

	got, err := db.SeasonOutcomes(ctx, "2016")
	require.NoError(t, err)
	assert.Equal(t, []model.MatchOutcome{
		{Team1: "Sunrisers Hyderabad", Team2: "Rising Pune Supergiant", Winner: ""},
	}, got)

	seasons, err := db.Seasons(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2016", "2017"}, seasons)
}

func TestListAndShowMatches(t *testing.T) {
	db := openMemDB(t)
	seed(t, db)
	ctx := context.Background()

	all, err := db.ListMatches(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 3, all[0].MatchID, "ordered by date")
	assert.Equal(t, "2016-04-09", all[0].Date)

	season, err := db.ListMatches(ctx, "2017")
	require.NoError(t, err)
	require.Len(t, season, 2)
	assert.Equal(t, "Sunrisers Hyderabad", season[1].TossWinner)
	assert.Equal(t, "field", season[1].TossDecision)

	m, err := db.GetMatch(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "SPD Smith", m.PlayerOfMatch)
	assert.Equal(t, "Rising Pune Supergiant", m.Winner)

	missing, err := db.GetMatch(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, missing)

	innings, err := db.InningsTotals(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []model.InningsTotal{
		{Inning: 1, BattingTeam: "Rising Pune Supergiant", Runs: 5, Wickets: 1, Balls: 3, Extras: 1},
		{Inning: 2, BattingTeam: "Mumbai Indians", Runs: 2, Wickets: 0, Balls: 1, Extras: 2},
	}, innings)
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	seed(t, db)

	cols, rows, err := db.QueryRaw(context.Background(),
		"SELECT match_id, winner_id FROM matches WHERE season = '2016'")
	require.NoError(t, err)
	assert.Equal(t, []string{"match_id", "winner_id"}, cols)
	assert.Equal(t, [][]string{{"3", "NULL"}}, rows)

	_, _, err = db.QueryRaw(context.Background(), "SELECT nope FROM nowhere")
	assert.Error(t, err)
}
