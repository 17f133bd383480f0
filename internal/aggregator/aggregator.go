package aggregator

import (
	"context"
	"sort"
	"strconv"

	crerr "github.com/cockroachdb/errors"

	"github.com/pable/go-ipl-metrics/internal/logging"
	"github.com/pable/go-ipl-metrics/internal/model"
)

const (
	// MinBallsBowled is the sample-size floor for the economy leaderboard.
	MinBallsBowled = 60
	// TopBowlers is the length of the economy leaderboard.
	TopBowlers = 15
)

// Store is the read-only query surface the engine aggregates over.
type Store interface {
	MatchCountsBySeason(ctx context.Context) ([]model.SeasonCount, error)
	WinsBySeasonAndTeam(ctx context.Context) ([]model.SeasonTeamWins, error)
	ExtraRunsByBowlingTeam(ctx context.Context, season string) ([]model.TeamExtras, error)
	BowlerTotals(ctx context.Context, season string) ([]model.BowlerTotals, error)
	SeasonOutcomes(ctx context.Context, season string) ([]model.MatchOutcome, error)
	Seasons(ctx context.Context) ([]string, error)
	ListTeams(ctx context.Context) ([]model.Team, error)
}

// Engine computes season statistics. Every method returns a non-nil slice
// on success, empty when there is nothing to report.
type Engine struct {
	store  Store
	logger *logging.Logger
}

func New(store Store, logger *logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{store: store, logger: logger}
}

// MatchesPerYear counts matches per season, ordered by season as text.
func (e *Engine) MatchesPerYear(ctx context.Context) ([]model.MatchesPerYear, error) {
	rows, err := e.store.MatchCountsBySeason(ctx)
	if err != nil {
		return nil, e.fail("matches per year", err)
	}

	out := make([]model.MatchesPerYear, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.MatchesPerYear{Year: r.Season, MatchesCount: r.Matches})
	}
	// Byte order, whatever the store's collation.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

// TeamWinsBySeason counts wins per (season, team), ordered by season then team.
func (e *Engine) TeamWinsBySeason(ctx context.Context) ([]model.TeamWins, error) {
	rows, err := e.store.WinsBySeasonAndTeam(ctx)
	if err != nil {
		return nil, e.fail("team wins by season", err)
	}

	out := make([]model.TeamWins, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.TeamWins{Team: r.Team, Year: r.Season, Wins: r.Wins})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Team < out[j].Team
	})
	return out, nil
}

// ExtraRunsPerTeam sums extras conceded by each bowling side in year,
// largest first.
func (e *Engine) ExtraRunsPerTeam(ctx context.Context, year string) ([]model.ExtraRunsPerTeam, error) {
	rows, err := e.store.ExtraRunsByBowlingTeam(ctx, year)
	if err != nil {
		return nil, e.fail("extra runs per team", err)
	}

	out := make([]model.ExtraRunsPerTeam, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.ExtraRunsPerTeam{Team: r.Team, ExtraRuns: r.ExtraRuns})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ExtraRuns != out[j].ExtraRuns {
			return out[i].ExtraRuns > out[j].ExtraRuns
		}
		return out[i].Team < out[j].Team
	})
	return out, nil
}

// EconomicalBowlers ranks bowlers with at least MinBallsBowled deliveries in
// year by economy rate, lowest first, and keeps the top TopBowlers.
func (e *Engine) EconomicalBowlers(ctx context.Context, year string) ([]model.EconomicalBowler, error) {
	rows, err := e.store.BowlerTotals(ctx, year)
	if err != nil {
		return nil, e.fail("economical bowlers", err)
	}

	out := make([]model.EconomicalBowler, 0, len(rows))
	for _, r := range rows {
		if r.Balls < MinBallsBowled {
			continue
		}
		overs := float64(r.Balls) / 6.0
		economy := 0.0
		if overs > 0 {
			economy = float64(r.Runs) / overs
		}
		out = append(out, model.EconomicalBowler{
			Bowler:       r.Bowler,
			EconomyRate:  round(economy, 2),
			OversBowled:  round(overs, 1),
			RunsConceded: r.Runs,
			WicketsTaken: r.Wickets,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].EconomyRate != out[j].EconomyRate {
			return out[i].EconomyRate < out[j].EconomyRate
		}
		return out[i].Bowler < out[j].Bowler
	})
	if len(out) > TopBowlers {
		out = out[:TopBowlers]
	}
	return out, nil
}

// MatchesPlayedVsWon reports, for every team that played in year, matches
// played, matches won and win percentage. Most wins first.
func (e *Engine) MatchesPlayedVsWon(ctx context.Context, year string) ([]model.MatchesPlayedVsWon, error) {
	outcomes, err := e.store.SeasonOutcomes(ctx, year)
	if err != nil {
		return nil, e.fail("matches played vs won", err)
	}

	played := make(map[string]int)
	won := make(map[string]int)
	for _, o := range outcomes {
		played[o.Team1]++
		if o.Team2 != o.Team1 {
			played[o.Team2]++
		}
		if o.Winner != "" {
			won[o.Winner]++
		}
	}

	out := make([]model.MatchesPlayedVsWon, 0, len(played))
	for team, p := range played {
		w := won[team]
		out = append(out, model.MatchesPlayedVsWon{
			Team:          team,
			MatchesPlayed: p,
			MatchesWon:    w,
			WinPercentage: winPercentage(w, p),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchesWon != out[j].MatchesWon {
			return out[i].MatchesWon > out[j].MatchesWon
		}
		return out[i].Team < out[j].Team
	})
	return out, nil
}

// AvailableYears lists seasons with at least one match.
func (e *Engine) AvailableYears(ctx context.Context) ([]string, error) {
	years, err := e.store.Seasons(ctx)
	if err != nil {
		return nil, e.fail("available years", err)
	}
	if years == nil {
		years = []string{}
	}
	sort.Strings(years)
	return years, nil
}

// Teams lists every stored team by name.
func (e *Engine) Teams(ctx context.Context) ([]model.Team, error) {
	teams, err := e.store.ListTeams(ctx)
	if err != nil {
		return nil, e.fail("teams", err)
	}
	if teams == nil {
		teams = []model.Team{}
	}
	return teams, nil
}

func (e *Engine) fail(query string, err error) error {
	e.logger.Error("aggregation failed", "query", query, "error", err)
	return crerr.Wrap(err, query)
}

func winPercentage(won, played int) float64 {
	if played == 0 {
		return 0
	}
	return round(float64(won)/float64(played)*100, 2)
}

// round rounds v to the given number of decimals, resolving exact ties of
// the binary value to even: 7.125 becomes 7.12.
func round(v float64, decimals int) float64 {
	f, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	return f
}
