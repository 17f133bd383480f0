package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-ipl-metrics/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := sonic.ConfigStd.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintMatchesPerYear prints the season match counts.
func PrintMatchesPerYear(w io.Writer, rows []model.MatchesPerYear) {
	table := newTable(w)
	table.Header("SEASON", "MATCHES")
	total := 0
	for _, r := range rows {
		table.Append(r.Year, strconv.Itoa(r.MatchesCount))
		total += r.MatchesCount
	}
	table.Footer("TOTAL", strconv.Itoa(total))
	table.Render()
}

// PrintTeamWins prints wins per team, grouped by season.
func PrintTeamWins(w io.Writer, rows []model.TeamWins) {
	table := newTable(w)
	table.Header("SEASON", "TEAM", "WINS")
	for _, r := range rows {
		table.Append(r.Year, r.Team, strconv.Itoa(r.Wins))
	}
	table.Render()
}

// PrintExtraRuns prints extras conceded per bowling side.
func PrintExtraRuns(w io.Writer, rows []model.ExtraRunsPerTeam) {
	table := newTable(w)
	table.Header("TEAM", "EXTRAS")
	for _, r := range rows {
		table.Append(r.Team, strconv.Itoa(r.ExtraRuns))
	}
	table.Render()
}

// PrintEconomicalBowlers prints the economy leaderboard with a rank column.
func PrintEconomicalBowlers(w io.Writer, rows []model.EconomicalBowler) {
	table := newTable(w)
	table.Header("#", "BOWLER", "ECON", "OVERS", "RUNS", "WKTS")
	for i, r := range rows {
		table.Append(
			strconv.Itoa(i+1),
			r.Bowler,
			fmt.Sprintf("%.2f", r.EconomyRate),
			fmt.Sprintf("%.1f", r.OversBowled),
			strconv.Itoa(r.RunsConceded),
			strconv.Itoa(r.WicketsTaken),
		)
	}
	table.Render()
}

// PrintPlayedVsWon prints played, won and win% per team.
func PrintPlayedVsWon(w io.Writer, rows []model.MatchesPlayedVsWon) {
	table := newTable(w)
	table.Header("TEAM", "PLAYED", "WON", "WIN%")
	for _, r := range rows {
		table.Append(
			r.Team,
			strconv.Itoa(r.MatchesPlayed),
			strconv.Itoa(r.MatchesWon),
			fmt.Sprintf("%.2f%%", r.WinPercentage),
		)
	}
	table.Render()
}

// PrintYears prints one season per line.
func PrintYears(w io.Writer, years []string) {
	for _, y := range years {
		fmt.Fprintln(w, y)
	}
}

// PrintTeams prints the team list.
func PrintTeams(w io.Writer, teams []model.Team) {
	table := newTable(w)
	table.Header("ID", "NAME", "SHORT", "CITY")
	for _, t := range teams {
		table.Append(strconv.FormatInt(t.ID, 10), t.Name, t.ShortName, orDash(t.City))
	}
	table.Render()
}

// PrintMatchList prints one row per stored match.
func PrintMatchList(w io.Writer, matches []model.MatchSummary) {
	table := newTable(w)
	table.Header("ID", "SEASON", "DATE", "TEAM 1", "TEAM 2", "WINNER", "MARGIN")
	for _, m := range matches {
		table.Append(
			strconv.Itoa(m.MatchID),
			m.Season,
			m.Date,
			m.Team1,
			m.Team2,
			orDash(m.Winner),
			Margin(m),
		)
	}
	table.Render()
}

// PrintMatchSummary prints a header block for one match.
func PrintMatchSummary(w io.Writer, m model.MatchSummary) {
	fmt.Fprintf(w, "\nMatch %d  |  Season: %s  |  Date: %s  |  %s, %s\n",
		m.MatchID, m.Season, m.Date, orDash(m.Venue), orDash(m.City))
	fmt.Fprintf(w, "%s vs %s\n", m.Team1, m.Team2)
	if m.TossWinner != "" {
		fmt.Fprintf(w, "Toss: %s, chose to %s\n", m.TossWinner, orDash(m.TossDecision))
	}
	result := "No result"
	if m.Winner != "" {
		result = fmt.Sprintf("%s won by %s", m.Winner, Margin(m))
	}
	if m.DLApplied {
		result += " (D/L)"
	}
	fmt.Fprintf(w, "Result: %s\n", result)
	if m.PlayerOfMatch != "" {
		fmt.Fprintf(w, "Player of the match: %s\n", m.PlayerOfMatch)
	}
	fmt.Fprintln(w)
}

// PrintInnings prints per-innings totals.
func PrintInnings(w io.Writer, innings []model.InningsTotal) {
	table := newTable(w)
	table.Header("INN", "BATTING", "SCORE", "OVERS", "EXTRAS")
	for _, in := range innings {
		table.Append(
			strconv.Itoa(in.Inning),
			in.BattingTeam,
			fmt.Sprintf("%d/%d", in.Runs, in.Wickets),
			Overs(in.Balls),
			strconv.Itoa(in.Extras),
		)
	}
	table.Render()
}

// PrintRaw prints an arbitrary result set.
func PrintRaw(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)
	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
}

// Margin renders the winning margin, e.g. "35 runs" or "7 wickets".
func Margin(m model.MatchSummary) string {
	switch {
	case m.Winner == "":
		return "-"
	case m.WinByRuns > 0:
		return plural(m.WinByRuns, "run")
	case m.WinByWickets > 0:
		return plural(m.WinByWickets, "wicket")
	default:
		return m.Result
	}
}

// Overs renders a delivery count in cricket notation: 61 balls is "10.1".
func Overs(balls int) string {
	return fmt.Sprintf("%d.%d", balls/6, balls%6)
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
