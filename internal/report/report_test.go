package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-ipl-metrics/internal/model"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]any{"success": true, "data": []model.MatchesPerYear{{Year: "2008", MatchesCount: 58}}}))

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Contains(t, out, `"matches_count": 58`)
	assert.Contains(t, out, "\n  \"data\"")
}

func TestPrintEconomicalBowlers(t *testing.T) {
	var buf bytes.Buffer
	PrintEconomicalBowlers(&buf, []model.EconomicalBowler{
		{Bowler: "Rashid Khan", EconomyRate: 6.62, OversBowled: 57, RunsConceded: 377, WicketsTaken: 17},
		{Bowler: "B Kumar", EconomyRate: 7.05, OversBowled: 52.3, RunsConceded: 369, WicketsTaken: 26},
	})

	out := buf.String()
	assert.Contains(t, out, "BOWLER")
	assert.Contains(t, out, "Rashid Khan")
	assert.Contains(t, out, "6.62")
	assert.Contains(t, out, "57.0")
	assert.Less(t, strings.Index(out, "Rashid Khan"), strings.Index(out, "B Kumar"))
}

func TestPrintMatchesPerYearFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintMatchesPerYear(&buf, []model.MatchesPerYear{{Year: "2008", MatchesCount: 58}, {Year: "2009", MatchesCount: 57}})
	assert.Contains(t, buf.String(), "115")
}

func TestMargin(t *testing.T) {
	cases := []struct {
		m    model.MatchSummary
		want string
	}{
		{model.MatchSummary{Winner: "A", WinByRuns: 35}, "35 runs"},
		{model.MatchSummary{Winner: "A", WinByRuns: 1}, "1 run"},
		{model.MatchSummary{Winner: "A", WinByWickets: 7}, "7 wickets"},
		{model.MatchSummary{Winner: "A", Result: "tie"}, "tie"},
		{model.MatchSummary{Result: "no result"}, "-"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Margin(c.m))
	}
}

func TestOvers(t *testing.T) {
	assert.Equal(t, "10.1", Overs(61))
	assert.Equal(t, "20.0", Overs(120))
	assert.Equal(t, "0.0", Overs(0))
}

func TestPrintMatchSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintMatchSummary(&buf, model.MatchSummary{
		MatchID: 1, Season: "2017", Date: "2017-04-05", City: "Hyderabad",
		Team1: "Sunrisers Hyderabad", Team2: "Royal Challengers Bangalore",
		TossWinner: "Royal Challengers Bangalore", TossDecision: "field",
		Winner: "Sunrisers Hyderabad", WinByRuns: 35, PlayerOfMatch: "Yuvraj Singh",
	})

	out := buf.String()
	assert.Contains(t, out, "Sunrisers Hyderabad won by 35 runs")
	assert.Contains(t, out, "Toss: Royal Challengers Bangalore, chose to field")
	assert.Contains(t, out, "Player of the match: Yuvraj Singh")
}
