package parser

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pable/go-ipl-metrics/internal/logging"
	"github.com/pable/go-ipl-metrics/internal/model"
)

// Defaults for columns missing from the matches header.
const (
	DefaultSeason = "2008"
	DefaultResult = "normal"
)

var dateLayouts = struct {
	slashed []string
	iso     string
}{
	slashed: []string{"1/2/2006", "2/1/2006"}, // MM/DD/YYYY, then DD/MM/YYYY
	iso:     "2006-1-2",
}

// ParseDate accepts MM/DD/YYYY, DD/MM/YYYY and YYYY-MM-DD, in that order.
// On failure it returns model.SentinelDate and false.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, "/") {
		for _, layout := range dateLayouts.slashed {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, true
			}
		}
	}
	if t, err := time.Parse(dateLayouts.iso, raw); err == nil {
		return t, true
	}
	return model.SentinelDate, false
}

// Required columns of each file. csv tags name the column in errors.
type matchKey struct {
	ID    string `csv:"id" validate:"required,numeric"`
	Team1 string `csv:"team1" validate:"required"`
	Team2 string `csv:"team2" validate:"required"`
}

type deliveryKey struct {
	MatchID     string `csv:"match_id" validate:"required,numeric"`
	Inning      string `csv:"inning" validate:"required,numeric"`
	Over        string `csv:"over" validate:"required,numeric"`
	Ball        string `csv:"ball" validate:"required,numeric"`
	BattingTeam string `csv:"batting_team" validate:"required"`
	BowlingTeam string `csv:"bowling_team" validate:"required"`
	Batsman     string `csv:"batsman" validate:"required"`
	NonStriker  string `csv:"non_striker" validate:"required"`
	Bowler      string `csv:"bowler" validate:"required"`
}

// Normalizer turns raw rows into typed records.
type Normalizer struct {
	logger   *logging.Logger
	validate *validator.Validate
}

func NewNormalizer(logger *logging.Logger) *Normalizer {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("csv"); name != "" {
			return name
		}
		return f.Name
	})
	return &Normalizer{logger: logger, validate: v}
}

// Match normalizes one row of the matches file. An unparseable date is not
// an error: the record carries model.SentinelDate and DateFallback is set.
func (n *Normalizer) Match(row Row) (model.MatchRecord, error) {
	key := matchKey{
		ID:    strings.TrimSpace(row.Get("id")),
		Team1: row.Get("team1"),
		Team2: row.Get("team2"),
	}
	if err := n.check(key); err != nil {
		return model.MatchRecord{}, err
	}

	ints, err := intColumns(row, "id", "win_by_runs", "win_by_wickets")
	if err != nil {
		return model.MatchRecord{}, err
	}

	rawDate := row.Get("date")
	date, ok := ParseDate(rawDate)
	if !ok {
		n.logger.Warn("could not parse date, using default",
			"match_id", ints[0], "raw_date", rawDate, "default", model.SentinelDate.Format(time.DateOnly))
	}

	return model.MatchRecord{
		MatchID:       ints[0],
		Season:        withDefault(row, "season", DefaultSeason),
		City:          row.Get("city"),
		Date:          date,
		DateFallback:  !ok,
		Team1:         key.Team1,
		Team2:         key.Team2,
		TossWinner:    optional(row, "toss_winner"),
		TossDecision:  strings.ToLower(row.Get("toss_decision")),
		Result:        withDefault(row, "result", DefaultResult),
		DLApplied:     flag(row, "dl_applied"),
		Winner:        optional(row, "winner"),
		WinByRuns:     ints[1],
		WinByWickets:  ints[2],
		PlayerOfMatch: optional(row, "player_of_match"),
		Venue:         row.Get("venue"),
		Umpire1:       row.Get("umpire1"),
		Umpire2:       row.Get("umpire2"),
		Umpire3:       row.Get("umpire3"),
	}, nil
}

// Delivery normalizes one row of the deliveries file.
func (n *Normalizer) Delivery(row Row) (model.DeliveryRecord, error) {
	key := deliveryKey{
		MatchID:     strings.TrimSpace(row.Get("match_id")),
		Inning:      strings.TrimSpace(row.Get("inning")),
		Over:        strings.TrimSpace(row.Get("over")),
		Ball:        strings.TrimSpace(row.Get("ball")),
		BattingTeam: row.Get("batting_team"),
		BowlingTeam: row.Get("bowling_team"),
		Batsman:     row.Get("batsman"),
		NonStriker:  row.Get("non_striker"),
		Bowler:      row.Get("bowler"),
	}
	if err := n.check(key); err != nil {
		return model.DeliveryRecord{}, err
	}

	ints, err := intColumns(row,
		"match_id", "inning", "over", "ball",
		"wide_runs", "bye_runs", "legbye_runs", "noball_runs", "penalty_runs",
		"batsman_runs", "extra_runs", "total_runs",
	)
	if err != nil {
		return model.DeliveryRecord{}, err
	}

	return model.DeliveryRecord{
		MatchID:         ints[0],
		Inning:          ints[1],
		Over:            ints[2],
		Ball:            ints[3],
		BattingTeam:     key.BattingTeam,
		BowlingTeam:     key.BowlingTeam,
		Batsman:         key.Batsman,
		NonStriker:      key.NonStriker,
		Bowler:          key.Bowler,
		IsSuperOver:     flag(row, "is_super_over"),
		WideRuns:        ints[4],
		ByeRuns:         ints[5],
		LegbyeRuns:      ints[6],
		NoballRuns:      ints[7],
		PenaltyRuns:     ints[8],
		BatsmanRuns:     ints[9],
		ExtraRuns:       ints[10],
		TotalRuns:       ints[11],
		PlayerDismissed: optional(row, "player_dismissed"),
		DismissalKind:   row.Get("dismissal_kind"),
		Fielder:         optional(row, "fielder"),
	}, nil
}

func (n *Normalizer) check(key any) error {
	err := n.validate.Struct(key)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: validation failed: %v", ErrMalformedRow, err)
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, fmt.Sprintf("%s %s", fe.Field(), describeTag(fe.Tag())))
	}
	return fmt.Errorf("%w: %s", ErrMalformedRow, strings.Join(problems, ", "))
}

func describeTag(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "numeric":
		return "must be numeric"
	default:
		return "failed " + tag
	}
}

// intColumns parses each column as an integer. Absent or blank values are 0.
func intColumns(row Row, cols ...string) ([]int, error) {
	out := make([]int, len(cols))
	for i, col := range cols {
		raw := strings.TrimSpace(row.Get(col))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %q is not an integer", ErrMalformedRow, col, raw)
		}
		out[i] = v
	}
	return out, nil
}

// flag is true only for the literal "1".
func flag(row Row, col string) bool {
	return row.Get(col) == "1"
}

// optional returns nil for an absent or empty column.
func optional(row Row, col string) *string {
	v := row.Get(col)
	if v == "" {
		return nil
	}
	return &v
}

func withDefault(row Row, col, def string) string {
	if v, ok := row.Lookup(col); ok {
		return v
	}
	return def
}
