// Package loader ingests the matches and deliveries files into the store in
// a single transaction.
//
// Row faults and store faults are handled differently. A delivery row that
// cannot be normalized, or that references an unknown match, is logged and
// skipped. Any store error aborts the load and rolls back both phases.
package loader

import (
	"context"
	"io"
	"os"

	crerr "github.com/cockroachdb/errors"

	"github.com/pable/go-ipl-metrics/internal/logging"
	"github.com/pable/go-ipl-metrics/internal/model"
	"github.com/pable/go-ipl-metrics/internal/parser"
	"github.com/pable/go-ipl-metrics/internal/resolver"
)

// DefaultBatchSize is how many deliveries are buffered per bulk insert.
const DefaultBatchSize = 1000

// Store is the transactional view of the store a load writes through.
type Store interface {
	resolver.Store
	GetOrCreateMatch(ctx context.Context, m model.Match) (int64, bool, error)
	MatchByExternalID(ctx context.Context, matchID int) (int64, bool, error)
	InsertDeliveries(ctx context.Context, deliveries []model.Delivery) (int64, error)
	CountMatches(ctx context.Context) (int, error)
	CountDeliveries(ctx context.Context) (int, error)
	Commit() error
	Rollback() error
}

// BeginFunc starts the transaction a load runs in.
type BeginFunc func(ctx context.Context) (Store, error)

type Loader struct {
	begin      BeginFunc
	normalizer *parser.Normalizer
	logger     *logging.Logger
	batchSize  int
}

// New returns a Loader. A batchSize of zero or less uses DefaultBatchSize.
func New(begin BeginFunc, logger *logging.Logger, batchSize int) *Loader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Loader{
		begin:      begin,
		normalizer: parser.NewNormalizer(logger),
		logger:     logger,
		batchSize:  batchSize,
	}
}

// Load opens both files and loads them.
func (l *Loader) Load(ctx context.Context, matchesPath, deliveriesPath string) (Result, error) {
	mf, err := os.Open(matchesPath)
	if err != nil {
		return Result{}, crerr.Wrap(err, "open matches file")
	}
	defer mf.Close()

	df, err := os.Open(deliveriesPath)
	if err != nil {
		return Result{}, crerr.Wrap(err, "open deliveries file")
	}
	defer df.Close()

	return l.LoadFrom(ctx, mf, df)
}

// LoadFrom loads matches, then deliveries, and commits only if both phases
// finish. On error nothing is persisted.
func (l *Loader) LoadFrom(ctx context.Context, matches, deliveries io.Reader) (Result, error) {
	store, err := l.begin(ctx)
	if err != nil {
		return Result{}, crerr.Wrap(err, "begin load")
	}

	var res Result
	if err := l.run(ctx, store, matches, deliveries, &res); err != nil {
		l.rollback(store)
		return Result{}, err
	}
	if err := store.Commit(); err != nil {
		l.rollback(store)
		return Result{}, crerr.Wrap(err, "commit load")
	}

	l.logger.Info("load committed",
		"matches", res.TotalMatches, "deliveries", res.TotalDeliveries,
		"skipped", res.DeliveriesSkipped())
	return res, nil
}

func (l *Loader) run(ctx context.Context, store Store, matches, deliveries io.Reader, res *Result) error {
	r := resolver.New(store)

	if err := l.loadMatches(ctx, store, r, matches, res); err != nil {
		return crerr.Wrap(err, "load matches")
	}
	if err := l.loadDeliveries(ctx, store, r, deliveries, res); err != nil {
		return crerr.Wrap(err, "load deliveries")
	}

	res.TeamsCreated = r.TeamsCreated()
	res.PlayersCreated = r.PlayersCreated()

	var err error
	if res.TotalMatches, err = store.CountMatches(ctx); err != nil {
		return crerr.Wrap(err, "count matches")
	}
	if res.TotalDeliveries, err = store.CountDeliveries(ctx); err != nil {
		return crerr.Wrap(err, "count deliveries")
	}
	return nil
}

func (l *Loader) rollback(store Store) {
	if err := store.Rollback(); err != nil {
		l.logger.Error("rollback failed", "error", err)
	}
}

// loadMatches stores every match row. The matches file is the referential
// base of the load, so any row fault here is fatal.
func (l *Loader) loadMatches(ctx context.Context, store Store, r *resolver.Resolver, in io.Reader, res *Result) error {
	log := l.logger.With("phase", "matches")
	log.Info("loading matches")

	err := parser.Each(in, func(line int, row parser.Row) error {
		res.MatchesRead++

		rec, err := l.normalizer.Match(row)
		if err != nil {
			return crerr.Wrapf(err, "line %d", line)
		}
		if rec.DateFallback {
			res.DateFallbacks++
		}

		m, err := buildMatch(ctx, r, rec)
		if err != nil {
			return err
		}
		_, created, err := store.GetOrCreateMatch(ctx, m)
		if err != nil {
			return err
		}
		if created {
			res.MatchesCreated++
		} else {
			res.MatchesExisting++
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("matches loaded",
		"read", res.MatchesRead, "created", res.MatchesCreated, "existing", res.MatchesExisting)
	return nil
}

func buildMatch(ctx context.Context, r *resolver.Resolver, rec model.MatchRecord) (model.Match, error) {
	team1, err := r.ResolveTeam(ctx, rec.Team1, "")
	if err != nil {
		return model.Match{}, err
	}
	team2, err := r.ResolveTeam(ctx, rec.Team2, "")
	if err != nil {
		return model.Match{}, err
	}
	tossWinner, err := r.ResolveOptionalTeam(ctx, rec.TossWinner)
	if err != nil {
		return model.Match{}, err
	}
	winner, err := r.ResolveOptionalTeam(ctx, rec.Winner)
	if err != nil {
		return model.Match{}, err
	}
	pom, err := r.ResolveOptionalPlayer(ctx, rec.PlayerOfMatch)
	if err != nil {
		return model.Match{}, err
	}

	return model.Match{
		MatchID:         rec.MatchID,
		Season:          rec.Season,
		City:            rec.City,
		Date:            rec.Date,
		Team1ID:         team1.ID,
		Team2ID:         team2.ID,
		TossWinnerID:    tossWinner,
		TossDecision:    rec.TossDecision,
		Result:          rec.Result,
		DLApplied:       rec.DLApplied,
		WinnerID:        winner,
		WinByRuns:       rec.WinByRuns,
		WinByWickets:    rec.WinByWickets,
		PlayerOfMatchID: pom,
		Venue:           rec.Venue,
		Umpire1:         rec.Umpire1,
		Umpire2:         rec.Umpire2,
		Umpire3:         rec.Umpire3,
	}, nil
}

// loadDeliveries stores delivery rows in batches of l.batchSize.
func (l *Loader) loadDeliveries(ctx context.Context, store Store, r *resolver.Resolver, in io.Reader, res *Result) error {
	log := l.logger.With("phase", "deliveries")
	log.Info("loading deliveries", "batch_size", l.batchSize)

	rd, err := parser.NewReader(in)
	if err != nil {
		return err
	}
	log.Debug("header read", "columns", rd.Header())

	matches := newMatchIndex(store)
	batch := make([]model.Delivery, 0, l.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := store.InsertDeliveries(ctx, batch)
		if err != nil {
			return err
		}
		res.DeliveriesInserted += int(n)
		batch = batch[:0]
		log.Info("deliveries loaded", "total", res.DeliveriesInserted, "line", rd.Line())
		return nil
	}

	for {
		row, err := rd.Next()
		if err == io.EOF {
			break
		}
		line := rd.Line()
		if err != nil && !crerr.Is(err, parser.ErrMalformedRow) {
			return err
		}
		res.DeliveriesRead++
		if err != nil {
			l.skipMalformed(res, line, err)
			continue
		}

		rec, err := l.normalizer.Delivery(row)
		if err != nil {
			l.skipMalformed(res, line, err)
			continue
		}

		matchPK, ok, err := matches.lookup(ctx, rec.MatchID)
		if err != nil {
			return err
		}
		if !ok {
			res.DeliveriesMissingMatch++
			res.AddErrorf("line %d: match %d not found", line, rec.MatchID)
			log.Warn("match not found, skipping delivery", "match_id", rec.MatchID, "line", line)
			continue
		}

		d, err := buildDelivery(ctx, r, matchPK, rec)
		if err != nil {
			return err
		}
		batch = append(batch, d)
		if len(batch) >= l.batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}

	log.Info("deliveries done",
		"read", res.DeliveriesRead, "inserted", res.DeliveriesInserted,
		"missing_match", res.DeliveriesMissingMatch, "malformed", res.DeliveriesMalformed)
	return nil
}

func (l *Loader) skipMalformed(res *Result, line int, err error) {
	res.DeliveriesMalformed++
	res.AddErrorf("line %d: %v", line, err)
	l.logger.Error("error processing delivery, skipping", "line", line, "error", err)
}

func buildDelivery(ctx context.Context, r *resolver.Resolver, matchPK int64, rec model.DeliveryRecord) (model.Delivery, error) {
	batting, err := r.ResolveTeam(ctx, rec.BattingTeam, "")
	if err != nil {
		return model.Delivery{}, err
	}
	bowling, err := r.ResolveTeam(ctx, rec.BowlingTeam, "")
	if err != nil {
		return model.Delivery{}, err
	}

	players := make([]int64, 3)
	for i, name := range []string{rec.Batsman, rec.NonStriker, rec.Bowler} {
		p, err := r.ResolvePlayer(ctx, name)
		if err != nil {
			return model.Delivery{}, err
		}
		players[i] = p.ID
	}
	dismissed, err := r.ResolveOptionalPlayer(ctx, rec.PlayerDismissed)
	if err != nil {
		return model.Delivery{}, err
	}
	fielder, err := r.ResolveOptionalPlayer(ctx, rec.Fielder)
	if err != nil {
		return model.Delivery{}, err
	}

	return model.Delivery{
		MatchID:           matchPK,
		Inning:            rec.Inning,
		BattingTeamID:     batting.ID,
		BowlingTeamID:     bowling.ID,
		Over:              rec.Over,
		Ball:              rec.Ball,
		BatsmanID:         players[0],
		NonStrikerID:      players[1],
		BowlerID:          players[2],
		IsSuperOver:       rec.IsSuperOver,
		WideRuns:          rec.WideRuns,
		ByeRuns:           rec.ByeRuns,
		LegbyeRuns:        rec.LegbyeRuns,
		NoballRuns:        rec.NoballRuns,
		PenaltyRuns:       rec.PenaltyRuns,
		BatsmanRuns:       rec.BatsmanRuns,
		ExtraRuns:         rec.ExtraRuns,
		TotalRuns:         rec.TotalRuns,
		PlayerDismissedID: dismissed,
		DismissalKind:     rec.DismissalKind,
		FielderID:         fielder,
	}, nil
}

// matchIndex caches external match id lookups, including misses, for the
// lifetime of one load.
type matchIndex struct {
	store Store
	ids   map[int]int64
	miss  map[int]struct{}
}

func newMatchIndex(store Store) *matchIndex {
	return &matchIndex{store: store, ids: map[int]int64{}, miss: map[int]struct{}{}}
}

func (m *matchIndex) lookup(ctx context.Context, matchID int) (int64, bool, error) {
	if id, ok := m.ids[matchID]; ok {
		return id, true, nil
	}
	if _, ok := m.miss[matchID]; ok {
		return 0, false, nil
	}
	id, ok, err := m.store.MatchByExternalID(ctx, matchID)
	if err != nil {
		return 0, false, crerr.Wrapf(err, "lookup match %d", matchID)
	}
	if !ok {
		m.miss[matchID] = struct{}{}
		return 0, false, nil
	}
	m.ids[matchID] = id
	return id, true, nil
}
