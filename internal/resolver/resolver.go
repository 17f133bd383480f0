// Package resolver maps team and player names to stored entities, creating
// them the first time a name is seen.
package resolver

import (
	"context"

	crerr "github.com/cockroachdb/errors"

	"github.com/pable/go-ipl-metrics/internal/model"
)

// Store persists teams and players. GetOrCreate returns the stored row for
// the entity's name and whether it was inserted by this call. An existing
// row is returned unchanged.
type Store interface {
	GetOrCreateTeam(ctx context.Context, team model.Team) (model.Team, bool, error)
	GetOrCreatePlayer(ctx context.Context, player model.Player) (model.Player, bool, error)
}

// Resolver caches resolved names in front of a Store. It is not safe for
// concurrent use and should live no longer than the transaction behind store.
type Resolver struct {
	store   Store
	teams   map[string]model.Team
	players map[string]model.Player

	teamsCreated   int
	playersCreated int
}

func New(store Store) *Resolver {
	return &Resolver{
		store:   store,
		teams:   make(map[string]model.Team),
		players: make(map[string]model.Player),
	}
}

// ResolveTeam returns the team called name. A new team gets shortName, or
// the first ShortNameLen characters of name when shortName is empty.
func (r *Resolver) ResolveTeam(ctx context.Context, name, shortName string) (model.Team, error) {
	if team, ok := r.teams[name]; ok {
		return team, nil
	}
	if shortName == "" {
		shortName = ShortName(name)
	}

	team, created, err := r.store.GetOrCreateTeam(ctx, model.Team{Name: name, ShortName: shortName})
	if err != nil {
		return model.Team{}, crerr.Wrapf(err, "resolve team %q", name)
	}
	if created {
		r.teamsCreated++
	}
	r.teams[name] = team
	return team, nil
}

// ResolvePlayer returns the player called name, created as a batsman if new.
func (r *Resolver) ResolvePlayer(ctx context.Context, name string) (model.Player, error) {
	if player, ok := r.players[name]; ok {
		return player, nil
	}

	player, created, err := r.store.GetOrCreatePlayer(ctx, model.Player{Name: name, Role: model.RoleBatsman})
	if err != nil {
		return model.Player{}, crerr.Wrapf(err, "resolve player %q", name)
	}
	if created {
		r.playersCreated++
	}
	r.players[name] = player
	return player, nil
}

// ResolveOptionalTeam resolves name when it is set and returns its id.
func (r *Resolver) ResolveOptionalTeam(ctx context.Context, name *string) (*int64, error) {
	if name == nil || *name == "" {
		return nil, nil
	}
	team, err := r.ResolveTeam(ctx, *name, "")
	if err != nil {
		return nil, err
	}
	return &team.ID, nil
}

// ResolveOptionalPlayer resolves name when it is set and returns its id.
func (r *Resolver) ResolveOptionalPlayer(ctx context.Context, name *string) (*int64, error) {
	if name == nil || *name == "" {
		return nil, nil
	}
	player, err := r.ResolvePlayer(ctx, *name)
	if err != nil {
		return nil, err
	}
	return &player.ID, nil
}

// TeamsCreated is the number of teams this resolver inserted.
func (r *Resolver) TeamsCreated() int { return r.teamsCreated }

// PlayersCreated is the number of players this resolver inserted.
func (r *Resolver) PlayersCreated() int { return r.playersCreated }

// ShortName is the first ShortNameLen characters of name.
func ShortName(name string) string {
	runes := []rune(name)
	if len(runes) <= model.ShortNameLen {
		return name
	}
	return string(runes[:model.ShortNameLen])
}
