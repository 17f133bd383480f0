package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-ipl-metrics/internal/model"
)

type mockStore struct {
	mock.Mock
}

func newMockStore(t *testing.T) *mockStore {
	m := &mockStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockStore) GetOrCreateTeam(ctx context.Context, team model.Team) (model.Team, bool, error) {
	args := m.Called(ctx, team)
	return args.Get(0).(model.Team), args.Bool(1), args.Error(2)
}

func (m *mockStore) GetOrCreatePlayer(ctx context.Context, player model.Player) (model.Player, bool, error) {
	args := m.Called(ctx, player)
	return args.Get(0).(model.Player), args.Bool(1), args.Error(2)
}

func TestResolveTeamHitsStoreOncePerName(t *testing.T) {
	ctx := context.Background()
	store := newMockStore(t)
	name := "Royal Challengers Bangalore"

	store.
		On("GetOrCreateTeam", ctx, model.Team{Name: name, ShortName: "Royal Chal"}).
		Return(model.Team{ID: 7, Name: name, ShortName: "Royal Chal"}, true, nil).
		Once()

	r := New(store)
	for i := 0; i < 3; i++ {
		team, err := r.ResolveTeam(ctx, name, "")
		require.NoError(t, err)
		assert.Equal(t, int64(7), team.ID)
	}
	assert.Equal(t, 1, r.TeamsCreated())
}

func TestResolveTeamKeepsExistingRow(t *testing.T) {
	ctx := context.Background()
	store := newMockStore(t)

	// The store already holds the team with its own short name.
	existing := model.Team{ID: 3, Name: "Mumbai Indians", ShortName: "MI", City: "Mumbai"}
	store.
		On("GetOrCreateTeam", ctx, model.Team{Name: "Mumbai Indians", ShortName: "Mumbai Ind"}).
		Return(existing, false, nil).
		Once()

	r := New(store)
	team, err := r.ResolveTeam(ctx, "Mumbai Indians", "")
	require.NoError(t, err)
	assert.Equal(t, existing, team)
	assert.Zero(t, r.TeamsCreated())
}

func TestResolveTeamExplicitShortName(t *testing.T) {
	ctx := context.Background()
	store := newMockStore(t)
	store.
		On("GetOrCreateTeam", ctx, model.Team{Name: "Chennai Super Kings", ShortName: "CSK"}).
		Return(model.Team{ID: 1, Name: "Chennai Super Kings", ShortName: "CSK"}, true, nil).
		Once()

	team, err := New(store).ResolveTeam(ctx, "Chennai Super Kings", "CSK")
	require.NoError(t, err)
	assert.Equal(t, "CSK", team.ShortName)
}

func TestResolvePlayerDefaultsToBatsman(t *testing.T) {
	ctx := context.Background()
	store := newMockStore(t)
	store.
		On("GetOrCreatePlayer", ctx, model.Player{Name: "MS Dhoni", Role: model.RoleBatsman}).
		Return(model.Player{ID: 11, Name: "MS Dhoni", Role: model.RoleBatsman}, true, nil).
		Once()

	r := New(store)
	for i := 0; i < 2; i++ {
		p, err := r.ResolvePlayer(ctx, "MS Dhoni")
		require.NoError(t, err)
		assert.Equal(t, int64(11), p.ID)
	}
	assert.Equal(t, 1, r.PlayersCreated())
}

func TestResolveOptional(t *testing.T) {
	ctx := context.Background()
	store := newMockStore(t)
	r := New(store)

	id, err := r.ResolveOptionalTeam(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, id)

	empty := ""
	id, err = r.ResolveOptionalPlayer(ctx, &empty)
	require.NoError(t, err)
	assert.Nil(t, id)

	name := "AB de Villiers"
	store.
		On("GetOrCreatePlayer", ctx, model.Player{Name: name, Role: model.RoleBatsman}).
		Return(model.Player{ID: 5, Name: name}, false, nil).
		Once()
	id, err = r.ResolveOptionalPlayer(ctx, &name)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(5), *id)
}

func TestResolveWrapsStoreFault(t *testing.T) {
	ctx := context.Background()
	store := newMockStore(t)
	boom := errors.New("disk full")
	store.
		On("GetOrCreateTeam", ctx, mock.AnythingOfType("model.Team")).
		Return(model.Team{}, false, boom).
		Once()

	r := New(store)
	_, err := r.ResolveTeam(ctx, "Deccan Chargers", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Deccan Chargers")

	// A failed lookup is not cached.
	store.
		On("GetOrCreateTeam", ctx, mock.AnythingOfType("model.Team")).
		Return(model.Team{ID: 2, Name: "Deccan Chargers"}, true, nil).
		Once()
	team, err := r.ResolveTeam(ctx, "Deccan Chargers", "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), team.ID)
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "KKR", ShortName("KKR"))
	assert.Equal(t, "Kolkata Kn", ShortName("Kolkata Knight Riders"))
	assert.Equal(t, "Pune Warri", ShortName("Pune Warriors"))
	assert.Equal(t, "ÄÖÜäöüßéèê", ShortName("ÄÖÜäöüßéèêç"))
}
