package service_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/matchday-hq/matchday-service/internal/model"
	"github.com/matchday-hq/matchday-service/internal/repository"
)

// In-memory fakes implementing the repository interfaces, in the spirit of
// the gateway: GetByID hands out deep copies, Save replaces the stored row
// and echoes the stored copy back.

type fakeTeamRepo struct {
	nextID int64
	teams  map[int64]model.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{nextID: 1, teams: map[int64]model.Team{}}
}

func (f *fakeTeamRepo) Create(_ context.Context, t model.Team) (model.Team, error) {
	t.ID = f.nextID
	f.nextID++
	f.teams[t.ID] = t
	return t, nil
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id int64) (model.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return model.Team{}, repository.ErrNotFound
	}
	return t, nil
}

func (f *fakeTeamRepo) List(_ context.Context, _ repository.Page) (repository.PageResult[model.Team], error) {
	var res repository.PageResult[model.Team]
	for _, t := range f.teams {
		res.Items = append(res.Items, t)
	}
	res.Total = len(res.Items)
	return res, nil
}

func (f *fakeTeamRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.teams[id]
	return ok, nil
}

var _ repository.TeamRepository = (*fakeTeamRepo)(nil)

type fakePlayerRepo struct {
	nextID  int64
	players map[int64]model.Player
	listErr error
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{nextID: 1, players: map[int64]model.Player{}}
}

func (f *fakePlayerRepo) Create(_ context.Context, p model.Player) (model.Player, error) {
	p.ID = f.nextID
	f.nextID++
	f.players[p.ID] = p
	return p, nil
}

func (f *fakePlayerRepo) GetByID(_ context.Context, id int64) (model.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return model.Player{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakePlayerRepo) Update(_ context.Context, p model.Player) (model.Player, error) {
	cur, ok := f.players[p.ID]
	if !ok {
		return model.Player{}, repository.ErrNotFound
	}
	cur.FirstName, cur.LastName, cur.JerseyNumber = p.FirstName, p.LastName, p.JerseyNumber
	f.players[p.ID] = cur
	return cur, nil
}

func (f *fakePlayerRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.players[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.players, id)
	return nil
}

func (f *fakePlayerRepo) ListByTeam(_ context.Context, teamID int64, _ repository.Page) (repository.PageResult[model.Player], error) {
	var res repository.PageResult[model.Player]
	for _, p := range f.players {
		if p.TeamID == teamID {
			res.Items = append(res.Items, p)
		}
	}
	res.Total = len(res.Items)
	return res, nil
}

func (f *fakePlayerRepo) ListAllByTeam(_ context.Context, teamID int64) ([]model.Player, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var roster []model.Player
	// Deterministic order by id, like the SQL implementation's jersey order.
	for id := int64(1); id < f.nextID; id++ {
		if p, ok := f.players[id]; ok && p.TeamID == teamID {
			roster = append(roster, p)
		}
	}
	return roster, nil
}

var _ repository.PlayerRepository = (*fakePlayerRepo)(nil)

// errSaveFailed simulates a transient gateway failure on save.
var errSaveFailed = errors.New("gateway write failed")

type fakeGameRepo struct {
	nextID   int64
	games    map[int64]*model.Game
	failSave bool
	saves    int
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{nextID: 1, games: map[int64]*model.Game{}}
}

func (f *fakeGameRepo) Create(_ context.Context, g model.Game) (model.Game, error) {
	g.ID = f.nextID
	f.nextID++
	g.TimerStatus = model.TimerStopped
	f.games[g.ID] = g.Clone()
	return *f.games[g.ID].Clone(), nil
}

func (f *fakeGameRepo) GetByID(_ context.Context, id int64) (model.Game, error) {
	g, ok := f.games[id]
	if !ok {
		return model.Game{}, repository.ErrNotFound
	}
	return *g.Clone(), nil
}

func (f *fakeGameRepo) ListByTeam(_ context.Context, teamID int64, _ repository.Page) (repository.PageResult[model.Game], error) {
	var res repository.PageResult[model.Game]
	for _, g := range f.games {
		if g.TeamID == teamID {
			res.Items = append(res.Items, *g.Clone())
		}
	}
	res.Total = len(res.Items)
	return res, nil
}

func (f *fakeGameRepo) ListAllByTeam(_ context.Context, teamID int64) ([]model.Game, error) {
	var out []model.Game
	for id := int64(1); id < f.nextID; id++ {
		if g, ok := f.games[id]; ok && g.TeamID == teamID {
			out = append(out, *g.Clone())
		}
	}
	return out, nil
}

func (f *fakeGameRepo) UpdateSchedule(_ context.Context, g model.Game) (model.Game, error) {
	cur, ok := f.games[g.ID]
	if !ok {
		return model.Game{}, repository.ErrNotFound
	}
	cur.Opponent, cur.KickoffAt, cur.IsHome = g.Opponent, g.KickoffAt, g.IsHome
	cur.Season, cur.Competition = g.Season, g.Competition
	return *cur.Clone(), nil
}

func (f *fakeGameRepo) Save(_ context.Context, g model.Game) (model.Game, error) {
	if f.failSave {
		return model.Game{}, errSaveFailed
	}
	cur, ok := f.games[g.ID]
	if !ok {
		return model.Game{}, repository.ErrNotFound
	}
	stored := g.Clone()
	stored.Opponent, stored.KickoffAt = cur.Opponent, cur.KickoffAt
	f.games[g.ID] = stored
	f.saves++
	return *stored.Clone(), nil
}

func (f *fakeGameRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.games[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.games, id)
	return nil
}

var _ repository.GameRepository = (*fakeGameRepo)(nil)

type fakeTx struct{}

func (f *fakeTx) WithinTx(ctx context.Context, fn repository.TxFunc) error { return fn(ctx) }

var _ repository.TxManager = (*fakeTx)(nil)

// fakeClock hands out a controllable instant.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock { return &fakeClock{now: start} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// capturePublisher records every committed snapshot it sees.
type capturePublisher struct {
	snapshots []model.Game
}

func (p *capturePublisher) Publish(g model.Game) { p.snapshots = append(p.snapshots, g) }
