// Package contract defines storage-agnostic test suites for the repository
// interfaces. Implementations wire their own factories and run the same
// behavior checks, so Postgres and any future gateway stay interchangeable.
package contract

import (
	"context"
	"testing"
	"time"

	"github.com/matchday-hq/matchday-service/internal/model"
	"github.com/matchday-hq/matchday-service/internal/repository"
)

type TeamFactory func(t *testing.T) (repository.TeamRepository, func())

type PlayerFactory func(t *testing.T) (repo repository.PlayerRepository, createTeam func(ctx context.Context, name string) (int64, error), cleanup func())

type GameFactory func(t *testing.T) (repo repository.GameRepository, createTeam func(ctx context.Context, name string) (int64, error), cleanup func())

type TxFactory func(t *testing.T) (tx repository.TxManager, teams repository.TeamRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func RunTeamRepositoryContract(t *testing.T, makeRepo TeamFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.Team{Name: "Falcons U12"})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != created.ID || got.Name != created.Name {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 999999)
		if err == nil || err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_pagination_total", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i := 0; i < 7; i++ {
			name := "T-" + string(rune('A'+i))
			if _, err := repo.Create(ctx, model.Team{Name: name}); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		res, err := repo.List(ctx, repository.Page{Limit: 3, Offset: 0})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 3 || res.Total != 7 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
	})

	t.Run("exists", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.Team{Name: "Exists FC"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ok, err := repo.Exists(ctx, created.ID)
		if err != nil || !ok {
			t.Fatalf("expected team to exist: ok=%v err=%v", ok, err)
		}
		ok, err = repo.Exists(ctx, 999999)
		if err != nil || ok {
			t.Fatalf("expected team to not exist: ok=%v err=%v", ok, err)
		}
	})
}

func RunPlayerRepositoryContract(t *testing.T, makeRepo PlayerFactory) {
	t.Helper()

	t.Run("create_update_delete", func(t *testing.T) {
		repo, mkTeam, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		teamID, err := mkTeam(ctx, "Roster FC")
		if err != nil {
			t.Fatalf("seed team: %v", err)
		}
		created, err := repo.Create(ctx, model.Player{TeamID: teamID, FirstName: "Mia", LastName: "Novak", JerseyNumber: 7})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		created.JerseyNumber = 10
		updated, err := repo.Update(ctx, created)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.JerseyNumber != 10 {
			t.Fatalf("update not applied: %+v", updated)
		}
		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := repo.GetByID(ctx, created.ID); err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
		if err := repo.Delete(ctx, created.ID); err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound on double delete, got %v", err)
		}
	})

	t.Run("list_by_team_jersey_order", func(t *testing.T) {
		repo, mkTeam, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		teamID, err := mkTeam(ctx, "Order FC")
		if err != nil {
			t.Fatalf("seed team: %v", err)
		}
		for _, n := range []int{9, 1, 4} {
			if _, err := repo.Create(ctx, model.Player{TeamID: teamID, FirstName: "P", LastName: "L", JerseyNumber: n}); err != nil {
				t.Fatalf("seed player: %v", err)
			}
		}
		roster, err := repo.ListAllByTeam(ctx, teamID)
		if err != nil {
			t.Fatalf("list all: %v", err)
		}
		if len(roster) != 3 || roster[0].JerseyNumber != 1 || roster[2].JerseyNumber != 9 {
			t.Fatalf("unexpected roster order: %+v", roster)
		}
		page, err := repo.ListByTeam(ctx, teamID, repository.Page{Limit: 2, Offset: 0})
		if err != nil {
			t.Fatalf("list page: %v", err)
		}
		if len(page.Items) != 2 || page.Total != 3 {
			t.Fatalf("unexpected page: len=%d total=%d", len(page.Items), page.Total)
		}
	})
}

func RunGameRepositoryContract(t *testing.T, makeRepo GameFactory) {
	t.Helper()

	seedGame := func(ctx context.Context, repo repository.GameRepository, teamID int64) (model.Game, error) {
		return repo.Create(ctx, model.Game{
			TeamID:      teamID,
			Opponent:    "Rovers U12",
			KickoffAt:   time.Date(2026, 4, 18, 9, 30, 0, 0, time.UTC),
			IsHome:      true,
			Season:      "2026",
			Competition: "Spring League",
			Lineup: []model.PlayerLineupState{
				{PlayerID: 1, Location: model.LocationBench},
				{PlayerID: 2, Location: model.LocationBench},
			},
			Events: []model.GameEvent{},
		})
	}

	t.Run("create_and_get_roundtrip", func(t *testing.T) {
		repo, mkTeam, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		teamID, err := mkTeam(ctx, "Falcons U12")
		if err != nil {
			t.Fatalf("seed team: %v", err)
		}
		created, err := seedGame(ctx, repo, teamID)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.TimerStatus != model.TimerStopped || created.TimerElapsedSeconds != 0 || created.IsFinished {
			t.Fatalf("fresh game must have a pristine clock: %+v", created)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if len(got.Lineup) != 2 || got.Lineup[0].PlayerID != 1 || got.Lineup[0].Location != model.LocationBench {
			t.Fatalf("lineup lost in roundtrip: %+v", got.Lineup)
		}
	})

	t.Run("save_live_state_roundtrip", func(t *testing.T) {
		repo, mkTeam, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		teamID, err := mkTeam(ctx, "Falcons U12")
		if err != nil {
			t.Fatalf("seed team: %v", err)
		}
		g, err := seedGame(ctx, repo, teamID)
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		// Mutate into a mid-game snapshot: running clock, one field player
		// accruing time, a goal and a substitution in the log.
		startMillis := time.Date(2026, 4, 18, 9, 35, 0, 123000000, time.UTC).UnixMilli()
		scorer := int64(1)
		g.TimerStatus = model.TimerRunning
		g.TimerStartMillis = &startMillis
		g.TimerElapsedSeconds = 600
		g.HomeScore = 1
		g.Lineup[0].Location = model.LocationField
		g.Lineup[0].Position = &model.FieldPosition{X: 42.5, Y: 61.2}
		g.Lineup[0].PlaytimerStartMillis = &startMillis
		g.Lineup[0].PlaytimeSeconds = 600
		g.Lineup[0].IsStarter = true
		g.Events = []model.GameEvent{
			{ID: "ev-goal", Type: model.EventGoal, Team: model.SideHome, WallClockMillis: startMillis, GameSeconds: 612, ScorerID: &scorer},
			{ID: "ev-sub", Type: model.EventSubstitution, Team: model.SideHome, WallClockMillis: startMillis, GameSeconds: 640, PlayerInID: &scorer},
		}

		saved, err := repo.Save(ctx, g)
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		// Epoch-ms instants must survive the ISO-8601 boundary exactly.
		if saved.TimerStartMillis == nil || *saved.TimerStartMillis != startMillis {
			t.Fatalf("timer start lost precision: %v", saved.TimerStartMillis)
		}
		if saved.Lineup[0].PlaytimerStartMillis == nil || *saved.Lineup[0].PlaytimerStartMillis != startMillis {
			t.Fatalf("playtimer start lost precision: %v", saved.Lineup[0].PlaytimerStartMillis)
		}
		if saved.HomeScore != 1 || saved.TimerElapsedSeconds != 600 {
			t.Fatalf("scalar state lost: %+v", saved)
		}
		if len(saved.Events) != 2 || saved.Events[0].ID != "ev-goal" || *saved.Events[0].ScorerID != 1 {
			t.Fatalf("events lost in roundtrip: %+v", saved.Events)
		}
		if saved.Lineup[0].Position == nil || saved.Lineup[0].Position.X != 42.5 {
			t.Fatalf("position lost: %+v", saved.Lineup[0].Position)
		}
	})

	t.Run("save_missing_game_not_found", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.Save(context.Background(), model.Game{ID: 999999})
		if err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("update_schedule_leaves_live_state", func(t *testing.T) {
		repo, mkTeam, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		teamID, err := mkTeam(ctx, "Falcons U12")
		if err != nil {
			t.Fatalf("seed team: %v", err)
		}
		g, err := seedGame(ctx, repo, teamID)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		g.HomeScore = 3
		if _, err := repo.Save(ctx, g); err != nil {
			t.Fatalf("save: %v", err)
		}
		g.Opponent = "United U12"
		updated, err := repo.UpdateSchedule(ctx, g)
		if err != nil {
			t.Fatalf("update schedule: %v", err)
		}
		if updated.Opponent != "United U12" || updated.HomeScore != 3 {
			t.Fatalf("schedule update must not touch live state: %+v", updated)
		}
	})

	t.Run("delete_cascades", func(t *testing.T) {
		repo, mkTeam, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		teamID, err := mkTeam(ctx, "Falcons U12")
		if err != nil {
			t.Fatalf("seed team: %v", err)
		}
		g, err := seedGame(ctx, repo, teamID)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := repo.Delete(ctx, g.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := repo.GetByID(ctx, g.ID); err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, teams, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		sentinel := context.Canceled
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := teams.Create(ctx, model.Team{Name: "Ghost FC"}); err != nil {
				return err
			}
			return sentinel
		})
		if err == nil {
			t.Fatalf("expected error to propagate")
		}
		res, err := teams.List(ctx, repository.Page{Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 0 {
			t.Fatalf("rollback leaked rows: %d", res.Total)
		}
	})

	t.Run("commit_on_success", func(t *testing.T) {
		tx, teams, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			_, err := teams.Create(ctx, model.Team{Name: "Kept FC"})
			return err
		})
		if err != nil {
			t.Fatalf("tx: %v", err)
		}
		res, err := teams.List(ctx, repository.Page{Limit: 10})
		if err != nil || res.Total != 1 {
			t.Fatalf("commit lost rows: total=%d err=%v", res.Total, err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("ping: %v", err)
		}
	})
}
