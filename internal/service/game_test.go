package service_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/matchday-hq/matchday-service/internal/model"
	"github.com/matchday-hq/matchday-service/internal/repository"
	"github.com/matchday-hq/matchday-service/internal/service"
)

func newGameFixture(t *testing.T) (service.GameService, *fakePlayerRepo, *fakeGameRepo) {
	t.Helper()
	logger := zerolog.New(io.Discard)
	teams := newFakeTeamRepo()
	players := newFakePlayerRepo()
	games := newFakeGameRepo()
	ctx := context.Background()
	_, err := teams.Create(ctx, model.Team{Name: "Falcons U12"})
	require.NoError(t, err)
	for _, jersey := range []int{7, 9} {
		_, err := players.Create(ctx, model.Player{TeamID: 1, FirstName: "P", LastName: "L", JerseyNumber: jersey})
		require.NoError(t, err)
	}
	svc := service.NewGameService(games, teams, players, &fakeTx{}, logger)
	return svc, players, games
}

var gameKickoff = time.Date(2026, 4, 18, 9, 30, 0, 0, time.UTC)

func TestGameService_CreateGame_SnapshotsRoster(t *testing.T) {
	svc, _, _ := newGameFixture(t)
	ctx := context.Background()

	g, err := svc.CreateGame(ctx, 1, "Rovers U12", gameKickoff, true, "2026", "Spring League")
	require.NoError(t, err)
	require.Equal(t, "Rovers U12", g.Opponent)
	require.Equal(t, model.TimerStopped, g.TimerStatus)
	require.Empty(t, g.Events)
	require.Len(t, g.Lineup, 2, "lineup snapshots the current roster")
	for _, ls := range g.Lineup {
		require.Equal(t, model.LocationBench, ls.Location)
		require.Zero(t, ls.PlaytimeSeconds)
	}
}

func TestGameService_CreateGame_Validation(t *testing.T) {
	svc, _, _ := newGameFixture(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		teamID   int64
		opponent string
		kickoff  time.Time
		field    string
	}{
		{"empty opponent", 1, "   ", gameKickoff, "opponent"},
		{"zero kickoff", 1, "Rovers", time.Time{}, "kickoff_at"},
		{"bad team", 0, "Rovers", gameKickoff, "team_id"},
		{"unknown team", 9, "Rovers", gameKickoff, "team_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateGame(ctx, tc.teamID, tc.opponent, tc.kickoff, true, "", "")
			require.ErrorIs(t, err, service.ErrInvalidInput)
			found := false
			for _, fe := range service.FieldErrors(err) {
				if fe.Field == tc.field {
					found = true
				}
			}
			require.True(t, found, "expected field error for %s", tc.field)
		})
	}
}

func TestGameService_UpdateSchedule(t *testing.T) {
	svc, _, _ := newGameFixture(t)
	ctx := context.Background()

	g, err := svc.CreateGame(ctx, 1, "Rovers U12", gameKickoff, true, "2026", "")
	require.NoError(t, err)

	moved := gameKickoff.Add(24 * time.Hour)
	updated, err := svc.UpdateSchedule(ctx, g.ID, "United U12", moved, false, "2026", "Cup")
	require.NoError(t, err)
	require.Equal(t, "United U12", updated.Opponent)
	require.False(t, updated.IsHome)
	require.True(t, updated.KickoffAt.Equal(moved))

	_, err = svc.UpdateSchedule(ctx, 999, "United U12", moved, false, "", "")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGameService_DeleteGame(t *testing.T) {
	svc, _, games := newGameFixture(t)
	ctx := context.Background()

	g, err := svc.CreateGame(ctx, 1, "Rovers U12", gameKickoff, true, "", "")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteGame(ctx, g.ID))

	_, err = games.GetByID(ctx, g.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, svc.DeleteGame(ctx, g.ID), repository.ErrNotFound)
}

func TestGameService_GetGame_Validation(t *testing.T) {
	svc, _, _ := newGameFixture(t)
	_, err := svc.GetGame(context.Background(), 0)
	require.ErrorIs(t, err, service.ErrInvalidInput)
}
