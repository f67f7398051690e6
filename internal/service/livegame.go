package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/matchday-hq/matchday-service/internal/engine"
	"github.com/matchday-hq/matchday-service/internal/model"
	"github.com/matchday-hq/matchday-service/internal/repository"
)

// liveGameService drives the in-game engine. Every operation follows the same
// two-phase shape: fetch the current snapshot from the gateway, run exactly
// one engine transition on the local copy, then persist the whole snapshot
// atomically. If the save fails, the local copy is discarded and the last
// committed state stands untouched; the caller retries from there.
//
// No locking here: the application serializes user actions per game, and a
// second operation racing the first's save is out of contract (last write
// wins at the gateway).
type liveGameService struct {
	games   repository.GameRepository
	players repository.PlayerRepository
	clock   Clock
	pub     SnapshotPublisher
	log     zerolog.Logger
}

func NewLiveGameService(games repository.GameRepository, players repository.PlayerRepository, clock Clock, pub SnapshotPublisher, logger zerolog.Logger) LiveGameService {
	l := logger.With().Str("module", "service").Str("component", "livegame").Logger()
	if pub == nil {
		pub = NopPublisher{}
	}
	return &liveGameService{games: games, players: players, clock: clock, pub: pub, log: l}
}

// commit runs one engine transition against a fresh snapshot and persists the
// result. The transform mutates the local copy only; nothing is retained
// unless the gateway write succeeds.
func (s *liveGameService) commit(ctx context.Context, gameID int64, op string, transform func(g *model.Game) error) (model.Game, error) {
	if gameID <= 0 {
		return model.Game{}, newInvalidInput([]FieldError{{Field: "game_id", Message: "must be > 0"}})
	}
	g, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Int64("game_id", gameID).Str("op", op).Msg("fetch game failed")
		}
		return model.Game{}, err
	}
	if err := transform(&g); err != nil {
		return model.Game{}, err
	}
	saved, err := s.games.Save(ctx, g)
	if err != nil {
		s.log.Error().Err(err).Int64("game_id", gameID).Str("op", op).Msg("save game failed, operation rolled back")
		return model.Game{}, err
	}
	s.log.Debug().Int64("game_id", gameID).Str("op", op).Int64("elapsed", saved.TimerElapsedSeconds).Msg("live op committed")
	s.pub.Publish(saved)
	return saved, nil
}

func (s *liveGameService) StartTimer(ctx context.Context, gameID int64) (model.Game, error) {
	return s.commit(ctx, gameID, "start_timer", func(g *model.Game) error {
		engine.StartTimer(g, s.clock.Now())
		return nil
	})
}

func (s *liveGameService) StopTimer(ctx context.Context, gameID int64) (model.Game, error) {
	return s.commit(ctx, gameID, "stop_timer", func(g *model.Game) error {
		engine.StopTimer(g, s.clock.Now())
		return nil
	})
}

func (s *liveGameService) FinishGame(ctx context.Context, gameID int64) (model.Game, error) {
	return s.commit(ctx, gameID, "finish_game", func(g *model.Game) error {
		engine.FinishGame(g, s.clock.Now())
		return nil
	})
}

func (s *liveGameService) MovePlayer(ctx context.Context, gameID, playerID int64, from, to model.Location, pos *model.FieldPosition) (model.Game, error) {
	var ferrs []FieldError
	if playerID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "player_id", Message: "must be > 0"})
	}
	if !isValidLocation(from) {
		ferrs = append(ferrs, FieldError{Field: "from", Message: "must be one of bench|field|inactive"})
	}
	if !isValidLocation(to) {
		ferrs = append(ferrs, FieldError{Field: "to", Message: "must be one of bench|field|inactive"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.Game{}, err
	}
	return s.commit(ctx, gameID, "move_player", func(g *model.Game) error {
		engine.MovePlayer(g, playerID, from, to, pos, s.clock.Now())
		return nil
	})
}

func (s *liveGameService) SwapPlayers(ctx context.Context, gameID, playerA, playerB int64) (model.Game, error) {
	var ferrs []FieldError
	if playerA <= 0 {
		ferrs = append(ferrs, FieldError{Field: "player_a", Message: "must be > 0"})
	}
	if playerB <= 0 {
		ferrs = append(ferrs, FieldError{Field: "player_b", Message: "must be > 0"})
	}
	if playerA > 0 && playerA == playerB {
		ferrs = append(ferrs, FieldError{Field: "player_b", Message: "must differ from player_a"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.Game{}, err
	}
	return s.commit(ctx, gameID, "swap_players", func(g *model.Game) error {
		engine.SwapPlayers(g, playerA, playerB)
		return nil
	})
}

func (s *liveGameService) AddGoal(ctx context.Context, gameID int64, team model.TeamSide, scorerID, assistID *int64) (model.Game, error) {
	var ferrs []FieldError
	if !isValidTeamSide(team) {
		ferrs = append(ferrs, FieldError{Field: "team", Message: "must be one of home|away"})
	}
	if scorerID != nil && *scorerID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "scorer_id", Message: "must be > 0"})
	}
	if assistID != nil && *assistID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "assist_id", Message: "must be > 0"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.Game{}, err
	}
	return s.commit(ctx, gameID, "add_goal", func(g *model.Game) error {
		engine.AddGoal(g, team, scorerID, assistID, s.clock.Now())
		return nil
	})
}

func (s *liveGameService) RemoveLastGoal(ctx context.Context, gameID int64, team model.TeamSide) (model.Game, error) {
	if !isValidTeamSide(team) {
		return model.Game{}, newInvalidInput([]FieldError{{Field: "team", Message: "must be one of home|away"}})
	}
	return s.commit(ctx, gameID, "remove_last_goal", func(g *model.Game) error {
		engine.RemoveLastGoal(g, team)
		return nil
	})
}

// ResetLineup rebuilds the lineup from the team's current roster and wipes
// all live state. Destructive and irreversible; the handler confirms intent.
func (s *liveGameService) ResetLineup(ctx context.Context, gameID int64) (model.Game, error) {
	return s.commit(ctx, gameID, "reset_lineup", func(g *model.Game) error {
		roster, err := s.players.ListAllByTeam(ctx, g.TeamID)
		if err != nil {
			return err
		}
		engine.ResetLineup(g, roster)
		return nil
	})
}
