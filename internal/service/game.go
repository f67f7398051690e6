package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/matchday-hq/matchday-service/internal/engine"
	"github.com/matchday-hq/matchday-service/internal/model"
	"github.com/matchday-hq/matchday-service/internal/repository"
)

type gameService struct {
	games   repository.GameRepository
	teams   repository.TeamRepository
	players repository.PlayerRepository
	tx      repository.TxManager
	log     zerolog.Logger
}

func NewGameService(games repository.GameRepository, teams repository.TeamRepository, players repository.PlayerRepository, tx repository.TxManager, logger zerolog.Logger) GameService {
	l := logger.With().Str("module", "service").Str("component", "game").Logger()
	return &gameService{games: games, teams: teams, players: players, tx: tx, log: l}
}

// CreateGame schedules a game and snapshots the current roster into a fresh
// bench-only lineup. Roster read and game insert share a transaction so the
// lineup can never reference a player deleted mid-create.
func (s *gameService) CreateGame(ctx context.Context, teamID int64, opponent string, kickoffAt time.Time, isHome bool, season, competition string) (model.Game, error) {
	trimAll(&opponent, &season, &competition)

	ferrs := validateGameFields(opponent, season, competition)
	if teamID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "team_id", Message: "must be > 0"})
	}
	if kickoffAt.IsZero() {
		ferrs = append(ferrs, FieldError{Field: "kickoff_at", Message: "must be set"})
	}

	// Early exit if basic structure is invalid – do not touch the database.
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("game validation failed (structure)")
		return model.Game{}, err
	}

	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Game{}, newInvalidInput([]FieldError{{Field: "team_id", Message: "team does not exist"}})
		}
		return model.Game{}, err
	}

	var out model.Game
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		roster, err := s.players.ListAllByTeam(ctx, teamID)
		if err != nil {
			return err
		}
		created, err := s.games.Create(ctx, model.Game{
			TeamID:      teamID,
			Opponent:    opponent,
			KickoffAt:   kickoffAt,
			IsHome:      isHome,
			Season:      season,
			Competition: competition,
			Lineup:      engine.NewLineup(roster),
			Events:      []model.GameEvent{},
		})
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Int64("team_id", teamID).Str("opponent", opponent).Msg("create game failed")
		return model.Game{}, err
	}
	s.log.Info().Int64("game_id", out.ID).Int("lineup", len(out.Lineup)).Msg("game created")
	return out, nil
}

func (s *gameService) GetGame(ctx context.Context, id int64) (model.Game, error) {
	if id <= 0 {
		return model.Game{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.games.GetByID(ctx, id)
}

func (s *gameService) ListGamesByTeam(ctx context.Context, teamID int64, page repository.Page) (repository.PageResult[model.Game], error) {
	if teamID <= 0 {
		return repository.PageResult[model.Game]{}, newInvalidInput([]FieldError{{Field: "team_id", Message: "must be > 0"}})
	}
	p := normalizePage(page)
	res, err := s.games.ListByTeam(ctx, teamID, p)
	if err != nil {
		s.log.Error().Err(err).Int64("team_id", teamID).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list games failed")
		return repository.PageResult[model.Game]{}, err
	}
	return res, nil
}

func (s *gameService) UpdateSchedule(ctx context.Context, id int64, opponent string, kickoffAt time.Time, isHome bool, season, competition string) (model.Game, error) {
	trimAll(&opponent, &season, &competition)

	ferrs := validateGameFields(opponent, season, competition)
	if id <= 0 {
		ferrs = append(ferrs, FieldError{Field: "id", Message: "must be > 0"})
	}
	if kickoffAt.IsZero() {
		ferrs = append(ferrs, FieldError{Field: "kickoff_at", Message: "must be set"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.Game{}, err
	}

	out, err := s.games.UpdateSchedule(ctx, model.Game{
		ID:          id,
		Opponent:    opponent,
		KickoffAt:   kickoffAt,
		IsHome:      isHome,
		Season:      season,
		Competition: competition,
	})
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Int64("game_id", id).Msg("update schedule failed")
		}
		return model.Game{}, err
	}
	return out, nil
}

// DeleteGame removes the game outright; lineup and events live on the same
// row, so the cascade is free.
func (s *gameService) DeleteGame(ctx context.Context, id int64) error {
	if id <= 0 {
		return newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	if err := s.games.Delete(ctx, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Int64("game_id", id).Msg("delete game failed")
		}
		return err
	}
	return nil
}
