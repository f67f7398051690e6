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

type playerService struct {
	players repository.PlayerRepository
	teams   repository.TeamRepository
	games   repository.GameRepository
	tx      repository.TxManager
	log     zerolog.Logger
}

func NewPlayerService(players repository.PlayerRepository, teams repository.TeamRepository, games repository.GameRepository, tx repository.TxManager, logger zerolog.Logger) PlayerService {
	l := logger.With().Str("module", "service").Str("component", "player").Logger()
	return &playerService{players: players, teams: teams, games: games, tx: tx, log: l}
}

func (s *playerService) CreatePlayer(ctx context.Context, teamID int64, firstName, lastName string, jerseyNumber int) (model.Player, error) {
	start := time.Now()
	trimAll(&firstName, &lastName)

	ferrs := validatePlayerFields(firstName, lastName, jerseyNumber)
	if teamID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "team_id", Message: "must be > 0"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("player validation failed")
		return model.Player{}, err
	}

	// Existence check improves client UX vs deferring to FK violation.
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Player{}, newInvalidInput([]FieldError{{Field: "team_id", Message: "team does not exist"}})
		}
		return model.Player{}, err
	}

	out, err := s.players.Create(ctx, model.Player{TeamID: teamID, FirstName: firstName, LastName: lastName, JerseyNumber: jerseyNumber})
	if err != nil {
		s.log.Error().Err(err).Int64("team_id", teamID).Str("fn", firstName).Str("ln", lastName).Msg("create player failed")
		return model.Player{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("player_id", out.ID).Msg("player created")
	return out, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id int64) (model.Player, error) {
	if id <= 0 {
		return model.Player{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.players.GetByID(ctx, id)
}

func (s *playerService) UpdatePlayer(ctx context.Context, id int64, firstName, lastName string, jerseyNumber int) (model.Player, error) {
	trimAll(&firstName, &lastName)

	ferrs := validatePlayerFields(firstName, lastName, jerseyNumber)
	if id <= 0 {
		ferrs = append(ferrs, FieldError{Field: "id", Message: "must be > 0"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.Player{}, err
	}

	out, err := s.players.Update(ctx, model.Player{ID: id, FirstName: firstName, LastName: lastName, JerseyNumber: jerseyNumber})
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Int64("player_id", id).Msg("update player failed")
		}
		return model.Player{}, err
	}
	return out, nil
}

// DeletePlayer removes the roster entry together with its lineup traces: every
// game of the player's team loses the lineup entry, and event references to
// the player are nulled while the events themselves stay. One transaction, so
// a failed game save leaves the roster intact.
func (s *playerService) DeletePlayer(ctx context.Context, id int64) error {
	if id <= 0 {
		return newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	start := time.Now()

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.players.GetByID(ctx, id)
		if err != nil {
			return err
		}
		games, err := s.games.ListAllByTeam(ctx, p.TeamID)
		if err != nil {
			return err
		}
		for _, g := range games {
			if g.LineupEntry(id) == nil && !referencesPlayer(&g, id) {
				continue
			}
			engine.PrunePlayer(&g, id)
			if _, err := s.games.Save(ctx, g); err != nil {
				return err
			}
		}
		return s.players.Delete(ctx, id)
	})
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Int64("player_id", id).Msg("delete player failed")
		}
		return err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("player_id", id).Msg("player deleted")
	return nil
}

func referencesPlayer(g *model.Game, playerID int64) bool {
	for _, ev := range g.Events {
		for _, ref := range []*int64{ev.ScorerID, ev.AssistID, ev.PlayerInID, ev.PlayerOutID} {
			if ref != nil && *ref == playerID {
				return true
			}
		}
	}
	return false
}

func (s *playerService) ListPlayersByTeam(ctx context.Context, teamID int64, page repository.Page) (repository.PageResult[model.Player], error) {
	if teamID <= 0 {
		return repository.PageResult[model.Player]{}, newInvalidInput([]FieldError{{Field: "team_id", Message: "must be > 0"}})
	}
	p := normalizePage(page)
	res, err := s.players.ListByTeam(ctx, teamID, p)
	if err != nil {
		s.log.Error().Err(err).Int64("team_id", teamID).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list players failed")
		return repository.PageResult[model.Player]{}, err
	}
	return res, nil
}
