// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/matchday-hq/matchday-service/internal/model"
	"github.com/matchday-hq/matchday-service/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// NewInvalidInputError is the exported variant for callers outside the package
// (handlers reporting parse failures with the same shape).
func NewInvalidInputError(fe []FieldError) error { return newInvalidInput(fe) }

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// Clock supplies the current wall-clock instant. The engine's transitions take
// explicit times, so injecting a fake clock makes playtime accounting testable
// without sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the production clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// SnapshotPublisher receives every committed game snapshot for read-only
// fan-out to live spectators. Implementations must not block.
type SnapshotPublisher interface {
	Publish(g model.Game)
}

// NopPublisher discards snapshots; useful in tests and tooling.
type NopPublisher struct{}

func (NopPublisher) Publish(model.Game) {}

// TeamService defines team-oriented use cases.
type TeamService interface {
	CreateTeam(ctx context.Context, name string) (model.Team, error)
	GetTeam(ctx context.Context, id int64) (model.Team, error)
	ListTeams(ctx context.Context, page repository.Page) (repository.PageResult[model.Team], error)
}

// PlayerService defines roster use cases.
type PlayerService interface {
	CreatePlayer(ctx context.Context, teamID int64, firstName, lastName string, jerseyNumber int) (model.Player, error)
	GetPlayer(ctx context.Context, id int64) (model.Player, error)
	UpdatePlayer(ctx context.Context, id int64, firstName, lastName string, jerseyNumber int) (model.Player, error)
	// DeletePlayer removes the roster entry and walks every game of the team,
	// pruning the player's lineup state and nulling event references, all in
	// one transaction.
	DeletePlayer(ctx context.Context, id int64) error
	ListPlayersByTeam(ctx context.Context, teamID int64, page repository.Page) (repository.PageResult[model.Player], error)
}

// GameService defines game scheduling use cases.
type GameService interface {
	CreateGame(ctx context.Context, teamID int64, opponent string, kickoffAt time.Time, isHome bool, season, competition string) (model.Game, error)
	GetGame(ctx context.Context, id int64) (model.Game, error)
	ListGamesByTeam(ctx context.Context, teamID int64, page repository.Page) (repository.PageResult[model.Game], error)
	UpdateSchedule(ctx context.Context, id int64, opponent string, kickoffAt time.Time, isHome bool, season, competition string) (model.Game, error)
	DeleteGame(ctx context.Context, id int64) error
}

// LiveGameService defines the in-game operations: clock, lineup moves, goals.
// Every operation is fetch-snapshot -> engine transition -> gateway save; the
// returned game is the gateway's echoed snapshot, and a save failure means
// the operation did not happen.
type LiveGameService interface {
	StartTimer(ctx context.Context, gameID int64) (model.Game, error)
	StopTimer(ctx context.Context, gameID int64) (model.Game, error)
	FinishGame(ctx context.Context, gameID int64) (model.Game, error)
	MovePlayer(ctx context.Context, gameID, playerID int64, from, to model.Location, pos *model.FieldPosition) (model.Game, error)
	SwapPlayers(ctx context.Context, gameID, playerA, playerB int64) (model.Game, error)
	AddGoal(ctx context.Context, gameID int64, team model.TeamSide, scorerID, assistID *int64) (model.Game, error)
	RemoveLastGoal(ctx context.Context, gameID int64, team model.TeamSide) (model.Game, error)
	ResetLineup(ctx context.Context, gameID int64) (model.Game, error)
}
