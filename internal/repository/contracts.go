package repository

import (
	"context"

	"github.com/matchday-hq/matchday-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// I prefer a single entry point to keep transaction boundaries explicit and testable.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// TeamRepository declares persistence operations for teams.
// I return domain models and surface domain errors from errors.go rather than PG codes.
type TeamRepository interface {
	Create(ctx context.Context, t model.Team) (model.Team, error)
	GetByID(ctx context.Context, id int64) (model.Team, error)
	List(ctx context.Context, p Page) (PageResult[model.Team], error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// PlayerRepository declares persistence operations for roster players.
type PlayerRepository interface {
	Create(ctx context.Context, p model.Player) (model.Player, error)
	GetByID(ctx context.Context, id int64) (model.Player, error)
	Update(ctx context.Context, p model.Player) (model.Player, error)
	Delete(ctx context.Context, id int64) error
	ListByTeam(ctx context.Context, teamID int64, p Page) (PageResult[model.Player], error)
	// ListAllByTeam returns the full roster, unpaginated. Game creation and
	// lineup resets snapshot the roster through this.
	ListAllByTeam(ctx context.Context, teamID int64) ([]model.Player, error)
}

// GameRepository is the persistence gateway for games and their live state.
// Save is the single write path for live-game mutations: a full snapshot goes
// in, the stored snapshot comes back. Callers must not assume the echo equals
// what was sent.
type GameRepository interface {
	Create(ctx context.Context, g model.Game) (model.Game, error)
	GetByID(ctx context.Context, id int64) (model.Game, error)
	ListByTeam(ctx context.Context, teamID int64, p Page) (PageResult[model.Game], error)
	// ListAllByTeam returns every game of the team; player deletion walks it
	// to prune lineups and null event references.
	ListAllByTeam(ctx context.Context, teamID int64) ([]model.Game, error)
	// UpdateSchedule rewrites only the scheduling fields (opponent, kickoff,
	// home/away, season, competition), leaving live state alone.
	UpdateSchedule(ctx context.Context, g model.Game) (model.Game, error)
	// Save atomically persists score, clock, lineup and events.
	Save(ctx context.Context, g model.Game) (model.Game, error)
	Delete(ctx context.Context, id int64) error
}
