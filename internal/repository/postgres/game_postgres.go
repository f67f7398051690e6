package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchday-hq/matchday-service/internal/model"
	"github.com/matchday-hq/matchday-service/internal/repository"
)

type gameRepository struct{ pool *pgxpool.Pool }

func NewGameRepository(pool *pgxpool.Pool) repository.GameRepository {
	return &gameRepository{pool: pool}
}

const gameColumns = `id, team_id, opponent, kickoff_at, is_home, season, competition,
	home_score, away_score, timer_status, timer_started_at, timer_elapsed_seconds,
	is_finished, lineup, events, created_at, updated_at`

// scanGame decodes one games row, converting the timestamptz running instant
// and the JSONB lineup/events blobs into engine shape.
func scanGame(row pgx.Row) (model.Game, error) {
	var (
		out            model.Game
		timerStartedAt *time.Time
		lineupRaw      []byte
		eventsRaw      []byte
	)
	if err := row.Scan(
		&out.ID, &out.TeamID, &out.Opponent, &out.KickoffAt, &out.IsHome, &out.Season, &out.Competition,
		&out.HomeScore, &out.AwayScore, &out.TimerStatus, &timerStartedAt, &out.TimerElapsedSeconds,
		&out.IsFinished, &lineupRaw, &eventsRaw, &out.CreatedAt, &out.UpdatedAt,
	); err != nil {
		return model.Game{}, err
	}
	out.TimerStartMillis = timerStartFromDB(timerStartedAt)
	lineup, err := unmarshalLineup(lineupRaw)
	if err != nil {
		return model.Game{}, err
	}
	events, err := unmarshalEvents(eventsRaw)
	if err != nil {
		return model.Game{}, err
	}
	out.Lineup = lineup
	out.Events = events
	return out, nil
}

func (r *gameRepository) Create(ctx context.Context, g model.Game) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	lineupRaw, err := marshalLineup(g.Lineup)
	if err != nil {
		return model.Game{}, err
	}
	eventsRaw, err := marshalEvents(g.Events)
	if err != nil {
		return model.Game{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO games (team_id, opponent, kickoff_at, is_home, season, competition, lineup, events)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+gameColumns,
		g.TeamID, g.Opponent, g.KickoffAt, g.IsHome, g.Season, g.Competition, lineupRaw, eventsRaw,
	)
	out, err := scanGame(row)
	if err != nil {
		return model.Game{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *gameRepository) GetByID(ctx context.Context, id int64) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id)
	out, err := scanGame(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Game{}, repository.ErrNotFound
		}
		return model.Game{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *gameRepository) ListByTeam(ctx context.Context, teamID int64, p repository.Page) (repository.PageResult[model.Game], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Game]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+gameColumns+`, COUNT(*) OVER() AS total
		 FROM games
		 WHERE team_id = $1
		 ORDER BY kickoff_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		teamID, limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.Game]{}, repository.MapPgError(err)
	}
	defer rows.Close()
	res := repository.PageResult[model.Game]{Items: make([]model.Game, 0, limit)}
	for rows.Next() {
		var (
			it             model.Game
			timerStartedAt *time.Time
			lineupRaw      []byte
			eventsRaw      []byte
			total          int
		)
		if err := rows.Scan(
			&it.ID, &it.TeamID, &it.Opponent, &it.KickoffAt, &it.IsHome, &it.Season, &it.Competition,
			&it.HomeScore, &it.AwayScore, &it.TimerStatus, &timerStartedAt, &it.TimerElapsedSeconds,
			&it.IsFinished, &lineupRaw, &eventsRaw, &it.CreatedAt, &it.UpdatedAt, &total,
		); err != nil {
			return repository.PageResult[model.Game]{}, repository.MapPgError(err)
		}
		it.TimerStartMillis = timerStartFromDB(timerStartedAt)
		if it.Lineup, err = unmarshalLineup(lineupRaw); err != nil {
			return repository.PageResult[model.Game]{}, err
		}
		if it.Events, err = unmarshalEvents(eventsRaw); err != nil {
			return repository.PageResult[model.Game]{}, err
		}
		res.Items = append(res.Items, it)
		res.Total = total
	}
	return res, nil
}

func (r *gameRepository) ListAllByTeam(ctx context.Context, teamID int64) ([]model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+gameColumns+` FROM games WHERE team_id = $1 ORDER BY kickoff_at DESC, id DESC`,
		teamID,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	var games []model.Game
	for rows.Next() {
		var (
			it             model.Game
			timerStartedAt *time.Time
			lineupRaw      []byte
			eventsRaw      []byte
		)
		if err := rows.Scan(
			&it.ID, &it.TeamID, &it.Opponent, &it.KickoffAt, &it.IsHome, &it.Season, &it.Competition,
			&it.HomeScore, &it.AwayScore, &it.TimerStatus, &timerStartedAt, &it.TimerElapsedSeconds,
			&it.IsFinished, &lineupRaw, &eventsRaw, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, repository.MapPgError(err)
		}
		it.TimerStartMillis = timerStartFromDB(timerStartedAt)
		if it.Lineup, err = unmarshalLineup(lineupRaw); err != nil {
			return nil, err
		}
		if it.Events, err = unmarshalEvents(eventsRaw); err != nil {
			return nil, err
		}
		games = append(games, it)
	}
	return games, nil
}

func (r *gameRepository) UpdateSchedule(ctx context.Context, g model.Game) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE games
		 SET opponent = $2, kickoff_at = $3, is_home = $4, season = $5, competition = $6, updated_at = now()
		 WHERE id = $1
		 RETURNING `+gameColumns,
		g.ID, g.Opponent, g.KickoffAt, g.IsHome, g.Season, g.Competition,
	)
	out, err := scanGame(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Game{}, repository.ErrNotFound
		}
		return model.Game{}, repository.MapPgError(err)
	}
	return out, nil
}

// Save persists the full live state in one row update: score, clock, lineup
// and events commit or fail together.
func (r *gameRepository) Save(ctx context.Context, g model.Game) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	lineupRaw, err := marshalLineup(g.Lineup)
	if err != nil {
		return model.Game{}, err
	}
	eventsRaw, err := marshalEvents(g.Events)
	if err != nil {
		return model.Game{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE games
		 SET home_score = $2, away_score = $3, timer_status = $4, timer_started_at = $5,
		     timer_elapsed_seconds = $6, is_finished = $7, lineup = $8, events = $9, updated_at = now()
		 WHERE id = $1
		 RETURNING `+gameColumns,
		g.ID, g.HomeScore, g.AwayScore, string(g.TimerStatus), timerStartToDB(g.TimerStartMillis),
		g.TimerElapsedSeconds, g.IsFinished, lineupRaw, eventsRaw,
	)
	out, err := scanGame(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Game{}, repository.ErrNotFound
		}
		return model.Game{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *gameRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.GameRepository = (*gameRepository)(nil)
