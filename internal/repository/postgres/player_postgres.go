package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchday-hq/matchday-service/internal/model"
	"github.com/matchday-hq/matchday-service/internal/repository"
)

type playerRepository struct{ pool *pgxpool.Pool }

func NewPlayerRepository(pool *pgxpool.Pool) repository.PlayerRepository {
	return &playerRepository{pool: pool}
}

const playerColumns = `id, team_id, first_name, last_name, jersey_number, created_at, updated_at`

func scanPlayer(row pgx.Row) (model.Player, error) {
	var out model.Player
	err := row.Scan(&out.ID, &out.TeamID, &out.FirstName, &out.LastName, &out.JerseyNumber, &out.CreatedAt, &out.UpdatedAt)
	return out, err
}

func (r *playerRepository) Create(ctx context.Context, p model.Player) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO players (team_id, first_name, last_name, jersey_number)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+playerColumns,
		p.TeamID, p.FirstName, p.LastName, p.JerseyNumber,
	)
	out, err := scanPlayer(row)
	if err != nil {
		return model.Player{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *playerRepository) GetByID(ctx context.Context, id int64) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
	out, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Player{}, repository.ErrNotFound
		}
		return model.Player{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *playerRepository) Update(ctx context.Context, p model.Player) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE players
		 SET first_name = $2, last_name = $3, jersey_number = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING `+playerColumns,
		p.ID, p.FirstName, p.LastName, p.JerseyNumber,
	)
	out, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Player{}, repository.ErrNotFound
		}
		return model.Player{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *playerRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *playerRepository) ListByTeam(ctx context.Context, teamID int64, p repository.Page) (repository.PageResult[model.Player], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Player]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+playerColumns+`, COUNT(*) OVER() AS total
		 FROM players
		 WHERE team_id = $1
		 ORDER BY jersey_number ASC, id ASC
		 LIMIT $2 OFFSET $3`,
		teamID, limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.Player]{}, repository.MapPgError(err)
	}
	defer rows.Close()
	res := repository.PageResult[model.Player]{Items: make([]model.Player, 0, limit)}
	for rows.Next() {
		var it model.Player
		var total int
		if err := rows.Scan(&it.ID, &it.TeamID, &it.FirstName, &it.LastName, &it.JerseyNumber, &it.CreatedAt, &it.UpdatedAt, &total); err != nil {
			return repository.PageResult[model.Player]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, it)
		res.Total = total
	}
	return res, nil
}

func (r *playerRepository) ListAllByTeam(ctx context.Context, teamID int64) ([]model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+playerColumns+`
		 FROM players
		 WHERE team_id = $1
		 ORDER BY jersey_number ASC, id ASC`,
		teamID,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	var roster []model.Player
	for rows.Next() {
		var it model.Player
		if err := rows.Scan(&it.ID, &it.TeamID, &it.FirstName, &it.LastName, &it.JerseyNumber, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, repository.MapPgError(err)
		}
		roster = append(roster, it)
	}
	return roster, nil
}

var _ repository.PlayerRepository = (*playerRepository)(nil)
