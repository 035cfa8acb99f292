package owners

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("owner not found")

type Repo struct {
	pg *pgxpool.Pool
}

func NewRepo(pg *pgxpool.Pool) *Repo {
	return &Repo{pg: pg}
}

func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*Owner, error) {
	const q = `
SELECT id, phone, password_hash, restaurant_name, created_at, updated_at
FROM owners
WHERE id = $1
LIMIT 1`
	return scanOwner(r.pg.QueryRow(ctx, q, id))
}

func (r *Repo) FindByPhone(ctx context.Context, phone string) (*Owner, error) {
	const q = `
SELECT id, phone, password_hash, restaurant_name, created_at, updated_at
FROM owners
WHERE phone = $1
LIMIT 1`
	return scanOwner(r.pg.QueryRow(ctx, q, phone))
}

func scanOwner(row pgx.Row) (*Owner, error) {
	var o Owner
	err := row.Scan(&o.ID, &o.Phone, &o.PasswordHash, &o.RestaurantName, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}
