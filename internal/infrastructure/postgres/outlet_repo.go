package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallyhq/tally/internal/domain/port"
	pg "github.com/tallyhq/tally/pkg/postgres"
)

// Compile-time interface check
var _ port.OutletRepository = (*OutletRepo)(nil)

// OutletRepo checks outlet references against the outlets table.
type OutletRepo struct {
	pool *pgxpool.Pool
}

func NewOutletRepo(pool *pgxpool.Pool) *OutletRepo {
	return &OutletRepo{pool: pool}
}

func (r *OutletRepo) Exists(ctx context.Context, id uuid.UUID) error {
	q := pg.QuerierFromContext(ctx, r.pool)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM outlets WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check outlet existence: %w", err)
	}
	if !exists {
		return port.ErrOutletNotFound
	}
	return nil
}
