package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallyhq/tally/internal/domain/port"
	pg "github.com/tallyhq/tally/pkg/postgres"
)

// Compile-time interface check
var _ port.TransactionCoordinator = (*Coordinator)(nil)

// Coordinator implements the all-or-nothing unit of work on a single
// database transaction. Repository calls made through the ctx passed to
// fn join it via the transaction carried in the context.
type Coordinator struct {
	pool *pgxpool.Pool
}

func NewCoordinator(pool *pgxpool.Pool) *Coordinator {
	return &Coordinator{pool: pool}
}

// Run executes fn inside one transaction. The caller's cancellation is
// detached first: a unit of work that has begun always runs to commit or
// abort, so a client disconnect can never leave partial state behind.
func (c *Coordinator) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx = context.WithoutCancel(ctx)
	return pg.WithTransaction(ctx, c.pool, func(tx pgx.Tx) error {
		return fn(pg.ContextWithTx(ctx, tx))
	})
}
