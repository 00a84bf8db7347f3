package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallyhq/tally/internal/domain/model"
	"github.com/tallyhq/tally/internal/domain/port"
	pg "github.com/tallyhq/tally/pkg/postgres"
)

// Compile-time interface checks
var (
	_ port.ProductRepository = (*ProductRepo)(nil)
	_ port.StockLedger       = (*ProductRepo)(nil)
)

// ProductRepo reads catalog products and implements the stock ledger on
// top of the same table.
type ProductRepo struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

func (r *ProductRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	q := pg.QuerierFromContext(ctx, r.pool)

	var p model.Product
	err := q.QueryRow(ctx, `
		SELECT id, name, price, stock FROM products WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Price, &p.Stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, port.ErrProductNotFound
		}
		return model.Product{}, fmt.Errorf("query product: %w", err)
	}
	return p, nil
}

// Reserve decrements stock with a conditional update: the row-level lock
// serializes concurrent reservations and the predicate keeps stock from
// ever going negative.
func (r *ProductRepo) Reserve(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("reserve quantity must be positive, got %d", quantity)
	}
	q := pg.QuerierFromContext(ctx, r.pool)

	tag, err := q.Exec(ctx, `
		UPDATE products SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2
	`, productID, quantity)
	if err != nil {
		return fmt.Errorf("reserve stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing product from one without enough stock.
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
			return fmt.Errorf("check product existence: %w", err)
		}
		if !exists {
			return port.ErrProductNotFound
		}
		return port.ErrInsufficientStock
	}
	return nil
}

func (r *ProductRepo) Release(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("release quantity must be positive, got %d", quantity)
	}
	q := pg.QuerierFromContext(ctx, r.pool)

	tag, err := q.Exec(ctx, `
		UPDATE products SET stock = stock + $2, updated_at = now()
		WHERE id = $1
	`, productID, quantity)
	if err != nil {
		return fmt.Errorf("release stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrProductNotFound
	}
	return nil
}
