package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/domain/model"
	"github.com/tallyhq/tally/internal/domain/port"
	pg "github.com/tallyhq/tally/pkg/postgres"
)

// Compile-time interface check
var _ port.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implements CustomerRepository using PostgreSQL.
type CustomerRepo struct {
	pool *pgxpool.Pool
}

func NewCustomerRepo(pool *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{pool: pool}
}

func (r *CustomerRepo) Save(ctx context.Context, customer model.Customer) error {
	q := pg.QuerierFromContext(ctx, r.pool)

	_, err := q.Exec(ctx, `
		INSERT INTO customers (id, name, total_sales, current_debt, credit_balance, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			total_sales = EXCLUDED.total_sales,
			current_debt = EXCLUDED.current_debt,
			credit_balance = EXCLUDED.credit_balance,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
	`, customer.ID(), customer.Name(), customer.TotalSales(), customer.CurrentDebt(),
		customer.CreditBalance(), customer.Version(), customer.CreatedAt(), customer.UpdatedAt())
	if err != nil {
		return fmt.Errorf("upsert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Customer, error) {
	q := pg.QuerierFromContext(ctx, r.pool)

	var (
		customerID                             uuid.UUID
		name                                   string
		totalSales, currentDebt, creditBalance decimal.Decimal
		version                                int
		createdAt, updatedAt                   time.Time
	)
	err := q.QueryRow(ctx, `
		SELECT id, name, total_sales, current_debt, credit_balance, version, created_at, updated_at
		FROM customers WHERE id = $1
	`, id).Scan(&customerID, &name, &totalSales, &currentDebt, &creditBalance, &version, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Customer{}, port.ErrCustomerNotFound
		}
		return model.Customer{}, fmt.Errorf("query customer: %w", err)
	}

	return model.ReconstructCustomer(customerID, name, totalSales, currentDebt, creditBalance, version, createdAt, updatedAt), nil
}
