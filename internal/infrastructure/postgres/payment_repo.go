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
	"github.com/tallyhq/tally/internal/domain/valueobject"
	pg "github.com/tallyhq/tally/pkg/postgres"
)

// Compile-time interface check
var _ port.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implements PaymentRepository using PostgreSQL.
type PaymentRepo struct {
	pool *pgxpool.Pool
}

func NewPaymentRepo(pool *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

func (r *PaymentRepo) Save(ctx context.Context, payment model.Payment) error {
	q := pg.QuerierFromContext(ctx, r.pool)

	var receiptURL *string
	if url := payment.ReceiptURL(); url != "" {
		receiptURL = &url
	}

	_, err := q.Exec(ctx, `
		INSERT INTO payments (id, invoice_id, customer_id, amount, method, receipt_url, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			invoice_id = EXCLUDED.invoice_id,
			amount = EXCLUDED.amount,
			method = EXCLUDED.method,
			receipt_url = EXCLUDED.receipt_url,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
	`, payment.ID(), payment.InvoiceID(), payment.CustomerID(), payment.Amount(),
		payment.Method().String(), receiptURL, payment.Version(), payment.CreatedAt(), payment.UpdatedAt())
	if err != nil {
		return fmt.Errorf("upsert payment: %w", err)
	}

	return stageEvents(ctx, q, payment.DomainEvents())
}

func (r *PaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Payment, error) {
	q := pg.QuerierFromContext(ctx, r.pool)

	var (
		paymentID, customerID uuid.UUID
		invoiceID             *uuid.UUID
		amount                decimal.Decimal
		method                string
		receiptURL            *string
		version               int
		createdAt, updatedAt  time.Time
	)
	err := q.QueryRow(ctx, `
		SELECT id, invoice_id, customer_id, amount, method, receipt_url, version, created_at, updated_at
		FROM payments WHERE id = $1
	`, id).Scan(&paymentID, &invoiceID, &customerID, &amount, &method, &receiptURL, &version, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Payment{}, port.ErrPaymentNotFound
		}
		return model.Payment{}, fmt.Errorf("query payment: %w", err)
	}

	m, err := valueobject.NewPaymentMethod(method)
	if err != nil {
		return model.Payment{}, fmt.Errorf("invalid stored method %q: %w", method, err)
	}
	var url string
	if receiptURL != nil {
		url = *receiptURL
	}

	return model.ReconstructPayment(paymentID, invoiceID, customerID, amount, m, url, version, createdAt, updatedAt), nil
}

func (r *PaymentRepo) Delete(ctx context.Context, payment model.Payment) error {
	q := pg.QuerierFromContext(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, payment.ID())
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrPaymentNotFound
	}

	return stageEvents(ctx, q, payment.DomainEvents())
}

func (r *PaymentRepo) ExistsForInvoice(ctx context.Context, invoiceID uuid.UUID) (bool, error) {
	q := pg.QuerierFromContext(ctx, r.pool)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM payments WHERE invoice_id = $1)`, invoiceID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check payments for invoice: %w", err)
	}
	return exists, nil
}

func (r *PaymentRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]model.Payment, int, error) {
	q := pg.QuerierFromContext(ctx, r.pool)

	var total int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE customer_id = $1`, customerID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT id FROM payments WHERE customer_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`, customerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, 0, fmt.Errorf("scan payment id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate payments: %w", err)
	}

	var payments []model.Payment
	for _, id := range ids {
		p, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, 0, err
		}
		payments = append(payments, p)
	}
	return payments, total, nil
}
