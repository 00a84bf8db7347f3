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

	"github.com/tallyhq/tally/internal/domain/event"
	"github.com/tallyhq/tally/internal/domain/model"
	"github.com/tallyhq/tally/internal/domain/port"
	"github.com/tallyhq/tally/internal/domain/valueobject"
	"github.com/tallyhq/tally/pkg/events"
	pg "github.com/tallyhq/tally/pkg/postgres"
)

// Compile-time interface check
var _ port.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository using PostgreSQL. All writes
// join the transaction carried in ctx when one is present.
type InvoiceRepo struct {
	pool *pgxpool.Pool
}

func NewInvoiceRepo(pool *pgxpool.Pool) *InvoiceRepo {
	return &InvoiceRepo{pool: pool}
}

func (r *InvoiceRepo) Save(ctx context.Context, invoice model.Invoice) error {
	q := pg.QuerierFromContext(ctx, r.pool)

	_, err := q.Exec(ctx, `
		INSERT INTO invoices (id, customer_id, outlet_id, subtotal, tax, total, amount_paid, balance, status, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			subtotal = EXCLUDED.subtotal,
			tax = EXCLUDED.tax,
			total = EXCLUDED.total,
			amount_paid = EXCLUDED.amount_paid,
			balance = EXCLUDED.balance,
			status = EXCLUDED.status,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
	`, invoice.ID(), invoice.CustomerID(), invoice.OutletID(),
		invoice.Subtotal(), invoice.Tax(), invoice.Total(), invoice.AmountPaid(), invoice.Balance(),
		invoice.Status().String(), invoice.Version(), invoice.CreatedAt(), invoice.UpdatedAt())
	if err != nil {
		return fmt.Errorf("upsert invoice: %w", err)
	}

	// Replace the line-item set wholesale; an edit swaps it anyway.
	_, err = q.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoice.ID())
	if err != nil {
		return fmt.Errorf("delete existing items: %w", err)
	}
	for i, item := range invoice.Items() {
		_, err = q.Exec(ctx, `
			INSERT INTO invoice_items (invoice_id, product_id, unit_price, quantity, subtotal, seq_num)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, invoice.ID(), item.ProductID(), item.UnitPrice(), item.Quantity(), item.Subtotal(), i+1)
		if err != nil {
			return fmt.Errorf("insert line item %d: %w", i, err)
		}
	}

	return stageEvents(ctx, q, invoice.DomainEvents())
}

func (r *InvoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Invoice, error) {
	q := pg.QuerierFromContext(ctx, r.pool)

	var (
		invoiceID, customerID, outletID              uuid.UUID
		subtotal, tax, total, amountPaid, balance    decimal.Decimal
		status                                       string
		version                                      int
		createdAt, updatedAt                         time.Time
	)
	err := q.QueryRow(ctx, `
		SELECT id, customer_id, outlet_id, subtotal, tax, total, amount_paid, balance, status, version, created_at, updated_at
		FROM invoices WHERE id = $1
	`, id).Scan(&invoiceID, &customerID, &outletID, &subtotal, &tax, &total, &amountPaid, &balance, &status, &version, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Invoice{}, port.ErrInvoiceNotFound
		}
		return model.Invoice{}, fmt.Errorf("query invoice: %w", err)
	}

	items, err := r.loadItems(ctx, q, invoiceID)
	if err != nil {
		return model.Invoice{}, err
	}

	st, err := valueobject.NewInvoiceStatus(status)
	if err != nil {
		return model.Invoice{}, fmt.Errorf("invalid stored status %q: %w", status, err)
	}

	return model.ReconstructInvoice(
		invoiceID, customerID, outletID, items,
		subtotal, tax, total, amountPaid, balance,
		st, version, createdAt, updatedAt,
	), nil
}

func (r *InvoiceRepo) loadItems(ctx context.Context, q pg.Querier, invoiceID uuid.UUID) ([]valueobject.LineItem, error) {
	rows, err := q.Query(ctx, `
		SELECT product_id, unit_price, quantity
		FROM invoice_items WHERE invoice_id = $1 ORDER BY seq_num
	`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("query line items: %w", err)
	}
	defer rows.Close()

	var items []valueobject.LineItem
	for rows.Next() {
		var (
			productID uuid.UUID
			unitPrice decimal.Decimal
			quantity  int
		)
		if err := rows.Scan(&productID, &unitPrice, &quantity); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		item, err := valueobject.NewLineItem(productID, unitPrice, quantity)
		if err != nil {
			return nil, fmt.Errorf("invalid stored line item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Delete removes the invoice and its items and stages the deletion
// event. Line items go with the invoice via ON DELETE CASCADE.
func (r *InvoiceRepo) Delete(ctx context.Context, invoice model.Invoice) error {
	q := pg.QuerierFromContext(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, invoice.ID())
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrInvoiceNotFound
	}

	evt := event.NewInvoiceDeleted(invoice.ID(), invoice.CustomerID(), invoice.Total())
	return stageEvents(ctx, q, []events.DomainEvent{evt})
}

func (r *InvoiceRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]model.Invoice, int, error) {
	return r.list(ctx, "customer_id", customerID, limit, offset)
}

func (r *InvoiceRepo) ListByOutlet(ctx context.Context, outletID uuid.UUID, limit, offset int) ([]model.Invoice, int, error) {
	return r.list(ctx, "outlet_id", outletID, limit, offset)
}

func (r *InvoiceRepo) list(ctx context.Context, column string, scope uuid.UUID, limit, offset int) ([]model.Invoice, int, error) {
	q := pg.QuerierFromContext(ctx, r.pool)

	var total int
	err := q.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM invoices WHERE %s = $1`, column), scope).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	rows, err := q.Query(ctx, fmt.Sprintf(`
		SELECT id FROM invoices WHERE %s = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`, column), scope, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, 0, fmt.Errorf("scan invoice id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate invoices: %w", err)
	}

	var invoices []model.Invoice
	for _, id := range ids {
		inv, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, total, nil
}
