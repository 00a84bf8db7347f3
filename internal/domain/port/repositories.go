package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/domain/model"
)

// TransactionCoordinator wraps a unit of work in an atomic multi-aggregate
// transaction. Every repository call made through the ctx passed to fn
// joins the same transaction; fn returning an error aborts all of it.
// A started unit of work always runs to commit or abort, even when the
// caller's context is cancelled mid-flight.
type TransactionCoordinator interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// StockLedger atomically deducts and restores per-product inventory.
// Both calls participate in the enclosing transaction; no partial
// application is visible outside a commit.
type StockLedger interface {
	// Reserve decrements stock by quantity, failing with
	// ErrInsufficientStock when the product cannot cover it.
	Reserve(ctx context.Context, productID uuid.UUID, quantity int) error
	// Release increments stock by quantity, used when restoring a
	// superseded line-item set during an invoice edit.
	Release(ctx context.Context, productID uuid.UUID, quantity int) error
}

// ProductRepository reads catalog products referenced by line items.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (model.Product, error)
}

// InvoiceRepository defines persistence operations for invoices.
type InvoiceRepository interface {
	// Save persists an invoice (insert or update) along with its line
	// items and stages its domain events for publication.
	Save(ctx context.Context, invoice model.Invoice) error
	// FindByID retrieves an invoice by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (model.Invoice, error)
	// Delete removes an invoice row and stages its deletion events.
	Delete(ctx context.Context, invoice model.Invoice) error
	// ListByCustomer returns a customer's invoices with pagination.
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]model.Invoice, int, error)
	// ListByOutlet returns an outlet's invoices with pagination.
	ListByOutlet(ctx context.Context, outletID uuid.UUID, limit, offset int) ([]model.Invoice, int, error)
}

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	Save(ctx context.Context, payment model.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (model.Payment, error)
	// Delete removes a payment row and stages its deletion events.
	Delete(ctx context.Context, payment model.Payment) error
	// ExistsForInvoice reports whether any payment references the invoice.
	ExistsForInvoice(ctx context.Context, invoiceID uuid.UUID) (bool, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]model.Payment, int, error)
}

// CustomerRepository defines persistence operations for customer accounts.
type CustomerRepository interface {
	Save(ctx context.Context, customer model.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (model.Customer, error)
}

// OutletRepository checks outlet references.
type OutletRepository interface {
	// Exists returns ErrOutletNotFound when the outlet is unknown.
	Exists(ctx context.Context, id uuid.UUID) error
}

// ReceiptStore is the external file-storage collaborator. It is invoked
// only after the financial transaction commits, so upload latency or
// failure never risks the atomicity of the ledger update.
type ReceiptStore interface {
	// Store persists the receipt bytes and returns a stable URL.
	Store(ctx context.Context, name string, data []byte) (string, error)
}
