package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/domain/event"
	"github.com/tallyhq/tally/internal/domain/valueobject"
	"github.com/tallyhq/tally/pkg/events"
)

// DefaultDeleteWindow is how long after creation a payment may still be
// deleted through the standard path.
const DefaultDeleteWindow = 7 * 24 * time.Hour

// Payment records a single money movement from a customer, optionally
// settling a specific invoice. Its committed amount has exactly one
// current effect on the linked invoice and the customer; edits reverse
// that effect before applying the new one.
type Payment struct {
	id           uuid.UUID
	invoiceID    *uuid.UUID
	customerID   uuid.UUID
	amount       decimal.Decimal
	method       valueobject.PaymentMethod
	receiptURL   string
	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []events.DomainEvent
}

// NewPayment creates a payment record for the given customer and amount.
func NewPayment(
	invoiceID *uuid.UUID,
	customerID uuid.UUID,
	amount decimal.Decimal,
	method valueobject.PaymentMethod,
) (Payment, error) {
	if customerID == uuid.Nil {
		return Payment{}, fmt.Errorf("customer ID is required")
	}
	if !amount.IsPositive() {
		return Payment{}, ErrInvalidAmount
	}
	if method.IsZero() {
		return Payment{}, fmt.Errorf("payment method is required")
	}
	if invoiceID != nil && *invoiceID == uuid.Nil {
		return Payment{}, fmt.Errorf("invoice ID cannot be the nil UUID")
	}

	now := time.Now().UTC()
	id := uuid.New()

	p := Payment{
		id:         id,
		invoiceID:  invoiceID,
		customerID: customerID,
		amount:     amount,
		method:     method,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}

	p.domainEvents = append(p.domainEvents,
		event.NewPaymentRecorded(id, invoiceID, customerID, amount, method.String()),
	)

	return p, nil
}

// ReconstructPayment recreates a Payment from persistence (no validation, no events).
func ReconstructPayment(
	id uuid.UUID,
	invoiceID *uuid.UUID,
	customerID uuid.UUID,
	amount decimal.Decimal,
	method valueobject.PaymentMethod,
	receiptURL string,
	version int,
	createdAt, updatedAt time.Time,
) Payment {
	return Payment{
		id:         id,
		invoiceID:  invoiceID,
		customerID: customerID,
		amount:     amount,
		method:     method,
		receiptURL: receiptURL,
		version:    version,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Edit replaces the payment's amount, method and invoice link after the
// caller has rolled back the prior effect (immutable - returns new copy).
func (p Payment) Edit(
	newAmount decimal.Decimal,
	newMethod valueobject.PaymentMethod,
	newInvoiceID *uuid.UUID,
	now time.Time,
) (Payment, error) {
	if !newAmount.IsPositive() {
		return Payment{}, ErrInvalidAmount
	}
	if newMethod.IsZero() {
		return Payment{}, fmt.Errorf("payment method is required")
	}
	if newInvoiceID != nil && *newInvoiceID == uuid.Nil {
		return Payment{}, fmt.Errorf("invoice ID cannot be the nil UUID")
	}

	updated := p
	updated.amount = newAmount
	updated.method = newMethod
	updated.invoiceID = newInvoiceID
	updated.updatedAt = now
	updated.version++
	updated.domainEvents = append([]events.DomainEvent{}, p.domainEvents...)
	updated.domainEvents = append(updated.domainEvents,
		event.NewPaymentEdited(p.id, p.amount, newAmount),
	)
	return updated, nil
}

// Delete marks the payment for removal, enforcing the delete window
// (immutable - returns new copy carrying the deletion event).
func (p Payment) Delete(now time.Time, window time.Duration) (Payment, error) {
	if now.Sub(p.createdAt) > window {
		return Payment{}, ErrOutsideDeleteWindow
	}

	updated := p
	updated.domainEvents = append([]events.DomainEvent{}, p.domainEvents...)
	updated.domainEvents = append(updated.domainEvents,
		event.NewPaymentDeleted(p.id, p.customerID, p.amount),
	)
	return updated, nil
}

// AttachReceipt sets the stored receipt URL. Receipts are uploaded after
// the financial transaction commits, so this never runs inside one
// (immutable - returns new copy).
func (p Payment) AttachReceipt(url string, now time.Time) Payment {
	updated := p
	updated.receiptURL = url
	updated.updatedAt = now
	updated.version++
	return updated
}

// Accessors

func (p Payment) ID() uuid.UUID                        { return p.id }
func (p Payment) InvoiceID() *uuid.UUID                { return p.invoiceID }
func (p Payment) CustomerID() uuid.UUID                { return p.customerID }
func (p Payment) Amount() decimal.Decimal              { return p.amount }
func (p Payment) Method() valueobject.PaymentMethod    { return p.method }
func (p Payment) ReceiptURL() string                   { return p.receiptURL }
func (p Payment) Version() int                         { return p.version }
func (p Payment) CreatedAt() time.Time                 { return p.createdAt }
func (p Payment) UpdatedAt() time.Time                 { return p.updatedAt }
func (p Payment) DomainEvents() []events.DomainEvent   { return p.domainEvents }

// ClearDomainEvents returns the collected domain events and a new Payment with events cleared.
func (p Payment) ClearDomainEvents() ([]events.DomainEvent, Payment) {
	evts := p.domainEvents
	p.domainEvents = nil
	return evts, p
}
