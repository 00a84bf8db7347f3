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

// Invoice is the root aggregate for the billing bounded context. Its
// subtotal, tax, total, balance and status are always derived from the
// line items and the amount paid, never stored independently. balance is
// kept exact; only status derivation forgives rounding dust below zero.
type Invoice struct {
	id           uuid.UUID
	customerID   uuid.UUID
	outletID     uuid.UUID
	items        []valueobject.LineItem
	subtotal     decimal.Decimal
	tax          decimal.Decimal
	total        decimal.Decimal
	amountPaid   decimal.Decimal
	balance      decimal.Decimal
	status       valueobject.InvoiceStatus
	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []events.DomainEvent
}

// NewInvoice creates an invoice from a line-item set, an optional initial
// paid amount and the configured tax rate.
func NewInvoice(
	customerID uuid.UUID,
	outletID uuid.UUID,
	items []valueobject.LineItem,
	amountPaid decimal.Decimal,
	taxRate decimal.Decimal,
) (Invoice, error) {
	if customerID == uuid.Nil {
		return Invoice{}, fmt.Errorf("customer ID is required")
	}
	if outletID == uuid.Nil {
		return Invoice{}, fmt.Errorf("outlet ID is required")
	}
	if len(items) == 0 {
		return Invoice{}, ErrItemsRequired
	}
	if amountPaid.IsNegative() {
		return Invoice{}, fmt.Errorf("amount paid cannot be negative, got: %s", amountPaid.String())
	}

	now := time.Now().UTC()
	id := uuid.New()

	inv := Invoice{
		id:         id,
		customerID: customerID,
		outletID:   outletID,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}
	inv.applyTotals(items, amountPaid, taxRate)

	inv.domainEvents = append(inv.domainEvents,
		event.NewInvoiceCreated(id, customerID, outletID, inv.total, inv.amountPaid, inv.status.String()),
	)

	return inv, nil
}

// ReconstructInvoice recreates an Invoice from persistence (no validation, no events).
func ReconstructInvoice(
	id, customerID, outletID uuid.UUID,
	items []valueobject.LineItem,
	subtotal, tax, total, amountPaid, balance decimal.Decimal,
	status valueobject.InvoiceStatus,
	version int,
	createdAt, updatedAt time.Time,
) Invoice {
	return Invoice{
		id:         id,
		customerID: customerID,
		outletID:   outletID,
		items:      items,
		subtotal:   subtotal,
		tax:        tax,
		total:      total,
		amountPaid: amountPaid,
		balance:    balance,
		status:     status,
		version:    version,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Recompute rebuilds the invoice from a new item set and paid amount
// (immutable - returns new copy). Stock deltas are not its concern; the
// coordinator releases and reserves quantities before this step.
func (inv Invoice) Recompute(
	items []valueobject.LineItem,
	amountPaid decimal.Decimal,
	taxRate decimal.Decimal,
	now time.Time,
) (Invoice, error) {
	if len(items) == 0 {
		return Invoice{}, ErrItemsRequired
	}
	if amountPaid.IsNegative() {
		return Invoice{}, fmt.Errorf("amount paid cannot be negative, got: %s", amountPaid.String())
	}

	updated := inv
	updated.applyTotals(items, amountPaid, taxRate)
	updated.updatedAt = now
	updated.version++
	updated.domainEvents = append([]events.DomainEvent{}, inv.domainEvents...)
	updated.domainEvents = append(updated.domainEvents,
		event.NewInvoiceEdited(inv.id, updated.total, updated.amountPaid, updated.status.String()),
	)
	return updated, nil
}

// ApplyPaymentDelta adjusts the amount paid by delta, which may be
// negative when a payment's prior effect is being rolled back
// (immutable - returns new copy).
func (inv Invoice) ApplyPaymentDelta(delta decimal.Decimal, now time.Time) Invoice {
	updated := inv
	updated.amountPaid = inv.amountPaid.Add(delta)
	updated.balance = inv.total.Sub(updated.amountPaid)
	updated.status = valueobject.DeriveInvoiceStatus(inv.total, updated.amountPaid)
	updated.updatedAt = now
	updated.version++
	updated.domainEvents = append([]events.DomainEvent{}, inv.domainEvents...)
	updated.domainEvents = append(updated.domainEvents,
		event.NewInvoiceEdited(inv.id, updated.total, updated.amountPaid, updated.status.String()),
	)
	return updated
}

// applyTotals recomputes every derived money field from scratch. Tax is
// rounded to 2 decimal places at computation time; balance stays exact.
func (inv *Invoice) applyTotals(items []valueobject.LineItem, amountPaid, taxRate decimal.Decimal) {
	inv.items = items
	inv.subtotal = valueobject.TotalOf(items)
	inv.tax = inv.subtotal.Mul(taxRate).Round(2)
	inv.total = inv.subtotal.Add(inv.tax)
	inv.amountPaid = amountPaid
	inv.balance = inv.total.Sub(amountPaid)
	inv.status = valueobject.DeriveInvoiceStatus(inv.total, amountPaid)
}

// Accessors

func (inv Invoice) ID() uuid.UUID                        { return inv.id }
func (inv Invoice) CustomerID() uuid.UUID                { return inv.customerID }
func (inv Invoice) OutletID() uuid.UUID                  { return inv.outletID }
func (inv Invoice) Items() []valueobject.LineItem        { return inv.items }
func (inv Invoice) Subtotal() decimal.Decimal            { return inv.subtotal }
func (inv Invoice) Tax() decimal.Decimal                 { return inv.tax }
func (inv Invoice) Total() decimal.Decimal               { return inv.total }
func (inv Invoice) AmountPaid() decimal.Decimal          { return inv.amountPaid }
func (inv Invoice) Balance() decimal.Decimal             { return inv.balance }
func (inv Invoice) Status() valueobject.InvoiceStatus    { return inv.status }
func (inv Invoice) Version() int                         { return inv.version }
func (inv Invoice) CreatedAt() time.Time                 { return inv.createdAt }
func (inv Invoice) UpdatedAt() time.Time                 { return inv.updatedAt }
func (inv Invoice) DomainEvents() []events.DomainEvent   { return inv.domainEvents }

// ClearDomainEvents returns the collected domain events and a new Invoice with events cleared.
func (inv Invoice) ClearDomainEvents() ([]events.DomainEvent, Invoice) {
	evts := inv.domainEvents
	inv.domainEvents = nil
	return evts, inv
}
