package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is the unit of account aggregation across all of a customer's
// invoices and payments. currentDebt and creditBalance never go negative:
// paying consumes debt to zero before any excess becomes credit, and
// spending consumes credit before debt grows.
type Customer struct {
	id            uuid.UUID
	name          string
	totalSales    decimal.Decimal
	currentDebt   decimal.Decimal
	creditBalance decimal.Decimal
	version       int
	createdAt     time.Time
	updatedAt     time.Time
}

// NewCustomer creates a customer with a zeroed financial position.
func NewCustomer(name string) (Customer, error) {
	if name == "" {
		return Customer{}, fmt.Errorf("customer name is required")
	}

	now := time.Now().UTC()
	return Customer{
		id:            uuid.New(),
		name:          name,
		totalSales:    decimal.Zero,
		currentDebt:   decimal.Zero,
		creditBalance: decimal.Zero,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructCustomer recreates a Customer from persistence (no validation).
func ReconstructCustomer(
	id uuid.UUID,
	name string,
	totalSales, currentDebt, creditBalance decimal.Decimal,
	version int,
	createdAt, updatedAt time.Time,
) Customer {
	return Customer{
		id:            id,
		name:          name,
		totalSales:    totalSales,
		currentDebt:   currentDebt,
		creditBalance: creditBalance,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// RecordSale applies an invoice-creation effect: the total joins the
// sales figure, underpayment becomes debt and overpayment becomes credit
// (immutable - returns new copy).
func (c Customer) RecordSale(total, amountPaid decimal.Decimal, now time.Time) Customer {
	updated := c.touch(now)
	updated.totalSales = c.totalSales.Add(total)

	switch total.Cmp(amountPaid) {
	case 1:
		updated.currentDebt = c.currentDebt.Add(total.Sub(amountPaid))
	case -1:
		updated.creditBalance = c.creditBalance.Add(amountPaid.Sub(total))
	}
	return updated
}

// ReverseSale undoes a previously recorded sale effect before its
// replacement is applied, clamping debt and credit at zero so repeated
// edit cycles cannot drive either below zero (immutable - returns new copy).
func (c Customer) ReverseSale(total, amountPaid decimal.Decimal, now time.Time) Customer {
	updated := c.touch(now)
	updated.totalSales = c.totalSales.Sub(total)

	switch total.Cmp(amountPaid) {
	case 1:
		updated.currentDebt = clampZero(c.currentDebt.Sub(total.Sub(amountPaid)))
	case -1:
		updated.creditBalance = clampZero(c.creditBalance.Sub(amountPaid.Sub(total)))
	}
	return updated
}

// ApplyPayment consumes debt first; whatever remains of the amount after
// debt reaches zero becomes credit (immutable - returns new copy).
func (c Customer) ApplyPayment(amount decimal.Decimal, now time.Time) Customer {
	updated := c.touch(now)

	remainder := c.currentDebt.Sub(amount)
	if remainder.IsNegative() {
		updated.currentDebt = decimal.Zero
		updated.creditBalance = c.creditBalance.Add(remainder.Neg())
	} else {
		updated.currentDebt = remainder
	}
	return updated
}

// RollbackPayment reverses a prior ApplyPayment: the debt the payment had
// consumed is restored, then any credit the payment may have generated is
// clawed back, bounded by the credit still available (immutable - returns
// new copy).
//
// When unrelated payments have consumed part of that credit in between,
// the claw-back can only take what is left, so the inverse is not exact.
// That behavior is intentional and characterized in tests; correcting it
// is a product decision, not a refactor.
func (c Customer) RollbackPayment(amount decimal.Decimal, now time.Time) Customer {
	updated := c.touch(now)

	debt := c.currentDebt.Add(amount)
	credit := c.creditBalance
	if credit.IsPositive() {
		clawback := decimal.Min(credit, amount)
		credit = credit.Sub(clawback)
		debt = debt.Sub(clawback)
	}
	updated.currentDebt = clampZero(debt)
	updated.creditBalance = credit
	return updated
}

// ReverseInvoiceDeletion undoes the customer-side effect of an invoice
// that never attracted a payment record: the paid amount moves from debt
// reduction back to credit and the sale leaves the sales figure
// (immutable - returns new copy).
func (c Customer) ReverseInvoiceDeletion(amountPaid, total decimal.Decimal, now time.Time) Customer {
	updated := c.touch(now)
	updated.currentDebt = clampZero(c.currentDebt.Sub(amountPaid))
	updated.creditBalance = c.creditBalance.Add(amountPaid)
	updated.totalSales = c.totalSales.Sub(total)
	return updated
}

func (c Customer) touch(now time.Time) Customer {
	updated := c
	updated.updatedAt = now
	updated.version++
	return updated
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Accessors

func (c Customer) ID() uuid.UUID                  { return c.id }
func (c Customer) Name() string                   { return c.name }
func (c Customer) TotalSales() decimal.Decimal    { return c.totalSales }
func (c Customer) CurrentDebt() decimal.Decimal   { return c.currentDebt }
func (c Customer) CreditBalance() decimal.Decimal { return c.creditBalance }
func (c Customer) Version() int                   { return c.version }
func (c Customer) CreatedAt() time.Time           { return c.createdAt }
func (c Customer) UpdatedAt() time.Time           { return c.updatedAt }
