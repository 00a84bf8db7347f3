package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the settlement state of an invoice.
type InvoiceStatus struct {
	value string
}

var (
	InvoiceStatusUnpaid  = InvoiceStatus{"UNPAID"}
	InvoiceStatusPartial = InvoiceStatus{"PARTIAL"}
	InvoiceStatusPaid    = InvoiceStatus{"PAID"}
)

var validInvoiceStatuses = map[string]InvoiceStatus{
	"UNPAID":  InvoiceStatusUnpaid,
	"PARTIAL": InvoiceStatusPartial,
	"PAID":    InvoiceStatusPaid,
}

// NewInvoiceStatus validates and creates an InvoiceStatus from a string.
func NewInvoiceStatus(s string) (InvoiceStatus, error) {
	if status, ok := validInvoiceStatuses[s]; ok {
		return status, nil
	}
	return InvoiceStatus{}, fmt.Errorf("invalid invoice status: %q", s)
}

// DeriveInvoiceStatus computes the status from an invoice's total and
// amount paid. A non-positive balance means the invoice is settled even
// when rounding left the stored balance a hair below zero.
func DeriveInvoiceStatus(total, amountPaid decimal.Decimal) InvoiceStatus {
	balance := total.Sub(amountPaid)
	switch {
	case balance.Sign() <= 0:
		return InvoiceStatusPaid
	case amountPaid.IsPositive():
		return InvoiceStatusPartial
	default:
		return InvoiceStatusUnpaid
	}
}

// String returns the string representation of the invoice status.
func (s InvoiceStatus) String() string {
	return s.value
}

// IsSettled returns true when no balance remains.
func (s InvoiceStatus) IsSettled() bool {
	return s == InvoiceStatusPaid
}

// IsZero returns true if the status is uninitialized.
func (s InvoiceStatus) IsZero() bool {
	return s.value == ""
}
