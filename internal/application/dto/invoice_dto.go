package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemRequest names a catalog product and the quantity sold. The unit
// price is looked up from the catalog at execution time, never trusted
// from the caller.
type LineItemRequest struct {
	ProductID uuid.UUID
	Quantity  int
}

// LineItemResponse is the output DTO for one invoice line.
type LineItemResponse struct {
	ProductID uuid.UUID
	UnitPrice decimal.Decimal
	Quantity  int
	Subtotal  decimal.Decimal
}

// CreateInvoiceRequest is the input DTO for creating an invoice. Method is
// required only when AmountPaid is positive.
type CreateInvoiceRequest struct {
	CustomerID uuid.UUID
	OutletID   uuid.UUID
	Items      []LineItemRequest
	AmountPaid decimal.Decimal
	Method     string
}

// InvoiceResponse is the output DTO for an invoice.
type InvoiceResponse struct {
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Status     string
	Items      []LineItemResponse
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
	AmountPaid decimal.Decimal
	Balance    decimal.Decimal
	Version    int
	ID         uuid.UUID
	CustomerID uuid.UUID
	OutletID   uuid.UUID
}

// EditInvoiceRequest is the input DTO for replacing an invoice's item set
// and paid amount.
type EditInvoiceRequest struct {
	InvoiceID  uuid.UUID
	Items      []LineItemRequest
	AmountPaid decimal.Decimal
	Method     string
}

// EditInvoiceResponse carries the recomputed invoice and, when the edit
// raised the paid amount, the payment row recorded for the difference.
type EditInvoiceResponse struct {
	Invoice InvoiceResponse
	Payment *PaymentResponse
}

// DeleteInvoiceRequest is the input DTO for deleting an invoice.
type DeleteInvoiceRequest struct {
	InvoiceID uuid.UUID
}

// GetInvoiceRequest is the input DTO for retrieving a single invoice.
type GetInvoiceRequest struct {
	InvoiceID uuid.UUID
}

// ListInvoicesRequest is the input DTO for listing invoices. Exactly one
// of CustomerID or OutletID should be set; CustomerID wins when both are.
type ListInvoicesRequest struct {
	CustomerID uuid.UUID
	OutletID   uuid.UUID
	PageSize   int
	Offset     int
}

// ListInvoicesResponse is the output DTO for listing invoices.
type ListInvoicesResponse struct {
	Invoices   []InvoiceResponse
	TotalCount int
}
